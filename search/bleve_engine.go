package search

import (
	"fmt"
	"sort"
	"strings"

	"stock-pulse/apperror"
	"stock-pulse/logger"
	"stock-pulse/models"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/mapping"
	"github.com/sirupsen/logrus"
)

// stockDoc is the indexed view of a stock. The slug doubles as document ID.
type stockDoc struct {
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
	Sector string `json:"sector"`
}

// BleveEngine ranks stocks with an in-memory bleve index. Hits are resolved
// back to the catalog records it was built from.
type BleveEngine struct {
	index  bleve.Index
	stocks map[string]models.Stock
	order  map[string]int
	logger *logrus.Logger
}

func NewBleveEngine(stocks []models.Stock) (*BleveEngine, error) {
	index, err := bleve.NewMemOnly(buildIndexMapping())
	if err != nil {
		return nil, apperror.NewCustomError(apperror.ErrIndexBuild, "create index", err)
	}

	e := &BleveEngine{
		index:  index,
		stocks: make(map[string]models.Stock, len(stocks)),
		order:  make(map[string]int, len(stocks)),
		logger: logger.GetLogger(),
	}

	batch := index.NewBatch()
	for i, stock := range stocks {
		e.stocks[stock.Slug] = stock.Clone()
		e.order[stock.Slug] = i
		doc := stockDoc{
			Symbol: stock.Symbol,
			Name:   stock.Name,
			Sector: stock.Sector,
		}
		if err := batch.Index(stock.Slug, doc); err != nil {
			index.Close()
			return nil, apperror.NewCustomError(apperror.ErrIndexBuild, "add to batch", err)
		}
	}
	if err := index.Batch(batch); err != nil {
		index.Close()
		return nil, apperror.NewCustomError(apperror.ErrIndexBuild, "execute batch", err)
	}

	e.logger.WithField("documents", len(stocks)).Info("search index built")
	return e, nil
}

func buildIndexMapping() mapping.IndexMapping {
	indexMapping := bleve.NewIndexMapping()
	stockMapping := bleve.NewDocumentMapping()

	textFieldMapping := bleve.NewTextFieldMapping()
	textFieldMapping.Store = false
	textFieldMapping.Index = true
	for _, field := range []string{"symbol", "name", "sector"} {
		stockMapping.AddFieldMappingsAt(field, textFieldMapping)
	}

	indexMapping.DefaultMapping = stockMapping
	return indexMapping
}

func (e *BleveEngine) Search(query string) []models.Stock {
	results := []models.Stock{}
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return results
	}

	// 1. Exact symbol (highest priority)
	exactQuery := bleve.NewTermQuery(q)
	exactQuery.SetField("symbol")
	exactQuery.SetBoost(10.0)

	// 2. Symbol prefix
	prefixQuery := bleve.NewPrefixQuery(q)
	prefixQuery.SetField("symbol")
	prefixQuery.SetBoost(5.0)

	// 3. Analyzed match on the name
	nameMatchQuery := bleve.NewMatchQuery(query)
	nameMatchQuery.SetField("name")
	nameMatchQuery.SetBoost(3.0)

	// 4./5. Substring on symbol and name, the navbar's behaviour
	wildcardSymbol := bleve.NewWildcardQuery("*" + q + "*")
	wildcardSymbol.SetField("symbol")
	wildcardSymbol.SetBoost(2.0)

	wildcardName := bleve.NewWildcardQuery("*" + q + "*")
	wildcardName.SetField("name")
	wildcardName.SetBoost(1.5)

	// 6. Sector name, lowest priority
	sectorQuery := bleve.NewMatchQuery(query)
	sectorQuery.SetField("sector")
	sectorQuery.SetBoost(1.0)

	searchQuery := bleve.NewDisjunctionQuery(
		exactQuery,
		prefixQuery,
		nameMatchQuery,
		wildcardSymbol,
		wildcardName,
		sectorQuery,
	)

	searchRequest := bleve.NewSearchRequest(searchQuery)
	searchRequest.Size = len(e.stocks)

	searchResults, err := e.index.Search(searchRequest)
	if err != nil {
		e.logger.WithError(err).WithField("query", query).Error("search failed")
		return results
	}

	type scoredStock struct {
		stock models.Stock
		score float64
		order int
	}
	scored := make([]scoredStock, 0, len(searchResults.Hits))
	for _, hit := range searchResults.Hits {
		stock, ok := e.stocks[hit.ID]
		if !ok {
			continue
		}
		scored = append(scored, scoredStock{stock: stock, score: hit.Score, order: e.order[hit.ID]})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].score != scored[j].score {
			return scored[i].score > scored[j].score
		}
		return scored[i].order < scored[j].order
	})

	for _, s := range scored {
		results = append(results, s.stock.Clone())
	}
	return results
}

func (e *BleveEngine) GetBySymbol(symbol string) *models.Stock {
	for _, stock := range e.stocks {
		if strings.EqualFold(stock.Symbol, symbol) {
			s := stock.Clone()
			return &s
		}
	}
	return nil
}

func (e *BleveEngine) Close() error {
	return e.index.Close()
}

// New picks an engine by its configured name.
func New(kind string, stocks []models.Stock) (SearchEngine, error) {
	switch kind {
	case "memory":
		return NewInMemoryEngine(stocks), nil
	case "bleve", "":
		e, err := NewBleveEngine(stocks)
		if err != nil {
			return nil, err
		}
		return e, nil
	}
	return nil, fmt.Errorf("unknown search engine %q", kind)
}
