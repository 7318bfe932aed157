package search

import (
	"strings"

	"stock-pulse/models"
)

type SearchEngine interface {
	Search(query string) []models.Stock
	GetBySymbol(symbol string) *models.Stock
}

// InMemoryEngine matches the navbar search box: a case-insensitive substring
// of the name or symbol, results in catalog order.
type InMemoryEngine struct {
	stocks []models.Stock
}

func NewInMemoryEngine(stocks []models.Stock) *InMemoryEngine {
	return &InMemoryEngine{stocks: stocks}
}

func (e *InMemoryEngine) Search(query string) []models.Stock {
	results := []models.Stock{}
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return results
	}
	for _, stock := range e.stocks {
		if strings.Contains(strings.ToLower(stock.Symbol), q) ||
			strings.Contains(strings.ToLower(stock.Name), q) {
			results = append(results, stock.Clone())
		}
	}
	return results
}

func (e *InMemoryEngine) GetBySymbol(symbol string) *models.Stock {
	for _, stock := range e.stocks {
		if strings.EqualFold(stock.Symbol, symbol) {
			s := stock.Clone()
			return &s
		}
	}
	return nil
}
