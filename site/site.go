// Package site renders the marketing pages (home, stock detail, sector
// listing) with their SEO metadata, plus the sitemap, robots.txt and the
// client-side search index. The same renderer serves pages over HTTP and
// writes the static export.
package site

import (
	"bytes"
	"embed"
	"html/template"
	"io"
	"io/fs"
	"strings"
	"time"

	"stock-pulse/apperror"
	"stock-pulse/catalog"
	"stock-pulse/format"
	"stock-pulse/logger"
	"stock-pulse/metrics"
	"stock-pulse/models"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

const (
	pageHome     = "home"
	pageStock    = "stock"
	pageSector   = "sector"
	pageNotFound = "notfound"

	footerLinks = 4
)

type Options struct {
	Name    string
	BaseURL string // absolute, no trailing slash
}

type Site struct {
	catalog *catalog.Catalog
	name    string
	baseURL string
	pages   map[string]*template.Template
	logger  *logrus.Logger
	year    int
}

// page is the data every template receives. Only the fields of the page
// being rendered are set.
type page struct {
	SiteName string
	Year     int
	Meta     Meta

	Indices       []models.MarketIndex
	FooterSectors []models.Sector
	FooterStocks  []models.Stock

	// home
	Summary catalog.Summary
	Gainers []models.Stock
	Losers  []models.Stock
	Sectors []models.Sector
	Stocks  []models.Stock

	// stock detail
	Stock *models.Stock
	Chart template.HTML

	// sector listing
	Sector *models.Sector

	// not found
	Message string
}

func New(cat *catalog.Catalog, opts Options) (*Site, error) {
	s := &Site{
		catalog: cat,
		name:    opts.Name,
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		pages:   make(map[string]*template.Template),
		logger:  logger.GetLogger(),
		year:    time.Now().Year(),
	}

	for _, name := range []string{pageHome, pageStock, pageSector, pageNotFound} {
		t, err := template.New(name).Funcs(funcMap()).ParseFS(templateFS,
			"templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, apperror.NewCustomError(apperror.ErrRender, "parse template "+name, err)
		}
		s.pages[name] = t
	}
	return s, nil
}

func funcMap() template.FuncMap {
	return template.FuncMap{
		"inr":     format.INR,
		"rupee":   format.Rupee,
		"change":  format.Change,
		"percent": format.Percent,
		"volume":  format.Volume,
		"mcap":    format.MarketCap,
		"fixed1": func(v float64) string {
			return format.Fixed(v, 1)
		},
		"lower": strings.ToLower,
		// trend picks the gain or loss CSS class
		"trend": func(change float64) string {
			if change >= 0 {
				return "gain"
			}
			return "loss"
		},
		"pct": func(v float64) string {
			return decimal.NewFromFloat(v).StringFixed(2)
		},
	}
}

func (s *Site) base() page {
	stocks := s.catalog.Stocks()
	sectors := s.catalog.Sectors()
	return page{
		SiteName:      s.name,
		Year:          s.year,
		Indices:       s.catalog.Indices(),
		FooterSectors: sectors[:min(footerLinks, len(sectors))],
		FooterStocks:  stocks[:min(footerLinks, len(stocks))],
	}
}

func (s *Site) render(w io.Writer, name string, data page) error {
	var buf bytes.Buffer
	if err := s.pages[name].ExecuteTemplate(&buf, "layout", data); err != nil {
		return apperror.NewCustomError(apperror.ErrRender, "render "+name, err)
	}
	metrics.PagesRendered.WithLabelValues(name).Inc()
	_, err := buf.WriteTo(w)
	return err
}

// RenderHome writes the homepage.
func (s *Site) RenderHome(w io.Writer) error {
	data := s.base()
	data.Meta = s.homeMeta()
	data.Summary = s.catalog.Summary()
	data.Gainers = s.catalog.TopGainers(catalog.DefaultTopN)
	data.Losers = s.catalog.TopLosers(catalog.DefaultTopN)
	data.Sectors = s.catalog.Sectors()
	data.Stocks = s.catalog.Stocks()
	return s.render(w, pageHome, data)
}

// RenderStock writes the detail page for slug. It reports false, writing
// nothing, when no stock has that slug.
func (s *Site) RenderStock(w io.Writer, slug string) (bool, error) {
	stock := s.catalog.StockBySlug(slug)
	if stock == nil {
		return false, nil
	}
	data := s.base()
	data.Meta = s.stockMeta(stock)
	data.Stock = stock
	data.Chart = chartSVG(stock.ChartData, stock.IsGainer())
	return true, s.render(w, pageStock, data)
}

// RenderSector writes the listing page for slug. It reports false, writing
// nothing, when no sector has that slug.
func (s *Site) RenderSector(w io.Writer, slug string) (bool, error) {
	sector := s.catalog.SectorBySlug(slug)
	if sector == nil {
		return false, nil
	}
	stocks := s.catalog.StocksBySector(slug)
	data := s.base()
	data.Meta = s.sectorMeta(sector, stocks)
	data.Sector = sector
	data.Stocks = stocks
	return true, s.render(w, pageSector, data)
}

// RenderNotFound writes the 404 page with the given title.
func (s *Site) RenderNotFound(w io.Writer, title string) error {
	data := s.base()
	data.Meta = notFoundMeta(title)
	data.Message = "The page you are looking for does not exist or has been moved."
	switch title {
	case stockNotFoundTitle:
		data.Message = "We could not find that stock. Try the search box or browse a sector."
	case sectorNotFoundTitle:
		data.Message = "We could not find that sector. Pick one of the sectors below."
	}
	data.Sectors = s.catalog.Sectors()
	return s.render(w, pageNotFound, data)
}

// Static exposes the embedded stylesheet and script.
func Static() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}
