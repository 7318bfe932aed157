package site

import (
	"encoding/json"
	"fmt"
	"html/template"
	"strings"

	"stock-pulse/format"
	"stock-pulse/models"
)

const (
	homeTitle       = "Indian Stock Insights – Real-Time NSE & BSE Market Data"
	homeDescription = "Track live Indian stock prices, market data, and analysis. Get real-time NSE & BSE share prices, top gainers, losers, and sector-wise stock insights for 2026."
	homeOGDesc      = "Track live Indian stock prices, market data, and analysis."

	stockNotFoundTitle  = "Stock Not Found"
	sectorNotFoundTitle = "Sector Not Found"
	pageNotFoundTitle   = "Page Not Found"
)

// Meta is the head metadata of one page.
type Meta struct {
	Title         string
	Description   string
	OGTitle       string
	OGDescription string
	OGType        string
	Canonical     string
	JSONLD        template.JS
}

// shortName is the first word of a company name, "Reliance" for
// "Reliance Industries Ltd".
func shortName(name string) string {
	if f := strings.Fields(name); len(f) > 0 {
		return f[0]
	}
	return name
}

func (s *Site) url(path string) string {
	return s.baseURL + path
}

func (s *Site) homeMeta() Meta {
	return Meta{
		Title:         homeTitle,
		Description:   homeDescription,
		OGTitle:       homeTitle,
		OGDescription: homeOGDesc,
		OGType:        "website",
		Canonical:     s.url("/"),
		JSONLD: jsonLD(map[string]any{
			"@context": "https://schema.org",
			"@type":    "WebSite",
			"name":     s.name,
			"url":      s.url("/"),
		}),
	}
}

func (s *Site) stockMeta(stock *models.Stock) Meta {
	short := shortName(stock.Name)
	price := format.Rupee(stock.Price)
	desc := fmt.Sprintf("%s live share price today is %s. Get %s stock analysis, key metrics, P/E ratio, market cap, and 52-week range.",
		stock.Name, price, short)
	return Meta{
		Title:         short + " Share Price Today, Live NSE Stock Price & Analysis",
		Description:   desc,
		OGTitle:       short + " Share Price Today",
		OGDescription: stock.Name + " live share price: " + price,
		OGType:        "website",
		Canonical:     s.url(stockPath(stock.Slug)),
		JSONLD: jsonLD(map[string]any{
			"@context":    "https://schema.org",
			"@type":       "FinancialProduct",
			"name":        stock.Name + " Stock",
			"description": "Stock information for " + stock.Name,
			"url":         s.url(stockPath(stock.Slug)),
			"provider": map[string]any{
				"@type":        "Organization",
				"name":         stock.Name,
				"tickerSymbol": stock.Symbol,
			},
			"offers": map[string]any{
				"@type":         "Offer",
				"price":         format.Fixed(stock.Price, 2),
				"priceCurrency": "INR",
			},
		}),
	}
}

func (s *Site) sectorMeta(sector *models.Sector, stocks []models.Stock) Meta {
	items := make([]map[string]any, len(stocks))
	for i, st := range stocks {
		items[i] = map[string]any{
			"@type":    "ListItem",
			"position": i + 1,
			"name":     st.Name,
			"url":      s.url(stockPath(st.Slug)),
		}
	}
	desc := fmt.Sprintf("Explore %d %s stocks listed on NSE & BSE. Track live share prices, performance, and analysis of leading %s companies in India.",
		len(stocks), sector.Name, sector.Name)
	return Meta{
		Title:         fmt.Sprintf("%s Stocks – Top %s Companies in India", sector.Name, sector.Name),
		Description:   desc,
		OGTitle:       sector.Name + " Stocks",
		OGDescription: fmt.Sprintf("Track %d %s companies in India", len(stocks), sector.Name),
		OGType:        "website",
		Canonical:     s.url(sectorPath(sector.Slug)),
		JSONLD: jsonLD(map[string]any{
			"@context":        "https://schema.org",
			"@type":           "ItemList",
			"name":            sector.Name + " Stocks",
			"itemListElement": items,
		}),
	}
}

func notFoundMeta(title string) Meta {
	return Meta{Title: title, OGType: "website"}
}

// jsonLD encodes v for a ld+json script block. json.Marshal escapes '<' and
// '>' so the payload cannot close the script element.
func jsonLD(v any) template.JS {
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return template.JS(b)
}

func stockPath(slug string) string  { return "/stocks/" + slug }
func sectorPath(slug string) string { return "/sectors/" + slug }
