package catalog

import (
	"cmp"
	"slices"

	"stock-pulse/models"
)

// StockBySlug returns the stock with the exact slug, or nil.
func (c *Catalog) StockBySlug(slug string) *models.Stock {
	i, ok := c.bySlug[slug]
	if !ok {
		return nil
	}
	s := c.stocks[i].Clone()
	return &s
}

// SectorBySlug returns the sector with the exact slug, or nil.
func (c *Catalog) SectorBySlug(slug string) *models.Sector {
	i, ok := c.bySector[slug]
	if !ok {
		return nil
	}
	sec := c.sectors[i]
	return &sec
}

// StocksBySector keeps catalog order. Unknown slugs yield an empty slice.
func (c *Catalog) StocksBySector(sectorSlug string) []models.Stock {
	out := []models.Stock{}
	for _, s := range c.stocks {
		if s.SectorSlug == sectorSlug {
			out = append(out, s.Clone())
		}
	}
	return out
}

// TopGainers returns up to n stocks by change percent, highest first.
// Ties keep catalog order.
func (c *Catalog) TopGainers(n int) []models.Stock {
	return c.ranked(n, func(a, b models.Stock) int {
		return cmp.Compare(b.ChangePercent, a.ChangePercent)
	})
}

// TopLosers returns up to n stocks by change percent, lowest first.
// Ties keep catalog order.
func (c *Catalog) TopLosers(n int) []models.Stock {
	return c.ranked(n, func(a, b models.Stock) int {
		return cmp.Compare(a.ChangePercent, b.ChangePercent)
	})
}

func (c *Catalog) ranked(n int, order func(a, b models.Stock) int) []models.Stock {
	sorted := c.Stocks()
	slices.SortStableFunc(sorted, order)
	if n < 0 {
		n = 0
	}
	if n > len(sorted) {
		n = len(sorted)
	}
	return sorted[:n]
}

func (c *Catalog) Stocks() []models.Stock {
	out := make([]models.Stock, len(c.stocks))
	for i, s := range c.stocks {
		out[i] = s.Clone()
	}
	return out
}

func (c *Catalog) Sectors() []models.Sector {
	return slices.Clone(c.sectors)
}

func (c *Catalog) Indices() []models.MarketIndex {
	return slices.Clone(c.indices)
}

// Summary feeds the homepage hero stats.
type Summary struct {
	Stocks         int     `json:"stocks"`
	Sectors        int     `json:"sectors"`
	MarketCapCrore float64 `json:"marketCapCrore"`
}

func (c *Catalog) Summary() Summary {
	sum := Summary{Stocks: len(c.stocks), Sectors: len(c.sectors)}
	for _, s := range c.stocks {
		sum.MarketCapCrore += s.MarketCapCrore
	}
	return sum
}
