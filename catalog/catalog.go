// Package catalog holds the immutable stock, sector and index reference data
// and the queries the site and api layers run against it.
//
// A Catalog is built once with Build and never mutated afterwards, so it can
// be shared by concurrent request handlers without locking. Every query
// returns copies.
package catalog

import (
	"fmt"
	"math"
	"slices"

	"stock-pulse/apperror"
	"stock-pulse/chart"
	"stock-pulse/loader"
	"stock-pulse/models"
)

// DefaultTopN is the number of movers shown on the homepage.
const DefaultTopN = 5

type Catalog struct {
	stocks  []models.Stock
	sectors []models.Sector
	indices []models.MarketIndex

	bySlug   map[string]int
	bySector map[string]int
}

// Build generates chart data for every stock in ds and validates the result.
// The chart base is the integer part of the price and the trend follows the
// sign of the day's change.
func Build(ds *loader.Dataset, gen *chart.Generator) (*Catalog, error) {
	c := &Catalog{
		stocks:   make([]models.Stock, len(ds.Stocks)),
		sectors:  slices.Clone(ds.Sectors),
		indices:  slices.Clone(ds.Indices),
		bySlug:   make(map[string]int, len(ds.Stocks)),
		bySector: make(map[string]int, len(ds.Sectors)),
	}

	for i, s := range ds.Stocks {
		points, err := gen.Generate(math.Floor(s.Price), chart.TrendFor(s.Change))
		if err != nil {
			return nil, apperror.NewCustomError(apperror.ErrCatalogInvalid,
				fmt.Sprintf("chart for %s", s.Slug), err)
		}
		s = s.Clone()
		s.ChartData = points
		c.stocks[i] = s
	}

	if err := c.index(); err != nil {
		return nil, err
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Catalog) index() error {
	for i, s := range c.stocks {
		if _, dup := c.bySlug[s.Slug]; dup {
			return invalid("duplicate stock slug %q", s.Slug)
		}
		c.bySlug[s.Slug] = i
	}
	for i, sec := range c.sectors {
		if _, dup := c.bySector[sec.Slug]; dup {
			return invalid("duplicate sector slug %q", sec.Slug)
		}
		c.bySector[sec.Slug] = i
	}
	return nil
}

func (c *Catalog) validate() error {
	counts := make(map[string]int, len(c.sectors))
	for _, s := range c.stocks {
		if _, ok := c.bySector[s.SectorSlug]; !ok {
			return invalid("stock %q references unknown sector %q", s.Slug, s.SectorSlug)
		}
		counts[s.SectorSlug]++

		if sign(s.Change) != sign(s.ChangePercent) {
			return invalid("stock %q: change %v and percent %v disagree in sign", s.Slug, s.Change, s.ChangePercent)
		}
		if len(s.ChartData) == 0 {
			return invalid("stock %q has no chart data", s.Slug)
		}
	}
	for _, sec := range c.sectors {
		if sec.Count != counts[sec.Slug] {
			return invalid("sector %q declares %d stocks but %d reference it", sec.Slug, sec.Count, counts[sec.Slug])
		}
	}
	return nil
}

func invalid(format string, args ...any) error {
	return apperror.NewCustomError(apperror.ErrCatalogInvalid, fmt.Sprintf(format, args...), nil)
}

func sign(v float64) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
