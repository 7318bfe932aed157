package models

// Stock is one NSE-listed instrument in the catalog.
type Stock struct {
	Symbol         string       `json:"symbol" yaml:"symbol"` // exchange suffixed, e.g. "RELIANCE.NS"
	Name           string       `json:"name" yaml:"name"`
	Slug           string       `json:"slug" yaml:"slug"`
	Price          float64      `json:"price" yaml:"price"`
	Change         float64      `json:"change" yaml:"change"`
	ChangePercent  float64      `json:"changePercent" yaml:"change_percent"`
	MarketCapCrore float64      `json:"marketCapCrore" yaml:"market_cap_crore"` // in crore rupees
	PERatio        float64      `json:"peRatio" yaml:"pe_ratio"`
	Volume         int64        `json:"volume" yaml:"volume"` // shares traded
	WeekHigh52     float64      `json:"weekHigh52" yaml:"week_high_52"`
	WeekLow52      float64      `json:"weekLow52" yaml:"week_low_52"`
	Sector         string       `json:"sector" yaml:"sector"`
	SectorSlug     string       `json:"sectorSlug" yaml:"sector_slug"`
	Overview       string       `json:"overview" yaml:"overview"`
	ChartData      []PricePoint `json:"chartData" yaml:"-"`
}

// PricePoint is a single intraday sample. Time is "HH:MM" (24h).
type PricePoint struct {
	Time  string  `json:"time"`
	Price float64 `json:"price"`
}

// IsGainer reports whether the stock is flat or up on the day.
func (s Stock) IsGainer() bool {
	return s.Change >= 0
}

// PreviousClose is the close the day's change is measured against.
func (s Stock) PreviousClose() float64 {
	return s.Price - s.Change
}

// WeekRangePercent places the price inside its 52-week range, clamped to
// [2, 98] so the range marker never sits on the bar edge.
func (s Stock) WeekRangePercent() float64 {
	span := s.WeekHigh52 - s.WeekLow52
	if span <= 0 {
		return 50
	}
	pct := (s.Price - s.WeekLow52) / span * 100
	if pct < 2 {
		return 2
	}
	if pct > 98 {
		return 98
	}
	return pct
}

// Clone returns a copy that shares no memory with s.
func (s Stock) Clone() Stock {
	if s.ChartData != nil {
		points := make([]PricePoint, len(s.ChartData))
		copy(points, s.ChartData)
		s.ChartData = points
	}
	return s
}
