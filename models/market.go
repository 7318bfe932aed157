package models

// Sector groups stocks for the sector listing pages.
type Sector struct {
	Name  string `json:"name" yaml:"name"`
	Slug  string `json:"slug" yaml:"slug"`
	Icon  string `json:"icon" yaml:"icon"`
	Count int    `json:"count" yaml:"count"` // must equal the stocks referencing Slug
}

// MarketIndex is a headline index shown in the ticker bar.
type MarketIndex struct {
	Name          string  `json:"name" yaml:"name"`
	Value         float64 `json:"value" yaml:"value"`
	Change        float64 `json:"change" yaml:"change"`
	ChangePercent float64 `json:"changePercent" yaml:"change_percent"`
}
