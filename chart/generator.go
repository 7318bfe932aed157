// Package chart generates the synthetic intraday price series shown on
// stock detail pages.
package chart

import (
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"stock-pulse/models"

	"github.com/shopspring/decimal"
)

// Trend is the direction the walk is biased towards.
type Trend int

const (
	Up Trend = iota
	Down
)

// TrendFor returns Up for a flat or rising change and Down otherwise.
func TrendFor(change float64) Trend {
	if change >= 0 {
		return Up
	}
	return Down
}

func (t Trend) String() string {
	if t == Up {
		return "up"
	}
	return "down"
}

const (
	firstHour   = 9
	lastHour    = 15
	stepMinutes = 15

	startOffset = 0.03  // walk starts 3% away from the base, against the trend
	drift       = 0.001 // per-step multiplicative bias
	noiseRange  = 0.005 // total width of the uniform noise band, as a fraction of base
	priceDigits = 2
)

// PointsPerSeries is the number of samples between 09:00 and 15:45 inclusive.
const PointsPerSeries = (lastHour - firstHour + 1) * (60 / stepMinutes)

// ErrInvalidBasePrice is returned for a base price that is zero or negative.
var ErrInvalidBasePrice = errors.New("base price must be positive")

// Generator produces random-walk price series from an explicit source.
type Generator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewGenerator wraps src. Series are reproducible for a given source state.
func NewGenerator(src rand.Source) *Generator {
	return &Generator{rng: rand.New(src)}
}

// NewSeededGenerator seeds a generator; seed 0 seeds from the clock, so every
// build gets a different series.
func NewSeededGenerator(seed int64) *Generator {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return NewGenerator(rand.NewSource(seed))
}

// Generate walks from basePrice×0.97 (Up) or basePrice×1.03 (Down) through the
// trading session, one point every 15 minutes from 09:00 to 15:45.
func (g *Generator) Generate(basePrice float64, trend Trend) ([]models.PricePoint, error) {
	if basePrice <= 0 {
		return nil, fmt.Errorf("generate %s series for %v: %w", trend, basePrice, ErrInvalidBasePrice)
	}

	step := drift
	price := basePrice * (1 - startOffset)
	if trend == Down {
		step = -drift
		price = basePrice * (1 + startOffset)
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	points := make([]models.PricePoint, 0, PointsPerSeries)
	for h := firstHour; h <= lastHour; h++ {
		for m := 0; m < 60; m += stepMinutes {
			noise := (g.rng.Float64() - 0.5) * basePrice * noiseRange
			price = price*(1+step) + noise
			points = append(points, models.PricePoint{
				Time:  fmt.Sprintf("%02d:%02d", h, m),
				Price: roundPrice(price),
			})
		}
	}
	return points, nil
}

func roundPrice(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(priceDigits).Float64()
	return f
}
