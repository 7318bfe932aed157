package site

import (
	"fmt"
	"html/template"
	"math"
	"strings"

	"stock-pulse/format"
	"stock-pulse/models"
)

const (
	chartWidth   = 800
	chartHeight  = 320
	chartLeft    = 72 // room for the price axis
	chartRight   = 12
	chartTop     = 12
	chartBottom  = 28 // room for the time axis
	chartPadding = 5  // rupees added above the max and below the min

	gainColor = "hsl(160, 84%, 39%)"
	lossColor = "hsl(0, 72%, 51%)"
)

// chartSVG draws the intraday series as an area chart. The price axis spans
// [min-5, max+5] and the colour follows the day's direction.
func chartSVG(points []models.PricePoint, positive bool) template.HTML {
	if len(points) == 0 {
		return ""
	}

	lo, hi := points[0].Price, points[0].Price
	for _, p := range points[1:] {
		lo = min(lo, p.Price)
		hi = max(hi, p.Price)
	}
	lo -= chartPadding
	hi += chartPadding

	color := lossColor
	if positive {
		color = gainColor
	}

	plotW := float64(chartWidth - chartLeft - chartRight)
	plotH := float64(chartHeight - chartTop - chartBottom)
	x := func(i int) float64 {
		if len(points) == 1 {
			return chartLeft + plotW/2
		}
		return chartLeft + plotW*float64(i)/float64(len(points)-1)
	}
	y := func(price float64) float64 {
		return chartTop + plotH*(hi-price)/(hi-lo)
	}

	var line strings.Builder
	for i, p := range points {
		cmd := "L"
		if i == 0 {
			cmd = "M"
		}
		fmt.Fprintf(&line, "%s%.1f,%.1f ", cmd, x(i), y(p.Price))
	}
	base := float64(chartTop) + plotH
	area := fmt.Sprintf("%sL%.1f,%.1f L%.1f,%.1f Z", line.String(), x(len(points)-1), base, x(0), base)

	var b strings.Builder
	fmt.Fprintf(&b, `<svg class="chart" viewBox="0 0 %d %d" preserveAspectRatio="none" role="img" aria-label="Intraday price chart">`, chartWidth, chartHeight)
	fmt.Fprintf(&b, `<defs><linearGradient id="chartGradient" x1="0" y1="0" x2="0" y2="1">`+
		`<stop offset="0%%" stop-color="%s" stop-opacity="0.3"/><stop offset="100%%" stop-color="%s" stop-opacity="0"/>`+
		`</linearGradient></defs>`, color, color)
	fmt.Fprintf(&b, `<path d="%s" fill="url(#chartGradient)" stroke="none"/>`, area)
	fmt.Fprintf(&b, `<path d="%s" fill="none" stroke="%s" stroke-width="2"/>`, strings.TrimSpace(line.String()), color)

	// price axis: top, middle, bottom
	for _, v := range []float64{hi, (hi + lo) / 2, lo} {
		fmt.Fprintf(&b, `<text class="axis" x="%d" y="%.1f" text-anchor="end">%s</text>`,
			chartLeft-8, y(v)+4, template.HTMLEscapeString(format.Rupee(math.Round(v))))
	}
	// time axis: first, middle, last
	for _, i := range []int{0, len(points) / 2, len(points) - 1} {
		fmt.Fprintf(&b, `<text class="axis" x="%.1f" y="%d" text-anchor="middle">%s</text>`,
			x(i), chartHeight-8, template.HTMLEscapeString(points[i].Time))
	}
	b.WriteString(`</svg>`)

	return template.HTML(b.String())
}
