// Package format renders catalog numbers the way Indian market pages show
// them: lakh/crore digit grouping, rupee prefixes and signed change badges.
package format

import (
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

const (
	rupee      = "₹"
	lakhCrore  = 100000 // crore per lakh crore
	maxDecimal = 3
)

// INR formats v with Indian digit grouping (12,34,567.8), keeping at most
// three fraction digits and dropping trailing zeros.
func INR(v float64) string {
	s := decimal.NewFromFloat(v).Round(maxDecimal).String()

	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	intPart, frac, hasFrac := strings.Cut(s, ".")
	out := groupIndian(intPart)
	if hasFrac {
		out += "." + frac
	}
	if neg {
		out = "-" + out
	}
	return out
}

// Rupee is INR with the currency sign.
func Rupee(v float64) string {
	return rupee + INR(v)
}

// groupIndian inserts a comma before the last three digits and then every two.
func groupIndian(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	head, tail := digits[:len(digits)-3], digits[len(digits)-3:]

	var b strings.Builder
	lead := len(head) % 2
	if lead > 0 {
		b.WriteString(head[:lead])
	}
	for i := lead; i < len(head); i += 2 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(head[i : i+2])
	}
	b.WriteByte(',')
	b.WriteString(tail)
	return b.String()
}

// Fixed formats v with exactly places fraction digits.
func Fixed(v float64, places int32) string {
	return decimal.NewFromFloat(v).StringFixed(places)
}

// Change is the badge text, e.g. "+42.30 (+1.49%)". The sign of both parts
// follows change.
func Change(change, pct float64) string {
	sign := ""
	if change >= 0 {
		sign = "+"
	}
	return sign + Fixed(change, 2) + " (" + sign + Fixed(pct, 2) + "%)"
}

// Percent is a signed two-place percentage, e.g. "-0.68%".
func Percent(pct float64) string {
	sign := ""
	if pct >= 0 {
		sign = "+"
	}
	return sign + Fixed(pct, 2) + "%"
}

// Volume abbreviates a share count, e.g. 12400000 -> "12.4M".
func Volume(n int64) string {
	value, prefix := humanize.ComputeSI(float64(n))
	if prefix == "" {
		return strconv.FormatInt(n, 10)
	}
	if prefix == "k" {
		prefix = "K"
	}
	return decimal.NewFromFloat(value).StringFixed(1) + prefix
}

// MarketCap formats a crore amount, switching to lakh crore from one lakh up:
// 1950000 -> "₹19.5L Cr", 9500 -> "₹9,500 Cr".
func MarketCap(crore float64) string {
	if crore >= lakhCrore {
		lakh := decimal.NewFromFloat(crore).Div(decimal.NewFromInt(lakhCrore))
		return rupee + lakh.StringFixed(1) + "L Cr"
	}
	return rupee + INR(decimal.NewFromFloat(crore).Round(0).InexactFloat64()) + " Cr"
}
