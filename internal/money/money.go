// Package money provides whole-dirham currency arithmetic and display
// formatting. Amounts are int64 AED with no minor unit; all rounding is
// round-half-away-from-zero, and the same mode is used everywhere so
// schedule generation and aggregation can never disagree by one dirham.
package money

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Currency is the single currency the system operates in.
const Currency = "AED"

var hundred = decimal.NewFromInt(100)

// Round rounds a decimal value to the nearest whole dirham,
// half away from zero.
func Round(d decimal.Decimal) int64 {
	return d.Round(0).IntPart()
}

// Percent returns pct percent of total, rounded to a whole dirham.
// The multiplication is exact decimal arithmetic; only the final
// result is rounded.
func Percent(total int64, pct float64) int64 {
	return Round(decimal.NewFromInt(total).Mul(decimal.NewFromFloat(pct)).Div(hundred))
}

// Format renders an amount as a display string with the currency code
// and thousands separators, e.g. "AED 1,047,000".
func Format(v int64) string {
	return Currency + " " + group(v)
}

// FormatPtr formats a nullable amount, treating nil as zero.
func FormatPtr(v *int64) string {
	if v == nil {
		return Format(0)
	}
	return Format(*v)
}

func group(v int64) string {
	neg := v < 0
	if neg {
		v = -v
	}
	s := strconv.FormatInt(v, 10)

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
		if len(s) > lead {
			b.WriteByte(',')
		}
	}
	for i := lead; i < len(s); i += 3 {
		b.WriteString(s[i : i+3])
		if i+3 < len(s) {
			b.WriteByte(',')
		}
	}
	return b.String()
}
