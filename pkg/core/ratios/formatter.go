package ratios

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FormatValue renders a nullable ratio value for display.
// A nil value always renders as "-" regardless of the ratio name.
//
// Known names format per their Definition. Names outside the library fall
// back to ordered naming-convention rules (first match wins):
// percent-like > ratio/coverage > multiples > free cash flow > plain decimal.
func FormatValue(value *float64, ratioName string) string {
	if value == nil {
		return "-"
	}
	hint := FormatDecimal
	if def, ok := definitions[ratioName]; ok {
		hint = def.FormatHint
	} else {
		hint = hintFromName(ratioName)
	}

	v := *value
	switch hint {
	case FormatPercent:
		return fmt.Sprintf("%.1f%%", v*100)
	case FormatMultiple:
		return fmt.Sprintf("%.1fx", v)
	case FormatCurrency:
		return formatUSD(v)
	default:
		return fmt.Sprintf("%.2f", v)
	}
}

// hintFromName applies the legacy naming-convention rules in order.
func hintFromName(name string) FormatHint {
	n := strings.ToLower(name)
	switch {
	case containsAny(n, "growth", "margin", "return", "yield"):
		return FormatPercent
	case containsAny(n, "ratio", "coverage"):
		return FormatDecimal
	case containsAny(n, "enterprisevalue", "ev/", "p/e", "p/s", "p/b", "priceto"):
		return FormatMultiple
	case strings.Contains(n, "freecashflow"):
		return FormatCurrency
	default:
		return FormatDecimal
	}
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// formatUSD renders whole dollars with en-US thousands grouping, no cents.
func formatUSD(v float64) string {
	neg := v < 0
	whole := strconv.FormatFloat(math.Abs(math.Round(v)), 'f', 0, 64)

	var b strings.Builder
	lead := len(whole) % 3
	if lead > 0 {
		b.WriteString(whole[:lead])
	}
	for i := lead; i < len(whole); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(whole[i : i+3])
	}

	if neg {
		return "-$" + b.String()
	}
	return "$" + b.String()
}
