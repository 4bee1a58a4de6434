package finance

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatMoney renders d with two decimals and comma thousands separators.
func FormatMoney(d decimal.Decimal) string {
	return FormatFixed(d, Cents)
}

// FormatRate shows at least two and at most four decimals.
func FormatRate(d decimal.Decimal) string {
	places := int32(Cents)
	if exp := -d.Exponent(); exp > places {
		places = min(exp, 4)
	}
	trimmed := FormatFixed(d, places)
	for places > Cents && strings.HasSuffix(trimmed, "0") {
		trimmed = trimmed[:len(trimmed)-1]
		places--
	}
	return trimmed
}

func FormatFixed(d decimal.Decimal, places int32) string {
	s := d.StringFixed(places)

	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	if strings.Trim(s, "0.") == "" {
		sign = ""
	}

	whole, frac, _ := strings.Cut(s, ".")

	var b strings.Builder
	b.WriteString(sign)
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if frac != "" {
		b.WriteByte('.')
		b.WriteString(frac)
	}
	return b.String()
}
