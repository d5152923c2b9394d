package amount

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Grouping selects how integer digits are grouped when formatting.
type Grouping string

const (
	// GroupingIndian groups as 12,34,567 (lakh/crore).
	GroupingIndian Grouping = "indian"
	// GroupingWestern groups as 1,234,567.
	GroupingWestern Grouping = "western"
)

// Valid reports whether g is a known grouping.
func (g Grouping) Valid() bool {
	return g == GroupingIndian || g == GroupingWestern
}

// fractionDigits is the rounding applied to formatted amounts.
const fractionDigits = 3

// maxExponent bounds the exponent accepted by Normalize. Larger exponents
// would expand into arbitrarily long digit strings when formatted.
const maxExponent = 18

// Currency describes how amounts are written in the source exports.
type Currency struct {
	Symbol     string   // stripped on parse, prefixed on format
	Separators string   // thousands separator characters stripped on parse
	Grouping   Grouping // digit grouping used by Format
}

// Rupee is the currency used by GSTR exports.
var Rupee = Currency{
	Symbol:     "₹",
	Separators: ",",
	Grouping:   GroupingIndian,
}

// Normalize converts a formatted amount using the Rupee conventions.
func Normalize(raw string) decimal.Decimal {
	return Rupee.Normalize(raw)
}

// Format renders d using the Rupee conventions.
func Format(d decimal.Decimal) string {
	return Rupee.Format(d)
}

// Normalize converts a locale-formatted amount to a decimal. It never fails:
// empty or unparsable input yields zero. Trailing garbage after a numeric
// prefix is ignored, so "1500abc" is 1500.
func (c Currency) Normalize(raw string) decimal.Decimal {
	if raw == "" {
		return decimal.Zero
	}
	s := raw
	if c.Symbol != "" {
		s = strings.ReplaceAll(s, c.Symbol, "")
	}
	if c.Separators != "" {
		s = strings.Map(func(r rune) rune {
			if strings.ContainsRune(c.Separators, r) {
				return -1
			}
			return r
		}, s)
	}

	num := numericPrefix(strings.TrimSpace(s))
	if num == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(num)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// Format renders d as symbol, sign and grouped digits with at most three
// fraction digits and no trailing zeros, e.g. "₹-1,50,000.5".
func (c Currency) Format(d decimal.Decimal) string {
	d = d.Round(fractionDigits)

	var b strings.Builder
	b.WriteString(c.Symbol)
	if d.IsNegative() {
		b.WriteByte('-')
		d = d.Neg()
	}

	text := d.String()
	intPart, fracPart, hasFrac := strings.Cut(text, ".")
	b.WriteString(group(intPart, c.separator(), c.Grouping))
	if hasFrac {
		b.WriteByte('.')
		b.WriteString(fracPart)
	}
	return b.String()
}

func (c Currency) separator() string {
	for _, r := range c.Separators {
		return string(r)
	}
	return ","
}

func group(digits, sep string, g Grouping) string {
	if len(digits) <= 3 {
		return digits
	}
	head, tail := digits[:len(digits)-3], digits[len(digits)-3:]
	size := 3
	if g == GroupingIndian {
		size = 2
	}

	var parts []string
	for len(head) > size {
		parts = append([]string{head[len(head)-size:]}, parts...)
		head = head[:len(head)-size]
	}
	parts = append([]string{head}, parts...)
	parts = append(parts, tail)
	return strings.Join(parts, sep)
}

// numericPrefix returns the longest leading decimal literal of s
// (sign, digits, fraction, exponent), or "" if there is none or its
// exponent is beyond maxExponent.
func numericPrefix(s string) string {
	n := len(s)
	i := 0
	if i < n && (s[i] == '+' || s[i] == '-') {
		i++
	}

	start := i
	for i < n && isDigit(s[i]) {
		i++
	}
	intDigits := i - start

	fracDigits := 0
	if i < n && s[i] == '.' {
		j := i + 1
		for j < n && isDigit(s[j]) {
			j++
		}
		fracDigits = j - i - 1
		if fracDigits > 0 {
			i = j
		}
	}
	if intDigits == 0 && fracDigits == 0 {
		return ""
	}

	if i < n && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < n && (s[j] == '+' || s[j] == '-') {
			j++
		}
		k := j
		for k < n && isDigit(s[k]) {
			k++
		}
		if k > j {
			exp, err := strconv.Atoi(s[j:k])
			if err != nil || exp > maxExponent {
				return ""
			}
			i = k
		}
	}

	return strings.TrimPrefix(s[:i], "+")
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
