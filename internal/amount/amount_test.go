package amount

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"₹10,000", "10000"},
		{"", "0"},
		{"abc", "0"},
		{"8500", "8500"},
		{"₹ 1,23,456.78", "123456.78"},
		{"-₹250", "-250"},
		{"₹-250", "-250"},
		{"  42.5  ", "42.5"},
		{"1500abc", "1500"},
		{".5", "0.5"},
		{"5.", "5"},
		{"1e3", "1000"},
		{"1e", "1"},
		{"1E+2", "100"},
		{"1e18", "1000000000000000000"},
		{"1e-18", "0.000000000000000001"},
		{"1e19", "0"},
		{"1e-19", "0"},
		{"1e200000", "0"},
		{"1e-200000", "0"},
		{"1e99999999999999999999999", "0"},
		{"+12", "12"},
		{"-", "0"},
		{"₹", "0"},
		{"N/A", "0"},
		{"Not Found", "0"},
	}
	for _, tt := range tests {
		got := Normalize(tt.input)
		assert.True(t, got.Equal(dec(tt.want)), "Normalize(%q) = %s, want %s", tt.input, got, tt.want)
	}
}

func TestFormat_HugeExponentIsZero(t *testing.T) {
	assert.Equal(t, "₹0", Format(Normalize("1e999999999")))
	assert.Equal(t, "₹0", Format(Normalize("₹9.9E+1000000")))
}

func TestNormalize_MissingField(t *testing.T) {
	// A field absent from a record reads as "" and must normalize to zero.
	var missing map[string]string
	assert.True(t, Normalize(missing["2B Amount"]).IsZero())
}

func TestNormalize_CustomCurrency(t *testing.T) {
	usd := Currency{Symbol: "$", Separators: ", ", Grouping: GroupingWestern}
	assert.True(t, usd.Normalize("$1,234 567.25").Equal(dec("1234567.25")))
	// The rupee symbol is not stripped by a dollar currency.
	assert.True(t, usd.Normalize("₹100").IsZero())
}

func TestNormalize_DecimalExact(t *testing.T) {
	a := Normalize("0.1")
	b := Normalize("0.2")
	assert.True(t, a.Add(b).Equal(dec("0.3")))
}

func TestFormat(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"0", "₹0"},
		{"100", "₹100"},
		{"1500", "₹1,500"},
		{"-1500", "₹-1,500"},
		{"150000", "₹1,50,000"},
		{"12345678", "₹1,23,45,678"},
		{"250.50", "₹250.5"},
		{"1.23456", "₹1.235"},
		{"-0.25", "₹-0.25"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Format(dec(tt.input)), "Format(%s)", tt.input)
	}
}

func TestFormat_Western(t *testing.T) {
	c := Currency{Symbol: "$", Separators: ",", Grouping: GroupingWestern}
	assert.Equal(t, "$1,234,567", c.Format(dec("1234567")))
	assert.Equal(t, "$-999", c.Format(dec("-999")))
	assert.Equal(t, "$1,000.125", c.Format(dec("1000.125")))
}

func TestFormat_RoundTrip(t *testing.T) {
	for _, s := range []string{"1500", "-1500", "150000.75", "0.001"} {
		d := dec(s)
		assert.True(t, Normalize(Format(d)).Equal(d), "round trip %s", s)
	}
}

func TestGroupingValid(t *testing.T) {
	assert.True(t, GroupingIndian.Valid())
	assert.True(t, GroupingWestern.Valid())
	assert.False(t, Grouping("metric").Valid())
}
