package zval

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseNumeric(t *testing.T) {
	tests := []struct {
		input    string
		expected Value
		ok       bool
	}{
		{"12", Int(12), true},
		{" 12", Int(12), true},
		{"12 ", Int(12), true},
		{"\t\n12", Int(12), true},
		{"-12", Int(-12), true},
		{"+12", Int(12), true},
		{"1e3", Float(1000), true},
		{"1E-2", Float(0.01), true},
		{".5", Float(0.5), true},
		{"5.", Float(5), true},
		{"9223372036854775808", Float(9223372036854775808), true},
		{"", Null(), false},
		{" ", Null(), false},
		{"-", Null(), false},
		{".", Null(), false},
		{"abc", Null(), false},
		{"12abc", Null(), false},
		{"1e", Null(), false},
		{"0x1A", Null(), false},
	}

	for _, test := range tests {
		v, ok := ParseNumeric(test.input)
		assert.Equal(t, test.ok, ok, "numeric %q", test.input)
		assert.Equal(t, test.expected, v, "value of %q", test.input)
		assert.Equal(t, test.ok, IsNumeric(test.input), "IsNumeric(%q)", test.input)
	}
}

func TestParseNumericPrefix(t *testing.T) {
	v, whole := ParseNumericPrefix("12abc")
	assert.Equal(t, Int(12), v)
	assert.False(t, whole)

	v, whole = ParseNumericPrefix("1.5e3xyz")
	assert.Equal(t, Float(1500), v)
	assert.False(t, whole)

	v, whole = ParseNumericPrefix("abc")
	assert.Equal(t, Int(0), v)
	assert.False(t, whole)

	v, whole = ParseNumericPrefix(" 7 ")
	assert.Equal(t, Int(7), v)
	assert.True(t, whole)
}

func TestFormatFloat(t *testing.T) {
	tests := []struct {
		input     float64
		precision int
		expected  string
	}{
		{0.1 + 0.2, 14, "0.3"},
		{0.1 + 0.2, -1, "0.30000000000000004"},
		{0.1, 17, "0.10000000000000001"},
		{100, 14, "100"},
		{1.5, 14, "1.5"},
		{-1.5, 14, "-1.5"},
		{math.Copysign(0, -1), 14, "-0"},
		{0, 14, "0"},
		{1e25, 14, "1.0E+25"},
		{1e15, 14, "1.0E+15"},
		{123456789012345678, 14, "1.2345678901235E+17"},
		{0.0001, 14, "0.0001"},
		{0.00001, 14, "1.0E-5"},
		{1.5e-7, 14, "1.5E-7"},
		{math.NaN(), 14, "NAN"},
		{math.Inf(1), 14, "INF"},
		{math.Inf(-1), -1, "-INF"},
	}

	for _, test := range tests {
		assert.Equal(t, test.expected, FormatFloat(test.input, test.precision), "format %v with precision %d", test.input, test.precision)
	}
}

func TestFloatToInt(t *testing.T) {
	assert.Equal(t, int64(3), floatToInt(3.99))
	assert.Equal(t, int64(-3), floatToInt(-3.99))
	assert.Equal(t, int64(0), floatToInt(math.NaN()))
	assert.Equal(t, int64(0), floatToInt(math.Inf(1)))
	assert.Equal(t, int64(-8446744073709551616), floatToInt(1e19))

	assert.Equal(t, int64(math.MaxInt64), floatToIntCap(1e19))
	assert.Equal(t, int64(math.MinInt64), floatToIntCap(-1e19))
	assert.Equal(t, int64(0), floatToIntCap(math.NaN()))
}

func TestScalarConversions(t *testing.T) {
	assert.Equal(t, int64(1000), String("1e3").ToInt())
	assert.Equal(t, int64(12), String(" 12abc").ToInt())
	assert.Equal(t, int64(math.MaxInt64), String("1e100").ToInt())
	assert.Equal(t, int64(1), Bool(true).ToInt())
	assert.Equal(t, 1.5, String("1.5").ToFloat())

	assert.False(t, String("0").ToBool())
	assert.True(t, String("0.0").ToBool())
	assert.False(t, ArrayValue(NewArray()).ToBool())
	assert.True(t, Float(math.NaN()).ToBool())

	assert.Equal(t, "1", Bool(true).ToString())
	assert.Equal(t, "", Null().ToString())
	assert.Equal(t, "0.1", Float(0.1).ToString())

	assert.Equal(t, Int(12), String("12abc").ToNumber())
	assert.Equal(t, Float(2.5), String("2.5").ToNumber())
}

func TestArrayToStringConversion(t *testing.T) {
	diags := captureDiagnostics(t)

	assert.Equal(t, "Array", ArrayValue(NewArray()).ToString())
	assert.Equal(t, []DiagnosticKind{Conversion}, kinds(*diags))
	assert.Equal(t, "Array to string conversion", (*diags)[0].Message)
}
