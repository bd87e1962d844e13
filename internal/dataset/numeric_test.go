package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseNumericStrict(t *testing.T) {
	opt := DefaultOptions()
	ok := map[string]float64{
		"12":      12,
		" 3.5 ":   3.5,
		"1e3":     1000,
		"-0.25":   -0.25,
		"98000.0": 98000,
	}
	for in, want := range ok {
		got, valid := parseNumeric(in, opt)
		assert.True(t, valid, "input %q", in)
		assert.Equal(t, want, got, "input %q", in)
	}
	for _, in := range []string{"", "N/A", "abc", "1,000", "NaN", "Inf", "-inf", "12kg"} {
		_, valid := parseNumeric(in, opt)
		assert.False(t, valid, "input %q should be missing", in)
	}
}

func TestParseNumericLocale(t *testing.T) {
	opt := Options{DecimalSeparator: ',', ThousandsSeparator: '.'}
	got, ok := parseNumeric("1.234,5", opt)
	assert.True(t, ok)
	assert.Equal(t, 1234.5, got)

	opt = Options{ThousandsSeparator: ','}
	got, ok = parseNumeric("98,500", opt)
	assert.True(t, ok)
	assert.Equal(t, 98500.0, got)

	_, ok = parseNumeric("1.5", Options{DecimalSeparator: ','})
	assert.False(t, ok)
}

func TestCoerceIntegerKind(t *testing.T) {
	opt := DefaultOptions()
	v, ok := coerce("2020", KindInteger, opt)
	assert.True(t, ok)
	assert.Equal(t, 2020.0, v)
	v, ok = coerce("2020.0", KindInteger, opt)
	assert.True(t, ok)
	assert.Equal(t, 2020.0, v)
	_, ok = coerce("2020.5", KindInteger, opt)
	assert.False(t, ok)
	v, ok = coerce("2020.5", KindDecimal, opt)
	assert.True(t, ok)
	assert.Equal(t, 2020.5, v)
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "2020", formatNumber(2020))
	assert.Equal(t, "-3", formatNumber(-3))
	assert.Equal(t, "2.5", formatNumber(2.5))
}
