package dataset

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeHeader(t *testing.T) {
	cases := map[string]Field{
		"Engine Size (L)":      EngineSize,
		"Engine_Size_L":        EngineSize,
		"Mileage (KM)":         Mileage,
		"Price (USD)":          Price,
		"Price_USD":            Price,
		"Sales Volume":         SalesVolume,
		"  Year ":              Year,
		"Fuel_Type":            FuelType,
		"Sales_Classification": SalesClassification,
		"Price/Unit":           "priceunit",
		"(Notes)":              "notes",
	}
	for in, want := range cases {
		assert.Equal(t, want, NormalizeHeader(in), "header %q", in)
	}
}

func TestNormalizeHeaderIdempotent(t *testing.T) {
	for _, h := range []string{
		"Engine Size (L)", "Price/USD", "A  B", "x_(y)/z", "sales_volume",
		"Price (\t)", "Price USD (\u00a0)", "( Year )", "Mileage\u00a0KM",
	} {
		once := NormalizeHeader(h)
		assert.Equal(t, once, NormalizeHeader(string(once)), "header %q", h)
	}
}

func TestNormalizeHeadersRejectsCollision(t *testing.T) {
	_, err := NormalizeHeaders([]string{"Price (USD)", "Year", "price_usd"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrHeaderCollision))
	assert.Contains(t, err.Error(), `"Price (USD)"`)
	assert.Contains(t, err.Error(), `"price_usd"`)
}

func TestNormalizeHeaderWhitespace(t *testing.T) {
	assert.Equal(t, Field("price"), NormalizeHeader("Price (\t)"))
	assert.Equal(t, Field("price_usd"), NormalizeHeader("Price USD (\u00a0)"))
	assert.Equal(t, Mileage, NormalizeHeader("Mileage\u00a0KM"))
}

func TestNormalizeHeadersNamesBlankColumns(t *testing.T) {
	fields, err := NormalizeHeaders([]string{"", "Year", " () "})
	require.NoError(t, err)
	assert.Equal(t, []Field{"column_1", Year, "column_3"}, fields)

	_, err = NormalizeHeaders([]string{"Column 2", ""})
	require.ErrorIs(t, err, ErrHeaderCollision)
}

func TestKinds(t *testing.T) {
	assert.Equal(t, KindInteger, KindOf(Year))
	assert.Equal(t, KindInteger, KindOf(SalesVolume))
	assert.Equal(t, KindDecimal, KindOf(Price))
	assert.Equal(t, KindCategorical, KindOf(Region))
	assert.Equal(t, KindCategorical, KindOf("dealer"))
	assert.True(t, KindOf(Mileage).Numeric())
	assert.False(t, KindOf(Model).Numeric())
	assert.True(t, IsKnown(Transmission))
	assert.False(t, IsKnown("dealer"))
}

func TestNumericFieldsIsACopy(t *testing.T) {
	f := NumericFields()
	f[0] = "mutated"
	assert.Equal(t, Year, NumericFields()[0])
}
