package dataset

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// Field is a canonical column identifier: the normalized form of a source header.
type Field string

// Kind describes how a field's values are typed in the table.
type Kind int

const (
	KindCategorical Kind = iota
	KindInteger
	KindDecimal
)

func (k Kind) String() string {
	switch k {
	case KindInteger:
		return "integer"
	case KindDecimal:
		return "decimal"
	default:
		return "categorical"
	}
}

// Numeric reports whether values of this kind are coerced to numbers.
func (k Kind) Numeric() bool { return k == KindInteger || k == KindDecimal }

// Known fields of the sales dataset.
const (
	Year        Field = "year"
	EngineSize  Field = "engine_size_l"
	Mileage     Field = "mileage_km"
	Price       Field = "price_usd"
	SalesVolume Field = "sales_volume"

	Model               Field = "model"
	Region              Field = "region"
	Color               Field = "color"
	FuelType            Field = "fuel_type"
	Transmission        Field = "transmission"
	SalesClassification Field = "sales_classification"
)

var (
	// ErrDataUnavailable means the source could not be located, opened or parsed.
	// Nothing downstream is valid without a base table.
	ErrDataUnavailable = errors.New("dataset unavailable")
	// ErrMissingColumn means an expected numeric column is absent after normalization.
	ErrMissingColumn = errors.New("missing expected column")
	// ErrHeaderCollision means two source headers normalize to the same identifier.
	ErrHeaderCollision = errors.New("header collision")
)

const numericCount = 5

var numericFields = [numericCount]Field{Year, EngineSize, Mileage, Price, SalesVolume}

var categoricalFields = []Field{Model, Region, Color, FuelType, Transmission, SalesClassification}

var kinds = map[Field]Kind{
	Year:        KindInteger,
	EngineSize:  KindDecimal,
	Mileage:     KindDecimal,
	Price:       KindDecimal,
	SalesVolume: KindInteger,
}

// NumericFields returns the fields every loaded row must carry a valid number for.
func NumericFields() []Field {
	out := make([]Field, numericCount)
	copy(out, numericFields[:])
	return out
}

// CategoricalFields returns the known categorical fields. Sources may carry more.
func CategoricalFields() []Field {
	out := make([]Field, len(categoricalFields))
	copy(out, categoricalFields)
	return out
}

// KindOf returns the kind of a field. Anything outside the numeric set is categorical.
func KindOf(f Field) Kind {
	if k, ok := kinds[f]; ok {
		return k
	}
	return KindCategorical
}

// IsKnown reports whether f is one of the schema's enumerated fields.
func IsKnown(f Field) bool {
	if _, ok := kinds[f]; ok {
		return true
	}
	for _, c := range categoricalFields {
		if c == f {
			return true
		}
	}
	return false
}

var headerStripper = strings.NewReplacer("(", "", ")", "", "/", "")

// NormalizeHeader maps a source header to its canonical identifier:
// lowercased, parentheses and slashes removed, trimmed, whitespace to underscores.
// "Engine Size (L)" becomes "engine_size_l". Applying it twice is a no-op.
func NormalizeHeader(h string) Field {
	s := strings.TrimSpace(headerStripper.Replace(strings.ToLower(h)))
	return Field(strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return '_'
		}
		return r
	}, s))
}

// NormalizeHeaders canonicalizes a header row. A blank header, as left by a
// trailing delimiter or an unnamed index column, becomes "column_<n>" with n
// its 1-based position. Two distinct headers collapsing onto one identifier
// is rejected.
func NormalizeHeaders(headers []string) ([]Field, error) {
	out := make([]Field, len(headers))
	seen := make(map[Field]int, len(headers))
	for i, h := range headers {
		f := NormalizeHeader(h)
		if f == "" {
			f = Field(fmt.Sprintf("column_%d", i+1))
		}
		if j, ok := seen[f]; ok {
			return nil, fmt.Errorf("%w: %q and %q both normalize to %q", ErrHeaderCollision, headers[j], h, f)
		}
		seen[f] = i
		out[i] = f
	}
	return out, nil
}
