package analysis

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/KaramelBytes/salesdash/internal/dataset"
)

var (
	// ErrUnknownField means the field is not addressable on the table.
	ErrUnknownField = errors.New("unknown field")
	// ErrNotNumeric means a numeric operation was asked of a categorical field.
	ErrNotNumeric = errors.New("field is not numeric")
	// ErrUnknownOp means an aggregation name could not be parsed.
	ErrUnknownOp = errors.New("unknown aggregation")
)

// KPI is a scalar summary of one numeric field.
//
// Valid is false when the statistic has no defined value, which only happens
// for a mean over zero rows. Callers render that as "no data".
type KPI struct {
	Value float64
	Count int
	Valid bool
}

// accumulator sums in decimal so the result does not depend on row order.
type accumulator struct {
	sum decimal.Decimal
	n   int
}

func (a *accumulator) add(x float64) {
	a.sum = a.sum.Add(decimal.NewFromFloat(x))
	a.n++
}

func (a *accumulator) total() float64 {
	f, _ := a.sum.Float64()
	return f
}

func (a *accumulator) mean() (float64, bool) {
	if a.n == 0 {
		return 0, false
	}
	f, _ := a.sum.Div(decimal.NewFromInt(int64(a.n))).Float64()
	return f, true
}

func numericField(t *dataset.Table, f dataset.Field) error {
	if !t.HasField(f) {
		return fmt.Errorf("%w: %s", ErrUnknownField, f)
	}
	if !dataset.KindOf(f).Numeric() {
		return fmt.Errorf("%w: %s", ErrNotNumeric, f)
	}
	return nil
}

func accumulate(t *dataset.Table, f dataset.Field) accumulator {
	var acc accumulator
	for i := 0; i < t.Len(); i++ {
		v, _ := t.Row(i).Number(f)
		acc.add(v)
	}
	return acc
}

// Sum totals a numeric field. The sum over zero rows is a valid 0.
func Sum(t *dataset.Table, f dataset.Field) (KPI, error) {
	if err := numericField(t, f); err != nil {
		return KPI{}, err
	}
	acc := accumulate(t, f)
	return KPI{Value: acc.total(), Count: acc.n, Valid: true}, nil
}

// Mean averages a numeric field. Over zero rows it returns a KPI with Valid
// false and no error.
func Mean(t *dataset.Table, f dataset.Field) (KPI, error) {
	if err := numericField(t, f); err != nil {
		return KPI{}, err
	}
	acc := accumulate(t, f)
	v, ok := acc.mean()
	return KPI{Value: v, Count: acc.n, Valid: ok}, nil
}
