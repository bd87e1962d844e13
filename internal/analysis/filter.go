package analysis

import (
	"fmt"

	"github.com/KaramelBytes/salesdash/internal/dataset"
)

// Filter keeps the rows whose value in f is one of allowed, in input order.
// Matching is exact. An empty allowed set selects nothing.
func Filter(t *dataset.Table, f dataset.Field, allowed []string) (*dataset.Table, error) {
	if !t.HasField(f) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownField, f)
	}
	set := make(map[string]struct{}, len(allowed))
	for _, a := range allowed {
		set[a] = struct{}{}
	}
	indices := make([]int, 0, t.Len())
	for i := 0; i < t.Len(); i++ {
		k, _ := t.Row(i).Key(f)
		if _, ok := set[k]; ok {
			indices = append(indices, i)
		}
	}
	return t.Select(indices), nil
}

// FilterRange keeps rows with low <= f <= high. f must be numeric.
func FilterRange(t *dataset.Table, f dataset.Field, low, high float64) (*dataset.Table, error) {
	if err := numericField(t, f); err != nil {
		return nil, err
	}
	indices := make([]int, 0, t.Len())
	for i := 0; i < t.Len(); i++ {
		v, _ := t.Row(i).Number(f)
		if v >= low && v <= high {
			indices = append(indices, i)
		}
	}
	return t.Select(indices), nil
}

// Distinct lists the values of f in first-seen order.
func Distinct(t *dataset.Table, f dataset.Field) ([]string, error) {
	if !t.HasField(f) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownField, f)
	}
	seen := make(map[string]struct{})
	var out []string
	for i := 0; i < t.Len(); i++ {
		k, _ := t.Row(i).Key(f)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	return out, nil
}

// Bounds returns the minimum and maximum of a numeric field; ok is false on an
// empty table.
func Bounds(t *dataset.Table, f dataset.Field) (lo, hi float64, ok bool, err error) {
	if err := numericField(t, f); err != nil {
		return 0, 0, false, err
	}
	for i := 0; i < t.Len(); i++ {
		v, _ := t.Row(i).Number(f)
		if !ok || v < lo {
			lo = v
		}
		if !ok || v > hi {
			hi = v
		}
		ok = true
	}
	return lo, hi, ok, nil
}
