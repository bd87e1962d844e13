package analysis

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/KaramelBytes/salesdash/internal/dataset"
)

// Op is a grouped aggregation.
type Op string

const (
	OpSum  Op = "sum"
	OpMean Op = "mean"
)

// ParseOp accepts "sum", "mean" and "avg", case-insensitively.
func ParseOp(s string) (Op, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "sum", "total":
		return OpSum, nil
	case "mean", "avg", "average":
		return OpMean, nil
	default:
		return "", fmt.Errorf("%w: %q (use sum|mean)", ErrUnknownOp, s)
	}
}

// Group is one output row of a grouped aggregate.
type Group struct {
	Key   string
	Value float64
	Count int
}

// GroupAggregate aggregates valueField per distinct value of groupField.
// Each key appears once, in first-seen order. Sums are exact decimal sums,
// so a reordered input yields the same values.
func GroupAggregate(t *dataset.Table, groupField, valueField dataset.Field, op Op) ([]Group, error) {
	if !t.HasField(groupField) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownField, groupField)
	}
	if err := numericField(t, valueField); err != nil {
		return nil, err
	}
	if op != OpSum && op != OpMean {
		return nil, fmt.Errorf("%w: %q", ErrUnknownOp, op)
	}

	accs := make(map[string]*accumulator)
	var order []string
	for i := 0; i < t.Len(); i++ {
		r := t.Row(i)
		k, _ := r.Key(groupField)
		acc, ok := accs[k]
		if !ok {
			acc = &accumulator{}
			accs[k] = acc
			order = append(order, k)
		}
		v, _ := r.Number(valueField)
		acc.add(v)
	}

	out := make([]Group, 0, len(order))
	for _, k := range order {
		acc := accs[k]
		g := Group{Key: k, Count: acc.n}
		if op == OpMean {
			g.Value, _ = acc.mean()
		} else {
			g.Value = acc.total()
		}
		out = append(out, g)
	}
	return out, nil
}

// SortMode orders grouped output.
type SortMode int

const (
	SortNone SortMode = iota
	SortValueDesc
	SortValueAsc
	SortKeyAsc
)

// SortGroups sorts in place. Ties on value fall back to key order, so the
// result is the same for any input order. Keys that are all numbers (years)
// compare numerically.
func SortGroups(groups []Group, mode SortMode) {
	switch mode {
	case SortValueDesc:
		sort.SliceStable(groups, func(i, j int) bool {
			if groups[i].Value == groups[j].Value {
				return keyLess(groups[i].Key, groups[j].Key)
			}
			return groups[i].Value > groups[j].Value
		})
	case SortValueAsc:
		sort.SliceStable(groups, func(i, j int) bool {
			if groups[i].Value == groups[j].Value {
				return keyLess(groups[i].Key, groups[j].Key)
			}
			return groups[i].Value < groups[j].Value
		})
	case SortKeyAsc:
		sort.SliceStable(groups, func(i, j int) bool { return keyLess(groups[i].Key, groups[j].Key) })
	}
}

// keyLess orders numeric keys by value ahead of all other keys, which sort
// lexically.
func keyLess(a, b string) bool {
	fa, errA := strconv.ParseFloat(a, 64)
	fb, errB := strconv.ParseFloat(b, 64)
	switch {
	case errA == nil && errB == nil:
		if fa != fb {
			return fa < fb
		}
		return a < b
	case errA == nil:
		return true
	case errB == nil:
		return false
	}
	return a < b
}
