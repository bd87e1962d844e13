package analysis

import (
	"math"
	"sort"

	"github.com/KaramelBytes/salesdash/internal/dataset"
)

// ColumnSummary captures per-field statistics of a table.
type ColumnSummary struct {
	Field dataset.Field
	Kind  dataset.Kind
	Count int
	// Numeric stats
	Min, Max, Mean, Std float64
	// Outliers (robust Z via MAD)
	Outliers int
	// Categorical
	Unique    int
	TopValues []CategoryCount
}

type CategoryCount struct {
	Value string
	Count int
}

const outlierThreshold = 3.5

// Describe summarizes every field of t: numeric fields get min/max/mean/std and
// a robust outlier count, categorical fields get their most frequent values.
func Describe(t *dataset.Table) []ColumnSummary {
	fields := t.Fields()
	out := make([]ColumnSummary, 0, len(fields))
	for _, f := range fields {
		kind := dataset.KindOf(f)
		s := ColumnSummary{Field: f, Kind: kind, Count: t.Len()}
		if kind.Numeric() {
			describeNumeric(t, f, &s)
		} else {
			describeCategorical(t, f, &s)
		}
		out = append(out, s)
	}
	return out
}

func describeNumeric(t *dataset.Table, f dataset.Field, s *ColumnSummary) {
	if t.Len() == 0 {
		return
	}
	// Welford
	var n int
	var mean, m2 float64
	s.Min, s.Max = math.Inf(1), math.Inf(-1)
	vals := make([]float64, 0, t.Len())
	for i := 0; i < t.Len(); i++ {
		x, _ := t.Row(i).Number(f)
		vals = append(vals, x)
		n++
		if x < s.Min {
			s.Min = x
		}
		if x > s.Max {
			s.Max = x
		}
		delta := x - mean
		mean += delta / float64(n)
		m2 += delta * (x - mean)
	}
	s.Mean = mean
	if n > 1 {
		s.Std = math.Sqrt(m2 / float64(n-1))
	}
	if len(vals) >= 8 {
		median, mad := medianMAD(vals)
		if mad > 0 {
			for _, v := range vals {
				if math.Abs(0.6745*(v-median)/mad) > outlierThreshold {
					s.Outliers++
				}
			}
		}
	}
}

func describeCategorical(t *dataset.Table, f dataset.Field, s *ColumnSummary) {
	counts := map[string]int{}
	for i := 0; i < t.Len(); i++ {
		v, _ := t.Row(i).Category(f)
		counts[v]++
	}
	tops := make([]CategoryCount, 0, len(counts))
	for k, v := range counts {
		tops = append(tops, CategoryCount{Value: k, Count: v})
	}
	sort.Slice(tops, func(i, j int) bool {
		if tops[i].Count == tops[j].Count {
			return tops[i].Value < tops[j].Value
		}
		return tops[i].Count > tops[j].Count
	})
	if len(tops) > 5 {
		tops = tops[:5]
	}
	s.Unique = len(counts)
	s.TopValues = tops
}

// medianMAD computes median and MAD (median absolute deviation) of values.
func medianMAD(vals []float64) (median, mad float64) {
	if len(vals) == 0 {
		return 0, 0
	}
	cp := make([]float64, len(vals))
	copy(cp, vals)
	sort.Float64s(cp)
	median = quantile(cp, 0.5)
	dev := make([]float64, len(cp))
	for i, v := range cp {
		dev[i] = math.Abs(v - median)
	}
	sort.Float64s(dev)
	mad = quantile(dev, 0.5)
	return
}

func quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[len(sorted)-1]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	w := pos - float64(lo)
	return sorted[lo]*(1-w) + sorted[hi]*w
}
