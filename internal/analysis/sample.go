package analysis

import (
	"fmt"
	"math/rand"

	"github.com/KaramelBytes/salesdash/internal/dataset"
)

// Sample returns up to n rows picked at random. The same seed picks the same rows.
func Sample(t *dataset.Table, n int, seed int64) *dataset.Table {
	if n <= 0 {
		return t.Select(nil)
	}
	perm := rand.New(rand.NewSource(seed)).Perm(t.Len())
	if n < len(perm) {
		perm = perm[:n]
	}
	return t.Select(perm)
}

// Point is one mark of a scatter plot.
type Point struct {
	X, Y  float64
	Group string
	Model string
}

// Points projects two numeric fields plus a grouping field for a scatter plot.
func Points(t *dataset.Table, x, y, groupBy dataset.Field) ([]Point, error) {
	if err := numericField(t, x); err != nil {
		return nil, err
	}
	if err := numericField(t, y); err != nil {
		return nil, err
	}
	if !t.HasField(groupBy) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownField, groupBy)
	}
	out := make([]Point, 0, t.Len())
	for i := 0; i < t.Len(); i++ {
		r := t.Row(i)
		xv, _ := r.Number(x)
		yv, _ := r.Number(y)
		g, _ := r.Key(groupBy)
		out = append(out, Point{X: xv, Y: yv, Group: g, Model: r.Model()})
	}
	return out, nil
}
