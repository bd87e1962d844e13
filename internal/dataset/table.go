package dataset

import "math"

// layout maps canonical fields to storage slots. It is shared by every record
// of a load and never changes after construction.
type layout struct {
	categorical []Field
	catIndex    map[Field]int
}

func newLayout(categorical []Field) *layout {
	l := &layout{categorical: categorical, catIndex: make(map[Field]int, len(categorical))}
	for i, f := range categorical {
		l.catIndex[f] = i
	}
	return l
}

func numericSlot(f Field) (int, bool) {
	for i, n := range numericFields {
		if n == f {
			return i, true
		}
	}
	return 0, false
}

// Record is one row of the normalized table. Every numeric field holds a
// valid number; categorical fields absent from the source read as "".
type Record struct {
	layout *layout
	nums   [numericCount]float64
	cats   []string
}

// Number returns the value of a numeric field.
func (r Record) Number(f Field) (float64, bool) {
	i, ok := numericSlot(f)
	if !ok {
		return 0, false
	}
	return r.nums[i], true
}

// Category returns the value of a categorical field, known or extra.
func (r Record) Category(f Field) (string, bool) {
	if r.layout == nil {
		return "", false
	}
	i, ok := r.layout.catIndex[f]
	if !ok {
		return "", false
	}
	return r.cats[i], true
}

// Key returns any field's value as a string. Integral numbers print without
// a fractional part, so year 2020 keys as "2020".
func (r Record) Key(f Field) (string, bool) {
	if n, ok := r.Number(f); ok {
		return formatNumber(n), true
	}
	return r.Category(f)
}

func (r Record) Year() int            { return int(math.Round(r.nums[0])) }
func (r Record) EngineSize() float64  { return r.nums[1] }
func (r Record) Mileage() float64     { return r.nums[2] }
func (r Record) Price() float64       { return r.nums[3] }
func (r Record) SalesVolume() int     { return int(math.Round(r.nums[4])) }
func (r Record) Model() string        { return r.cat(Model) }
func (r Record) Region() string       { return r.cat(Region) }
func (r Record) Color() string        { return r.cat(Color) }
func (r Record) FuelType() string     { return r.cat(FuelType) }
func (r Record) Transmission() string { return r.cat(Transmission) }
func (r Record) Classification() string {
	return r.cat(SalesClassification)
}

func (r Record) cat(f Field) string {
	v, _ := r.Category(f)
	return v
}

// LoadStats describes what happened while building a table.
type LoadStats struct {
	SourceRows     int
	Rows           int
	Excluded       int
	MissingColumns []Field
	ExtraColumns   []Field
}

// Table is the normalized, immutable dataset. Derived views share records
// with their parent; nothing mutates a table after Load returns it.
type Table struct {
	id     string
	source string
	layout *layout
	rows   []Record
	stats  LoadStats
}

// ID identifies the load that produced this table. Views keep their parent's ID.
func (t *Table) ID() string { return t.id }

// Source is the path the table was loaded from.
func (t *Table) Source() string { return t.source }

// Len returns the number of rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.rows)
}

// Row returns the i-th record.
func (t *Table) Row(i int) Record { return t.rows[i] }

// Rows returns a copy of the record slice.
func (t *Table) Rows() []Record {
	out := make([]Record, len(t.rows))
	copy(out, t.rows)
	return out
}

// Stats returns the load statistics of the originating load.
func (t *Table) Stats() LoadStats { return t.stats }

// Fields lists every addressable field: numeric fields first, then categorical
// fields in layout order.
func (t *Table) Fields() []Field {
	out := NumericFields()
	if t.layout != nil {
		out = append(out, t.layout.categorical...)
	}
	return out
}

// HasField reports whether f can be addressed on this table's records.
func (t *Table) HasField(f Field) bool {
	if _, ok := numericSlot(f); ok {
		return true
	}
	if t.layout == nil {
		return false
	}
	_, ok := t.layout.catIndex[f]
	return ok
}

// Select returns a view holding the rows at the given indices, in that order.
func (t *Table) Select(indices []int) *Table {
	rows := make([]Record, 0, len(indices))
	for _, i := range indices {
		rows = append(rows, t.rows[i])
	}
	return &Table{id: t.id, source: t.source, layout: t.layout, rows: rows, stats: t.stats}
}

// Builder assembles a table from already-typed values. It is used by tests and
// by callers that do not read from a file.
type Builder struct {
	layout *layout
	rows   []Record
}

// NewBuilder starts a table whose categorical fields are the known ones plus extras.
func NewBuilder(extra ...Field) *Builder {
	cats := CategoricalFields()
	seen := map[Field]bool{}
	for _, f := range extra {
		if !IsKnown(f) && !seen[f] {
			seen[f] = true
			cats = append(cats, f)
		}
	}
	return &Builder{layout: newLayout(cats)}
}

// Add appends a row. Numeric fields missing from nums default to 0; unknown
// keys are ignored.
func (b *Builder) Add(nums map[Field]float64, cats map[Field]string) *Builder {
	r := Record{layout: b.layout, cats: make([]string, len(b.layout.categorical))}
	for f, v := range nums {
		if i, ok := numericSlot(f); ok {
			r.nums[i] = v
		}
	}
	for f, v := range cats {
		if i, ok := b.layout.catIndex[f]; ok {
			r.cats[i] = v
		}
	}
	b.rows = append(b.rows, r)
	return b
}

// Table freezes the builder's rows into a table.
func (b *Builder) Table() *Table {
	rows := make([]Record, len(b.rows))
	copy(rows, b.rows)
	return &Table{
		id:     newLoadID(),
		layout: b.layout,
		rows:   rows,
		stats:  LoadStats{SourceRows: len(rows), Rows: len(rows)},
	}
}
