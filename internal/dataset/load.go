package dataset

import (
	"fmt"
	"path/filepath"

	"github.com/google/uuid"
)

// Options controls how a source is read and coerced.
type Options struct {
	// Delimiter for CSV. If 0, '\t' for .tsv files and ',' otherwise.
	Delimiter rune
	// DecimalSeparator and ThousandsSeparator enable locale-formatted numbers.
	// When both are 0 numbers must be plain literals such as "1234.5".
	DecimalSeparator   rune
	ThousandsSeparator rune
	// XLSX sheet selection: SheetName wins, else 1-based SheetIndex.
	SheetName  string
	SheetIndex int
}

// DefaultOptions returns strict parsing with the first sheet.
func DefaultOptions() Options {
	return Options{SheetIndex: 1}
}

func newLoadID() string { return uuid.NewString() }

// Load reads the source at path into a normalized table.
//
// Headers are canonicalized, the expected numeric fields are coerced, and any
// row with an unparseable numeric value is dropped. A table with zero rows is
// a valid result. Failing to read the source wraps ErrDataUnavailable along
// with the underlying error; a header row that cannot serve the schema returns
// ErrHeaderCollision or ErrMissingColumn.
func Load(path string, opt Options) (*Table, error) {
	header, raw, err := sourceFor(path).Read(path, opt)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrDataUnavailable, filepath.Base(path), err)
	}
	return build(path, header, raw, opt)
}

func build(path string, header []string, raw [][]string, opt Options) (*Table, error) {
	fields, err := NormalizeHeaders(header)
	if err != nil {
		return nil, err
	}
	colOf := make(map[Field]int, len(fields))
	for i, f := range fields {
		colOf[f] = i
	}

	var missing []Field
	for _, f := range numericFields {
		if _, ok := colOf[f]; !ok {
			missing = append(missing, f)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %v", ErrMissingColumn, missing)
	}

	stats := LoadStats{SourceRows: len(raw)}
	cats := CategoricalFields()
	for _, f := range cats {
		if _, ok := colOf[f]; !ok {
			stats.MissingColumns = append(stats.MissingColumns, f)
		}
	}
	for _, f := range fields {
		if !IsKnown(f) {
			cats = append(cats, f)
			stats.ExtraColumns = append(stats.ExtraColumns, f)
		}
	}
	lay := newLayout(cats)

	numCols := make([]int, numericCount)
	for i, f := range numericFields {
		numCols[i] = colOf[f]
	}
	catCols := make([]int, len(cats))
	for i, f := range cats {
		if c, ok := colOf[f]; ok {
			catCols[i] = c
		} else {
			catCols[i] = -1
		}
	}

	rows := make([]Record, 0, len(raw))
	for _, rec := range raw {
		r := Record{layout: lay, cats: make([]string, len(cats))}
		valid := true
		for i, c := range numCols {
			v, ok := coerce(cell(rec, c), kinds[numericFields[i]], opt)
			if !ok {
				valid = false
				break
			}
			r.nums[i] = v
		}
		if !valid {
			stats.Excluded++
			continue
		}
		for i, c := range catCols {
			if c >= 0 {
				r.cats[i] = cell(rec, c)
			}
		}
		rows = append(rows, r)
	}
	stats.Rows = len(rows)

	return &Table{
		id:     newLoadID(),
		source: path,
		layout: lay,
		rows:   rows,
		stats:  stats,
	}, nil
}

// cell pads short rows with empty strings.
func cell(rec []string, i int) string {
	if i < 0 || i >= len(rec) {
		return ""
	}
	return rec[i]
}
