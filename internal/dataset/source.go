package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Source reads a tabular file into a header row and data rows.
type Source interface {
	CanRead(path string) bool
	Read(path string, opt Options) (header []string, rows [][]string, err error)
}

var registry []Source

// Register adds a source implementation. Later registrations do not shadow earlier ones.
func Register(s Source) {
	registry = append(registry, s)
}

// sourceFor selects a source by file name, falling back to CSV.
func sourceFor(path string) Source {
	for _, s := range registry {
		if s.CanRead(path) {
			return s
		}
	}
	return csvSource{}
}

func init() {
	Register(csvSource{})
	Register(xlsxSource{})
}

type csvSource struct{}

func (csvSource) CanRead(path string) bool {
	name := strings.ToLower(path)
	return strings.HasSuffix(name, ".csv") || strings.HasSuffix(name, ".tsv")
}

func (csvSource) Read(path string, opt Options) ([]string, [][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	delim := opt.Delimiter
	if delim == 0 {
		delim = sniffDelimiter(path)
	}
	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	r.Comma = delim

	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil, errors.New("no header row")
		}
		return nil, nil, fmt.Errorf("read header: %w", err)
	}
	// Excel-exported CSVs often carry a UTF-8 BOM on the first header.
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}
	var rows [][]string
	for {
		rec, err := r.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, nil, fmt.Errorf("read row %d: %w", len(rows)+1, err)
		}
		rows = append(rows, rec)
	}
	return header, rows, nil
}

func sniffDelimiter(path string) rune {
	if strings.HasSuffix(strings.ToLower(path), ".tsv") {
		return '\t'
	}
	return ','
}

type xlsxSource struct{}

func (xlsxSource) CanRead(path string) bool {
	return strings.HasSuffix(strings.ToLower(path), ".xlsx")
}

// Read loads the selected sheet: SheetName when set, else the 1-based SheetIndex.
func (xlsxSource) Read(path string, opt Options) ([]string, [][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil, errors.New("no sheets in workbook")
	}
	sheet := ""
	if opt.SheetName != "" {
		for _, s := range sheets {
			if strings.EqualFold(s, opt.SheetName) {
				sheet = s
				break
			}
		}
		if sheet == "" {
			return nil, nil, fmt.Errorf("sheet %q not found; available: %s", opt.SheetName, strings.Join(sheets, ", "))
		}
	} else {
		idx := opt.SheetIndex
		if idx <= 0 {
			idx = 1
		}
		if idx > len(sheets) {
			return nil, nil, fmt.Errorf("sheet index %d out of range (workbook has %d)", idx, len(sheets))
		}
		sheet = sheets[idx-1]
	}

	all, err := f.GetRows(sheet)
	if err != nil {
		return nil, nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if len(all) == 0 || len(all[0]) == 0 {
		return nil, nil, fmt.Errorf("sheet %q has no header row", sheet)
	}
	return all[0], all[1:], nil
}
