package render

import (
	"fmt"
	"strings"

	"github.com/KaramelBytes/salesdash/internal/analysis"
	"github.com/KaramelBytes/salesdash/internal/dashboard"
	"github.com/KaramelBytes/salesdash/internal/dataset"
)

// Report bundles both pages for export.
type Report struct {
	Source   string
	LoadID   string
	Stats    dataset.LoadStats
	Overview *dashboard.OverviewPage
	Detail   *dashboard.DetailPage
	// Charts maps a section name to the PNG file written for it, relative to the report.
	Charts   map[string]string
}

// Chart section names.
const (
	ChartTrend   = "trend"
	ChartRegion  = "region"
	ChartFuel    = "fuel"
	ChartScatter = "scatter"
)

// Markdown renders the report in compact bracketed sections.
func (r *Report) Markdown() string {
	var b strings.Builder
	b.WriteString("[DATASET SUMMARY]\n")
	if r.Source != "" {
		b.WriteString(fmt.Sprintf("File: %s\n", r.Source))
	}
	if r.LoadID != "" {
		b.WriteString(fmt.Sprintf("Load: %s\n", r.LoadID))
	}
	b.WriteString(fmt.Sprintf("Rows: %d (source %d, excluded %d)\n", r.Stats.Rows, r.Stats.SourceRows, r.Stats.Excluded))
	if len(r.Stats.MissingColumns) > 0 {
		b.WriteString(fmt.Sprintf("Missing columns: %s\n", joinFields(r.Stats.MissingColumns)))
	}
	b.WriteString("\n")

	if p := r.Overview; p != nil {
		b.WriteString("[KEY PERFORMANCE INDICATORS]\n")
		b.WriteString(fmt.Sprintf("- Average Selling Price: %s\n", KPI(p.AvgPrice, USD)))
		b.WriteString(fmt.Sprintf("- Total Sales Volume: %s\n", KPI(p.TotalSales, Units)))
		b.WriteString(fmt.Sprintf("- Average Mileage: %s\n\n", KPI(p.AvgMileage, KM)))

		b.WriteString("[SALES VOLUME TREND]\n")
		b.WriteString(fmt.Sprintf("Classes: %s (available: %s)\n", joinOrNone(p.Classes), joinOrNone(p.ClassOptions)))
		writeGroups(&b, p.SalesByYear, Units)
		r.writeChart(&b, ChartTrend, "Total Sales Volume by Year")
		b.WriteString("\n")

		b.WriteString("[RAW DATA SAMPLE]\n")
		writeSample(&b, p.Sample)
		b.WriteString("\n")
	}

	if p := r.Detail; p != nil {
		b.WriteString("[DETAILED ANALYSIS]\n")
		b.WriteString(fmt.Sprintf("Years: %d to %d (available %d to %d), rows: %d\n\n", p.YearFrom, p.YearTo, p.MinYear, p.MaxYear, p.Rows))

		b.WriteString("[SALES VOLUME BY REGION]\n")
		writeGroups(&b, p.SalesByRegion, Units)
		r.writeChart(&b, ChartRegion, "Sales Volume by Region")
		b.WriteString("\n")

		b.WriteString("[AVERAGE PRICE BY FUEL TYPE]\n")
		writeGroups(&b, p.PriceByFuel, USD)
		r.writeChart(&b, ChartFuel, "Average Price by Fuel Type")
		b.WriteString("\n")

		b.WriteString("[PRICE VS MILEAGE]\n")
		b.WriteString(fmt.Sprintf("Points: %d, colored by %s\n", len(p.Scatter), p.ColorBy))
		r.writeChart(&b, ChartScatter, "Price vs. Mileage")
	}
	return b.String()
}

func (r *Report) writeChart(b *strings.Builder, name, title string) {
	if path, ok := r.Charts[name]; ok {
		b.WriteString(fmt.Sprintf("![%s](%s)\n", title, path))
	}
}

func writeGroups(b *strings.Builder, groups []analysis.Group, format func(float64) string) {
	if len(groups) == 0 {
		b.WriteString("(no rows)\n")
		return
	}
	for _, g := range groups {
		b.WriteString(fmt.Sprintf("- %s: %s (%d rows)\n", safeVal(g.Key), format(g.Value), g.Count))
	}
}

func writeSample(b *strings.Builder, t *dataset.Table) {
	if t.Len() == 0 {
		b.WriteString("(no rows)\n")
		return
	}
	fields := t.Fields()
	head := make([]string, len(fields))
	sep := make([]string, len(fields))
	for i, f := range fields {
		head[i] = string(f)
		sep[i] = "---"
	}
	b.WriteString("| " + strings.Join(head, " | ") + " |\n")
	b.WriteString("| " + strings.Join(sep, " | ") + " |\n")
	for i := 0; i < t.Len(); i++ {
		cells := make([]string, len(fields))
		for j, f := range fields {
			v, _ := t.Row(i).Key(f)
			cells[j] = safeVal(v)
		}
		b.WriteString("| " + strings.Join(cells, " | ") + " |\n")
	}
}

func safeVal(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "|", "/")
	if r := []rune(s); len(r) > 80 {
		return string(r[:77]) + "..."
	}
	return s
}

func joinOrNone(values []string) string {
	if len(values) == 0 {
		return "none"
	}
	return strings.Join(values, ", ")
}

func joinFields(fields []dataset.Field) string {
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = string(f)
	}
	return strings.Join(out, ", ")
}

func topValues(s analysis.ColumnSummary) string {
	parts := make([]string, 0, len(s.TopValues))
	for _, kv := range s.TopValues {
		parts = append(parts, fmt.Sprintf("%s(%d)", safeVal(kv.Value), kv.Count))
	}
	out := strings.Join(parts, ", ")
	if s.Unique > len(s.TopValues) {
		out += fmt.Sprintf("; unique=%d", s.Unique)
	}
	return out
}
