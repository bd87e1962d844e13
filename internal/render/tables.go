package render

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"github.com/KaramelBytes/salesdash/internal/analysis"
	"github.com/KaramelBytes/salesdash/internal/dashboard"
	"github.com/KaramelBytes/salesdash/internal/dataset"
)

func newTable(w io.Writer, header ...string) *tablewriter.Table {
	t := tablewriter.NewWriter(w)
	t.SetHeader(header)
	t.SetAutoFormatHeaders(false)
	t.SetAutoWrapText(false)
	return t
}

// WriteKPIs prints the three overview KPIs.
func WriteKPIs(w io.Writer, p *dashboard.OverviewPage) {
	t := newTable(w, "Metric", "Value")
	t.Append([]string{"Average Selling Price", KPI(p.AvgPrice, USD)})
	t.Append([]string{"Total Sales Volume", KPI(p.TotalSales, Units)})
	t.Append([]string{"Average Mileage", KPI(p.AvgMileage, KM)})
	t.Render()
}

// WriteGroups prints a grouped aggregate as a two-column table.
func WriteGroups(w io.Writer, keyHeader, valueHeader string, groups []analysis.Group, format func(float64) string) {
	t := newTable(w, keyHeader, valueHeader, "Rows")
	t.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_RIGHT})
	for _, g := range groups {
		t.Append([]string{g.Key, format(g.Value), strconv.Itoa(g.Count)})
	}
	t.Render()
}

// WriteRows prints every field of every row of tbl.
func WriteRows(w io.Writer, tbl *dataset.Table) {
	fields := tbl.Fields()
	header := make([]string, len(fields))
	for i, f := range fields {
		header[i] = string(f)
	}
	t := newTable(w, header...)
	for i := 0; i < tbl.Len(); i++ {
		r := tbl.Row(i)
		line := make([]string, len(fields))
		for j, f := range fields {
			line[j], _ = r.Key(f)
		}
		t.Append(line)
	}
	t.Render()
}

// WriteOverview prints the whole overview page.
func WriteOverview(w io.Writer, p *dashboard.OverviewPage) {
	fmt.Fprintln(w, "Key Performance Indicators")
	WriteKPIs(w, p)
	fmt.Fprintf(w, "\nSales Volume Trend Over Time (classes: %s)\n", joinOrNone(p.Classes))
	WriteGroups(w, "Year", "Total Sales Volume", p.SalesByYear, Units)
	fmt.Fprintln(w, "\nRaw Data Sample")
	WriteRows(w, p.Sample)
}

// WriteDetail prints the whole detailed analysis page.
func WriteDetail(w io.Writer, p *dashboard.DetailPage) {
	fmt.Fprintf(w, "Showing data for years %d to %d (%d rows).\n\n", p.YearFrom, p.YearTo, p.Rows)
	fmt.Fprintln(w, "Sales Volume by Region")
	WriteGroups(w, "Region", "Total Sales Volume", p.SalesByRegion, Units)
	fmt.Fprintln(w, "\nAverage Price by Fuel Type")
	WriteGroups(w, "Fuel Type", "Average Price (USD)", p.PriceByFuel, USD)
}

// WriteSchema prints per-field statistics and what the load dropped.
func WriteSchema(w io.Writer, tbl *dataset.Table) {
	t := newTable(w, "Field", "Kind", "Rows", "Min", "Max", "Mean", "Outliers", "Top values")
	for _, s := range analysis.Describe(tbl) {
		if s.Kind.Numeric() {
			t.Append([]string{string(s.Field), s.Kind.String(), strconv.Itoa(s.Count),
				num(s.Min), num(s.Max), num(s.Mean), strconv.Itoa(s.Outliers), ""})
			continue
		}
		t.Append([]string{string(s.Field), s.Kind.String(), strconv.Itoa(s.Count),
			"", "", "", "", topValues(s)})
	}
	t.Render()

	st := tbl.Stats()
	fmt.Fprintf(w, "Source rows: %d, kept: %d, excluded: %d\n", st.SourceRows, st.Rows, st.Excluded)
	if len(st.MissingColumns) > 0 {
		fmt.Fprintf(w, "Missing columns: %v\n", st.MissingColumns)
	}
	if len(st.ExtraColumns) > 0 {
		fmt.Fprintf(w, "Extra columns: %v\n", st.ExtraColumns)
	}
}

func num(v float64) string { return strconv.FormatFloat(v, 'g', 6, 64) }
