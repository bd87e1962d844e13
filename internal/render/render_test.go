package render

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KaramelBytes/salesdash/internal/analysis"
	"github.com/KaramelBytes/salesdash/internal/dashboard"
	"github.com/KaramelBytes/salesdash/internal/dataset"
)

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

func sales() *dataset.Table {
	b := dataset.NewBuilder()
	add := func(year, vol, price, km float64, region, fuel, cls string) {
		b.Add(map[dataset.Field]float64{
			dataset.Year:        year,
			dataset.SalesVolume: vol,
			dataset.Price:       price,
			dataset.Mileage:     km,
			dataset.EngineSize:  2.5,
		}, map[dataset.Field]string{
			dataset.Model:               "i8",
			dataset.Region:              region,
			dataset.FuelType:            fuel,
			dataset.SalesClassification: cls,
			dataset.Transmission:        "Automatic",
			dataset.Color:               "Blue",
		})
	}
	add(2020, 1200, 65000.5, 12000, "Europe", "Petrol", "High")
	add(2020, 300, 45000, 80000, "Asia", "Diesel", "Low")
	add(2021, 2500, 99000, 5000, "Europe", "Electric", "High")
	return b.Table()
}

func pages(t *testing.T) (*dashboard.OverviewPage, *dashboard.DetailPage) {
	t.Helper()
	ov, err := dashboard.Overview(sales(), dashboard.OverviewParams{Classes: dashboard.DefaultClasses, SampleRows: 2, Seed: 3})
	require.NoError(t, err)
	dt, err := dashboard.Detail(sales(), dashboard.DetailParams{})
	require.NoError(t, err)
	return ov, dt
}

func TestFormatting(t *testing.T) {
	assert.Equal(t, "$1,234.56", USD(1234.56))
	assert.Equal(t, "$0.00", USD(0))
	assert.Equal(t, "$69,666.83", USD(69666.8333))
	assert.Equal(t, "1,234 units", Units(1234))
	assert.Equal(t, "4,000 units", Units(3999.6))
	assert.Equal(t, "1,234 KM", KM(1234.4))
	assert.Equal(t, NoData, KPI(analysis.KPI{}, USD))
	assert.Equal(t, "$5.00", KPI(analysis.KPI{Value: 5, Count: 1, Valid: true}, USD))
}

func TestWriteOverviewTables(t *testing.T) {
	ov, dt := pages(t)
	var buf bytes.Buffer
	WriteOverview(&buf, ov)
	out := buf.String()
	assert.Contains(t, out, "Average Selling Price")
	assert.Contains(t, out, "$69,666.83")
	assert.Contains(t, out, "4,000 units")
	assert.Contains(t, out, "32,333 KM")
	assert.Contains(t, out, "2021")

	buf.Reset()
	WriteDetail(&buf, dt)
	out = buf.String()
	assert.Contains(t, out, "Showing data for years 2020 to 2021")
	assert.Contains(t, out, "3,700 units")
	assert.Contains(t, out, "$99,000.00")
}

func TestWriteSchema(t *testing.T) {
	var buf bytes.Buffer
	WriteSchema(&buf, sales())
	out := buf.String()
	for _, f := range dataset.NumericFields() {
		assert.Contains(t, out, string(f))
	}
	assert.Contains(t, out, "Europe(2)")
	assert.Contains(t, out, "Source rows: 3, kept: 3, excluded: 0")
}

func TestMarkdownSections(t *testing.T) {
	ov, dt := pages(t)
	r := &Report{Source: "bmw.csv", Overview: ov, Detail: dt, Charts: map[string]string{ChartTrend: "trend.png"}}
	md := r.Markdown()
	for _, section := range []string{
		"[DATASET SUMMARY]",
		"[KEY PERFORMANCE INDICATORS]",
		"[SALES VOLUME TREND]",
		"[RAW DATA SAMPLE]",
		"[SALES VOLUME BY REGION]",
		"[AVERAGE PRICE BY FUEL TYPE]",
		"[PRICE VS MILEAGE]",
	} {
		assert.Contains(t, md, section)
	}
	assert.Contains(t, md, "File: bmw.csv")
	assert.Contains(t, md, "- 2020: 1,500 units (2 rows)")
	assert.Contains(t, md, "- Europe: 3,700 units (2 rows)")
	assert.Contains(t, md, "![Total Sales Volume by Year](trend.png)")
	assert.NotContains(t, md, "region.png")
	assert.Contains(t, md, "colored by sales_classification")
}

func TestSafeValTruncatesOnRuneBoundary(t *testing.T) {
	long := strings.Repeat("é", 100)
	got := safeVal(long)
	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, strings.Repeat("é", 77)+"...", got)
	assert.Equal(t, strings.Repeat("é", 80), safeVal(strings.Repeat("é", 80)))
	assert.Equal(t, "a/b c", safeVal("a|b\nc"))
}

func TestMarkdownEmptySelection(t *testing.T) {
	ov, err := dashboard.Overview(sales(), dashboard.OverviewParams{})
	require.NoError(t, err)
	md := (&Report{Overview: ov}).Markdown()
	assert.Contains(t, md, "Classes: none")
	assert.Contains(t, md, "(no rows)")
	assert.NotContains(t, md, "[DETAILED ANALYSIS]")
}

func TestChartsRenderPNG(t *testing.T) {
	ov, dt := pages(t)
	draws := map[string]func(*bytes.Buffer) error{
		"trend":   func(b *bytes.Buffer) error { return TrendChart(b, ov.SalesByYear) },
		"region":  func(b *bytes.Buffer) error { return RegionChart(b, dt.SalesByRegion) },
		"fuel":    func(b *bytes.Buffer) error { return FuelChart(b, dt.PriceByFuel) },
		"scatter": func(b *bytes.Buffer) error { return ScatterChart(b, dt.Scatter, dt.ColorBy) },
	}
	for name, draw := range draws {
		var buf bytes.Buffer
		require.NoError(t, draw(&buf), name)
		assert.True(t, bytes.HasPrefix(buf.Bytes(), pngMagic), name)
	}
}

func TestChartsSinglePoint(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, TrendChart(&buf, []analysis.Group{{Key: "2020", Value: 10, Count: 1}}))
	buf.Reset()
	require.NoError(t, RegionChart(&buf, []analysis.Group{{Key: "Asia", Value: 0, Count: 1}}))
	buf.Reset()
	require.NoError(t, ScatterChart(&buf, []analysis.Point{{X: 100, Y: 100, Group: "High"}}, dataset.SalesClassification))
}

func TestChartsEmpty(t *testing.T) {
	var buf bytes.Buffer
	assert.ErrorIs(t, TrendChart(&buf, nil), ErrNothingToPlot)
	assert.ErrorIs(t, FuelChart(&buf, nil), ErrNothingToPlot)
	assert.ErrorIs(t, ScatterChart(&buf, nil, dataset.Color), ErrNothingToPlot)
}

func TestExport(t *testing.T) {
	ov, dt := pages(t)
	dir := filepath.Join(t.TempDir(), "out")
	res, err := Export(dir, &Report{Source: "bmw.csv", Overview: ov, Detail: dt})
	require.NoError(t, err)
	assert.Len(t, res.Charts, 4)
	assert.Empty(t, res.Skipped)
	for _, p := range res.Charts {
		b, err := os.ReadFile(p)
		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(b, pngMagic), p)
	}
	md, err := os.ReadFile(res.Report)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(md), "![Price vs. Mileage](scatter.png)"))
}

func TestExportSkipsEmptyCharts(t *testing.T) {
	ov, err := dashboard.Overview(sales(), dashboard.OverviewParams{})
	require.NoError(t, err)
	res, err := Export(t.TempDir(), &Report{Overview: ov})
	require.NoError(t, err)
	assert.Empty(t, res.Charts)
	assert.Equal(t, []string{ChartTrend}, res.Skipped)
	_, err = os.Stat(res.Report)
	assert.NoError(t, err)
}
