package render

import (
	"errors"
	"io"
	"math"
	"strconv"

	chart "github.com/wcharczuk/go-chart/v2"

	"github.com/KaramelBytes/salesdash/internal/analysis"
	"github.com/KaramelBytes/salesdash/internal/dataset"
)

// ErrNothingToPlot is returned for a chart whose input has no rows.
var ErrNothingToPlot = errors.New("nothing to plot")

const (
	chartWidth  = 1024
	chartHeight = 512
	barWidth    = 60
	barSpacing  = 24
)

var titlePadding = chart.Style{Padding: chart.Box{Top: 48, Left: 16, Right: 16, Bottom: 16}}

// TrendChart draws sales volume per year as a line with point markers.
func TrendChart(w io.Writer, groups []analysis.Group) error {
	if len(groups) == 0 {
		return ErrNothingToPlot
	}
	xs := make([]float64, len(groups))
	ys := make([]float64, len(groups))
	ticks := make([]chart.Tick, len(groups))
	for i, g := range groups {
		x, err := strconv.ParseFloat(g.Key, 64)
		if err != nil {
			x = float64(i)
		}
		xs[i], ys[i] = x, g.Value
		ticks[i] = chart.Tick{Value: x, Label: g.Key}
	}
	col := chart.GetDefaultColor(0)
	ch := chart.Chart{
		Title:      "Total Sales Volume by Year",
		Width:      chartWidth,
		Height:     chartHeight,
		Background: titlePadding,
		XAxis:      chart.XAxis{Name: "Year", Range: span(xs), Ticks: ticks},
		YAxis:      chart.YAxis{Name: "Total Sales Volume", Range: span(ys)},
		Series: []chart.Series{chart.ContinuousSeries{
			Name:    "Sales volume",
			XValues: xs,
			YValues: ys,
			Style:   chart.Style{StrokeWidth: 2, StrokeColor: col, DotWidth: 4, DotColor: col},
		}},
	}
	return ch.Render(chart.PNG, w)
}

// RegionChart draws total sales volume per region.
func RegionChart(w io.Writer, groups []analysis.Group) error {
	return barChart(w, "Sales Volume by Region", "Total Sales Volume", groups)
}

// FuelChart draws average price per fuel type.
func FuelChart(w io.Writer, groups []analysis.Group) error {
	return barChart(w, "Average Price by Fuel Type", "Average Price (USD)", groups)
}

func barChart(w io.Writer, title, yName string, groups []analysis.Group) error {
	if len(groups) == 0 {
		return ErrNothingToPlot
	}
	bars := make([]chart.Value, len(groups))
	lo, hi := 0.0, 0.0
	for i, g := range groups {
		col := chart.GetDefaultColor(i)
		bars[i] = chart.Value{
			Label: g.Key,
			Value: g.Value,
			Style: chart.Style{FillColor: col, StrokeColor: col},
		}
		lo, hi = math.Min(lo, g.Value), math.Max(hi, g.Value)
	}
	if hi-lo == 0 {
		hi = 1
	}
	bc := chart.BarChart{
		Title:      title,
		Width:      max(chartWidth, len(bars)*(barWidth+barSpacing)+200),
		Height:     chartHeight,
		Background: titlePadding,
		BarWidth:   barWidth,
		BarSpacing: barSpacing,
		YAxis:      chart.YAxis{Name: yName, Range: &chart.ContinuousRange{Min: lo, Max: hi * 1.1}},
		Bars:       bars,
	}
	return bc.Render(chart.PNG, w)
}

// ScatterChart draws price against mileage with one colored series per group.
func ScatterChart(w io.Writer, points []analysis.Point, colorBy dataset.Field) error {
	if len(points) == 0 {
		return ErrNothingToPlot
	}
	type series struct{ xs, ys []float64 }
	byGroup := map[string]*series{}
	var order []string
	xs := make([]float64, 0, len(points))
	ys := make([]float64, 0, len(points))
	for _, p := range points {
		s, ok := byGroup[p.Group]
		if !ok {
			s = &series{}
			byGroup[p.Group] = s
			order = append(order, p.Group)
		}
		s.xs = append(s.xs, p.X)
		s.ys = append(s.ys, p.Y)
		xs = append(xs, p.X)
		ys = append(ys, p.Y)
	}

	all := make([]chart.Series, 0, len(order))
	for i, g := range order {
		s := byGroup[g]
		name := g
		if name == "" {
			name = "(blank)"
		}
		all = append(all, chart.ContinuousSeries{
			Name:    name,
			XValues: s.xs,
			YValues: s.ys,
			Style: chart.Style{
				StrokeWidth: chart.Disabled,
				DotWidth:    3,
				DotColor:    chart.GetDefaultColor(i),
			},
		})
	}
	ch := chart.Chart{
		Title:      "Price vs. Mileage by " + string(colorBy),
		Width:      chartWidth,
		Height:     chartHeight,
		Background: titlePadding,
		XAxis:      chart.XAxis{Name: "Mileage (KM)", Range: span(xs)},
		YAxis:      chart.YAxis{Name: "Price (USD)", Range: span(ys)},
		Series:     all,
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}
	return ch.Render(chart.PNG, w)
}

// span returns an axis range covering values. A single distinct value is
// widened so the axis never has zero extent.
func span(values []float64) *chart.ContinuousRange {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range values {
		lo, hi = math.Min(lo, v), math.Max(hi, v)
	}
	pad := (hi - lo) * 0.05
	if pad == 0 {
		pad = math.Max(math.Abs(lo)*0.05, 1)
	}
	return &chart.ContinuousRange{Min: lo - pad, Max: hi + pad}
}
