// Package dashboard assembles the data behind the two dashboard pages from a
// normalized table. It computes; it never draws.
package dashboard

import (
	"errors"
	"fmt"

	"github.com/KaramelBytes/salesdash/internal/analysis"
	"github.com/KaramelBytes/salesdash/internal/dataset"
)

var (
	// ErrNoData means the base table has no rows; no page can be built.
	ErrNoData = errors.New("no data loaded")
	// ErrInvalidColorField means the scatter color encoding is not one of ColorFields.
	ErrInvalidColorField = errors.New("invalid color field")
)

// DefaultClasses is the sales classification selection the overview starts with.
var DefaultClasses = []string{"High", "Low"}

// ColorFields are the fields the price/mileage scatter may be colored by.
var ColorFields = []dataset.Field{
	dataset.Model,
	dataset.Transmission,
	dataset.SalesClassification,
	dataset.Color,
}

// DefaultColorBy is the scatter's default color encoding.
const DefaultColorBy = dataset.SalesClassification

// OverviewParams are the user inputs of the overview page.
type OverviewParams struct {
	// Classes selects sales classifications for the trend. Empty selects nothing.
	Classes    []string
	SampleRows int
	Seed       int64
}

// OverviewPage holds the KPIs, the filtered sales trend and a raw sample.
type OverviewPage struct {
	AvgPrice     analysis.KPI
	TotalSales   analysis.KPI
	AvgMileage   analysis.KPI
	ClassOptions []string
	Classes      []string
	SalesByYear  []analysis.Group
	Sample       *dataset.Table
	TotalRows    int
	ExcludedRows int
	SourceRows   int
}

// Overview builds the overview page.
func Overview(t *dataset.Table, p OverviewParams) (*OverviewPage, error) {
	if t.Len() == 0 {
		return nil, ErrNoData
	}
	page := &OverviewPage{
		Classes:      p.Classes,
		TotalRows:    t.Len(),
		ExcludedRows: t.Stats().Excluded,
		SourceRows:   t.Stats().SourceRows,
	}
	var err error
	if page.AvgPrice, err = analysis.Mean(t, dataset.Price); err != nil {
		return nil, err
	}
	if page.TotalSales, err = analysis.Sum(t, dataset.SalesVolume); err != nil {
		return nil, err
	}
	if page.AvgMileage, err = analysis.Mean(t, dataset.Mileage); err != nil {
		return nil, err
	}
	if page.ClassOptions, err = analysis.Distinct(t, dataset.SalesClassification); err != nil {
		return nil, err
	}

	filtered, err := analysis.Filter(t, dataset.SalesClassification, p.Classes)
	if err != nil {
		return nil, err
	}
	trend, err := analysis.GroupAggregate(filtered, dataset.Year, dataset.SalesVolume, analysis.OpSum)
	if err != nil {
		return nil, err
	}
	analysis.SortGroups(trend, analysis.SortKeyAsc)
	page.SalesByYear = trend

	page.Sample = analysis.Sample(t, p.SampleRows, p.Seed)
	return page, nil
}

// DetailParams are the user inputs of the detailed analysis page.
// Nil year bounds default to the table's minimum and maximum year.
type DetailParams struct {
	YearFrom *int
	YearTo   *int
	ColorBy  dataset.Field
}

// DetailPage holds the year-filtered breakdowns.
type DetailPage struct {
	MinYear, MaxYear int
	YearFrom, YearTo int
	Rows             int
	SalesByRegion    []analysis.Group
	PriceByFuel      []analysis.Group
	ColorBy          dataset.Field
	Scatter          []analysis.Point
}

// Detail builds the detailed analysis page.
func Detail(t *dataset.Table, p DetailParams) (*DetailPage, error) {
	if t.Len() == 0 {
		return nil, ErrNoData
	}
	colorBy := p.ColorBy
	if colorBy == "" {
		colorBy = DefaultColorBy
	}
	if !validColorField(colorBy) {
		return nil, fmt.Errorf("%w: %s (use one of %v)", ErrInvalidColorField, colorBy, ColorFields)
	}

	lo, hi, _, err := analysis.Bounds(t, dataset.Year)
	if err != nil {
		return nil, err
	}
	page := &DetailPage{
		MinYear: int(lo),
		MaxYear: int(hi),
		ColorBy: colorBy,
	}
	page.YearFrom, page.YearTo = page.MinYear, page.MaxYear
	if p.YearFrom != nil {
		page.YearFrom = *p.YearFrom
	}
	if p.YearTo != nil {
		page.YearTo = *p.YearTo
	}

	ranged, err := analysis.FilterRange(t, dataset.Year, float64(page.YearFrom), float64(page.YearTo))
	if err != nil {
		return nil, err
	}
	page.Rows = ranged.Len()

	if page.SalesByRegion, err = analysis.GroupAggregate(ranged, dataset.Region, dataset.SalesVolume, analysis.OpSum); err != nil {
		return nil, err
	}
	analysis.SortGroups(page.SalesByRegion, analysis.SortValueDesc)

	if page.PriceByFuel, err = analysis.GroupAggregate(ranged, dataset.FuelType, dataset.Price, analysis.OpMean); err != nil {
		return nil, err
	}
	analysis.SortGroups(page.PriceByFuel, analysis.SortValueDesc)

	if page.Scatter, err = analysis.Points(ranged, dataset.Mileage, dataset.Price, colorBy); err != nil {
		return nil, err
	}
	return page, nil
}

func validColorField(f dataset.Field) bool {
	for _, c := range ColorFields {
		if c == f {
			return true
		}
	}
	return false
}
