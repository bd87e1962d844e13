// Package render turns dashboard pages into terminal tables, a Markdown
// report and PNG charts.
package render

import (
	"math"

	"github.com/dustin/go-humanize"

	"github.com/KaramelBytes/salesdash/internal/analysis"
)

// NoData is shown in place of a KPI that has no defined value.
const NoData = "n/a"

// USD formats v as "$1,234.56".
func USD(v float64) string {
	if v < 0 {
		return "-$" + humanize.FormatFloat("#,###.##", -v)
	}
	return "$" + humanize.FormatFloat("#,###.##", v)
}

// Units formats a sales volume as "1,234 units".
func Units(v float64) string {
	return humanize.Comma(int64(math.Round(v))) + " units"
}

// KM formats a mileage as "1,234 KM".
func KM(v float64) string {
	return humanize.Comma(int64(math.Round(v))) + " KM"
}

// KPI formats k with f, or NoData when k is not valid.
func KPI(k analysis.KPI, f func(float64) string) string {
	if !k.Valid {
		return NoData
	}
	return f(k.Value)
}
