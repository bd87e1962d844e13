package render

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/KaramelBytes/salesdash/internal/utils"
)

// ReportFile is the name of the Markdown file Export writes.
const ReportFile = "report.md"

// ExportResult lists what Export wrote and which charts it skipped.
type ExportResult struct {
	Report  string
	Charts  []string
	Skipped []string
}

// Export writes every chart of r as a PNG into dir, then the Markdown report
// linking them. Charts with no rows are skipped, not failed.
func Export(dir string, r *Report) (*ExportResult, error) {
	if err := utils.EnsureDir(dir); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	res := &ExportResult{}
	r.Charts = map[string]string{}

	type job struct {
		name string
		draw func(io.Writer) error
	}
	var jobs []job
	if p := r.Overview; p != nil {
		jobs = append(jobs, job{ChartTrend, func(w io.Writer) error { return TrendChart(w, p.SalesByYear) }})
	}
	if p := r.Detail; p != nil {
		jobs = append(jobs,
			job{ChartRegion, func(w io.Writer) error { return RegionChart(w, p.SalesByRegion) }},
			job{ChartFuel, func(w io.Writer) error { return FuelChart(w, p.PriceByFuel) }},
			job{ChartScatter, func(w io.Writer) error { return ScatterChart(w, p.Scatter, p.ColorBy) }},
		)
	}

	for _, j := range jobs {
		var buf bytes.Buffer
		if err := j.draw(&buf); err != nil {
			if errors.Is(err, ErrNothingToPlot) {
				res.Skipped = append(res.Skipped, j.name)
				continue
			}
			return nil, fmt.Errorf("render %s chart: %w", j.name, err)
		}
		file := j.name + ".png"
		path := filepath.Join(dir, file)
		if err := utils.SafeWriteFile(path, buf.Bytes()); err != nil {
			return nil, err
		}
		r.Charts[j.name] = file
		res.Charts = append(res.Charts, path)
	}

	res.Report = filepath.Join(dir, ReportFile)
	if err := utils.SafeWriteFile(res.Report, []byte(r.Markdown())); err != nil {
		return nil, err
	}
	return res, nil
}
