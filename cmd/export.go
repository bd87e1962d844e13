package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/salesdash/internal/log"
	"github.com/KaramelBytes/salesdash/internal/render"
	"github.com/KaramelBytes/salesdash/internal/utils"
)

var (
	exOutputDir string
	exClasses   []string
	exSample    int
	exSeed      int64
	exFrom      int
	exTo        int
	exColorBy   string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write both pages as a Markdown report with PNG charts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := activeConfig()
		if err != nil {
			return err
		}
		tbl, err := loadTable(cmd.Context(), c)
		if err != nil {
			return err
		}
		ov, err := buildOverview(cmd, c, tbl, exClasses, exSample, exSeed)
		if err != nil {
			return err
		}
		dt, err := buildDetail(cmd, c, tbl, exFrom, exTo, exColorBy)
		if err != nil {
			return err
		}

		dir := c.OutputDir
		if cmd.Flags().Changed("output") {
			dir = exOutputDir
		}
		if dir, err = utils.ExpandHome(dir); err != nil {
			return err
		}

		start := time.Now()
		res, err := render.Export(dir, &render.Report{
			Source:   tbl.Source(),
			LoadID:   tbl.ID(),
			Stats:    tbl.Stats(),
			Overview: ov,
			Detail:   dt,
		})
		if err != nil {
			return err
		}
		logger.WithComponent(log.ComponentRender).Info("report exported",
			log.FieldOperation, log.OpExport,
			log.FieldPath, res.Report,
			log.FieldLoadID, tbl.ID(),
			log.FieldDuration, time.Since(start).Milliseconds(),
		)
		for _, name := range res.Skipped {
			warnf("skipped %s chart: no rows to plot", name)
		}
		for _, p := range res.Charts {
			successf(cmd, "Wrote chart %s", p)
		}
		successf(cmd, "Wrote report to %s", res.Report)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&exOutputDir, "output", "o", "", "output directory (default from config: .)")
	exportCmd.Flags().StringSliceVar(&exClasses, "class", nil, "sales classifications for the trend (default from config: High,Low)")
	exportCmd.Flags().IntVar(&exSample, "sample", 0, "raw sample rows (default from config: 10)")
	exportCmd.Flags().Int64Var(&exSeed, "seed", 0, "random seed for the sample (default: time based)")
	exportCmd.Flags().IntVar(&exFrom, "from", 0, "first year of the detail range (default: earliest year)")
	exportCmd.Flags().IntVar(&exTo, "to", 0, "last year of the detail range (default: latest year)")
	exportCmd.Flags().StringVar(&exColorBy, "color-by", "", "scatter color: model|transmission|sales_classification|color")
}
