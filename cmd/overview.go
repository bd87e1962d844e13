package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	cfgpkg "github.com/KaramelBytes/salesdash/internal/config"
	"github.com/KaramelBytes/salesdash/internal/dashboard"
	"github.com/KaramelBytes/salesdash/internal/dataset"
	"github.com/KaramelBytes/salesdash/internal/log"
	"github.com/KaramelBytes/salesdash/internal/render"
)

var (
	ovClasses  []string
	ovSample   int
	ovSeed     int64
	ovMarkdown bool
)

var overviewCmd = &cobra.Command{
	Use:   "overview",
	Short: "Show the KPIs, the sales trend by year and a raw data sample",
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
		page, err := buildOverview(cmd, c, tbl, ovClasses, ovSample, ovSeed)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if ovMarkdown {
			r := &render.Report{Source: tbl.Source(), LoadID: tbl.ID(), Stats: tbl.Stats(), Overview: page}
			fmt.Fprintln(out, r.Markdown())
			return nil
		}
		render.WriteOverview(out, page)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(overviewCmd)
	overviewCmd.Flags().StringSliceVar(&ovClasses, "class", nil, "sales classifications for the trend (default from config: High,Low; \"\" selects none)")
	overviewCmd.Flags().IntVar(&ovSample, "sample", 0, "raw sample rows (default from config: 10)")
	overviewCmd.Flags().Int64Var(&ovSeed, "seed", 0, "random seed for the sample (default: time based)")
	overviewCmd.Flags().BoolVar(&ovMarkdown, "markdown", false, "print Markdown instead of tables")
}

// buildOverview resolves the overview inputs from flags, falling back to config.
func buildOverview(cmd *cobra.Command, c *cfgpkg.Global, tbl *dataset.Table, classes []string, sample int, seed int64) (*dashboard.OverviewPage, error) {
	p := dashboard.OverviewParams{Classes: c.DefaultClasses, SampleRows: c.SampleRows, Seed: seed}
	f := cmd.Flags()
	if f.Changed("class") {
		p.Classes = classes
	}
	if f.Changed("sample") {
		p.SampleRows = sample
	}
	if !f.Changed("seed") {
		p.Seed = time.Now().UnixNano()
	}

	page, err := dashboard.Overview(tbl, p)
	if err != nil {
		return nil, err
	}
	for _, cls := range p.Classes {
		if !contains(page.ClassOptions, cls) {
			warnf("sales classification %q does not occur in the dataset (available: %v)", cls, page.ClassOptions)
		}
	}
	logger.WithComponent(log.ComponentDashboard).Debug("overview built",
		log.FieldOperation, log.OpRender,
		log.FieldLoadID, tbl.ID(),
		log.FieldRows, page.TotalRows,
	)
	return page, nil
}

func contains(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}
