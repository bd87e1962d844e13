package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	cfgpkg "github.com/KaramelBytes/salesdash/internal/config"
	"github.com/KaramelBytes/salesdash/internal/dashboard"
	"github.com/KaramelBytes/salesdash/internal/dataset"
	"github.com/KaramelBytes/salesdash/internal/log"
	"github.com/KaramelBytes/salesdash/internal/render"
)

var (
	dtFrom     int
	dtTo       int
	dtColorBy  string
	dtMarkdown bool
)

var detailCmd = &cobra.Command{
	Use:   "detail",
	Short: "Show sales by region, average price by fuel type and the price/mileage points",
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
		page, err := buildDetail(cmd, c, tbl, dtFrom, dtTo, dtColorBy)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if dtMarkdown {
			r := &render.Report{Source: tbl.Source(), LoadID: tbl.ID(), Stats: tbl.Stats(), Detail: page}
			fmt.Fprintln(out, r.Markdown())
			return nil
		}
		render.WriteDetail(out, page)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(detailCmd)
	detailCmd.Flags().IntVar(&dtFrom, "from", 0, "first year of the range (default: earliest year)")
	detailCmd.Flags().IntVar(&dtTo, "to", 0, "last year of the range (default: latest year)")
	detailCmd.Flags().StringVar(&dtColorBy, "color-by", "", "scatter color: model|transmission|sales_classification|color (default from config)")
	detailCmd.Flags().BoolVar(&dtMarkdown, "markdown", false, "print Markdown instead of tables")
}

// buildDetail resolves the detail inputs from flags, falling back to config.
func buildDetail(cmd *cobra.Command, c *cfgpkg.Global, tbl *dataset.Table, from, to int, colorBy string) (*dashboard.DetailPage, error) {
	p := dashboard.DetailParams{ColorBy: dataset.Field(c.ColorBy)}
	f := cmd.Flags()
	if f.Changed("from") {
		p.YearFrom = &from
	}
	if f.Changed("to") {
		p.YearTo = &to
	}
	if f.Changed("color-by") {
		p.ColorBy = dataset.NormalizeHeader(colorBy)
	}

	page, err := dashboard.Detail(tbl, p)
	if err != nil {
		return nil, err
	}
	if page.YearFrom > page.YearTo {
		warnf("year range %d to %d is empty", page.YearFrom, page.YearTo)
	}
	logger.WithComponent(log.ComponentDashboard).Debug("detail built",
		log.FieldOperation, log.OpRender,
		log.FieldLoadID, tbl.ID(),
		log.FieldRows, page.Rows,
		log.FieldField, string(page.ColorBy),
	)
	return page, nil
}
