package cmd

import (
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/KaramelBytes/salesdash/internal/dataset"
	"github.com/KaramelBytes/salesdash/internal/render"
)

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "List the canonical columns, and profile the dataset when one is configured",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		t := tablewriter.NewWriter(out)
		t.SetHeader([]string{"Column", "Kind", "Required"})
		t.SetAutoFormatHeaders(false)
		for _, f := range dataset.NumericFields() {
			t.Append([]string{string(f), dataset.KindOf(f).String(), "yes"})
		}
		for _, f := range dataset.CategoricalFields() {
			t.Append([]string{string(f), dataset.KindOf(f).String(), "no"})
		}
		t.Render()

		c, err := activeConfig()
		if err != nil {
			return err
		}
		if dataPath == "" && c.DataPath == "" {
			return nil
		}
		tbl, err := loadTable(cmd.Context(), c)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "\nDataset %s (load %s)\n", tbl.Source(), tbl.ID())
		render.WriteSchema(out, tbl)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(schemaCmd)
}
