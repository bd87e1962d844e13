package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	cfgpkg "github.com/KaramelBytes/salesdash/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set Salesdash configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if cfg == nil {
			fmt.Fprintln(out, "No config loaded")
			return nil
		}
		fmt.Fprintf(out, "data_path: %s\n", cfg.DataPath)
		if cfg.Delimiter != "" {
			fmt.Fprintf(out, "delimiter: %q\n", cfg.Delimiter)
		}
		if cfg.DecimalSeparator != "" {
			fmt.Fprintf(out, "decimal_separator: %q\n", cfg.DecimalSeparator)
		}
		if cfg.ThousandsSeparator != "" {
			fmt.Fprintf(out, "thousands_separator: %q\n", cfg.ThousandsSeparator)
		}
		if cfg.SheetName != "" {
			fmt.Fprintf(out, "sheet_name: %s\n", cfg.SheetName)
		}
		fmt.Fprintf(out, "sheet_index: %d\n", cfg.SheetIndex)
		fmt.Fprintf(out, "default_classes: %s\n", strings.Join(cfg.DefaultClasses, ","))
		fmt.Fprintf(out, "sample_rows: %d\n", cfg.SampleRows)
		fmt.Fprintf(out, "color_by: %s\n", cfg.ColorBy)
		fmt.Fprintf(out, "log_level: %s\n", cfg.LogLevel)
		fmt.Fprintf(out, "output_dir: %s\n", cfg.OutputDir)
		if err := cfg.Validate(); err != nil {
			warnf("%v", err)
		}
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		if cfg == nil {
			c, err := cfgpkg.Load(cfgFile)
			if err != nil {
				return err
			}
			cfg = c
		}
		next := *cfg
		switch key {
		case "data_path":
			next.DataPath = val
		case "delimiter":
			next.Delimiter = val
		case "decimal_separator":
			next.DecimalSeparator = val
		case "thousands_separator":
			next.ThousandsSeparator = val
		case "sheet_name":
			next.SheetName = val
		case "sheet_index":
			i, err := strconv.Atoi(val)
			if err != nil {
				return fmt.Errorf("invalid int for sheet_index: %w", err)
			}
			next.SheetIndex = i
		case "default_classes":
			next.DefaultClasses = splitList(val)
		case "sample_rows":
			i, err := strconv.Atoi(val)
			if err != nil {
				return fmt.Errorf("invalid int for sample_rows: %w", err)
			}
			next.SampleRows = i
		case "color_by":
			next.ColorBy = val
		case "log_level":
			next.LogLevel = strings.ToLower(val)
		case "output_dir":
			next.OutputDir = val
		default:
			return fmt.Errorf("unknown key: %s (use one of %s)", key, strings.Join(cfgpkg.Keys, ", "))
		}
		if err := next.Validate(); err != nil {
			return err
		}
		if err := cfgpkg.Save(&next, cfgFile); err != nil {
			return err
		}
		cfg = &next
		successf(cmd, "Saved config")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}

func splitList(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
