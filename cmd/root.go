package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	cfgpkg "github.com/KaramelBytes/salesdash/internal/config"
	"github.com/KaramelBytes/salesdash/internal/dataset"
	"github.com/KaramelBytes/salesdash/internal/log"
	"github.com/KaramelBytes/salesdash/internal/utils"
)

var (
	// Global flags
	cfgFile  string
	debug    bool
	dataPath string
	reload   bool

	// Loaded configuration
	cfg    *cfgpkg.Global
	cfgErr error
	logger = log.Discard()

	// One memoized table per dataset path and parse options for the life of the process.
	cachesMu sync.Mutex
	caches   = map[cacheKey]*dataset.Cache{}
)

var errNoDataset = errors.New("no dataset configured: pass --data <file> or run 'salesdash config set data_path <file>'")

var rootCmd = &cobra.Command{
	Use:   "salesdash",
	Short: "Salesdash: BMW car sales dashboard in your terminal",
	Long: `Salesdash loads a BMW car sales dataset (CSV, TSV or XLSX), cleans it, and
reports the overview KPIs, the sales trend, and the detailed regional, fuel and
price/mileage breakdowns as terminal tables, Markdown and PNG charts.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute is the entry point called by main.main()
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("✗ Error:"), err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(loadConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.salesdash/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&dataPath, "data", "", "dataset file: .csv, .tsv or .xlsx (overrides data_path)")
	rootCmd.PersistentFlags().BoolVar(&reload, "reload", false, "drop the cached table and read the dataset again")
}

func loadConfig() {
	cfg, cfgErr = cfgpkg.Load(cfgFile)
	level := slog.LevelInfo
	if cfgErr != nil {
		// Non-fatal here: commands that need config report it.
		warnf("failed to load config: %v", cfgErr)
	} else {
		level = cfg.Level()
	}
	if debug {
		level = slog.LevelDebug
	}
	lc := log.DefaultConfig()
	lc.Level = level
	lc.Output = rootCmd.ErrOrStderr()
	logger = log.New(lc)
	log.SetDefault(logger)
}

// activeConfig returns the loaded configuration after validating it.
func activeConfig() (*cfgpkg.Global, error) {
	if cfg == nil {
		if cfgErr != nil {
			return nil, cfgErr
		}
		c, err := cfgpkg.Load(cfgFile)
		if err != nil {
			return nil, err
		}
		cfg = c
	}
	if err := cfg.Validate(); err != nil {
		logger.Debug("configuration rejected", log.FieldOperation, log.OpValidate, log.FieldError, err)
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

type cacheKey struct {
	path string
	opt  dataset.Options
}

// cacheFor returns the process-wide cache for path, creating it on first use.
func cacheFor(path string, opt dataset.Options) *dataset.Cache {
	cachesMu.Lock()
	defer cachesMu.Unlock()
	key := cacheKey{path: path, opt: opt}
	c, ok := caches[key]
	if !ok {
		c = dataset.NewCache(dataset.FileLoader(path, opt), logger)
		caches[key] = c
	}
	return c
}

// loadTable resolves the dataset path, reads it through the cache and warns
// about rows or columns the load had to drop.
func loadTable(ctx context.Context, c *cfgpkg.Global) (*dataset.Table, error) {
	path := dataPath
	if path == "" {
		path = c.DataPath
	}
	if path == "" {
		return nil, errNoDataset
	}
	path, err := utils.ExpandHome(path)
	if err != nil {
		return nil, err
	}

	cache := cacheFor(path, c.LoadOptions())
	if reload {
		cache.Clear()
	}
	tbl, err := cache.Get(ctx)
	if err != nil {
		return nil, err
	}

	st := tbl.Stats()
	logger.WithComponent(log.ComponentDataset).With(log.FieldLoadID, tbl.ID()).Debug("dataset ready",
		log.FieldPath, path,
		log.FieldRows, st.Rows,
		log.FieldExcluded, st.Excluded,
	)
	if st.Excluded > 0 {
		warnf("excluded %d of %d rows with missing or invalid numeric values", st.Excluded, st.SourceRows)
	}
	if len(st.MissingColumns) > 0 {
		warnf("dataset has no %v column(s); they read as blank", st.MissingColumns)
	}
	return tbl, nil
}

func warnf(format string, args ...any) {
	fmt.Fprintln(rootCmd.ErrOrStderr(), color.YellowString("⚠ Warning:"), fmt.Sprintf(format, args...))
}

func successf(cmd *cobra.Command, format string, args ...any) {
	fmt.Fprintln(cmd.OutOrStdout(), color.GreenString("✓"), fmt.Sprintf(format, args...))
}
