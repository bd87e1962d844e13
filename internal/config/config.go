package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/KaramelBytes/salesdash/internal/dashboard"
	"github.com/KaramelBytes/salesdash/internal/dataset"
	"github.com/KaramelBytes/salesdash/internal/log"
)

const (
	envPrefix = "SALESDASH"
	dirName   = ".salesdash"
)

// Global configuration structure.
type Global struct {
	DataPath string `mapstructure:"data_path" yaml:"data_path"`
	// Parsing
	Delimiter          string `mapstructure:"delimiter" yaml:"delimiter"`
	DecimalSeparator   string `mapstructure:"decimal_separator" yaml:"decimal_separator"`
	ThousandsSeparator string `mapstructure:"thousands_separator" yaml:"thousands_separator"`
	SheetName          string `mapstructure:"sheet_name" yaml:"sheet_name"`
	SheetIndex         int    `mapstructure:"sheet_index" yaml:"sheet_index"`

	// Pages
	DefaultClasses []string `mapstructure:"default_classes" yaml:"default_classes"`
	SampleRows     int      `mapstructure:"sample_rows" yaml:"sample_rows"`
	ColorBy        string   `mapstructure:"color_by" yaml:"color_by"`

	LogLevel  string `mapstructure:"log_level" yaml:"log_level"`
	OutputDir string `mapstructure:"output_dir" yaml:"output_dir"`
}

// Keys lists every settable configuration key.
var Keys = []string{
	"data_path", "delimiter", "decimal_separator", "thousands_separator",
	"sheet_name", "sheet_index", "default_classes", "sample_rows",
	"color_by", "log_level", "output_dir",
}

// Path returns the config file location: cfgFile if set, otherwise
// ~/.salesdash/config.yaml.
func Path(cfgFile string) (string, error) {
	if cfgFile != "" {
		return cfgFile, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, dirName, "config.yaml"), nil
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.salesdash/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	path, err := Path(cfgFile)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: flags (cfgFile) > env > config file > defaults.
// A .env file in the working directory is read into the environment first;
// variables already set win over it.
func Load(cfgFile string) (*Global, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("data_path", "")
	v.SetDefault("delimiter", "")
	v.SetDefault("decimal_separator", "")
	v.SetDefault("thousands_separator", "")
	v.SetDefault("sheet_name", "")
	v.SetDefault("sheet_index", 1)
	v.SetDefault("default_classes", dashboard.DefaultClasses)
	v.SetDefault("sample_rows", 10)
	v.SetDefault("color_by", string(dashboard.DefaultColorBy))
	v.SetDefault("log_level", "info")
	v.SetDefault("output_dir", ".")

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home dir: %w", err)
		}
		v.AddConfigPath(filepath.Join(home, dirName))
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &c, nil
}

// Validate reports every invalid setting at once.
func (c *Global) Validate() error {
	var errs []error
	for _, kv := range [][2]string{
		{"delimiter", c.Delimiter},
		{"decimal_separator", c.DecimalSeparator},
		{"thousands_separator", c.ThousandsSeparator},
	} {
		if utf8.RuneCountInString(kv[1]) > 1 && kv[1] != `\t` {
			errs = append(errs, fmt.Errorf("%s must be a single character, got %q", kv[0], kv[1]))
		}
	}
	if c.DecimalSeparator != "" && c.DecimalSeparator == c.ThousandsSeparator {
		errs = append(errs, fmt.Errorf("decimal_separator and thousands_separator must differ"))
	}
	if c.SheetIndex < 0 {
		errs = append(errs, fmt.Errorf("sheet_index must be >= 1, got %d", c.SheetIndex))
	}
	if c.SampleRows < 0 {
		errs = append(errs, fmt.Errorf("sample_rows must be >= 0, got %d", c.SampleRows))
	}
	if c.ColorBy != "" && !validColorBy(c.ColorBy) {
		errs = append(errs, fmt.Errorf("color_by must be one of %v, got %q", dashboard.ColorFields, c.ColorBy))
	}
	switch strings.ToLower(c.LogLevel) {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		errs = append(errs, fmt.Errorf("log_level must be debug|info|warn|error, got %q", c.LogLevel))
	}
	return errors.Join(errs...)
}

// LoadOptions converts the parsing settings into dataset options.
func (c *Global) LoadOptions() dataset.Options {
	opt := dataset.DefaultOptions()
	opt.Delimiter = firstRune(c.Delimiter)
	opt.DecimalSeparator = firstRune(c.DecimalSeparator)
	opt.ThousandsSeparator = firstRune(c.ThousandsSeparator)
	opt.SheetName = c.SheetName
	if c.SheetIndex > 0 {
		opt.SheetIndex = c.SheetIndex
	}
	return opt
}

// Level returns the configured log level.
func (c *Global) Level() slog.Level {
	return log.ParseLevel(c.LogLevel)
}

func validColorBy(s string) bool {
	for _, f := range dashboard.ColorFields {
		if string(f) == s {
			return true
		}
	}
	return false
}

func firstRune(s string) rune {
	if s == `\t` {
		return '\t'
	}
	r, _ := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return 0
	}
	return r
}
