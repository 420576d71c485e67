package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/billprint/billprint/pkg/api"
)

// Margins are page margins in points
type Margins struct {
	Top    float64 `mapstructure:"top" yaml:"top"`
	Bottom float64 `mapstructure:"bottom" yaml:"bottom"`
	Side   float64 `mapstructure:"side" yaml:"side"`
}

// Config is the billprint configuration file and environment
type Config struct {
	PageSize       string   `mapstructure:"page_size" yaml:"page_size"`
	Landscape      bool     `mapstructure:"landscape" yaml:"landscape"`
	Margins        Margins  `mapstructure:"margins" yaml:"margins"`
	Letterhead     string   `mapstructure:"letterhead" yaml:"letterhead"`
	Scale          int      `mapstructure:"scale" yaml:"scale"`
	StatementWidth int      `mapstructure:"statement_width" yaml:"statement_width"`
	SVGWidth       int      `mapstructure:"svg_width" yaml:"svg_width"`
	Locale         string   `mapstructure:"locale" yaml:"locale"`
	Currency       string   `mapstructure:"currency" yaml:"currency"`
	ResourcePaths  []string `mapstructure:"resource_paths" yaml:"resource_paths"`
	Author         string   `mapstructure:"author" yaml:"author"`
	LogLevel       string   `mapstructure:"log_level" yaml:"log_level"`
	LogFormat      string   `mapstructure:"log_format" yaml:"log_format"`
	Debug          bool     `mapstructure:"debug" yaml:"debug"`
}

// DefaultConfig returns the built-in configuration
func DefaultConfig() *Config {
	d := api.DefaultOptions()
	return &Config{
		PageSize: "A4",
		Margins: Margins{
			Top:    d.MarginTop,
			Bottom: d.MarginBottom,
			Side:   d.MarginSide,
		},
		Scale:          d.Scale,
		StatementWidth: d.StatementWidth,
		SVGWidth:       d.SVGWidth,
		Locale:         d.Locale,
		Currency:       d.CurrencySymbol,
		ResourcePaths:  []string{},
		LogLevel:       "info",
		LogFormat:      "text",
	}
}

// flagKeys maps CLI flag names to config keys
var flagKeys = map[string]string{
	"page-size":     "page_size",
	"landscape":     "landscape",
	"margin-top":    "margins.top",
	"margin-bottom": "margins.bottom",
	"margin-side":   "margins.side",
	"letterhead":    "letterhead",
	"scale":         "scale",
	"locale":        "locale",
	"currency":      "currency",
	"resource-path": "resource_paths",
	"log-level":     "log_level",
	"log-format":    "log_format",
	"debug":         "debug",
}

// Load reads configuration from defaults, an optional config file,
// BILLPRINT_* environment variables and any changed flags, in rising
// precedence. An empty cfgFile searches ./billprint.yaml and
// $HOME/.billprint/billprint.yaml.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("page_size", defaults.PageSize)
	v.SetDefault("landscape", defaults.Landscape)
	v.SetDefault("margins.top", defaults.Margins.Top)
	v.SetDefault("margins.bottom", defaults.Margins.Bottom)
	v.SetDefault("margins.side", defaults.Margins.Side)
	v.SetDefault("letterhead", defaults.Letterhead)
	v.SetDefault("scale", defaults.Scale)
	v.SetDefault("statement_width", defaults.StatementWidth)
	v.SetDefault("svg_width", defaults.SVGWidth)
	v.SetDefault("locale", defaults.Locale)
	v.SetDefault("currency", defaults.Currency)
	v.SetDefault("resource_paths", defaults.ResourcePaths)
	v.SetDefault("author", defaults.Author)
	v.SetDefault("log_level", defaults.LogLevel)
	v.SetDefault("log_format", defaults.LogFormat)
	v.SetDefault("debug", defaults.Debug)

	// Environment variables with BILLPRINT_ prefix, e.g. BILLPRINT_MARGINS_TOP
	v.SetEnvPrefix("BILLPRINT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("billprint")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.billprint")
	}

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("failed to bind flag %s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}

// Options converts the configuration into generator options
func (c *Config) Options() ([]api.Option, error) {
	width, height, ok := api.PageSizeByName(c.PageSize)
	if !ok {
		return nil, fmt.Errorf("unknown page size %q", c.PageSize)
	}

	orientation := api.PageOrientationPortrait
	if c.Landscape {
		orientation = api.PageOrientationLandscape
	}

	opts := []api.Option{
		api.WithPageSize(width, height),
		api.WithPageOrientation(orientation),
		api.WithMargins(c.Margins.Top, c.Margins.Bottom, c.Margins.Side),
		api.WithLetterhead(c.Letterhead),
		api.WithScale(c.Scale),
		api.WithStatementWidth(c.StatementWidth),
		api.WithSVGWidth(c.SVGWidth),
		api.WithCurrency(c.Locale, c.Currency),
		api.WithAuthor(c.Author),
		api.WithDebug(c.Debug),
	}
	for _, p := range c.ResourcePaths {
		opts = append(opts, api.WithResourcePath(p))
	}
	return opts, nil
}

// WriteDefault writes the default configuration to the specified path
func WriteDefault(path string) error {
	data, err := yaml.Marshal(DefaultConfig())
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	header := []byte(`# billprint configuration
# Every key can be overridden with a BILLPRINT_ environment variable,
# e.g. BILLPRINT_MARGINS_TOP=140 or BILLPRINT_LETTERHEAD=./letterhead.png

`)
	return os.WriteFile(path, append(header, data...), 0o644)
}
