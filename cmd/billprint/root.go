package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/billprint/billprint/internal/config"
	"github.com/billprint/billprint/internal/logger"
	"github.com/billprint/billprint/pkg/api"
)

// app is the state shared by subcommands once flags and config are resolved
type app struct {
	cfgFile string
	cfg     *config.Config
	log     *logger.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "billprint",
		Short: "Paginate IPD billing statements and tall images into letterhead PDFs",
		Long: `billprint renders hospital IPD billing statements (YAML or JSON) and tall
images into PDFs. The source is sliced into fixed-size pages and a letterhead
is drawn beneath the content on every page.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(a.cfgFile, cmd.Flags())
			if err != nil {
				return err
			}
			a.cfg = cfg

			level := cfg.LogLevel
			if cfg.Debug {
				level = "debug"
			}
			a.log = logger.NewWithOptions(level, cfg.LogFormat, cmd.ErrOrStderr())
			return nil
		},
	}

	d := config.DefaultConfig()
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&a.cfgFile, "config", "", "config file (default: ./billprint.yaml or ~/.billprint/billprint.yaml)")
	pf.String("page-size", d.PageSize, "page size: A3, A4, A5, Letter or Legal")
	pf.Bool("landscape", d.Landscape, "landscape pages")
	pf.Float64("margin-top", d.Margins.Top, "top margin in points, reserved for the letterhead")
	pf.Float64("margin-bottom", d.Margins.Bottom, "bottom margin in points")
	pf.Float64("margin-side", d.Margins.Side, "left and right margin in points")
	pf.String("letterhead", d.Letterhead, "letterhead image path or URL drawn beneath every page")
	pf.Int("scale", d.Scale, "statement capture density")
	pf.String("locale", d.Locale, "locale for amount grouping")
	pf.String("currency", d.Currency, "currency symbol")
	pf.StringSlice("resource-path", d.ResourcePaths, "directories searched for resources")
	pf.String("log-level", d.LogLevel, "log level: debug, info, warn or error")
	pf.String("log-format", d.LogFormat, "log format: text or json")
	pf.Bool("debug", d.Debug, "debug logging and placement outlines")

	rootCmd.AddCommand(
		newStatementCmd(a),
		newImageCmd(a),
		newPlanCmd(a),
		newInspectCmd(),
		newInitConfigCmd(),
		newVersionCmd(),
	)
	return rootCmd
}

// generator builds a generator from the resolved configuration
func (a *app) generator(extra ...api.Option) (*api.Generator, error) {
	opts, err := a.cfg.Options()
	if err != nil {
		return nil, err
	}
	opts = append(opts, api.WithLogger(a.log))
	opts = append(opts, extra...)
	return api.New(opts...), nil
}

// defaultOutput replaces the input's extension with .pdf
func defaultOutput(input string) string {
	if strings.Contains(input, "://") {
		input = filepath.Base(input)
	}
	ext := filepath.Ext(input)
	return input[:len(input)-len(ext)] + ".pdf"
}

func printResult(cmd *cobra.Command, output string, pages int) {
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%d pages)\n", output, pages)
}
