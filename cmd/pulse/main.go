// Package main provides the pulse CLI: render, generate and export
// visualizations from the companies backend.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/spektr-org/pulse/client"
	"github.com/spektr-org/pulse/config"
)

// ============================================================================
// PULSE CLI — Backend results → charts, tables, spreadsheets
// ============================================================================

const version = "0.3.0"

var (
	format   string
	outPath  string
	apiURL   string
	timeout  time.Duration
	width    int
	height   int
	logLevel string
	page     int
)

// app is the resolved runtime for one command invocation.
type app struct {
	cfg    config.Config
	logger *log.Logger
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "pulse",
		Short: "Render company analytics visualizations",
		Long: `pulse turns visualization results from the companies backend into
charts, tables and spreadsheets.

Results come from the backend (generate, modify), from a JSON file or
stdin (render), or from a CSV file (render --csv).

Environment:
  PULSE_API_URL        Backend base URL (default http://localhost:8200/api)
  PULSE_HTTP_TIMEOUT   Per-request timeout (default 30s)
  PULSE_LOG_LEVEL      debug, info, warn, error (default info)
  PULSE_CHART_WIDTH    PNG/SVG width in px (default 800)
  PULSE_CHART_HEIGHT   PNG/SVG height in px (default 400)

Formats:
  json      Resolved render spec as JSON (default)
  pretty    Pretty-printed JSON
  text      Terminal preview
  csv       Chart/table data as CSV
  xlsx      Excel workbook with a native chart
  png, svg  Chart image`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&format, "format", "f", "json", "Output format: json, pretty, text, csv, xlsx, png, svg")
	flags.StringVarP(&outPath, "out", "o", "", "Write output to file instead of stdout")
	flags.StringVar(&apiURL, "api-url", "", "Backend base URL (overrides PULSE_API_URL)")
	flags.DurationVar(&timeout, "timeout", 0, "Per-request timeout (overrides PULSE_HTTP_TIMEOUT)")
	flags.IntVar(&width, "width", 0, "Chart width in px (overrides PULSE_CHART_WIDTH)")
	flags.IntVar(&height, "height", 0, "Chart height in px (overrides PULSE_CHART_HEIGHT)")
	flags.StringVar(&logLevel, "log-level", "", "debug, info, warn, error (overrides PULSE_LOG_LEVEL)")
	flags.IntVar(&page, "page", 1, "Table page for text output")

	rootCmd.AddCommand(
		newRenderCmd(),
		newGenerateCmd(),
		newModifyCmd(),
		newCompaniesCmd(),
		newStatsCmd(),
		newVersionCmd(),
	)
	return rootCmd
}

// newApp merges environment configuration with explicitly set flags.
func newApp(cmd *cobra.Command) (*app, error) {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("api-url") {
		cfg.APIURL = apiURL
	}
	if flags.Changed("timeout") {
		if timeout <= 0 {
			return nil, fmt.Errorf("--timeout must be greater than 0")
		}
		cfg.HTTPTimeout = timeout
	}
	if flags.Changed("width") {
		cfg.ChartWidth = width
	}
	if flags.Changed("height") {
		cfg.ChartHeight = height
	}
	if flags.Changed("log-level") {
		level, err := log.ParseLevel(logLevel)
		if err != nil {
			return nil, fmt.Errorf("--log-level: %w", err)
		}
		cfg.LogLevel = level
	}
	if err := config.ValidateChartSize(cfg.ChartWidth, cfg.ChartHeight); err != nil {
		return nil, err
	}
	if !validFormats[format] {
		return nil, fmt.Errorf("invalid format: %s (must be json, pretty, text, csv, xlsx, png, or svg)", format)
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{
		Level:           cfg.LogLevel,
		ReportTimestamp: cfg.LogLevel == log.DebugLevel,
	})
	return &app{cfg: cfg, logger: logger}, nil
}

func (a *app) client() *client.Client {
	return client.New(client.Config{
		BaseURL: a.cfg.APIURL,
		Timeout: a.cfg.HTTPTimeout,
	}, client.WithLogger(a.logger))
}
