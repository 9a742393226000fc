package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/spektr-org/pulse/client"
	"github.com/spektr-org/pulse/engine"
	"github.com/spektr-org/pulse/helpers"
	"github.com/spektr-org/pulse/preview"
	"github.com/spektr-org/pulse/stats"
)

// ============================================================================
// RENDER — Local JSON or CSV input
// ============================================================================

func newRenderCmd() *cobra.Command {
	var (
		fromCSV  bool
		vizType  string
		title    string
		xField   string
		yField   string
		styleArg string
	)

	cmd := &cobra.Command{
		Use:   "render [result.json | data.csv | -]",
		Short: "Render a visualization result from a file or stdin",
		Example: `  pulse render result.json --format text
  cat result.json | pulse render --format png --out chart.png
  pulse render --csv companies.csv --type bar --title "ARR by company" --format xlsx --out arr.xlsx`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}

			data, err := readInput(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}

			var result engine.VisualizationResult
			if fromCSV {
				cfg := &engine.ChartConfig{XField: xField, YField: yField, ChartStyle: styleArg}
				result, err = helpers.ResultFromCSV(data, vizType, title, cfg)
				if err != nil {
					return fmt.Errorf("failed to parse CSV: %w", err)
				}
				a.logger.Info("pulse: parsed CSV", "rows", len(result.Rows))
			} else if err := json.Unmarshal(data, &result); err != nil {
				return fmt.Errorf("failed to parse result JSON: %w", err)
			}

			return a.writeResult(cmd, result)
		},
	}

	cmd.Flags().BoolVar(&fromCSV, "csv", false, "Treat input as CSV rows instead of a result JSON")
	cmd.Flags().StringVar(&vizType, "type", "table", "Visualization type for CSV input: pie, bar, line, scatter, table")
	cmd.Flags().StringVar(&title, "title", "", "Title for CSV input")
	cmd.Flags().StringVar(&xField, "x-field", "", "Label column for CSV chart input (default: detected)")
	cmd.Flags().StringVar(&yField, "y-field", "", "Value column for CSV chart input (default: detected)")
	cmd.Flags().StringVar(&styleArg, "style", "", "Color or theme name for CSV input")
	return cmd
}

func readInput(stdin io.Reader, args []string) ([]byte, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return data, nil
}

// ============================================================================
// GENERATE / MODIFY — Backend round trips
// ============================================================================

func newGenerateCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "generate <prompt>",
		Short:   "Ask the backend for a visualization",
		Example: `  pulse generate "companies by industry as a pie chart" --format text`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}

			result, err := a.client().Generate(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			return a.writeResult(cmd, *result)
		},
	}
}

func newModifyCmd() *cobra.Command {
	var fromPath string

	cmd := &cobra.Command{
		Use:   "modify <prompt>",
		Short: "Ask the backend to restyle an existing visualization",
		Example: `  pulse generate "funding by industry" --format pretty --out viz.json
  pulse modify --from viz.json "make it a bar chart in pastel colors" --format png --out viz.png`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}

			data, err := readInput(cmd.InOrStdin(), []string{fromPath})
			if err != nil {
				return err
			}
			var existing engine.VisualizationResult
			if err := json.Unmarshal(data, &existing); err != nil {
				return fmt.Errorf("failed to parse existing visualization: %w", err)
			}

			result, err := a.client().Modify(cmd.Context(), strings.Join(args, " "), existing)
			if err != nil {
				return err
			}
			return a.writeResult(cmd, *result)
		},
	}

	cmd.Flags().StringVar(&fromPath, "from", "-", "Existing visualization result JSON (- for stdin)")
	return cmd
}

// ============================================================================
// COMPANIES / STATS — Dashboard views
// ============================================================================

func newCompaniesCmd() *cobra.Command {
	var (
		opts client.ListOptions
		id   int
	)

	cmd := &cobra.Command{
		Use:   "companies",
		Short: "List companies from the backend",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}

			var companies []client.Company
			if id > 0 {
				company, err := a.client().GetCompany(cmd.Context(), id)
				if err != nil {
					return err
				}
				companies = []client.Company{*company}
			} else {
				companies, err = a.client().ListCompanies(cmd.Context(), opts)
				if err != nil {
					return err
				}
			}
			a.logger.Info("pulse: fetched companies", "count", len(companies))

			switch format {
			case formatText:
				return a.writeText(cmd, preview.Companies(companies, page))
			case formatJSON, formatPretty:
				return a.writeJSON(cmd, companies)
			default:
				return a.writeResult(cmd, companiesResult(companies))
			}
		},
	}

	cmd.Flags().IntVar(&id, "id", 0, "Fetch a single company by id")
	cmd.Flags().IntVar(&opts.Skip, "skip", 0, "Number of companies to skip")
	cmd.Flags().IntVar(&opts.Limit, "limit", 100, "Maximum number of companies")
	cmd.Flags().StringVar(&opts.Industry, "industry", "", "Only companies in this industry")
	return cmd
}

func newStatsCmd() *cobra.Command {
	var (
		opts        client.ListOptions
		measure     string
		aggregation string
		industries  []string
	)

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Summarize companies and break them down by industry",
		Example: `  pulse stats --format text
  pulse stats --measure total_funding_usd --agg sum --industries fintech,saas --format png --out funding.png`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}

			companies, err := a.client().ListCompanies(cmd.Context(), opts)
			if err != nil {
				return err
			}

			summary := stats.Summarize(companies)
			breakdown := stats.IndustryBreakdown(companies, "Companies by Industry")
			if measure != "" || len(industries) > 0 {
				if measure == "" {
					aggregation = "count"
				}
				title := engine.HumanizeKey(aggregation+"_"+measure) + " by Industry"
				if aggregation == "count" {
					title = "Companies by Industry"
				}
				breakdown, err = stats.IndustryTotals(companies, measure, aggregation, title, industries...)
				if err != nil {
					return err
				}
			}
			a.logger.Debug("pulse: summarized", "companies", summary.TotalCompanies, "industries", summary.UniqueIndustries)

			switch format {
			case formatText:
				spec := engine.Render(breakdown, engine.WithLogger(a.logger))
				return a.writeText(cmd, preview.Summary(summary)+"\n\n"+preview.Render(spec))
			case formatJSON, formatPretty:
				return a.writeJSON(cmd, statsOutput{
					Summary:   summary,
					Breakdown: engine.Render(breakdown, engine.WithLogger(a.logger)),
				})
			default:
				return a.writeResult(cmd, breakdown)
			}
		},
	}

	cmd.Flags().IntVar(&opts.Limit, "limit", 1000, "Maximum number of companies to summarize")
	cmd.Flags().StringVar(&opts.Industry, "industry", "", "Only companies in this industry")
	cmd.Flags().StringVar(&measure, "measure", "", "Aggregate this measure per industry instead of counting: total_funding_usd, arr_usd, valuation_usd, employee_count, g2_rating")
	cmd.Flags().StringVar(&aggregation, "agg", "sum", "Aggregation for --measure: sum, avg, max, min, count")
	cmd.Flags().StringSliceVar(&industries, "industries", nil, "Only break down these industries (comma-separated)")
	return cmd
}

type statsOutput struct {
	Summary   stats.Summary `json:"summary"`
	Breakdown engine.Spec   `json:"breakdown"`
}

// companiesResult lays the listing out as a table result so it exports like
// any backend result.
func companiesResult(companies []client.Company) engine.VisualizationResult {
	rows := make([]engine.Record, 0, len(companies))
	for _, c := range companies {
		var employees any
		if c.EmployeeCount != nil {
			employees = *c.EmployeeCount
		}
		rows = append(rows, engine.NewRecord(
			engine.Field{Key: "company_name", Value: c.CompanyName},
			engine.Field{Key: "industry", Value: c.Industry},
			engine.Field{Key: "founded_year", Value: c.FoundedYear},
			engine.Field{Key: "headquarters", Value: c.Headquarters},
			engine.Field{Key: "total_funding_usd", Value: c.TotalFundingUSD},
			engine.Field{Key: "arr_usd", Value: c.ARRUSD},
			engine.Field{Key: "valuation_usd", Value: c.ValuationUSD},
			engine.Field{Key: "employee_count", Value: employees},
			engine.Field{Key: "g2_rating", Value: c.G2Rating},
		))
	}
	return engine.VisualizationResult{
		Success:           true,
		VisualizationType: string(engine.KindTable),
		Title:             "Companies",
		Rows:              rows,
	}
}

// ============================================================================
// VERSION
// ============================================================================

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version and exit",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "pulse %s\n", version)
		},
	}
}
