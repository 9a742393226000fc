package stats

import (
	"fmt"
	"math"
	"slices"

	"github.com/spektr-org/pulse/client"
	"github.com/spektr-org/pulse/engine"
)

// ============================================================================
// SUMMARY — Dashboard statistic cards
// ============================================================================

// ModernEraYear is the founding-year threshold of the "since 2000" card.
const ModernEraYear = 2000

// unknownIndustry labels companies with no industry in breakdowns.
const unknownIndustry = "Unknown"

// Summary holds the headline numbers shown above the company listing.
type Summary struct {
	TotalCompanies   int     `json:"totalCompanies"`
	UniqueIndustries int     `json:"uniqueIndustries"`
	AvgG2Rating      float64 `json:"avgG2Rating"`
	FoundedSince2000 int     `json:"foundedSince2000"`
	TotalFunding     float64 `json:"totalFunding"`
	TotalValuation   float64 `json:"totalValuation"`
	TotalARR         float64 `json:"totalArr"`
	TopValuation     float64 `json:"topValuation"`
	OldestFounded    int     `json:"oldestFounded"` // 0 when no year is known
}

// Summarize computes the statistic cards for a company set.
func Summarize(companies []client.Company) Summary {
	view := CompanyView(companies)

	return Summary{
		TotalCompanies:   view.Len(),
		UniqueIndustries: len(UniqueValues(view, DimIndustry)),
		AvgG2Rating:      RoundTo1(AvgMeasure(view, MeasureG2Rating)),
		FoundedSince2000: FilterAtLeast(view, MeasureFoundedYear, ModernEraYear).Len(),
		TotalFunding:     SumMeasure(view, MeasureFunding),
		TotalValuation:   SumMeasure(view, MeasureValuation),
		TotalARR:         SumMeasure(view, MeasureARR),
		TopValuation:     MaxMeasure(view, MeasureValuation),
		OldestFounded:    int(MinMeasure(FilterAtLeast(view, MeasureFoundedYear, 1), MeasureFoundedYear)),
	}
}

// IndustryBreakdown builds a pie result counting companies per industry,
// largest first, ties by name. The result renders like any backend result.
func IndustryBreakdown(companies []client.Company, title string) engine.VisualizationResult {
	groups := industryGroups(CompanyView(companies))
	SortGroups(groups, "value_desc")

	rows := make([]engine.Record, 0, len(groups))
	for _, g := range groups {
		rows = append(rows, engine.NewRecord(
			engine.Field{Key: "industry", Value: g.Key},
			engine.Field{Key: "company_count", Value: g.Count},
		))
	}

	return engine.VisualizationResult{
		Success:           true,
		VisualizationType: string(engine.KindPie),
		Title:             title,
		Rows:              rows,
		ChartConfig: &engine.ChartConfig{
			XField:         "industry",
			YField:         "company_count",
			LegendPosition: "bottom",
		},
	}
}

// Aggregations accepted by IndustryTotals.
var aggregations = []string{"sum", "avg", "max", "min", "count"}

// IndustryTotals builds a bar result aggregating one measure per industry,
// largest first. When industries are given only those are kept
// (case-insensitive). The value column is named "<aggregation>_<measure>",
// or "company_count" for count.
func IndustryTotals(companies []client.Company, measure, aggregation, title string, industries ...string) (engine.VisualizationResult, error) {
	if !slices.Contains(aggregations, aggregation) {
		return engine.VisualizationResult{}, fmt.Errorf("stats: unknown aggregation %q", aggregation)
	}
	view := CompanyView(companies)
	valueKey := "company_count"
	if aggregation != "count" {
		if !slices.Contains(view.MeasureKeys(), measure) {
			return engine.VisualizationResult{}, fmt.Errorf("stats: unknown measure %q", measure)
		}
		valueKey = aggregation + "_" + measure
	}

	groups := industryGroups(FilterDimension(view, DimIndustry, industries...))
	Aggregate(groups, measure, aggregation)
	SortGroups(groups, "value_desc")

	rows := make([]engine.Record, 0, len(groups))
	for _, g := range groups {
		rows = append(rows, engine.NewRecord(
			engine.Field{Key: "industry", Value: g.Key},
			engine.Field{Key: valueKey, Value: g.Value},
		))
	}

	return engine.VisualizationResult{
		Success:           true,
		VisualizationType: string(engine.KindBar),
		Title:             title,
		Rows:              rows,
		ChartConfig: &engine.ChartConfig{
			XField: "industry",
			YField: valueKey,
		},
	}, nil
}

func industryGroups(view RecordView) []Group {
	groups := GroupBy(view, DimIndustry)
	for i := range groups {
		if groups[i].Key == "" {
			groups[i].Key = unknownIndustry
		}
	}
	return groups
}

// RoundTo1 rounds to one decimal place.
func RoundTo1(v float64) float64 {
	return math.Round(v*10) / 10
}
