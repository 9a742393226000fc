package stats

import (
	"strconv"

	"github.com/spektr-org/pulse/client"
)

// Dimension and measure keys of the company view.
const (
	DimIndustry     = "industry"
	DimHeadquarters = "headquarters"
	DimFoundedYear  = "founded_year"

	MeasureFunding     = "total_funding_usd"
	MeasureARR         = "arr_usd"
	MeasureValuation   = "valuation_usd"
	MeasureEmployees   = "employee_count"
	MeasureG2Rating    = "g2_rating"
	MeasureFoundedYear = "founded_year"
)

// companyAdapter is registered once and bound per call.
var companyAdapter = NewDomainAdapter[client.Company]().
	Dimension(DimIndustry, func(c client.Company) string { return c.Industry }).
	Dimension(DimHeadquarters, func(c client.Company) string { return c.Headquarters }).
	Dimension(DimFoundedYear, func(c client.Company) string { return strconv.Itoa(c.FoundedYear) }).
	Measure(MeasureFunding, func(c client.Company) float64 { return float64(c.TotalFundingUSD) }).
	Measure(MeasureARR, func(c client.Company) float64 { return float64(c.ARRUSD) }).
	Measure(MeasureValuation, func(c client.Company) float64 { return float64(c.ValuationUSD) }).
	Measure(MeasureEmployees, func(c client.Company) float64 { return float64(c.Employees()) }).
	Measure(MeasureG2Rating, func(c client.Company) float64 { return c.G2Rating }).
	Measure(MeasureFoundedYear, func(c client.Company) float64 { return float64(c.FoundedYear) })

// CompanyView exposes companies as a RecordView.
func CompanyView(companies []client.Company) RecordView {
	return companyAdapter.Bind(companies)
}
