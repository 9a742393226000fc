package preview

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/spektr-org/pulse/client"
	"github.com/spektr-org/pulse/engine"
	"github.com/spektr-org/pulse/stats"
)

// ============================================================================
// DASHBOARD — Company listing + statistic cards
// ============================================================================

var companyHeaders = []string{
	"Company", "Industry", "Founded", "Headquarters",
	"Funding", "ARR", "Valuation", "Employees", "G2",
}

// numeric columns of companyHeaders, right-aligned
var companyNumeric = map[int]bool{2: true, 4: true, 5: true, 6: true, 7: true, 8: true}

// Companies renders one page of the company listing.
func Companies(companies []client.Company, page int) string {
	if len(companies) == 0 {
		return mutedStyle.Render(noData)
	}

	pages := (len(companies) + engine.TablePageSize - 1) / engine.TablePageSize
	page = clamp(page, 1, pages)
	start := (page - 1) * engine.TablePageSize
	end := min(start+engine.TablePageSize, len(companies))

	rows := make([][]string, 0, end-start)
	for _, c := range companies[start:end] {
		rows = append(rows, companyRow(c))
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(mutedStyle).
		Headers(companyHeaders...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if companyNumeric[col] {
				return cellStyle.Align(lipgloss.Right)
			}
			return cellStyle
		})

	return t.String() + "\n" + mutedStyle.Render(pageFooter(page, pages, len(companies)))
}

func companyRow(c client.Company) []string {
	founded := ""
	if c.FoundedYear > 0 {
		founded = strconv.Itoa(c.FoundedYear)
	}
	employees := ""
	if c.EmployeeCount != nil {
		employees = stats.FormatCount(float64(*c.EmployeeCount))
	}
	return []string{
		c.CompanyName,
		c.Industry,
		founded,
		c.Headquarters,
		stats.FormatUSD(float64(c.TotalFundingUSD)),
		stats.FormatUSD(float64(c.ARRUSD)),
		stats.FormatUSD(float64(c.ValuationUSD)),
		employees,
		fmt.Sprintf("%.1f", c.G2Rating),
	}
}

// Summary renders the statistic cards side by side.
func Summary(s stats.Summary) string {
	cards := []string{
		card("Total Companies", stats.FormatInt(int64(s.TotalCompanies))),
		card("Industries", stats.FormatInt(int64(s.UniqueIndustries))),
		card("Avg G2 Rating", fmt.Sprintf("%.1f", s.AvgG2Rating)),
		card(fmt.Sprintf("Founded Since %d", stats.ModernEraYear), stats.FormatInt(int64(s.FoundedSince2000))),
		card("Total Funding", stats.FormatUSD(s.TotalFunding)),
		card("Total Valuation", stats.FormatUSD(s.TotalValuation)),
		card("Total ARR", stats.FormatUSD(s.TotalARR)),
		card("Top Valuation", stats.FormatUSD(s.TopValuation)),
	}
	if s.OldestFounded > 0 {
		cards = append(cards, card("Oldest Founded", strconv.Itoa(s.OldestFounded)))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

func card(label, value string) string {
	return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		cardLabelStyle.Render(label),
		cardValueStyle.Render(value),
	))
}
