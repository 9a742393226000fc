package engine

import (
	"strings"
	"unicode"
)

// ============================================================================
// TABLE BUILDER — Produces TableSpec for "table" and unknown types
// ============================================================================
// Columns come from the first row's keys. Later rows are projected onto those
// columns; keys the first row lacks are not shown.
// ============================================================================

// TablePageSize is the fixed number of rows per table page.
const TablePageSize = 10

// BuildTable produces the tabular view of a result.
func BuildTable(result VisualizationResult) *TableSpec {
	spec := &TableSpec{
		Title:      result.Title,
		Typography: ResolveTypography(result.ChartConfig),
		Columns:    []Column{},
		Rows:       []TableRow{},
		PageSize:   TablePageSize,
	}

	if len(result.Rows) == 0 {
		return spec
	}

	first := result.Rows[0]
	for _, f := range first.fields {
		col := Column{
			Key:   f.Key,
			Label: HumanizeKey(f.Key),
			Type:  "text",
			Align: "left",
		}
		if _, ok := Float(f.Value); ok {
			col.Type = "number"
			col.Align = "right"
		}
		spec.Columns = append(spec.Columns, col)
	}

	spec.Rows = make([]TableRow, 0, len(result.Rows))
	for i, r := range result.Rows {
		cells := make([]any, len(spec.Columns))
		for j, col := range spec.Columns {
			cells[j], _ = r.Get(col.Key)
		}
		spec.Rows = append(spec.Rows, TableRow{Key: i, Cells: cells})
	}

	return spec
}

// HumanizeKey turns "company_name" into "Company Name". Underscores become
// spaces and every letter or digit that starts a word is upper-cased, so
// "arr-usd" becomes "Arr-Usd".
func HumanizeKey(key string) string {
	var b strings.Builder
	b.Grow(len(key))
	inWord := false
	for _, r := range key {
		if r == '_' {
			r = ' '
		}
		word := unicode.IsLetter(r) || unicode.IsDigit(r)
		if word && !inWord {
			r = unicode.ToUpper(r)
		}
		b.WriteRune(r)
		inWord = word
	}
	return b.String()
}
