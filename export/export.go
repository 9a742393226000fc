package export

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spektr-org/pulse/engine"
)

// ============================================================================
// EXPORT — Spec → tabular data (CSV, XLSX)
// ============================================================================
// Every chart and table flattens to one header row plus data rows:
//   pie / bar / line  → label, <dataset label>
//   scatter           → x, y
//   table             → humanized column labels, cells in column order
// Error specs carry no data and are rejected.
// ============================================================================

// ErrUnsupportedSpec is returned for specs without exportable data.
var ErrUnsupportedSpec = errors.New("export: spec has no tabular data")

// labelHeader heads the category column of chart exports.
const labelHeader = "label"

// sheet is a spec flattened into rows. Cells are float64, string or nil.
type sheet struct {
	header []string
	rows   [][]any
	chart  *engine.ChartSpec
}

func flatten(spec engine.Spec) (*sheet, error) {
	kind := "nil"
	switch s := spec.(type) {
	case *engine.ChartSpec:
		if s != nil {
			return flattenChart(s), nil
		}
	case *engine.TableSpec:
		if s != nil {
			return flattenTable(s), nil
		}
	case nil:
	default:
		kind = string(s.Kind())
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedSpec, kind)
}

func flattenChart(cs *engine.ChartSpec) *sheet {
	out := &sheet{chart: cs, rows: [][]any{}}
	if len(cs.Datasets) == 0 {
		out.header = []string{labelHeader, "value"}
		return out
	}
	ds := cs.Datasets[0]

	if cs.Type == engine.KindScatter {
		out.header = []string{"x", "y"}
		for _, p := range ds.Points {
			out.rows = append(out.rows, []any{cell(p.X), cell(p.Y)})
		}
		return out
	}

	out.header = []string{labelHeader, ds.Label}
	for i, v := range ds.Data {
		label := ""
		if i < len(cs.Labels) {
			label = cs.Labels[i]
		}
		out.rows = append(out.rows, []any{label, cell(v)})
	}
	return out
}

func flattenTable(ts *engine.TableSpec) *sheet {
	out := &sheet{rows: [][]any{}}
	for _, col := range ts.Columns {
		out.header = append(out.header, col.Label)
	}
	for _, r := range ts.Rows {
		row := make([]any, len(r.Cells))
		for i, c := range r.Cells {
			row[i] = cell(c)
		}
		out.rows = append(out.rows, row)
	}
	return out
}

// cell normalizes a spec value: numbers → float64, nil stays nil,
// anything else → display string.
func cell(v any) any {
	if v == nil {
		return nil
	}
	if f, ok := engine.Float(v); ok {
		return f
	}
	return engine.DisplayString(v)
}

// fmtNum writes whole numbers without decimals and fractions at full
// precision.
func fmtNum(v float64) string {
	if v == float64(int64(v)) {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
