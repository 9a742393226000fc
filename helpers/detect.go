package helpers

import (
	"math"
	"strings"

	"github.com/spektr-org/pulse/engine"
)

// ============================================================================
// FIELD DETECTION — Pick label/value columns from parsed CSV rows
// ============================================================================
// Each column is classified from its values:
//   numeric (80%+ of filled cells), fractional       → measure
//   numeric, few distinct values (< 20, < 30% ratio) → dimension (coded)
//   numeric otherwise                                → measure
//   anything else                                    → dimension
//   no filled cells                                  → empty
// ============================================================================

// ColumnRole is how a column is used when charting.
type ColumnRole int

const (
	RoleDimension ColumnRole = iota
	RoleMeasure
	RoleEmpty
)

func (r ColumnRole) String() string {
	switch r {
	case RoleDimension:
		return "dimension"
	case RoleMeasure:
		return "measure"
	default:
		return "empty"
	}
}

// Column summarizes one CSV column.
type Column struct {
	Key    string
	Role   ColumnRole
	Filled int // cells with a value
	Unique int // distinct values
}

const (
	numericThreshold = 0.8
	codedMaxUnique   = 20
	codedMaxRatio    = 0.3
)

// AnalyzeColumns classifies the columns of records, in header order.
func AnalyzeColumns(records []engine.Record) []Column {
	if len(records) == 0 {
		return nil
	}

	keys := records[0].Keys()
	cols := make([]Column, 0, len(keys))
	for _, key := range keys {
		cols = append(cols, analyzeColumn(key, records))
	}
	return cols
}

func analyzeColumn(key string, records []engine.Record) Column {
	col := Column{Key: key}
	unique := make(map[any]bool)
	numeric, fractional := 0, false

	for _, r := range records {
		v, ok := r.Get(key)
		if !ok || isMissing(v) {
			continue
		}
		col.Filled++
		unique[v] = true
		if f, ok := engine.Float(v); ok {
			numeric++
			if f != math.Trunc(f) {
				fractional = true
			}
		}
	}
	col.Unique = len(unique)

	switch {
	case col.Filled == 0:
		col.Role = RoleEmpty
	case float64(numeric) < float64(col.Filled)*numericThreshold:
		col.Role = RoleDimension
	case fractional:
		col.Role = RoleMeasure
	case col.Unique < codedMaxUnique && float64(col.Unique)/float64(len(records)) < codedMaxRatio:
		col.Role = RoleDimension
	default:
		col.Role = RoleMeasure
	}
	return col
}

// DetectFields picks the label and value columns for a chart. Scatter
// charts plot two measures. Fields fall back to header order when no
// column fits the role.
func DetectFields(records []engine.Record, kind engine.Kind) (x, y string) {
	cols := AnalyzeColumns(records)
	if len(cols) == 0 {
		return "", ""
	}

	xRole := RoleDimension
	if kind == engine.KindScatter {
		xRole = RoleMeasure
	}

	x = firstColumn(cols, xRole, "")
	if x == "" {
		x = cols[0].Key
	}
	y = firstColumn(cols, RoleMeasure, x)
	if y == "" {
		for _, c := range cols {
			if c.Key != x {
				y = c.Key
				break
			}
		}
	}
	return x, y
}

// isMissing reports nil cells and placeholder strings like "N/A".
func isMissing(v any) bool {
	if v == nil {
		return true
	}
	s, ok := v.(string)
	return ok && missingValues[strings.ToUpper(strings.TrimSpace(s))]
}

func firstColumn(cols []Column, role ColumnRole, skip string) string {
	for _, c := range cols {
		if c.Role == role && c.Key != skip {
			return c.Key
		}
	}
	return ""
}

// project reorders records to (x, y) so positional chart builders read the
// chosen columns.
func project(records []engine.Record, x, y string) []engine.Record {
	out := make([]engine.Record, len(records))
	for i, r := range records {
		xv, _ := r.Get(x)
		fields := []engine.Field{{Key: x, Value: xv}}
		if y != "" {
			yv, _ := r.Get(y)
			fields = append(fields, engine.Field{Key: y, Value: yv})
		}
		out[i] = engine.NewRecord(fields...)
	}
	return out
}
