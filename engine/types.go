package engine

import "encoding/json"

// ============================================================================
// PULSE ENGINE TYPES — Visualization Resolution
// ============================================================================
// Input:  VisualizationResult (backend payload, JSON wire names from the API)
// Output: Spec (ChartSpec | TableSpec | ErrorSpec), a declarative description
//         handed to a drawing capability.
//
// The engine never mutates input rows. Every output is freshly allocated.
// ============================================================================

// ============================================================================
// INPUT — Backend payload
// ============================================================================

// VisualizationResult is the payload produced by the visualization backend.
type VisualizationResult struct {
	Success           bool         `json:"success"`
	VisualizationType string       `json:"visualization_type"`
	Title             string       `json:"title"`
	Rows              []Record     `json:"data"`
	ChartConfig       *ChartConfig `json:"chart_config,omitempty"`
	SQL               string       `json:"sql,omitempty"`
	ErrorMessage      string       `json:"error,omitempty"`
}

// ChartConfig is the free-form styling configuration attached to a result.
// Every field is optional; the zero value means "use the default".
type ChartConfig struct {
	XField          string   `json:"x_field,omitempty"`
	YField          string   `json:"y_field,omitempty"`          // series label, default "Value"
	Colors          []string `json:"colors,omitempty"`           // explicit palette, cycled
	ChartStyle      string   `json:"chart_style,omitempty"`      // color name or theme name
	TitleStyle      string   `json:"title_style,omitempty"`      // "bold", "large italic", ...
	BackgroundColor string   `json:"background_color,omitempty"` // line fill / canvas
	BorderColor     string   `json:"border_color,omitempty"`
	GridColor       string   `json:"grid_color,omitempty"`
	FontSize        string   `json:"font_size,omitempty"`   // "22px", "22", "small", "large"
	FontWeight      string   `json:"font_weight,omitempty"` // "bold", "normal", "700"
	LegendPosition  string   `json:"legend_position,omitempty"`
}

// ============================================================================
// KIND — Closed set of render strategies
// ============================================================================

// Kind identifies which spec variant a render produced.
type Kind string

const (
	KindPie     Kind = "pie"
	KindBar     Kind = "bar"
	KindScatter Kind = "scatter"
	KindLine    Kind = "line"
	KindTable   Kind = "table"
	KindError   Kind = "error"
)

// ParseKind maps a visualization_type onto a chart kind.
// Anything unrecognized becomes KindTable. The match is exact.
func ParseKind(visualizationType string) Kind {
	switch k := Kind(visualizationType); k {
	case KindPie, KindBar, KindScatter, KindLine, KindTable:
		return k
	default:
		return KindTable
	}
}

// IsChart reports whether k is drawn with axes/slices rather than as a table.
func (k Kind) IsChart() bool {
	switch k {
	case KindPie, KindBar, KindScatter, KindLine:
		return true
	}
	return false
}

// ============================================================================
// OUTPUT — Spec variants
// ============================================================================

// Spec is the common interface of every render output.
type Spec interface {
	Kind() Kind
}

// Typography is the resolved styling for a title.
type Typography struct {
	Bold       bool   `json:"bold"`
	Italic     bool   `json:"italic"`
	FontSize   int    `json:"fontSize,omitempty"`   // px, 0 = renderer default
	FontWeight string `json:"fontWeight,omitempty"` // explicit override, "" = none
}

// Legend controls legend visibility and placement.
type Legend struct {
	Display  bool   `json:"display"`
	Position string `json:"position,omitempty"`
}

// ChartSpec describes a pie, bar, scatter or line chart.
type ChartSpec struct {
	Type            Kind       `json:"type"`
	Title           string     `json:"title"`
	Typography      Typography `json:"typography"`
	Labels          []string   `json:"labels"`
	Datasets        []Dataset  `json:"datasets"`
	Legend          Legend     `json:"legend"`
	BackgroundColor string     `json:"backgroundColor,omitempty"`
	GridColor       string     `json:"gridColor,omitempty"`
}

// Kind implements Spec.
func (c *ChartSpec) Kind() Kind { return c.Type }

// Dataset is one series of a chart.
//
// Data holds category values (pie, bar, line); Points holds (x, y) pairs
// (scatter). Values are float64 when numeric and passed through otherwise;
// nil marks a missing field.
type Dataset struct {
	Label            string   `json:"label"`
	Data             []any    `json:"data"`
	Points           []Point  `json:"points"`
	BackgroundColors []string `json:"backgroundColors,omitempty"` // one per data point
	BackgroundColor  string   `json:"backgroundColor,omitempty"`  // single fill
	BorderColor      string   `json:"borderColor,omitempty"`
	BorderWidth      int      `json:"borderWidth,omitempty"`
	Tension          float64  `json:"tension,omitempty"`
}

// MarshalJSON writes points for scatter series and data for the rest, so an
// empty series still shows as a zero-length array.
func (d Dataset) MarshalJSON() ([]byte, error) {
	type plain Dataset
	if d.Points != nil {
		return json.Marshal(struct {
			plain
			Data []any `json:"data,omitempty"`
		}{plain: plain(d)})
	}
	if d.Data == nil {
		d.Data = []any{}
	}
	return json.Marshal(struct {
		plain
		Points []Point `json:"points,omitempty"`
	}{plain: plain(d)})
}

// Point is a single scatter coordinate.
type Point struct {
	X any `json:"x"`
	Y any `json:"y"`
}

// ColorAt returns the fill color for data point i.
func (d Dataset) ColorAt(i int) string {
	if i >= 0 && i < len(d.BackgroundColors) {
		return d.BackgroundColors[i]
	}
	if d.BorderColor != "" {
		return d.BorderColor
	}
	return d.BackgroundColor
}

// TableSpec describes the tabular fallback view.
type TableSpec struct {
	Title      string     `json:"title"`
	Typography Typography `json:"typography"`
	Columns    []Column   `json:"columns"`
	Rows       []TableRow `json:"rows"`
	PageSize   int        `json:"pageSize"`
}

// Kind implements Spec.
func (t *TableSpec) Kind() Kind { return KindTable }

// PageCount returns how many pages the rows span (0 for an empty table).
func (t *TableSpec) PageCount() int {
	if t.PageSize <= 0 || len(t.Rows) == 0 {
		return 0
	}
	return (len(t.Rows) + t.PageSize - 1) / t.PageSize
}

// Page returns the rows of the 1-based page n, or nil when out of range.
func (t *TableSpec) Page(n int) []TableRow {
	if n < 1 || n > t.PageCount() {
		return nil
	}
	start := (n - 1) * t.PageSize
	end := start + t.PageSize
	if end > len(t.Rows) {
		end = len(t.Rows)
	}
	return t.Rows[start:end]
}

// Column defines a table column.
type Column struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Type  string `json:"type"`  // "text", "number"
	Align string `json:"align"` // "left", "right"
}

// TableRow is one rendered row; Cells align with TableSpec.Columns.
type TableRow struct {
	Key   int   `json:"key"`
	Cells []any `json:"cells"`
}

// ErrorSpec is produced when the upstream result reports failure.
type ErrorSpec struct {
	Title   string `json:"title"`
	Message string `json:"message"`
}

// Kind implements Spec.
func (e *ErrorSpec) Kind() Kind { return KindError }
