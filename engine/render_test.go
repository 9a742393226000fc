package engine

import (
	"bytes"
	"encoding/json"
	"io"
	"reflect"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

// ============================================================================
// TEST DATA — ordered records the way the backend sends them
// ============================================================================

func rows(t *testing.T, payload string) []Record {
	t.Helper()
	var out []Record
	if err := json.Unmarshal([]byte(payload), &out); err != nil {
		t.Fatalf("bad fixture: %v", err)
	}
	return out
}

func industryRows(t *testing.T) []Record {
	return rows(t, `[
		{"industry": "Fintech", "count": 12},
		{"industry": "Healthcare", "count": 8},
		{"industry": "SaaS", "count": 15}
	]`)
}

func quietLogger() Option {
	return WithLogger(log.New(io.Discard))
}

// ============================================================================
// ERROR PATH
// ============================================================================

func TestRenderErrorUsesMessage(t *testing.T) {
	spec := Render(VisualizationResult{Success: false, ErrorMessage: "bad query"}, quietLogger())
	es, ok := spec.(*ErrorSpec)
	if !ok {
		t.Fatalf("expected *ErrorSpec, got %T", spec)
	}
	if es.Message != "bad query" {
		t.Errorf("Message = %q", es.Message)
	}
	if es.Title != ErrorTitle {
		t.Errorf("Title = %q", es.Title)
	}
	if es.Kind() != KindError {
		t.Errorf("Kind() = %q", es.Kind())
	}
}

func TestRenderErrorDefaultMessage(t *testing.T) {
	spec := Render(VisualizationResult{
		Success:           false,
		VisualizationType: "pie",
		Rows:              []Record{NewRecord(Field{"a", 1})},
	}, quietLogger())

	es, ok := spec.(*ErrorSpec)
	if !ok {
		t.Fatalf("expected *ErrorSpec, got %T", spec)
	}
	if es.Message != DefaultErrorMessage {
		t.Errorf("Message = %q, want %q", es.Message, DefaultErrorMessage)
	}
}

// ============================================================================
// PIE
// ============================================================================

func TestRenderPie(t *testing.T) {
	spec := Render(VisualizationResult{
		Success:           true,
		VisualizationType: "pie",
		Title:             "Companies by Industry",
		Rows:              industryRows(t),
		ChartConfig:       &ChartConfig{ChartStyle: "pastel", LegendPosition: "right"},
	}, quietLogger())

	cs, ok := spec.(*ChartSpec)
	if !ok {
		t.Fatalf("expected *ChartSpec, got %T", spec)
	}
	if cs.Kind() != KindPie {
		t.Fatalf("Kind() = %q", cs.Kind())
	}
	if cs.Title != "Companies by Industry" {
		t.Errorf("Title = %q", cs.Title)
	}

	wantLabels := []string{"Fintech", "Healthcare", "SaaS"}
	if !reflect.DeepEqual(cs.Labels, wantLabels) {
		t.Errorf("Labels = %v, want %v", cs.Labels, wantLabels)
	}
	if len(cs.Datasets) != 1 {
		t.Fatalf("datasets = %d", len(cs.Datasets))
	}
	ds := cs.Datasets[0]
	if !reflect.DeepEqual(ds.Data, []any{12.0, 8.0, 15.0}) {
		t.Errorf("Data = %v", ds.Data)
	}
	pastel, _ := Palette("pastel")
	if !reflect.DeepEqual(ds.BackgroundColors, pastel[:3]) {
		t.Errorf("BackgroundColors = %v", ds.BackgroundColors)
	}
	if ds.BorderWidth != 1 {
		t.Errorf("BorderWidth = %d", ds.BorderWidth)
	}
	if ds.Label != "Value" {
		t.Errorf("Label = %q", ds.Label)
	}
	if !cs.Legend.Display || cs.Legend.Position != "right" {
		t.Errorf("Legend = %+v", cs.Legend)
	}
}

func TestRenderPieDefaultLegendPosition(t *testing.T) {
	cs := Render(VisualizationResult{
		Success:           true,
		VisualizationType: "pie",
		Rows:              industryRows(t),
	}, quietLogger()).(*ChartSpec)

	if cs.Legend.Position != "bottom" {
		t.Errorf("Legend.Position = %q, want bottom", cs.Legend.Position)
	}
}

func TestRenderPieEmpty(t *testing.T) {
	spec := Render(VisualizationResult{
		Success:           true,
		VisualizationType: "pie",
		Rows:              []Record{},
	}, quietLogger())

	cs, ok := spec.(*ChartSpec)
	if !ok {
		t.Fatalf("expected *ChartSpec, got %T", spec)
	}
	if len(cs.Labels) != 0 {
		t.Errorf("Labels = %v", cs.Labels)
	}
	if len(cs.Datasets) != 1 || len(cs.Datasets[0].Data) != 0 || len(cs.Datasets[0].BackgroundColors) != 0 {
		t.Errorf("Datasets = %+v", cs.Datasets)
	}
}

func TestRenderEmptyRows(t *testing.T) {
	for _, kind := range []string{"bar", "line", "scatter"} {
		t.Run(kind, func(t *testing.T) {
			spec := Render(VisualizationResult{
				Success:           true,
				VisualizationType: kind,
				Rows:              []Record{},
			}, quietLogger())

			cs, ok := spec.(*ChartSpec)
			if !ok {
				t.Fatalf("expected *ChartSpec, got %T", spec)
			}
			if string(cs.Type) != kind {
				t.Errorf("Type = %q", cs.Type)
			}
			if len(cs.Labels) != 0 {
				t.Errorf("Labels = %v", cs.Labels)
			}
			if len(cs.Datasets) != 1 {
				t.Fatalf("Datasets = %+v", cs.Datasets)
			}
			ds := cs.Datasets[0]
			if len(ds.Data) != 0 || len(ds.Points) != 0 || len(ds.BackgroundColors) != 0 {
				t.Errorf("dataset should be empty: %+v", ds)
			}

			switch kind {
			case "line":
				if ds.BorderColor != "#FF6384" || ds.BackgroundColor != "rgba(255, 99, 132, 0.2)" {
					t.Errorf("line colors = %q / %q", ds.BorderColor, ds.BackgroundColor)
				}
			case "scatter":
				if ds.BackgroundColor != "#FF6384" {
					t.Errorf("scatter color = %q", ds.BackgroundColor)
				}
			}
		})
	}
}

func TestDatasetJSONEmptySeries(t *testing.T) {
	pie := Render(VisualizationResult{Success: true, VisualizationType: "pie"}, quietLogger()).(*ChartSpec)
	out, err := json.Marshal(pie.Datasets[0])
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(out, []byte(`"data":[]`)) || bytes.Contains(out, []byte(`"points"`)) {
		t.Errorf("pie dataset = %s", out)
	}

	scatter := Render(VisualizationResult{Success: true, VisualizationType: "scatter", Rows: []Record{}}, quietLogger()).(*ChartSpec)
	out, err = json.Marshal(scatter.Datasets[0])
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(out, []byte(`"points":[]`)) || bytes.Contains(out, []byte(`"data"`)) {
		t.Errorf("scatter dataset = %s", out)
	}
}

// ============================================================================
// BAR
// ============================================================================

func TestRenderBarSeriesLabelAndCycle(t *testing.T) {
	data := rows(t, `[
		{"investor_name": "A", "frequency": 1}, {"investor_name": "B", "frequency": 2},
		{"investor_name": "C", "frequency": 3}, {"investor_name": "D", "frequency": 4},
		{"investor_name": "E", "frequency": 5}
	]`)

	cs := Render(VisualizationResult{
		Success:           true,
		VisualizationType: "bar",
		Rows:              data,
		ChartConfig: &ChartConfig{
			YField: "frequency",
			Colors: []string{"#111", "#222"},
		},
	}, quietLogger()).(*ChartSpec)

	ds := cs.Datasets[0]
	if ds.Label != "frequency" {
		t.Errorf("Label = %q", ds.Label)
	}
	want := []string{"#111", "#222", "#111", "#222", "#111"}
	if !reflect.DeepEqual(ds.BackgroundColors, want) {
		t.Errorf("BackgroundColors = %v, want %v", ds.BackgroundColors, want)
	}
	if cs.Legend.Display {
		t.Error("bar legend should be hidden")
	}
}

func TestRenderBarShortRecord(t *testing.T) {
	cs := Render(VisualizationResult{
		Success:           true,
		VisualizationType: "bar",
		Rows:              rows(t, `[{"only": "x"}]`),
	}, quietLogger()).(*ChartSpec)

	if cs.Labels[0] != "x" {
		t.Errorf("Labels = %v", cs.Labels)
	}
	if cs.Datasets[0].Data[0] != nil {
		t.Errorf("missing value should be nil, got %v", cs.Datasets[0].Data[0])
	}
}

// ============================================================================
// SCATTER
// ============================================================================

func TestRenderScatter(t *testing.T) {
	cs := Render(VisualizationResult{
		Success:           true,
		VisualizationType: "scatter",
		Title:             "Funding vs Valuation",
		Rows:              rows(t, `[{"funding": 10, "valuation": 100}, {"funding": "n/a", "valuation": 7}]`),
		ChartConfig:       &ChartConfig{ChartStyle: "green"},
	}, quietLogger()).(*ChartSpec)

	ds := cs.Datasets[0]
	if ds.Label != "Funding vs Valuation" {
		t.Errorf("Label = %q", ds.Label)
	}
	if ds.BackgroundColor != "#4BC0C0" || ds.BorderColor != "#4BC0C0" {
		t.Errorf("colors = %q / %q", ds.BackgroundColor, ds.BorderColor)
	}
	want := []Point{{X: 10.0, Y: 100.0}, {X: "n/a", Y: 7.0}}
	if !reflect.DeepEqual(ds.Points, want) {
		t.Errorf("Points = %#v", ds.Points)
	}
	if len(cs.Labels) != 0 {
		t.Errorf("scatter should have no labels: %v", cs.Labels)
	}
}

// ============================================================================
// LINE
// ============================================================================

func TestRenderLineDerivedFill(t *testing.T) {
	cs := Render(VisualizationResult{
		Success:           true,
		VisualizationType: "line",
		Rows:              rows(t, `[{"year": 2019, "n": 3}, {"year": 2020, "n": 5}]`),
		ChartConfig:       &ChartConfig{ChartStyle: "blue"},
	}, quietLogger()).(*ChartSpec)

	ds := cs.Datasets[0]
	if ds.BorderColor != "#36A2EB" {
		t.Errorf("BorderColor = %q", ds.BorderColor)
	}
	if ds.BackgroundColor != "rgba(54, 162, 235, 0.2)" {
		t.Errorf("BackgroundColor = %q", ds.BackgroundColor)
	}
	if ds.Tension != 0.1 {
		t.Errorf("Tension = %v", ds.Tension)
	}
	if !reflect.DeepEqual(cs.Labels, []string{"2019", "2020"}) {
		t.Errorf("Labels = %v", cs.Labels)
	}
}

func TestRenderLineExplicitColors(t *testing.T) {
	cs := Render(VisualizationResult{
		Success:           true,
		VisualizationType: "line",
		Rows:              rows(t, `[{"year": 2019, "n": 3}]`),
		ChartConfig:       &ChartConfig{BorderColor: "#000000", BackgroundColor: "#eeeeee"},
	}, quietLogger()).(*ChartSpec)

	ds := cs.Datasets[0]
	if ds.BorderColor != "#000000" || ds.BackgroundColor != "#eeeeee" {
		t.Errorf("colors = %q / %q", ds.BorderColor, ds.BackgroundColor)
	}
	if cs.BackgroundColor != "" {
		t.Errorf("line canvas background should be empty, got %q", cs.BackgroundColor)
	}
}

func TestRenderLineUnparseableBorderLogs(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})

	cs := Render(VisualizationResult{
		Success:           true,
		VisualizationType: "line",
		Rows:              rows(t, `[{"year": 2019, "n": 3}]`),
		ChartConfig:       &ChartConfig{BorderColor: "tomato"},
	}, WithLogger(logger)).(*ChartSpec)

	if cs.Datasets[0].BackgroundColor != "tomato" {
		t.Errorf("fill should fall back to border, got %q", cs.Datasets[0].BackgroundColor)
	}
	if !strings.Contains(buf.String(), "cannot derive line fill") {
		t.Errorf("expected debug log, got %q", buf.String())
	}
}

// ============================================================================
// TABLE + FALLBACK
// ============================================================================

func TestRenderUnknownTypeFallsBackToTable(t *testing.T) {
	spec := Render(VisualizationResult{
		Success:           true,
		VisualizationType: "unknown_type",
		Rows:              rows(t, `[{"a": 1, "b": 2}]`),
	}, quietLogger())

	ts, ok := spec.(*TableSpec)
	if !ok {
		t.Fatalf("expected *TableSpec, got %T", spec)
	}
	var labels []string
	for _, c := range ts.Columns {
		labels = append(labels, c.Label)
	}
	if !reflect.DeepEqual(labels, []string{"A", "B"}) {
		t.Errorf("column labels = %v", labels)
	}
	if len(ts.Rows) != 1 || !reflect.DeepEqual(ts.Rows[0].Cells, []any{json.Number("1"), json.Number("2")}) {
		t.Errorf("Rows = %+v", ts.Rows)
	}
}

func TestRenderKindMatchIsExact(t *testing.T) {
	spec := Render(VisualizationResult{
		Success:           true,
		VisualizationType: "Pie",
		Rows:              industryRows(t),
	}, quietLogger())
	if spec.Kind() != KindTable {
		t.Errorf("Kind() = %q, want table", spec.Kind())
	}
}

func TestBuildTableColumnsAndPaging(t *testing.T) {
	var payload strings.Builder
	payload.WriteString("[")
	for i := 0; i < 23; i++ {
		if i > 0 {
			payload.WriteString(",")
		}
		payload.WriteString(`{"company_name": "Acme", "employee_count": 10, "extra": true}`)
	}
	payload.WriteString("]")

	ts := BuildTable(VisualizationResult{
		Success: true,
		Title:   "Companies",
		Rows:    rows(t, payload.String()),
	})

	want := []Column{
		{Key: "company_name", Label: "Company Name", Type: "text", Align: "left"},
		{Key: "employee_count", Label: "Employee Count", Type: "number", Align: "right"},
		{Key: "extra", Label: "Extra", Type: "text", Align: "left"},
	}
	if !reflect.DeepEqual(ts.Columns, want) {
		t.Errorf("Columns = %+v", ts.Columns)
	}
	if ts.PageSize != TablePageSize {
		t.Errorf("PageSize = %d", ts.PageSize)
	}
	if ts.PageCount() != 3 {
		t.Errorf("PageCount() = %d, want 3", ts.PageCount())
	}
	if got := len(ts.Page(3)); got != 3 {
		t.Errorf("len(Page(3)) = %d, want 3", got)
	}
	if ts.Page(4) != nil || ts.Page(0) != nil {
		t.Error("out-of-range pages should be nil")
	}
	if ts.Rows[22].Key != 22 {
		t.Errorf("row key = %d", ts.Rows[22].Key)
	}
}

func TestBuildTableProjectsOntoFirstRowKeys(t *testing.T) {
	ts := BuildTable(VisualizationResult{
		Success: true,
		Rows:    rows(t, `[{"a": 1}, {"b": 2, "a": 3}]`),
	})

	if len(ts.Columns) != 1 {
		t.Fatalf("Columns = %+v", ts.Columns)
	}
	if ts.Rows[1].Cells[0] != json.Number("3") {
		t.Errorf("second row cell = %v", ts.Rows[1].Cells[0])
	}
}

func TestBuildTableEmpty(t *testing.T) {
	ts := BuildTable(VisualizationResult{Success: true})
	if ts.Columns == nil || ts.Rows == nil || len(ts.Columns) != 0 || len(ts.Rows) != 0 {
		t.Errorf("empty table = %+v", ts)
	}
	if ts.PageCount() != 0 {
		t.Errorf("PageCount() = %d", ts.PageCount())
	}
}

func TestHumanizeKey(t *testing.T) {
	tests := map[string]string{
		"company_name":   "Company Name",
		"g2_rating":      "G2 Rating",
		"a":              "A",
		"already Spaced": "Already Spaced",
		"arr-usd":        "Arr-Usd",
		"ceo.name":       "Ceo.Name",
		"__id":           "  Id",
		"":               "",
	}
	for in, want := range tests {
		if got := HumanizeKey(in); got != want {
			t.Errorf("HumanizeKey(%q) = %q, want %q", in, got, want)
		}
	}
}

// ============================================================================
// TYPOGRAPHY + PURITY
// ============================================================================

func TestRenderAttachesTypography(t *testing.T) {
	spec := Render(VisualizationResult{
		Success:           true,
		VisualizationType: "bar",
		Rows:              industryRows(t),
		ChartConfig:       &ChartConfig{TitleStyle: "bold large", FontSize: "22px"},
	}, quietLogger())

	cs := spec.(*ChartSpec)
	if !cs.Typography.Bold || cs.Typography.FontSize != 22 {
		t.Errorf("Typography = %+v", cs.Typography)
	}
}

func TestRenderIsDeterministicAndPure(t *testing.T) {
	data := industryRows(t)
	before, _ := json.Marshal(data)

	res := VisualizationResult{
		Success:           true,
		VisualizationType: "pie",
		Title:             "Industries",
		Rows:              data,
		ChartConfig:       &ChartConfig{ChartStyle: "vibrant"},
	}

	a, _ := json.Marshal(Render(res, quietLogger()))
	b, _ := json.Marshal(Render(res, quietLogger()))
	if !bytes.Equal(a, b) {
		t.Errorf("Render not deterministic:\n%s\n%s", a, b)
	}

	after, _ := json.Marshal(data)
	if !bytes.Equal(before, after) {
		t.Errorf("Render mutated input rows")
	}
}
