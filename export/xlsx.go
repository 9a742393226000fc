package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/xuri/excelize/v2"

	"github.com/spektr-org/pulse/engine"
)

// ============================================================================
// XLSX EXPORT — Data sheet + native Excel chart
// ============================================================================
// Sheet "Data" holds the flattened rows from A1. Chart specs with at least
// one row also get a native chart anchored next to the data.
// ============================================================================

// DataSheet is the name of the worksheet holding exported rows.
const DataSheet = "Data"

const chartAnchor = "D2"

var excelChartTypes = map[engine.Kind]excelize.ChartType{
	engine.KindPie:     excelize.Pie,
	engine.KindBar:     excelize.Col,
	engine.KindLine:    excelize.Line,
	engine.KindScatter: excelize.Scatter,
}

var excelLegendPositions = map[string]bool{
	"top":       true,
	"bottom":    true,
	"left":      true,
	"right":     true,
	"top_right": true,
}

// WriteXLSX writes the spec as an Excel workbook.
func WriteXLSX(w io.Writer, spec engine.Spec) error {
	sh, err := flatten(spec)
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", DataSheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	header := make([]any, len(sh.header))
	for i, h := range sh.header {
		header[i] = h
	}
	if err := f.SetSheetRow(DataSheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, row := range sh.rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := row
		if err := f.SetSheetRow(DataSheet, cell, &values); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}

	if sh.chart != nil && len(sh.rows) > 0 {
		if err := f.AddChart(DataSheet, chartAnchor, excelChart(sh.chart, len(sh.rows))); err != nil {
			return fmt.Errorf("failed to add chart: %w", err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func excelChart(cs *engine.ChartSpec, n int) *excelize.Chart {
	last := n + 1
	series := excelize.ChartSeries{
		Name:       fmt.Sprintf("%s!$B$1", DataSheet),
		Categories: fmt.Sprintf("%s!$A$2:$A$%d", DataSheet, last),
		Values:     fmt.Sprintf("%s!$B$2:$B$%d", DataSheet, last),
	}

	if len(cs.Datasets) > 0 {
		ds := cs.Datasets[0]
		color := ds.ColorAt(0)
		if cs.Type == engine.KindLine {
			color = ds.BorderColor
		}
		// Pie slices keep Excel's varied colors; one series fill would paint them all.
		if hex, ok := excelColor(color); ok && cs.Type != engine.KindPie {
			series.Fill = excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{hex}}
		}
		if cs.Type == engine.KindLine {
			series.Line = excelize.ChartLine{Smooth: ds.Tension > 0, Width: 2}
		}
		if cs.Type == engine.KindScatter {
			series.Marker = excelize.ChartMarker{Symbol: "circle", Size: 5}
		}
	}

	c := &excelize.Chart{
		Type:   excelChartTypes[cs.Type],
		Series: []excelize.ChartSeries{series},
		Legend: excelize.ChartLegend{Position: "none"},
	}
	if cs.Legend.Display {
		pos := cs.Legend.Position
		if !excelLegendPositions[pos] {
			pos = "bottom"
		}
		c.Legend.Position = pos
	}

	if cs.Title != "" {
		font := &excelize.Font{Bold: cs.Typography.Bold, Italic: cs.Typography.Italic}
		if cs.Typography.FontSize > 0 {
			font.Size = float64(cs.Typography.FontSize)
		}
		c.Title = []excelize.RichTextRun{{Text: cs.Title, Font: font}}
	}
	return c
}

// excelColor converts a spec color to the "RRGGBB" form Excel expects.
func excelColor(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	if hex, ok := engine.NamedColor(s); ok {
		s = hex
	}
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return "", false
	}
	return strings.ToUpper(strings.TrimPrefix(c.Hex(), "#")), true
}
