package helpers

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/spektr-org/pulse/engine"
)

// ============================================================================
// CSV HELPER — Parses CSV data into []engine.Record
// ============================================================================
// Consumer reads the CSV from wherever it lives (file, export, Sheets).
// This helper converts the raw bytes into ordered Records so a saved query
// result can be rendered offline exactly like a backend response.
// ============================================================================

// ErrNoHeader is returned for input without a header row.
var ErrNoHeader = errors.New("csv: missing header row")

// ParseRecordsCSV parses CSV bytes into ordered Records.
// Header cells become unique snake_case keys. Cells that parse as amounts become
// float64; everything else stays a trimmed string. Malformed rows are skipped.
func ParseRecordsCSV(data []byte) ([]engine.Record, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	headers, err := reader.Read()
	if err == io.EOF {
		return nil, ErrNoHeader
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV headers: %w", err)
	}

	keys := headerKeys(headers)

	records := []engine.Record{}
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			continue // skip malformed rows
		}

		fields := make([]engine.Field, 0, len(keys))
		for i, key := range keys {
			var val any
			if i < len(row) {
				val = cellValue(row[i])
			}
			fields = append(fields, engine.Field{Key: key, Value: val})
		}
		records = append(records, engine.NewRecord(fields...))
	}

	return records, nil
}

// ResultFromCSV wraps CSV data as a successful VisualizationResult.
// For chart types, x_field/y_field left empty in cfg are detected from the
// column values and rows are narrowed to those two columns. Tables keep
// every column. cfg is copied, never modified.
func ResultFromCSV(data []byte, visualizationType, title string, cfg *engine.ChartConfig) (engine.VisualizationResult, error) {
	records, err := ParseRecordsCSV(data)
	if err != nil {
		return engine.VisualizationResult{}, err
	}

	out := engine.ChartConfig{}
	if cfg != nil {
		out = *cfg
	}

	kind := engine.ParseKind(visualizationType)
	if len(records) > 0 && kind.IsChart() {
		x, y := DetectFields(records, kind)
		if out.XField == "" {
			out.XField = x
		}
		if out.YField == "" {
			out.YField = y
		}
		records = project(records, out.XField, out.YField)
	} else if len(records) > 0 {
		keys := records[0].Keys()
		if out.XField == "" && len(keys) > 0 {
			out.XField = keys[0]
		}
		if out.YField == "" && len(keys) > 1 {
			out.YField = keys[1]
		}
	}

	return engine.VisualizationResult{
		Success:           true,
		VisualizationType: visualizationType,
		Title:             title,
		Rows:              records,
		ChartConfig:       &out,
	}, nil
}

// headerKeys snake-cases headers. Empty headers become "column_N" and
// repeated keys get a numeric suffix ("name", "name_2").
func headerKeys(headers []string) []string {
	keys := make([]string, len(headers))
	seen := make(map[string]bool, len(headers))
	for i, h := range headers {
		key := toSnakeCase(strings.TrimSpace(h))
		if key == "" {
			key = fmt.Sprintf("column_%d", i+1)
		}
		base := key
		for n := 2; seen[key]; n++ {
			key = fmt.Sprintf("%s_%d", base, n)
		}
		seen[key] = true
		keys[i] = key
	}
	return keys
}

func cellValue(raw string) any {
	s := strings.TrimSpace(raw)
	if f, ok := ParseAmount(s); ok {
		return f
	}
	return s
}

// toSnakeCase converts "Column Name" or "columnName" → "column_name".
func toSnakeCase(s string) string {
	var result strings.Builder
	var prev rune
	for i, r := range s {
		if unicode.IsUpper(r) && i > 0 && (unicode.IsLower(prev) || unicode.IsDigit(prev)) {
			result.WriteRune('_')
		}
		result.WriteRune(r)
		prev = r
	}

	s = strings.ToLower(result.String())
	s = strings.NewReplacer(" ", "_", "-", "_").Replace(s)
	for strings.Contains(s, "__") {
		s = strings.ReplaceAll(s, "__", "_")
	}
	return strings.Trim(s, "_")
}
