package export

import (
	"encoding/csv"
	"io"

	"github.com/spektr-org/pulse/engine"
)

// WriteCSV writes the spec's data as Sheets-ready CSV.
func WriteCSV(w io.Writer, spec engine.Spec) error {
	sh, err := flatten(spec)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(sh.header); err != nil {
		return err
	}
	for _, row := range sh.rows {
		record := make([]string, len(row))
		for i, c := range row {
			switch v := c.(type) {
			case float64:
				record[i] = fmtNum(v)
			case string:
				record[i] = v
			}
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
