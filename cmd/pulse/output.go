package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/spektr-org/pulse/draw"
	"github.com/spektr-org/pulse/engine"
	"github.com/spektr-org/pulse/export"
	"github.com/spektr-org/pulse/preview"
)

// ============================================================================
// OUTPUT — One resolved spec, many formats
// ============================================================================

const (
	formatJSON   = "json"
	formatPretty = "pretty"
	formatText   = "text"
	formatCSV    = "csv"
	formatXLSX   = "xlsx"
	formatPNG    = "png"
	formatSVG    = "svg"
)

var validFormats = map[string]bool{
	formatJSON:   true,
	formatPretty: true,
	formatText:   true,
	formatCSV:    true,
	formatXLSX:   true,
	formatPNG:    true,
	formatSVG:    true,
}

type cliOutput struct {
	Kind engine.Kind `json:"kind"`
	SQL  string      `json:"sql,omitempty"`
	Spec engine.Spec `json:"spec"`
}

// writeResult renders result and writes it in the selected format.
func (a *app) writeResult(cmd *cobra.Command, result engine.VisualizationResult) error {
	spec := engine.Render(result, engine.WithLogger(a.logger))
	if es, ok := spec.(*engine.ErrorSpec); ok {
		a.logger.Warn("pulse: visualization failed", "message", es.Message)
	}

	switch format {
	case formatText:
		text := preview.Render(spec, preview.WithPage(page))
		if result.SQL != "" {
			text += "\n\n" + preview.Query(result.SQL)
		}
		return a.writeText(cmd, text)
	case formatCSV:
		return a.withOutput(cmd, func(w io.Writer) error { return export.WriteCSV(w, spec) })
	case formatXLSX:
		return a.withOutput(cmd, func(w io.Writer) error { return export.WriteXLSX(w, spec) })
	case formatPNG, formatSVG:
		return a.withOutput(cmd, func(w io.Writer) error {
			return draw.Render(w, spec,
				draw.WithFormat(draw.Format(format)),
				draw.WithSize(a.cfg.ChartWidth, a.cfg.ChartHeight),
			)
		})
	default:
		return a.writeJSON(cmd, cliOutput{Kind: spec.Kind(), SQL: result.SQL, Spec: spec})
	}
}

func (a *app) writeJSON(cmd *cobra.Command, v any) error {
	var (
		out []byte
		err error
	)
	if format == formatPretty {
		out, err = json.MarshalIndent(v, "", "  ")
	} else {
		out, err = json.Marshal(v)
	}
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}

	return a.withOutput(cmd, func(w io.Writer) error {
		_, err := fmt.Fprintln(w, string(out))
		return err
	})
}

func (a *app) writeText(cmd *cobra.Command, text string) error {
	return a.withOutput(cmd, func(w io.Writer) error {
		_, err := fmt.Fprintln(w, text)
		return err
	})
}

// withOutput runs write against --out when set, stdout otherwise. A failed
// write removes the file.
func (a *app) withOutput(cmd *cobra.Command, write func(io.Writer) error) error {
	if outPath == "" {
		return write(cmd.OutOrStdout())
	}

	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := write(f); err != nil {
		f.Close()
		os.Remove(outPath)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(outPath)
		return fmt.Errorf("failed to write output: %w", err)
	}
	a.logger.Info("pulse: output written", "path", outPath, "format", format)
	return nil
}
