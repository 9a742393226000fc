package engine

// ============================================================================
// RENDER — Type Dispatcher
// ============================================================================
// Entry point: Render(result, opts...)
//
// Pipeline:
//   1. success=false → ErrorSpec (terminal, never retried)
//   2. visualization_type → Kind (unknown → table)
//   3. Dispatch to builder (pie / bar / scatter / line / table)
//   4. Attach title + resolved typography
//
// Render never returns an error. Malformed input degrades, it does not fail.
// ============================================================================

// DefaultErrorMessage is shown when a failed result carries no message.
const DefaultErrorMessage = "Failed to generate visualization"

// ErrorTitle is the title of every ErrorSpec.
const ErrorTitle = "Visualization Error"

// Render resolves a backend result into a renderable spec.
func Render(result VisualizationResult, opts ...Option) Spec {
	cfg := applyOptions(opts)

	if !result.Success {
		msg := result.ErrorMessage
		if msg == "" {
			msg = DefaultErrorMessage
		}
		cfg.Logger.Debug("pulse: upstream failure", "message", msg)
		return &ErrorSpec{Title: ErrorTitle, Message: msg}
	}

	kind := ParseKind(result.VisualizationType)
	if string(kind) != result.VisualizationType {
		cfg.Logger.Debug("pulse: unknown visualization type, falling back to table",
			"type", result.VisualizationType)
	}

	cfg.Logger.Debug("pulse: rendering", "kind", kind, "rows", len(result.Rows))

	switch kind {
	case KindPie:
		return buildPie(result)
	case KindBar:
		return buildBar(result)
	case KindScatter:
		return buildScatter(result)
	case KindLine:
		return buildLine(result, cfg)
	default:
		return BuildTable(result)
	}
}
