// Package pulse renders company analytics visualizations.
//
// Usage:
//
//	import "github.com/spektr-org/pulse/engine"
//
//	spec := engine.Render(result, engine.WithLogger(logger))
//
// The backend answers a natural-language prompt with a VisualizationResult
// (visualization type, rows, optional chart config). engine.Render resolves
// that result into a ChartSpec, TableSpec or ErrorSpec and never fails.
//
// Everything downstream consumes a resolved spec: draw produces PNG/SVG,
// export produces CSV/XLSX, preview produces terminal text. The client
// package talks to the backend and stats computes dashboard numbers from
// the company listing. The engine never calls any external service.
package pulse
