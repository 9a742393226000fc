package draw

// ============================================================================
// DRAW OPTIONS — Functional options for Render()
// ============================================================================

// Format is the image encoding produced by Render.
type Format string

const (
	PNG Format = "png"
	SVG Format = "svg"
)

// Default canvas size, px.
const (
	DefaultWidth  = 800
	DefaultHeight = 400
)

// Option configures drawing via functional options pattern.
type Option func(*config)

type config struct {
	Format Format
	Width  int
	Height int
}

// WithFormat selects PNG or SVG output. Unknown formats fall back to PNG.
func WithFormat(f Format) Option {
	return func(c *config) {
		c.Format = f
	}
}

// WithSize sets the canvas size. Non-positive values keep the default.
func WithSize(width, height int) Option {
	return func(c *config) {
		if width > 0 {
			c.Width = width
		}
		if height > 0 {
			c.Height = height
		}
	}
}

func applyOptions(opts []Option) *config {
	cfg := &config{
		Format: PNG,
		Width:  DefaultWidth,
		Height: DefaultHeight,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.Format != SVG {
		cfg.Format = PNG
	}
	return cfg
}
