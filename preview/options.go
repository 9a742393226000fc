package preview

// Option configures terminal rendering.
type Option func(*config)

type config struct {
	Page     int
	BarWidth int
}

// DefaultBarWidth is the length, in cells, of the largest chart bar.
const DefaultBarWidth = 40

// WithPage selects the 1-based table page. Out-of-range pages are clamped.
func WithPage(n int) Option {
	return func(c *config) {
		c.Page = n
	}
}

// WithWidth sets the length of the largest chart bar.
func WithWidth(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.BarWidth = n
		}
	}
}

func applyOptions(opts []Option) *config {
	cfg := &config{Page: 1, BarWidth: DefaultBarWidth}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}
