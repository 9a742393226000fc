package stats

import (
	"strings"
)

// ============================================================================
// FILTERS — Dimension and measure filtering via RecordView
// ============================================================================
// Single pass per call. Returns a SubView (index list into parent).
// ============================================================================

// FilterDimension keeps rows whose dimension matches any of values
// (case-insensitive). No values = no restriction.
func FilterDimension(view RecordView, dimension string, values ...string) RecordView {
	if len(values) == 0 {
		return view
	}

	set := toLowerSet(values)
	indices := make([]int, 0, view.Len())
	for i := 0; i < view.Len(); i++ {
		if set[strings.ToLower(view.Dimension(i, dimension))] {
			indices = append(indices, i)
		}
	}
	return newSubView(view, indices)
}

// FilterAtLeast keeps rows whose measure is >= min.
func FilterAtLeast(view RecordView, measure string, min float64) RecordView {
	indices := make([]int, 0, view.Len())
	for i := 0; i < view.Len(); i++ {
		if view.Measure(i, measure) >= min {
			indices = append(indices, i)
		}
	}
	return newSubView(view, indices)
}

// toLowerSet converts a string slice to a lowercase lookup set.
func toLowerSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, item := range items {
		set[strings.ToLower(item)] = true
	}
	return set
}
