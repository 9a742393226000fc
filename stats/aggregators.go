package stats

import (
	"math"
	"sort"
	"strings"
)

// ============================================================================
// AGGREGATORS — Grouping, Aggregation, and Sorting via RecordView
// ============================================================================
// All functions operate on RecordView. Grouping produces SubViews (index
// lists into the parent view).
// ============================================================================

// Group is one bucket of a grouped view.
type Group struct {
	Key   string
	Count int
	Value float64
	View  RecordView
}

// GroupBy buckets rows by a dimension, in first-seen order.
// Value is the row count; use Aggregate to replace it.
func GroupBy(view RecordView, dimension string) []Group {
	grouped := make(map[string][]int)
	order := make([]string, 0)

	for i := 0; i < view.Len(); i++ {
		key := view.Dimension(i, dimension)
		if _, exists := grouped[key]; !exists {
			order = append(order, key)
		}
		grouped[key] = append(grouped[key], i)
	}

	groups := make([]Group, 0, len(order))
	for _, key := range order {
		idx := grouped[key]
		groups = append(groups, Group{
			Key:   key,
			Count: len(idx),
			Value: float64(len(idx)),
			View:  newSubView(view, idx),
		})
	}
	return groups
}

// Aggregate sets each group's Value from a measure.
// aggregation: "sum", "avg", "max", "min" or "count".
func Aggregate(groups []Group, measure, aggregation string) {
	for i := range groups {
		g := &groups[i]
		switch aggregation {
		case "count":
			g.Value = float64(g.Count)
		case "avg":
			g.Value = AvgMeasure(g.View, measure)
		case "max":
			g.Value = MaxMeasure(g.View, measure)
		case "min":
			g.Value = MinMeasure(g.View, measure)
		default:
			g.Value = SumMeasure(g.View, measure)
		}
	}
}

// SumMeasure sums a named measure across a view.
func SumMeasure(view RecordView, measure string) float64 {
	var total float64
	for i := 0; i < view.Len(); i++ {
		total += view.Measure(i, measure)
	}
	return total
}

// AvgMeasure computes average of a named measure, 0 for an empty view.
func AvgMeasure(view RecordView, measure string) float64 {
	n := view.Len()
	if n == 0 {
		return 0
	}
	return SumMeasure(view, measure) / float64(n)
}

// MaxMeasure returns the largest value of a named measure.
func MaxMeasure(view RecordView, measure string) float64 {
	n := view.Len()
	if n == 0 {
		return 0
	}
	m := math.Inf(-1)
	for i := 0; i < n; i++ {
		if v := view.Measure(i, measure); v > m {
			m = v
		}
	}
	return m
}

// MinMeasure returns the smallest value of a named measure.
func MinMeasure(view RecordView, measure string) float64 {
	n := view.Len()
	if n == 0 {
		return 0
	}
	m := math.Inf(1)
	for i := 0; i < n; i++ {
		if v := view.Measure(i, measure); v < m {
			m = v
		}
	}
	return m
}

// ============================================================================
// SORTING
// ============================================================================

// SortGroups sorts groups in place.
// Modes: value_desc, value_asc, label_asc, label_desc. Ties on value fall
// back to the case-insensitive label. Unknown modes keep grouping order.
func SortGroups(groups []Group, sortBy string) {
	label := func(i, j int) bool { return strings.ToLower(groups[i].Key) < strings.ToLower(groups[j].Key) }

	switch sortBy {
	case "value_desc":
		sort.SliceStable(groups, func(i, j int) bool {
			if groups[i].Value != groups[j].Value {
				return groups[i].Value > groups[j].Value
			}
			return label(i, j)
		})
	case "value_asc":
		sort.SliceStable(groups, func(i, j int) bool {
			if groups[i].Value != groups[j].Value {
				return groups[i].Value < groups[j].Value
			}
			return label(i, j)
		})
	case "label_asc":
		sort.SliceStable(groups, label)
	case "label_desc":
		sort.SliceStable(groups, func(i, j int) bool { return label(j, i) })
	}
}

// UniqueValues returns distinct non-empty values of a dimension, in
// first-seen order.
func UniqueValues(view RecordView, dimension string) []string {
	seen := make(map[string]bool)
	var result []string
	for i := 0; i < view.Len(); i++ {
		val := view.Dimension(i, dimension)
		if val != "" && !seen[val] {
			seen[val] = true
			result = append(result, val)
		}
	}
	return result
}
