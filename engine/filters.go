package engine

import (
	"strings"
)

// ============================================================================
// FILTERS — Dimension-Based Filtering via RecordView
// ============================================================================
// Single-pass filter: checks ALL dimension constraints per record in one loop.
// Returns a SubView (index list into parent) — zero data copy.
// Matching is case-insensitive; callers that need a stronger identity (title
// case names) normalize both sides before they get here.
// ============================================================================

// ApplyFilters returns a view of records matching all dimension filters.
// Dimensions are AND-combined; values within a dimension are OR-combined.
// Empty filter = no restriction (returns original view).
func ApplyFilters(view RecordView, filters Filters) RecordView {
	if filters.IsEmpty() {
		return view
	}

	sets := make(map[string]map[string]bool)
	for dim, allowed := range filters.Dimensions {
		if len(allowed) > 0 {
			sets[dim] = toLowerSet(allowed)
		}
	}

	if len(sets) == 0 {
		return view
	}

	return FilterFunc(view, func(i int) bool {
		for dim, set := range sets {
			if !set[strings.ToLower(view.Dimension(i, dim))] {
				return false
			}
		}
		return true
	})
}

// FilterFunc returns a view of the records for which keep returns true.
// keep receives indices into view.
func FilterFunc(view RecordView, keep func(i int) bool) RecordView {
	n := view.Len()
	indices := make([]int, 0, n)
	for i := 0; i < n; i++ {
		if keep(i) {
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
