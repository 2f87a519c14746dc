// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package research

import "github.com/pdiddy/trend-engine/internal/aggregate"

// Dedupe drops later occurrences of items whose folded keyword was
// already seen, preserving first-seen order (R2.1). The keyword func
// extracts the raw keyword from an item; folding is applied here so
// "Dog Planner" and " dog  planner " collapse to one entry.
func Dedupe[T any](items []T, keyword func(T) string) []T {
	seen := make(map[string]bool, len(items))
	out := make([]T, 0, len(items))
	for _, item := range items {
		key := aggregate.FoldKeyword(keyword(item))
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, item)
	}
	return out
}
