// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package research

import "strings"

// productPatterns maps keyword substrings to product types. Order is
// precedence: the first matching pattern wins, so "budget tracker"
// resolves to Tracker via "budget" before "tracker" is ever checked.
// Keep new patterns in deliberate positions.
var productPatterns = []struct {
	pattern     string
	productType string
}{
	{"planner", "Planner"},
	{"budget", "Tracker"},
	{"finance", "Tracker"},
	{"tracker", "Tracker"},
	{"journal", "Journal"},
	{"sticker", "Sticker"},
	{"checklist", "Checklist"},
	{"template", "Template"},
}

// DefaultProductType is assigned when no pattern matches.
const DefaultProductType = "Template"

// Classify infers a product type from a keyword via the ordered pattern
// table (R2.2).
func Classify(keyword string) string {
	folded := strings.ToLower(keyword)
	for _, p := range productPatterns {
		if strings.Contains(folded, p.pattern) {
			return p.productType
		}
	}
	return DefaultProductType
}
