// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package product

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"
)

// Template describes the spreadsheet layout for one product type: a
// title row substituted with the keyword, then fixed content rows.
type Template struct {
	Title   string     `json:"title" yaml:"title"`
	Columns []string   `json:"columns" yaml:"columns"`
	Rows    [][]string `json:"rows" yaml:"rows"`
}

// builtinTemplates ship with the binary so product creation works with
// no templates directory at all. Keys are product types from the
// classifier; lookups fall back to "Template".
var builtinTemplates = map[string]Template{
	"Planner": {
		Title:   "{keyword} Planner",
		Columns: []string{"Time", "Task", "Priority", "Done"},
		Rows: [][]string{
			{"06:00", "", "", ""},
			{"08:00", "", "", ""},
			{"10:00", "", "", ""},
			{"12:00", "", "", ""},
			{"14:00", "", "", ""},
			{"16:00", "", "", ""},
			{"18:00", "", "", ""},
			{"20:00", "", "", ""},
		},
	},
	"Tracker": {
		Title:   "{keyword} Tracker",
		Columns: []string{"Date", "Category", "Amount", "Notes"},
		Rows: [][]string{
			{"", "Income", "", ""},
			{"", "Housing", "", ""},
			{"", "Food", "", ""},
			{"", "Transport", "", ""},
			{"", "Savings", "", ""},
			{"", "Other", "", ""},
		},
	},
	"Journal": {
		Title:   "{keyword} Journal",
		Columns: []string{"Date", "Prompt", "Entry"},
		Rows: [][]string{
			{"", "What went well today?", ""},
			{"", "What am I grateful for?", ""},
			{"", "What will I improve tomorrow?", ""},
		},
	},
	"Template": {
		Title:   "{keyword}",
		Columns: []string{"Item", "Value", "Notes"},
		Rows: [][]string{
			{"", "", ""},
			{"", "", ""},
			{"", "", ""},
		},
	},
}

// loadTemplate resolves the template for a product type: a YAML file
// named after the lowercased type in templatesDir wins, then the
// builtin for that type, then the generic builtin.
func loadTemplate(templatesDir, productType string) (Template, error) {
	if templatesDir != "" {
		path := filepath.Join(templatesDir, strings.ToLower(productType)+".yaml")
		data, err := os.ReadFile(path)
		if err == nil {
			var t Template
			if err := yaml.Unmarshal(data, &t); err != nil {
				return Template{}, fmt.Errorf("parsing template %s: %w", path, err)
			}
			return t, nil
		}
		if !os.IsNotExist(err) {
			return Template{}, fmt.Errorf("reading template %s: %w", path, err)
		}
	}

	if t, ok := builtinTemplates[productType]; ok {
		return t, nil
	}
	return builtinTemplates["Template"], nil
}

// renderTitle substitutes the keyword into a template title.
func renderTitle(title, keyword string) string {
	return strings.ReplaceAll(title, "{keyword}", titleCase(keyword))
}

// titleCase uppercases the first letter of each word. Keywords are
// ASCII marketplace phrases, so the byte-level fold is sufficient.
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		if w[0] >= 'a' && w[0] <= 'z' {
			words[i] = string(w[0]-'a'+'A') + w[1:]
		}
	}
	return strings.Join(words, " ")
}
