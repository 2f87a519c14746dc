// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package product turns researched keywords into sellable spreadsheet
// products rendered as CSV files.
// Implements: prd004-products (R1-R3);
//
//	docs/ARCHITECTURE § Product Creation.
package product

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pdiddy/trend-engine/internal/store"
	"github.com/pdiddy/trend-engine/pkg/types"
)

const agentName = "creation-agent"

// Creator renders product spreadsheets and records them in the store.
type Creator struct {
	Store *store.Store
	Cfg   types.CreationConfig
	Out   io.Writer
}

// CreateFromLatest builds a product for the top-ranked keyword of the
// latest research run. Items are stored in rank order, so the first
// non-deleted item is the best remaining trend (R1.1).
func (c *Creator) CreateFromLatest(ctx context.Context) (types.Product, error) {
	run, items, err := c.Store.LatestRun(ctx)
	if err != nil {
		return types.Product{}, fmt.Errorf("loading latest run: %w", err)
	}
	if run.RunID == "" || len(items) == 0 {
		return types.Product{}, fmt.Errorf("no research items to build from: %w", store.ErrNotFound)
	}
	top := items[0]
	return c.Create(ctx, top.Keyword, top.ProductType)
}

// Create renders the CSV spreadsheet for one keyword and persists the
// product row. The file lands in the configured products directory;
// its path becomes the product link (R1.2, R1.3).
func (c *Creator) Create(ctx context.Context, keyword, productType string) (types.Product, error) {
	out := c.Out
	if out == nil {
		out = io.Discard
	}

	tmpl, err := loadTemplate(c.Cfg.TemplatesDir, productType)
	if err != nil {
		return types.Product{}, err
	}

	name := renderTitle(tmpl.Title, keyword)
	path, err := c.writeCSV(name, tmpl)
	if err != nil {
		return types.Product{}, err
	}

	p := types.Product{
		Keyword:   keyword,
		Name:      name,
		Type:      productType,
		Link:      path,
		Status:    types.ProductCreated,
		Timestamp: time.Now().UTC(),
	}
	id, err := c.Store.SaveProduct(ctx, p)
	if err != nil {
		return types.Product{}, err
	}
	p.ID = id

	_ = c.Store.LogActivity(ctx, agentName, "product_created", fmt.Sprintf("%s (%s) -> %s", name, productType, path))
	fmt.Fprintf(out, "created product %q at %s\n", name, path)
	return p, nil
}

// writeCSV renders the template into ProductsDir and returns the file
// path. The first row is the title, the second the column headers.
func (c *Creator) writeCSV(name string, tmpl Template) (string, error) {
	dir := c.Cfg.ProductsDir
	if dir == "" {
		dir = "products"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating products directory: %w", err)
	}

	path := filepath.Join(dir, slug(name)+".csv")
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating product file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	records := [][]string{{name}}
	if len(tmpl.Columns) > 0 {
		records = append(records, tmpl.Columns)
	}
	records = append(records, tmpl.Rows...)
	if err := w.WriteAll(records); err != nil {
		return "", fmt.Errorf("writing product file: %w", err)
	}
	return path, nil
}

// slug reduces a product name to a filesystem-safe lowercase token.
func slug(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '_':
			b.WriteByte('-')
		}
	}
	return strings.Trim(b.String(), "-")
}
