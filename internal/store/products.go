// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/pdiddy/trend-engine/pkg/types"
)

// SaveProduct records a newly created product and returns its row ID.
func (s *Store) SaveProduct(ctx context.Context, p types.Product) (int64, error) {
	ts := p.Timestamp
	if ts.IsZero() {
		ts = time.Now().UTC()
	}
	status := p.Status
	if status == "" {
		status = types.ProductCreated
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO products (keyword, name, type, link, status, revenue, timestamp)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		p.Keyword, p.Name, p.Type, p.Link, string(status), p.Revenue,
		ts.Format(time.RFC3339Nano),
	)
	if err != nil {
		return 0, fmt.Errorf("saving product %q: %w: %w", p.Name, ErrUnavailable, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("saving product %q: %w: %w", p.Name, ErrUnavailable, err)
	}
	return id, nil
}

// Products returns all products, most recent first.
func (s *Store) Products(ctx context.Context) ([]types.Product, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, keyword, name, type, link, status, revenue, timestamp
		 FROM products ORDER BY id DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("querying products: %w: %w", ErrUnavailable, err)
	}
	defer rows.Close()

	var products []types.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading products: %w: %w", ErrUnavailable, err)
	}
	return products, nil
}

// LatestCreatedProduct returns the most recent product still awaiting
// publication. Per prd005-publishing R1.1.
func (s *Store) LatestCreatedProduct(ctx context.Context) (types.Product, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, keyword, name, type, link, status, revenue, timestamp
		 FROM products WHERE status = ? ORDER BY id DESC LIMIT 1`,
		string(types.ProductCreated),
	)
	p, err := scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		return types.Product{}, fmt.Errorf("no unpublished products: %w", ErrNotFound)
	}
	return p, err
}

// SetProductStatus updates one product's lifecycle status.
func (s *Store) SetProductStatus(ctx context.Context, id int64, status types.ProductStatus) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE products SET status = ? WHERE id = ?`, string(status), id,
	)
	if err != nil {
		return fmt.Errorf("updating product %d: %w: %w", id, ErrUnavailable, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating product %d: %w: %w", id, ErrUnavailable, err)
	}
	if n == 0 {
		return fmt.Errorf("product %d: %w", id, ErrNotFound)
	}
	return nil
}

// AddRevenue records revenue against a product.
func (s *Store) AddRevenue(ctx context.Context, id int64, amount float64) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE products SET revenue = revenue + ? WHERE id = ?`, amount, id,
	)
	if err != nil {
		return fmt.Errorf("recording revenue for product %d: %w: %w", id, ErrUnavailable, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("recording revenue for product %d: %w: %w", id, ErrUnavailable, err)
	}
	if n == 0 {
		return fmt.Errorf("product %d: %w", id, ErrNotFound)
	}
	return nil
}

// Revenue returns the total revenue across all products.
func (s *Store) Revenue(ctx context.Context) (float64, error) {
	var total float64
	err := s.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(revenue), 0) FROM products`,
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("querying revenue: %w: %w", ErrUnavailable, err)
	}
	return total, nil
}

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (types.Product, error) {
	var p types.Product
	var status, ts string
	if err := row.Scan(&p.ID, &p.Keyword, &p.Name, &p.Type, &p.Link, &status, &p.Revenue, &ts); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Product{}, err
		}
		return types.Product{}, fmt.Errorf("scanning product: %w: %w", ErrUnavailable, err)
	}
	p.Status = types.ProductStatus(status)
	p.Timestamp, _ = time.Parse(time.RFC3339Nano, ts)
	return p, nil
}
