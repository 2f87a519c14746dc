// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// ProductStatus tracks a product through creation and publishing.
// Per prd004-products R1.3, prd005-publishing R2.4.
type ProductStatus string

const (
	ProductCreated       ProductStatus = "created"
	ProductPublished     ProductStatus = "published"
	ProductPublishFailed ProductStatus = "publish_failed"
)

// Product is a materialized spreadsheet artifact built from a trend.
type Product struct {
	// ID is the store-assigned row identifier.
	ID int64 `json:"id" yaml:"id"`

	// Keyword is the trend keyword the product was built from.
	Keyword string `json:"keyword" yaml:"keyword"`

	// Name is the display title (e.g. "Daily Planner - Spreadsheet").
	Name string `json:"name" yaml:"name"`

	// Type is the product type assigned by the classifier (e.g. "Planner").
	Type string `json:"type" yaml:"type"`

	// Link locates the rendered artifact (file path or URL).
	Link string `json:"link" yaml:"link"`

	// Status is created, published, or publish_failed.
	Status ProductStatus `json:"status" yaml:"status"`

	// Revenue is the total revenue recorded against this product.
	Revenue float64 `json:"revenue" yaml:"revenue"`

	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
}
