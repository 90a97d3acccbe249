// Package domain contains the core commerce entities and interfaces.
package domain

import "github.com/shopspring/decimal"

// VariantAttribute is one purchasable configuration of a product,
// carrying its own price and MRP. The catalog feed owns these; engines
// only read them.
type VariantAttribute struct {
	ID        int64           `json:"id,omitempty"`
	Price     decimal.Decimal `json:"price"`
	MRP       decimal.Decimal `json:"mrp"`
	ColorName string          `json:"color_name,omitempty"`
	SizeName  string          `json:"size_name,omitempty"`
	SKU       string          `json:"sku,omitempty"`
	Qty       int             `json:"qty,omitempty"`
}

// Product is a read-only snapshot supplied by the data-fetching layer.
// Engines copy the fields they need into their own records at the moment
// of a mutating call and never write back to the product.
type Product struct {
	ID           int64              `json:"id"`
	Name         string             `json:"name"`
	Image        string             `json:"image"`
	Slug         string             `json:"slug"`
	Description  string             `json:"description,omitempty"`
	Attributes   []VariantAttribute `json:"attributes"`
	AvgRating    float64            `json:"avg_rating"`
	IsArrival    bool               `json:"is_arrival"`
	IsDiscounted bool               `json:"is_discounted"`
	IsPromo      bool               `json:"is_promo"`
}
