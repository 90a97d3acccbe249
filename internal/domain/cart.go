package domain

import (
	"context"
	"strconv"

	"github.com/shopspring/decimal"
)

// CartLineItem is a cart row keyed by product + variant. Price, name and
// image are snapshots taken when the line was created, so later catalog
// changes do not rewrite an existing cart.
type CartLineItem struct {
	LineKey   string          `json:"lineKey"`
	ProductID int64           `json:"productId"`
	VariantID int64           `json:"variantId,omitempty"`
	Name      string          `json:"name"`
	Image     string          `json:"image"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Quantity  int             `json:"quantity"`
	ColorName string          `json:"colorName,omitempty"`
	SizeName  string          `json:"sizeName,omitempty"`
}

// Subtotal returns unit price times quantity, exact.
func (l CartLineItem) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// LineKey derives the cart line key for a product and an optional
// variant. Zero means no variant.
func LineKey(productID, variantID int64) string {
	if variantID == 0 {
		return strconv.FormatInt(productID, 10)
	}
	return strconv.FormatInt(productID, 10) + ":" + strconv.FormatInt(variantID, 10)
}

// CartRepository is the port for the cart-items durable record. Save
// replaces the whole record; Load returns it in insertion order.
type CartRepository interface {
	LoadCart(ctx context.Context) ([]CartLineItem, error)
	SaveCart(ctx context.Context, items []CartLineItem) error
}
