package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// WishlistEntry is a product snapshot saved to the wishlist. Entries
// form a set over ProductID.
type WishlistEntry struct {
	ProductID   int64           `json:"productId"`
	Name        string          `json:"name"`
	Image       string          `json:"image"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description,omitempty"`
	AddedAt     time.Time       `json:"addedAt"`
}

// WishlistRepository is the port for the wishlist-items durable record.
type WishlistRepository interface {
	LoadWishlist(ctx context.Context) ([]WishlistEntry, error)
	SaveWishlist(ctx context.Context, entries []WishlistEntry) error
}
