package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/AzmatKhan07/tech-verse-ecommerce-sub001/internal/domain"

	"github.com/shopspring/decimal"
)

// LoadWishlist returns the wishlist record ordered by insertion position.
func (s *Store) LoadWishlist(ctx context.Context) ([]domain.WishlistEntry, error) {
	rows, err := s.sql.QueryContext(ctx,
		"SELECT product_id, name, image, price, description, added_at FROM wishlist_items ORDER BY position;")
	if err != nil {
		return nil, err
	}
	defer rows.Close() //nolint:errcheck

	var out []domain.WishlistEntry
	for rows.Next() {
		var e domain.WishlistEntry
		var price, addedAt string
		if err := rows.Scan(&e.ProductID, &e.Name, &e.Image, &price, &e.Description, &addedAt); err != nil {
			return nil, err
		}
		e.Price, err = decimal.NewFromString(price)
		if err != nil {
			return nil, fmt.Errorf("record wishlist-items: %w: bad price %q", domain.ErrCorruptRecord, price)
		}
		e.AddedAt, err = time.Parse(time.RFC3339Nano, addedAt)
		if err != nil {
			return nil, fmt.Errorf("record wishlist-items: %w: bad timestamp %q", domain.ErrCorruptRecord, addedAt)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// SaveWishlist replaces the wishlist record.
func (s *Store) SaveWishlist(ctx context.Context, entries []domain.WishlistEntry) error {
	return s.replace(ctx, "DELETE FROM wishlist_items;", func(tx *sql.Tx) error {
		for i, e := range entries {
			_, err := tx.ExecContext(ctx,
				"INSERT INTO wishlist_items(product_id, name, image, price, description, added_at, position) VALUES(?, ?, ?, ?, ?, ?, ?);",
				e.ProductID, e.Name, e.Image, e.Price.String(), e.Description, e.AddedAt.UTC().Format(time.RFC3339Nano), i,
			)
			if err != nil {
				return err
			}
		}
		return nil
	})
}
