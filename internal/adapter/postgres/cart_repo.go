package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/AzmatKhan07/tech-verse-ecommerce-sub001/internal/domain"

	"github.com/shopspring/decimal"
)

// LoadCart returns the cart record ordered by insertion position.
func (s *Store) LoadCart(ctx context.Context) ([]domain.CartLineItem, error) {
	rows, err := s.sql.QueryContext(ctx,
		"SELECT line_key, product_id, variant_id, name, image, unit_price, quantity, color_name, size_name FROM cart_items ORDER BY position;")
	if err != nil {
		return nil, err
	}
	defer rows.Close() //nolint:errcheck

	var out []domain.CartLineItem
	for rows.Next() {
		var l domain.CartLineItem
		var unitPrice string
		if err := rows.Scan(&l.LineKey, &l.ProductID, &l.VariantID, &l.Name, &l.Image, &unitPrice, &l.Quantity, &l.ColorName, &l.SizeName); err != nil {
			return nil, err
		}
		l.UnitPrice, err = decimal.NewFromString(unitPrice)
		if err != nil {
			return nil, fmt.Errorf("record cart-items: %w: bad unit price %q", domain.ErrCorruptRecord, unitPrice)
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

// SaveCart replaces the cart record.
func (s *Store) SaveCart(ctx context.Context, items []domain.CartLineItem) error {
	return s.replace(ctx, "DELETE FROM cart_items;", func(tx *sql.Tx) error {
		for i, l := range items {
			_, err := tx.ExecContext(ctx,
				"INSERT INTO cart_items(line_key, product_id, variant_id, name, image, unit_price, quantity, color_name, size_name, position) VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);",
				l.LineKey, l.ProductID, l.VariantID, l.Name, l.Image, l.UnitPrice.String(), l.Quantity, l.ColorName, l.SizeName, i,
			)
			if err != nil {
				return err
			}
		}
		return nil
	})
}
