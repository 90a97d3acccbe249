// Package postgres implements a server-backed state store, used when the
// storefront runs with an account-scoped backend instead of on-device
// files.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/AzmatKhan07/tech-verse-ecommerce-sub001/internal/domain"

	_ "github.com/lib/pq"
)

// Store wraps a *sql.DB and implements the state repository interfaces.
type Store struct {
	sql *sql.DB
}

// Ensure interfaces are met.
var _ domain.CartRepository = (*Store)(nil)
var _ domain.WishlistRepository = (*Store)(nil)
var _ domain.SessionRepository = (*Store)(nil)

// Open connects to PostgreSQL, pings, and runs migrations.
func Open(connStr string) (*Store, error) {
	s, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}
	s.SetMaxOpenConns(10)
	s.SetMaxIdleConns(5)
	s.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.PingContext(ctx); err != nil {
		_ = s.Close()
		return nil, err
	}

	st := &Store{sql: s}
	if err := st.migrate(ctx); err != nil {
		_ = s.Close()
		return nil, err
	}
	return st, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.sql.Close()
}

func (s *Store) migrate(ctx context.Context) error {
	stmts := []string{
		"CREATE TABLE IF NOT EXISTS cart_items (line_key TEXT PRIMARY KEY, product_id BIGINT NOT NULL, variant_id BIGINT NOT NULL DEFAULT 0, name TEXT NOT NULL, image TEXT NOT NULL DEFAULT '', unit_price TEXT NOT NULL, quantity INT NOT NULL CHECK(quantity >= 1), color_name TEXT NOT NULL DEFAULT '', size_name TEXT NOT NULL DEFAULT '', position INT NOT NULL);",
		"CREATE TABLE IF NOT EXISTS wishlist_items (product_id BIGINT PRIMARY KEY, name TEXT NOT NULL, image TEXT NOT NULL DEFAULT '', price TEXT NOT NULL, description TEXT NOT NULL DEFAULT '', added_at TIMESTAMPTZ NOT NULL, position INT NOT NULL);",
		"CREATE TABLE IF NOT EXISTS user_state (id SMALLINT PRIMARY KEY CHECK(id = 1), doc TEXT NOT NULL);",
		"CREATE TABLE IF NOT EXISTS remember_me (id SMALLINT PRIMARY KEY CHECK(id = 1), remember BOOLEAN NOT NULL);",
	}
	for _, stmt := range stmts {
		if _, err := s.sql.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

// replace runs a full-record rewrite inside one transaction.
func (s *Store) replace(ctx context.Context, deleteStmt string, insert func(tx *sql.Tx) error) error {
	tx, err := s.sql.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, deleteStmt); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := insert(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}
