// Package sqlite implements the per-device state store on a local SQLite
// database, for installs that outgrow flat JSON records.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/AzmatKhan07/tech-verse-ecommerce-sub001/internal/domain"

	_ "modernc.org/sqlite"
)

// Store wraps a *sql.DB and implements the state repository interfaces.
type Store struct {
	sql *sql.DB
}

// Ensure interfaces are met.
var _ domain.CartRepository = (*Store)(nil)
var _ domain.WishlistRepository = (*Store)(nil)
var _ domain.SessionRepository = (*Store)(nil)

// Open opens the database at the given path, enables WAL mode and runs
// migrations.
func Open(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	ctx := context.Background()
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys=ON"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	s := &Store{sql: db}
	if err := s.migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.sql.Close()
}

func (s *Store) migrate(ctx context.Context) error {
	stmts := []string{
		"CREATE TABLE IF NOT EXISTS cart_items (line_key TEXT PRIMARY KEY, product_id INTEGER NOT NULL, variant_id INTEGER NOT NULL DEFAULT 0, name TEXT NOT NULL, image TEXT NOT NULL DEFAULT '', unit_price TEXT NOT NULL, quantity INTEGER NOT NULL CHECK(quantity >= 1), color_name TEXT NOT NULL DEFAULT '', size_name TEXT NOT NULL DEFAULT '', position INTEGER NOT NULL);",
		"CREATE TABLE IF NOT EXISTS wishlist_items (product_id INTEGER PRIMARY KEY, name TEXT NOT NULL, image TEXT NOT NULL DEFAULT '', price TEXT NOT NULL, description TEXT NOT NULL DEFAULT '', added_at TEXT NOT NULL, position INTEGER NOT NULL);",
		"CREATE TABLE IF NOT EXISTS user_state (id INTEGER PRIMARY KEY CHECK(id = 1), doc TEXT NOT NULL);",
		"CREATE TABLE IF NOT EXISTS remember_me (id INTEGER PRIMARY KEY CHECK(id = 1), remember INTEGER NOT NULL);",
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
