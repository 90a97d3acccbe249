package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/AzmatKhan07/tech-verse-ecommerce-sub001/internal/domain"
)

// LoadUser reads the user record, the anonymous default when absent.
func (s *Store) LoadUser(ctx context.Context) (domain.UserSession, error) {
	var doc string
	err := s.sql.QueryRowContext(ctx, "SELECT doc FROM user_state WHERE id = 1;").Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.UserSession{}, nil
	}
	if err != nil {
		return domain.UserSession{}, err
	}

	var u domain.UserSession
	if err := json.Unmarshal([]byte(doc), &u); err != nil {
		return domain.UserSession{}, fmt.Errorf("record user: %w: %v", domain.ErrCorruptRecord, err)
	}
	return u, nil
}

// SaveUser replaces the user record.
func (s *Store) SaveUser(ctx context.Context, u domain.UserSession) error {
	doc, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("encode record user: %w", err)
	}
	_, err = s.sql.ExecContext(ctx,
		"INSERT INTO user_state(id, doc) VALUES(1, ?) ON CONFLICT(id) DO UPDATE SET doc = excluded.doc;",
		string(doc),
	)
	return err
}

// LoadRememberMe reads the remember-me flag, false when absent.
func (s *Store) LoadRememberMe(ctx context.Context) (bool, error) {
	var remember bool
	err := s.sql.QueryRowContext(ctx, "SELECT remember FROM remember_me WHERE id = 1;").Scan(&remember)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	return remember, err
}

// SaveRememberMe replaces the remember-me flag.
func (s *Store) SaveRememberMe(ctx context.Context, remember bool) error {
	_, err := s.sql.ExecContext(ctx,
		"INSERT INTO remember_me(id, remember) VALUES(1, ?) ON CONFLICT(id) DO UPDATE SET remember = excluded.remember;",
		remember,
	)
	return err
}
