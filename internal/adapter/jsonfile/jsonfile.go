// Package jsonfile implements the per-device state store as JSON files.
//
// Each concern gets its own file, so a corrupt cart record never blocks
// hydration of the wishlist or the session. Writes replace the whole
// record via a temp file and rename.
package jsonfile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/AzmatKhan07/tech-verse-ecommerce-sub001/internal/domain"
)

const (
	cartFile     = "cart-items.json"
	wishlistFile = "wishlist-items.json"
	userFile     = "user.json"
	rememberFile = "remember-me.json"
)

// Store persists the four durable records under a directory.
type Store struct {
	dir string
}

// Ensure interfaces are met.
var _ domain.CartRepository = (*Store)(nil)
var _ domain.WishlistRepository = (*Store)(nil)
var _ domain.SessionRepository = (*Store)(nil)

// New creates the state directory if needed and returns a store over it.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create state dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

// LoadCart reads the cart-items record. A missing file is an empty cart.
func (s *Store) LoadCart(ctx context.Context) ([]domain.CartLineItem, error) {
	var items []domain.CartLineItem
	if err := s.load(cartFile, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// SaveCart replaces the cart-items record.
func (s *Store) SaveCart(ctx context.Context, items []domain.CartLineItem) error {
	if items == nil {
		items = []domain.CartLineItem{}
	}
	return s.save(cartFile, items)
}

// LoadWishlist reads the wishlist-items record.
func (s *Store) LoadWishlist(ctx context.Context) ([]domain.WishlistEntry, error) {
	var entries []domain.WishlistEntry
	if err := s.load(wishlistFile, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// SaveWishlist replaces the wishlist-items record.
func (s *Store) SaveWishlist(ctx context.Context, entries []domain.WishlistEntry) error {
	if entries == nil {
		entries = []domain.WishlistEntry{}
	}
	return s.save(wishlistFile, entries)
}

// LoadUser reads the user record. A missing file is the anonymous default.
func (s *Store) LoadUser(ctx context.Context) (domain.UserSession, error) {
	var u domain.UserSession
	if err := s.load(userFile, &u); err != nil {
		return domain.UserSession{}, err
	}
	return u, nil
}

// SaveUser replaces the user record.
func (s *Store) SaveUser(ctx context.Context, u domain.UserSession) error {
	return s.save(userFile, u)
}

// LoadRememberMe reads the remember-me flag, false when missing.
func (s *Store) LoadRememberMe(ctx context.Context) (bool, error) {
	var remember bool
	if err := s.load(rememberFile, &remember); err != nil {
		return false, err
	}
	return remember, nil
}

// SaveRememberMe replaces the remember-me flag.
func (s *Store) SaveRememberMe(ctx context.Context, remember bool) error {
	return s.save(rememberFile, remember)
}

func (s *Store) load(name string, dst any) error {
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read record %s: %w", name, err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("record %s: %w: %v", name, domain.ErrCorruptRecord, err)
	}
	return nil
}

func (s *Store) save(name string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode record %s: %w", name, err)
	}

	path := filepath.Join(s.dir, name)
	tmp, err := os.CreateTemp(s.dir, name+".tmp-*")
	if err != nil {
		return fmt.Errorf("write record %s: %w", name, err)
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("write record %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("write record %s: %w", name, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("write record %s: %w", name, err)
	}
	return nil
}
