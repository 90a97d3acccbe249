// Package memory implements an in-memory state store for development and testing.
package memory

import (
	"context"
	"sync"

	"github.com/AzmatKhan07/tech-verse-ecommerce-sub001/internal/domain"
)

// Store holds the four durable records in memory.
type Store struct {
	mu       sync.Mutex
	cart     []domain.CartLineItem
	wishlist []domain.WishlistEntry
	user     domain.UserSession
	remember bool
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{}
}

// Ensure interfaces are met.
var _ domain.CartRepository = (*Store)(nil)
var _ domain.WishlistRepository = (*Store)(nil)
var _ domain.SessionRepository = (*Store)(nil)

// --- CartRepository ---

// LoadCart returns the cart record in insertion order.
func (s *Store) LoadCart(ctx context.Context) ([]domain.CartLineItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.CartLineItem, len(s.cart))
	copy(out, s.cart)
	return out, nil
}

// SaveCart replaces the cart record.
func (s *Store) SaveCart(ctx context.Context, items []domain.CartLineItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cart = make([]domain.CartLineItem, len(items))
	copy(s.cart, items)
	return nil
}

// --- WishlistRepository ---

// LoadWishlist returns the wishlist record in insertion order.
func (s *Store) LoadWishlist(ctx context.Context) ([]domain.WishlistEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.WishlistEntry, len(s.wishlist))
	copy(out, s.wishlist)
	return out, nil
}

// SaveWishlist replaces the wishlist record.
func (s *Store) SaveWishlist(ctx context.Context, entries []domain.WishlistEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.wishlist = make([]domain.WishlistEntry, len(entries))
	copy(s.wishlist, entries)
	return nil
}

// --- SessionRepository ---

// LoadUser returns the user record.
func (s *Store) LoadUser(ctx context.Context) (domain.UserSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user, nil
}

// SaveUser replaces the user record.
func (s *Store) SaveUser(ctx context.Context, u domain.UserSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = u
	return nil
}

// LoadRememberMe returns the remember-me flag.
func (s *Store) LoadRememberMe(ctx context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.remember, nil
}

// SaveRememberMe replaces the remember-me flag.
func (s *Store) SaveRememberMe(ctx context.Context, remember bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.remember = remember
	return nil
}
