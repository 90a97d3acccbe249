package app

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/AzmatKhan07/tech-verse-ecommerce-sub001/internal/domain"

	"github.com/shopspring/decimal"
)

// WishlistService owns the wishlist: a set of product snapshots keyed
// by product ID. Unlike the cart, wishlist mutation is not gated on
// login.
type WishlistService struct {
	mu      sync.Mutex
	repo    domain.WishlistRepository
	entries []domain.WishlistEntry
	now     func() time.Time
}

// NewWishlistService creates a wishlist engine backed by the given
// repository.
func NewWishlistService(repo domain.WishlistRepository) *WishlistService {
	return &WishlistService{repo: repo, now: time.Now}
}

// Hydrate loads the persisted wishlist record. A corrupt record resets
// only the wishlist; the error is logged, never propagated.
func (s *WishlistService) Hydrate(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.repo.LoadWishlist(ctx)
	if err != nil {
		log.Printf("wishlist: hydrate wishlist-items record: %v", err)
		s.entries = nil
		return
	}
	s.entries = entries
}

// Toggle adds the product if absent and removes it if present. The
// returned bool reports membership after the call. Two consecutive
// toggles restore the original state.
func (s *WishlistService) Toggle(ctx context.Context, p domain.Product) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexOf(p.ID); i >= 0 {
		s.entries = append(s.entries[:i], s.entries[i+1:]...)
		return false, s.save(ctx)
	}
	s.entries = append(s.entries, s.snapshot(p))
	return true, s.save(ctx)
}

// Add inserts a snapshot of the product. A product already on the
// wishlist is a no-op.
func (s *WishlistService) Add(ctx context.Context, p domain.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexOf(p.ID) >= 0 {
		return nil
	}
	s.entries = append(s.entries, s.snapshot(p))
	return s.save(ctx)
}

// Remove deletes the entry for the product. A missing entry is a no-op.
func (s *WishlistService) Remove(ctx context.Context, productID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(productID)
	if i < 0 {
		return nil
	}
	s.entries = append(s.entries[:i], s.entries[i+1:]...)
	return s.save(ctx)
}

// Contains reports wishlist membership for the product.
func (s *WishlistService) Contains(productID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.indexOf(productID) >= 0
}

// Entries returns a copy of the wishlist in insertion order.
func (s *WishlistService) Entries() []domain.WishlistEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.WishlistEntry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Count returns the number of wishlist entries.
func (s *WishlistService) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

func (s *WishlistService) snapshot(p domain.Product) domain.WishlistEntry {
	price := decimal.Zero
	if q, ok := domain.EffectivePrice(p.Attributes); ok {
		price = q.Price
	}
	return domain.WishlistEntry{
		ProductID:   p.ID,
		Name:        p.Name,
		Image:       p.Image,
		Price:       price,
		Description: p.Description,
		AddedAt:     s.now().UTC(),
	}
}

// indexOf must be called with the lock held.
func (s *WishlistService) indexOf(productID int64) int {
	for i := range s.entries {
		if s.entries[i].ProductID == productID {
			return i
		}
	}
	return -1
}

// save must be called with the lock held.
func (s *WishlistService) save(ctx context.Context) error {
	entries := make([]domain.WishlistEntry, len(s.entries))
	copy(entries, s.entries)
	return s.repo.SaveWishlist(ctx, entries)
}
