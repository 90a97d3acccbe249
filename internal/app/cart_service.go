package app

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/AzmatKhan07/tech-verse-ecommerce-sub001/internal/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	// ErrInvalidQuantity indicates a non-positive quantity on add.
	ErrInvalidQuantity = errors.New("quantity must be a positive integer")
	// ErrEmptyCart indicates an order placement on an empty cart.
	ErrEmptyCart = errors.New("cart is empty")
)

// Gate is the slice of the session engine the cart consults: the login
// gate for mutations and the order record for checkout.
type Gate interface {
	RequiresLogin() bool
	RecordOrder(ctx context.Context, o domain.Order) error
}

// CartService owns the cart line collection. Lines are keyed by
// product + variant; every successful mutation writes the whole record
// through to the repository.
type CartService struct {
	mu      sync.Mutex
	repo    domain.CartRepository
	session Gate
	lines   []domain.CartLineItem
}

// NewCartService creates a cart engine backed by the given repository
// and login gate.
func NewCartService(repo domain.CartRepository, session Gate) *CartService {
	return &CartService{repo: repo, session: session}
}

// Hydrate loads the persisted cart record. A corrupt record resets only
// the cart; the error is logged, never propagated.
func (s *CartService) Hydrate(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.repo.LoadCart(ctx)
	if err != nil {
		log.Printf("cart: hydrate cart-items record: %v", err)
		s.lines = nil
		return
	}
	s.lines = items
}

// Add puts quantity units of the product into the cart. When a line
// with the same product+variant key exists, the quantities merge into
// that line; a new variant of the same product gets its own line. The
// unit price is snapshotted from the chosen variant, or from the first
// attribute when none is given; a product with no attributes yields a
// zero-price line and the "price not available" label is the UI's
// concern. Returns ErrLoginRequired, without mutating anything, when no
// user is logged in.
func (s *CartService) Add(ctx context.Context, p domain.Product, quantity int, variant *domain.VariantAttribute) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	if s.session.RequiresLogin() {
		return ErrLoginRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	attr := variant
	if attr == nil && len(p.Attributes) > 0 {
		attr = &p.Attributes[0]
	}

	var unitPrice decimal.Decimal
	var variantID int64
	var colorName, sizeName string
	if attr != nil {
		unitPrice = attr.Price
		variantID = attr.ID
		colorName = attr.ColorName
		sizeName = attr.SizeName
	}

	key := domain.LineKey(p.ID, variantID)
	merged := false
	for i := range s.lines {
		if s.lines[i].LineKey == key {
			s.lines[i].Quantity += quantity
			merged = true
			break
		}
	}
	if !merged {
		s.lines = append(s.lines, domain.CartLineItem{
			LineKey:   key,
			ProductID: p.ID,
			VariantID: variantID,
			Name:      p.Name,
			Image:     p.Image,
			UnitPrice: unitPrice,
			Quantity:  quantity,
			ColorName: colorName,
			SizeName:  sizeName,
		})
	}
	return s.save(ctx)
}

// UpdateQuantity sets the quantity of a line. A quantity below 1
// deletes the line; the cart never stores a zero or negative quantity.
// Unknown keys are a no-op.
func (s *CartService) UpdateQuantity(ctx context.Context, lineKey string, quantity int) error {
	if quantity < 1 {
		return s.Remove(ctx, lineKey)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.lines {
		if s.lines[i].LineKey == lineKey {
			s.lines[i].Quantity = quantity
			return s.save(ctx)
		}
	}
	return nil
}

// Remove deletes a line unconditionally. A missing line is a no-op, not
// an error.
func (s *CartService) Remove(ctx context.Context, lineKey string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.lines {
		if s.lines[i].LineKey == lineKey {
			s.lines = append(s.lines[:i], s.lines[i+1:]...)
			return s.save(ctx)
		}
	}
	return nil
}

// Clear empties the cart.
func (s *CartService) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.lines) == 0 {
		return nil
	}
	s.lines = nil
	return s.save(ctx)
}

// Items returns a copy of the cart lines in insertion order.
func (s *CartService) Items() []domain.CartLineItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.CartLineItem, len(s.lines))
	copy(out, s.lines)
	return out
}

// Count returns the number of cart lines.
func (s *CartService) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.lines)
}

// Contains reports whether any line holds the product, regardless of
// variant. Membership is product-level on purpose: every display
// surface shows the same "in cart" state even when only one color or
// size of the product was added.
func (s *CartService) Contains(productID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.lines {
		if s.lines[i].ProductID == productID {
			return true
		}
	}
	return false
}

// Total returns the exact sum of unit price times quantity over all
// lines. Rounding happens only at display time, see DisplayTotal.
func (s *CartService) Total() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.total()
}

// DisplayTotal returns the cart total rounded half-to-even at two
// decimals, formatted for display.
func (s *CartService) DisplayTotal() string {
	return s.Total().RoundBank(2).StringFixed(2)
}

// PlaceOrder snapshots the cart into a cached order on the user record
// and clears the cart. Gated on login like every cart mutation.
func (s *CartService) PlaceOrder(ctx context.Context) (domain.Order, error) {
	if s.session.RequiresLogin() {
		return domain.Order{}, ErrLoginRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.lines) == 0 {
		return domain.Order{}, ErrEmptyCart
	}

	items := make([]domain.CartLineItem, len(s.lines))
	copy(items, s.lines)
	order := domain.Order{
		ID:       uuid.NewString(),
		Items:    items,
		Total:    s.total().RoundBank(2),
		PlacedAt: time.Now().UTC(),
	}

	if err := s.session.RecordOrder(ctx, order); err != nil {
		return domain.Order{}, err
	}

	s.lines = nil
	if err := s.save(ctx); err != nil {
		return domain.Order{}, err
	}
	return order, nil
}

// total must be called with the lock held.
func (s *CartService) total() decimal.Decimal {
	sum := decimal.Zero
	for i := range s.lines {
		sum = sum.Add(s.lines[i].Subtotal())
	}
	return sum
}

// save must be called with the lock held.
func (s *CartService) save(ctx context.Context) error {
	items := make([]domain.CartLineItem, len(s.lines))
	copy(items, s.lines)
	return s.repo.SaveCart(ctx, items)
}
