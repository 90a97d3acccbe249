package app_test

import (
	"context"
	"errors"
	"testing"

	"github.com/AzmatKhan07/tech-verse-ecommerce-sub001/internal/app"
	"github.com/AzmatKhan07/tech-verse-ecommerce-sub001/internal/domain"

	"github.com/shopspring/decimal"
)

type mockCartRepo struct {
	loadFn func(ctx context.Context) ([]domain.CartLineItem, error)
	saveFn func(ctx context.Context, items []domain.CartLineItem) error
	saved  [][]domain.CartLineItem
}

func (m *mockCartRepo) LoadCart(ctx context.Context) ([]domain.CartLineItem, error) {
	if m.loadFn != nil {
		return m.loadFn(ctx)
	}
	return nil, nil
}

func (m *mockCartRepo) SaveCart(ctx context.Context, items []domain.CartLineItem) error {
	m.saved = append(m.saved, items)
	if m.saveFn != nil {
		return m.saveFn(ctx, items)
	}
	return nil
}

type fakeGate struct {
	loggedOut bool
	orders    []domain.Order
}

func (g *fakeGate) RequiresLogin() bool { return g.loggedOut }

func (g *fakeGate) RecordOrder(_ context.Context, o domain.Order) error {
	g.orders = append(g.orders, o)
	return nil
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func product(id int64, price string) domain.Product {
	return domain.Product{
		ID:   id,
		Name: "product",
		Attributes: []domain.VariantAttribute{
			{ID: 1, Price: dec(price)},
		},
	}
}

func TestCartAdd_MergesSameLine(t *testing.T) {
	repo := &mockCartRepo{}
	svc := app.NewCartService(repo, &fakeGate{})
	ctx := context.Background()

	if err := svc.Add(ctx, product(1, "199"), 1, nil); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := svc.Add(ctx, product(1, "199"), 2, nil); err != nil {
		t.Fatalf("Add: %v", err)
	}

	items := svc.Items()
	if len(items) != 1 {
		t.Fatalf("expected 1 line, got %d", len(items))
	}
	if items[0].Quantity != 3 {
		t.Errorf("expected quantity 3, got %d", items[0].Quantity)
	}
	if got := svc.DisplayTotal(); got != "597.00" {
		t.Errorf("expected total 597.00, got %s", got)
	}
	if len(repo.saved) != 2 {
		t.Errorf("expected 2 write-throughs, got %d", len(repo.saved))
	}
}

func TestCartAdd_DifferentVariantsGetOwnLines(t *testing.T) {
	p := domain.Product{
		ID:   1,
		Name: "shirt",
		Attributes: []domain.VariantAttribute{
			{ID: 10, Price: dec("100"), ColorName: "red"},
			{ID: 11, Price: dec("120"), ColorName: "blue"},
		},
	}
	svc := app.NewCartService(&mockCartRepo{}, &fakeGate{})
	ctx := context.Background()

	if err := svc.Add(ctx, p, 1, &p.Attributes[0]); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := svc.Add(ctx, p, 1, &p.Attributes[1]); err != nil {
		t.Fatalf("Add: %v", err)
	}

	if got := svc.Count(); got != 2 {
		t.Fatalf("expected 2 lines, got %d", got)
	}
	// Membership stays product-level even across variants.
	if !svc.Contains(1) {
		t.Error("expected product 1 in cart")
	}
	if !svc.Total().Equal(dec("220")) {
		t.Errorf("expected total 220, got %s", svc.Total())
	}
}

func TestCartAdd_LoginGate(t *testing.T) {
	repo := &mockCartRepo{}
	svc := app.NewCartService(repo, &fakeGate{loggedOut: true})

	err := svc.Add(context.Background(), product(1, "50"), 1, nil)
	if !errors.Is(err, app.ErrLoginRequired) {
		t.Fatalf("expected ErrLoginRequired, got %v", err)
	}
	if svc.Count() != 0 {
		t.Error("gated add must not mutate the cart")
	}
	if !svc.Total().IsZero() {
		t.Error("gated add must not change the total")
	}
	if len(repo.saved) != 0 {
		t.Error("gated add must not write through")
	}
}

func TestCartAdd_InvalidQuantity(t *testing.T) {
	repo := &mockCartRepo{}
	svc := app.NewCartService(repo, &fakeGate{})

	for _, qty := range []int{0, -1} {
		err := svc.Add(context.Background(), product(1, "50"), qty, nil)
		if !errors.Is(err, app.ErrInvalidQuantity) {
			t.Errorf("qty %d: expected ErrInvalidQuantity, got %v", qty, err)
		}
	}
	if svc.Count() != 0 || len(repo.saved) != 0 {
		t.Error("invalid quantity must not mutate state")
	}
}

func TestCartAdd_NoAttributesYieldsZeroPriceLine(t *testing.T) {
	svc := app.NewCartService(&mockCartRepo{}, &fakeGate{})

	p := domain.Product{ID: 9, Name: "unpriced"}
	if err := svc.Add(context.Background(), p, 2, nil); err != nil {
		t.Fatalf("Add: %v", err)
	}

	items := svc.Items()
	if len(items) != 1 {
		t.Fatalf("expected 1 line, got %d", len(items))
	}
	if !items[0].UnitPrice.IsZero() {
		t.Errorf("expected zero unit price, got %s", items[0].UnitPrice)
	}
	if !svc.Total().IsZero() {
		t.Errorf("expected zero total, got %s", svc.Total())
	}
}

func TestCartUpdateQuantity(t *testing.T) {
	svc := app.NewCartService(&mockCartRepo{}, &fakeGate{})
	ctx := context.Background()

	if err := svc.Add(ctx, product(1, "10.50"), 2, nil); err != nil {
		t.Fatalf("Add: %v", err)
	}
	key := svc.Items()[0].LineKey

	if err := svc.UpdateQuantity(ctx, key, 5); err != nil {
		t.Fatalf("UpdateQuantity: %v", err)
	}
	if got := svc.Items()[0].Quantity; got != 5 {
		t.Errorf("expected quantity 5, got %d", got)
	}
	if got := svc.DisplayTotal(); got != "52.50" {
		t.Errorf("expected total 52.50, got %s", got)
	}

	// Below 1 the line is deleted, never clamped.
	if err := svc.UpdateQuantity(ctx, key, 0); err != nil {
		t.Fatalf("UpdateQuantity: %v", err)
	}
	if svc.Count() != 0 {
		t.Error("expected line deleted at quantity 0")
	}

	// Unknown key is a no-op.
	if err := svc.UpdateQuantity(ctx, "404", 3); err != nil {
		t.Fatalf("UpdateQuantity on missing key: %v", err)
	}
	if svc.Count() != 0 {
		t.Error("update on missing key must not create a line")
	}
}

func TestCartRemove_MissingLineIsNoop(t *testing.T) {
	repo := &mockCartRepo{}
	svc := app.NewCartService(repo, &fakeGate{})

	if err := svc.Remove(context.Background(), "404"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if len(repo.saved) != 0 {
		t.Error("no-op remove must not write through")
	}
}

func TestCartTotal_ExactToTheCent(t *testing.T) {
	svc := app.NewCartService(&mockCartRepo{}, &fakeGate{})
	ctx := context.Background()

	// 0.10 x 3 would drift with float accumulation.
	if err := svc.Add(ctx, product(1, "0.10"), 3, nil); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := svc.Add(ctx, product(2, "19.99"), 7, nil); err != nil {
		t.Fatalf("Add: %v", err)
	}

	if !svc.Total().Equal(dec("140.23")) {
		t.Errorf("expected 140.23 exact, got %s", svc.Total())
	}
	if got := svc.DisplayTotal(); got != "140.23" {
		t.Errorf("expected display 140.23, got %s", got)
	}
}

func TestCartHydrate_CorruptRecordFallsBackEmpty(t *testing.T) {
	repo := &mockCartRepo{
		loadFn: func(context.Context) ([]domain.CartLineItem, error) {
			return nil, domain.ErrCorruptRecord
		},
	}
	svc := app.NewCartService(repo, &fakeGate{})

	svc.Hydrate(context.Background())
	if svc.Count() != 0 {
		t.Error("expected empty cart after corrupt hydrate")
	}
}

func TestCartHydrate_RestoresLines(t *testing.T) {
	repo := &mockCartRepo{
		loadFn: func(context.Context) ([]domain.CartLineItem, error) {
			return []domain.CartLineItem{
				{LineKey: "1", ProductID: 1, UnitPrice: dec("5"), Quantity: 2},
			}, nil
		},
	}
	svc := app.NewCartService(repo, &fakeGate{})

	svc.Hydrate(context.Background())
	if svc.Count() != 1 {
		t.Fatalf("expected 1 line, got %d", svc.Count())
	}
	if !svc.Total().Equal(dec("10")) {
		t.Errorf("expected total 10, got %s", svc.Total())
	}
}

func TestCartPlaceOrder(t *testing.T) {
	repo := &mockCartRepo{}
	gate := &fakeGate{}
	svc := app.NewCartService(repo, gate)
	ctx := context.Background()

	if _, err := svc.PlaceOrder(ctx); !errors.Is(err, app.ErrEmptyCart) {
		t.Fatalf("expected ErrEmptyCart, got %v", err)
	}

	if err := svc.Add(ctx, product(1, "199"), 2, nil); err != nil {
		t.Fatalf("Add: %v", err)
	}

	order, err := svc.PlaceOrder(ctx)
	if err != nil {
		t.Fatalf("PlaceOrder: %v", err)
	}
	if order.ID == "" {
		t.Error("expected a generated order ID")
	}
	if !order.Total.Equal(dec("398")) {
		t.Errorf("expected order total 398, got %s", order.Total)
	}
	if len(gate.orders) != 1 {
		t.Fatalf("expected 1 recorded order, got %d", len(gate.orders))
	}
	if svc.Count() != 0 {
		t.Error("expected cart cleared after order placement")
	}
}

func TestCartPlaceOrder_Gated(t *testing.T) {
	svc := app.NewCartService(&mockCartRepo{}, &fakeGate{loggedOut: true})

	if _, err := svc.PlaceOrder(context.Background()); !errors.Is(err, app.ErrLoginRequired) {
		t.Fatalf("expected ErrLoginRequired, got %v", err)
	}
}
