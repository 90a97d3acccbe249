package domain

import "github.com/shopspring/decimal"

// DiscountMode selects how a discount badge is resolved from a product's
// attribute list.
type DiscountMode int

const (
	// FirstOnly reads price and MRP from the first attribute only. This
	// is the card/list convention used by every display surface.
	FirstOnly DiscountMode = iota
	// AllVariants takes the minimum price and the maximum MRP across all
	// attributes.
	AllVariants
)

// BadgeVariantDestructive is the display variant for discount badges.
const BadgeVariantDestructive = "destructive"

// DiscountBadge is the UI-facing percentage-off indicator.
type DiscountBadge struct {
	Text    string `json:"text"`
	Variant string `json:"variant"`
}

// PriceQuote is the resolved display price for a product.
type PriceQuote struct {
	Price decimal.Decimal `json:"price"`
	MRP   decimal.Decimal `json:"mrp"`
}

// EffectivePrice returns the current price and MRP for card and list
// contexts. It always reads the first attribute; it is deliberately not
// a cheapest-variant search. The second return is false when the product
// has no attributes, meaning no price could be resolved.
func EffectivePrice(attrs []VariantAttribute) (PriceQuote, bool) {
	if len(attrs) == 0 {
		return PriceQuote{}, false
	}
	return PriceQuote{Price: attrs[0].Price, MRP: attrs[0].MRP}, true
}

// ResolveDiscountBadge derives the percentage-off badge for a product,
// or nil when no badge should be shown. A badge is only shown for
// products flagged discounted or promo, and only for a strictly positive
// rounded percentage, so "-0%" is never displayed.
func ResolveDiscountBadge(p Product, attrs []VariantAttribute, mode DiscountMode) *DiscountBadge {
	if !p.IsDiscounted && !p.IsPromo {
		return nil
	}
	if len(attrs) == 0 {
		return nil
	}

	var price, mrp decimal.Decimal
	switch mode {
	case AllVariants:
		price, mrp = attrs[0].Price, attrs[0].MRP
		for _, a := range attrs[1:] {
			if a.Price.LessThan(price) {
				price = a.Price
			}
			if a.MRP.GreaterThan(mrp) {
				mrp = a.MRP
			}
		}
	default:
		price, mrp = attrs[0].Price, attrs[0].MRP
	}

	if !mrp.IsPositive() || mrp.LessThanOrEqual(price) {
		return nil
	}

	pct := mrp.Sub(price).Div(mrp).Mul(decimal.NewFromInt(100)).Round(0)
	if !pct.IsPositive() {
		return nil
	}
	return &DiscountBadge{Text: "-" + pct.String() + "%", Variant: BadgeVariantDestructive}
}
