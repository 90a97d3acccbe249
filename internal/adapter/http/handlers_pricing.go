package adapthttp

import (
	"net/http"

	"github.com/AzmatKhan07/tech-verse-ecommerce-sub001/internal/domain"
)

// handlePricingBadge resolves the discount badge for a product so every
// display surface renders the same indicator.
func (s *Server) handlePricingBadge(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var body struct {
		Product domain.Product `json:"product"`
		Mode    string         `json:"mode"`
	}
	if err := parseJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	mode := domain.FirstOnly
	if body.Mode == "all_variants" {
		mode = domain.AllVariants
	}

	badge := domain.ResolveDiscountBadge(body.Product, body.Product.Attributes, mode)
	quote, ok := domain.EffectivePrice(body.Product.Attributes)

	resp := map[string]any{"badge": badge}
	if ok {
		resp["price"] = quote.Price
		resp["mrp"] = quote.MRP
	}
	writeJSON(w, http.StatusOK, resp)
}
