// Package adapthttp implements the HTTP adapter for the storefront
// engines. UI surfaces are pure consumers of these endpoints; all
// commerce rules live in the app services.
package adapthttp

import (
	"net/http"

	"github.com/AzmatKhan07/tech-verse-ecommerce-sub001/internal/app"

	"github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"
)

// OIDCConfig holds the optional SSO configuration.
type OIDCConfig struct {
	Enabled      bool
	Provider     *oidc.Provider
	OAuth2Config oauth2.Config
}

// Server is the driving HTTP adapter that routes requests to the
// storefront engines.
type Server struct {
	cart       *app.CartService
	wishlist   *app.WishlistService
	session    *app.SessionService
	oidcConfig OIDCConfig
	webDir     string
}

// New creates a Server wired to the given engines.
func New(cart *app.CartService, wishlist *app.WishlistService, session *app.SessionService, oidcConfig OIDCConfig, webDir string) *Server {
	return &Server{cart: cart, wishlist: wishlist, session: session, oidcConfig: oidcConfig, webDir: webDir}
}

// Handler returns the root http.Handler for the application.
func (s *Server) Handler() http.Handler {
	api := http.NewServeMux()
	api.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})

	api.HandleFunc("/cart", s.handleCart)
	api.HandleFunc("/cart/add", s.handleCartAdd)
	api.HandleFunc("/cart/quantity", s.handleCartQuantity)
	api.HandleFunc("/cart/remove", s.handleCartRemove)
	api.HandleFunc("/cart/contains", s.handleCartContains)
	api.HandleFunc("/cart/checkout", s.handleCartCheckout)

	api.HandleFunc("/wishlist", s.handleWishlist)
	api.HandleFunc("/wishlist/toggle", s.handleWishlistToggle)
	api.HandleFunc("/wishlist/add", s.handleWishlistAdd)
	api.HandleFunc("/wishlist/remove", s.handleWishlistRemove)
	api.HandleFunc("/wishlist/contains", s.handleWishlistContains)

	api.HandleFunc("/pricing/badge", s.handlePricingBadge)

	api.HandleFunc("/auth/register", s.handleRegister)
	api.HandleFunc("/auth/login", s.handleLogin)
	api.HandleFunc("/auth/logout", s.handleLogout)
	api.HandleFunc("/auth/me", s.handleMe)
	api.HandleFunc("/auth/config", s.handleConfig)
	api.HandleFunc("/auth/sso/login", s.handleSSOLogin)
	api.HandleFunc("/auth/sso/callback", s.handleSSOCallback)

	api.HandleFunc("/profile", s.handleProfile)
	api.HandleFunc("/profile/address", s.handleAddress)

	root := http.NewServeMux()
	root.Handle("/api/", http.StripPrefix("/api", api))
	root.Handle("/", spaFromDisk(s.webDir))

	return s.loggingMiddleware(withNoCache(root))
}
