package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"

	adapthttp "github.com/AzmatKhan07/tech-verse-ecommerce-sub001/internal/adapter/http"
	"github.com/AzmatKhan07/tech-verse-ecommerce-sub001/internal/adapter/jsonfile"
	"github.com/AzmatKhan07/tech-verse-ecommerce-sub001/internal/adapter/memory"
	"github.com/AzmatKhan07/tech-verse-ecommerce-sub001/internal/adapter/postgres"
	"github.com/AzmatKhan07/tech-verse-ecommerce-sub001/internal/adapter/sqlite"
	"github.com/AzmatKhan07/tech-verse-ecommerce-sub001/internal/app"
	"github.com/AzmatKhan07/tech-verse-ecommerce-sub001/internal/domain"

	"github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"
)

// stateStore is the full set of repository ports every backend provides.
type stateStore interface {
	domain.CartRepository
	domain.WishlistRepository
	domain.SessionRepository
}

func main() {
	addr := env("ADDR", ":8080")
	webDir := env("WEB_DIR", "web")
	jwtSecret := env("JWT_SECRET", "")
	if jwtSecret == "" {
		log.Fatal("JWT_SECRET is required")
	}

	store, closeFn, err := openStore()
	if err != nil {
		log.Fatalf("open store: %v", err)
	}
	if closeFn != nil {
		defer closeFn()
	}

	ctx := context.Background()

	sessionSvc := app.NewSessionService(store, jwtSecret)
	cartSvc := app.NewCartService(store, sessionSvc)
	wishlistSvc := app.NewWishlistService(store)

	// Hydrate each engine independently so one corrupt record cannot
	// block the others.
	sessionSvc.Hydrate(ctx)
	cartSvc.Hydrate(ctx)
	wishlistSvc.Hydrate(ctx)

	oidcConfig, err := loadOIDC(ctx)
	if err != nil {
		log.Fatalf("oidc: %v", err)
	}

	h := adapthttp.New(cartSvc, wishlistSvc, sessionSvc, oidcConfig, webDir).Handler()
	log.Printf("listening on %s", addr)
	if err := http.ListenAndServe(addr, h); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}

func openStore() (stateStore, func(), error) {
	switch backend := env("STORE_BACKEND", "jsonfile"); backend {
	case "jsonfile":
		s, err := jsonfile.New(env("STATE_DIR", "state"))
		return s, nil, err
	case "sqlite":
		s, err := sqlite.Open(env("SQLITE_PATH", "state/storefront.db"))
		if err != nil {
			return nil, nil, err
		}
		return s, func() { _ = s.Close() }, nil
	case "postgres":
		connStr := os.Getenv("DATABASE_URL")
		if connStr == "" {
			log.Fatal("DATABASE_URL is required for the postgres backend")
		}
		s, err := postgres.Open(connStr)
		if err != nil {
			return nil, nil, err
		}
		return s, func() { _ = s.Close() }, nil
	case "memory":
		return memory.New(), nil, nil
	default:
		log.Fatalf("unknown STORE_BACKEND %q", backend)
		return nil, nil, nil
	}
}

func loadOIDC(ctx context.Context) (adapthttp.OIDCConfig, error) {
	issuer := os.Getenv("OIDC_ISSUER")
	if issuer == "" {
		return adapthttp.OIDCConfig{}, nil
	}

	provider, err := oidc.NewProvider(ctx, issuer)
	if err != nil {
		return adapthttp.OIDCConfig{}, err
	}

	return adapthttp.OIDCConfig{
		Enabled:  true,
		Provider: provider,
		OAuth2Config: oauth2.Config{
			ClientID:     os.Getenv("OIDC_CLIENT_ID"),
			ClientSecret: os.Getenv("OIDC_CLIENT_SECRET"),
			RedirectURL:  os.Getenv("OIDC_REDIRECT_URL"),
			Endpoint:     provider.Endpoint(),
			Scopes:       []string{oidc.ScopeOpenID, "profile", "email"},
		},
	}, nil
}

func env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
