// Package app holds the storefront state engines and business logic.
package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/AzmatKhan07/tech-verse-ecommerce-sub001/internal/domain"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrLoginRequired indicates a mutation that is gated on an active
	// login. It is an expected outcome, not a failure.
	ErrLoginRequired = errors.New("login required")
	// ErrInvalidCredentials indicates that the provided email or password was incorrect.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrAccountExists indicates that a local account is already registered.
	ErrAccountExists = errors.New("account already exists")
	// ErrInvalidInput indicates rejected input; no state was mutated.
	ErrInvalidInput = errors.New("invalid input")
)

const rememberTokenTTL = 30 * 24 * time.Hour

// SessionService tracks login state and the user profile for the
// current device session. It owns the user durable record and the
// remember-me flag, writing both through on every successful mutation.
type SessionService struct {
	mu        sync.Mutex
	repo      domain.SessionRepository
	jwtSecret []byte
	user      domain.UserSession
}

// NewSessionService creates a session engine backed by the given
// repository. The secret signs remember-me tokens.
func NewSessionService(repo domain.SessionRepository, jwtSecret string) *SessionService {
	return &SessionService{repo: repo, jwtSecret: []byte(jwtSecret)}
}

// Hydrate loads the persisted session. A corrupt user record resets
// only the session to its anonymous default; the remember-me flag is a
// separate record and is consulted independently. The logged-in state
// survives a restart only when the remember-me flag is set and the
// stored token is still valid.
func (s *SessionService) Hydrate(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, err := s.repo.LoadUser(ctx)
	if err != nil {
		log.Printf("session: hydrate user record: %v", err)
		s.user = domain.UserSession{}
		return
	}
	s.user = user

	remember, err := s.repo.LoadRememberMe(ctx)
	if err != nil {
		log.Printf("session: hydrate remember-me record: %v", err)
		remember = false
	}

	if !user.IsLoggedIn {
		return
	}
	if remember && s.validRememberToken(user.RememberToken) {
		return
	}
	s.user.IsLoggedIn = false
	s.user.RememberToken = ""
}

// RequiresLogin reports whether mutations gated on authentication must
// be refused. Only the cart consults this; wishlist mutation is not
// gated.
func (s *SessionService) RequiresLogin() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.user.IsLoggedIn
}

// User returns a copy of the current session state.
func (s *SessionService) User() domain.UserSession {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

// Register creates the local account for this device.
func (s *SessionService) Register(ctx context.Context, email, firstName, lastName, password string) error {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return fmt.Errorf("%w: email and password are required", ErrInvalidInput)
	}
	if len(password) < 8 {
		return fmt.Errorf("%w: password must be at least 8 characters", ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.user.Account != nil {
		return ErrAccountExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	s.user.Account = &domain.Credential{Email: email, PasswordHash: string(hash)}
	s.user.Profile = mergeProfile(s.user.Profile, domain.Profile{
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
	})
	return s.repo.SaveUser(ctx, s.user)
}

// Login verifies the local credential and activates the session. When
// remember is set, a signed token keeps the session alive across
// restarts.
func (s *SessionService) Login(ctx context.Context, email, password string, remember bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	acct := s.user.Account
	if acct == nil || !strings.EqualFold(acct.Email, strings.TrimSpace(email)) {
		return ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(acct.PasswordHash), []byte(password)); err != nil {
		return ErrInvalidCredentials
	}

	return s.activate(ctx, domain.Profile{Email: acct.Email}, remember)
}

// LoginWithProfile activates the session for an externally authenticated
// user (SSO). The claims are merged into the profile.
func (s *SessionService) LoginWithProfile(ctx context.Context, p domain.Profile, remember bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activate(ctx, p, remember)
}

// activate must be called with the lock held.
func (s *SessionService) activate(ctx context.Context, p domain.Profile, remember bool) error {
	s.user.IsLoggedIn = true
	s.user.Profile = mergeProfile(s.user.Profile, p)

	s.user.RememberToken = ""
	if remember {
		token, err := s.issueRememberToken(s.user.Profile.Email)
		if err != nil {
			return fmt.Errorf("issue remember token: %w", err)
		}
		s.user.RememberToken = token
	}

	if err := s.repo.SaveRememberMe(ctx, remember); err != nil {
		return err
	}
	return s.repo.SaveUser(ctx, s.user)
}

// Logout resets the profile to its anonymous defaults and drops the
// remember token. The local account, addresses and cached orders stay,
// and cart/wishlist state is left untouched.
func (s *SessionService) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.user.IsLoggedIn = false
	s.user.Profile = domain.Profile{}
	s.user.RememberToken = ""

	if err := s.repo.SaveRememberMe(ctx, false); err != nil {
		return err
	}
	return s.repo.SaveUser(ctx, s.user)
}

// UpdateProfile merges the non-empty fields of p into the profile.
func (s *SessionService) UpdateProfile(ctx context.Context, p domain.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.user.Profile = mergeProfile(s.user.Profile, p)
	return s.repo.SaveUser(ctx, s.user)
}

// UpdateAddress sets the billing or shipping address, replacing any
// existing one.
func (s *SessionService) UpdateAddress(ctx context.Context, kind string, a domain.Address) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch kind {
	case "billing":
		s.user.Addresses.Billing = &a
	case "shipping":
		s.user.Addresses.Shipping = &a
	default:
		return fmt.Errorf("%w: unknown address kind %q", ErrInvalidInput, kind)
	}
	return s.repo.SaveUser(ctx, s.user)
}

// AddAddress sets the billing or shipping address only if none exists.
func (s *SessionService) AddAddress(ctx context.Context, kind string, a domain.Address) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch kind {
	case "billing":
		if s.user.Addresses.Billing != nil {
			return fmt.Errorf("%w: billing address already set", ErrInvalidInput)
		}
		s.user.Addresses.Billing = &a
	case "shipping":
		if s.user.Addresses.Shipping != nil {
			return fmt.Errorf("%w: shipping address already set", ErrInvalidInput)
		}
		s.user.Addresses.Shipping = &a
	default:
		return fmt.Errorf("%w: unknown address kind %q", ErrInvalidInput, kind)
	}
	return s.repo.SaveUser(ctx, s.user)
}

// RecordOrder appends a cached order summary to the user record.
func (s *SessionService) RecordOrder(ctx context.Context, o domain.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.user.Orders = append(s.user.Orders, o)
	return s.repo.SaveUser(ctx, s.user)
}

func (s *SessionService) issueRememberToken(email string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": email,
		"iat": now.Unix(),
		"exp": now.Add(rememberTokenTTL).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
}

func (s *SessionService) validRememberToken(tokenString string) bool {
	if tokenString == "" {
		return false
	}
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	return err == nil && token.Valid
}

func mergeProfile(base, patch domain.Profile) domain.Profile {
	if patch.FirstName != "" {
		base.FirstName = patch.FirstName
	}
	if patch.LastName != "" {
		base.LastName = patch.LastName
	}
	if patch.Email != "" {
		base.Email = patch.Email
	}
	if patch.DisplayName != "" {
		base.DisplayName = patch.DisplayName
	} else if base.DisplayName == "" {
		base.DisplayName = strings.TrimSpace(base.FirstName + " " + base.LastName)
	}
	return base
}
