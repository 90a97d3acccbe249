package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Profile holds the identity fields of the current user.
type Profile struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	DisplayName string `json:"displayName"`
	Email       string `json:"email"`
}

// Address is a billing or shipping address attached to the profile.
type Address struct {
	Line1      string `json:"line1"`
	Line2      string `json:"line2,omitempty"`
	City       string `json:"city"`
	State      string `json:"state,omitempty"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
	Phone      string `json:"phone,omitempty"`
}

// Addresses groups the optional billing and shipping addresses.
type Addresses struct {
	Billing  *Address `json:"billing,omitempty"`
	Shipping *Address `json:"shipping,omitempty"`
}

// Credential is the locally registered account. It survives logout so
// the user can log back in on the same device.
type Credential struct {
	Email        string `json:"email"`
	PasswordHash string `json:"passwordHash"`
}

// Order is a client-side cached order summary recorded at checkout.
type Order struct {
	ID       string          `json:"id"`
	Items    []CartLineItem  `json:"items"`
	Total    decimal.Decimal `json:"total"`
	PlacedAt time.Time       `json:"placedAt"`
}

// UserSession is the per-device session record: login state, profile,
// addresses, cached orders and the local credentials. The remember
// token is a signed credential that restores the logged-in state across
// restarts when the remember-me flag is set.
type UserSession struct {
	IsLoggedIn    bool        `json:"isLoggedIn"`
	Profile       Profile     `json:"profile"`
	Addresses     Addresses   `json:"addresses"`
	Orders        []Order     `json:"orders"`
	Account       *Credential `json:"account,omitempty"`
	RememberToken string      `json:"rememberToken,omitempty"`
}

// SessionRepository is the port for the user record and the remember-me
// flag, two independently corruptible durable records.
type SessionRepository interface {
	LoadUser(ctx context.Context) (UserSession, error)
	SaveUser(ctx context.Context, u UserSession) error
	LoadRememberMe(ctx context.Context) (bool, error)
	SaveRememberMe(ctx context.Context, remember bool) error
}
