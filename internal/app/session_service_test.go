package app_test

import (
	"context"
	"errors"
	"testing"

	"github.com/AzmatKhan07/tech-verse-ecommerce-sub001/internal/app"
	"github.com/AzmatKhan07/tech-verse-ecommerce-sub001/internal/domain"
)

// mockSessionRepo keeps the two records in memory so hydrate round-trips
// can be exercised.
type mockSessionRepo struct {
	loadUserFn func(ctx context.Context) (domain.UserSession, error)
	user       domain.UserSession
	remember   bool
	userSaves  int
}

func (m *mockSessionRepo) LoadUser(ctx context.Context) (domain.UserSession, error) {
	if m.loadUserFn != nil {
		return m.loadUserFn(ctx)
	}
	return m.user, nil
}

func (m *mockSessionRepo) SaveUser(_ context.Context, u domain.UserSession) error {
	m.user = u
	m.userSaves++
	return nil
}

func (m *mockSessionRepo) LoadRememberMe(context.Context) (bool, error) {
	return m.remember, nil
}

func (m *mockSessionRepo) SaveRememberMe(_ context.Context, remember bool) error {
	m.remember = remember
	return nil
}

const testSecret = "test-secret"

func registeredSession(t *testing.T, repo *mockSessionRepo) *app.SessionService {
	t.Helper()
	svc := app.NewSessionService(repo, testSecret)
	if err := svc.Register(context.Background(), "jo@example.com", "Jo", "Smith", "hunter2hunter2"); err != nil {
		t.Fatalf("Register: %v", err)
	}
	return svc
}

func TestSessionRegisterAndLogin(t *testing.T) {
	repo := &mockSessionRepo{}
	svc := registeredSession(t, repo)
	ctx := context.Background()

	if !svc.RequiresLogin() {
		t.Fatal("expected requiresLogin before login")
	}

	if err := svc.Login(ctx, "jo@example.com", "wrong-password", false); !errors.Is(err, app.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if !svc.RequiresLogin() {
		t.Fatal("failed login must not activate the session")
	}

	if err := svc.Login(ctx, "jo@example.com", "hunter2hunter2", false); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if svc.RequiresLogin() {
		t.Fatal("expected logged-in session")
	}

	u := svc.User()
	if u.Profile.Email != "jo@example.com" {
		t.Errorf("expected profile email, got %q", u.Profile.Email)
	}
	if u.Profile.DisplayName != "Jo Smith" {
		t.Errorf("expected derived display name, got %q", u.Profile.DisplayName)
	}
}

func TestSessionRegister_Validation(t *testing.T) {
	svc := app.NewSessionService(&mockSessionRepo{}, testSecret)
	ctx := context.Background()

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{"empty email", "", "hunter2hunter2"},
		{"empty password", "jo@example.com", ""},
		{"short password", "jo@example.com", "short"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := svc.Register(ctx, tc.email, "Jo", "Smith", tc.password)
			if !errors.Is(err, app.ErrInvalidInput) {
				t.Errorf("expected ErrInvalidInput, got %v", err)
			}
		})
	}

	if err := svc.Register(ctx, "jo@example.com", "Jo", "Smith", "hunter2hunter2"); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if err := svc.Register(ctx, "jo@example.com", "Jo", "Smith", "hunter2hunter2"); !errors.Is(err, app.ErrAccountExists) {
		t.Fatalf("expected ErrAccountExists, got %v", err)
	}
}

func TestSessionLogout_KeepsAccountAndOrders(t *testing.T) {
	repo := &mockSessionRepo{}
	svc := registeredSession(t, repo)
	ctx := context.Background()

	if err := svc.Login(ctx, "jo@example.com", "hunter2hunter2", true); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if err := svc.RecordOrder(ctx, domain.Order{ID: "ord-1"}); err != nil {
		t.Fatalf("RecordOrder: %v", err)
	}

	if err := svc.Logout(ctx); err != nil {
		t.Fatalf("Logout: %v", err)
	}

	u := svc.User()
	if u.IsLoggedIn {
		t.Error("expected logged-out session")
	}
	if u.Profile != (domain.Profile{}) {
		t.Errorf("expected anonymous profile, got %+v", u.Profile)
	}
	if u.Account == nil {
		t.Error("logout must keep the local account")
	}
	if len(u.Orders) != 1 {
		t.Error("logout must keep cached orders")
	}
	if repo.remember {
		t.Error("logout must clear the remember-me flag")
	}

	// The user can log straight back in.
	if err := svc.Login(ctx, "jo@example.com", "hunter2hunter2", false); err != nil {
		t.Fatalf("re-login after logout: %v", err)
	}
}

func TestSessionHydrate_RememberMeRestoresLogin(t *testing.T) {
	repo := &mockSessionRepo{}
	svc := registeredSession(t, repo)
	ctx := context.Background()

	if err := svc.Login(ctx, "jo@example.com", "hunter2hunter2", true); err != nil {
		t.Fatalf("Login: %v", err)
	}

	// A fresh engine over the same records simulates a restart.
	restarted := app.NewSessionService(repo, testSecret)
	restarted.Hydrate(ctx)
	if restarted.RequiresLogin() {
		t.Fatal("expected remembered session to stay logged in")
	}
}

func TestSessionHydrate_NoRememberFlagDropsLogin(t *testing.T) {
	repo := &mockSessionRepo{}
	svc := registeredSession(t, repo)
	ctx := context.Background()

	if err := svc.Login(ctx, "jo@example.com", "hunter2hunter2", false); err != nil {
		t.Fatalf("Login: %v", err)
	}

	restarted := app.NewSessionService(repo, testSecret)
	restarted.Hydrate(ctx)
	if !restarted.RequiresLogin() {
		t.Fatal("expected session dropped without remember-me")
	}
}

func TestSessionHydrate_TamperedTokenDropsLogin(t *testing.T) {
	repo := &mockSessionRepo{}
	svc := registeredSession(t, repo)
	ctx := context.Background()

	if err := svc.Login(ctx, "jo@example.com", "hunter2hunter2", true); err != nil {
		t.Fatalf("Login: %v", err)
	}
	repo.user.RememberToken = "not-a-jwt"

	restarted := app.NewSessionService(repo, testSecret)
	restarted.Hydrate(ctx)
	if !restarted.RequiresLogin() {
		t.Fatal("expected tampered token to be rejected")
	}
}

func TestSessionHydrate_CorruptUserRecordFallsBackAnonymous(t *testing.T) {
	repo := &mockSessionRepo{
		loadUserFn: func(context.Context) (domain.UserSession, error) {
			return domain.UserSession{}, domain.ErrCorruptRecord
		},
	}
	svc := app.NewSessionService(repo, testSecret)

	svc.Hydrate(context.Background())
	if !svc.RequiresLogin() {
		t.Fatal("expected anonymous session after corrupt hydrate")
	}
	if u := svc.User(); u.Account != nil || len(u.Orders) != 0 {
		t.Errorf("expected default session, got %+v", u)
	}
}

func TestSessionLoginWithProfile(t *testing.T) {
	repo := &mockSessionRepo{}
	svc := app.NewSessionService(repo, testSecret)
	ctx := context.Background()

	p := domain.Profile{FirstName: "Sam", LastName: "Lee", Email: "sam@example.com"}
	if err := svc.LoginWithProfile(ctx, p, false); err != nil {
		t.Fatalf("LoginWithProfile: %v", err)
	}
	if svc.RequiresLogin() {
		t.Fatal("expected logged-in session")
	}
	if got := svc.User().Profile.DisplayName; got != "Sam Lee" {
		t.Errorf("expected display name Sam Lee, got %q", got)
	}
}

func TestSessionAddresses(t *testing.T) {
	repo := &mockSessionRepo{}
	svc := app.NewSessionService(repo, testSecret)
	ctx := context.Background()

	home := domain.Address{Line1: "1 Main St", City: "Springfield", PostalCode: "12345", Country: "US"}
	if err := svc.AddAddress(ctx, "shipping", home); err != nil {
		t.Fatalf("AddAddress: %v", err)
	}
	if err := svc.AddAddress(ctx, "shipping", home); !errors.Is(err, app.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput on duplicate add, got %v", err)
	}

	moved := home
	moved.Line1 = "2 Oak Ave"
	if err := svc.UpdateAddress(ctx, "shipping", moved); err != nil {
		t.Fatalf("UpdateAddress: %v", err)
	}
	if got := svc.User().Addresses.Shipping.Line1; got != "2 Oak Ave" {
		t.Errorf("expected updated address, got %q", got)
	}

	if err := svc.UpdateAddress(ctx, "office", home); !errors.Is(err, app.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for unknown kind, got %v", err)
	}
}

func TestSessionUpdateProfile_MergesNonEmpty(t *testing.T) {
	repo := &mockSessionRepo{}
	svc := registeredSession(t, repo)
	ctx := context.Background()

	if err := svc.UpdateProfile(ctx, domain.Profile{FirstName: "Joanna"}); err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	u := svc.User()
	if u.Profile.FirstName != "Joanna" {
		t.Errorf("expected FirstName Joanna, got %q", u.Profile.FirstName)
	}
	if u.Profile.LastName != "Smith" {
		t.Errorf("merge must keep untouched fields, got %q", u.Profile.LastName)
	}
}
