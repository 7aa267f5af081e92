package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"

	"github.com/devfollow/social-network/internal/api/metrics"
	"github.com/devfollow/social-network/internal/core/domain"
	"github.com/devfollow/social-network/internal/core/ports"
)

type stubAuthService struct {
	registerFn func(ctx context.Context, raw map[string]any) (*domain.AuthenticatedUser, error)
	loginFn    func(ctx context.Context, raw map[string]any) (*domain.AuthenticatedUser, error)
	apiLoginFn func(ctx context.Context, raw map[string]any) (string, error)
	existsFn   func(ctx context.Context, v any) (bool, error)
}

func (s *stubAuthService) Register(ctx context.Context, raw map[string]any) (*domain.AuthenticatedUser, error) {
	return s.registerFn(ctx, raw)
}

func (s *stubAuthService) Login(ctx context.Context, raw map[string]any) (*domain.AuthenticatedUser, error) {
	return s.loginFn(ctx, raw)
}

func (s *stubAuthService) APILogin(ctx context.Context, raw map[string]any) (string, error) {
	return s.apiLoginFn(ctx, raw)
}

func (s *stubAuthService) FindByUsername(ctx context.Context, username any) (*domain.PublicUser, error) {
	return nil, domain.ErrUserNotFound
}

func (s *stubAuthService) DoesUsernameExist(ctx context.Context, username any) (bool, error) {
	return s.existsFn(ctx, username)
}

func (s *stubAuthService) DoesEmailExist(ctx context.Context, email any) (bool, error) {
	return s.existsFn(ctx, email)
}

type stubProfileService struct {
	ports.ProfileService
	feedFn func(ctx context.Context, userID string) ([]domain.Post, error)
}

func (s *stubProfileService) HomeFeed(ctx context.Context, userID string) ([]domain.Post, error) {
	return s.feedFn(ctx, userID)
}

func alice() *domain.AuthenticatedUser {
	return &domain.AuthenticatedUser{
		User:     domain.User{ID: "u1", Username: "alice1", Email: "a@example.com", PasswordHash: "hash"},
		Gravatar: "https://gravatar.com/avatar/x?s=128",
	}
}

func TestAuthHandler_Register_Success(t *testing.T) {
	f := newFixture()
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, raw map[string]any) (*domain.AuthenticatedUser, error) {
			if raw["username"] != "alice1" || raw["password"] != "correcthorsebattery" {
				t.Fatalf("unexpected fields: %+v", raw)
			}
			return alice(), nil
		},
	}
	h := NewAuthHandler(stub, &stubProfileService{}, f.sessions, f.metrics, zerolog.Nop())

	rec := f.serve(t, h.Register, http.MethodPost, "/register",
		`{"username":"alice1","email":"a@example.com","password":"correcthorsebattery"}`, "")

	expectRedirect(t, rec, "/")
	sess := f.store.only(t)
	if !sess.IsAuthenticated() || sess.User.Username != "alice1" || sess.User.ID != "u1" {
		t.Fatalf("session not signed in: %+v", sess.User)
	}
	if got := testutil.ToFloat64(f.metrics.RegistrationsTotal.WithLabelValues(metrics.ResultOK)); got != 1 {
		t.Fatalf("expected 1 registration, got %v", got)
	}
}

func TestAuthHandler_Register_ValidationFlashed(t *testing.T) {
	f := newFixture()
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, raw map[string]any) (*domain.AuthenticatedUser, error) {
			return nil, domain.NewValidationErrors(domain.MsgUsernameTaken, domain.MsgPasswordTooShort)
		},
	}
	h := NewAuthHandler(stub, &stubProfileService{}, f.sessions, f.metrics, zerolog.Nop())

	rec := f.serve(t, h.Register, http.MethodPost, "/register", `{"username":"bob"}`, "")

	expectRedirect(t, rec, "/")
	sess := f.store.only(t)
	if sess.IsAuthenticated() {
		t.Fatalf("session must stay anonymous")
	}
	msgs := sess.Flashes(domain.FlashRegErrors)
	if len(msgs) != 2 || msgs[0] != domain.MsgUsernameTaken || msgs[1] != domain.MsgPasswordTooShort {
		t.Fatalf("unexpected flashes: %v", msgs)
	}
}

func TestAuthHandler_Register_StorageError(t *testing.T) {
	f := newFixture()
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, raw map[string]any) (*domain.AuthenticatedUser, error) {
			return nil, errors.New("db down")
		},
	}
	h := NewAuthHandler(stub, &stubProfileService{}, f.sessions, f.metrics, zerolog.Nop())

	rec := f.serve(t, h.Register, http.MethodPost, "/register", `{"username":"bob"}`, "")

	expectRedirect(t, rec, "/")
	msgs := f.store.only(t).Flashes(domain.FlashRegErrors)
	if len(msgs) != 1 || msgs[0] != domain.MsgTryAgainLater {
		t.Fatalf("unexpected flashes: %v", msgs)
	}
}

func TestAuthHandler_Register_InvalidPayload(t *testing.T) {
	f := newFixture()
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, raw map[string]any) (*domain.AuthenticatedUser, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	h := NewAuthHandler(stub, &stubProfileService{}, f.sessions, f.metrics, zerolog.Nop())

	rec := f.serve(t, h.Register, http.MethodPost, "/register", "not-json", "")

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAuthHandler_Login(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantAuth bool
		wantMsg  string
		result   string
	}{
		{"success", nil, true, "", metrics.ResultOK},
		{"wrong password", domain.ErrInvalidCredentials, false, domain.MsgIncorrectLogin, metrics.ResultInvalid},
		{"lookup failed", fmt.Errorf("%w: %w", domain.ErrLoginUnavailable, errors.New("timeout")), false, domain.MsgTryAgainLater, metrics.ResultUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			stub := &stubAuthService{
				loginFn: func(ctx context.Context, raw map[string]any) (*domain.AuthenticatedUser, error) {
					if tt.err != nil {
						return nil, tt.err
					}
					return alice(), nil
				},
			}
			h := NewAuthHandler(stub, &stubProfileService{}, f.sessions, f.metrics, zerolog.Nop())

			rec := f.serve(t, h.Login, http.MethodPost, "/login", `{"username":"alice1","password":"x"}`, "")

			expectRedirect(t, rec, "/")
			sess := f.store.only(t)
			if sess.IsAuthenticated() != tt.wantAuth {
				t.Fatalf("authenticated = %v, want %v", sess.IsAuthenticated(), tt.wantAuth)
			}
			if tt.wantMsg != "" {
				msgs := sess.Flashes(domain.FlashErrors)
				if len(msgs) != 1 || msgs[0] != tt.wantMsg {
					t.Fatalf("unexpected flashes: %v", msgs)
				}
			}
			if got := testutil.ToFloat64(f.metrics.LoginsTotal.WithLabelValues(metrics.ChannelWeb, tt.result)); got != 1 {
				t.Fatalf("expected login metric %s, got %v", tt.result, got)
			}
		})
	}
}

func TestAuthHandler_Logout(t *testing.T) {
	f := newFixture()
	cookie := f.signedIn(domain.SessionUser{ID: "u1", Username: "alice1"})
	h := NewAuthHandler(&stubAuthService{}, &stubProfileService{}, f.sessions, f.metrics, zerolog.Nop())

	rec := f.serve(t, h.Logout, http.MethodPost, "/logout", "", cookie)

	expectRedirect(t, rec, "/")
	if len(f.store.data) != 0 {
		t.Fatalf("session not destroyed")
	}
}

func TestAuthHandler_Home_Guest(t *testing.T) {
	f := newFixture()
	f.store.data["sid"] = &domain.Session{Flash: map[string][]string{
		domain.FlashRegErrors: {domain.MsgEmailTaken},
	}}
	h := NewAuthHandler(&stubAuthService{}, &stubProfileService{}, f.sessions, f.metrics, zerolog.Nop())

	rec := f.serve(t, h.Home, http.MethodGet, "/", "", "sid")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var page struct {
		View string    `json:"view"`
		Data guestData `json:"data"`
	}
	decode(t, rec, &page)
	if page.View != "home-guest" {
		t.Fatalf("unexpected view %q", page.View)
	}
	if len(page.Data.RegErrors) != 1 || page.Data.RegErrors[0] != domain.MsgEmailTaken {
		t.Fatalf("unexpected regErrors: %v", page.Data.RegErrors)
	}

	// flashes are read once
	if f.store.data["sid"].HasFlash() {
		t.Fatalf("flash should be cleared after reading")
	}
}

func TestAuthHandler_Home_Dashboard(t *testing.T) {
	f := newFixture()
	cookie := f.signedIn(domain.SessionUser{ID: "u1", Username: "alice1"})
	profiles := &stubProfileService{
		feedFn: func(ctx context.Context, userID string) ([]domain.Post, error) {
			if userID != "u1" {
				t.Fatalf("unexpected user id %q", userID)
			}
			return []domain.Post{{ID: "p1", Title: "hello"}}, nil
		},
	}
	h := NewAuthHandler(&stubAuthService{}, profiles, f.sessions, f.metrics, zerolog.Nop())

	rec := f.serve(t, h.Home, http.MethodGet, "/", "", cookie)

	var page struct {
		View string        `json:"view"`
		Data dashboardData `json:"data"`
	}
	decode(t, rec, &page)
	if page.View != "home-dashboard" || len(page.Data.Posts) != 1 || page.Data.Posts[0].Title != "hello" {
		t.Fatalf("unexpected page: %+v", page)
	}
}

func TestAuthHandler_APILogin(t *testing.T) {
	f := newFixture()
	stub := &stubAuthService{
		apiLoginFn: func(ctx context.Context, raw map[string]any) (string, error) {
			if raw["password"] == "correcthorsebattery" {
				return "signed.token.value", nil
			}
			return "", domain.ErrInvalidCredentials
		},
	}
	h := NewAuthHandler(stub, &stubProfileService{}, f.sessions, f.metrics, zerolog.Nop())

	rec := f.serve(t, h.APILogin, http.MethodPost, "/api/login", `{"username":"alice1","password":"correcthorsebattery"}`, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var token string
	decode(t, rec, &token)
	if token != "signed.token.value" {
		t.Fatalf("unexpected token %q", token)
	}

	rec = f.serve(t, h.APILogin, http.MethodPost, "/api/login", `{"username":"alice1","password":"wrong"}`, "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if len(f.store.data) != 0 {
		t.Fatalf("api login must not create sessions")
	}
}

func TestAuthHandler_ExistenceChecks(t *testing.T) {
	f := newFixture()
	stub := &stubAuthService{
		existsFn: func(ctx context.Context, v any) (bool, error) {
			return v == "taken", nil
		},
	}
	h := NewAuthHandler(stub, &stubProfileService{}, f.sessions, f.metrics, zerolog.Nop())

	var got bool
	decode(t, f.serve(t, h.DoesUsernameExist, http.MethodPost, "/doesUsernameExist", `{"username":"taken"}`, ""), &got)
	if !got {
		t.Fatalf("expected username to exist")
	}
	decode(t, f.serve(t, h.DoesEmailExist, http.MethodPost, "/doesEmailExist", `{"email":"free@example.com"}`, ""), &got)
	if got {
		t.Fatalf("expected email to be free")
	}
	decode(t, f.serve(t, h.DoesEmailExist, http.MethodPost, "/doesEmailExist", `{"email":42}`, ""), &got)
	if got {
		t.Fatalf("expected non-string email to be false")
	}
}
