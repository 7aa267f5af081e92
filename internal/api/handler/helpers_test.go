package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/devfollow/social-network/internal/api/metrics"
	"github.com/devfollow/social-network/internal/api/session"
	"github.com/devfollow/social-network/internal/core/domain"
)

type memStore struct {
	data map[string]*domain.Session
}

func newMemStore() *memStore {
	return &memStore{data: map[string]*domain.Session{}}
}

func (m *memStore) Get(_ context.Context, id string) (*domain.Session, error) {
	s, ok := m.data[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return s, nil
}

func (m *memStore) Save(_ context.Context, id string, s *domain.Session) error {
	m.data[id] = s
	return nil
}

func (m *memStore) Destroy(_ context.Context, id string) error {
	delete(m.data, id)
	return nil
}

// only returns the single stored session.
func (m *memStore) only(t *testing.T) *domain.Session {
	t.Helper()
	if len(m.data) != 1 {
		t.Fatalf("expected one stored session, got %d", len(m.data))
	}
	for _, s := range m.data {
		return s
	}
	return nil
}

type fixture struct {
	e        *echo.Echo
	store    *memStore
	sessions *session.Manager
	metrics  *metrics.Metrics

	// lastErr is the error returned by the last served handler.
	lastErr error
}

func newFixture() *fixture {
	e := echo.New()
	e.Validator = NewValidator()
	store := newMemStore()
	return &fixture{
		e:        e,
		store:    store,
		sessions: session.NewManager(store, session.Options{}, zerolog.Nop()),
		metrics:  metrics.New(prometheus.NewRegistry()),
	}
}

// signedIn stores a session for user and returns its cookie value.
func (f *fixture) signedIn(user domain.SessionUser) string {
	f.store.data["sid"] = &domain.Session{User: &user}
	return "sid"
}

// serve runs h behind the session middleware.
func (f *fixture) serve(t *testing.T, h echo.HandlerFunc, method, target, body, cookie string, params ...string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: session.DefaultCookieName, Value: cookie})
	}
	rec := httptest.NewRecorder()
	c := f.e.NewContext(req, rec)
	for i := 0; i+1 < len(params); i += 2 {
		c.SetParamNames(append(c.ParamNames(), params[i])...)
		c.SetParamValues(append(c.ParamValues(), params[i+1])...)
	}

	f.lastErr = f.sessions.Middleware()(h)(c)
	if f.lastErr != nil {
		f.e.HTTPErrorHandler(f.lastErr, c)
	}
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("invalid json: %v (%s)", err, rec.Body.String())
	}
}

func expectRedirect(t *testing.T, rec *httptest.ResponseRecorder, location string) {
	t.Helper()
	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", rec.Code)
	}
	if got := rec.Header().Get(echo.HeaderLocation); got != location {
		t.Fatalf("expected redirect to %q, got %q", location, got)
	}
}
