package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"charity/internal/domain"
	"charity/internal/http/handlers"
	"charity/internal/middleware"
)

const testSecret = "router-secret"

type stubUsers struct {
	domain.UserRepository
	byID map[string]domain.User
}

func (s stubUsers) GetByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := s.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &u, nil
}

func newTestRouter() http.Handler {
	users := stubUsers{byID: map[string]domain.User{
		"user-1":   {ID: "user-1", Role: domain.UserRoleEditor, IsActive: true},
		"admin-1":  {ID: "admin-1", Role: domain.UserRoleAdmin, IsActive: true},
		"demoted":  {ID: "demoted", Role: domain.UserRoleEditor, IsActive: true},
		"disabled": {ID: "disabled", Role: domain.UserRoleAdmin, IsActive: false},
	}}
	app := &handlers.App{Logger: zerolog.Nop(), Users: users}
	return NewRouter(app, Options{
		JWTSecret:       testSecret,
		AllowedOrigins:  []string{"https://quy.example.org"},
		DefaultLocale:   "vi",
		RateLimitPerMin: 5,
		Logger:          zerolog.Nop(),
	})
}

func token(t *testing.T, role string) string {
	t.Helper()
	return tokenFor(t, "user-1", role)
}

func tokenFor(t *testing.T, userID, role string) string {
	t.Helper()
	tok, err := middleware.SignAdminToken(testSecret, userID, "", role, time.Hour, time.Now())
	if err != nil {
		t.Fatalf("SignAdminToken: %v", err)
	}
	return tok
}

func TestRouterHealth(t *testing.T) {
	rr := httptest.NewRecorder()
	newTestRouter().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/healthz", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	if rr.Header().Get("X-Request-ID") == "" {
		t.Fatalf("request id header missing")
	}
	if rr.Header().Get("Content-Language") != "vi" {
		t.Fatalf("Content-Language = %q", rr.Header().Get("Content-Language"))
	}
}

func TestRouterRejectsAnonymousWrites(t *testing.T) {
	router := newTestRouter()
	for _, tc := range []struct{ method, path string }{
		{http.MethodPost, "/api/activities"},
		{http.MethodPut, "/api/donations/7d2b0c4e-8c0e-4b5e-9f7a-2f1c8f0e6a11/confirm"},
		{http.MethodGet, "/api/donations/export"},
		{http.MethodGet, "/api/export/bundle"},
		{http.MethodPut, "/api/settings"},
		{http.MethodGet, "/api/users"},
	} {
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(tc.method, tc.path, nil)
		req.Header.Set("Accept-Language", "en-US")
		router.ServeHTTP(rr, req)
		if rr.Code != http.StatusUnauthorized {
			t.Fatalf("%s %s: status = %d, want 401", tc.method, tc.path, rr.Code)
		}
		var body struct {
			Error string `json:"error"`
			Code  string `json:"code"`
		}
		_ = json.NewDecoder(rr.Body).Decode(&body)
		if body.Code != "unauthorized" || body.Error != "Authentication required" {
			t.Fatalf("%s %s: body = %#v", tc.method, tc.path, body)
		}
	}
}

func TestRouterUsersRequireAdmin(t *testing.T) {
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	req.Header.Set("Authorization", "Bearer "+token(t, "editor"))
	newTestRouter().ServeHTTP(rr, req)
	if rr.Code != http.StatusForbidden {
		t.Fatalf("editor status = %d, want 403", rr.Code)
	}
}

func TestRouterStaffTokensFollowStoredAccount(t *testing.T) {
	router := newTestRouter()
	tests := []struct {
		name   string
		userID string
		role   string
		want   int
	}{
		{"deleted user", "gone", "admin", http.StatusUnauthorized},
		{"deactivated user", "disabled", "admin", http.StatusUnauthorized},
		{"demoted since issue", "demoted", "admin", http.StatusForbidden},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
			req.Header.Set("Authorization", "Bearer "+tokenFor(t, tc.userID, tc.role))
			router.ServeHTTP(rr, req)
			if rr.Code != tc.want {
				t.Fatalf("status = %d, want %d, body = %s", rr.Code, tc.want, rr.Body.String())
			}
		})
	}
}

func TestRouterCORSPreflight(t *testing.T) {
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/api/donations", nil)
	req.Header.Set("Origin", "https://quy.example.org")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	newTestRouter().ServeHTTP(rr, req)
	if rr.Code != http.StatusNoContent {
		t.Fatalf("preflight status = %d", rr.Code)
	}
	if rr.Header().Get("Access-Control-Allow-Origin") != "https://quy.example.org" {
		t.Fatalf("allow origin = %q", rr.Header().Get("Access-Control-Allow-Origin"))
	}
}
