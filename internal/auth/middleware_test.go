package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/frankiefreesbie/glucko-server/internal/config"
)

func testConfig() *config.Config {
	return &config.Config{
		AuthMode:      "dev",
		AuthRequired:  true,
		JWTSecret:     "test-secret",
		JWTIssuer:     "glucko",
		JWTTTLMinutes: 60,
	}
}

func protectedHandler(gotUserID *string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*gotUserID = UserIDFrom(r.Context())
		w.WriteHeader(http.StatusOK)
	})
}

func TestDevAuthRoundTrip(t *testing.T) {
	cfg := testConfig()
	service := NewService(cfg)
	handlers := NewHandlers(service)
	middleware := NewMiddleware(cfg, service)

	// Sign in
	signInReq := httptest.NewRequest(http.MethodPost, "/v1/auth/dev", nil)
	signInW := httptest.NewRecorder()
	handlers.HandleDevAuth(signInW, signInReq)

	if signInW.Code != http.StatusOK {
		t.Fatalf("sign-in: expected 200, got %d: %s", signInW.Code, signInW.Body.String())
	}

	var resp DevAuthResponse
	if err := json.NewDecoder(signInW.Body).Decode(&resp); err != nil {
		t.Fatalf("sign-in: failed to decode response: %v", err)
	}
	if resp.AccessToken == "" || resp.UserID == "" {
		t.Fatalf("sign-in: incomplete response: %+v", resp)
	}

	// Use the token against a protected endpoint
	var gotUserID string
	handler := middleware.RequireAuth(protectedHandler(&gotUserID))

	req := httptest.NewRequest(http.MethodGet, "/v1/recipes", nil)
	req.Header.Set("Authorization", "Bearer "+resp.AccessToken)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 with valid token, got %d", w.Code)
	}
	if gotUserID != resp.UserID {
		t.Errorf("expected user id %q in context, got %q", resp.UserID, gotUserID)
	}
}

func TestRequireAuthRejectsMissingToken(t *testing.T) {
	cfg := testConfig()
	middleware := NewMiddleware(cfg, NewService(cfg))

	var gotUserID string
	handler := middleware.RequireAuth(protectedHandler(&gotUserID))

	req := httptest.NewRequest(http.MethodGet, "/v1/recipes", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestRequireAuthRejectsBadToken(t *testing.T) {
	cfg := testConfig()
	middleware := NewMiddleware(cfg, NewService(cfg))

	var gotUserID string
	handler := middleware.RequireAuth(protectedHandler(&gotUserID))

	req := httptest.NewRequest(http.MethodGet, "/v1/recipes", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestRequireAuthSkipsPublicPaths(t *testing.T) {
	cfg := testConfig()
	middleware := NewMiddleware(cfg, NewService(cfg))

	var gotUserID string
	handler := middleware.RequireAuth(protectedHandler(&gotUserID))

	for _, path := range []string{"/healthz", "/v1/auth/dev"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("%s: expected 200 without token, got %d", path, w.Code)
		}
	}
}

func TestRequireAuthDisabled(t *testing.T) {
	cfg := testConfig()
	cfg.AuthRequired = false
	middleware := NewMiddleware(cfg, NewService(cfg))

	var gotUserID string
	handler := middleware.RequireAuth(protectedHandler(&gotUserID))

	req := httptest.NewRequest(http.MethodGet, "/v1/recipes", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 with auth disabled, got %d", w.Code)
	}
	if gotUserID != DefaultOwnerUserID {
		t.Errorf("expected default owner %q, got %q", DefaultOwnerUserID, gotUserID)
	}
}

func TestHandleDevAuthDisabledOutsideDevMode(t *testing.T) {
	cfg := testConfig()
	cfg.AuthMode = "none"
	handlers := NewHandlers(NewService(cfg))

	req := httptest.NewRequest(http.MethodPost, "/v1/auth/dev", nil)
	w := httptest.NewRecorder()
	handlers.HandleDevAuth(w, req)

	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", w.Code)
	}
}
