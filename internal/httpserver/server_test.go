package httpserver

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/frankiefreesbie/glucko-server/internal/config"
)

func testConfig() *config.Config {
	return &config.Config{Port: 8080, Blob: config.BlobConfig{Mode: config.BlobModeLocal}}
}

func TestHealthz(t *testing.T) {
	srv := New(testConfig())

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()

	srv.mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", w.Code)
	}

	var resp map[string]string
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if resp["status"] != "ok" {
		t.Errorf("expected status=ok, got %s", resp["status"])
	}
}

func TestHealthzMethodNotAllowed(t *testing.T) {
	srv := New(testConfig())

	req := httptest.NewRequest(http.MethodPost, "/healthz", nil)
	w := httptest.NewRecorder()

	srv.mux.ServeHTTP(w, req)

	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected status 405, got %d", w.Code)
	}
}

func TestRecipeRoutesRegistered(t *testing.T) {
	srv := New(testConfig())

	req := httptest.NewRequest(http.MethodGet, "/v1/recipes", nil)
	w := httptest.NewRecorder()
	srv.mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "recipes") {
		t.Errorf("unexpected body: %s", w.Body.String())
	}
}

func TestGroceryRouteRegistered(t *testing.T) {
	srv := New(testConfig())

	req := httptest.NewRequest(http.MethodGet, "/v1/grocery?date=2026-03-02", nil)
	w := httptest.NewRecorder()
	srv.mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
}
