package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/agrovista/agrovista/pkg/models"
)

func newAuthTestRouter(t *testing.T) *RouteManager {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")

	rm := NewRouteManager(nil, nil)
	rm.Router.Handle("/whoami", rm.JWTAuthMiddleware(http.HandlerFunc(rm.handleMe))).Methods("GET")
	return rm
}

func TestJWTAuthMiddleware_ValidToken(t *testing.T) {
	rm := newAuthTestRouter(t)

	user := &models.User{ID: uuid.New(), Email: "ana@example.com"}
	token, _, err := GenerateJWT(user)
	if err != nil {
		t.Fatalf("GenerateJWT failed: %v", err)
	}

	req := httptest.NewRequest("GET", "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	rm.Router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var info UserInfo
	if err := json.NewDecoder(rec.Body).Decode(&info); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if info.Email != "ana@example.com" {
		t.Errorf("expected email ana@example.com, got %s", info.Email)
	}
	if info.ID != user.ID.String() {
		t.Errorf("expected ID %s, got %s", user.ID, info.ID)
	}
}

func TestJWTAuthMiddleware_RejectsBadTokens(t *testing.T) {
	rm := newAuthTestRouter(t)

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"wrong scheme", "Basic abc"},
		{"garbage token", "Bearer not.a.token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/whoami", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			rm.Router.ServeHTTP(rec, req)

			if rec.Code != http.StatusUnauthorized {
				t.Errorf("expected 401, got %d", rec.Code)
			}
		})
	}
}

func TestJWTAuthMiddleware_RejectsTokenSignedWithOtherSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "first-secret")
	token, _, err := GenerateJWT(&models.User{ID: uuid.New(), Email: "ana@example.com"})
	if err != nil {
		t.Fatalf("GenerateJWT failed: %v", err)
	}

	rm := newAuthTestRouter(t)

	req := httptest.NewRequest("GET", "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	rm.Router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}
