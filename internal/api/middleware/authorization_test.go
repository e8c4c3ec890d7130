package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	internaljwt "kartel-backend/internal/jwt"
)

func assertJSONUnauthorized(t *testing.T, rec *httptest.ResponseRecorder) {
	t.Helper()
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("expected application/json, got %q", ct)
	}
	var body struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	if body.Error == "" {
		t.Fatal("expected an error message in the envelope")
	}
}

func TestValidateJWTMiddlewareRejectsWithErrorEnvelope(t *testing.T) {
	called := false
	handler := ValidateJWTMiddleware(internaljwt.RoleAdmin)(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	cases := map[string]string{
		"missing header":  "",
		"malformed token": "Bearer not-a-jwt",
	}
	for name, header := range cases {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/applications", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		handler(rec, req)

		assertJSONUnauthorized(t, rec)
		if called {
			t.Fatalf("%s: handler should not run", name)
		}
	}
}

func TestLegacyBearerCheckRejectsWithErrorEnvelope(t *testing.T) {
	handler := legacyBearerCheck()(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run")
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/applications", nil)
	req.Header.Set("Authorization", "Bearer short")
	handler(rec, req)

	assertJSONUnauthorized(t, rec)
}

func TestLegacyBearerCheckAdmitsLongToken(t *testing.T) {
	called := false
	handler := legacyBearerCheck()(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/applications", nil)
	req.Header.Set("Authorization", "Bearer "+strings.Repeat("a", legacyMinTokenLength))
	handler(rec, req)

	if !called {
		t.Fatal("long opaque token should pass the legacy check")
	}
}
