package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

// stubClaims implements PrincipalGetter.
type stubClaims struct {
	principal string
}

func (c *stubClaims) GetPrincipal() string {
	return c.principal
}

// stubValidator accepts exactly one token value.
type stubValidator struct {
	accept    string
	principal string
}

func (v *stubValidator) ValidateToken(tokenString string) (PrincipalGetter, error) {
	if tokenString != v.accept {
		return nil, fmt.Errorf("invalid token")
	}
	return &stubClaims{principal: v.principal}, nil
}

func newAuthedHandler(t *testing.T, validator TokenValidator) (http.Handler, *string) {
	t.Helper()
	var seen string
	handler := Auth(validator)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal, err := GetPrincipal(r)
		if err != nil {
			t.Errorf("GetPrincipal failed inside authed handler: %v", err)
		}
		seen = principal
		w.WriteHeader(http.StatusOK)
	}))
	return handler, &seen
}

func TestAuthRejectsMissingToken(t *testing.T) {
	handler, _ := newAuthedHandler(t, &stubValidator{accept: "good", principal: "p"})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected status 401, got %d", w.Code)
	}
}

func TestAuthRejectsInvalidToken(t *testing.T) {
	handler, _ := newAuthedHandler(t, &stubValidator{accept: "good", principal: "p"})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer bad")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected status 401, got %d", w.Code)
	}
}

func TestAuthAcceptsBearerHeader(t *testing.T) {
	handler, seen := newAuthedHandler(t, &stubValidator{accept: "good", principal: "principal-1"})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer good")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	if *seen != "principal-1" {
		t.Errorf("expected principal-1 in context, got %q", *seen)
	}
}

func TestAuthAcceptsCookie(t *testing.T) {
	handler, seen := newAuthedHandler(t, &stubValidator{accept: "good", principal: "principal-1"})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: AuthCookieName, Value: "good"})
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	if *seen != "principal-1" {
		t.Errorf("expected principal-1 in context, got %q", *seen)
	}
}

func TestCookieTakesPrecedenceOverHeader(t *testing.T) {
	validator := &stubValidator{accept: "cookie-token", principal: "cookie-principal"}
	handler, seen := newAuthedHandler(t, validator)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: AuthCookieName, Value: "cookie-token"})
	req.Header.Set("Authorization", "Bearer header-token")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	if *seen != "cookie-principal" {
		t.Errorf("expected cookie principal, got %q", *seen)
	}
}

func TestExtractTokenMalformedHeader(t *testing.T) {
	tests := []struct {
		name   string
		header string
	}{
		{"no scheme", "abcdef"},
		{"wrong scheme", "Basic abcdef"},
		{"missing token", "Bearer"},
		{"extra parts", "Bearer one two"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set("Authorization", tt.header)
			if got := extractToken(req); got != "" {
				t.Errorf("expected empty token, got %q", got)
			}
		})
	}
}

func TestGetPrincipalWithoutAuth(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if _, err := GetPrincipal(req); err == nil {
		t.Error("expected error for request without principal")
	}
}

func TestWithPrincipal(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = WithPrincipal(req, "principal-1")

	principal, err := GetPrincipal(req)
	if err != nil {
		t.Fatalf("GetPrincipal failed: %v", err)
	}
	if principal != "principal-1" {
		t.Errorf("expected principal-1, got %q", principal)
	}
}
