package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func doRequest(t *testing.T, mw echo.MiddlewareFunc, authHeader string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := mw(func(c echo.Context) error {
		return c.String(http.StatusOK, UserIDFromContext(c.Request().Context()))
	})
	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec
}

func TestJWTMiddleware_ValidToken(t *testing.T) {
	secret := []byte("test-signing-key-that-is-long-enough")
	ti := NewTokenIssuer(secret, "gramcare-test")
	pair, err := ti.Issue("user-9", "citizen")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	mw := JWTMiddleware(JWTConfig{Issuer: "gramcare-test", SigningKey: secret})
	rec := doRequest(t, mw, "Bearer "+pair.AccessToken)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", rec.Code, rec.Body.String())
	}
	if rec.Body.String() != "user-9" {
		t.Errorf("user id = %q, want user-9", rec.Body.String())
	}
}

func TestJWTMiddleware_MissingHeader(t *testing.T) {
	mw := JWTMiddleware(JWTConfig{SigningKey: []byte("test-signing-key-that-is-long-enough")})
	rec := doRequest(t, mw, "")
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestJWTMiddleware_RejectsRefreshToken(t *testing.T) {
	secret := []byte("test-signing-key-that-is-long-enough")
	ti := NewTokenIssuer(secret, "gramcare-test")
	pair, err := ti.Issue("user-10", "citizen")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	mw := JWTMiddleware(JWTConfig{Issuer: "gramcare-test", SigningKey: secret})
	rec := doRequest(t, mw, "Bearer "+pair.RefreshToken)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401 for refresh token on protected route", rec.Code)
	}
}

func TestDevAuthMiddleware_DefaultsToAdmin(t *testing.T) {
	rec := doRequest(t, DevAuthMiddleware(), "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if rec.Body.String() != "dev-user" {
		t.Errorf("user id = %q, want dev-user", rec.Body.String())
	}
}
