package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/vaultkeep/notes-service/internal/core/domain"
)

func newGateContext(principal *domain.Principal) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if principal != nil {
		c.Set(principalKey, principal)
	}
	return c
}

func gateStatus(t *testing.T, err error) int {
	t.Helper()
	var he *echo.HTTPError
	if !errors.As(err, &he) {
		t.Fatalf("expected echo.HTTPError, got %v", err)
	}
	return he.Code
}

func TestRequireAuthenticated_AllowsPrincipal(t *testing.T) {
	c := newGateContext(&domain.Principal{Username: "alice", Roles: []string{domain.RoleUser}})

	called := false
	handler := RequireAuthenticated()(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
}

func TestRequireAuthenticated_RejectsAnonymous(t *testing.T) {
	c := newGateContext(nil)

	handler := RequireAuthenticated()(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if code := gateStatus(t, handler(c)); code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", code)
	}
}

func TestRequireRole_AdminAllowed(t *testing.T) {
	c := newGateContext(&domain.Principal{Username: "root", Roles: []string{domain.RoleAdmin}})

	called := false
	handler := RequireRole(domain.RoleAdmin)(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
}

func TestRequireRole_UserForbidden(t *testing.T) {
	c := newGateContext(&domain.Principal{Username: "alice", Roles: []string{domain.RoleUser}})

	handler := RequireRole(domain.RoleAdmin)(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if code := gateStatus(t, handler(c)); code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", code)
	}
}

func TestRequireRole_AnonymousUnauthenticated(t *testing.T) {
	c := newGateContext(nil)

	handler := RequireRole(domain.RoleAdmin)(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if code := gateStatus(t, handler(c)); code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", code)
	}
}
