package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/vaultkeep/notes-service/internal/api/middleware"
	"github.com/vaultkeep/notes-service/internal/core/domain"
)

// requirePrincipal extracts the Principal attached by the Authenticate
// middleware. Handlers behind the route gates should always find one; the
// nil check is a fast-fail guard against a misregistered route.
func requirePrincipal(c echo.Context) (*domain.Principal, error) {
	principal := middleware.PrincipalFrom(c)
	if principal == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}
	return principal, nil
}
