package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/docushop/storefront/internal/core/domain"
)

// Context keys written by the Auth middleware.
const (
	ctxAccountID = "account_id"
	ctxRole      = "role"
)

// ctxIdentity extracts the caller injected by the Auth middleware. An empty
// role means the middleware did not run or the token carried no claims.
func ctxIdentity(c echo.Context) (accountID string, role domain.Role, err error) {
	r, _ := c.Get(ctxRole).(string)
	if r == "" {
		return "", "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	accountID, _ = c.Get(ctxAccountID).(string)
	if accountID == "" {
		return "", "", echo.NewHTTPError(http.StatusUnauthorized, "token missing account identity")
	}
	return accountID, domain.Role(r), nil
}

// optionalAccountID returns the authenticated account id, or "" for guests.
func optionalAccountID(c echo.Context) string {
	id, _ := c.Get(ctxAccountID).(string)
	return id
}

// pageParams reads the optional page and limit query parameters. Zero means
// "use the service default".
func pageParams(c echo.Context) (page, limit int, err error) {
	if err := echo.QueryParamsBinder(c).
		Int("page", &page).
		Int("limit", &limit).
		BindError(); err != nil {
		return 0, 0, domain.Invalidf("page and limit must be integers")
	}
	if page < 0 || limit < 0 {
		return 0, 0, domain.Invalidf("page and limit must not be negative")
	}
	return page, limit, nil
}
