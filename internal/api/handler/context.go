package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bizboard/backoffice/internal/api/middleware"
)

// ctxIdentity extracts the verified identity injected by the Auth middleware
// and fast-fails before any service call: a missing user id or role means
// the middleware did not run, so the request has no business here.
func ctxIdentity(c echo.Context) (userID, role string, err error) {
	userID, _ = c.Get(middleware.CtxUserID).(string)
	role, _ = c.Get(middleware.CtxRole).(string)
	if userID == "" || role == "" {
		return "", "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return userID, role, nil
}
