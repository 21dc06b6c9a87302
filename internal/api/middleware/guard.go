package middleware

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/bizboard/backoffice/internal/core/domain"
)

// CallbackParam carries the originally requested path through the login
// redirect so the session can return there after authenticating.
const CallbackParam = "callbackUrl"

const loginPath = "/login"

// Decision is the outcome of the edge gate.
type Decision int

const (
	Allow Decision = iota
	RedirectToLogin
	RedirectToLanding
)

// Classification says whether a path is public and, if protected, which
// roles its area admits. The empty role set means any authenticated user.
type Classification struct {
	Public        bool
	RequiredRoles []domain.Role
}

// publicPrefixes are reachable without a token: the auth pages, the auth API
// surface, and the operational endpoints.
var publicPrefixes = []string{
	"/login",
	"/register",
	"/password-reset",
	"/auth/",
	"/health",
	"/metrics",
	"/swagger",
}

// areaRoles gates each dashboard area. ADMIN is admitted everywhere; every
// other role only to its own area.
var areaRoles = map[string][]domain.Role{
	"/admin":      {domain.RoleAdmin},
	"/sales":      {domain.RoleSales, domain.RoleAdmin},
	"/finance":    {domain.RoleFinance, domain.RoleAdmin},
	"/operations": {domain.RoleOperations, domain.RoleAdmin},
}

// Classify is a pure function from path to route class. Evaluated per
// request; nothing is persisted.
func Classify(path string) Classification {
	for _, p := range publicPrefixes {
		p = strings.TrimSuffix(p, "/")
		if path == p || strings.HasPrefix(path, p+"/") {
			return Classification{Public: true}
		}
	}
	for prefix, roles := range areaRoles {
		if path == prefix || strings.HasPrefix(path, prefix+"/") {
			return Classification{RequiredRoles: roles}
		}
	}
	return Classification{}
}

// Decide gates a navigation on token presence alone. The token's signature
// is deliberately not checked here; verification and role enforcement happen
// in the Auth and RBAC middleware once the request reaches protected API
// surface. Two phases: presence at the edge, role after the profile is known.
func Decide(path string, hasToken bool) Decision {
	cls := Classify(path)
	if cls.Public {
		// A token holder visiting the auth pages is bounced to their
		// landing instead of re-authenticating.
		if hasToken && (path == loginPath || path == "/register") {
			return RedirectToLanding
		}
		return Allow
	}
	if !hasToken {
		return RedirectToLogin
	}
	return Allow
}

// LoginRedirectURL builds /login?callbackUrl=<path> preserving the original
// destination.
func LoginRedirectURL(path string) string {
	return loginPath + "?" + CallbackParam + "=" + url.QueryEscape(path)
}

// Guard is the route guard for page navigations. It never decodes the
// token; role-aware routing is deferred until the user object is loaded.
// Unauthenticated visitors to protected pages are sent to the login page
// with a callback; authenticated visitors to the auth pages are sent to the
// shared landing, which forwards them role-appropriately once the profile
// is fetched.
func Guard() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			path := c.Request().URL.Path
			hasToken := tokenPresent(c)

			switch Decide(path, hasToken) {
			case RedirectToLogin:
				return c.Redirect(http.StatusFound, LoginRedirectURL(path))
			case RedirectToLanding:
				return c.Redirect(http.StatusFound, domain.DashboardPath)
			default:
				return next(c)
			}
		}
	}
}

func tokenPresent(c echo.Context) bool {
	if bearerToken(c) != "" {
		return true
	}
	cookie, err := c.Cookie(domain.AccessTokenName)
	return err == nil && cookie.Value != ""
}
