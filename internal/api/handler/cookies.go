package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/bizboard/backoffice/internal/core/domain"
)

// CookieWriter is the server-side credential store: it writes and clears the
// token pair as http-only cookies. Tokens are stored as a pair or not at
// all; a write that cannot be confirmed aborts with ErrTokenPersistence so
// no session proceeds on half-written credentials.
type CookieWriter struct {
	secure     bool
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewCookieWriter(secure bool, accessTTL, refreshTTL time.Duration) *CookieWriter {
	if accessTTL <= 0 {
		accessTTL = domain.DefaultAccessTTL
	}
	if refreshTTL <= 0 {
		refreshTTL = domain.DefaultRefreshTTL
	}
	return &CookieWriter{secure: secure, accessTTL: accessTTL, refreshTTL: refreshTTL}
}

// Write sets both token cookies. After writing it reads the response
// headers back and verifies both Set-Cookie entries are present; on any
// failure it clears whatever was written and reports ErrTokenPersistence.
func (w *CookieWriter) Write(c echo.Context, pair domain.TokenPair) error {
	if !pair.Complete() {
		return domain.ErrTokenPersistence
	}

	c.SetCookie(w.cookie(domain.AccessTokenName, pair.AccessToken, w.accessTTL))
	c.SetCookie(w.cookie(domain.RefreshTokenName, pair.RefreshToken, w.refreshTTL))

	if !setCookiePresent(c, domain.AccessTokenName) || !setCookiePresent(c, domain.RefreshTokenName) {
		w.Clear(c)
		return domain.ErrTokenPersistence
	}
	return nil
}

// Clear expires both cookies. Idempotent, and safe when no tokens exist.
func (w *CookieWriter) Clear(c echo.Context) {
	for _, name := range []string{domain.AccessTokenName, domain.RefreshTokenName} {
		expired := w.cookie(name, "", 0)
		expired.MaxAge = -1
		expired.Expires = time.Unix(0, 0)
		c.SetCookie(expired)
	}
}

func (w *CookieWriter) cookie(name, value string, ttl time.Duration) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   w.secure,
		SameSite: http.SameSiteLaxMode,
	}
}

func setCookiePresent(c echo.Context, name string) bool {
	for _, h := range c.Response().Header().Values(echo.HeaderSetCookie) {
		if strings.HasPrefix(h, name+"=") && !strings.HasPrefix(h, name+"=;") {
			return true
		}
	}
	return false
}
