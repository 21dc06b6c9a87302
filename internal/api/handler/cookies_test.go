package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/bizboard/backoffice/internal/core/domain"
)

func newCookieContext() (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestCookieWriter_WritesPairWithAttributes(t *testing.T) {
	w := NewCookieWriter(true, 24*time.Hour, 7*24*time.Hour)
	c, rec := newCookieContext()

	err := w.Write(c, domain.TokenPair{AccessToken: "acc", RefreshToken: "ref"})
	if err != nil {
		t.Fatalf("Write returned error: %v", err)
	}

	access := cookieByName(rec, domain.AccessTokenName)
	refresh := cookieByName(rec, domain.RefreshTokenName)
	if access == nil || refresh == nil {
		t.Fatalf("expected both cookies")
	}

	if access.MaxAge != 86400 {
		t.Errorf("access Max-Age = %d, want 86400", access.MaxAge)
	}
	if refresh.MaxAge != 604800 {
		t.Errorf("refresh Max-Age = %d, want 604800", refresh.MaxAge)
	}
	for _, cookie := range []*http.Cookie{access, refresh} {
		if cookie.Path != "/" {
			t.Errorf("%s Path = %q, want /", cookie.Name, cookie.Path)
		}
		if !cookie.HttpOnly {
			t.Errorf("%s must be http-only", cookie.Name)
		}
		if !cookie.Secure {
			t.Errorf("%s must be secure in production", cookie.Name)
		}
		if cookie.SameSite != http.SameSiteLaxMode {
			t.Errorf("%s SameSite = %v, want Lax", cookie.Name, cookie.SameSite)
		}
	}
}

func TestCookieWriter_InsecureOutsideProduction(t *testing.T) {
	w := NewCookieWriter(false, time.Hour, 2*time.Hour)
	c, rec := newCookieContext()

	if err := w.Write(c, domain.TokenPair{AccessToken: "a", RefreshToken: "r"}); err != nil {
		t.Fatalf("Write returned error: %v", err)
	}
	if cookie := cookieByName(rec, domain.AccessTokenName); cookie.Secure {
		t.Fatalf("secure flag must be off outside production")
	}
}

func TestCookieWriter_RejectsPartialPair(t *testing.T) {
	w := NewCookieWriter(false, time.Hour, 2*time.Hour)
	c, rec := newCookieContext()

	err := w.Write(c, domain.TokenPair{AccessToken: "only-access"})
	if !errors.Is(err, domain.ErrTokenPersistence) {
		t.Fatalf("expected ErrTokenPersistence, got %v", err)
	}

	// Nothing live may remain: a partial pair is worse than none.
	if cookie := cookieByName(rec, domain.AccessTokenName); cookie != nil && cookie.MaxAge > 0 {
		t.Fatalf("no live access cookie may survive a rejected write")
	}
	if cookie := cookieByName(rec, domain.RefreshTokenName); cookie != nil && cookie.MaxAge > 0 {
		t.Fatalf("no live refresh cookie may survive a rejected write")
	}
}

func TestCookieWriter_ClearIsIdempotent(t *testing.T) {
	w := NewCookieWriter(false, time.Hour, 2*time.Hour)
	c, rec := newCookieContext()

	// Clearing with nothing set is safe, and doing it twice changes nothing.
	w.Clear(c)
	w.Clear(c)

	res := rec.Result()
	seen := map[string]int{}
	for _, cookie := range res.Cookies() {
		if cookie.MaxAge != -1 {
			t.Errorf("%s must be expired, got MaxAge %d", cookie.Name, cookie.MaxAge)
		}
		seen[cookie.Name]++
	}
	if seen[domain.AccessTokenName] == 0 || seen[domain.RefreshTokenName] == 0 {
		t.Fatalf("both cookies must be expired, saw %v", seen)
	}
}
