package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/bizboard/backoffice/internal/core/domain"
)

type stubStatsService struct {
	statsFn func(ctx context.Context, area string) (*domain.DashboardStats, error)
}

func (s *stubStatsService) DashboardStats(ctx context.Context, area string) (*domain.DashboardStats, error) {
	return s.statsFn(ctx, area)
}

func TestDashboardHandler_Stats(t *testing.T) {
	stub := &stubStatsService{
		statsFn: func(ctx context.Context, area string) (*domain.DashboardStats, error) {
			if area != "sales" {
				t.Fatalf("unexpected area: %s", area)
			}
			return &domain.DashboardStats{
				Area:        area,
				Totals:      map[string]int64{"orders": 7, "leads": 12},
				GeneratedAt: time.Now().UTC(),
			}, nil
		},
	}
	h := NewDashboardHandler(stub)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/sales/dashboard/stats", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", "u2")
	c.Set("role", "SALES")

	if err := h.Stats("sales")(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp domain.DashboardStats
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Area != "sales" || resp.Totals["orders"] != 7 {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestDashboardHandler_Stats_RequiresIdentity(t *testing.T) {
	stub := &stubStatsService{
		statsFn: func(ctx context.Context, area string) (*domain.DashboardStats, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	h := NewDashboardHandler(stub)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/admin/dashboard/stats", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.Stats("admin")(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}
