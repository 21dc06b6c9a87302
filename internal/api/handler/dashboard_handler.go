package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bizboard/backoffice/internal/core/ports"
)

// DashboardHandler serves the role-scoped dashboard statistics.
type DashboardHandler struct {
	stats ports.StatsService
}

func NewDashboardHandler(stats ports.StatsService) *DashboardHandler {
	return &DashboardHandler{stats: stats}
}

// Stats returns a handler for one dashboard area. Role enforcement lives in
// the RBAC middleware; by the time this runs the caller is cleared for the
// area.
//
// @Summary      Dashboard statistics for an area
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.DashboardStats
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /{area}/dashboard/stats [get]
func (h *DashboardHandler) Stats(area string) echo.HandlerFunc {
	return func(c echo.Context) error {
		if _, _, err := ctxIdentity(c); err != nil {
			return err
		}

		stats, err := h.stats.DashboardStats(c.Request().Context(), area)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, stats)
	}
}
