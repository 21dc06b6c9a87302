package ports

import (
	"context"

	"github.com/bizboard/backoffice/internal/core/domain"
)

// StatsRepository aggregates the headline numbers for one dashboard area.
type StatsRepository interface {
	Collect(ctx context.Context, area string) (map[string]int64, error)
}

// StatsService assembles the dashboard stats payload.
type StatsService interface {
	DashboardStats(ctx context.Context, area string) (*domain.DashboardStats, error)
}
