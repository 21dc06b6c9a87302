package service

import (
	"context"
	"fmt"
	"time"

	"github.com/bizboard/backoffice/internal/core/domain"
	"github.com/bizboard/backoffice/internal/core/ports"
)

// dashboardAreas enumerates the valid dashboard areas, matching the first
// path segment of the role-scoped endpoints.
var dashboardAreas = map[string]struct{}{
	"admin":      {},
	"sales":      {},
	"finance":    {},
	"operations": {},
}

// StatsService serves the role-scoped dashboard numbers.
type StatsService struct {
	repo ports.StatsRepository
}

func NewStatsService(repo ports.StatsRepository) *StatsService {
	return &StatsService{repo: repo}
}

func (s *StatsService) DashboardStats(ctx context.Context, area string) (*domain.DashboardStats, error) {
	if _, ok := dashboardAreas[area]; !ok {
		return nil, fmt.Errorf("unknown dashboard area %q", area)
	}

	totals, err := s.repo.Collect(ctx, area)
	if err != nil {
		return nil, fmt.Errorf("collect %s stats: %w", area, err)
	}

	return &domain.DashboardStats{
		Area:        area,
		Totals:      totals,
		GeneratedAt: time.Now().UTC(),
	}, nil
}
