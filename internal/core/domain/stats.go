package domain

import "time"

// DashboardStats is the payload behind GET /{area}/dashboard/stats.
type DashboardStats struct {
	Area        string           `json:"area"`
	Totals      map[string]int64 `json:"totals"`
	GeneratedAt time.Time        `json:"generatedAt"`
}
