package admin

import (
	"context"

	"github.com/sdianka/portfolio/internal/models"
)

// DashboardScreen shows the aggregate numbers of the admin home page.
type DashboardScreen struct {
	screen
}

// NewDashboardScreen creates a DashboardScreen.
func NewDashboardScreen(api API, notify Notifier) *DashboardScreen {
	return &DashboardScreen{screen: screen{api: api, notify: notify}}
}

// Load fetches the current statistics.
func (s *DashboardScreen) Load(ctx context.Context) (models.DashboardStats, error) {
	var stats models.DashboardStats
	resp, err := s.api.Get(ctx, "/dashboard/stats", true)
	if resp, err = s.check(resp, err, "Failed to load statistics"); err != nil {
		return stats, err
	}
	if err := resp.JSON(&stats); err != nil {
		s.notify.Error("Failed to load statistics")
		return stats, err
	}
	return stats, nil
}
