package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"math"
	"sort"
	"time"

	"github.com/sdianka/portfolio/internal/models"
)

const (
	topTechnologies   = 5
	projectMonths     = 6
	recentEventsShown = 10
)

// SystemReporter supplies the latest host health sample.
type SystemReporter interface {
	Snapshot() (models.SystemHealth, bool)
}

// DashboardServiceProvider defines the interface for dashboard statistics.
type DashboardServiceProvider interface {
	GetStats(ctx context.Context) (models.DashboardStats, error)
}

// DashboardService aggregates counts across every collection.
type DashboardService struct {
	db           *sql.DB
	eventService EventServiceProvider
	system       SystemReporter
	now          func() time.Time
}

// NewDashboardService creates a new DashboardService. system may be nil.
func NewDashboardService(db *sql.DB, eventService EventServiceProvider, system SystemReporter) *DashboardService {
	return &DashboardService{
		db:           db,
		eventService: eventService,
		system:       system,
		now:          time.Now,
	}
}

// GetStats computes the dashboard statistics.
func (s *DashboardService) GetStats(ctx context.Context) (models.DashboardStats, error) {
	var stats models.DashboardStats
	now := s.now().UTC()

	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*), COALESCE(SUM(published), 0), COALESCE(SUM(featured), 0) FROM projects`,
	).Scan(&stats.Projects.Total, &stats.Projects.Published, &stats.Projects.Featured)
	if err != nil {
		return stats, err
	}

	err = s.db.QueryRowContext(ctx, "SELECT COUNT(*), COALESCE(SUM(active), 0) FROM services").
		Scan(&stats.Services.Total, &stats.Services.Active)
	if err != nil {
		return stats, err
	}

	err = s.db.QueryRowContext(ctx, `
		SELECT COUNT(*),
		       COALESCE(SUM(CASE WHEN is_read = 0 THEN 1 ELSE 0 END), 0),
		       COALESCE(SUM(CASE WHEN created_at >= ? THEN 1 ELSE 0 END), 0)
		FROM messages`, now.AddDate(0, 0, -7),
	).Scan(&stats.Messages.Total, &stats.Messages.Unread, &stats.Messages.ThisWeek)
	if err != nil {
		return stats, err
	}

	stats.TechDistribution, stats.ProjectsPerMonth, err = s.projectBreakdown(ctx, now)
	if err != nil {
		return stats, err
	}

	stats.RecentEvents, err = s.eventService.GetRecentEvents(ctx, recentEventsShown)
	if err != nil {
		return stats, err
	}

	if s.system != nil {
		if health, ok := s.system.Snapshot(); ok {
			stats.System = &health
		}
	}
	return stats, nil
}

// projectBreakdown reads every project once and derives the technology
// distribution and the projects created per month over the last months.
func (s *DashboardService) projectBreakdown(ctx context.Context, now time.Time) ([]models.TechCount, []models.MonthCount, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT tech_stack_json, created_at FROM projects")
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -(projectMonths - 1), 0)
	months := make([]models.MonthCount, projectMonths)
	index := make(map[string]int, projectMonths)
	for i := range months {
		key := start.AddDate(0, i, 0).Format("2006-01")
		months[i].Month = key
		index[key] = i
	}

	techCounts := map[string]int{}
	total := 0
	for rows.Next() {
		var (
			raw       string
			createdAt time.Time
		)
		if err := rows.Scan(&raw, &createdAt); err != nil {
			return nil, nil, err
		}
		if i, ok := index[createdAt.UTC().Format("2006-01")]; ok {
			months[i].Count++
		}

		var techs []string
		if err := json.Unmarshal([]byte(raw), &techs); err != nil {
			continue
		}
		seen := map[string]bool{}
		for _, t := range techs {
			if t == "" || seen[t] {
				continue
			}
			seen[t] = true
			techCounts[t]++
			total++
		}
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}

	return techDistribution(techCounts, total), months, nil
}

// techDistribution keeps the most used technologies and folds the rest
// into "Other". Ties are broken alphabetically.
func techDistribution(counts map[string]int, total int) []models.TechCount {
	dist := make([]models.TechCount, 0, len(counts))
	for name, n := range counts {
		dist = append(dist, models.TechCount{Name: name, Count: n})
	}
	sort.Slice(dist, func(i, j int) bool {
		if dist[i].Count != dist[j].Count {
			return dist[i].Count > dist[j].Count
		}
		return dist[i].Name < dist[j].Name
	})

	if len(dist) > topTechnologies {
		other := models.TechCount{Name: "Other"}
		for _, t := range dist[topTechnologies:] {
			other.Count += t.Count
		}
		dist = append(dist[:topTechnologies], other)
	}

	for i := range dist {
		if total > 0 {
			dist[i].Percent = math.Round(float64(dist[i].Count)*1000/float64(total)) / 10
		}
	}
	return dist
}
