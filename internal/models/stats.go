package models

import "time"

// DashboardStats aggregates the numbers shown on the admin dashboard.
type DashboardStats struct {
	Projects         ProjectCounts `json:"projects"`
	Services         ServiceCounts `json:"services"`
	Messages         MessageCounts `json:"messages"`
	TechDistribution []TechCount   `json:"tech_distribution"`
	ProjectsPerMonth []MonthCount  `json:"projects_per_month"`
	System           *SystemHealth `json:"system,omitempty"`
	RecentEvents     []Event       `json:"recent_events"`
}

// ProjectCounts holds project totals.
type ProjectCounts struct {
	Total     int `json:"total"`
	Published int `json:"published"`
	Featured  int `json:"featured"`
}

// ServiceCounts holds service totals.
type ServiceCounts struct {
	Total  int `json:"total"`
	Active int `json:"active"`
}

// MessageCounts holds message totals.
type MessageCounts struct {
	Total    int `json:"total"`
	Unread   int `json:"unread"`
	ThisWeek int `json:"this_week"`
}

// TechCount is the share of projects using a technology.
type TechCount struct {
	Name    string  `json:"name"`
	Count   int     `json:"count"`
	Percent float64 `json:"percent"`
}

// MonthCount is the number of projects created in a calendar month ("2006-01").
type MonthCount struct {
	Month string `json:"month"`
	Count int    `json:"count"`
}

// SystemHealth is a snapshot of the host running the API.
type SystemHealth struct {
	CPUPercent    float64   `json:"cpu_percent"`
	MemoryPercent float64   `json:"memory_percent"`
	UptimeSeconds uint64    `json:"uptime_seconds"`
	SampledAt     time.Time `json:"sampled_at"`
}
