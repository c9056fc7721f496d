package models

import (
	"encoding/json"
	"regexp"
	"strings"
	"time"
)

// Project represents a portfolio entry shown on the public site.
type Project struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	CoverURL    string    `json:"cover_url,omitempty"`
	RepoURL     string    `json:"repo_url,omitempty"`
	LiveURL     string    `json:"live_url,omitempty"`
	Published   bool      `json:"published"`
	Featured    bool      `json:"featured"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// JSON string field for DB storage
	TechStackJSON string `json:"-"`

	// Slice field for API interaction
	TechStack []string `json:"tech_stack"`
}

// ProjectInput is the request body for creating or updating a project.
// Absent fields keep their current value on update and take the zero
// value on create.
type ProjectInput struct {
	Title       *string   `json:"title,omitempty"`
	Slug        *string   `json:"slug,omitempty"`
	Description *string   `json:"description,omitempty"`
	TechStack   *[]string `json:"tech_stack,omitempty"`
	CoverURL    *string   `json:"cover_url,omitempty"`
	RepoURL     *string   `json:"repo_url,omitempty"`
	LiveURL     *string   `json:"live_url,omitempty"`
	Published   *bool     `json:"published,omitempty"`
	Featured    *bool     `json:"featured,omitempty"`
}

// Apply copies every field present in the input onto p.
func (in ProjectInput) Apply(p *Project) {
	if in.Title != nil {
		p.Title = *in.Title
	}
	if in.Slug != nil {
		p.Slug = *in.Slug
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.TechStack != nil {
		p.TechStack = *in.TechStack
	}
	if in.CoverURL != nil {
		p.CoverURL = *in.CoverURL
	}
	if in.RepoURL != nil {
		p.RepoURL = *in.RepoURL
	}
	if in.LiveURL != nil {
		p.LiveURL = *in.LiveURL
	}
	if in.Published != nil {
		p.Published = *in.Published
	}
	if in.Featured != nil {
		p.Featured = *in.Featured
	}
}

// PrepareForSave marshals the tech stack into its JSON string for DB storage.
func (p *Project) PrepareForSave() {
	if p.TechStack == nil {
		p.TechStack = []string{}
	}
	techBytes, _ := json.Marshal(p.TechStack)
	p.TechStackJSON = string(techBytes)
}

// PrepareForAPI unmarshals the stored tech stack for API responses.
func (p *Project) PrepareForAPI() {
	if p.TechStackJSON != "" {
		json.Unmarshal([]byte(p.TechStackJSON), &p.TechStack)
	}
	if p.TechStack == nil {
		p.TechStack = []string{}
	}
}

var nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify derives a URL slug from a title: lower-case, every run of
// characters outside [a-z0-9] becomes a single dash, no leading or
// trailing dash.
func Slugify(title string) string {
	slug := nonSlugChars.ReplaceAllString(strings.ToLower(title), "-")
	return strings.Trim(slug, "-")
}
