package admin

import (
	"context"
	"strings"

	"github.com/sdianka/portfolio/internal/client"
	"github.com/sdianka/portfolio/internal/models"
)

// ProjectForm is the editable state of the project form.
type ProjectForm struct {
	Title       string
	Description string
	// Technologies is the raw comma separated input.
	Technologies string
	CoverURL     string
	RepoURL      string
	LiveURL      string
	Published    bool
	Featured     bool
}

// NewProjectForm returns an empty form. New projects are published by default.
func NewProjectForm() ProjectForm {
	return ProjectForm{Published: true}
}

// ProjectFormFrom fills the form from an existing project.
func ProjectFormFrom(p models.Project) ProjectForm {
	return ProjectForm{
		Title:        p.Title,
		Description:  p.Description,
		Technologies: strings.Join(p.TechStack, ", "),
		CoverURL:     p.CoverURL,
		RepoURL:      p.RepoURL,
		LiveURL:      p.LiveURL,
		Published:    p.Published,
		Featured:     p.Featured,
	}
}

// SplitTechnologies splits comma separated input, trimming each entry and
// dropping blanks.
func SplitTechnologies(raw string) []string {
	techs := []string{}
	for _, t := range strings.Split(raw, ",") {
		if t = strings.TrimSpace(t); t != "" {
			techs = append(techs, t)
		}
	}
	return techs
}

// Body builds the request body. The slug is derived from the title and
// empty URLs are left out.
func (f ProjectForm) Body() models.ProjectInput {
	title := strings.TrimSpace(f.Title)
	slug := models.Slugify(title)
	techs := SplitTechnologies(f.Technologies)
	published, featured := f.Published, f.Featured
	description := f.Description
	return models.ProjectInput{
		Title:       &title,
		Slug:        &slug,
		Description: &description,
		TechStack:   &techs,
		CoverURL:    optional(f.CoverURL),
		RepoURL:     optional(f.RepoURL),
		LiveURL:     optional(f.LiveURL),
		Published:   &published,
		Featured:    &featured,
	}
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// ProjectsScreen manages the project list.
type ProjectsScreen struct {
	screen
	projects []models.Project
}

// NewProjectsScreen creates a ProjectsScreen.
func NewProjectsScreen(api API, notify Notifier, confirm Confirmer) *ProjectsScreen {
	return &ProjectsScreen{screen: screen{api: api, notify: notify, confirm: confirm}}
}

// Load replaces the list with the server's.
func (s *ProjectsScreen) Load(ctx context.Context) error {
	resp, err := s.api.Get(ctx, "/projects", false)
	if resp, err = s.check(resp, err, "Failed to load projects"); err != nil {
		return err
	}
	var projects []models.Project
	if err := resp.JSON(&projects); err != nil {
		s.notify.Error("Failed to load projects")
		return err
	}
	s.projects = projects
	return nil
}

// Projects returns the loaded list.
func (s *ProjectsScreen) Projects() []models.Project {
	return s.projects
}

// Filter returns the projects whose title or one of whose technologies
// contains the query, case-insensitively.
func (s *ProjectsScreen) Filter(query string) []models.Project {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return s.projects
	}
	var out []models.Project
	for _, p := range s.projects {
		if strings.Contains(strings.ToLower(p.Title), q) {
			out = append(out, p)
			continue
		}
		for _, t := range p.TechStack {
			if strings.Contains(strings.ToLower(t), q) {
				out = append(out, p)
				break
			}
		}
	}
	return out
}

// Save creates a project when id is empty and updates it otherwise, then
// reloads the list.
func (s *ProjectsScreen) Save(ctx context.Context, id string, form ProjectForm) error {
	if strings.TrimSpace(form.Title) == "" {
		s.notify.Error("Title is required")
		return ErrInvalidForm
	}

	success := "Project created"
	if id != "" {
		success = "Project updated"
	}
	resp, err := s.send(ctx, id, form.Body())
	if resp, err = s.check(resp, err, "Failed to save project"); err != nil {
		return err
	}
	resp.Close()
	s.notify.Success(success)
	return s.Load(ctx)
}

func (s *ProjectsScreen) send(ctx context.Context, id string, body models.ProjectInput) (*client.Response, error) {
	if id == "" {
		return s.api.Post(ctx, "/projects", body, true)
	}
	return s.api.Put(ctx, "/projects/"+id, body, true)
}

// Delete removes a project after confirmation, then reloads the list.
func (s *ProjectsScreen) Delete(ctx context.Context, id string) error {
	if !s.confirmed("Delete this project?") {
		return ErrCancelled
	}
	resp, err := s.api.Delete(ctx, "/projects/"+id, true)
	if resp, err = s.check(resp, err, "Failed to delete project"); err != nil {
		return err
	}
	resp.Close()
	s.notify.Success("Project deleted")
	return s.Load(ctx)
}
