package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sdianka/portfolio/internal/models"
)

// ProjectServiceProvider defines the interface for project services.
type ProjectServiceProvider interface {
	GetAllProjects(ctx context.Context, publishedOnly bool) ([]models.Project, error)
	GetProjectByID(ctx context.Context, id string) (models.Project, error)
	CreateProject(ctx context.Context, input models.ProjectInput) (models.Project, error)
	UpdateProject(ctx context.Context, id string, input models.ProjectInput) (models.Project, error)
	DeleteProject(ctx context.Context, id string) error
}

// ProjectService provides business logic for project management.
type ProjectService struct {
	db           *sql.DB
	eventService EventServiceProvider
	publisher    Publisher
}

// NewProjectService creates a new ProjectService.
func NewProjectService(db *sql.DB, eventService EventServiceProvider, publisher Publisher) *ProjectService {
	return &ProjectService{
		db:           db,
		eventService: eventService,
		publisher:    publisherOrNop(publisher),
	}
}

const projectColumns = `id, title, slug, description, tech_stack_json, cover_url, repo_url, live_url,
	published, featured, created_at, updated_at`

// scanProject is a helper to scan a project from a row or rows object.
func scanProject(scanner interface{ Scan(...interface{}) error }) (models.Project, error) {
	var p models.Project
	err := scanner.Scan(
		&p.ID, &p.Title, &p.Slug, &p.Description, &p.TechStackJSON,
		&p.CoverURL, &p.RepoURL, &p.LiveURL,
		&p.Published, &p.Featured, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return p, err
	}
	p.PrepareForAPI()
	return p, nil
}

// GetAllProjects retrieves projects newest first.
func (s *ProjectService) GetAllProjects(ctx context.Context, publishedOnly bool) ([]models.Project, error) {
	query := "SELECT " + projectColumns + " FROM projects"
	if publishedOnly {
		query += " WHERE published = 1"
	}
	query += " ORDER BY created_at DESC, rowid DESC"

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	projects := []models.Project{}
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

// GetProjectByID retrieves a single project by its ID.
func (s *ProjectService) GetProjectByID(ctx context.Context, id string) (models.Project, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+projectColumns+" FROM projects WHERE id = ?", id)
	p, err := scanProject(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Project{}, fmt.Errorf("project %s: %w", id, ErrNotFound)
		}
		return models.Project{}, err
	}
	return p, nil
}

// CreateProject validates the input and inserts a new project.
func (s *ProjectService) CreateProject(ctx context.Context, input models.ProjectInput) (models.Project, error) {
	var p models.Project
	input.Apply(&p)
	if err := normalizeProject(&p); err != nil {
		return models.Project{}, err
	}

	now := time.Now().UTC()
	p.ID = uuid.New().String()
	p.CreatedAt = now
	p.UpdatedAt = now
	p.PrepareForSave()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO projects (`+projectColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Title, p.Slug, p.Description, p.TechStackJSON,
		p.CoverURL, p.RepoURL, p.LiveURL,
		p.Published, p.Featured, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return models.Project{}, fmt.Errorf("failed to insert project: %w", err)
	}

	s.eventService.CreateEvent("project.create", "info", fmt.Sprintf("Project '%s' created.", p.Title))
	s.publisher.Publish("project.created", p)
	return s.GetProjectByID(ctx, p.ID)
}

// UpdateProject applies the fields present in input to an existing project.
func (s *ProjectService) UpdateProject(ctx context.Context, id string, input models.ProjectInput) (models.Project, error) {
	p, err := s.GetProjectByID(ctx, id)
	if err != nil {
		return models.Project{}, err
	}

	titleChanged := input.Title != nil && *input.Title != p.Title
	input.Apply(&p)
	if titleChanged && input.Slug == nil {
		p.Slug = ""
	}
	if err := normalizeProject(&p); err != nil {
		return models.Project{}, err
	}
	p.UpdatedAt = time.Now().UTC()
	p.PrepareForSave()

	_, err = s.db.ExecContext(ctx, `
		UPDATE projects SET title = ?, slug = ?, description = ?, tech_stack_json = ?,
		                    cover_url = ?, repo_url = ?, live_url = ?,
		                    published = ?, featured = ?, updated_at = ?
		WHERE id = ?`,
		p.Title, p.Slug, p.Description, p.TechStackJSON,
		p.CoverURL, p.RepoURL, p.LiveURL,
		p.Published, p.Featured, p.UpdatedAt, id,
	)
	if err != nil {
		return models.Project{}, fmt.Errorf("failed to update project: %w", err)
	}

	s.eventService.CreateEvent("project.update", "info", fmt.Sprintf("Project '%s' updated.", p.Title))
	s.publisher.Publish("project.updated", p)
	return s.GetProjectByID(ctx, id)
}

// DeleteProject removes a project from the database.
func (s *ProjectService) DeleteProject(ctx context.Context, id string) error {
	p, err := s.GetProjectByID(ctx, id)
	if err != nil {
		return err
	}

	if _, err := s.db.ExecContext(ctx, "DELETE FROM projects WHERE id = ?", id); err != nil {
		return err
	}

	s.eventService.CreateEvent("project.delete", "warn", fmt.Sprintf("Project '%s' was deleted.", p.Title))
	s.publisher.Publish("project.deleted", map[string]string{"id": id})
	return nil
}

// normalizeProject trims and sanitises user supplied fields and derives
// the slug when none was given.
func normalizeProject(p *models.Project) error {
	p.Title = plainText(p.Title)
	if p.Title == "" {
		return fmt.Errorf("title is required: %w", ErrInvalidInput)
	}
	p.Description = plainText(p.Description)
	p.Slug = models.Slugify(p.Slug)
	if p.Slug == "" {
		p.Slug = models.Slugify(p.Title)
	}

	tech := make([]string, 0, len(p.TechStack))
	for _, t := range p.TechStack {
		if t = plainText(t); t != "" {
			tech = append(tech, t)
		}
	}
	p.TechStack = tech

	p.CoverURL = strings.TrimSpace(p.CoverURL)
	p.RepoURL = strings.TrimSpace(p.RepoURL)
	p.LiveURL = strings.TrimSpace(p.LiveURL)
	return nil
}
