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

// CatalogServiceProvider defines the interface for the offered services catalog.
type CatalogServiceProvider interface {
	GetAllServices(ctx context.Context, activeOnly bool) ([]models.Service, error)
	GetServiceByID(ctx context.Context, id string) (models.Service, error)
	CreateService(ctx context.Context, input models.ServiceInput) (models.Service, error)
	UpdateService(ctx context.Context, id string, input models.ServiceInput) (models.Service, error)
	DeleteService(ctx context.Context, id string) error
	ReorderServices(ctx context.Context, orders []models.ServiceOrder) error
}

// CatalogService provides business logic for the services shown on the site.
type CatalogService struct {
	db           *sql.DB
	eventService EventServiceProvider
	publisher    Publisher
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(db *sql.DB, eventService EventServiceProvider, publisher Publisher) *CatalogService {
	return &CatalogService{
		db:           db,
		eventService: eventService,
		publisher:    publisherOrNop(publisher),
	}
}

const serviceColumns = "id, title, slug, description, icon, price, featured, active, sort_order, created_at"

func scanService(scanner interface{ Scan(...interface{}) error }) (models.Service, error) {
	var (
		sv    models.Service
		price sql.NullString
	)
	err := scanner.Scan(&sv.ID, &sv.Title, &sv.Slug, &sv.Description, &sv.Icon, &price,
		&sv.Featured, &sv.Active, &sv.Order, &sv.CreatedAt)
	if err != nil {
		return sv, err
	}
	if price.Valid {
		sv.Price = &price.String
	}
	return sv, nil
}

// GetAllServices retrieves services in display order.
func (s *CatalogService) GetAllServices(ctx context.Context, activeOnly bool) ([]models.Service, error) {
	query := "SELECT " + serviceColumns + " FROM services"
	if activeOnly {
		query += " WHERE active = 1"
	}
	query += " ORDER BY sort_order ASC, created_at ASC"

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []models.Service{}
	for rows.Next() {
		sv, err := scanService(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, sv)
	}
	return list, rows.Err()
}

// GetServiceByID retrieves a single service by its ID.
func (s *CatalogService) GetServiceByID(ctx context.Context, id string) (models.Service, error) {
	sv, err := scanService(s.db.QueryRowContext(ctx, "SELECT "+serviceColumns+" FROM services WHERE id = ?", id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Service{}, fmt.Errorf("service %s: %w", id, ErrNotFound)
		}
		return models.Service{}, err
	}
	return sv, nil
}

// CreateService inserts a new service. Active defaults to true and the
// order defaults to the end of the list.
func (s *CatalogService) CreateService(ctx context.Context, input models.ServiceInput) (models.Service, error) {
	sv := models.Service{Active: true}
	if input.Order == nil {
		var n int
		if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM services").Scan(&n); err != nil {
			return models.Service{}, err
		}
		sv.Order = n
	}
	input.Apply(&sv)
	if err := normalizeService(&sv); err != nil {
		return models.Service{}, err
	}
	sv.ID = uuid.New().String()
	sv.CreatedAt = time.Now().UTC()

	_, err := s.db.ExecContext(ctx, "INSERT INTO services ("+serviceColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
		sv.ID, sv.Title, sv.Slug, sv.Description, sv.Icon, sv.Price,
		sv.Featured, sv.Active, sv.Order, sv.CreatedAt)
	if err != nil {
		return models.Service{}, fmt.Errorf("failed to insert service: %w", err)
	}

	s.eventService.CreateEvent("service.create", "info", fmt.Sprintf("Service '%s' created.", sv.Title))
	s.publisher.Publish("service.created", sv)
	return s.GetServiceByID(ctx, sv.ID)
}

// UpdateService applies the fields present in input; absent fields keep
// their stored value.
func (s *CatalogService) UpdateService(ctx context.Context, id string, input models.ServiceInput) (models.Service, error) {
	sv, err := s.GetServiceByID(ctx, id)
	if err != nil {
		return models.Service{}, err
	}

	titleChanged := input.Title != nil && *input.Title != sv.Title
	input.Apply(&sv)
	if titleChanged && input.Slug == nil {
		sv.Slug = ""
	}
	if err := normalizeService(&sv); err != nil {
		return models.Service{}, err
	}

	_, err = s.db.ExecContext(ctx, `
		UPDATE services SET title = ?, slug = ?, description = ?, icon = ?, price = ?,
		                    featured = ?, active = ?, sort_order = ?
		WHERE id = ?`,
		sv.Title, sv.Slug, sv.Description, sv.Icon, sv.Price,
		sv.Featured, sv.Active, sv.Order, id)
	if err != nil {
		return models.Service{}, fmt.Errorf("failed to update service: %w", err)
	}

	s.eventService.CreateEvent("service.update", "info", fmt.Sprintf("Service '%s' updated.", sv.Title))
	s.publisher.Publish("service.updated", sv)
	return s.GetServiceByID(ctx, id)
}

// DeleteService removes a service. Remaining orders are left as they are;
// the next reorder makes them dense again.
func (s *CatalogService) DeleteService(ctx context.Context, id string) error {
	sv, err := s.GetServiceByID(ctx, id)
	if err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, "DELETE FROM services WHERE id = ?", id); err != nil {
		return err
	}

	s.eventService.CreateEvent("service.delete", "warn", fmt.Sprintf("Service '%s' was deleted.", sv.Title))
	s.publisher.Publish("service.deleted", map[string]string{"id": id})
	return nil
}

// ReorderServices writes every order in one transaction. An unknown id
// aborts the whole batch with ErrNotFound.
func (s *CatalogService) ReorderServices(ctx context.Context, orders []models.ServiceOrder) error {
	if len(orders) == 0 {
		return fmt.Errorf("empty reorder batch: %w", ErrInvalidInput)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, "UPDATE services SET sort_order = ? WHERE id = ?")
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, o := range orders {
		res, err := stmt.ExecContext(ctx, o.Order, o.ID)
		if err != nil {
			return fmt.Errorf("failed to reorder service %s: %w", o.ID, err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return fmt.Errorf("service %s: %w", o.ID, ErrNotFound)
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}

	s.eventService.CreateEvent("service.reorder", "info", fmt.Sprintf("Reordered %d services.", len(orders)))
	s.publisher.Publish("service.reordered", orders)
	return nil
}

func normalizeService(sv *models.Service) error {
	sv.Title = plainText(sv.Title)
	if sv.Title == "" {
		return fmt.Errorf("title is required: %w", ErrInvalidInput)
	}
	sv.Description = plainText(sv.Description)
	sv.Icon = strings.TrimSpace(sv.Icon)
	sv.Slug = models.Slugify(sv.Slug)
	if sv.Slug == "" {
		sv.Slug = models.Slugify(sv.Title)
	}
	if sv.Price != nil {
		p := plainText(*sv.Price)
		if p == "" {
			sv.Price = nil
		} else {
			sv.Price = &p
		}
	}
	if sv.Order < 0 {
		sv.Order = 0
	}
	return nil
}
