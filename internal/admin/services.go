package admin

import (
	"context"
	"sort"
	"strings"

	"github.com/sdianka/portfolio/internal/client"
	"github.com/sdianka/portfolio/internal/models"
)

// DefaultServiceIcon is used when the icon field is left empty.
const DefaultServiceIcon = "💻"

// ServiceForm is the editable state of the service form.
type ServiceForm struct {
	Title       string
	Description string
	Icon        string
	Price       string
	Featured    bool
	Active      bool
}

// NewServiceForm returns an empty form. New services are active by default.
func NewServiceForm() ServiceForm {
	return ServiceForm{Icon: DefaultServiceIcon, Active: true}
}

// ServiceFormFrom fills the form from an existing service.
func ServiceFormFrom(svc models.Service) ServiceForm {
	form := ServiceForm{
		Title:       svc.Title,
		Description: svc.Description,
		Icon:        svc.Icon,
		Featured:    svc.Featured,
		Active:      svc.Active,
	}
	if svc.Price != nil {
		form.Price = *svc.Price
	}
	return form
}

// serviceBody always carries every field; price is null when empty.
type serviceBody struct {
	Title       string  `json:"title"`
	Slug        string  `json:"slug"`
	Description string  `json:"description"`
	Icon        string  `json:"icon"`
	Price       *string `json:"price"`
	Featured    bool    `json:"featured"`
	Active      bool    `json:"active"`
	Order       int     `json:"order"`
}

func (f ServiceForm) body(order int) serviceBody {
	icon := strings.TrimSpace(f.Icon)
	if icon == "" {
		icon = DefaultServiceIcon
	}
	title := strings.TrimSpace(f.Title)
	return serviceBody{
		Title:       title,
		Slug:        models.Slugify(title),
		Description: f.Description,
		Icon:        icon,
		Price:       optional(f.Price),
		Featured:    f.Featured,
		Active:      f.Active,
		Order:       order,
	}
}

// ServicesScreen manages the service list, including drag and drop ordering.
type ServicesScreen struct {
	screen
	services []models.Service
}

// NewServicesScreen creates a ServicesScreen.
func NewServicesScreen(api API, notify Notifier, confirm Confirmer) *ServicesScreen {
	return &ServicesScreen{screen: screen{api: api, notify: notify, confirm: confirm}}
}

// Load replaces the list with the server's, sorted by display order.
func (s *ServicesScreen) Load(ctx context.Context) error {
	resp, err := s.api.Get(ctx, "/services", false)
	if resp, err = s.check(resp, err, "Failed to load services"); err != nil {
		return err
	}
	var services []models.Service
	if err := resp.JSON(&services); err != nil {
		s.notify.Error("Failed to load services")
		return err
	}
	sort.SliceStable(services, func(i, j int) bool {
		return services[i].Order < services[j].Order
	})
	s.services = services
	return nil
}

// Services returns the loaded list in display order.
func (s *ServicesScreen) Services() []models.Service {
	return s.services
}

// Filter returns the services whose title or description contains the
// query, case-insensitively.
func (s *ServicesScreen) Filter(query string) []models.Service {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return s.services
	}
	var out []models.Service
	for _, svc := range s.services {
		if strings.Contains(strings.ToLower(svc.Title), q) ||
			strings.Contains(strings.ToLower(svc.Description), q) {
			out = append(out, svc)
		}
	}
	return out
}

// Save creates a service when editing is nil and updates it otherwise,
// then reloads the list. An edited service keeps its order; a new one is
// appended at the end.
func (s *ServicesScreen) Save(ctx context.Context, editing *models.Service, form ServiceForm) error {
	if strings.TrimSpace(form.Title) == "" {
		s.notify.Error("Title is required")
		return ErrInvalidForm
	}

	var (
		resp    *client.Response
		err     error
		success string
	)
	if editing == nil {
		resp, err = s.api.Post(ctx, "/services", form.body(len(s.services)), true)
		success = "Service created"
	} else {
		resp, err = s.api.Put(ctx, "/services/"+editing.ID, form.body(editing.Order), true)
		success = "Service updated"
	}
	if resp, err = s.check(resp, err, "Failed to save service"); err != nil {
		return err
	}
	resp.Close()
	s.notify.Success(success)
	return s.Load(ctx)
}

// ToggleActive flips the active flag of a service and reloads the list.
func (s *ServicesScreen) ToggleActive(ctx context.Context, id string, current bool) error {
	resp, err := s.api.Put(ctx, "/services/"+id, map[string]bool{"active": !current}, true)
	if resp, err = s.check(resp, err, "Failed to update service"); err != nil {
		return err
	}
	resp.Close()
	if current {
		s.notify.Success("Service hidden")
	} else {
		s.notify.Success("Service shown")
	}
	return s.Load(ctx)
}

// Delete removes a service after confirmation, then reloads the list.
func (s *ServicesScreen) Delete(ctx context.Context, id string) error {
	if !s.confirmed("Delete this service?") {
		return ErrCancelled
	}
	resp, err := s.api.Delete(ctx, "/services/"+id, true)
	if resp, err = s.check(resp, err, "Failed to delete service"); err != nil {
		return err
	}
	resp.Close()
	s.notify.Success("Service deleted")
	return s.Load(ctx)
}

// Reorder moves the service at index from to index to. The local list is
// renumbered 0..n-1 right away, then the whole order is sent in a single
// request. An index outside the list is a no-op. The local order is kept
// when the request fails.
func (s *ServicesScreen) Reorder(ctx context.Context, from, to int) error {
	n := len(s.services)
	if from < 0 || from >= n || to < 0 || to >= n {
		return nil
	}

	items := make([]models.Service, 0, n)
	items = append(items, s.services[:from]...)
	items = append(items, s.services[from+1:]...)
	moved := s.services[from]
	items = append(items[:to], append([]models.Service{moved}, items[to:]...)...)

	batch := make([]models.ServiceOrder, n)
	for i := range items {
		items[i].Order = i
		batch[i] = models.ServiceOrder{ID: items[i].ID, Order: i}
	}
	s.services = items

	resp, err := s.api.Put(ctx, "/services/reorder", batch, true)
	if resp, err = s.check(resp, err, "Failed to save the new order"); err != nil {
		return err
	}
	resp.Close()
	return nil
}
