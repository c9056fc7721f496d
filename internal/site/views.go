// Package site backs the public pages: the project gallery, the service
// list and the contact form.
package site

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/sdianka/portfolio/internal/client"
	"github.com/sdianka/portfolio/internal/models"
)

// ErrRequestFailed is returned when the API answers with a non-2xx status.
var ErrRequestFailed = errors.New("request failed")

// API is the subset of the HTTP client the public pages use.
type API interface {
	Get(ctx context.Context, path string, auth bool) (*client.Response, error)
	Post(ctx context.Context, path string, body interface{}, auth bool) (*client.Response, error)
}

func fetch(ctx context.Context, api API, path string, v interface{}) error {
	resp, err := api.Get(ctx, path, false)
	if err != nil {
		return err
	}
	if !resp.OK() {
		code := resp.StatusCode()
		resp.Close()
		return fmt.Errorf("GET %s (status %d): %w", path, code, ErrRequestFailed)
	}
	return resp.JSON(v)
}

// PublicProjects returns the published projects in server order.
func PublicProjects(ctx context.Context, api API) ([]models.Project, error) {
	var all []models.Project
	if err := fetch(ctx, api, "/projects", &all); err != nil {
		return nil, err
	}
	projects := []models.Project{}
	for _, p := range all {
		if p.Published {
			projects = append(projects, p)
		}
	}
	return projects, nil
}

// PublicServices returns the active services sorted by display order.
func PublicServices(ctx context.Context, api API) ([]models.Service, error) {
	var all []models.Service
	if err := fetch(ctx, api, "/services", &all); err != nil {
		return nil, err
	}
	services := []models.Service{}
	for _, s := range all {
		if s.Active {
			services = append(services, s)
		}
	}
	sort.SliceStable(services, func(i, j int) bool {
		return services[i].Order < services[j].Order
	})
	return services, nil
}
