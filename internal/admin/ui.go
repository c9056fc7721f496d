// Package admin holds the state and actions of the admin dashboard
// screens. Each screen loads a list from the API, filters it in memory
// and reloads the full list after every successful mutation. Outcomes
// are reported through a Notifier; destructive actions ask a Confirmer
// first. Screens are not safe for concurrent use.
package admin

import (
	"context"
	"errors"
	"fmt"

	"github.com/sdianka/portfolio/internal/client"
)

var (
	// ErrRequestFailed is returned when the API answers with a non-2xx status.
	ErrRequestFailed = errors.New("request failed")
	// ErrCancelled is returned when the user declines a confirmation.
	ErrCancelled = errors.New("cancelled")
	// ErrInvalidForm is returned when a form fails local validation.
	ErrInvalidForm = errors.New("invalid form")
)

// MsgUnreachable is shown when a request fails at the transport level.
const MsgUnreachable = "Server unreachable"

// Notifier shows transient success and error notifications.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

// Confirmer asks the user to confirm a destructive action.
type Confirmer interface {
	Confirm(prompt string) bool
}

// Navigator moves the user to another screen.
type Navigator interface {
	Navigate(path string)
}

// API is the subset of the HTTP client the screens use.
type API interface {
	Get(ctx context.Context, path string, auth bool) (*client.Response, error)
	Post(ctx context.Context, path string, body interface{}, auth bool) (*client.Response, error)
	Put(ctx context.Context, path string, body interface{}, auth bool) (*client.Response, error)
	Patch(ctx context.Context, path string, body interface{}, auth bool) (*client.Response, error)
	Delete(ctx context.Context, path string, auth bool) (*client.Response, error)
}

// screen bundles what every screen needs.
type screen struct {
	api     API
	notify  Notifier
	confirm Confirmer
}

// check turns a transport error or a non-2xx response into a notification
// and an error. On success the response is returned still open.
func (s screen) check(resp *client.Response, err error, failure string) (*client.Response, error) {
	if err != nil {
		s.notify.Error(MsgUnreachable)
		return nil, err
	}
	if !resp.OK() {
		code := resp.StatusCode()
		resp.Close()
		s.notify.Error(failure)
		return nil, fmt.Errorf("%s (status %d): %w", failure, code, ErrRequestFailed)
	}
	return resp, nil
}

// confirmed asks the Confirmer; a nil Confirmer declines everything.
func (s screen) confirmed(prompt string) bool {
	return s.confirm != nil && s.confirm.Confirm(prompt)
}
