package admin

import (
	"context"
	"errors"

	"github.com/sdianka/portfolio/internal/models"
)

const (
	// PathDashboard is where a successful login lands.
	PathDashboard = "/admin"
	// PathLogin is where logout lands.
	PathLogin = "/admin/login"
)

// TokenStore persists the session token.
type TokenStore interface {
	Get() (string, bool)
	Set(token string) error
	Clear() error
}

// Session handles login and logout.
type Session struct {
	screen
	tokens TokenStore
	nav    Navigator
}

// NewSession creates a Session.
func NewSession(api API, tokens TokenStore, notify Notifier, nav Navigator) *Session {
	return &Session{screen: screen{api: api, notify: notify}, tokens: tokens, nav: nav}
}

type loginResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

// Login exchanges credentials for a token. When the server rejects the
// attempt any earlier token is dropped and the server's error message (or
// "Login failed") is shown. A transport failure leaves the store alone.
func (s *Session) Login(ctx context.Context, email, password string) (models.User, error) {
	resp, err := s.api.Post(ctx, "/auth/login", map[string]string{
		"email":    email,
		"password": password,
	}, false)
	if err != nil {
		s.notify.Error(MsgUnreachable)
		return models.User{}, err
	}
	if !resp.OK() {
		msg := resp.ErrorMessage()
		if msg == "" {
			msg = "Login failed"
		}
		return models.User{}, s.reject(msg, ErrRequestFailed)
	}

	var body loginResponse
	if err := resp.JSON(&body); err != nil || body.Token == "" {
		if err == nil {
			err = ErrRequestFailed
		}
		return models.User{}, s.reject("Login failed", err)
	}
	if err := s.tokens.Set(body.Token); err != nil {
		s.notify.Error("Could not save the session")
		return models.User{}, err
	}

	s.nav.Navigate(PathDashboard)
	return body.User, nil
}

// reject clears the stored token and reports a failed login.
func (s *Session) reject(msg string, err error) error {
	s.notify.Error(msg)
	if clearErr := s.tokens.Clear(); clearErr != nil {
		return errors.Join(err, clearErr)
	}
	return err
}

// LoggedIn reports whether a token is stored.
func (s *Session) LoggedIn() bool {
	token, ok := s.tokens.Get()
	return ok && token != ""
}

// Logout clears the token and returns to the login screen.
func (s *Session) Logout() error {
	if err := s.tokens.Clear(); err != nil {
		return err
	}
	s.nav.Navigate(PathLogin)
	return nil
}
