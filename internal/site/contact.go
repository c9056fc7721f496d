package site

import (
	"context"
	"errors"
	"strings"
)

const (
	// MsgSent is shown after a message was accepted.
	MsgSent = "Message sent! I will get back to you as soon as possible."
	// MsgSendFailed is shown when the server rejects a message without
	// saying why.
	MsgSendFailed = "Failed to send the message"
	// MsgUnreachable is shown when the server cannot be reached.
	MsgUnreachable = "Unable to reach the server"
)

// ErrIncomplete is returned when a required contact field is empty.
var ErrIncomplete = errors.New("name, email and message are required")

// Notifier shows transient success and error notifications.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

// ContactForm is the public contact form.
type ContactForm struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// Validate checks that every required field is filled in.
func (f ContactForm) Validate() error {
	if strings.TrimSpace(f.Name) == "" ||
		strings.TrimSpace(f.Email) == "" ||
		strings.TrimSpace(f.Message) == "" {
		return ErrIncomplete
	}
	return nil
}

// Reset clears every field.
func (f *ContactForm) Reset() {
	*f = ContactForm{}
}

// Submit sends the form as a single unauthenticated POST. The form is
// cleared on success and kept as is on any failure.
func (f *ContactForm) Submit(ctx context.Context, api API, notify Notifier) error {
	if err := f.Validate(); err != nil {
		notify.Error("Please fill in your name, email and message")
		return err
	}

	resp, err := api.Post(ctx, "/messages", f, false)
	if err != nil {
		notify.Error(MsgUnreachable)
		return err
	}
	if !resp.OK() {
		msg := resp.ErrorMessage()
		if msg == "" {
			msg = MsgSendFailed
		}
		notify.Error(msg)
		return ErrRequestFailed
	}
	resp.Close()

	notify.Success(MsgSent)
	f.Reset()
	return nil
}
