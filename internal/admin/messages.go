package admin

import (
	"context"
	"sort"
	"strings"

	"github.com/sdianka/portfolio/internal/models"
)

// ReadFilter narrows the message list by read state.
type ReadFilter string

const (
	FilterAll    ReadFilter = "all"
	FilterUnread ReadFilter = "unread"
	FilterRead   ReadFilter = "read"
)

// ParseReadFilter maps user input to a ReadFilter, defaulting to FilterAll.
func ParseReadFilter(s string) ReadFilter {
	switch ReadFilter(strings.ToLower(strings.TrimSpace(s))) {
	case FilterUnread:
		return FilterUnread
	case FilterRead:
		return FilterRead
	default:
		return FilterAll
	}
}

// MessagesScreen manages the contact inbox.
type MessagesScreen struct {
	screen
	messages []models.Message
}

// NewMessagesScreen creates a MessagesScreen.
func NewMessagesScreen(api API, notify Notifier, confirm Confirmer) *MessagesScreen {
	return &MessagesScreen{screen: screen{api: api, notify: notify, confirm: confirm}}
}

// Load replaces the inbox with the server's, newest first.
func (s *MessagesScreen) Load(ctx context.Context) error {
	resp, err := s.api.Get(ctx, "/messages", true)
	if resp, err = s.check(resp, err, "Failed to load messages"); err != nil {
		return err
	}
	var messages []models.Message
	if err := resp.JSON(&messages); err != nil {
		s.notify.Error("Failed to load messages")
		return err
	}
	sort.SliceStable(messages, func(i, j int) bool {
		return messages[i].CreatedAt.After(messages[j].CreatedAt)
	})
	s.messages = messages
	return nil
}

// Messages returns the loaded inbox, newest first.
func (s *MessagesScreen) Messages() []models.Message {
	return s.messages
}

// Filter returns the messages matching both the read filter and the
// query. The query is matched case-insensitively against name, email and
// message body.
func (s *MessagesScreen) Filter(query string, filter ReadFilter) []models.Message {
	q := strings.ToLower(strings.TrimSpace(query))
	var out []models.Message
	for _, m := range s.messages {
		if filter == FilterUnread && m.Read || filter == FilterRead && !m.Read {
			continue
		}
		if q != "" &&
			!strings.Contains(strings.ToLower(m.Name), q) &&
			!strings.Contains(strings.ToLower(m.Email), q) &&
			!strings.Contains(strings.ToLower(m.Message), q) {
			continue
		}
		out = append(out, m)
	}
	return out
}

// UnreadCount returns the number of unread messages in the loaded inbox.
func (s *MessagesScreen) UnreadCount() int {
	n := 0
	for _, m := range s.messages {
		if !m.Read {
			n++
		}
	}
	return n
}

// ToggleRead inverts the read flag of a message and reloads the inbox.
func (s *MessagesScreen) ToggleRead(ctx context.Context, id string, current bool) error {
	resp, err := s.api.Post(ctx, "/messages/"+id+"/read", models.ReadState{Read: !current}, true)
	if resp, err = s.check(resp, err, "Failed to update message"); err != nil {
		return err
	}
	resp.Close()
	if current {
		s.notify.Success("Message marked as unread")
	} else {
		s.notify.Success("Message marked as read")
	}
	return s.Load(ctx)
}

// Delete removes a message after confirmation, then reloads the inbox.
func (s *MessagesScreen) Delete(ctx context.Context, id string) error {
	if !s.confirmed("Delete this message?") {
		return ErrCancelled
	}
	resp, err := s.api.Delete(ctx, "/messages/"+id, true)
	if resp, err = s.check(resp, err, "Failed to delete message"); err != nil {
		return err
	}
	resp.Close()
	s.notify.Success("Message deleted")
	return s.Load(ctx)
}
