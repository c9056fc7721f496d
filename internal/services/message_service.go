package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/mail"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/sdianka/portfolio/internal/models"
)

// MaxMessageLength is the upper bound, in runes, of a contact message body.
const MaxMessageLength = 5000

// MessageServiceProvider defines the interface for contact message services.
type MessageServiceProvider interface {
	CreateMessage(ctx context.Context, msg models.Message) (models.Message, error)
	GetAllMessages(ctx context.Context) ([]models.Message, error)
	GetMessageByID(ctx context.Context, id string) (models.Message, error)
	SetRead(ctx context.Context, id string, read bool) (models.Message, error)
	DeleteMessage(ctx context.Context, id string) error
	CountUnread(ctx context.Context) (int, error)
	PurgeReadBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// MessageService stores contact form submissions.
type MessageService struct {
	db           *sql.DB
	eventService EventServiceProvider
	publisher    Publisher
}

// NewMessageService creates a new MessageService.
func NewMessageService(db *sql.DB, eventService EventServiceProvider, publisher Publisher) *MessageService {
	return &MessageService{
		db:           db,
		eventService: eventService,
		publisher:    publisherOrNop(publisher),
	}
}

const messageColumns = "id, name, email, subject, body, is_read, created_at"

func scanMessage(scanner interface{ Scan(...interface{}) error }) (models.Message, error) {
	var m models.Message
	err := scanner.Scan(&m.ID, &m.Name, &m.Email, &m.Subject, &m.Message, &m.Read, &m.CreatedAt)
	return m, err
}

// CreateMessage validates and stores a contact submission.
func (s *MessageService) CreateMessage(ctx context.Context, msg models.Message) (models.Message, error) {
	msg.Name = plainText(msg.Name)
	msg.Email = plainText(msg.Email)
	msg.Subject = plainText(msg.Subject)
	msg.Message = plainText(msg.Message)

	if msg.Name == "" || msg.Email == "" || msg.Message == "" {
		return models.Message{}, fmt.Errorf("name, email and message are required: %w", ErrInvalidInput)
	}
	if _, err := mail.ParseAddress(msg.Email); err != nil {
		return models.Message{}, fmt.Errorf("email is not valid: %w", ErrInvalidInput)
	}
	if utf8.RuneCountInString(msg.Message) > MaxMessageLength {
		return models.Message{}, fmt.Errorf("message exceeds %d characters: %w", MaxMessageLength, ErrInvalidInput)
	}

	msg.ID = uuid.New().String()
	msg.Read = false
	msg.CreatedAt = time.Now().UTC()

	_, err := s.db.ExecContext(ctx, "INSERT INTO messages ("+messageColumns+") VALUES (?, ?, ?, ?, ?, ?, ?)",
		msg.ID, msg.Name, msg.Email, msg.Subject, msg.Message, msg.Read, msg.CreatedAt)
	if err != nil {
		return models.Message{}, fmt.Errorf("failed to insert message: %w", err)
	}

	s.eventService.CreateEvent("message.received", "info", fmt.Sprintf("New message from %s.", msg.Name))
	s.publisher.Publish("message.created", msg)
	return msg, nil
}

// GetAllMessages retrieves every message, newest first.
func (s *MessageService) GetAllMessages(ctx context.Context) ([]models.Message, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT "+messageColumns+" FROM messages ORDER BY created_at DESC, rowid DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	messages := []models.Message{}
	for rows.Next() {
		m, err := scanMessage(rows)
		if err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

// GetMessageByID retrieves a single message.
func (s *MessageService) GetMessageByID(ctx context.Context, id string) (models.Message, error) {
	m, err := scanMessage(s.db.QueryRowContext(ctx, "SELECT "+messageColumns+" FROM messages WHERE id = ?", id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Message{}, fmt.Errorf("message %s: %w", id, ErrNotFound)
		}
		return models.Message{}, err
	}
	return m, nil
}

// SetRead sets the read flag of a message.
func (s *MessageService) SetRead(ctx context.Context, id string, read bool) (models.Message, error) {
	res, err := s.db.ExecContext(ctx, "UPDATE messages SET is_read = ? WHERE id = ?", read, id)
	if err != nil {
		return models.Message{}, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return models.Message{}, fmt.Errorf("message %s: %w", id, ErrNotFound)
	}

	m, err := s.GetMessageByID(ctx, id)
	if err != nil {
		return models.Message{}, err
	}
	s.publisher.Publish("message.updated", m)
	return m, nil
}

// DeleteMessage removes a message.
func (s *MessageService) DeleteMessage(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM messages WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("message %s: %w", id, ErrNotFound)
	}

	s.eventService.CreateEvent("message.delete", "warn", "A message was deleted.")
	s.publisher.Publish("message.deleted", map[string]string{"id": id})
	return nil
}

// CountUnread returns the number of unread messages.
func (s *MessageService) CountUnread(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM messages WHERE is_read = 0").Scan(&n)
	return n, err
}

// PurgeReadBefore deletes read messages received before cutoff.
// Unread messages are never purged.
func (s *MessageService) PurgeReadBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM messages WHERE is_read = 1 AND created_at < ?", cutoff.UTC())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
