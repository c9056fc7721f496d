package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/sdianka/portfolio/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMessageService(t *testing.T) (*MessageService, *recordingPublisher) {
	db := newTestDB(t)
	pub := &recordingPublisher{}
	return NewMessageService(db, NewEventService(db), pub), pub
}

func TestCreateMessageValidation(t *testing.T) {
	svc, _ := newMessageService(t)
	ctx := context.Background()

	tests := []struct {
		name string
		msg  models.Message
	}{
		{"missing name", models.Message{Email: "a@b.c", Message: "hi"}},
		{"missing email", models.Message{Name: "Ann", Message: "hi"}},
		{"missing body", models.Message{Name: "Ann", Email: "a@b.c"}},
		{"bad email", models.Message{Name: "Ann", Email: "not-an-email", Message: "hi"}},
		{"too long", models.Message{Name: "Ann", Email: "a@b.c", Message: strings.Repeat("é", MaxMessageLength+1)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateMessage(ctx, tt.msg)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}

	_, err := svc.CreateMessage(ctx, models.Message{Name: "Ann", Email: "a@b.c", Message: strings.Repeat("é", MaxMessageLength)})
	assert.NoError(t, err)
}

func TestCreateMessageSanitisesAndPublishes(t *testing.T) {
	svc, pub := newMessageService(t)

	m, err := svc.CreateMessage(context.Background(), models.Message{
		Name:    "<b>Ann</b>",
		Email:   "ann@example.com",
		Subject: "Hello",
		Message: "I'd like <script>alert(1)</script>a website & more",
		Read:    true,
	})
	require.NoError(t, err)
	assert.Equal(t, "Ann", m.Name)
	assert.Equal(t, "I'd like a website & more", m.Message)
	assert.False(t, m.Read)
	assert.Equal(t, []string{"message.created"}, pub.actions())
}

func TestMessagesNewestFirstAndReadFlag(t *testing.T) {
	svc, _ := newMessageService(t)
	ctx := context.Background()

	older, err := svc.CreateMessage(ctx, models.Message{Name: "A", Email: "a@x.io", Message: "first"})
	require.NoError(t, err)
	time.Sleep(2 * time.Millisecond)
	newer, err := svc.CreateMessage(ctx, models.Message{Name: "B", Email: "b@x.io", Message: "second"})
	require.NoError(t, err)

	list, err := svc.GetAllMessages(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, newer.ID, list[0].ID)
	assert.Equal(t, older.ID, list[1].ID)

	unread, err := svc.CountUnread(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, unread)

	m, err := svc.SetRead(ctx, older.ID, true)
	require.NoError(t, err)
	assert.True(t, m.Read)

	unread, err = svc.CountUnread(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, unread)

	m, err = svc.SetRead(ctx, older.ID, false)
	require.NoError(t, err)
	assert.False(t, m.Read)

	_, err = svc.SetRead(ctx, "missing", true)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteMessage(t *testing.T) {
	svc, _ := newMessageService(t)
	ctx := context.Background()

	m, err := svc.CreateMessage(ctx, models.Message{Name: "A", Email: "a@x.io", Message: "bye"})
	require.NoError(t, err)
	require.NoError(t, svc.DeleteMessage(ctx, m.ID))
	assert.ErrorIs(t, svc.DeleteMessage(ctx, m.ID), ErrNotFound)
}

func TestPurgeReadBeforeKeepsUnread(t *testing.T) {
	svc, _ := newMessageService(t)
	ctx := context.Background()

	read, err := svc.CreateMessage(ctx, models.Message{Name: "A", Email: "a@x.io", Message: "read"})
	require.NoError(t, err)
	_, err = svc.SetRead(ctx, read.ID, true)
	require.NoError(t, err)
	unread, err := svc.CreateMessage(ctx, models.Message{Name: "B", Email: "b@x.io", Message: "unread"})
	require.NoError(t, err)

	n, err := svc.PurgeReadBefore(ctx, time.Now().Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	list, err := svc.GetAllMessages(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, unread.ID, list[0].ID)

	n, err = svc.PurgeReadBefore(ctx, time.Now().Add(-time.Hour))
	require.NoError(t, err)
	assert.Zero(t, n)
}
