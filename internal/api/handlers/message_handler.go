package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
	"github.com/sdianka/portfolio/internal/models"
	"github.com/sdianka/portfolio/internal/services"
)

// MessageRecorder counts accepted contact messages.
type MessageRecorder interface {
	RecordMessageReceived()
}

// MessageHandler handles the contact form and the admin inbox.
type MessageHandler struct {
	service services.MessageServiceProvider
	metrics MessageRecorder
}

// NewMessageHandler creates a new MessageHandler. metrics may be nil.
func NewMessageHandler(service services.MessageServiceProvider, metrics MessageRecorder) *MessageHandler {
	return &MessageHandler{service: service, metrics: metrics}
}

// contactPayload is the public contact form body. Read is never accepted
// from the public.
type contactPayload struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// Create handles a public contact form submission.
func (h *MessageHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload contactPayload
	if !decodeJSON(w, r, &payload) {
		return
	}

	msg, err := h.service.CreateMessage(r.Context(), models.Message{
		Name:    payload.Name,
		Email:   payload.Email,
		Subject: payload.Subject,
		Message: payload.Message,
	})
	if err != nil {
		log.Warn().Err(err).Str("email", payload.Email).Msg("Rejected contact message")
		writeServiceError(w, err, "Failed to send message")
		return
	}

	if h.metrics != nil {
		h.metrics.RecordMessageReceived()
	}
	log.Info().Str("message_id", msg.ID).Msg("Contact message received")
	writeJSON(w, http.StatusCreated, map[string]string{
		"id":      msg.ID,
		"message": "Message sent",
	})
}

// GetAll returns every message, newest first.
func (h *MessageHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	messages, err := h.service.GetAllMessages(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to retrieve messages")
		writeError(w, http.StatusInternalServerError, "Failed to retrieve messages")
		return
	}
	writeJSON(w, http.StatusOK, messages)
}

// SetRead sets a message's read flag from {"read": bool}.
func (h *MessageHandler) SetRead(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var state models.ReadState
	if !decodeJSON(w, r, &state) {
		return
	}

	msg, err := h.service.SetRead(r.Context(), id, state.Read)
	if err != nil {
		log.Error().Err(err).Str("message_id", id).Msg("Failed to update read state")
		writeServiceError(w, err, "Failed to update message")
		return
	}
	writeJSON(w, http.StatusOK, msg)
}

// Delete removes a message.
func (h *MessageHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.service.DeleteMessage(r.Context(), id); err != nil {
		log.Error().Err(err).Str("message_id", id).Msg("Failed to delete message")
		writeServiceError(w, err, "Failed to delete message")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
