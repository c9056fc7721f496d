package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
	"github.com/sdianka/portfolio/internal/models"
	"github.com/sdianka/portfolio/internal/services"
)

// ServiceHandler handles HTTP requests for the services catalog.
type ServiceHandler struct {
	service services.CatalogServiceProvider
}

// NewServiceHandler creates a new ServiceHandler.
func NewServiceHandler(service services.CatalogServiceProvider) *ServiceHandler {
	return &ServiceHandler{service: service}
}

// GetAll returns services in display order. ?active=true keeps active
// services only.
func (h *ServiceHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("active") == "true"
	list, err := h.service.GetAllServices(r.Context(), activeOnly)
	if err != nil {
		log.Error().Err(err).Msg("Failed to retrieve services")
		writeError(w, http.StatusInternalServerError, "Failed to retrieve services")
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// Get returns a single service.
func (h *ServiceHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	sv, err := h.service.GetServiceByID(r.Context(), id)
	if err != nil {
		log.Warn().Err(err).Str("service_id", id).Msg("Failed to get service by ID")
		writeServiceError(w, err, "Failed to retrieve service")
		return
	}
	writeJSON(w, http.StatusOK, sv)
}

// Create adds a service to the catalog.
func (h *ServiceHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input models.ServiceInput
	if !decodeJSON(w, r, &input) {
		return
	}

	sv, err := h.service.CreateService(r.Context(), input)
	if err != nil {
		log.Error().Err(err).Msg("Failed to create service")
		writeServiceError(w, err, "Failed to create service")
		return
	}
	writeJSON(w, http.StatusCreated, sv)
}

// Update applies a partial update; fields absent from the body are kept.
func (h *ServiceHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var input models.ServiceInput
	if !decodeJSON(w, r, &input) {
		return
	}

	sv, err := h.service.UpdateService(r.Context(), id, input)
	if err != nil {
		log.Error().Err(err).Str("service_id", id).Msg("Failed to update service")
		writeServiceError(w, err, "Failed to update service")
		return
	}
	writeJSON(w, http.StatusOK, sv)
}

// Delete removes a service.
func (h *ServiceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.service.DeleteService(r.Context(), id); err != nil {
		log.Error().Err(err).Str("service_id", id).Msg("Failed to delete service")
		writeServiceError(w, err, "Failed to delete service")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Reorder persists a batch of [{id, order}] in one transaction.
func (h *ServiceHandler) Reorder(w http.ResponseWriter, r *http.Request) {
	var orders []models.ServiceOrder
	if !decodeJSON(w, r, &orders) {
		return
	}

	if err := h.service.ReorderServices(r.Context(), orders); err != nil {
		log.Error().Err(err).Int("count", len(orders)).Msg("Failed to reorder services")
		writeServiceError(w, err, "Failed to reorder services")
		return
	}

	list, err := h.service.GetAllServices(r.Context(), false)
	if err != nil {
		log.Error().Err(err).Msg("Failed to retrieve services after reorder")
		writeError(w, http.StatusInternalServerError, "Failed to retrieve services")
		return
	}
	writeJSON(w, http.StatusOK, list)
}
