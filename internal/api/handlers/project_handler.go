package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
	"github.com/sdianka/portfolio/internal/models"
	"github.com/sdianka/portfolio/internal/services"
)

// ProjectHandler handles HTTP requests related to projects.
type ProjectHandler struct {
	service services.ProjectServiceProvider
}

// NewProjectHandler creates a new ProjectHandler.
func NewProjectHandler(service services.ProjectServiceProvider) *ProjectHandler {
	return &ProjectHandler{service: service}
}

// GetAll handles the request to get all projects. ?published=true keeps
// published projects only.
func (h *ProjectHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	publishedOnly := r.URL.Query().Get("published") == "true"
	projects, err := h.service.GetAllProjects(r.Context(), publishedOnly)
	if err != nil {
		log.Error().Err(err).Msg("Failed to retrieve projects")
		writeError(w, http.StatusInternalServerError, "Failed to retrieve projects")
		return
	}
	writeJSON(w, http.StatusOK, projects)
}

// Get handles the request to get a single project by its ID.
func (h *ProjectHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	project, err := h.service.GetProjectByID(r.Context(), id)
	if err != nil {
		log.Warn().Err(err).Str("project_id", id).Msg("Failed to get project by ID")
		writeServiceError(w, err, "Failed to retrieve project")
		return
	}
	writeJSON(w, http.StatusOK, project)
}

// Create handles the request to create a new project.
func (h *ProjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input models.ProjectInput
	if !decodeJSON(w, r, &input) {
		return
	}

	project, err := h.service.CreateProject(r.Context(), input)
	if err != nil {
		log.Error().Err(err).Msg("Failed to create project")
		writeServiceError(w, err, "Failed to create project")
		return
	}
	writeJSON(w, http.StatusCreated, project)
}

// Update handles the request to update an existing project.
func (h *ProjectHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var input models.ProjectInput
	if !decodeJSON(w, r, &input) {
		return
	}

	project, err := h.service.UpdateProject(r.Context(), id, input)
	if err != nil {
		log.Error().Err(err).Str("project_id", id).Msg("Failed to update project")
		writeServiceError(w, err, "Failed to update project")
		return
	}
	writeJSON(w, http.StatusOK, project)
}

// Delete handles the request to delete a project.
func (h *ProjectHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.service.DeleteProject(r.Context(), id); err != nil {
		log.Error().Err(err).Str("project_id", id).Msg("Failed to delete project")
		writeServiceError(w, err, "Failed to delete project")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
