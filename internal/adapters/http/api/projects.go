// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/okian/lineup/internal/domain/model"
)

// ProjectDependencies defines the interface for project operations.
type ProjectDependencies interface {
	CreateProject(ctx context.Context, title string, skills []model.Skill) model.Project
	GetProject(ctx context.Context, id int64) (model.Project, error)
	ListProjects(ctx context.Context) []model.Project
	UpdateProject(ctx context.Context, id int64, title string, skills []model.Skill) (model.Project, error)
	DeleteProject(ctx context.Context, id int64) error
}

// ProjectsHandler handles project CRUD requests.
type ProjectsHandler struct {
	deps ProjectDependencies
}

// NewProjectsHandler creates a new projects handler.
func NewProjectsHandler(deps ProjectDependencies) *ProjectsHandler {
	return &ProjectsHandler{deps: deps}
}

// projectRequest mirrors the wire schema for project writes.
type projectRequest struct {
	Title  string         `json:"title"`
	Skills []skillPayload `json:"skills"`
}

func (p projectRequest) validate() ([]model.Skill, error) {
	if p.Title == "" {
		return nil, NewKind("api.project", ErrBadRequest)
	}
	return toSkills(p.Skills)
}

// HandleCollection handles POST /api/projects and GET /api/projects.
func (h *ProjectsHandler) HandleCollection(w http.ResponseWriter, r *http.Request) {
	const op = "api.projects"
	switch r.Method {
	case http.MethodPost:
		var req projectRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
			return
		}
		skills, err := req.validate()
		if err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
			return
		}
		project := h.deps.CreateProject(r.Context(), req.Title, skills)
		writeJSON(w, http.StatusCreated, project)
	case http.MethodGet:
		writeJSON(w, http.StatusOK, h.deps.ListProjects(r.Context()))
	default:
		http.NotFound(w, r)
	}
}

// HandleItem handles GET/PUT/DELETE /api/projects/{id}.
func (h *ProjectsHandler) HandleItem(w http.ResponseWriter, r *http.Request) {
	const op = "api.project"
	id, err := pathID(r.URL.Path, "/api/projects/")
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	switch r.Method {
	case http.MethodGet:
		project, err := h.deps.GetProject(r.Context(), id)
		if err != nil {
			writeDomainError(w, op, err)
			return
		}
		writeJSON(w, http.StatusOK, project)
	case http.MethodPut:
		var req projectRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
			return
		}
		skills, err := req.validate()
		if err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
			return
		}
		project, err := h.deps.UpdateProject(r.Context(), id, req.Title, skills)
		if err != nil {
			writeDomainError(w, op, err)
			return
		}
		writeJSON(w, http.StatusOK, project)
	case http.MethodDelete:
		if err := h.deps.DeleteProject(r.Context(), id); err != nil {
			writeDomainError(w, op, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		http.NotFound(w, r)
	}
}
