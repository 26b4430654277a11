// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/okian/lineup/internal/domain/model"
)

// CandidateDependencies defines the interface for candidate operations.
type CandidateDependencies interface {
	CreateCandidate(ctx context.Context, name string, skills []model.Skill) model.Candidate
	EnsureScore(ctx context.Context, id int64) (model.Candidate, error)
	ListCandidates(ctx context.Context) []model.Candidate
	UpdateCandidate(ctx context.Context, id int64, name string, skills []model.Skill) (model.Candidate, error)
	DeleteCandidate(ctx context.Context, id int64) error
}

// CandidatesHandler handles candidate CRUD requests.
type CandidatesHandler struct {
	deps CandidateDependencies
}

// NewCandidatesHandler creates a new candidates handler.
func NewCandidatesHandler(deps CandidateDependencies) *CandidatesHandler {
	return &CandidatesHandler{deps: deps}
}

// candidateRequest mirrors the wire schema for candidate writes.
type candidateRequest struct {
	Name   string         `json:"name"`
	Skills []skillPayload `json:"skills"`
}

func (c candidateRequest) validate() ([]model.Skill, error) {
	if c.Name == "" {
		return nil, NewKind("api.candidate", ErrBadRequest)
	}
	return toSkills(c.Skills)
}

// HandleCollection handles POST /api/candidates and GET /api/candidates.
func (h *CandidatesHandler) HandleCollection(w http.ResponseWriter, r *http.Request) {
	const op = "api.candidates"
	switch r.Method {
	case http.MethodPost:
		var req candidateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
			return
		}
		skills, err := req.validate()
		if err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
			return
		}
		candidate := h.deps.CreateCandidate(r.Context(), req.Name, skills)
		writeJSON(w, http.StatusCreated, candidate)
	case http.MethodGet:
		writeJSON(w, http.StatusOK, h.deps.ListCandidates(r.Context()))
	default:
		http.NotFound(w, r)
	}
}

// HandleItem handles GET/PUT/DELETE /api/candidates/{id}.
//
// GET resolves a missing score through the scoring client before
// responding; a candidate the upstream refuses to score is still
// returned, just without one.
func (h *CandidatesHandler) HandleItem(w http.ResponseWriter, r *http.Request) {
	const op = "api.candidate"
	id, err := pathID(r.URL.Path, "/api/candidates/")
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	switch r.Method {
	case http.MethodGet:
		candidate, err := h.deps.EnsureScore(r.Context(), id)
		if err != nil {
			writeDomainError(w, op, err)
			return
		}
		writeJSON(w, http.StatusOK, candidate)
	case http.MethodPut:
		var req candidateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
			return
		}
		skills, err := req.validate()
		if err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
			return
		}
		candidate, err := h.deps.UpdateCandidate(r.Context(), id, req.Name, skills)
		if err != nil {
			writeDomainError(w, op, err)
			return
		}
		writeJSON(w, http.StatusOK, candidate)
	case http.MethodDelete:
		if err := h.deps.DeleteCandidate(r.Context(), id); err != nil {
			writeDomainError(w, op, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		http.NotFound(w, r)
	}
}
