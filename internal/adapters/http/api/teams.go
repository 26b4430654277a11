// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/okian/lineup/internal/domain/model"
)

// TeamDependencies defines the interface for team formation.
type TeamDependencies interface {
	FormTeam(ctx context.Context, projectID int64, candidateIDs []int64, teamSize int) (model.TeamResult, error)
}

// TeamsHandler handles team formation requests.
type TeamsHandler struct {
	deps          TeamDependencies
	maxTeamSize   int
	maxCandidates int
}

// NewTeamsHandler creates a new teams handler.
func NewTeamsHandler(deps TeamDependencies, maxTeamSize, maxCandidates int) *TeamsHandler {
	return &TeamsHandler{
		deps:          deps,
		maxTeamSize:   maxTeamSize,
		maxCandidates: maxCandidates,
	}
}

// formTeamRequest mirrors the wire schema for POST /api/form-team.
type formTeamRequest struct {
	ProjectID    int64   `json:"project_id"`
	CandidateIDs []int64 `json:"candidate_ids"`
	TeamSize     int     `json:"team_size"`
}

func (f formTeamRequest) validate(maxTeamSize, maxCandidates int) error {
	switch {
	case f.TeamSize < 1 || f.TeamSize > maxTeamSize:
		return fmt.Errorf("team_size must be between 1 and %d", maxTeamSize)
	case len(f.CandidateIDs) == 0:
		return errors.New("candidate_ids must not be empty")
	case len(f.CandidateIDs) > maxCandidates:
		return fmt.Errorf("candidate_ids must not exceed %d entries", maxCandidates)
	}
	return nil
}

// HandleFormTeam handles POST /api/form-team requests.
func (h *TeamsHandler) HandleFormTeam(w http.ResponseWriter, r *http.Request) {
	const op = "api.form_team"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req formTeamRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(h.maxTeamSize, h.maxCandidates); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	result, err := h.deps.FormTeam(r.Context(), req.ProjectID, req.CandidateIDs, req.TeamSize)
	if err != nil {
		writeDomainError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
