// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/okian/lineup/internal/domain/model"
)

// Route validation bounds. These guard the boundary only; the engine
// clamps whatever reaches it.
const (
	defaultMaxTeamSize   = 10
	defaultMaxCandidates = 100
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// Project operations.
	CreateProject(ctx context.Context, title string, skills []model.Skill) model.Project
	GetProject(ctx context.Context, id int64) (model.Project, error)
	ListProjects(ctx context.Context) []model.Project
	UpdateProject(ctx context.Context, id int64, title string, skills []model.Skill) (model.Project, error)
	DeleteProject(ctx context.Context, id int64) error

	// Candidate operations. EnsureScore resolves a missing score
	// best-effort on read.
	CreateCandidate(ctx context.Context, name string, skills []model.Skill) model.Candidate
	EnsureScore(ctx context.Context, id int64) (model.Candidate, error)
	ListCandidates(ctx context.Context) []model.Candidate
	UpdateCandidate(ctx context.Context, id int64, name string, skills []model.Skill) (model.Candidate, error)
	DeleteCandidate(ctx context.Context, id int64) error

	// FormTeam assembles the optimal team for a project.
	FormTeam(ctx context.Context, projectID int64, candidateIDs []int64, teamSize int) (model.TeamResult, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler     *HealthHandler
	statsHandler      *StatsHandler
	projectsHandler   *ProjectsHandler
	candidatesHandler *CandidatesHandler
	teamsHandler      *TeamsHandler
}

// ServerOption applies a configuration option to the Server.
type ServerOption func(*serverConfig)

type serverConfig struct {
	maxTeamSize   int
	maxCandidates int
}

// WithMaxTeamSize caps the team_size accepted by POST /api/form-team.
func WithMaxTeamSize(n int) ServerOption {
	return func(c *serverConfig) {
		if n > 0 {
			c.maxTeamSize = n
		}
	}
}

// WithMaxCandidates caps the candidate pool accepted by POST /api/form-team.
func WithMaxCandidates(n int) ServerOption {
	return func(c *serverConfig) {
		if n > 0 {
			c.maxCandidates = n
		}
	}
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, opts ...ServerOption) *Server {
	cfg := &serverConfig{
		maxTeamSize:   defaultMaxTeamSize,
		maxCandidates: defaultMaxCandidates,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return &Server{
		healthHandler:     NewHealthHandler(),
		statsHandler:      NewStatsHandler(statsProvider),
		projectsHandler:   NewProjectsHandler(deps),
		candidatesHandler: NewCandidatesHandler(deps),
		teamsHandler:      NewTeamsHandler(deps, cfg.maxTeamSize, cfg.maxCandidates),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	// Specific paths first (most specific to least specific)
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/api/form-team", MetricsMiddleware(s.teamsHandler.HandleFormTeam, "form_team"))
	mux.HandleFunc("/api/projects", MetricsMiddleware(s.projectsHandler.HandleCollection, "projects"))
	mux.HandleFunc("/api/projects/", MetricsMiddleware(s.projectsHandler.HandleItem, "project"))
	mux.HandleFunc("/api/candidates", MetricsMiddleware(s.candidatesHandler.HandleCollection, "candidates"))
	mux.HandleFunc("/api/candidates/", MetricsMiddleware(s.candidatesHandler.HandleItem, "candidate"))
}

// skillPayload mirrors the wire shape of a single skill.
type skillPayload struct {
	Name           string `json:"name"`
	ExpertiseLevel int    `json:"expertise_level"`
}

// toSkills converts and validates wire skills into domain skills.
func toSkills(payload []skillPayload) ([]model.Skill, error) {
	skills := make([]model.Skill, 0, len(payload))
	for i, p := range payload {
		if strings.TrimSpace(p.Name) == "" {
			return nil, fmt.Errorf("skill %d: missing name", i)
		}
		if p.ExpertiseLevel < model.MinExpertiseLevel || p.ExpertiseLevel > model.MaxExpertiseLevel {
			return nil, fmt.Errorf("skill %q: expertise_level must be between %d and %d",
				p.Name, model.MinExpertiseLevel, model.MaxExpertiseLevel)
		}
		skills = append(skills, model.Skill{Name: p.Name, ExpertiseLevel: p.ExpertiseLevel})
	}
	return skills, nil
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeDomainError translates store errors to HTTP status codes.
func writeDomainError(w http.ResponseWriter, op string, err error) {
	if isNotFound(err) {
		writeError(w, http.StatusNotFound, "not_found", Wrap(op, err))
		return
	}
	writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
}

// isNotFound allows the API to translate upstream not-found errors to 404.
// This stays generic to avoid tight coupling with specific packages.
func isNotFound(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(strings.ToLower(err.Error()), "not found")
}
