// Package repository defines the record store interface and errors.
//
// The store is volatile by design: records live in process memory, ids are
// monotonically increasing per entity type starting at 1, and nothing
// survives a restart.
package repository

import (
	"context"

	"github.com/okian/lineup/internal/domain/model"
)

// Store provides read/write access to projects and candidates.
type Store interface {
	// CreateProject stores a new project and assigns its id.
	CreateProject(ctx context.Context, title string, skills []model.Skill) model.Project
	// GetProject returns a project by id.
	// Returns ErrProjectNotFound if the id is unknown.
	GetProject(ctx context.Context, id int64) (model.Project, error)
	// ListProjects returns all projects ordered by id.
	ListProjects(ctx context.Context) []model.Project
	// UpdateProject replaces a project's title and skills.
	UpdateProject(ctx context.Context, id int64, title string, skills []model.Skill) (model.Project, error)
	// DeleteProject removes a project by id.
	DeleteProject(ctx context.Context, id int64) error

	// CreateCandidate stores a new candidate with no score.
	CreateCandidate(ctx context.Context, name string, skills []model.Skill) model.Candidate
	// GetCandidate returns a candidate by id.
	// Returns ErrCandidateNotFound if the id is unknown.
	GetCandidate(ctx context.Context, id int64) (model.Candidate, error)
	// ListCandidates returns all candidates ordered by id.
	ListCandidates(ctx context.Context) []model.Candidate
	// GetCandidatesByIDs returns the candidates for the known ids in
	// request order; unknown ids are skipped, not errors.
	GetCandidatesByIDs(ctx context.Context, ids []int64) []model.Candidate
	// UpdateCandidate replaces a candidate's name and skills, preserving
	// any fetched score.
	UpdateCandidate(ctx context.Context, id int64, name string, skills []model.Skill) (model.Candidate, error)
	// UpdateCandidateScore records the externally fetched score.
	UpdateCandidateScore(ctx context.Context, id int64, score float64) (model.Candidate, error)
	// DeleteCandidate removes a candidate by id.
	DeleteCandidate(ctx context.Context, id int64) error

	// Counts reports how many projects and candidates are stored.
	Counts(ctx context.Context) (projects, candidates int)
}
