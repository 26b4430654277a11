package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/okian/lineup/internal/domain/model"
	"github.com/okian/lineup/pkg/metrics"
)

// MemStore implements Store with mutex-guarded maps.
type MemStore struct {
	mu sync.RWMutex

	projects   map[int64]model.Project
	candidates map[int64]model.Candidate

	nextProjectID   int64
	nextCandidateID int64

	// now is injectable for deterministic timestamps in tests.
	now func() time.Time
}

// Option applies a configuration option to the MemStore.
type Option func(*MemStore)

// WithClock replaces the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *MemStore) {
		if now != nil {
			s.now = now
		}
	}
}

// NewMemStore creates an empty in-memory record store.
func NewMemStore(opts ...Option) *MemStore {
	s := &MemStore{
		projects:        make(map[int64]model.Project),
		candidates:      make(map[int64]model.Candidate),
		nextProjectID:   1,
		nextCandidateID: 1,
		now:             time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// CreateProject stores a new project and assigns its id.
func (s *MemStore) CreateProject(ctx context.Context, title string, skills []model.Skill) model.Project {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	p := model.Project{
		ID:        s.nextProjectID,
		Title:     title,
		Skills:    copySkills(skills),
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.nextProjectID++
	s.projects[p.ID] = p
	metrics.UpdateProjectsTotal(len(s.projects))
	return copyProject(p)
}

// GetProject returns a project by id.
func (s *MemStore) GetProject(ctx context.Context, id int64) (model.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.projects[id]
	if !ok {
		return model.Project{}, ErrProjectNotFound
	}
	return copyProject(p), nil
}

// ListProjects returns all projects ordered by id.
func (s *MemStore) ListProjects(ctx context.Context) []model.Project {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Project, 0, len(s.projects))
	for _, p := range s.projects {
		out = append(out, copyProject(p))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// UpdateProject replaces a project's title and skills.
func (s *MemStore) UpdateProject(ctx context.Context, id int64, title string, skills []model.Skill) (model.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.projects[id]
	if !ok {
		return model.Project{}, ErrProjectNotFound
	}
	p.Title = title
	p.Skills = copySkills(skills)
	p.UpdatedAt = s.now()
	s.projects[id] = p
	return copyProject(p), nil
}

// DeleteProject removes a project by id.
func (s *MemStore) DeleteProject(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.projects[id]; !ok {
		return ErrProjectNotFound
	}
	delete(s.projects, id)
	metrics.UpdateProjectsTotal(len(s.projects))
	return nil
}

// CreateCandidate stores a new candidate with no score.
func (s *MemStore) CreateCandidate(ctx context.Context, name string, skills []model.Skill) model.Candidate {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	c := model.Candidate{
		ID:        s.nextCandidateID,
		Name:      name,
		Skills:    copySkills(skills),
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.nextCandidateID++
	s.candidates[c.ID] = c
	metrics.UpdateCandidatesTotal(len(s.candidates))
	return copyCandidate(c)
}

// GetCandidate returns a candidate by id.
func (s *MemStore) GetCandidate(ctx context.Context, id int64) (model.Candidate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.candidates[id]
	if !ok {
		return model.Candidate{}, ErrCandidateNotFound
	}
	return copyCandidate(c), nil
}

// ListCandidates returns all candidates ordered by id.
func (s *MemStore) ListCandidates(ctx context.Context) []model.Candidate {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Candidate, 0, len(s.candidates))
	for _, c := range s.candidates {
		out = append(out, copyCandidate(c))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// GetCandidatesByIDs returns known candidates in request order, skipping
// unknown ids.
func (s *MemStore) GetCandidatesByIDs(ctx context.Context, ids []int64) []model.Candidate {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Candidate, 0, len(ids))
	for _, id := range ids {
		if c, ok := s.candidates[id]; ok {
			out = append(out, copyCandidate(c))
		}
	}
	return out
}

// UpdateCandidate replaces a candidate's name and skills, preserving any
// fetched score.
func (s *MemStore) UpdateCandidate(ctx context.Context, id int64, name string, skills []model.Skill) (model.Candidate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.candidates[id]
	if !ok {
		return model.Candidate{}, ErrCandidateNotFound
	}
	c.Name = name
	c.Skills = copySkills(skills)
	c.UpdatedAt = s.now()
	s.candidates[id] = c
	return copyCandidate(c), nil
}

// UpdateCandidateScore records the externally fetched score.
func (s *MemStore) UpdateCandidateScore(ctx context.Context, id int64, score float64) (model.Candidate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.candidates[id]
	if !ok {
		return model.Candidate{}, ErrCandidateNotFound
	}
	c.Score = &score
	c.UpdatedAt = s.now()
	s.candidates[id] = c
	return copyCandidate(c), nil
}

// DeleteCandidate removes a candidate by id.
func (s *MemStore) DeleteCandidate(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.candidates[id]; !ok {
		return ErrCandidateNotFound
	}
	delete(s.candidates, id)
	metrics.UpdateCandidatesTotal(len(s.candidates))
	return nil
}

// Counts reports how many projects and candidates are stored.
func (s *MemStore) Counts(ctx context.Context) (int, int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.projects), len(s.candidates)
}

func copySkills(skills []model.Skill) []model.Skill {
	out := make([]model.Skill, len(skills))
	copy(out, skills)
	return out
}

func copyProject(p model.Project) model.Project {
	p.Skills = copySkills(p.Skills)
	return p
}

func copyCandidate(c model.Candidate) model.Candidate {
	c.Skills = copySkills(c.Skills)
	if c.Score != nil {
		score := *c.Score
		c.Score = &score
	}
	return c
}
