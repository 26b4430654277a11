// Package model contains domain models passed between layers.
package model

import "time"

// Expertise bounds accepted at the request boundary.
const (
	MinExpertiseLevel = 1
	MaxExpertiseLevel = 10
)

// Skill is a named capability with a 1-10 expertise level.
// Identity is by name within an owner; duplicates are last-write-wins.
type Skill struct {
	Name           string `json:"name"`
	ExpertiseLevel int    `json:"expertise_level"`
}

// Project lists the skills a piece of work requires. The skill order is
// significant: it fixes the order required skills are processed during
// team evaluation.
type Project struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Skills    []Skill   `json:"skills"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Candidate is a person with skills and an optional externally derived
// quality score. Score starts unset and, once fetched, is kept for the
// lifetime of the record.
type Candidate struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Skills    []Skill   `json:"skills"`
	Score     *float64  `json:"score,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TeamMember records which required skills one candidate covers in a
// winning team. Derived, never persisted.
type TeamMember struct {
	CandidateID    int64    `json:"candidate_id"`
	Name           string   `json:"name"`
	AssignedSkills []string `json:"assigned_skills"`
}

// TeamResult is the outcome of a formation request.
// Coverage is the fraction of distinct required skill names covered,
// 0 when the project lists none. TotalExpertise counts each required
// skill's best assignment exactly once.
type TeamResult struct {
	Members        []TeamMember `json:"team"`
	TotalExpertise int          `json:"total_expertise"`
	Coverage       float64      `json:"coverage"`
}

// EmptyTeamResult is the defined result for degenerate inputs.
func EmptyTeamResult() TeamResult {
	return TeamResult{Members: []TeamMember{}, TotalExpertise: 0, Coverage: 0.0}
}
