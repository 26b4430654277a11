package seed

import "time"

// Config holds configuration for the seeding run
type Config struct {
	BaseURL       string        // Base URL of the service
	NumProjects   int           // Number of projects to create
	NumCandidates int           // Number of candidates to create
	TeamSize      int           // Team size to request per formation
	Workers       int           // Number of concurrent workers
	Timeout       time.Duration // HTTP request timeout
	LogFile       string        // Log file for run output
	Verbose       bool          // Enable verbose logging
}

// Skill mirrors the API wire shape of a single skill
type Skill struct {
	Name           string `json:"name"`
	ExpertiseLevel int    `json:"expertise_level"`
}

// Project mirrors the API project resource
type Project struct {
	ID     int64   `json:"id"`
	Title  string  `json:"title"`
	Skills []Skill `json:"skills"`
}

// Candidate mirrors the API candidate resource
type Candidate struct {
	ID     int64    `json:"id"`
	Name   string   `json:"name"`
	Skills []Skill  `json:"skills"`
	Score  *float64 `json:"score,omitempty"`
}

// TeamMember mirrors one member of a formed team
type TeamMember struct {
	CandidateID    int64    `json:"candidate_id"`
	Name           string   `json:"name"`
	AssignedSkills []string `json:"assigned_skills"`
}

// TeamResult mirrors the form-team response
type TeamResult struct {
	Members        []TeamMember `json:"team"`
	TotalExpertise int          `json:"total_expertise"`
	Coverage       float64      `json:"coverage"`
}

// FormTeamRequest mirrors the form-team request body
type FormTeamRequest struct {
	ProjectID    int64   `json:"project_id"`
	CandidateIDs []int64 `json:"candidate_ids"`
	TeamSize     int     `json:"team_size"`
}

// Stats holds run statistics
type Stats struct {
	ProjectsCreated   int
	CandidatesCreated int
	TeamsFormed       int
	TeamsFailed       int
	FullCoverageTeams int
	StartTime         time.Time
	EndTime           time.Time
	Duration          time.Duration
}
