package model

// ScoreRequest asks the prefetch pipeline to warm one candidate's score.
type ScoreRequest struct {
	CandidateID int64
	Skills      []Skill
}
