package seed

import (
	"crypto/rand"
	"math/big"

	"github.com/google/uuid"
)

// Skill catalog used for generated projects and candidates.
var skillCatalog = []string{
	"Python", "JavaScript", "TypeScript", "React", "Go", "Rust",
	"SQL", "PostgreSQL", "Redis", "Kubernetes", "Docker", "AWS",
	"Django", "FastAPI", "GraphQL", "Terraform",
}

// Generation bounds.
const (
	minSkillsPerProject   = 2
	maxSkillsPerProject   = 5
	minSkillsPerCandidate = 1
	maxSkillsPerCandidate = 6
	minExpertise          = 1
	maxExpertise          = 10
)

// randomInt returns a random int in [min, max] using crypto/rand.
func randomInt(min, max int) int {
	n, _ := rand.Int(rand.Reader, big.NewInt(int64(max-min+1)))
	return min + int(n.Int64())
}

// randomSkills picks count distinct skills from the catalog with random
// expertise levels.
func randomSkills(count int) []Skill {
	picked := make(map[int]bool, count)
	skills := make([]Skill, 0, count)
	for len(skills) < count {
		idx := randomInt(0, len(skillCatalog)-1)
		if picked[idx] {
			continue
		}
		picked[idx] = true
		skills = append(skills, Skill{
			Name:           skillCatalog[idx],
			ExpertiseLevel: randomInt(minExpertise, maxExpertise),
		})
	}
	return skills
}

// generateProject creates one project payload with a unique title.
func generateProject() map[string]any {
	return map[string]any{
		"title":  "project-" + uuid.New().String(),
		"skills": randomSkills(randomInt(minSkillsPerProject, maxSkillsPerProject)),
	}
}

// generateCandidate creates one candidate payload with a unique name.
func generateCandidate() map[string]any {
	return map[string]any{
		"name":   "candidate-" + uuid.New().String(),
		"skills": randomSkills(randomInt(minSkillsPerCandidate, maxSkillsPerCandidate)),
	}
}
