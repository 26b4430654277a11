// Package formation implements the exhaustive team formation search.
//
// The engine enumerates every candidate subset of the effective team size
// and keeps the best by (coverage, total expertise). The search is
// exponential: C(n,k) subsets with n = pool size. Callers bound n and k at
// the request boundary (n <= 100, k <= 10) because C(100,10) is on the
// order of 1.7e13 and infeasible to enumerate; that ceiling is a property
// of the brute-force contract, not something the engine works around.
package formation

import (
	"time"

	"github.com/okian/lineup/internal/domain/model"
	"github.com/okian/lineup/pkg/metrics"
)

// Engine chooses the best-covering team from a candidate pool.
type Engine interface {
	// FormOptimalTeam returns the best subset of candidates of size
	// min(teamSize, len(candidates)) for the project's required skills.
	// Pure CPU-bound computation; performs no I/O and defines no
	// cancellation primitive of its own.
	FormOptimalTeam(project model.Project, candidates []model.Candidate, teamSize int) model.TeamResult
}

// BruteForce implements Engine by exhaustive subset enumeration.
//
// Enumeration order is lexicographic over the input candidate slice, driven
// by an explicit index odometer. The order is part of the observable
// contract: the first-enumerated subset wins when coverage and total
// expertise both tie.
type BruteForce struct{}

// NewBruteForce creates the exhaustive search engine.
func NewBruteForce() *BruteForce {
	return &BruteForce{}
}

// FormOptimalTeam searches all subsets of the effective team size.
// Degenerate inputs (empty pool, non-positive size) yield the empty result
// without searching.
func (e *BruteForce) FormOptimalTeam(project model.Project, candidates []model.Candidate, teamSize int) model.TeamResult {
	if len(candidates) == 0 || teamSize <= 0 {
		return model.EmptyTeamResult()
	}

	k := teamSize
	if k > len(candidates) {
		k = len(candidates)
	}

	required := distinctSkillNames(project.Skills)

	start := time.Now()
	subsetsEvaluated := 0

	best := model.EmptyTeamResult()
	found := false

	// Index odometer over candidate positions; first subset is the first k
	// candidates, advanced in lexicographic order.
	idx := make([]int, k)
	for i := range idx {
		idx[i] = i
	}
	subset := make([]model.Candidate, k)

	for {
		for i, j := range idx {
			subset[i] = candidates[j]
		}
		subsetsEvaluated++

		members, expertise, coverage := evaluateTeam(subset, required)

		// Strictly-greater comparisons keep the first-enumerated subset on
		// full ties.
		if !found || coverage > best.Coverage ||
			(coverage == best.Coverage && expertise > best.TotalExpertise) {
			best = model.TeamResult{Members: members, TotalExpertise: expertise, Coverage: coverage}
			found = true
		}

		if !nextCombination(idx, len(candidates)) {
			break
		}
	}

	metrics.RecordTeamFormed()
	metrics.RecordFormationDuration(float64(time.Since(start).Milliseconds()))
	metrics.RecordSubsetsEvaluated(float64(subsetsEvaluated))
	metrics.RecordTeamCoverage(best.Coverage)

	return best
}

// assignment holds the current best candidate for one required skill.
type assignment struct {
	candidateID int64
	name        string
	expertise   int
}

// evaluateTeam assigns each required skill to the subset member holding it
// with the strictly greatest expertise. Required skills are processed in
// project listing order; within one skill, subset members are scanned in
// subset order and their skills in listing order, so the first holder of
// the maximum expertise wins ties.
func evaluateTeam(subset []model.Candidate, required []string) ([]model.TeamMember, int, float64) {
	assigned := make(map[string]assignment, len(required))

	for _, skillName := range required {
		for _, c := range subset {
			for _, s := range c.Skills {
				if s.Name != skillName {
					continue
				}
				current, ok := assigned[skillName]
				if !ok || s.ExpertiseLevel > current.expertise {
					assigned[skillName] = assignment{
						candidateID: c.ID,
						name:        c.Name,
						expertise:   s.ExpertiseLevel,
					}
				}
			}
		}
	}

	coverage := 0.0
	if len(required) > 0 {
		coverage = float64(len(assigned)) / float64(len(required))
	}

	totalExpertise := 0
	for _, a := range assigned {
		totalExpertise += a.expertise
	}

	// Group assignments per candidate, members ordered by first assignment
	// and assigned skills by required-skill processing order.
	var members []model.TeamMember
	memberIdx := make(map[int64]int)
	for _, skillName := range required {
		a, ok := assigned[skillName]
		if !ok {
			continue
		}
		i, ok := memberIdx[a.candidateID]
		if !ok {
			i = len(members)
			memberIdx[a.candidateID] = i
			members = append(members, model.TeamMember{
				CandidateID:    a.candidateID,
				Name:           a.name,
				AssignedSkills: []string{},
			})
		}
		members[i].AssignedSkills = append(members[i].AssignedSkills, skillName)
	}
	if members == nil {
		members = []model.TeamMember{}
	}

	return members, totalExpertise, coverage
}

// distinctSkillNames returns required skill names deduplicated in
// first-occurrence order. Matching is by name only; the required expertise
// level expresses intent but does not gate assignment.
func distinctSkillNames(skills []model.Skill) []string {
	seen := make(map[string]struct{}, len(skills))
	names := make([]string, 0, len(skills))
	for _, s := range skills {
		if _, ok := seen[s.Name]; ok {
			continue
		}
		seen[s.Name] = struct{}{}
		names = append(names, s.Name)
	}
	return names
}

// nextCombination advances idx to the next k-combination of [0,n) in
// lexicographic order. Returns false when idx holds the final combination.
func nextCombination(idx []int, n int) bool {
	k := len(idx)
	for i := k - 1; i >= 0; i-- {
		if idx[i] < n-k+i {
			idx[i]++
			for j := i + 1; j < k; j++ {
				idx[j] = idx[j-1] + 1
			}
			return true
		}
	}
	return false
}
