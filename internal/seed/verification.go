package seed

import (
	"fmt"
)

// verifyTeam checks a formation result for internal consistency against
// the project and the candidate pool it was formed from.
func verifyTeam(project Project, pool []Candidate, teamSize int, result TeamResult) error {
	if len(result.Members) > teamSize {
		return fmt.Errorf("team has %d members, requested at most %d", len(result.Members), teamSize)
	}
	if result.Coverage < 0 || result.Coverage > 1 {
		return fmt.Errorf("coverage %f outside [0, 1]", result.Coverage)
	}
	if result.TotalExpertise < 0 {
		return fmt.Errorf("negative total expertise %d", result.TotalExpertise)
	}

	required := make(map[string]bool, len(project.Skills))
	for _, s := range project.Skills {
		required[s.Name] = true
	}

	poolByID := make(map[int64]Candidate, len(pool))
	for _, c := range pool {
		poolByID[c.ID] = c
	}

	seen := make(map[int64]bool, len(result.Members))
	assigned := make(map[string]bool)
	for _, member := range result.Members {
		if seen[member.CandidateID] {
			return fmt.Errorf("candidate %d appears twice in the team", member.CandidateID)
		}
		seen[member.CandidateID] = true

		candidate, ok := poolByID[member.CandidateID]
		if !ok {
			return fmt.Errorf("member %d is not in the candidate pool", member.CandidateID)
		}

		held := make(map[string]bool, len(candidate.Skills))
		for _, s := range candidate.Skills {
			held[s.Name] = true
		}

		for _, name := range member.AssignedSkills {
			if !required[name] {
				return fmt.Errorf("member %d assigned skill %q the project never asked for", member.CandidateID, name)
			}
			if !held[name] {
				return fmt.Errorf("member %d assigned skill %q it does not hold", member.CandidateID, name)
			}
			if assigned[name] {
				return fmt.Errorf("skill %q assigned to more than one member", name)
			}
			assigned[name] = true
		}
	}

	// Coverage must equal assigned distinct skills over required distinct
	// skills, allowing for float rounding.
	if len(required) > 0 {
		expected := float64(len(assigned)) / float64(len(required))
		if diff := result.Coverage - expected; diff > 1e-9 || diff < -1e-9 {
			return fmt.Errorf("coverage %f does not match assignments (%d/%d)",
				result.Coverage, len(assigned), len(required))
		}
	}

	return nil
}
