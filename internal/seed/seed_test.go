package seed

import (
	"testing"
)

func TestRandomSkills(t *testing.T) {
	for i := 0; i < 50; i++ {
		count := randomInt(minSkillsPerCandidate, maxSkillsPerCandidate)
		skills := randomSkills(count)

		if len(skills) != count {
			t.Fatalf("expected %d skills, got %d", count, len(skills))
		}

		seen := make(map[string]bool)
		for _, s := range skills {
			if seen[s.Name] {
				t.Errorf("duplicate skill %q in generated set", s.Name)
			}
			seen[s.Name] = true
			if s.ExpertiseLevel < minExpertise || s.ExpertiseLevel > maxExpertise {
				t.Errorf("expertise level %d outside [%d, %d]", s.ExpertiseLevel, minExpertise, maxExpertise)
			}
		}
	}
}

func TestVerifyTeam_Valid(t *testing.T) {
	project := Project{ID: 1, Skills: []Skill{
		{Name: "Python", ExpertiseLevel: 7},
		{Name: "React", ExpertiseLevel: 5},
	}}
	pool := []Candidate{
		{ID: 10, Name: "Alice", Skills: []Skill{{Name: "Python", ExpertiseLevel: 9}}},
		{ID: 11, Name: "Bob", Skills: []Skill{{Name: "React", ExpertiseLevel: 8}}},
	}
	result := TeamResult{
		Members: []TeamMember{
			{CandidateID: 10, Name: "Alice", AssignedSkills: []string{"Python"}},
			{CandidateID: 11, Name: "Bob", AssignedSkills: []string{"React"}},
		},
		TotalExpertise: 17,
		Coverage:       1.0,
	}

	if err := verifyTeam(project, pool, 2, result); err != nil {
		t.Errorf("expected valid team, got: %v", err)
	}
}

func TestVerifyTeam_Violations(t *testing.T) {
	project := Project{ID: 1, Skills: []Skill{{Name: "Python", ExpertiseLevel: 7}}}
	pool := []Candidate{
		{ID: 10, Name: "Alice", Skills: []Skill{{Name: "Python", ExpertiseLevel: 9}}},
	}

	cases := []struct {
		name   string
		size   int
		result TeamResult
	}{
		{
			name: "too many members",
			size: 1,
			result: TeamResult{Members: []TeamMember{
				{CandidateID: 10, AssignedSkills: []string{"Python"}},
				{CandidateID: 11},
			}, Coverage: 1.0},
		},
		{
			name:   "coverage out of range",
			size:   1,
			result: TeamResult{Coverage: 1.5},
		},
		{
			name: "member outside pool",
			size: 1,
			result: TeamResult{Members: []TeamMember{
				{CandidateID: 99, AssignedSkills: []string{"Python"}},
			}, Coverage: 1.0},
		},
		{
			name: "assigned skill not required",
			size: 1,
			result: TeamResult{Members: []TeamMember{
				{CandidateID: 10, AssignedSkills: []string{"Go"}},
			}, Coverage: 1.0},
		},
		{
			name: "coverage mismatch",
			size: 1,
			result: TeamResult{Members: []TeamMember{
				{CandidateID: 10, AssignedSkills: []string{"Python"}},
			}, Coverage: 0.5},
		},
	}

	for _, tc := range cases {
		if err := verifyTeam(project, pool, tc.size, tc.result); err == nil {
			t.Errorf("%s: expected verification error, got nil", tc.name)
		}
	}
}
