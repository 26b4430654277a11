package formation_test

import (
	"testing"

	"github.com/okian/lineup/internal/domain/formation"
	"github.com/okian/lineup/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func project(skills ...model.Skill) model.Project {
	return model.Project{ID: 1, Title: "proj", Skills: skills}
}

func candidate(id int64, name string, skills ...model.Skill) model.Candidate {
	return model.Candidate{ID: id, Name: name, Skills: skills}
}

func skill(name string, level int) model.Skill {
	return model.Skill{Name: name, ExpertiseLevel: level}
}

func TestBruteForce_FormOptimalTeam(t *testing.T) {
	Convey("Given the exhaustive formation engine", t, func() {
		engine := formation.NewBruteForce()

		Convey("When the project needs Python, JavaScript and React", func() {
			proj := project(skill("Python", 7), skill("JavaScript", 8), skill("React", 6))
			alice := candidate(1, "Alice", skill("Python", 9), skill("JavaScript", 7))
			bob := candidate(2, "Bob", skill("JavaScript", 9), skill("React", 8))

			result := engine.FormOptimalTeam(proj, []model.Candidate{alice, bob}, 2)

			Convey("Then the team covers everything with best expertise", func() {
				So(result.Coverage, ShouldEqual, 1.0)
				So(result.TotalExpertise, ShouldEqual, 26) // Python 9 + JavaScript 9 + React 8
				So(result.Members, ShouldHaveLength, 2)
			})

			Convey("And each required skill goes to its strongest holder", func() {
				So(result.Members[0].CandidateID, ShouldEqual, 1)
				So(result.Members[0].AssignedSkills, ShouldResemble, []string{"Python"})
				So(result.Members[1].CandidateID, ShouldEqual, 2)
				So(result.Members[1].AssignedSkills, ShouldResemble, []string{"JavaScript", "React"})
			})
		})

		Convey("When no candidate holds a required skill", func() {
			proj := project(skill("SQL", 5))
			pool := []model.Candidate{
				candidate(1, "Alice", skill("Python", 9)),
				candidate(2, "Bob", skill("React", 8)),
			}

			result := engine.FormOptimalTeam(proj, pool, 2)

			Convey("Then coverage and expertise are zero and nobody is assigned", func() {
				So(result.Coverage, ShouldEqual, 0.0)
				So(result.TotalExpertise, ShouldEqual, 0)
				So(result.Members, ShouldBeEmpty)
			})
		})

		Convey("When inputs are degenerate", func() {
			proj := project(skill("Go", 5))

			Convey("Then an empty pool yields the empty result", func() {
				result := engine.FormOptimalTeam(proj, []model.Candidate{}, 3)
				So(result.Members, ShouldBeEmpty)
				So(result.TotalExpertise, ShouldEqual, 0)
				So(result.Coverage, ShouldEqual, 0.0)
			})

			Convey("And a non-positive team size yields the empty result", func() {
				pool := []model.Candidate{candidate(1, "Alice", skill("Go", 7))}
				So(engine.FormOptimalTeam(proj, pool, 0), ShouldResemble, model.EmptyTeamResult())
				So(engine.FormOptimalTeam(proj, pool, -1), ShouldResemble, model.EmptyTeamResult())
			})
		})

		Convey("When the requested size exceeds the pool", func() {
			proj := project(skill("Go", 5), skill("Rust", 6))
			pool := []model.Candidate{
				candidate(1, "Alice", skill("Go", 7)),
				candidate(2, "Bob", skill("Rust", 6)),
				candidate(3, "Carol", skill("Go", 4)),
			}

			result := engine.FormOptimalTeam(proj, pool, 100)

			Convey("Then the size clamps to the pool and the only subset wins", func() {
				So(result.Coverage, ShouldEqual, 1.0)
				So(result.TotalExpertise, ShouldEqual, 13) // Go 7 + Rust 6
				So(result.Members, ShouldHaveLength, 2)
				So(result.Members[0].Name, ShouldEqual, "Alice")
				So(result.Members[1].Name, ShouldEqual, "Bob")
			})
		})

		Convey("When two subsets tie on coverage and expertise", func() {
			proj := project(skill("Go", 5))
			pool := []model.Candidate{
				candidate(1, "Alice", skill("Go", 7)),
				candidate(2, "Bob", skill("Go", 7)),
			}

			result := engine.FormOptimalTeam(proj, pool, 1)

			Convey("Then the first-enumerated subset wins", func() {
				So(result.Members, ShouldHaveLength, 1)
				So(result.Members[0].CandidateID, ShouldEqual, 1)
			})
		})

		Convey("When coverage ties but expertise differs", func() {
			proj := project(skill("Go", 5))
			pool := []model.Candidate{
				candidate(1, "Alice", skill("Go", 4)),
				candidate(2, "Bob", skill("Go", 9)),
			}

			result := engine.FormOptimalTeam(proj, pool, 1)

			Convey("Then the higher-expertise subset wins despite enumeration order", func() {
				So(result.Members[0].CandidateID, ShouldEqual, 2)
				So(result.TotalExpertise, ShouldEqual, 9)
			})
		})

		Convey("When the project lists no required skills", func() {
			proj := project()
			pool := []model.Candidate{candidate(1, "Alice", skill("Go", 7))}

			result := engine.FormOptimalTeam(proj, pool, 1)

			Convey("Then coverage is defined as zero", func() {
				So(result.Coverage, ShouldEqual, 0.0)
				So(result.TotalExpertise, ShouldEqual, 0)
				So(result.Members, ShouldBeEmpty)
			})
		})

		Convey("When the project repeats a required skill name", func() {
			proj := project(skill("Go", 5), skill("Go", 9), skill("Rust", 5))
			pool := []model.Candidate{
				candidate(1, "Alice", skill("Go", 8)),
				candidate(2, "Bob", skill("Rust", 6)),
			}

			result := engine.FormOptimalTeam(proj, pool, 2)

			Convey("Then the name counts once for coverage and expertise", func() {
				So(result.Coverage, ShouldEqual, 1.0)
				So(result.TotalExpertise, ShouldEqual, 14) // Go 8 + Rust 6, Go counted once
			})
		})

		Convey("When a skill ties inside one subset", func() {
			proj := project(skill("Go", 5))
			pool := []model.Candidate{
				candidate(1, "Alice", skill("Go", 7)),
				candidate(2, "Bob", skill("Go", 7)),
			}

			result := engine.FormOptimalTeam(proj, pool, 2)

			Convey("Then the first scanned member keeps the assignment", func() {
				So(result.Members, ShouldHaveLength, 1)
				So(result.Members[0].CandidateID, ShouldEqual, 1)
				So(result.TotalExpertise, ShouldEqual, 7)
			})
		})

		Convey("When a larger pool needs a genuine search", func() {
			proj := project(skill("Go", 5), skill("Rust", 5), skill("SQL", 5))
			pool := []model.Candidate{
				candidate(1, "Alice", skill("Go", 9)),
				candidate(2, "Bob", skill("Rust", 9)),
				candidate(3, "Carol", skill("SQL", 9)),
				candidate(4, "Dave", skill("Go", 3), skill("Rust", 3), skill("SQL", 3)),
			}

			Convey("Then a size-2 team prefers coverage over raw expertise", func() {
				result := engine.FormOptimalTeam(proj, pool, 2)
				// Any specialist pair covers 2/3; a specialist plus Dave covers 3/3.
				So(result.Coverage, ShouldEqual, 1.0)
				// Alice+Dave is the first full-coverage subset: Go 9, Rust 3, SQL 3.
				So(result.TotalExpertise, ShouldEqual, 15)
				So(result.Members[0].CandidateID, ShouldEqual, 1)
				So(result.Members[1].CandidateID, ShouldEqual, 4)
			})

			Convey("And a size-3 team picks the three specialists", func() {
				result := engine.FormOptimalTeam(proj, pool, 3)
				So(result.Coverage, ShouldEqual, 1.0)
				So(result.TotalExpertise, ShouldEqual, 27)
				So(result.Members, ShouldHaveLength, 3)
			})
		})
	})
}
