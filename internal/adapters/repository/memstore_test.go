package repository

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/okian/lineup/internal/domain/model"
)

var goSkill = []model.Skill{{Name: "Go", ExpertiseLevel: 7}}

func TestMemStore_ProjectCRUD(t *testing.T) {
	s := NewMemStore()
	ctx := context.Background()

	p1 := s.CreateProject(ctx, "alpha", goSkill)
	p2 := s.CreateProject(ctx, "beta", nil)

	// Monotonic ids starting at 1
	if p1.ID != 1 || p2.ID != 2 {
		t.Fatalf("expected ids 1 and 2, got %d and %d", p1.ID, p2.ID)
	}

	got, err := s.GetProject(ctx, p1.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.Title != "alpha" || len(got.Skills) != 1 {
		t.Errorf("unexpected project: %+v", got)
	}

	if _, err := s.GetProject(ctx, 99); !errors.Is(err, ErrProjectNotFound) {
		t.Errorf("expected ErrProjectNotFound, got %v", err)
	}

	all := s.ListProjects(ctx)
	if len(all) != 2 || all[0].ID != 1 || all[1].ID != 2 {
		t.Errorf("expected projects ordered by id, got %+v", all)
	}

	updated, err := s.UpdateProject(ctx, p2.ID, "beta-2", goSkill)
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Title != "beta-2" || len(updated.Skills) != 1 {
		t.Errorf("unexpected updated project: %+v", updated)
	}
	if updated.CreatedAt != p2.CreatedAt {
		t.Error("update must preserve CreatedAt")
	}

	if err := s.DeleteProject(ctx, p1.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if err := s.DeleteProject(ctx, p1.ID); !errors.Is(err, ErrProjectNotFound) {
		t.Errorf("expected ErrProjectNotFound on double delete, got %v", err)
	}

	// Ids never recycle
	p3 := s.CreateProject(ctx, "gamma", nil)
	if p3.ID != 3 {
		t.Errorf("expected id 3 after delete, got %d", p3.ID)
	}
}

func TestMemStore_CandidateCRUD(t *testing.T) {
	s := NewMemStore()
	ctx := context.Background()

	c1 := s.CreateCandidate(ctx, "Alice", goSkill)
	if c1.ID != 1 {
		t.Fatalf("expected id 1, got %d", c1.ID)
	}
	if c1.Score != nil {
		t.Error("new candidate must have no score")
	}

	scored, err := s.UpdateCandidateScore(ctx, c1.ID, 87.5)
	if err != nil {
		t.Fatalf("score update failed: %v", err)
	}
	if scored.Score == nil || *scored.Score != 87.5 {
		t.Errorf("expected score 87.5, got %v", scored.Score)
	}

	// Updating name/skills preserves the score
	updated, err := s.UpdateCandidate(ctx, c1.ID, "Alice B", goSkill)
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Score == nil || *updated.Score != 87.5 {
		t.Errorf("expected preserved score, got %v", updated.Score)
	}

	if _, err := s.GetCandidate(ctx, 42); !errors.Is(err, ErrCandidateNotFound) {
		t.Errorf("expected ErrCandidateNotFound, got %v", err)
	}

	if err := s.DeleteCandidate(ctx, c1.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := s.GetCandidate(ctx, c1.ID); !errors.Is(err, ErrCandidateNotFound) {
		t.Error("expected candidate gone after delete")
	}
}

func TestMemStore_GetCandidatesByIDs(t *testing.T) {
	s := NewMemStore()
	ctx := context.Background()

	s.CreateCandidate(ctx, "Alice", goSkill)
	s.CreateCandidate(ctx, "Bob", goSkill)
	s.CreateCandidate(ctx, "Carol", goSkill)

	got := s.GetCandidatesByIDs(ctx, []int64{3, 99, 1})
	if len(got) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(got))
	}
	// Request order preserved, unknown ids skipped
	if got[0].Name != "Carol" || got[1].Name != "Alice" {
		t.Errorf("unexpected order: %s, %s", got[0].Name, got[1].Name)
	}
}

func TestMemStore_ReturnsCopies(t *testing.T) {
	s := NewMemStore()
	ctx := context.Background()

	c := s.CreateCandidate(ctx, "Alice", goSkill)
	c.Skills[0].Name = "Mutated"

	fresh, err := s.GetCandidate(ctx, c.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if fresh.Skills[0].Name != "Go" {
		t.Error("store state leaked through returned slice")
	}
}

func TestMemStore_ConcurrentAccess(t *testing.T) {
	s := NewMemStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				c := s.CreateCandidate(ctx, "worker", goSkill)
				if _, err := s.UpdateCandidateScore(ctx, c.ID, float64(j)); err != nil {
					t.Errorf("score update failed: %v", err)
				}
			}
		}()
	}
	wg.Wait()

	_, candidates := s.Counts(ctx)
	if candidates != 400 {
		t.Errorf("expected 400 candidates, got %d", candidates)
	}
}
