package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/lodestarhq/lodestar/internal/plan"
)

func openTestStore(t *testing.T) *SQLite {
	t.Helper()
	s, err := Open(context.Background(), filepath.Join(t.TempDir(), "plans.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func samplePlan(name string) *plan.Plan {
	return &plan.Plan{
		Name: name,
		Tasks: []plan.Task{
			{ID: 1, Title: "a", EstimatedDurationHours: 4},
			{ID: 2, Title: "b", EstimatedDurationHours: 8, Dependencies: []int{1}},
		},
	}
}

func TestSaveAssignsIdentity(t *testing.T) {
	t.Parallel()
	s := openTestStore(t)
	ctx := context.Background()

	p := samplePlan("alpha")
	if err := s.Save(ctx, p); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if p.ID == "" {
		t.Error("saved plan has no ID")
	}
	if p.CreatedAt.IsZero() || p.UpdatedAt.IsZero() {
		t.Error("saved plan missing timestamps")
	}
}

func TestSaveGetRoundTrip(t *testing.T) {
	t.Parallel()
	s := openTestStore(t)
	ctx := context.Background()

	p := samplePlan("alpha")
	p.Tasks[0].ScheduledStart = "2026-01-05T09:00:00Z"
	p.Tasks[0].IsCriticalPath = true
	if err := s.Save(ctx, p); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := s.Get(ctx, p.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Name != "alpha" || len(got.Tasks) != 2 {
		t.Errorf("round trip lost data: %+v", got)
	}
	if got.Tasks[0].ScheduledStart != "2026-01-05T09:00:00Z" || !got.Tasks[0].IsCriticalPath {
		t.Errorf("scheduling annotations lost: %+v", got.Tasks[0])
	}
	if len(got.Tasks[1].Dependencies) != 1 || got.Tasks[1].Dependencies[0] != 1 {
		t.Errorf("dependencies lost: %v", got.Tasks[1].Dependencies)
	}
}

func TestSaveOverwritesDocument(t *testing.T) {
	t.Parallel()
	s := openTestStore(t)
	ctx := context.Background()

	p := samplePlan("alpha")
	if err := s.Save(ctx, p); err != nil {
		t.Fatalf("first Save: %v", err)
	}
	created := p.CreatedAt

	p.Name = "beta"
	p.Tasks = p.Tasks[:1]
	if err := s.Save(ctx, p); err != nil {
		t.Fatalf("second Save: %v", err)
	}

	got, err := s.Get(ctx, p.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Name != "beta" || len(got.Tasks) != 1 {
		t.Errorf("upsert did not replace the document: %+v", got)
	}
	if !got.CreatedAt.Equal(created) {
		t.Errorf("CreatedAt changed on update: %v -> %v", created, got.CreatedAt)
	}
}

func TestGetMissing(t *testing.T) {
	t.Parallel()
	s := openTestStore(t)
	if _, err := s.Get(context.Background(), "deadbeef"); !errors.Is(err, ErrPlanNotFound) {
		t.Errorf("got %v, want ErrPlanNotFound", err)
	}
}

func TestList(t *testing.T) {
	t.Parallel()
	s := openTestStore(t)
	ctx := context.Background()

	first := samplePlan("first")
	if err := s.Save(ctx, first); err != nil {
		t.Fatalf("Save: %v", err)
	}
	time.Sleep(10 * time.Millisecond)
	second := samplePlan("second")
	second.Tasks = second.Tasks[:1]
	if err := s.Save(ctx, second); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d summaries, want 2", len(got))
	}
	if got[0].Name != "second" || got[1].Name != "first" {
		t.Errorf("not ordered by recency: %q, %q", got[0].Name, got[1].Name)
	}
	if got[0].TotalTasks != 1 || got[1].TotalTasks != 2 {
		t.Errorf("task counts = %d, %d", got[0].TotalTasks, got[1].TotalTasks)
	}
}

func TestDelete(t *testing.T) {
	t.Parallel()
	s := openTestStore(t)
	ctx := context.Background()

	p := samplePlan("alpha")
	if err := s.Save(ctx, p); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := s.Delete(ctx, p.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Get(ctx, p.ID); !errors.Is(err, ErrPlanNotFound) {
		t.Errorf("plan still readable after delete: %v", err)
	}
	if err := s.Delete(ctx, p.ID); !errors.Is(err, ErrPlanNotFound) {
		t.Errorf("deleting missing plan: got %v, want ErrPlanNotFound", err)
	}
}
