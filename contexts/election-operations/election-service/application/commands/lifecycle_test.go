package commands

import (
	"context"
	"testing"
	"time"

	"tallyard/contexts/election-operations/election-service/adapters/memory"
	"tallyard/contexts/election-operations/election-service/domain/entities"
)

type movingClock struct {
	now time.Time
}

func (c *movingClock) Now() time.Time {
	return c.now
}

func TestRefreshStatusesActivatesAndCompletes(t *testing.T) {
	store := memory.NewStore()
	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	clock := &movingClock{now: start}
	uc := ElectionUseCase{
		Elections: store,
		Audit:     store,
		Clock:     clock,
		IDGen:     store,
	}

	election, err := uc.ProposeElection(context.Background(), ProposeElectionCommand{
		ProposerID: "user-1",
		Title:      "Treasurer",
		StartTime:  start.Add(time.Hour),
		EndTime:    start.Add(2 * time.Hour),
	})
	if err != nil {
		t.Fatalf("propose election failed: %v", err)
	}
	if _, err := uc.ApproveElection(context.Background(), "admin-1", election.ElectionID); err != nil {
		t.Fatalf("approve election failed: %v", err)
	}

	// Before the window opens nothing moves.
	if err := uc.RefreshStatuses(context.Background()); err != nil {
		t.Fatalf("refresh before start failed: %v", err)
	}
	current, _ := store.GetElection(context.Background(), election.ElectionID)
	if current.Status != entities.StatusUpcoming {
		t.Fatalf("expected upcoming before start, got %s", current.Status)
	}

	clock.now = start.Add(90 * time.Minute)
	if err := uc.RefreshStatuses(context.Background()); err != nil {
		t.Fatalf("refresh inside window failed: %v", err)
	}
	current, _ = store.GetElection(context.Background(), election.ElectionID)
	if current.Status != entities.StatusActive {
		t.Fatalf("expected active inside window, got %s", current.Status)
	}

	clock.now = start.Add(3 * time.Hour)
	if err := uc.RefreshStatuses(context.Background()); err != nil {
		t.Fatalf("refresh after end failed: %v", err)
	}
	current, _ = store.GetElection(context.Background(), election.ElectionID)
	if current.Status != entities.StatusCompleted {
		t.Fatalf("expected completed after end, got %s", current.Status)
	}

	// Idempotent on repeat.
	if err := uc.RefreshStatuses(context.Background()); err != nil {
		t.Fatalf("repeat refresh failed: %v", err)
	}
	current, _ = store.GetElection(context.Background(), election.ElectionID)
	if current.Status != entities.StatusCompleted {
		t.Fatalf("expected completed to stick, got %s", current.Status)
	}
}

func TestRefreshStatusesSkipsThroughActive(t *testing.T) {
	store := memory.NewStore()
	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	clock := &movingClock{now: start}
	uc := ElectionUseCase{
		Elections: store,
		Audit:     store,
		Clock:     clock,
		IDGen:     store,
	}

	election, err := uc.ProposeElection(context.Background(), ProposeElectionCommand{
		ProposerID: "user-1",
		Title:      "Secretary",
		StartTime:  start.Add(time.Hour),
		EndTime:    start.Add(2 * time.Hour),
	})
	if err != nil {
		t.Fatalf("propose election failed: %v", err)
	}
	if _, err := uc.ApproveElection(context.Background(), "admin-1", election.ElectionID); err != nil {
		t.Fatalf("approve election failed: %v", err)
	}

	// One refresh after the whole window has elapsed must land on completed.
	clock.now = start.Add(24 * time.Hour)
	if err := uc.RefreshStatuses(context.Background()); err != nil {
		t.Fatalf("refresh failed: %v", err)
	}
	current, _ := store.GetElection(context.Background(), election.ElectionID)
	if current.Status != entities.StatusCompleted {
		t.Fatalf("expected skip-through to completed, got %s", current.Status)
	}
}

func TestRefreshStatusesIgnoresUnapproved(t *testing.T) {
	store := memory.NewStore()
	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	clock := &movingClock{now: start}
	uc := ElectionUseCase{
		Elections: store,
		Audit:     store,
		Clock:     clock,
		IDGen:     store,
	}

	election, err := uc.ProposeElection(context.Background(), ProposeElectionCommand{
		ProposerID: "user-1",
		Title:      "Unreviewed",
		StartTime:  start.Add(time.Hour),
		EndTime:    start.Add(2 * time.Hour),
	})
	if err != nil {
		t.Fatalf("propose election failed: %v", err)
	}

	clock.now = start.Add(24 * time.Hour)
	if err := uc.RefreshStatuses(context.Background()); err != nil {
		t.Fatalf("refresh failed: %v", err)
	}
	current, _ := store.GetElection(context.Background(), election.ElectionID)
	if current.Status != entities.StatusUpcoming {
		t.Fatalf("pending proposal must stay upcoming, got %s", current.Status)
	}
}
