package queries

import (
	"context"
	"testing"
	"time"

	"tallyard/contexts/election-operations/election-service/adapters/memory"
	"tallyard/contexts/election-operations/election-service/domain/entities"
)

type fakeClock struct {
	now time.Time
}

func (c fakeClock) Now() time.Time {
	return c.now
}

func seedElection(t *testing.T, store *memory.Store, election entities.Election) {
	t.Helper()
	if err := store.SaveElection(context.Background(), election); err != nil {
		t.Fatalf("seed election failed: %v", err)
	}
}

func TestListViewsFilterByStatusAndWindow(t *testing.T) {
	store := memory.NewStore()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	uc := ListUseCase{Elections: store, Clock: fakeClock{now: now}}

	seedElection(t, store, entities.Election{
		ElectionID: "active-1",
		Title:      "Active",
		StartTime:  now.Add(-time.Hour),
		EndTime:    now.Add(time.Hour),
		Status:     entities.StatusActive,
		Approval:   entities.ApprovalApproved,
		ProposerID: "user-1",
	})
	seedElection(t, store, entities.Election{
		ElectionID: "upcoming-1",
		Title:      "Upcoming",
		StartTime:  now.Add(time.Hour),
		EndTime:    now.Add(2 * time.Hour),
		Status:     entities.StatusUpcoming,
		Approval:   entities.ApprovalApproved,
		ProposerID: "user-1",
	})
	seedElection(t, store, entities.Election{
		ElectionID: "pending-1",
		Title:      "Pending approval",
		StartTime:  now.Add(time.Hour),
		EndTime:    now.Add(2 * time.Hour),
		Status:     entities.StatusUpcoming,
		Approval:   entities.ApprovalPending,
		ProposerID: "user-2",
	})
	seedElection(t, store, entities.Election{
		ElectionID: "done-1",
		Title:      "Done",
		StartTime:  now.Add(-3 * time.Hour),
		EndTime:    now.Add(-time.Hour),
		Status:     entities.StatusCompleted,
		Approval:   entities.ApprovalApproved,
		ProposerID: "user-2",
	})

	active, err := uc.ActiveElections(context.Background())
	if err != nil {
		t.Fatalf("active list failed: %v", err)
	}
	if len(active) != 1 || active[0].ElectionID != "active-1" {
		t.Fatalf("expected only active-1, got %+v", active)
	}

	upcoming, err := uc.UpcomingElections(context.Background())
	if err != nil {
		t.Fatalf("upcoming list failed: %v", err)
	}
	if len(upcoming) != 1 || upcoming[0].ElectionID != "upcoming-1" {
		t.Fatalf("unapproved proposals must stay hidden, got %+v", upcoming)
	}

	pending, err := uc.PendingReview(context.Background())
	if err != nil {
		t.Fatalf("pending list failed: %v", err)
	}
	if len(pending) != 1 || pending[0].ElectionID != "pending-1" {
		t.Fatalf("expected only pending-1, got %+v", pending)
	}

	mine, err := uc.ProposedBy(context.Background(), "user-2")
	if err != nil {
		t.Fatalf("proposed-by list failed: %v", err)
	}
	if len(mine) != 2 {
		t.Fatalf("expected both of user-2's elections, got %+v", mine)
	}
}

func TestGetElectionOrdersPositions(t *testing.T) {
	store := memory.NewStore()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	uc := ListUseCase{Elections: store, Clock: fakeClock{now: now}}

	seedElection(t, store, entities.Election{
		ElectionID: "election-1",
		Title:      "Council",
		StartTime:  now.Add(time.Hour),
		EndTime:    now.Add(2 * time.Hour),
		Status:     entities.StatusUpcoming,
		Approval:   entities.ApprovalApproved,
		ProposerID: "user-1",
	})
	for _, position := range []entities.Position{
		{PositionID: "pos-b", ElectionID: "election-1", Title: "Second", DisplayOrder: 2, MaxSelections: 1},
		{PositionID: "pos-a", ElectionID: "election-1", Title: "First", DisplayOrder: 1, MaxSelections: 1},
	} {
		if err := store.SavePosition(context.Background(), position); err != nil {
			t.Fatalf("seed position failed: %v", err)
		}
	}
	if err := store.SaveCandidate(context.Background(), entities.Candidate{
		CandidateID: "cand-1",
		PositionID:  "pos-a",
		UserID:      "user-9",
		IsActive:    true,
	}); err != nil {
		t.Fatalf("seed candidate failed: %v", err)
	}

	detail, err := uc.GetElection(context.Background(), "election-1")
	if err != nil {
		t.Fatalf("get election failed: %v", err)
	}
	if len(detail.Positions) != 2 {
		t.Fatalf("expected 2 positions, got %d", len(detail.Positions))
	}
	if detail.Positions[0].Position.PositionID != "pos-a" {
		t.Fatalf("expected display order sort, got %s first", detail.Positions[0].Position.PositionID)
	}
	if len(detail.Positions[0].Candidates) != 1 {
		t.Fatalf("expected candidate attached to pos-a, got %+v", detail.Positions[0].Candidates)
	}
}
