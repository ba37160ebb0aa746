package commands

import (
	"context"
	"errors"
	"testing"
	"time"

	"tallyard/contexts/election-operations/ballot-engine/adapters/memory"
	"tallyard/contexts/election-operations/ballot-engine/domain/entities"
	domainerrors "tallyard/contexts/election-operations/ballot-engine/domain/errors"
	"tallyard/contexts/election-operations/ballot-engine/ports"
)

type fakeClock struct {
	now time.Time
}

func (c fakeClock) Now() time.Time {
	return c.now
}

var voteStart = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func newVotableStore() *memory.Store {
	store := memory.NewStore()
	store.SetElection(ports.ElectionProjection{
		ElectionID: "election-1",
		Title:      "Student Council 2026",
		Status:     "active",
		Approval:   "approved",
		StartTime:  voteStart,
		EndTime:    voteStart.Add(8 * time.Hour),
	})
	store.SetPosition(ports.PositionProjection{
		PositionID:    "position-1",
		ElectionID:    "election-1",
		Title:         "President",
		MaxSelections: 1,
	})
	store.SetPosition(ports.PositionProjection{
		PositionID:    "position-2",
		ElectionID:    "election-1",
		Title:         "Board",
		MaxSelections: 2,
	})
	store.SetCandidate(ports.CandidateProjection{
		CandidateID: "candidate-a",
		PositionID:  "position-1",
		UserID:      "user-a",
		IsActive:    true,
	})
	store.SetCandidate(ports.CandidateProjection{
		CandidateID: "candidate-b",
		PositionID:  "position-1",
		UserID:      "user-b",
		IsActive:    true,
	})
	store.SetCandidate(ports.CandidateProjection{
		CandidateID: "candidate-c",
		PositionID:  "position-1",
		UserID:      "user-c",
		IsActive:    false,
	})
	store.SetCandidate(ports.CandidateProjection{
		CandidateID: "candidate-d",
		PositionID:  "position-2",
		UserID:      "user-d",
		IsActive:    true,
	})
	store.SetCandidate(ports.CandidateProjection{
		CandidateID: "candidate-e",
		PositionID:  "position-2",
		UserID:      "user-e",
		IsActive:    true,
	})
	return store
}

func newSubmitUseCase(store *memory.Store, now time.Time) SubmitUseCase {
	return SubmitUseCase{
		Ballots:   store,
		Directory: store,
		Audit:     store,
		Clock:     fakeClock{now: now},
		IDGen:     store,
	}
}

func TestSubmitBallotVoteAndRetry(t *testing.T) {
	store := newVotableStore()
	uc := newSubmitUseCase(store, voteStart.Add(10*time.Minute))

	decision, err := uc.SubmitBallot(context.Background(), SubmitBallotCommand{
		ElectionID:   "election-1",
		PositionID:   "position-1",
		VoterID:      "voter-1",
		CandidateIDs: []string{"candidate-a"},
	})
	if err != nil {
		t.Fatalf("submit ballot failed: %v", err)
	}
	if decision.Kind != entities.DecisionVote || len(decision.Votes) != 1 {
		t.Fatalf("expected one vote row, got %+v", decision)
	}

	// The decision is immutable: a different selection for the same
	// position must be rejected, not replace the first.
	_, err = uc.SubmitBallot(context.Background(), SubmitBallotCommand{
		ElectionID:   "election-1",
		PositionID:   "position-1",
		VoterID:      "voter-1",
		CandidateIDs: []string{"candidate-b"},
	})
	if !errors.Is(err, domainerrors.ErrAlreadyDecided) {
		t.Fatalf("expected ErrAlreadyDecided on retry, got %v", err)
	}

	stored, found, err := store.GetDecision(context.Background(), "election-1", "position-1", "voter-1")
	if err != nil || !found {
		t.Fatalf("expected stored decision, found=%v err=%v", found, err)
	}
	if stored.Votes[0].CandidateID != "candidate-a" {
		t.Fatalf("first decision must stand, got %s", stored.Votes[0].CandidateID)
	}

	audits := store.Audits()
	if len(audits) != 1 || audits[0].Kind != "vote-cast" {
		t.Fatalf("expected one vote-cast audit, got %+v", audits)
	}
}

func TestSubmitBallotAbstain(t *testing.T) {
	store := newVotableStore()
	uc := newSubmitUseCase(store, voteStart.Add(10*time.Minute))

	decision, err := uc.SubmitBallot(context.Background(), SubmitBallotCommand{
		ElectionID: "election-1",
		PositionID: "position-1",
		VoterID:    "voter-1",
		Abstain:    true,
	})
	if err != nil {
		t.Fatalf("abstain failed: %v", err)
	}
	if decision.Kind != entities.DecisionAbstain || decision.Abstention == nil {
		t.Fatalf("expected abstention decision, got %+v", decision)
	}

	// An abstention also spends the one decision.
	_, err = uc.SubmitBallot(context.Background(), SubmitBallotCommand{
		ElectionID:   "election-1",
		PositionID:   "position-1",
		VoterID:      "voter-1",
		CandidateIDs: []string{"candidate-a"},
	})
	if !errors.Is(err, domainerrors.ErrAlreadyDecided) {
		t.Fatalf("expected ErrAlreadyDecided after abstention, got %v", err)
	}
}

func TestSubmitBallotPreconditions(t *testing.T) {
	store := newVotableStore()
	inWindow := voteStart.Add(10 * time.Minute)

	// Election not active.
	store.SetElection(ports.ElectionProjection{
		ElectionID: "election-2",
		Status:     "upcoming",
		Approval:   "approved",
		StartTime:  voteStart.Add(24 * time.Hour),
		EndTime:    voteStart.Add(48 * time.Hour),
	})
	uc := newSubmitUseCase(store, inWindow)
	_, err := uc.SubmitBallot(context.Background(), SubmitBallotCommand{
		ElectionID:   "election-2",
		PositionID:   "position-1",
		VoterID:      "voter-1",
		CandidateIDs: []string{"candidate-a"},
	})
	if !errors.Is(err, domainerrors.ErrElectionNotVotable) {
		t.Fatalf("expected ErrElectionNotVotable for upcoming, got %v", err)
	}

	// Window elapsed even though the status row still says active.
	late := newSubmitUseCase(store, voteStart.Add(9*time.Hour))
	_, err = late.SubmitBallot(context.Background(), SubmitBallotCommand{
		ElectionID:   "election-1",
		PositionID:   "position-1",
		VoterID:      "voter-1",
		CandidateIDs: []string{"candidate-a"},
	})
	if !errors.Is(err, domainerrors.ErrElectionNotVotable) {
		t.Fatalf("expected ErrElectionNotVotable after end, got %v", err)
	}

	// Position belongs to a different election.
	store.SetPosition(ports.PositionProjection{
		PositionID:    "position-x",
		ElectionID:    "election-2",
		MaxSelections: 1,
	})
	_, err = uc.SubmitBallot(context.Background(), SubmitBallotCommand{
		ElectionID:   "election-1",
		PositionID:   "position-x",
		VoterID:      "voter-1",
		CandidateIDs: []string{"candidate-a"},
	})
	if !errors.Is(err, domainerrors.ErrInvalidPosition) {
		t.Fatalf("expected ErrInvalidPosition, got %v", err)
	}

	// Empty selection without abstain.
	_, err = uc.SubmitBallot(context.Background(), SubmitBallotCommand{
		ElectionID:   "election-1",
		PositionID:   "position-1",
		VoterID:      "voter-1",
		CandidateIDs: []string{"  ", ""},
	})
	if !errors.Is(err, domainerrors.ErrEmptySelection) {
		t.Fatalf("expected ErrEmptySelection, got %v", err)
	}

	// Inactive candidate is not eligible.
	_, err = uc.SubmitBallot(context.Background(), SubmitBallotCommand{
		ElectionID:   "election-1",
		PositionID:   "position-1",
		VoterID:      "voter-1",
		CandidateIDs: []string{"candidate-c"},
	})
	if !errors.Is(err, domainerrors.ErrInvalidCandidate) {
		t.Fatalf("expected ErrInvalidCandidate, got %v", err)
	}

	// Selection above the position cap.
	_, err = uc.SubmitBallot(context.Background(), SubmitBallotCommand{
		ElectionID:   "election-1",
		PositionID:   "position-1",
		VoterID:      "voter-1",
		CandidateIDs: []string{"candidate-a", "candidate-b"},
	})
	if !errors.Is(err, domainerrors.ErrTooManySelections) {
		t.Fatalf("expected ErrTooManySelections, got %v", err)
	}
}

func TestSubmitBallotMultiSelect(t *testing.T) {
	store := newVotableStore()
	uc := newSubmitUseCase(store, voteStart.Add(10*time.Minute))

	decision, err := uc.SubmitBallot(context.Background(), SubmitBallotCommand{
		ElectionID:   "election-1",
		PositionID:   "position-2",
		VoterID:      "voter-1",
		CandidateIDs: []string{"candidate-e", "candidate-d", "candidate-e"},
	})
	if err != nil {
		t.Fatalf("multi-select failed: %v", err)
	}
	if len(decision.Votes) != 2 {
		t.Fatalf("duplicates must collapse, got %d rows", len(decision.Votes))
	}
	if decision.Votes[0].CandidateID != "candidate-d" || decision.Votes[1].CandidateID != "candidate-e" {
		t.Fatalf("expected sorted selections, got %+v", decision.Votes)
	}
}
