package queries

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

var tallyStart = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func newTallyStore(status string) *memory.Store {
	store := memory.NewStore()
	store.SetElection(ports.ElectionProjection{
		ElectionID: "election-1",
		Title:      "Student Council 2026",
		Status:     status,
		Approval:   "approved",
		StartTime:  tallyStart,
		EndTime:    tallyStart.Add(8 * time.Hour),
	})
	store.SetPosition(ports.PositionProjection{
		PositionID:    "position-1",
		ElectionID:    "election-1",
		Title:         "President",
		DisplayOrder:  1,
		MaxSelections: 1,
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
	return store
}

func castVote(t *testing.T, store *memory.Store, voterID string, candidateID string) {
	t.Helper()
	err := store.SaveDecision(context.Background(), entities.BallotDecision{
		ElectionID: "election-1",
		PositionID: "position-1",
		VoterID:    voterID,
		Kind:       entities.DecisionVote,
		Votes: []entities.Vote{{
			VoteID:      voterID + "-" + candidateID,
			ElectionID:  "election-1",
			PositionID:  "position-1",
			CandidateID: candidateID,
			VoterID:     voterID,
			CastAt:      tallyStart.Add(time.Hour),
		}},
		CastAt: tallyStart.Add(time.Hour),
	})
	if err != nil {
		t.Fatalf("seed vote failed: %v", err)
	}
}

func castAbstention(t *testing.T, store *memory.Store, voterID string) {
	t.Helper()
	err := store.SaveDecision(context.Background(), entities.BallotDecision{
		ElectionID: "election-1",
		PositionID: "position-1",
		VoterID:    voterID,
		Kind:       entities.DecisionAbstain,
		Abstention: &entities.Abstention{
			AbstentionID: voterID + "-abstain",
			ElectionID:   "election-1",
			PositionID:   "position-1",
			VoterID:      voterID,
			CastAt:       tallyStart.Add(time.Hour),
		},
		CastAt: tallyStart.Add(time.Hour),
	})
	if err != nil {
		t.Fatalf("seed abstention failed: %v", err)
	}
}

func TestTallyCountsAndPercentages(t *testing.T) {
	store := newTallyStore("active")
	castVote(t, store, "voter-1", "candidate-a")
	castVote(t, store, "voter-2", "candidate-a")
	castVote(t, store, "voter-3", "candidate-b")
	castAbstention(t, store, "voter-4")

	uc := NewTallyUseCase(store, store)
	result, err := uc.Tally(context.Background(), "election-1")
	if err != nil {
		t.Fatalf("tally failed: %v", err)
	}
	if result.Final {
		t.Fatalf("active election tallies must not be final")
	}
	if len(result.Positions) != 1 {
		t.Fatalf("expected one position, got %d", len(result.Positions))
	}

	position := result.Positions[0]
	if position.Participants != 4 {
		t.Fatalf("expected 4 participants, got %d", position.Participants)
	}
	if position.AbstainCount != 1 || position.AbstainPercentage != 25.0 {
		t.Fatalf("expected 1 abstention at 25%%, got %d at %v", position.AbstainCount, position.AbstainPercentage)
	}
	if position.NoWinner {
		t.Fatalf("abstentions are not a majority here")
	}

	leader := position.Candidates[0]
	if leader.CandidateID != "candidate-a" || leader.VoteCount != 2 || !leader.Leading {
		t.Fatalf("expected candidate-a leading with 2 votes, got %+v", leader)
	}
	if leader.Percentage != 50.0 {
		t.Fatalf("expected 50%% for leader, got %v", leader.Percentage)
	}
	runnerUp := position.Candidates[1]
	if runnerUp.Percentage != 25.0 || runnerUp.Leading {
		t.Fatalf("expected trailing candidate at 25%%, got %+v", runnerUp)
	}
}

func TestTallyAbstainMajorityYieldsNoWinner(t *testing.T) {
	store := newTallyStore("completed")
	castVote(t, store, "voter-1", "candidate-a")
	castVote(t, store, "voter-2", "candidate-a")
	castAbstention(t, store, "voter-3")
	castAbstention(t, store, "voter-4")
	castAbstention(t, store, "voter-5")

	uc := NewTallyUseCase(store, store)
	result, err := uc.Tally(context.Background(), "election-1")
	if err != nil {
		t.Fatalf("tally failed: %v", err)
	}
	position := result.Positions[0]
	if !position.NoWinner {
		t.Fatalf("3 of 5 abstentions must yield no winner")
	}
	// The leading candidate still shows its count; the override does not
	// erase the standings.
	if position.Candidates[0].VoteCount != 2 || !position.Candidates[0].Leading {
		t.Fatalf("standings must survive the no-winner override, got %+v", position.Candidates[0])
	}
}

func TestTallyExactHalfAbstainIsNotMajority(t *testing.T) {
	store := newTallyStore("completed")
	castVote(t, store, "voter-1", "candidate-a")
	castAbstention(t, store, "voter-2")

	uc := NewTallyUseCase(store, store)
	result, err := uc.Tally(context.Background(), "election-1")
	if err != nil {
		t.Fatalf("tally failed: %v", err)
	}
	if result.Positions[0].NoWinner {
		t.Fatalf("exactly half abstaining is not a strict majority")
	}
}

func TestTallyTiedLeaders(t *testing.T) {
	store := newTallyStore("active")
	castVote(t, store, "voter-1", "candidate-a")
	castVote(t, store, "voter-2", "candidate-b")

	uc := NewTallyUseCase(store, store)
	result, err := uc.Tally(context.Background(), "election-1")
	if err != nil {
		t.Fatalf("tally failed: %v", err)
	}
	candidates := result.Positions[0].Candidates
	if !candidates[0].Leading || !candidates[1].Leading {
		t.Fatalf("tied candidates must both lead, got %+v", candidates)
	}
	if candidates[0].CandidateID != "candidate-a" {
		t.Fatalf("ties order by candidate id, got %s first", candidates[0].CandidateID)
	}
}

func TestTallyZeroBallots(t *testing.T) {
	store := newTallyStore("active")

	uc := NewTallyUseCase(store, store)
	result, err := uc.Tally(context.Background(), "election-1")
	if err != nil {
		t.Fatalf("tally failed: %v", err)
	}
	position := result.Positions[0]
	if position.Participants != 0 || position.NoWinner {
		t.Fatalf("empty ledger must give zero participants and a winner-eligible result, got %+v", position)
	}
	for _, candidate := range position.Candidates {
		if candidate.Leading || candidate.Percentage != 0 {
			t.Fatalf("no candidate leads with zero votes, got %+v", candidate)
		}
	}
}

func TestTallyVisibilityGate(t *testing.T) {
	store := newTallyStore("upcoming")
	uc := NewTallyUseCase(store, store)

	if _, err := uc.Tally(context.Background(), "election-1"); !errors.Is(err, domainerrors.ErrResultsNotVisible) {
		t.Fatalf("expected ErrResultsNotVisible for upcoming, got %v", err)
	}

	store.SetElection(ports.ElectionProjection{
		ElectionID: "election-1",
		Status:     "active",
		Approval:   "pending",
		StartTime:  tallyStart,
		EndTime:    tallyStart.Add(8 * time.Hour),
	})
	if _, err := uc.Tally(context.Background(), "election-1"); !errors.Is(err, domainerrors.ErrResultsNotVisible) {
		t.Fatalf("expected ErrResultsNotVisible for unapproved, got %v", err)
	}
}

func TestTallyFinalResultIsCached(t *testing.T) {
	store := newTallyStore("completed")
	castVote(t, store, "voter-1", "candidate-a")

	uc := NewTallyUseCase(store, store)
	first, err := uc.Tally(context.Background(), "election-1")
	if err != nil {
		t.Fatalf("first tally failed: %v", err)
	}
	if !first.Final {
		t.Fatalf("completed election tallies must be final")
	}

	// The ledger rejects post-completion writes, so the cached result
	// must be served even if the store is mutated underneath.
	castVote(t, store, "voter-2", "candidate-b")
	second, err := uc.Tally(context.Background(), "election-1")
	if err != nil {
		t.Fatalf("second tally failed: %v", err)
	}
	if second.Positions[0].Participants != first.Positions[0].Participants {
		t.Fatalf("final tally must be stable, got %d then %d participants",
			first.Positions[0].Participants, second.Positions[0].Participants)
	}
}
