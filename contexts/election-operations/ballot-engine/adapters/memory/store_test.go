package memory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"tallyard/contexts/election-operations/ballot-engine/domain/entities"
	domainerrors "tallyard/contexts/election-operations/ballot-engine/domain/errors"
)

func TestSaveDecisionRaceAdmitsExactlyOne(t *testing.T) {
	store := NewStore()
	castAt := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	const writers = 32
	var wg sync.WaitGroup
	results := make(chan error, writers)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			decision := entities.BallotDecision{
				ElectionID: "election-1",
				PositionID: "position-1",
				VoterID:    "voter-1",
				Kind:       entities.DecisionVote,
				Votes: []entities.Vote{{
					VoteID:      "vote-" + string(rune('a'+n%26)),
					ElectionID:  "election-1",
					PositionID:  "position-1",
					CandidateID: "candidate-1",
					VoterID:     "voter-1",
					CastAt:      castAt,
				}},
				CastAt: castAt,
			}
			if n%2 == 1 {
				abstention := entities.Abstention{
					AbstentionID: "abstain",
					ElectionID:   "election-1",
					PositionID:   "position-1",
					VoterID:      "voter-1",
					CastAt:       castAt,
				}
				decision = entities.BallotDecision{
					ElectionID: "election-1",
					PositionID: "position-1",
					VoterID:    "voter-1",
					Kind:       entities.DecisionAbstain,
					Abstention: &abstention,
					CastAt:     castAt,
				}
			}
			results <- store.SaveDecision(context.Background(), decision)
		}(i)
	}
	wg.Wait()
	close(results)

	wins, losses := 0, 0
	for err := range results {
		switch {
		case err == nil:
			wins++
		case errors.Is(err, domainerrors.ErrAlreadyDecided):
			losses++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if wins != 1 || losses != writers-1 {
		t.Fatalf("expected exactly one winner, got %d wins and %d losses", wins, losses)
	}

	_, found, err := store.GetDecision(context.Background(), "election-1", "position-1", "voter-1")
	if err != nil || !found {
		t.Fatalf("expected one recorded decision, found=%v err=%v", found, err)
	}
}

func TestPurgeElectionDropsLedgerAndProjections(t *testing.T) {
	store := NewStore()
	castAt := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	err := store.SaveDecision(context.Background(), entities.BallotDecision{
		ElectionID: "election-1",
		PositionID: "position-1",
		VoterID:    "voter-1",
		Kind:       entities.DecisionVote,
		Votes: []entities.Vote{{
			VoteID:      "vote-1",
			ElectionID:  "election-1",
			PositionID:  "position-1",
			CandidateID: "candidate-1",
			VoterID:     "voter-1",
			CastAt:      castAt,
		}},
		CastAt: castAt,
	})
	if err != nil {
		t.Fatalf("seed decision failed: %v", err)
	}

	store.PurgeElection("election-1")

	votes, err := store.ListVotesByElection(context.Background(), "election-1")
	if err != nil {
		t.Fatalf("list votes failed: %v", err)
	}
	if len(votes) != 0 {
		t.Fatalf("expected purged ledger, got %d votes", len(votes))
	}
	if _, found, _ := store.GetDecision(context.Background(), "election-1", "position-1", "voter-1"); found {
		t.Fatalf("expected decision purged")
	}
}
