package queries

import (
	"context"
	"testing"
	"time"

	"tallyard/contexts/election-operations/ballot-engine/adapters/memory"
	"tallyard/contexts/election-operations/ballot-engine/domain/entities"
)

func TestVoterDecisionsNewestFirst(t *testing.T) {
	store := memory.NewStore()
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	seed := func(electionID, positionID string, castAt time.Time) {
		err := store.SaveDecision(context.Background(), entities.BallotDecision{
			ElectionID: electionID,
			PositionID: positionID,
			VoterID:    "voter-1",
			Kind:       entities.DecisionVote,
			Votes: []entities.Vote{{
				VoteID:      electionID + "-" + positionID,
				ElectionID:  electionID,
				PositionID:  positionID,
				CandidateID: "candidate-1",
				VoterID:     "voter-1",
				CastAt:      castAt,
			}},
			CastAt: castAt,
		})
		if err != nil {
			t.Fatalf("seed decision failed: %v", err)
		}
	}
	seed("election-1", "position-1", base)
	seed("election-2", "position-1", base.Add(2*time.Hour))
	seed("election-1", "position-2", base.Add(time.Hour))

	uc := VoterDecisionsUseCase{Ballots: store}
	decisions, err := uc.Decisions(context.Background(), "voter-1")
	if err != nil {
		t.Fatalf("list decisions failed: %v", err)
	}
	if len(decisions) != 3 {
		t.Fatalf("expected 3 decisions, got %d", len(decisions))
	}
	if decisions[0].ElectionID != "election-2" {
		t.Fatalf("expected newest decision first, got %s", decisions[0].ElectionID)
	}
	if decisions[2].PositionID != "position-1" || decisions[2].ElectionID != "election-1" {
		t.Fatalf("expected oldest decision last, got %+v", decisions[2])
	}

	other, err := uc.Decisions(context.Background(), "voter-2")
	if err != nil {
		t.Fatalf("list for other voter failed: %v", err)
	}
	if len(other) != 0 {
		t.Fatalf("expected no decisions for other voter, got %d", len(other))
	}
}
