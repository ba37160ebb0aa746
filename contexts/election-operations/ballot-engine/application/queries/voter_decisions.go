package queries

import (
	"context"
	"sort"
	"strings"

	"tallyard/contexts/election-operations/ballot-engine/domain/entities"
	"tallyard/contexts/election-operations/ballot-engine/ports"
)

// VoterDecisionsUseCase lists a voter's recorded decisions across elections.
type VoterDecisionsUseCase struct {
	Ballots ports.BallotRepository
}

// Decisions returns the voter's ledger entries, newest first.
func (uc VoterDecisionsUseCase) Decisions(ctx context.Context, voterID string) ([]entities.BallotDecision, error) {
	decisions, err := uc.Ballots.ListDecisionsByVoter(ctx, strings.TrimSpace(voterID))
	if err != nil {
		return nil, err
	}
	sort.Slice(decisions, func(i, j int) bool {
		if decisions[i].CastAt.Equal(decisions[j].CastAt) {
			if decisions[i].ElectionID == decisions[j].ElectionID {
				return decisions[i].PositionID < decisions[j].PositionID
			}
			return decisions[i].ElectionID < decisions[j].ElectionID
		}
		return decisions[i].CastAt.After(decisions[j].CastAt)
	})
	return decisions, nil
}
