package queries

import (
	"context"
	"sort"
	"strings"
	"time"

	"tallyard/contexts/election-operations/election-service/domain/entities"
	"tallyard/contexts/election-operations/election-service/ports"
)

// ElectionDetail is an election with its full ballot structure attached.
type ElectionDetail struct {
	Election  entities.Election
	Positions []PositionDetail
}

type PositionDetail struct {
	Position   entities.Position
	Candidates []entities.Candidate
}

// ListUseCase serves read views over the election record store. Callers are
// expected to run RefreshStatuses first; these queries trust stored status.
type ListUseCase struct {
	Elections ports.ElectionRepository
	Clock     ports.Clock
}

func (uc ListUseCase) ActiveElections(ctx context.Context) ([]entities.Election, error) {
	return uc.Elections.ListActive(ctx, uc.now())
}

func (uc ListUseCase) UpcomingElections(ctx context.Context) ([]entities.Election, error) {
	return uc.Elections.ListUpcoming(ctx, uc.now())
}

func (uc ListUseCase) CompletedElections(ctx context.Context) ([]entities.Election, error) {
	return uc.Elections.ListCompleted(ctx)
}

func (uc ListUseCase) PendingReview(ctx context.Context) ([]entities.Election, error) {
	return uc.Elections.ListPendingReview(ctx)
}

func (uc ListUseCase) ProposedBy(ctx context.Context, proposerID string) ([]entities.Election, error) {
	return uc.Elections.ListProposedBy(ctx, strings.TrimSpace(proposerID))
}

// GetElection returns the election with positions in display order and each
// position's candidates.
func (uc ListUseCase) GetElection(ctx context.Context, electionID string) (ElectionDetail, error) {
	election, err := uc.Elections.GetElection(ctx, strings.TrimSpace(electionID))
	if err != nil {
		return ElectionDetail{}, err
	}
	positions, err := uc.Elections.ListPositions(ctx, election.ElectionID)
	if err != nil {
		return ElectionDetail{}, err
	}
	sort.Slice(positions, func(i, j int) bool {
		if positions[i].DisplayOrder == positions[j].DisplayOrder {
			return positions[i].PositionID < positions[j].PositionID
		}
		return positions[i].DisplayOrder < positions[j].DisplayOrder
	})

	detail := ElectionDetail{
		Election:  election,
		Positions: make([]PositionDetail, 0, len(positions)),
	}
	for _, position := range positions {
		candidates, err := uc.Elections.ListCandidates(ctx, position.PositionID)
		if err != nil {
			return ElectionDetail{}, err
		}
		detail.Positions = append(detail.Positions, PositionDetail{
			Position:   position,
			Candidates: candidates,
		})
	}
	return detail, nil
}

func (uc ListUseCase) now() time.Time {
	if uc.Clock != nil {
		return uc.Clock.Now().UTC()
	}
	return time.Now().UTC()
}
