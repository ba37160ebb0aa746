package queries

import (
	"context"
	"math"
	"sort"
	"strings"
	"sync"

	"tallyard/contexts/election-operations/ballot-engine/domain/entities"
	domainerrors "tallyard/contexts/election-operations/ballot-engine/domain/errors"
	"tallyard/contexts/election-operations/ballot-engine/ports"
)

// TallyUseCase aggregates the ballot ledger into per-position results.
//
// Active elections are tallied live on every call; ballots are immutable
// once written, so a snapshot is always internally consistent. Completed
// elections produce the identical computation but the result is cached:
// the submission protocol rejects writes once an election completes, so a
// final tally can never go stale.
type TallyUseCase struct {
	Ballots   ports.BallotRepository
	Directory ports.ElectionDirectory

	mu     sync.Mutex
	finals map[string]entities.ElectionResult
}

func NewTallyUseCase(ballots ports.BallotRepository, directory ports.ElectionDirectory) *TallyUseCase {
	return &TallyUseCase{
		Ballots:   ballots,
		Directory: directory,
		finals:    make(map[string]entities.ElectionResult),
	}
}

// Tally computes the result view for an approved active or completed
// election, positions ordered by display order.
func (uc *TallyUseCase) Tally(ctx context.Context, electionID string) (entities.ElectionResult, error) {
	electionID = strings.TrimSpace(electionID)
	election, err := uc.Directory.GetElection(ctx, electionID)
	if err != nil {
		return entities.ElectionResult{}, err
	}
	if election.Approval != "approved" {
		return entities.ElectionResult{}, domainerrors.ErrResultsNotVisible
	}

	switch election.Status {
	case "active":
		return uc.compute(ctx, election, false)
	case "completed":
		uc.mu.Lock()
		cached, ok := uc.finals[electionID]
		uc.mu.Unlock()
		if ok {
			return cached, nil
		}
		result, err := uc.compute(ctx, election, true)
		if err != nil {
			return entities.ElectionResult{}, err
		}
		uc.mu.Lock()
		uc.finals[electionID] = result
		uc.mu.Unlock()
		return result, nil
	default:
		return entities.ElectionResult{}, domainerrors.ErrResultsNotVisible
	}
}

func (uc *TallyUseCase) compute(ctx context.Context, election ports.ElectionProjection, final bool) (entities.ElectionResult, error) {
	positions, err := uc.Directory.ListPositions(ctx, election.ElectionID)
	if err != nil {
		return entities.ElectionResult{}, err
	}
	sort.Slice(positions, func(i, j int) bool {
		if positions[i].DisplayOrder == positions[j].DisplayOrder {
			return positions[i].PositionID < positions[j].PositionID
		}
		return positions[i].DisplayOrder < positions[j].DisplayOrder
	})

	votes, err := uc.Ballots.ListVotesByElection(ctx, election.ElectionID)
	if err != nil {
		return entities.ElectionResult{}, err
	}
	abstentions, err := uc.Ballots.ListAbstentionsByElection(ctx, election.ElectionID)
	if err != nil {
		return entities.ElectionResult{}, err
	}

	votesByPosition := make(map[string][]entities.Vote)
	for _, vote := range votes {
		votesByPosition[vote.PositionID] = append(votesByPosition[vote.PositionID], vote)
	}
	abstainByPosition := make(map[string]int)
	for _, abstention := range abstentions {
		abstainByPosition[abstention.PositionID]++
	}

	result := entities.ElectionResult{
		ElectionID: election.ElectionID,
		Title:      election.Title,
		Status:     election.Status,
		Final:      final,
		Positions:  make([]entities.PositionResult, 0, len(positions)),
	}
	for _, position := range positions {
		candidates, err := uc.Directory.ListCandidates(ctx, position.PositionID)
		if err != nil {
			return entities.ElectionResult{}, err
		}
		result.Positions = append(result.Positions, tallyPosition(
			position,
			candidates,
			votesByPosition[position.PositionID],
			abstainByPosition[position.PositionID],
		))
	}
	return result, nil
}

func tallyPosition(
	position ports.PositionProjection,
	candidates []ports.CandidateProjection,
	votes []entities.Vote,
	abstainCount int,
) entities.PositionResult {
	counts := make(map[string]int, len(candidates))
	votingVoters := make(map[string]bool)
	for _, vote := range votes {
		counts[vote.CandidateID]++
		votingVoters[vote.VoterID] = true
	}

	// Denominator counts participating voters, not vote rows: a voter
	// selecting several candidates under multi-select is one participant.
	participants := len(votingVoters) + abstainCount

	standings := make([]entities.CandidateTally, 0, len(candidates))
	maxVotes := 0
	for _, candidate := range candidates {
		count := counts[candidate.CandidateID]
		if count > maxVotes {
			maxVotes = count
		}
		standings = append(standings, entities.CandidateTally{
			CandidateID: candidate.CandidateID,
			UserID:      candidate.UserID,
			IsActive:    candidate.IsActive,
			VoteCount:   count,
		})
	}
	sort.Slice(standings, func(i, j int) bool {
		if standings[i].VoteCount == standings[j].VoteCount {
			return standings[i].CandidateID < standings[j].CandidateID
		}
		return standings[i].VoteCount > standings[j].VoteCount
	})
	for i := range standings {
		standings[i].Percentage = percentage(standings[i].VoteCount, participants)
		standings[i].Leading = standings[i].VoteCount > 0 && standings[i].VoteCount == maxVotes
	}

	return entities.PositionResult{
		PositionID:        position.PositionID,
		Title:             position.Title,
		DisplayOrder:      position.DisplayOrder,
		MaxSelections:     position.MaxSelections,
		Candidates:        standings,
		AbstainCount:      abstainCount,
		AbstainPercentage: percentage(abstainCount, participants),
		Participants:      participants,
		NoWinner:          abstainCount*2 > participants,
	}
}

// percentage rounds to one decimal and is 0 when the denominator is 0.
func percentage(count int, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(count)/float64(total)*1000) / 10
}
