package httpadapter

import (
	"context"
	"log/slog"
	"time"

	"tallyard/contexts/election-operations/ballot-engine/application/commands"
	"tallyard/contexts/election-operations/ballot-engine/application/queries"
	"tallyard/contexts/election-operations/ballot-engine/domain/entities"
	httptransport "tallyard/contexts/election-operations/ballot-engine/transport/http"
)

type Handler struct {
	Submissions commands.SubmitUseCase
	Tallies     *queries.TallyUseCase
	Decisions   queries.VoterDecisionsUseCase
	Logger      *slog.Logger
}

func (h Handler) SubmitBallotHandler(
	ctx context.Context,
	voterID string,
	electionID string,
	positionID string,
	req httptransport.SubmitBallotRequest,
) (httptransport.DecisionResponse, error) {
	decision, err := h.Submissions.SubmitBallot(ctx, commands.SubmitBallotCommand{
		ElectionID:   electionID,
		PositionID:   positionID,
		VoterID:      voterID,
		Abstain:      req.Abstain,
		CandidateIDs: req.CandidateIDs,
	})
	if err != nil {
		return httptransport.DecisionResponse{}, err
	}
	return toDecisionResponse(decision), nil
}

func (h Handler) ResultsHandler(ctx context.Context, electionID string) (httptransport.ElectionResultResponse, error) {
	result, err := h.Tallies.Tally(ctx, electionID)
	if err != nil {
		return httptransport.ElectionResultResponse{}, err
	}
	return toResultResponse(result), nil
}

func (h Handler) VoterDecisionsHandler(ctx context.Context, voterID string) (httptransport.DecisionListResponse, error) {
	items, err := h.Decisions.Decisions(ctx, voterID)
	if err != nil {
		return httptransport.DecisionListResponse{}, err
	}
	resp := httptransport.DecisionListResponse{
		Items: make([]httptransport.DecisionResponse, 0, len(items)),
	}
	for _, decision := range items {
		resp.Items = append(resp.Items, toDecisionResponse(decision))
	}
	return resp, nil
}

func toDecisionResponse(decision entities.BallotDecision) httptransport.DecisionResponse {
	resp := httptransport.DecisionResponse{
		ElectionID: decision.ElectionID,
		PositionID: decision.PositionID,
		VoterID:    decision.VoterID,
		Kind:       string(decision.Kind),
		CastAt:     decision.CastAt.UTC().Format(time.RFC3339),
	}
	for _, vote := range decision.Votes {
		resp.Votes = append(resp.Votes, httptransport.VoteResponse{
			VoteID:      vote.VoteID,
			CandidateID: vote.CandidateID,
		})
	}
	return resp
}

func toResultResponse(result entities.ElectionResult) httptransport.ElectionResultResponse {
	resp := httptransport.ElectionResultResponse{
		ElectionID: result.ElectionID,
		Title:      result.Title,
		Status:     result.Status,
		Final:      result.Final,
		Positions:  make([]httptransport.PositionResultResponse, 0, len(result.Positions)),
	}
	for _, position := range result.Positions {
		item := httptransport.PositionResultResponse{
			PositionID:        position.PositionID,
			Title:             position.Title,
			DisplayOrder:      position.DisplayOrder,
			MaxSelections:     position.MaxSelections,
			Candidates:        make([]httptransport.CandidateTallyResponse, 0, len(position.Candidates)),
			AbstainCount:      position.AbstainCount,
			AbstainPercentage: position.AbstainPercentage,
			Participants:      position.Participants,
			NoWinner:          position.NoWinner,
		}
		for _, candidate := range position.Candidates {
			item.Candidates = append(item.Candidates, httptransport.CandidateTallyResponse{
				CandidateID: candidate.CandidateID,
				UserID:      candidate.UserID,
				IsActive:    candidate.IsActive,
				VoteCount:   candidate.VoteCount,
				Percentage:  candidate.Percentage,
				Leading:     candidate.Leading,
			})
		}
		resp.Positions = append(resp.Positions, item)
	}
	return resp
}
