package httpadapter

import (
	"context"
	"log/slog"
	"time"

	"tallyard/contexts/election-operations/election-service/application/commands"
	"tallyard/contexts/election-operations/election-service/application/queries"
	"tallyard/contexts/election-operations/election-service/domain/entities"
	domainerrors "tallyard/contexts/election-operations/election-service/domain/errors"
	httptransport "tallyard/contexts/election-operations/election-service/transport/http"
)

type Handler struct {
	Elections commands.ElectionUseCase
	Lists     queries.ListUseCase
	Logger    *slog.Logger
}

// RefreshStatusesHandler exposes the lifecycle refresh to the HTTP layer,
// which runs it before status-dependent reads.
func (h Handler) RefreshStatusesHandler(ctx context.Context) error {
	return h.Elections.RefreshStatuses(ctx)
}

func (h Handler) ProposeElectionHandler(
	ctx context.Context,
	proposerID string,
	req httptransport.ProposeElectionRequest,
) (httptransport.ElectionResponse, error) {
	start, err := parseTime(req.StartTime)
	if err != nil {
		return httptransport.ElectionResponse{}, domainerrors.ErrInvalidElectionInput
	}
	end, err := parseTime(req.EndTime)
	if err != nil {
		return httptransport.ElectionResponse{}, domainerrors.ErrInvalidElectionInput
	}

	election, err := h.Elections.ProposeElection(ctx, commands.ProposeElectionCommand{
		ProposerID:  proposerID,
		Title:       req.Title,
		Description: req.Description,
		StartTime:   start,
		EndTime:     end,
	})
	if err != nil {
		return httptransport.ElectionResponse{}, err
	}
	return toElectionResponse(election), nil
}

func (h Handler) ApproveElectionHandler(ctx context.Context, adminID string, electionID string) (httptransport.ElectionResponse, error) {
	election, err := h.Elections.ApproveElection(ctx, adminID, electionID)
	if err != nil {
		return httptransport.ElectionResponse{}, err
	}
	return toElectionResponse(election), nil
}

func (h Handler) RejectElectionHandler(
	ctx context.Context,
	adminID string,
	electionID string,
	req httptransport.RejectElectionRequest,
) (httptransport.ElectionResponse, error) {
	election, err := h.Elections.RejectElection(ctx, adminID, electionID, req.Reason)
	if err != nil {
		return httptransport.ElectionResponse{}, err
	}
	return toElectionResponse(election), nil
}

func (h Handler) OverrideStatusHandler(
	ctx context.Context,
	adminID string,
	electionID string,
	req httptransport.OverrideStatusRequest,
) (httptransport.ElectionResponse, error) {
	election, err := h.Elections.OverrideStatus(ctx, adminID, electionID, entities.OperationalStatus(req.Status))
	if err != nil {
		return httptransport.ElectionResponse{}, err
	}
	return toElectionResponse(election), nil
}

func (h Handler) DeleteElectionHandler(ctx context.Context, adminID string, electionID string) error {
	return h.Elections.DeleteElection(ctx, adminID, electionID)
}

func (h Handler) AddPositionHandler(
	ctx context.Context,
	adminID string,
	electionID string,
	req httptransport.AddPositionRequest,
) (httptransport.PositionResponse, error) {
	position, err := h.Elections.AddPosition(ctx, commands.AddPositionCommand{
		AdminID:       adminID,
		ElectionID:    electionID,
		Title:         req.Title,
		Description:   req.Description,
		DisplayOrder:  req.DisplayOrder,
		MaxSelections: req.MaxSelections,
	})
	if err != nil {
		return httptransport.PositionResponse{}, err
	}
	return toPositionResponse(position, nil), nil
}

func (h Handler) AddCandidateHandler(
	ctx context.Context,
	adminID string,
	positionID string,
	req httptransport.AddCandidateRequest,
) (httptransport.CandidateResponse, error) {
	candidate, err := h.Elections.AddCandidate(ctx, commands.AddCandidateCommand{
		AdminID:         adminID,
		PositionID:      positionID,
		UserID:          req.UserID,
		ShortBio:        req.ShortBio,
		CampaignMessage: req.CampaignMessage,
	})
	if err != nil {
		return httptransport.CandidateResponse{}, err
	}
	return toCandidateResponse(candidate), nil
}

func (h Handler) GetElectionHandler(ctx context.Context, electionID string) (httptransport.ElectionDetailResponse, error) {
	detail, err := h.Lists.GetElection(ctx, electionID)
	if err != nil {
		return httptransport.ElectionDetailResponse{}, err
	}
	resp := httptransport.ElectionDetailResponse{
		Election:  toElectionResponse(detail.Election),
		Positions: make([]httptransport.PositionResponse, 0, len(detail.Positions)),
	}
	for _, position := range detail.Positions {
		resp.Positions = append(resp.Positions, toPositionResponse(position.Position, position.Candidates))
	}
	return resp, nil
}

func (h Handler) ListActiveHandler(ctx context.Context) (httptransport.ElectionListResponse, error) {
	items, err := h.Lists.ActiveElections(ctx)
	if err != nil {
		return httptransport.ElectionListResponse{}, err
	}
	return toListResponse(items), nil
}

func (h Handler) ListUpcomingHandler(ctx context.Context) (httptransport.ElectionListResponse, error) {
	items, err := h.Lists.UpcomingElections(ctx)
	if err != nil {
		return httptransport.ElectionListResponse{}, err
	}
	return toListResponse(items), nil
}

func (h Handler) ListCompletedHandler(ctx context.Context) (httptransport.ElectionListResponse, error) {
	items, err := h.Lists.CompletedElections(ctx)
	if err != nil {
		return httptransport.ElectionListResponse{}, err
	}
	return toListResponse(items), nil
}

func (h Handler) ListPendingReviewHandler(ctx context.Context) (httptransport.ElectionListResponse, error) {
	items, err := h.Lists.PendingReview(ctx)
	if err != nil {
		return httptransport.ElectionListResponse{}, err
	}
	return toListResponse(items), nil
}

func (h Handler) ListProposedByHandler(ctx context.Context, proposerID string) (httptransport.ElectionListResponse, error) {
	items, err := h.Lists.ProposedBy(ctx, proposerID)
	if err != nil {
		return httptransport.ElectionListResponse{}, err
	}
	return toListResponse(items), nil
}

func toElectionResponse(election entities.Election) httptransport.ElectionResponse {
	return httptransport.ElectionResponse{
		ElectionID:      election.ElectionID,
		Title:           election.Title,
		Description:     election.Description,
		StartTime:       election.StartTime.UTC().Format(time.RFC3339),
		EndTime:         election.EndTime.UTC().Format(time.RFC3339),
		Status:          string(election.Status),
		ApprovalStatus:  string(election.Approval),
		ProposerID:      election.ProposerID,
		ApproverID:      election.ApproverID,
		RejectionReason: election.RejectionReason,
	}
}

func toPositionResponse(position entities.Position, candidates []entities.Candidate) httptransport.PositionResponse {
	resp := httptransport.PositionResponse{
		PositionID:    position.PositionID,
		ElectionID:    position.ElectionID,
		Title:         position.Title,
		Description:   position.Description,
		DisplayOrder:  position.DisplayOrder,
		MaxSelections: position.MaxSelections,
	}
	for _, candidate := range candidates {
		resp.Candidates = append(resp.Candidates, toCandidateResponse(candidate))
	}
	return resp
}

func toCandidateResponse(candidate entities.Candidate) httptransport.CandidateResponse {
	return httptransport.CandidateResponse{
		CandidateID:     candidate.CandidateID,
		PositionID:      candidate.PositionID,
		UserID:          candidate.UserID,
		ShortBio:        candidate.ShortBio,
		CampaignMessage: candidate.CampaignMessage,
		IsActive:        candidate.IsActive,
	}
}

func toListResponse(items []entities.Election) httptransport.ElectionListResponse {
	resp := httptransport.ElectionListResponse{
		Items: make([]httptransport.ElectionResponse, 0, len(items)),
	}
	for _, election := range items {
		resp.Items = append(resp.Items, toElectionResponse(election))
	}
	return resp
}

func parseTime(value string) (time.Time, error) {
	return time.Parse(time.RFC3339, value)
}
