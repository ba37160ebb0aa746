package commands

import (
	"context"
	"strings"

	application "tallyard/contexts/election-operations/election-service/application"
	"tallyard/contexts/election-operations/election-service/domain/entities"
	domainerrors "tallyard/contexts/election-operations/election-service/domain/errors"
	"tallyard/contexts/election-operations/election-service/ports"
)

type AddPositionCommand struct {
	AdminID       string
	ElectionID    string
	Title         string
	Description   string
	DisplayOrder  int
	MaxSelections int
}

type AddCandidateCommand struct {
	AdminID         string
	PositionID      string
	UserID          string
	ShortBio        string
	CampaignMessage string
}

// AddPosition attaches a ballot position to an existing election.
func (uc ElectionUseCase) AddPosition(ctx context.Context, cmd AddPositionCommand) (entities.Position, error) {
	electionID := strings.TrimSpace(cmd.ElectionID)
	title := strings.TrimSpace(cmd.Title)
	if strings.TrimSpace(cmd.AdminID) == "" || electionID == "" || title == "" || cmd.MaxSelections < 1 {
		return entities.Position{}, domainerrors.ErrInvalidPositionInput
	}

	if _, err := uc.Elections.GetElection(ctx, electionID); err != nil {
		return entities.Position{}, err
	}

	positionID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return entities.Position{}, err
	}
	now := uc.now()
	position := entities.Position{
		PositionID:    positionID,
		ElectionID:    electionID,
		Title:         title,
		Description:   strings.TrimSpace(cmd.Description),
		DisplayOrder:  cmd.DisplayOrder,
		MaxSelections: cmd.MaxSelections,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.Elections.SavePosition(ctx, position); err != nil {
		return entities.Position{}, err
	}
	return position, nil
}

// AddCandidate registers a user as a candidate for a position. The store's
// (position_id, user_id) constraint backs the duplicate check.
func (uc ElectionUseCase) AddCandidate(ctx context.Context, cmd AddCandidateCommand) (entities.Candidate, error) {
	positionID := strings.TrimSpace(cmd.PositionID)
	userID := strings.TrimSpace(cmd.UserID)
	if strings.TrimSpace(cmd.AdminID) == "" || positionID == "" || userID == "" {
		return entities.Candidate{}, domainerrors.ErrInvalidCandidateInput
	}

	if _, err := uc.Elections.GetPosition(ctx, positionID); err != nil {
		return entities.Candidate{}, err
	}

	candidateID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return entities.Candidate{}, err
	}
	now := uc.now()
	candidate := entities.Candidate{
		CandidateID:     candidateID,
		PositionID:      positionID,
		UserID:          userID,
		ShortBio:        strings.TrimSpace(cmd.ShortBio),
		CampaignMessage: strings.TrimSpace(cmd.CampaignMessage),
		IsActive:        true,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := uc.Elections.SaveCandidate(ctx, candidate); err != nil {
		return entities.Candidate{}, err
	}
	return candidate, nil
}

// OverrideStatus is the explicit administrative status write. It is the only
// path that may move an election backwards.
func (uc ElectionUseCase) OverrideStatus(ctx context.Context, adminID string, electionID string, status entities.OperationalStatus) (entities.Election, error) {
	adminID = strings.TrimSpace(adminID)
	electionID = strings.TrimSpace(electionID)
	if adminID == "" || electionID == "" {
		return entities.Election{}, domainerrors.ErrInvalidElectionInput
	}
	if !entities.IsValidStatus(status) {
		return entities.Election{}, domainerrors.ErrInvalidStatus
	}

	election, err := uc.Elections.GetElection(ctx, electionID)
	if err != nil {
		return entities.Election{}, err
	}
	now := uc.now()
	election.Status = status
	election.UpdatedAt = now
	if err := uc.Elections.UpdateElection(ctx, election); err != nil {
		return entities.Election{}, err
	}

	uc.recordAudit(ctx, ports.AuditEvent{
		Actor:       adminID,
		Kind:        "election-status-overridden",
		Description: "Set election " + electionID + " status to " + string(status),
		OccurredAt:  now,
	})
	return election, nil
}

// CancelElection cancels an election administratively.
func (uc ElectionUseCase) CancelElection(ctx context.Context, adminID string, electionID string) (entities.Election, error) {
	return uc.OverrideStatus(ctx, adminID, electionID, entities.StatusCancelled)
}

// DeleteElection removes the election and everything it owns. The repository
// deletes dependents in order (ballots, candidates, positions, election)
// inside one transaction so no orphaned rows survive a failure.
func (uc ElectionUseCase) DeleteElection(ctx context.Context, adminID string, electionID string) error {
	logger := application.ResolveLogger(uc.Logger)
	adminID = strings.TrimSpace(adminID)
	electionID = strings.TrimSpace(electionID)
	if adminID == "" || electionID == "" {
		return domainerrors.ErrInvalidElectionInput
	}

	election, err := uc.Elections.GetElection(ctx, electionID)
	if err != nil {
		return err
	}
	if err := uc.Elections.DeleteElectionCascade(ctx, electionID); err != nil {
		return err
	}

	now := uc.now()
	uc.recordAudit(ctx, ports.AuditEvent{
		Actor:       adminID,
		Kind:        "election-deleted",
		Description: "Deleted election: " + election.Title,
		OccurredAt:  now,
	})
	logger.Info("election deleted",
		"event", "election_deleted",
		"module", "election-operations/election-service",
		"layer", "application",
		"election_id", electionID,
		"admin_id", adminID,
	)
	return nil
}
