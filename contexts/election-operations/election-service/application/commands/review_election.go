package commands

import (
	"context"
	"strings"

	application "tallyard/contexts/election-operations/election-service/application"
	"tallyard/contexts/election-operations/election-service/domain/entities"
	domainerrors "tallyard/contexts/election-operations/election-service/domain/errors"
	"tallyard/contexts/election-operations/election-service/ports"
)

// ApproveElection moves a pending proposal to approved and records the
// reviewing administrator. Lifecycle rules take over from there.
func (uc ElectionUseCase) ApproveElection(ctx context.Context, adminID string, electionID string) (entities.Election, error) {
	logger := application.ResolveLogger(uc.Logger)
	adminID = strings.TrimSpace(adminID)
	electionID = strings.TrimSpace(electionID)
	if adminID == "" || electionID == "" {
		return entities.Election{}, domainerrors.ErrInvalidElectionInput
	}

	election, err := uc.Elections.GetElection(ctx, electionID)
	if err != nil {
		return entities.Election{}, err
	}
	if election.Approval != entities.ApprovalPending {
		return entities.Election{}, domainerrors.ErrElectionNotPending
	}

	now := uc.now()
	election.Approval = entities.ApprovalApproved
	election.ApproverID = adminID
	election.UpdatedAt = now
	if err := uc.Elections.UpdateElection(ctx, election); err != nil {
		return entities.Election{}, err
	}

	uc.recordAudit(ctx, ports.AuditEvent{
		Actor:       adminID,
		Kind:        "election-approved",
		Description: "Approved election: " + election.Title,
		OccurredAt:  now,
	})
	logger.Info("election approved",
		"event", "election_approved",
		"module", "election-operations/election-service",
		"layer", "application",
		"election_id", electionID,
		"admin_id", adminID,
	)
	return election, nil
}

// RejectElection rejects a pending proposal with a mandatory reason and
// cancels it so it never enters the lifecycle.
func (uc ElectionUseCase) RejectElection(ctx context.Context, adminID string, electionID string, reason string) (entities.Election, error) {
	logger := application.ResolveLogger(uc.Logger)
	adminID = strings.TrimSpace(adminID)
	electionID = strings.TrimSpace(electionID)
	reason = strings.TrimSpace(reason)
	if adminID == "" || electionID == "" {
		return entities.Election{}, domainerrors.ErrInvalidElectionInput
	}
	if reason == "" {
		return entities.Election{}, domainerrors.ErrRejectionReasonRequired
	}

	election, err := uc.Elections.GetElection(ctx, electionID)
	if err != nil {
		return entities.Election{}, err
	}
	if election.Approval != entities.ApprovalPending {
		return entities.Election{}, domainerrors.ErrElectionNotPending
	}

	now := uc.now()
	election.Approval = entities.ApprovalRejected
	election.Status = entities.StatusCancelled
	election.ApproverID = adminID
	election.RejectionReason = reason
	election.UpdatedAt = now
	if err := uc.Elections.UpdateElection(ctx, election); err != nil {
		return entities.Election{}, err
	}

	uc.recordAudit(ctx, ports.AuditEvent{
		Actor:       adminID,
		Kind:        "election-rejected",
		Description: "Rejected election: " + election.Title + " - Reason: " + reason,
		OccurredAt:  now,
	})
	logger.Info("election rejected",
		"event", "election_rejected",
		"module", "election-operations/election-service",
		"layer", "application",
		"election_id", electionID,
		"admin_id", adminID,
	)
	return election, nil
}
