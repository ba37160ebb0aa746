package commands

import (
	"context"
	"log/slog"
	"strings"
	"time"

	application "tallyard/contexts/election-operations/election-service/application"
	"tallyard/contexts/election-operations/election-service/domain/entities"
	domainerrors "tallyard/contexts/election-operations/election-service/domain/errors"
	"tallyard/contexts/election-operations/election-service/ports"
)

// ProposeElectionCommand is the write-model input for an election proposal.
// Any authenticated user may propose; the election stays invisible until an
// administrator approves it.
type ProposeElectionCommand struct {
	ProposerID  string
	Title       string
	Description string
	StartTime   time.Time
	EndTime     time.Time
}

// ElectionUseCase orchestrates election writes: proposals, administrative
// review, position/candidate setup, status overrides, and cascade deletion.
type ElectionUseCase struct {
	Elections ports.ElectionRepository
	Audit     ports.AuditSink
	Clock     ports.Clock
	IDGen     ports.IDGenerator
	Logger    *slog.Logger
}

// ProposeElection records a new election in (upcoming, pending).
func (uc ElectionUseCase) ProposeElection(ctx context.Context, cmd ProposeElectionCommand) (entities.Election, error) {
	logger := application.ResolveLogger(uc.Logger)
	proposerID := strings.TrimSpace(cmd.ProposerID)
	title := strings.TrimSpace(cmd.Title)

	if proposerID == "" || title == "" || cmd.StartTime.IsZero() || cmd.EndTime.IsZero() {
		logger.Warn("election proposal validation failed",
			"event", "election_propose_validation_failed",
			"module", "election-operations/election-service",
			"layer", "application",
			"proposer_id", proposerID,
		)
		return entities.Election{}, domainerrors.ErrInvalidElectionInput
	}

	now := uc.now()
	if !cmd.EndTime.After(cmd.StartTime) {
		return entities.Election{}, domainerrors.ErrEndBeforeStart
	}
	if cmd.StartTime.Before(now) {
		return entities.Election{}, domainerrors.ErrStartInPast
	}

	electionID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return entities.Election{}, err
	}
	election := entities.Election{
		ElectionID:  electionID,
		Title:       title,
		Description: strings.TrimSpace(cmd.Description),
		StartTime:   cmd.StartTime.UTC(),
		EndTime:     cmd.EndTime.UTC(),
		Status:      entities.StatusUpcoming,
		Approval:    entities.ApprovalPending,
		ProposerID:  proposerID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.Elections.SaveElection(ctx, election); err != nil {
		return entities.Election{}, err
	}

	uc.recordAudit(ctx, ports.AuditEvent{
		Actor:       proposerID,
		Kind:        "election-proposed",
		Description: "Proposed election: " + title,
		OccurredAt:  now,
	})
	logger.Info("election proposed",
		"event", "election_proposed",
		"module", "election-operations/election-service",
		"layer", "application",
		"election_id", election.ElectionID,
		"proposer_id", proposerID,
	)
	return election, nil
}

func (uc ElectionUseCase) now() time.Time {
	now := time.Now().UTC()
	if uc.Clock != nil {
		now = uc.Clock.Now().UTC()
	}
	return now
}

// recordAudit is fire-and-forget: sink failures are logged, never returned.
func (uc ElectionUseCase) recordAudit(ctx context.Context, event ports.AuditEvent) {
	if uc.Audit == nil {
		return
	}
	if err := uc.Audit.Record(ctx, event); err != nil {
		application.ResolveLogger(uc.Logger).Warn("audit record failed",
			"event", "election_audit_record_failed",
			"module", "election-operations/election-service",
			"layer", "application",
			"kind", event.Kind,
			"error", err.Error(),
		)
	}
}
