package commands

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"time"

	application "tallyard/contexts/election-operations/ballot-engine/application"
	"tallyard/contexts/election-operations/ballot-engine/domain/entities"
	domainerrors "tallyard/contexts/election-operations/ballot-engine/domain/errors"
	"tallyard/contexts/election-operations/ballot-engine/ports"
)

// SubmitBallotCommand carries one voter's decision for one position: either
// Abstain, or a non-empty set of candidate IDs.
type SubmitBallotCommand struct {
	ElectionID   string
	PositionID   string
	VoterID      string
	Abstain      bool
	CandidateIDs []string
}

// SubmitUseCase is the vote submission protocol. Preconditions are checked
// in a fixed order, each with its own failure mode, and the commit is a
// single atomic multi-row write. The pre-check for an existing decision is
// advisory only; the ledger's uniqueness constraint decides races, and the
// resulting conflict is reported as ErrAlreadyDecided.
type SubmitUseCase struct {
	Ballots   ports.BallotRepository
	Directory ports.ElectionDirectory
	Audit     ports.AuditSink
	Clock     ports.Clock
	IDGen     ports.IDGenerator
	Logger    *slog.Logger
}

func (uc SubmitUseCase) SubmitBallot(ctx context.Context, cmd SubmitBallotCommand) (entities.BallotDecision, error) {
	logger := application.ResolveLogger(uc.Logger)
	electionID := strings.TrimSpace(cmd.ElectionID)
	positionID := strings.TrimSpace(cmd.PositionID)
	voterID := strings.TrimSpace(cmd.VoterID)
	if electionID == "" || positionID == "" || voterID == "" {
		logger.Warn("ballot submission validation failed",
			"event", "ballot_submit_validation_failed",
			"module", "election-operations/ballot-engine",
			"layer", "application",
			"election_id", electionID,
			"position_id", positionID,
		)
		return entities.BallotDecision{}, domainerrors.ErrInvalidBallotInput
	}

	now := uc.now()

	// Precondition 1: the election is approved, active, and inside its window.
	election, err := uc.Directory.GetElection(ctx, electionID)
	if err != nil {
		return entities.BallotDecision{}, err
	}
	if !isVotable(election, now) {
		return entities.BallotDecision{}, domainerrors.ErrElectionNotVotable
	}

	// Precondition 2: the position belongs to the election.
	position, err := uc.Directory.GetPosition(ctx, positionID)
	if err != nil {
		return entities.BallotDecision{}, err
	}
	if position.ElectionID != electionID {
		return entities.BallotDecision{}, domainerrors.ErrInvalidPosition
	}

	// Precondition 3: no decision recorded yet for this triple.
	if _, found, err := uc.Ballots.GetDecision(ctx, electionID, positionID, voterID); err != nil {
		return entities.BallotDecision{}, err
	} else if found {
		return entities.BallotDecision{}, domainerrors.ErrAlreadyDecided
	}

	var decision entities.BallotDecision
	if cmd.Abstain {
		abstentionID, err := uc.IDGen.NewID(ctx)
		if err != nil {
			return entities.BallotDecision{}, err
		}
		decision = entities.BallotDecision{
			ElectionID: electionID,
			PositionID: positionID,
			VoterID:    voterID,
			Kind:       entities.DecisionAbstain,
			Abstention: &entities.Abstention{
				AbstentionID: abstentionID,
				ElectionID:   electionID,
				PositionID:   positionID,
				VoterID:      voterID,
				CastAt:       now,
			},
			CastAt: now,
		}
	} else {
		// Precondition 4: selections are non-empty, valid, and within the cap.
		selections := normalizeSelections(cmd.CandidateIDs)
		if len(selections) == 0 {
			return entities.BallotDecision{}, domainerrors.ErrEmptySelection
		}
		candidates, err := uc.Directory.ListCandidates(ctx, positionID)
		if err != nil {
			return entities.BallotDecision{}, err
		}
		eligible := make(map[string]bool, len(candidates))
		for _, candidate := range candidates {
			if candidate.IsActive {
				eligible[candidate.CandidateID] = true
			}
		}
		for _, candidateID := range selections {
			if !eligible[candidateID] {
				return entities.BallotDecision{}, domainerrors.ErrInvalidCandidate
			}
		}
		if len(selections) > position.MaxSelections {
			return entities.BallotDecision{}, domainerrors.ErrTooManySelections
		}

		votes := make([]entities.Vote, 0, len(selections))
		for _, candidateID := range selections {
			voteID, err := uc.IDGen.NewID(ctx)
			if err != nil {
				return entities.BallotDecision{}, err
			}
			votes = append(votes, entities.Vote{
				VoteID:      voteID,
				ElectionID:  electionID,
				PositionID:  positionID,
				CandidateID: candidateID,
				VoterID:     voterID,
				CastAt:      now,
			})
		}
		decision = entities.BallotDecision{
			ElectionID: electionID,
			PositionID: positionID,
			VoterID:    voterID,
			Kind:       entities.DecisionVote,
			Votes:      votes,
			CastAt:     now,
		}
	}

	// Commit: all rows or none. A losing race surfaces ErrAlreadyDecided
	// from the store constraint and leaves the ledger unchanged.
	if err := uc.Ballots.SaveDecision(ctx, decision); err != nil {
		return entities.BallotDecision{}, err
	}

	uc.recordAudit(ctx, decision, now)
	logger.Info("ballot decision recorded",
		"event", "ballot_decision_recorded",
		"module", "election-operations/ballot-engine",
		"layer", "application",
		"election_id", electionID,
		"position_id", positionID,
		"kind", string(decision.Kind),
		"selections", len(decision.Votes),
	)
	return decision, nil
}

func (uc SubmitUseCase) now() time.Time {
	now := time.Now().UTC()
	if uc.Clock != nil {
		now = uc.Clock.Now().UTC()
	}
	return now
}

func (uc SubmitUseCase) recordAudit(ctx context.Context, decision entities.BallotDecision, now time.Time) {
	if uc.Audit == nil {
		return
	}
	kind := "vote-cast"
	description := "Cast vote for position " + decision.PositionID + " in election " + decision.ElectionID
	if decision.Kind == entities.DecisionAbstain {
		kind = "abstain-cast"
		description = "Abstained for position " + decision.PositionID + " in election " + decision.ElectionID
	}
	if err := uc.Audit.Record(ctx, ports.AuditEvent{
		Actor:       decision.VoterID,
		Kind:        kind,
		Description: description,
		OccurredAt:  now,
	}); err != nil {
		application.ResolveLogger(uc.Logger).Warn("audit record failed",
			"event", "ballot_audit_record_failed",
			"module", "election-operations/ballot-engine",
			"layer", "application",
			"kind", kind,
			"error", err.Error(),
		)
	}
}

func isVotable(election ports.ElectionProjection, now time.Time) bool {
	if election.Approval != "approved" || election.Status != "active" {
		return false
	}
	return !now.Before(election.StartTime) && now.Before(election.EndTime)
}

// normalizeSelections trims, drops empties, dedupes, and sorts so the same
// set of candidates always produces the same vote rows.
func normalizeSelections(candidateIDs []string) []string {
	seen := make(map[string]bool, len(candidateIDs))
	items := make([]string, 0, len(candidateIDs))
	for _, candidateID := range candidateIDs {
		candidateID = strings.TrimSpace(candidateID)
		if candidateID == "" || seen[candidateID] {
			continue
		}
		seen[candidateID] = true
		items = append(items, candidateID)
	}
	sort.Strings(items)
	return items
}
