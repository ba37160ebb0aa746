package ports

import (
	"context"
	"time"

	"tallyard/contexts/election-operations/ballot-engine/domain/entities"
)

// BallotRepository is the append-only, deduplicated ballot ledger.
type BallotRepository interface {
	// SaveDecision commits every row of the decision as one atomic unit.
	// The store's uniqueness constraint on (election, position, voter) is
	// the source of truth for deduplication: a constraint violation at
	// commit time surfaces as ErrAlreadyDecided, same as the pre-check.
	SaveDecision(ctx context.Context, decision entities.BallotDecision) error

	// GetDecision reports the recorded decision for a triple, if any.
	GetDecision(ctx context.Context, electionID string, positionID string, voterID string) (entities.BallotDecision, bool, error)

	ListVotesByElection(ctx context.Context, electionID string) ([]entities.Vote, error)
	ListAbstentionsByElection(ctx context.Context, electionID string) ([]entities.Abstention, error)
	ListDecisionsByVoter(ctx context.Context, voterID string) ([]entities.BallotDecision, error)
}

// ElectionProjection is the ballot engine's read model of an election owned
// by the election service.
type ElectionProjection struct {
	ElectionID string
	Title      string
	Status     string
	Approval   string
	StartTime  time.Time
	EndTime    time.Time
}

type PositionProjection struct {
	PositionID    string
	ElectionID    string
	Title         string
	DisplayOrder  int
	MaxSelections int
}

type CandidateProjection struct {
	CandidateID string
	PositionID  string
	UserID      string
	IsActive    bool
}

// ElectionDirectory serves cross-context reads of election structure.
type ElectionDirectory interface {
	GetElection(ctx context.Context, electionID string) (ElectionProjection, error)
	GetPosition(ctx context.Context, positionID string) (PositionProjection, error)
	ListPositions(ctx context.Context, electionID string) ([]PositionProjection, error)
	ListCandidates(ctx context.Context, positionID string) ([]CandidateProjection, error)
}

type AuditEvent struct {
	Actor       string
	Kind        string
	Description string
	OccurredAt  time.Time
}

// AuditSink accepts fire-and-forget audit events; nil sinks and sink
// failures never affect the emitting operation.
type AuditSink interface {
	Record(ctx context.Context, event AuditEvent) error
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
