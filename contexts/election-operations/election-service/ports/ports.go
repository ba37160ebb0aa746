package ports

import (
	"context"
	"time"

	"tallyard/contexts/election-operations/election-service/domain/entities"
)

type ElectionRepository interface {
	SaveElection(ctx context.Context, election entities.Election) error
	GetElection(ctx context.Context, electionID string) (entities.Election, error)
	UpdateElection(ctx context.Context, election entities.Election) error
	ListActive(ctx context.Context, now time.Time) ([]entities.Election, error)
	ListUpcoming(ctx context.Context, now time.Time) ([]entities.Election, error)
	ListCompleted(ctx context.Context) ([]entities.Election, error)
	ListPendingReview(ctx context.Context) ([]entities.Election, error)
	ListProposedBy(ctx context.Context, proposerID string) ([]entities.Election, error)

	// ActivateDue and CompleteDue are set-based monotonic status updates.
	// Both return the number of elections transitioned.
	ActivateDue(ctx context.Context, now time.Time) (int64, error)
	CompleteDue(ctx context.Context, now time.Time) (int64, error)

	// DeleteElectionCascade removes the election and its positions,
	// candidates, votes, and abstentions as one atomic unit.
	DeleteElectionCascade(ctx context.Context, electionID string) error

	SavePosition(ctx context.Context, position entities.Position) error
	GetPosition(ctx context.Context, positionID string) (entities.Position, error)
	ListPositions(ctx context.Context, electionID string) ([]entities.Position, error)

	// SaveCandidate fails with ErrDuplicateCandidate when the user already
	// stands for the position; the store constraint is the source of truth.
	SaveCandidate(ctx context.Context, candidate entities.Candidate) error
	ListCandidates(ctx context.Context, positionID string) ([]entities.Candidate, error)
}

type AuditEvent struct {
	Actor       string
	Kind        string
	Description string
	OccurredAt  time.Time
}

// AuditSink accepts fire-and-forget audit events. A nil sink is a no-op and
// a failing sink never blocks the operation that emitted the event.
type AuditSink interface {
	Record(ctx context.Context, event AuditEvent) error
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
