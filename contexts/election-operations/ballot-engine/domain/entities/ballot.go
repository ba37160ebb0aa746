package entities

import "time"

type DecisionKind string

const (
	DecisionVote    DecisionKind = "vote"
	DecisionAbstain DecisionKind = "abstain"
)

// Vote is one (election, position, candidate, voter) row. A voter choosing
// k candidates for a position produces k rows, committed together.
type Vote struct {
	VoteID      string
	ElectionID  string
	PositionID  string
	CandidateID string
	VoterID     string
	CastAt      time.Time
}

// Abstention is the single row recording an explicit "no candidate"
// decision, distinct from the absence of any decision.
type Abstention struct {
	AbstentionID string
	ElectionID   string
	PositionID   string
	VoterID      string
	CastAt       time.Time
}

// BallotDecision is the atomic ledger unit for one (election, position,
// voter) triple: either one-or-more Votes or exactly one Abstention, never
// both, written exactly once and immutable afterwards.
type BallotDecision struct {
	ElectionID string
	PositionID string
	VoterID    string
	Kind       DecisionKind
	Votes      []Vote
	Abstention *Abstention
	CastAt     time.Time
}
