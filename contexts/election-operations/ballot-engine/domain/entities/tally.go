package entities

// CandidateTally is one candidate's standing within a position result.
type CandidateTally struct {
	CandidateID string
	UserID      string
	IsActive    bool
	VoteCount   int
	Percentage  float64
	Leading     bool
}

// PositionResult aggregates the ledger for one position. Candidates are
// ranked by vote count descending, ties broken by candidate ID ascending.
// NoWinner is set when abstaining voters form a strict majority of all
// participants, independent of candidate standings.
type PositionResult struct {
	PositionID        string
	Title             string
	DisplayOrder      int
	MaxSelections     int
	Candidates        []CandidateTally
	AbstainCount      int
	AbstainPercentage float64
	Participants      int
	NoWinner          bool
}

// ElectionResult is the full tally view for an election. Final marks a
// completed election whose ledger is closed to new writes.
type ElectionResult struct {
	ElectionID string
	Title      string
	Status     string
	Final      bool
	Positions  []PositionResult
}
