package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type SubmitBallotRequest struct {
	Abstain      bool     `json:"abstain"`
	CandidateIDs []string `json:"candidate_ids,omitempty"`
}

type VoteResponse struct {
	VoteID      string `json:"vote_id"`
	CandidateID string `json:"candidate_id"`
}

type DecisionResponse struct {
	ElectionID string         `json:"election_id"`
	PositionID string         `json:"position_id"`
	VoterID    string         `json:"voter_id"`
	Kind       string         `json:"kind"`
	Votes      []VoteResponse `json:"votes,omitempty"`
	CastAt     string         `json:"cast_at"`
}

type DecisionListResponse struct {
	Items []DecisionResponse `json:"items"`
}

type CandidateTallyResponse struct {
	CandidateID string  `json:"candidate_id"`
	UserID      string  `json:"user_id"`
	IsActive    bool    `json:"is_active"`
	VoteCount   int     `json:"vote_count"`
	Percentage  float64 `json:"percentage"`
	Leading     bool    `json:"leading"`
}

type PositionResultResponse struct {
	PositionID        string                   `json:"position_id"`
	Title             string                   `json:"title"`
	DisplayOrder      int                      `json:"display_order"`
	MaxSelections     int                      `json:"max_selections"`
	Candidates        []CandidateTallyResponse `json:"candidates"`
	AbstainCount      int                      `json:"abstain_count"`
	AbstainPercentage float64                  `json:"abstain_percentage"`
	Participants      int                      `json:"participants"`
	NoWinner          bool                     `json:"no_winner"`
}

type ElectionResultResponse struct {
	ElectionID string                   `json:"election_id"`
	Title      string                   `json:"title"`
	Status     string                   `json:"status"`
	Final      bool                     `json:"final"`
	Positions  []PositionResultResponse `json:"positions"`
	Warnings   []string                 `json:"warnings,omitempty"`
}
