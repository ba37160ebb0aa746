package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ProposeElectionRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
}

type RejectElectionRequest struct {
	Reason string `json:"reason"`
}

type OverrideStatusRequest struct {
	Status string `json:"status"`
}

type AddPositionRequest struct {
	Title         string `json:"title"`
	Description   string `json:"description"`
	DisplayOrder  int    `json:"display_order"`
	MaxSelections int    `json:"max_selections"`
}

type AddCandidateRequest struct {
	UserID          string `json:"user_id"`
	ShortBio        string `json:"short_bio"`
	CampaignMessage string `json:"campaign_message"`
}

type ElectionResponse struct {
	ElectionID      string `json:"election_id"`
	Title           string `json:"title"`
	Description     string `json:"description"`
	StartTime       string `json:"start_time"`
	EndTime         string `json:"end_time"`
	Status          string `json:"status"`
	ApprovalStatus  string `json:"approval_status"`
	ProposerID      string `json:"proposer_id"`
	ApproverID      string `json:"approver_id,omitempty"`
	RejectionReason string `json:"rejection_reason,omitempty"`
}

type PositionResponse struct {
	PositionID    string              `json:"position_id"`
	ElectionID    string              `json:"election_id"`
	Title         string              `json:"title"`
	Description   string              `json:"description"`
	DisplayOrder  int                 `json:"display_order"`
	MaxSelections int                 `json:"max_selections"`
	Candidates    []CandidateResponse `json:"candidates,omitempty"`
}

type CandidateResponse struct {
	CandidateID     string `json:"candidate_id"`
	PositionID      string `json:"position_id"`
	UserID          string `json:"user_id"`
	ShortBio        string `json:"short_bio"`
	CampaignMessage string `json:"campaign_message"`
	IsActive        bool   `json:"is_active"`
}

type ElectionDetailResponse struct {
	Election  ElectionResponse   `json:"election"`
	Positions []PositionResponse `json:"positions"`
}

type ElectionListResponse struct {
	Items    []ElectionResponse `json:"items"`
	Warnings []string           `json:"warnings,omitempty"`
}
