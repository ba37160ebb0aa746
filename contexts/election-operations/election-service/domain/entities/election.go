package entities

import "time"

type OperationalStatus string

const (
	StatusUpcoming  OperationalStatus = "upcoming"
	StatusActive    OperationalStatus = "active"
	StatusCompleted OperationalStatus = "completed"
	StatusCancelled OperationalStatus = "cancelled"
)

type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "pending"
	ApprovalApproved ApprovalStatus = "approved"
	ApprovalRejected ApprovalStatus = "rejected"
)

type Election struct {
	ElectionID      string
	Title           string
	Description     string
	StartTime       time.Time
	EndTime         time.Time
	Status          OperationalStatus
	Approval        ApprovalStatus
	ProposerID      string
	ApproverID      string
	RejectionReason string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Votable reports whether end users may see and vote in the election:
// approved, active, and now inside [StartTime, EndTime).
func (e Election) Votable(now time.Time) bool {
	if e.Approval != ApprovalApproved || e.Status != StatusActive {
		return false
	}
	return !now.Before(e.StartTime) && now.Before(e.EndTime)
}

// IsValidStatus reports whether value is a known operational status.
func IsValidStatus(value OperationalStatus) bool {
	switch value {
	case StatusUpcoming, StatusActive, StatusCompleted, StatusCancelled:
		return true
	default:
		return false
	}
}

type Position struct {
	PositionID    string
	ElectionID    string
	Title         string
	Description   string
	DisplayOrder  int
	MaxSelections int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type Candidate struct {
	CandidateID     string
	PositionID      string
	UserID          string
	ShortBio        string
	CampaignMessage string
	IsActive        bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
