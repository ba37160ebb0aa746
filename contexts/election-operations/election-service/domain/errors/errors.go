package errors

import "errors"

var (
	ErrInvalidElectionInput    = errors.New("invalid election input")
	ErrEndBeforeStart          = errors.New("end time must be after start time")
	ErrStartInPast             = errors.New("start time cannot be in the past")
	ErrElectionNotFound        = errors.New("election not found")
	ErrElectionNotPending      = errors.New("election is not pending review")
	ErrRejectionReasonRequired = errors.New("rejection reason is required")
	ErrInvalidStatus           = errors.New("invalid operational status")
	ErrInvalidPositionInput    = errors.New("invalid position input")
	ErrPositionNotFound        = errors.New("position not found")
	ErrInvalidCandidateInput   = errors.New("invalid candidate input")
	ErrDuplicateCandidate      = errors.New("user is already a candidate for this position")
)
