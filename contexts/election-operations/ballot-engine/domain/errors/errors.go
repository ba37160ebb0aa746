package errors

import "errors"

var (
	ErrInvalidBallotInput = errors.New("invalid ballot input")
	ErrElectionNotVotable = errors.New("election is not open for voting")
	ErrInvalidPosition    = errors.New("position does not belong to the election")
	ErrAlreadyDecided     = errors.New("a decision has already been recorded for this position")
	ErrEmptySelection     = errors.New("candidate selection is empty")
	ErrInvalidCandidate   = errors.New("candidate does not belong to the position or is inactive")
	ErrTooManySelections  = errors.New("selection exceeds the position's maximum")
	ErrElectionNotFound   = errors.New("election not found")
	ErrPositionNotFound   = errors.New("position not found")
	ErrResultsNotVisible  = errors.New("results are not visible for this election")
)
