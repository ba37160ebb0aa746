package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	balloterrors "tallyard/contexts/election-operations/ballot-engine/domain/errors"
	ballothttp "tallyard/contexts/election-operations/ballot-engine/transport/http"
)

func (s *Server) handleSubmitBallot(w http.ResponseWriter, r *http.Request) {
	voterID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req ballothttp.SubmitBallotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid_json", "request body must be valid JSON"))
		return
	}

	if warnings := s.refreshStatuses(r.Context()); len(warnings) > 0 {
		w.Header().Set("X-Warnings", warnings[0])
	}

	resp, err := s.ballots.Handler.SubmitBallotHandler(
		r.Context(),
		voterID,
		r.PathValue("election_id"),
		r.PathValue("position_id"),
		req,
	)
	if err != nil {
		writeBallotDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleResults(w http.ResponseWriter, r *http.Request) {
	warnings := s.refreshStatuses(r.Context())
	resp, err := s.ballots.Handler.ResultsHandler(r.Context(), r.PathValue("election_id"))
	if err != nil {
		writeBallotDomainError(w, err)
		return
	}
	resp.Warnings = warnings
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleVoterDecisions(w http.ResponseWriter, r *http.Request) {
	voterID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	resp, err := s.ballots.Handler.VoterDecisionsHandler(r.Context(), voterID)
	if err != nil {
		writeBallotDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeBallotDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, balloterrors.ErrElectionNotFound):
		writeJSON(w, http.StatusNotFound, errorBody("election_not_found", err.Error()))
	case errors.Is(err, balloterrors.ErrPositionNotFound):
		writeJSON(w, http.StatusNotFound, errorBody("position_not_found", err.Error()))
	case errors.Is(err, balloterrors.ErrElectionNotVotable):
		writeJSON(w, http.StatusConflict, errorBody("election_not_votable", err.Error()))
	case errors.Is(err, balloterrors.ErrAlreadyDecided):
		writeJSON(w, http.StatusConflict, errorBody("already_decided", err.Error()))
	case errors.Is(err, balloterrors.ErrResultsNotVisible):
		writeJSON(w, http.StatusForbidden, errorBody("results_not_visible", err.Error()))
	case errors.Is(err, balloterrors.ErrInvalidBallotInput),
		errors.Is(err, balloterrors.ErrInvalidPosition),
		errors.Is(err, balloterrors.ErrEmptySelection),
		errors.Is(err, balloterrors.ErrInvalidCandidate),
		errors.Is(err, balloterrors.ErrTooManySelections):
		writeJSON(w, http.StatusBadRequest, errorBody("invalid_ballot", err.Error()))
	default:
		writeJSON(w, http.StatusInternalServerError, errorBody("internal_error", "internal server error"))
	}
}
