package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	electionerrors "tallyard/contexts/election-operations/election-service/domain/errors"
	electionhttp "tallyard/contexts/election-operations/election-service/transport/http"
)

func (s *Server) handleProposeElection(w http.ResponseWriter, r *http.Request) {
	proposerID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req electionhttp.ProposeElectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid_json", "request body must be valid JSON"))
		return
	}

	resp, err := s.elections.Handler.ProposeElectionHandler(r.Context(), proposerID, req)
	if err != nil {
		writeElectionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleGetElection(w http.ResponseWriter, r *http.Request) {
	warnings := s.refreshStatuses(r.Context())
	resp, err := s.elections.Handler.GetElectionHandler(r.Context(), r.PathValue("election_id"))
	if err != nil {
		writeElectionDomainError(w, err)
		return
	}
	if len(warnings) > 0 {
		w.Header().Set("X-Warnings", warnings[0])
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDeleteElection(w http.ResponseWriter, r *http.Request) {
	adminID, ok := requireAdminID(w, r)
	if !ok {
		return
	}
	if err := s.elections.Handler.DeleteElectionHandler(r.Context(), adminID, r.PathValue("election_id")); err != nil {
		writeElectionDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleApproveElection(w http.ResponseWriter, r *http.Request) {
	adminID, ok := requireAdminID(w, r)
	if !ok {
		return
	}
	resp, err := s.elections.Handler.ApproveElectionHandler(r.Context(), adminID, r.PathValue("election_id"))
	if err != nil {
		writeElectionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRejectElection(w http.ResponseWriter, r *http.Request) {
	adminID, ok := requireAdminID(w, r)
	if !ok {
		return
	}

	var req electionhttp.RejectElectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid_json", "request body must be valid JSON"))
		return
	}

	resp, err := s.elections.Handler.RejectElectionHandler(r.Context(), adminID, r.PathValue("election_id"), req)
	if err != nil {
		writeElectionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleOverrideStatus(w http.ResponseWriter, r *http.Request) {
	adminID, ok := requireAdminID(w, r)
	if !ok {
		return
	}

	var req electionhttp.OverrideStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid_json", "request body must be valid JSON"))
		return
	}

	resp, err := s.elections.Handler.OverrideStatusHandler(r.Context(), adminID, r.PathValue("election_id"), req)
	if err != nil {
		writeElectionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAddPosition(w http.ResponseWriter, r *http.Request) {
	adminID, ok := requireAdminID(w, r)
	if !ok {
		return
	}

	var req electionhttp.AddPositionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid_json", "request body must be valid JSON"))
		return
	}

	resp, err := s.elections.Handler.AddPositionHandler(r.Context(), adminID, r.PathValue("election_id"), req)
	if err != nil {
		writeElectionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleAddCandidate(w http.ResponseWriter, r *http.Request) {
	adminID, ok := requireAdminID(w, r)
	if !ok {
		return
	}

	var req electionhttp.AddCandidateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid_json", "request body must be valid JSON"))
		return
	}

	resp, err := s.elections.Handler.AddCandidateHandler(r.Context(), adminID, r.PathValue("position_id"), req)
	if err != nil {
		writeElectionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleListActive(w http.ResponseWriter, r *http.Request) {
	warnings := s.refreshStatuses(r.Context())
	resp, err := s.elections.Handler.ListActiveHandler(r.Context())
	if err != nil {
		writeElectionDomainError(w, err)
		return
	}
	resp.Warnings = warnings
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListUpcoming(w http.ResponseWriter, r *http.Request) {
	warnings := s.refreshStatuses(r.Context())
	resp, err := s.elections.Handler.ListUpcomingHandler(r.Context())
	if err != nil {
		writeElectionDomainError(w, err)
		return
	}
	resp.Warnings = warnings
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListCompleted(w http.ResponseWriter, r *http.Request) {
	warnings := s.refreshStatuses(r.Context())
	resp, err := s.elections.Handler.ListCompletedHandler(r.Context())
	if err != nil {
		writeElectionDomainError(w, err)
		return
	}
	resp.Warnings = warnings
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListPendingReview(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireAdminID(w, r); !ok {
		return
	}
	resp, err := s.elections.Handler.ListPendingReviewHandler(r.Context())
	if err != nil {
		writeElectionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListProposedBy(w http.ResponseWriter, r *http.Request) {
	proposerID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	resp, err := s.elections.Handler.ListProposedByHandler(r.Context(), proposerID)
	if err != nil {
		writeElectionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeElectionDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, electionerrors.ErrElectionNotFound):
		writeJSON(w, http.StatusNotFound, errorBody("election_not_found", err.Error()))
	case errors.Is(err, electionerrors.ErrPositionNotFound):
		writeJSON(w, http.StatusNotFound, errorBody("position_not_found", err.Error()))
	case errors.Is(err, electionerrors.ErrElectionNotPending):
		writeJSON(w, http.StatusConflict, errorBody("election_not_pending", err.Error()))
	case errors.Is(err, electionerrors.ErrDuplicateCandidate):
		writeJSON(w, http.StatusConflict, errorBody("duplicate_candidate", err.Error()))
	case errors.Is(err, electionerrors.ErrInvalidElectionInput),
		errors.Is(err, electionerrors.ErrEndBeforeStart),
		errors.Is(err, electionerrors.ErrStartInPast),
		errors.Is(err, electionerrors.ErrRejectionReasonRequired),
		errors.Is(err, electionerrors.ErrInvalidStatus),
		errors.Is(err, electionerrors.ErrInvalidPositionInput),
		errors.Is(err, electionerrors.ErrInvalidCandidateInput):
		writeJSON(w, http.StatusBadRequest, errorBody("invalid_request", err.Error()))
	default:
		writeJSON(w, http.StatusInternalServerError, errorBody("internal_error", "internal server error"))
	}
}
