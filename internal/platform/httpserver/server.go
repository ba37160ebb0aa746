package httpserver

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	ballotengine "tallyard/contexts/election-operations/ballot-engine"
	electionservice "tallyard/contexts/election-operations/election-service"

	httpSwagger "github.com/swaggo/http-swagger"
	_ "tallyard/internal/platform/httpserver/docs"
)

type Server struct {
	mux           *http.ServeMux
	logger        *slog.Logger
	addr          string
	elections     electionservice.Module
	ballots       ballotengine.Module
	refreshOnRead bool
}

func New(
	elections electionservice.Module,
	ballots ballotengine.Module,
	logger *slog.Logger,
	addr string,
	refreshOnRead bool,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if addr == "" {
		addr = ":8080"
	}

	s := &Server{
		mux:           http.NewServeMux(),
		logger:        logger,
		addr:          addr,
		elections:     elections,
		ballots:       ballots,
		refreshOnRead: refreshOnRead,
	}
	s.registerRoutes()
	return s
}

func (s *Server) Start() error {
	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", s.addr,
	)
	return http.ListenAndServe(s.addr, s.mux)
}

func (s *Server) registerRoutes() {
	s.mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	s.mux.HandleFunc("POST /v1/elections", s.handleProposeElection)
	s.mux.HandleFunc("GET /v1/elections/{election_id}", s.handleGetElection)
	s.mux.HandleFunc("DELETE /v1/elections/{election_id}", s.handleDeleteElection)
	s.mux.HandleFunc("POST /v1/elections/{election_id}/approve", s.handleApproveElection)
	s.mux.HandleFunc("POST /v1/elections/{election_id}/reject", s.handleRejectElection)
	s.mux.HandleFunc("POST /v1/elections/{election_id}/status", s.handleOverrideStatus)
	s.mux.HandleFunc("POST /v1/elections/{election_id}/positions", s.handleAddPosition)
	s.mux.HandleFunc("POST /v1/positions/{position_id}/candidates", s.handleAddCandidate)

	s.mux.HandleFunc("GET /v1/elections/active", s.handleListActive)
	s.mux.HandleFunc("GET /v1/elections/upcoming", s.handleListUpcoming)
	s.mux.HandleFunc("GET /v1/elections/completed", s.handleListCompleted)
	s.mux.HandleFunc("GET /v1/elections/pending-review", s.handleListPendingReview)
	s.mux.HandleFunc("GET /v1/elections/mine", s.handleListProposedBy)

	s.mux.HandleFunc("POST /v1/elections/{election_id}/positions/{position_id}/ballot", s.handleSubmitBallot)
	s.mux.HandleFunc("GET /v1/elections/{election_id}/results", s.handleResults)
	s.mux.HandleFunc("GET /v1/ballots/mine", s.handleVoterDecisions)
}

// refreshStatuses advances due elections before a status-dependent read.
// A refresh failure is logged and reported as a warning on the response
// rather than failing the read.
func (s *Server) refreshStatuses(ctx context.Context) []string {
	if !s.refreshOnRead {
		return nil
	}
	if err := s.elections.Handler.RefreshStatusesHandler(ctx); err != nil {
		s.logger.Error("status refresh before read failed",
			"event", "http_status_refresh_failed",
			"module", "internal/platform/httpserver",
			"layer", "platform",
			"error", err.Error(),
		)
		return []string{"status_refresh_failed"}
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func requireUserID(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID := strings.TrimSpace(r.Header.Get("X-User-Id"))
	if userID == "" {
		writeJSON(w, http.StatusUnauthorized, errorBody("missing_user", "X-User-Id header is required"))
		return "", false
	}
	return userID, true
}

func requireAdminID(w http.ResponseWriter, r *http.Request) (string, bool) {
	adminID := strings.TrimSpace(r.Header.Get("X-Admin-Id"))
	if adminID == "" {
		adminID = strings.TrimSpace(r.Header.Get("X-User-Id"))
	}
	if adminID == "" {
		writeJSON(w, http.StatusUnauthorized, errorBody("missing_admin", "X-Admin-Id header is required"))
		return "", false
	}
	return adminID, true
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func errorBody(code string, message string) errorResponse {
	return errorResponse{
		Code:    code,
		Message: message,
	}
}
