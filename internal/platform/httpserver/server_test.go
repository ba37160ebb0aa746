package httpserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	ballotengine "tallyard/contexts/election-operations/ballot-engine"
	ballotports "tallyard/contexts/election-operations/ballot-engine/ports"
	ballothttp "tallyard/contexts/election-operations/ballot-engine/transport/http"
	electionservice "tallyard/contexts/election-operations/election-service"
	electionhttp "tallyard/contexts/election-operations/election-service/transport/http"
)

func newTestServer() (*Server, ballotengine.Module, electionservice.Module) {
	elections := electionservice.NewInMemoryModule(nil)
	ballots := ballotengine.NewInMemoryModule(nil)
	server := New(elections, ballots, nil, ":0", true)
	return server, ballots, elections
}

func doJSON(t *testing.T, mux http.Handler, method string, path string, headers map[string]string, body any, out any) *http.Response {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request failed: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	for key, value := range headers {
		req.Header.Set(key, value)
	}
	recorder := httptest.NewRecorder()
	mux.ServeHTTP(recorder, req)
	resp := recorder.Result()
	if out != nil && resp.StatusCode < 300 {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode response failed: %v", err)
		}
	}
	return resp
}

func TestElectionProposalFlowOverHTTP(t *testing.T) {
	server, _, _ := newTestServer()
	start := time.Now().UTC().Add(time.Hour)

	resp := doJSON(t, server.mux, http.MethodPost, "/v1/elections", nil, electionhttp.ProposeElectionRequest{
		Title:     "Student Council",
		StartTime: start.Format(time.RFC3339),
		EndTime:   start.Add(time.Hour).Format(time.RFC3339),
	}, nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 without identity header, got %d", resp.StatusCode)
	}

	var proposed electionhttp.ElectionResponse
	resp = doJSON(t, server.mux, http.MethodPost, "/v1/elections",
		map[string]string{"X-User-Id": "user-1"},
		electionhttp.ProposeElectionRequest{
			Title:     "Student Council",
			StartTime: start.Format(time.RFC3339),
			EndTime:   start.Add(time.Hour).Format(time.RFC3339),
		}, &proposed)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	if proposed.Status != "upcoming" || proposed.ApprovalStatus != "pending" {
		t.Fatalf("unexpected proposal state: %+v", proposed)
	}

	var approved electionhttp.ElectionResponse
	resp = doJSON(t, server.mux, http.MethodPost, "/v1/elections/"+proposed.ElectionID+"/approve",
		map[string]string{"X-Admin-Id": "admin-1"}, nil, &approved)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 on approve, got %d", resp.StatusCode)
	}
	if approved.ApprovalStatus != "approved" {
		t.Fatalf("expected approved, got %s", approved.ApprovalStatus)
	}

	resp = doJSON(t, server.mux, http.MethodPost, "/v1/elections/"+proposed.ElectionID+"/approve",
		map[string]string{"X-Admin-Id": "admin-2"}, nil, nil)
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected 409 on second approve, got %d", resp.StatusCode)
	}

	resp = doJSON(t, server.mux, http.MethodGet, "/v1/elections/missing", nil, nil, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown election, got %d", resp.StatusCode)
	}
}

func TestBallotFlowOverHTTP(t *testing.T) {
	server, ballots, _ := newTestServer()
	now := time.Now().UTC()

	ballots.Store.SetElection(ballotports.ElectionProjection{
		ElectionID: "election-1",
		Title:      "Student Council",
		Status:     "active",
		Approval:   "approved",
		StartTime:  now.Add(-time.Hour),
		EndTime:    now.Add(time.Hour),
	})
	ballots.Store.SetPosition(ballotports.PositionProjection{
		PositionID:    "position-1",
		ElectionID:    "election-1",
		Title:         "President",
		MaxSelections: 1,
	})
	ballots.Store.SetCandidate(ballotports.CandidateProjection{
		CandidateID: "candidate-1",
		PositionID:  "position-1",
		UserID:      "user-9",
		IsActive:    true,
	})

	ballotPath := "/v1/elections/election-1/positions/position-1/ballot"
	var decision ballothttp.DecisionResponse
	resp := doJSON(t, server.mux, http.MethodPost, ballotPath,
		map[string]string{"X-User-Id": "voter-1"},
		ballothttp.SubmitBallotRequest{CandidateIDs: []string{"candidate-1"}},
		&decision)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201 on ballot, got %d", resp.StatusCode)
	}
	if decision.Kind != "vote" || len(decision.Votes) != 1 {
		t.Fatalf("unexpected decision: %+v", decision)
	}

	resp = doJSON(t, server.mux, http.MethodPost, ballotPath,
		map[string]string{"X-User-Id": "voter-1"},
		ballothttp.SubmitBallotRequest{Abstain: true}, nil)
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected 409 on second decision, got %d", resp.StatusCode)
	}

	var results ballothttp.ElectionResultResponse
	resp = doJSON(t, server.mux, http.MethodGet, "/v1/elections/election-1/results", nil, nil, &results)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 on results, got %d", resp.StatusCode)
	}
	if len(results.Positions) != 1 || results.Positions[0].Candidates[0].VoteCount != 1 {
		t.Fatalf("unexpected results: %+v", results)
	}

	var mine ballothttp.DecisionListResponse
	resp = doJSON(t, server.mux, http.MethodGet, "/v1/ballots/mine",
		map[string]string{"X-User-Id": "voter-1"}, nil, &mine)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 on my ballots, got %d", resp.StatusCode)
	}
	if len(mine.Items) != 1 {
		t.Fatalf("expected one recorded decision, got %d", len(mine.Items))
	}
}
