package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"tallyard/contexts/election-operations/ballot-engine/domain/entities"
	domainerrors "tallyard/contexts/election-operations/ballot-engine/domain/errors"
	"tallyard/contexts/election-operations/ballot-engine/ports"

	"github.com/google/uuid"
)

// Store is the in-memory ballot ledger used by tests and local wiring. Its
// mutex gives SaveDecision the same guarantee the relational store's
// uniqueness constraint provides: for one (election, position, voter) key,
// exactly one decision ever lands, and a commit is all-or-nothing.
type Store struct {
	mu sync.RWMutex

	decisions map[string]entities.BallotDecision
	elections map[string]ports.ElectionProjection
	positions map[string]ports.PositionProjection
	// candidates keyed by position ID.
	candidates map[string][]ports.CandidateProjection
	audits     []ports.AuditEvent
}

func NewStore() *Store {
	return &Store{
		decisions:  make(map[string]entities.BallotDecision),
		elections:  make(map[string]ports.ElectionProjection),
		positions:  make(map[string]ports.PositionProjection),
		candidates: make(map[string][]ports.CandidateProjection),
	}
}

func (s *Store) SetElection(election ports.ElectionProjection) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.elections[strings.TrimSpace(election.ElectionID)] = election
}

func (s *Store) SetPosition(position ports.PositionProjection) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.positions[strings.TrimSpace(position.PositionID)] = position
}

func (s *Store) SetCandidate(candidate ports.CandidateProjection) {
	s.mu.Lock()
	defer s.mu.Unlock()
	positionID := strings.TrimSpace(candidate.PositionID)
	for i, existing := range s.candidates[positionID] {
		if existing.CandidateID == candidate.CandidateID {
			s.candidates[positionID][i] = candidate
			return
		}
	}
	s.candidates[positionID] = append(s.candidates[positionID], candidate)
}

// PurgeElection drops every ledger row and projection for an election; the
// election store's cascade delete calls it in shared in-memory wiring.
func (s *Store) PurgeElection(electionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	electionID = strings.TrimSpace(electionID)
	for key, decision := range s.decisions {
		if decision.ElectionID == electionID {
			delete(s.decisions, key)
		}
	}
	for positionID, position := range s.positions {
		if position.ElectionID == electionID {
			delete(s.positions, positionID)
			delete(s.candidates, positionID)
		}
	}
	delete(s.elections, electionID)
}

func (s *Store) SaveDecision(_ context.Context, decision entities.BallotDecision) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := decisionKey(decision.ElectionID, decision.PositionID, decision.VoterID)
	if _, exists := s.decisions[key]; exists {
		return domainerrors.ErrAlreadyDecided
	}
	s.decisions[key] = decision
	return nil
}

func (s *Store) GetDecision(_ context.Context, electionID string, positionID string, voterID string) (entities.BallotDecision, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	decision, ok := s.decisions[decisionKey(electionID, positionID, voterID)]
	return decision, ok, nil
}

func (s *Store) ListVotesByElection(_ context.Context, electionID string) ([]entities.Vote, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	electionID = strings.TrimSpace(electionID)
	items := make([]entities.Vote, 0)
	for _, decision := range s.decisions {
		if decision.ElectionID != electionID || decision.Kind != entities.DecisionVote {
			continue
		}
		items = append(items, decision.Votes...)
	}
	return items, nil
}

func (s *Store) ListAbstentionsByElection(_ context.Context, electionID string) ([]entities.Abstention, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	electionID = strings.TrimSpace(electionID)
	items := make([]entities.Abstention, 0)
	for _, decision := range s.decisions {
		if decision.ElectionID != electionID || decision.Abstention == nil {
			continue
		}
		items = append(items, *decision.Abstention)
	}
	return items, nil
}

func (s *Store) ListDecisionsByVoter(_ context.Context, voterID string) ([]entities.BallotDecision, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	voterID = strings.TrimSpace(voterID)
	items := make([]entities.BallotDecision, 0)
	for _, decision := range s.decisions {
		if decision.VoterID == voterID {
			items = append(items, decision)
		}
	}
	return items, nil
}

func (s *Store) GetElection(_ context.Context, electionID string) (ports.ElectionProjection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	election, ok := s.elections[strings.TrimSpace(electionID)]
	if !ok {
		return ports.ElectionProjection{}, domainerrors.ErrElectionNotFound
	}
	return election, nil
}

func (s *Store) GetPosition(_ context.Context, positionID string) (ports.PositionProjection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	position, ok := s.positions[strings.TrimSpace(positionID)]
	if !ok {
		return ports.PositionProjection{}, domainerrors.ErrPositionNotFound
	}
	return position, nil
}

func (s *Store) ListPositions(_ context.Context, electionID string) ([]ports.PositionProjection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	electionID = strings.TrimSpace(electionID)
	items := make([]ports.PositionProjection, 0)
	for _, position := range s.positions {
		if position.ElectionID == electionID {
			items = append(items, position)
		}
	}
	return items, nil
}

func (s *Store) ListCandidates(_ context.Context, positionID string) ([]ports.CandidateProjection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]ports.CandidateProjection(nil), s.candidates[strings.TrimSpace(positionID)]...), nil
}

func (s *Store) Record(_ context.Context, event ports.AuditEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.audits = append(s.audits, event)
	return nil
}

// Audits returns a copy of the recorded audit events.
func (s *Store) Audits() []ports.AuditEvent {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]ports.AuditEvent(nil), s.audits...)
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

func decisionKey(electionID string, positionID string, voterID string) string {
	return strings.TrimSpace(electionID) + "|" + strings.TrimSpace(positionID) + "|" + strings.TrimSpace(voterID)
}

var _ ports.BallotRepository = (*Store)(nil)
var _ ports.ElectionDirectory = (*Store)(nil)
var _ ports.AuditSink = (*Store)(nil)
var _ ports.Clock = (*Store)(nil)
var _ ports.IDGenerator = (*Store)(nil)
