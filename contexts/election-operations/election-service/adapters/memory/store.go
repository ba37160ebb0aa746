package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"tallyard/contexts/election-operations/election-service/domain/entities"
	domainerrors "tallyard/contexts/election-operations/election-service/domain/errors"
	"tallyard/contexts/election-operations/election-service/ports"

	"github.com/google/uuid"
)

// Store is the in-memory election record store used by tests and local
// wiring. It mirrors the relational store's constraints: candidate
// uniqueness per (position, user) and transactional cascade deletion.
type Store struct {
	mu sync.RWMutex

	elections  map[string]entities.Election
	positions  map[string]entities.Position
	candidates map[string]entities.Candidate
	audits     []ports.AuditEvent

	// ballotPurge lets the election store cascade into the ballot ledger
	// when both contexts share the in-memory wiring.
	ballotPurge func(electionID string)
}

func NewStore() *Store {
	return &Store{
		elections:  make(map[string]entities.Election),
		positions:  make(map[string]entities.Position),
		candidates: make(map[string]entities.Candidate),
	}
}

// SetBallotPurge registers the ballot ledger's cascade hook.
func (s *Store) SetBallotPurge(purge func(electionID string)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ballotPurge = purge
}

func (s *Store) SaveElection(_ context.Context, election entities.Election) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.elections[strings.TrimSpace(election.ElectionID)] = election
	return nil
}

func (s *Store) GetElection(_ context.Context, electionID string) (entities.Election, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	election, ok := s.elections[strings.TrimSpace(electionID)]
	if !ok {
		return entities.Election{}, domainerrors.ErrElectionNotFound
	}
	return election, nil
}

func (s *Store) UpdateElection(_ context.Context, election entities.Election) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := strings.TrimSpace(election.ElectionID)
	if _, ok := s.elections[id]; !ok {
		return domainerrors.ErrElectionNotFound
	}
	s.elections[id] = election
	return nil
}

func (s *Store) ListActive(_ context.Context, now time.Time) ([]entities.Election, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]entities.Election, 0)
	for _, election := range s.elections {
		if election.Votable(now) {
			items = append(items, election)
		}
	}
	sortByStart(items)
	return items, nil
}

func (s *Store) ListUpcoming(_ context.Context, now time.Time) ([]entities.Election, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]entities.Election, 0)
	for _, election := range s.elections {
		if election.Status == entities.StatusUpcoming &&
			election.Approval == entities.ApprovalApproved &&
			election.StartTime.After(now) {
			items = append(items, election)
		}
	}
	sortByStart(items)
	return items, nil
}

func (s *Store) ListCompleted(_ context.Context) ([]entities.Election, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]entities.Election, 0)
	for _, election := range s.elections {
		if election.Status == entities.StatusCompleted {
			items = append(items, election)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].EndTime.Equal(items[j].EndTime) {
			return items[i].ElectionID < items[j].ElectionID
		}
		return items[i].EndTime.After(items[j].EndTime)
	})
	return items, nil
}

func (s *Store) ListPendingReview(_ context.Context) ([]entities.Election, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]entities.Election, 0)
	for _, election := range s.elections {
		if election.Approval == entities.ApprovalPending {
			items = append(items, election)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].ElectionID < items[j].ElectionID
		}
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	return items, nil
}

func (s *Store) ListProposedBy(_ context.Context, proposerID string) ([]entities.Election, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]entities.Election, 0)
	for _, election := range s.elections {
		if election.ProposerID == strings.TrimSpace(proposerID) {
			items = append(items, election)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].ElectionID < items[j].ElectionID
		}
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	return items, nil
}

func (s *Store) ActivateDue(_ context.Context, now time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var count int64
	for id, election := range s.elections {
		if election.Status == entities.StatusUpcoming &&
			election.Approval == entities.ApprovalApproved &&
			!election.StartTime.After(now) {
			election.Status = entities.StatusActive
			election.UpdatedAt = now
			s.elections[id] = election
			count++
		}
	}
	return count, nil
}

func (s *Store) CompleteDue(_ context.Context, now time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var count int64
	for id, election := range s.elections {
		if election.Status == entities.StatusActive && !election.EndTime.After(now) {
			election.Status = entities.StatusCompleted
			election.UpdatedAt = now
			s.elections[id] = election
			count++
		}
	}
	return count, nil
}

func (s *Store) DeleteElectionCascade(_ context.Context, electionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	electionID = strings.TrimSpace(electionID)
	if _, ok := s.elections[electionID]; !ok {
		return domainerrors.ErrElectionNotFound
	}
	if s.ballotPurge != nil {
		s.ballotPurge(electionID)
	}
	for candidateID, candidate := range s.candidates {
		position, ok := s.positions[candidate.PositionID]
		if ok && position.ElectionID == electionID {
			delete(s.candidates, candidateID)
		}
	}
	for positionID, position := range s.positions {
		if position.ElectionID == electionID {
			delete(s.positions, positionID)
		}
	}
	delete(s.elections, electionID)
	return nil
}

func (s *Store) SavePosition(_ context.Context, position entities.Position) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.positions[strings.TrimSpace(position.PositionID)] = position
	return nil
}

func (s *Store) GetPosition(_ context.Context, positionID string) (entities.Position, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	position, ok := s.positions[strings.TrimSpace(positionID)]
	if !ok {
		return entities.Position{}, domainerrors.ErrPositionNotFound
	}
	return position, nil
}

func (s *Store) ListPositions(_ context.Context, electionID string) ([]entities.Position, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]entities.Position, 0)
	for _, position := range s.positions {
		if position.ElectionID == strings.TrimSpace(electionID) {
			items = append(items, position)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].DisplayOrder == items[j].DisplayOrder {
			return items[i].PositionID < items[j].PositionID
		}
		return items[i].DisplayOrder < items[j].DisplayOrder
	})
	return items, nil
}

func (s *Store) SaveCandidate(_ context.Context, candidate entities.Candidate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.candidates {
		if existing.PositionID == candidate.PositionID && existing.UserID == candidate.UserID {
			return domainerrors.ErrDuplicateCandidate
		}
	}
	s.candidates[strings.TrimSpace(candidate.CandidateID)] = candidate
	return nil
}

func (s *Store) ListCandidates(_ context.Context, positionID string) ([]entities.Candidate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]entities.Candidate, 0)
	for _, candidate := range s.candidates {
		if candidate.PositionID == strings.TrimSpace(positionID) {
			items = append(items, candidate)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].CandidateID < items[j].CandidateID
	})
	return items, nil
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

func sortByStart(items []entities.Election) {
	sort.Slice(items, func(i, j int) bool {
		if items[i].StartTime.Equal(items[j].StartTime) {
			return items[i].ElectionID < items[j].ElectionID
		}
		return items[i].StartTime.Before(items[j].StartTime)
	})
}

var _ ports.ElectionRepository = (*Store)(nil)
var _ ports.AuditSink = (*Store)(nil)
var _ ports.Clock = (*Store)(nil)
var _ ports.IDGenerator = (*Store)(nil)
