package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"strings"
	"time"

	"tallyard/contexts/election-operations/ballot-engine/domain/entities"
	domainerrors "tallyard/contexts/election-operations/ballot-engine/domain/errors"
	"tallyard/contexts/election-operations/ballot-engine/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		db:     db,
		logger: logger,
	}
}

// SaveDecision commits all rows of a decision in one transaction. The vote
// and abstention rows live in separate relations, so a per-relation unique
// index cannot by itself stop one voter sending a vote and an abstention for
// the same position concurrently. On postgres the transaction serializes
// writers for the triple with an advisory lock and re-checks both relations
// before inserting; the unique indexes remain the backstop, surfacing as
// ErrAlreadyDecided via SQLSTATE 23505.
func (r *Repository) SaveDecision(ctx context.Context, decision entities.BallotDecision) error {
	electionID := strings.TrimSpace(decision.ElectionID)
	positionID := strings.TrimSpace(decision.PositionID)
	voterID := strings.TrimSpace(decision.VoterID)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if tx.Dialector.Name() == "postgres" {
			lockKey := electionID + "|" + positionID + "|" + voterID
			if err := tx.Exec("SELECT pg_advisory_xact_lock(hashtext(?))", lockKey).Error; err != nil {
				return err
			}
		}

		var voteCount int64
		err := tx.Model(&voteModel{}).
			Where("election_id = ? AND position_id = ? AND voter_id = ?", electionID, positionID, voterID).
			Count(&voteCount).Error
		if err != nil {
			return err
		}
		var abstentionCount int64
		err = tx.Model(&abstentionModel{}).
			Where("election_id = ? AND position_id = ? AND voter_id = ?", electionID, positionID, voterID).
			Count(&abstentionCount).Error
		if err != nil {
			return err
		}
		if voteCount > 0 || abstentionCount > 0 {
			return domainerrors.ErrAlreadyDecided
		}

		if decision.Kind == entities.DecisionAbstain {
			row := abstentionModelFromEntity(*decision.Abstention)
			return tx.Create(&row).Error
		}
		rows := make([]voteModel, 0, len(decision.Votes))
		for _, vote := range decision.Votes {
			rows = append(rows, voteModelFromEntity(vote))
		}
		return tx.Create(&rows).Error
	})
	if err != nil {
		if errors.Is(err, domainerrors.ErrAlreadyDecided) || isUniqueViolation(err) {
			return domainerrors.ErrAlreadyDecided
		}
		return r.logError("ballot_repo_save_decision_failed", err,
			"election_id", electionID,
			"position_id", positionID,
			"voter_id", voterID,
		)
	}
	return nil
}

func (r *Repository) GetDecision(ctx context.Context, electionID string, positionID string, voterID string) (entities.BallotDecision, bool, error) {
	electionID = strings.TrimSpace(electionID)
	positionID = strings.TrimSpace(positionID)
	voterID = strings.TrimSpace(voterID)

	var voteRows []voteModel
	err := r.db.WithContext(ctx).
		Where("election_id = ? AND position_id = ? AND voter_id = ?", electionID, positionID, voterID).
		Order("candidate_id ASC").
		Find(&voteRows).Error
	if err != nil {
		return entities.BallotDecision{}, false, r.logError("ballot_repo_get_decision_failed", err,
			"election_id", electionID,
			"position_id", positionID,
			"voter_id", voterID,
		)
	}
	if len(voteRows) > 0 {
		decision := entities.BallotDecision{
			ElectionID: electionID,
			PositionID: positionID,
			VoterID:    voterID,
			Kind:       entities.DecisionVote,
			CastAt:     voteRows[0].CastAt.UTC(),
		}
		for _, row := range voteRows {
			decision.Votes = append(decision.Votes, row.toEntity())
		}
		return decision, true, nil
	}

	var abstentionRow abstentionModel
	err = r.db.WithContext(ctx).
		Where("election_id = ? AND position_id = ? AND voter_id = ?", electionID, positionID, voterID).
		First(&abstentionRow).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.BallotDecision{}, false, nil
		}
		return entities.BallotDecision{}, false, r.logError("ballot_repo_get_decision_failed", err,
			"election_id", electionID,
			"position_id", positionID,
			"voter_id", voterID,
		)
	}
	abstention := abstentionRow.toEntity()
	return entities.BallotDecision{
		ElectionID: electionID,
		PositionID: positionID,
		VoterID:    voterID,
		Kind:       entities.DecisionAbstain,
		Abstention: &abstention,
		CastAt:     abstention.CastAt,
	}, true, nil
}

func (r *Repository) ListVotesByElection(ctx context.Context, electionID string) ([]entities.Vote, error) {
	var rows []voteModel
	err := r.db.WithContext(ctx).
		Where("election_id = ?", strings.TrimSpace(electionID)).
		Find(&rows).Error
	if err != nil {
		return nil, r.logError("ballot_repo_list_votes_failed", err,
			"election_id", strings.TrimSpace(electionID),
		)
	}
	items := make([]entities.Vote, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) ListAbstentionsByElection(ctx context.Context, electionID string) ([]entities.Abstention, error) {
	var rows []abstentionModel
	err := r.db.WithContext(ctx).
		Where("election_id = ?", strings.TrimSpace(electionID)).
		Find(&rows).Error
	if err != nil {
		return nil, r.logError("ballot_repo_list_abstentions_failed", err,
			"election_id", strings.TrimSpace(electionID),
		)
	}
	items := make([]entities.Abstention, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) ListDecisionsByVoter(ctx context.Context, voterID string) ([]entities.BallotDecision, error) {
	voterID = strings.TrimSpace(voterID)

	var voteRows []voteModel
	err := r.db.WithContext(ctx).
		Where("voter_id = ?", voterID).
		Order("cast_at DESC, candidate_id ASC").
		Find(&voteRows).Error
	if err != nil {
		return nil, r.logError("ballot_repo_list_voter_decisions_failed", err, "voter_id", voterID)
	}
	var abstentionRows []abstentionModel
	err = r.db.WithContext(ctx).
		Where("voter_id = ?", voterID).
		Order("cast_at DESC").
		Find(&abstentionRows).Error
	if err != nil {
		return nil, r.logError("ballot_repo_list_voter_decisions_failed", err, "voter_id", voterID)
	}

	grouped := make(map[string]*entities.BallotDecision)
	order := make([]string, 0)
	for _, row := range voteRows {
		key := row.ElectionID + "|" + row.PositionID
		decision, ok := grouped[key]
		if !ok {
			decision = &entities.BallotDecision{
				ElectionID: row.ElectionID,
				PositionID: row.PositionID,
				VoterID:    voterID,
				Kind:       entities.DecisionVote,
				CastAt:     row.CastAt.UTC(),
			}
			grouped[key] = decision
			order = append(order, key)
		}
		decision.Votes = append(decision.Votes, row.toEntity())
	}

	items := make([]entities.BallotDecision, 0, len(order)+len(abstentionRows))
	for _, key := range order {
		items = append(items, *grouped[key])
	}
	for _, row := range abstentionRows {
		abstention := row.toEntity()
		items = append(items, entities.BallotDecision{
			ElectionID: row.ElectionID,
			PositionID: row.PositionID,
			VoterID:    voterID,
			Kind:       entities.DecisionAbstain,
			Abstention: &abstention,
			CastAt:     abstention.CastAt,
		})
	}
	sort.SliceStable(items, func(i, j int) bool {
		if !items[i].CastAt.Equal(items[j].CastAt) {
			return items[i].CastAt.After(items[j].CastAt)
		}
		if items[i].ElectionID != items[j].ElectionID {
			return items[i].ElectionID < items[j].ElectionID
		}
		return items[i].PositionID < items[j].PositionID
	})
	return items, nil
}

func (r *Repository) GetElection(ctx context.Context, electionID string) (ports.ElectionProjection, error) {
	var row electionProjectionModel
	err := r.db.WithContext(ctx).
		Where("election_id = ?", strings.TrimSpace(electionID)).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.ElectionProjection{}, domainerrors.ErrElectionNotFound
		}
		return ports.ElectionProjection{}, r.logError("ballot_repo_get_election_failed", err,
			"election_id", strings.TrimSpace(electionID),
		)
	}
	return row.toProjection(), nil
}

func (r *Repository) GetPosition(ctx context.Context, positionID string) (ports.PositionProjection, error) {
	var row positionProjectionModel
	err := r.db.WithContext(ctx).
		Where("position_id = ?", strings.TrimSpace(positionID)).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.PositionProjection{}, domainerrors.ErrPositionNotFound
		}
		return ports.PositionProjection{}, r.logError("ballot_repo_get_position_failed", err,
			"position_id", strings.TrimSpace(positionID),
		)
	}
	return row.toProjection(), nil
}

func (r *Repository) ListPositions(ctx context.Context, electionID string) ([]ports.PositionProjection, error) {
	var rows []positionProjectionModel
	err := r.db.WithContext(ctx).
		Where("election_id = ?", strings.TrimSpace(electionID)).
		Order("display_order ASC, position_id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, r.logError("ballot_repo_list_positions_failed", err,
			"election_id", strings.TrimSpace(electionID),
		)
	}
	items := make([]ports.PositionProjection, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toProjection())
	}
	return items, nil
}

func (r *Repository) ListCandidates(ctx context.Context, positionID string) ([]ports.CandidateProjection, error) {
	var rows []candidateProjectionModel
	err := r.db.WithContext(ctx).
		Where("position_id = ?", strings.TrimSpace(positionID)).
		Order("candidate_id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, r.logError("ballot_repo_list_candidates_failed", err,
			"position_id", strings.TrimSpace(positionID),
		)
	}
	items := make([]ports.CandidateProjection, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toProjection())
	}
	return items, nil
}

func (r *Repository) Record(ctx context.Context, event ports.AuditEvent) error {
	row := auditLogModel{
		AuditID:     uuid.NewString(),
		UserID:      strings.TrimSpace(event.Actor),
		Action:      strings.TrimSpace(event.Kind),
		Description: event.Description,
		CreatedAt:   event.OccurredAt.UTC(),
	}
	if row.CreatedAt.IsZero() {
		row.CreatedAt = time.Now().UTC()
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return r.logError("ballot_repo_audit_record_failed", err, "kind", row.Action)
	}
	return nil
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

type UUIDGenerator struct{}

func (UUIDGenerator) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

func (r *Repository) logError(event string, err error, attrs ...any) error {
	fields := make([]any, 0, len(attrs)+8)
	fields = append(fields,
		"event", event,
		"module", "election-operations/ballot-engine",
		"layer", "adapter",
		"error", err.Error(),
	)
	fields = append(fields, attrs...)
	r.logger.Error("ballot repository operation failed", fields...)
	return err
}

type voteModel struct {
	VoteID      string    `gorm:"column:vote_id;primaryKey"`
	ElectionID  string    `gorm:"column:election_id;uniqueIndex:uniq_vote_per_triple;index"`
	PositionID  string    `gorm:"column:position_id;uniqueIndex:uniq_vote_per_triple"`
	CandidateID string    `gorm:"column:candidate_id;uniqueIndex:uniq_vote_per_triple"`
	VoterID     string    `gorm:"column:voter_id;uniqueIndex:uniq_vote_per_triple;index"`
	CastAt      time.Time `gorm:"column:cast_at"`
}

func (voteModel) TableName() string {
	return "votes"
}

func voteModelFromEntity(vote entities.Vote) voteModel {
	return voteModel{
		VoteID:      strings.TrimSpace(vote.VoteID),
		ElectionID:  strings.TrimSpace(vote.ElectionID),
		PositionID:  strings.TrimSpace(vote.PositionID),
		CandidateID: strings.TrimSpace(vote.CandidateID),
		VoterID:     strings.TrimSpace(vote.VoterID),
		CastAt:      vote.CastAt.UTC(),
	}
}

func (m voteModel) toEntity() entities.Vote {
	return entities.Vote{
		VoteID:      m.VoteID,
		ElectionID:  m.ElectionID,
		PositionID:  m.PositionID,
		CandidateID: m.CandidateID,
		VoterID:     m.VoterID,
		CastAt:      m.CastAt.UTC(),
	}
}

type abstentionModel struct {
	AbstentionID string    `gorm:"column:abstention_id;primaryKey"`
	ElectionID   string    `gorm:"column:election_id;uniqueIndex:uniq_abstention_per_triple;index"`
	PositionID   string    `gorm:"column:position_id;uniqueIndex:uniq_abstention_per_triple"`
	VoterID      string    `gorm:"column:voter_id;uniqueIndex:uniq_abstention_per_triple;index"`
	CastAt       time.Time `gorm:"column:cast_at"`
}

func (abstentionModel) TableName() string {
	return "abstain_votes"
}

func abstentionModelFromEntity(abstention entities.Abstention) abstentionModel {
	return abstentionModel{
		AbstentionID: strings.TrimSpace(abstention.AbstentionID),
		ElectionID:   strings.TrimSpace(abstention.ElectionID),
		PositionID:   strings.TrimSpace(abstention.PositionID),
		VoterID:      strings.TrimSpace(abstention.VoterID),
		CastAt:       abstention.CastAt.UTC(),
	}
}

func (m abstentionModel) toEntity() entities.Abstention {
	return entities.Abstention{
		AbstentionID: m.AbstentionID,
		ElectionID:   m.ElectionID,
		PositionID:   m.PositionID,
		VoterID:      m.VoterID,
		CastAt:       m.CastAt.UTC(),
	}
}

// Read-only projections of relations owned by the election service.
type electionProjectionModel struct {
	ElectionID     string    `gorm:"column:election_id;primaryKey"`
	Title          string    `gorm:"column:title"`
	Status         string    `gorm:"column:status"`
	ApprovalStatus string    `gorm:"column:approval_status"`
	StartTime      time.Time `gorm:"column:start_time"`
	EndTime        time.Time `gorm:"column:end_time"`
}

func (electionProjectionModel) TableName() string {
	return "elections"
}

func (m electionProjectionModel) toProjection() ports.ElectionProjection {
	return ports.ElectionProjection{
		ElectionID: m.ElectionID,
		Title:      m.Title,
		Status:     m.Status,
		Approval:   m.ApprovalStatus,
		StartTime:  m.StartTime.UTC(),
		EndTime:    m.EndTime.UTC(),
	}
}

type positionProjectionModel struct {
	PositionID    string `gorm:"column:position_id;primaryKey"`
	ElectionID    string `gorm:"column:election_id"`
	Title         string `gorm:"column:title"`
	DisplayOrder  int    `gorm:"column:display_order"`
	MaxSelections int    `gorm:"column:max_selections"`
}

func (positionProjectionModel) TableName() string {
	return "positions"
}

func (m positionProjectionModel) toProjection() ports.PositionProjection {
	return ports.PositionProjection{
		PositionID:    m.PositionID,
		ElectionID:    m.ElectionID,
		Title:         m.Title,
		DisplayOrder:  m.DisplayOrder,
		MaxSelections: m.MaxSelections,
	}
}

type candidateProjectionModel struct {
	CandidateID string `gorm:"column:candidate_id;primaryKey"`
	PositionID  string `gorm:"column:position_id"`
	UserID      string `gorm:"column:user_id"`
	IsActive    bool   `gorm:"column:is_active"`
}

func (candidateProjectionModel) TableName() string {
	return "candidates"
}

func (m candidateProjectionModel) toProjection() ports.CandidateProjection {
	return ports.CandidateProjection{
		CandidateID: m.CandidateID,
		PositionID:  m.PositionID,
		UserID:      m.UserID,
		IsActive:    m.IsActive,
	}
}

type auditLogModel struct {
	AuditID     string    `gorm:"column:audit_id;primaryKey"`
	UserID      string    `gorm:"column:user_id"`
	Action      string    `gorm:"column:action"`
	Description string    `gorm:"column:description"`
	CreatedAt   time.Time `gorm:"column:created_at"`
}

func (auditLogModel) TableName() string {
	return "audit_log"
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

var _ ports.BallotRepository = (*Repository)(nil)
var _ ports.ElectionDirectory = (*Repository)(nil)
var _ ports.AuditSink = (*Repository)(nil)
var _ ports.Clock = SystemClock{}
var _ ports.IDGenerator = UUIDGenerator{}
