package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"tallyard/contexts/election-operations/election-service/domain/entities"
	domainerrors "tallyard/contexts/election-operations/election-service/domain/errors"
	"tallyard/contexts/election-operations/election-service/ports"

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

func (r *Repository) SaveElection(ctx context.Context, election entities.Election) error {
	row := electionModelFromEntity(election)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return r.logError("election_repo_save_election_failed", err,
			"election_id", strings.TrimSpace(election.ElectionID),
		)
	}
	return nil
}

func (r *Repository) GetElection(ctx context.Context, electionID string) (entities.Election, error) {
	var row electionModel
	err := r.db.WithContext(ctx).
		Where("election_id = ?", strings.TrimSpace(electionID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Election{}, domainerrors.ErrElectionNotFound
		}
		return entities.Election{}, r.logError("election_repo_get_election_failed", err,
			"election_id", strings.TrimSpace(electionID),
		)
	}
	return row.toEntity(), nil
}

func (r *Repository) UpdateElection(ctx context.Context, election entities.Election) error {
	row := electionModelFromEntity(election)
	result := r.db.WithContext(ctx).
		Model(&electionModel{}).
		Where("election_id = ?", row.ElectionID).
		Updates(map[string]any{
			"title":            row.Title,
			"description":      row.Description,
			"start_time":       row.StartTime,
			"end_time":         row.EndTime,
			"status":           row.Status,
			"approval_status":  row.ApprovalStatus,
			"approved_by":      row.ApprovedBy,
			"rejection_reason": row.RejectionReason,
			"updated_at":       row.UpdatedAt,
		})
	if result.Error != nil {
		return r.logError("election_repo_update_election_failed", result.Error,
			"election_id", row.ElectionID,
		)
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrElectionNotFound
	}
	return nil
}

func (r *Repository) ListActive(ctx context.Context, now time.Time) ([]entities.Election, error) {
	var rows []electionModel
	err := r.db.WithContext(ctx).
		Where("status = ?", string(entities.StatusActive)).
		Where("approval_status = ?", string(entities.ApprovalApproved)).
		Where("start_time <= ? AND end_time > ?", now.UTC(), now.UTC()).
		Order("start_time ASC").
		Find(&rows).Error
	if err != nil {
		return nil, r.logError("election_repo_list_active_failed", err)
	}
	return toElectionEntities(rows), nil
}

func (r *Repository) ListUpcoming(ctx context.Context, now time.Time) ([]entities.Election, error) {
	var rows []electionModel
	err := r.db.WithContext(ctx).
		Where("status = ?", string(entities.StatusUpcoming)).
		Where("approval_status = ?", string(entities.ApprovalApproved)).
		Where("start_time > ?", now.UTC()).
		Order("start_time ASC").
		Find(&rows).Error
	if err != nil {
		return nil, r.logError("election_repo_list_upcoming_failed", err)
	}
	return toElectionEntities(rows), nil
}

func (r *Repository) ListCompleted(ctx context.Context) ([]entities.Election, error) {
	var rows []electionModel
	err := r.db.WithContext(ctx).
		Where("status = ?", string(entities.StatusCompleted)).
		Order("end_time DESC").
		Find(&rows).Error
	if err != nil {
		return nil, r.logError("election_repo_list_completed_failed", err)
	}
	return toElectionEntities(rows), nil
}

func (r *Repository) ListPendingReview(ctx context.Context) ([]entities.Election, error) {
	var rows []electionModel
	err := r.db.WithContext(ctx).
		Where("approval_status = ?", string(entities.ApprovalPending)).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, r.logError("election_repo_list_pending_failed", err)
	}
	return toElectionEntities(rows), nil
}

func (r *Repository) ListProposedBy(ctx context.Context, proposerID string) ([]entities.Election, error) {
	var rows []electionModel
	err := r.db.WithContext(ctx).
		Where("created_by = ?", strings.TrimSpace(proposerID)).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, r.logError("election_repo_list_proposed_by_failed", err,
			"proposer_id", strings.TrimSpace(proposerID),
		)
	}
	return toElectionEntities(rows), nil
}

func (r *Repository) ActivateDue(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&electionModel{}).
		Where("status = ?", string(entities.StatusUpcoming)).
		Where("approval_status = ?", string(entities.ApprovalApproved)).
		Where("start_time <= ?", now.UTC()).
		Updates(map[string]any{
			"status":     string(entities.StatusActive),
			"updated_at": now.UTC(),
		})
	if result.Error != nil {
		return 0, r.logError("election_repo_activate_due_failed", result.Error)
	}
	return result.RowsAffected, nil
}

func (r *Repository) CompleteDue(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&electionModel{}).
		Where("status = ?", string(entities.StatusActive)).
		Where("end_time <= ?", now.UTC()).
		Updates(map[string]any{
			"status":     string(entities.StatusCompleted),
			"updated_at": now.UTC(),
		})
	if result.Error != nil {
		return 0, r.logError("election_repo_complete_due_failed", result.Error)
	}
	return result.RowsAffected, nil
}

// DeleteElectionCascade removes an election and its dependents in dependency
// order (votes and abstentions, candidates, positions, election) inside one
// transaction so a failure leaves the store untouched.
func (r *Repository) DeleteElectionCascade(ctx context.Context, electionID string) error {
	electionID = strings.TrimSpace(electionID)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row electionModel
		if err := tx.Where("election_id = ?", electionID).First(&row).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainerrors.ErrElectionNotFound
			}
			return err
		}

		if err := tx.Where("election_id = ?", electionID).Delete(&voteRowModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("election_id = ?", electionID).Delete(&abstentionRowModel{}).Error; err != nil {
			return err
		}

		positionIDs := tx.Model(&positionModel{}).
			Select("position_id").
			Where("election_id = ?", electionID)
		if err := tx.Where("position_id IN (?)", positionIDs).Delete(&candidateModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("election_id = ?", electionID).Delete(&positionModel{}).Error; err != nil {
			return err
		}
		return tx.Where("election_id = ?", electionID).Delete(&electionModel{}).Error
	})
	if err != nil {
		if errors.Is(err, domainerrors.ErrElectionNotFound) {
			return err
		}
		return r.logError("election_repo_delete_cascade_failed", err,
			"election_id", electionID,
		)
	}
	return nil
}

func (r *Repository) SavePosition(ctx context.Context, position entities.Position) error {
	row := positionModelFromEntity(position)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return r.logError("election_repo_save_position_failed", err,
			"position_id", strings.TrimSpace(position.PositionID),
			"election_id", strings.TrimSpace(position.ElectionID),
		)
	}
	return nil
}

func (r *Repository) GetPosition(ctx context.Context, positionID string) (entities.Position, error) {
	var row positionModel
	err := r.db.WithContext(ctx).
		Where("position_id = ?", strings.TrimSpace(positionID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Position{}, domainerrors.ErrPositionNotFound
		}
		return entities.Position{}, r.logError("election_repo_get_position_failed", err,
			"position_id", strings.TrimSpace(positionID),
		)
	}
	return row.toEntity(), nil
}

func (r *Repository) ListPositions(ctx context.Context, electionID string) ([]entities.Position, error) {
	var rows []positionModel
	err := r.db.WithContext(ctx).
		Where("election_id = ?", strings.TrimSpace(electionID)).
		Order("display_order ASC, position_id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, r.logError("election_repo_list_positions_failed", err,
			"election_id", strings.TrimSpace(electionID),
		)
	}
	items := make([]entities.Position, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) SaveCandidate(ctx context.Context, candidate entities.Candidate) error {
	row := candidateModelFromEntity(candidate)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrDuplicateCandidate
		}
		return r.logError("election_repo_save_candidate_failed", err,
			"candidate_id", strings.TrimSpace(candidate.CandidateID),
			"position_id", strings.TrimSpace(candidate.PositionID),
		)
	}
	return nil
}

func (r *Repository) ListCandidates(ctx context.Context, positionID string) ([]entities.Candidate, error) {
	var rows []candidateModel
	err := r.db.WithContext(ctx).
		Where("position_id = ?", strings.TrimSpace(positionID)).
		Order("candidate_id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, r.logError("election_repo_list_candidates_failed", err,
			"position_id", strings.TrimSpace(positionID),
		)
	}
	items := make([]entities.Candidate, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

// Record writes to the audit_log relation owned by the audit boundary.
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
		return r.logError("election_repo_audit_record_failed", err, "kind", row.Action)
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
		"module", "election-operations/election-service",
		"layer", "adapter",
		"error", err.Error(),
	)
	fields = append(fields, attrs...)
	r.logger.Error("election repository operation failed", fields...)
	return err
}

type electionModel struct {
	ElectionID      string    `gorm:"column:election_id;primaryKey"`
	Title           string    `gorm:"column:title"`
	Description     string    `gorm:"column:description"`
	StartTime       time.Time `gorm:"column:start_time"`
	EndTime         time.Time `gorm:"column:end_time"`
	Status          string    `gorm:"column:status"`
	ApprovalStatus  string    `gorm:"column:approval_status"`
	CreatedBy       string    `gorm:"column:created_by"`
	ApprovedBy      *string   `gorm:"column:approved_by"`
	RejectionReason *string   `gorm:"column:rejection_reason"`
	CreatedAt       time.Time `gorm:"column:created_at"`
	UpdatedAt       time.Time `gorm:"column:updated_at"`
}

func (electionModel) TableName() string {
	return "elections"
}

func electionModelFromEntity(election entities.Election) electionModel {
	row := electionModel{
		ElectionID:     strings.TrimSpace(election.ElectionID),
		Title:          strings.TrimSpace(election.Title),
		Description:    election.Description,
		StartTime:      election.StartTime.UTC(),
		EndTime:        election.EndTime.UTC(),
		Status:         string(election.Status),
		ApprovalStatus: string(election.Approval),
		CreatedBy:      strings.TrimSpace(election.ProposerID),
		CreatedAt:      election.CreatedAt.UTC(),
		UpdatedAt:      election.UpdatedAt.UTC(),
	}
	if approver := strings.TrimSpace(election.ApproverID); approver != "" {
		row.ApprovedBy = &approver
	}
	if reason := strings.TrimSpace(election.RejectionReason); reason != "" {
		row.RejectionReason = &reason
	}
	if row.CreatedAt.IsZero() {
		row.CreatedAt = time.Now().UTC()
	}
	if row.UpdatedAt.IsZero() {
		row.UpdatedAt = row.CreatedAt
	}
	return row
}

func (m electionModel) toEntity() entities.Election {
	election := entities.Election{
		ElectionID:  m.ElectionID,
		Title:       m.Title,
		Description: m.Description,
		StartTime:   m.StartTime.UTC(),
		EndTime:     m.EndTime.UTC(),
		Status:      entities.OperationalStatus(m.Status),
		Approval:    entities.ApprovalStatus(m.ApprovalStatus),
		ProposerID:  m.CreatedBy,
		CreatedAt:   m.CreatedAt.UTC(),
		UpdatedAt:   m.UpdatedAt.UTC(),
	}
	if m.ApprovedBy != nil {
		election.ApproverID = strings.TrimSpace(*m.ApprovedBy)
	}
	if m.RejectionReason != nil {
		election.RejectionReason = strings.TrimSpace(*m.RejectionReason)
	}
	return election
}

func toElectionEntities(rows []electionModel) []entities.Election {
	items := make([]entities.Election, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items
}

type positionModel struct {
	PositionID    string    `gorm:"column:position_id;primaryKey"`
	ElectionID    string    `gorm:"column:election_id;index"`
	Title         string    `gorm:"column:title"`
	Description   string    `gorm:"column:description"`
	DisplayOrder  int       `gorm:"column:display_order"`
	MaxSelections int       `gorm:"column:max_selections"`
	CreatedAt     time.Time `gorm:"column:created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at"`
}

func (positionModel) TableName() string {
	return "positions"
}

func positionModelFromEntity(position entities.Position) positionModel {
	row := positionModel{
		PositionID:    strings.TrimSpace(position.PositionID),
		ElectionID:    strings.TrimSpace(position.ElectionID),
		Title:         strings.TrimSpace(position.Title),
		Description:   position.Description,
		DisplayOrder:  position.DisplayOrder,
		MaxSelections: position.MaxSelections,
		CreatedAt:     position.CreatedAt.UTC(),
		UpdatedAt:     position.UpdatedAt.UTC(),
	}
	if row.CreatedAt.IsZero() {
		row.CreatedAt = time.Now().UTC()
	}
	if row.UpdatedAt.IsZero() {
		row.UpdatedAt = row.CreatedAt
	}
	return row
}

func (m positionModel) toEntity() entities.Position {
	return entities.Position{
		PositionID:    m.PositionID,
		ElectionID:    m.ElectionID,
		Title:         m.Title,
		Description:   m.Description,
		DisplayOrder:  m.DisplayOrder,
		MaxSelections: m.MaxSelections,
		CreatedAt:     m.CreatedAt.UTC(),
		UpdatedAt:     m.UpdatedAt.UTC(),
	}
}

type candidateModel struct {
	CandidateID     string    `gorm:"column:candidate_id;primaryKey"`
	PositionID      string    `gorm:"column:position_id;uniqueIndex:uniq_candidate_per_position"`
	UserID          string    `gorm:"column:user_id;uniqueIndex:uniq_candidate_per_position"`
	ShortBio        string    `gorm:"column:short_bio"`
	CampaignMessage string    `gorm:"column:campaign_message"`
	IsActive        bool      `gorm:"column:is_active"`
	CreatedAt       time.Time `gorm:"column:created_at"`
	UpdatedAt       time.Time `gorm:"column:updated_at"`
}

func (candidateModel) TableName() string {
	return "candidates"
}

func candidateModelFromEntity(candidate entities.Candidate) candidateModel {
	row := candidateModel{
		CandidateID:     strings.TrimSpace(candidate.CandidateID),
		PositionID:      strings.TrimSpace(candidate.PositionID),
		UserID:          strings.TrimSpace(candidate.UserID),
		ShortBio:        candidate.ShortBio,
		CampaignMessage: candidate.CampaignMessage,
		IsActive:        candidate.IsActive,
		CreatedAt:       candidate.CreatedAt.UTC(),
		UpdatedAt:       candidate.UpdatedAt.UTC(),
	}
	if row.CreatedAt.IsZero() {
		row.CreatedAt = time.Now().UTC()
	}
	if row.UpdatedAt.IsZero() {
		row.UpdatedAt = row.CreatedAt
	}
	return row
}

func (m candidateModel) toEntity() entities.Candidate {
	return entities.Candidate{
		CandidateID:     m.CandidateID,
		PositionID:      m.PositionID,
		UserID:          m.UserID,
		ShortBio:        m.ShortBio,
		CampaignMessage: m.CampaignMessage,
		IsActive:        m.IsActive,
		CreatedAt:       m.CreatedAt.UTC(),
		UpdatedAt:       m.UpdatedAt.UTC(),
	}
}

// voteRowModel and abstentionRowModel exist here only for cascade deletion;
// the ballot-engine adapter owns their full shape.
type voteRowModel struct {
	VoteID string `gorm:"column:vote_id;primaryKey"`
}

func (voteRowModel) TableName() string {
	return "votes"
}

type abstentionRowModel struct {
	AbstentionID string `gorm:"column:abstention_id;primaryKey"`
}

func (abstentionRowModel) TableName() string {
	return "abstain_votes"
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

var _ ports.ElectionRepository = (*Repository)(nil)
var _ ports.AuditSink = (*Repository)(nil)
var _ ports.Clock = SystemClock{}
var _ ports.IDGenerator = UUIDGenerator{}
