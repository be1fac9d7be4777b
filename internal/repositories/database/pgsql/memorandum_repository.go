package pgsql

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/SscSPs/hr_memo_app/internal/apperrors"
	"github.com/SscSPs/hr_memo_app/internal/core/domain"
	portsrepo "github.com/SscSPs/hr_memo_app/internal/core/ports/repositories"
	"github.com/SscSPs/hr_memo_app/internal/models"
	"github.com/SscSPs/hr_memo_app/internal/utils/mapping"
	"github.com/SscSPs/hr_memo_app/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const memorandumColumns = `memorandum_id, title, content, category, priority, author_id, author_name,
	target_audience, status, created_at, created_by, last_updated_at, last_updated_by`

const stepColumns = `step_id, memorandum_id, level, validator_id, validator_name, validator_role, action, comment, created_at`

type PgxMemorandumRepository struct {
	BaseRepository
}

// newPgxMemorandumRepository creates a repository for memoranda and their validation steps.
func newPgxMemorandumRepository(pool *pgxpool.Pool) portsrepo.MemorandumRepositoryFacade {
	return &PgxMemorandumRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.MemorandumRepositoryFacade = (*PgxMemorandumRepository)(nil)

func scanMemorandum(row pgx.Row) (models.Memorandum, error) {
	var m models.Memorandum
	err := row.Scan(
		&m.MemorandumID,
		&m.Title,
		&m.Content,
		&m.Category,
		&m.Priority,
		&m.AuthorID,
		&m.AuthorName,
		&m.TargetAudience,
		&m.Status,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func scanValidationStep(row pgx.Row) (models.ValidationStep, error) {
	var s models.ValidationStep
	err := row.Scan(
		&s.StepID,
		&s.MemorandumID,
		&s.Level,
		&s.ValidatorID,
		&s.ValidatorName,
		&s.ValidatorRole,
		&s.Action,
		&s.Comment,
		&s.CreatedAt,
	)
	return s, err
}

func (r *PgxMemorandumRepository) SaveMemorandum(ctx context.Context, memo domain.Memorandum) error {
	m := mapping.ToModelMemorandum(memo)
	query := `
		INSERT INTO memorandums (` + memorandumColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.MemorandumID,
		m.Title,
		m.Content,
		m.Category,
		m.Priority,
		m.AuthorID,
		m.AuthorName,
		m.TargetAudience,
		m.Status,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	return classify(err, "failed to insert memorandum "+m.MemorandumID)
}

// FindMemorandumByID reads the row and its steps from one snapshot, so status and history always agree.
func (r *PgxMemorandumRepository) FindMemorandumByID(ctx context.Context, memorandumID string) (*domain.Memorandum, error) {
	tx, err := r.BeginSnapshot(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	query := `SELECT ` + memorandumColumns + ` FROM memorandums WHERE memorandum_id = $1;`
	m, err := scanMemorandum(tx.QueryRow(ctx, query, memorandumID))
	if err != nil {
		return nil, classify(err, "memorandum "+memorandumID)
	}

	steps, err := r.findSteps(ctx, tx, []string{memorandumID})
	if err != nil {
		return nil, err
	}
	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	memo := mapping.ToDomainMemorandum(m, steps[memorandumID])
	return &memo, nil
}

// ListMemoranda returns memoranda newest first using keyset pagination on (created_at, memorandum_id).
func (r *PgxMemorandumRepository) ListMemoranda(ctx context.Context, filter portsrepo.MemorandumFilter) ([]domain.Memorandum, *string, error) {
	var (
		conditions []string
		args       []any
	)
	if filter.Status != nil {
		args = append(args, string(*filter.Status))
		conditions = append(conditions, "status = $"+strconv.Itoa(len(args)))
	}
	if filter.NextToken != nil && *filter.NextToken != "" {
		cursorAt, cursorID, err := pagination.DecodeToken(*filter.NextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		args = append(args, cursorAt, cursorID)
		conditions = append(conditions, fmt.Sprintf("(created_at, memorandum_id) < ($%d, $%d)", len(args)-1, len(args)))
	}

	var query strings.Builder
	query.WriteString("SELECT " + memorandumColumns + " FROM memorandums")
	if len(conditions) > 0 {
		query.WriteString(" WHERE " + strings.Join(conditions, " AND "))
	}
	query.WriteString(" ORDER BY created_at DESC, memorandum_id DESC")
	if filter.Limit > 0 {
		// One extra row tells us whether another page exists.
		args = append(args, filter.Limit+1)
		query.WriteString(" LIMIT $" + strconv.Itoa(len(args)))
	}

	tx, err := r.BeginSnapshot(ctx)
	if err != nil {
		return nil, nil, err
	}
	defer r.Rollback(ctx, tx)

	ms, err := r.queryMemoranda(ctx, tx, query.String(), args...)
	if err != nil {
		return nil, nil, err
	}

	var next *string
	if filter.Limit > 0 && len(ms) > filter.Limit {
		ms = ms[:filter.Limit]
		last := ms[len(ms)-1]
		token := pagination.EncodeToken(last.CreatedAt, last.MemorandumID)
		next = &token
	}

	ids := make([]string, len(ms))
	for i, m := range ms {
		ids[i] = m.MemorandumID
	}
	steps, err := r.findSteps(ctx, tx, ids)
	if err != nil {
		return nil, nil, err
	}
	if err := r.Commit(ctx, tx); err != nil {
		return nil, nil, err
	}

	memos := make([]domain.Memorandum, len(ms))
	for i, m := range ms {
		memos[i] = mapping.ToDomainMemorandum(m, steps[m.MemorandumID])
	}
	return memos, next, nil
}

func (r *PgxMemorandumRepository) queryMemoranda(ctx context.Context, q querier, query string, args ...any) ([]models.Memorandum, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, classify(err, "failed to query memoranda")
	}
	defer rows.Close()

	var ms []models.Memorandum
	for rows.Next() {
		m, err := scanMemorandum(rows)
		if err != nil {
			return nil, classify(err, "failed to scan memorandum row")
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, classify(err, "error iterating memorandum rows")
	}
	return ms, nil
}

// UpdateMemorandumContent rewrites the editable fields of a memorandum that has not reached a final status.
func (r *PgxMemorandumRepository) UpdateMemorandumContent(ctx context.Context, memo domain.Memorandum) error {
	m := mapping.ToModelMemorandum(memo)
	query := `
		UPDATE memorandums
		SET title = $1, content = $2, category = $3, priority = $4, target_audience = $5,
			last_updated_at = $6, last_updated_by = $7
		WHERE memorandum_id = $8 AND status <> ALL($9);
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.Title,
		m.Content,
		m.Category,
		m.Priority,
		m.TargetAudience,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		m.MemorandumID,
		[]string{string(domain.StatusApproved), string(domain.StatusRejected)},
	)
	if err != nil {
		return classify(err, "failed to update memorandum "+m.MemorandumID)
	}
	if tag.RowsAffected() == 0 {
		return r.missingOrChanged(ctx, r.Pool, m.MemorandumID)
	}
	return nil
}

// DeleteMemorandum removes the memorandum. Its validation steps go with it through ON DELETE CASCADE.
func (r *PgxMemorandumRepository) DeleteMemorandum(ctx context.Context, memorandumID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM memorandums WHERE memorandum_id = $1;`, memorandumID)
	if err != nil {
		return classify(err, "failed to delete memorandum "+memorandumID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("memorandum %s: %w", memorandumID, apperrors.ErrNotFound)
	}
	return nil
}

// RecordValidation moves the memorandum from expected to next and appends step, in one transaction.
// The status update is conditional, so of two concurrent decisions for the same level only one commits;
// the loser gets ErrStatusChanged and nothing is written.
func (r *PgxMemorandumRepository) RecordValidation(ctx context.Context, memorandumID string, expected, next domain.MemorandumStatus, step domain.ValidationStep, updatedAt time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	tag, err := tx.Exec(ctx, `
		UPDATE memorandums
		SET status = $1, last_updated_at = $2, last_updated_by = $3
		WHERE memorandum_id = $4 AND status = $5;
	`, string(next), updatedAt, step.ValidatorID, memorandumID, string(expected))
	if err != nil {
		return classify(err, "failed to advance memorandum "+memorandumID)
	}
	if tag.RowsAffected() == 0 {
		return r.missingOrChanged(ctx, tx, memorandumID)
	}

	s := mapping.ToModelValidationStep(step)
	_, err = tx.Exec(ctx, `
		INSERT INTO validation_steps (`+stepColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`,
		s.StepID,
		memorandumID,
		s.Level,
		s.ValidatorID,
		s.ValidatorName,
		s.ValidatorRole,
		s.Action,
		s.Comment,
		s.CreatedAt,
	)
	if err != nil {
		return classify(err, "failed to insert validation step")
	}

	return r.Commit(ctx, tx)
}

func (r *PgxMemorandumRepository) FindValidationSteps(ctx context.Context, memorandumID string) ([]domain.ValidationStep, error) {
	steps, err := r.findSteps(ctx, r.Pool, []string{memorandumID})
	if err != nil {
		return nil, err
	}
	return mapping.ToDomainValidationStepSlice(steps[memorandumID]), nil
}

// findSteps loads the steps of several memoranda in one query, grouped by memorandum in chronological order.
func (r *PgxMemorandumRepository) findSteps(ctx context.Context, q querier, memorandumIDs []string) (map[string][]models.ValidationStep, error) {
	grouped := make(map[string][]models.ValidationStep, len(memorandumIDs))
	if len(memorandumIDs) == 0 {
		return grouped, nil
	}

	rows, err := q.Query(ctx, `
		SELECT `+stepColumns+`
		FROM validation_steps
		WHERE memorandum_id = ANY($1)
		ORDER BY created_at ASC, level ASC;
	`, memorandumIDs)
	if err != nil {
		return nil, classify(err, "failed to query validation steps")
	}
	defer rows.Close()

	for rows.Next() {
		s, err := scanValidationStep(rows)
		if err != nil {
			return nil, classify(err, "failed to scan validation step row")
		}
		grouped[s.MemorandumID] = append(grouped[s.MemorandumID], s)
	}
	if err := rows.Err(); err != nil {
		return nil, classify(err, "error iterating validation step rows")
	}
	return grouped, nil
}

// querier is satisfied by both the pool and a transaction.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// missingOrChanged explains a conditional write that touched no row.
func (r *PgxMemorandumRepository) missingOrChanged(ctx context.Context, q querier, memorandumID string) error {
	var exists bool
	err := q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM memorandums WHERE memorandum_id = $1);`, memorandumID).Scan(&exists)
	if err != nil {
		return classify(err, "failed to check memorandum "+memorandumID)
	}
	if !exists {
		return fmt.Errorf("memorandum %s: %w", memorandumID, apperrors.ErrNotFound)
	}
	return apperrors.ErrStatusChanged
}
