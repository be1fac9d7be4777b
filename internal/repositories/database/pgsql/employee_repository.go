package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/hr_memo_app/internal/apperrors"
	"github.com/SscSPs/hr_memo_app/internal/core/domain"
	portsrepo "github.com/SscSPs/hr_memo_app/internal/core/ports/repositories"
	"github.com/SscSPs/hr_memo_app/internal/models"
	"github.com/SscSPs/hr_memo_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const employeeColumns = `employee_id, email, name, role, password_hash, auth_provider, provider_user_id,
	refresh_token_hash, refresh_token_expiry_time, mfa_enabled, mfa_secret, pending_mfa_secret, backup_code_hashes,
	created_at, created_by, last_updated_at, last_updated_by, deleted_at`

type PgxEmployeeRepository struct {
	BaseRepository
}

func newPgxEmployeeRepository(pool *pgxpool.Pool) portsrepo.EmployeeRepositoryFacade {
	return &PgxEmployeeRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxEmployeeRepository implements portsrepo.EmployeeRepositoryFacade
var _ portsrepo.EmployeeRepositoryFacade = (*PgxEmployeeRepository)(nil)

func scanEmployee(row pgx.Row) (models.Employee, error) {
	var m models.Employee
	err := row.Scan(
		&m.EmployeeID,
		&m.Email,
		&m.Name,
		&m.Role,
		&m.PasswordHash,
		&m.AuthProvider,
		&m.ProviderUserID,
		&m.RefreshTokenHash,
		&m.RefreshTokenExpiryTime,
		&m.MFAEnabled,
		&m.MFASecret,
		&m.PendingMFASecret,
		&m.BackupCodeHashes,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
		&m.DeletedAt,
	)
	return m, err
}

func (r *PgxEmployeeRepository) findOne(ctx context.Context, where string, arg any) (*domain.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE ` + where + ` AND deleted_at IS NULL;`
	m, err := scanEmployee(r.Pool.QueryRow(ctx, query, arg))
	if err != nil {
		return nil, classify(err, fmt.Sprintf("employee %v", arg))
	}
	employee := mapping.ToDomainEmployee(m)
	return &employee, nil
}

func (r *PgxEmployeeRepository) FindEmployeeByID(ctx context.Context, employeeID string) (*domain.Employee, error) {
	return r.findOne(ctx, "employee_id = $1", employeeID)
}

func (r *PgxEmployeeRepository) FindEmployeeByEmail(ctx context.Context, email string) (*domain.Employee, error) {
	return r.findOne(ctx, "lower(email) = lower($1)", email)
}

func (r *PgxEmployeeRepository) FindEmployees(ctx context.Context, limit int, offset int) ([]domain.Employee, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	query := `
		SELECT ` + employeeColumns + `
		FROM employees
		WHERE deleted_at IS NULL
		ORDER BY created_at DESC, employee_id DESC
		LIMIT $1 OFFSET $2;
	`
	rows, err := r.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, classify(err, "failed to query employees")
	}
	defer rows.Close()

	modelEmployees := []models.Employee{}
	for rows.Next() {
		m, err := scanEmployee(rows)
		if err != nil {
			return nil, classify(err, "failed to scan employee row")
		}
		modelEmployees = append(modelEmployees, m)
	}
	if err := rows.Err(); err != nil {
		return nil, classify(err, "error iterating employee rows")
	}
	return mapping.ToDomainEmployeeSlice(modelEmployees), nil
}

func (r *PgxEmployeeRepository) SaveEmployee(ctx context.Context, employee domain.Employee) error {
	m := mapping.ToModelEmployee(employee)
	query := `
		INSERT INTO employees (` + employeeColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.EmployeeID,
		m.Email,
		m.Name,
		m.Role,
		m.PasswordHash,
		m.AuthProvider,
		m.ProviderUserID,
		m.RefreshTokenHash,
		m.RefreshTokenExpiryTime,
		m.MFAEnabled,
		m.MFASecret,
		m.PendingMFASecret,
		m.BackupCodeHashes,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		m.DeletedAt,
	)
	return classify(err, "failed to save employee "+m.EmployeeID)
}

// exec runs an update against one active employee and reports ErrNotFound when no row matched.
func (r *PgxEmployeeRepository) exec(ctx context.Context, what, employeeID, query string, args ...any) error {
	tag, err := r.Pool.Exec(ctx, query, args...)
	if err != nil {
		return classify(err, what)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("employee %s not found or already deleted: %w", employeeID, apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxEmployeeRepository) UpdateEmployee(ctx context.Context, employee domain.Employee) error {
	return r.exec(ctx, "failed to update employee", employee.EmployeeID, `
		UPDATE employees
		SET name = $1, role = $2, last_updated_at = $3, last_updated_by = $4
		WHERE employee_id = $5 AND deleted_at IS NULL;
	`, employee.Name, string(employee.Role), employee.LastUpdatedAt, employee.LastUpdatedBy, employee.EmployeeID)
}

func (r *PgxEmployeeRepository) UpdateRefreshToken(ctx context.Context, employeeID string, refreshTokenHash string, expiresAt time.Time) error {
	return r.exec(ctx, "failed to update refresh token", employeeID, `
		UPDATE employees
		SET refresh_token_hash = $1, refresh_token_expiry_time = $2
		WHERE employee_id = $3 AND deleted_at IS NULL;
	`, refreshTokenHash, expiresAt, employeeID)
}

func (r *PgxEmployeeRepository) ClearRefreshToken(ctx context.Context, employeeID string) error {
	return r.exec(ctx, "failed to clear refresh token", employeeID, `
		UPDATE employees
		SET refresh_token_hash = NULL, refresh_token_expiry_time = NULL
		WHERE employee_id = $1 AND deleted_at IS NULL;
	`, employeeID)
}

func (r *PgxEmployeeRepository) LinkProvider(ctx context.Context, employeeID string, provider domain.AuthProvider, providerUserID string) error {
	return r.exec(ctx, "failed to link provider", employeeID, `
		UPDATE employees
		SET provider_user_id = $1, auth_provider = COALESCE(NULLIF(auth_provider, ''), $2)
		WHERE employee_id = $3 AND deleted_at IS NULL;
	`, providerUserID, string(provider), employeeID)
}

func (r *PgxEmployeeRepository) MarkEmployeeDeleted(ctx context.Context, employeeID string, deletedAt time.Time, deletedBy string) error {
	return r.exec(ctx, "failed to mark employee as deleted", employeeID, `
		UPDATE employees
		SET deleted_at = $1, last_updated_at = $1, last_updated_by = $2,
			refresh_token_hash = NULL, refresh_token_expiry_time = NULL
		WHERE employee_id = $3 AND deleted_at IS NULL;
	`, deletedAt, deletedBy, employeeID)
}

// SavePendingMFA only writes while MFA is still disabled, so an active secret keeps its backup codes.
func (r *PgxEmployeeRepository) SavePendingMFA(ctx context.Context, employeeID string, secret string, backupCodeHashes []string, at time.Time) error {
	if backupCodeHashes == nil {
		backupCodeHashes = []string{}
	}
	tag, err := r.Pool.Exec(ctx, `
		UPDATE employees
		SET pending_mfa_secret = $1, backup_code_hashes = $2, last_updated_at = $3
		WHERE employee_id = $4 AND deleted_at IS NULL AND mfa_enabled = FALSE;
	`, secret, backupCodeHashes, at, employeeID)
	if err != nil {
		return classify(err, "failed to save pending MFA")
	}
	if tag.RowsAffected() == 0 {
		if _, err := r.FindEmployeeByID(ctx, employeeID); err != nil {
			return err
		}
		return apperrors.ErrStatusChanged
	}
	return nil
}

// ActivateMFA promotes the pending secret, but only if it is still the one the caller verified.
func (r *PgxEmployeeRepository) ActivateMFA(ctx context.Context, employeeID string, secret string, at time.Time) error {
	tag, err := r.Pool.Exec(ctx, `
		UPDATE employees
		SET mfa_secret = pending_mfa_secret, pending_mfa_secret = NULL, mfa_enabled = TRUE, last_updated_at = $1
		WHERE employee_id = $2 AND deleted_at IS NULL AND pending_mfa_secret = $3;
	`, at, employeeID, secret)
	if err != nil {
		return classify(err, "failed to activate MFA")
	}
	if tag.RowsAffected() == 0 {
		if _, err := r.FindEmployeeByID(ctx, employeeID); err != nil {
			return err
		}
		return apperrors.ErrStatusChanged
	}
	return nil
}

// ConsumeBackupCode removes codeHash atomically; a code can only be spent once even under concurrent logins.
func (r *PgxEmployeeRepository) ConsumeBackupCode(ctx context.Context, employeeID string, codeHash string, at time.Time) (bool, error) {
	tag, err := r.Pool.Exec(ctx, `
		UPDATE employees
		SET backup_code_hashes = array_remove(backup_code_hashes, $2), last_updated_at = $3
		WHERE employee_id = $1 AND deleted_at IS NULL AND $2 = ANY(backup_code_hashes);
	`, employeeID, codeHash, at)
	if err != nil {
		return false, classify(err, "failed to consume backup code")
	}
	return tag.RowsAffected() == 1, nil
}

func (r *PgxEmployeeRepository) ClearMFA(ctx context.Context, employeeID string, at time.Time) error {
	return r.exec(ctx, "failed to clear MFA", employeeID, `
		UPDATE employees
		SET mfa_enabled = FALSE, mfa_secret = NULL, pending_mfa_secret = NULL,
			backup_code_hashes = '{}', last_updated_at = $1
		WHERE employee_id = $2 AND deleted_at IS NULL;
	`, at, employeeID)
}
