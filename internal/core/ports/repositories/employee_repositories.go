package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/hr_memo_app/internal/core/domain"
)

// EmployeeReader defines read operations for employee data
type EmployeeReader interface {
	// FindEmployeeByID retrieves a specific employee by their ID.
	FindEmployeeByID(ctx context.Context, employeeID string) (*domain.Employee, error)

	// FindEmployeeByEmail retrieves an employee by email (case-insensitive).
	FindEmployeeByEmail(ctx context.Context, email string) (*domain.Employee, error)

	// FindEmployees retrieves a paginated list of employees.
	FindEmployees(ctx context.Context, limit int, offset int) ([]domain.Employee, error)
}

// EmployeeWriter defines write operations for employee data
type EmployeeWriter interface {
	// SaveEmployee persists a new employee.
	SaveEmployee(ctx context.Context, employee domain.Employee) error

	// UpdateEmployee updates an existing employee's profile and role.
	UpdateEmployee(ctx context.Context, employee domain.Employee) error

	// UpdateRefreshToken stores the refresh token hash and its expiry.
	UpdateRefreshToken(ctx context.Context, employeeID string, refreshTokenHash string, expiresAt time.Time) error

	// ClearRefreshToken removes any stored refresh token.
	ClearRefreshToken(ctx context.Context, employeeID string) error

	// LinkProvider records the external identity an employee signed in with.
	LinkProvider(ctx context.Context, employeeID string, provider domain.AuthProvider, providerUserID string) error
}

// EmployeeLifecycleManager defines operations for managing employee lifecycle
type EmployeeLifecycleManager interface {
	// MarkEmployeeDeleted marks an employee as deleted (soft delete).
	MarkEmployeeDeleted(ctx context.Context, employeeID string, deletedAt time.Time, deletedBy string) error
}

// MFAStore persists the second-factor state of an employee.
type MFAStore interface {
	// SavePendingMFA stores a not-yet-active secret and replaces the backup code hashes.
	// It returns ErrStatusChanged when MFA is already enabled at write time.
	SavePendingMFA(ctx context.Context, employeeID string, secret string, backupCodeHashes []string, at time.Time) error

	// ActivateMFA promotes the pending secret to active if it still equals secret.
	// A mismatch returns ErrStatusChanged.
	ActivateMFA(ctx context.Context, employeeID string, secret string, at time.Time) error

	// ConsumeBackupCode removes codeHash from the stored set. It reports false when the hash was not present.
	ConsumeBackupCode(ctx context.Context, employeeID string, codeHash string, at time.Time) (bool, error)

	// ClearMFA disables MFA and removes secrets and backup codes.
	ClearMFA(ctx context.Context, employeeID string, at time.Time) error
}

// EmployeeRepositoryFacade combines all employee-related repository interfaces
type EmployeeRepositoryFacade interface {
	EmployeeReader
	EmployeeWriter
	EmployeeLifecycleManager
	MFAStore
}
