package services

import (
	"context"

	"github.com/SscSPs/hr_memo_app/internal/core/domain"
)

// MFASvc drives the TOTP lifecycle of an employee: setup, enable, verify, disable.
type MFASvc interface {
	// SetupMFA generates a pending secret and a fresh set of backup codes.
	SetupMFA(ctx context.Context, employeeID string) (*domain.MFASetup, error)

	// EnableMFA activates the pending secret once code verifies against it.
	EnableMFA(ctx context.Context, employeeID string, code string) error

	// VerifyToken checks code against the active secret.
	VerifyToken(ctx context.Context, employeeID string, code string) (bool, error)

	// VerifyBackupCode checks and consumes a backup code.
	VerifyBackupCode(ctx context.Context, employeeID string, code string) (bool, error)

	// DisableMFA clears the secret and remaining backup codes.
	DisableMFA(ctx context.Context, employeeID string) error

	// GetMFAStatus reports whether MFA is enabled or pending.
	GetMFAStatus(ctx context.Context, employeeID string) (*domain.MFAStatus, error)
}
