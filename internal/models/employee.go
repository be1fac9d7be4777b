package models

import (
	"database/sql"
	"time"
)

// Employee is a row of the employees table.
type Employee struct {
	EmployeeID     string         `db:"employee_id"`
	Email          string         `db:"email"`
	Name           string         `db:"name"`
	Role           string         `db:"role"`
	PasswordHash   sql.NullString `db:"password_hash"`
	AuthProvider   string         `db:"auth_provider"`
	ProviderUserID sql.NullString `db:"provider_user_id"`

	RefreshTokenHash       sql.NullString `db:"refresh_token_hash"`
	RefreshTokenExpiryTime sql.NullTime   `db:"refresh_token_expiry_time"`

	MFAEnabled       bool           `db:"mfa_enabled"`
	MFASecret        sql.NullString `db:"mfa_secret"`
	PendingMFASecret sql.NullString `db:"pending_mfa_secret"`
	BackupCodeHashes []string       `db:"backup_code_hashes"` // text[]

	AuditFields
	DeletedAt *time.Time `db:"deleted_at"`
}
