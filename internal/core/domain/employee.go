package domain

import "time"

// AuthProvider records how an employee signs in.
type AuthProvider string

const (
	ProviderLocal  AuthProvider = "LOCAL"
	ProviderGoogle AuthProvider = "GOOGLE"
)

// Employee is a member of staff who can author memoranda and, depending on role, validate them.
type Employee struct {
	EmployeeID     string       `json:"employeeID"`
	Email          string       `json:"email"`
	Name           string       `json:"name"`
	Role           Role         `json:"role"`
	PasswordHash   *string      `json:"-"`
	AuthProvider   AuthProvider `json:"authProvider"`
	ProviderUserID *string      `json:"-"`

	RefreshTokenHash       string     `json:"-"`
	RefreshTokenExpiryTime *time.Time `json:"-"`

	MFAEnabled       bool     `json:"mfaEnabled"`
	MFASecret        string   `json:"-"` // active secret, set only once enabled
	PendingMFASecret string   `json:"-"` // generated by setup, awaiting first verified code
	BackupCodeHashes []string `json:"-"`

	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"`
}

// Actor returns the identity snapshot used when the employee acts on a memorandum.
func (e *Employee) Actor() Actor {
	return Actor{ID: e.EmployeeID, Name: e.Name, Role: e.Role}
}

// GoogleUserInfo holds the profile returned by Google's userinfo endpoint.
type GoogleUserInfo struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}
