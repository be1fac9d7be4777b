package domain

import "time"

// AuditFields holds standard audit information for domain entities.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"` // EmployeeID reference
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"` // EmployeeID reference
}

// NewAuditFields stamps creation and last-update with the same actor and time.
func NewAuditFields(by string, at time.Time) AuditFields {
	return AuditFields{CreatedAt: at, CreatedBy: by, LastUpdatedAt: at, LastUpdatedBy: by}
}
