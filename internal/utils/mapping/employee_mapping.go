package mapping

import (
	"database/sql"

	"github.com/SscSPs/hr_memo_app/internal/core/domain"
	"github.com/SscSPs/hr_memo_app/internal/models"
)

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func nonEmptyNullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func stringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

// ToModelEmployee converts a domain Employee to a model Employee
func ToModelEmployee(d domain.Employee) models.Employee {
	m := models.Employee{
		EmployeeID:       d.EmployeeID,
		Email:            d.Email,
		Name:             d.Name,
		Role:             string(d.Role),
		PasswordHash:     nullString(d.PasswordHash),
		AuthProvider:     string(d.AuthProvider),
		ProviderUserID:   nullString(d.ProviderUserID),
		RefreshTokenHash: nonEmptyNullString(d.RefreshTokenHash),
		MFAEnabled:       d.MFAEnabled,
		MFASecret:        nonEmptyNullString(d.MFASecret),
		PendingMFASecret: nonEmptyNullString(d.PendingMFASecret),
		BackupCodeHashes: d.BackupCodeHashes,
		AuditFields:      ToModelAuditFields(d.AuditFields),
		DeletedAt:        d.DeletedAt,
	}
	if d.RefreshTokenExpiryTime != nil {
		m.RefreshTokenExpiryTime = sql.NullTime{Time: *d.RefreshTokenExpiryTime, Valid: true}
	}
	if m.BackupCodeHashes == nil {
		m.BackupCodeHashes = []string{}
	}
	return m
}

// ToDomainEmployee converts a model Employee to a domain Employee
func ToDomainEmployee(m models.Employee) domain.Employee {
	d := domain.Employee{
		EmployeeID:       m.EmployeeID,
		Email:            m.Email,
		Name:             m.Name,
		Role:             domain.Role(m.Role),
		PasswordHash:     stringPtr(m.PasswordHash),
		AuthProvider:     domain.AuthProvider(m.AuthProvider),
		ProviderUserID:   stringPtr(m.ProviderUserID),
		RefreshTokenHash: m.RefreshTokenHash.String,
		MFAEnabled:       m.MFAEnabled,
		MFASecret:        m.MFASecret.String,
		PendingMFASecret: m.PendingMFASecret.String,
		BackupCodeHashes: m.BackupCodeHashes,
		AuditFields:      ToDomainAuditFields(m.AuditFields),
		DeletedAt:        m.DeletedAt,
	}
	if m.RefreshTokenExpiryTime.Valid {
		t := m.RefreshTokenExpiryTime.Time
		d.RefreshTokenExpiryTime = &t
	}
	return d
}

// ToDomainEmployeeSlice converts a slice of model Employees to a slice of domain Employees
func ToDomainEmployeeSlice(ms []models.Employee) []domain.Employee {
	ds := make([]domain.Employee, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainEmployee(m)
	}
	return ds
}
