package services

import (
	"context"
	"time"

	"github.com/SscSPs/hr_memo_app/internal/core/domain"
	"github.com/SscSPs/hr_memo_app/internal/dto"
)

// EmployeeReaderSvc defines read operations for employee data
type EmployeeReaderSvc interface {
	// GetEmployeeByID retrieves an employee by ID.
	GetEmployeeByID(ctx context.Context, employeeID string) (*domain.Employee, error)

	// GetEmployeeByEmail retrieves an employee by email.
	GetEmployeeByEmail(ctx context.Context, email string) (*domain.Employee, error)

	// ListEmployees retrieves a paginated list of employees.
	ListEmployees(ctx context.Context, limit, offset int) ([]domain.Employee, error)
}

// EmployeeWriterSvc defines write operations for employee data
type EmployeeWriterSvc interface {
	// CreateEmployee registers a new employee. Only admins may create employees.
	CreateEmployee(ctx context.Context, req dto.CreateEmployeeRequest, creator domain.Actor) (*domain.Employee, error)

	// UpdateEmployee changes name and, for admins, role.
	UpdateEmployee(ctx context.Context, employeeID string, req dto.UpdateEmployeeRequest, actor domain.Actor) (*domain.Employee, error)

	// UpdateRefreshToken stores the hash of a newly issued refresh token.
	UpdateRefreshToken(ctx context.Context, employeeID string, refreshTokenHash string, expiresAt time.Time) error

	// ClearRefreshToken revokes the stored refresh token.
	ClearRefreshToken(ctx context.Context, employeeID string) error
}

// EmployeeLifecycleSvc defines operations for managing employee lifecycle
type EmployeeLifecycleSvc interface {
	// DeleteEmployee marks an employee as deleted (soft delete). Admin only.
	DeleteEmployee(ctx context.Context, employeeID string, actor domain.Actor) error
}

// EmployeeAuthSvc defines operations for employee authentication
type EmployeeAuthSvc interface {
	// AuthenticateEmployee checks email and password. Any mismatch yields ErrUnauthenticated.
	AuthenticateEmployee(ctx context.Context, email, password string) (*domain.Employee, error)

	// AuthenticateGoogleEmployee resolves a verified Google identity to an existing employee.
	AuthenticateGoogleEmployee(ctx context.Context, email, googleUserID string) (*domain.Employee, error)
}

// EmployeeSvcFacade combines all employee-related service interfaces
type EmployeeSvcFacade interface {
	EmployeeReaderSvc
	EmployeeWriterSvc
	EmployeeLifecycleSvc
	EmployeeAuthSvc
}
