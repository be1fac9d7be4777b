package dto

import (
	"time"

	"github.com/SscSPs/hr_memo_app/internal/core/domain"
)

// CreateEmployeeRequest defines the data needed to register an employee.
// Password may be omitted for employees who only sign in with Google.
type CreateEmployeeRequest struct {
	Email    string      `json:"email" binding:"required,email"`
	Name     string      `json:"name" binding:"required,max=120"`
	Role     domain.Role `json:"role" binding:"required,employee_role"`
	Password string      `json:"password" binding:"omitempty,min=8,max=72"`
}

// UpdateEmployeeRequest defines the data allowed for updating an employee.
type UpdateEmployeeRequest struct {
	Name *string      `json:"name" binding:"omitempty,max=120"`
	Role *domain.Role `json:"role" binding:"omitempty,employee_role"` // admin only
}

// ListEmployeesParams defines query parameters for listing employees.
type ListEmployeesParams struct {
	Limit  int `form:"limit,default=20"`
	Offset int `form:"offset,default=0"`
}

type EmployeeResponse struct {
	EmployeeID   string              `json:"employeeID"`
	Email        string              `json:"email"`
	Name         string              `json:"name"`
	Role         domain.Role         `json:"role"`
	AuthProvider domain.AuthProvider `json:"authProvider"`
	MFAEnabled   bool                `json:"mfaEnabled"`
	CreatedAt    time.Time           `json:"createdAt"`
}

// ListEmployeesResponse wraps the list of employees.
type ListEmployeesResponse struct {
	Employees []EmployeeResponse `json:"employees"`
}

func ToEmployeeResponse(e *domain.Employee) EmployeeResponse {
	return EmployeeResponse{
		EmployeeID:   e.EmployeeID,
		Email:        e.Email,
		Name:         e.Name,
		Role:         e.Role,
		AuthProvider: e.AuthProvider,
		MFAEnabled:   e.MFAEnabled,
		CreatedAt:    e.CreatedAt,
	}
}

func ToListEmployeesResponse(employees []domain.Employee) ListEmployeesResponse {
	res := make([]EmployeeResponse, len(employees))
	for i := range employees {
		res[i] = ToEmployeeResponse(&employees[i])
	}
	return ListEmployeesResponse{Employees: res}
}
