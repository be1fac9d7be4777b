package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/hr_memo_app/internal/apperrors"
	"github.com/SscSPs/hr_memo_app/internal/core/domain"
	portsrepo "github.com/SscSPs/hr_memo_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/hr_memo_app/internal/core/ports/services"
	"github.com/SscSPs/hr_memo_app/internal/dto"
	"github.com/SscSPs/hr_memo_app/internal/utils"
	"github.com/google/uuid"
)

// employeeService implements the EmployeeSvcFacade interface
type employeeService struct {
	BaseService
	employeeRepo portsrepo.EmployeeRepositoryFacade
	now          func() time.Time
}

// NewEmployeeService creates a new employee service
func NewEmployeeService(employeeRepo portsrepo.EmployeeRepositoryFacade) portssvc.EmployeeSvcFacade {
	return &employeeService{
		employeeRepo: employeeRepo,
		now:          time.Now,
	}
}

var _ portssvc.EmployeeSvcFacade = (*employeeService)(nil)

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *employeeService) CreateEmployee(ctx context.Context, req dto.CreateEmployeeRequest, creator domain.Actor) (*domain.Employee, error) {
	if err := s.RequireRole(creator, "create employees", domain.RoleAdmin); err != nil {
		s.LogWarn(ctx, err, "Employee creation refused", slog.String("creator_id", creator.ID))
		return nil, err
	}

	email := normalizeEmail(req.Email)
	name := strings.TrimSpace(req.Name)
	if email == "" || name == "" {
		return nil, fmt.Errorf("%w: email and name are required", apperrors.ErrValidation)
	}
	if !req.Role.IsValid() {
		return nil, fmt.Errorf("%w: unknown role %q", apperrors.ErrValidation, req.Role)
	}

	existing, err := s.employeeRepo.FindEmployeeByEmail(ctx, email)
	switch {
	case err == nil && existing != nil:
		return nil, fmt.Errorf("%w: an employee with email %s already exists", apperrors.ErrDuplicate, email)
	case err != nil && !errors.Is(err, apperrors.ErrNotFound):
		err = storeError(err, "failed to look up employee")
		s.LogError(ctx, err, "Failed to check for existing employee", slog.String("email", email))
		return nil, err
	}

	now := s.now().UTC()
	employee := domain.Employee{
		EmployeeID:   uuid.NewString(),
		Email:        email,
		Name:         name,
		Role:         req.Role,
		AuthProvider: domain.ProviderGoogle,
		AuditFields:  domain.NewAuditFields(creator.ID, now),
	}
	if req.Password != "" {
		hash, err := utils.HashPassword(req.Password)
		if err != nil {
			s.LogError(ctx, err, "Failed to hash password")
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		employee.PasswordHash = &hash
		employee.AuthProvider = domain.ProviderLocal
	}

	if err := s.employeeRepo.SaveEmployee(ctx, employee); err != nil {
		err = storeError(err, "failed to save employee")
		s.LogFailure(ctx, err, "Failed to save employee", slog.String("email", email))
		return nil, err
	}

	s.LogInfo(ctx, "Employee created",
		slog.String("employee_id", employee.EmployeeID),
		slog.String("role", string(employee.Role)),
		slog.String("creator_id", creator.ID))
	return &employee, nil
}

func (s *employeeService) GetEmployeeByID(ctx context.Context, employeeID string) (*domain.Employee, error) {
	employee, err := s.employeeRepo.FindEmployeeByID(ctx, employeeID)
	if err != nil {
		err = storeError(err, "failed to load employee")
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find employee by ID", slog.String("employee_id", employeeID))
		}
		return nil, err
	}
	return employee, nil
}

func (s *employeeService) GetEmployeeByEmail(ctx context.Context, email string) (*domain.Employee, error) {
	employee, err := s.employeeRepo.FindEmployeeByEmail(ctx, normalizeEmail(email))
	if err != nil {
		err = storeError(err, "failed to load employee")
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find employee by email")
		}
		return nil, err
	}
	return employee, nil
}

func (s *employeeService) ListEmployees(ctx context.Context, limit, offset int) ([]domain.Employee, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	employees, err := s.employeeRepo.FindEmployees(ctx, limit, offset)
	if err != nil {
		err = storeError(err, "failed to list employees")
		s.LogError(ctx, err, "Failed to list employees", slog.Int("limit", limit), slog.Int("offset", offset))
		return nil, err
	}
	if employees == nil {
		return []domain.Employee{}, nil
	}
	return employees, nil
}

func (s *employeeService) UpdateEmployee(ctx context.Context, employeeID string, req dto.UpdateEmployeeRequest, actor domain.Actor) (*domain.Employee, error) {
	if actor.ID != employeeID && actor.Role != domain.RoleAdmin {
		return nil, fmt.Errorf("%w: only admins may update other employees", apperrors.ErrUnauthorized)
	}
	if req.Name == nil && req.Role == nil {
		return nil, fmt.Errorf("%w: no fields to update", apperrors.ErrValidation)
	}

	employee, err := s.GetEmployeeByID(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name cannot be empty", apperrors.ErrValidation)
		}
		employee.Name = name
	}
	if req.Role != nil && *req.Role != employee.Role {
		if err := s.RequireRole(actor, "change roles", domain.RoleAdmin); err != nil {
			s.LogWarn(ctx, err, "Role change refused", slog.String("employee_id", employeeID), slog.String("actor_id", actor.ID))
			return nil, err
		}
		if !req.Role.IsValid() {
			return nil, fmt.Errorf("%w: unknown role %q", apperrors.ErrValidation, *req.Role)
		}
		employee.Role = *req.Role
	}
	employee.LastUpdatedAt = s.now().UTC()
	employee.LastUpdatedBy = actor.ID

	if err := s.employeeRepo.UpdateEmployee(ctx, *employee); err != nil {
		err = storeError(err, "failed to update employee")
		s.LogFailure(ctx, err, "Failed to update employee", slog.String("employee_id", employeeID))
		return nil, err
	}

	s.LogInfo(ctx, "Employee updated", slog.String("employee_id", employeeID))
	return employee, nil
}

func (s *employeeService) UpdateRefreshToken(ctx context.Context, employeeID string, refreshTokenHash string, expiresAt time.Time) error {
	if err := s.employeeRepo.UpdateRefreshToken(ctx, employeeID, refreshTokenHash, expiresAt); err != nil {
		err = storeError(err, "failed to store refresh token")
		s.LogFailure(ctx, err, "Failed to store refresh token", slog.String("employee_id", employeeID))
		return err
	}
	return nil
}

func (s *employeeService) ClearRefreshToken(ctx context.Context, employeeID string) error {
	if err := s.employeeRepo.ClearRefreshToken(ctx, employeeID); err != nil {
		err = storeError(err, "failed to clear refresh token")
		s.LogFailure(ctx, err, "Failed to clear refresh token", slog.String("employee_id", employeeID))
		return err
	}
	return nil
}

func (s *employeeService) DeleteEmployee(ctx context.Context, employeeID string, actor domain.Actor) error {
	if err := s.RequireRole(actor, "delete employees", domain.RoleAdmin); err != nil {
		s.LogWarn(ctx, err, "Employee deletion refused", slog.String("employee_id", employeeID), slog.String("actor_id", actor.ID))
		return err
	}
	if actor.ID == employeeID {
		return fmt.Errorf("%w: an admin cannot delete their own account", apperrors.ErrValidation)
	}

	if err := s.employeeRepo.MarkEmployeeDeleted(ctx, employeeID, s.now().UTC(), actor.ID); err != nil {
		err = storeError(err, "failed to delete employee")
		s.LogFailure(ctx, err, "Failed to delete employee", slog.String("employee_id", employeeID))
		return err
	}

	s.LogInfo(ctx, "Employee deleted", slog.String("employee_id", employeeID), slog.String("actor_id", actor.ID))
	return nil
}

func (s *employeeService) AuthenticateEmployee(ctx context.Context, email, password string) (*domain.Employee, error) {
	employee, err := s.GetEmployeeByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: invalid email or password", apperrors.ErrUnauthenticated)
		}
		return nil, err
	}
	if employee.PasswordHash == nil || !utils.CheckPasswordHash(password, *employee.PasswordHash) {
		return nil, fmt.Errorf("%w: invalid email or password", apperrors.ErrUnauthenticated)
	}
	return employee, nil
}

// AuthenticateGoogleEmployee signs in an existing employee. Unknown emails are
// rejected; the first Google sign-in links the Google subject to the account.
func (s *employeeService) AuthenticateGoogleEmployee(ctx context.Context, email, googleUserID string) (*domain.Employee, error) {
	employee, err := s.GetEmployeeByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.LogWarn(ctx, err, "Google sign-in for unknown email")
			return nil, fmt.Errorf("%w: no employee account for this Google identity", apperrors.ErrUnauthenticated)
		}
		return nil, err
	}

	if employee.ProviderUserID != nil && *employee.ProviderUserID != "" {
		if *employee.ProviderUserID != googleUserID {
			return nil, fmt.Errorf("%w: Google identity does not match the linked account", apperrors.ErrUnauthenticated)
		}
		return employee, nil
	}

	if err := s.employeeRepo.LinkProvider(ctx, employee.EmployeeID, domain.ProviderGoogle, googleUserID); err != nil {
		err = storeError(err, "failed to link Google identity")
		s.LogError(ctx, err, "Failed to link Google identity", slog.String("employee_id", employee.EmployeeID))
		return nil, err
	}
	employee.ProviderUserID = &googleUserID
	s.LogInfo(ctx, "Google identity linked", slog.String("employee_id", employee.EmployeeID))
	return employee, nil
}
