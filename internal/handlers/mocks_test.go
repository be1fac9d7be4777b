package handlers_test

import (
	"context"
	"time"

	"github.com/SscSPs/hr_memo_app/internal/core/domain"
	portssvc "github.com/SscSPs/hr_memo_app/internal/core/ports/services"
	"github.com/SscSPs/hr_memo_app/internal/dto"
	"github.com/stretchr/testify/mock"
)

// --- Mock MemorandumService ---
type MockMemorandumService struct {
	mock.Mock
}

func (m *MockMemorandumService) GetMemorandumByID(ctx context.Context, memorandumID string) (*domain.Memorandum, error) {
	args := m.Called(ctx, memorandumID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Memorandum), args.Error(1)
}

func (m *MockMemorandumService) ListAll(ctx context.Context) ([]domain.Memorandum, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Memorandum), args.Error(1)
}

func (m *MockMemorandumService) ListByStatus(ctx context.Context, status domain.MemorandumStatus) ([]domain.Memorandum, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Memorandum), args.Error(1)
}

func (m *MockMemorandumService) ListReviewQueue(ctx context.Context, level domain.ValidationLevel) ([]domain.Memorandum, error) {
	args := m.Called(ctx, level)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Memorandum), args.Error(1)
}

func (m *MockMemorandumService) ListMemoranda(ctx context.Context, params dto.ListMemorandaParams) ([]domain.Memorandum, *string, error) {
	args := m.Called(ctx, params)
	var next *string
	if args.Get(1) != nil {
		next = args.Get(1).(*string)
	}
	if args.Get(0) == nil {
		return nil, next, args.Error(2)
	}
	return args.Get(0).([]domain.Memorandum), next, args.Error(2)
}

func (m *MockMemorandumService) GetValidationHistory(ctx context.Context, memorandumID string) ([]domain.ValidationStep, error) {
	args := m.Called(ctx, memorandumID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ValidationStep), args.Error(1)
}

func (m *MockMemorandumService) CreateMemorandum(ctx context.Context, req dto.CreateMemorandumRequest, author domain.Actor) (*domain.Memorandum, error) {
	args := m.Called(ctx, req, author)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Memorandum), args.Error(1)
}

func (m *MockMemorandumService) UpdateMemorandum(ctx context.Context, memorandumID string, req dto.UpdateMemorandumRequest, actor domain.Actor) (*domain.Memorandum, error) {
	args := m.Called(ctx, memorandumID, req, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Memorandum), args.Error(1)
}

func (m *MockMemorandumService) DeleteMemorandum(ctx context.Context, memorandumID string, actor domain.Actor) error {
	args := m.Called(ctx, memorandumID, actor)
	return args.Error(0)
}

func (m *MockMemorandumService) Validate(ctx context.Context, memorandumID string, level domain.ValidationLevel, action domain.ValidationAction, validator domain.Actor, comment string) (*domain.Memorandum, error) {
	args := m.Called(ctx, memorandumID, level, action, validator, comment)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Memorandum), args.Error(1)
}

func (m *MockMemorandumService) AllowedLevels(role domain.Role) []domain.ValidationLevel {
	args := m.Called(role)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]domain.ValidationLevel)
}

// Ensure mock implements the interface
var _ portssvc.MemorandumSvcFacade = (*MockMemorandumService)(nil)

// --- Mock EmployeeService ---
type MockEmployeeService struct {
	mock.Mock
}

func (m *MockEmployeeService) GetEmployeeByID(ctx context.Context, employeeID string) (*domain.Employee, error) {
	args := m.Called(ctx, employeeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Employee), args.Error(1)
}

func (m *MockEmployeeService) GetEmployeeByEmail(ctx context.Context, email string) (*domain.Employee, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Employee), args.Error(1)
}

func (m *MockEmployeeService) ListEmployees(ctx context.Context, limit, offset int) ([]domain.Employee, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Employee), args.Error(1)
}

func (m *MockEmployeeService) CreateEmployee(ctx context.Context, req dto.CreateEmployeeRequest, creator domain.Actor) (*domain.Employee, error) {
	args := m.Called(ctx, req, creator)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Employee), args.Error(1)
}

func (m *MockEmployeeService) UpdateEmployee(ctx context.Context, employeeID string, req dto.UpdateEmployeeRequest, actor domain.Actor) (*domain.Employee, error) {
	args := m.Called(ctx, employeeID, req, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Employee), args.Error(1)
}

func (m *MockEmployeeService) UpdateRefreshToken(ctx context.Context, employeeID string, refreshTokenHash string, expiresAt time.Time) error {
	args := m.Called(ctx, employeeID, refreshTokenHash, expiresAt)
	return args.Error(0)
}

func (m *MockEmployeeService) ClearRefreshToken(ctx context.Context, employeeID string) error {
	args := m.Called(ctx, employeeID)
	return args.Error(0)
}

func (m *MockEmployeeService) DeleteEmployee(ctx context.Context, employeeID string, actor domain.Actor) error {
	args := m.Called(ctx, employeeID, actor)
	return args.Error(0)
}

func (m *MockEmployeeService) AuthenticateEmployee(ctx context.Context, email, password string) (*domain.Employee, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Employee), args.Error(1)
}

func (m *MockEmployeeService) AuthenticateGoogleEmployee(ctx context.Context, email, googleUserID string) (*domain.Employee, error) {
	args := m.Called(ctx, email, googleUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Employee), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.EmployeeSvcFacade = (*MockEmployeeService)(nil)
