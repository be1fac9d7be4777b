package services_test

import (
	"context"
	"time"

	"github.com/SscSPs/hr_memo_app/internal/core/domain"
	portsrepo "github.com/SscSPs/hr_memo_app/internal/core/ports/repositories"
	"github.com/stretchr/testify/mock"
)

// --- Mock MemorandumRepository ---
type MockMemorandumRepository struct {
	mock.Mock
}

var _ portsrepo.MemorandumRepositoryFacade = (*MockMemorandumRepository)(nil)

func (m *MockMemorandumRepository) FindMemorandumByID(ctx context.Context, memorandumID string) (*domain.Memorandum, error) {
	args := m.Called(ctx, memorandumID)
	var memo *domain.Memorandum
	if args.Get(0) != nil {
		memo = args.Get(0).(*domain.Memorandum)
	}
	return memo, args.Error(1)
}

func (m *MockMemorandumRepository) ListMemoranda(ctx context.Context, filter portsrepo.MemorandumFilter) ([]domain.Memorandum, *string, error) {
	args := m.Called(ctx, filter)
	var memos []domain.Memorandum
	if args.Get(0) != nil {
		memos = args.Get(0).([]domain.Memorandum)
	}
	var next *string
	if args.Get(1) != nil {
		next = args.Get(1).(*string)
	}
	return memos, next, args.Error(2)
}

func (m *MockMemorandumRepository) SaveMemorandum(ctx context.Context, memo domain.Memorandum) error {
	args := m.Called(ctx, memo)
	return args.Error(0)
}

func (m *MockMemorandumRepository) UpdateMemorandumContent(ctx context.Context, memo domain.Memorandum) error {
	args := m.Called(ctx, memo)
	return args.Error(0)
}

func (m *MockMemorandumRepository) DeleteMemorandum(ctx context.Context, memorandumID string) error {
	args := m.Called(ctx, memorandumID)
	return args.Error(0)
}

func (m *MockMemorandumRepository) RecordValidation(ctx context.Context, memorandumID string, expected, next domain.MemorandumStatus, step domain.ValidationStep, updatedAt time.Time) error {
	args := m.Called(ctx, memorandumID, expected, next, step, updatedAt)
	return args.Error(0)
}

func (m *MockMemorandumRepository) FindValidationSteps(ctx context.Context, memorandumID string) ([]domain.ValidationStep, error) {
	args := m.Called(ctx, memorandumID)
	var steps []domain.ValidationStep
	if args.Get(0) != nil {
		steps = args.Get(0).([]domain.ValidationStep)
	}
	return steps, args.Error(1)
}

// --- Mock EmployeeRepository ---
type MockEmployeeRepository struct {
	mock.Mock
}

var _ portsrepo.EmployeeRepositoryFacade = (*MockEmployeeRepository)(nil)

func (m *MockEmployeeRepository) FindEmployeeByID(ctx context.Context, employeeID string) (*domain.Employee, error) {
	args := m.Called(ctx, employeeID)
	var employee *domain.Employee
	if args.Get(0) != nil {
		employee = args.Get(0).(*domain.Employee)
	}
	return employee, args.Error(1)
}

func (m *MockEmployeeRepository) FindEmployeeByEmail(ctx context.Context, email string) (*domain.Employee, error) {
	args := m.Called(ctx, email)
	var employee *domain.Employee
	if args.Get(0) != nil {
		employee = args.Get(0).(*domain.Employee)
	}
	return employee, args.Error(1)
}

func (m *MockEmployeeRepository) FindEmployees(ctx context.Context, limit int, offset int) ([]domain.Employee, error) {
	args := m.Called(ctx, limit, offset)
	var employees []domain.Employee
	if args.Get(0) != nil {
		employees = args.Get(0).([]domain.Employee)
	}
	return employees, args.Error(1)
}

func (m *MockEmployeeRepository) SaveEmployee(ctx context.Context, employee domain.Employee) error {
	args := m.Called(ctx, employee)
	return args.Error(0)
}

func (m *MockEmployeeRepository) UpdateEmployee(ctx context.Context, employee domain.Employee) error {
	args := m.Called(ctx, employee)
	return args.Error(0)
}

func (m *MockEmployeeRepository) UpdateRefreshToken(ctx context.Context, employeeID string, refreshTokenHash string, expiresAt time.Time) error {
	args := m.Called(ctx, employeeID, refreshTokenHash, expiresAt)
	return args.Error(0)
}

func (m *MockEmployeeRepository) ClearRefreshToken(ctx context.Context, employeeID string) error {
	args := m.Called(ctx, employeeID)
	return args.Error(0)
}

func (m *MockEmployeeRepository) LinkProvider(ctx context.Context, employeeID string, provider domain.AuthProvider, providerUserID string) error {
	args := m.Called(ctx, employeeID, provider, providerUserID)
	return args.Error(0)
}

func (m *MockEmployeeRepository) MarkEmployeeDeleted(ctx context.Context, employeeID string, deletedAt time.Time, deletedBy string) error {
	args := m.Called(ctx, employeeID, deletedAt, deletedBy)
	return args.Error(0)
}

func (m *MockEmployeeRepository) SavePendingMFA(ctx context.Context, employeeID string, secret string, backupCodeHashes []string, at time.Time) error {
	args := m.Called(ctx, employeeID, secret, backupCodeHashes, at)
	return args.Error(0)
}

func (m *MockEmployeeRepository) ActivateMFA(ctx context.Context, employeeID string, secret string, at time.Time) error {
	args := m.Called(ctx, employeeID, secret, at)
	return args.Error(0)
}

func (m *MockEmployeeRepository) ConsumeBackupCode(ctx context.Context, employeeID string, codeHash string, at time.Time) (bool, error) {
	args := m.Called(ctx, employeeID, codeHash, at)
	return args.Bool(0), args.Error(1)
}

func (m *MockEmployeeRepository) ClearMFA(ctx context.Context, employeeID string, at time.Time) error {
	args := m.Called(ctx, employeeID, at)
	return args.Error(0)
}

// --- Mock EventTracker ---
type MockEventTracker struct {
	mock.Mock
}

func (m *MockEventTracker) Enqueue(distinctID string, event string, properties map[string]any) {
	m.Called(distinctID, event, properties)
}
