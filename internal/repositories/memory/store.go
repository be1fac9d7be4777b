// Package memory is an in-process implementation of the repository ports.
// It backs STORAGE_DRIVER=memory and the concurrency tests. Every method holds
// the store lock for its whole read-check-write, so conditional writes are atomic.
package memory

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/SscSPs/hr_memo_app/internal/apperrors"
	"github.com/SscSPs/hr_memo_app/internal/core/domain"
	portsrepo "github.com/SscSPs/hr_memo_app/internal/core/ports/repositories"
	"github.com/SscSPs/hr_memo_app/internal/utils"
	"github.com/SscSPs/hr_memo_app/internal/utils/pagination"
)

// Store keeps memoranda, their validation logs and employees in maps.
type Store struct {
	mu        sync.RWMutex
	memoranda map[string]domain.Memorandum // history lives in steps
	steps     map[string][]domain.ValidationStep
	employees map[string]domain.Employee
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		memoranda: make(map[string]domain.Memorandum),
		steps:     make(map[string][]domain.ValidationStep),
		employees: make(map[string]domain.Employee),
	}
}

// NewRepositoryProvider returns a provider whose repositories share one Store.
func NewRepositoryProvider() portsrepo.RepositoryProvider {
	s := NewStore()
	return portsrepo.RepositoryProvider{
		MemorandumRepo: s,
		EmployeeRepo:   s,
	}
}

var (
	_ portsrepo.MemorandumRepositoryFacade = (*Store)(nil)
	_ portsrepo.EmployeeRepositoryFacade   = (*Store)(nil)
)

func notFound(kind, id string) error {
	return fmt.Errorf("%w: %s %s", apperrors.ErrNotFound, kind, id)
}

// --- memoranda ---

// withHistory returns a detached copy of the stored memorandum with its log attached.
// Callers must hold the lock.
func (s *Store) withHistory(m domain.Memorandum) domain.Memorandum {
	m.TargetAudience = slices.Clone(m.TargetAudience)
	m.ValidationHistory = slices.Clone(s.steps[m.MemorandumID])
	if m.ValidationHistory == nil {
		m.ValidationHistory = []domain.ValidationStep{}
	}
	return m
}

func (s *Store) FindMemorandumByID(ctx context.Context, memorandumID string) (*domain.Memorandum, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, ok := s.memoranda[memorandumID]
	if !ok {
		return nil, notFound("memorandum", memorandumID)
	}
	memo := s.withHistory(m)
	return &memo, nil
}

func (s *Store) ListMemoranda(ctx context.Context, filter portsrepo.MemorandumFilter) ([]domain.Memorandum, *string, error) {
	var (
		cursorAt time.Time
		cursorID string
	)
	if filter.NextToken != nil && *filter.NextToken != "" {
		at, id, err := pagination.DecodeToken(*filter.NextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		cursorAt, cursorID = at, id
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	memos := make([]domain.Memorandum, 0, len(s.memoranda))
	for _, m := range s.memoranda {
		if filter.Status != nil && m.Status != *filter.Status {
			continue
		}
		if cursorID != "" && !pagination.After(m.CreatedAt, m.MemorandumID, cursorAt, cursorID) {
			continue
		}
		memos = append(memos, m)
	}
	slices.SortFunc(memos, func(a, b domain.Memorandum) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(b.MemorandumID, a.MemorandumID)
	})

	var next *string
	if filter.Limit > 0 && len(memos) > filter.Limit {
		memos = memos[:filter.Limit]
		last := memos[len(memos)-1]
		token := pagination.EncodeToken(last.CreatedAt, last.MemorandumID)
		next = &token
	}
	for i := range memos {
		memos[i] = s.withHistory(memos[i])
	}
	return memos, next, nil
}

func (s *Store) SaveMemorandum(ctx context.Context, memo domain.Memorandum) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.memoranda[memo.MemorandumID]; exists {
		return fmt.Errorf("%w: memorandum %s", apperrors.ErrDuplicate, memo.MemorandumID)
	}
	memo.TargetAudience = slices.Clone(memo.TargetAudience)
	memo.ValidationHistory = nil
	s.memoranda[memo.MemorandumID] = memo
	return nil
}

func (s *Store) UpdateMemorandumContent(ctx context.Context, memo domain.Memorandum) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.memoranda[memo.MemorandumID]
	if !ok {
		return notFound("memorandum", memo.MemorandumID)
	}
	if stored.Status.IsTerminal() {
		return apperrors.ErrStatusChanged
	}
	stored.Title = memo.Title
	stored.Content = memo.Content
	stored.Category = memo.Category
	stored.Priority = memo.Priority
	stored.TargetAudience = slices.Clone(memo.TargetAudience)
	stored.LastUpdatedAt = memo.LastUpdatedAt
	stored.LastUpdatedBy = memo.LastUpdatedBy
	s.memoranda[memo.MemorandumID] = stored
	return nil
}

func (s *Store) DeleteMemorandum(ctx context.Context, memorandumID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.memoranda[memorandumID]; !ok {
		return notFound("memorandum", memorandumID)
	}
	delete(s.memoranda, memorandumID)
	delete(s.steps, memorandumID)
	return nil
}

func (s *Store) RecordValidation(ctx context.Context, memorandumID string, expected, next domain.MemorandumStatus, step domain.ValidationStep, updatedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.memoranda[memorandumID]
	if !ok {
		return notFound("memorandum", memorandumID)
	}
	if stored.Status != expected {
		return apperrors.ErrStatusChanged
	}
	for _, existing := range s.steps[memorandumID] {
		if existing.Level == step.Level {
			return fmt.Errorf("%w: level %d already decided", apperrors.ErrDuplicate, step.Level)
		}
	}

	stored.Status = next
	stored.LastUpdatedAt = updatedAt
	stored.LastUpdatedBy = step.ValidatorID
	s.memoranda[memorandumID] = stored
	s.steps[memorandumID] = append(s.steps[memorandumID], step)
	return nil
}

func (s *Store) FindValidationSteps(ctx context.Context, memorandumID string) ([]domain.ValidationStep, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	steps := slices.Clone(s.steps[memorandumID])
	slices.SortStableFunc(steps, func(a, b domain.ValidationStep) int {
		return a.Timestamp.Compare(b.Timestamp)
	})
	if steps == nil {
		steps = []domain.ValidationStep{}
	}
	return steps, nil
}

// --- employees ---

func cloneEmployee(e domain.Employee) domain.Employee {
	e.BackupCodeHashes = slices.Clone(e.BackupCodeHashes)
	return e
}

// activeEmployee returns the stored employee unless missing or soft-deleted. Callers must hold the lock.
func (s *Store) activeEmployee(employeeID string) (domain.Employee, error) {
	e, ok := s.employees[employeeID]
	if !ok || e.DeletedAt != nil {
		return domain.Employee{}, notFound("employee", employeeID)
	}
	return e, nil
}

func (s *Store) FindEmployeeByID(ctx context.Context, employeeID string) (*domain.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, err := s.activeEmployee(employeeID)
	if err != nil {
		return nil, err
	}
	e = cloneEmployee(e)
	return &e, nil
}

func (s *Store) FindEmployeeByEmail(ctx context.Context, email string) (*domain.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, e := range s.employees {
		if e.DeletedAt == nil && strings.EqualFold(e.Email, email) {
			e = cloneEmployee(e)
			return &e, nil
		}
	}
	return nil, notFound("employee", email)
}

func (s *Store) FindEmployees(ctx context.Context, limit int, offset int) ([]domain.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	employees := make([]domain.Employee, 0, len(s.employees))
	for _, e := range s.employees {
		if e.DeletedAt == nil {
			employees = append(employees, cloneEmployee(e))
		}
	}
	slices.SortFunc(employees, func(a, b domain.Employee) int {
		return cmp.Or(strings.Compare(a.Name, b.Name), strings.Compare(a.EmployeeID, b.EmployeeID))
	})

	if offset >= len(employees) {
		return []domain.Employee{}, nil
	}
	employees = employees[offset:]
	if limit > 0 && len(employees) > limit {
		employees = employees[:limit]
	}
	return employees, nil
}

func (s *Store) SaveEmployee(ctx context.Context, employee domain.Employee) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.employees[employee.EmployeeID]; exists {
		return fmt.Errorf("%w: employee %s", apperrors.ErrDuplicate, employee.EmployeeID)
	}
	for _, e := range s.employees {
		if e.DeletedAt == nil && strings.EqualFold(e.Email, employee.Email) {
			return fmt.Errorf("%w: email %s", apperrors.ErrDuplicate, employee.Email)
		}
	}
	s.employees[employee.EmployeeID] = cloneEmployee(employee)
	return nil
}

// update applies fn to an active employee under the write lock.
func (s *Store) update(employeeID string, fn func(*domain.Employee) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, err := s.activeEmployee(employeeID)
	if err != nil {
		return err
	}
	if err := fn(&e); err != nil {
		return err
	}
	s.employees[employeeID] = e
	return nil
}

func (s *Store) UpdateEmployee(ctx context.Context, employee domain.Employee) error {
	return s.update(employee.EmployeeID, func(e *domain.Employee) error {
		e.Name = employee.Name
		e.Role = employee.Role
		e.LastUpdatedAt = employee.LastUpdatedAt
		e.LastUpdatedBy = employee.LastUpdatedBy
		return nil
	})
}

func (s *Store) UpdateRefreshToken(ctx context.Context, employeeID string, refreshTokenHash string, expiresAt time.Time) error {
	return s.update(employeeID, func(e *domain.Employee) error {
		e.RefreshTokenHash = refreshTokenHash
		e.RefreshTokenExpiryTime = &expiresAt
		return nil
	})
}

func (s *Store) ClearRefreshToken(ctx context.Context, employeeID string) error {
	return s.update(employeeID, func(e *domain.Employee) error {
		e.RefreshTokenHash = ""
		e.RefreshTokenExpiryTime = nil
		return nil
	})
}

func (s *Store) LinkProvider(ctx context.Context, employeeID string, provider domain.AuthProvider, providerUserID string) error {
	return s.update(employeeID, func(e *domain.Employee) error {
		if e.AuthProvider == "" {
			e.AuthProvider = provider
		}
		e.ProviderUserID = &providerUserID
		return nil
	})
}

func (s *Store) MarkEmployeeDeleted(ctx context.Context, employeeID string, deletedAt time.Time, deletedBy string) error {
	return s.update(employeeID, func(e *domain.Employee) error {
		e.DeletedAt = &deletedAt
		e.LastUpdatedAt = deletedAt
		e.LastUpdatedBy = deletedBy
		e.RefreshTokenHash = ""
		e.RefreshTokenExpiryTime = nil
		return nil
	})
}

func (s *Store) SavePendingMFA(ctx context.Context, employeeID string, secret string, backupCodeHashes []string, at time.Time) error {
	return s.update(employeeID, func(e *domain.Employee) error {
		if e.MFAEnabled {
			return apperrors.ErrStatusChanged
		}
		e.PendingMFASecret = secret
		e.BackupCodeHashes = slices.Clone(backupCodeHashes)
		e.LastUpdatedAt = at
		return nil
	})
}

func (s *Store) ActivateMFA(ctx context.Context, employeeID string, secret string, at time.Time) error {
	return s.update(employeeID, func(e *domain.Employee) error {
		if e.PendingMFASecret == "" || e.PendingMFASecret != secret {
			return apperrors.ErrStatusChanged
		}
		e.MFASecret = secret
		e.PendingMFASecret = ""
		e.MFAEnabled = true
		e.LastUpdatedAt = at
		return nil
	})
}

func (s *Store) ConsumeBackupCode(ctx context.Context, employeeID string, codeHash string, at time.Time) (bool, error) {
	consumed := false
	err := s.update(employeeID, func(e *domain.Employee) error {
		remaining, ok := utils.RemoveBackupCodeHash(e.BackupCodeHashes, codeHash)
		if !ok {
			return nil
		}
		e.BackupCodeHashes = remaining
		e.LastUpdatedAt = at
		consumed = true
		return nil
	})
	return consumed, err
}

func (s *Store) ClearMFA(ctx context.Context, employeeID string, at time.Time) error {
	return s.update(employeeID, func(e *domain.Employee) error {
		e.MFAEnabled = false
		e.MFASecret = ""
		e.PendingMFASecret = ""
		e.BackupCodeHashes = nil
		e.LastUpdatedAt = at
		return nil
	})
}
