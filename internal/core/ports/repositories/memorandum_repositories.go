package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/hr_memo_app/internal/core/domain"
)

// MemorandumFilter narrows a memorandum listing. A nil Status lists every memorandum.
// A Limit of zero or less returns the whole result set in one page.
type MemorandumFilter struct {
	Status    *domain.MemorandumStatus
	Limit     int
	NextToken *string
}

// MemorandumReader defines read operations for memoranda.
// Every returned memorandum carries its validation history ordered by timestamp ascending.
type MemorandumReader interface {
	// FindMemorandumByID retrieves a memorandum by ID, or ErrNotFound.
	FindMemorandumByID(ctx context.Context, memorandumID string) (*domain.Memorandum, error)

	// ListMemoranda returns memoranda newest first, plus a token for the next page if any.
	ListMemoranda(ctx context.Context, filter MemorandumFilter) ([]domain.Memorandum, *string, error)
}

// MemorandumWriter defines write operations for memoranda.
type MemorandumWriter interface {
	// SaveMemorandum persists a new memorandum.
	SaveMemorandum(ctx context.Context, memo domain.Memorandum) error

	// UpdateMemorandumContent stores the editable fields of memo. The write only
	// applies while the stored status is non-terminal, otherwise ErrStatusChanged.
	UpdateMemorandumContent(ctx context.Context, memo domain.Memorandum) error

	// DeleteMemorandum removes a memorandum together with its validation steps.
	DeleteMemorandum(ctx context.Context, memorandumID string) error
}

// ValidationRecorder applies a validation decision.
type ValidationRecorder interface {
	// RecordValidation moves the memorandum from expected to next and appends step, atomically.
	// If the stored status is no longer expected nothing is written and ErrStatusChanged is returned.
	RecordValidation(ctx context.Context, memorandumID string, expected, next domain.MemorandumStatus, step domain.ValidationStep, updatedAt time.Time) error
}

// ValidationStepReader reads the validation log.
type ValidationStepReader interface {
	// FindValidationSteps returns the steps of a memorandum ordered by timestamp ascending.
	FindValidationSteps(ctx context.Context, memorandumID string) ([]domain.ValidationStep, error)
}

// MemorandumRepositoryFacade combines all memorandum-related repository interfaces
type MemorandumRepositoryFacade interface {
	MemorandumReader
	MemorandumWriter
	ValidationRecorder
	ValidationStepReader
}
