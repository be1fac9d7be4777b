package services

import (
	"context"

	"github.com/SscSPs/hr_memo_app/internal/core/domain"
	"github.com/SscSPs/hr_memo_app/internal/dto"
)

// MemorandumReaderSvc is the query layer over memoranda.
type MemorandumReaderSvc interface {
	// GetMemorandumByID retrieves a memorandum with its validation history.
	GetMemorandumByID(ctx context.Context, memorandumID string) (*domain.Memorandum, error)

	// ListAll returns every memorandum, newest first.
	ListAll(ctx context.Context) ([]domain.Memorandum, error)

	// ListByStatus returns the memoranda whose status equals status, newest first.
	ListByStatus(ctx context.Context, status domain.MemorandumStatus) ([]domain.Memorandum, error)

	// ListReviewQueue returns the memoranda currently awaiting a decision at level.
	ListReviewQueue(ctx context.Context, level domain.ValidationLevel) ([]domain.Memorandum, error)

	// ListMemoranda is the paginated form of ListAll/ListByStatus used by the HTTP API.
	ListMemoranda(ctx context.Context, params dto.ListMemorandaParams) ([]domain.Memorandum, *string, error)

	// GetValidationHistory returns the decisions taken on a memorandum, oldest first.
	GetValidationHistory(ctx context.Context, memorandumID string) ([]domain.ValidationStep, error)
}

// MemorandumWriterSvc defines authoring operations on memoranda.
type MemorandumWriterSvc interface {
	// CreateMemorandum submits a memorandum; it starts awaiting level 1.
	CreateMemorandum(ctx context.Context, req dto.CreateMemorandumRequest, author domain.Actor) (*domain.Memorandum, error)

	// UpdateMemorandum edits a non-terminal memorandum. Only the author or an admin may edit.
	UpdateMemorandum(ctx context.Context, memorandumID string, req dto.UpdateMemorandumRequest, actor domain.Actor) (*domain.Memorandum, error)

	// DeleteMemorandum removes a memorandum and its history. Only the author or an admin may delete.
	DeleteMemorandum(ctx context.Context, memorandumID string, actor domain.Actor) error
}

// MemorandumValidatorSvc is the validation engine.
type MemorandumValidatorSvc interface {
	// Validate records a decision at level by validator and returns the updated memorandum.
	Validate(ctx context.Context, memorandumID string, level domain.ValidationLevel, action domain.ValidationAction, validator domain.Actor, comment string) (*domain.Memorandum, error)

	// AllowedLevels lists the levels role may decide at.
	AllowedLevels(role domain.Role) []domain.ValidationLevel
}

// MemorandumSvcFacade combines all memorandum-related service interfaces
type MemorandumSvcFacade interface {
	MemorandumReaderSvc
	MemorandumWriterSvc
	MemorandumValidatorSvc
}
