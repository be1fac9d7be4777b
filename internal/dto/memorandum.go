package dto

import (
	"time"

	"github.com/SscSPs/hr_memo_app/internal/core/domain"
)

// CreateMemorandumRequest defines the data needed to submit a new memorandum.
type CreateMemorandumRequest struct {
	Title          string                    `json:"title" binding:"required,max=200"`
	Content        string                    `json:"content" binding:"required"`
	Category       domain.MemorandumCategory `json:"category" binding:"required,memo_category"`
	Priority       domain.MemorandumPriority `json:"priority" binding:"omitempty,memo_priority"` // defaults to medium
	TargetAudience []string                  `json:"targetAudience"`                             // defaults to ["tous"]
}

// UpdateMemorandumRequest defines the editable fields of a memorandum.
// Pointers distinguish omitted fields from zero values.
type UpdateMemorandumRequest struct {
	Title          *string                    `json:"title" binding:"omitempty,max=200"`
	Content        *string                    `json:"content"`
	Category       *domain.MemorandumCategory `json:"category" binding:"omitempty,memo_category"`
	Priority       *domain.MemorandumPriority `json:"priority" binding:"omitempty,memo_priority"`
	TargetAudience []string                   `json:"targetAudience"`
}

// ToPatch converts the request into a domain patch.
func (r UpdateMemorandumRequest) ToPatch() domain.MemorandumPatch {
	return domain.MemorandumPatch{
		Title:          r.Title,
		Content:        r.Content,
		Category:       r.Category,
		Priority:       r.Priority,
		TargetAudience: r.TargetAudience,
	}
}

// ValidateMemorandumRequest is a validation decision at one level.
type ValidateMemorandumRequest struct {
	Level   int                     `json:"level" binding:"required,min=1,max=3"`
	Action  domain.ValidationAction `json:"action" binding:"required,memo_action"`
	Comment string                  `json:"comment" binding:"max=2000"`
}

// ListMemorandaParams defines query parameters for listing memoranda.
type ListMemorandaParams struct {
	Status    string  `form:"status"`
	Limit     int     `form:"limit" binding:"omitempty,min=1,max=200"`
	NextToken *string `form:"nextToken"`
}

// ValidationStepResponse is one entry of a memorandum's validation history.
type ValidationStepResponse struct {
	StepID        string                  `json:"stepID"`
	Level         int                     `json:"level"`
	ValidatorID   string                  `json:"validatorID"`
	ValidatorName string                  `json:"validatorName"`
	ValidatorRole domain.Role             `json:"validatorRole"`
	Action        domain.ValidationAction `json:"action"`
	Comment       string                  `json:"comment,omitempty"`
	Timestamp     time.Time               `json:"timestamp"`
}

// MemorandumResponse defines the data returned for a memorandum.
type MemorandumResponse struct {
	MemorandumID      string                    `json:"memorandumID"`
	Title             string                    `json:"title"`
	Content           string                    `json:"content"`
	Category          domain.MemorandumCategory `json:"category"`
	Priority          domain.MemorandumPriority `json:"priority"`
	AuthorID          string                    `json:"authorID"`
	AuthorName        string                    `json:"authorName"`
	TargetAudience    []string                  `json:"targetAudience"`
	Status            domain.MemorandumStatus   `json:"status"`
	NextExpectedLevel *int                      `json:"nextExpectedLevel,omitempty"`
	ValidationHistory []ValidationStepResponse  `json:"validationHistory"`
	CreatedAt         time.Time                 `json:"createdAt"`
	LastUpdatedAt     time.Time                 `json:"lastUpdatedAt"`
	LastUpdatedBy     string                    `json:"lastUpdatedBy"`
}

// ListMemorandaResponse wraps a page of memoranda.
type ListMemorandaResponse struct {
	Memoranda []MemorandumResponse `json:"memoranda"`
	NextToken *string              `json:"nextToken,omitempty"`
}

// ToValidationStepResponse converts a domain.ValidationStep to its DTO.
func ToValidationStepResponse(step domain.ValidationStep) ValidationStepResponse {
	return ValidationStepResponse{
		StepID:        step.StepID,
		Level:         int(step.Level),
		ValidatorID:   step.ValidatorID,
		ValidatorName: step.ValidatorName,
		ValidatorRole: step.ValidatorRole,
		Action:        step.Action,
		Comment:       step.Comment,
		Timestamp:     step.Timestamp,
	}
}

// ToValidationStepResponses converts a history slice, never returning nil.
func ToValidationStepResponses(steps []domain.ValidationStep) []ValidationStepResponse {
	res := make([]ValidationStepResponse, len(steps))
	for i, step := range steps {
		res[i] = ToValidationStepResponse(step)
	}
	return res
}

// ToMemorandumResponse converts a domain.Memorandum to MemorandumResponse DTO
func ToMemorandumResponse(memo *domain.Memorandum) MemorandumResponse {
	res := MemorandumResponse{
		MemorandumID:      memo.MemorandumID,
		Title:             memo.Title,
		Content:           memo.Content,
		Category:          memo.Category,
		Priority:          memo.Priority,
		AuthorID:          memo.AuthorID,
		AuthorName:        memo.AuthorName,
		TargetAudience:    memo.TargetAudience,
		Status:            memo.Status,
		ValidationHistory: ToValidationStepResponses(memo.ValidationHistory),
		CreatedAt:         memo.CreatedAt,
		LastUpdatedAt:     memo.LastUpdatedAt,
		LastUpdatedBy:     memo.LastUpdatedBy,
	}
	if level, ok := memo.NextExpectedLevel(); ok {
		l := int(level)
		res.NextExpectedLevel = &l
	}
	return res
}

// ToListMemorandaResponse converts a page of memoranda.
func ToListMemorandaResponse(memos []domain.Memorandum, nextToken *string) ListMemorandaResponse {
	res := make([]MemorandumResponse, len(memos))
	for i := range memos {
		res[i] = ToMemorandumResponse(&memos[i])
	}
	return ListMemorandaResponse{Memoranda: res, NextToken: nextToken}
}
