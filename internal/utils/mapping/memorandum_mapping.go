package mapping

import (
	"github.com/SscSPs/hr_memo_app/internal/core/domain"
	"github.com/SscSPs/hr_memo_app/internal/models"
)

// ToModelMemorandum converts a domain Memorandum to a model Memorandum. The history is stored separately.
func ToModelMemorandum(d domain.Memorandum) models.Memorandum {
	return models.Memorandum{
		MemorandumID:   d.MemorandumID,
		Title:          d.Title,
		Content:        d.Content,
		Category:       string(d.Category),
		Priority:       string(d.Priority),
		AuthorID:       d.AuthorID,
		AuthorName:     d.AuthorName,
		TargetAudience: d.TargetAudience,
		Status:         string(d.Status),
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainMemorandum converts a model Memorandum and its steps to a domain Memorandum.
func ToDomainMemorandum(m models.Memorandum, steps []models.ValidationStep) domain.Memorandum {
	audience := m.TargetAudience
	if audience == nil {
		audience = []string{}
	}
	return domain.Memorandum{
		MemorandumID:      m.MemorandumID,
		Title:             m.Title,
		Content:           m.Content,
		Category:          domain.MemorandumCategory(m.Category),
		Priority:          domain.MemorandumPriority(m.Priority),
		AuthorID:          m.AuthorID,
		AuthorName:        m.AuthorName,
		TargetAudience:    audience,
		Status:            domain.MemorandumStatus(m.Status),
		ValidationHistory: ToDomainValidationStepSlice(steps),
		AuditFields:       ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelValidationStep converts a domain ValidationStep to a model ValidationStep
func ToModelValidationStep(d domain.ValidationStep) models.ValidationStep {
	var comment *string
	if d.Comment != "" {
		c := d.Comment
		comment = &c
	}
	return models.ValidationStep{
		StepID:        d.StepID,
		MemorandumID:  d.MemorandumID,
		Level:         int16(d.Level),
		ValidatorID:   d.ValidatorID,
		ValidatorName: d.ValidatorName,
		ValidatorRole: string(d.ValidatorRole),
		Action:        string(d.Action),
		Comment:       comment,
		CreatedAt:     d.Timestamp,
	}
}

// ToDomainValidationStep converts a model ValidationStep to a domain ValidationStep
func ToDomainValidationStep(m models.ValidationStep) domain.ValidationStep {
	step := domain.ValidationStep{
		StepID:        m.StepID,
		MemorandumID:  m.MemorandumID,
		Level:         domain.ValidationLevel(m.Level),
		ValidatorID:   m.ValidatorID,
		ValidatorName: m.ValidatorName,
		ValidatorRole: domain.Role(m.ValidatorRole),
		Action:        domain.ValidationAction(m.Action),
		Timestamp:     m.CreatedAt,
	}
	if m.Comment != nil {
		step.Comment = *m.Comment
	}
	return step
}

// ToDomainValidationStepSlice converts steps, never returning nil.
func ToDomainValidationStepSlice(ms []models.ValidationStep) []domain.ValidationStep {
	ds := make([]domain.ValidationStep, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainValidationStep(m)
	}
	return ds
}
