package domain

import (
	"fmt"
	"time"

	"github.com/SscSPs/hr_memo_app/internal/apperrors"
)

// ValidationLevel is one of the three sequential approval tiers
// (1 = supervisory, 2 = managerial, 3 = executive).
type ValidationLevel int

const (
	Level1 ValidationLevel = 1
	Level2 ValidationLevel = 2
	Level3 ValidationLevel = 3

	FinalValidationLevel = Level3
)

func (l ValidationLevel) IsValid() bool {
	return l >= Level1 && l <= FinalValidationLevel
}

// ValidationAction is the decision recorded by a ValidationStep.
type ValidationAction string

const (
	ActionApproved ValidationAction = "approved"
	ActionRejected ValidationAction = "rejected"
)

func (a ValidationAction) IsValid() bool {
	return a == ActionApproved || a == ActionRejected
}

// ValidationStep is an immutable record of one decision. The validator fields are a
// snapshot taken at decision time, not a live reference to the employee.
type ValidationStep struct {
	StepID        string           `json:"stepID"`
	MemorandumID  string           `json:"memorandumID"`
	Level         ValidationLevel  `json:"level"`
	ValidatorID   string           `json:"validatorID"`
	ValidatorName string           `json:"validatorName"`
	ValidatorRole Role             `json:"validatorRole"`
	Action        ValidationAction `json:"action"`
	Comment       string           `json:"comment,omitempty"`
	Timestamp     time.Time        `json:"timestamp"`
}

// NextStatus applies the transition table: the decision must be taken at the level
// currently pending. Approval advances to the next level (or approved after level 3),
// rejection terminates at any level.
func NextStatus(current MemorandumStatus, level ValidationLevel, action ValidationAction) (MemorandumStatus, error) {
	if current.IsTerminal() {
		return "", fmt.Errorf("%w: memorandum is already %s", apperrors.ErrInvalidStateTransition, current)
	}
	if !level.IsValid() {
		return "", fmt.Errorf("%w: validation level must be between 1 and %d, got %d", apperrors.ErrValidation, FinalValidationLevel, level)
	}
	if !action.IsValid() {
		return "", fmt.Errorf("%w: unknown validation action %q", apperrors.ErrValidation, action)
	}

	pending, ok := current.PendingLevel()
	if !ok || pending != level {
		return "", fmt.Errorf("%w: memorandum is %s, cannot validate level %d", apperrors.ErrLevelMismatch, current, level)
	}

	if action == ActionRejected {
		return StatusRejected, nil
	}
	if level == FinalValidationLevel {
		return StatusApproved, nil
	}
	next, _ := PendingStatusFor(level + 1)
	return next, nil
}
