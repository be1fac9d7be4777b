package domain

import (
	"fmt"
	"strings"

	"github.com/SscSPs/hr_memo_app/internal/apperrors"
)

// MemorandumStatus is the lifecycle state of a memorandum.
type MemorandumStatus string

const (
	StatusDraft         MemorandumStatus = "draft" // never produced by creation, kept for forward compatibility
	StatusLevel1Pending MemorandumStatus = "level1_pending"
	StatusLevel2Pending MemorandumStatus = "level2_pending"
	StatusLevel3Pending MemorandumStatus = "level3_pending"
	StatusApproved      MemorandumStatus = "approved"
	StatusRejected      MemorandumStatus = "rejected"
)

// IsValid reports whether s is one of the known statuses.
func (s MemorandumStatus) IsValid() bool {
	switch s {
	case StatusDraft, StatusLevel1Pending, StatusLevel2Pending, StatusLevel3Pending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// IsTerminal reports whether no transition is defined out of s.
func (s MemorandumStatus) IsTerminal() bool {
	return s == StatusApproved || s == StatusRejected
}

// PendingLevel returns the level awaiting a decision in status s.
func (s MemorandumStatus) PendingLevel() (ValidationLevel, bool) {
	switch s {
	case StatusLevel1Pending:
		return Level1, true
	case StatusLevel2Pending:
		return Level2, true
	case StatusLevel3Pending:
		return Level3, true
	}
	return 0, false
}

// PendingStatusFor returns the status in which level awaits a decision.
func PendingStatusFor(level ValidationLevel) (MemorandumStatus, bool) {
	switch level {
	case Level1:
		return StatusLevel1Pending, true
	case Level2:
		return StatusLevel2Pending, true
	case Level3:
		return StatusLevel3Pending, true
	}
	return "", false
}

// ParseMemorandumStatus converts a raw string into a MemorandumStatus.
func ParseMemorandumStatus(raw string) (MemorandumStatus, error) {
	s := MemorandumStatus(strings.TrimSpace(raw))
	if !s.IsValid() {
		return "", fmt.Errorf("%w: unknown memorandum status %q", apperrors.ErrValidation, raw)
	}
	return s, nil
}

// MemorandumCategory classifies a memorandum.
type MemorandumCategory string

const (
	CategoryInformation MemorandumCategory = "information"
	CategoryDirective   MemorandumCategory = "directive"
	CategoryRappel      MemorandumCategory = "rappel"
	CategoryUrgent      MemorandumCategory = "urgent"
)

func (c MemorandumCategory) IsValid() bool {
	switch c {
	case CategoryInformation, CategoryDirective, CategoryRappel, CategoryUrgent:
		return true
	}
	return false
}

// MemorandumPriority is the display priority of a memorandum.
type MemorandumPriority string

const (
	PriorityLow    MemorandumPriority = "low"
	PriorityMedium MemorandumPriority = "medium"
	PriorityHigh   MemorandumPriority = "high"
)

func (p MemorandumPriority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// AudienceEveryone is the recipient tag addressing all employees.
const AudienceEveryone = "tous"

// NormalizeAudience trims and de-duplicates tags, preserving order. An empty result becomes {"tous"}.
func NormalizeAudience(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	if len(out) == 0 {
		return []string{AudienceEveryone}
	}
	return out
}

// Memorandum is a formal internal communication subject to multi-level sign-off.
type Memorandum struct {
	MemorandumID      string             `json:"memorandumID"`
	Title             string             `json:"title"`
	Content           string             `json:"content"`
	Category          MemorandumCategory `json:"category"`
	Priority          MemorandumPriority `json:"priority"`
	AuthorID          string             `json:"authorID"`
	AuthorName        string             `json:"authorName"`
	TargetAudience    []string           `json:"targetAudience"`
	Status            MemorandumStatus   `json:"status"`
	ValidationHistory []ValidationStep   `json:"validationHistory"` // chronological
	AuditFields
}

// NextExpectedLevel returns the level whose decision is awaited, derived from the history length.
// It returns false once the memorandum is terminal.
func (m *Memorandum) NextExpectedLevel() (ValidationLevel, bool) {
	if m.Status.IsTerminal() {
		return 0, false
	}
	next := ValidationLevel(len(m.ValidationHistory) + 1)
	if !next.IsValid() {
		return 0, false
	}
	return next, true
}

// CanBeEditedBy reports whether actor may change or delete the memorandum.
func (m *Memorandum) CanBeEditedBy(actor Actor) bool {
	return actor.ID == m.AuthorID || actor.Role == RoleAdmin
}

// MemorandumPatch holds the editable fields of a memorandum; nil fields are left unchanged.
type MemorandumPatch struct {
	Title          *string
	Content        *string
	Category       *MemorandumCategory
	Priority       *MemorandumPriority
	TargetAudience []string
}

// IsEmpty reports whether the patch changes nothing.
func (p MemorandumPatch) IsEmpty() bool {
	return p.Title == nil && p.Content == nil && p.Category == nil && p.Priority == nil && p.TargetAudience == nil
}

// Apply validates the patch and applies it to m. Terminal memoranda are immutable.
func (p MemorandumPatch) Apply(m *Memorandum) error {
	if m.Status.IsTerminal() {
		return fmt.Errorf("%w: memorandum %s is %s and can no longer be edited", apperrors.ErrInvalidStateTransition, m.MemorandumID, m.Status)
	}
	if p.Title != nil {
		title := strings.TrimSpace(*p.Title)
		if title == "" {
			return fmt.Errorf("%w: title cannot be empty", apperrors.ErrValidation)
		}
		m.Title = title
	}
	if p.Content != nil {
		if strings.TrimSpace(*p.Content) == "" {
			return fmt.Errorf("%w: content cannot be empty", apperrors.ErrValidation)
		}
		m.Content = *p.Content
	}
	if p.Category != nil {
		if !p.Category.IsValid() {
			return fmt.Errorf("%w: unknown category %q", apperrors.ErrValidation, *p.Category)
		}
		m.Category = *p.Category
	}
	if p.Priority != nil {
		if !p.Priority.IsValid() {
			return fmt.Errorf("%w: unknown priority %q", apperrors.ErrValidation, *p.Priority)
		}
		m.Priority = *p.Priority
	}
	if p.TargetAudience != nil {
		m.TargetAudience = NormalizeAudience(p.TargetAudience)
	}
	return nil
}
