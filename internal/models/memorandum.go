package models

import "time"

// Memorandum is a row of the memorandums table.
type Memorandum struct {
	MemorandumID   string   `db:"memorandum_id"`
	Title          string   `db:"title"`
	Content        string   `db:"content"`
	Category       string   `db:"category"`
	Priority       string   `db:"priority"`
	AuthorID       string   `db:"author_id"`
	AuthorName     string   `db:"author_name"`
	TargetAudience []string `db:"target_audience"` // text[]
	Status         string   `db:"status"`
	AuditFields
}

// ValidationStep is a row of the validation_steps table. Rows are only ever inserted.
type ValidationStep struct {
	StepID        string    `db:"step_id"`
	MemorandumID  string    `db:"memorandum_id"`
	Level         int16     `db:"level"`
	ValidatorID   string    `db:"validator_id"`
	ValidatorName string    `db:"validator_name"`
	ValidatorRole string    `db:"validator_role"`
	Action        string    `db:"action"`
	Comment       *string   `db:"comment"`
	CreatedAt     time.Time `db:"created_at"`
}
