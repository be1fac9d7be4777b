package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/SscSPs/hr_memo_app/internal/apperrors"
	"github.com/SscSPs/hr_memo_app/internal/core/domain"
	portsrepo "github.com/SscSPs/hr_memo_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/hr_memo_app/internal/core/ports/services"
	"github.com/SscSPs/hr_memo_app/internal/dto"
	"github.com/SscSPs/hr_memo_app/internal/platform/telemetry"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const (
	memorandumScope = "github.com/SscSPs/hr_memo_app/internal/core/services/memorandum"

	outcomeCommitted    = "committed"
	outcomeRejectedRule = "rejected_rule"
	outcomeFailed       = "failed"

	eventMemorandumCreated   = "memorandum_created"
	eventMemorandumValidated = "memorandum_validated"
)

// memorandumService implements the MemorandumSvcFacade interface
type memorandumService struct {
	BaseService
	memoRepo portsrepo.MemorandumRepositoryFacade

	permissions             domain.LevelPermissions
	requireRejectionComment bool
	now                     func() time.Time

	tracer    trace.Tracer
	decisions metric.Int64Counter
	events    portssvc.EventTracker
}

// MemorandumServiceOption is a functional option for configuring the memorandum service
type MemorandumServiceOption func(*memorandumService)

// WithLevelPermissions replaces the default role-to-level mapping. A nil map keeps the default.
func WithLevelPermissions(perms domain.LevelPermissions) MemorandumServiceOption {
	return func(s *memorandumService) {
		if perms != nil {
			s.permissions = perms
		}
	}
}

// WithRejectionCommentRequired toggles the non-empty comment rule for rejections.
func WithRejectionCommentRequired(required bool) MemorandumServiceOption {
	return func(s *memorandumService) {
		s.requireRejectionComment = required
	}
}

// WithClock overrides time.Now, for tests.
func WithClock(now func() time.Time) MemorandumServiceOption {
	return func(s *memorandumService) {
		s.now = now
	}
}

// WithTelemetry sets the tracer and meter used by Validate.
func WithTelemetry(tracer trace.Tracer, meter metric.Meter) MemorandumServiceOption {
	return func(s *memorandumService) {
		s.tracer = tracer
		if counter, err := newDecisionCounter(meter); err == nil {
			s.decisions = counter
		}
	}
}

// WithEventTracker sends workflow events to an analytics sink.
func WithEventTracker(tracker portssvc.EventTracker) MemorandumServiceOption {
	return func(s *memorandumService) {
		s.events = tracker
	}
}

func newDecisionCounter(meter metric.Meter) (metric.Int64Counter, error) {
	return meter.Int64Counter("memo.validation.decisions",
		metric.WithDescription("Validation decisions submitted, by level, action and outcome"),
		metric.WithUnit("{decision}"),
	)
}

// NewMemorandumService creates a new memorandum service with the provided options
func NewMemorandumService(memoRepo portsrepo.MemorandumRepositoryFacade, options ...MemorandumServiceOption) portssvc.MemorandumSvcFacade {
	svc := &memorandumService{
		memoRepo:                memoRepo,
		permissions:             domain.DefaultLevelPermissions(),
		requireRejectionComment: true,
		now:                     time.Now,
		tracer:                  telemetry.Tracer(memorandumScope),
	}
	if counter, err := newDecisionCounter(telemetry.Meter(memorandumScope)); err == nil {
		svc.decisions = counter
	}

	for _, option := range options {
		option(svc)
	}

	return svc
}

// Ensure memorandumService implements the MemorandumSvcFacade interface
var _ portssvc.MemorandumSvcFacade = (*memorandumService)(nil)

func (s *memorandumService) CreateMemorandum(ctx context.Context, req dto.CreateMemorandumRequest, author domain.Actor) (*domain.Memorandum, error) {
	if author.ID == "" {
		return nil, fmt.Errorf("%w: author is required", apperrors.ErrValidation)
	}
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: title cannot be empty", apperrors.ErrValidation)
	}
	if strings.TrimSpace(req.Content) == "" {
		return nil, fmt.Errorf("%w: content cannot be empty", apperrors.ErrValidation)
	}
	if !req.Category.IsValid() {
		return nil, fmt.Errorf("%w: unknown category %q", apperrors.ErrValidation, req.Category)
	}
	priority := req.Priority
	if priority == "" {
		priority = domain.PriorityMedium
	}
	if !priority.IsValid() {
		return nil, fmt.Errorf("%w: unknown priority %q", apperrors.ErrValidation, priority)
	}

	now := s.now().UTC()
	memo := domain.Memorandum{
		MemorandumID:      uuid.NewString(),
		Title:             title,
		Content:           req.Content,
		Category:          req.Category,
		Priority:          priority,
		AuthorID:          author.ID,
		AuthorName:        author.Name,
		TargetAudience:    domain.NormalizeAudience(req.TargetAudience),
		Status:            domain.StatusLevel1Pending,
		ValidationHistory: []domain.ValidationStep{},
		AuditFields:       domain.NewAuditFields(author.ID, now),
	}

	if err := s.memoRepo.SaveMemorandum(ctx, memo); err != nil {
		err = storeError(err, "failed to save memorandum")
		s.LogFailure(ctx, err, "Failed to save memorandum", slog.String("author_id", author.ID))
		return nil, err
	}

	s.track(author.ID, eventMemorandumCreated, map[string]any{
		"memorandum_id": memo.MemorandumID,
		"category":      string(memo.Category),
		"priority":      string(memo.Priority),
	})
	s.LogInfo(ctx, "Memorandum created", slog.String("memorandum_id", memo.MemorandumID))
	return &memo, nil
}

func (s *memorandumService) GetMemorandumByID(ctx context.Context, memorandumID string) (*domain.Memorandum, error) {
	memo, err := s.memoRepo.FindMemorandumByID(ctx, memorandumID)
	if err != nil {
		err = storeError(err, "failed to load memorandum")
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find memorandum by ID", slog.String("memorandum_id", memorandumID))
		}
		return nil, err
	}
	return memo, nil
}

func (s *memorandumService) ListAll(ctx context.Context) ([]domain.Memorandum, error) {
	memos, _, err := s.list(ctx, portsrepo.MemorandumFilter{})
	return memos, err
}

func (s *memorandumService) ListByStatus(ctx context.Context, status domain.MemorandumStatus) ([]domain.Memorandum, error) {
	if !status.IsValid() {
		return nil, fmt.Errorf("%w: unknown memorandum status %q", apperrors.ErrValidation, status)
	}
	memos, _, err := s.list(ctx, portsrepo.MemorandumFilter{Status: &status})
	return memos, err
}

func (s *memorandumService) ListReviewQueue(ctx context.Context, level domain.ValidationLevel) ([]domain.Memorandum, error) {
	status, ok := domain.PendingStatusFor(level)
	if !ok {
		return nil, fmt.Errorf("%w: validation level must be between 1 and %d, got %d", apperrors.ErrValidation, domain.FinalValidationLevel, level)
	}
	return s.ListByStatus(ctx, status)
}

func (s *memorandumService) ListMemoranda(ctx context.Context, params dto.ListMemorandaParams) ([]domain.Memorandum, *string, error) {
	filter := portsrepo.MemorandumFilter{Limit: params.Limit, NextToken: params.NextToken}
	if params.Status != "" {
		status, err := domain.ParseMemorandumStatus(params.Status)
		if err != nil {
			return nil, nil, err
		}
		filter.Status = &status
	}
	return s.list(ctx, filter)
}

func (s *memorandumService) list(ctx context.Context, filter portsrepo.MemorandumFilter) ([]domain.Memorandum, *string, error) {
	memos, next, err := s.memoRepo.ListMemoranda(ctx, filter)
	if err != nil {
		err = storeError(err, "failed to list memoranda")
		s.LogFailure(ctx, err, "Failed to list memoranda")
		return nil, nil, err
	}
	if memos == nil {
		memos = []domain.Memorandum{}
	}
	s.LogDebug(ctx, "Memoranda listed", slog.Int("count", len(memos)))
	return memos, next, nil
}

func (s *memorandumService) GetValidationHistory(ctx context.Context, memorandumID string) ([]domain.ValidationStep, error) {
	steps, err := s.memoRepo.FindValidationSteps(ctx, memorandumID)
	if err != nil {
		err = storeError(err, "failed to load validation history")
		s.LogFailure(ctx, err, "Failed to load validation history", slog.String("memorandum_id", memorandumID))
		return nil, err
	}
	if len(steps) == 0 {
		// An empty log is ambiguous: a fresh memorandum or an unknown id.
		if _, err := s.GetMemorandumByID(ctx, memorandumID); err != nil {
			return nil, err
		}
		return []domain.ValidationStep{}, nil
	}
	return steps, nil
}

func (s *memorandumService) UpdateMemorandum(ctx context.Context, memorandumID string, req dto.UpdateMemorandumRequest, actor domain.Actor) (*domain.Memorandum, error) {
	patch := req.ToPatch()
	if patch.IsEmpty() {
		return nil, fmt.Errorf("%w: no fields to update", apperrors.ErrValidation)
	}

	memo, err := s.GetMemorandumByID(ctx, memorandumID)
	if err != nil {
		return nil, err
	}
	if !memo.CanBeEditedBy(actor) {
		err := fmt.Errorf("%w: only the author or an admin may edit this memorandum", apperrors.ErrUnauthorized)
		s.LogWarn(ctx, err, "Memorandum edit refused", slog.String("memorandum_id", memorandumID), slog.String("actor_id", actor.ID))
		return nil, err
	}

	updated := *memo
	updated.TargetAudience = slices.Clone(memo.TargetAudience)
	if err := patch.Apply(&updated); err != nil {
		s.LogWarn(ctx, err, "Memorandum edit rejected", slog.String("memorandum_id", memorandumID))
		return nil, err
	}
	updated.LastUpdatedAt = s.now().UTC()
	updated.LastUpdatedBy = actor.ID

	if err := s.memoRepo.UpdateMemorandumContent(ctx, updated); err != nil {
		if errors.Is(err, apperrors.ErrStatusChanged) {
			// Only a terminal decision can make the conditional write miss.
			err = fmt.Errorf("%w: memorandum %s was decided while being edited", apperrors.ErrInvalidStateTransition, memorandumID)
		}
		err = storeError(err, "failed to update memorandum")
		s.LogFailure(ctx, err, "Failed to update memorandum", slog.String("memorandum_id", memorandumID))
		return nil, err
	}

	s.LogInfo(ctx, "Memorandum updated", slog.String("memorandum_id", memorandumID))
	return &updated, nil
}

func (s *memorandumService) DeleteMemorandum(ctx context.Context, memorandumID string, actor domain.Actor) error {
	memo, err := s.GetMemorandumByID(ctx, memorandumID)
	if err != nil {
		return err
	}
	if !memo.CanBeEditedBy(actor) {
		err := fmt.Errorf("%w: only the author or an admin may delete this memorandum", apperrors.ErrUnauthorized)
		s.LogWarn(ctx, err, "Memorandum delete refused", slog.String("memorandum_id", memorandumID), slog.String("actor_id", actor.ID))
		return err
	}

	if err := s.memoRepo.DeleteMemorandum(ctx, memorandumID); err != nil {
		err = storeError(err, "failed to delete memorandum")
		s.LogFailure(ctx, err, "Failed to delete memorandum", slog.String("memorandum_id", memorandumID))
		return err
	}

	s.LogInfo(ctx, "Memorandum deleted", slog.String("memorandum_id", memorandumID), slog.String("actor_id", actor.ID))
	return nil
}

func (s *memorandumService) AllowedLevels(role domain.Role) []domain.ValidationLevel {
	return s.permissions.LevelsFor(role)
}

// Validate applies a decision. Checks run in a fixed order: existence, terminal
// state, level, role, comment. The status check is repeated by the store at write time.
func (s *memorandumService) Validate(ctx context.Context, memorandumID string, level domain.ValidationLevel, action domain.ValidationAction, validator domain.Actor, comment string) (*domain.Memorandum, error) {
	ctx, span := s.tracer.Start(ctx, "memorandum.validate", trace.WithAttributes(
		attribute.String("memorandum.id", memorandumID),
		attribute.Int("validation.level", int(level)),
		attribute.String("validation.action", string(action)),
		attribute.String("validator.role", string(validator.Role)),
	))
	defer span.End()

	memo, err := s.validate(ctx, memorandumID, level, action, validator, comment)

	outcome := outcomeCommitted
	if err != nil {
		outcome = outcomeFailed
		if apperrors.IsBusinessRule(err) {
			outcome = outcomeRejectedRule
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetAttributes(attribute.String("memorandum.status", string(memo.Status)))
	}
	if s.decisions != nil {
		s.decisions.Add(ctx, 1, metric.WithAttributes(
			attribute.Int("level", int(level)),
			attribute.String("action", string(action)),
			attribute.String("outcome", outcome),
		))
	}
	return memo, err
}

func (s *memorandumService) validate(ctx context.Context, memorandumID string, level domain.ValidationLevel, action domain.ValidationAction, validator domain.Actor, comment string) (*domain.Memorandum, error) {
	logAttrs := []any{
		slog.String("memorandum_id", memorandumID),
		slog.Int("level", int(level)),
		slog.String("action", string(action)),
		slog.String("validator_id", validator.ID),
	}

	if validator.ID == "" {
		return nil, fmt.Errorf("%w: validator identity is required", apperrors.ErrValidation)
	}

	memo, err := s.GetMemorandumByID(ctx, memorandumID)
	if err != nil {
		return nil, err
	}

	next, err := s.checkDecision(memo, level, action, validator, comment)
	if err != nil {
		s.LogWarn(ctx, err, "Validation refused", logAttrs...)
		return nil, err
	}

	now := s.now().UTC()
	step := domain.ValidationStep{
		StepID:        uuid.NewString(),
		MemorandumID:  memorandumID,
		Level:         level,
		ValidatorID:   validator.ID,
		ValidatorName: validator.Name,
		ValidatorRole: validator.Role,
		Action:        action,
		Comment:       strings.TrimSpace(comment),
		Timestamp:     now,
	}

	err = s.memoRepo.RecordValidation(ctx, memorandumID, memo.Status, next, step, now)
	if errors.Is(err, apperrors.ErrStatusChanged) {
		err = s.classifyLostRace(ctx, memorandumID, level, action)
		s.LogWarn(ctx, err, "Validation lost a concurrent race", logAttrs...)
		return nil, err
	}
	if err != nil {
		err = storeError(err, "failed to record validation")
		s.LogError(ctx, err, "Failed to record validation", logAttrs...)
		return nil, err
	}

	s.track(validator.ID, eventMemorandumValidated, map[string]any{
		"memorandum_id": memorandumID,
		"level":         int(level),
		"action":        string(action),
		"status":        string(next),
	})
	s.LogInfo(ctx, "Validation recorded", append(logAttrs, slog.String("status", string(next)))...)

	updated, err := s.memoRepo.FindMemorandumByID(ctx, memorandumID)
	if err != nil {
		// The decision is committed; answer with the locally applied state.
		s.LogError(ctx, err, "Failed to reload memorandum after validation", logAttrs...)
		applied := *memo
		applied.Status = next
		applied.ValidationHistory = append(slices.Clone(memo.ValidationHistory), step)
		applied.LastUpdatedAt = now
		applied.LastUpdatedBy = validator.ID
		return &applied, nil
	}
	return updated, nil
}

// checkDecision returns the status the decision leads to, or the rule it breaks.
func (s *memorandumService) checkDecision(memo *domain.Memorandum, level domain.ValidationLevel, action domain.ValidationAction, validator domain.Actor, comment string) (domain.MemorandumStatus, error) {
	next, err := domain.NextStatus(memo.Status, level, action)
	if err != nil {
		return "", err
	}
	if !s.permissions.Allows(level, validator.Role) {
		return "", fmt.Errorf("%w: role %q may not validate level %d", apperrors.ErrUnauthorized, validator.Role, level)
	}
	if action == domain.ActionRejected && s.requireRejectionComment && strings.TrimSpace(comment) == "" {
		return "", fmt.Errorf("%w: a comment is required when rejecting", apperrors.ErrValidation)
	}
	return next, nil
}

// classifyLostRace re-reads a memorandum whose conditional write missed and
// reports why the decision no longer applies.
func (s *memorandumService) classifyLostRace(ctx context.Context, memorandumID string, level domain.ValidationLevel, action domain.ValidationAction) error {
	current, err := s.GetMemorandumByID(ctx, memorandumID)
	if err != nil {
		return err
	}
	if _, err := domain.NextStatus(current.Status, level, action); err != nil {
		return err
	}
	return fmt.Errorf("%w: memorandum %s changed while the decision was being recorded", apperrors.ErrLevelMismatch, memorandumID)
}

func (s *memorandumService) track(distinctID, event string, properties map[string]any) {
	if s.events == nil {
		return
	}
	s.events.Enqueue(distinctID, event, properties)
}
