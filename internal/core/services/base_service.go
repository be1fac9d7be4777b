package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/SscSPs/hr_memo_app/internal/apperrors"
	"github.com/SscSPs/hr_memo_app/internal/core/domain"
	"github.com/SscSPs/hr_memo_app/internal/middleware"
)

// BaseService provides common functionality for all services
type BaseService struct{}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogWarn logs a rejected request. Business-rule failures are logged at this level.
func (s *BaseService) LogWarn(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("reason", err.Error()))
	args = append(args, keyvals...)
	logger.Warn(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

// LogFailure picks Warn for business-rule errors and Error for everything else.
func (s *BaseService) LogFailure(ctx context.Context, err error, msg string, keyvals ...any) {
	if apperrors.IsBusinessRule(err) {
		s.LogWarn(ctx, err, msg, keyvals...)
		return
	}
	s.LogError(ctx, err, msg, keyvals...)
}

// RequireRole fails with ErrUnauthorized unless actor holds one of roles.
func (s *BaseService) RequireRole(actor domain.Actor, action string, roles ...domain.Role) error {
	if slices.Contains(roles, actor.Role) {
		return nil
	}
	return fmt.Errorf("%w: role %q may not %s", apperrors.ErrUnauthorized, actor.Role, action)
}

// storeError passes classified errors through and marks anything else as a persistence failure.
func storeError(err error, msg string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, apperrors.ErrPersistence) ||
		errors.Is(err, apperrors.ErrStatusChanged) ||
		apperrors.IsBusinessRule(err) {
		return err
	}
	return apperrors.NewPersistenceError(msg, err)
}
