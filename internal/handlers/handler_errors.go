package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/hr_memo_app/internal/apperrors"
	"github.com/SscSPs/hr_memo_app/internal/core/domain"
	portssvc "github.com/SscSPs/hr_memo_app/internal/core/ports/services"
	"github.com/SscSPs/hr_memo_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

const (
	kindBusinessRule = "business_rule"
	kindSystem       = "system"
)

// ErrorResponse is the body of every error reply.
// Kind tells the client whether to correct the request (business_rule) or retry later (system).
type ErrorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

// respondError writes err with the status code of its kind. System failures are
// logged and their cause is not echoed to the client.
func respondError(c *gin.Context, err error, msg string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	status := apperrors.HTTPStatus(err)

	if apperrors.IsBusinessRule(err) || status < http.StatusInternalServerError {
		logger.Warn(msg, slog.String("error", err.Error()), slog.Int("status", status))
		c.JSON(status, ErrorResponse{Error: err.Error(), Kind: kindBusinessRule})
		return
	}

	logger.Error(msg, slog.String("error", err.Error()), slog.Int("status", status))
	message := msg
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) && appErr.Message != "" {
		message = appErr.Message
	}
	c.JSON(status, ErrorResponse{Error: message, Kind: kindSystem})
}

func respondBindError(c *gin.Context, err error) {
	middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Invalid request", slog.String("error", err.Error()))
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request: " + err.Error(), Kind: kindBusinessRule})
}

// currentActor loads the authenticated employee and returns their identity snapshot.
// It writes the error response itself and returns false when the request must stop.
func currentActor(c *gin.Context, employees portssvc.EmployeeReaderSvc) (domain.Actor, bool) {
	employeeID, ok := middleware.GetEmployeeIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized", Kind: kindBusinessRule})
		return domain.Actor{}, false
	}
	employee, err := employees.GetEmployeeByID(c.Request.Context(), employeeID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			// Token outlived the account.
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Employee account no longer exists", Kind: kindBusinessRule})
			return domain.Actor{}, false
		}
		respondError(c, err, "Failed to load authenticated employee")
		return domain.Actor{}, false
	}
	return employee.Actor(), true
}
