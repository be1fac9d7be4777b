package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/SscSPs/hr_memo_app/internal/apperrors"
	portssvc "github.com/SscSPs/hr_memo_app/internal/core/ports/services"
	"github.com/SscSPs/hr_memo_app/internal/dto"
	"github.com/SscSPs/hr_memo_app/internal/middleware"

	"github.com/gin-gonic/gin"
)

// GoogleOAuthHandler signs existing employees in with a Google authorization code.
// Google accounts are never provisioned here; an admin must have created the employee first.
type GoogleOAuthHandler struct {
	googleOAuthService portssvc.GoogleOAuthHandlerSvcFacade
	employeeService    portssvc.EmployeeAuthSvc
	sessions           *AuthHandler
}

// NewGoogleOAuthHandler creates a new instance of GoogleOAuthHandler.
func NewGoogleOAuthHandler(
	googleOAuthService portssvc.GoogleOAuthHandlerSvcFacade,
	employeeService portssvc.EmployeeAuthSvc,
	sessions *AuthHandler,
) *GoogleOAuthHandler {
	return &GoogleOAuthHandler{
		googleOAuthService: googleOAuthService,
		employeeService:    employeeService,
		sessions:           sessions,
	}
}

// ExchangeCodeGoogle handles the POST request from the frontend containing the authorization code from Google.
// @Summary Sign in with Google
// @Description Exchanges a Google authorization code, validates the ID token and signs in the matching employee.
// @Tags auth
// @Accept  json
// @Produce  json
// @Param   code body dto.GoogleExchangeCodeRequest true "Authorization code"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} ErrorResponse "Invalid authorization code"
// @Failure 401 {object} ErrorResponse "No employee for this Google account"
// @Failure 504 {object} ErrorResponse "Google unreachable"
// @Router /auth/google/exchange-code [post]
func (h *GoogleOAuthHandler) ExchangeCodeGoogle(c *gin.Context) {
	ctx := c.Request.Context()
	logger := middleware.GetLoggerFromCtx(ctx)

	var req dto.GoogleExchangeCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	oauth2Token, err := h.googleOAuthService.ExchangeCodeForToken(ctx, req.Code)
	if err != nil {
		lower := strings.ToLower(err.Error())
		if strings.Contains(lower, "invalid_grant") || strings.Contains(lower, "bad request") {
			respondError(c, apperrors.NewBadRequestError("Invalid or expired authorization code provided by Google."), "Google rejected the authorization code")
			return
		}
		logger.Error("Failed to exchange authorization code with Google", slog.String("error", err.Error()))
		respondError(c, apperrors.NewGatewayTimeoutError("Failed to communicate with Google OAuth service."), "Google code exchange failed")
		return
	}

	idTokenString, ok := oauth2Token.Extra("id_token").(string)
	if !ok || idTokenString == "" {
		respondError(c, apperrors.NewInternalServerError("Failed to retrieve ID token from Google."), "ID token missing from Google response")
		return
	}

	payload, err := h.googleOAuthService.ValidateGoogleIDToken(ctx, idTokenString)
	if err != nil {
		logger.Warn("Google ID token validation failed", slog.String("error", err.Error()))
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid Google ID token", Kind: kindBusinessRule})
		return
	}

	email, _ := payload.Claims["email"].(string)
	emailVerified, _ := payload.Claims["email_verified"].(bool)
	if email == "" || payload.Subject == "" {
		respondError(c, apperrors.NewInternalServerError("Essential user information missing from Google token."), "Google ID token lacks email or subject")
		return
	}
	if !emailVerified {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Google email address is not verified", Kind: kindBusinessRule})
		return
	}

	employee, err := h.employeeService.AuthenticateGoogleEmployee(ctx, email, payload.Subject)
	if err != nil {
		if errors.Is(err, apperrors.ErrUnauthenticated) {
			logger.Warn("Google sign-in refused", slog.String("google_user_id", payload.Subject), slog.String("error", err.Error()))
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: err.Error(), Kind: kindBusinessRule})
			return
		}
		respondError(c, err, "Failed to resolve Google employee")
		return
	}

	accessToken, ok := h.sessions.issueSession(c, employee)
	if !ok {
		return
	}
	logger.Info("Employee signed in with Google", slog.String("employee_id", employee.EmployeeID))
	c.JSON(http.StatusOK, dto.LoginResponse{Token: accessToken})
}
