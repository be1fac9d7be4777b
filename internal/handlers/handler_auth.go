package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/SscSPs/hr_memo_app/internal/apperrors"
	"github.com/SscSPs/hr_memo_app/internal/core/domain"
	portssvc "github.com/SscSPs/hr_memo_app/internal/core/ports/services"
	"github.com/SscSPs/hr_memo_app/internal/dto"
	"github.com/SscSPs/hr_memo_app/internal/middleware"
	"github.com/SscSPs/hr_memo_app/internal/platform/config"
	"github.com/SscSPs/hr_memo_app/internal/utils"
	"github.com/gin-gonic/gin"
)

// refreshCookieSeparator joins the employee ID and the raw refresh token in the cookie value.
const refreshCookieSeparator = "."

// AuthHandler handles authentication related requests.
type AuthHandler struct {
	employeeService portssvc.EmployeeSvcFacade
	tokenService    portssvc.TokenSvcFacade
	mfaService      portssvc.MFASvc
	cfg             *config.Config
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(es portssvc.EmployeeSvcFacade, ts portssvc.TokenSvcFacade, mfa portssvc.MFASvc, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		employeeService: es,
		tokenService:    ts,
		mfaService:      mfa,
		cfg:             cfg,
	}
}

// registerAuthRoutes sets up the public authentication routes. Login is rate limited per IP.
func registerAuthRoutes(r *gin.Engine, cfg *config.Config, services *portssvc.ServiceContainer, loginLimit gin.HandlerFunc) {
	h := NewAuthHandler(services.Employee, services.TokenService, services.MFA, cfg)
	g := NewGoogleOAuthHandler(services.GoogleOAuthHandler, services.Employee, h)

	auth := r.Group("/api/v1/auth")
	{
		auth.POST("/login", loginLimit, h.Login)
		auth.POST("/refresh", h.Refresh)
		auth.POST("/logout", h.Logout)
		auth.POST("/google/exchange-code", loginLimit, g.ExchangeCodeGoogle)
	}
}

// Login godoc
// @Summary Employee login
// @Description Authenticates an employee with email and password, plus a TOTP or backup code when MFA is enabled.
// @Description Returns an access token and sets the refresh token cookie.
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Login Credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} dto.MFARequiredResponse
// @Failure 429 {object} ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	ctx := c.Request.Context()
	logger := middleware.GetLoggerFromCtx(ctx)

	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	employee, err := h.employeeService.AuthenticateEmployee(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, apperrors.ErrUnauthenticated) {
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid email or password", Kind: kindBusinessRule})
			return
		}
		respondError(c, err, "Login failed")
		return
	}

	if employee.MFAEnabled {
		if err := h.checkSecondFactor(c, employee, req); err != nil {
			if errors.Is(err, apperrors.ErrMFARequired) || errors.Is(err, apperrors.ErrInvalidMFACode) {
				logger.Warn("Second factor missing or invalid", slog.String("employee_id", employee.EmployeeID))
				c.JSON(http.StatusUnauthorized, dto.MFARequiredResponse{Error: err.Error(), MFARequired: true})
				return
			}
			respondError(c, err, "Failed to verify second factor")
			return
		}
	}

	accessToken, ok := h.issueSession(c, employee)
	if !ok {
		return
	}
	logger.Info("Employee logged in", slog.String("employee_id", employee.EmployeeID))
	c.JSON(http.StatusOK, dto.LoginResponse{Token: accessToken})
}

func (h *AuthHandler) checkSecondFactor(c *gin.Context, employee *domain.Employee, req dto.LoginRequest) error {
	ctx := c.Request.Context()
	var (
		valid bool
		err   error
	)
	switch {
	case req.MFACode != "":
		valid, err = h.mfaService.VerifyToken(ctx, employee.EmployeeID, req.MFACode)
	case req.BackupCode != "":
		valid, err = h.mfaService.VerifyBackupCode(ctx, employee.EmployeeID, req.BackupCode)
	default:
		return apperrors.ErrMFARequired
	}
	if err != nil {
		return err
	}
	if !valid {
		return apperrors.ErrInvalidMFACode
	}
	return nil
}

// issueSession creates an access token and a fresh refresh token, stores the refresh
// token hash and sets its cookie. It writes the error response itself on failure.
func (h *AuthHandler) issueSession(c *gin.Context, employee *domain.Employee) (string, bool) {
	ctx := c.Request.Context()

	accessToken, _, err := h.tokenService.GenerateAccessToken(ctx, employee)
	if err != nil {
		respondError(c, apperrors.NewInternalServerError("Failed to generate access token"), "Failed to generate access token")
		return "", false
	}
	refreshToken, expiresAt, err := h.tokenService.GenerateRefreshToken(ctx, employee)
	if err != nil {
		respondError(c, apperrors.NewInternalServerError("Failed to generate refresh token"), "Failed to generate refresh token")
		return "", false
	}
	if err := h.employeeService.UpdateRefreshToken(ctx, employee.EmployeeID, utils.HashRefreshToken(refreshToken), expiresAt); err != nil {
		respondError(c, err, "Failed to store refresh token")
		return "", false
	}

	h.setRefreshCookie(c, employee.EmployeeID+refreshCookieSeparator+refreshToken, int(h.cfg.RefreshTokenExpiryDuration.Seconds()))
	return accessToken, true
}

func (h *AuthHandler) setRefreshCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(h.cfg.RefreshTokenCookieName, value, maxAge, h.cfg.RefreshTokenCookiePath, "", h.cfg.IsProduction, true)
}

// readRefreshCookie returns the employee ID and raw token stored in the refresh cookie.
func (h *AuthHandler) readRefreshCookie(c *gin.Context) (string, string, bool) {
	value, err := c.Cookie(h.cfg.RefreshTokenCookieName)
	if err != nil || value == "" {
		return "", "", false
	}
	employeeID, token, found := strings.Cut(value, refreshCookieSeparator)
	if !found || employeeID == "" || token == "" {
		return "", "", false
	}
	return employeeID, token, true
}

// Refresh godoc
// @Summary Refresh the access token
// @Description Exchanges the refresh token cookie for a new access token. The refresh token is rotated.
// @Tags auth
// @Produce json
// @Success 200 {object} dto.RefreshTokenResponse
// @Failure 401 {object} ErrorResponse
// @Router /auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	employeeID, token, ok := h.readRefreshCookie(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Refresh token missing", Kind: kindBusinessRule})
		return
	}

	employee, err := h.tokenService.ValidateAndParseRefreshToken(c.Request.Context(), employeeID, token)
	if err != nil {
		if errors.Is(err, apperrors.ErrUnauthenticated) || errors.Is(err, apperrors.ErrRefreshTokenExpired) {
			h.setRefreshCookie(c, "", -1)
		}
		respondError(c, err, "Refresh token rejected")
		return
	}

	accessToken, ok := h.issueSession(c, employee)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, dto.RefreshTokenResponse{Token: accessToken})
}

// Logout godoc
// @Summary Logout
// @Description Revokes the refresh token and clears its cookie.
// @Tags auth
// @Success 204
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	if employeeID, token, ok := h.readRefreshCookie(c); ok {
		ctx := c.Request.Context()
		if _, err := h.tokenService.ValidateAndParseRefreshToken(ctx, employeeID, token); err == nil {
			if err := h.employeeService.ClearRefreshToken(ctx, employeeID); err != nil {
				respondError(c, err, "Failed to revoke refresh token")
				return
			}
		}
	}
	h.setRefreshCookie(c, "", -1)
	c.Status(http.StatusNoContent)
}
