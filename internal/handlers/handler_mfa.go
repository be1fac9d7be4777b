package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/hr_memo_app/internal/core/ports/services"
	"github.com/SscSPs/hr_memo_app/internal/dto"
	"github.com/SscSPs/hr_memo_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

type mfaHandler struct {
	mfaService portssvc.MFASvc
}

// RegisterMFARoutes registers the second factor routes of the authenticated employee.
// verifyLimit guards the code checking routes against guessing.
func RegisterMFARoutes(rg *gin.RouterGroup, mfaService portssvc.MFASvc, verifyLimit gin.HandlerFunc) {
	h := &mfaHandler{mfaService: mfaService}

	mfa := rg.Group("/me/mfa")
	{
		mfa.GET("/status", h.getStatus)
		mfa.POST("/setup", h.setup)
		mfa.POST("/enable", verifyLimit, h.enable)
		mfa.POST("/verify", verifyLimit, h.verify)
		mfa.POST("/backup-codes/verify", verifyLimit, h.verifyBackupCode)
		mfa.DELETE("", h.disable)
	}
}

func (h *mfaHandler) employeeID(c *gin.Context) (string, bool) {
	employeeID, ok := middleware.GetEmployeeIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized", Kind: kindBusinessRule})
	}
	return employeeID, ok
}

// setup godoc
// @Summary Start MFA setup
// @Description Generates a pending TOTP secret, its QR code and ten backup codes. The codes are shown only once.
// @Tags mfa
// @Produce json
// @Success 200 {object} dto.MFASetupResponse
// @Failure 409 {object} ErrorResponse "MFA already enabled"
// @Security BearerAuth
// @Router /me/mfa/setup [post]
func (h *mfaHandler) setup(c *gin.Context) {
	employeeID, ok := h.employeeID(c)
	if !ok {
		return
	}
	setup, err := h.mfaService.SetupMFA(c.Request.Context(), employeeID)
	if err != nil {
		respondError(c, err, "Failed to set up MFA")
		return
	}
	c.JSON(http.StatusOK, dto.ToMFASetupResponse(setup))
}

// enable godoc
// @Summary Enable MFA
// @Description Activates the pending secret once a code generated from it is supplied.
// @Tags mfa
// @Accept json
// @Param code body dto.MFACodeRequest true "TOTP code"
// @Success 204
// @Failure 401 {object} ErrorResponse "Invalid code"
// @Failure 409 {object} ErrorResponse "No pending setup"
// @Security BearerAuth
// @Router /me/mfa/enable [post]
func (h *mfaHandler) enable(c *gin.Context) {
	var req dto.MFACodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	employeeID, ok := h.employeeID(c)
	if !ok {
		return
	}
	if err := h.mfaService.EnableMFA(c.Request.Context(), employeeID, req.Code); err != nil {
		respondError(c, err, "Failed to enable MFA")
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("MFA enabled", slog.String("employee_id", employeeID))
	c.Status(http.StatusNoContent)
}

// verify godoc
// @Summary Check a TOTP code
// @Tags mfa
// @Accept json
// @Produce json
// @Param code body dto.MFACodeRequest true "TOTP code"
// @Success 200 {object} dto.MFAVerifyResponse
// @Failure 429 {object} ErrorResponse
// @Security BearerAuth
// @Router /me/mfa/verify [post]
func (h *mfaHandler) verify(c *gin.Context) {
	var req dto.MFACodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	employeeID, ok := h.employeeID(c)
	if !ok {
		return
	}
	valid, err := h.mfaService.VerifyToken(c.Request.Context(), employeeID, req.Code)
	if err != nil {
		respondError(c, err, "Failed to verify MFA code")
		return
	}
	c.JSON(http.StatusOK, dto.MFAVerifyResponse{Valid: valid})
}

// verifyBackupCode godoc
// @Summary Use a backup code
// @Description Checks a backup code and consumes it when valid.
// @Tags mfa
// @Accept json
// @Produce json
// @Param code body dto.MFACodeRequest true "Backup code"
// @Success 200 {object} dto.MFAVerifyResponse
// @Failure 429 {object} ErrorResponse
// @Security BearerAuth
// @Router /me/mfa/backup-codes/verify [post]
func (h *mfaHandler) verifyBackupCode(c *gin.Context) {
	var req dto.MFACodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	employeeID, ok := h.employeeID(c)
	if !ok {
		return
	}
	valid, err := h.mfaService.VerifyBackupCode(c.Request.Context(), employeeID, req.Code)
	if err != nil {
		respondError(c, err, "Failed to verify backup code")
		return
	}
	c.JSON(http.StatusOK, dto.MFAVerifyResponse{Valid: valid})
}

// disable godoc
// @Summary Disable MFA
// @Tags mfa
// @Success 204
// @Security BearerAuth
// @Router /me/mfa [delete]
func (h *mfaHandler) disable(c *gin.Context) {
	employeeID, ok := h.employeeID(c)
	if !ok {
		return
	}
	if err := h.mfaService.DisableMFA(c.Request.Context(), employeeID); err != nil {
		respondError(c, err, "Failed to disable MFA")
		return
	}
	c.Status(http.StatusNoContent)
}

// getStatus godoc
// @Summary MFA status
// @Tags mfa
// @Produce json
// @Success 200 {object} dto.MFAStatusResponse
// @Security BearerAuth
// @Router /me/mfa/status [get]
func (h *mfaHandler) getStatus(c *gin.Context) {
	employeeID, ok := h.employeeID(c)
	if !ok {
		return
	}
	status, err := h.mfaService.GetMFAStatus(c.Request.Context(), employeeID)
	if err != nil {
		respondError(c, err, "Failed to get MFA status")
		return
	}
	c.JSON(http.StatusOK, dto.ToMFAStatusResponse(status))
}
