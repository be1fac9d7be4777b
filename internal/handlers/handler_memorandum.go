package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/SscSPs/hr_memo_app/internal/core/domain"
	portssvc "github.com/SscSPs/hr_memo_app/internal/core/ports/services"
	"github.com/SscSPs/hr_memo_app/internal/dto"
	"github.com/SscSPs/hr_memo_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// memorandumHandler handles HTTP requests for memoranda and their validation.
type memorandumHandler struct {
	memorandumService portssvc.MemorandumSvcFacade
	employeeService   portssvc.EmployeeReaderSvc
}

func newMemorandumHandler(ms portssvc.MemorandumSvcFacade, es portssvc.EmployeeReaderSvc) *memorandumHandler {
	return &memorandumHandler{
		memorandumService: ms,
		employeeService:   es,
	}
}

// RegisterMemorandumRoutes registers all memorandum-related routes on an authenticated group.
func RegisterMemorandumRoutes(rg *gin.RouterGroup, memorandumService portssvc.MemorandumSvcFacade, employeeService portssvc.EmployeeReaderSvc) {
	h := newMemorandumHandler(memorandumService, employeeService)

	memos := rg.Group("/memorandums")
	{
		memos.POST("", h.createMemorandum)
		memos.GET("", h.listMemoranda)
		memos.GET("/review-queue/:level", h.listReviewQueue)
		memos.GET("/:memorandumID", h.getMemorandum)
		memos.PATCH("/:memorandumID", h.updateMemorandum)
		memos.DELETE("/:memorandumID", h.deleteMemorandum)
		memos.POST("/:memorandumID/validations", h.validateMemorandum)
		memos.GET("/:memorandumID/validations", h.getValidationHistory)
	}
}

// createMemorandum godoc
// @Summary Submit a memorandum
// @Description Creates a memorandum authored by the caller. It starts awaiting level 1 validation.
// @Tags memorandums
// @Accept json
// @Produce json
// @Param memorandum body dto.CreateMemorandumRequest true "Memorandum"
// @Success 201 {object} dto.MemorandumResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Security BearerAuth
// @Router /memorandums [post]
func (h *memorandumHandler) createMemorandum(c *gin.Context) {
	var req dto.CreateMemorandumRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	author, ok := currentActor(c, h.employeeService)
	if !ok {
		return
	}

	memo, err := h.memorandumService.CreateMemorandum(c.Request.Context(), req, author)
	if err != nil {
		respondError(c, err, "Failed to create memorandum")
		return
	}
	c.JSON(http.StatusCreated, dto.ToMemorandumResponse(memo))
}

// listMemoranda godoc
// @Summary List memoranda
// @Description Lists memoranda newest first, optionally filtered by status.
// @Tags memorandums
// @Produce json
// @Param status query string false "Status filter" Enums(draft, level1_pending, level2_pending, level3_pending, approved, rejected)
// @Param limit query int false "Page size (1-200)"
// @Param nextToken query string false "Token returned by the previous page"
// @Success 200 {object} dto.ListMemorandaResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /memorandums [get]
func (h *memorandumHandler) listMemoranda(c *gin.Context) {
	var params dto.ListMemorandaParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}

	memos, next, err := h.memorandumService.ListMemoranda(c.Request.Context(), params)
	if err != nil {
		respondError(c, err, "Failed to list memoranda")
		return
	}
	c.JSON(http.StatusOK, dto.ToListMemorandaResponse(memos, next))
}

// listReviewQueue godoc
// @Summary Review queue for a level
// @Description Lists the memoranda currently awaiting a decision at the given level.
// @Tags memorandums
// @Produce json
// @Param level path int true "Validation level (1-3)"
// @Success 200 {object} dto.ListMemorandaResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /memorandums/review-queue/{level} [get]
func (h *memorandumHandler) listReviewQueue(c *gin.Context) {
	level, err := strconv.Atoi(c.Param("level"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "level must be a number", Kind: kindBusinessRule})
		return
	}

	memos, err := h.memorandumService.ListReviewQueue(c.Request.Context(), domain.ValidationLevel(level))
	if err != nil {
		respondError(c, err, "Failed to list review queue")
		return
	}
	c.JSON(http.StatusOK, dto.ToListMemorandaResponse(memos, nil))
}

// getMemorandum godoc
// @Summary Get a memorandum
// @Tags memorandums
// @Produce json
// @Param memorandumID path string true "Memorandum ID"
// @Success 200 {object} dto.MemorandumResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /memorandums/{memorandumID} [get]
func (h *memorandumHandler) getMemorandum(c *gin.Context) {
	memo, err := h.memorandumService.GetMemorandumByID(c.Request.Context(), c.Param("memorandumID"))
	if err != nil {
		respondError(c, err, "Failed to get memorandum")
		return
	}
	c.JSON(http.StatusOK, dto.ToMemorandumResponse(memo))
}

// updateMemorandum godoc
// @Summary Edit a memorandum
// @Description Edits a memorandum that has not reached a final status. Author or admin only.
// @Tags memorandums
// @Accept json
// @Produce json
// @Param memorandumID path string true "Memorandum ID"
// @Param memorandum body dto.UpdateMemorandumRequest true "Fields to change"
// @Success 200 {object} dto.MemorandumResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Memorandum is approved or rejected"
// @Security BearerAuth
// @Router /memorandums/{memorandumID} [patch]
func (h *memorandumHandler) updateMemorandum(c *gin.Context) {
	var req dto.UpdateMemorandumRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	actor, ok := currentActor(c, h.employeeService)
	if !ok {
		return
	}

	memo, err := h.memorandumService.UpdateMemorandum(c.Request.Context(), c.Param("memorandumID"), req, actor)
	if err != nil {
		respondError(c, err, "Failed to update memorandum")
		return
	}
	c.JSON(http.StatusOK, dto.ToMemorandumResponse(memo))
}

// deleteMemorandum godoc
// @Summary Delete a memorandum
// @Description Deletes a memorandum and its validation history. Author or admin only.
// @Tags memorandums
// @Param memorandumID path string true "Memorandum ID"
// @Success 204
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /memorandums/{memorandumID} [delete]
func (h *memorandumHandler) deleteMemorandum(c *gin.Context) {
	actor, ok := currentActor(c, h.employeeService)
	if !ok {
		return
	}
	if err := h.memorandumService.DeleteMemorandum(c.Request.Context(), c.Param("memorandumID"), actor); err != nil {
		respondError(c, err, "Failed to delete memorandum")
		return
	}
	c.Status(http.StatusNoContent)
}

// validateMemorandum godoc
// @Summary Record a validation decision
// @Description Approves or rejects a memorandum at its pending level. Rejections need a comment.
// @Tags memorandums
// @Accept json
// @Produce json
// @Param memorandumID path string true "Memorandum ID"
// @Param decision body dto.ValidateMemorandumRequest true "Decision"
// @Success 200 {object} dto.MemorandumResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse "Role not allowed at this level"
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Level mismatch or memorandum already decided"
// @Failure 503 {object} ErrorResponse "Store unavailable, safe to retry"
// @Security BearerAuth
// @Router /memorandums/{memorandumID}/validations [post]
func (h *memorandumHandler) validateMemorandum(c *gin.Context) {
	var req dto.ValidateMemorandumRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	validator, ok := currentActor(c, h.employeeService)
	if !ok {
		return
	}
	memorandumID := c.Param("memorandumID")

	memo, err := h.memorandumService.Validate(c.Request.Context(), memorandumID,
		domain.ValidationLevel(req.Level), req.Action, validator, req.Comment)
	if err != nil {
		respondError(c, err, "Validation decision refused")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Validation decision recorded",
		slog.String("memorandum_id", memorandumID),
		slog.Int("level", req.Level),
		slog.String("action", string(req.Action)),
		slog.String("status", string(memo.Status)))
	c.JSON(http.StatusOK, dto.ToMemorandumResponse(memo))
}

// getValidationHistory godoc
// @Summary Validation history
// @Description Lists the decisions taken on a memorandum, oldest first.
// @Tags memorandums
// @Produce json
// @Param memorandumID path string true "Memorandum ID"
// @Success 200 {array} dto.ValidationStepResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /memorandums/{memorandumID}/validations [get]
func (h *memorandumHandler) getValidationHistory(c *gin.Context) {
	steps, err := h.memorandumService.GetValidationHistory(c.Request.Context(), c.Param("memorandumID"))
	if err != nil {
		respondError(c, err, "Failed to get validation history")
		return
	}
	c.JSON(http.StatusOK, dto.ToValidationStepResponses(steps))
}
