package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/hr_memo_app/internal/apperrors"
	"github.com/SscSPs/hr_memo_app/internal/core/domain"
	portssvc "github.com/SscSPs/hr_memo_app/internal/core/ports/services"
	"github.com/SscSPs/hr_memo_app/internal/dto"
	"github.com/SscSPs/hr_memo_app/internal/middleware"

	"github.com/gin-gonic/gin"
)

// employeeHandler handles HTTP requests related to employees.
type employeeHandler struct {
	employeeService   portssvc.EmployeeSvcFacade
	memorandumService portssvc.MemorandumValidatorSvc
}

func newEmployeeHandler(es portssvc.EmployeeSvcFacade, ms portssvc.MemorandumValidatorSvc) *employeeHandler {
	return &employeeHandler{
		employeeService:   es,
		memorandumService: ms,
	}
}

// MeResponse describes the caller and the validation levels they may decide at.
type MeResponse struct {
	dto.EmployeeResponse
	ValidationLevels []int `json:"validationLevels"`
}

// RegisterEmployeeRoutes registers all employee-related routes.
func RegisterEmployeeRoutes(rg *gin.RouterGroup, employeeService portssvc.EmployeeSvcFacade, memorandumService portssvc.MemorandumValidatorSvc) {
	h := newEmployeeHandler(employeeService, memorandumService)

	rg.GET("/me", h.getMe)

	employees := rg.Group("/employees")
	{
		employees.GET("", h.listEmployees)         // Admin only
		employees.POST("", h.createEmployee)       // Admin only
		employees.GET("/:id", h.getEmployee)       // Own or admin
		employees.PATCH("/:id", h.updateEmployee)  // Own or admin, role change admin only
		employees.DELETE("/:id", h.deleteEmployee) // Admin only
	}
}

// getMe godoc
// @Summary Current employee
// @Tags employees
// @Produce json
// @Success 200 {object} MeResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /me [get]
func (h *employeeHandler) getMe(c *gin.Context) {
	employeeID, ok := middleware.GetEmployeeIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized", Kind: kindBusinessRule})
		return
	}
	employee, err := h.employeeService.GetEmployeeByID(c.Request.Context(), employeeID)
	if err != nil {
		respondError(c, err, "Failed to load current employee")
		return
	}

	levels := h.memorandumService.AllowedLevels(employee.Role)
	res := MeResponse{EmployeeResponse: dto.ToEmployeeResponse(employee), ValidationLevels: make([]int, len(levels))}
	for i, level := range levels {
		res.ValidationLevels[i] = int(level)
	}
	c.JSON(http.StatusOK, res)
}

// createEmployee godoc
// @Summary Create an employee
// @Description Registers a new employee account. Admin only.
// @Tags employees
// @Accept  json
// @Produce  json
// @Param   employee body dto.CreateEmployeeRequest true "Employee details"
// @Success 201 {object} dto.EmployeeResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Email already registered"
// @Security BearerAuth
// @Router /employees [post]
func (h *employeeHandler) createEmployee(c *gin.Context) {
	var req dto.CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	creator, ok := currentActor(c, h.employeeService)
	if !ok {
		return
	}

	employee, err := h.employeeService.CreateEmployee(c.Request.Context(), req, creator)
	if err != nil {
		respondError(c, err, "Failed to create employee")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Employee created successfully", slog.String("new_employee_id", employee.EmployeeID))
	c.JSON(http.StatusCreated, dto.ToEmployeeResponse(employee))
}

// getEmployee godoc
// @Summary Get an employee by ID
// @Tags employees
// @Produce  json
// @Param   id path string true "Employee ID"
// @Success 200 {object} dto.EmployeeResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /employees/{id} [get]
func (h *employeeHandler) getEmployee(c *gin.Context) {
	actor, ok := currentActor(c, h.employeeService)
	if !ok {
		return
	}
	employeeID := c.Param("id")
	if actor.ID != employeeID && actor.Role != domain.RoleAdmin {
		respondError(c, apperrors.NewForbiddenError("only admins may view other employees"), "Employee lookup refused")
		return
	}

	employee, err := h.employeeService.GetEmployeeByID(c.Request.Context(), employeeID)
	if err != nil {
		respondError(c, err, "Failed to get employee")
		return
	}
	c.JSON(http.StatusOK, dto.ToEmployeeResponse(employee))
}

// listEmployees godoc
// @Summary List employees
// @Tags employees
// @Produce  json
// @Param   limit query int false "Limit"
// @Param   offset query int false "Offset"
// @Success 200 {object} dto.ListEmployeesResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /employees [get]
func (h *employeeHandler) listEmployees(c *gin.Context) {
	var params dto.ListEmployeesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}
	actor, ok := currentActor(c, h.employeeService)
	if !ok {
		return
	}
	if actor.Role != domain.RoleAdmin {
		respondError(c, apperrors.NewForbiddenError("only admins may list employees"), "Employee listing refused")
		return
	}

	employees, err := h.employeeService.ListEmployees(c.Request.Context(), params.Limit, params.Offset)
	if err != nil {
		respondError(c, err, "Failed to list employees")
		return
	}
	c.JSON(http.StatusOK, dto.ToListEmployeesResponse(employees))
}

// updateEmployee godoc
// @Summary Update an employee
// @Description Updates the name, and for admins the role, of an employee.
// @Tags employees
// @Accept  json
// @Produce  json
// @Param   id path string true "Employee ID"
// @Param   employee body dto.UpdateEmployeeRequest true "Fields to change"
// @Success 200 {object} dto.EmployeeResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /employees/{id} [patch]
func (h *employeeHandler) updateEmployee(c *gin.Context) {
	var req dto.UpdateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	actor, ok := currentActor(c, h.employeeService)
	if !ok {
		return
	}

	employee, err := h.employeeService.UpdateEmployee(c.Request.Context(), c.Param("id"), req, actor)
	if err != nil {
		respondError(c, err, "Failed to update employee")
		return
	}
	c.JSON(http.StatusOK, dto.ToEmployeeResponse(employee))
}

// deleteEmployee godoc
// @Summary Delete an employee
// @Description Soft deletes an employee. Admin only.
// @Tags employees
// @Param   id path string true "Employee ID"
// @Success 204
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /employees/{id} [delete]
func (h *employeeHandler) deleteEmployee(c *gin.Context) {
	actor, ok := currentActor(c, h.employeeService)
	if !ok {
		return
	}
	if err := h.employeeService.DeleteEmployee(c.Request.Context(), c.Param("id"), actor); err != nil {
		respondError(c, err, "Failed to delete employee")
		return
	}
	c.Status(http.StatusNoContent)
}
