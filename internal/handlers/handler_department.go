package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/campuslib/library_management_app/internal/core/ports/services"
	"github.com/campuslib/library_management_app/internal/dto"
	"github.com/campuslib/library_management_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// departmentHandler handles HTTP requests related to departments.
type departmentHandler struct {
	departmentService portssvc.DepartmentSvcFacade
}

func newDepartmentHandler(ds portssvc.DepartmentSvcFacade) *departmentHandler {
	return &departmentHandler{departmentService: ds}
}

func registerDepartmentRoutes(rg *gin.RouterGroup, departmentService portssvc.DepartmentSvcFacade) {
	h := newDepartmentHandler(departmentService)

	departments := rg.Group("/departments")
	{
		departments.GET("", h.listDepartments)
		departments.GET("/:id", h.getDepartment)
		departments.POST("", h.createDepartment)
		departments.PUT("/:id", h.updateDepartment)
		departments.DELETE("/:id", h.deleteDepartment)
	}
}

// listDepartments godoc
// @Summary List departments
// @Description Retrieves a paginated page of departments plus the teachers eligible for HOD assignment
// @Tags departments
// @Produce  json
// @Param   page query int false "Page number" default(1)
// @Param   limit query int false "Page size" default(10)
// @Param   q query string false "Filter by name substring"
// @Success 200 {object} dto.ListDepartmentsResponse
// @Security BearerAuth
// @Router /departments [get]
func (h *departmentHandler) listDepartments(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListDepartmentsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.departmentService.ListDepartments(c.Request.Context(), params)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list departments")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// getDepartment godoc
// @Summary Get a department by ID
// @Tags departments
// @Produce  json
// @Param   id path string true "Department ID"
// @Success 200 {object} dto.DepartmentResponse
// @Failure 404 {object} map[string]string "Department not found"
// @Security BearerAuth
// @Router /departments/{id} [get]
func (h *departmentHandler) getDepartment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	department, err := h.departmentService.GetDepartmentByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve department")
		return
	}
	c.JSON(http.StatusOK, dto.ToDepartmentResponse(department))
}

// createDepartment godoc
// @Summary Create a department
// @Description Creates a department and promotes its head to HOD
// @Tags departments
// @Accept  json
// @Produce  json
// @Param   department body dto.CreateDepartmentRequest true "Department details"
// @Success 201 {object} dto.DepartmentResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 409 {object} map[string]string "Department name in use"
// @Security BearerAuth
// @Router /departments [post]
func (h *departmentHandler) createDepartment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateDepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	department, err := h.departmentService.CreateDepartment(c.Request.Context(), req, creatorUserID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create department")
		return
	}

	logger.Info("Department created", slog.String("department_id", department.DepartmentID))
	c.JSON(http.StatusCreated, dto.ToDepartmentResponse(department))
}

// updateDepartment godoc
// @Summary Update a department
// @Description Renames a department and/or reassigns its head; the previous head is demoted when they hold no other headship
// @Tags departments
// @Accept  json
// @Produce  json
// @Param   id path string true "Department ID"
// @Param   department body dto.UpdateDepartmentRequest true "Fields to update"
// @Success 200 {object} dto.DepartmentResponse
// @Failure 404 {object} map[string]string "Department not found"
// @Security BearerAuth
// @Router /departments/{id} [put]
func (h *departmentHandler) updateDepartment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.UpdateDepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	department, err := h.departmentService.UpdateDepartment(c.Request.Context(), c.Param("id"), req, requestingUserID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to update department")
		return
	}
	c.JSON(http.StatusOK, dto.ToDepartmentResponse(department))
}

// deleteDepartment godoc
// @Summary Delete a department
// @Tags departments
// @Param   id path string true "Department ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Department not found"
// @Security BearerAuth
// @Router /departments/{id} [delete]
func (h *departmentHandler) deleteDepartment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.departmentService.DeleteDepartment(c.Request.Context(), c.Param("id"), requestingUserID); err != nil {
		respondServiceError(c, logger, err, "Failed to delete department")
		return
	}
	c.Status(http.StatusNoContent)
}
