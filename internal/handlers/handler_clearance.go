package handlers

import (
	"log/slog"
	"net/http"

	"github.com/campuslib/library_management_app/internal/core/domain"
	portssvc "github.com/campuslib/library_management_app/internal/core/ports/services"
	"github.com/campuslib/library_management_app/internal/dto"
	"github.com/campuslib/library_management_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// clearanceHandler handles HTTP requests for the clearance workflow.
type clearanceHandler struct {
	clearanceService portssvc.ClearanceSvcFacade
}

func newClearanceHandler(cs portssvc.ClearanceSvcFacade) *clearanceHandler {
	return &clearanceHandler{clearanceService: cs}
}

// RegisterClearanceRoutes registers the clearance workflow routes. Students
// submit and view their own requests; admins and HODs review and decide.
func RegisterClearanceRoutes(rg *gin.RouterGroup, clearanceService portssvc.ClearanceSvcFacade) {
	h := newClearanceHandler(clearanceService)

	clearance := rg.Group("/clearance")
	{
		clearance.POST("", middleware.RequireRoles(domain.RoleStudent), h.submitRequest)
		clearance.GET("/mine", middleware.RequireRoles(domain.RoleStudent), h.listOwnRequests)
		clearance.GET("", middleware.RequireRoles(domain.RoleAdmin, domain.RoleHOD), h.listRequests)
		clearance.PUT("", middleware.RequireRoles(domain.RoleAdmin, domain.RoleHOD), h.recordDecision)
	}
}

// submitRequest godoc
// @Summary Submit a clearance request
// @Description Creates a clearance request for the authenticated student; rejected while an earlier request is still Pending or already Approved
// @Tags clearance
// @Accept  json
// @Produce  json
// @Param   request body dto.SubmitClearanceRequest true "Request details"
// @Success 201 {object} dto.ClearanceResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 409 {object} map[string]string "An active request already exists"
// @Security BearerAuth
// @Router /clearance [post]
func (h *clearanceHandler) submitRequest(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.SubmitClearanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	request, err := h.clearanceService.SubmitRequest(c.Request.Context(), userID, req)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to submit clearance request")
		return
	}

	logger.Info("Clearance request submitted",
		slog.String("request_id", request.RequestID),
		slog.String("type", string(request.Type)))
	c.JSON(http.StatusCreated, dto.ToClearanceResponse(request))
}

// listOwnRequests godoc
// @Summary List the caller's clearance requests
// @Tags clearance
// @Produce  json
// @Success 200 {array} dto.ClearanceResponse
// @Security BearerAuth
// @Router /clearance/mine [get]
func (h *clearanceHandler) listOwnRequests(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	requests, err := h.clearanceService.ListOwnRequests(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list clearance requests")
		return
	}
	c.JSON(http.StatusOK, dto.ToClearanceResponseList(requests))
}

// listRequests godoc
// @Summary List clearance requests for review
// @Description Role-scoped listing: admins see all requests filtered by the librarian sub-status, HODs only their department's students filtered by the HOD sub-status
// @Tags clearance
// @Produce  json
// @Param   status query string true "Sub-status filter" Enums(Pending, Approved, Rejected)
// @Param   page query int false "Page number" default(1)
// @Param   limit query int false "Page size" default(10)
// @Success 200 {object} dto.ListClearanceResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Security BearerAuth
// @Router /clearance [get]
func (h *clearanceHandler) listRequests(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListClearanceParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	role, ok := middleware.GetUserRoleFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	resp, err := h.clearanceService.ListRequests(c.Request.Context(), userID, role, params)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list clearance requests")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// recordDecision godoc
// @Summary Record a decision on a clearance request
// @Description Applies the caller's Approved/Rejected decision. A rejection terminates the request; the approval that completes both sign-offs renders the certificate and disables the student's account
// @Tags clearance
// @Accept  json
// @Produce  json
// @Param   decision body dto.DecideClearanceRequest true "Decision"
// @Success 200 {object} dto.ClearanceResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 403 {object} map[string]string "Not authorized to decide this request"
// @Failure 409 {object} map[string]string "Request already decided"
// @Security BearerAuth
// @Router /clearance [put]
func (h *clearanceHandler) recordDecision(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.DecideClearanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	role, ok := middleware.GetUserRoleFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	request, err := h.clearanceService.RecordDecision(c.Request.Context(), userID, role, req)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to record clearance decision")
		return
	}

	logger.Info("Clearance decision recorded",
		slog.String("request_id", request.RequestID),
		slog.String("status", string(request.Status)))
	c.JSON(http.StatusOK, dto.ToClearanceResponse(request))
}
