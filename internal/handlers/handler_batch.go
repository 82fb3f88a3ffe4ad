package handlers

import (
	"net/http"

	portssvc "github.com/campuslib/library_management_app/internal/core/ports/services"
	"github.com/campuslib/library_management_app/internal/dto"
	"github.com/campuslib/library_management_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

type batchHandler struct {
	batchService portssvc.BatchSvcFacade
}

func newBatchHandler(bs portssvc.BatchSvcFacade) *batchHandler {
	return &batchHandler{batchService: bs}
}

func registerBatchRoutes(rg *gin.RouterGroup, batchService portssvc.BatchSvcFacade) {
	h := newBatchHandler(batchService)

	batches := rg.Group("/batches")
	{
		batches.GET("", h.listBatches)
		batches.GET("/:id", h.getBatch)
		batches.POST("", h.createBatch)
		batches.PUT("/:id", h.updateBatch)
		batches.DELETE("/:id", h.deleteBatch)
	}
}

// listBatches godoc
// @Summary List batches
// @Tags batches
// @Produce  json
// @Param   page query int false "Page number" default(1)
// @Param   limit query int false "Page size" default(10)
// @Param   q query string false "Filter by name substring"
// @Success 200 {object} dto.ListBatchesResponse
// @Security BearerAuth
// @Router /batches [get]
func (h *batchHandler) listBatches(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListBatchesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.batchService.ListBatches(c.Request.Context(), params)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list batches")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// getBatch godoc
// @Summary Get a batch by ID
// @Tags batches
// @Produce  json
// @Param   id path string true "Batch ID"
// @Success 200 {object} dto.BatchResponse
// @Failure 404 {object} map[string]string "Batch not found"
// @Security BearerAuth
// @Router /batches/{id} [get]
func (h *batchHandler) getBatch(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	batch, err := h.batchService.GetBatchByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve batch")
		return
	}
	c.JSON(http.StatusOK, dto.ToBatchResponse(batch))
}

// createBatch godoc
// @Summary Create a batch
// @Tags batches
// @Accept  json
// @Produce  json
// @Param   batch body dto.CreateBatchRequest true "Batch details"
// @Success 201 {object} dto.BatchResponse
// @Failure 409 {object} map[string]string "Batch name in use"
// @Security BearerAuth
// @Router /batches [post]
func (h *batchHandler) createBatch(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	batch, err := h.batchService.CreateBatch(c.Request.Context(), req, creatorUserID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create batch")
		return
	}
	c.JSON(http.StatusCreated, dto.ToBatchResponse(batch))
}

// updateBatch godoc
// @Summary Update a batch
// @Tags batches
// @Accept  json
// @Produce  json
// @Param   id path string true "Batch ID"
// @Param   batch body dto.UpdateBatchRequest true "Fields to update"
// @Success 200 {object} dto.BatchResponse
// @Failure 404 {object} map[string]string "Batch not found"
// @Security BearerAuth
// @Router /batches/{id} [put]
func (h *batchHandler) updateBatch(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.UpdateBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	batch, err := h.batchService.UpdateBatch(c.Request.Context(), c.Param("id"), req, requestingUserID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to update batch")
		return
	}
	c.JSON(http.StatusOK, dto.ToBatchResponse(batch))
}

// deleteBatch godoc
// @Summary Delete a batch
// @Tags batches
// @Param   id path string true "Batch ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Batch not found"
// @Security BearerAuth
// @Router /batches/{id} [delete]
func (h *batchHandler) deleteBatch(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.batchService.DeleteBatch(c.Request.Context(), c.Param("id"), requestingUserID); err != nil {
		respondServiceError(c, logger, err, "Failed to delete batch")
		return
	}
	c.Status(http.StatusNoContent)
}
