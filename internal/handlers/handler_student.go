package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/campuslib/library_management_app/internal/core/ports/services"
	"github.com/campuslib/library_management_app/internal/dto"
	"github.com/campuslib/library_management_app/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/gocarina/gocsv"
)

// studentHandler handles HTTP requests related to student records.
type studentHandler struct {
	userService portssvc.UserSvcFacade
}

func newStudentHandler(us portssvc.UserSvcFacade) *studentHandler {
	return &studentHandler{userService: us}
}

// registerStudentRoutes registers all student-related routes. The roster is
// admin territory.
func registerStudentRoutes(rg *gin.RouterGroup, userService portssvc.UserSvcFacade) {
	h := newStudentHandler(userService)

	students := rg.Group("/students")
	{
		students.GET("", h.listStudents)
		students.GET("/export", h.exportStudents)
		students.GET("/:id", h.getStudent)
		students.POST("", h.createStudent)
		students.PUT("/:id", h.updateStudent)
		students.DELETE("/:id", h.deleteStudent)
	}
}

// listStudents godoc
// @Summary List students
// @Description Retrieves a filtered, paginated page of student records
// @Tags students
// @Produce  json
// @Param   page query int false "Page number" default(1)
// @Param   limit query int false "Page size" default(10)
// @Param   qName query string false "Filter by name substring"
// @Param   qEmail query string false "Filter by email substring"
// @Param   qRollNumber query string false "Filter by roll number substring"
// @Success 200 {object} dto.ListStudentsResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Security BearerAuth
// @Router /students [get]
func (h *studentHandler) listStudents(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListStudentsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.userService.ListStudents(c.Request.Context(), params)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list students")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// exportStudents godoc
// @Summary Export the student roster as CSV
// @Description Streams every student record as a CSV attachment
// @Tags students
// @Produce  text/csv
// @Success 200 {string} string "CSV payload"
// @Security BearerAuth
// @Router /students/export [get]
func (h *studentHandler) exportStudents(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	rows, err := h.userService.ExportStudents(c.Request.Context())
	if err != nil {
		respondServiceError(c, logger, err, "Failed to export students")
		return
	}

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="students.csv"`)
	if err := gocsv.Marshal(rows, c.Writer); err != nil {
		logger.Error("Failed to write CSV export", slog.String("error", err.Error()))
	}
}

// getStudent godoc
// @Summary Get a student by ID
// @Tags students
// @Produce  json
// @Param   id path string true "User ID"
// @Success 200 {object} dto.UserResponse
// @Failure 404 {object} map[string]string "Student not found"
// @Security BearerAuth
// @Router /students/{id} [get]
func (h *studentHandler) getStudent(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	user, err := h.userService.GetUserByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve student")
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// createStudent godoc
// @Summary Register a student
// @Description Creates a student account; a generated password is mailed to them
// @Tags students
// @Accept  json
// @Produce  json
// @Param   student body dto.CreateStudentRequest true "Student details"
// @Success 201 {object} dto.UserResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 409 {object} map[string]string "Email or roll number in use"
// @Security BearerAuth
// @Router /students [post]
func (h *studentHandler) createStudent(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	student, err := h.userService.CreateStudent(c.Request.Context(), req, creatorUserID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create student")
		return
	}

	logger.Info("Student created", slog.String("user_id", student.UserID))
	c.JSON(http.StatusCreated, dto.ToUserResponse(student))
}

// updateStudent godoc
// @Summary Update a student
// @Tags students
// @Accept  json
// @Produce  json
// @Param   id path string true "User ID"
// @Param   student body dto.UpdateStudentRequest true "Fields to update"
// @Success 200 {object} dto.UserResponse
// @Failure 404 {object} map[string]string "Student not found"
// @Security BearerAuth
// @Router /students/{id} [put]
func (h *studentHandler) updateStudent(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.UpdateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	student, err := h.userService.UpdateStudent(c.Request.Context(), c.Param("id"), req, requestingUserID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to update student")
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponse(student))
}

// deleteStudent godoc
// @Summary Delete a student
// @Tags students
// @Param   id path string true "User ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Student not found"
// @Security BearerAuth
// @Router /students/{id} [delete]
func (h *studentHandler) deleteStudent(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.userService.DeleteStudent(c.Request.Context(), c.Param("id"), requestingUserID); err != nil {
		respondServiceError(c, logger, err, "Failed to delete student")
		return
	}
	c.Status(http.StatusNoContent)
}
