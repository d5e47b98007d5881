package handlers

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/classworks/assessment-service/internal/services"
	"github.com/gin-gonic/gin"
)

type GradingHandler struct {
	BaseHandler
	service services.GradingService
}

func NewGradingHandler(service services.GradingService, logger *slog.Logger) *GradingHandler {
	return &GradingHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// GradeResponse handles POST /responses/:id/grade
func (h *GradingHandler) GradeResponse(c *gin.Context) {
	actor, ok := RequireActor(c)
	if !ok {
		return
	}

	id, ok := parseUintParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid response id"})
		return
	}

	var req services.GradeResponseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid request body"})
		return
	}

	if err := h.service.GradeResponse(c.Request.Context(), id, &req, actor.ID); err != nil {
		h.RespondWithError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusOK, "response graded", nil)
}

// GetGrade handles GET /assessments/:id/grades/:student_id
func (h *GradingHandler) GetGrade(c *gin.Context) {
	actor, ok := RequireActor(c)
	if !ok {
		return
	}

	assessmentID, ok := parseUintParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid assessment id"})
		return
	}

	studentID := c.Param("student_id")
	if studentID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "student_id is required"})
		return
	}

	// Students may only read their own grade.
	if actor.Role == RoleStudent && actor.ID != studentID {
		c.JSON(http.StatusForbidden, ErrorResponse{Message: "cannot read another student's grade"})
		return
	}

	grade, err := h.service.GetGrade(c.Request.Context(), assessmentID, studentID)
	if err != nil {
		h.RespondWithError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusOK, "grade retrieved", grade)
}

// ExportGradeSheet handles GET /assignments/:id/grade-sheet
func (h *GradingHandler) ExportGradeSheet(c *gin.Context) {
	actor, ok := RequireActor(c)
	if !ok {
		return
	}

	id, ok := parseUintParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid assignment id"})
		return
	}

	file, err := h.service.ExportGradeSheet(c.Request.Context(), id, actor.ID)
	if err != nil {
		h.RespondWithError(c, err)
		return
	}
	defer file.Close()

	filename := fmt.Sprintf("grade-sheet-%d.xlsx", id)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")

	if err := file.Write(c.Writer); err != nil {
		h.logger.Error("failed to stream grade sheet", "assignment_id", id, "error", err)
	}
}
