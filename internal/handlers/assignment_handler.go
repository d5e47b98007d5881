package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/classworks/assessment-service/internal/models"
	"github.com/classworks/assessment-service/internal/services"
	"github.com/gin-gonic/gin"
)

type AssignmentHandler struct {
	BaseHandler
	service services.AssignmentService
}

func NewAssignmentHandler(service services.AssignmentService, logger *slog.Logger) *AssignmentHandler {
	return &AssignmentHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// AssignToSection handles POST /assignments
func (h *AssignmentHandler) AssignToSection(c *gin.Context) {
	actor, ok := RequireActor(c)
	if !ok {
		return
	}

	var req services.AssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid request body"})
		return
	}

	assignment, err := h.service.Assign(c.Request.Context(), &req, actor.ID)
	if err != nil {
		h.RespondWithError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusCreated, "assignment created", assignment)
}

// ToggleAvailability handles POST /assignments/:id/toggle
func (h *AssignmentHandler) ToggleAvailability(c *gin.Context) {
	actor, ok := RequireActor(c)
	if !ok {
		return
	}

	id, ok := parseUintParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid assignment id"})
		return
	}

	newState, err := h.service.ToggleAvailability(c.Request.Context(), id, actor.ID)
	if err != nil {
		h.RespondWithError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusOK, "availability toggled", gin.H{"is_available": newState})
}

// UpdateWindow handles PUT /assignments/:id/window
func (h *AssignmentHandler) UpdateWindow(c *gin.Context) {
	actor, ok := RequireActor(c)
	if !ok {
		return
	}

	id, ok := parseUintParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid assignment id"})
		return
	}

	var req services.UpdateWindowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid request body"})
		return
	}

	if err := h.service.UpdateWindow(c.Request.Context(), id, &req, actor.ID); err != nil {
		h.RespondWithError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusOK, "window updated", nil)
}

// DeleteAssignment handles DELETE /assignments/:id
func (h *AssignmentHandler) DeleteAssignment(c *gin.Context) {
	actor, ok := RequireActor(c)
	if !ok {
		return
	}

	id, ok := parseUintParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid assignment id"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), id, actor.ID); err != nil {
		h.RespondWithError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusOK, "assignment deleted", nil)
}

// GetVisibility handles GET /assignments/:id/visibility
func (h *AssignmentHandler) GetVisibility(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid assignment id"})
		return
	}

	visible, err := h.service.IsVisible(c.Request.Context(), id, time.Now())
	if err != nil {
		h.RespondWithError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusOK, "visibility evaluated", gin.H{"visible": visible})
}

// ListForSection handles GET /assignments/section
func (h *AssignmentHandler) ListForSection(c *gin.Context) {
	courseID, ok := parseUintQuery(c, "course_id")
	if !ok {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid course_id"})
		return
	}
	yearLevel, ok := parseIntQuery(c, "year_level")
	if !ok {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid year_level"})
		return
	}
	section := c.Query("section")
	if section == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "section is required"})
		return
	}

	ref := models.SectionRef{CourseID: courseID, YearLevel: yearLevel, Section: section}
	assignments, err := h.service.ListForSection(c.Request.Context(), ref, time.Now())
	if err != nil {
		h.RespondWithError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusOK, "assignments retrieved", assignments)
}
