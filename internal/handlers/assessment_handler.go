package handlers

import (
	"log/slog"
	"net/http"

	"github.com/classworks/assessment-service/internal/repositories"
	"github.com/classworks/assessment-service/internal/services"
	"github.com/gin-gonic/gin"
)

type AssessmentHandler struct {
	BaseHandler
	service services.AssessmentService
}

func NewAssessmentHandler(service services.AssessmentService, logger *slog.Logger) *AssessmentHandler {
	return &AssessmentHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// CreateAssessment handles POST /assessments
func (h *AssessmentHandler) CreateAssessment(c *gin.Context) {
	actor, ok := RequireActor(c)
	if !ok {
		return
	}

	var req services.CreateAssessmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid request body"})
		return
	}

	assessment, err := h.service.Create(c.Request.Context(), &req, actor.ID)
	if err != nil {
		h.RespondWithError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusCreated, "assessment created", assessment)
}

// GetAssessment handles GET /assessments/:id
func (h *AssessmentHandler) GetAssessment(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid assessment id"})
		return
	}

	assessment, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.RespondWithError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusOK, "assessment retrieved", assessment)
}

// GetAssessmentWithQuestions handles GET /assessments/:id/details
func (h *AssessmentHandler) GetAssessmentWithQuestions(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid assessment id"})
		return
	}

	assessment, err := h.service.GetWithQuestions(c.Request.Context(), id)
	if err != nil {
		h.RespondWithError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusOK, "assessment retrieved", assessment)
}

// ListAssessments handles GET /assessments
func (h *AssessmentHandler) ListAssessments(c *gin.Context) {
	var filters repositories.AssessmentFilters

	if subjectID, ok := parseUintQuery(c, "subject_id"); ok {
		filters.SubjectID = &subjectID
	}
	if createdBy := c.Query("created_by"); createdBy != "" {
		filters.CreatedBy = &createdBy
	}
	if limit, ok := parseIntQuery(c, "limit"); ok {
		filters.Limit = limit
	}
	if offset, ok := parseIntQuery(c, "offset"); ok {
		filters.Offset = offset
	}
	filters.SortBy = c.Query("sort_by")
	filters.SortOrder = c.Query("sort_order")

	assessments, total, err := h.service.List(c.Request.Context(), filters)
	if err != nil {
		h.RespondWithError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusOK, "assessments retrieved", gin.H{
		"assessments": assessments,
		"total":       total,
	})
}

// UpdateAssessment handles PUT /assessments/:id (metadata only)
func (h *AssessmentHandler) UpdateAssessment(c *gin.Context) {
	actor, ok := RequireActor(c)
	if !ok {
		return
	}

	id, ok := parseUintParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid assessment id"})
		return
	}

	var req services.UpdateAssessmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid request body"})
		return
	}

	if err := h.service.UpdateMetadata(c.Request.Context(), id, &req, actor.ID); err != nil {
		h.RespondWithError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusOK, "assessment updated", nil)
}

// SaveQuestions handles PUT /assessments/:id/questions (batch replace)
func (h *AssessmentHandler) SaveQuestions(c *gin.Context) {
	actor, ok := RequireActor(c)
	if !ok {
		return
	}

	id, ok := parseUintParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid assessment id"})
		return
	}

	var req services.SaveQuestionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid request body"})
		return
	}

	questions, err := h.service.SaveQuestions(c.Request.Context(), id, &req, actor.ID)
	if err != nil {
		h.RespondWithError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusOK, "questions saved", questions)
}

// DeleteAssessment handles DELETE /assessments/:id
func (h *AssessmentHandler) DeleteAssessment(c *gin.Context) {
	actor, ok := RequireActor(c)
	if !ok {
		return
	}

	id, ok := parseUintParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid assessment id"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), id, actor.ID); err != nil {
		h.RespondWithError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusOK, "assessment deleted", nil)
}
