package handlers

import (
	"log/slog"
	"net/http"

	"github.com/classworks/assessment-service/internal/services"
	"github.com/gin-gonic/gin"
)

type SubmissionHandler struct {
	BaseHandler
	service services.SubmissionService
}

func NewSubmissionHandler(service services.SubmissionService, logger *slog.Logger) *SubmissionHandler {
	return &SubmissionHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// SubmitResponse handles POST /responses
func (h *SubmissionHandler) SubmitResponse(c *gin.Context) {
	actor, ok := RequireActor(c)
	if !ok {
		return
	}

	var req services.SubmitResponseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid request body"})
		return
	}

	response, err := h.service.Submit(c.Request.Context(), &req, actor.ID)
	if err != nil {
		h.RespondWithError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusCreated, "response recorded", response)
}

// ListPendingManual handles GET /assessments/:id/pending-grading
func (h *SubmissionHandler) ListPendingManual(c *gin.Context) {
	actor, ok := RequireActor(c)
	if !ok {
		return
	}

	id, ok := parseUintParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid assessment id"})
		return
	}

	responses, err := h.service.ListPendingManual(c.Request.Context(), id, actor.ID)
	if err != nil {
		h.RespondWithError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusOK, "pending responses retrieved", responses)
}
