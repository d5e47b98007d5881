package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	apperrors "github.com/classworks/assessment-service/internal/errors"
	"github.com/classworks/assessment-service/internal/services"
	"github.com/gin-gonic/gin"
)

// ===== COMMON RESPONSE STRUCTURES =====

// ErrorResponse represents an error response
type ErrorResponse struct {
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// SuccessResponse represents a success response
type SuccessResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// ===== ACTOR CONTEXT =====

// Actor is the authenticated caller as resolved by the upstream gateway. The
// service itself never authenticates; identity and role arrive as headers.
type Actor struct {
	ID   string
	Role string
}

const (
	RoleStudent    = "student"
	RoleInstructor = "instructor"
	RoleAdmin      = "admin"
)

// ActorFromRequest reads the gateway-supplied identity headers.
func ActorFromRequest(c *gin.Context) (Actor, bool) {
	actor := Actor{
		ID:   c.GetHeader("X-User-ID"),
		Role: c.GetHeader("X-User-Role"),
	}
	return actor, actor.ID != "" && actor.Role != ""
}

// RequireActor aborts with 401 when identity headers are missing.
func RequireActor(c *gin.Context) (Actor, bool) {
	actor, ok := ActorFromRequest(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
			Message: "missing caller identity",
		})
	}
	return actor, ok
}

// ===== BASE HANDLER =====

// BaseHandler provides shared logging and error mapping for all handlers
type BaseHandler struct {
	logger *slog.Logger
}

// NewBaseHandler creates a new base handler with logging capability
func NewBaseHandler(logger *slog.Logger) BaseHandler {
	return BaseHandler{logger: logger}
}

// RespondWithError maps a service error onto an HTTP status and a consistent
// body. Every domain outcome of the grading core is a recoverable rejection,
// so nothing here produces more than a warn-level log.
func (h *BaseHandler) RespondWithError(c *gin.Context, err error) {
	status := http.StatusInternalServerError

	switch {
	case services.IsValidation(err):
		status = http.StatusBadRequest
	case services.IsNotFound(err):
		status = http.StatusNotFound
	case services.IsConflict(err):
		status = http.StatusConflict
	case errors.Is(err, services.ErrScoreOutOfRange):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, services.ErrInvalidWindow):
		status = http.StatusBadRequest
	case services.IsForbidden(err):
		status = http.StatusForbidden
	}

	resp := ErrorResponse{Message: err.Error()}
	var ve apperrors.ValidationErrors
	if errors.As(err, &ve) {
		resp.Message = "validation failed"
		resp.Details = ve
	}

	if status == http.StatusInternalServerError {
		h.logger.Error("request failed",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"error", err)
		resp.Message = "internal server error"
	} else {
		h.logger.Warn("request rejected",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"error", err)
	}

	c.JSON(status, resp)
}

// RespondWithSuccess sends a consistent success response
func (h *BaseHandler) RespondWithSuccess(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, SuccessResponse{
		Message: message,
		Data:    data,
	})
}
