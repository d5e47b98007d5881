package handlers

import (
	"log/slog"
	"net/http"

	"github.com/classworks/assessment-service/internal/services"
	"github.com/gin-gonic/gin"
)

type HandlerManager struct {
	assessmentHandler *AssessmentHandler
	assignmentHandler *AssignmentHandler
	submissionHandler *SubmissionHandler
	gradingHandler    *GradingHandler
}

func NewHandlerManager(serviceManager services.ServiceManager, logger *slog.Logger) *HandlerManager {
	return &HandlerManager{
		assessmentHandler: NewAssessmentHandler(serviceManager.Assessment(), logger),
		assignmentHandler: NewAssignmentHandler(serviceManager.Assignment(), logger),
		submissionHandler: NewSubmissionHandler(serviceManager.Submission(), logger),
		gradingHandler:    NewGradingHandler(serviceManager.Grading(), logger),
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "assessment-service",
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Assessment routes
		assessments := v1.Group("/assessments")
		{
			assessments.POST("", hm.assessmentHandler.CreateAssessment)
			assessments.GET("", hm.assessmentHandler.ListAssessments)
			assessments.GET("/:id", hm.assessmentHandler.GetAssessment)
			assessments.GET("/:id/details", hm.assessmentHandler.GetAssessmentWithQuestions)
			assessments.PUT("/:id", hm.assessmentHandler.UpdateAssessment)
			assessments.PUT("/:id/questions", hm.assessmentHandler.SaveQuestions)
			assessments.DELETE("/:id", hm.assessmentHandler.DeleteAssessment)

			// Grading views scoped to an assessment
			assessments.GET("/:id/pending-grading", hm.submissionHandler.ListPendingManual)
			assessments.GET("/:id/grades/:student_id", hm.gradingHandler.GetGrade)
		}

		// Assignment routes
		assignments := v1.Group("/assignments")
		{
			assignments.POST("", hm.assignmentHandler.AssignToSection)
			assignments.GET("/section", hm.assignmentHandler.ListForSection)
			assignments.POST("/:id/toggle", hm.assignmentHandler.ToggleAvailability)
			assignments.PUT("/:id/window", hm.assignmentHandler.UpdateWindow)
			assignments.DELETE("/:id", hm.assignmentHandler.DeleteAssignment)
			assignments.GET("/:id/visibility", hm.assignmentHandler.GetVisibility)
			assignments.GET("/:id/grade-sheet", hm.gradingHandler.ExportGradeSheet)
		}

		// Response routes
		responses := v1.Group("/responses")
		{
			responses.POST("", hm.submissionHandler.SubmitResponse)
			responses.POST("/:id/grade", hm.gradingHandler.GradeResponse)
		}
	}
}
