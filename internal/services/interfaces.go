package services

import (
	"context"
	"time"

	"github.com/classworks/assessment-service/internal/models"
	"github.com/classworks/assessment-service/internal/repositories"
	"github.com/xuri/excelize/v2"
)

// ===== REQUEST / RESPONSE DTOS =====

type CreateAssessmentRequest struct {
	SubjectID   uint    `json:"subject_id" validate:"required"`
	Title       string  `json:"title" validate:"required,min=1,max=200"`
	Description *string `json:"description" validate:"omitempty,max=1000"`
}

type UpdateAssessmentRequest struct {
	Title       string  `json:"title" validate:"required,min=1,max=200"`
	Description *string `json:"description" validate:"omitempty,max=1000"`
}

type SaveQuestionsRequest struct {
	Questions []models.QuestionSpec `json:"questions" validate:"required,min=1,dive"`
}

type AssignRequest struct {
	AssessmentID uint       `json:"assessment_id" validate:"required"`
	CourseID     uint       `json:"course_id" validate:"required"`
	YearLevel    int        `json:"year_level" validate:"required,year_level"`
	Section      string     `json:"section" validate:"required,max=10"`
	IsAvailable  bool       `json:"is_available"`
	OpenedAt     *time.Time `json:"opened_at"`
	ClosedAt     *time.Time `json:"closed_at"`
}

type UpdateWindowRequest struct {
	OpenedAt *time.Time `json:"opened_at"`
	ClosedAt *time.Time `json:"closed_at"`
}

type SubmitResponseRequest struct {
	QuestionID uint   `json:"question_id" validate:"required"`
	CourseID   uint   `json:"course_id" validate:"required"`
	YearLevel  int    `json:"year_level" validate:"required,year_level"`
	Section    string `json:"section" validate:"required,max=10"`
	Answer     string `json:"answer" validate:"required"`
}

type GradeResponseRequest struct {
	PointsEarned int     `json:"points_earned"`
	Feedback     *string `json:"feedback" validate:"omitempty,max=2000"`
}

// ===== SERVICE INTERFACES =====

type AssessmentService interface {
	Create(ctx context.Context, req *CreateAssessmentRequest, instructorID string) (*models.Assessment, error)
	GetByID(ctx context.Context, id uint) (*models.Assessment, error)
	GetWithQuestions(ctx context.Context, id uint) (*models.Assessment, error)
	List(ctx context.Context, filters repositories.AssessmentFilters) ([]*models.Assessment, int64, error)
	UpdateMetadata(ctx context.Context, id uint, req *UpdateAssessmentRequest, instructorID string) error
	SaveQuestions(ctx context.Context, assessmentID uint, req *SaveQuestionsRequest, instructorID string) ([]*models.Question, error)
	Delete(ctx context.Context, id uint, instructorID string) error
}

type AssignmentService interface {
	Assign(ctx context.Context, req *AssignRequest, instructorID string) (*models.Assignment, error)
	ToggleAvailability(ctx context.Context, assignmentID uint, instructorID string) (bool, error)
	UpdateWindow(ctx context.Context, assignmentID uint, req *UpdateWindowRequest, instructorID string) error
	Delete(ctx context.Context, assignmentID uint, instructorID string) error
	IsVisible(ctx context.Context, assignmentID uint, now time.Time) (bool, error)
	ListForSection(ctx context.Context, ref models.SectionRef, now time.Time) ([]*models.Assignment, error)
}

type SubmissionService interface {
	Submit(ctx context.Context, req *SubmitResponseRequest, studentID string) (*models.Response, error)
	ListPendingManual(ctx context.Context, assessmentID uint, instructorID string) ([]*models.Response, error)
}

type GradingService interface {
	GradeResponse(ctx context.Context, responseID uint, req *GradeResponseRequest, graderID string) error
	RecomputeGrade(ctx context.Context, assessmentID uint, studentID string) (*models.Grade, error)
	GetGrade(ctx context.Context, assessmentID uint, studentID string) (*models.Grade, error)
	ExportGradeSheet(ctx context.Context, assignmentID uint, instructorID string) (*excelize.File, error)
}

// ServiceManager bundles all services for handler wiring
type ServiceManager interface {
	Assessment() AssessmentService
	Assignment() AssignmentService
	Submission() SubmissionService
	Grading() GradingService
}
