package repositories

import (
	"context"

	"github.com/classworks/assessment-service/internal/models"
)

// ResponseRepository interface for submission ledger operations
type ResponseRepository interface {
	// Create inserts the response; a duplicate (question, student) tuple
	// surfaces as a duplicate error from the unique index.
	Create(ctx context.Context, response *models.Response) error
	GetByID(ctx context.Context, id uint) (*models.Response, error)

	// Query operations
	GetByStudentAndAssessment(ctx context.Context, assessmentID uint, studentID string) ([]*models.Response, error)
	ListByAssessment(ctx context.Context, assessmentID uint) ([]*models.Response, error)
	ListPendingManual(ctx context.Context, assessmentID uint) ([]*models.Response, error)

	// UpdateGrade writes the grading outcome; the answer itself is never
	// touched after insert.
	UpdateGrade(ctx context.Context, id uint, isCorrect *bool, pointsEarned int, feedback *string, gradedBy string) error
}

// GradeRepository interface for aggregate grade operations
type GradeRepository interface {
	Get(ctx context.Context, assessmentID uint, studentID string) (*models.Grade, error)
	ListByAssessment(ctx context.Context, assessmentID uint) ([]*models.Grade, error)

	// EnsureRow + GetForUpdate serialize recomputes per (assessment, student):
	// callers run both inside WithTransaction so the FOR UPDATE lock is held
	// until commit.
	EnsureRow(ctx context.Context, assessmentID uint, studentID string) error
	GetForUpdate(ctx context.Context, assessmentID uint, studentID string) (*models.Grade, error)
	Update(ctx context.Context, grade *models.Grade) error
}
