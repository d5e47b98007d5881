package repositories

import (
	"context"

	"github.com/classworks/assessment-service/internal/models"
)

// AssessmentRepository interface for assessment-specific operations
type AssessmentRepository interface {
	// Basic CRUD operations
	Create(ctx context.Context, assessment *models.Assessment) error
	GetByID(ctx context.Context, id uint) (*models.Assessment, error)
	GetByIDWithQuestions(ctx context.Context, id uint) (*models.Assessment, error)
	UpdateMetadata(ctx context.Context, id uint, title string, description *string) error
	Delete(ctx context.Context, id uint) error // Soft delete, cascades to questions

	// Query operations
	List(ctx context.Context, filters AssessmentFilters) ([]*models.Assessment, int64, error)

	// Permission checks
	IsOwner(ctx context.Context, assessmentID uint, userID string) (bool, error)

	// Validation helpers
	HasResponses(ctx context.Context, assessmentID uint) (bool, error)
}

// QuestionRepository interface for question operations
type QuestionRepository interface {
	GetByID(ctx context.Context, id uint) (*models.Question, error)
	GetByAssessment(ctx context.Context, assessmentID uint) ([]*models.Question, error)

	// ReplaceAll swaps the full question set of an assessment in one
	// transaction; orders are taken as given.
	ReplaceAll(ctx context.Context, assessmentID uint, questions []*models.Question) error
}
