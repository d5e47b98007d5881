package repositories

import (
	"context"
	"time"

	"github.com/classworks/assessment-service/internal/models"
)

// AssignmentRepository interface for section assignment operations
type AssignmentRepository interface {
	// Create inserts the assignment; a duplicate (assessment, course, year
	// level, section) tuple surfaces as a duplicate error from the unique
	// index, never from a pre-read.
	Create(ctx context.Context, assignment *models.Assignment) error
	GetByID(ctx context.Context, id uint) (*models.Assignment, error)
	Delete(ctx context.Context, id uint) error

	// Query operations
	ListForSection(ctx context.Context, ref models.SectionRef) ([]*models.Assignment, error)
	GetForQuestionAndSection(ctx context.Context, questionID uint, ref models.SectionRef) (*models.Assignment, error)

	// Availability management
	ToggleAvailability(ctx context.Context, id uint) (bool, error)
	UpdateWindow(ctx context.Context, id uint, openedAt, closedAt *time.Time) error
}
