package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/classworks/assessment-service/internal/models"
	"github.com/classworks/assessment-service/internal/repositories"
	"gorm.io/gorm"
)

type ResponsePostgreSQL struct {
	db *gorm.DB
}

func NewResponsePostgreSQL(db *gorm.DB) repositories.ResponseRepository {
	return &ResponsePostgreSQL{db: db}
}

// Create inserts a new response. The (question_id, student_id) unique index
// is the single authority for the one-submission rule; a concurrent double
// submit loses with gorm.ErrDuplicatedKey.
func (r *ResponsePostgreSQL) Create(ctx context.Context, response *models.Response) error {
	return r.db.WithContext(ctx).Create(response).Error
}

// GetByID retrieves a response with its question
func (r *ResponsePostgreSQL) GetByID(ctx context.Context, id uint) (*models.Response, error) {
	var response models.Response
	err := r.db.WithContext(ctx).
		Preload("Question").
		First(&response, id).Error
	if err != nil {
		return nil, err
	}
	return &response, nil
}

// GetByStudentAndAssessment retrieves one student's responses across an
// assessment's questions, in question order.
func (r *ResponsePostgreSQL) GetByStudentAndAssessment(ctx context.Context, assessmentID uint, studentID string) ([]*models.Response, error) {
	var responses []*models.Response
	err := r.db.WithContext(ctx).
		Joins("JOIN questions q ON q.id = responses.question_id").
		Where("q.assessment_id = ? AND responses.student_id = ?", assessmentID, studentID).
		Order("q.\"order\" ASC").
		Preload("Question").
		Find(&responses).Error
	if err != nil {
		return nil, err
	}
	return responses, nil
}

// ListByAssessment retrieves every response against an assessment
func (r *ResponsePostgreSQL) ListByAssessment(ctx context.Context, assessmentID uint) ([]*models.Response, error) {
	var responses []*models.Response
	err := r.db.WithContext(ctx).
		Joins("JOIN questions q ON q.id = responses.question_id").
		Where("q.assessment_id = ?", assessmentID).
		Order("responses.student_id ASC, q.\"order\" ASC").
		Preload("Question").
		Find(&responses).Error
	if err != nil {
		return nil, err
	}
	return responses, nil
}

// ListPendingManual retrieves ungraded subjective responses, oldest first
func (r *ResponsePostgreSQL) ListPendingManual(ctx context.Context, assessmentID uint) ([]*models.Response, error) {
	var responses []*models.Response
	err := r.db.WithContext(ctx).
		Joins("JOIN questions q ON q.id = responses.question_id").
		Where("q.assessment_id = ? AND responses.points_earned IS NULL", assessmentID).
		Order("responses.created_at ASC").
		Preload("Question").
		Find(&responses).Error
	if err != nil {
		return nil, err
	}
	return responses, nil
}

// UpdateGrade writes the grading outcome for a response. The answer column
// is deliberately absent from the update set.
func (r *ResponsePostgreSQL) UpdateGrade(ctx context.Context, id uint, isCorrect *bool, pointsEarned int, feedback *string, gradedBy string) error {
	now := time.Now()
	result := r.db.WithContext(ctx).
		Model(&models.Response{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"is_correct":    isCorrect,
			"points_earned": pointsEarned,
			"feedback":      feedback,
			"graded_by":     gradedBy,
			"graded_at":     now,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update response grade: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
