package postgres

import (
	"context"
	"fmt"

	"github.com/classworks/assessment-service/internal/models"
	"github.com/classworks/assessment-service/internal/repositories"
	"gorm.io/gorm"
)

type QuestionPostgreSQL struct {
	db *gorm.DB
}

func NewQuestionPostgreSQL(db *gorm.DB) repositories.QuestionRepository {
	return &QuestionPostgreSQL{db: db}
}

// GetByID retrieves a question by ID
func (q *QuestionPostgreSQL) GetByID(ctx context.Context, id uint) (*models.Question, error) {
	var question models.Question
	err := q.db.WithContext(ctx).First(&question, id).Error
	if err != nil {
		return nil, err
	}
	return &question, nil
}

// GetByAssessment retrieves all questions of an assessment in display order
func (q *QuestionPostgreSQL) GetByAssessment(ctx context.Context, assessmentID uint) ([]*models.Question, error) {
	var questions []*models.Question
	err := q.db.WithContext(ctx).
		Where("assessment_id = ?", assessmentID).
		Order("\"order\" ASC").
		Find(&questions).Error
	if err != nil {
		return nil, err
	}
	return questions, nil
}

// ReplaceAll rewrites the assessment's full question set in one transaction.
// The delete-then-insert pair keeps batch save all-or-nothing: a failed
// insert rolls the delete back too.
func (q *QuestionPostgreSQL) ReplaceAll(ctx context.Context, assessmentID uint, questions []*models.Question) error {
	return q.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().
			Where("assessment_id = ?", assessmentID).
			Delete(&models.Question{}).Error; err != nil {
			return fmt.Errorf("failed to clear existing questions: %w", err)
		}

		if len(questions) == 0 {
			return nil
		}

		if err := tx.Create(&questions).Error; err != nil {
			return fmt.Errorf("failed to insert questions: %w", err)
		}
		return nil
	})
}
