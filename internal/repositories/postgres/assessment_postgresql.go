package postgres

import (
	"context"
	"fmt"

	"github.com/classworks/assessment-service/internal/models"
	"github.com/classworks/assessment-service/internal/repositories"
	"gorm.io/gorm"
)

type AssessmentPostgreSQL struct {
	db *gorm.DB
}

func NewAssessmentPostgreSQL(db *gorm.DB) repositories.AssessmentRepository {
	return &AssessmentPostgreSQL{db: db}
}

// Create creates a new assessment
func (a *AssessmentPostgreSQL) Create(ctx context.Context, assessment *models.Assessment) error {
	if err := a.db.WithContext(ctx).Create(assessment).Error; err != nil {
		return fmt.Errorf("failed to create assessment: %w", err)
	}
	return nil
}

// GetByID retrieves an assessment by ID
func (a *AssessmentPostgreSQL) GetByID(ctx context.Context, id uint) (*models.Assessment, error) {
	var assessment models.Assessment
	err := a.db.WithContext(ctx).First(&assessment, id).Error
	if err != nil {
		return nil, err
	}
	return &assessment, nil
}

// GetByIDWithQuestions retrieves an assessment with its questions in display order
func (a *AssessmentPostgreSQL) GetByIDWithQuestions(ctx context.Context, id uint) (*models.Assessment, error) {
	var assessment models.Assessment
	err := a.db.WithContext(ctx).
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("\"order\" ASC")
		}).
		First(&assessment, id).Error
	if err != nil {
		return nil, err
	}

	a.calculateComputedFields(&assessment)
	return &assessment, nil
}

// UpdateMetadata updates title and description only. Everything else on an
// assessment is frozen once responses exist; callers enforce that rule.
func (a *AssessmentPostgreSQL) UpdateMetadata(ctx context.Context, id uint, title string, description *string) error {
	result := a.db.WithContext(ctx).
		Model(&models.Assessment{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"title":       title,
			"description": description,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update assessment metadata: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete soft deletes the assessment row and hard deletes its questions in
// the same transaction; questions carry no DeletedAt column.
func (a *AssessmentPostgreSQL) Delete(ctx context.Context, id uint) error {
	return a.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("assessment_id = ?", id).Delete(&models.Question{}).Error; err != nil {
			return fmt.Errorf("failed to delete questions: %w", err)
		}
		return tx.Delete(&models.Assessment{}, id).Error
	})
}

// List retrieves assessments with filters and pagination
func (a *AssessmentPostgreSQL) List(ctx context.Context, filters repositories.AssessmentFilters) ([]*models.Assessment, int64, error) {
	query := a.db.WithContext(ctx).Model(&models.Assessment{})

	if filters.SubjectID != nil {
		query = query.Where("subject_id = ?", *filters.SubjectID)
	}
	if filters.CreatedBy != nil {
		query = query.Where("created_by = ?", *filters.CreatedBy)
	}
	if filters.DateFrom != nil {
		query = query.Where("created_at >= ?", *filters.DateFrom)
	}
	if filters.DateTo != nil {
		query = query.Where("created_at <= ?", *filters.DateTo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sortBy := filters.SortBy
	if sortBy == "" {
		sortBy = "created_at"
	}
	sortOrder := filters.SortOrder
	if sortOrder != "asc" {
		sortOrder = "desc"
	}
	query = query.Order(fmt.Sprintf("%s %s", sortBy, sortOrder))

	if filters.Limit > 0 {
		query = query.Limit(filters.Limit)
	}
	if filters.Offset > 0 {
		query = query.Offset(filters.Offset)
	}

	var assessments []*models.Assessment
	if err := query.Find(&assessments).Error; err != nil {
		return nil, 0, err
	}

	return assessments, total, nil
}

// IsOwner checks if a user is the owner of an assessment
func (a *AssessmentPostgreSQL) IsOwner(ctx context.Context, assessmentID uint, userID string) (bool, error) {
	var count int64
	err := a.db.WithContext(ctx).
		Model(&models.Assessment{}).
		Where("id = ? AND created_by = ?", assessmentID, userID).
		Count(&count).Error

	return count > 0, err
}

// HasResponses checks if any student has responded to any question of the
// assessment, which freezes its question set.
func (a *AssessmentPostgreSQL) HasResponses(ctx context.Context, assessmentID uint) (bool, error) {
	var count int64
	err := a.db.WithContext(ctx).
		Table("responses r").
		Joins("JOIN questions q ON r.question_id = q.id").
		Where("q.assessment_id = ?", assessmentID).
		Count(&count).Error

	return count > 0, err
}

// calculateComputedFields calculates computed fields for an assessment
func (a *AssessmentPostgreSQL) calculateComputedFields(assessment *models.Assessment) {
	assessment.QuestionsCount = len(assessment.Questions)

	totalPoints := 0
	for _, q := range assessment.Questions {
		totalPoints += q.Points
	}
	assessment.TotalPoints = totalPoints
}
