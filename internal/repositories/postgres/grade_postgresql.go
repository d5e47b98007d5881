package postgres

import (
	"context"
	"fmt"

	"github.com/classworks/assessment-service/internal/models"
	"github.com/classworks/assessment-service/internal/repositories"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GradePostgreSQL struct {
	db *gorm.DB
}

func NewGradePostgreSQL(db *gorm.DB) repositories.GradeRepository {
	return &GradePostgreSQL{db: db}
}

// Get retrieves the aggregate grade for a student's assessment
func (g *GradePostgreSQL) Get(ctx context.Context, assessmentID uint, studentID string) (*models.Grade, error) {
	var grade models.Grade
	err := g.db.WithContext(ctx).
		Where("assessment_id = ? AND student_id = ?", assessmentID, studentID).
		First(&grade).Error
	if err != nil {
		return nil, err
	}
	return &grade, nil
}

// ListByAssessment retrieves all grades recorded for an assessment
func (g *GradePostgreSQL) ListByAssessment(ctx context.Context, assessmentID uint) ([]*models.Grade, error) {
	var grades []*models.Grade
	err := g.db.WithContext(ctx).
		Where("assessment_id = ?", assessmentID).
		Order("student_id ASC").
		Find(&grades).Error
	if err != nil {
		return nil, err
	}
	return grades, nil
}

// EnsureRow creates the grade row if it does not exist yet. ON CONFLICT DO
// NOTHING keeps the call safe under concurrent first-time recomputes.
func (g *GradePostgreSQL) EnsureRow(ctx context.Context, assessmentID uint, studentID string) error {
	grade := models.Grade{
		AssessmentID: assessmentID,
		StudentID:    studentID,
		Provisional:  true,
	}
	err := g.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&grade).Error
	if err != nil {
		return fmt.Errorf("failed to ensure grade row: %w", err)
	}
	return nil
}

// GetForUpdate locks the grade row for the duration of the enclosing
// transaction. Concurrent recomputes for the same (assessment, student)
// serialize on this lock.
func (g *GradePostgreSQL) GetForUpdate(ctx context.Context, assessmentID uint, studentID string) (*models.Grade, error) {
	var grade models.Grade
	err := g.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("assessment_id = ? AND student_id = ?", assessmentID, studentID).
		First(&grade).Error
	if err != nil {
		return nil, err
	}
	return &grade, nil
}

// Update persists a recomputed aggregate
func (g *GradePostgreSQL) Update(ctx context.Context, grade *models.Grade) error {
	result := g.db.WithContext(ctx).
		Model(&models.Grade{}).
		Where("id = ?", grade.ID).
		Updates(map[string]interface{}{
			"score":        grade.Score,
			"total_points": grade.TotalPoints,
			"provisional":  grade.Provisional,
			"finalized_at": grade.FinalizedAt,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update grade: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
