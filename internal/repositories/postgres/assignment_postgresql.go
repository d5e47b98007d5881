package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/classworks/assessment-service/internal/models"
	"github.com/classworks/assessment-service/internal/repositories"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AssignmentPostgreSQL struct {
	db *gorm.DB
}

func NewAssignmentPostgreSQL(db *gorm.DB) repositories.AssignmentRepository {
	return &AssignmentPostgreSQL{db: db}
}

// Create inserts a new assignment. Uniqueness over (assessment, course, year
// level, section) is left entirely to idx_assignment_section; with
// TranslateError enabled a concurrent duplicate comes back as
// gorm.ErrDuplicatedKey and exactly one of the racing inserts wins.
func (a *AssignmentPostgreSQL) Create(ctx context.Context, assignment *models.Assignment) error {
	return a.db.WithContext(ctx).Create(assignment).Error
}

// GetByID retrieves an assignment by ID
func (a *AssignmentPostgreSQL) GetByID(ctx context.Context, id uint) (*models.Assignment, error) {
	var assignment models.Assignment
	err := a.db.WithContext(ctx).
		Preload("Assessment").
		First(&assignment, id).Error
	if err != nil {
		return nil, err
	}
	return &assignment, nil
}

// Delete removes the section binding. Responses and grades reference the
// assessment, not the assignment, so nothing cascades.
func (a *AssignmentPostgreSQL) Delete(ctx context.Context, id uint) error {
	result := a.db.WithContext(ctx).Delete(&models.Assignment{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ListForSection retrieves all assignments bound to a section
func (a *AssignmentPostgreSQL) ListForSection(ctx context.Context, ref models.SectionRef) ([]*models.Assignment, error) {
	var assignments []*models.Assignment
	err := a.db.WithContext(ctx).
		Where("course_id = ? AND year_level = ? AND section = ?", ref.CourseID, ref.YearLevel, ref.Section).
		Preload("Assessment").
		Order("created_at DESC").
		Find(&assignments).Error
	if err != nil {
		return nil, err
	}
	return assignments, nil
}

// GetForQuestionAndSection resolves the assignment gating a question for a
// given section: question -> assessment -> assignment.
func (a *AssignmentPostgreSQL) GetForQuestionAndSection(ctx context.Context, questionID uint, ref models.SectionRef) (*models.Assignment, error) {
	var assignment models.Assignment
	err := a.db.WithContext(ctx).
		Joins("JOIN questions q ON q.assessment_id = assignments.assessment_id").
		Where("q.id = ? AND assignments.course_id = ? AND assignments.year_level = ? AND assignments.section = ?",
			questionID, ref.CourseID, ref.YearLevel, ref.Section).
		First(&assignment).Error
	if err != nil {
		return nil, err
	}
	return &assignment, nil
}

// ToggleAvailability flips the master switch atomically and returns the new
// state. Repeated calls from stale UI state are last-write-wins.
func (a *AssignmentPostgreSQL) ToggleAvailability(ctx context.Context, id uint) (bool, error) {
	var assignment models.Assignment
	result := a.db.WithContext(ctx).
		Model(&assignment).
		Clauses(clause.Returning{Columns: []clause.Column{{Name: "is_available"}}}).
		Where("id = ?", id).
		Update("is_available", gorm.Expr("NOT is_available"))
	if result.Error != nil {
		return false, fmt.Errorf("failed to toggle availability: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return false, gorm.ErrRecordNotFound
	}
	return assignment.IsAvailable, nil
}

// UpdateWindow rewrites both window bounds
func (a *AssignmentPostgreSQL) UpdateWindow(ctx context.Context, id uint, openedAt, closedAt *time.Time) error {
	result := a.db.WithContext(ctx).
		Model(&models.Assignment{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"opened_at": openedAt,
			"closed_at": closedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
