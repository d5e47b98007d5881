package models

import (
	"time"
)

// Assignment binds an assessment to one class section. A given assessment may
// be assigned to many sections but at most once per section; the composite
// unique index is the authority for that invariant under concurrent inserts.
type Assignment struct {
	ID           uint   `json:"id" gorm:"primaryKey"`
	AssessmentID uint   `json:"assessment_id" gorm:"not null;uniqueIndex:idx_assignment_section,priority:1"`
	CourseID     uint   `json:"course_id" gorm:"not null;uniqueIndex:idx_assignment_section,priority:2"`
	YearLevel    int    `json:"year_level" gorm:"not null;uniqueIndex:idx_assignment_section,priority:3" validate:"required,min=1,max=6"`
	Section      string `json:"section" gorm:"not null;size:10;uniqueIndex:idx_assignment_section,priority:4" validate:"required,max=10"`

	// Master switch plus advisory window bounds, all evaluated at read time.
	IsAvailable bool       `json:"is_available" gorm:"not null;default:false"`
	OpenedAt    *time.Time `json:"opened_at"`
	ClosedAt    *time.Time `json:"closed_at"`

	AssignedBy string    `json:"assigned_by" gorm:"not null;size:255"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	// Relations
	Assessment Assessment `json:"assessment" gorm:"foreignKey:AssessmentID"`

	// Computed field (not stored)
	EffectivelyAvailable bool `json:"effectively_available" gorm:"-"`
}

func (Assignment) TableName() string {
	return "assignments"
}

// EffectiveAvailability combines the manual flag with the open/close window.
// Null bounds are unbounded. No background job flips IsAvailable when a bound
// passes; callers must evaluate this per request.
func (a *Assignment) EffectiveAvailability(now time.Time) bool {
	if !a.IsAvailable {
		return false
	}
	if a.OpenedAt != nil && now.Before(*a.OpenedAt) {
		return false
	}
	if a.ClosedAt != nil && now.After(*a.ClosedAt) {
		return false
	}
	return true
}

// SectionRef identifies a class section: course, year level, section letter.
type SectionRef struct {
	CourseID  uint   `json:"course_id" validate:"required"`
	YearLevel int    `json:"year_level" validate:"required,min=1,max=6"`
	Section   string `json:"section" validate:"required,max=10"`
}
