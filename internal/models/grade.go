package models

import (
	"time"
)

// Grade is the aggregate score for one student on one assessment, re-derived
// from all of the student's responses on every grading mutation. Provisional
// stays true while any subjective response is still awaiting manual grading,
// so consumers can tell a true zero from pending work.
type Grade struct {
	ID           uint   `json:"id" gorm:"primaryKey"`
	AssessmentID uint   `json:"assessment_id" gorm:"not null;uniqueIndex:idx_grade_assessment_student,priority:1"`
	StudentID    string `json:"student_id" gorm:"not null;size:255;index;uniqueIndex:idx_grade_assessment_student,priority:2"`

	Score       int        `json:"score" gorm:"not null;default:0"`
	TotalPoints int        `json:"total_points" gorm:"not null;default:0"`
	Provisional bool       `json:"provisional" gorm:"not null;default:true"`
	FinalizedAt *time.Time `json:"finalized_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Grade) TableName() string {
	return "grades"
}
