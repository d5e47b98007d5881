package models

import (
	"time"
)

// Response is one student's answer to one question. The (question, student)
// pair is unique forever; the answer text is immutable once inserted. Grading
// fields stay null until auto or manual grading fills them.
type Response struct {
	ID         uint   `json:"id" gorm:"primaryKey"`
	QuestionID uint   `json:"question_id" gorm:"not null;uniqueIndex:idx_response_question_student,priority:1"`
	StudentID  string `json:"student_id" gorm:"not null;size:255;index;uniqueIndex:idx_response_question_student,priority:2"`
	Answer     string `json:"answer" gorm:"type:text;not null"`

	// Grading outcome; null means awaiting manual grading
	IsCorrect    *bool      `json:"is_correct"`
	PointsEarned *int       `json:"points_earned"`
	Feedback     *string    `json:"feedback" gorm:"type:text"`
	GradedBy     *string    `json:"graded_by" gorm:"size:255"`
	GradedAt     *time.Time `json:"graded_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Question Question `json:"question" gorm:"foreignKey:QuestionID"`
}

func (Response) TableName() string {
	return "responses"
}

// IsGraded reports whether the response reached its terminal state. There is
// no ungrading; once PointsEarned is set it only ever gets overwritten by a
// corrected manual grade.
func (r *Response) IsGraded() bool {
	return r.PointsEarned != nil
}
