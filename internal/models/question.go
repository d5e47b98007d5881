package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

type QuestionType string

const (
	MultipleChoice QuestionType = "multiple_choice"
	TrueFalse      QuestionType = "true_false"
	ShortAnswer    QuestionType = "short_answer"
	Essay          QuestionType = "essay"
)

// IsObjective reports whether answers of this type can be graded automatically.
func (t QuestionType) IsObjective() bool {
	return t == MultipleChoice || t == TrueFalse
}

// Question belongs to exactly one assessment. Objective types carry an ordered
// option list and the zero-based index of the correct option stored as text;
// subjective types persist neither.
type Question struct {
	ID           uint         `json:"id" gorm:"primaryKey"`
	AssessmentID uint         `json:"assessment_id" gorm:"not null;index;uniqueIndex:idx_assessment_question_order,priority:1"`
	Type         QuestionType `json:"type" gorm:"not null;size:20" validate:"required,question_type"`
	Text         string       `json:"text" gorm:"type:text;not null" validate:"required"`
	Points       int          `json:"points" gorm:"not null" validate:"required,min=1"`
	Order        int          `json:"order" gorm:"column:\"order\";not null;uniqueIndex:idx_assessment_question_order,priority:2"`

	// Objective-type payload, null for short_answer/essay
	Options       datatypes.JSON `json:"options,omitempty" gorm:"type:jsonb"`
	CorrectAnswer *string        `json:"correct_answer,omitempty" gorm:"size:10"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Question) TableName() string {
	return "questions"
}

// OptionList decodes the stored option array. Returns nil for subjective types.
func (q *Question) OptionList() ([]string, error) {
	if len(q.Options) == 0 {
		return nil, nil
	}
	var opts []string
	if err := json.Unmarshal(q.Options, &opts); err != nil {
		return nil, err
	}
	return opts, nil
}
