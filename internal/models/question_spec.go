package models

import (
	"encoding/json"
	"strconv"
)

// ChoiceSpec is the objective-type payload of a question spec: an ordered
// option list and the zero-based index of the correct option, kept as text to
// match the persisted representation.
type ChoiceSpec struct {
	Options       []string `json:"options" validate:"omitempty,min=2,max=6,dive,required"`
	CorrectAnswer string   `json:"correct_answer"`
}

// CorrectIndex parses the correct answer as an option index.
func (c *ChoiceSpec) CorrectIndex() (int, error) {
	return strconv.Atoi(c.CorrectAnswer)
}

// QuestionSpec is the tagged variant used to create or replace questions.
// Choice is present for multiple_choice/true_false and absent for
// short_answer/essay; any payload supplied for a subjective type is dropped
// before persistence rather than stored.
type QuestionSpec struct {
	Type   QuestionType `json:"type" validate:"required,question_type"`
	Text   string       `json:"text" validate:"required"`
	Points int          `json:"points" validate:"required,min=1"`
	Choice *ChoiceSpec  `json:"choice,omitempty"`
}

// TrueFalseOptions is the canonical option pair used when a true/false spec
// omits its own labels.
var TrueFalseOptions = []string{"True", "False"}

// ToQuestion builds the persistable row for an already-validated spec.
// The order is assigned by the caller.
func (s *QuestionSpec) ToQuestion(assessmentID uint, order int) (*Question, error) {
	q := &Question{
		AssessmentID: assessmentID,
		Type:         s.Type,
		Text:         s.Text,
		Points:       s.Points,
		Order:        order,
	}

	if !s.Type.IsObjective() {
		return q, nil
	}

	options := TrueFalseOptions
	if s.Choice != nil && len(s.Choice.Options) > 0 {
		options = s.Choice.Options
	}
	raw, err := json.Marshal(options)
	if err != nil {
		return nil, err
	}
	q.Options = raw

	correct := s.Choice.CorrectAnswer
	q.CorrectAnswer = &correct
	return q, nil
}
