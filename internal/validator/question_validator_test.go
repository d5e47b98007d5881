package validator

import (
	"testing"

	"github.com/classworks/assessment-service/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuestionValidator_ValidateSpec(t *testing.T) {
	v := NewQuestionValidator()

	tests := []struct {
		name      string
		spec      models.QuestionSpec
		wantValid bool
		wantField string
	}{
		{
			name: "valid multiple choice",
			spec: models.QuestionSpec{
				Type:   models.MultipleChoice,
				Text:   "Pick one",
				Points: 5,
				Choice: &models.ChoiceSpec{
					Options:       []string{"A", "B", "C"},
					CorrectAnswer: "2",
				},
			},
			wantValid: true,
		},
		{
			name: "multiple choice needs at least 2 options",
			spec: models.QuestionSpec{
				Type:   models.MultipleChoice,
				Text:   "Pick one",
				Points: 5,
				Choice: &models.ChoiceSpec{
					Options:       []string{"only"},
					CorrectAnswer: "0",
				},
			},
			wantField: "choice.options",
		},
		{
			name: "multiple choice allows at most 6 options",
			spec: models.QuestionSpec{
				Type:   models.MultipleChoice,
				Text:   "Pick one",
				Points: 5,
				Choice: &models.ChoiceSpec{
					Options:       []string{"a", "b", "c", "d", "e", "f", "g"},
					CorrectAnswer: "0",
				},
			},
			wantField: "choice.options",
		},
		{
			name: "correct answer must index an option",
			spec: models.QuestionSpec{
				Type:   models.MultipleChoice,
				Text:   "Pick one",
				Points: 5,
				Choice: &models.ChoiceSpec{
					Options:       []string{"A", "B"},
					CorrectAnswer: "2",
				},
			},
			wantField: "choice.correct_answer",
		},
		{
			name: "correct answer must be a decimal index",
			spec: models.QuestionSpec{
				Type:   models.MultipleChoice,
				Text:   "Pick one",
				Points: 5,
				Choice: &models.ChoiceSpec{
					Options:       []string{"A", "B"},
					CorrectAnswer: "B",
				},
			},
			wantField: "choice.correct_answer",
		},
		{
			name: "empty option text is rejected",
			spec: models.QuestionSpec{
				Type:   models.MultipleChoice,
				Text:   "Pick one",
				Points: 5,
				Choice: &models.ChoiceSpec{
					Options:       []string{"A", "  "},
					CorrectAnswer: "0",
				},
			},
			wantField: "choice.options",
		},
		{
			name: "valid true/false with implicit options",
			spec: models.QuestionSpec{
				Type:   models.TrueFalse,
				Text:   "Water is wet",
				Points: 2,
				Choice: &models.ChoiceSpec{CorrectAnswer: "0"},
			},
			wantValid: true,
		},
		{
			name: "true/false correct answer limited to 0 or 1",
			spec: models.QuestionSpec{
				Type:   models.TrueFalse,
				Text:   "Water is wet",
				Points: 2,
				Choice: &models.ChoiceSpec{CorrectAnswer: "2"},
			},
			wantField: "choice.correct_answer",
		},
		{
			name: "explicit true/false options must be exactly two",
			spec: models.QuestionSpec{
				Type:   models.TrueFalse,
				Text:   "Water is wet",
				Points: 2,
				Choice: &models.ChoiceSpec{
					Options:       []string{"Yes", "No", "Maybe"},
					CorrectAnswer: "0",
				},
			},
			wantField: "choice.options",
		},
		{
			name: "essay needs no choice payload",
			spec: models.QuestionSpec{
				Type:   models.Essay,
				Text:   "Discuss",
				Points: 10,
			},
			wantValid: true,
		},
		{
			name: "short answer needs no choice payload",
			spec: models.QuestionSpec{
				Type:   models.ShortAnswer,
				Text:   "Name the capital",
				Points: 3,
			},
			wantValid: true,
		},
		{
			name: "points must be positive",
			spec: models.QuestionSpec{
				Type:   models.Essay,
				Text:   "Discuss",
				Points: 0,
			},
			wantField: "points",
		},
		{
			name: "text is required",
			spec: models.QuestionSpec{
				Type:   models.Essay,
				Text:   "   ",
				Points: 5,
			},
			wantField: "text",
		},
		{
			name: "unknown type is rejected",
			spec: models.QuestionSpec{
				Type:   "matching",
				Text:   "Match these",
				Points: 5,
			},
			wantField: "type",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := v.ValidateSpec(&tt.spec)

			if tt.wantValid {
				assert.Empty(t, errs)
				return
			}

			require.NotEmpty(t, errs)
			fields := make([]string, 0, len(errs))
			for _, e := range errs {
				fields = append(fields, e.Field)
			}
			assert.Contains(t, fields, tt.wantField)
		})
	}
}

func TestQuestionValidator_ValidateBatch(t *testing.T) {
	v := NewQuestionValidator()

	t.Run("empty batch is rejected", func(t *testing.T) {
		errs := v.ValidateBatch(nil)
		require.Len(t, errs, 1)
		assert.Equal(t, "questions", errs[0].Field)
	})

	t.Run("errors carry the index of the offending question", func(t *testing.T) {
		errs := v.ValidateBatch([]models.QuestionSpec{
			{Type: models.Essay, Text: "Fine", Points: 5},
			{Type: models.MultipleChoice, Text: "Missing payload", Points: 5},
		})

		require.NotEmpty(t, errs)
		for _, e := range errs {
			require.NotNil(t, e.QuestionIndex)
			assert.Equal(t, 1, *e.QuestionIndex)
		}
	})

	t.Run("valid batch passes", func(t *testing.T) {
		errs := v.ValidateBatch([]models.QuestionSpec{
			{
				Type:   models.MultipleChoice,
				Text:   "Pick one",
				Points: 5,
				Choice: &models.ChoiceSpec{Options: []string{"A", "B"}, CorrectAnswer: "0"},
			},
			{Type: models.ShortAnswer, Text: "Answer briefly", Points: 3},
		})
		assert.Empty(t, errs)
	})
}
