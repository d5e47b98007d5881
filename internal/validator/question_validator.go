package validator

import (
	"strconv"
	"strings"

	apperrors "github.com/classworks/assessment-service/internal/errors"
	"github.com/classworks/assessment-service/internal/models"
)

// QuestionValidator enforces the per-type shape of question specs.
type QuestionValidator struct{}

// NewQuestionValidator creates a new question validator
func NewQuestionValidator() *QuestionValidator {
	return &QuestionValidator{}
}

// ValidateSpec validates a single question spec against the rules of its type.
func (v *QuestionValidator) ValidateSpec(spec *models.QuestionSpec) apperrors.ValidationErrors {
	var errs apperrors.ValidationErrors

	if strings.TrimSpace(spec.Text) == "" {
		errs = append(errs, *apperrors.NewValidationError("text", "is required", spec.Text))
	}
	if spec.Points < 1 {
		errs = append(errs, *apperrors.NewValidationError("points", "must be a positive integer", spec.Points))
	}

	switch spec.Type {
	case models.MultipleChoice:
		errs = append(errs, v.validateMultipleChoice(spec)...)
	case models.TrueFalse:
		errs = append(errs, v.validateTrueFalse(spec)...)
	case models.ShortAnswer, models.Essay:
		// Subjective types carry no options or correct answer; anything the
		// caller supplied is dropped before persistence, not rejected.
	default:
		errs = append(errs, *apperrors.NewValidationError("type", "must be a valid question type (multiple_choice, true_false, short_answer, essay)", string(spec.Type)))
	}

	return errs
}

// ValidateBatch validates a full replacement set, tagging each error with the
// index of the question it belongs to. Any error means nothing may persist.
func (v *QuestionValidator) ValidateBatch(specs []models.QuestionSpec) apperrors.ValidationErrors {
	var errs apperrors.ValidationErrors

	if len(specs) == 0 {
		errs = append(errs, *apperrors.NewValidationError("questions", "batch cannot be empty", nil))
		return errs
	}

	for i := range specs {
		for _, err := range v.ValidateSpec(&specs[i]) {
			errs = append(errs, err.AtQuestion(i))
		}
	}

	return errs
}

func (v *QuestionValidator) validateMultipleChoice(spec *models.QuestionSpec) apperrors.ValidationErrors {
	var errs apperrors.ValidationErrors

	if spec.Choice == nil {
		errs = append(errs, *apperrors.NewValidationError("choice", "multiple choice questions require options and a correct answer", nil))
		return errs
	}

	options := spec.Choice.Options
	if len(options) < 2 || len(options) > 6 {
		errs = append(errs, *apperrors.NewValidationError("choice.options", "must have between 2 and 6 options", len(options)))
	}
	for i, opt := range options {
		if strings.TrimSpace(opt) == "" {
			errs = append(errs, *apperrors.NewValidationError("choice.options", "option "+strconv.Itoa(i)+" cannot be empty", opt))
		}
	}

	errs = append(errs, v.validateCorrectIndex(spec.Choice, len(options))...)
	return errs
}

func (v *QuestionValidator) validateTrueFalse(spec *models.QuestionSpec) apperrors.ValidationErrors {
	var errs apperrors.ValidationErrors

	// Options default to the canonical True/False pair when omitted, but an
	// explicit list must be exactly two entries.
	optionCount := len(models.TrueFalseOptions)
	if spec.Choice == nil {
		errs = append(errs, *apperrors.NewValidationError("choice", "true/false questions require a correct answer", nil))
		return errs
	}
	if len(spec.Choice.Options) > 0 && len(spec.Choice.Options) != 2 {
		errs = append(errs, *apperrors.NewValidationError("choice.options", "must have exactly 2 options", len(spec.Choice.Options)))
	}

	if spec.Choice.CorrectAnswer != "0" && spec.Choice.CorrectAnswer != "1" {
		errs = append(errs, *apperrors.NewValidationError("choice.correct_answer", "must be \"0\" or \"1\"", spec.Choice.CorrectAnswer))
		return errs
	}

	errs = append(errs, v.validateCorrectIndex(spec.Choice, optionCount)...)
	return errs
}

func (v *QuestionValidator) validateCorrectIndex(choice *models.ChoiceSpec, optionCount int) apperrors.ValidationErrors {
	var errs apperrors.ValidationErrors

	if choice.CorrectAnswer == "" {
		errs = append(errs, *apperrors.NewValidationError("choice.correct_answer", "is required", choice.CorrectAnswer))
		return errs
	}

	index, err := choice.CorrectIndex()
	if err != nil {
		errs = append(errs, *apperrors.NewValidationError("choice.correct_answer", "must be a decimal option index", choice.CorrectAnswer))
		return errs
	}
	if index < 0 || index >= optionCount {
		errs = append(errs, *apperrors.NewValidationError("choice.correct_answer", "must index an existing option", choice.CorrectAnswer))
	}

	return errs
}
