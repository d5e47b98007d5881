package services

import (
	"errors"

	apperrors "github.com/classworks/assessment-service/internal/errors"
)

// ===== COMMON SERVICE ERRORS =====

var (
	// Generic errors
	ErrNotFound         = errors.New("resource not found")
	ErrForbidden        = errors.New("forbidden - insufficient permissions")
	ErrValidationFailed = errors.New("validation failed")
	ErrInternalError    = errors.New("internal server error")

	// Assessment specific errors
	ErrAssessmentNotFound = errors.New("assessment not found")
	ErrAssessmentLocked   = errors.New("assessment has responses and can no longer be modified")

	// Question specific errors
	ErrQuestionNotFound = errors.New("question not found")

	// Assignment specific errors
	ErrAssignmentNotFound  = errors.New("assignment not found")
	ErrDuplicateAssignment = errors.New("assessment is already assigned to this section")
	ErrInvalidWindow       = errors.New("closing time must not precede opening time")

	// Submission specific errors
	ErrAlreadySubmitted = errors.New("response already submitted for this question")
	ErrAssessmentClosed = errors.New("assessment is not currently available to this section")
	ErrResponseNotFound = errors.New("response not found")

	// Grading specific errors
	ErrScoreOutOfRange   = errors.New("points earned must be between 0 and the question's points")
	ErrGradingNotAllowed = errors.New("manual grading is only allowed for subjective question types")
	ErrGradeNotFound     = errors.New("grade not found")
)

// Use shared validation errors from errors package
type ValidationError = apperrors.ValidationError
type ValidationErrors = apperrors.ValidationErrors

// ===== ERROR CLASSIFICATION =====

// IsNotFound checks if error represents a "not found" condition
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrAssessmentNotFound) ||
		errors.Is(err, ErrQuestionNotFound) ||
		errors.Is(err, ErrAssignmentNotFound) ||
		errors.Is(err, ErrResponseNotFound) ||
		errors.Is(err, ErrGradeNotFound)
}

// IsValidation checks if error represents a validation failure
func IsValidation(err error) bool {
	if errors.Is(err, ErrValidationFailed) {
		return true
	}
	var ve apperrors.ValidationErrors
	return errors.As(err, &ve)
}

// IsConflict checks if error represents a uniqueness conflict. These are
// expected outcomes under concurrency, not failures.
func IsConflict(err error) bool {
	return errors.Is(err, ErrDuplicateAssignment) ||
		errors.Is(err, ErrAlreadySubmitted)
}

// IsForbidden checks if error represents a permission or gating rejection
func IsForbidden(err error) bool {
	return errors.Is(err, ErrForbidden) ||
		errors.Is(err, ErrAssessmentClosed) ||
		errors.Is(err, ErrAssessmentLocked) ||
		errors.Is(err, ErrGradingNotAllowed)
}
