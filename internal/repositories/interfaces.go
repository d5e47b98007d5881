package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

// Repository aggregates entity repositories behind one handle. WithTransaction
// yields a Repository bound to the transaction so multi-entity writes commit
// or roll back together.
type Repository interface {
	Assessment() AssessmentRepository
	Question() QuestionRepository
	Assignment() AssignmentRepository
	Response() ResponseRepository
	Grade() GradeRepository

	WithTransaction(ctx context.Context, fn func(Repository) error) error
	Ping(ctx context.Context) error
}

// ===== SHARED FILTER STRUCTS =====

type AssessmentFilters struct {
	SubjectID *uint      `json:"subject_id"`
	CreatedBy *string    `json:"created_by"`
	DateFrom  *time.Time `json:"date_from"`
	DateTo    *time.Time `json:"date_to"`
	Limit     int        `json:"limit"`
	Offset    int        `json:"offset"`
	SortBy    string     `json:"sort_by"`    // "created_at", "title"
	SortOrder string     `json:"sort_order"` // "asc", "desc"
}

// ===== ERROR CLASSIFICATION =====

// IsNotFoundError reports whether err is a record-not-found condition.
func IsNotFoundError(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// IsDuplicateError reports whether err is a unique-constraint violation. The
// postgres driver is opened with TranslateError so SQLSTATE 23505 arrives as
// gorm.ErrDuplicatedKey; this is the storage-level guarantee behind the
// one-per-key invariants on assignments and responses.
func IsDuplicateError(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
