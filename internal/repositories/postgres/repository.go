package postgres

import (
	"context"

	"github.com/classworks/assessment-service/internal/repositories"
	"gorm.io/gorm"
)

type gormRepository struct {
	db *gorm.DB

	assessment repositories.AssessmentRepository
	question   repositories.QuestionRepository
	assignment repositories.AssignmentRepository
	response   repositories.ResponseRepository
	grade      repositories.GradeRepository
}

// NewRepository builds the aggregate repository over a gorm handle.
func NewRepository(db *gorm.DB) repositories.Repository {
	return &gormRepository{
		db:         db,
		assessment: NewAssessmentPostgreSQL(db),
		question:   NewQuestionPostgreSQL(db),
		assignment: NewAssignmentPostgreSQL(db),
		response:   NewResponsePostgreSQL(db),
		grade:      NewGradePostgreSQL(db),
	}
}

func (r *gormRepository) Assessment() repositories.AssessmentRepository { return r.assessment }
func (r *gormRepository) Question() repositories.QuestionRepository     { return r.question }
func (r *gormRepository) Assignment() repositories.AssignmentRepository { return r.assignment }
func (r *gormRepository) Response() repositories.ResponseRepository     { return r.response }
func (r *gormRepository) Grade() repositories.GradeRepository           { return r.grade }

// WithTransaction runs fn against a repository bound to one transaction.
// Row locks taken by fn are held until the transaction finishes.
func (r *gormRepository) WithTransaction(ctx context.Context, fn func(repositories.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepository(tx))
	})
}

func (r *gormRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
