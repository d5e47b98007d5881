package services

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/classworks/assessment-service/internal/models"
	"github.com/classworks/assessment-service/internal/repositories"
	"github.com/stretchr/testify/mock"
)

// MockAssessmentRepository is a mock implementation of AssessmentRepository
type MockAssessmentRepository struct {
	mock.Mock
}

func (m *MockAssessmentRepository) Create(ctx context.Context, assessment *models.Assessment) error {
	args := m.Called(ctx, assessment)
	return args.Error(0)
}

func (m *MockAssessmentRepository) GetByID(ctx context.Context, id uint) (*models.Assessment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Assessment), args.Error(1)
}

func (m *MockAssessmentRepository) GetByIDWithQuestions(ctx context.Context, id uint) (*models.Assessment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Assessment), args.Error(1)
}

func (m *MockAssessmentRepository) UpdateMetadata(ctx context.Context, id uint, title string, description *string) error {
	args := m.Called(ctx, id, title, description)
	return args.Error(0)
}

func (m *MockAssessmentRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockAssessmentRepository) List(ctx context.Context, filters repositories.AssessmentFilters) ([]*models.Assessment, int64, error) {
	args := m.Called(ctx, filters)
	return args.Get(0).([]*models.Assessment), args.Get(1).(int64), args.Error(2)
}

func (m *MockAssessmentRepository) IsOwner(ctx context.Context, assessmentID uint, userID string) (bool, error) {
	args := m.Called(ctx, assessmentID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockAssessmentRepository) HasResponses(ctx context.Context, assessmentID uint) (bool, error) {
	args := m.Called(ctx, assessmentID)
	return args.Bool(0), args.Error(1)
}

// MockQuestionRepository is a mock implementation of QuestionRepository
type MockQuestionRepository struct {
	mock.Mock
}

func (m *MockQuestionRepository) GetByID(ctx context.Context, id uint) (*models.Question, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Question), args.Error(1)
}

func (m *MockQuestionRepository) GetByAssessment(ctx context.Context, assessmentID uint) ([]*models.Question, error) {
	args := m.Called(ctx, assessmentID)
	return args.Get(0).([]*models.Question), args.Error(1)
}

func (m *MockQuestionRepository) ReplaceAll(ctx context.Context, assessmentID uint, questions []*models.Question) error {
	args := m.Called(ctx, assessmentID, questions)
	return args.Error(0)
}

// MockAssignmentRepository is a mock implementation of AssignmentRepository
type MockAssignmentRepository struct {
	mock.Mock
}

func (m *MockAssignmentRepository) Create(ctx context.Context, assignment *models.Assignment) error {
	args := m.Called(ctx, assignment)
	return args.Error(0)
}

func (m *MockAssignmentRepository) GetByID(ctx context.Context, id uint) (*models.Assignment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Assignment), args.Error(1)
}

func (m *MockAssignmentRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockAssignmentRepository) ListForSection(ctx context.Context, ref models.SectionRef) ([]*models.Assignment, error) {
	args := m.Called(ctx, ref)
	return args.Get(0).([]*models.Assignment), args.Error(1)
}

func (m *MockAssignmentRepository) GetForQuestionAndSection(ctx context.Context, questionID uint, ref models.SectionRef) (*models.Assignment, error) {
	args := m.Called(ctx, questionID, ref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Assignment), args.Error(1)
}

func (m *MockAssignmentRepository) ToggleAvailability(ctx context.Context, id uint) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockAssignmentRepository) UpdateWindow(ctx context.Context, id uint, openedAt, closedAt *time.Time) error {
	args := m.Called(ctx, id, openedAt, closedAt)
	return args.Error(0)
}

// MockResponseRepository is a mock implementation of ResponseRepository
type MockResponseRepository struct {
	mock.Mock
}

func (m *MockResponseRepository) Create(ctx context.Context, response *models.Response) error {
	args := m.Called(ctx, response)
	return args.Error(0)
}

func (m *MockResponseRepository) GetByID(ctx context.Context, id uint) (*models.Response, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Response), args.Error(1)
}

func (m *MockResponseRepository) GetByStudentAndAssessment(ctx context.Context, assessmentID uint, studentID string) ([]*models.Response, error) {
	args := m.Called(ctx, assessmentID, studentID)
	return args.Get(0).([]*models.Response), args.Error(1)
}

func (m *MockResponseRepository) ListByAssessment(ctx context.Context, assessmentID uint) ([]*models.Response, error) {
	args := m.Called(ctx, assessmentID)
	return args.Get(0).([]*models.Response), args.Error(1)
}

func (m *MockResponseRepository) ListPendingManual(ctx context.Context, assessmentID uint) ([]*models.Response, error) {
	args := m.Called(ctx, assessmentID)
	return args.Get(0).([]*models.Response), args.Error(1)
}

func (m *MockResponseRepository) UpdateGrade(ctx context.Context, id uint, isCorrect *bool, pointsEarned int, feedback *string, gradedBy string) error {
	args := m.Called(ctx, id, isCorrect, pointsEarned, feedback, gradedBy)
	return args.Error(0)
}

// MockGradeRepository is a mock implementation of GradeRepository
type MockGradeRepository struct {
	mock.Mock
}

func (m *MockGradeRepository) Get(ctx context.Context, assessmentID uint, studentID string) (*models.Grade, error) {
	args := m.Called(ctx, assessmentID, studentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Grade), args.Error(1)
}

func (m *MockGradeRepository) ListByAssessment(ctx context.Context, assessmentID uint) ([]*models.Grade, error) {
	args := m.Called(ctx, assessmentID)
	return args.Get(0).([]*models.Grade), args.Error(1)
}

func (m *MockGradeRepository) EnsureRow(ctx context.Context, assessmentID uint, studentID string) error {
	args := m.Called(ctx, assessmentID, studentID)
	return args.Error(0)
}

func (m *MockGradeRepository) GetForUpdate(ctx context.Context, assessmentID uint, studentID string) (*models.Grade, error) {
	args := m.Called(ctx, assessmentID, studentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Grade), args.Error(1)
}

func (m *MockGradeRepository) Update(ctx context.Context, grade *models.Grade) error {
	args := m.Called(ctx, grade)
	return args.Error(0)
}

// MockRepository aggregates the entity mocks behind the Repository interface.
// WithTransaction runs the callback against the same mocks, which is enough to
// exercise transactional flows without a database.
type MockRepository struct {
	assessment *MockAssessmentRepository
	question   *MockQuestionRepository
	assignment *MockAssignmentRepository
	response   *MockResponseRepository
	grade      *MockGradeRepository
}

func newMockRepository() *MockRepository {
	return &MockRepository{
		assessment: &MockAssessmentRepository{},
		question:   &MockQuestionRepository{},
		assignment: &MockAssignmentRepository{},
		response:   &MockResponseRepository{},
		grade:      &MockGradeRepository{},
	}
}

func (m *MockRepository) Assessment() repositories.AssessmentRepository { return m.assessment }
func (m *MockRepository) Question() repositories.QuestionRepository     { return m.question }
func (m *MockRepository) Assignment() repositories.AssignmentRepository { return m.assignment }
func (m *MockRepository) Response() repositories.ResponseRepository     { return m.response }
func (m *MockRepository) Grade() repositories.GradeRepository           { return m.grade }

func (m *MockRepository) WithTransaction(ctx context.Context, fn func(repositories.Repository) error) error {
	return fn(m)
}

func (m *MockRepository) Ping(ctx context.Context) error { return nil }

func (m *MockRepository) assertExpectations(t mock.TestingT) {
	m.assessment.AssertExpectations(t)
	m.question.AssertExpectations(t)
	m.assignment.AssertExpectations(t)
	m.response.AssertExpectations(t)
	m.grade.AssertExpectations(t)
}

// Shared test helpers

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func stringPtr(s string) *string { return &s }
func intPtr(i int) *int          { return &i }
func boolPtr(b bool) *bool       { return &b }
func timePtr(t time.Time) *time.Time {
	return &t
}
