package services

import (
	"context"
	"testing"

	"github.com/classworks/assessment-service/internal/cache"
	apperrors "github.com/classworks/assessment-service/internal/errors"
	"github.com/classworks/assessment-service/internal/models"
	"github.com/classworks/assessment-service/internal/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newAssessmentFixture() (*MockRepository, AssessmentService) {
	repo := newMockRepository()
	service := NewAssessmentService(repo, cache.NoopCache{}, testLogger(), validator.New())
	return repo, service
}

func TestAssessmentService_Create(t *testing.T) {
	repo, service := newAssessmentFixture()

	repo.assessment.On("Create", mock.Anything, mock.MatchedBy(func(a *models.Assessment) bool {
		return a.SubjectID == 1 && a.Title == "Algebra Quiz" && a.CreatedBy == "instructor-1"
	})).Return(nil)

	assessment, err := service.Create(context.Background(), &CreateAssessmentRequest{
		SubjectID: 1,
		Title:     "Algebra Quiz",
	}, "instructor-1")

	require.NoError(t, err)
	assert.Equal(t, "instructor-1", assessment.CreatedBy)
	repo.assertExpectations(t)
}

func TestAssessmentService_GetByID_NotFound(t *testing.T) {
	repo, service := newAssessmentFixture()

	repo.assessment.On("GetByID", mock.Anything, uint(999)).Return(nil, gorm.ErrRecordNotFound)

	_, err := service.GetByID(context.Background(), 999)
	assert.ErrorIs(t, err, ErrAssessmentNotFound)
	repo.assertExpectations(t)
}

func TestAssessmentService_SaveQuestions(t *testing.T) {
	validBatch := []models.QuestionSpec{
		{
			Type:   models.MultipleChoice,
			Text:   "What is 2+2?",
			Points: 5,
			Choice: &models.ChoiceSpec{
				Options:       []string{"3", "4", "5"},
				CorrectAnswer: "1",
			},
		},
		{
			Type:   models.TrueFalse,
			Text:   "The earth is flat.",
			Points: 2,
			Choice: &models.ChoiceSpec{CorrectAnswer: "1"},
		},
		{
			Type:   models.Essay,
			Text:   "Explain your reasoning.",
			Points: 10,
		},
	}

	tests := []struct {
		name       string
		questions  []models.QuestionSpec
		setupMocks func(*MockRepository)
		wantErr    error
		check      func(*testing.T, []*models.Question, error)
	}{
		{
			name:      "replacement rewrites orders from batch position",
			questions: validBatch,
			setupMocks: func(repo *MockRepository) {
				repo.assessment.On("IsOwner", mock.Anything, uint(100), "instructor-1").Return(true, nil)
				repo.assessment.On("HasResponses", mock.Anything, uint(100)).Return(false, nil)
				repo.question.On("ReplaceAll", mock.Anything, uint(100), mock.Anything).Return(nil)
			},
			check: func(t *testing.T, questions []*models.Question, err error) {
				require.NoError(t, err)
				require.Len(t, questions, 3)
				for i, q := range questions {
					assert.Equal(t, i+1, q.Order)
				}
				// Subjective question persists no options or correct answer.
				assert.Nil(t, questions[2].CorrectAnswer)
				assert.Empty(t, questions[2].Options)
			},
		},
		{
			name:      "responses freeze the question set",
			questions: validBatch,
			setupMocks: func(repo *MockRepository) {
				repo.assessment.On("IsOwner", mock.Anything, uint(100), "instructor-1").Return(true, nil)
				repo.assessment.On("HasResponses", mock.Anything, uint(100)).Return(true, nil)
			},
			wantErr: ErrAssessmentLocked,
		},
		{
			name: "one bad spec rejects the whole batch with its index",
			questions: []models.QuestionSpec{
				validBatch[0],
				{
					Type:   models.MultipleChoice,
					Text:   "Broken question",
					Points: 5,
					Choice: &models.ChoiceSpec{
						Options:       []string{"A", "B"},
						CorrectAnswer: "7",
					},
				},
			},
			setupMocks: func(repo *MockRepository) {
				repo.assessment.On("IsOwner", mock.Anything, uint(100), "instructor-1").Return(true, nil)
				repo.assessment.On("HasResponses", mock.Anything, uint(100)).Return(false, nil)
			},
			check: func(t *testing.T, questions []*models.Question, err error) {
				require.Error(t, err)
				assert.Nil(t, questions)

				var verrs apperrors.ValidationErrors
				require.ErrorAs(t, err, &verrs)
				require.Len(t, verrs, 1)
				require.NotNil(t, verrs[0].QuestionIndex)
				assert.Equal(t, 1, *verrs[0].QuestionIndex)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, service := newAssessmentFixture()
			tt.setupMocks(repo)

			questions, err := service.SaveQuestions(context.Background(), 100, &SaveQuestionsRequest{
				Questions: tt.questions,
			}, "instructor-1")

			if tt.check != nil {
				tt.check(t, questions, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			repo.assertExpectations(t)
		})
	}
}

func TestAssessmentService_SaveQuestions_NotOwner(t *testing.T) {
	repo, service := newAssessmentFixture()

	repo.assessment.On("IsOwner", mock.Anything, uint(100), "instructor-2").Return(false, nil)
	repo.assessment.On("GetByID", mock.Anything, uint(100)).Return(&models.Assessment{ID: 100, CreatedBy: "instructor-1"}, nil)

	_, err := service.SaveQuestions(context.Background(), 100, &SaveQuestionsRequest{
		Questions: []models.QuestionSpec{{Type: models.Essay, Text: "Q", Points: 1}},
	}, "instructor-2")

	assert.ErrorIs(t, err, ErrForbidden)
	repo.assertExpectations(t)
}

func TestAssessmentService_Delete(t *testing.T) {
	t.Run("delete blocked once responses exist", func(t *testing.T) {
		repo, service := newAssessmentFixture()

		repo.assessment.On("IsOwner", mock.Anything, uint(100), "instructor-1").Return(true, nil)
		repo.assessment.On("HasResponses", mock.Anything, uint(100)).Return(true, nil)

		err := service.Delete(context.Background(), 100, "instructor-1")
		assert.ErrorIs(t, err, ErrAssessmentLocked)
		repo.assertExpectations(t)
	})

	t.Run("owner deletes an untouched assessment", func(t *testing.T) {
		repo, service := newAssessmentFixture()

		repo.assessment.On("IsOwner", mock.Anything, uint(100), "instructor-1").Return(true, nil)
		repo.assessment.On("HasResponses", mock.Anything, uint(100)).Return(false, nil)
		repo.assessment.On("Delete", mock.Anything, uint(100)).Return(nil)

		err := service.Delete(context.Background(), 100, "instructor-1")
		assert.NoError(t, err)
		repo.assertExpectations(t)
	})
}

func TestAssessmentService_UpdateMetadata_AllowedAfterResponses(t *testing.T) {
	repo, service := newAssessmentFixture()

	// No HasResponses check on the metadata path: only the question set freezes.
	repo.assessment.On("IsOwner", mock.Anything, uint(100), "instructor-1").Return(true, nil)
	repo.assessment.On("UpdateMetadata", mock.Anything, uint(100), "New Title", (*string)(nil)).Return(nil)

	err := service.UpdateMetadata(context.Background(), 100, &UpdateAssessmentRequest{
		Title: "New Title",
	}, "instructor-1")

	require.NoError(t, err)
	repo.assertExpectations(t)
}
