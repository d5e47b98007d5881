package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/classworks/assessment-service/internal/cache"
	"github.com/classworks/assessment-service/internal/models"
	"github.com/classworks/assessment-service/internal/repositories"
	"github.com/classworks/assessment-service/internal/validator"
)

const questionSetCacheTTL = 5 * time.Minute

type assessmentService struct {
	repo      repositories.Repository
	cache     cache.CacheService
	logger    *slog.Logger
	validator *validator.Validator
}

func NewAssessmentService(repo repositories.Repository, cacheSvc cache.CacheService, logger *slog.Logger, v *validator.Validator) AssessmentService {
	return &assessmentService{
		repo:      repo,
		cache:     cacheSvc,
		logger:    logger,
		validator: v,
	}
}

func (s *assessmentService) Create(ctx context.Context, req *CreateAssessmentRequest, instructorID string) (*models.Assessment, error) {
	s.logger.Info("Creating assessment",
		"subject_id", req.SubjectID,
		"instructor_id", instructorID)

	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidationFailed, err)
	}

	assessment := &models.Assessment{
		SubjectID:   req.SubjectID,
		Title:       req.Title,
		Description: req.Description,
		CreatedBy:   instructorID,
	}

	if err := s.repo.Assessment().Create(ctx, assessment); err != nil {
		return nil, fmt.Errorf("failed to create assessment: %w", err)
	}

	s.logger.Info("Assessment created", "assessment_id", assessment.ID)
	return assessment, nil
}

func (s *assessmentService) GetByID(ctx context.Context, id uint) (*models.Assessment, error) {
	assessment, err := s.repo.Assessment().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrAssessmentNotFound
		}
		return nil, fmt.Errorf("failed to get assessment: %w", err)
	}
	return assessment, nil
}

// GetWithQuestions serves the question set through the cache. Availability is
// never part of this payload; visibility decisions always re-read storage.
func (s *assessmentService) GetWithQuestions(ctx context.Context, id uint) (*models.Assessment, error) {
	key := questionSetCacheKey(id)

	var cached models.Assessment
	if err := s.cache.Get(ctx, key, &cached); err == nil {
		return &cached, nil
	} else if !errors.Is(err, cache.ErrCacheMiss) {
		s.logger.Warn("question set cache read failed", "assessment_id", id, "error", err)
	}

	assessment, err := s.repo.Assessment().GetByIDWithQuestions(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrAssessmentNotFound
		}
		return nil, fmt.Errorf("failed to get assessment: %w", err)
	}

	if err := s.cache.Set(ctx, key, assessment, questionSetCacheTTL); err != nil {
		s.logger.Warn("question set cache write failed", "assessment_id", id, "error", err)
	}

	return assessment, nil
}

func (s *assessmentService) List(ctx context.Context, filters repositories.AssessmentFilters) ([]*models.Assessment, int64, error) {
	assessments, total, err := s.repo.Assessment().List(ctx, filters)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list assessments: %w", err)
	}
	return assessments, total, nil
}

func (s *assessmentService) UpdateMetadata(ctx context.Context, id uint, req *UpdateAssessmentRequest, instructorID string) error {
	if err := s.validator.ValidateStruct(req); err != nil {
		return fmt.Errorf("%w: %s", ErrValidationFailed, err)
	}

	if err := s.requireOwner(ctx, id, instructorID); err != nil {
		return err
	}

	// Title and description stay editable even after responses exist; the
	// response freeze only covers the question set.
	if err := s.repo.Assessment().UpdateMetadata(ctx, id, req.Title, req.Description); err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrAssessmentNotFound
		}
		return fmt.Errorf("failed to update assessment: %w", err)
	}

	s.invalidateQuestionSet(ctx, id)
	return nil
}

// SaveQuestions atomically replaces the assessment's full question set.
// Validation runs over the entire batch first; one bad spec means nothing
// persists and the caller gets every error back, tagged per question.
func (s *assessmentService) SaveQuestions(ctx context.Context, assessmentID uint, req *SaveQuestionsRequest, instructorID string) ([]*models.Question, error) {
	s.logger.Info("Saving question batch",
		"assessment_id", assessmentID,
		"count", len(req.Questions),
		"instructor_id", instructorID)

	if err := s.requireOwner(ctx, assessmentID, instructorID); err != nil {
		return nil, err
	}

	locked, err := s.repo.Assessment().HasResponses(ctx, assessmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to check assessment responses: %w", err)
	}
	if locked {
		return nil, ErrAssessmentLocked
	}

	if errs := s.validator.Question().ValidateBatch(req.Questions); len(errs) > 0 {
		return nil, errs
	}

	// Orders are rewritten from batch positions: replace-all semantics, not
	// an incremental patch.
	questions := make([]*models.Question, 0, len(req.Questions))
	for i := range req.Questions {
		question, err := req.Questions[i].ToQuestion(assessmentID, i+1)
		if err != nil {
			return nil, fmt.Errorf("failed to build question %d: %w", i, err)
		}
		questions = append(questions, question)
	}

	if err := s.repo.Question().ReplaceAll(ctx, assessmentID, questions); err != nil {
		return nil, fmt.Errorf("failed to replace questions: %w", err)
	}

	s.invalidateQuestionSet(ctx, assessmentID)
	s.logger.Info("Question batch saved", "assessment_id", assessmentID, "count", len(questions))
	return questions, nil
}

// Delete removes an assessment and its questions. Once any response exists
// the assessment is part of the submission record and may not be deleted.
func (s *assessmentService) Delete(ctx context.Context, id uint, instructorID string) error {
	if err := s.requireOwner(ctx, id, instructorID); err != nil {
		return err
	}

	locked, err := s.repo.Assessment().HasResponses(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to check assessment responses: %w", err)
	}
	if locked {
		return ErrAssessmentLocked
	}

	if err := s.repo.Assessment().Delete(ctx, id); err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrAssessmentNotFound
		}
		return fmt.Errorf("failed to delete assessment: %w", err)
	}

	s.invalidateQuestionSet(ctx, id)
	s.logger.Info("Assessment deleted", "assessment_id", id)
	return nil
}

func (s *assessmentService) requireOwner(ctx context.Context, assessmentID uint, instructorID string) error {
	isOwner, err := s.repo.Assessment().IsOwner(ctx, assessmentID, instructorID)
	if err != nil {
		return fmt.Errorf("failed to check ownership: %w", err)
	}
	if !isOwner {
		// Distinguish a missing assessment from someone else's.
		if _, err := s.repo.Assessment().GetByID(ctx, assessmentID); err != nil {
			if repositories.IsNotFoundError(err) {
				return ErrAssessmentNotFound
			}
			return fmt.Errorf("failed to get assessment: %w", err)
		}
		return ErrForbidden
	}
	return nil
}

func (s *assessmentService) invalidateQuestionSet(ctx context.Context, assessmentID uint) {
	if err := s.cache.Delete(ctx, questionSetCacheKey(assessmentID)); err != nil {
		s.logger.Warn("question set cache invalidation failed", "assessment_id", assessmentID, "error", err)
	}
}

func questionSetCacheKey(assessmentID uint) string {
	return fmt.Sprintf("assessment:%d:questions", assessmentID)
}
