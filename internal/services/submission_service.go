package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/classworks/assessment-service/internal/events"
	"github.com/classworks/assessment-service/internal/models"
	"github.com/classworks/assessment-service/internal/repositories"
	"github.com/classworks/assessment-service/internal/validator"
)

type submissionService struct {
	repo      repositories.Repository
	grading   GradingService
	publisher events.EventPublisher
	logger    *slog.Logger
	validator *validator.Validator
}

func NewSubmissionService(repo repositories.Repository, grading GradingService, publisher events.EventPublisher, logger *slog.Logger, v *validator.Validator) SubmissionService {
	return &submissionService{
		repo:      repo,
		grading:   grading,
		publisher: publisher,
		logger:    logger,
		validator: v,
	}
}

// Submit records one student's answer to one question. Preconditions run in
// order: the section's assignment must be effectively available, then the
// insert must win the (question, student) unique index. A client retrying
// after a timeout hits ErrAlreadySubmitted instead of double-submitting.
func (s *submissionService) Submit(ctx context.Context, req *SubmitResponseRequest, studentID string) (*models.Response, error) {
	s.logger.Info("Submitting response",
		"question_id", req.QuestionID,
		"student_id", studentID)

	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidationFailed, err)
	}

	question, err := s.repo.Question().GetByID(ctx, req.QuestionID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrQuestionNotFound
		}
		return nil, fmt.Errorf("failed to get question: %w", err)
	}

	ref := models.SectionRef{CourseID: req.CourseID, YearLevel: req.YearLevel, Section: req.Section}
	assignment, err := s.repo.Assignment().GetForQuestionAndSection(ctx, req.QuestionID, ref)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			// Not assigned to this section at all: same outcome as closed.
			return nil, ErrAssessmentClosed
		}
		return nil, fmt.Errorf("failed to resolve assignment: %w", err)
	}
	if !assignment.EffectiveAvailability(time.Now()) {
		return nil, ErrAssessmentClosed
	}

	response := &models.Response{
		QuestionID: req.QuestionID,
		StudentID:  studentID,
		Answer:     req.Answer,
	}

	// Objective types are graded at acceptance time, in the same insert.
	autoGraded := question.Type.IsObjective()
	if autoGraded {
		isCorrect, pointsEarned := AutoGrade(req.Answer, question)
		now := time.Now()
		response.IsCorrect = &isCorrect
		response.PointsEarned = &pointsEarned
		response.GradedAt = &now
	}

	if err := s.repo.Response().Create(ctx, response); err != nil {
		if repositories.IsDuplicateError(err) {
			return nil, ErrAlreadySubmitted
		}
		return nil, fmt.Errorf("failed to create response: %w", err)
	}

	if autoGraded {
		// The response row is already durable here and the recompute is
		// idempotent, so the caller can safely retry on this error.
		if _, err := s.grading.RecomputeGrade(ctx, question.AssessmentID, studentID); err != nil {
			return nil, fmt.Errorf("failed to recompute grade: %w", err)
		}
	}

	s.publish(ctx, events.NewDomainEvent(events.ResponseSubmitted, events.ResponseSubmittedPayload{
		ResponseID:   response.ID,
		QuestionID:   response.QuestionID,
		AssessmentID: question.AssessmentID,
		StudentID:    studentID,
		AutoGraded:   autoGraded,
	}))

	s.logger.Info("Response accepted",
		"response_id", response.ID,
		"auto_graded", autoGraded)
	return response, nil
}

// ListPendingManual returns the instructor's manual-grading backlog for an
// assessment, oldest submissions first.
func (s *submissionService) ListPendingManual(ctx context.Context, assessmentID uint, instructorID string) ([]*models.Response, error) {
	isOwner, err := s.repo.Assessment().IsOwner(ctx, assessmentID, instructorID)
	if err != nil {
		return nil, fmt.Errorf("failed to check ownership: %w", err)
	}
	if !isOwner {
		return nil, ErrForbidden
	}

	responses, err := s.repo.Response().ListPendingManual(ctx, assessmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending responses: %w", err)
	}
	return responses, nil
}

func (s *submissionService) publish(ctx context.Context, event *events.DomainEvent) {
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Error("Failed to publish event", "event_type", event.Type, "error", err)
	}
}
