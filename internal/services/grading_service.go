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
	"github.com/xuri/excelize/v2"
)

// AutoGrade scores an objective response deterministically: the stored
// correct answer is the option index as text and the comparison is
// string-exact, so any non-matching answer earns zero. Subjective types have
// no defined auto-grade and must never reach this function.
func AutoGrade(answer string, question *models.Question) (isCorrect bool, pointsEarned int) {
	if question.CorrectAnswer == nil {
		return false, 0
	}
	if answer == *question.CorrectAnswer {
		return true, question.Points
	}
	return false, 0
}

type gradingService struct {
	repo      repositories.Repository
	publisher events.EventPublisher
	logger    *slog.Logger
	validator *validator.Validator
}

func NewGradingService(repo repositories.Repository, publisher events.EventPublisher, logger *slog.Logger, v *validator.Validator) GradingService {
	return &gradingService{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
		validator: v,
	}
}

// GradeResponse records an instructor's score for a subjective response.
// Repeated calls overwrite the prior grade; there is no ungrading and no
// additive scoring.
func (s *gradingService) GradeResponse(ctx context.Context, responseID uint, req *GradeResponseRequest, graderID string) error {
	s.logger.Info("Manually grading response",
		"response_id", responseID,
		"grader_id", graderID)

	if err := s.validator.ValidateStruct(req); err != nil {
		return fmt.Errorf("%w: %s", ErrValidationFailed, err)
	}

	response, err := s.repo.Response().GetByID(ctx, responseID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrResponseNotFound
		}
		return fmt.Errorf("failed to get response: %w", err)
	}

	question := &response.Question
	if question.Type.IsObjective() {
		return ErrGradingNotAllowed
	}

	isOwner, err := s.repo.Assessment().IsOwner(ctx, question.AssessmentID, graderID)
	if err != nil {
		return fmt.Errorf("failed to check ownership: %w", err)
	}
	if !isOwner {
		return ErrForbidden
	}

	if req.PointsEarned < 0 || req.PointsEarned > question.Points {
		return ErrScoreOutOfRange
	}

	// is_correct stays null for subjective types; only the earned points and
	// feedback carry the outcome.
	if err := s.repo.Response().UpdateGrade(ctx, responseID, nil, req.PointsEarned, req.Feedback, graderID); err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrResponseNotFound
		}
		return fmt.Errorf("failed to update response grade: %w", err)
	}

	if _, err := s.RecomputeGrade(ctx, question.AssessmentID, response.StudentID); err != nil {
		return fmt.Errorf("failed to recompute grade: %w", err)
	}

	s.logger.Info("Response graded",
		"response_id", responseID,
		"points_earned", req.PointsEarned)
	return nil
}

// RecomputeGrade re-derives the aggregate from a full re-read of the
// student's responses inside one transaction, holding the grade row lock so
// concurrent grading of different responses for the same student serializes
// instead of overwriting each other's totals. Idempotent: rerunning it
// without new grading input writes the same aggregate.
func (s *gradingService) RecomputeGrade(ctx context.Context, assessmentID uint, studentID string) (*models.Grade, error) {
	var result *models.Grade
	var finalized bool

	err := s.repo.WithTransaction(ctx, func(r repositories.Repository) error {
		if err := r.Grade().EnsureRow(ctx, assessmentID, studentID); err != nil {
			return err
		}

		grade, err := r.Grade().GetForUpdate(ctx, assessmentID, studentID)
		if err != nil {
			return fmt.Errorf("failed to lock grade row: %w", err)
		}

		questions, err := r.Question().GetByAssessment(ctx, assessmentID)
		if err != nil {
			return fmt.Errorf("failed to get questions: %w", err)
		}

		responses, err := r.Response().GetByStudentAndAssessment(ctx, assessmentID, studentID)
		if err != nil {
			return fmt.Errorf("failed to get responses: %w", err)
		}

		score := 0
		graded := 0
		for _, response := range responses {
			if response.PointsEarned == nil {
				continue
			}
			graded++
			score += *response.PointsEarned
		}

		totalPoints := 0
		for _, question := range questions {
			totalPoints += question.Points
		}

		// The aggregate stays provisional until every question carries a
		// score. An unanswered question counts the same as a response still
		// awaiting manual grading.
		provisional := graded < len(questions)

		grade.Score = score
		grade.TotalPoints = totalPoints
		grade.Provisional = provisional
		if !provisional && grade.FinalizedAt == nil {
			now := time.Now()
			grade.FinalizedAt = &now
			finalized = true
		}

		if err := r.Grade().Update(ctx, grade); err != nil {
			return err
		}

		result = grade
		return nil
	})
	if err != nil {
		return nil, err
	}

	if finalized {
		s.publish(ctx, events.NewDomainEvent(events.GradeFinalized, events.GradeFinalizedPayload{
			AssessmentID: assessmentID,
			StudentID:    studentID,
			Score:        result.Score,
			TotalPoints:  result.TotalPoints,
		}))
	}

	return result, nil
}

func (s *gradingService) GetGrade(ctx context.Context, assessmentID uint, studentID string) (*models.Grade, error) {
	grade, err := s.repo.Grade().Get(ctx, assessmentID, studentID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrGradeNotFound
		}
		return nil, fmt.Errorf("failed to get grade: %w", err)
	}
	return grade, nil
}

// ExportGradeSheet builds an XLSX workbook for an assignment: one row per
// student with per-question earned points, the aggregate total, and whether
// the grade is still provisional.
func (s *gradingService) ExportGradeSheet(ctx context.Context, assignmentID uint, instructorID string) (*excelize.File, error) {
	assignment, err := s.repo.Assignment().GetByID(ctx, assignmentID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrAssignmentNotFound
		}
		return nil, fmt.Errorf("failed to get assignment: %w", err)
	}

	isOwner, err := s.repo.Assessment().IsOwner(ctx, assignment.AssessmentID, instructorID)
	if err != nil {
		return nil, fmt.Errorf("failed to check ownership: %w", err)
	}
	if !isOwner && assignment.AssignedBy != instructorID {
		return nil, ErrForbidden
	}

	questions, err := s.repo.Question().GetByAssessment(ctx, assignment.AssessmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get questions: %w", err)
	}

	responses, err := s.repo.Response().ListByAssessment(ctx, assignment.AssessmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get responses: %w", err)
	}

	grades, err := s.repo.Grade().ListByAssessment(ctx, assignment.AssessmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get grades: %w", err)
	}

	// student -> question -> earned points
	earned := make(map[string]map[uint]*int)
	for _, response := range responses {
		byQuestion, ok := earned[response.StudentID]
		if !ok {
			byQuestion = make(map[uint]*int)
			earned[response.StudentID] = byQuestion
		}
		byQuestion[response.QuestionID] = response.PointsEarned
	}

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	headers := []interface{}{"Student ID"}
	for _, question := range questions {
		headers = append(headers, fmt.Sprintf("Q%d (%d pts)", question.Order, question.Points))
	}
	headers = append(headers, "Total", "Status")
	if err := f.SetSheetRow(sheet, "A1", &headers); err != nil {
		return nil, fmt.Errorf("failed to write header row: %w", err)
	}

	for i, grade := range grades {
		row := []interface{}{grade.StudentID}
		for _, question := range questions {
			points := earned[grade.StudentID][question.ID]
			if points == nil {
				row = append(row, "pending")
			} else {
				row = append(row, *points)
			}
		}
		status := "final"
		if grade.Provisional {
			status = "provisional"
		}
		row = append(row, grade.Score, status)

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write grade row: %w", err)
		}
	}

	return f, nil
}

func (s *gradingService) publish(ctx context.Context, event *events.DomainEvent) {
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Error("Failed to publish event", "event_type", event.Type, "error", err)
	}
}
