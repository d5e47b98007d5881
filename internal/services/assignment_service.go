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

type assignmentService struct {
	repo      repositories.Repository
	publisher events.EventPublisher
	logger    *slog.Logger
	validator *validator.Validator
}

func NewAssignmentService(repo repositories.Repository, publisher events.EventPublisher, logger *slog.Logger, v *validator.Validator) AssignmentService {
	return &assignmentService{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
		validator: v,
	}
}

// Assign binds an assessment to a section. There is no pre-read for an
// existing binding: the insert either wins or loses against the unique index,
// so two concurrent instructors get exactly one success and one
// ErrDuplicateAssignment.
func (s *assignmentService) Assign(ctx context.Context, req *AssignRequest, instructorID string) (*models.Assignment, error) {
	s.logger.Info("Assigning assessment to section",
		"assessment_id", req.AssessmentID,
		"course_id", req.CourseID,
		"year_level", req.YearLevel,
		"section", req.Section,
		"instructor_id", instructorID)

	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidationFailed, err)
	}
	if err := validateWindow(req.OpenedAt, req.ClosedAt); err != nil {
		return nil, err
	}

	if _, err := s.repo.Assessment().GetByID(ctx, req.AssessmentID); err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrAssessmentNotFound
		}
		return nil, fmt.Errorf("failed to get assessment: %w", err)
	}

	assignment := &models.Assignment{
		AssessmentID: req.AssessmentID,
		CourseID:     req.CourseID,
		YearLevel:    req.YearLevel,
		Section:      req.Section,
		IsAvailable:  req.IsAvailable,
		OpenedAt:     req.OpenedAt,
		ClosedAt:     req.ClosedAt,
		AssignedBy:   instructorID,
	}

	if err := s.repo.Assignment().Create(ctx, assignment); err != nil {
		if repositories.IsDuplicateError(err) {
			return nil, ErrDuplicateAssignment
		}
		return nil, fmt.Errorf("failed to create assignment: %w", err)
	}

	s.publish(ctx, events.NewDomainEvent(events.AssignmentCreated, events.AssignmentCreatedPayload{
		AssignmentID: assignment.ID,
		AssessmentID: assignment.AssessmentID,
		CourseID:     assignment.CourseID,
		YearLevel:    assignment.YearLevel,
		Section:      assignment.Section,
		IsAvailable:  assignment.IsAvailable,
		AssignedBy:   instructorID,
	}))

	s.logger.Info("Assignment created", "assignment_id", assignment.ID)
	return assignment, nil
}

func (s *assignmentService) ToggleAvailability(ctx context.Context, assignmentID uint, instructorID string) (bool, error) {
	if err := s.requireAssignmentOwner(ctx, assignmentID, instructorID); err != nil {
		return false, err
	}

	newState, err := s.repo.Assignment().ToggleAvailability(ctx, assignmentID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return false, ErrAssignmentNotFound
		}
		return false, fmt.Errorf("failed to toggle availability: %w", err)
	}

	s.publish(ctx, events.NewDomainEvent(events.AssignmentToggled, events.AssignmentToggledPayload{
		AssignmentID: assignmentID,
		IsAvailable:  newState,
	}))

	s.logger.Info("Assignment availability toggled",
		"assignment_id", assignmentID,
		"is_available", newState)
	return newState, nil
}

func (s *assignmentService) UpdateWindow(ctx context.Context, assignmentID uint, req *UpdateWindowRequest, instructorID string) error {
	if err := validateWindow(req.OpenedAt, req.ClosedAt); err != nil {
		return err
	}

	if err := s.requireAssignmentOwner(ctx, assignmentID, instructorID); err != nil {
		return err
	}

	if err := s.repo.Assignment().UpdateWindow(ctx, assignmentID, req.OpenedAt, req.ClosedAt); err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrAssignmentNotFound
		}
		return fmt.Errorf("failed to update window: %w", err)
	}
	return nil
}

// Delete removes the section binding only; existing responses and grades
// belong to the (student, assessment) relationship and survive it.
func (s *assignmentService) Delete(ctx context.Context, assignmentID uint, instructorID string) error {
	if err := s.requireAssignmentOwner(ctx, assignmentID, instructorID); err != nil {
		return err
	}

	if err := s.repo.Assignment().Delete(ctx, assignmentID); err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrAssignmentNotFound
		}
		return fmt.Errorf("failed to delete assignment: %w", err)
	}

	s.logger.Info("Assignment deleted", "assignment_id", assignmentID)
	return nil
}

// IsVisible evaluates effective availability against a fresh row read.
// Window bounds pass silently, so the answer is only good for "now" and is
// never cached.
func (s *assignmentService) IsVisible(ctx context.Context, assignmentID uint, now time.Time) (bool, error) {
	assignment, err := s.repo.Assignment().GetByID(ctx, assignmentID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return false, ErrAssignmentNotFound
		}
		return false, fmt.Errorf("failed to get assignment: %w", err)
	}
	return assignment.EffectiveAvailability(now), nil
}

func (s *assignmentService) ListForSection(ctx context.Context, ref models.SectionRef, now time.Time) ([]*models.Assignment, error) {
	if err := s.validator.ValidateStruct(&ref); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidationFailed, err)
	}

	assignments, err := s.repo.Assignment().ListForSection(ctx, ref)
	if err != nil {
		return nil, fmt.Errorf("failed to list assignments: %w", err)
	}

	for _, assignment := range assignments {
		assignment.EffectivelyAvailable = assignment.EffectiveAvailability(now)
	}
	return assignments, nil
}

func (s *assignmentService) requireAssignmentOwner(ctx context.Context, assignmentID uint, instructorID string) error {
	assignment, err := s.repo.Assignment().GetByID(ctx, assignmentID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrAssignmentNotFound
		}
		return fmt.Errorf("failed to get assignment: %w", err)
	}

	// The assigning instructor or the assessment owner may manage the binding.
	if assignment.AssignedBy == instructorID {
		return nil
	}
	isOwner, err := s.repo.Assessment().IsOwner(ctx, assignment.AssessmentID, instructorID)
	if err != nil {
		return fmt.Errorf("failed to check ownership: %w", err)
	}
	if !isOwner {
		return ErrForbidden
	}
	return nil
}

func (s *assignmentService) publish(ctx context.Context, event *events.DomainEvent) {
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Error("Failed to publish event", "event_type", event.Type, "error", err)
	}
}

func validateWindow(openedAt, closedAt *time.Time) error {
	if openedAt != nil && closedAt != nil && closedAt.Before(*openedAt) {
		return ErrInvalidWindow
	}
	return nil
}
