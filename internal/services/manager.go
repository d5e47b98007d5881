package services

import (
	"log/slog"

	"github.com/classworks/assessment-service/internal/cache"
	"github.com/classworks/assessment-service/internal/events"
	"github.com/classworks/assessment-service/internal/repositories"
	"github.com/classworks/assessment-service/internal/validator"
)

type serviceManager struct {
	assessment AssessmentService
	assignment AssignmentService
	submission SubmissionService
	grading    GradingService
}

// NewServiceManager wires every service over the shared repository, cache,
// event publisher, logger and validator.
func NewServiceManager(
	repo repositories.Repository,
	cacheSvc cache.CacheService,
	publisher events.EventPublisher,
	logger *slog.Logger,
	v *validator.Validator,
) ServiceManager {
	grading := NewGradingService(repo, publisher, logger, v)

	return &serviceManager{
		assessment: NewAssessmentService(repo, cacheSvc, logger, v),
		assignment: NewAssignmentService(repo, publisher, logger, v),
		submission: NewSubmissionService(repo, grading, publisher, logger, v),
		grading:    grading,
	}
}

func (m *serviceManager) Assessment() AssessmentService { return m.assessment }
func (m *serviceManager) Assignment() AssignmentService { return m.assignment }
func (m *serviceManager) Submission() SubmissionService { return m.submission }
func (m *serviceManager) Grading() GradingService       { return m.grading }
