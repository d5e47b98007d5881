package events

import (
	"time"

	"github.com/ThreeDotsLabs/watermill"
)

type EventType string

const (
	AssignmentCreated EventType = "assignment.created"
	AssignmentToggled EventType = "assignment.toggled"
	ResponseSubmitted EventType = "response.submitted"
	GradeFinalized    EventType = "grade.finalized"
)

// DomainEvent is the envelope published to Kafka for downstream consumers
// (notification fan-out, dashboards). Payload shape depends on Type.
type DomainEvent struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Source    string      `json:"source"`
	Version   string      `json:"version"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// NewDomainEvent stamps a new event envelope
func NewDomainEvent(eventType EventType, payload interface{}) *DomainEvent {
	return &DomainEvent{
		ID:        watermill.NewUUID(),
		Type:      eventType,
		Source:    "assessment-service",
		Version:   "1.0",
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	}
}

type AssignmentCreatedPayload struct {
	AssignmentID uint   `json:"assignment_id"`
	AssessmentID uint   `json:"assessment_id"`
	CourseID     uint   `json:"course_id"`
	YearLevel    int    `json:"year_level"`
	Section      string `json:"section"`
	IsAvailable  bool   `json:"is_available"`
	AssignedBy   string `json:"assigned_by"`
}

type AssignmentToggledPayload struct {
	AssignmentID uint `json:"assignment_id"`
	IsAvailable  bool `json:"is_available"`
}

type ResponseSubmittedPayload struct {
	ResponseID   uint   `json:"response_id"`
	QuestionID   uint   `json:"question_id"`
	AssessmentID uint   `json:"assessment_id"`
	StudentID    string `json:"student_id"`
	AutoGraded   bool   `json:"auto_graded"`
}

type GradeFinalizedPayload struct {
	AssessmentID uint   `json:"assessment_id"`
	StudentID    string `json:"student_id"`
	Score        int    `json:"score"`
	TotalPoints  int    `json:"total_points"`
}
