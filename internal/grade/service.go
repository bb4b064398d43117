package grade

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"assignment-service/internal/assignment"
	"assignment-service/internal/event"
)

var (
	ErrInvalidGrade      = errors.New("grade must be between a value of 0 and 100")
	ErrMissingAssignment = errors.New("assignment ID is required")
	ErrAlreadyGraded     = errors.New("assignment has already been graded")
	ErrUpdateFailed      = errors.New("failed to update assignment with grade")
)

type Service interface {
	CreateGrade(ctx context.Context, teacherID, assignmentID, grade int, feedback string) (*assignment.Assignment, error)
}

type service struct {
	assignments  assignment.Repository
	allowRegrade bool
	producer     event.Producer
	logger       *slog.Logger
}

// NewService builds the grading service. allowRegrade controls whether a
// second grade submission overwrites the existing sub-record or fails.
func NewService(assignments assignment.Repository, allowRegrade bool, producer event.Producer, logger *slog.Logger) Service {
	return &service{
		assignments:  assignments,
		allowRegrade: allowRegrade,
		producer:     producer,
		logger:       logger,
	}
}

// CreateGrade moves an assignment from ungraded to graded. The transition is
// terminal: no operation clears a grading sub-record. Role enforcement
// happens at the route layer; any teacher may grade any student's assignment
// (flat teacher authority, no ownership scoping - an explicit policy choice).
func (s *service) CreateGrade(ctx context.Context, teacherID, assignmentID, grade int, feedback string) (*assignment.Assignment, error) {
	if grade < 0 || grade > 100 {
		return nil, ErrInvalidGrade
	}
	if assignmentID <= 0 {
		return nil, ErrMissingAssignment
	}

	target, err := s.assignments.GetByID(ctx, assignmentID)
	if err != nil {
		return nil, err
	}

	if target.Graded() && !s.allowRegrade {
		return nil, ErrAlreadyGraded
	}

	updated, err := s.assignments.SetGrade(ctx, assignmentID, assignment.GradeRecord{
		TeacherID: teacherID,
		Grade:     grade,
		Feedback:  feedback,
		GradedAt:  time.Now(),
	})
	if err != nil {
		// The record was found a moment ago; losing it here is a logic or
		// concurrency bug, not a user error.
		if errors.Is(err, assignment.ErrAssignmentNotFound) {
			return nil, fmt.Errorf("%w: assignment %d vanished during update", ErrUpdateFailed, assignmentID)
		}
		return nil, err
	}

	s.publishGraded(ctx, updated, teacherID, grade)
	return updated, nil
}

func (s *service) publishGraded(ctx context.Context, a *assignment.Assignment, teacherID, grade int) {
	if s.producer == nil {
		return
	}
	evt := event.AssignmentGraded{
		Type:         event.TypeAssignmentGraded,
		AssignmentID: a.ID,
		StudentID:    a.StudentID,
		TeacherID:    teacherID,
		Grade:        grade,
		At:           time.Now(),
	}
	if err := s.producer.SendMessage(ctx, evt); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish assignment graded event", "error", err)
	}
}
