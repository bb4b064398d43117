package assignment

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"assignment-service/internal/event"
)

var (
	ErrAssignmentNotFound = errors.New("assignment not found")
	ErrMissingFields      = errors.New("title and content are required")
	ErrInvalidInput       = errors.New("invalid input")
)

type Service interface {
	CreateAssignment(ctx context.Context, studentID int, subject Subject, title, content string) (*Assignment, error)
	GetAllAssignments(ctx context.Context) ([]Assignment, error)
	GetAssignmentByID(ctx context.Context, id int) (*Assignment, error)
	GetAssignmentsBySubject(ctx context.Context, subject Subject) ([]Assignment, error)
	GetAssignmentsByStudentID(ctx context.Context, studentID int) ([]Assignment, error)
	GetGradedAssignments(ctx context.Context) ([]Assignment, error)
	GetUngradedAssignments(ctx context.Context) ([]Assignment, error)
	GetGradesByStudentID(ctx context.Context, studentID int) ([]Assignment, error)
}

type service struct {
	repo     Repository
	producer event.Producer
	logger   *slog.Logger
}

func NewService(repo Repository, producer event.Producer, logger *slog.Logger) Service {
	return &service{
		repo:     repo,
		producer: producer,
		logger:   logger,
	}
}

// CreateAssignment stores a new ungraded assignment. The studentID is not
// checked against the user table (known gap, preserved deliberately).
func (s *service) CreateAssignment(ctx context.Context, studentID int, subject Subject, title, content string) (*Assignment, error) {
	if title == "" || content == "" {
		return nil, ErrMissingFields
	}

	created, err := s.repo.Create(ctx, &Assignment{
		StudentID: studentID,
		Subject:   subject,
		Title:     title,
		Content:   content,
	})
	if err != nil {
		return nil, err
	}

	s.publishCreated(ctx, created)
	return created, nil
}

func (s *service) GetAllAssignments(ctx context.Context) ([]Assignment, error) {
	return s.repo.GetAll(ctx)
}

func (s *service) GetAssignmentByID(ctx context.Context, id int) (*Assignment, error) {
	if id <= 0 {
		return nil, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, id)
}

func (s *service) GetAssignmentsBySubject(ctx context.Context, subject Subject) ([]Assignment, error) {
	return s.repo.GetBySubject(ctx, subject)
}

func (s *service) GetAssignmentsByStudentID(ctx context.Context, studentID int) ([]Assignment, error) {
	return s.repo.GetByStudentID(ctx, studentID)
}

func (s *service) GetGradedAssignments(ctx context.Context) ([]Assignment, error) {
	return s.repo.GetGraded(ctx)
}

func (s *service) GetUngradedAssignments(ctx context.Context) ([]Assignment, error) {
	return s.repo.GetUngraded(ctx)
}

// GetGradesByStudentID returns the subset of the student's assignments whose
// grading sub-record is present.
func (s *service) GetGradesByStudentID(ctx context.Context, studentID int) ([]Assignment, error) {
	assignments, err := s.repo.GetByStudentID(ctx, studentID)
	if err != nil {
		return nil, err
	}

	graded := make([]Assignment, 0)
	for i := range assignments {
		if assignments[i].Graded() {
			graded = append(graded, assignments[i])
		}
	}
	return graded, nil
}

func (s *service) publishCreated(ctx context.Context, a *Assignment) {
	if s.producer == nil {
		return
	}
	evt := event.AssignmentCreated{
		Type:         event.TypeAssignmentCreated,
		AssignmentID: a.ID,
		StudentID:    a.StudentID,
		Subject:      string(a.Subject),
		At:           time.Now(),
	}
	if err := s.producer.SendMessage(ctx, evt); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish assignment created event", "error", err)
	}
}
