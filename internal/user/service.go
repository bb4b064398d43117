package user

import (
	"context"
	"errors"
	"log/slog"
	"regexp"
	"time"

	"assignment-service/internal/event"
)

var (
	ErrUserNotFound  = errors.New("user not found")
	ErrMissingFields = errors.New("name and email are required")
	ErrInvalidEmail  = errors.New("invalid email format")
	ErrInvalidInput  = errors.New("invalid input")
)

// emailPattern requires local@domain with at least one "." in the domain.
// Duplicate emails are accepted (known gap, preserved deliberately).
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type Service interface {
	CreateUser(ctx context.Context, name, email string, role Role) (*User, error)
	GetAllUsers(ctx context.Context) ([]User, error)
	GetUserByID(ctx context.Context, id int) (*User, error)
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

func (s *service) CreateUser(ctx context.Context, name, email string, role Role) (*User, error) {
	if name == "" || email == "" {
		return nil, ErrMissingFields
	}
	if !emailPattern.MatchString(email) {
		return nil, ErrInvalidEmail
	}

	created, err := s.repo.Create(ctx, &User{
		Name:  name,
		Email: email,
		Role:  role,
	})
	if err != nil {
		return nil, err
	}

	s.publishCreated(ctx, created)
	return created, nil
}

func (s *service) GetAllUsers(ctx context.Context) ([]User, error) {
	return s.repo.GetAll(ctx)
}

func (s *service) GetUserByID(ctx context.Context, id int) (*User, error) {
	if id <= 0 {
		return nil, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, id)
}

func (s *service) publishCreated(ctx context.Context, u *User) {
	if s.producer == nil {
		return
	}
	evt := event.UserCreated{
		Type:   event.TypeUserCreated,
		UserID: u.ID,
		Role:   string(u.Role),
		At:     time.Now(),
	}
	if err := s.producer.SendMessage(ctx, evt); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish user created event", "error", err)
	}
}
