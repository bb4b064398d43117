package event

import (
	"context"
	"time"
)

// Producer publishes domain events to a message backend (NATS/Kafka).
// Publishing is best effort: callers log failures and keep going.
type Producer interface {
	SendMessage(ctx context.Context, value interface{}) error
	Close() error
}

const (
	TypeUserCreated       = "user.created"
	TypeAssignmentCreated = "assignment.created"
	TypeAssignmentGraded  = "assignment.graded"
)

type UserCreated struct {
	Type   string    `json:"type"`
	UserID int       `json:"userId"`
	Role   string    `json:"role"`
	At     time.Time `json:"at"`
}

type AssignmentCreated struct {
	Type         string    `json:"type"`
	AssignmentID int       `json:"assignmentId"`
	StudentID    int       `json:"studentId"`
	Subject      string    `json:"subject"`
	At           time.Time `json:"at"`
}

type AssignmentGraded struct {
	Type         string    `json:"type"`
	AssignmentID int       `json:"assignmentId"`
	StudentID    int       `json:"studentId"`
	TeacherID    int       `json:"teacherId"`
	Grade        int       `json:"grade"`
	At           time.Time `json:"at"`
}
