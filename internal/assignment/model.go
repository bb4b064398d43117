package assignment

import (
	"time"

	"github.com/uptrace/bun"
)

// Subject is a closed set: extending it is a schema change, not free-form text.
type Subject string

const (
	SubjectMath    Subject = "math"
	SubjectEnglish Subject = "english"
)

// ParseSubject reports whether s names a known subject.
func ParseSubject(s string) (Subject, bool) {
	switch Subject(s) {
	case SubjectMath, SubjectEnglish:
		return Subject(s), true
	}
	return "", false
}

// Assignment carries an optional grading sub-record (teacher id, grade,
// feedback, graded-at). The sub-record is either fully present or fully
// absent; SetGrade is the only mutation that touches it.
type Assignment struct {
	bun.BaseModel `bun:"table:assignments,alias:a"`

	ID        int       `bun:"id,pk,autoincrement" json:"id"`
	StudentID int       `bun:"student_id,notnull" json:"studentId"`
	Subject   Subject   `bun:"subject,notnull" json:"subject"`
	Title     string    `bun:"title,notnull" json:"title"`
	Content   string    `bun:"content,notnull" json:"content"`
	CreatedAt time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"createdAt"`

	TeacherID *int       `bun:"teacher_id" json:"teacherId,omitempty"`
	Grade     *int       `bun:"grade" json:"grade,omitempty"`
	Feedback  *string    `bun:"feedback" json:"feedback,omitempty"`
	GradedAt  *time.Time `bun:"graded_at" json:"gradedAt,omitempty"`
}

// Graded reports whether the grading sub-record is present.
func (a *Assignment) Graded() bool {
	return a.Grade != nil
}

// GradeRecord is the grading sub-record applied atomically by SetGrade.
type GradeRecord struct {
	TeacherID int
	Grade     int
	Feedback  string
	GradedAt  time.Time
}

// CreateAssignmentRequest is the request body for assignment submission.
type CreateAssignmentRequest struct {
	StudentID int    `json:"studentId"`
	Subject   string `json:"subject"`
	Title     string `json:"title"`
	Content   string `json:"content"`
}
