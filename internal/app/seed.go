package app

import (
	"context"
	"fmt"

	"assignment-service/internal/assignment"
	"assignment-service/internal/user"
)

// SeedDemoData loads the demo fixtures into a fresh store: one teacher, two
// students and two ungraded assignments for the first student. Intended for
// the memory driver, where state starts empty on every boot.
func SeedDemoData(ctx context.Context, users user.Repository, assignments assignment.Repository) error {
	seedUsers := []user.User{
		{Name: "test teacher", Email: "teacher1@email.com", Role: user.RoleTeacher},
		{Name: "test student", Email: "student1@email.com", Role: user.RoleStudent},
		{Name: "test student 2", Email: "student2@email.com", Role: user.RoleStudent},
	}
	for i := range seedUsers {
		if _, err := users.Create(ctx, &seedUsers[i]); err != nil {
			return fmt.Errorf("failed to seed user %q: %w", seedUsers[i].Email, err)
		}
	}

	studentID := seedUsers[1].ID

	seedAssignments := []assignment.Assignment{
		{StudentID: studentID, Subject: assignment.SubjectMath, Title: "Math test 1", Content: "math content"},
		{StudentID: studentID, Subject: assignment.SubjectEnglish, Title: "English test 1", Content: "english content"},
	}
	for i := range seedAssignments {
		if _, err := assignments.Create(ctx, &seedAssignments[i]); err != nil {
			return fmt.Errorf("failed to seed assignment %q: %w", seedAssignments[i].Title, err)
		}
	}

	return nil
}
