package assignment

import (
	"context"
	"database/sql"
	"errors"

	"github.com/uptrace/bun"
)

type Repository interface {
	Create(ctx context.Context, assignment *Assignment) (*Assignment, error)
	GetAll(ctx context.Context) ([]Assignment, error)
	GetByID(ctx context.Context, id int) (*Assignment, error)
	GetBySubject(ctx context.Context, subject Subject) ([]Assignment, error)
	GetByStudentID(ctx context.Context, studentID int) ([]Assignment, error)
	GetGraded(ctx context.Context) ([]Assignment, error)
	GetUngraded(ctx context.Context) ([]Assignment, error)
	SetGrade(ctx context.Context, id int, record GradeRecord) (*Assignment, error)
}

// repository is the postgres-backed implementation, selected by
// store.driver: postgres.
type repository struct {
	db *bun.DB
}

func NewRepository(db *bun.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, assignment *Assignment) (*Assignment, error) {
	_, err := r.db.NewInsert().Model(assignment).Returning("*").Exec(ctx)
	if err != nil {
		return nil, err
	}
	return assignment, nil
}

func (r *repository) GetAll(ctx context.Context) ([]Assignment, error) {
	var assignments []Assignment
	err := r.db.NewSelect().Model(&assignments).Order("id ASC").Scan(ctx)
	return assignments, err
}

func (r *repository) GetByID(ctx context.Context, id int) (*Assignment, error) {
	assignment := new(Assignment)
	err := r.db.NewSelect().Model(assignment).Where("id = ?", id).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAssignmentNotFound
		}
		return nil, err
	}
	return assignment, nil
}

func (r *repository) GetBySubject(ctx context.Context, subject Subject) ([]Assignment, error) {
	var assignments []Assignment
	err := r.db.NewSelect().Model(&assignments).Where("subject = ?", subject).Order("id ASC").Scan(ctx)
	return assignments, err
}

func (r *repository) GetByStudentID(ctx context.Context, studentID int) ([]Assignment, error) {
	var assignments []Assignment
	err := r.db.NewSelect().Model(&assignments).Where("student_id = ?", studentID).Order("id ASC").Scan(ctx)
	return assignments, err
}

func (r *repository) GetGraded(ctx context.Context) ([]Assignment, error) {
	var assignments []Assignment
	err := r.db.NewSelect().Model(&assignments).Where("grade IS NOT NULL").Order("id ASC").Scan(ctx)
	return assignments, err
}

func (r *repository) GetUngraded(ctx context.Context) ([]Assignment, error) {
	var assignments []Assignment
	err := r.db.NewSelect().Model(&assignments).Where("grade IS NULL").Order("id ASC").Scan(ctx)
	return assignments, err
}

func (r *repository) SetGrade(ctx context.Context, id int, record GradeRecord) (*Assignment, error) {
	assignment := new(Assignment)
	result, err := r.db.NewUpdate().
		Model(assignment).
		Set("teacher_id = ?", record.TeacherID).
		Set("grade = ?", record.Grade).
		Set("feedback = ?", record.Feedback).
		Set("graded_at = ?", record.GradedAt).
		Where("id = ?", id).
		Returning("*").
		Exec(ctx)
	if err != nil {
		return nil, err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, err
	}
	if rowsAffected == 0 {
		return nil, ErrAssignmentNotFound
	}
	return assignment, nil
}
