package repository

import (
	"context"

	"github.com/stemsi/academia-backend/internal/model"
)

// EnrollmentRepository handles student_subject rows.
type EnrollmentRepository struct {
	db DBTX
}

// NewEnrollmentRepository creates a new EnrollmentRepository.
func NewEnrollmentRepository(db DBTX) *EnrollmentRepository {
	return &EnrollmentRepository{db: db}
}

// Create links a student to a subject.
func (r *EnrollmentRepository) Create(ctx context.Context, e *model.Enrollment) error {
	err := r.db.QueryRow(ctx,
		`INSERT INTO student_subject (students_id, subject_id) VALUES ($1, $2) RETURNING id`,
		e.StudentID, e.SubjectID,
	).Scan(&e.ID)
	return translate(err)
}

// Exists reports whether the student already takes the subject.
func (r *EnrollmentRepository) Exists(ctx context.Context, studentID, subjectID int) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM student_subject WHERE students_id = $1 AND subject_id = $2)`,
		studentID, subjectID,
	).Scan(&exists)
	return exists, err
}

// DeleteByStudent removes every enrollment of a student.
func (r *EnrollmentRepository) DeleteByStudent(ctx context.Context, studentID int) error {
	_, err := r.db.Exec(ctx, `DELETE FROM student_subject WHERE students_id = $1`, studentID)
	return err
}
