package repository

import (
	"context"

	"github.com/stemsi/academia-backend/internal/model"
)

// StudentRepository handles student data access.
type StudentRepository struct {
	db DBTX
}

// NewStudentRepository creates a new StudentRepository.
func NewStudentRepository(db DBTX) *StudentRepository {
	return &StudentRepository{db: db}
}

// ListWithSubjects retrieves every student with its subjects in a single query.
func (r *StudentRepository) ListWithSubjects(ctx context.Context) ([]model.StudentWithSubjects, error) {
	rows, err := r.db.Query(ctx,
		`SELECT s.id, s.name, s.std, s.roll_number, sub.id, sub.subject
		 FROM students s
		 LEFT JOIN student_subject ss ON ss.students_id = s.id
		 LEFT JOIN subject sub ON sub.id = ss.subject_id
		 ORDER BY s.id, sub.id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var students []model.StudentWithSubjects
	for rows.Next() {
		var (
			s       model.Student
			subID   *int
			subName *string
		)
		if err := rows.Scan(&s.ID, &s.Name, &s.Std, &s.RollNumber, &subID, &subName); err != nil {
			return nil, err
		}

		// Rows arrive grouped by student id.
		if n := len(students); n == 0 || students[n-1].ID != s.ID {
			students = append(students, model.StudentWithSubjects{Student: s, Subjects: []model.Subject{}})
		}
		if subID != nil {
			last := &students[len(students)-1]
			last.Subjects = append(last.Subjects, model.Subject{ID: *subID, Name: *subName})
		}
	}
	return students, rows.Err()
}

// GetByID retrieves a student by ID.
func (r *StudentRepository) GetByID(ctx context.Context, id int) (*model.Student, error) {
	s := &model.Student{}
	err := r.db.QueryRow(ctx,
		`SELECT id, name, std, roll_number FROM students WHERE id = $1`, id,
	).Scan(&s.ID, &s.Name, &s.Std, &s.RollNumber)
	if err != nil {
		return nil, translate(err)
	}
	return s, nil
}

// ExistsByStdRoll reports whether another student already holds (std, roll_number).
func (r *StudentRepository) ExistsByStdRoll(ctx context.Context, std, rollNumber, excludeID int) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM students WHERE std = $1 AND roll_number = $2 AND id <> $3)`,
		std, rollNumber, excludeID,
	).Scan(&exists)
	return exists, err
}

// Create inserts a new student and fills in its ID.
func (r *StudentRepository) Create(ctx context.Context, s *model.Student) error {
	err := r.db.QueryRow(ctx,
		`INSERT INTO students (name, std, roll_number) VALUES ($1, $2, $3) RETURNING id`,
		s.Name, s.Std, s.RollNumber,
	).Scan(&s.ID)
	return translate(err)
}

// Update overwrites name, std and roll_number of an existing student.
func (r *StudentRepository) Update(ctx context.Context, s *model.Student) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE students SET name = $1, std = $2, roll_number = $3 WHERE id = $4`,
		s.Name, s.Std, s.RollNumber, s.ID,
	)
	if err != nil {
		return translate(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a student by ID.
func (r *StudentRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM students WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
