package repository

import (
	"context"

	"github.com/stemsi/academia-backend/internal/model"
)

type SubjectRepository struct {
	db DBTX
}

func NewSubjectRepository(db DBTX) *SubjectRepository {
	return &SubjectRepository{db: db}
}

func (r *SubjectRepository) Create(ctx context.Context, s *model.Subject) error {
	err := r.db.QueryRow(ctx,
		`INSERT INTO subject (subject) VALUES ($1) RETURNING id`, s.Name,
	).Scan(&s.ID)
	return translate(err)
}

func (r *SubjectRepository) List(ctx context.Context) ([]model.Subject, error) {
	rows, err := r.db.Query(ctx, `SELECT id, subject FROM subject ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subjects []model.Subject
	for rows.Next() {
		var s model.Subject
		if err := rows.Scan(&s.ID, &s.Name); err != nil {
			return nil, err
		}
		subjects = append(subjects, s)
	}
	return subjects, rows.Err()
}

func (r *SubjectRepository) GetByID(ctx context.Context, id int) (*model.Subject, error) {
	s := &model.Subject{}
	err := r.db.QueryRow(ctx, `SELECT id, subject FROM subject WHERE id = $1`, id).Scan(&s.ID, &s.Name)
	if err != nil {
		return nil, translate(err)
	}
	return s, nil
}

// GetWithStudents loads a subject and its students in one query.
func (r *SubjectRepository) GetWithStudents(ctx context.Context, id int) (*model.SubjectWithStudents, error) {
	rows, err := r.db.Query(ctx,
		`SELECT sub.id, sub.subject, s.id, s.name, s.std, s.roll_number
		 FROM subject sub
		 LEFT JOIN student_subject ss ON ss.subject_id = sub.id
		 LEFT JOIN students s ON s.id = ss.students_id
		 WHERE sub.id = $1
		 ORDER BY s.id`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out *model.SubjectWithStudents
	for rows.Next() {
		var (
			sub        model.Subject
			studentID  *int
			name       *string
			std, rollN *int
		)
		if err := rows.Scan(&sub.ID, &sub.Name, &studentID, &name, &std, &rollN); err != nil {
			return nil, err
		}
		if out == nil {
			out = &model.SubjectWithStudents{Subject: sub, Students: []model.Student{}}
		}
		if studentID != nil {
			out.Students = append(out.Students, model.Student{ID: *studentID, Name: *name, Std: *std, RollNumber: *rollN})
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if out == nil {
		return nil, ErrNotFound
	}
	return out, nil
}

func (r *SubjectRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM subject WHERE subject = $1)`, name).Scan(&exists)
	return exists, err
}
