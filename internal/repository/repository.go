package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stemsi/academia-backend/internal/model"
)

var (
	// ErrNotFound is returned when a lookup by id matches no row.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when a write violates a unique constraint.
	ErrDuplicate = errors.New("record already exists")
)

// StudentStore is the student data access contract.
type StudentStore interface {
	ListWithSubjects(ctx context.Context) ([]model.StudentWithSubjects, error)
	GetByID(ctx context.Context, id int) (*model.Student, error)
	// ExistsByStdRoll reports whether a student other than excludeID holds
	// the (std, roll_number) pair. Pass 0 to consider every student.
	ExistsByStdRoll(ctx context.Context, std, rollNumber, excludeID int) (bool, error)
	Create(ctx context.Context, s *model.Student) error
	Update(ctx context.Context, s *model.Student) error
	Delete(ctx context.Context, id int) error
}

// SubjectStore is the subject data access contract.
type SubjectStore interface {
	List(ctx context.Context) ([]model.Subject, error)
	GetByID(ctx context.Context, id int) (*model.Subject, error)
	GetWithStudents(ctx context.Context, id int) (*model.SubjectWithStudents, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	Create(ctx context.Context, s *model.Subject) error
}

// EnrollmentStore is the student_subject data access contract.
type EnrollmentStore interface {
	Create(ctx context.Context, e *model.Enrollment) error
	Exists(ctx context.Context, studentID, subjectID int) (bool, error)
	DeleteByStudent(ctx context.Context, studentID int) error
}

// Tx groups the repositories bound to one unit of work.
type Tx interface {
	Students() StudentStore
	Subjects() SubjectStore
	Enrollments() EnrollmentStore
}

// UnitOfWork runs fn inside a transaction. The transaction is committed when
// fn returns nil and rolled back otherwise; it is always released.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(tx Tx) error) error
	Ping(ctx context.Context) error
}

// DBTX is satisfied by *pgxpool.Pool, *pgx.Conn and pgx.Tx.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// translate maps driver errors onto the package sentinels.
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrDuplicate
	}
	return err
}
