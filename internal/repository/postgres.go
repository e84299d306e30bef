package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore is the pgx-backed UnitOfWork.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a new PostgresStore.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// Do begins a transaction, hands its repositories to fn and commits on success.
func (s *PostgresStore) Do(ctx context.Context, fn func(tx Tx) error) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	// Rollback after Commit is a no-op; it runs on every path, panics included.
	defer func() { _ = tx.Rollback(context.WithoutCancel(ctx)) }()

	if err := fn(newPgTx(tx)); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", translate(err))
	}
	return nil
}

// Ping checks that the database is reachable.
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

type pgTx struct {
	students    *StudentRepository
	subjects    *SubjectRepository
	enrollments *EnrollmentRepository
}

func newPgTx(tx pgx.Tx) *pgTx {
	return &pgTx{
		students:    NewStudentRepository(tx),
		subjects:    NewSubjectRepository(tx),
		enrollments: NewEnrollmentRepository(tx),
	}
}

func (t *pgTx) Students() StudentStore       { return t.students }
func (t *pgTx) Subjects() SubjectStore       { return t.subjects }
func (t *pgTx) Enrollments() EnrollmentStore { return t.enrollments }

var (
	_ UnitOfWork      = (*PostgresStore)(nil)
	_ StudentStore    = (*StudentRepository)(nil)
	_ SubjectStore    = (*SubjectRepository)(nil)
	_ EnrollmentStore = (*EnrollmentRepository)(nil)
)
