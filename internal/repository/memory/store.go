// Package memory is an in-process repository.UnitOfWork used for local
// development (STORE_DRIVER=memory) and tests. It honours the same unique
// constraints and cascade rules as the Postgres schema.
package memory

import (
	"context"
	"maps"
	"slices"
	"sync"

	"github.com/stemsi/academia-backend/internal/model"
	"github.com/stemsi/academia-backend/internal/repository"
)

// Store keeps all rows in maps guarded by a single mutex. Units of work are
// serialised and operate on a copy that replaces the live state on success.
type Store struct {
	mu    sync.Mutex
	state *state
}

type state struct {
	students    map[int]model.Student
	subjects    map[int]model.Subject
	enrollments map[int]model.Enrollment

	lastStudentID    int
	lastSubjectID    int
	lastEnrollmentID int
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{state: &state{
		students:    map[int]model.Student{},
		subjects:    map[int]model.Subject{},
		enrollments: map[int]model.Enrollment{},
	}}
}

func (s *state) clone() *state {
	c := *s
	c.students = maps.Clone(s.students)
	c.subjects = maps.Clone(s.subjects)
	c.enrollments = maps.Clone(s.enrollments)
	return &c
}

// Do runs fn against a snapshot and publishes it only when fn succeeds.
func (s *Store) Do(ctx context.Context, fn func(tx repository.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	work := s.state.clone()
	if err := fn(&tx{st: work}); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	s.state = work
	return nil
}

// Ping always succeeds.
func (s *Store) Ping(context.Context) error { return nil }

type tx struct {
	st *state
}

func (t *tx) Students() repository.StudentStore       { return studentStore{t.st} }
func (t *tx) Subjects() repository.SubjectStore       { return subjectStore{t.st} }
func (t *tx) Enrollments() repository.EnrollmentStore { return enrollmentStore{t.st} }

// sortedKeys returns map keys in ascending order, matching ORDER BY id.
func sortedKeys[V any](m map[int]V) []int {
	return slices.Sorted(maps.Keys(m))
}

// ─── Students ───────────────────────────────────────────────────────────────

type studentStore struct{ st *state }

func (r studentStore) ListWithSubjects(ctx context.Context) ([]model.StudentWithSubjects, error) {
	var out []model.StudentWithSubjects
	for _, id := range sortedKeys(r.st.students) {
		out = append(out, model.StudentWithSubjects{
			Student:  r.st.students[id],
			Subjects: r.st.subjectsOf(id),
		})
	}
	return out, nil
}

func (r studentStore) GetByID(ctx context.Context, id int) (*model.Student, error) {
	s, ok := r.st.students[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &s, nil
}

func (r studentStore) ExistsByStdRoll(ctx context.Context, std, rollNumber, excludeID int) (bool, error) {
	for id, s := range r.st.students {
		if id != excludeID && s.Std == std && s.RollNumber == rollNumber {
			return true, nil
		}
	}
	return false, nil
}

func (r studentStore) Create(ctx context.Context, s *model.Student) error {
	if taken, _ := r.ExistsByStdRoll(ctx, s.Std, s.RollNumber, 0); taken {
		return repository.ErrDuplicate
	}
	r.st.lastStudentID++
	s.ID = r.st.lastStudentID
	r.st.students[s.ID] = *s
	return nil
}

func (r studentStore) Update(ctx context.Context, s *model.Student) error {
	if _, ok := r.st.students[s.ID]; !ok {
		return repository.ErrNotFound
	}
	if taken, _ := r.ExistsByStdRoll(ctx, s.Std, s.RollNumber, s.ID); taken {
		return repository.ErrDuplicate
	}
	r.st.students[s.ID] = *s
	return nil
}

// Delete removes the student and, like ON DELETE CASCADE, its enrollments.
func (r studentStore) Delete(ctx context.Context, id int) error {
	if _, ok := r.st.students[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.st.students, id)
	maps.DeleteFunc(r.st.enrollments, func(_ int, e model.Enrollment) bool {
		return e.StudentID == id
	})
	return nil
}

// ─── Subjects ───────────────────────────────────────────────────────────────

type subjectStore struct{ st *state }

func (r subjectStore) List(ctx context.Context) ([]model.Subject, error) {
	var out []model.Subject
	for _, id := range sortedKeys(r.st.subjects) {
		out = append(out, r.st.subjects[id])
	}
	return out, nil
}

func (r subjectStore) GetByID(ctx context.Context, id int) (*model.Subject, error) {
	s, ok := r.st.subjects[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &s, nil
}

func (r subjectStore) GetWithStudents(ctx context.Context, id int) (*model.SubjectWithStudents, error) {
	sub, ok := r.st.subjects[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	out := &model.SubjectWithStudents{Subject: sub, Students: []model.Student{}}
	for _, eid := range sortedKeys(r.st.enrollments) {
		if e := r.st.enrollments[eid]; e.SubjectID == id {
			out.Students = append(out.Students, r.st.students[e.StudentID])
		}
	}
	slices.SortStableFunc(out.Students, func(a, b model.Student) int { return a.ID - b.ID })
	return out, nil
}

func (r subjectStore) ExistsByName(ctx context.Context, name string) (bool, error) {
	for _, s := range r.st.subjects {
		if s.Name == name {
			return true, nil
		}
	}
	return false, nil
}

func (r subjectStore) Create(ctx context.Context, s *model.Subject) error {
	if taken, _ := r.ExistsByName(ctx, s.Name); taken {
		return repository.ErrDuplicate
	}
	r.st.lastSubjectID++
	s.ID = r.st.lastSubjectID
	r.st.subjects[s.ID] = *s
	return nil
}

// ─── Enrollments ────────────────────────────────────────────────────────────

type enrollmentStore struct{ st *state }

func (r enrollmentStore) Create(ctx context.Context, e *model.Enrollment) error {
	if _, ok := r.st.students[e.StudentID]; !ok {
		return repository.ErrNotFound
	}
	if _, ok := r.st.subjects[e.SubjectID]; !ok {
		return repository.ErrNotFound
	}
	if taken, _ := r.Exists(ctx, e.StudentID, e.SubjectID); taken {
		return repository.ErrDuplicate
	}
	r.st.lastEnrollmentID++
	e.ID = r.st.lastEnrollmentID
	r.st.enrollments[e.ID] = *e
	return nil
}

func (r enrollmentStore) Exists(ctx context.Context, studentID, subjectID int) (bool, error) {
	for _, e := range r.st.enrollments {
		if e.StudentID == studentID && e.SubjectID == subjectID {
			return true, nil
		}
	}
	return false, nil
}

func (r enrollmentStore) DeleteByStudent(ctx context.Context, studentID int) error {
	maps.DeleteFunc(r.st.enrollments, func(_ int, e model.Enrollment) bool {
		return e.StudentID == studentID
	})
	return nil
}

func (s *state) subjectsOf(studentID int) []model.Subject {
	subjects := []model.Subject{}
	for _, eid := range sortedKeys(s.enrollments) {
		if e := s.enrollments[eid]; e.StudentID == studentID {
			subjects = append(subjects, s.subjects[e.SubjectID])
		}
	}
	slices.SortStableFunc(subjects, func(a, b model.Subject) int { return a.ID - b.ID })
	return subjects
}

var _ repository.UnitOfWork = (*Store)(nil)
