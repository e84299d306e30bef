package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"github.com/stemsi/academia-backend/internal/model"
	"github.com/stemsi/academia-backend/internal/repository"
)

// StudentService handles student business logic.
type StudentService struct {
	uow repository.UnitOfWork
	log zerolog.Logger
}

// NewStudentService creates a new StudentService.
func NewStudentService(uow repository.UnitOfWork, log zerolog.Logger) *StudentService {
	return &StudentService{
		uow: uow,
		log: log.With().Str("component", "student_service").Logger(),
	}
}

// ListAll returns every student with its subjects. An empty roster is ErrNoStudents.
func (s *StudentService) ListAll(ctx context.Context) ([]model.StudentWithSubjects, error) {
	var students []model.StudentWithSubjects
	err := s.uow.Do(ctx, func(tx repository.Tx) error {
		var err error
		students, err = tx.Students().ListWithSubjects(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	if len(students) == 0 {
		return nil, ErrNoStudents
	}
	return students, nil
}

// ListBySubject returns the subject with the students taking it.
func (s *StudentService) ListBySubject(ctx context.Context, subjectID int) (*model.SubjectWithStudents, error) {
	var subject *model.SubjectWithStudents
	err := s.uow.Do(ctx, func(tx repository.Tx) error {
		var err error
		subject, err = tx.Subjects().GetWithStudents(ctx, subjectID)
		if errors.Is(err, repository.ErrNotFound) {
			return ErrSubjectNotFound
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return subject, nil
}

// Create adds a student unless another one already holds its (std, roll_number).
func (s *StudentService) Create(ctx context.Context, req model.CreateStudentRequest) (*model.Student, error) {
	student := &model.Student{
		Name:       req.Name,
		Std:        req.Std,
		RollNumber: *req.RollNumber,
	}

	err := s.uow.Do(ctx, func(tx repository.Tx) error {
		taken, err := tx.Students().ExistsByStdRoll(ctx, student.Std, student.RollNumber, 0)
		if err != nil {
			return err
		}
		if taken {
			return ErrStudentExists
		}
		return tx.Students().Create(ctx, student)
	})
	if err != nil {
		// The unique index catches inserts that raced past the check.
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrStudentExists
		}
		return nil, err
	}

	s.log.Info().Int("student_id", student.ID).Int("std", student.Std).Int("roll_number", student.RollNumber).Msg("student added")
	return student, nil
}

// Delete removes a student together with its enrollments.
func (s *StudentService) Delete(ctx context.Context, id int) error {
	err := s.uow.Do(ctx, func(tx repository.Tx) error {
		if _, err := tx.Students().GetByID(ctx, id); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrStudentNotFound
			}
			return err
		}
		if err := tx.Enrollments().DeleteByStudent(ctx, id); err != nil {
			return err
		}
		return tx.Students().Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	s.log.Info().Int("student_id", id).Msg("student deleted")
	return nil
}

// Update applies the fields present in req. When std or roll_number change,
// the resulting pair must not belong to another student.
func (s *StudentService) Update(ctx context.Context, id int, req model.UpdateStudentRequest) error {
	err := s.uow.Do(ctx, func(tx repository.Tx) error {
		current, err := tx.Students().GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrStudentNotFound
			}
			return err
		}

		updated := *current
		updated.Apply(req)
		if updated == *current {
			return nil
		}

		if updated.Std != current.Std || updated.RollNumber != current.RollNumber {
			taken, err := tx.Students().ExistsByStdRoll(ctx, updated.Std, updated.RollNumber, id)
			if err != nil {
				return err
			}
			if taken {
				return ErrStudentExists
			}
		}
		return tx.Students().Update(ctx, &updated)
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return ErrStudentExists
		}
		return err
	}

	s.log.Info().Int("student_id", id).Msg("student updated")
	return nil
}

// AssignSubject enrolls a student in a subject. The student is checked first.
func (s *StudentService) AssignSubject(ctx context.Context, studentID, subjectID int) error {
	err := s.uow.Do(ctx, func(tx repository.Tx) error {
		if _, err := tx.Students().GetByID(ctx, studentID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrStudentNotFound
			}
			return err
		}
		if _, err := tx.Subjects().GetByID(ctx, subjectID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrSubjectNotFound
			}
			return err
		}

		assigned, err := tx.Enrollments().Exists(ctx, studentID, subjectID)
		if err != nil {
			return err
		}
		if assigned {
			return ErrAlreadyAssigned
		}
		return tx.Enrollments().Create(ctx, &model.Enrollment{StudentID: studentID, SubjectID: subjectID})
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return ErrAlreadyAssigned
		}
		return err
	}

	s.log.Info().Int("student_id", studentID).Int("subject_id", subjectID).Msg("subject assigned")
	return nil
}
