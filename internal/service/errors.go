package service

import "errors"

// Errors returned by the student and subject services. Their messages are
// sent to clients as-is.
var (
	ErrNoStudents         = errors.New("no students found")
	ErrNoSubjects         = errors.New("no subjects found")
	ErrStudentNotFound    = errors.New("invalid student_id")
	ErrSubjectNotFound    = errors.New("invalid subject_id")
	ErrStudentExists      = errors.New("student already exists")
	ErrSubjectExists      = errors.New("subject already exists")
	ErrAlreadyAssigned    = errors.New("subject already assigned")
	ErrInvalidSubjectName = errors.New("subject name must not be blank")
)
