package model

// Enrollment links one student to one subject.
type Enrollment struct {
	ID        int `json:"id"`
	StudentID int `json:"students_id"`
	SubjectID int `json:"subject_id"`
}
