package model

// Student represents an enrolled pupil.
type Student struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	Std        int    `json:"std"`
	RollNumber int    `json:"roll_number"`
}

// StudentWithSubjects is a student together with every subject assigned to it.
type StudentWithSubjects struct {
	Student
	Subjects []Subject `json:"subjects"`
}

// CreateStudentRequest is the payload for adding a student.
type CreateStudentRequest struct {
	Name       string `json:"name" binding:"required,max=45"`
	Std        int    `json:"std" binding:"required,min=1,max=12"`
	RollNumber *int   `json:"roll_number" binding:"required"`
}

// UpdateStudentRequest is the payload for a partial student update.
// A nil field was absent from the payload and is left untouched.
type UpdateStudentRequest struct {
	Name       *string `json:"name" binding:"omitempty,min=1,max=45"`
	Std        *int    `json:"std" binding:"omitempty,min=1,max=12"`
	RollNumber *int    `json:"roll_number"`
}

// Empty reports whether the payload carries no field at all.
func (r UpdateStudentRequest) Empty() bool {
	return r.Name == nil && r.Std == nil && r.RollNumber == nil
}

// Apply merges the fields present in req into s.
func (s *Student) Apply(req UpdateStudentRequest) {
	if req.Name != nil {
		s.Name = *req.Name
	}
	if req.Std != nil {
		s.Std = *req.Std
	}
	if req.RollNumber != nil {
		s.RollNumber = *req.RollNumber
	}
}

// StudentQuery binds ?student_id=.
type StudentQuery struct {
	StudentID int `form:"student_id" binding:"required,min=1"`
}

// AssignSubjectQuery binds ?student_id=&subject_id=.
type AssignSubjectQuery struct {
	StudentID int `form:"student_id" binding:"required,min=1"`
	SubjectID int `form:"subject_id" binding:"required,min=1"`
}
