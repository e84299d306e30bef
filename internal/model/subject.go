package model

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Subject represents an academic course or subject.
type Subject struct {
	ID   int    `json:"id"`
	Name string `json:"subject"`
}

// SubjectWithStudents is a subject together with every student taking it.
type SubjectWithStudents struct {
	Subject
	Students []Student `json:"students"`
}

// CreateSubjectRequest is the payload for creating a subject.
type CreateSubjectRequest struct {
	Subject string `json:"subject" binding:"required,max=45"`
}

// SubjectQuery binds ?subject_id=.
type SubjectQuery struct {
	SubjectID int `form:"subject_id" binding:"required,min=1"`
}

// NormalizeSubjectName capitalizes a subject name: first letter upper case,
// the remainder lower case. "mATH" and "math" both become "Math".
func NormalizeSubjectName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	first, size := utf8.DecodeRuneInString(name)
	return string(unicode.ToUpper(first)) + strings.ToLower(name[size:])
}
