package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeSubjectName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"math", "Math"},
		{"MATH", "Math"},
		{"mATh", "Math"},
		{"  physics ", "Physics"},
		{"computer SCIENCE", "Computer science"},
		{"é", "É"},
		{"", ""},
		{"   ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeSubjectName(tt.in))
		})
	}
}

func TestStudentApply(t *testing.T) {
	base := Student{ID: 1, Name: "Asha", Std: 10, RollNumber: 5}

	t.Run("absent fields are untouched", func(t *testing.T) {
		s := base
		s.Apply(UpdateStudentRequest{})
		assert.Equal(t, base, s)
	})

	t.Run("present zero roll number is applied", func(t *testing.T) {
		s := base
		zero := 0
		s.Apply(UpdateStudentRequest{RollNumber: &zero})
		assert.Equal(t, 0, s.RollNumber)
		assert.Equal(t, 10, s.Std)
	})

	t.Run("all fields", func(t *testing.T) {
		s := base
		name, std, roll := "Ravi", 11, 7
		s.Apply(UpdateStudentRequest{Name: &name, Std: &std, RollNumber: &roll})
		assert.Equal(t, Student{ID: 1, Name: "Ravi", Std: 11, RollNumber: 7}, s)
	})
}

func TestUpdateStudentRequestPresence(t *testing.T) {
	var req UpdateStudentRequest
	require.NoError(t, json.Unmarshal([]byte(`{"std":0}`), &req))

	require.NotNil(t, req.Std)
	assert.Equal(t, 0, *req.Std)
	assert.Nil(t, req.Name)
	assert.Nil(t, req.RollNumber)
	assert.False(t, req.Empty())

	var empty UpdateStudentRequest
	require.NoError(t, json.Unmarshal([]byte(`{}`), &empty))
	assert.True(t, empty.Empty())
}

func TestStudentWithSubjectsJSON(t *testing.T) {
	v := StudentWithSubjects{
		Student:  Student{ID: 3, Name: "Asha", Std: 9, RollNumber: 2},
		Subjects: []Subject{},
	}
	b, err := json.Marshal(v)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":3,"name":"Asha","std":9,"roll_number":2,"subjects":[]}`, string(b))
}
