package handler

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stemsi/academia-backend/internal/model"
	"github.com/stemsi/academia-backend/internal/response"
	"github.com/stemsi/academia-backend/internal/roster"
	"github.com/stemsi/academia-backend/internal/service"
	"github.com/stemsi/academia-backend/internal/validator"
)

// StudentHandler serves the /api/students routes.
type StudentHandler struct {
	studentService *service.StudentService
	log            zerolog.Logger
}

// NewStudentHandler creates a new StudentHandler.
func NewStudentHandler(studentService *service.StudentService, log zerolog.Logger) *StudentHandler {
	return &StudentHandler{
		studentService: studentService,
		log:            log.With().Str("component", "student_handler").Logger(),
	}
}

// ListStudents godoc
// GET /api/students/all/
// Lists every student with the subjects assigned to it.
func (h *StudentHandler) ListStudents(c *gin.Context) {
	students, err := h.studentService.ListAll(c.Request.Context())
	if err != nil {
		fail(c, h.log, err)
		return
	}
	response.Data(c, http.StatusOK, students)
}

// ListBySubject godoc
// GET /api/students/?subject_id=
// Returns the subject with every student taking it.
func (h *StudentHandler) ListBySubject(c *gin.Context) {
	var q model.SubjectQuery
	if fields := validator.BindQuery(c, &q); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, fields)
		return
	}

	subject, err := h.studentService.ListBySubject(c.Request.Context(), q.SubjectID)
	if err != nil {
		fail(c, h.log, err)
		return
	}
	response.Data(c, http.StatusOK, []*model.SubjectWithStudents{subject})
}

// AddStudent godoc
// POST /api/students/add/
func (h *StudentHandler) AddStudent(c *gin.Context) {
	var req model.CreateStudentRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, fields)
		return
	}

	student, err := h.studentService.Create(c.Request.Context(), req)
	if err != nil {
		fail(c, h.log, err)
		return
	}
	response.Created(c, "student has been added", "student_id", student.ID)
}

// DeleteStudent godoc
// DELETE /api/students/delete/?student_id=
// Deletes a student and its subject assignments.
func (h *StudentHandler) DeleteStudent(c *gin.Context) {
	var q model.StudentQuery
	if fields := validator.BindQuery(c, &q); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, fields)
		return
	}

	if err := h.studentService.Delete(c.Request.Context(), q.StudentID); err != nil {
		fail(c, h.log, err)
		return
	}
	response.Detail(c, http.StatusOK, "student has been deleted")
}

// UpdateStudent godoc
// PATCH /api/students/update/?student_id=
// Applies only the fields present in the body.
func (h *StudentHandler) UpdateStudent(c *gin.Context) {
	var q model.StudentQuery
	if fields := validator.BindQuery(c, &q); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, fields)
		return
	}

	var req model.UpdateStudentRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, fields)
		return
	}

	if err := h.studentService.Update(c.Request.Context(), q.StudentID, req); err != nil {
		fail(c, h.log, err)
		return
	}
	response.Detail(c, http.StatusOK, "student has been updated")
}

// AssignSubject godoc
// POST /api/students/subject/add/?student_id=&subject_id=
func (h *StudentHandler) AssignSubject(c *gin.Context) {
	var q model.AssignSubjectQuery
	if fields := validator.BindQuery(c, &q); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, fields)
		return
	}

	if err := h.studentService.AssignSubject(c.Request.Context(), q.StudentID, q.SubjectID); err != nil {
		fail(c, h.log, err)
		return
	}
	response.Detail(c, http.StatusCreated, "subject has been assigned")
}

// ExportStudents godoc
// GET /api/students/export/
// Downloads the roster as an xlsx workbook.
func (h *StudentHandler) ExportStudents(c *gin.Context) {
	students, err := h.studentService.ListAll(c.Request.Context())
	if err != nil {
		fail(c, h.log, err)
		return
	}

	var buf bytes.Buffer
	if err := roster.Export(&buf, students); err != nil {
		fail(c, h.log, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="students.xlsx"`)
	c.Data(http.StatusOK, roster.ContentType, buf.Bytes())
}
