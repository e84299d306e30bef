package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stemsi/academia-backend/internal/config"
	"github.com/stemsi/academia-backend/internal/handler"
	"github.com/stemsi/academia-backend/internal/model"
	"github.com/stemsi/academia-backend/internal/repository"
	"github.com/stemsi/academia-backend/internal/repository/memory"
	"github.com/stemsi/academia-backend/internal/roster"
	"github.com/stemsi/academia-backend/internal/router"
	"github.com/stemsi/academia-backend/internal/service"
	"github.com/stemsi/academia-backend/internal/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
	validator.Setup()
}

func newRouter(store repository.UnitOfWork) *gin.Engine {
	log := zerolog.Nop()
	handlers := &router.Handlers{
		Student: handler.NewStudentHandler(service.NewStudentService(store, log), log),
		Subject: handler.NewSubjectHandler(service.NewSubjectService(store, log), log),
		Health:  handler.NewHealthHandler(store, log),
	}
	cfg := &config.Config{GinMode: gin.TestMode, BrotliMinLength: 1024}
	return router.SetupRouter(handlers, cfg, log)
}

func do(r http.Handler, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

type detailBody struct {
	Detail    string            `json:"detail"`
	Fields    map[string]string `json:"fields"`
	StudentID int               `json:"student_id"`
	SubjectID int               `json:"subject_id"`
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func listStudents(t *testing.T, r http.Handler) []model.StudentWithSubjects {
	t.Helper()
	w := do(r, http.MethodGet, "/api/students/all/", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	return decode[struct {
		Data []model.StudentWithSubjects `json:"data"`
	}](t, w).Data
}

func TestStudentLifecycle(t *testing.T) {
	r := newRouter(memory.NewStore())

	w := do(r, http.MethodGet, "/api/students/all/", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"detail":"no students found"}`, w.Body.String())

	w = do(r, http.MethodPost, "/api/students/add/", `{"name":"Asha","std":10,"roll_number":5}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[detailBody](t, w)
	assert.Equal(t, 1, created.StudentID)
	assert.Equal(t, "student has been added", created.Detail)

	w = do(r, http.MethodPost, "/api/students/add/", `{"name":"Ravi","std":10,"roll_number":5}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"detail":"student already exists"}`, w.Body.String())

	all := listStudents(t, r)
	require.Len(t, all, 1)
	assert.Equal(t, model.Student{ID: 1, Name: "Asha", Std: 10, RollNumber: 5}, all[0].Student)
	assert.Empty(t, all[0].Subjects)
	assert.Contains(t, w.Header().Get("Cache-Control"), "no-store")

	w = do(r, http.MethodPost, "/api/subjects/add/", `{"subject":"math"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	subjectID := decode[detailBody](t, w).SubjectID

	w = do(r, http.MethodPost, "/api/students/subject/add/?student_id=1&subject_id=1", "")
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	w = do(r, http.MethodPost, "/api/students/subject/add/?student_id=1&subject_id=1", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"detail":"subject already assigned"}`, w.Body.String())

	all = listStudents(t, r)
	assert.Equal(t, []model.Subject{{ID: subjectID, Name: "Math"}}, all[0].Subjects)

	w = do(r, http.MethodGet, "/api/students/?subject_id=1", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	bySubject := decode[struct {
		Data []model.SubjectWithStudents `json:"data"`
	}](t, w).Data
	require.Len(t, bySubject, 1)
	assert.Equal(t, "Math", bySubject[0].Name)
	assert.Equal(t, []model.Student{all[0].Student}, bySubject[0].Students)

	w = do(r, http.MethodDelete, "/api/students/delete/?student_id=1", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"detail":"student has been deleted"}`, w.Body.String())

	w = do(r, http.MethodDelete, "/api/students/delete/?student_id=1", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"detail":"invalid student_id"}`, w.Body.String())
}

func TestAddStudentValidation(t *testing.T) {
	r := newRouter(memory.NewStore())

	tests := []struct {
		name  string
		body  string
		field string
	}{
		{"missing name", `{"std":3,"roll_number":1}`, "name"},
		{"name too long", `{"name":"` + strings.Repeat("a", 46) + `","std":3,"roll_number":1}`, "name"},
		{"std zero", `{"name":"A","std":0,"roll_number":1}`, "std"},
		{"std above range", `{"name":"A","std":13,"roll_number":1}`, "std"},
		{"missing roll number", `{"name":"A","std":3}`, "roll_number"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(r, http.MethodPost, "/api/students/add/", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			body := decode[detailBody](t, w)
			assert.Equal(t, "validation failed", body.Detail)
			assert.Contains(t, body.Fields, tt.field)
		})
	}

	// Roll number zero is a value, not an absence.
	w := do(r, http.MethodPost, "/api/students/add/", `{"name":"A","std":3,"roll_number":0}`)
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = do(r, http.MethodPost, "/api/students/add/", `{"name":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateStudent(t *testing.T) {
	r := newRouter(memory.NewStore())
	require.Equal(t, http.StatusCreated, do(r, http.MethodPost, "/api/students/add/", `{"name":"Asha","std":10,"roll_number":5}`).Code)
	require.Equal(t, http.StatusCreated, do(r, http.MethodPost, "/api/students/add/", `{"name":"Ravi","std":10,"roll_number":6}`).Code)

	w := do(r, http.MethodPatch, "/api/students/update/?student_id=1", `{"std":0}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 10, listStudents(t, r)[0].Std)

	w = do(r, http.MethodPatch, "/api/students/update/?student_id=2", `{"roll_number":5}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"detail":"student already exists"}`, w.Body.String())

	w = do(r, http.MethodPatch, "/api/students/update/?student_id=1", `{"name":"Asha K","roll_number":0}`)
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.JSONEq(t, `{"detail":"student has been updated"}`, w.Body.String())
	assert.Equal(t, model.Student{ID: 1, Name: "Asha K", Std: 10, RollNumber: 0}, listStudents(t, r)[0].Student)

	w = do(r, http.MethodPatch, "/api/students/update/?student_id=9", `{"name":"X"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(r, http.MethodPatch, "/api/students/update/", `{"name":"X"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decode[detailBody](t, w).Fields, "student_id")
}

func TestAssignSubjectChecksStudentFirst(t *testing.T) {
	r := newRouter(memory.NewStore())

	w := do(r, http.MethodPost, "/api/students/subject/add/?student_id=4&subject_id=4", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"detail":"invalid student_id"}`, w.Body.String())

	require.Equal(t, http.StatusCreated, do(r, http.MethodPost, "/api/students/add/", `{"name":"Asha","std":10,"roll_number":5}`).Code)
	w = do(r, http.MethodPost, "/api/students/subject/add/?student_id=1&subject_id=4", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"detail":"invalid subject_id"}`, w.Body.String())

	w = do(r, http.MethodGet, "/api/students/?subject_id=4", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSubjects(t *testing.T) {
	r := newRouter(memory.NewStore())

	w := do(r, http.MethodGet, "/api/subjects/all/", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"detail":"no subjects found"}`, w.Body.String())

	w = do(r, http.MethodPost, "/api/subjects/add/", `{"subject":"math"}`)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"detail":"subject has been added","subject_id":1}`, w.Body.String())

	w = do(r, http.MethodPost, "/api/subjects/add/", `{"subject":"MATH"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"detail":"subject already exists"}`, w.Body.String())

	w = do(r, http.MethodPost, "/api/subjects/add/", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(r, http.MethodGet, "/api/subjects/all/", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"data":[{"id":1,"subject":"Math"}]}`, w.Body.String())
}

func TestExportStudents(t *testing.T) {
	r := newRouter(memory.NewStore())

	w := do(r, http.MethodGet, "/api/students/export/", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	require.Equal(t, http.StatusCreated, do(r, http.MethodPost, "/api/students/add/", `{"name":"Asha","std":10,"roll_number":5}`).Code)

	req := httptest.NewRequest(http.MethodGet, "/api/students/export/", nil)
	req.Header.Set("Accept-Encoding", "br")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, roster.ContentType, w.Header().Get("Content-Type"))
	assert.Empty(t, w.Header().Get("Content-Encoding"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "students.xlsx")

	entries, err := roster.Import(bytes.NewReader(w.Body.Bytes()))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Asha", entries[0].Student.Name)
}

type pingStore struct {
	repository.UnitOfWork
	err error
}

func (p pingStore) Ping(context.Context) error { return p.err }

func TestHealth(t *testing.T) {
	w := do(newRouter(memory.NewStore()), http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"data":{"status":"ok"}}`, w.Body.String())
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	down := pingStore{UnitOfWork: memory.NewStore(), err: errors.New("dial tcp: refused")}
	w = do(newRouter(down), http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.JSONEq(t, `{"detail":"database unavailable"}`, w.Body.String())
}

func TestUnknownRoute(t *testing.T) {
	w := do(newRouter(memory.NewStore()), http.MethodGet, "/api/nope/", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"detail":"not found"}`, w.Body.String())
}

// failingStore loses its connection on every unit of work.
type failingStore struct{ pingStore }

func (failingStore) Do(context.Context, func(repository.Tx) error) error {
	return errors.New("connection reset by peer")
}

func TestUnexpectedFailureForwardsMessage(t *testing.T) {
	r := newRouter(failingStore{})

	w := do(r, http.MethodGet, "/api/students/all/", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"detail":"connection reset by peer"}`, w.Body.String())
}
