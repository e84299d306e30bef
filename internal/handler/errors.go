package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stemsi/academia-backend/internal/response"
	"github.com/stemsi/academia-backend/internal/service"
)

// statusFor maps service errors onto HTTP status codes. Anything unknown is
// an unexpected failure and is reported as 400 with its message.
func statusFor(err error) (int, bool) {
	switch {
	case errors.Is(err, service.ErrNoStudents),
		errors.Is(err, service.ErrNoSubjects),
		errors.Is(err, service.ErrStudentNotFound),
		errors.Is(err, service.ErrSubjectNotFound):
		return http.StatusNotFound, true
	case errors.Is(err, service.ErrStudentExists),
		errors.Is(err, service.ErrSubjectExists),
		errors.Is(err, service.ErrAlreadyAssigned),
		errors.Is(err, service.ErrInvalidSubjectName):
		return http.StatusBadRequest, true
	default:
		return http.StatusBadRequest, false
	}
}

// fail renders err as {"detail": ...}. Unexpected errors are logged.
func fail(c *gin.Context, log zerolog.Logger, err error) {
	status, known := statusFor(err)
	if !known {
		log.Error().Err(err).
			Str("request_id", response.RequestID(c)).
			Str("path", c.Request.URL.Path).
			Msg("request failed")
		_ = c.Error(err)
	}
	response.Fail(c, status, err.Error())
}
