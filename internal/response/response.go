package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// MsgValidation is the detail sent with field-level validation errors.
const MsgValidation = "validation failed"

// Envelope is the JSON body of every API response: either data, or a
// human-readable detail with optional per-field validation messages.
type Envelope struct {
	Data   any               `json:"data,omitempty"`
	Detail string            `json:"detail,omitempty"`
	Fields map[string]string `json:"fields,omitempty"`
}

// Data sends {"data": data}.
func Data(c *gin.Context, statusCode int, data any) {
	c.JSON(statusCode, Envelope{Data: data})
}

// Detail sends {"detail": message}.
func Detail(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, Envelope{Detail: message})
}

// Created sends a 201 with the detail message and the new row's id under idKey,
// e.g. {"detail": "student has been added", "student_id": 7}.
func Created(c *gin.Context, message, idKey string, id int) {
	c.JSON(http.StatusCreated, gin.H{"detail": message, idKey: id})
}

// Fail sends an error detail. It is Detail under a name that reads well at
// call sites.
func Fail(c *gin.Context, statusCode int, message string) {
	Detail(c, statusCode, message)
}

// FailWithFields sends a validation failure with field-level details.
func FailWithFields(c *gin.Context, statusCode int, fields map[string]string) {
	c.JSON(statusCode, Envelope{Detail: MsgValidation, Fields: fields})
}

// AbortFail aborts the middleware chain and sends an error detail.
func AbortFail(c *gin.Context, statusCode int, message string) {
	c.AbortWithStatusJSON(statusCode, Envelope{Detail: message})
}
