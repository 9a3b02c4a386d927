package errors

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Envelope statuses
const (
	StatusOK           = "ok"
	StatusError        = "error"
	StatusAccessDenied = "Access denied"
	StatusNotFound     = "Not Found"
	StatusInternal     = "Internal server error"
)

// Envelope is the uniform response body of every API route.
type Envelope struct {
	Message string `json:"message"`
	Status  string `json:"status"`
	Code    int    `json:"code"`
}

// InternalErrorBody is written by the terminal handler.
type InternalErrorBody struct {
	Error  string `json:"error"`
	Path   string `json:"path"`
	Status string `json:"status"`
	Code   int    `json:"code"`
}

// Respond writes an envelope with the given HTTP status. Extra fields are
// merged into the top level of the body.
func Respond(c *gin.Context, statusCode int, status, message string, extra gin.H) {
	if len(extra) == 0 {
		c.JSON(statusCode, Envelope{Message: message, Status: status, Code: statusCode})
		return
	}

	body := gin.H{
		"message": message,
		"status":  status,
		"code":    statusCode,
	}
	for k, v := range extra {
		if _, reserved := body[k]; reserved {
			continue
		}
		body[k] = v
	}
	c.JSON(statusCode, body)
}

// OK sends a 200 envelope
func OK(c *gin.Context, message string, extra gin.H) {
	Respond(c, http.StatusOK, StatusOK, message, extra)
}

// Unauthorized sends a 401 response
func Unauthorized(c *gin.Context, message string) {
	if message == "" {
		message = "Authentication required"
	}
	Respond(c, http.StatusUnauthorized, StatusAccessDenied, message, nil)
}

// Forbidden sends a 403 response
func Forbidden(c *gin.Context, message string) {
	if message == "" {
		message = "Access denied"
	}
	Respond(c, http.StatusForbidden, StatusAccessDenied, message, nil)
}

// NotFound sends a 404 response
func NotFound(c *gin.Context, message string) {
	if message == "" {
		message = "Resource not found"
	}
	Respond(c, http.StatusNotFound, StatusNotFound, message, nil)
}

// BadRequest sends a 400 response
func BadRequest(c *gin.Context, message string) {
	if message == "" {
		message = "Invalid request"
	}
	Respond(c, http.StatusBadRequest, StatusError, message, nil)
}

// Conflict sends a 409 response
func Conflict(c *gin.Context, message string) {
	if message == "" {
		message = "Resource conflict"
	}
	Respond(c, http.StatusConflict, StatusError, message, nil)
}

// InternalError sends a 500 response in the terminal handler's shape.
func InternalError(c *gin.Context) {
	c.JSON(http.StatusInternalServerError, InternalErrorBody{
		Error:  "Internal server error",
		Path:   c.Request.URL.Path,
		Status: StatusInternal,
		Code:   http.StatusInternalServerError,
	})
}
