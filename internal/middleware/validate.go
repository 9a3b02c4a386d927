package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	apierrors "github.com/yukikurage/project-tracker-api/internal/errors"
)

// maxBodyBytes caps the request body read by RequireBody.
const maxBodyBytes = 1 << 20

// RequireBody rejects body-carrying requests whose body is missing, empty or
// an object without keys. The body is restored for downstream handlers.
func RequireBody() gin.HandlerFunc {
	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodPost, http.MethodPut, http.MethodPatch:
		default:
			c.Next()
			return
		}

		var body []byte
		if c.Request.Body != nil {
			var err error
			body, err = io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes))
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				apierrors.Respond(c, http.StatusRequestEntityTooLarge, apierrors.StatusError, "Request body too large", nil)
				c.Abort()
				return
			}
			if err != nil {
				apierrors.BadRequest(c, "Invalid request body")
				c.Abort()
				return
			}
		}
		c.Request.Body = io.NopCloser(bytes.NewReader(body))

		body = bytes.TrimSpace(body)
		if len(body) == 0 {
			apierrors.BadRequest(c, "Request body is required")
			c.Abort()
			return
		}

		var fields map[string]json.RawMessage
		if err := json.Unmarshal(body, &fields); err != nil {
			apierrors.BadRequest(c, "Invalid request body")
			c.Abort()
			return
		}
		if len(fields) == 0 {
			apierrors.BadRequest(c, "Request body is required")
			c.Abort()
			return
		}

		c.Next()
	}
}
