package middleware

import (
	"io"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	apierrors "github.com/yukikurage/project-tracker-api/internal/errors"
)

// Recovery answers panics with the generic 500 body
func Recovery(log logrus.FieldLogger) gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(io.Discard, func(c *gin.Context, recovered any) {
		RequestLog(c, log).WithFields(logrus.Fields{
			"panic": recovered,
			"stack": string(debug.Stack()),
		}).Error("Recovered from panic")

		apierrors.InternalError(c)
		c.Abort()
	})
}

// HandleErrors answers requests that recorded an error with c.Error but wrote
// no response. The error text is logged and never sent to the client.
func HandleErrors(log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		RequestLog(c, log).WithError(c.Errors.Last().Err).Error("Unhandled request error")
		if !c.Writer.Written() {
			apierrors.InternalError(c)
		}
	}
}
