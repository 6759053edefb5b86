package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mpalashb/secureprime-digital-agency/internal/delivery/http/response"
	"github.com/mpalashb/secureprime-digital-agency/pkg/apperror"
	"github.com/mpalashb/secureprime-digital-agency/pkg/logger"
)

// ErrorHandler renders the last error pushed with c.Error.
// Causes of 5xx responses are logged and never sent to the client.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		requestID := c.GetString("RequestID")

		var appErr *apperror.AppError
		if !errors.As(err, &appErr) {
			appErr = apperror.Unexpected(err)
		}

		if appErr.Code >= http.StatusInternalServerError {
			logger.Log.Error("Request failed",
				"request_id", requestID,
				"path", c.FullPath(),
				"message", appErr.Message,
				"error", appErr.Err,
			)
		} else {
			logger.Log.Debug("Request rejected",
				"request_id", requestID,
				"status", appErr.Code,
				"message", appErr.Message,
			)
		}

		var detail interface{}
		if len(appErr.Fields) > 0 {
			detail = response.ErrorDetail{Fields: appErr.Fields}
		}
		response.Error(c, appErr.Code, appErr.Message, detail)
	}
}

// Recovery turns a panic into the generic 500 envelope
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.Log.Error("Panic recovered",
			"request_id", c.GetString("RequestID"),
			"path", c.Request.URL.Path,
			"panic", recovered,
		)
		response.Error(c, http.StatusInternalServerError, "An unexpected error occurred", nil)
		c.Abort()
	})
}
