package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/mpalashb/secureprime-digital-agency/internal/domain"
	"github.com/mpalashb/secureprime-digital-agency/pkg/apperror"
)

const (
	idempotencyHeader    = "Idempotency-Key"
	maxIdempotencyKeyLen = 255
)

// IdempotencyKey moves the Idempotency-Key header into the request context.
// Requests without the header pass through untouched.
func IdempotencyKey() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := strings.TrimSpace(c.GetHeader(idempotencyHeader))
		if key == "" {
			c.Next()
			return
		}
		if len(key) > maxIdempotencyKeyLen {
			c.Error(apperror.New(http.StatusBadRequest, "Idempotency-Key must be at most 255 characters", nil))
			c.Abort()
			return
		}

		c.Request = c.Request.WithContext(context.WithValue(c.Request.Context(), domain.KeyIdempotencyKey, key))
		c.Next()
	}
}
