package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestRequestTimeout(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var deadline time.Time
	var hasDeadline bool
	r := gin.New()
	r.Use(RequestTimeout(30 * time.Second))
	r.POST("/submit", func(c *gin.Context) {
		deadline, hasDeadline = c.Request.Context().Deadline()
		c.Status(http.StatusOK)
	})

	start := time.Now()
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/submit", nil))

	assert.True(t, hasDeadline)
	assert.WithinDuration(t, start.Add(30*time.Second), deadline, time.Second)
}

func TestRequestTimeoutDisabled(t *testing.T) {
	gin.SetMode(gin.TestMode)

	hasDeadline := true
	r := gin.New()
	r.Use(RequestTimeout(0))
	r.POST("/submit", func(c *gin.Context) {
		_, hasDeadline = c.Request.Context().Deadline()
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/submit", nil))
	assert.False(t, hasDeadline)
}
