package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const allowedHeaders = "authorization, x-client-info, apikey, content-type, idempotency-key"

// CORSMiddleware allows the marketing site to post forms from any origin.
// Preflight requests end here with an empty 200.
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Headers", allowedHeaders)
		c.Header("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		c.Header("Access-Control-Max-Age", "86400") // 24 hours

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusOK)
			return
		}

		c.Next()
	}
}
