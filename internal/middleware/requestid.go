package middleware

import (
	"github.com/gin-gonic/gin" // Gin web framework
	"github.com/google/uuid"   // Request ID generation
)

// RequestIDHeader carries the request ID in both directions
const RequestIDHeader = "X-Request-ID"

// RequestIDKey is the gin context key holding the request ID
const RequestIDKey = "request_id"

// RequestID echoes the caller's X-Request-ID or generates a new one
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader) // Caller supplied ID
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(RequestIDKey, id)                    // Store for handlers and logging
		c.Writer.Header().Set(RequestIDHeader, id) // Return it to the caller
		c.Next()
	}
}
