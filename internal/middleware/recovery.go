package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// Recovery converts panics into 500 responses instead of dropped connections.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				handlePanic(c, r)
			}
		}()
		c.Next()
	}
}

func handlePanic(c *gin.Context, r any) {
	rid := c.GetString(ContextRequestID)

	log.Error().
		Interface("panic", r).
		Bytes("stack", debug.Stack()).
		Str("method", c.Request.Method).
		Str("path", c.Request.URL.Path).
		Str("request_id", rid).
		Msg("Request panic recovered")

	c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{
		Code:    http.StatusInternalServerError,
		Message: "internal server error",
		TraceID: rid,
	})
}
