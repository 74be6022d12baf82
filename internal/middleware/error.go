// File: internal/middleware/error.go
package middleware

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"profilehub_backend/internal/common"
)

// ErrorHandler creates a Gin middleware for centralized error handling.
// Handlers respond directly in most cases; this is the backstop for errors
// attached to the context and for bare 404/405 statuses.
func ErrorHandler(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 {
			for _, ginErr := range c.Errors {
				if apiErr, ok := common.IsAPIError(ginErr.Err); ok {
					c.AbortWithStatusJSON(apiErr.StatusCode, common.ErrorResponse{
						Success: false,
						Message: apiErr.Message,
						Action:  apiErr.Action,
						URL:     apiErr.URL,
					})
				} else {
					logger.Error("Unhandled application error",
						zap.Error(ginErr.Err),
						zap.String("path", c.Request.URL.Path),
						zap.String("request_id", c.GetString(RequestIDContextKey)),
					)
					c.AbortWithStatusJSON(common.ErrInternalServer.StatusCode, common.ErrorResponse{
						Success: false,
						Message: common.ErrInternalServer.Message,
					})
				}
				return
			}
		}

		if c.Writer.Status() == 404 && len(c.Errors) == 0 {
			c.AbortWithStatusJSON(404, common.ErrorResponse{
				Success: false,
				Message: "The requested endpoint does not exist.",
			})
			return
		}
		if c.Writer.Status() == 405 && len(c.Errors) == 0 {
			c.AbortWithStatusJSON(405, common.ErrorResponse{
				Success: false,
				Message: "The method is not allowed for the requested URL.",
			})
			return
		}
	}
}
