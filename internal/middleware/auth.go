// File: internal/middleware/auth.go
package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"profilehub_backend/internal/common"
	"profilehub_backend/internal/shared"
)

const (
	// AuthorizationHeader is the header name for authorization token
	AuthorizationHeader = "Authorization"
	// AuthorizationTypeBearer is the prefix for Bearer tokens
	AuthorizationTypeBearer = "Bearer"
	// PrincipalIDKey is the context key for the authenticated principal's provider id
	PrincipalIDKey = "principalID"
)

// AuthMiddleware creates a Gin middleware that verifies the bearer ID token
// against the identity provider and stores the principal id in the context.
func AuthMiddleware(identityService shared.IdentityService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(AuthorizationHeader)
		if authHeader == "" {
			logger.Debug("Authorization header missing")
			common.RespondWithError(c, common.ErrUnauthorized.WithMessage("Unauthorized user."))
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || !strings.EqualFold(parts[0], AuthorizationTypeBearer) {
			logger.Debug("Authorization header format invalid", zap.String("header", authHeader))
			common.RespondWithError(c, common.ErrUnauthorized.WithMessage("Authorization header format must be 'Bearer <token>'."))
			return
		}

		token, err := identityService.VerifyIDToken(c.Request.Context(), parts[1])
		if err != nil {
			logger.Warn("ID token verification failed", zap.Error(err))
			common.RespondWithError(c, common.ErrUnauthorized.WithMessage("Unauthorized user."))
			return
		}

		c.Set(PrincipalIDKey, token.UID)
		logger.Debug("Principal authenticated", zap.String("principalID", token.UID))
		c.Next()
	}
}

// GetPrincipalIDFromContext retrieves the principal id from the Gin context.
// Returns an empty string if the request was not authenticated.
func GetPrincipalIDFromContext(c *gin.Context) string {
	val, exists := c.Get(PrincipalIDKey)
	if !exists {
		return ""
	}
	id, ok := val.(string)
	if !ok {
		return ""
	}
	return id
}
