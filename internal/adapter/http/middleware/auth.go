package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"taskboard/internal/core/ports"
	"taskboard/pkg/apierrors"
)

const userIDKey = "user_id"

// AuthMiddleware resolves the caller through the identity provider and
// rejects the request with 401 when the bearer token does not verify.
func AuthMiddleware(provider ports.IdentityProvider) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := provider.UserIDFromAuthHeader(c.GetHeader("Authorization"))
		if err != nil {
			zap.L().Debug("rejected request", zap.String("path", c.Request.URL.Path), zap.Error(err))
			c.AbortWithStatusJSON(
				http.StatusUnauthorized,
				apierrors.CreateError(http.StatusUnauthorized, apierrors.MsgUnauthorized, GetLang(c)),
			)
			return
		}
		c.Set(userIDKey, userID)
		c.Next()
	}
}

// GetUserID returns the authenticated caller, or "" outside AuthMiddleware.
func GetUserID(c *gin.Context) string {
	return c.GetString(userIDKey)
}

// SetUserID lets tests and trusted internal routes inject a caller.
func SetUserID(userID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(userIDKey, userID)
		c.Next()
	}
}
