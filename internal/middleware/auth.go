package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"cloudstore/internal/domain"
	jwtsvc "cloudstore/internal/pkg/jwt"
	"cloudstore/internal/pkg/response"
)

// Auth validates the Bearer token and stores the resolved actor in the
// gin context for handlers to pick up with ActorFrom.
func Auth(jwt *jwtsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if !strings.HasPrefix(h, "Bearer ") {
			response.Fail(c, http.StatusUnauthorized, gin.H{"message": "Missing or invalid Authorization header"})
			c.Abort()
			return
		}

		tokenStr := strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
		if tokenStr == "" {
			response.Fail(c, http.StatusUnauthorized, gin.H{"message": "Empty token"})
			c.Abort()
			return
		}

		claims, err := jwt.ValidateToken(tokenStr)
		if err != nil {
			response.Fail(c, http.StatusUnauthorized, gin.H{"message": "Invalid token"})
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("root_folder_id", claims.RootFolderID)

		c.Next()
	}
}

// ActorFrom rebuilds the actor stored by Auth. The boolean is false on
// routes that were not behind the middleware.
func ActorFrom(c *gin.Context) (domain.Actor, bool) {
	userID := c.GetInt64("user_id")
	rootID := c.GetInt64("root_folder_id")
	if userID == 0 || rootID == 0 {
		return domain.Actor{}, false
	}
	return domain.Actor{UserID: userID, RootFolderID: rootID}, true
}
