package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/docspot/docspot-api/internal/utils"
)

// SessionCookie is the name of the HTTP-only cookie carrying the JWT.
const SessionCookie = "token"

// Denylist is the optional logout-revocation check. A nil Denylist means
// tokens are only checked for signature and expiry.
type Denylist interface {
	IsRevoked(ctx context.Context, token string) bool
}

// RequireRole gates a route behind the session cookie. An empty role accepts
// any valid session; otherwise the decoded role must match exactly.
func RequireRole(role string, denylist Denylist) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(SessionCookie)
		if err != nil || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Access Denied"})
			return
		}

		claims, err := utils.ValidateJWT(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "Invalid Token"})
			return
		}

		if denylist != nil && denylist.IsRevoked(c.Request.Context(), token) {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "Invalid Token"})
			return
		}

		if role != "" && claims.Role != "" && claims.Role != role {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Forbidden"})
			return
		}

		c.Set("userID", claims.UserID)
		c.Set("userRole", claims.Role)

		c.Next()
	}
}
