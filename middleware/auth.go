package middleware

import (
	"strings"

	"blogapi/auth"

	"github.com/gin-gonic/gin"
)

// Auth inspects the Authorization header and annotates the request context
// with the caller's user id when the bearer token verifies. It never aborts:
// authorization decisions belong to the resolvers, this layer only marks the
// request authenticated or not.
func Auth(tokens *auth.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.Next()
			return
		}

		claims, err := tokens.Verify(parts[1])
		if err != nil {
			c.Next()
			return
		}

		c.Set("userId", claims.UserID)
		c.Request = c.Request.WithContext(auth.WithUser(c.Request.Context(), claims.UserID))
		c.Next()
	}
}
