package middleware

import (
	"net/http"
	"strings"

	"ebuy-be/internal/user"
	"ebuy-be/internal/utils"

	"github.com/gin-gonic/gin"
)

func extractAccessToken(r *http.Request) string {
	if cookie, err := r.Cookie("access_token"); err == nil {
		if cookie.Value != "" {
			return cookie.Value
		}
	}

	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}

	return ""
}

// Auth resolves the access token into user context when present. It
// never rejects on its own so public routes can see who is asking.
func Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := extractAccessToken(c.Request)
		if tokenStr == "" {
			c.Next()
			return
		}

		claims, err := user.ParseJWT(tokenStr)
		if err != nil {
			c.Next()
			return
		}

		ctx := utils.SetUserContext(
			c.Request.Context(),
			claims.UserID, claims.Email, claims.Username,
		)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// RequireAuth guards protected routes. It expects Auth to have run
// earlier in the chain.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := utils.GetUserIDFromContext(c.Request.Context()); !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"message": "authentication required",
			})
			return
		}
		c.Next()
	}
}
