package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const CtxUserIDKey = "user_id"
const CtxUsernameKey = "username"

// RequireAuth rejects requests without a valid bearer token.
func RequireAuth(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if h == "" || !strings.HasPrefix(h, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}
		claims, err := ParseJWT(secret, strings.TrimPrefix(h, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		c.Set(CtxUserIDKey, claims.UserID)
		c.Set(CtxUsernameKey, claims.Username)
		c.Next()
	}
}

// OptionalAuth attaches the caller's identity when a valid token is present
// but never rejects. Routes whose answer depends on the viewer (monster
// detail, print view, PDF download) use this so anonymous requests still
// reach the public-or-owner check.
func OptionalAuth(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if strings.HasPrefix(h, "Bearer ") {
			if claims, err := ParseJWT(secret, strings.TrimPrefix(h, "Bearer ")); err == nil {
				c.Set(CtxUserIDKey, claims.UserID)
				c.Set(CtxUsernameKey, claims.Username)
			}
		}
		c.Next()
	}
}

// ViewerID returns the authenticated user id, or "" for anonymous callers.
func ViewerID(c *gin.Context) string {
	return c.GetString(CtxUserIDKey)
}
