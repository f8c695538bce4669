package middleware

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"fundraise-platform/internal/session"
)

// SessionCookie is the cookie carrying the session token for browser clients.
// API clients may send the same token as a Bearer Authorization header.
const SessionCookie = "session_token"

// Context keys set for downstream handlers.
const (
	ContextUserID       = "userID"
	ContextSessionToken = "sessionToken"
)

// AuthMiddleware resolves the request's session token to a user id, or aborts
// with 401. The token itself is opaque; only the session store can map it to
// a principal.
func AuthMiddleware(sessions *session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Authentication required"})
			return
		}

		userID, ok := sessions.Get(token)
		if !ok {
			log.Println("Unknown or expired session token")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid or expired session"})
			return
		}

		c.Set(ContextUserID, userID)
		c.Set(ContextSessionToken, token)
		c.Next()
	}
}

func extractToken(c *gin.Context) string {
	// Bearer header first
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && parts[0] == "Bearer" {
			return parts[1]
		}
		log.Println("Auth header format is not Bearer")
		return ""
	}

	// fall back to the session cookie
	if cookie, err := c.Cookie(SessionCookie); err == nil {
		return cookie
	}
	return ""
}
