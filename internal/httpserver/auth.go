package httpserver

import (
	"net/http"
	"strings"

	"gamestore-api/internal/domain"
	"github.com/gin-gonic/gin"
)

const userCtxKey = "authUser"

// authMiddleware validates the bearer token and loads the full user onto
// the gin context, so handlers see current role and profile data.
func authMiddleware(svc authService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token := strings.TrimPrefix(header, "Bearer ")
		if token == "" || token == header {
			fail(c, http.StatusUnauthorized, "access denied: no token")
			c.Abort()
			return
		}

		user, err := svc.LookupByToken(c.Request.Context(), token)
		if err != nil {
			fail(c, http.StatusUnauthorized, "invalid or expired token")
			c.Abort()
			return
		}

		c.Set(userCtxKey, *user)
		c.Next()
	}
}

// currentUser returns the authenticated user placed by authMiddleware.
func currentUser(c *gin.Context) domain.User {
	u, _ := c.Get(userCtxKey)
	user, _ := u.(domain.User)
	return user
}
