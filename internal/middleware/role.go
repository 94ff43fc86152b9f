package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allinone/manager/internal/pkg/response"
)

// RequireRole gates a route to the given roles. It must run after JWTAuth;
// a request without attached claims means the route was wired without
// authentication and is rejected outright.
func RequireRole(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(roles))
	for _, role := range roles {
		allowed[role] = struct{}{}
	}
	return func(c *gin.Context) {
		claims := GetClaims(c)
		if claims == nil {
			response.Error(c, http.StatusUnauthorized, "missing authorization")
			c.Abort()
			return
		}
		if _, ok := allowed[claims.Role]; !ok {
			response.Error(c, http.StatusForbidden, "forbidden")
			c.Abort()
			return
		}
		c.Next()
	}
}
