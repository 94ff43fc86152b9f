package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	appErr "github.com/allinone/manager/internal/pkg/errors"
	"github.com/allinone/manager/internal/pkg/jwt"
	"github.com/allinone/manager/internal/pkg/response"
)

const ContextClaimsKey = "auth_claims"

func JWTAuth(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			response.Error(c, http.StatusUnauthorized, "missing authorization")
			c.Abort()
			return
		}
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			response.Error(c, http.StatusUnauthorized, "invalid authorization")
			c.Abort()
			return
		}
		claims, err := jwt.ParseToken(parts[1], secret)
		if err != nil {
			msg := "invalid token"
			if errors.Is(err, appErr.ErrTokenExpired) {
				msg = "token expired"
			}
			response.Error(c, http.StatusUnauthorized, msg)
			c.Abort()
			return
		}
		c.Set(ContextClaimsKey, claims)
		c.Next()
	}
}

// GetClaims returns the claims attached by JWTAuth, or nil when the request
// was not authenticated.
func GetClaims(c *gin.Context) *jwt.Claims {
	value, ok := c.Get(ContextClaimsKey)
	if !ok {
		return nil
	}
	claims, _ := value.(*jwt.Claims)
	return claims
}
