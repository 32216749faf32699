package middlewares

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"ponto.app/ponto/security"
	"ponto.app/ponto/web/common"
)

const (
	SessionCookie = "ponto.session"
	ClaimsKey     = "claims"
)

// Authentication checks for a valid Bearer token or session cookie. A nil
// secret disables the check.
func Authentication(jwtSecret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		if len(jwtSecret) == 0 {
			c.Next()
			return
		}

		tokenStr := ""

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			// Try to get from cookie
			cookie, err := c.Cookie(SessionCookie)
			if err != nil {
				c.AbortWithStatusJSON(http.StatusUnauthorized, common.NewErrorResponse("missing token"))
				return
			}

			tokenStr = cookie
		} else {
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				c.AbortWithStatusJSON(http.StatusUnauthorized, common.NewErrorResponse("malformed authorization header"))
				return
			}

			tokenStr = parts[1]
		}

		claims, err := security.ParseToken(tokenStr, jwtSecret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, common.NewErrorResponse("invalid or expired token"))
			return
		}

		c.Set(ClaimsKey, claims)
		c.Next()
	}
}
