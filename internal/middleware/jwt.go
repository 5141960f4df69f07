package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	appErrors "github.com/Varshith2802/ip-reputation-checker/pkg/errors"
	"github.com/Varshith2802/ip-reputation-checker/pkg/response"
)

// ContextUserKey is the gin context key storing the authenticated username.
const ContextUserKey = "currentUser"

// TokenValidator verifies a bearer token and returns its subject.
type TokenValidator interface {
	ValidateToken(token string) (string, error)
}

// JWT protects routes by requiring a valid bearer token.
func JWT(validator TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			unauthorized(c)
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			unauthorized(c)
			return
		}

		username, err := validator.ValidateToken(parts[1])
		if err != nil {
			unauthorized(c)
			return
		}

		c.Set(ContextUserKey, username)
		c.Next()
	}
}

// CurrentUser returns the authenticated username stored by JWT.
func CurrentUser(c *gin.Context) string {
	if v, exists := c.Get(ContextUserKey); exists {
		if username, ok := v.(string); ok {
			return username
		}
	}
	return ""
}

// unauthorized responds uniformly for every authentication failure so the
// boundary never reveals which check rejected the request.
func unauthorized(c *gin.Context) {
	c.Header("WWW-Authenticate", "Bearer")
	response.Error(c, appErrors.ErrUnauthorized)
	c.Abort()
}
