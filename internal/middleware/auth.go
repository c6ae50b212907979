package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/priority-focus-api/internal/auth"
	"github.com/yukikurage/priority-focus-api/internal/constants"
	apierrors "github.com/yukikurage/priority-focus-api/internal/errors"
)

// RequireAuth checks the bearer token and stores the manager ID in the context
func RequireAuth(tokens *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := auth.ExtractTokenFromHeader(c.GetHeader("Authorization"))
		if err != nil {
			apierrors.Unauthorized(c, "")
			return
		}

		claims, err := tokens.ValidateToken(tokenString)
		if err != nil {
			if errors.Is(err, auth.ErrExpiredToken) {
				apierrors.Unauthorized(c, "Token expired")
				return
			}
			apierrors.Unauthorized(c, "Invalid token")
			return
		}

		c.Set(constants.ContextKeyManagerID, claims.ManagerID)
		c.Next()
	}
}

// GetManagerID retrieves the current manager ID from context
func GetManagerID(c *gin.Context) (uint64, bool) {
	return getUint64(c, constants.ContextKeyManagerID)
}

func getUint64(c *gin.Context, key string) (uint64, bool) {
	value, exists := c.Get(key)
	if !exists {
		return 0, false
	}

	switch v := value.(type) {
	case uint64:
		return v, true
	case uint:
		return uint64(v), true
	case int:
		if v < 0 {
			return 0, false
		}
		return uint64(v), true
	default:
		return 0, false
	}
}
