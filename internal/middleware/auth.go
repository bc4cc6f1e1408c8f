package middleware

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/lynxview-api/internal/constants"
	apierrors "github.com/yukikurage/lynxview-api/internal/errors"
)

// CallerIdentity reads the calling user's id from the X-User-ID header.
// A missing header leaves the context untouched; a malformed one is rejected.
// No authentication is performed.
func CallerIdentity() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := strings.TrimSpace(c.GetHeader(constants.HeaderUserID))
		if raw == "" {
			c.Next()
			return
		}

		userID, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || userID == 0 {
			apierrors.BadRequest(c, "Invalid "+constants.HeaderUserID+" header")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyUserID, userID)
		c.Next()
	}
}

// RequireCaller rejects requests that did not identify a calling user
func RequireCaller() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := GetUserID(c); !ok {
			apierrors.BadRequest(c, constants.HeaderUserID+" header is required")
			c.Abort()
			return
		}
		c.Next()
	}
}

// GetUserID retrieves the calling user ID from context
func GetUserID(c *gin.Context) (uint64, bool) {
	userID, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return 0, false
	}

	id, ok := userID.(uint64)
	return id, ok
}
