package server

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/productify/productify/internal/authcontext"
)

const contextUserIDKey = "user_id"

// AuthRequired resolves the caller identity from the bearer token and makes
// it available to handlers. Requests without a verifiable identity stop here.
func (s *Server) AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		rawToken := bearerToken(c)
		if rawToken == "" {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		ident, err := s.identity.Verify(c.Request.Context(), rawToken)
		if err != nil {
			AbortWithError(c, err)
			return
		}

		ctx := authcontext.WithUserID(c.Request.Context(), ident.UserID)
		c.Request = c.Request.WithContext(ctx)
		c.Set(contextUserIDKey, ident.UserID)
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if len(header) > 7 && strings.EqualFold(header[:7], "Bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return ""
}

// callerID returns the identity resolved by AuthRequired.
func callerID(c *gin.Context) string {
	if id, ok := authcontext.UserIDFromContext(c.Request.Context()); ok {
		return id
	}
	return strings.TrimSpace(c.GetString(contextUserIDKey))
}
