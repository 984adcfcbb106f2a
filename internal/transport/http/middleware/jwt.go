package middleware

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"blogilista/internal/app"
	"blogilista/internal/model"
	"blogilista/internal/transport/http/response"
)

const (
	ContextUserIDKey   = "user_id"
	ContextUsernameKey = "username"
	ContextTokenKey    = "token"
)

type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*model.User, error)
}

// BearerToken returns the token from an "Authorization: Bearer" header.
// ok is false when a header is present but uses another scheme.
func BearerToken(header string) (token string, ok bool) {
	header = strings.TrimSpace(header)
	if header == "" {
		return "", true
	}
	const prefix = "Bearer "
	if len(header) < len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", false
	}
	return strings.TrimSpace(header[len(prefix):]), true
}

// AuthJWT rejects requests whose bearer token does not resolve to an
// existing user, and stores the user and raw token on the context.
func AuthJWT(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := BearerToken(c.GetHeader("Authorization"))
		if !ok {
			response.Error(c, http.StatusUnauthorized, "invalid authorization scheme")
			c.Abort()
			return
		}

		user, err := auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			switch {
			case errors.Is(err, app.ErrTokenMissing),
				errors.Is(err, app.ErrTokenInvalid),
				errors.Is(err, app.ErrTokenExpired):
				response.Error(c, http.StatusUnauthorized, err.Error())
			default:
				log.Printf("authenticate request failed: %v", err)
				response.Error(c, http.StatusInternalServerError, "authentication failed")
			}
			c.Abort()
			return
		}

		c.Set(ContextUserIDKey, user.ID)
		c.Set(ContextUsernameKey, user.Username)
		c.Set(ContextTokenKey, token)
		c.Next()
	}
}
