package middleware

import (
	"context"
	"errors"
	"strings"

	"bitwise74/reelhub-api/internal/model"
	"bitwise74/reelhub-api/internal/store"
	"bitwise74/reelhub-api/pkg/apperr"

	"github.com/gin-gonic/gin"
)

// TokenVerifier is satisfied by *security.Tokens
type TokenVerifier interface {
	Verify(token string) (model.Identity, error)
}

// UserFinder is used for the optional existence check
type UserFinder interface {
	ByID(ctx context.Context, id string) (*model.User, error)
}

// NewAuthMiddleware returns a middleware that requires a valid bearer
// token and stores its identity as userID and username. When users is
// not nil the token's user must also still exist.
func NewAuthMiddleware(tokens TokenVerifier, users UserFinder) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			apperr.Respond(c, apperr.New(apperr.NoToken, "No token provided"))
			return
		}

		id, err := tokens.Verify(token)
		if err != nil {
			apperr.Respond(c, apperr.Wrap(apperr.InvalidToken, "Invalid token", err))
			return
		}

		if users != nil {
			if _, err := users.ByID(c.Request.Context(), id.ID); err != nil {
				if errors.Is(err, store.ErrNotFound) {
					apperr.Respond(c, apperr.Wrap(apperr.InvalidToken, "Invalid token", err))
					return
				}

				apperr.Respond(c, err)
				return
			}
		}

		c.Set("userID", id.ID)
		c.Set("username", id.Username)
		c.Next()
	}
}

// Identity returns the identity stored by the auth middleware
func Identity(c *gin.Context) model.Identity {
	return model.Identity{
		ID:       c.GetString("userID"),
		Username: c.GetString("username"),
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}

	token = strings.TrimSpace(token)
	return token, token != ""
}
