package user

import (
	"errors"
	"net/http"

	"bitwise74/reelhub-api/internal"
	"bitwise74/reelhub-api/internal/store"
	"bitwise74/reelhub-api/pkg/apperr"

	"github.com/gin-gonic/gin"
)

// UserFetch returns the account of the token's user without the password hash
func UserFetch(c *gin.Context, d *internal.Deps) {
	userID := c.GetString("userID")

	user, err := d.Store.Users.ByID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			apperr.Respond(c, apperr.New(apperr.NotFound, "User not found"))
			return
		}

		apperr.Respond(c, apperr.Wrap(apperr.Internal, "Failed to get user info", err))
		return
	}

	c.JSON(http.StatusOK, user)
}
