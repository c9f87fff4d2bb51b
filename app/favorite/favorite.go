// Package favorite contains the handlers managing a user's saved movies and shows
package favorite

import (
	"errors"
	"net/http"

	"bitwise74/reelhub-api/internal"
	"bitwise74/reelhub-api/internal/model"
	"bitwise74/reelhub-api/internal/store"
	"bitwise74/reelhub-api/pkg/apperr"

	"github.com/gin-gonic/gin"
)

const msgBadMedia = "Missing media ID or type"

type favoriteBody struct {
	MediaID   int    `json:"mediaId" validate:"gt=0"`
	MediaType string `json:"mediaType" validate:"mediatype"`
}

func FavoriteList(c *gin.Context, d *internal.Deps) {
	user, err := fetchUser(c, d)
	if err != nil {
		apperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"favorites": user.Favorites,
	})
}

// FavoriteAdd is idempotent, adding a pair twice keeps a single entry
func FavoriteAdd(c *gin.Context, d *internal.Deps) {
	var data favoriteBody
	if err := d.Validator.BindJSON(c, &data, msgBadMedia); err != nil {
		apperr.Respond(c, err)
		return
	}

	user, err := fetchUser(c, d)
	if err != nil {
		apperr.Respond(c, err)
		return
	}

	favs, changed := user.Favorites.Add(data.MediaID, model.MediaType(data.MediaType))
	if changed {
		if err := d.Store.Users.SetFavorites(c.Request.Context(), user.ID, favs); err != nil {
			apperr.Respond(c, storeErr(err, "Failed to add favorite"))
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Added to favorites",
		"favorites": favs,
	})
}

// FavoriteRemove succeeds even when the pair wasn't saved
func FavoriteRemove(c *gin.Context, d *internal.Deps) {
	var params struct {
		MediaID   int    `uri:"mediaId" json:"mediaId" validate:"gt=0"`
		MediaType string `uri:"mediaType" json:"mediaType" validate:"mediatype"`
	}

	if err := c.ShouldBindUri(&params); err != nil {
		apperr.Respond(c, apperr.Wrap(apperr.Validation, msgBadMedia, err))
		return
	}

	if err := d.Validator.Validate(params); err != nil {
		apperr.Respond(c, apperr.Wrap(apperr.Validation, msgBadMedia, err))
		return
	}

	user, err := fetchUser(c, d)
	if err != nil {
		apperr.Respond(c, err)
		return
	}

	favs, changed := user.Favorites.Remove(params.MediaID, model.MediaType(params.MediaType))
	if changed {
		if err := d.Store.Users.SetFavorites(c.Request.Context(), user.ID, favs); err != nil {
			apperr.Respond(c, storeErr(err, "Failed to remove favorite"))
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Removed from favorites",
		"favorites": favs,
	})
}

func fetchUser(c *gin.Context, d *internal.Deps) (*model.User, error) {
	user, err := d.Store.Users.ByID(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		return nil, storeErr(err, "Failed to get favorites")
	}

	if user.Favorites == nil {
		user.Favorites = model.Favorites{}
	}

	return user, nil
}

func storeErr(err error, msg string) error {
	if errors.Is(err, store.ErrNotFound) {
		return apperr.Wrap(apperr.NotFound, "User not found", err)
	}

	return apperr.Wrap(apperr.Internal, msg, err)
}
