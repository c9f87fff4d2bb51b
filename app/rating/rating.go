// Package rating contains the handlers for per user 1-10 ratings
package rating

import (
	"errors"
	"net/http"

	"bitwise74/reelhub-api/internal"
	"bitwise74/reelhub-api/internal/model"
	"bitwise74/reelhub-api/internal/store"
	"bitwise74/reelhub-api/pkg/apperr"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ratingBody struct {
	MediaID   int    `json:"mediaId" validate:"gt=0"`
	MediaType string `json:"mediaType" validate:"mediatype"`
	Rating    int    `json:"rating" validate:"gte=1,lte=10"`
}

type mediaParams struct {
	MediaID   int    `uri:"mediaId" json:"mediaId" validate:"gt=0"`
	MediaType string `uri:"mediaType" json:"mediaType" validate:"mediatype"`
}

// RatingUpsert creates the caller's rating or overwrites the existing one
func RatingUpsert(c *gin.Context, d *internal.Deps) {
	requestID := c.GetString("requestID")

	var data ratingBody
	if err := d.Validator.BindJSON(c, &data, ""); err != nil {
		apperr.Respond(c, err)
		return
	}

	r := &model.Rating{
		UserID:    c.GetString("userID"),
		MediaID:   data.MediaID,
		MediaType: model.MediaType(data.MediaType),
		Rating:    data.Rating,
	}

	created, err := d.Store.Ratings.Upsert(c.Request.Context(), r)
	if err != nil {
		apperr.Respond(c, apperr.Wrap(apperr.Internal, "Failed to save rating", err))
		return
	}

	zap.L().Debug("Rating saved",
		zap.String("userID", r.UserID),
		zap.Int("mediaID", r.MediaID),
		zap.Bool("created", created),
		zap.String("requestID", requestID),
	)

	if created {
		c.JSON(http.StatusCreated, gin.H{
			"message": "Rating created",
			"rating":  r,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Rating updated",
		"rating":  r,
	})
}

// RatingSummary is public and reports a null average for unrated media
func RatingSummary(c *gin.Context, d *internal.Deps) {
	p, err := bindMedia(c, d)
	if err != nil {
		apperr.Respond(c, err)
		return
	}

	s, err := d.Store.Ratings.Summary(c.Request.Context(), p.MediaID, model.MediaType(p.MediaType))
	if err != nil {
		apperr.Respond(c, apperr.Wrap(apperr.Internal, "Failed to get ratings", err))
		return
	}

	c.JSON(http.StatusOK, s)
}

// RatingFetchOwn returns the caller's rating of one media item
func RatingFetchOwn(c *gin.Context, d *internal.Deps) {
	p, err := bindMedia(c, d)
	if err != nil {
		apperr.Respond(c, err)
		return
	}

	r, err := d.Store.Ratings.Get(c.Request.Context(), c.GetString("userID"), p.MediaID, model.MediaType(p.MediaType))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			apperr.Respond(c, apperr.New(apperr.NotFound, "Rating not found"))
			return
		}

		apperr.Respond(c, apperr.Wrap(apperr.Internal, "Failed to get rating", err))
		return
	}

	c.JSON(http.StatusOK, r)
}

func bindMedia(c *gin.Context, d *internal.Deps) (mediaParams, error) {
	var p mediaParams

	if err := c.ShouldBindUri(&p); err != nil {
		return p, apperr.Wrap(apperr.Validation, "Invalid media ID or type", err)
	}

	if err := d.Validator.Validate(p); err != nil {
		return p, apperr.Wrap(apperr.Validation, "Invalid media ID or type", err)
	}

	return p, nil
}
