package user

import (
	"errors"
	"net/http"

	"bitwise74/reelhub-api/internal"
	"bitwise74/reelhub-api/internal/store"
	"bitwise74/reelhub-api/pkg/apperr"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UserDelete removes the account and then, best effort, the ratings and
// comments it wrote. Leftovers are picked up by the orphan cleanup.
func UserDelete(c *gin.Context, d *internal.Deps) {
	requestID := c.GetString("requestID")
	userID := c.GetString("userID")
	ctx := c.Request.Context()

	if err := d.Store.Users.Delete(ctx, userID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			apperr.Respond(c, apperr.New(apperr.NotFound, "User not found"))
			return
		}

		apperr.Respond(c, apperr.Wrap(apperr.Internal, "Failed to delete account", err))
		return
	}

	ratings, err := d.Store.Ratings.DeleteByUser(ctx, userID)
	if err != nil {
		zap.L().Warn("Failed to delete ratings of removed user", zap.Error(err), zap.String("userID", userID), zap.String("requestID", requestID))
	}

	comments, err := d.Store.Comments.DeleteByUser(ctx, userID)
	if err != nil {
		zap.L().Warn("Failed to delete comments of removed user", zap.Error(err), zap.String("userID", userID), zap.String("requestID", requestID))
	}

	zap.L().Info("Account deleted",
		zap.String("userID", userID),
		zap.Int64("ratings", ratings),
		zap.Int64("comments", comments),
		zap.String("requestID", requestID),
	)

	c.JSON(http.StatusOK, gin.H{
		"message": "Account deleted",
	})
}
