// Package comment contains the handlers for comments left on movies and shows
package comment

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"unicode/utf8"

	"bitwise74/reelhub-api/internal"
	"bitwise74/reelhub-api/internal/model"
	"bitwise74/reelhub-api/internal/store"
	"bitwise74/reelhub-api/pkg/apperr"
	"bitwise74/reelhub-api/pkg/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type commentBody struct {
	MediaID   int    `json:"mediaId" validate:"gt=0"`
	MediaType string `json:"mediaType" validate:"mediatype"`
	Text      string `json:"text"`
}

func CommentCreate(c *gin.Context, d *internal.Deps) {
	var data commentBody
	if err := d.Validator.BindJSON(c, &data, ""); err != nil {
		apperr.Respond(c, err)
		return
	}

	text := strings.TrimSpace(data.Text)
	if text == "" {
		apperr.Respond(c, apperr.New(apperr.Validation, "Comment text is required"))
		return
	}

	if utf8.RuneCountInString(text) > model.MaxCommentLength {
		apperr.Respond(c, apperr.New(apperr.Validation,
			fmt.Sprintf("Comment must not exceed %d characters", model.MaxCommentLength)))
		return
	}

	id := middleware.Identity(c)

	comment := &model.Comment{
		UserID:    id.ID,
		Username:  id.Username,
		MediaID:   data.MediaID,
		MediaType: model.MediaType(data.MediaType),
		Text:      text,
	}

	if err := d.Store.Comments.Create(c.Request.Context(), comment); err != nil {
		apperr.Respond(c, apperr.Wrap(apperr.Internal, "Failed to add comment", err))
		return
	}

	c.JSON(http.StatusCreated, comment)
}

// CommentList is public, comments are returned newest first
func CommentList(c *gin.Context, d *internal.Deps) {
	var p struct {
		MediaID   int    `uri:"mediaId" json:"mediaId" validate:"gt=0"`
		MediaType string `uri:"mediaType" json:"mediaType" validate:"mediatype"`
	}

	if err := c.ShouldBindUri(&p); err != nil {
		apperr.Respond(c, apperr.Wrap(apperr.Validation, "Invalid media ID or type", err))
		return
	}

	if err := d.Validator.Validate(p); err != nil {
		apperr.Respond(c, apperr.Wrap(apperr.Validation, "Invalid media ID or type", err))
		return
	}

	comments, err := d.Store.Comments.ListByMedia(c.Request.Context(), p.MediaID, model.MediaType(p.MediaType))
	if err != nil {
		apperr.Respond(c, apperr.Wrap(apperr.Internal, "Failed to get comments", err))
		return
	}

	c.JSON(http.StatusOK, comments)
}

// CommentDelete only lets authors remove their own comments
func CommentDelete(c *gin.Context, d *internal.Deps) {
	requestID := c.GetString("requestID")
	userID := c.GetString("userID")
	commentID := c.Param("id")
	ctx := c.Request.Context()

	comment, err := d.Store.Comments.ByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			apperr.Respond(c, apperr.New(apperr.NotFound, "Comment not found"))
			return
		}

		apperr.Respond(c, apperr.Wrap(apperr.Internal, "Failed to delete comment", err))
		return
	}

	if comment.UserID != userID {
		zap.L().Debug("Comment delete by non author",
			zap.String("commentID", commentID),
			zap.String("userID", userID),
			zap.String("requestID", requestID),
		)

		apperr.Respond(c, apperr.New(apperr.Forbidden, "You can only delete your own comments"))
		return
	}

	if err := d.Store.Comments.Delete(ctx, commentID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			apperr.Respond(c, apperr.New(apperr.NotFound, "Comment not found"))
			return
		}

		apperr.Respond(c, apperr.Wrap(apperr.Internal, "Failed to delete comment", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Comment deleted",
	})
}
