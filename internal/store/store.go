// Package store defines the repositories the handlers depend on. The
// gormstore and mongostore packages implement them.
package store

import (
	"context"
	"errors"

	"bitwise74/reelhub-api/internal/model"
)

var (
	// ErrNotFound is returned when the requested document doesn't exist
	ErrNotFound = errors.New("record not found")

	// ErrDuplicate is returned when a write violates a unique index
	ErrDuplicate = errors.New("duplicate key")
)

type UserRepository interface {
	// Create assigns an ID when u.ID is empty and stores the user
	Create(ctx context.Context, u *model.User) error
	ByID(ctx context.Context, id string) (*model.User, error)
	ByEmail(ctx context.Context, email string) (*model.User, error)
	ByUsername(ctx context.Context, username string) (*model.User, error)
	// SetFavorites overwrites the favorites list of a user
	SetFavorites(ctx context.Context, id string, f model.Favorites) error
	Delete(ctx context.Context, id string) error
}

type RatingRepository interface {
	// Upsert inserts or overwrites the rating of r.UserID for the media
	// item. created is true when no rating existed before.
	Upsert(ctx context.Context, r *model.Rating) (created bool, err error)
	Get(ctx context.Context, userID string, mediaID int, mediaType model.MediaType) (*model.Rating, error)
	Summary(ctx context.Context, mediaID int, mediaType model.MediaType) (model.RatingSummary, error)
	DeleteByUser(ctx context.Context, userID string) (int64, error)
	// DeleteOrphans removes ratings whose user no longer exists
	DeleteOrphans(ctx context.Context) (int64, error)
}

type CommentRepository interface {
	// Create assigns an ID when c.ID is empty and stores the comment
	Create(ctx context.Context, c *model.Comment) error
	ByID(ctx context.Context, id string) (*model.Comment, error)
	// ListByMedia returns the comments of a media item, newest first
	ListByMedia(ctx context.Context, mediaID int, mediaType model.MediaType) ([]model.Comment, error)
	Delete(ctx context.Context, id string) error
	DeleteByUser(ctx context.Context, userID string) (int64, error)
	// DeleteOrphans removes comments whose user no longer exists
	DeleteOrphans(ctx context.Context) (int64, error)
}

// Store bundles the repositories of one backend together with the
// function releasing its connection
type Store struct {
	Users    UserRepository
	Ratings  RatingRepository
	Comments CommentRepository

	close func(context.Context) error
}

func New(u UserRepository, r RatingRepository, c CommentRepository, closeFn func(context.Context) error) *Store {
	return &Store{
		Users:    u,
		Ratings:  r,
		Comments: c,
		close:    closeFn,
	}
}

func (s *Store) Close(ctx context.Context) error {
	if s.close == nil {
		return nil
	}

	return s.close(ctx)
}
