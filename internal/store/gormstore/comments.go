package gormstore

import (
	"context"
	"fmt"

	"bitwise74/reelhub-api/internal/model"
	"bitwise74/reelhub-api/internal/store"

	"gorm.io/gorm"
)

type comments struct {
	db *gorm.DB
}

func (r *comments) Create(ctx context.Context, c *model.Comment) error {
	if c.ID == "" {
		id, err := newID()
		if err != nil {
			return fmt.Errorf("failed to generate comment ID, %w", err)
		}
		c.ID = id
	}

	return translate(r.db.WithContext(ctx).Create(c).Error)
}

func (r *comments) ByID(ctx context.Context, id string) (*model.Comment, error) {
	var c model.Comment

	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&c).
		Error
	if err != nil {
		return nil, translate(err)
	}

	return &c, nil
}

func (r *comments) ListByMedia(ctx context.Context, mediaID int, mediaType model.MediaType) ([]model.Comment, error) {
	out := []model.Comment{}

	err := r.db.WithContext(ctx).
		Where("media_id = ? AND media_type = ?", mediaID, mediaType).
		Order("created_at desc").
		Order("id desc").
		Find(&out).
		Error
	if err != nil {
		return nil, translate(err)
	}

	return out, nil
}

func (r *comments) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.Comment{})
	if res.Error != nil {
		return translate(res.Error)
	}

	if res.RowsAffected == 0 {
		return store.ErrNotFound
	}

	return nil
}

func (r *comments) DeleteByUser(ctx context.Context, userID string) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&model.Comment{})

	return res.RowsAffected, translate(res.Error)
}

func (r *comments) DeleteOrphans(ctx context.Context) (int64, error) {
	db := r.db.WithContext(ctx)

	res := db.
		Where("user_id NOT IN (?)", db.Model(&model.User{}).Select("id")).
		Delete(&model.Comment{})

	return res.RowsAffected, translate(res.Error)
}
