package gormstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bitwise74/reelhub-api/internal/model"
	"bitwise74/reelhub-api/internal/store"

	"gorm.io/gorm"
)

type ratings struct {
	db *gorm.DB
}

const ownerQuery = "user_id = ? AND media_id = ? AND media_type = ?"

func (r *ratings) Upsert(ctx context.Context, rt *model.Rating) (bool, error) {
	db := r.db.WithContext(ctx)

	var existing model.Rating

	err := db.
		Where(ownerQuery, rt.UserID, rt.MediaID, rt.MediaType).
		First(&existing).
		Error
	if err == nil {
		existing.Rating = rt.Rating
		if err := db.Save(&existing).Error; err != nil {
			return false, translate(err)
		}

		*rt = existing
		return false, nil
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, translate(err)
	}

	if rt.ID == "" {
		id, err := newID()
		if err != nil {
			return false, fmt.Errorf("failed to generate rating ID, %w", err)
		}
		rt.ID = id
	}

	err = translate(db.Create(rt).Error)
	if errors.Is(err, store.ErrDuplicate) {
		// Another request inserted the same rating in between
		return false, r.overwrite(ctx, rt)
	}

	return err == nil, err
}

func (r *ratings) overwrite(ctx context.Context, rt *model.Rating) error {
	db := r.db.WithContext(ctx)

	err := db.
		Model(&model.Rating{}).
		Where(ownerQuery, rt.UserID, rt.MediaID, rt.MediaType).
		Updates(map[string]any{
			"rating":     rt.Rating,
			"updated_at": time.Now(),
		}).
		Error
	if err != nil {
		return translate(err)
	}

	return translate(db.Where(ownerQuery, rt.UserID, rt.MediaID, rt.MediaType).First(rt).Error)
}

func (r *ratings) Get(ctx context.Context, userID string, mediaID int, mediaType model.MediaType) (*model.Rating, error) {
	var rt model.Rating

	err := r.db.WithContext(ctx).
		Where(ownerQuery, userID, mediaID, mediaType).
		First(&rt).
		Error
	if err != nil {
		return nil, translate(err)
	}

	return &rt, nil
}

type summaryRow struct {
	Total float64
	Count int
}

func (r *ratings) Summary(ctx context.Context, mediaID int, mediaType model.MediaType) (model.RatingSummary, error) {
	var row summaryRow

	err := r.db.WithContext(ctx).
		Model(&model.Rating{}).
		Select("COALESCE(SUM(rating), 0) AS total, COUNT(*) AS count").
		Where("media_id = ? AND media_type = ?", mediaID, mediaType).
		Scan(&row).
		Error
	if err != nil {
		return model.RatingSummary{}, translate(err)
	}

	return model.NewRatingSummary(mediaID, mediaType, row.Total, row.Count), nil
}

func (r *ratings) DeleteByUser(ctx context.Context, userID string) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&model.Rating{})

	return res.RowsAffected, translate(res.Error)
}

func (r *ratings) DeleteOrphans(ctx context.Context) (int64, error) {
	db := r.db.WithContext(ctx)

	res := db.
		Where("user_id NOT IN (?)", db.Model(&model.User{}).Select("id")).
		Delete(&model.Rating{})

	return res.RowsAffected, translate(res.Error)
}
