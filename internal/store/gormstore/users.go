package gormstore

import (
	"context"
	"fmt"

	"bitwise74/reelhub-api/internal/model"
	"bitwise74/reelhub-api/internal/store"

	"gorm.io/gorm"
)

type users struct {
	db *gorm.DB
}

func (r *users) Create(ctx context.Context, u *model.User) error {
	if u.ID == "" {
		id, err := newID()
		if err != nil {
			return fmt.Errorf("failed to generate user ID, %w", err)
		}
		u.ID = id
	}

	if u.Favorites == nil {
		u.Favorites = model.Favorites{}
	}

	return translate(r.db.WithContext(ctx).Create(u).Error)
}

func (r *users) ByID(ctx context.Context, id string) (*model.User, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *users) ByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.first(ctx, "email = ?", email)
}

func (r *users) ByUsername(ctx context.Context, username string) (*model.User, error) {
	return r.first(ctx, "username = ?", username)
}

func (r *users) first(ctx context.Context, query string, arg any) (*model.User, error) {
	var u model.User

	err := r.db.WithContext(ctx).
		Where(query, arg).
		First(&u).
		Error
	if err != nil {
		return nil, translate(err)
	}

	return &u, nil
}

func (r *users) SetFavorites(ctx context.Context, id string, f model.Favorites) error {
	if f == nil {
		f = model.Favorites{}
	}

	res := r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ?", id).
		Update("favorites", f)
	if res.Error != nil {
		return translate(res.Error)
	}

	if res.RowsAffected == 0 {
		return store.ErrNotFound
	}

	return nil
}

func (r *users) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.User{})
	if res.Error != nil {
		return translate(res.Error)
	}

	if res.RowsAffected == 0 {
		return store.ErrNotFound
	}

	return nil
}
