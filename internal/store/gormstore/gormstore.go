// Package gormstore implements the store repositories on top of gorm. It
// backs both the SQLite and the Postgres deployments.
package gormstore

import (
	"context"
	"errors"
	"fmt"

	"bitwise74/reelhub-api/internal/model"
	"bitwise74/reelhub-api/internal/store"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"gorm.io/gorm"
)

const (
	charset  = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	idLength = 16
)

// Models lists every table managed by this package
var Models = []any{model.User{}, model.Rating{}, model.Comment{}}

// New migrates the schema and returns a store backed by db. The gorm
// connection must have been opened with TranslateError enabled so unique
// violations surface as gorm.ErrDuplicatedKey.
func New(db *gorm.DB) (*store.Store, error) {
	if err := db.AutoMigrate(Models...); err != nil {
		return nil, fmt.Errorf("failed to automigrate tables, %w", err)
	}

	closeFn := func(context.Context) error {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}

		return sqlDB.Close()
	}

	return store.New(&users{db}, &ratings{db}, &comments{db}, closeFn), nil
}

func newID() (string, error) {
	return gonanoid.Generate(charset, idLength)
}

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return store.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%w, %w", store.ErrDuplicate, err)
	default:
		return err
	}
}
