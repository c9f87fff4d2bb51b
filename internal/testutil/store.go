// Package testutil contains helpers shared by the package tests
package testutil

import (
	"context"
	"path/filepath"
	"testing"

	"bitwise74/reelhub-api/internal/store"
	"bitwise74/reelhub-api/internal/store/gormstore"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewStore returns a store backed by a fresh SQLite file that is removed
// when the test ends
func NewStore(t testing.TB) (*store.Store, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	s, err := gormstore.New(db)
	require.NoError(t, err)

	t.Cleanup(func() { s.Close(context.Background()) })

	return s, db
}
