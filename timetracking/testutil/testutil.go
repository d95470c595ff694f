// Package testutil opens throwaway databases for package tests.
package testutil

import (
	"io"
	"log/slog"
	"testing"

	"axiapac.com/timetracker/core"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// NewDB returns a private in-memory sqlite database with models migrated.
func NewDB(t *testing.T, models ...interface{}) *gorm.DB {
	t.Helper()

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared&_foreign_keys=1"
	dm, err := core.New("sqlite", dsn, 1, core.LogLevelSilent)
	require.NoError(t, err)
	t.Cleanup(func() { _ = dm.Close() })

	require.NoError(t, dm.DB.AutoMigrate(models...))
	return dm.DB
}

func Logger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
