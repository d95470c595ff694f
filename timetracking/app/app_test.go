package app

import (
	"context"
	"encoding/base64"
	"testing"

	"axiapac.com/timetracker/config"
	"axiapac.com/timetracker/infrastructure/filesystem"
	"axiapac.com/timetracker/timetracking/core"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sqliteConfig() config.Config {
	return config.Config{
		DBDriver:         "sqlite",
		DSN:              "file:" + uuid.NewString() + "?mode=memory&cache=shared",
		DBMaxConnections: 1,
		DBLogLevel:       "silent",
		LogLevel:         "error",
		TimeZone:         "Australia/Brisbane",
		SigningSecret:    base64.StdEncoding.EncodeToString([]byte("app-test-secret")),
	}
}

func TestOpen(t *testing.T) {
	ctx := context.Background()
	a, err := Open(ctx, sqliteConfig(), "timetracker-test")
	require.NoError(t, err)
	defer a.Close(ctx)

	require.NoError(t, core.AutoMigrate(a.DM.DB))
	assert.Equal(t, "Australia/Brisbane", a.Tracker.TimeZone().Location().String())
	assert.IsType(t, &filesystem.Memory{}, a.Files)

	key, err := a.SigningKey()
	require.NoError(t, err)
	assert.Equal(t, "app-test-secret", string(key))

	h := a.Handler()
	assert.Same(t, a.Tracker, h.Tracker)
	assert.Empty(t, h.ExportBucket)
}

func TestOpenErrors(t *testing.T) {
	ctx := context.Background()

	cfg := sqliteConfig()
	cfg.TimeZone = "Mars/Olympus"
	_, err := Open(ctx, cfg, "test")
	assert.Error(t, err)

	cfg = sqliteConfig()
	cfg.DSN = ""
	_, err = Open(ctx, cfg, "test")
	assert.ErrorContains(t, err, "DB_SSM_PARAMETER")

	cfg = sqliteConfig()
	cfg.SigningSecret = ""
	a, err := Open(ctx, cfg, "test")
	require.NoError(t, err)
	defer a.Close(ctx)
	_, err = a.SigningKey()
	assert.Error(t, err)
}
