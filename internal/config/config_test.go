package config

import (
	"bytes"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func setFullEnv(t *testing.T) {
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PORT", "5433")
	t.Setenv("DB_USER", "grid")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("DB_NAME", "gridstore")
	t.Setenv("SIM_START", "2025-10-01T00:00:00Z")
	t.Setenv("SIM_END", "2025-11-16T00:00:00Z")
	t.Setenv("SIM_STEP", "15m")
	t.Setenv("SIM_SEED", "42")
	t.Setenv("SIM_FLUSH_EVERY", "96")
}

func TestLoadSimulator(t *testing.T) {
	setFullEnv(t)

	cfg, err := LoadSimulator(testLogger())
	require.NoError(t, err)

	assert.Equal(t, time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC), cfg.Start)
	assert.Equal(t, time.Date(2025, 11, 16, 0, 0, 0, 0, time.UTC), cfg.End)
	assert.Equal(t, 15*time.Minute, cfg.Step)
	assert.Equal(t, int64(42), cfg.Seed)
	assert.Equal(t, 96, cfg.FlushEvery)
	assert.Contains(t, cfg.DB.DSN(), "host=db.internal")
	assert.Contains(t, cfg.DB.DSN(), "dbname=gridstore")
	assert.Contains(t, cfg.DB.DSN(), "sslmode=disable")
}

func TestLoadSimulatorDefaults(t *testing.T) {
	setFullEnv(t)
	t.Setenv("SIM_STEP", "")
	t.Setenv("SIM_SEED", "")
	t.Setenv("SIM_FLUSH_EVERY", "")

	cfg, err := LoadSimulator(testLogger())
	require.NoError(t, err)

	assert.Equal(t, 15*time.Minute, cfg.Step)
	assert.Zero(t, cfg.Seed)
	assert.Zero(t, cfg.FlushEvery)
}

func TestLoadSimulatorWarnsOnDBDefaults(t *testing.T) {
	setFullEnv(t)
	t.Setenv("DB_HOST", "")
	t.Setenv("DB_PORT", "")

	var buf bytes.Buffer
	cfg, err := LoadSimulator(slog.New(slog.NewTextHandler(&buf, nil)))
	require.NoError(t, err)

	assert.Contains(t, cfg.DB.DSN(), "host=localhost")
	assert.Contains(t, cfg.DB.DSN(), "port=5432")
	assert.Contains(t, buf.String(), "DB_HOST")
	assert.Contains(t, buf.String(), "DB_PORT")
}

func TestLoadSimulatorMissingRequired(t *testing.T) {
	for _, key := range []string{"DB_USER", "DB_PASSWORD", "DB_NAME", "SIM_START", "SIM_END"} {
		t.Run(key, func(t *testing.T) {
			setFullEnv(t)
			t.Setenv(key, "")

			_, err := LoadSimulator(testLogger())
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrMissingConfig)
		})
	}
}

func TestLoadSimulatorRejectsInvalid(t *testing.T) {
	t.Run("malformed start", func(t *testing.T) {
		setFullEnv(t)
		t.Setenv("SIM_START", "01.10.2025")
		_, err := LoadSimulator(testLogger())
		assert.Error(t, err)
	})

	t.Run("end before start", func(t *testing.T) {
		setFullEnv(t)
		t.Setenv("SIM_END", "2025-09-01T00:00:00Z")
		_, err := LoadSimulator(testLogger())
		assert.Error(t, err)
	})

	t.Run("negative step", func(t *testing.T) {
		setFullEnv(t)
		t.Setenv("SIM_STEP", "-1h")
		_, err := LoadSimulator(testLogger())
		assert.Error(t, err)
	})

	t.Run("negative flush chunk", func(t *testing.T) {
		setFullEnv(t)
		t.Setenv("SIM_FLUSH_EVERY", "-2")
		_, err := LoadSimulator(testLogger())
		assert.Error(t, err)
	})
}

func TestLoadAPI(t *testing.T) {
	setFullEnv(t)
	t.Setenv("API_ADDR", ":9000")

	cfg, err := LoadAPI(testLogger())
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.Addr)

	t.Setenv("API_ADDR", "")
	cfg, err = LoadAPI(testLogger())
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Addr)
}
