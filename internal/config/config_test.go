package config

import (
	"testing"

	"slotsense/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	for _, key := range []string{"PORT", "GIN_MODE", "LOG_LEVEL", "LOG_DEVELOPMENT", "STORAGE_DRIVER", "SNAPSHOT_DIR", "DATABASE_URL", "BATCH_WORKERS"} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "release", cfg.Server.GinMode)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.False(t, cfg.Log.Development)
	assert.Equal(t, DriverFile, cfg.Storage.Driver)
	assert.Equal(t, "./snapshots", cfg.Storage.Dir)
	assert.Equal(t, 4, cfg.Analysis.BatchWorkers)
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("LOG_DEVELOPMENT", "true")
	t.Setenv("STORAGE_DRIVER", "postgres")
	t.Setenv("DATABASE_URL", "postgres://localhost/slotsense?sslmode=disable")
	t.Setenv("BATCH_WORKERS", "8")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.Log.Development)
	assert.Equal(t, DriverPostgres, cfg.Storage.Driver)
	assert.Equal(t, 8, cfg.Analysis.BatchWorkers)
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"postgres without url", map[string]string{"STORAGE_DRIVER": "postgres"}},
		{"unknown driver", map[string]string{"STORAGE_DRIVER": "s3"}},
		{"zero workers", map[string]string{"BATCH_WORKERS": "0"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Load()
			require.Error(t, err)
			assert.Equal(t, errors.CodeConfigInvalid, errors.GetCode(err))
		})
	}
}

func TestEnvHelpersIgnoreMalformedValues(t *testing.T) {
	t.Setenv("SLOTSENSE_TEST_INT", "many")
	t.Setenv("SLOTSENSE_TEST_BOOL", "maybe")

	assert.Equal(t, 3, getEnvIntOrDefault("SLOTSENSE_TEST_INT", 3))
	assert.True(t, getEnvBoolOrDefault("SLOTSENSE_TEST_BOOL", true))
}
