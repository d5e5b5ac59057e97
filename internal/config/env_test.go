package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEnv_Defaults(t *testing.T) {
	env, err := LoadEnv()
	require.NoError(t, err)

	assert.Equal(t, DefaultEnv(), env)
}

func TestLoadEnv_Overrides(t *testing.T) {
	t.Setenv("TRANSFER_PANEL_LOG_LEVEL", "debug")
	t.Setenv("TRANSFER_PANEL_LOG_DEV", "true")
	t.Setenv("TRANSFER_PANEL_HTTP_RETRY_MAX", "5")
	t.Setenv("TRANSFER_PANEL_HTTP_TIMEOUT", "90s")
	t.Setenv("TRANSFER_PANEL_PROGRESS_INTERVAL", "1s")
	t.Setenv("TRANSFER_PANEL_METRICS_ADDR", "127.0.0.1:9108")

	env, err := LoadEnv()
	require.NoError(t, err)

	assert.Equal(t, "debug", env.Log.Level)
	assert.True(t, env.Log.Development)
	assert.Equal(t, 5, env.HTTP.RetryMax)
	assert.Equal(t, 90*time.Second, env.HTTP.Timeout)
	assert.Equal(t, time.Second, env.ProgressInterval)
	assert.Equal(t, "127.0.0.1:9108", env.MetricsAddr)
}

func TestLoadEnv_InvalidValue(t *testing.T) {
	t.Setenv("TRANSFER_PANEL_HTTP_RETRY_MAX", "many")

	_, err := LoadEnv()
	assert.Error(t, err)

	assert.Equal(t, DefaultEnv(), LoadEnvOrDefault())
}
