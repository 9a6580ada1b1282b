package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// go test -timeout 30s -v -count=1 -run ^TestDefaults$ ./internal/config
func TestDefaults(t *testing.T) {
	cfg, err := LoadFrom(map[string]string{})
	require.NoError(t, err)
	assert.Equal(t, "sqlite://leaselite.db", cfg.StoreURL)
	assert.Equal(t, 3, cfg.Engine.MaxFailures)
	assert.Equal(t, time.Minute, cfg.Engine.TimeoutInterval)
	assert.Equal(t, time.Second, cfg.Engine.PollInterval)
	assert.Equal(t, time.Minute, cfg.Engine.RetryInterval)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "pretty", cfg.Log.Format)
}

func TestOverrides(t *testing.T) {
	cfg, err := LoadFrom(map[string]string{
		"LEASELITE_STORE_URL":         "memory://",
		"LEASELITE_MAX_FAILURES":      "5",
		"LEASELITE_POLL_INTERVAL":     "250ms",
		"LEASELITE_LOG_FORMAT":        "json",
		"LEASELITE_LOG_OTEL_EXPORTER": "otlp",
	})
	require.NoError(t, err)
	assert.Equal(t, "memory://", cfg.StoreURL)
	assert.Equal(t, 5, cfg.Engine.MaxFailures)
	assert.Equal(t, 250*time.Millisecond, cfg.Engine.PollInterval)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "otlp", cfg.Log.OTelExporter)
}

func TestInvalid(t *testing.T) {
	_, err := LoadFrom(map[string]string{"LEASELITE_LOG_FORMAT": "xml"})
	assert.Error(t, err)

	_, err = LoadFrom(map[string]string{"LEASELITE_MAX_FAILURES": "many"})
	assert.Error(t, err)
}
