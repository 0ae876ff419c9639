package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testMapboxToken = "pk.test-token"

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "data/ufo_sightings_scrubbed.csv", cfg.InputCSV)
	assert.Equal(t, "data", cfg.OutputDir)
	assert.Equal(t, 5, cfg.TopN)
	assert.Equal(t, 604800.0, cfg.MaxDurationSeconds)
	assert.Equal(t, 10000, cfg.MaxGlobePoints)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.False(t, cfg.KafkaEnabled)
	assert.Equal(t, []string{"localhost:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "ufo-sightings-clean", cfg.KafkaSinkTopic)
	assert.False(t, cfg.MapboxEnabled)
	assert.Empty(t, cfg.MapboxToken)
	assert.Equal(t, 5*time.Second, cfg.MapboxTimeout)
	assert.Equal(t, 1000, cfg.MapboxCacheSize)
}

func TestLoad_CustomEnv(t *testing.T) {
	t.Setenv("INPUT_CSV", "/tmp/in.csv")
	t.Setenv("OUTPUT_DIR", "/tmp/out")
	t.Setenv("TOP_N", "10")
	t.Setenv("MAX_DURATION_SECONDS", "3600")
	t.Setenv("MAX_GLOBE_POINTS", "500")
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("SHUTDOWN_TIMEOUT", "30s")
	t.Setenv("KAFKA_ENABLED", "true")
	t.Setenv("KAFKA_BROKERS", "broker1:9092,broker2:9092")
	t.Setenv("KAFKA_SINK_TOPIC", "custom-sink")
	t.Setenv("MAPBOX_TOKEN", testMapboxToken)
	t.Setenv("MAPBOX_TIMEOUT", "10s")
	t.Setenv("MAPBOX_CACHE_SIZE", "500")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/tmp/in.csv", cfg.InputCSV)
	assert.Equal(t, "/tmp/out", cfg.OutputDir)
	assert.Equal(t, 10, cfg.TopN)
	assert.Equal(t, 3600.0, cfg.MaxDurationSeconds)
	assert.Equal(t, 500, cfg.MaxGlobePoints)
	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.True(t, cfg.KafkaEnabled)
	assert.Equal(t, []string{"broker1:9092", "broker2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "custom-sink", cfg.KafkaSinkTopic)
	assert.True(t, cfg.MapboxEnabled)
	assert.Equal(t, testMapboxToken, cfg.MapboxToken)
	assert.Equal(t, 10*time.Second, cfg.MapboxTimeout)
	assert.Equal(t, 500, cfg.MapboxCacheSize)
}

func TestLoad_MapboxEnabledByToken(t *testing.T) {
	t.Setenv("MAPBOX_TOKEN", testMapboxToken)

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.MapboxEnabled)
}

func TestLoad_MapboxExplicitDisable(t *testing.T) {
	t.Setenv("MAPBOX_TOKEN", testMapboxToken)
	t.Setenv("MAPBOX_ENABLED", "false")

	cfg, err := Load()
	require.NoError(t, err)
	assert.False(t, cfg.MapboxEnabled)
}

func TestLoad_Invalid(t *testing.T) {
	cases := []struct {
		name string
		key  string
		val  string
	}{
		{"bad top n", "TOP_N", "abc"},
		{"zero top n", "TOP_N", "0"},
		{"bad max duration", "MAX_DURATION_SECONDS", "week"},
		{"negative max duration", "MAX_DURATION_SECONDS", "-1"},
		{"bad timeout", "SHUTDOWN_TIMEOUT", "soon"},
		{"bad cache size", "MAPBOX_CACHE_SIZE", "lots"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Setenv(c.key, c.val)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestLoad_KafkaEnabledNeedsBrokers(t *testing.T) {
	t.Setenv("KAFKA_ENABLED", "true")
	t.Setenv("KAFKA_BROKERS", " , ")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_MapboxEnabledNeedsToken(t *testing.T) {
	t.Setenv("MAPBOX_ENABLED", "true")

	_, err := Load()
	assert.Error(t, err)
}
