package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "data/neos.csv", cfg.NEOCSVPath)
	assert.Equal(t, "data/cad.json", cfg.CADJSONPath)
	assert.Equal(t, []string{"localhost:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "neo-close-approaches", cfg.KafkaSinkTopic)
	assert.False(t, cfg.PublishEnabled)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, 500, cfg.PublishBatchSize)
	assert.False(t, cfg.SSDRefreshEnabled)
	assert.Equal(t, 30*time.Second, cfg.SSDTimeout)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("NEO_CSV_PATH", "/data/objects.csv")
	t.Setenv("CAD_JSON_PATH", "/data/approaches.json")
	t.Setenv("KAFKA_BROKERS", "b1:9092, b2:9092")
	t.Setenv("KAFKA_SINK_TOPIC", "approaches")
	t.Setenv("PUBLISH_ENABLED", "true")
	t.Setenv("PUBLISH_BATCH_SIZE", "100")
	t.Setenv("HTTP_ADDR", ":9999")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("SHUTDOWN_TIMEOUT", "5s")
	t.Setenv("SSD_REFRESH_ENABLED", "true")
	t.Setenv("SSD_TIMEOUT", "1m")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/data/objects.csv", cfg.NEOCSVPath)
	assert.Equal(t, "/data/approaches.json", cfg.CADJSONPath)
	assert.Equal(t, []string{"b1:9092", "b2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "approaches", cfg.KafkaSinkTopic)
	assert.True(t, cfg.PublishEnabled)
	assert.Equal(t, 100, cfg.PublishBatchSize)
	assert.Equal(t, ":9999", cfg.HTTPAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 5*time.Second, cfg.ShutdownTimeout)
	assert.True(t, cfg.SSDRefreshEnabled)
	assert.Equal(t, time.Minute, cfg.SSDTimeout)
}

func TestLoadPublishRequiresBrokers(t *testing.T) {
	t.Setenv("PUBLISH_ENABLED", "true")
	t.Setenv("KAFKA_BROKERS", " , ")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "KAFKA_BROKERS")
}

func TestLoadInvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "bad shutdown timeout", key: "SHUTDOWN_TIMEOUT", value: "soon"},
		{name: "negative shutdown timeout", key: "SHUTDOWN_TIMEOUT", value: "-5s"},
		{name: "bad ssd timeout", key: "SSD_TIMEOUT", value: "never"},
		{name: "non-numeric batch size", key: "PUBLISH_BATCH_SIZE", value: "lots"},
		{name: "zero batch size", key: "PUBLISH_BATCH_SIZE", value: "0"},
		{name: "oversized batch size", key: "PUBLISH_BATCH_SIZE", value: "20000"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestParseBrokers(t *testing.T) {
	assert.Equal(t, []string{"a:1", "b:2"}, parseBrokers("a:1,b:2"))
	assert.Equal(t, []string{"a:1"}, parseBrokers(" a:1 , "))
	assert.Empty(t, parseBrokers(""))
}
