package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	NEOCSVPath  string
	CADJSONPath string

	KafkaBrokers   []string
	KafkaSinkTopic string
	PublishEnabled bool

	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	PublishBatchSize int

	// JPL SSD feed refresh configuration.
	SSDRefreshEnabled bool
	SSDTimeout        time.Duration
}

// Load reads configuration from environment variables, applying defaults
// where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := parseDurationEnv("SHUTDOWN_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}

	ssdTimeout, err := parseDurationEnv("SSD_TIMEOUT", "30s")
	if err != nil {
		return nil, err
	}

	batchSize, err := parseBatchSize()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		NEOCSVPath:  envOrDefault("NEO_CSV_PATH", "data/neos.csv"),
		CADJSONPath: envOrDefault("CAD_JSON_PATH", "data/cad.json"),

		KafkaBrokers:   parseBrokers(envOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaSinkTopic: envOrDefault("KAFKA_SINK_TOPIC", "neo-close-approaches"),
		PublishEnabled: os.Getenv("PUBLISH_ENABLED") == "true",

		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		PublishBatchSize: batchSize,

		SSDRefreshEnabled: os.Getenv("SSD_REFRESH_ENABLED") == "true",
		SSDTimeout:        ssdTimeout,
	}

	if cfg.NEOCSVPath == "" {
		return nil, errors.New("NEO_CSV_PATH is required")
	}
	if cfg.CADJSONPath == "" {
		return nil, errors.New("CAD_JSON_PATH is required")
	}
	if cfg.PublishEnabled {
		if len(cfg.KafkaBrokers) == 0 {
			return nil, errors.New("PUBLISH_ENABLED is true but KAFKA_BROKERS is not set")
		}
		if cfg.KafkaSinkTopic == "" {
			return nil, errors.New("PUBLISH_ENABLED is true but KAFKA_SINK_TOPIC is not set")
		}
	}

	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseBrokers(raw string) []string {
	parts := strings.Split(raw, ",")
	brokers := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			brokers = append(brokers, p)
		}
	}
	return brokers
}

func parseDurationEnv(key, fallback string) (time.Duration, error) {
	d, err := time.ParseDuration(envOrDefault(key, fallback))
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return d, nil
}

func parseBatchSize() (int, error) {
	s := envOrDefault("PUBLISH_BATCH_SIZE", "500")
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 || n > 10000 {
		return 0, errors.New("invalid PUBLISH_BATCH_SIZE: must be an integer between 1 and 10000")
	}
	return n, nil
}
