package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// minPollInterval is the floor for POLL_INTERVAL. api.weather.gov rate-limits
// aggressively, so the watcher refuses to poll faster than this.
const minPollInterval = 30 * time.Second

// Config holds all service settings, populated from environment variables.
type Config struct {
	// UserAgentID identifies the operator to api.weather.gov, usually an
	// email address or website.
	UserAgentID string
	APIHost     string

	// Alert feed filters. At most one of Area, Zone, and Point may be set.
	AlertArea     []string
	AlertZone     []string
	AlertPoint    string
	AlertSeverity string

	PollInterval   time.Duration
	RequestTimeout time.Duration

	KafkaBrokers []string
	KafkaTopic   string

	SeenCacheSize int

	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	pollInterval, err := parseDuration("POLL_INTERVAL", 2*time.Minute)
	if err != nil {
		return nil, err
	}
	if pollInterval < minPollInterval {
		return nil, fmt.Errorf("POLL_INTERVAL must be at least %s", minPollInterval)
	}

	requestTimeout, err := parseDuration("REQUEST_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}

	shutdownTimeout, err := parseDuration("SHUTDOWN_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		UserAgentID: os.Getenv("NWS_USERAGENT_ID"),
		APIHost:     envOrDefault("NWS_API_HOST", "api.weather.gov"),

		AlertArea:     splitCSV(os.Getenv("ALERT_AREA")),
		AlertZone:     splitCSV(os.Getenv("ALERT_ZONE")),
		AlertPoint:    os.Getenv("ALERT_POINT"),
		AlertSeverity: os.Getenv("ALERT_SEVERITY"),

		PollInterval:   pollInterval,
		RequestTimeout: requestTimeout,

		KafkaBrokers: splitCSV(envOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaTopic:   envOrDefault("KAFKA_TOPIC", "nws-alerts"),

		SeenCacheSize: parseSeenCacheSize(),

		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,
	}

	if cfg.UserAgentID == "" {
		return nil, errors.New("NWS_USERAGENT_ID is required")
	}
	if len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("KAFKA_BROKERS is required")
	}
	if cfg.KafkaTopic == "" {
		return nil, errors.New("KAFKA_TOPIC is required")
	}

	filters := 0
	if len(cfg.AlertArea) > 0 {
		filters++
	}
	if len(cfg.AlertZone) > 0 {
		filters++
	}
	if cfg.AlertPoint != "" {
		filters++
	}
	if filters > 1 {
		return nil, errors.New("at most one of ALERT_AREA, ALERT_ZONE, and ALERT_POINT may be set")
	}

	return cfg, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseDuration(key string, def time.Duration) (time.Duration, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s: %q", key, s)
	}
	return d, nil
}

func splitCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func parseSeenCacheSize() int {
	if s := os.Getenv("SEEN_CACHE_SIZE"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			return n
		}
	}
	return 4096
}
