package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/fortuna/dugout/internal/schedule"
	"github.com/fortuna/dugout/internal/statsapi"
)

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port string
}

// StatsAPIConfig holds stats service client configuration
type StatsAPIConfig struct {
	BaseURL        string
	RequestTimeout time.Duration
}

// RedisConfig holds the response cache and stream publisher connection.
// An empty URL disables both.
type RedisConfig struct {
	URL      string
	CacheTTL time.Duration
}

// ArchiveConfig holds the Postgres snapshot archive connection. An empty
// DSN disables the archive.
type ArchiveConfig struct {
	DSN string
}

// ScheduleConfig holds schedule presentation settings
type ScheduleConfig struct {
	Timezone string
	Order    schedule.Order
}

// WatchConfig holds the schedule watcher settings
type WatchConfig struct {
	Teams    []string
	Interval time.Duration
}

// Config holds all application configuration
type Config struct {
	Server   ServerConfig
	StatsAPI StatsAPIConfig
	Redis    RedisConfig
	Archive  ArchiveConfig
	Schedule ScheduleConfig
	Watch    WatchConfig
}

// LoadConfig loads configuration from environment variables. Malformed
// durations are reported as errors.
func LoadConfig() (*Config, error) {
	timeout, err := getDuration("REQUEST_TIMEOUT", statsapi.DefaultTimeout)
	if err != nil {
		return nil, err
	}
	ttl, err := getDuration("CACHE_TTL", 60*time.Second)
	if err != nil {
		return nil, err
	}
	interval, err := getDuration("WATCH_INTERVAL", 60*time.Second)
	if err != nil {
		return nil, err
	}

	return &Config{
		Server: ServerConfig{
			Port: getEnv("HTTP_PORT", "8080"),
		},
		StatsAPI: StatsAPIConfig{
			BaseURL:        strings.TrimRight(getEnv("STATS_API_URL", statsapi.DefaultBaseURL), "/"),
			RequestTimeout: timeout,
		},
		Redis: RedisConfig{
			URL:      lookupEnv("REDIS_URL", "redis://localhost:6379"),
			CacheTTL: ttl,
		},
		Archive: ArchiveConfig{
			DSN: os.Getenv("ARCHIVE_DSN"),
		},
		Schedule: ScheduleConfig{
			Timezone: getEnv("TIMEZONE", schedule.DefaultTimezone),
			Order:    schedule.ParseOrder(getEnv("SCHEDULE_ORDER", "asc")),
		},
		Watch: WatchConfig{
			Teams:    splitList(os.Getenv("WATCH_TEAMS")),
			Interval: interval,
		},
	}, nil
}

// Location loads the configured timezone
func (c ScheduleConfig) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("loading timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// lookupEnv is getEnv, except that a variable set to "" stays empty
func lookupEnv(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok {
		return strings.TrimSpace(value)
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("invalid %s %q: must be positive", key, value)
	}
	return d, nil
}

func splitList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
