package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all configuration for the aggregation service.
type Config struct {
	Server        ServerConfig
	Providers     ProvidersConfig
	Cache         CacheConfig
	Redis         RedisConfig
	Elasticsearch ESConfig
}

type ServerConfig struct {
	Port string
	// SweepSpec is the cron spec for the cache/rate-limit sweeps
	SweepSpec string
}

type ProvidersConfig struct {
	// HTTPTimeout bounds every outbound provider call
	HTTPTimeout time.Duration

	Jooble    JoobleConfig
	Arbeitnow EndpointConfig
	Remotive  EndpointConfig
	JSearch   JSearchConfig
}

type JoobleConfig struct {
	BaseURL    string
	APIKey     string
	DailyLimit int
}

type JSearchConfig struct {
	BaseURL      string
	APIKey       string
	MonthlyLimit int
}

type EndpointConfig struct {
	BaseURL string
}

type CacheConfig struct {
	TTL        time.Duration
	MaxEntries int
}

type RedisConfig struct {
	// Addr empty disables the learned career-page store
	Addr     string
	Password string
	DB       int
}

type ESConfig struct {
	// URL empty disables the analytics indexer
	URL   string
	Index string
}

// Load creates a Config from environment variables with defaults.
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:      getEnv("PORT", "8080"),
			SweepSpec: getEnv("SWEEP_SPEC", "@hourly"),
		},
		Providers: ProvidersConfig{
			HTTPTimeout: time.Duration(getEnvInt("PROVIDER_TIMEOUT_MS", 10000)) * time.Millisecond,
			Jooble: JoobleConfig{
				BaseURL:    getEnv("JOOBLE_BASE_URL", "https://jooble.org/api"),
				APIKey:     getEnv("JOOBLE_API_KEY", ""),
				DailyLimit: getEnvInt("JOOBLE_DAILY_LIMIT", 500),
			},
			Arbeitnow: EndpointConfig{
				BaseURL: getEnv("ARBEITNOW_BASE_URL", "https://www.arbeitnow.com/api/job-board-api"),
			},
			Remotive: EndpointConfig{
				BaseURL: getEnv("REMOTIVE_BASE_URL", "https://remotive.com/api/remote-jobs"),
			},
			JSearch: JSearchConfig{
				BaseURL:      getEnv("JSEARCH_BASE_URL", ""),
				APIKey:       getEnv("JSEARCH_API_KEY", ""),
				MonthlyLimit: getEnvInt("JSEARCH_MONTHLY_LIMIT", 50),
			},
		},
		Cache: CacheConfig{
			TTL:        time.Duration(getEnvInt("CACHE_TTL_SECONDS", 1800)) * time.Second,
			MaxEntries: getEnvInt("CACHE_MAX_ENTRIES", 100),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Elasticsearch: ESConfig{
			URL:   getEnv("ELASTICSEARCH_URL", ""),
			Index: getEnv("ELASTICSEARCH_INDEX", "job_searches"),
		},
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}
