package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StorageMySQL  = "mysql"
	StorageMemory = "memory"

	AuthModeHS256 = "hs256"
	AuthModeJWKS  = "jwks"
)

type Config struct {
	AppPort        string
	StorageDriver  string
	DbHost         string
	DbPort         string
	DbUser         string
	DbPassword     string
	DbName         string
	DbParams       string
	TrustedProxies []string

	DbMaxOpenConns    int
	DbMaxIdleConns    int
	DbConnMaxLifetime time.Duration

	RedisURL       string
	ConfigCacheTTL time.Duration

	AuthMode         string
	AuthSharedSecret string
	AuthJWKSURL      string
	AuthAudience     string
	AuthIssuer       string

	OrderingGap     float64
	OrderingSpacing float64
	OrderingMinGap  float64

	DependencyTimeout time.Duration
	RequestTimeout    time.Duration
	FanOutConcurrency int
	PollInterval      time.Duration
}

func LoadConfig() *Config {
	_ = godotenv.Load(".env")

	return &Config{
		AppPort:        getEnv("APP_PORT", "8080"),
		StorageDriver:  strings.ToLower(getEnv("STORAGE_DRIVER", StorageMySQL)),
		DbHost:         getEnv("MYSQL_HOST", "db"),
		DbPort:         getEnv("MYSQL_PORT", "3306"),
		DbUser:         getEnv("MYSQL_USER", "taskboard"),
		DbPassword:     getEnv("MYSQL_PASSWORD", "taskboard"),
		DbName:         getEnv("MYSQL_DATABASE", "taskboard"),
		DbParams:       getEnv("MYSQL_PARAMS", "parseTime=true&multiStatements=true"),
		TrustedProxies: parseTrustedProxies(os.Getenv("TRUSTED_PROXIES")),

		DbMaxOpenConns:    getInt("MYSQL_MAX_OPEN_CONNS", 25),
		DbMaxIdleConns:    getInt("MYSQL_MAX_IDLE_CONNS", 5),
		DbConnMaxLifetime: getDuration("MYSQL_CONN_MAX_LIFETIME", 5*time.Minute),

		RedisURL:       os.Getenv("REDIS_URL"),
		ConfigCacheTTL: getDuration("CONFIG_CACHE_TTL", 5*time.Minute),

		AuthMode:         strings.ToLower(getEnv("AUTH_MODE", AuthModeHS256)),
		AuthSharedSecret: os.Getenv("AUTH_SHARED_SECRET"),
		AuthJWKSURL:      os.Getenv("AUTH_JWKS_URL"),
		AuthAudience:     os.Getenv("AUTH_AUDIENCE"),
		AuthIssuer:       os.Getenv("AUTH_ISSUER"),

		OrderingGap:     getFloat("ORDERING_GAP", 1000),
		OrderingSpacing: getFloat("ORDERING_SPACING", 1000),
		OrderingMinGap:  getFloat("ORDERING_MIN_GAP", 1e-6),

		DependencyTimeout: getDuration("DEPENDENCY_TIMEOUT", 2*time.Second),
		RequestTimeout:    getDuration("REQUEST_TIMEOUT", 10*time.Second),
		FanOutConcurrency: getInt("FANOUT_CONCURRENCY", 8),
		PollInterval:      getDuration("POLL_INTERVAL", 30*time.Second),
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	d, err := time.ParseDuration(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return d
}

func getFloat(key string, fallback float64) float64 {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil || f <= 0 {
		return fallback
	}
	return f
}

func getInt(key string, fallback int) int {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

func parseTrustedProxies(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	proxies := make([]string, 0, len(parts))
	for _, part := range parts {
		proxy := strings.TrimSpace(part)
		if proxy == "" {
			continue
		}
		proxies = append(proxies, proxy)
	}

	if len(proxies) == 0 {
		return nil
	}

	return proxies
}
