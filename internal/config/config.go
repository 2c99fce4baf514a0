package config

import (
	"os"
	"strconv"
)

type Config struct {
	Storage StorageConfig
	Auth    AuthConfig
	Feed    FeedConfig
}

// StorageConfig locates the data directory holding the JSON documents.
type StorageConfig struct {
	Dir string
}

// AuthConfig configures the remember-me token.
type AuthConfig struct {
	TokenSecret  string
	RememberDays int
}

// FeedConfig carries the publishing limits and trending size.
type FeedConfig struct {
	MaxContentLen int
	MaxImages     int
	MaxImageBytes int
	TrendingLimit int
}

// Load reads configuration from the environment with defaults matching
// the original application's limits. Callers run godotenv.Load first.
func Load() Config {
	return Config{
		Storage: StorageConfig{
			Dir: getString("CAMPUSLIFE_DATA_DIR", "data"),
		},
		Auth: AuthConfig{
			TokenSecret:  getString("TOKEN_SECRET", "campuslife-dev-secret"),
			RememberDays: getInt("REMEMBER_DAYS", 30),
		},
		Feed: FeedConfig{
			MaxContentLen: getInt("MAX_CONTENT_LEN", 500),
			MaxImages:     getInt("MAX_IMAGES", 9),
			MaxImageBytes: getInt("MAX_IMAGE_BYTES", 5*1024*1024),
			TrendingLimit: getInt("TRENDING_LIMIT", 4),
		},
	}
}

func getString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
