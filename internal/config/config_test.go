package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configKeys = []string{
	"CAMPUSLIFE_DATA_DIR",
	"TOKEN_SECRET",
	"REMEMBER_DAYS",
	"MAX_CONTENT_LEN",
	"MAX_IMAGES",
	"MAX_IMAGE_BYTES",
	"TRENDING_LIMIT",
}

func clearConfigEnv(t *testing.T) {
	for _, k := range configKeys {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearConfigEnv(t)

	cfg := Load()

	assert.Equal(t, "data", cfg.Storage.Dir)
	assert.Equal(t, "campuslife-dev-secret", cfg.Auth.TokenSecret)
	assert.Equal(t, 30, cfg.Auth.RememberDays)
	assert.Equal(t, 500, cfg.Feed.MaxContentLen)
	assert.Equal(t, 9, cfg.Feed.MaxImages)
	assert.Equal(t, 5*1024*1024, cfg.Feed.MaxImageBytes)
	assert.Equal(t, 4, cfg.Feed.TrendingLimit)
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("CAMPUSLIFE_DATA_DIR", "/tmp/campus-test")
	t.Setenv("TOKEN_SECRET", "prod-secret")
	t.Setenv("REMEMBER_DAYS", "7")
	t.Setenv("MAX_CONTENT_LEN", "280")
	t.Setenv("TRENDING_LIMIT", "10")

	cfg := Load()

	require.Equal(t, "/tmp/campus-test", cfg.Storage.Dir)
	assert.Equal(t, "prod-secret", cfg.Auth.TokenSecret)
	assert.Equal(t, 7, cfg.Auth.RememberDays)
	assert.Equal(t, 280, cfg.Feed.MaxContentLen)
	assert.Equal(t, 10, cfg.Feed.TrendingLimit)
}

func TestLoad_BadIntFallsBack(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("REMEMBER_DAYS", "soon")

	cfg := Load()
	assert.Equal(t, 30, cfg.Auth.RememberDays)
}
