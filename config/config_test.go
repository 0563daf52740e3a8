package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadTestConfig(t *testing.T) {
	assert := require.New(t)

	cfg, err := Load("test")
	assert.NoError(err)

	assert.Equal("8081", cfg.GetPort())
	assert.Equal(".docsearch_test/kvdb.db", cfg.GetKVDBPath())
	assert.Equal("", cfg.GetContentPath())
	assert.Equal("/docs", cfg.GetContentURLPrefix())
	assert.False(cfg.GetContentWatch())
	assert.Equal(50*time.Millisecond, cfg.GetContentWatchDelay())
	assert.Equal("debug", cfg.GetLogLevel())
	assert.Equal(20, cfg.GetHistoryMaxRecords())
}

func TestEnvironmentOverridesFile(t *testing.T) {
	assert := require.New(t)
	t.Setenv("PORT", "9999")
	t.Setenv("CONTENT_PATH", "/srv/docs")
	t.Setenv("CONTENT_WATCH", "true")
	t.Setenv("CONTENT_WATCH_DELAY", "2s")
	t.Setenv("HISTORY_MAX_RECORDS", "3")

	cfg, err := Load("test")
	assert.NoError(err)

	assert.Equal("9999", cfg.GetPort())
	assert.Equal("/srv/docs", cfg.GetContentPath())
	assert.True(cfg.GetContentWatch())
	assert.Equal(2*time.Second, cfg.GetContentWatchDelay())
	assert.Equal(3, cfg.GetHistoryMaxRecords())
}

func TestMissingConfigFileFallsBackToDefaults(t *testing.T) {
	assert := require.New(t)

	cfg, err := Load("doesnotexist")
	assert.NoError(err)

	assert.Equal(defaultPort, cfg.GetPort())
	assert.Equal(defaultContentURLPrefix, cfg.GetContentURLPrefix())
	assert.Equal(defaultWatchDelay, cfg.GetContentWatchDelay())
	assert.Equal(defaultLogLevel, cfg.GetLogLevel())
	assert.Equal(defaultHistoryMaxRecord, cfg.GetHistoryMaxRecords())
}
