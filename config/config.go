package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

const keyEnv = "ENV"
const envLocal = "local"

const (
	defaultPort             = "8080"
	defaultContentURLPrefix = "/docs"
	defaultWatchDelay       = 500 * time.Millisecond
	defaultLogLevel         = "info"
	defaultHistoryMaxRecord = 100
)

type Config struct {
	config *viper.Viper
}

func Load(env string) (*Config, error) {

	if len(env) == 0 {
		if env = os.Getenv(keyEnv); len(env) == 0 {
			env = envLocal
		}
	}

	configPath, err := getConfigPath(env)

	viperConfig := viper.New()
	if err == nil {
		viperConfig.SetConfigFile(configPath)
		if err := viperConfig.ReadInConfig(); err != nil {
			slog.Warn(fmt.Sprintf("error reading config file, %s", err))
		}
	}
	viperConfig.AutomaticEnv()

	cfg := &Config{
		config: viperConfig,
	}

	return cfg, nil
}

func (c *Config) GetPort() string {
	port := c.getString("PORT", "server.port")
	if len(port) == 0 {
		port = defaultPort
	}

	return port
}

func (c *Config) GetKVDBPath() string {
	return c.getString("KVDB_PATH", "database.kvdb_path")
}

// GetContentPath is the directory of Markdown pages, or a JSON document file,
// the index is seeded from. Empty means the built-in documents.
func (c *Config) GetContentPath() string {
	return c.getString("CONTENT_PATH", "content.path")
}

func (c *Config) GetContentURLPrefix() string {
	prefix := c.getString("CONTENT_URL_PREFIX", "content.url_prefix")
	if len(prefix) == 0 {
		prefix = defaultContentURLPrefix
	}

	return prefix
}

func (c *Config) GetContentWatch() bool {
	if c.config.IsSet("CONTENT_WATCH") {
		return c.config.GetBool("CONTENT_WATCH")
	}

	return c.config.GetBool("content.watch")
}

func (c *Config) GetContentWatchDelay() time.Duration {
	delay := c.config.GetDuration("CONTENT_WATCH_DELAY")
	if delay <= 0 {
		delay = c.config.GetDuration("content.watch_delay")
	}
	if delay <= 0 {
		delay = defaultWatchDelay
	}

	return delay
}

func (c *Config) GetLogLevel() string {
	level := c.getString("LOG_LEVEL", "log.level")
	if len(level) == 0 {
		level = defaultLogLevel
	}

	return level
}

// GetHistoryMaxRecords is how many rebuild records are kept.
func (c *Config) GetHistoryMaxRecords() int {
	maxRecords := c.config.GetInt("HISTORY_MAX_RECORDS")
	if maxRecords <= 0 {
		maxRecords = c.config.GetInt("history.max_records")
	}
	if maxRecords <= 0 {
		maxRecords = defaultHistoryMaxRecord
	}

	return maxRecords
}

// getString prefers the environment variable over the config file key.
func (c *Config) getString(envKey string, fileKey string) string {
	value := c.config.GetString(envKey)
	if len(value) == 0 {
		value = c.config.GetString(fileKey)
	}

	return value
}

func getProjectRoot() (string, error) {
	currentDir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get current working directory: %w", err)
	}

	for {
		configDir := filepath.Join(currentDir, "config")
		if info, err := os.Stat(configDir); err == nil && info.IsDir() {
			return currentDir, nil
		}

		parent := filepath.Dir(currentDir)

		if parent == currentDir {
			break
		}

		currentDir = parent
	}

	return "", fmt.Errorf("could not find project root (directory containing 'config' folder)")
}

func getConfigPath(env string) (string, error) {
	configFile := fmt.Sprintf("config.%s.yaml", env)

	projectRoot, err := getProjectRoot()
	if err != nil {
		slog.Warn("failed to find project root with config directory, will use environment variables instead", "err", err.Error())
		return "", fmt.Errorf("failed to find project root: %w", err)
	}
	configPath := filepath.Join(projectRoot, "config", configFile)
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		slog.Warn("failed to find config file within config directory, will use environment variables instead", "err", err.Error())
		return "", fmt.Errorf("config file does not exist: %s", configPath)
	}

	return configPath, nil
}
