package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"resumehub/internal/logger"

	"github.com/spf13/viper"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"

	ModeLive    = "live"
	ModeFixture = "fixture"
)

type Config struct {
	GeneralEnvironment string `mapstructure:"GENERAL_ENVIRONMENT"`
	GeneralLogLevel    string `mapstructure:"GENERAL_LOG_LEVEL"`
	ServerPort         int    `mapstructure:"SERVER_PORT"`

	DatabaseDriver       string `mapstructure:"DATABASE_DRIVER"`
	DatabaseDbPath       string `mapstructure:"DATABASE_DB_PATH"`
	DatabaseHost         string `mapstructure:"DATABASE_HOST"`
	DatabasePort         int    `mapstructure:"DATABASE_PORT"`
	DatabaseUser         string `mapstructure:"DATABASE_USER"`
	DatabasePassword     string `mapstructure:"DATABASE_PASSWORD"`
	DatabaseName         string `mapstructure:"DATABASE_NAME"`
	DatabaseCacheAddress string `mapstructure:"DATABASE_CACHE_ADDRESS"`
	DatabaseCachePort    int    `mapstructure:"DATABASE_CACHE_PORT"`

	AdapterTimeoutSeconds int    `mapstructure:"ADAPTER_TIMEOUT_SECONDS"`
	AdapterGitHubBaseURL  string `mapstructure:"ADAPTER_GITHUB_BASE_URL"`
	AdapterDevfolioURL    string `mapstructure:"ADAPTER_DEVFOLIO_BASE_URL"`

	// Source used by single-platform syncs.
	SyncModeGitHub   string `mapstructure:"SYNC_MODE_GITHUB"`
	SyncModeCoursera string `mapstructure:"SYNC_MODE_COURSERA"`
	SyncModeDevfolio string `mapstructure:"SYNC_MODE_DEVFOLIO"`

	// Source used by the sync-all path.
	SyncAllModeGitHub   string `mapstructure:"SYNC_ALL_MODE_GITHUB"`
	SyncAllModeCoursera string `mapstructure:"SYNC_ALL_MODE_COURSERA"`
	SyncAllModeDevfolio string `mapstructure:"SYNC_ALL_MODE_DEVFOLIO"`
}

var defaults = map[string]any{
	"GENERAL_ENVIRONMENT":       "development",
	"GENERAL_LOG_LEVEL":         "info",
	"SERVER_PORT":               8280,
	"DATABASE_DRIVER":           DriverSQLite,
	"DATABASE_DB_PATH":          "data/resumehub.db",
	"DATABASE_HOST":             "localhost",
	"DATABASE_PORT":             5432,
	"DATABASE_USER":             "",
	"DATABASE_PASSWORD":         "",
	"DATABASE_NAME":             "resumehub",
	"DATABASE_CACHE_ADDRESS":    "",
	"DATABASE_CACHE_PORT":       6379,
	"ADAPTER_TIMEOUT_SECONDS":   15,
	"ADAPTER_GITHUB_BASE_URL":   "https://api.github.com",
	"ADAPTER_DEVFOLIO_BASE_URL": "https://api.devfolio.co",
	"SYNC_MODE_GITHUB":          ModeLive,
	"SYNC_MODE_COURSERA":        ModeLive,
	"SYNC_MODE_DEVFOLIO":        ModeLive,
	"SYNC_ALL_MODE_GITHUB":      ModeFixture,
	"SYNC_ALL_MODE_COURSERA":    ModeFixture,
	"SYNC_ALL_MODE_DEVFOLIO":    ModeFixture,
}

// InitConfig reads defaults, an optional config file from the working
// directory and RESUMEHUB_-prefixed environment variables, in that order of
// precedence (lowest first).
func InitConfig() (Config, error) {
	log := logger.New("config").Function("InitConfig")

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetConfigName("config")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, log.Err("failed to read config file", err)
		}
	}

	v.SetEnvPrefix("RESUMEHUB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return Config{}, log.Err("failed to unmarshal config", err)
	}

	if err := config.Validate(); err != nil {
		return Config{}, log.Err("invalid config", err)
	}

	return config, nil
}

func (c Config) Validate() error {
	switch c.DatabaseDriver {
	case DriverSQLite:
		if c.DatabaseDbPath == "" {
			return errors.New("database path is empty")
		}
	case DriverPostgres:
		if c.DatabaseHost == "" || c.DatabaseName == "" {
			return errors.New("postgres host and name are required")
		}
	default:
		return fmt.Errorf("unsupported database driver %q", c.DatabaseDriver)
	}

	if c.AdapterTimeoutSeconds <= 0 {
		return errors.New("adapter timeout must be positive")
	}

	modes := map[string]string{
		"SYNC_MODE_GITHUB":       c.SyncModeGitHub,
		"SYNC_MODE_COURSERA":     c.SyncModeCoursera,
		"SYNC_MODE_DEVFOLIO":     c.SyncModeDevfolio,
		"SYNC_ALL_MODE_GITHUB":   c.SyncAllModeGitHub,
		"SYNC_ALL_MODE_COURSERA": c.SyncAllModeCoursera,
		"SYNC_ALL_MODE_DEVFOLIO": c.SyncAllModeDevfolio,
	}
	for key, mode := range modes {
		if mode != ModeLive && mode != ModeFixture {
			return fmt.Errorf("%s must be %q or %q, got %q", key, ModeLive, ModeFixture, mode)
		}
	}

	return nil
}

func (c Config) IsProduction() bool {
	return strings.EqualFold(c.GeneralEnvironment, "production")
}

func (c Config) AdapterTimeout() time.Duration {
	return time.Duration(c.AdapterTimeoutSeconds) * time.Second
}

func (c Config) PostgresDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=disable TimeZone=UTC",
		c.DatabaseHost,
		c.DatabasePort,
		c.DatabaseUser,
		c.DatabasePassword,
		c.DatabaseName,
	)
}
