package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for both services
type Config struct {
	Server    ServerConfig
	Trivia    TriviaConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Session   SessionConfig
	TMDB      TMDBConfig
	Admin     AdminConfig
	Logging   LoggingConfig
	Telemetry TelemetryConfig
}

// ServerConfig holds Board Service HTTP server configuration
type ServerConfig struct {
	Port int
	Host string
}

// TriviaConfig holds Trivia Feed Service HTTP server configuration
type TriviaConfig struct {
	Port int
	Host string
}

// DatabaseConfig holds database configuration.
// A postgres:// URL selects the postgres driver; anything else is
// treated as a sqlite file path.
type DatabaseConfig struct {
	URL string
}

// RedisConfig holds Redis configuration for the session store
type RedisConfig struct {
	URL     string
	Enabled bool
}

// SessionConfig holds session cookie configuration
type SessionConfig struct {
	Secret string
	TTL    time.Duration
}

// TMDBConfig holds external movie catalog configuration
type TMDBConfig struct {
	BaseURL     string
	APIKey      string
	KeyFile     string
	WatchRegion string
}

// AdminConfig holds operator-only surface configuration
type AdminConfig struct {
	Enabled bool
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string
	Format string // "json" or "text"
}

// TelemetryConfig holds observability configuration
type TelemetryConfig struct {
	Enabled           bool
	JaegerURL         string
	PrometheusEnabled bool
	PrometheusPort    int
	ServiceName       string
}

// Load loads configuration from environment variables and config file
func Load() (*Config, error) {
	// Set defaults
	setDefaults()

	// Load from environment
	viper.SetEnvPrefix("SHOW")
	viper.AutomaticEnv()

	// Load from config file if exists
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("$HOME/.showboard")
	viper.AddConfigPath("/etc/showboard")

	if err := viper.ReadInConfig(); err != nil {
		// Config file not found; this is OK if we have env vars
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: getInt("port", 5001),
			Host: getString("http_server_host", "0.0.0.0"),
		},
		Trivia: TriviaConfig{
			Port: getInt("trivia_port", 5002),
			Host: getString("http_server_host", "0.0.0.0"),
		},
		Database: DatabaseConfig{
			URL: getString("database_url", "showboard.db"),
		},
		Redis: RedisConfig{
			URL:     getString("redis_url", ""),
			Enabled: getString("redis_url", "") != "",
		},
		Session: SessionConfig{
			Secret: getString("secret_key", "dev-secret-key-change-in-production"),
			TTL:    GetDuration("session_ttl", 7*24*time.Hour),
		},
		TMDB: TMDBConfig{
			BaseURL:     getString("tmdb_base_url", "https://api.themoviedb.org/3"),
			APIKey:      getString("tmdb_api_key", ""),
			KeyFile:     getString("tmdb_key_file", "tmdb_key.txt"),
			WatchRegion: getString("tmdb_watch_region", "US"),
		},
		Admin: AdminConfig{
			Enabled: getBool("admin_enabled", false),
		},
		Logging: LoggingConfig{
			Level:  getString("log_level", "INFO"),
			Format: getString("log_format", "json"),
		},
		Telemetry: TelemetryConfig{
			Enabled:           getBool("telemetry_enabled", false),
			JaegerURL:         getString("jaeger_url", ""),
			PrometheusEnabled: getBool("prometheus_enabled", false),
			PrometheusPort:    getInt("prometheus_port", 9090),
			ServiceName:       getString("service_name", "showboard"),
		},
	}

	// The movie catalog credential lives in a local key file when present;
	// the environment variable is the fallback.
	if key, err := readKeyFile(cfg.TMDB.KeyFile); err == nil && key != "" {
		cfg.TMDB.APIKey = key
	}

	// Validate required fields
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func setDefaults() {
	viper.SetDefault("port", 5001)
	viper.SetDefault("trivia_port", 5002)
	viper.SetDefault("http_server_host", "0.0.0.0")
	viper.SetDefault("database_url", "showboard.db")
	viper.SetDefault("secret_key", "dev-secret-key-change-in-production")
	viper.SetDefault("session_ttl", 7*24*time.Hour)
	viper.SetDefault("tmdb_base_url", "https://api.themoviedb.org/3")
	viper.SetDefault("tmdb_key_file", "tmdb_key.txt")
	viper.SetDefault("tmdb_watch_region", "US")
	viper.SetDefault("log_level", "INFO")
	viper.SetDefault("log_format", "json")
	viper.SetDefault("admin_enabled", false)
	viper.SetDefault("telemetry_enabled", false)
	viper.SetDefault("prometheus_port", 9090)
	viper.SetDefault("service_name", "showboard")
}

func readKeyFile(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

func getString(key, defaultValue string) string {
	if viper.IsSet(key) {
		return viper.GetString(key)
	}
	// Also check environment variable directly
	if val := os.Getenv("SHOW_" + toEnvKey(key)); val != "" {
		return val
	}
	return defaultValue
}

func getInt(key string, defaultValue int) int {
	if viper.IsSet(key) {
		return viper.GetInt(key)
	}
	if val := os.Getenv("SHOW_" + toEnvKey(key)); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultValue
}

func getBool(key string, defaultValue bool) bool {
	if viper.IsSet(key) {
		return viper.GetBool(key)
	}
	if val := os.Getenv("SHOW_" + toEnvKey(key)); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return defaultValue
}

func toEnvKey(key string) string {
	return strings.ToUpper(strings.ReplaceAll(key, "-", "_"))
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.URL == "" {
		return fmt.Errorf("database_url is required")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535")
	}
	if c.Trivia.Port <= 0 || c.Trivia.Port > 65535 {
		return fmt.Errorf("trivia_port must be between 1 and 65535")
	}
	if c.Session.Secret == "" {
		return fmt.Errorf("secret_key is required")
	}
	if c.TMDB.BaseURL == "" {
		return fmt.Errorf("tmdb_base_url is required")
	}
	return nil
}

// GetDuration returns a duration from config key, with default
func GetDuration(key string, defaultValue time.Duration) time.Duration {
	if viper.IsSet(key) {
		return viper.GetDuration(key)
	}
	return defaultValue
}
