package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/viper"

	"github.com/dentassist/dentsync/internal/snapshot"
)

type ServerConfig struct {
	Port           int           `mapstructure:"port"`
	ReadTimeout    time.Duration `mapstructure:"read_timeout"`
	WriteTimeout   time.Duration `mapstructure:"write_timeout"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
}

// SnapshotConfig selects the persistence backend. All backends store the same
// single-blob layout, so switching is a config change only.
type SnapshotConfig struct {
	Backend  string                  `mapstructure:"backend"` // file, redis, postgres, memory
	Path     string                  `mapstructure:"path"`
	RedisURL string                  `mapstructure:"redis_url"`
	Postgres snapshot.PostgresConfig `mapstructure:"postgres"`
	Backup   BackupConfig            `mapstructure:"backup"`
}

type BackupConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Dir      string        `mapstructure:"dir"`
	Interval time.Duration `mapstructure:"interval"`
	Keep     int           `mapstructure:"keep"`
}

type JWTConfig struct {
	Secret      string `mapstructure:"secret"`
	ExpiryHours int    `mapstructure:"expiry_hours"`
}

// AdminConfig is the single operator credential; the password is stored as a
// bcrypt hash, never plaintext.
type AdminConfig struct {
	Username     string `mapstructure:"username"`
	PasswordHash string `mapstructure:"password_hash"`
}

// AssistantConfig points at the hosted text-generation API. An empty APIKey
// means the assistant is not configured; every assistant call path surfaces
// that before attempting a request.
type AssistantConfig struct {
	APIKey  string `mapstructure:"api_key"`
	BaseURL string `mapstructure:"base_url"`
	Model   string `mapstructure:"model"`
}

type SMTPConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from"`
}

type RateLimitConfig struct {
	Enabled           bool    `mapstructure:"enabled"`
	RequestsPerSecond float64 `mapstructure:"requests_per_second"`
	Burst             int     `mapstructure:"burst"`
}

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Snapshot  SnapshotConfig  `mapstructure:"snapshot"`
	JWT       JWTConfig       `mapstructure:"jwt"`
	Admin     AdminConfig     `mapstructure:"admin"`
	Assistant AssistantConfig `mapstructure:"assistant"`
	SMTP      SMTPConfig      `mapstructure:"smtp"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
}

// Secrets are the values that must never live in the config file; they
// overlay the file via environment variables.
type Secrets struct {
	JWTSecret        string `envconfig:"JWT_SECRET"`
	AssistantAPIKey  string `envconfig:"ASSISTANT_API_KEY"`
	SMTPPassword     string `envconfig:"SMTP_PASSWORD"`
	PostgresPassword string `envconfig:"POSTGRES_PASSWORD"`
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", 15*time.Second)
	viper.SetDefault("server.write_timeout", 15*time.Second)
	viper.SetDefault("server.request_timeout", 30*time.Second)
	viper.SetDefault("snapshot.backend", "file")
	viper.SetDefault("snapshot.path", "data/state.json")
	viper.SetDefault("snapshot.backup.interval", time.Hour)
	viper.SetDefault("snapshot.backup.keep", 24)
	viper.SetDefault("jwt.expiry_hours", 12)
	viper.SetDefault("assistant.model", "gpt-4o-mini")
	viper.SetDefault("rate_limit.enabled", true)
	viper.SetDefault("rate_limit.requests_per_second", 50)
	viper.SetDefault("rate_limit.burst", 100)

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	var secrets Secrets
	if err := envconfig.Process("dentsync", &secrets); err != nil {
		return nil, fmt.Errorf("failed to read secrets from env: %w", err)
	}
	if secrets.JWTSecret != "" {
		config.JWT.Secret = secrets.JWTSecret
	}
	if secrets.AssistantAPIKey != "" {
		config.Assistant.APIKey = secrets.AssistantAPIKey
	}
	if secrets.SMTPPassword != "" {
		config.SMTP.Password = secrets.SMTPPassword
	}
	if secrets.PostgresPassword != "" {
		config.Snapshot.Postgres.Password = secrets.PostgresPassword
	}

	if config.JWT.Secret == "" {
		return nil, fmt.Errorf("jwt secret is required")
	}

	return &config, nil
}
