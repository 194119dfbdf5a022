package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port            string `yaml:"port" env:"SERVER_PORT"`
	Mode            string `yaml:"mode" env:"SERVER_MODE"`
	BaseURL         string `yaml:"base_url" env:"SERVER_BASE_URL"`
	ShutdownTimeout string `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT"`
}

// DatabaseConfig holds PostgreSQL settings
type DatabaseConfig struct {
	Host            string `yaml:"host" env:"DB_HOST"`
	Port            string `yaml:"port" env:"DB_PORT"`
	User            string `yaml:"user" env:"DB_USER"`
	Password        string `yaml:"password" env:"DB_PASSWORD"`
	DBName          string `yaml:"dbname" env:"DB_NAME"`
	SSLMode         string `yaml:"sslmode" env:"DB_SSLMODE"`
	MaxIdleConns    int    `yaml:"max_idle_conns" env:"DB_MAX_IDLE_CONNS"`
	MaxOpenConns    int    `yaml:"max_open_conns" env:"DB_MAX_OPEN_CONNS"`
	ConnMaxLifetime string `yaml:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME"`
	MigrationsDir   string `yaml:"migrations_dir" env:"DB_MIGRATIONS_DIR"`
}

// JWTConfig holds token settings
type JWTConfig struct {
	Secret                 string `yaml:"secret" env:"JWT_SECRET"`
	AccessTokenExpiration  string `yaml:"access_token_expiration" env:"JWT_ACCESS_TOKEN_EXPIRATION"`
	RefreshTokenExpiration string `yaml:"refresh_token_expiration" env:"JWT_REFRESH_TOKEN_EXPIRATION"`
	Issuer                 string `yaml:"issuer" env:"JWT_ISSUER"`
}

// LoggingConfig holds logger settings
type LoggingConfig struct {
	Level  string `yaml:"level" env:"LOG_LEVEL"`
	Format string `yaml:"format" env:"LOG_FORMAT"` // json or pretty
}

// StorageConfig holds uploaded file settings
type StorageConfig struct {
	Path          string `yaml:"path" env:"STORAGE_PATH"`
	BaseURL       string `yaml:"base_url" env:"STORAGE_BASE_URL"`
	MaxUploadSize int64  `yaml:"max_upload_size" env:"STORAGE_MAX_UPLOAD_SIZE"` // bytes
}

// SMTPConfig holds outgoing mail settings
type SMTPConfig struct {
	Host      string `yaml:"host" env:"SMTP_HOST"`
	Port      int    `yaml:"port" env:"SMTP_PORT"`
	Username  string `yaml:"username" env:"SMTP_USERNAME"`
	Password  string `yaml:"password" env:"SMTP_PASSWORD"`
	FromName  string `yaml:"from_name" env:"SMTP_FROM_NAME"`
	FromEmail string `yaml:"from_email" env:"SMTP_FROM_EMAIL"`
	UseTLS    bool   `yaml:"use_tls" env:"SMTP_USE_TLS"`
}

// CORSConfig holds allowed browser origins
type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins" env:"CORS_ALLOWED_ORIGINS" envSeparator:","`
}

// SubmissionConfig holds paper submission limits
type SubmissionConfig struct {
	MaxPages int `yaml:"max_pages" env:"SUBMISSION_MAX_PAGES"`
}

// SeedConfig holds the bootstrap administrator account
type SeedConfig struct {
	AdminEmail    string `yaml:"admin_email" env:"SEED_ADMIN_EMAIL"`
	AdminPassword string `yaml:"admin_password" env:"SEED_ADMIN_PASSWORD"`
}

// Config structure represents the application configuration
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Database   DatabaseConfig   `yaml:"database"`
	JWT        JWTConfig        `yaml:"jwt"`
	Logging    LoggingConfig    `yaml:"logging"`
	Storage    StorageConfig    `yaml:"storage"`
	SMTP       SMTPConfig       `yaml:"smtp"`
	CORS       CORSConfig       `yaml:"cors"`
	Submission SubmissionConfig `yaml:"submission"`
	Seed       SeedConfig       `yaml:"seed"`
}

// LoadConfig loads configuration from a file, an optional .env file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	// Load default config with sane defaults
	config := &Config{}
	setDefaults(config)

	// Try to read config file if it exists
	if _, err := os.Stat(configPath); err == nil {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		if err := yaml.Unmarshal(file, config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	// Override with environment variables
	if err := loadFromEnv(config); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// setDefaults sets default values for the configuration
func setDefaults(config *Config) {
	config.Server.Port = "8080"
	config.Server.Mode = "development"
	config.Server.BaseURL = "http://localhost:8080"
	config.Server.ShutdownTimeout = "10s"

	config.Database.Host = "localhost"
	config.Database.Port = "5432"
	config.Database.User = "postgres"
	config.Database.Password = "postgres"
	config.Database.DBName = "sempozyum"
	config.Database.SSLMode = "disable"
	config.Database.MaxIdleConns = 5
	config.Database.MaxOpenConns = 20
	config.Database.ConnMaxLifetime = "1h"
	config.Database.MigrationsDir = "migrations"

	config.JWT.AccessTokenExpiration = "1h"
	config.JWT.RefreshTokenExpiration = "720h"
	config.JWT.Issuer = "sempozyum.app"

	config.Logging.Level = "info"
	config.Logging.Format = "json"

	config.Storage.Path = "uploads"
	config.Storage.BaseURL = "/uploads"
	config.Storage.MaxUploadSize = 20 << 20

	config.SMTP.Port = 587
	config.SMTP.FromName = "Sempozyum"

	config.Submission.MaxPages = 20
}

// validateConfig ensures that the configuration is valid
func validateConfig(config *Config) error {
	if config.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}

	if config.JWT.Secret == "" {
		return fmt.Errorf("JWT secret is required")
	}

	for name, v := range map[string]string{
		"JWT access token expiration":  config.JWT.AccessTokenExpiration,
		"JWT refresh token expiration": config.JWT.RefreshTokenExpiration,
		"database conn max lifetime":   config.Database.ConnMaxLifetime,
		"server shutdown timeout":      config.Server.ShutdownTimeout,
	} {
		if _, err := time.ParseDuration(v); err != nil {
			return fmt.Errorf("invalid %s format: %w", name, err)
		}
	}

	if config.Submission.MaxPages <= 0 {
		return fmt.Errorf("submission max pages must be positive")
	}
	if config.Storage.MaxUploadSize <= 0 {
		return fmt.Errorf("storage max upload size must be positive")
	}

	return nil
}

// GetPostgresConnectionString returns postgres connection string
func (c *Config) GetPostgresConnectionString() string {
	sslMode := c.Database.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.DBName,
		sslMode,
	)
}

// IsProduction reports whether the server runs in release mode
func (c *Config) IsProduction() bool {
	m := strings.ToLower(c.Server.Mode)
	return m == "production" || m == "release"
}

// Durations are validated in LoadConfig, so parse errors are ignored below.

// AccessTokenTTL returns the access token lifetime
func (c *Config) AccessTokenTTL() time.Duration {
	d, _ := time.ParseDuration(c.JWT.AccessTokenExpiration)
	return d
}

// RefreshTokenTTL returns the refresh token lifetime
func (c *Config) RefreshTokenTTL() time.Duration {
	d, _ := time.ParseDuration(c.JWT.RefreshTokenExpiration)
	return d
}

// ConnMaxLifetime returns the pool connection lifetime
func (c *Config) ConnMaxLifetime() time.Duration {
	d, _ := time.ParseDuration(c.Database.ConnMaxLifetime)
	return d
}

// ShutdownTimeout returns the graceful shutdown window
func (c *Config) ShutdownTimeout() time.Duration {
	d, _ := time.ParseDuration(c.Server.ShutdownTimeout)
	return d
}
