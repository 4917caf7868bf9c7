package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	BackendREST     = "rest"
	BackendPostgres = "postgres"

	StartModeSelectedDay = "selected_day"
	StartModeNow         = "now"
)

// Config represents the application configuration
type Config struct {
	Server      ServerConfig      `yaml:"server"`
	Log         LogConfig         `yaml:"log"`
	Timezone    string            `yaml:"timezone"`
	Backend     BackendConfig     `yaml:"backend"`
	Database    DatabaseConfig    `yaml:"database"`
	JWT         JWTConfig         `yaml:"jwt"`
	CORS        CORSConfig        `yaml:"cors"`
	Calendar    CalendarConfig    `yaml:"calendar"`
	Reservation ReservationConfig `yaml:"reservation"`
	Scheduler   SchedulerConfig   `yaml:"scheduler"`

	location *time.Location
}

// ServerConfig contains HTTP listener settings
type ServerConfig struct {
	Host                   string `yaml:"host"`
	Port                   int    `yaml:"port"`
	ShutdownTimeoutSeconds int    `yaml:"shutdown_timeout_seconds"`
}

// LogConfig contains logging settings
type LogConfig struct {
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `yaml:"format"` // "json" or "text"
}

// BackendConfig selects where rentals, carts, clients and vendors come from.
type BackendConfig struct {
	Type           string `yaml:"type"` // "rest" or "postgres"
	BaseURL        string `yaml:"base_url"`
	Token          string `yaml:"token"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	RetryAttempts  int    `yaml:"retry_attempts"`
	RetryBackoffMS int    `yaml:"retry_backoff_ms"`
}

// DatabaseConfig contains PostgreSQL connection settings
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
	SSLMode  string `yaml:"ssl_mode"`
}

// JWTConfig holds the HS256 secret used to verify session tokens.
type JWTConfig struct {
	Secret string `yaml:"secret"`
}

type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// CalendarConfig contains countdown settings
type CalendarConfig struct {
	TickIntervalMS int `yaml:"tick_interval_ms"`
}

// ReservationConfig controls how drafts turn into rentals.
type ReservationConfig struct {
	GraceMinutes   *int   `yaml:"grace_minutes"`
	StartMode      string `yaml:"start_mode"`
	RejectOverlaps bool   `yaml:"reject_overlaps"`
}

// SchedulerConfig contains cron schedule settings (with seconds field)
type SchedulerConfig struct {
	RefreshSnapshot string `yaml:"refresh_snapshot"`
	ReportOverdue   string `yaml:"report_overdue"`
}

// Load reads configuration from a YAML file. A .env file next to the
// working directory is loaded first so its values act as env overrides.
func Load(configPath string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return Parse(data)
}

// Parse builds a Config from YAML bytes, applies env overrides and validates it.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.overrideWithEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// overrideWithEnv overrides config values with environment variables
func (c *Config) overrideWithEnv() {
	// Server
	if val := os.Getenv("SERVER_HOST"); val != "" {
		c.Server.Host = val
	}
	if val := os.Getenv("SERVER_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Server.Port)
	}

	// Backend
	if val := os.Getenv("BACKEND_TYPE"); val != "" {
		c.Backend.Type = val
	}
	if val := os.Getenv("BACKEND_BASE_URL"); val != "" {
		c.Backend.BaseURL = val
	}
	if val := os.Getenv("BACKEND_TOKEN"); val != "" {
		c.Backend.Token = val
	}

	// Database
	if val := os.Getenv("DB_HOST"); val != "" {
		c.Database.Host = val
	}
	if val := os.Getenv("DB_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Database.Port)
	}
	if val := os.Getenv("DB_USER"); val != "" {
		c.Database.User = val
	}
	if val := os.Getenv("DB_PASSWORD"); val != "" {
		c.Database.Password = val
	}
	if val := os.Getenv("DB_NAME"); val != "" {
		c.Database.Database = val
	}
	if val := os.Getenv("DB_SSL_MODE"); val != "" {
		c.Database.SSLMode = val
	}

	if val := os.Getenv("JWT_SECRET"); val != "" {
		c.JWT.Secret = val
	}
	if val := os.Getenv("TIMEZONE"); val != "" {
		c.Timezone = val
	}

	// Log
	if val := os.Getenv("LOG_LEVEL"); val != "" {
		c.Log.Level = val
	}
	if val := os.Getenv("LOG_FORMAT"); val != "" {
		c.Log.Format = val
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

// Validate checks if the configuration is valid and fills in defaults.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Server.ShutdownTimeoutSeconds <= 0 {
		c.Server.ShutdownTimeoutSeconds = 10
	}

	if c.Timezone == "" {
		c.Timezone = "America/Mexico_City"
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	c.location = loc

	// Backend validation
	c.Backend.Type = strings.ToLower(strings.TrimSpace(c.Backend.Type))
	if c.Backend.Type == "" {
		c.Backend.Type = BackendREST
	}
	switch c.Backend.Type {
	case BackendREST:
		if c.Backend.BaseURL == "" {
			return fmt.Errorf("backend base URL is required for rest backend")
		}
		c.Backend.BaseURL = strings.TrimRight(c.Backend.BaseURL, "/")
	case BackendPostgres:
		if c.Database.Host == "" {
			return fmt.Errorf("database host is required")
		}
		if c.Database.User == "" {
			return fmt.Errorf("database user is required")
		}
		if c.Database.Database == "" {
			return fmt.Errorf("database name is required")
		}
		if c.Database.Port == 0 {
			c.Database.Port = 5432
		}
		if c.Database.SSLMode == "" {
			c.Database.SSLMode = "disable"
		}
	default:
		return fmt.Errorf("unknown backend type: %s", c.Backend.Type)
	}
	if c.Backend.TimeoutSeconds <= 0 {
		c.Backend.TimeoutSeconds = 10
	}
	if c.Backend.RetryAttempts <= 0 {
		c.Backend.RetryAttempts = 3
	}
	if c.Backend.RetryBackoffMS <= 0 {
		c.Backend.RetryBackoffMS = 200
	}

	// JWT validation
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT secret is required")
	}
	if len(c.JWT.Secret) < 32 {
		return fmt.Errorf("JWT secret must be at least 32 characters")
	}

	if len(c.CORS.AllowedOrigins) == 0 {
		c.CORS.AllowedOrigins = []string{"*"}
	}

	if c.Calendar.TickIntervalMS <= 0 {
		c.Calendar.TickIntervalMS = 1000
	}

	// Reservation defaults
	if c.Reservation.GraceMinutes == nil {
		grace := 15
		c.Reservation.GraceMinutes = &grace
	}
	if *c.Reservation.GraceMinutes < 0 {
		return fmt.Errorf("grace minutes must not be negative")
	}
	if c.Reservation.StartMode == "" {
		c.Reservation.StartMode = StartModeSelectedDay
	}
	if c.Reservation.StartMode != StartModeSelectedDay && c.Reservation.StartMode != StartModeNow {
		return fmt.Errorf("invalid reservation start mode: %s", c.Reservation.StartMode)
	}

	// Scheduler defaults
	if c.Scheduler.RefreshSnapshot == "" {
		c.Scheduler.RefreshSnapshot = "0 */5 * * * *" // every 5 minutes
	}
	if c.Scheduler.ReportOverdue == "" {
		c.Scheduler.ReportOverdue = "30 */15 * * * *"
	}

	return nil
}

// Location returns the display timezone resolved by Validate.
func (c *Config) Location() *time.Location {
	if c.location == nil {
		return time.Local
	}
	return c.location
}

// GracePeriod returns the configured reservation grace as a duration.
func (c *Config) GracePeriod() time.Duration {
	if c.Reservation.GraceMinutes == nil {
		return 15 * time.Minute
	}
	return time.Duration(*c.Reservation.GraceMinutes) * time.Minute
}

// TickInterval returns the countdown refresh period.
func (c *Config) TickInterval() time.Duration {
	return time.Duration(c.Calendar.TickIntervalMS) * time.Millisecond
}

// BackendTimeout returns the per-request timeout for the REST backend.
func (c *Config) BackendTimeout() time.Duration {
	return time.Duration(c.Backend.TimeoutSeconds) * time.Second
}

// RefreshTimeout bounds a full snapshot refresh: every read attempt at the
// backend timeout plus the doubling backoff between them.
func (c *Config) RefreshTimeout() time.Duration {
	attempts := c.Backend.RetryAttempts
	if attempts <= 0 {
		attempts = 1
	}
	total := c.BackendTimeout() * time.Duration(attempts)
	if attempts > 1 {
		total += c.RetryBackoff() << (attempts - 1)
	}
	if total <= 0 {
		return time.Minute
	}
	return total
}

// RetryBackoff returns the base backoff between read retries.
func (c *Config) RetryBackoff() time.Duration {
	return time.Duration(c.Backend.RetryBackoffMS) * time.Millisecond
}

// GetDatabaseConnectionString returns a PostgreSQL connection string
func (c *Config) GetDatabaseConnectionString() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Database,
		c.Database.SSLMode,
	)
}

// GetServerAddress returns the HTTP listen address
func (c *Config) GetServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
