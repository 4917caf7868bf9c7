package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validYAML = `
server:
  port: 8080
backend:
  type: rest
  base_url: "http://backend.local/api/"
jwt:
  secret: "0123456789abcdef0123456789abcdef"
`

func TestParse(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		cfg, err := Parse([]byte(validYAML))
		require.NoError(t, err)

		assert.Equal(t, "http://backend.local/api", cfg.Backend.BaseURL)
		assert.Equal(t, 3, cfg.Backend.RetryAttempts)
		assert.Equal(t, 200*time.Millisecond, cfg.RetryBackoff())
		assert.Equal(t, 10*time.Second, cfg.BackendTimeout())
		assert.Equal(t, 30*time.Second+800*time.Millisecond, cfg.RefreshTimeout())
		assert.Equal(t, time.Second, cfg.TickInterval())
		assert.Equal(t, 15*time.Minute, cfg.GracePeriod())
		assert.Equal(t, StartModeSelectedDay, cfg.Reservation.StartMode)
		assert.Equal(t, "0 */5 * * * *", cfg.Scheduler.RefreshSnapshot)
		assert.Equal(t, "30 */15 * * * *", cfg.Scheduler.ReportOverdue)
		assert.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)
		assert.Equal(t, "America/Mexico_City", cfg.Location().String())
		assert.Equal(t, "info", cfg.Log.Level)
		assert.Equal(t, "text", cfg.Log.Format)
	})

	t.Run("Zero grace is kept", func(t *testing.T) {
		cfg, err := Parse([]byte(validYAML + "reservation:\n  grace_minutes: 0\n"))
		require.NoError(t, err)
		assert.Equal(t, time.Duration(0), cfg.GracePeriod())
	})

	t.Run("Env overrides", func(t *testing.T) {
		t.Setenv("SERVER_PORT", "9090")
		t.Setenv("LOG_LEVEL", "debug")
		t.Setenv("TIMEZONE", "UTC")
		cfg, err := Parse([]byte(validYAML))
		require.NoError(t, err)
		assert.Equal(t, 9090, cfg.Server.Port)
		assert.Equal(t, "debug", cfg.Log.Level)
		assert.Equal(t, time.UTC, cfg.Location())
		assert.Equal(t, ":9090", cfg.GetServerAddress())
	})

	t.Run("Postgres requires database", func(t *testing.T) {
		_, err := Parse([]byte(`
server: {port: 8080}
backend: {type: postgres}
jwt: {secret: "0123456789abcdef0123456789abcdef"}
`))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "database host is required")
	})

	t.Run("Postgres connection string", func(t *testing.T) {
		cfg, err := Parse([]byte(`
server: {port: 8080}
backend: {type: postgres}
database: {host: db, user: golf, password: pw, database: carts}
jwt: {secret: "0123456789abcdef0123456789abcdef"}
`))
		require.NoError(t, err)
		assert.Equal(t, "postgres://golf:pw@db:5432/carts?sslmode=disable", cfg.GetDatabaseConnectionString())
	})

	failures := []struct {
		name string
		yaml string
		msg  string
	}{
		{"Bad port", "server: {port: 70000}", "invalid server port"},
		{"Missing base URL", "server: {port: 8080}\njwt: {secret: \"0123456789abcdef0123456789abcdef\"}", "base URL is required"},
		{"Short secret", "server: {port: 8080}\nbackend: {base_url: x}\njwt: {secret: short}", "at least 32 characters"},
		{"Bad timezone", validYAML + "timezone: Mars/Olympus\n", "invalid timezone"},
		{"Bad start mode", validYAML + "reservation: {start_mode: tomorrow}\n", "invalid reservation start mode"},
		{"Negative grace", validYAML + "reservation: {grace_minutes: -1}\n", "must not be negative"},
		{"Unknown backend", "server: {port: 8080}\nbackend: {type: mongo}\njwt: {secret: \"0123456789abcdef0123456789abcdef\"}", "unknown backend type"},
	}
	for _, tc := range failures {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.msg)
		})
	}
}

func TestLoad(t *testing.T) {
	t.Run("Missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to read config file")
	})

	t.Run("Success", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte(validYAML), 0o600))
		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, 8080, cfg.Server.Port)
	})
}

func TestGetSecurityLevel(t *testing.T) {
	assert.Equal(t, SecurityPublic, GetSecurityLevel("health"))
	assert.Equal(t, SecurityAccess, GetSecurityLevel("rentals.create"))
	assert.Equal(t, SecurityAccess, GetSecurityLevel("unregistered"))
}
