package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadFrom(t *testing.T) {
	path := writeConfigFile(t, `
app:
  port: 8080
  gin_mode: release
  env: production
  base_url: "https://api.example.com"
database:
  dsn: "host=db user=app dbname=peakbooker"
redis:
  addr: "redis:6379"
  db: 2
jwt:
  access_secret: "acc-secret"
  refresh_secret: "ref-secret"
  issuer: "peakbooker"
  access_ttl: "30m"
  refresh_ttl: "48h"
lockout:
  max_attempts: 5
  window: "2m"
  cooldown: "30m"
tokens:
  verification_ttl: "12h"
  reset_ttl: "5m"
smtp:
  host: "smtp.example.com"
  port: 587
  from: "PeakBooker <no-reply@example.com>"
password:
  bcrypt_cost: 12
`)

	cfg, err := LoadFrom(path)
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "https://api.example.com", cfg.BaseURL)
	assert.Equal(t, "host=db user=app dbname=peakbooker", cfg.DSN)
	assert.Equal(t, "acc-secret", cfg.JWTAccessSecret)
	assert.Equal(t, "ref-secret", cfg.JWTRefreshSecret)
	assert.Equal(t, "peakbooker", cfg.JWTIssuer)
	assert.Equal(t, 30*time.Minute, cfg.AccessTTL)
	assert.Equal(t, 48*time.Hour, cfg.RefreshTTL)
	assert.Equal(t, 5, cfg.LockoutMaxAttempts)
	assert.Equal(t, 2*time.Minute, cfg.LockoutWindow)
	assert.Equal(t, 30*time.Minute, cfg.LockoutCooldown)
	assert.Equal(t, 12*time.Hour, cfg.VerificationTTL)
	assert.Equal(t, 5*time.Minute, cfg.ResetTTL)
	assert.Equal(t, "smtp.example.com", cfg.SMTPHost)
	assert.Equal(t, 587, cfg.SMTPPort)
	assert.Equal(t, 12, cfg.BcryptCost)
	assert.Equal(t, 2, cfg.RedisDB)
}

func TestLoadFromDefaults(t *testing.T) {
	path := writeConfigFile(t, `
app:
  port: 8080
jwt:
  access_secret: "acc"
  refresh_secret: "ref"
`)

	cfg, err := LoadFrom(path)
	require.NoError(t, err)

	assert.Equal(t, 15*time.Minute, cfg.AccessTTL)
	assert.Equal(t, 7*24*time.Hour, cfg.RefreshTTL)
	assert.Equal(t, 10, cfg.LockoutMaxAttempts)
	assert.Equal(t, time.Minute, cfg.LockoutWindow)
	assert.Equal(t, time.Hour, cfg.LockoutCooldown)
	assert.Equal(t, 24*time.Hour, cfg.VerificationTTL)
	assert.Equal(t, 10*time.Minute, cfg.ResetTTL)
	assert.Equal(t, 10, cfg.BcryptCost)
	assert.False(t, cfg.IsProduction())
}

func TestLoadFromEnvOverrides(t *testing.T) {
	path := writeConfigFile(t, `
app:
  port: 8080
  env: development
database:
  dsn: "host=local"
jwt:
  access_secret: "file-acc"
  refresh_secret: "file-ref"
redis:
  addr: "localhost:6379"
`)

	t.Setenv("APP_ENV", "production")
	t.Setenv("DATABASE_DSN", "host=prod")
	t.Setenv("JWT_ACCESS_SECRET", "env-acc")
	t.Setenv("REDIS_ADDR", "prod-redis:6379")
	t.Setenv("REDIS_DB", "4")

	cfg, err := LoadFrom(path)
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "host=prod", cfg.DSN)
	assert.Equal(t, "env-acc", cfg.JWTAccessSecret)
	assert.Equal(t, "file-ref", cfg.JWTRefreshSecret, "refresh secret has no env override set")
	assert.Equal(t, "prod-redis:6379", cfg.RedisAddr)
	assert.Equal(t, 4, cfg.RedisDB)
}

func TestLoadFromMissingFile(t *testing.T) {
	_, err := LoadFrom(filepath.Join(t.TempDir(), "missing.yml"))
	assert.Error(t, err)
}

func TestLoadFromBadDuration(t *testing.T) {
	path := writeConfigFile(t, `
jwt:
  access_ttl: "soon"
`)

	_, err := LoadFrom(path)
	assert.Error(t, err)
}
