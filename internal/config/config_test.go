package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DB_DSN", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "pgx", cfg.DatabaseDriver)
	assert.True(t, cfg.Migrate)
	assert.Equal(t, "memory", cfg.Session.Store)
	assert.Equal(t, 168*time.Hour, cfg.Session.TTL)
	assert.Equal(t, "sid", cfg.Session.CookieName)
	assert.Equal(t, "adoption.applications.submitted", cfg.RabbitMQ.SubmittedQueue)
	assert.False(t, cfg.S3Enabled())
	assert.False(t, cfg.RabbitMQEnabled())
	assert.False(t, cfg.OIDCEnabled())
}

func TestLoad_AdminIDsAndDurations(t *testing.T) {
	t.Setenv("ADMIN_USER_IDS", "admin-1,admin-2")
	t.Setenv("SESSION_TTL", "2h")
	t.Setenv("ENABLE_SEED", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"admin-1", "admin-2"}, cfg.AdminUserIDs)
	assert.Equal(t, 2*time.Hour, cfg.Session.TTL)
	assert.True(t, cfg.EnableSeed)
}

func TestLoad_RejectsInconsistentSessionStore(t *testing.T) {
	t.Setenv("DB_DSN", "")
	t.Setenv("SESSION_STORE", "postgres")

	_, err := Load()
	require.Error(t, err)

	t.Setenv("SESSION_STORE", "redis")
	t.Setenv("REDIS_URL", "")
	_, err = Load()
	require.Error(t, err)
}

func TestLoad_RejectsUnknownDriver(t *testing.T) {
	t.Setenv("DB_DRIVER", "mysql")

	_, err := Load()
	require.Error(t, err)
}
