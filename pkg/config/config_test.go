package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	// viper trata las variables vacías como no definidas
	t.Setenv("STORAGE_DRIVER", "")
	t.Setenv("REDIS_ADDR", "")
	t.Setenv("HISTORY_TIMEZONE", "")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, StorageDriverPostgres, cfg.App.StorageDriver)
	assert.Empty(t, cfg.Redis.Addr)
	assert.Equal(t, "Local", cfg.History.Timezone)
	assert.True(t, cfg.DB.Migrate)
	assert.Equal(t, 60, cfg.JWT.Expiration)
}

func TestLoad_DriverInvalido(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "sqlite")
	cfg, err := Load()
	require.Error(t, err)
	assert.Nil(t, cfg)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "MEMORY")
	t.Setenv("DB_MIGRATE", "false")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("SCHEDULER_SNAPSHOT_CRON", "0 3 * * *")
	t.Setenv("METRICS_ENABLED", "no-bool")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, StorageDriverMemory, cfg.App.StorageDriver)
	assert.False(t, cfg.DB.Migrate)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, 3, cfg.Redis.DB)
	assert.Equal(t, "0 3 * * *", cfg.Scheduler.SnapshotCron)
	assert.True(t, cfg.Metrics.Enabled, "valor inválido cae al default")
}

func TestDBConfig_DSN(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss/word", DBName: "teams", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%2Fword@db:5432/teams?sslmode=disable", c.DSN())

	c.DatabaseURL = "postgres://x@y/z"
	assert.Equal(t, "postgres://x@y/z", c.ConnectionString())
}

func TestHistoryConfig_Location(t *testing.T) {
	loc, err := HistoryConfig{Timezone: "Local"}.Location()
	require.NoError(t, err)
	assert.Equal(t, time.Local, loc)

	loc, err = HistoryConfig{Timezone: "UTC"}.Location()
	require.NoError(t, err)
	assert.Equal(t, "UTC", loc.String())

	_, err = HistoryConfig{Timezone: "Marte/Olympus"}.Location()
	assert.Error(t, err)
}
