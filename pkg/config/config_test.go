package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/mygameon-ops/pkg/config"
)

func TestLoad_DesdeEntorno(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("APP_TIMEZONE", "Asia/Makassar")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("IMPORT_BATCH_SIZE", "250")
	t.Setenv("IMPORT_MAX_UPLOAD_MB", "5")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.App.Env)
	assert.Equal(t, "Asia/Makassar", cfg.App.Timezone)
	assert.Equal(t, "0.0.0.0:9090", cfg.HTTP.Addr())
	assert.True(t, cfg.Redis.Enabled())
	assert.Equal(t, 250, cfg.Import.BatchSize)
	assert.Equal(t, 5*1024*1024, cfg.Import.MaxUploadBytes())
	assert.Equal(t, 10, cfg.DB.MaxConns)
	assert.False(t, cfg.DB.ForceIPv4)
}

func TestLoad_PoolDesdeEntorno(t *testing.T) {
	t.Setenv("DB_MAX_CONNS", "20")
	t.Setenv("DB_MIN_CONNS", "4")
	t.Setenv("DB_CONN_LIFETIME_MINUTES", "15")
	t.Setenv("DB_FORCE_IPV4", "true")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 20, cfg.DB.MaxConns)
	assert.Equal(t, 4, cfg.DB.MinConns)
	assert.Equal(t, 15, cfg.DB.ConnLifetimeMinutes)
	assert.True(t, cfg.DB.ForceIPv4)
}

func TestLoad_PoolInvalido(t *testing.T) {
	t.Setenv("DB_MAX_CONNS", "2")
	t.Setenv("DB_MIN_CONNS", "5")

	_, err := config.Load()
	assert.ErrorContains(t, err, "DB_MAX_CONNS")
}

func TestLoad_BatchSizeFueraDeRango(t *testing.T) {
	t.Setenv("IMPORT_BATCH_SIZE", "900")

	_, err := config.Load()
	assert.ErrorContains(t, err, "IMPORT_BATCH_SIZE")
}

func TestDBConfig_ConnectionString(t *testing.T) {
	c := config.DBConfig{
		Host: "db", Port: 5432, User: "ops", Password: "p@ss:word/1",
		DBName: "mygameon", SSLMode: "disable",
	}
	assert.Equal(t, "postgres://ops:p%40ss%3Aword%2F1@db:5432/mygameon?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgresql://u:p@host/db"
	assert.Equal(t, "postgresql://u:p@host/db", c.ConnectionString())
}

func TestRedisConfig_SinAddrDesactivado(t *testing.T) {
	assert.False(t, config.RedisConfig{}.Enabled())
}
