package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "beautrip", cfg.Database.Database)
	assert.Equal(t, float64(20), cfg.Ranking.PriorWeight)
	assert.Equal(t, 300, cfg.Ranking.PageCacheSeconds)
	assert.False(t, cfg.OTEL.Enabled)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DB_NAME", "beautrip_test")
	t.Setenv("RANKING_PRIOR_WEIGHT", "35.5")
	t.Setenv("OTEL_ENABLED", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "beautrip_test", cfg.Database.Database)
	assert.Equal(t, 35.5, cfg.Ranking.PriorWeight)
	assert.True(t, cfg.OTEL.Enabled)
}

func TestDatabaseDSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host: "db", Port: 5433, User: "u", Password: "p", Database: "d", SSLMode: "require",
	}
	assert.Equal(t, "host=db port=5433 user=u password=p dbname=d sslmode=require", cfg.DatabaseDSN())
}
