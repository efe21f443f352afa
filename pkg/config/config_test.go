package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("MONGO_DATABASE", "")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("METRICS_PORT", "")

	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "chirp", cfg.MongoDatabase)
	assert.Equal(t, "supersecretjwtkey", cfg.JWTSecret)
	assert.Equal(t, "9090", cfg.MetricsPort)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "3000")
	t.Setenv("MONGO_URI", "mongodb://localhost:27017")
	t.Setenv("POSTGRES_CONN_STR", "host=localhost user=chirp dbname=chirp")
	t.Setenv("JWT_SECRET", "something-else")

	cfg := Load()

	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, "mongodb://localhost:27017", cfg.MongoURI)
	assert.Equal(t, "host=localhost user=chirp dbname=chirp", cfg.PostgresConnStr)
	assert.Equal(t, "something-else", cfg.JWTSecret)
}
