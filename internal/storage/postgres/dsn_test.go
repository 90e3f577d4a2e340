package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/GoSim-25-26J-441/site-builder-backend/config"
)

func TestDSN(t *testing.T) {
	t.Run("from fields", func(t *testing.T) {
		got := DSN(&config.DatabaseConfig{
			Host: "db", Port: 5433, User: "app", Password: "secret", Name: "site_builder",
		})
		assert.Equal(t, "host=db port=5433 user=app password=secret dbname=site_builder sslmode=disable", got)
	})

	t.Run("explicit sslmode", func(t *testing.T) {
		got := DSN(&config.DatabaseConfig{Host: "db", Port: 5432, SSLMode: "require"})
		assert.Contains(t, got, "sslmode=require")
	})

	t.Run("dsn wins", func(t *testing.T) {
		got := DSN(&config.DatabaseConfig{DSN: "postgres://x@y/z", Host: "ignored"})
		assert.Equal(t, "postgres://x@y/z", got)
	})
}
