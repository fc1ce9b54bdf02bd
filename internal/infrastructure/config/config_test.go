package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	// Save and restore env vars that could affect the test
	envVars := map[string]string{
		"ATTADIA_APP_NAME":                os.Getenv("ATTADIA_APP_NAME"),
		"ATTADIA_APP_ENV":                 os.Getenv("ATTADIA_APP_ENV"),
		"ATTADIA_APP_PORT":                os.Getenv("ATTADIA_APP_PORT"),
		"ATTADIA_DATABASE_HOST":           os.Getenv("ATTADIA_DATABASE_HOST"),
		"ATTADIA_DATABASE_PORT":           os.Getenv("ATTADIA_DATABASE_PORT"),
		"ATTADIA_DATABASE_USER":           os.Getenv("ATTADIA_DATABASE_USER"),
		"ATTADIA_DATABASE_PASSWORD":       os.Getenv("ATTADIA_DATABASE_PASSWORD"),
		"ATTADIA_DATABASE_DBNAME":         os.Getenv("ATTADIA_DATABASE_DBNAME"),
		"ATTADIA_DATABASE_SSLMODE":        os.Getenv("ATTADIA_DATABASE_SSLMODE"),
		"ATTADIA_DATABASE_MAX_OPEN_CONNS": os.Getenv("ATTADIA_DATABASE_MAX_OPEN_CONNS"),
		"ATTADIA_DATABASE_MAX_IDLE_CONNS": os.Getenv("ATTADIA_DATABASE_MAX_IDLE_CONNS"),
		"ATTADIA_JWT_SECRET":              os.Getenv("ATTADIA_JWT_SECRET"),
	}
	cleanup := func() {
		for k, v := range envVars {
			if v == "" {
				os.Unsetenv(k)
			} else {
				os.Setenv(k, v)
			}
		}
	}
	defer cleanup()

	clearEnv := func() {
		for k := range envVars {
			os.Unsetenv(k)
		}
	}

	t.Run("defaults", func(t *testing.T) {
		clearEnv()

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "attadia-backend", cfg.App.Name)
		assert.Equal(t, "development", cfg.App.Env)
		assert.Equal(t, "8080", cfg.App.Port)
		assert.Equal(t, "localhost", cfg.Database.Host)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, "postgres", cfg.Database.User)
		assert.Equal(t, "attadia", cfg.Database.DBName)
		assert.Equal(t, "disable", cfg.Database.SSLMode)
		assert.Equal(t, 25, cfg.Database.MaxOpenConns)
		assert.Equal(t, 5, cfg.Database.MaxIdleConns)
		assert.Equal(t, 6379, cfg.Redis.Port)
		assert.Equal(t, "attadia-backend", cfg.JWT.Issuer)
		assert.Equal(t, 10, cfg.JWT.MaxRefreshCount)
		assert.Equal(t, "info", cfg.Log.Level)
		assert.NotZero(t, cfg.Cache.BalanceTTL)
	})

	t.Run("environment overrides", func(t *testing.T) {
		clearEnv()
		os.Setenv("ATTADIA_APP_NAME", "test-app")
		os.Setenv("ATTADIA_APP_ENV", "testing")
		os.Setenv("ATTADIA_APP_PORT", "9000")
		os.Setenv("ATTADIA_DATABASE_HOST", "testdb.local")
		os.Setenv("ATTADIA_DATABASE_PORT", "5433")
		os.Setenv("ATTADIA_DATABASE_USER", "testuser")
		os.Setenv("ATTADIA_DATABASE_PASSWORD", "testpass")
		os.Setenv("ATTADIA_DATABASE_DBNAME", "testdb")
		os.Setenv("ATTADIA_DATABASE_SSLMODE", "require")
		os.Setenv("ATTADIA_DATABASE_MAX_OPEN_CONNS", "50")
		os.Setenv("ATTADIA_DATABASE_MAX_IDLE_CONNS", "10")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "test-app", cfg.App.Name)
		assert.Equal(t, "testing", cfg.App.Env)
		assert.Equal(t, "9000", cfg.App.Port)
		assert.Equal(t, "testdb.local", cfg.Database.Host)
		assert.Equal(t, 5433, cfg.Database.Port)
		assert.Equal(t, "testuser", cfg.Database.User)
		assert.Equal(t, "testpass", cfg.Database.Password)
		assert.Equal(t, "testdb", cfg.Database.DBName)
		assert.Equal(t, "require", cfg.Database.SSLMode)
		assert.Equal(t, 50, cfg.Database.MaxOpenConns)
		assert.Equal(t, 10, cfg.Database.MaxIdleConns)
	})

	t.Run("rejects idle conns above open conns", func(t *testing.T) {
		clearEnv()
		os.Setenv("ATTADIA_DATABASE_MAX_OPEN_CONNS", "10")
		os.Setenv("ATTADIA_DATABASE_MAX_IDLE_CONNS", "20")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "max_idle_conns")
	})

	t.Run("rejects negative idle conns", func(t *testing.T) {
		clearEnv()
		os.Setenv("ATTADIA_DATABASE_MAX_IDLE_CONNS", "-1")

		_, err := Load()
		require.Error(t, err)
	})
}

func TestLoad_ProductionValidation(t *testing.T) {
	envVars := map[string]string{
		"ATTADIA_APP_ENV":           os.Getenv("ATTADIA_APP_ENV"),
		"ATTADIA_JWT_SECRET":        os.Getenv("ATTADIA_JWT_SECRET"),
		"ATTADIA_DATABASE_PASSWORD": os.Getenv("ATTADIA_DATABASE_PASSWORD"),
		"ATTADIA_DATABASE_SSLMODE":  os.Getenv("ATTADIA_DATABASE_SSLMODE"),
	}
	cleanup := func() {
		for k, v := range envVars {
			if v == "" {
				os.Unsetenv(k)
			} else {
				os.Setenv(k, v)
			}
		}
	}
	defer cleanup()

	clearEnv := func() {
		for k := range envVars {
			os.Unsetenv(k)
		}
	}

	t.Run("valid production config", func(t *testing.T) {
		clearEnv()
		os.Setenv("ATTADIA_APP_ENV", "production")
		os.Setenv("ATTADIA_JWT_SECRET", "this-is-a-very-secure-jwt-secret-key-32chars")
		os.Setenv("ATTADIA_DATABASE_PASSWORD", "secure-password")
		os.Setenv("ATTADIA_DATABASE_SSLMODE", "require")

		_, err := Load()
		assert.NoError(t, err)
	})

	t.Run("missing jwt secret", func(t *testing.T) {
		clearEnv()
		os.Setenv("ATTADIA_APP_ENV", "production")
		os.Setenv("ATTADIA_DATABASE_PASSWORD", "secure-password")
		os.Setenv("ATTADIA_DATABASE_SSLMODE", "require")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "jwt.secret")
	})

	t.Run("short jwt secret", func(t *testing.T) {
		clearEnv()
		os.Setenv("ATTADIA_APP_ENV", "production")
		os.Setenv("ATTADIA_JWT_SECRET", "too-short")
		os.Setenv("ATTADIA_DATABASE_PASSWORD", "secure-password")
		os.Setenv("ATTADIA_DATABASE_SSLMODE", "require")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "32 characters")
	})

	t.Run("disabled sslmode", func(t *testing.T) {
		clearEnv()
		os.Setenv("ATTADIA_APP_ENV", "production")
		os.Setenv("ATTADIA_JWT_SECRET", "this-is-a-very-secure-jwt-secret-key-32chars")
		os.Setenv("ATTADIA_DATABASE_PASSWORD", "secure-password")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "sslmode")
	})
}

func TestDatabaseConfig_DSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host:     "db.example.com",
		Port:     5432,
		User:     "app",
		Password: "p@ss/word",
		DBName:   "attadia",
		SSLMode:  "require",
	}

	dsn := cfg.DSN()

	assert.Contains(t, dsn, "postgres://")
	assert.Contains(t, dsn, "db.example.com:5432")
	assert.Contains(t, dsn, "sslmode=require")
	// Special characters in the password must be escaped
	assert.NotContains(t, dsn, "p@ss/word")
}
