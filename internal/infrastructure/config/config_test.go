package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("loads default values when env vars not set", func(t *testing.T) {
		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "rentdesk", cfg.App.Name)
		assert.Equal(t, "development", cfg.App.Env)
		assert.Equal(t, "8080", cfg.App.Port)
		assert.Equal(t, DriverPostgres, cfg.Database.Driver)
		assert.Equal(t, "localhost", cfg.Database.Host)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, "rentdesk", cfg.Database.DBName)
		assert.Equal(t, 25, cfg.Database.MaxOpenConns)
		assert.Equal(t, 5, cfg.Database.MaxIdleConns)
		assert.False(t, cfg.Redis.Enabled)
		assert.Equal(t, "localhost:6379", cfg.Redis.Addr())
	})

	t.Run("ledger defaults", func(t *testing.T) {
		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, 5, cfg.Ledger.GraceDays)
		assert.Equal(t, "15", cfg.Ledger.LateFee.Weekly)
		assert.Equal(t, "25", cfg.Ledger.LateFee.BiWeekly)
		assert.Equal(t, "45", cfg.Ledger.LateFee.Monthly)
		assert.Equal(t, 3, cfg.Ledger.AllocationMaxRetries)
		assert.Equal(t, 5*time.Minute, cfg.Ledger.ArrearsCacheTTL)
		assert.Equal(t, 24*time.Hour, cfg.Ledger.IdempotencyTTL)
		assert.Empty(t, cfg.Ledger.Strategy)
	})

	t.Run("loads values from environment variables with RENT prefix", func(t *testing.T) {
		t.Setenv("RENT_APP_NAME", "test-app")
		t.Setenv("RENT_APP_PORT", "9000")
		t.Setenv("RENT_DATABASE_HOST", "testdb.local")
		t.Setenv("RENT_DATABASE_PORT", "5433")
		t.Setenv("RENT_DATABASE_PASSWORD", "testpass")
		t.Setenv("RENT_DATABASE_MAX_OPEN_CONNS", "50")
		t.Setenv("RENT_DATABASE_MAX_IDLE_CONNS", "10")
		t.Setenv("RENT_LEDGER_LATE_FEE_MONTHLY", "60")
		t.Setenv("RENT_LEDGER_ARREARS_CACHE_TTL", "30s")
		t.Setenv("RENT_REDIS_ENABLED", "true")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "test-app", cfg.App.Name)
		assert.Equal(t, "9000", cfg.App.Port)
		assert.Equal(t, "testdb.local", cfg.Database.Host)
		assert.Equal(t, 5433, cfg.Database.Port)
		assert.Equal(t, "testpass", cfg.Database.Password)
		assert.Equal(t, 50, cfg.Database.MaxOpenConns)
		assert.Equal(t, 10, cfg.Database.MaxIdleConns)
		assert.Equal(t, "60", cfg.Ledger.LateFee.Monthly)
		assert.Equal(t, 30*time.Second, cfg.Ledger.ArrearsCacheTTL)
		assert.True(t, cfg.Redis.Enabled)
	})

	t.Run("zero grace days is kept when set explicitly", func(t *testing.T) {
		t.Setenv("RENT_LEDGER_GRACE_DAYS", "0")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, 0, cfg.Ledger.GraceDays)
	})

	t.Run("sqlite driver uses the path as DSN", func(t *testing.T) {
		t.Setenv("RENT_DATABASE_DRIVER", "sqlite")
		t.Setenv("RENT_DATABASE_PATH", ":memory:")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, ":memory:", cfg.Database.DSN())
	})

	t.Run("rejects unknown driver", func(t *testing.T) {
		t.Setenv("RENT_DATABASE_DRIVER", "mysql")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "database.driver")
	})

	t.Run("validates MaxIdleConns cannot exceed MaxOpenConns", func(t *testing.T) {
		t.Setenv("RENT_DATABASE_MAX_OPEN_CONNS", "10")
		t.Setenv("RENT_DATABASE_MAX_IDLE_CONNS", "20")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cannot exceed")
	})

	t.Run("validates MaxIdleConns cannot be negative", func(t *testing.T) {
		t.Setenv("RENT_DATABASE_MAX_IDLE_CONNS", "-1")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "max_idle_conns cannot be negative")
	})

	t.Run("log export and profiling are opt in", func(t *testing.T) {
		cfg, err := Load()
		require.NoError(t, err)
		assert.False(t, cfg.Telemetry.LogsEnabled)
		assert.False(t, cfg.Telemetry.Profiling.Enabled)
		assert.Equal(t, "http://localhost:4040", cfg.Telemetry.Profiling.ServerAddress)

		t.Setenv("RENT_TELEMETRY_LOGS_ENABLED", "true")
		t.Setenv("RENT_TELEMETRY_PROFILING_ENABLED", "true")
		t.Setenv("RENT_TELEMETRY_PROFILING_SERVER_ADDRESS", "http://pyroscope:4040")
		t.Setenv("RENT_TELEMETRY_PROFILING_SPAN_PROFILES", "true")
		cfg, err = Load()
		require.NoError(t, err)
		assert.True(t, cfg.Telemetry.LogsEnabled)
		assert.True(t, cfg.Telemetry.Profiling.Enabled)
		assert.True(t, cfg.Telemetry.Profiling.SpanProfiles)
		assert.Equal(t, "http://pyroscope:4040", cfg.Telemetry.Profiling.ServerAddress)
	})

	t.Run("span profiles need the profiler", func(t *testing.T) {
		t.Setenv("RENT_TELEMETRY_PROFILING_SPAN_PROFILES", "true")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "span_profiles")
	})

	t.Run("rejects sampling ratio out of range", func(t *testing.T) {
		t.Setenv("RENT_TELEMETRY_SAMPLING_RATIO", "1.5")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "sampling_ratio")
	})
}

func TestLoad_ProductionValidation(t *testing.T) {
	setValidProductionBase := func(t *testing.T) {
		t.Setenv("RENT_APP_ENV", "production")
		t.Setenv("RENT_DATABASE_PASSWORD", "secure-password")
		t.Setenv("RENT_DATABASE_SSLMODE", "require")
	}

	t.Run("passes validation with valid production config", func(t *testing.T) {
		setValidProductionBase(t)

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "production", cfg.App.Env)
	})

	t.Run("requires database.password in production", func(t *testing.T) {
		setValidProductionBase(t)
		t.Setenv("RENT_DATABASE_PASSWORD", "")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "database.password is required in production")
	})

	t.Run("requires SSL enabled in production", func(t *testing.T) {
		setValidProductionBase(t)
		t.Setenv("RENT_DATABASE_SSLMODE", "disable")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "database.sslmode cannot be 'disable' in production")
	})

	t.Run("rejects sqlite in production", func(t *testing.T) {
		setValidProductionBase(t)
		t.Setenv("RENT_DATABASE_DRIVER", "sqlite")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "sqlite")
	})

	t.Run("rejects wildcard CORS in production", func(t *testing.T) {
		setValidProductionBase(t)
		t.Setenv("RENT_HTTP_CORS_ALLOW_ORIGINS", "*")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cors_allow_origins")
	})
}

func TestDatabaseConfig_DSN(t *testing.T) {
	t.Run("generates valid DSN", func(t *testing.T) {
		cfg := DatabaseConfig{
			Driver:   DriverPostgres,
			Host:     "localhost",
			Port:     5432,
			User:     "testuser",
			Password: "testpass",
			DBName:   "testdb",
			SSLMode:  "disable",
		}

		dsn := cfg.DSN()
		assert.Contains(t, dsn, "localhost:5432")
		assert.Contains(t, dsn, "testuser")
		assert.Contains(t, dsn, "testdb")
		assert.Contains(t, dsn, "sslmode=disable")
	})

	t.Run("escapes special characters in password", func(t *testing.T) {
		cfg := DatabaseConfig{
			Driver:   DriverPostgres,
			Host:     "localhost",
			Port:     5432,
			User:     "user",
			Password: "pass@word#123",
			DBName:   "db",
			SSLMode:  "disable",
		}

		assert.Contains(t, cfg.DSN(), "pass%40word%23123")
	})
}
