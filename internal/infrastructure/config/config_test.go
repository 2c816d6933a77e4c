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

		assert.Equal(t, "streetmart-backend", cfg.App.Name)
		assert.Equal(t, "development", cfg.App.Env)
		assert.Equal(t, "8080", cfg.App.Port)
		assert.Equal(t, DriverPostgres, cfg.Database.Driver)
		assert.Equal(t, "localhost", cfg.Database.Host)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, "streetmart", cfg.Database.DBName)
		assert.Equal(t, 25, cfg.Database.MaxOpenConns)
		assert.Equal(t, 5, cfg.Database.MaxIdleConns)
		assert.Equal(t, PricePolicyCatalog, cfg.Order.PricePolicy)
		assert.Equal(t, StorageStatic, cfg.Storage.Provider)
		assert.Equal(t, 15*time.Minute, cfg.JWT.AccessTokenExpiration)
		assert.False(t, cfg.Redis.Enabled)
		assert.False(t, cfg.Printing.Enabled)
	})

	t.Run("loads values from environment variables with MARKET prefix", func(t *testing.T) {
		t.Setenv("MARKET_APP_NAME", "test-app")
		t.Setenv("MARKET_APP_PORT", "9000")
		t.Setenv("MARKET_DATABASE_HOST", "testdb.local")
		t.Setenv("MARKET_DATABASE_PORT", "5433")
		t.Setenv("MARKET_DATABASE_MAX_OPEN_CONNS", "50")
		t.Setenv("MARKET_DATABASE_MAX_IDLE_CONNS", "10")
		t.Setenv("MARKET_ORDER_PRICE_POLICY", "client")
		t.Setenv("MARKET_REDIS_ENABLED", "true")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "test-app", cfg.App.Name)
		assert.Equal(t, "9000", cfg.App.Port)
		assert.Equal(t, "testdb.local", cfg.Database.Host)
		assert.Equal(t, 5433, cfg.Database.Port)
		assert.Equal(t, 50, cfg.Database.MaxOpenConns)
		assert.Equal(t, 10, cfg.Database.MaxIdleConns)
		assert.Equal(t, PricePolicyClient, cfg.Order.PricePolicy)
		assert.True(t, cfg.Redis.Enabled)
	})

	t.Run("validates MaxIdleConns cannot exceed MaxOpenConns", func(t *testing.T) {
		t.Setenv("MARKET_DATABASE_MAX_OPEN_CONNS", "10")
		t.Setenv("MARKET_DATABASE_MAX_IDLE_CONNS", "20")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cannot exceed")
	})

	t.Run("rejects unknown price policy", func(t *testing.T) {
		t.Setenv("MARKET_ORDER_PRICE_POLICY", "haggle")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "order.price_policy")
	})

	t.Run("rejects unknown driver", func(t *testing.T) {
		t.Setenv("MARKET_DATABASE_DRIVER", "mysql")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "database.driver")
	})

	t.Run("s3 storage requires bucket", func(t *testing.T) {
		t.Setenv("MARKET_STORAGE_PROVIDER", "s3")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "storage.bucket")

		t.Setenv("MARKET_STORAGE_BUCKET", "product-images")
		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "product-images", cfg.Storage.Bucket)
	})
}

func TestLoad_ProductionValidation(t *testing.T) {
	setValidProductionBase := func(t *testing.T) {
		t.Setenv("MARKET_APP_ENV", "production")
		t.Setenv("MARKET_JWT_SECRET", "this-is-a-very-secure-jwt-secret-key-32chars")
		t.Setenv("MARKET_DATABASE_PASSWORD", "secure-password")
		t.Setenv("MARKET_DATABASE_SSLMODE", "require")
		t.Setenv("MARKET_SWAGGER_ENABLED", "false")
	}

	t.Run("passes validation with valid production config", func(t *testing.T) {
		setValidProductionBase(t)

		cfg, err := Load()
		require.NoError(t, err)
		assert.True(t, cfg.IsProduction())
	})

	tests := []struct {
		name    string
		key     string
		value   string
		message string
	}{
		{"requires jwt.secret", "MARKET_JWT_SECRET", "", "jwt.secret is required in production"},
		{"requires long jwt.secret", "MARKET_JWT_SECRET", "short-secret", "jwt.secret must be at least 32 characters"},
		{"requires database password", "MARKET_DATABASE_PASSWORD", "", "database.password is required in production"},
		{"requires ssl", "MARKET_DATABASE_SSLMODE", "disable", "database.sslmode cannot be 'disable' in production"},
		{"rejects wildcard CORS", "MARKET_HTTP_CORS_ALLOW_ORIGINS", "*", "cors_allow_origins cannot be '*'"},
		{"rejects open swagger", "MARKET_SWAGGER_ENABLED", "true", "swagger endpoint must be disabled"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setValidProductionBase(t)
			t.Setenv(tt.key, tt.value)

			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.message)
		})
	}

	t.Run("passes with swagger enabled and require_auth", func(t *testing.T) {
		setValidProductionBase(t)
		t.Setenv("MARKET_SWAGGER_ENABLED", "true")
		t.Setenv("MARKET_SWAGGER_REQUIRE_AUTH", "true")

		cfg, err := Load()
		require.NoError(t, err)
		assert.True(t, cfg.Swagger.RequireAuth)
	})

	t.Run("sqlite skips database password checks", func(t *testing.T) {
		setValidProductionBase(t)
		t.Setenv("MARKET_DATABASE_DRIVER", "sqlite")
		t.Setenv("MARKET_DATABASE_PASSWORD", "")

		_, err := Load()
		require.NoError(t, err)
	})
}

func TestDatabaseConfig_DSN(t *testing.T) {
	t.Run("generates valid postgres DSN", func(t *testing.T) {
		cfg := DatabaseConfig{Driver: DriverPostgres, Host: "localhost", Port: 5432, User: "testuser", Password: "testpass", DBName: "testdb", SSLMode: "disable"}

		dsn := cfg.DSN()
		assert.Contains(t, dsn, "localhost:5432")
		assert.Contains(t, dsn, "testuser")
		assert.Contains(t, dsn, "testdb")
		assert.Contains(t, dsn, "sslmode=disable")
	})

	t.Run("escapes special characters in password", func(t *testing.T) {
		cfg := DatabaseConfig{Driver: DriverPostgres, Host: "localhost", Port: 5432, User: "user", Password: "pass@word#123", DBName: "db", SSLMode: "disable"}
		assert.Contains(t, cfg.DSN(), "pass%40word%23123")
	})

	t.Run("sqlite DSN is the file path", func(t *testing.T) {
		cfg := DatabaseConfig{Driver: DriverSQLite, SQLitePath: ":memory:"}
		assert.Equal(t, ":memory:", cfg.DSN())
	})
}
