package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	// Test case 1: Required fields - should return error when missing
	t.Run("RequiredFieldsMissing", func(t *testing.T) {
		os.Clearenv()

		config, err := LoadConfig()

		assert.Error(t, err)
		assert.Nil(t, config)
		assert.Contains(t, err.Error(), "required key WEATHER_API_KEY missing")
	})

	// Test case 2: Default values - should use defaults when not provided
	t.Run("DefaultValues", func(t *testing.T) {
		os.Clearenv()

		require.NoError(t, os.Setenv("WEATHER_API_KEY", "test-api-key"))

		config, err := LoadConfig()

		assert.NoError(t, err)
		assert.NotNil(t, config)
		assert.Equal(t, 8080, config.Server.Port)
		assert.Equal(t, "localhost", config.Database.Host)
		assert.Equal(t, 5432, config.Database.Port)
		assert.Equal(t, "postgres", config.Database.User)
		assert.Equal(t, "outdooradvisor", config.Database.Name)
		assert.Equal(t, "disable", config.Database.SSLMode)
		assert.Equal(t, "https://api.weatherapi.com/v1", config.Weather.WeatherAPIBaseURL)
		assert.Equal(t, "https://api.open-meteo.com/v1", config.Weather.OpenMeteoBaseURL)
		assert.True(t, config.Weather.EnableFallback)
		assert.Equal(t, 5*time.Second, config.Weather.RequestTimeout)
		assert.Equal(t, 3, config.Weather.ForecastDays)
		assert.Equal(t, 30*time.Minute, config.Cache.FreshnessWindow)
		assert.Equal(t, 6*time.Hour, config.Cache.MaxAge)
		assert.Equal(t, 3, config.Cache.BucketPrecision)
		assert.Equal(t, "memory", config.Cache.Type)
		assert.Equal(t, 8*time.Hour, config.Matcher.Window)
		assert.Equal(t, 40.0, config.Activity.MinTemperatureF)
		assert.Equal(t, 90.0, config.Activity.MaxTemperatureF)
		assert.Equal(t, 25.0, config.Activity.MaxWindSpeedMph)
		assert.Equal(t, []string{"rain", "storm", "snow", "thunder", "sleet", "hail"}, config.Activity.BlockedConditions)
		assert.Equal(t, time.Hour, config.Scheduler.AdvisoryInterval)
		assert.Equal(t, 48*time.Hour, config.Scheduler.EventLookahead)
	})

	// Test case 3: Custom values - should use provided values
	t.Run("CustomValues", func(t *testing.T) {
		os.Clearenv()

		require.NoError(t, os.Setenv("SERVER_PORT", "9090"))
		require.NoError(t, os.Setenv("DB_HOST", "test-db-host"))
		require.NoError(t, os.Setenv("DB_PORT", "5433"))
		require.NoError(t, os.Setenv("DB_NAME", "test-db"))
		require.NoError(t, os.Setenv("DB_SSL_MODE", "require"))
		require.NoError(t, os.Setenv("WEATHER_API_KEY", "custom-api-key"))
		require.NoError(t, os.Setenv("WEATHER_API_BASE_URL", "https://test-api.example.com"))
		require.NoError(t, os.Setenv("WEATHER_ENABLE_FALLBACK", "false"))
		require.NoError(t, os.Setenv("CACHE_TYPE", "redis"))
		require.NoError(t, os.Setenv("CACHE_FRESHNESS_WINDOW", "15m"))
		require.NoError(t, os.Setenv("CACHE_MAX_AGE", "4h"))
		require.NoError(t, os.Setenv("CACHE_BUCKET_PRECISION", "2"))
		require.NoError(t, os.Setenv("MATCH_WINDOW", "6h"))
		require.NoError(t, os.Setenv("ACTIVITY_MIN_TEMPERATURE_F", "32"))
		require.NoError(t, os.Setenv("ACTIVITY_MAX_TEMPERATURE_F", "95"))
		require.NoError(t, os.Setenv("ACTIVITY_MAX_WIND_SPEED_MPH", "20"))
		require.NoError(t, os.Setenv("ACTIVITY_BLOCKED_CONDITIONS", "rain,thunder,blizzard"))
		require.NoError(t, os.Setenv("ADVISORY_INTERVAL", "30m"))

		config, err := LoadConfig()

		assert.NoError(t, err)
		assert.NotNil(t, config)
		assert.Equal(t, 9090, config.Server.Port)
		assert.Equal(t, "test-db-host", config.Database.Host)
		assert.Equal(t, 5433, config.Database.Port)
		assert.Equal(t, "test-db", config.Database.Name)
		assert.Equal(t, "require", config.Database.SSLMode)
		assert.Equal(t, "custom-api-key", config.Weather.WeatherAPIKey)
		assert.Equal(t, "https://test-api.example.com", config.Weather.WeatherAPIBaseURL)
		assert.False(t, config.Weather.EnableFallback)
		assert.Equal(t, "redis", config.Cache.Type)
		assert.Equal(t, 15*time.Minute, config.Cache.FreshnessWindow)
		assert.Equal(t, 4*time.Hour, config.Cache.MaxAge)
		assert.Equal(t, 2, config.Cache.BucketPrecision)
		assert.Equal(t, 6*time.Hour, config.Matcher.Window)
		assert.Equal(t, 32.0, config.Activity.MinTemperatureF)
		assert.Equal(t, 95.0, config.Activity.MaxTemperatureF)
		assert.Equal(t, 20.0, config.Activity.MaxWindSpeedMph)
		assert.Equal(t, []string{"rain", "thunder", "blizzard"}, config.Activity.BlockedConditions)
		assert.Equal(t, 30*time.Minute, config.Scheduler.AdvisoryInterval)
	})
}

func TestDatabaseConfig_GetDSN(t *testing.T) {
	config := DatabaseConfig{
		Host:     "db.example.com",
		Port:     5432,
		User:     "advisor",
		Password: "secret",
		Name:     "events",
		SSLMode:  "require",
	}

	dsn := config.GetDSN()
	assert.Equal(t, "host=db.example.com port=5432 user=advisor password=secret dbname=events sslmode=require", dsn)
}

func TestServerConfig_Validate(t *testing.T) {
	assert.NoError(t, (&ServerConfig{Port: 8080}).Validate())
	assert.Error(t, (&ServerConfig{Port: 0}).Validate())
	assert.Error(t, (&ServerConfig{Port: 70000}).Validate())
}

func TestDatabaseConfig_Validate(t *testing.T) {
	valid := DatabaseConfig{Host: "localhost", Port: 5432, User: "u", Name: "n", SSLMode: "disable"}
	assert.NoError(t, valid.Validate())

	t.Run("EmptyHost", func(t *testing.T) {
		cfg := valid
		cfg.Host = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("InvalidSSLMode", func(t *testing.T) {
		cfg := valid
		cfg.SSLMode = "sometimes"
		err := cfg.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "DB_SSL_MODE")
	})
}

func TestWeatherConfig_Validate(t *testing.T) {
	valid := WeatherConfig{
		WeatherAPIKey:     "key",
		WeatherAPIBaseURL: "https://api.weatherapi.com/v1",
		RequestTimeout:    5 * time.Second,
		ForecastDays:      3,
	}
	assert.NoError(t, valid.Validate())

	t.Run("MissingKey", func(t *testing.T) {
		cfg := valid
		cfg.WeatherAPIKey = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("BadBaseURL", func(t *testing.T) {
		cfg := valid
		cfg.WeatherAPIBaseURL = "ftp://example.com"
		assert.Error(t, cfg.Validate())
	})

	t.Run("TimeoutTooShort", func(t *testing.T) {
		cfg := valid
		cfg.RequestTimeout = 100 * time.Millisecond
		assert.Error(t, cfg.Validate())
	})

	t.Run("ForecastDaysOutOfRange", func(t *testing.T) {
		cfg := valid
		cfg.ForecastDays = 0
		assert.Error(t, cfg.Validate())
		cfg.ForecastDays = 11
		assert.Error(t, cfg.Validate())
	})
}

func TestCacheConfig_Validate(t *testing.T) {
	valid := CacheConfig{
		FreshnessWindow: 30 * time.Minute,
		MaxAge:          6 * time.Hour,
		BucketPrecision: 3,
		Type:            "memory",
		RedisAddr:       "localhost:6379",
	}
	assert.NoError(t, valid.Validate())

	t.Run("UnknownType", func(t *testing.T) {
		cfg := valid
		cfg.Type = "memcached"
		assert.Error(t, cfg.Validate())
	})

	t.Run("CeilingBelowFreshness", func(t *testing.T) {
		cfg := valid
		cfg.MaxAge = 10 * time.Minute
		assert.Error(t, cfg.Validate())
	})

	t.Run("PrecisionOutOfRange", func(t *testing.T) {
		cfg := valid
		cfg.BucketPrecision = 9
		assert.Error(t, cfg.Validate())
	})

	t.Run("RedisWithoutAddr", func(t *testing.T) {
		cfg := valid
		cfg.Type = "redis"
		cfg.RedisAddr = ""
		assert.Error(t, cfg.Validate())
	})
}

func TestMatcherConfig_Validate(t *testing.T) {
	assert.NoError(t, (&MatcherConfig{Window: 8 * time.Hour}).Validate())
	assert.Error(t, (&MatcherConfig{Window: 30 * time.Minute}).Validate())
	assert.Error(t, (&MatcherConfig{Window: 48 * time.Hour}).Validate())
}

func TestActivityConfig_Validate(t *testing.T) {
	valid := ActivityConfig{
		MinTemperatureF:   40,
		MaxTemperatureF:   90,
		MaxWindSpeedMph:   25,
		BlockedConditions: []string{"rain", "storm"},
	}
	assert.NoError(t, valid.Validate())

	t.Run("InvertedTemperatureRange", func(t *testing.T) {
		cfg := valid
		cfg.MinTemperatureF = 95
		assert.Error(t, cfg.Validate())
	})

	t.Run("NonPositiveWind", func(t *testing.T) {
		cfg := valid
		cfg.MaxWindSpeedMph = 0
		assert.Error(t, cfg.Validate())
	})

	t.Run("EmptyKeyword", func(t *testing.T) {
		cfg := valid
		cfg.BlockedConditions = []string{"rain", " "}
		assert.Error(t, cfg.Validate())
	})
}

func TestSchedulerConfig_Validate(t *testing.T) {
	assert.NoError(t, (&SchedulerConfig{AdvisoryInterval: time.Hour, EventLookahead: 48 * time.Hour}).Validate())
	assert.Error(t, (&SchedulerConfig{AdvisoryInterval: time.Second, EventLookahead: 48 * time.Hour}).Validate())
	assert.Error(t, (&SchedulerConfig{AdvisoryInterval: time.Hour, EventLookahead: time.Minute}).Validate())
}

func TestEmailConfig_Validate(t *testing.T) {
	t.Run("DisabledSkipsValidation", func(t *testing.T) {
		assert.NoError(t, (&EmailConfig{Enabled: false}).Validate())
	})

	t.Run("EnabledRequiresHostAndFrom", func(t *testing.T) {
		valid := EmailConfig{Enabled: true, SMTPHost: "localhost", SMTPPort: 1025, FromAddress: "advisor@localhost"}
		assert.NoError(t, valid.Validate())

		cfg := valid
		cfg.SMTPHost = ""
		assert.Error(t, cfg.Validate())

		cfg = valid
		cfg.SMTPPort = 0
		assert.Error(t, cfg.Validate())

		cfg = valid
		cfg.FromAddress = ""
		assert.Error(t, cfg.Validate())
	})
}
