package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"outdooradvisor.app/errors"
)

// Config represents the application configuration structure
type Config struct {
	Server    ServerConfig    `split_words:"true"`
	Database  DatabaseConfig  `split_words:"true"`
	Weather   WeatherConfig   `split_words:"true"`
	Cache     CacheConfig     `split_words:"true"`
	Matcher   MatcherConfig   `split_words:"true"`
	Activity  ActivityConfig  `split_words:"true"`
	Scheduler SchedulerConfig `split_words:"true"`
	Email     EmailConfig     `split_words:"true"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port int `envconfig:"SERVER_PORT" default:"8080"`
}

// DatabaseConfig contains connection settings for the event registry database
type DatabaseConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     int    `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" default:"postgres"`
	Password string `envconfig:"DB_PASSWORD" default:"postgres"`
	Name     string `envconfig:"DB_NAME" default:"outdooradvisor"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
}

// GetDSN returns a formatted database connection string
func (c DatabaseConfig) GetDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
}

// WeatherConfig contains settings for the forecast provider clients
type WeatherConfig struct {
	WeatherAPIKey     string        `envconfig:"WEATHER_API_KEY" required:"true"`
	WeatherAPIBaseURL string        `envconfig:"WEATHER_API_BASE_URL" default:"https://api.weatherapi.com/v1"`
	OpenMeteoBaseURL  string        `envconfig:"OPEN_METEO_BASE_URL" default:"https://api.open-meteo.com/v1"`
	EnableFallback    bool          `envconfig:"WEATHER_ENABLE_FALLBACK" default:"true"`
	RequestTimeout    time.Duration `envconfig:"WEATHER_REQUEST_TIMEOUT" default:"5s"`
	ForecastDays      int           `envconfig:"WEATHER_FORECAST_DAYS" default:"3"`
}

// CacheConfig contains settings for the forecast bundle cache
type CacheConfig struct {
	// FreshnessWindow is the maximum bundle age before a refresh is attempted.
	FreshnessWindow time.Duration `envconfig:"CACHE_FRESHNESS_WINDOW" default:"30m"`
	// MaxAge is the hard ceiling; bundles older than this are never served.
	MaxAge time.Duration `envconfig:"CACHE_MAX_AGE" default:"6h"`
	// BucketPrecision is the number of coordinate decimals per cache bucket.
	BucketPrecision int    `envconfig:"CACHE_BUCKET_PRECISION" default:"3"`
	Type            string `envconfig:"CACHE_TYPE" default:"memory"`

	RedisAddr         string        `envconfig:"CACHE_REDIS_ADDR" default:"localhost:6379"`
	RedisPassword     string        `envconfig:"CACHE_REDIS_PASSWORD" default:""`
	RedisDB           int           `envconfig:"CACHE_REDIS_DB" default:"0"`
	RedisDialTimeout  time.Duration `envconfig:"CACHE_REDIS_DIAL_TIMEOUT" default:"5s"`
	RedisReadTimeout  time.Duration `envconfig:"CACHE_REDIS_READ_TIMEOUT" default:"3s"`
	RedisWriteTimeout time.Duration `envconfig:"CACHE_REDIS_WRITE_TIMEOUT" default:"3s"`
}

// MatcherConfig contains settings for forecast window matching
type MatcherConfig struct {
	// Window is the maximum allowed distance between an event and the sample
	// used to evaluate it, applied symmetrically around the event time.
	Window time.Duration `envconfig:"MATCH_WINDOW" default:"8h"`
}

// ActivityConfig contains the activity suitability thresholds
type ActivityConfig struct {
	MinTemperatureF   float64  `envconfig:"ACTIVITY_MIN_TEMPERATURE_F" default:"40"`
	MaxTemperatureF   float64  `envconfig:"ACTIVITY_MAX_TEMPERATURE_F" default:"90"`
	MaxWindSpeedMph   float64  `envconfig:"ACTIVITY_MAX_WIND_SPEED_MPH" default:"25"`
	BlockedConditions []string `envconfig:"ACTIVITY_BLOCKED_CONDITIONS" default:"rain,storm,snow,thunder,sleet,hail"`
}

// SchedulerConfig contains settings for the background advisory jobs
type SchedulerConfig struct {
	AdvisoryInterval time.Duration `envconfig:"ADVISORY_INTERVAL" default:"1h"`
	EventLookahead   time.Duration `envconfig:"EVENT_LOOKAHEAD" default:"48h"`
}

// EmailConfig contains SMTP settings for advisory notification emails
type EmailConfig struct {
	Enabled      bool   `envconfig:"EMAIL_ENABLED" default:"false"`
	SMTPHost     string `envconfig:"EMAIL_SMTP_HOST" default:"localhost"`
	SMTPPort     int    `envconfig:"EMAIL_SMTP_PORT" default:"587"`
	SMTPUsername string `envconfig:"EMAIL_SMTP_USERNAME" default:""`
	SMTPPassword string `envconfig:"EMAIL_SMTP_PASSWORD" default:""`
	FromName     string `envconfig:"EMAIL_FROM_NAME" default:"Outdoor Activity Advisor"`
	FromAddress  string `envconfig:"EMAIL_FROM_ADDRESS" default:"advisor@localhost"`
}

// LoadConfig loads and validates application configuration from environment variables
func LoadConfig() (*Config, error) {
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		return nil, errors.NewConfigurationError("error processing config", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if err := c.Server.Validate(); err != nil {
		return err
	}
	if err := c.Database.Validate(); err != nil {
		return err
	}
	if err := c.Weather.Validate(); err != nil {
		return err
	}
	if err := c.Cache.Validate(); err != nil {
		return err
	}
	if err := c.Matcher.Validate(); err != nil {
		return err
	}
	if err := c.Activity.Validate(); err != nil {
		return err
	}
	if err := c.Scheduler.Validate(); err != nil {
		return err
	}
	if err := c.Email.Validate(); err != nil {
		return err
	}
	return nil
}

// Validate checks server configuration
func (s *ServerConfig) Validate() error {
	if s.Port < 1 || s.Port > 65535 {
		return errors.NewConfigurationError("SERVER_PORT must be between 1 and 65535", nil)
	}
	return nil
}

// ValidateSSLMode validates the SSL mode configuration
func (d *DatabaseConfig) ValidateSSLMode() error {
	validSSLModes := []string{"disable", "require", "verify-ca", "verify-full"}
	for _, mode := range validSSLModes {
		if d.SSLMode == mode {
			return nil
		}
	}
	return errors.NewConfigurationError(
		fmt.Sprintf("DB_SSL_MODE must be one of: %s", strings.Join(validSSLModes, ", ")), nil)
}

// Validate checks database configuration
func (d *DatabaseConfig) Validate() error {
	if d.Host == "" {
		return errors.NewConfigurationError("DB_HOST cannot be empty", nil)
	}
	if d.Port < 1 || d.Port > 65535 {
		return errors.NewConfigurationError("DB_PORT must be between 1 and 65535", nil)
	}
	if d.User == "" {
		return errors.NewConfigurationError("DB_USER cannot be empty", nil)
	}
	if d.Name == "" {
		return errors.NewConfigurationError("DB_NAME cannot be empty", nil)
	}
	if err := d.ValidateSSLMode(); err != nil {
		return err
	}
	return nil
}

// Validate checks forecast provider configuration
func (w *WeatherConfig) Validate() error {
	if w.WeatherAPIKey == "" {
		return errors.NewConfigurationError("WEATHER_API_KEY is required", nil)
	}
	if w.WeatherAPIBaseURL == "" {
		return errors.NewConfigurationError("WEATHER_API_BASE_URL cannot be empty", nil)
	}
	if !strings.HasPrefix(w.WeatherAPIBaseURL, "http://") && !strings.HasPrefix(w.WeatherAPIBaseURL, "https://") {
		return errors.NewConfigurationError("WEATHER_API_BASE_URL must start with http:// or https://", nil)
	}
	if w.EnableFallback && w.OpenMeteoBaseURL == "" {
		return errors.NewConfigurationError("OPEN_METEO_BASE_URL cannot be empty when fallback is enabled", nil)
	}
	if w.RequestTimeout < time.Second {
		return errors.NewConfigurationError("WEATHER_REQUEST_TIMEOUT must be at least 1 second", nil)
	}
	if w.ForecastDays < 1 || w.ForecastDays > 10 {
		return errors.NewConfigurationError("WEATHER_FORECAST_DAYS must be between 1 and 10", nil)
	}
	return nil
}

// Validate checks cache configuration
func (c *CacheConfig) Validate() error {
	if c.Type != "memory" && c.Type != "redis" {
		return errors.NewConfigurationError("CACHE_TYPE must be either 'memory' or 'redis'", nil)
	}
	if c.FreshnessWindow < time.Minute {
		return errors.NewConfigurationError("CACHE_FRESHNESS_WINDOW must be at least 1 minute", nil)
	}
	if c.MaxAge <= c.FreshnessWindow {
		return errors.NewConfigurationError("CACHE_MAX_AGE must exceed CACHE_FRESHNESS_WINDOW", nil)
	}
	if c.BucketPrecision < 0 || c.BucketPrecision > 6 {
		return errors.NewConfigurationError("CACHE_BUCKET_PRECISION must be between 0 and 6", nil)
	}
	if c.Type == "redis" && c.RedisAddr == "" {
		return errors.NewConfigurationError("CACHE_REDIS_ADDR cannot be empty when CACHE_TYPE is redis", nil)
	}
	return nil
}

// Validate checks matcher configuration
func (m *MatcherConfig) Validate() error {
	if m.Window < time.Hour {
		return errors.NewConfigurationError("MATCH_WINDOW must be at least 1 hour", nil)
	}
	if m.Window > 24*time.Hour {
		return errors.NewConfigurationError("MATCH_WINDOW cannot exceed 24 hours", nil)
	}
	return nil
}

// Validate checks activity threshold configuration
func (a *ActivityConfig) Validate() error {
	if a.MinTemperatureF >= a.MaxTemperatureF {
		return errors.NewConfigurationError("ACTIVITY_MIN_TEMPERATURE_F must be below ACTIVITY_MAX_TEMPERATURE_F", nil)
	}
	if a.MaxWindSpeedMph <= 0 {
		return errors.NewConfigurationError("ACTIVITY_MAX_WIND_SPEED_MPH must be positive", nil)
	}
	for _, keyword := range a.BlockedConditions {
		if strings.TrimSpace(keyword) == "" {
			return errors.NewConfigurationError("ACTIVITY_BLOCKED_CONDITIONS cannot contain empty keywords", nil)
		}
	}
	return nil
}

// Validate checks scheduler configuration
func (s *SchedulerConfig) Validate() error {
	if s.AdvisoryInterval < time.Minute {
		return errors.NewConfigurationError("ADVISORY_INTERVAL must be at least 1 minute", nil)
	}
	if s.EventLookahead < time.Hour {
		return errors.NewConfigurationError("EVENT_LOOKAHEAD must be at least 1 hour", nil)
	}
	return nil
}

// Validate checks email configuration, only enforced when notifications are enabled
func (e *EmailConfig) Validate() error {
	if !e.Enabled {
		return nil
	}
	if e.SMTPHost == "" {
		return errors.NewConfigurationError("EMAIL_SMTP_HOST cannot be empty when email is enabled", nil)
	}
	if e.SMTPPort < 1 || e.SMTPPort > 65535 {
		return errors.NewConfigurationError("EMAIL_SMTP_PORT must be between 1 and 65535", nil)
	}
	if e.FromAddress == "" {
		return errors.NewConfigurationError("EMAIL_FROM_ADDRESS cannot be empty when email is enabled", nil)
	}
	return nil
}
