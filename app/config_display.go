package app

import (
	"log"
	"os"
	"sort"
	"strings"

	"outdooradvisor.app/config"
)

// ConfigDisplayer handles configuration and environment variable display
type ConfigDisplayer struct{}

// NewConfigDisplayer creates a new configuration displayer
func NewConfigDisplayer() *ConfigDisplayer {
	return &ConfigDisplayer{}
}

// PrintConfig prints all fields in the configuration
func (cd *ConfigDisplayer) PrintConfig(cfg *config.Config) {
	log.Println("==== APPLICATION CONFIGURATION ====")

	log.Printf("SERVER:\n")
	log.Printf("  Port: %d\n", cfg.Server.Port)

	log.Printf("\nDATABASE:\n")
	log.Printf("  Host: %s\n", cfg.Database.Host)
	log.Printf("  Port: %d\n", cfg.Database.Port)
	log.Printf("  User: %s\n", cfg.Database.User)
	log.Printf("  Password: %s\n", cd.maskString(cfg.Database.Password))
	log.Printf("  Name: %s\n", cfg.Database.Name)
	log.Printf("  SSLMode: %s\n", cfg.Database.SSLMode)

	log.Printf("\nFORECAST PROVIDERS:\n")
	log.Printf("  WeatherAPI Key: %s\n", cd.maskString(cfg.Weather.WeatherAPIKey))
	log.Printf("  WeatherAPI Base URL: %s\n", cfg.Weather.WeatherAPIBaseURL)
	log.Printf("  Open-Meteo Base URL: %s\n", cfg.Weather.OpenMeteoBaseURL)
	log.Printf("  Fallback Enabled: %t\n", cfg.Weather.EnableFallback)
	log.Printf("  Request Timeout: %v\n", cfg.Weather.RequestTimeout)
	log.Printf("  Forecast Days: %d\n", cfg.Weather.ForecastDays)

	log.Printf("\nCACHE:\n")
	log.Printf("  Type: %s\n", cfg.Cache.Type)
	log.Printf("  Freshness Window: %v\n", cfg.Cache.FreshnessWindow)
	log.Printf("  Max Age: %v\n", cfg.Cache.MaxAge)
	log.Printf("  Bucket Precision: %d\n", cfg.Cache.BucketPrecision)

	log.Printf("\nADVISORY:\n")
	log.Printf("  Match Window: %v\n", cfg.Matcher.Window)
	log.Printf("  Temperature Range: %.1f-%.1f F\n", cfg.Activity.MinTemperatureF, cfg.Activity.MaxTemperatureF)
	log.Printf("  Max Wind Speed: %.1f mph\n", cfg.Activity.MaxWindSpeedMph)
	log.Printf("  Blocked Conditions: %s\n", strings.Join(cfg.Activity.BlockedConditions, ", "))

	log.Printf("\nSCHEDULER:\n")
	log.Printf("  Advisory Interval: %v\n", cfg.Scheduler.AdvisoryInterval)
	log.Printf("  Event Lookahead: %v\n", cfg.Scheduler.EventLookahead)

	log.Printf("\nEMAIL:\n")
	log.Printf("  Enabled: %t\n", cfg.Email.Enabled)
	log.Printf("  SMTP Host: %s\n", cfg.Email.SMTPHost)
	log.Printf("  SMTP Port: %d\n", cfg.Email.SMTPPort)
	log.Printf("  SMTP Username: %s\n", cfg.Email.SMTPUsername)
	log.Printf("  SMTP Password: %s\n", cd.maskString(cfg.Email.SMTPPassword))
	log.Printf("  From: %s <%s>\n", cfg.Email.FromName, cfg.Email.FromAddress)

	log.Println("===================================")
}

// PrintAllEnvVars prints all environment variables available to the application
func (cd *ConfigDisplayer) PrintAllEnvVars() {
	log.Println("==== ENVIRONMENT VARIABLES ====")

	envVars := os.Environ()
	sort.Strings(envVars)

	for _, env := range envVars {
		pair := strings.SplitN(env, "=", 2)
		if len(pair) != 2 {
			continue
		}

		key := pair[0]
		value := pair[1]

		if cd.isSensitive(key) {
			value = cd.maskString(value)
		}

		log.Printf("%s=%s\n", key, value)
	}

	log.Println("===============================")
}

// maskString masks sensitive information like passwords and API keys
func (cd *ConfigDisplayer) maskString(s string) string {
	if len(s) <= 4 {
		return "****"
	}
	visible := len(s) / 4
	return s[:visible] + strings.Repeat("*", len(s)-visible)
}

// isSensitive checks if an environment variable key is considered sensitive
func (cd *ConfigDisplayer) isSensitive(key string) bool {
	sensitiveKeys := []string{
		"API_KEY", "PASSWORD", "SECRET", "TOKEN", "KEY", "PASS", "PWD",
	}

	key = strings.ToUpper(key)
	for _, sensitive := range sensitiveKeys {
		if strings.Contains(key, sensitive) {
			return true
		}
	}

	return false
}
