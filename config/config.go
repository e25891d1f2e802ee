package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	JWTSecret         string `mapstructure:"JWT_SECRET"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Admin portal credentials. The hash is a bcrypt digest of the admin password.
	AdminPasswordHash string `mapstructure:"ADMIN_PASSWORD_HASH"`

	// Redis configuration for the availability cache.
	RedisAddr            string `mapstructure:"REDIS_ADDR"`
	RedisPassword        string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB         int    `mapstructure:"REDIS_CACHE_DB"`
	AvailabilityCacheTTL int    `mapstructure:"AVAILABILITY_CACHE_TTL_SECONDS"`

	// External calendar configuration.
	CalendarID       string `mapstructure:"CALENDAR_ID"`
	CalendarTimezone string `mapstructure:"CALENDAR_TIMEZONE"`

	// Google OAuth client settings. Credentials and tokens are JSON files on disk,
	// matching the files produced by the Google Cloud console and the consent flow.
	GoogleOAuthCredentials string `mapstructure:"GOOGLE_OAUTH_CREDENTIALS"`
	GoogleOAuthTokens      string `mapstructure:"GOOGLE_OAUTH_TOKENS"`
	OAuthRedirectURL       string `mapstructure:"OAUTH_REDIRECT_URL"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CACHE_DB", 0)
	viper.SetDefault("AVAILABILITY_CACHE_TTL_SECONDS", 60)
	viper.SetDefault("CALENDAR_ID", "admin@alfredsmart.com")
	viper.SetDefault("CALENDAR_TIMEZONE", "America/Mexico_City")
	viper.SetDefault("GOOGLE_OAUTH_CREDENTIALS", "google-oauth-client.json")
	viper.SetDefault("GOOGLE_OAUTH_TOKENS", "google-oauth-tokens.json")
	viper.SetDefault("OAUTH_REDIRECT_URL", "http://localhost:8080/api/auth/google-calendar/callback")

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
