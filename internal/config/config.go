package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Log struct {
		Level     string
		Format    string
		Component string
		Source    bool
	}

	DB struct {
		// SQLitePath is the default local store. MySQLDSN, when set,
		// switches the driver to MySQL.
		SQLitePath string
		MySQLDSN   string
	}

	Redis struct {
		Addr     string
		Password string
		DB       int
	}

	HTTP struct {
		Host string
		Port string
	}

	Auth struct {
		JWTSecret string
		TokenTTL  time.Duration
	}

	Weather struct {
		BaseURL      string
		APIKey       string
		MaxCelsius   float64
		FetchTimeout time.Duration
	}

	App struct {
		ENV string
	}
}

func New() *Config {
	cfg := &Config{}

	// Logger
	cfg.Log.Level = getEnvDefault("LOG_LEVEL", "info")
	cfg.Log.Format = getEnvDefault("LOG_FORMAT", "text")
	cfg.Log.Component = getEnvDefault("LOG_COMPONENT", "http_server")
	cfg.Log.Source = isTruthy(os.Getenv("LOG_SOURCE"))

	// Database
	cfg.DB.SQLitePath = getEnvDefault("SQLITE_PATH", "hydromate.db")
	cfg.DB.MySQLDSN = os.Getenv("MYSQL_DSN")

	// Redis
	cfg.Redis.Addr = getEnvDefault("REDIS_ADDR", "localhost:6379")
	cfg.Redis.Password = getEnvDefault("REDIS_PASSWORD", "")
	if dbStr := getEnvDefault("REDIS_DB", "0"); dbStr != "" {
		if dbInt, err := strconv.Atoi(dbStr); err == nil {
			cfg.Redis.DB = dbInt
		}
	}

	// HTTP
	cfg.HTTP.Host = getEnvDefault("HTTP_HOST", "0.0.0.0")
	cfg.HTTP.Port = getEnvDefault("HTTP_PORT", "8080")

	// Auth
	cfg.Auth.JWTSecret = getEnvDefault("JWT_SECRET", "dev-only-secret")
	cfg.Auth.TokenTTL = getEnvDuration("TOKEN_TTL", 24*time.Hour)

	// Weather
	cfg.Weather.BaseURL = getEnvDefault("WEATHER_BASE_URL", "https://api.openweathermap.org/data/2.5/weather")
	cfg.Weather.APIKey = os.Getenv("WEATHER_API_KEY")
	cfg.Weather.MaxCelsius = getEnvFloat("WEATHER_MAX_CELSIUS", 25)
	cfg.Weather.FetchTimeout = getEnvDuration("WEATHER_TIMEOUT", 5*time.Second)

	cfg.App.ENV = getEnvDefault("APP_ENV", "development")

	return cfg
}

func getEnvDefault(k, def string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return def
}

func getEnvDuration(k string, def time.Duration) time.Duration {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func getEnvFloat(k string, def float64) float64 {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func isTruthy(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "y", "on":
		return true
	}
	return false
}
