package config

import (
	"errors"
	"time"

	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
)

// ErrMissingDatabaseURL is returned when DATABASE_URL is not set.
var ErrMissingDatabaseURL = errors.New("DATABASE_URL environment variable is missing")

// Config holds the runtime settings of the service.
type Config struct {
	AppPort           string
	DatabaseURL       string
	DBMaxOpenConns    int
	DBMaxIdleConns    int
	DBConnMaxLifetime time.Duration
	DBLogLevel        string
	BcryptCost        int
	RabbitMQURL       string // empty disables event publishing
	CORSAllowOrigins  string
}

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", ":8000")
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)
	v.SetDefault("DB_CONN_MAX_LIFETIME", 30*time.Minute)
	v.SetDefault("DB_LOG_LEVEL", "warn")
	v.SetDefault("BCRYPT_COST", bcrypt.DefaultCost)
	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("CORS_ALLOW_ORIGINS", "*")
}

// Load reads the configuration from environment variables through v.
// DATABASE_URL is the only required key.
func Load(v *viper.Viper) (Config, error) {
	SetDefaults(v)
	v.AutomaticEnv()

	cfg := Config{
		AppPort:           v.GetString("APP_PORT"),
		DatabaseURL:       v.GetString("DATABASE_URL"),
		DBMaxOpenConns:    v.GetInt("DB_MAX_OPEN_CONNS"),
		DBMaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
		DBConnMaxLifetime: v.GetDuration("DB_CONN_MAX_LIFETIME"),
		DBLogLevel:        v.GetString("DB_LOG_LEVEL"),
		BcryptCost:        v.GetInt("BCRYPT_COST"),
		RabbitMQURL:       v.GetString("RABBITMQ_URL"),
		CORSAllowOrigins:  v.GetString("CORS_ALLOW_ORIGINS"),
	}
	if cfg.DatabaseURL == "" {
		return Config{}, ErrMissingDatabaseURL
	}
	if cfg.BcryptCost < bcrypt.MinCost || cfg.BcryptCost > bcrypt.MaxCost {
		cfg.BcryptCost = bcrypt.DefaultCost
	}
	return cfg, nil
}
