package config

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

var Empty = new(Config)

// Storage backends selectable through STORAGE.
const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
	StorageDynamoDB = "dynamodb"
)

type Config struct {
	AppEnv       string `envconfig:"APP_ENV"`
	Port         int    `envconfig:"PORT"`
	SentryDSN    string `envconfig:"SENTRY_DSN"`
	AllowOrigins string `envconfig:"ALLOW_ORIGINS"`
	LogLevel     string `envconfig:"LOG_LEVEL" default:"info"`
	Storage      string `envconfig:"STORAGE" default:"postgres"`
	// RateLimit is the allowed requests per second per client IP. Zero disables limiting.
	RateLimit float64 `envconfig:"RATE_LIMIT" default:"20"`

	DB struct {
		Driver    string `envconfig:"DB_DRIVER"`
		Name      string `envconfig:"DB_NAME"`
		Host      string `envconfig:"DB_HOST"`
		Port      int    `envconfig:"DB_PORT"`
		User      string `envconfig:"DB_USER"`
		Pass      string `envconfig:"DB_PASS"`
		EnableSSL bool   `envconfig:"ENABLE_SSL"`
	}
	DynamoDB struct {
		Region        string `envconfig:"DDB_REGION"`
		Endpoint      string `envconfig:"DDB_ENDPOINT"`
		AccessKey     string `envconfig:"DDB_ACCESS_KEY"`
		SecretKey     string `envconfig:"DDB_SECRET_KEY"`
		SessionToken  string `envconfig:"DDB_SESSION_TOKEN"`
		UsersTable    string `envconfig:"DDB_USERS_TABLE" default:"filmorate_users"`
		FilmsTable    string `envconfig:"DDB_FILMS_TABLE" default:"filmorate_films"`
		CountersTable string `envconfig:"DDB_COUNTERS_TABLE" default:"filmorate_counters"`
		// CreateTables creates missing tables on startup.
		CreateTables bool `envconfig:"DDB_CREATE_TABLES"`
	}
}

func LoadConfig() (*Config, error) {
	// load default .env file, ignore the error
	_ = godotenv.Load()

	cfg := new(Config)
	err := envconfig.Process("", cfg)
	if err != nil {
		return nil, fmt.Errorf("load config error: %v", err)
	}

	switch cfg.Storage {
	case StoragePostgres, StorageMemory, StorageDynamoDB:
	default:
		return nil, fmt.Errorf("load config error: unknown storage %q", cfg.Storage)
	}

	return cfg, nil
}
