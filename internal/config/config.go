// Package config loads runtime settings from the environment (optionally
// seeded from a .env file) through Viper.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
)

const (
	StorePostgres = "postgres"
	StoreSQLite   = "sqlite"
	StoreMongo    = "mongo"
	StoreMemory   = "memory"
)

var ErrMissingSecret = errors.New("config: JWT_SECRET is required")

type Config struct {
	App   AppConfig
	HTTP  HTTPConfig
	JWT   JWTConfig
	Store StoreConfig
	DB    DBConfig
	Mongo MongoConfig
}

// AppConfig: Env is development|staging|production.
type AppConfig struct {
	Env      string
	LogLevel string
}

type HTTPConfig struct {
	Host            string
	Port            int
	ShutdownTimeout time.Duration
}

// Addr returns host:port.
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

type JWTConfig struct {
	Secret     string
	BcryptCost int
}

type StoreConfig struct {
	Driver string
}

type DBConfig struct {
	DatabaseURL string
	MaxOpen     int
	MaxIdle     int
	MaxLifetime time.Duration
}

type MongoConfig struct {
	URI      string
	Database string
}

// Load reads configuration. Real environment variables win over .env.
func Load() (*Config, error) {
	_ = godotenv.Load() // a missing .env is fine

	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	setDefaults(v)

	cfg := &Config{
		App: AppConfig{
			Env:      v.GetString("APP_ENV"),
			LogLevel: v.GetString("LOG_LEVEL"),
		},
		HTTP: HTTPConfig{
			Host:            v.GetString("HTTP_HOST"),
			Port:            v.GetInt("HTTP_PORT"),
			ShutdownTimeout: v.GetDuration("HTTP_SHUTDOWN_TIMEOUT"),
		},
		JWT: JWTConfig{
			Secret:     v.GetString("JWT_SECRET"),
			BcryptCost: v.GetInt("BCRYPT_COST"),
		},
		Store: StoreConfig{
			Driver: strings.ToLower(v.GetString("STORE_DRIVER")),
		},
		DB: DBConfig{
			DatabaseURL: v.GetString("DATABASE_URL"),
			MaxOpen:     v.GetInt("DB_MAX_OPEN"),
			MaxIdle:     v.GetInt("DB_MAX_IDLE"),
			MaxLifetime: v.GetDuration("DB_MAX_LIFETIME"),
		},
		Mongo: MongoConfig{
			URI:      v.GetString("MONGO_URI"),
			Database: v.GetString("MONGO_DATABASE"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("HTTP_HOST", "0.0.0.0")
	v.SetDefault("HTTP_PORT", 4000)
	v.SetDefault("HTTP_SHUTDOWN_TIMEOUT", "5s")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("BCRYPT_COST", bcrypt.DefaultCost)
	v.SetDefault("STORE_DRIVER", StorePostgres)
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("DB_MAX_OPEN", 25)
	v.SetDefault("DB_MAX_IDLE", 25)
	v.SetDefault("DB_MAX_LIFETIME", "300s")
	v.SetDefault("MONGO_URI", "mongodb://localhost:27017")
	v.SetDefault("MONGO_DATABASE", "blog")
}

// Validate rejects configurations the server must not start with. An empty
// signing key would make every token forgeable.
func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return ErrMissingSecret
	}

	switch c.Store.Driver {
	case StorePostgres, StoreSQLite:
		if c.DB.DatabaseURL == "" {
			return fmt.Errorf("config: DATABASE_URL is required for store driver %q", c.Store.Driver)
		}
	case StoreMongo:
		if c.Mongo.URI == "" || c.Mongo.Database == "" {
			return errors.New("config: MONGO_URI and MONGO_DATABASE are required for the mongo store")
		}
	case StoreMemory:
	default:
		return fmt.Errorf("config: unknown STORE_DRIVER %q", c.Store.Driver)
	}

	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("config: invalid HTTP_PORT %d", c.HTTP.Port)
	}
	return nil
}
