package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds the runtime configuration, loaded from the environment with
// an optional .env file for local development.
type Config struct {
	Port           string
	AppEnv         string
	DataDir        string
	JWTSecret      string
	RedisURL       string
	CatalogDBPath  string
	AllowedOrigins string
	TrainingGroups int
	ForestTrees    int
	RandomSeed     int64
}

// LoadConfig reads configuration from the environment. Missing optional keys
// fall back to development defaults; Validate enforces the required ones.
func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// A missing .env file is fine; the environment is authoritative.
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && !strings.Contains(err.Error(), "no such file") {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	v.SetDefault("PORT", "8080")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("DATA_DIR", "data")
	v.SetDefault("CATALOG_DB_PATH", "data/catalog.db")
	v.SetDefault("ALLOWED_ORIGINS", "http://localhost:3000")
	v.SetDefault("TRAINING_GROUPS", 1000)
	v.SetDefault("FOREST_TREES", 64)
	v.SetDefault("RANDOM_SEED", 42)

	cfg := &Config{
		Port:           v.GetString("PORT"),
		AppEnv:         v.GetString("APP_ENV"),
		DataDir:        v.GetString("DATA_DIR"),
		JWTSecret:      v.GetString("JWT_SECRET"),
		RedisURL:       v.GetString("REDIS_URL"),
		CatalogDBPath:  v.GetString("CATALOG_DB_PATH"),
		AllowedOrigins: v.GetString("ALLOWED_ORIGINS"),
		TrainingGroups: v.GetInt("TRAINING_GROUPS"),
		ForestTrees:    v.GetInt("FOREST_TREES"),
		RandomSeed:     v.GetInt64("RANDOM_SEED"),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks required settings and sane ranges.
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		if c.AppEnv == "production" {
			return fmt.Errorf("JWT_SECRET must be set in production")
		}
		c.JWTSecret = "dev-secret-do-not-use-in-production"
	}
	if c.DataDir == "" {
		return fmt.Errorf("DATA_DIR must not be empty")
	}
	if c.TrainingGroups <= 0 {
		return fmt.Errorf("TRAINING_GROUPS must be positive, got %d", c.TrainingGroups)
	}
	if c.ForestTrees <= 0 {
		return fmt.Errorf("FOREST_TREES must be positive, got %d", c.ForestTrees)
	}
	return nil
}

// IsProduction reports whether the app runs with production settings.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}
