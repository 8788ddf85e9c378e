package config

import (
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the database connection settings assembled from the
// environment. Other settings are read through Get/GetSafe.
type Config struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
}

// Load reads .env (if present) and prepares viper for environment lookups.
func Load() {
	_ = godotenv.Load()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	viper.SetDefault("SERVER_PORT", "7070")
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", 5432)
	viper.SetDefault("DB_USER", "postgres")
	viper.SetDefault("DB_PASSWORD", "postgres")
	viper.SetDefault("DB_NAME", "agenda")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("MIGRATIONS_PATH", "db/migrations/001_init.sql")
	viper.SetDefault("SMTP_PORT", "587")
}

// Get returns the value for key, empty string when unset.
func Get(key string) string {
	return viper.GetString(key)
}

// GetSafe returns the value for key or the given fallback when unset.
func GetSafe(key, fallback string) string {
	if v := viper.GetString(key); v != "" {
		return v
	}
	return fallback
}

// GetInt returns the integer value for key, 0 when unset.
func GetInt(key string) int {
	return viper.GetInt(key)
}

// DB assembles the database settings.
func DB() Config {
	return Config{
		Host:     Get("DB_HOST"),
		Port:     GetInt("DB_PORT"),
		User:     Get("DB_USER"),
		Password: Get("DB_PASSWORD"),
		DBName:   Get("DB_NAME"),
	}
}
