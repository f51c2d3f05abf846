package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config collects everything the service reads from the environment. A
// .env file is honored when present so local runs do not need exported vars.
type Config struct {
	DBUser     string
	DBPassword string
	DBHost     string
	DBName     string
	Port       string
	GinMode    string
	FEOrigins  []string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASS"),
		DBHost:     os.Getenv("DB_HOST"),
		DBName:     envOr("DB_NAME", "next-dorm-trust"),
		Port:       os.Getenv("PORT"),
		GinMode:    os.Getenv("GIN_MODE"),
		FEOrigins:  strings.Split(os.Getenv("FE_ORIGINS"), ";"),
	}
	if cfg.DBUser == "" || cfg.DBHost == "" {
		return nil, fmt.Errorf("DB_USER and DB_HOST must be set")
	}
	if cfg.Port == "" {
		return nil, fmt.Errorf("$PORT must be set")
	}
	return cfg, nil
}

func envOr(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}
