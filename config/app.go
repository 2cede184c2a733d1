package config

import (
	"os"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	Env string // test, dev or prod
}

func init() {
	// Optional .env for local runs; real environments set vars directly.
	godotenv.Load()
}

func NewAppConfig() AppConfig {

	conf := AppConfig{
		Env: os.Getenv("APP_ENV"),
	}

	return conf
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
