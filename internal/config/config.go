package config

import (
	"log"

	pkgconfig "github.com/Skotchmaster/storefront/pkg/config"
	"github.com/joho/godotenv"
)

// MinSessionSecret is the shortest HS256 key accepted for session cookies.
const MinSessionSecret = 32

// LoadConfig reads an optional .env file, then the process environment, and
// exits when a required setting is missing.
func LoadConfig(envFile string) pkgconfig.Config {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			log.Printf("notice: %s not loaded: %v; using process environment", envFile, err)
		}
	}

	cfg := pkgconfig.Load()
	pkgconfig.Must(cfg.Require(MinSessionSecret))
	return cfg
}
