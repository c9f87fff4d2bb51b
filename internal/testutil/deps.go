package testutil

import (
	"time"

	"bitwise74/reelhub-api/config"
)

const JWTSecret = "test-secret"

// NewConfig returns a valid config pointing TMDb at tmdbURL
func NewConfig(tmdbURL string) *config.Config {
	cfg := &config.Config{}

	cfg.App.LogLevel = "error"
	cfg.App.Env = "dev"
	cfg.Host.Port = 5000
	cfg.Host.CorsOrigins = []string{"http://localhost:5173"}
	cfg.Host.MaxBodySize = 1 << 20
	cfg.JWT.Secret = JWTSecret
	cfg.JWT.TTL = time.Hour
	cfg.Security.PasswordHash = "bcrypt"
	cfg.Security.BcryptCost = 4
	cfg.Storage.Type = "sqlite"
	cfg.TMDB.APIKey = "tmdb-key"
	cfg.TMDB.BaseURL = tmdbURL
	cfg.TMDB.Language = "en-US"
	cfg.TMDB.Timeout = 5 * time.Second

	return cfg
}
