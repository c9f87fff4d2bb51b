// Package config contains code to set the default values and read
// config files to be used throughout the whole application
package config

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"slices"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var (
	validLogLevels    = []string{"debug", "info", "warn", "error", "fatal"}
	validStorageTypes = []string{"sqlite", "postgres", "mongo"}
	validHashers      = []string{"bcrypt", "argon2id"}
)

// ErrNoSecret is returned by Load when no JWT secret was configured
var ErrNoSecret = errors.New("no jwt secret configured")

type Config struct {
	App struct {
		LogLevel string
		Env      string
	}

	Host struct {
		Port        int
		CorsOrigins []string
		MaxBodySize int64
	}

	JWT struct {
		Secret string
		TTL    time.Duration
	}

	Auth struct {
		CheckUserExists bool
	}

	Security struct {
		PasswordHash string
		BcryptCost   int
	}

	Storage struct {
		Type          string
		SQLitePath    string
		PostgresDSN   string
		MongoURI      string
		MongoDatabase string
	}

	TMDB struct {
		APIKey   string
		BaseURL  string
		Language string
		Timeout  time.Duration
	}

	Cleanup struct {
		Interval time.Duration
	}

	Turnstile struct {
		Enabled     bool
		SecretToken string
		VerifyURL   string
	}
}

// GenSecret returns a random hex secret suitable for signing tokens
func GenSecret() string {
	b := make([]byte, 64)
	rand.Read(b)
	return hex.EncodeToString(b)
}

// Flags registers the command line flags understood by Load
func Flags(flags *pflag.FlagSet) {
	flags.String("config", "config.toml", "Path to the TOML config file")
	flags.String("host.port", "", "Port to listen on")
	flags.String("app.log_level", "", "Log level (debug, info, warn, error, fatal)")
}

// Load reads the config file at path (a missing file is not an error),
// applies environment overrides and defaults and validates the result.
// The returned error is ErrNoSecret when everything but the JWT secret
// is in place.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	if flags != nil {
		flags.VisitAll(func(f *pflag.Flag) {
			if f.Name != "config" && f.Changed {
				v.BindPFlag(f.Name, f)
			}
		})
	}

	v.SetConfigFile(path)
	v.SetConfigType("toml")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	//
	// ENVS
	//
	v.BindEnv("app.log_level", "APP_LOG_LEVEL")
	v.BindEnv("app.env", "APP_ENV")

	v.BindEnv("host.port", "HOST_PORT", "PORT")
	v.BindEnv("host.cors_origins", "HOST_CORS")

	v.BindEnv("jwt.secret", "JWT_SECRET")
	v.BindEnv("jwt.ttl", "JWT_TTL")

	v.BindEnv("storage.type", "STORAGE_TYPE")
	v.BindEnv("storage.sqlite_path", "STORAGE_SQLITE_PATH")
	v.BindEnv("storage.postgres_dsn", "DATABASE_URL")
	v.BindEnv("storage.mongo_uri", "MONGODB_URI")
	v.BindEnv("storage.mongo_database", "MONGODB_DATABASE")

	v.BindEnv("tmdb.api_key", "TMDB_API_KEY")
	v.BindEnv("tmdb.base_url", "TMDB_BASE_URL")

	v.BindEnv("turnstile.enabled", "TURNSTILE_ENABLED")
	v.BindEnv("turnstile.secret_token", "TURNSTILE_SECRET_TOKEN")

	//
	// Defaults
	//
	v.SetDefault("app.log_level", "info")
	v.SetDefault("app.env", "dev")

	v.SetDefault("host.port", 5000)
	v.SetDefault("host.cors_origins", []string{"http://localhost:5173"})
	v.SetDefault("host.max_body_size", 1<<20)

	v.SetDefault("jwt.ttl", 24*time.Hour)

	v.SetDefault("auth.check_user_exists", false)

	v.SetDefault("security.password_hash", "bcrypt")
	v.SetDefault("security.bcrypt_cost", 10)

	v.SetDefault("storage.type", "sqlite")
	v.SetDefault("storage.sqlite_path", "database.db")
	v.SetDefault("storage.mongo_database", "reelhub")

	v.SetDefault("tmdb.base_url", "https://api.themoviedb.org/3")
	v.SetDefault("tmdb.language", "en-US")
	v.SetDefault("tmdb.timeout", 15*time.Second)

	v.SetDefault("cleanup.interval", 24*time.Hour)

	v.SetDefault("turnstile.enabled", false)
	v.SetDefault("turnstile.verify_url", "https://challenges.cloudflare.com/turnstile/v0/siteverify")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !isNotExist(err) {
			return nil, fmt.Errorf("failed to read config file, %w", err)
		}
	}

	cfg := &Config{}

	cfg.App.LogLevel = v.GetString("app.log_level")
	cfg.App.Env = v.GetString("app.env")

	cfg.Host.Port = v.GetInt("host.port")
	cfg.Host.CorsOrigins = splitList(v.GetStringSlice("host.cors_origins"))
	cfg.Host.MaxBodySize = v.GetInt64("host.max_body_size")

	cfg.JWT.Secret = v.GetString("jwt.secret")
	cfg.JWT.TTL = v.GetDuration("jwt.ttl")

	cfg.Auth.CheckUserExists = v.GetBool("auth.check_user_exists")

	cfg.Security.PasswordHash = v.GetString("security.password_hash")
	cfg.Security.BcryptCost = v.GetInt("security.bcrypt_cost")

	cfg.Storage.Type = v.GetString("storage.type")
	cfg.Storage.SQLitePath = v.GetString("storage.sqlite_path")
	cfg.Storage.PostgresDSN = v.GetString("storage.postgres_dsn")
	cfg.Storage.MongoURI = v.GetString("storage.mongo_uri")
	cfg.Storage.MongoDatabase = v.GetString("storage.mongo_database")

	cfg.TMDB.APIKey = v.GetString("tmdb.api_key")
	cfg.TMDB.BaseURL = strings.TrimRight(v.GetString("tmdb.base_url"), "/")
	cfg.TMDB.Language = v.GetString("tmdb.language")
	cfg.TMDB.Timeout = v.GetDuration("tmdb.timeout")

	cfg.Cleanup.Interval = v.GetDuration("cleanup.interval")

	cfg.Turnstile.Enabled = v.GetBool("turnstile.enabled")
	cfg.Turnstile.SecretToken = v.GetString("turnstile.secret_token")
	cfg.Turnstile.VerifyURL = v.GetString("turnstile.verify_url")

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if !slices.Contains(validLogLevels, c.App.LogLevel) {
		return errors.New("invalid log level provided")
	}

	if c.Host.Port <= 0 {
		return errors.New("invalid port provided")
	}

	if c.Host.MaxBodySize <= 0 {
		return errors.New("host.max_body_size must be bigger than 0")
	}

	if c.JWT.TTL <= 0 {
		return errors.New("jwt.ttl must be bigger than 0")
	}

	if !slices.Contains(validHashers, c.Security.PasswordHash) {
		return errors.New("invalid password hash algorithm provided")
	}

	if c.Security.PasswordHash == "bcrypt" && (c.Security.BcryptCost < 4 || c.Security.BcryptCost > 31) {
		return errors.New("security.bcrypt_cost must be between 4 and 31")
	}

	if !slices.Contains(validStorageTypes, c.Storage.Type) {
		return errors.New("invalid storage type provided")
	}

	switch c.Storage.Type {
	case "sqlite":
		if c.Storage.SQLitePath == "" {
			return errors.New("sqlite path can't be empty")
		}
	case "postgres":
		if c.Storage.PostgresDSN == "" {
			return errors.New("postgres dsn can't be empty")
		}
	case "mongo":
		if c.Storage.MongoURI == "" {
			return errors.New("mongo uri can't be empty")
		}
		if c.Storage.MongoDatabase == "" {
			return errors.New("mongo database can't be empty")
		}
	}

	if c.TMDB.APIKey == "" {
		return errors.New("tmdb api key can't be empty")
	}

	if c.TMDB.Timeout <= 0 {
		return errors.New("tmdb.timeout must be bigger than 0")
	}

	if c.Cleanup.Interval < 0 {
		return errors.New("cleanup.interval can't be negative")
	}

	if c.Turnstile.Enabled && c.Turnstile.SecretToken == "" {
		return errors.New("turnstile secret token is missing")
	}

	if c.JWT.Secret == "" {
		return ErrNoSecret
	}

	return nil
}

func isNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}

// splitList accepts both TOML arrays and comma separated env values
func splitList(in []string) []string {
	var out []string
	for _, s := range in {
		for _, p := range strings.Split(s, ",") {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
	}

	return out
}
