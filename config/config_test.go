package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("TMDB_API_KEY", "key")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.toml"), nil)
	require.NoError(t, err)

	assert.Equal(t, 5000, cfg.Host.Port)
	assert.Equal(t, "sqlite", cfg.Storage.Type)
	assert.Equal(t, "bcrypt", cfg.Security.PasswordHash)
	assert.Equal(t, 10, cfg.Security.BcryptCost)
	assert.Equal(t, 24*time.Hour, cfg.JWT.TTL)
	assert.Equal(t, 15*time.Second, cfg.TMDB.Timeout)
	assert.Equal(t, "https://api.themoviedb.org/3", cfg.TMDB.BaseURL)
	assert.False(t, cfg.Auth.CheckUserExists)
	assert.Equal(t, "s3cret", cfg.JWT.Secret)
}

func TestLoad_FileEnvAndFlags(t *testing.T) {
	path := writeConfig(t, `
[app]
log_level = "debug"

[host]
port = 6000
cors_origins = ["https://a.example", "https://b.example"]

[jwt]
secret = "from-file"
ttl = "2h"

[storage]
type = "mongo"
mongo_uri = "mongodb://db:27017"

[tmdb]
api_key = "file-key"
base_url = "http://tmdb.local/3/"
`)

	t.Setenv("TMDB_API_KEY", "env-key")
	t.Setenv("HOST_CORS", "https://c.example, https://d.example")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	Flags(flags)
	require.NoError(t, flags.Parse([]string{"--host.port", "7000"}))

	cfg, err := Load(path, flags)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.App.LogLevel)
	assert.Equal(t, 7000, cfg.Host.Port)
	assert.Equal(t, []string{"https://c.example", "https://d.example"}, cfg.Host.CorsOrigins)
	assert.Equal(t, 2*time.Hour, cfg.JWT.TTL)
	assert.Equal(t, "mongo", cfg.Storage.Type)
	assert.Equal(t, "reelhub", cfg.Storage.MongoDatabase)
	assert.Equal(t, "env-key", cfg.TMDB.APIKey)
	assert.Equal(t, "http://tmdb.local/3", cfg.TMDB.BaseURL)
}

func TestLoad_NoSecret(t *testing.T) {
	t.Setenv("TMDB_API_KEY", "key")

	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"), nil)
	assert.ErrorIs(t, err, ErrNoSecret)
}

func TestLoad_Invalid(t *testing.T) {
	tests := map[string]string{
		"log level":    "[app]\nlog_level = \"loud\"",
		"storage type": "[storage]\ntype = \"redis\"",
		"postgres dsn": "[storage]\ntype = \"postgres\"",
		"hash":         "[security]\npassword_hash = \"md5\"",
		"bcrypt cost":  "[security]\nbcrypt_cost = 2",
		"turnstile":    "[turnstile]\nenabled = true",
		"tmdb key":     "[tmdb]\napi_key = \"\"",
	}

	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			t.Setenv("JWT_SECRET", "s3cret")
			if name != "tmdb key" {
				t.Setenv("TMDB_API_KEY", "key")
			}

			_, err := Load(writeConfig(t, content), nil)
			require.Error(t, err)
			assert.NotErrorIs(t, err, ErrNoSecret)
		})
	}
}

func TestGenSecret(t *testing.T) {
	a, b := GenSecret(), GenSecret()
	assert.Len(t, a, 128)
	assert.NotEqual(t, a, b)
}
