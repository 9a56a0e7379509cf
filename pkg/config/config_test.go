package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	t.Setenv("CONFIG_PATH", path)
}

const minimalConfig = `
nuvende:
  base_url: "https://api-h.nuvende.com.br"
  client_id: "client-1"
  client_secret: "secret-1"
  pix_key: "pix-key-1"
  account_id: "account-1"
`

func TestLoadAppliesDefaults(t *testing.T) {
	writeConfig(t, minimalConfig)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "memory", cfg.Cache.Backend)
	assert.Equal(t, 30*time.Second, cfg.Nuvende.Timeout)
	assert.Equal(t, 1024, cfg.WebSocket.ReadBufferSize)
}

func TestLoadEnvOverrides(t *testing.T) {
	writeConfig(t, minimalConfig)
	t.Setenv("NUVENDE_CLIENT_SECRET", "from-env")
	t.Setenv("NUVENDE_PIX_KEY", "pix-from-env")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Nuvende.ClientSecret)
	assert.Equal(t, "pix-from-env", cfg.Nuvende.PixKey)
	assert.Equal(t, "client-1", cfg.Nuvende.ClientID)
}

func TestLoadRejectsMissingCredentials(t *testing.T) {
	writeConfig(t, `
nuvende:
  base_url: "https://api-h.nuvende.com.br"
`)

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "client_id")
}

func TestLoadRejectsUnknownCacheBackend(t *testing.T) {
	writeConfig(t, minimalConfig+`
cache:
  backend: "memcached"
`)

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cache.backend")
}

func TestLoadRequiresRedisAddr(t *testing.T) {
	writeConfig(t, minimalConfig+`
cache:
  backend: "redis"
`)
	t.Setenv("REDIS_ADDR", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "redis.addr")
}

func TestLoadMissingFile(t *testing.T) {
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "nope.yaml"))

	_, err := Load()
	require.Error(t, err)
}
