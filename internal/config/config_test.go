package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("CONFIG_PATH", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 4, cfg.Server.ResolveConcurrency)
	assert.Equal(t, 15*time.Second, cfg.Sources.Timeout)
	assert.Equal(t, "https://kantor1913.pl/kursy-warszawa", cfg.Sources.Kantor1913URL)
	assert.Equal(t, "https://shitcoins.club/getRates", cfg.Sources.ShitcoinsURL)
	assert.Equal(t, time.Duration(0), cfg.Sources.RefreshRate)
	assert.Equal(t, 10*time.Minute, cfg.Cache.TTL)
	assert.Equal(t, "exchanges.json", cfg.Directory.Path)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadConfig_Environment(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("CACHE_TTL", "30s")
	t.Setenv("SOURCE_TIMEOUT", "2s")
	t.Setenv("SOURCE_REFRESH_RATE", "5m")
	t.Setenv("EXCHANGES_FILE", "/data/exchanges.json")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 30*time.Second, cfg.Cache.TTL)
	assert.Equal(t, 2*time.Second, cfg.Sources.Timeout)
	assert.Equal(t, 5*time.Minute, cfg.Sources.RefreshRate)
	assert.Equal(t, "/data/exchanges.json", cfg.Directory.Path)
}

func TestLoadConfig_DotEnv(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	t.Setenv("CONFIG_PATH", "")
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("RESOLVE_CONCURRENCY=8\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv("RESOLVE_CONCURRENCY") })

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.Server.ResolveConcurrency)
}

func TestLoadConfig_YAMLFile(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	path := filepath.Join(dir, "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: 7000
sources:
  timeout: 3s
cache:
  ttl: 1m
log:
  level: debug
`), 0o644))
	t.Setenv("CONFIG_PATH", path)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 7000, cfg.Server.Port)
	assert.Equal(t, 3*time.Second, cfg.Sources.Timeout)
	assert.Equal(t, time.Minute, cfg.Cache.TTL)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "exchanges.json", cfg.Directory.Path)
}

func TestLoadConfig_Invalid(t *testing.T) {
	testCases := map[string]string{
		"SERVER_PORT": "0",
		"CACHE_TTL":   "0s",
	}

	for key, value := range testCases {
		t.Run(key, func(t *testing.T) {
			chdir(t, t.TempDir())
			t.Setenv("CONFIG_PATH", "")
			t.Setenv(key, value)

			_, err := LoadConfig()
			assert.Error(t, err)
		})
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("CONFIG_PATH", "does-not-exist.yml")

	_, err := LoadConfig()
	assert.Error(t, err)
}

// chdir mirrors testing.T.Chdir (Go 1.24+) for older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}
