package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"AIDOLON_API_URL", "AIDOLON_API_KEY", "LOG_ENV", "LOG_LEVEL", "MOCK_ADDR",
		"MOCK_RATE_PER_MINUTE", "MOCK_RATE_BURST", "MOCK_MAX_SESSIONS", "MOCK_TOKENS", "MOCK_STORE_PATH",
	} {
		// registers a restore, then unset so .env files may fill the key
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
	chdir(t, t.TempDir())
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultAPIURL, cfg.API.URL)
	assert.Equal(t, "info", cfg.Logger.Level)
	assert.Equal(t, ":8080", cfg.Mock.Addr)
	assert.Equal(t, 10, cfg.Mock.MaxSessions)
}

func TestLoadPrecedence(t *testing.T) {
	clearEnv(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "aidolon.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
api:
  url: http://yaml.example
  key: from-yaml
logger:
  level: debug
mock:
  max_sessions: 3
  tokens: [a, b]
`), 0o600))
	require.NoError(t, os.WriteFile(".env", []byte("AIDOLON_API_KEY=from-dotenv\nMOCK_RATE_BURST=7\n"), 0o600))
	t.Setenv("AIDOLON_API_URL", "http://env.example")
	t.Setenv("MOCK_TOKENS", " x , y ,")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://env.example", cfg.API.URL)
	assert.Equal(t, "from-dotenv", cfg.API.Key)
	assert.Equal(t, "debug", cfg.Logger.Level)
	assert.Equal(t, 3, cfg.Mock.MaxSessions)
	assert.Equal(t, 7, cfg.Mock.RateBurst)
	assert.Equal(t, []string{"x", "y"}, cfg.Mock.Tokens)
}

func TestLoadMissingFile(t *testing.T) {
	clearEnv(t)
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

// chdir changes the working directory for the duration of the test
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
}
