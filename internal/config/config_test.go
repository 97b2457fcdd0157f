package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_InvalidPort(t *testing.T) {
	for _, port := range []int{0, -1, 70000} {
		cfg := Config{HTTP: HTTPConfig{Port: port}}
		cfg.ApplyDefaults()
		require.Error(t, cfg.Validate(), "port %d", port)
	}
}

func TestValidate_DefaultKAboveMax(t *testing.T) {
	cfg := Config{
		HTTP:        HTTPConfig{Port: 8080},
		Recommender: RecommenderConfig{DefaultK: 50, MaxK: 10},
	}
	cfg.ApplyDefaults()

	err := cfg.Validate()
	require.Error(t, err)
	assert.Equal(t, "recommender.default_k (50) must not exceed recommender.max_k (10)", err.Error())
}

func TestValidate_DefaultLimitAboveMax(t *testing.T) {
	cfg := Config{
		HTTP:        HTTPConfig{Port: 8080},
		Recommender: RecommenderConfig{DefaultLimit: 500},
	}
	cfg.ApplyDefaults()
	require.Error(t, cfg.Validate())
}

func TestApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	assert.Equal(t, 10, cfg.HTTP.ReadTimeoutSec)
	assert.Equal(t, 10, cfg.HTTP.WriteTimeoutSec)
	assert.Equal(t, 10, cfg.HTTP.ShutdownSec)
	assert.Equal(t, 5, cfg.Recommender.DefaultK)
	assert.Equal(t, 100, cfg.Recommender.MaxK)
	assert.Equal(t, 10, cfg.Recommender.DefaultLimit)
	assert.Equal(t, 100, cfg.Recommender.MaxLimit)
}

func TestApplyDefaults_NoOverride(t *testing.T) {
	cfg := Config{
		HTTP:        HTTPConfig{ReadTimeoutSec: 30, WriteTimeoutSec: 60, ShutdownSec: 5},
		Recommender: RecommenderConfig{DefaultK: 3, MaxK: 7, DefaultLimit: 2, MaxLimit: 4},
	}
	cfg.ApplyDefaults()

	assert.Equal(t, 30, cfg.HTTP.ReadTimeoutSec)
	assert.Equal(t, 60, cfg.HTTP.WriteTimeoutSec)
	assert.Equal(t, RecommenderConfig{DefaultK: 3, MaxK: 7, DefaultLimit: 2, MaxLimit: 4}, cfg.Recommender)
}

func TestLoadFile_ExpandsEnv(t *testing.T) {
	t.Setenv("RECDEX_TEST_PORT", "9191")
	path := filepath.Join(t.TempDir(), "test.yaml")
	data := []byte(`
http:
  port: ${RECDEX_TEST_PORT}
auth:
  api_keys: ["${RECDEX_TEST_KEY:-fallback}"]
recommender:
  default_k: 3
`)
	require.NoError(t, os.WriteFile(path, data, 0o600))

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 9191, cfg.HTTP.Port)
	assert.Equal(t, []string{"fallback"}, cfg.Auth.APIKeys)
	assert.Equal(t, 3, cfg.Recommender.DefaultK)
	assert.Equal(t, 100, cfg.Recommender.MaxK)
}

func TestLoadFile_Errors(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("http: [unclosed"), 0o600))
	_, err = LoadFile(bad)
	require.Error(t, err)

	noPort := filepath.Join(t.TempDir(), "noport.yaml")
	require.NoError(t, os.WriteFile(noPort, []byte("logging:\n  level: info\n"), 0o600))
	_, err = LoadFile(noPort)
	require.Error(t, err)
}

func TestLoad_LocalConfig(t *testing.T) {
	t.Setenv("HTTP_PORT", "")
	cfg, err := Load("local")
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.HTTP.Port)
}

func TestGetEnv(t *testing.T) {
	t.Setenv("ENV", "")
	assert.Equal(t, "local", GetEnv())
	t.Setenv("ENV", "prod")
	assert.Equal(t, "prod", GetEnv())
}
