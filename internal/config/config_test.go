package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_ValidConfig(t *testing.T) {
	t.Parallel()

	content := `
server:
  host: "127.0.0.1"
  port: 8080

redis:
  addr: "redis:6379"
  password: "secret"
  db: 1

game:
  max_rounds: 16
  turn_timeout: 60
  seed: 42

ai:
  type: "external"
  executable: "/opt/ai_engine"
  model_dir: "/opt/models"
`
	cfg, err := Load(writeConfig(t, content))
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "redis:6379", cfg.Redis.Addr)
	assert.Equal(t, "secret", cfg.Redis.Password)
	assert.Equal(t, 1, cfg.Redis.DB)
	assert.Equal(t, 16, cfg.Game.MaxRounds)
	assert.Equal(t, 60, cfg.Game.TurnTimeout)
	assert.Equal(t, int64(42), cfg.Game.Seed)
	assert.Equal(t, "external", cfg.AI.Type)
	assert.Equal(t, "/opt/ai_engine", cfg.AI.Executable)
	assert.Equal(t, "/opt/models", cfg.AI.ModelDir)
}

func TestLoad_FileNotFound(t *testing.T) {
	t.Parallel()

	cfg, err := Load("/nonexistent/path/config.yaml")
	assert.Error(t, err)
	assert.Nil(t, cfg)
}

func TestLoad_InvalidYAML(t *testing.T) {
	t.Parallel()

	cfg, err := Load(writeConfig(t, "invalid: yaml: :::"))
	assert.Error(t, err)
	assert.Nil(t, cfg)
}

func TestLoad_AppliesDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := Load(writeConfig(t, `{}`))
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 4160, cfg.Server.Port)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, 8, cfg.Game.MaxRounds)
	assert.Equal(t, 30, cfg.Game.TurnTimeout)
	assert.Equal(t, int64(0), cfg.Game.Seed)
	assert.Equal(t, "simple", cfg.AI.Type)
	assert.Equal(t, ".", cfg.AI.ModelDir)
}

func TestDefault(t *testing.T) {
	t.Parallel()

	cfg := Default()
	require.NotNil(t, cfg)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 4160, cfg.Server.Port)
	assert.Equal(t, 8, cfg.Game.MaxRounds)
	assert.Equal(t, "simple", cfg.AI.Type)
}

func TestGameConfig_TurnTimeoutDuration(t *testing.T) {
	t.Parallel()

	cfg := &GameConfig{TurnTimeout: 45}
	assert.Equal(t, 45*time.Second, cfg.TurnTimeoutDuration())
}
