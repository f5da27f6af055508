package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/blockfall/config"
	"github.com/plus3/blockfall/tetris"
)

// isolate runs the test in an empty directory with an empty home so no stray
// blockfall.yaml or .env is picked up.
func isolate(t *testing.T) string {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("HOME", dir)
	return dir
}

func writeFile(t *testing.T, path, content string) {
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func intPtr(v int) *int { return &v }

func TestDefaults(t *testing.T) {
	isolate(t)

	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, config.Default(), cfg)
	assert.Equal(t, 10, cfg.Board.Width)
	assert.Equal(t, 20, cfg.Board.Height)
	assert.Nil(t, cfg.Spawn.Column)
	assert.Equal(t, time.Second, cfg.Timing.InitialInterval)
	assert.Equal(t, 0.999, cfg.Timing.Decay)
	assert.Equal(t, 100*time.Millisecond, cfg.Timing.MinInterval)
	assert.Equal(t, "standard", cfg.Catalog)
	assert.Equal(t, uint64(0), cfg.Seed)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, 10, cfg.Log.MaxSizeMB)
}

func TestLoadFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "custom.yaml")
	writeFile(t, path, `
board:
  width: 8
  height: 16
spawn:
  jitter: 2
timing:
  initial_interval: 500ms
  min_interval: 50ms
catalog: Classic
seed: 42
log:
  level: debug
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8, cfg.Board.Width)
	assert.Equal(t, 16, cfg.Board.Height)
	assert.Equal(t, 2, cfg.Spawn.Jitter)
	assert.Equal(t, 500*time.Millisecond, cfg.Timing.InitialInterval)
	assert.Equal(t, 50*time.Millisecond, cfg.Timing.MinInterval)
	assert.Equal(t, 0.999, cfg.Timing.Decay)
	assert.Equal(t, "classic", cfg.Catalog)
	assert.Equal(t, uint64(42), cfg.Seed)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadSearchPaths(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, ".config", "blockfall", "blockfall.yaml"), "catalog: trio\n")

	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, "trio", cfg.Catalog)

	writeFile(t, filepath.Join(dir, "blockfall.yaml"), "board:\n  width: 12\n")
	cfg, err = config.Load("")
	require.NoError(t, err)
	assert.Equal(t, 12, cfg.Board.Width)
	assert.Equal(t, "standard", cfg.Catalog, "the working directory wins over the home directory")
}

func TestLoadMissingExplicitFile(t *testing.T) {
	dir := isolate(t)

	_, err := config.Load(filepath.Join(dir, "nope.yaml"))
	assert.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "blockfall.yaml")
	writeFile(t, path, "board:\n  width: 8\n")

	t.Setenv("BLOCKFALL_BOARD_WIDTH", "14")
	t.Setenv("BLOCKFALL_TIMING_INITIAL_INTERVAL", "2s")
	t.Setenv("BLOCKFALL_TIMING_DECAY", "0.5")

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 14, cfg.Board.Width)
	assert.Equal(t, 2*time.Second, cfg.Timing.InitialInterval)
	assert.Equal(t, 0.5, cfg.Timing.Decay)
}

func TestDotEnv(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, ".env"), "BLOCKFALL_SEED=7\n")
	t.Cleanup(func() { os.Unsetenv("BLOCKFALL_SEED") })

	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, uint64(7), cfg.Seed)
}

func TestSpawnColumn(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "blockfall.yaml")
	writeFile(t, path, "spawn:\n  column: 0\n")

	cfg, err := config.Load(path)
	require.NoError(t, err)
	require.NotNil(t, cfg.Spawn.Column)
	assert.Equal(t, 0, *cfg.Spawn.Column)

	rules, err := cfg.Rules()
	require.NoError(t, err)
	require.NotNil(t, rules.SpawnColumn)
	assert.Equal(t, 0, *rules.SpawnColumn)

	t.Setenv("BLOCKFALL_SPAWN_COLUMN", "3")
	cfg, err = config.Load(path)
	require.NoError(t, err)
	require.NotNil(t, cfg.Spawn.Column)
	assert.Equal(t, 3, *cfg.Spawn.Column)

	assert.Nil(t, config.Default().Spawn.Column)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{"narrow board", func(c *config.Config) { c.Board.Width = 3 }},
		{"short board", func(c *config.Config) { c.Board.Height = 0 }},
		{"spawn column off board", func(c *config.Config) { c.Spawn.Column = intPtr(10) }},
		{"negative spawn column", func(c *config.Config) { c.Spawn.Column = intPtr(-1) }},
		{"negative jitter", func(c *config.Config) { c.Spawn.Jitter = -1 }},
		{"zero decay", func(c *config.Config) { c.Timing.Decay = 0 }},
		{"decay above one", func(c *config.Config) { c.Timing.Decay = 1.5 }},
		{"zero floor", func(c *config.Config) { c.Timing.MinInterval = 0 }},
		{"floor above initial", func(c *config.Config) { c.Timing.MinInterval = 2 * time.Second }},
		{"unknown catalog", func(c *config.Config) { c.Catalog = "pentomino" }},
	}

	assert.NoError(t, config.Default().Validate())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestRules(t *testing.T) {
	cfg := config.Default()
	cfg.Catalog = "trio"
	cfg.Spawn.Jitter = 1

	rules, err := cfg.Rules()
	require.NoError(t, err)
	assert.Equal(t, 10, rules.Width)
	assert.Equal(t, 20, rules.Height)
	assert.Equal(t, 1, rules.SpawnJitter)
	assert.Same(t, tetris.Trio, rules.Catalog)
}
