package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefault(t *testing.T) {
	c := Default()
	assert.Equal(t, 2, c.Difficulty)
	assert.Equal(t, int64(100), c.Reward)
	assert.Equal(t, "COIN", c.Currency)
	assert.NoError(t, c.Validate())
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
difficulty: 1
reward: 50
nodes: 5
log:
  level: debug
  file: /tmp/ledger.log
`)
	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 1, c.Difficulty)
	assert.Equal(t, int64(50), c.Reward)
	assert.Equal(t, 5, c.Nodes)
	assert.Equal(t, "COIN", c.Currency)
	assert.Equal(t, "debug", c.Log.Level)
	assert.Equal(t, "/tmp/ledger.log", c.Log.File)
	assert.Equal(t, 10, c.Log.MaxSizeMB)
}

func TestLoadRejectsInvalid(t *testing.T) {
	_, err := Load(writeConfig(t, "difficulty: -1\n"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "reward: 0\n"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "currency: \"\"\n"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "mine_interval_ms: 0\n"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "difficulty: [1, 2]\n"))
	assert.Error(t, err)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
