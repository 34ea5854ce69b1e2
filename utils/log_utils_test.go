package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Luismorlan/ledger_in_go/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLoggerWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.log")
	logger, err := NewLogger(config.LogConfig{Level: "debug", File: path, MaxSizeMB: 1})
	require.NoError(t, err)

	logger.Debug("mined block")
	_ = logger.Sync()

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "mined block")
}

func TestNewLoggerRejectsUnknownLevel(t *testing.T) {
	_, err := NewLogger(config.LogConfig{Level: "loud"})
	assert.Error(t, err)
}
