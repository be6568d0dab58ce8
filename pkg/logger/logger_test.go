package logger_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/limbo/streak/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWritesToFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "logs", "streak.log")
	l, closer, err := logger.New(logger.Config{Level: "debug", File: file, Prefix: "streak"})
	require.NoError(t, err)
	l.Debug("loading habits", "count", 3)
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(data), "loading habits")
	assert.Contains(t, string(data), "count=3")
}

func TestNewFiltersByLevel(t *testing.T) {
	file := filepath.Join(t.TempDir(), "streak.log")
	l, closer, err := logger.New(logger.Config{Level: "warn", File: file})
	require.NoError(t, err)
	l.Info("hidden")
	l.Warn("shown")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "hidden")
	assert.Contains(t, string(data), "shown")
}

func TestNewUnknownLevelIsInfo(t *testing.T) {
	l, closer, err := logger.New(logger.Config{Level: "loud"})
	require.NoError(t, err)
	defer closer.Close()
	assert.NotNil(t, l)
}
