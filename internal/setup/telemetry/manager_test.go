package telemetry_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/robalyx/turbo/internal/setup/config"
	"github.com/robalyx/turbo/internal/setup/telemetry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManagerWritesSessionLog(t *testing.T) {
	t.Parallel()

	logDir := t.TempDir()
	manager := telemetry.NewManager(logDir, &config.Debug{LogLevel: "info", MaxLogsToKeep: 3}, false)
	t.Cleanup(func() { _ = manager.Close() })

	logger, err := manager.GetLogger()
	require.NoError(t, err)

	logger.Info("hello from the test")
	logger.Debug("not written at info level")
	require.NoError(t, logger.Sync())

	assert.NotEmpty(t, manager.GetInstanceID())
	assert.Equal(t, logDir, filepath.Dir(manager.GetCurrentSessionDir()))

	data, err := os.ReadFile(filepath.Join(manager.GetCurrentSessionDir(), "main.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello from the test")
	assert.NotContains(t, string(data), "not written at info level")
}

func TestManagerRotatesOldSessions(t *testing.T) {
	t.Parallel()

	logDir := t.TempDir()
	for _, name := range []string{"2024-01-01_00-00-00", "2024-01-02_00-00-00", "2024-01-03_00-00-00"} {
		require.NoError(t, os.MkdirAll(filepath.Join(logDir, name), os.ModePerm))
	}

	manager := telemetry.NewManager(logDir, &config.Debug{LogLevel: "info", MaxLogsToKeep: 2}, false)
	t.Cleanup(func() { _ = manager.Close() })

	_, err := manager.GetLogger()
	require.NoError(t, err)

	entries, err := os.ReadDir(logDir)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "2024-01-03_00-00-00", entries[0].Name())
}

func TestManagerRejectsUnknownLevel(t *testing.T) {
	t.Parallel()

	manager := telemetry.NewManager(t.TempDir(), &config.Debug{LogLevel: "loud", MaxLogsToKeep: 1}, false)

	_, err := manager.GetLogger()
	require.Error(t, err)
}
