package providers

import (
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mfd/internal/structures"
)

func loggerConfig(dir string) *structures.Config {
	return &structures.Config{
		Logger: structures.LoggerConfig{Level: "debug", Mode: 0o644, Dir: dir},
	}
}

func TestLogProvider_SplitsAppAndAccessLogs(t *testing.T) {
	dir := t.TempDir()
	logger, err := NewLogProvider(loggerConfig(dir))
	require.NoError(t, err)

	logger.Infof(TypeApp, "pipeline finished in %dms", 42)
	logger.Infof(TypeGet, "GET /graph")
	logger.Close()

	appLog, err := os.ReadFile(filepath.Join(dir, "app.log"))
	require.NoError(t, err)
	assert.Contains(t, string(appLog), "pipeline finished in 42ms")
	assert.NotContains(t, string(appLog), "GET /graph")

	accessLog, err := os.ReadFile(filepath.Join(dir, "access.log"))
	require.NoError(t, err)
	assert.Contains(t, string(accessLog), "GET /graph")
}

func TestLogProvider_LevelFiltersDebug(t *testing.T) {
	dir := t.TempDir()
	conf := loggerConfig(dir)
	conf.Logger.Level = "warn"

	logger, err := NewLogProvider(conf)
	require.NoError(t, err)
	logger.Debugf(TypeApp, "noisy detail")
	logger.Warnf(TypeApp, "something odd")
	logger.Close()

	appLog, err := os.ReadFile(filepath.Join(dir, "app.log"))
	require.NoError(t, err)
	assert.NotContains(t, string(appLog), "noisy detail")
	assert.Contains(t, string(appLog), "something odd")
}

func TestLogProvider_BadLevel(t *testing.T) {
	conf := loggerConfig(t.TempDir())
	conf.Logger.Level = "shouty"
	_, err := NewLogProvider(conf)
	assert.Error(t, err)
}

func TestLogProvider_BadDirectory(t *testing.T) {
	conf := loggerConfig(filepath.Join(t.TempDir(), "missing", "nested"))
	_, err := NewLogProvider(conf)
	assert.Error(t, err)
}

func TestGetLogTypeByRequestType(t *testing.T) {
	assert.Equal(t, TypePost, GetLogTypeByRequestType(http.MethodPost))
	assert.Equal(t, TypeGet, GetLogTypeByRequestType(http.MethodGet))
	assert.Equal(t, TypeGet, GetLogTypeByRequestType(http.MethodDelete))
}
