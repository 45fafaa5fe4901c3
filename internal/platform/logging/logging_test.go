package logging_test

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"readtrack/internal/platform/logging"
)

func TestNewJSONWriter(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	logger, closeFn, err := logging.New(logging.Options{Writer: &buf, Format: logging.FormatJSON, Level: "debug"})
	require.NoError(t, err)
	defer closeFn()

	logging.Component(logger, "progress").Debug("saved", "key", "Chapter-read")
	assert.Contains(t, buf.String(), `"component":"progress"`)
	assert.Contains(t, buf.String(), `"key":"Chapter-read"`)
}

func TestNewFileSink(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "logs", "readtrack.log")
	logger, closeFn, err := logging.New(logging.Options{File: path, Level: "warn"})
	require.NoError(t, err)

	logger.Info("dropped")
	logger.Warn("kept")
	require.NoError(t, closeFn())

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "dropped")
	assert.Contains(t, string(raw), "kept")
}

func TestParseLevel(t *testing.T) {
	t.Parallel()
	assert.Equal(t, slog.LevelWarn, logging.ParseLevel("WARNING"))
	assert.Equal(t, slog.LevelInfo, logging.ParseLevel("bogus"))
}
