package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"readtrack/internal/platform/config"
)

func TestLoadExplicitFile(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	body := `data_dir: ` + dir + `
store: json
policy: numbered
fetch_timeout: 3s
books:
  artofwar: books/artofwar.txt
log:
  level: debug
  format: json
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	cfg, err := config.Load(path, config.Overrides{})
	require.NoError(t, err)
	assert.Equal(t, config.StoreJSON, cfg.Store)
	assert.Equal(t, "numbered", cfg.Policy)
	assert.Equal(t, 3*time.Second, cfg.FetchTimeout)
	assert.Equal(t, "books/artofwar.txt", cfg.Books["artofwar"])
	assert.Equal(t, filepath.Join(dir, "progress.json"), cfg.StorePath())
	assert.Equal(t, filepath.Join(dir, "readtrack.log"), cfg.Log.File)
	assert.Equal(t, ".", cfg.ExportDir)
}

func TestLoadOverridesWin(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("store: json\n"), 0o644))

	cfg, err := config.Load(path, config.Overrides{DataDir: dir, Store: config.StoreBadger})
	require.NoError(t, err)
	assert.Equal(t, config.StoreBadger, cfg.Store)
	assert.Equal(t, filepath.Join(dir, "badger"), cfg.StorePath())
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("store: redis\n"), 0o644))

	_, err := config.Load(path, config.Overrides{DataDir: dir})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Store")
}

func TestLoadMissingExplicitFile(t *testing.T) {
	t.Parallel()
	_, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"), config.Overrides{})
	require.Error(t, err)
}
