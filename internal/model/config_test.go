package model

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.yaml")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, DefaultAppConfig(), cfg)
}

func TestLoadConfig_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `storage:
  backend: keyring
  keyring_dir: /tmp/taskflow-keys
log:
  level: debug
  format: json
display:
  sort: priority
  status: active
  category: work
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, BackendKeyring, cfg.Storage.Backend)
	assert.Equal(t, "/tmp/taskflow-keys", cfg.Storage.KeyringDir)
	assert.Equal(t, DefaultAppConfig().Storage.Path, cfg.Storage.Path)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)

	opts, err := cfg.Display.ViewOptions()
	require.NoError(t, err)
	assert.Equal(t, ViewOptions{
		Status:   StatusActive,
		Category: CategoryFilter(CategoryWork),
		Sort:     SortPriority,
	}, opts)
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log:\n  level: warn\n"), 0o600))
	t.Setenv("TASKFLOW_LOG_LEVEL", "debug")
	t.Setenv("TASKFLOW_STORAGE_PATH", "/tmp/override.db")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "/tmp/override.db", cfg.Storage.Path)
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"unknown backend", "storage:\n  backend: redis\n"},
		{"unknown sort", "display:\n  sort: color\n"},
		{"unknown category", "display:\n  category: chores\n"},
		{"broken yaml", "storage: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o600))

			_, err := LoadConfig(path)
			assert.Error(t, err)
		})
	}
}

func TestSaveConfig_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := DefaultAppConfig()
	cfg.Storage.Backend = BackendKeyring
	cfg.Log.Level = "debug"
	cfg.Display.Sort = string(SortTitle)

	require.NoError(t, SaveConfig(path, cfg))

	got, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

func TestDisplayConfigFrom_RoundTripsViewOptions(t *testing.T) {
	opts := ViewOptions{
		Status:   StatusActive,
		Category: CategoryFilter(CategoryHealth),
		Sort:     SortCreatedAt,
	}

	got, err := DisplayConfigFrom(opts).ViewOptions()
	require.NoError(t, err)
	assert.Equal(t, opts, got)
}
