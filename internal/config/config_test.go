package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "linv.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "inventory.csv", cfg.Inventory)
	assert.True(t, cfg.UniqueSerials)
	assert.Equal(t, "REW", cfg.Labels.Prefix)
	assert.True(t, cfg.Labels.OverwriteExisting)
	assert.Equal(t, 16, cfg.Labels.Sheet.Spec().PerPage())
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
inventory: parcels.csv
verbose: true
labels:
  prefix: PKG
  sheet:
    columns: 1
    rows: 10
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "parcels.csv", cfg.Inventory)
	assert.True(t, cfg.Verbose)
	assert.Equal(t, "PKG", cfg.Labels.Prefix)
	assert.Equal(t, 1, cfg.Labels.Sheet.Columns)
	assert.Equal(t, 10, cfg.Labels.Sheet.Rows)
	// unspecified keys keep defaults
	assert.Equal(t, 210.0, cfg.Labels.Sheet.Width)
	assert.True(t, cfg.UniqueSerials)
}

func TestLoad_EnvOverride(t *testing.T) {
	path := writeConfig(t, "labels:\n  prefix: PKG\n")
	t.Setenv("LINV_LABELS_PREFIX", "ENV")
	t.Setenv("LINV_UNIQUE_SERIALS", "false")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "ENV", cfg.Labels.Prefix)
	assert.False(t, cfg.UniqueSerials)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestLoad_NoFileUsesDefaults(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoad_InvalidSheet(t *testing.T) {
	path := writeConfig(t, "labels:\n  sheet:\n    columns: 3\n")
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "labels.sheet")
}

func TestWriteThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "linv.yaml")
	want := DefaultConfig()
	want.Inventory = "moving-day.csv"
	want.Labels.Border = false

	require.NoError(t, Write(path, want))
	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestPath_XDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	assert.Equal(t, filepath.Join("/tmp/xdg", "linv", "linv.yaml"), Path())
}
