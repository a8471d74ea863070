package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dkoosis/cpfgen/pkg/segment"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate moves the test into an empty directory with no user config.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg"))
	t.Setenv("HOME", filepath.Join(dir, "home"))
	return dir
}

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
}

func TestGetConfigPath_ReturnsLocalConfig_When_FileExists(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, FileName), "batch_size: 5\n")

	assert.Equal(t, FileName, getConfigPath())
}

func TestGetConfigPath_UsesXDGPath_When_LocalMissing(t *testing.T) {
	dir := isolate(t)
	xdgPath := filepath.Join(dir, "xdg", "cpfgen", FileName)
	writeFile(t, xdgPath, "batch_size: 5\n")

	assert.Equal(t, xdgPath, getConfigPath())
}

func TestGetConfigPath_ReturnsEmpty_When_NoConfigAvailable(t *testing.T) {
	isolate(t)
	assert.Empty(t, getConfigPath())
}

func TestLoadConfig_ParsesYAML_When_FilePresent(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, FileName), `
parts_dir: seg
output_dir: out
batch_size: 250
max_valid: 42
log_level: debug
format: plain
theme: orca
metrics: true
segments:
  segment_2:
    low: 10
    high: 20
`)

	cfg, path, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, FileName, path)
	assert.Equal(t, "seg", cfg.PartsDir)
	assert.Equal(t, "out", cfg.OutputDir)
	assert.Equal(t, 250, cfg.BatchSize)
	assert.EqualValues(t, 42, cfg.MaxValid)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "plain", cfg.Format)
	assert.Equal(t, "orca", cfg.Theme)
	require.NotNil(t, cfg.Metrics)
	assert.True(t, *cfg.Metrics)
	assert.Nil(t, cfg.NoColor)
	assert.Equal(t, segment.Bounds{Low: 10, High: 20}, cfg.Segments["segment_2"])
}

func TestLoadConfig_ReturnsEmpty_When_NoConfigFound(t *testing.T) {
	isolate(t)

	cfg, path, err := LoadConfig("")
	require.NoError(t, err)
	assert.Empty(t, path)
	assert.Equal(t, &AppConfig{}, cfg)
}

func TestLoadConfig_Fails_When_ExplicitFileMissing(t *testing.T) {
	dir := isolate(t)

	_, _, err := LoadConfig(filepath.Join(dir, "nope.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadConfig_Fails_When_YAMLMalformed(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "bad.yaml")
	writeFile(t, path, "batch_size: [unterminated\n")

	_, _, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestLoadConfig_Fails_When_SegmentUnknown(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "seg.yaml")
	writeFile(t, path, "segments:\n  segment_4:\n    low: 0\n    high: 5\n")

	_, _, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "segment_4")
}
