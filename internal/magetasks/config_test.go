package magetasks

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitialize(t *testing.T) {
	tmpDir := t.TempDir()
	t.Chdir(tmpDir)

	require.NoError(t, Initialize())

	info, err := os.Stat(filepath.Join(tmpDir, "bin"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	expectedRoot, _ := filepath.EvalSymlinks(tmpDir)
	actualRoot, _ := filepath.EvalSymlinks(ProjectRoot)
	assert.Equal(t, expectedRoot, actualRoot)
}

func TestPaths(t *testing.T) {
	assert.Equal(t, "github.com/dkoosis/cpfgen", ModulePath)
	assert.Equal(t, "./cmd/cpfgen", MainPackage)
	assert.Equal(t, "./bin/cpfgen", BinPath)
}

func TestLDFlags(t *testing.T) {
	got := LDFlags("v1.2.3", "abc123", "2026-01-02T03:04:05Z")
	assert.Contains(t, got, "-X 'github.com/dkoosis/cpfgen/internal/version.Version=v1.2.3'")
	assert.Contains(t, got, "-X 'github.com/dkoosis/cpfgen/internal/version.CommitHash=abc123'")
	assert.Contains(t, got, "-X 'github.com/dkoosis/cpfgen/internal/version.BuildDate=2026-01-02T03:04:05Z'")
}

func TestSampleArgs(t *testing.T) {
	args := SampleArgs("run")
	assert.Equal(t, []string{
		"--sample",
		"--parts-dir", filepath.Join("run", "parts"),
		"--output-dir", filepath.Join("run", "output"),
		"--metrics",
	}, args)
}
