package magetasks

import (
	"path/filepath"

	"github.com/magefile/mage/sh"
)

// SampleDir holds the artifacts of a sample run.
const SampleDir = "./tmp/sample"

// SampleArgs returns the cpfgen arguments of a sample run rooted at dir.
func SampleArgs(dir string) []string {
	return []string{
		"--sample",
		"--parts-dir", filepath.Join(dir, "parts"),
		"--output-dir", filepath.Join(dir, "output"),
		"--metrics",
	}
}

// Sample builds cpfgen and runs it in sample mode under SampleDir.
func Sample() error {
	if err := BuildAll(); err != nil {
		return err
	}
	PrintH2Header("Sample Run")
	return sh.RunV(BinPath, SampleArgs(SampleDir)...)
}
