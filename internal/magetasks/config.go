package magetasks

import (
	"os"
	"path/filepath"
)

var (
	// ModulePath is the Go module path.
	ModulePath = "github.com/dkoosis/cpfgen"

	// MainPackage is the package built into BinPath.
	MainPackage = "./cmd/cpfgen"

	// BinPath is the output path for built binaries.
	BinPath = "./bin/cpfgen"

	// ProjectRoot is the root directory of the project.
	ProjectRoot string
)

// Initialize sets up the magetasks package.
// Call this from the Magefile init() function.
func Initialize() error {
	var err error
	ProjectRoot, err = os.Getwd()
	if err != nil {
		return err
	}

	// Ensure bin directory exists
	return os.MkdirAll(filepath.Join(ProjectRoot, "bin"), 0o750)
}
