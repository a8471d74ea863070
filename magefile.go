//go:build mage

// Build, test, and sample-run tasks for cpfgen. Run `mage -l` to list them.
package main

import (
	"fmt"
	"os"

	"github.com/dkoosis/cpfgen/internal/magetasks"
	"github.com/magefile/mage/mg"
)

// Default target - build the binary
var Default = Build

// Aliases for the targets used most often.
var Aliases = map[string]any{
	"b": Build,
	"t": Test.All,
	"s": Sample,
}

func init() {
	if err := magetasks.Initialize(); err != nil {
		fmt.Fprintf(os.Stderr, "mage: %v\n", err)
		os.Exit(1)
	}
}

// Build compiles ./cmd/cpfgen into ./bin with version ldflags
func Build() error {
	return magetasks.BuildAll()
}

// Clean deletes ./bin, the sample run directory and coverage output
func Clean() error {
	return magetasks.Clean()
}

// Sample builds cpfgen and runs --sample with metrics into ./tmp/sample
func Sample() error {
	return magetasks.Sample()
}

// QA lints, tests, then builds; the first failure stops the chain
func QA() error {
	magetasks.PrintH1Header("cpfgen QA")
	mg.SerialDeps(Lint.All, Test.Race, Build)
	magetasks.PrintSuccess("QA passed")
	return nil
}

// Lint groups formatting and static analysis
type Lint mg.Namespace

// All runs gofmt, vet, and the optional linters
func (Lint) All() error { return magetasks.LintAll() }

// Format lists files gofmt would change
func (Lint) Format() error { return magetasks.LintFormat() }

// Vet runs go vet ./...
func (Lint) Vet() error { return magetasks.LintVet() }

// Staticcheck runs staticcheck when installed
func (Lint) Staticcheck() error { return magetasks.LintStaticcheck() }

// Golangci runs golangci-lint when installed
func (Lint) Golangci() error { return magetasks.LintGolangci() }

// Fix runs golangci-lint --fix
func (Lint) Fix() error { return magetasks.LintGolangciFix() }

// Test groups the go test variants
type Test mg.Namespace

// All runs go test ./...
func (Test) All() error { return magetasks.TestAll() }

// Coverage writes coverage.out and prints the per-function summary
func (Test) Coverage() error { return magetasks.TestCoverage() }

// Race runs the tests with -race
func (Test) Race() error { return magetasks.TestRace() }
