// Package magetasks provides the build, test, lint, and sample-run tasks
// used by the Magefile. Commands are executed through mage's sh helpers.
package magetasks
