package magetasks

import (
	"errors"
	"os/exec"
	"strings"
)

// notFoundMessages are the platform messages for a missing executable that
// do not wrap exec.ErrNotFound.
var notFoundMessages = []string{"executable file not found", "no such file or directory"}

// IsCommandNotFound reports whether err means the command was not installed.
func IsCommandNotFound(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, exec.ErrNotFound) {
		return true
	}
	for _, msg := range notFoundMessages {
		if strings.Contains(err.Error(), msg) {
			return true
		}
	}
	return false
}
