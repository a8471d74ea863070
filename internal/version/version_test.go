package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestString(t *testing.T) {
	prev := [3]string{Version, CommitHash, BuildDate}
	t.Cleanup(func() { Version, CommitHash, BuildDate = prev[0], prev[1], prev[2] })

	Version, CommitHash, BuildDate = "v0.3.0", "1a2b3c", "2026-10-19T00:00:00Z"
	assert.Equal(t, "cpfgen v0.3.0 (commit 1a2b3c, built 2026-10-19T00:00:00Z)", String())
}
