package stream

import (
	"bytes"
	"strings"
	"testing"

	"github.com/dkoosis/cpfgen/pkg/combine"
	"github.com/stretchr/testify/assert"
)

func TestFooter_DrawsAndRedraws(t *testing.T) {
	var buf bytes.Buffer
	f := NewFooter(&buf, 120, 24)

	f.Progress(combine.Progress{Processed: 50_000, Valid: 500, Total: 100_000, Rate: 1})
	first := buf.String()
	assert.Contains(t, first, " 50.0%")
	assert.Contains(t, first, "processed 50,000 of 100,000  valid 500 (1.00%)")
	assert.Equal(t, 15, strings.Count(first, "█"))
	assert.NotContains(t, first, "\033[1A")

	buf.Reset()
	f.Progress(combine.Progress{Processed: 100_000, Valid: 1_000, Total: 100_000, Rate: 1})
	second := buf.String()
	assert.Equal(t, 2, strings.Count(second, "\033[1A"), "previous footer erased")
	assert.Contains(t, second, "100.0%")
}

func TestFooter_WriteAndClose(t *testing.T) {
	var buf bytes.Buffer
	f := NewFooter(&buf, 80, 24)

	f.Progress(combine.Progress{Processed: 2, Total: 10})
	buf.Reset()
	n, err := f.Write([]byte("log line\n"))
	assert.NoError(t, err)
	assert.Equal(t, 9, n)
	assert.True(t, strings.HasPrefix(buf.String(), "\033[1A"))
	assert.True(t, strings.HasSuffix(buf.String(), "log line\n"))

	buf.Reset()
	f.Close()
	assert.Zero(t, buf.Len(), "footer already erased")
}

func TestSamples_KeepsMostRecent(t *testing.T) {
	s := NewSamples(3)
	for _, r := range []float64{1, 2, 3, 4, 5} {
		s.Progress(combine.Progress{Rate: r})
	}
	assert.Equal(t, []float64{3, 4, 5}, s.Values())
	assert.Equal(t, 40, NewSamples(0).Limit)
}
