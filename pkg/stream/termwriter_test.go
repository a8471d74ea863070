package stream

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTermWriter_Write_PassesThrough(t *testing.T) {
	var buf bytes.Buffer
	tw := newTermWriter(&buf, 80, 24)
	n, err := tw.Write([]byte("hello\n"))
	assert.NoError(t, err)
	assert.Equal(t, 6, n)
	assert.Equal(t, "hello\n", buf.String())
}

func TestTermWriter_DrawFooter_TracksLineCount(t *testing.T) {
	var buf bytes.Buffer
	tw := newTermWriter(&buf, 80, 24)
	tw.DrawFooter([]string{"line1", "line2", "line3"})
	assert.Equal(t, 3, tw.footerLines)
}

func TestTermWriter_DrawFooter_CapsLines(t *testing.T) {
	var buf bytes.Buffer
	tw := newTermWriter(&buf, 80, 6)
	tw.DrawFooter([]string{"1", "2", "3", "4", "5"})
	assert.Equal(t, 3, tw.footerLines)
	assert.Equal(t, "1\n2\n3\n", buf.String())
}

func TestTermWriter_EraseFooter_WhenZeroLines(t *testing.T) {
	var buf bytes.Buffer
	tw := newTermWriter(&buf, 80, 24)
	tw.EraseFooter()
	assert.Zero(t, buf.Len())
}

func TestTermWriter_EraseFooter_ClearsLines(t *testing.T) {
	var buf bytes.Buffer
	tw := newTermWriter(&buf, 80, 24)
	tw.DrawFooter([]string{"line1", "line2"})
	buf.Reset()

	tw.EraseFooter()
	got := buf.String()
	assert.Equal(t, 2, strings.Count(got, "\033[1A"))
	assert.Equal(t, 2, strings.Count(got, "\033[2K"))
	assert.Zero(t, tw.footerLines)
}

func TestTermWriter_DrawFooter_TruncatesToWidth(t *testing.T) {
	var buf bytes.Buffer
	tw := newTermWriter(&buf, 20, 24)
	tw.DrawFooter([]string{"this is a very long line that exceeds twenty chars"})
	line := strings.TrimSuffix(buf.String(), "\n")
	assert.Len(t, line, 20)
	assert.True(t, strings.HasSuffix(line, "..."))
}
