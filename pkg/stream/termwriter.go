// Package stream draws live progress on a terminal while a combination
// run is in flight.
package stream

import (
	"fmt"
	"io"

	"github.com/mattn/go-runewidth"
)

// termWriter is the single point of terminal output while a footer is
// active. No other code should write to the same stream meanwhile.
type termWriter struct {
	out         io.Writer
	width       int
	height      int
	footerLines int
}

func newTermWriter(out io.Writer, width, height int) *termWriter {
	if width <= 0 {
		width = 80
	}
	if height <= 0 {
		height = 24
	}
	return &termWriter{out: out, width: width, height: height}
}

// Write passes p to the scrolling history region above the footer.
// Callers erase the footer first.
func (w *termWriter) Write(p []byte) (int, error) {
	return w.out.Write(p)
}

// EraseFooter removes the current footer from the terminal.
// No-op if footerLines == 0.
func (w *termWriter) EraseFooter() {
	if w.footerLines == 0 {
		return
	}
	for range w.footerLines {
		fmt.Fprint(w.out, "\033[1A\r\033[2K")
	}
	w.footerLines = 0
}

// DrawFooter prints footer lines, truncated to terminal width.
// At most max(3, height/3) lines are drawn.
func (w *termWriter) DrawFooter(lines []string) {
	limit := max(3, w.height/3)
	if len(lines) > limit {
		lines = lines[:limit]
	}
	for _, line := range lines {
		fmt.Fprintln(w.out, runewidth.Truncate(line, w.width, "..."))
	}
	w.footerLines = len(lines)
}
