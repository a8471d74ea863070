package stream

import (
	"io"
	"strings"
	"sync"

	"github.com/dkoosis/cpfgen/pkg/combine"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const barWidth = 30

// Footer is a combine.Reporter that keeps a two-line progress footer at the
// bottom of a terminal.
type Footer struct {
	mu      sync.Mutex
	tw      *termWriter
	printer *message.Printer
}

// NewFooter returns a footer drawing on out, sized for a width x height
// terminal.
func NewFooter(out io.Writer, width, height int) *Footer {
	return &Footer{
		tw:      newTermWriter(out, width, height),
		printer: message.NewPrinter(language.English),
	}
}

// Progress redraws the footer with the latest snapshot.
func (f *Footer) Progress(p combine.Progress) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tw.EraseFooter()
	f.tw.DrawFooter(f.lines(p))
}

// Write implements io.Writer so log output can share the terminal: the
// footer is erased, p is written, and the next Progress call redraws it.
func (f *Footer) Write(p []byte) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tw.EraseFooter()
	return f.tw.Write(p)
}

// Close erases the footer.
func (f *Footer) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tw.EraseFooter()
}

func (f *Footer) lines(p combine.Progress) []string {
	frac := p.Fraction()
	filled := int(frac * barWidth)
	filled = max(0, min(filled, barWidth))
	bar := strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)

	return []string{
		f.printer.Sprintf("%s %5.1f%%", bar, frac*100),
		f.printer.Sprintf("processed %d of %d  valid %d (%.2f%%)", p.Processed, p.Total, p.Valid, p.Rate),
	}
}
