// Package render provides output renderers for cpfgen's console patterns.
package render

import (
	"strings"

	"github.com/dkoosis/cpfgen/pkg/pattern"
	"github.com/mattn/go-runewidth"
)

// Renderer converts patterns to formatted output.
type Renderer interface {
	Render(patterns []pattern.Pattern) string
}

// ByFormat returns the renderer for a resolved output format. Unknown
// formats fall back to plain text.
func ByFormat(format string, theme Theme, width int) Renderer {
	switch format {
	case "terminal":
		return NewTerminal(theme, width)
	case "json":
		return NewJSON()
	default:
		return NewPlain()
	}
}

// padRight pads s with spaces to the given display width.
func padRight(s string, width int) string {
	w := runewidth.StringWidth(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}

// padLeft right-aligns s within the given display width.
func padLeft(s string, width int) string {
	w := runewidth.StringWidth(s)
	if w >= width {
		return s
	}
	return strings.Repeat(" ", width-w) + s
}

// maxWidth returns the widest display width among values, capped at limit.
func maxWidth(limit int, values ...string) int {
	m := 0
	for _, v := range values {
		if w := runewidth.StringWidth(v); w > m {
			m = w
		}
	}
	if limit > 0 && m > limit {
		m = limit
	}
	return m
}

var sparkBlocks = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// spark draws values as block characters scaled between min and max.
// A zero min and max auto-detect the range.
func spark(s *pattern.Sparkline) string {
	minVal, maxVal := s.Min, s.Max
	if minVal == 0 && maxVal == 0 {
		minVal, maxVal = s.Values[0], s.Values[0]
		for _, v := range s.Values {
			minVal = min(minVal, v)
			maxVal = max(maxVal, v)
		}
	}
	valueRange := maxVal - minVal
	if valueRange == 0 {
		valueRange = 1
	}

	var sb strings.Builder
	for _, v := range s.Values {
		idx := int((v - minVal) / valueRange * 7)
		idx = max(0, min(idx, 7))
		sb.WriteRune(sparkBlocks[idx])
	}
	return sb.String()
}
