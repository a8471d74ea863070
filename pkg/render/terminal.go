package render

import (
	"fmt"
	"strings"

	"github.com/dkoosis/cpfgen/pkg/pattern"
	"github.com/mattn/go-runewidth"
)

// Terminal renders patterns as styled terminal output via lipgloss.
type Terminal struct {
	theme Theme
	width int
}

// NewTerminal creates a terminal renderer with the given theme.
func NewTerminal(theme Theme, width int) *Terminal {
	if width <= 0 {
		width = 80
	}
	return &Terminal{theme: theme, width: width}
}

// Render formats all patterns for terminal display.
func (t *Terminal) Render(patterns []pattern.Pattern) string {
	var sections []string
	for _, p := range patterns {
		if s := t.renderOne(p); s != "" {
			sections = append(sections, s)
		}
	}
	return strings.Join(sections, "\n")
}

func (t *Terminal) renderOne(p pattern.Pattern) string {
	switch v := p.(type) {
	case *pattern.Summary:
		return t.renderSummary(v)
	case *pattern.Table:
		return t.renderTable(v)
	case *pattern.Sparkline:
		return t.renderSparkline(v)
	default:
		return ""
	}
}

func (t *Terminal) renderSummary(s *pattern.Summary) string {
	var sb strings.Builder
	if s.Label != "" {
		sb.WriteString(t.theme.Header.Render(s.Label))
		sb.WriteString("\n")
	}

	labels := make([]string, len(s.Metrics))
	values := make([]string, len(s.Metrics))
	for i, m := range s.Metrics {
		labels[i], values[i] = m.Label, m.Value
	}
	labelW, valueW := maxWidth(0, labels...), maxWidth(0, values...)

	for _, m := range s.Metrics {
		icon, style := t.theme.kindStyle(m.Kind)
		sb.WriteString("  ")
		sb.WriteString(style.Render(icon))
		sb.WriteString(" ")
		sb.WriteString(padRight(m.Label, labelW))
		sb.WriteString("  ")
		sb.WriteString(style.Render(padLeft(m.Value, valueW)))
		sb.WriteString("\n")
	}
	return sb.String()
}

func (t *Terminal) renderTable(tbl *pattern.Table) string {
	if len(tbl.Rows) == 0 {
		return ""
	}
	var sb strings.Builder
	if tbl.Label != "" {
		sb.WriteString(t.theme.Header.Render(tbl.Label))
		sb.WriteString("\n")
	}

	names := make([]string, len(tbl.Rows))
	values := make([]string, len(tbl.Rows))
	for i, r := range tbl.Rows {
		names[i], values[i] = r.Name, r.Value
	}
	nameW := maxWidth(t.width/2, names...)
	valueW := maxWidth(0, values...)

	for _, r := range tbl.Rows {
		icon, style := t.theme.kindStyle(r.Kind)
		sb.WriteString("  ")
		sb.WriteString(style.Render(icon))
		sb.WriteString(" ")
		sb.WriteString(padRight(runewidth.Truncate(r.Name, nameW, "..."), nameW))
		if r.Value != "" {
			sb.WriteString("  ")
			sb.WriteString(t.theme.Primary.Render(padLeft(r.Value, valueW)))
		}
		if r.Details != "" {
			sb.WriteString("  ")
			sb.WriteString(t.theme.Muted.Render(r.Details))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func (t *Terminal) renderSparkline(s *pattern.Sparkline) string {
	if len(s.Values) == 0 {
		return ""
	}
	var sb strings.Builder
	if s.Label != "" {
		sb.WriteString(t.theme.Primary.Render(s.Label + ": "))
	}
	sb.WriteString(t.theme.Success.Render(spark(s)))
	latest := s.Values[len(s.Values)-1]
	sb.WriteString(t.theme.Muted.Render(fmt.Sprintf(" %.2f%s", latest, s.Unit)))
	sb.WriteString("\n")
	return sb.String()
}
