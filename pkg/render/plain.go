package render

import (
	"fmt"
	"strings"

	"github.com/dkoosis/cpfgen/pkg/pattern"
)

// Plain renders patterns as terse text with no ANSI codes, for pipes and logs.
type Plain struct{}

// NewPlain creates a plain text renderer.
func NewPlain() *Plain {
	return &Plain{}
}

// Render formats all patterns as plain text.
func (p *Plain) Render(patterns []pattern.Pattern) string {
	var sb strings.Builder
	for _, pt := range patterns {
		switch v := pt.(type) {
		case *pattern.Summary:
			p.renderSummary(&sb, v)
		case *pattern.Table:
			p.renderTable(&sb, v)
		case *pattern.Sparkline:
			if len(v.Values) > 0 {
				fmt.Fprintf(&sb, "%s: %s %.2f%s\n", v.Label, spark(v), v.Values[len(v.Values)-1], v.Unit)
			}
		}
	}
	return sb.String()
}

func (p *Plain) renderSummary(sb *strings.Builder, s *pattern.Summary) {
	if s.Label != "" {
		sb.WriteString(s.Label + "\n")
	}
	for _, m := range s.Metrics {
		sb.WriteString("  " + m.Label + ": " + m.Value + "\n")
	}
}

func (p *Plain) renderTable(sb *strings.Builder, t *pattern.Table) {
	if len(t.Rows) == 0 {
		return
	}
	if t.Label != "" {
		sb.WriteString(t.Label + "\n")
	}
	for _, r := range t.Rows {
		prefix := "  "
		if r.Kind == pattern.KindError {
			prefix = "  FAIL "
		}
		sb.WriteString(prefix + r.Name)
		if r.Value != "" {
			sb.WriteString(" " + r.Value)
		}
		if r.Details != "" {
			sb.WriteString(" (" + r.Details + ")")
		}
		sb.WriteString("\n")
	}
}
