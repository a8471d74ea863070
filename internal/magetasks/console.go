package magetasks

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// Out receives all task output.
var Out io.Writer = os.Stdout

// PrintH1Header prints a top-level header with decoration.
func PrintH1Header(title string) {
	const width = 80
	rule := strings.Repeat("=", width)
	padding := max(0, (width-len(title))/2)
	fmt.Fprintf(Out, "\n%s\n%s%s\n%s\n\n", rule, strings.Repeat(" ", padding), title, rule)
}

// PrintH2Header prints a section header.
func PrintH2Header(title string) {
	fmt.Fprintf(Out, "\n=== %s ===\n\n", title)
}

// PrintSuccess prints a success message.
func PrintSuccess(msg string) { fmt.Fprintf(Out, "✅ %s\n", msg) }

// PrintWarning prints a warning message.
func PrintWarning(msg string) { fmt.Fprintf(Out, "⚠️  %s\n", msg) }

// PrintError prints an error message.
func PrintError(msg string) { fmt.Fprintf(Out, "❌ %s\n", msg) }

// PrintInfo prints an info message.
func PrintInfo(msg string) { fmt.Fprintf(Out, "ℹ️  %s\n", msg) }
