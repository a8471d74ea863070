// Package tui shows an interactive progress dashboard for a combination run.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dkoosis/cpfgen/pkg/combine"
	"github.com/dkoosis/cpfgen/pkg/render"
	"github.com/dkoosis/cpfgen/pkg/report"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// RunFunc performs the work displayed by the dashboard, reporting progress
// through the given reporter.
type RunFunc func(combine.Reporter) (*report.RunStatistics, error)

type progressMsg combine.Progress

type doneMsg struct {
	stats *report.RunStatistics
	err   error
}

type outcome struct {
	stats *report.RunStatistics
	err   error
}

// Run starts the dashboard and executes fn on its own goroutine. It returns
// once fn has finished and the user has dismissed the dashboard.
func Run(ctx context.Context, title string, theme render.Theme, fn RunFunc, opts ...tea.ProgramOption) (*report.RunStatistics, error) {
	opts = append([]tea.ProgramOption{tea.WithContext(ctx)}, opts...)
	program := tea.NewProgram(newModel(title, theme), opts...)

	result := make(chan outcome, 1)
	go func() {
		stats, err := fn(combine.ReporterFunc(func(p combine.Progress) {
			program.Send(progressMsg(p))
		}))
		result <- outcome{stats: stats, err: err}
		program.Send(doneMsg{stats: stats, err: err})
	}()

	_, runErr := program.Run()
	res := <-result
	if res.err != nil {
		return res.stats, res.err
	}
	if runErr != nil && ctx.Err() == nil {
		return res.stats, fmt.Errorf("dashboard: %w", runErr)
	}
	return res.stats, nil
}

type model struct {
	title   string
	theme   render.Theme
	bar     progress.Model
	printer *message.Printer
	latest  combine.Progress
	stats   *report.RunStatistics
	err     error
	done    bool
	width   int
}

func newModel(title string, theme render.Theme) model {
	return model{
		title:   title,
		theme:   theme,
		bar:     progress.New(progress.WithDefaultGradient()),
		printer: message.NewPrinter(language.English),
	}
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c", "enter":
			if m.done {
				return m, tea.Quit
			}
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.bar.Width = max(10, min(msg.Width-4, 80))
	case progressMsg:
		m.latest = combine.Progress(msg)
		return m, m.bar.SetPercent(m.latest.Fraction())
	case doneMsg:
		m.done = true
		m.stats, m.err = msg.stats, msg.err
		if m.stats != nil {
			m.latest = combine.Progress{
				Processed: m.stats.Processed,
				Valid:     m.stats.Valid,
				Total:     m.stats.TotalCombinations,
				Rate:      m.stats.ValidityRate,
			}
		}
		return m, m.bar.SetPercent(m.latest.Fraction())
	case progress.FrameMsg:
		bar, cmd := m.bar.Update(msg)
		m.bar = bar.(progress.Model)
		return m, cmd
	}
	return m, nil
}

func (m model) View() string {
	var sb strings.Builder
	sb.WriteString("\n")
	sb.WriteString(m.theme.Header.Render(m.title))
	sb.WriteString("\n\n  ")
	sb.WriteString(m.bar.View())
	sb.WriteString("\n\n")

	p := m.latest
	sb.WriteString(m.printer.Sprintf("  processed  %d of %d\n", p.Processed, p.Total))
	sb.WriteString(m.theme.Success.Render(m.printer.Sprintf("  valid      %d", p.Valid)))
	sb.WriteString(m.theme.Muted.Render(m.printer.Sprintf(" (%.2f%%)", p.Rate)))
	sb.WriteString("\n\n  ")

	switch {
	case !m.done:
		sb.WriteString(m.theme.Muted.Render("running... (keys are ignored until the run completes)"))
	case m.err != nil:
		sb.WriteString(m.theme.Error.Render(m.theme.Icons.Invalid + " " + m.err.Error()))
	case m.stats != nil && m.stats.StoppedEarly:
		sb.WriteString(m.theme.Warning.Render(m.theme.Icons.Warn + m.printer.Sprintf(" stopped at %d valid CPFs", m.stats.MaxValid)))
	default:
		sb.WriteString(m.theme.Success.Render(m.theme.Icons.Valid + " done"))
	}
	if m.done {
		sb.WriteString(m.theme.Muted.Render("  (q to quit)"))
	}
	sb.WriteString("\n")
	return sb.String()
}
