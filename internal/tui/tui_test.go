package tui

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dkoosis/cpfgen/pkg/combine"
	"github.com/dkoosis/cpfgen/pkg/render"
	"github.com/dkoosis/cpfgen/pkg/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func update(t *testing.T, m model, msg tea.Msg) (model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(model)
	require.True(t, ok)
	return nm, cmd
}

func TestModel_ShowsProgress(t *testing.T) {
	m := newModel("Combining", render.MonoTheme())
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	m, cmd := update(t, m, progressMsg{Processed: 250_000, Valid: 2_500, Total: 1_000_000, Rate: 1})
	assert.NotNil(t, cmd, "bar animation scheduled")

	view := m.View()
	assert.Contains(t, view, "Combining")
	assert.Contains(t, view, "processed  250,000 of 1,000,000")
	assert.Contains(t, view, "valid      2,500")
	assert.Contains(t, view, "(1.00%)")
	assert.Contains(t, view, "running...")
	assert.Equal(t, 80, m.bar.Width)
}

func TestModel_QuitOnlyWhenDone(t *testing.T) {
	m := newModel("Combining", render.MonoTheme())

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	assert.Nil(t, cmd)
	m, cmd = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	assert.Nil(t, cmd, "ctrl+c does not abandon a running combination")
	assert.Contains(t, m.View(), "keys are ignored until the run completes")

	m, _ = update(t, m, doneMsg{stats: &report.RunStatistics{Processed: 100, Valid: 0, Invalid: 99, RepeatedSequences: 1, TotalCombinations: 100}})
	assert.Contains(t, m.View(), "+ done")
	assert.Contains(t, m.View(), "processed  100 of 100")

	_, cmd = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestModel_ShowsOutcome(t *testing.T) {
	m := newModel("Combining", render.MonoTheme())
	stopped, _ := update(t, m, doneMsg{stats: &report.RunStatistics{MaxValid: 1000, StoppedEarly: true}})
	assert.Contains(t, stopped.View(), "stopped at 1,000 valid CPFs")

	failed, _ := update(t, m, doneMsg{err: errors.New("disk full")})
	assert.Contains(t, failed.View(), "x disk full")
}

// pressQ keeps typing "q" into the program until stop is closed.
func pressQ(t *testing.T) (io.Reader, func()) {
	t.Helper()
	r, w := io.Pipe()
	stop := make(chan struct{})
	go func() {
		for {
			select {
			case <-stop:
				return
			case <-time.After(10 * time.Millisecond):
				if _, err := w.Write([]byte("q")); err != nil {
					return
				}
			}
		}
	}()
	return r, func() {
		close(stop)
		_ = r.Close()
	}
}

func TestRun_ReturnsWorkResult(t *testing.T) {
	want := &report.RunStatistics{Processed: 10, Valid: 1, Invalid: 9, TotalCombinations: 10}
	fn := func(r combine.Reporter) (*report.RunStatistics, error) {
		r.Progress(combine.Progress{Processed: 5, Total: 10})
		return want, nil
	}

	in, stop := pressQ(t)
	defer stop()

	got, err := Run(context.Background(), "Combining", render.MonoTheme(), fn,
		tea.WithInput(in), tea.WithOutput(io.Discard), tea.WithoutRenderer())
	require.NoError(t, err)
	assert.Same(t, want, got)
}

func TestRun_PropagatesWorkError(t *testing.T) {
	boom := errors.New("boom")
	fn := func(combine.Reporter) (*report.RunStatistics, error) { return nil, boom }

	in, stop := pressQ(t)
	defer stop()

	_, err := Run(context.Background(), "Combining", render.MonoTheme(), fn,
		tea.WithInput(in), tea.WithOutput(io.Discard), tea.WithoutRenderer())
	assert.ErrorIs(t, err, boom)
}
