package combine

import "github.com/rs/zerolog"

// Progress is a snapshot taken at each reporting interval.
type Progress struct {
	Processed int64
	Valid     int64
	Total     int64
	Rate      float64 // valid / processed, percent
}

// Fraction returns how much of the candidate space has been processed.
func (p Progress) Fraction() float64 {
	if p.Total == 0 {
		return 0
	}
	return float64(p.Processed) / float64(p.Total)
}

// Reporter receives progress snapshots on the pipeline goroutine.
type Reporter interface {
	Progress(Progress)
}

// ReporterFunc adapts a function to Reporter.
type ReporterFunc func(Progress)

// Progress calls f.
func (f ReporterFunc) Progress(p Progress) { f(p) }

// Reporters fans progress out to several collaborators in order.
type Reporters []Reporter

// Progress forwards p to each reporter.
func (rs Reporters) Progress(p Progress) {
	for _, r := range rs {
		r.Progress(p)
	}
}

// LogReporter writes progress as structured log events.
type LogReporter struct {
	log zerolog.Logger
}

// NewLogReporter returns a reporter logging at info level.
func NewLogReporter(l zerolog.Logger) *LogReporter {
	return &LogReporter{log: l}
}

// Progress logs the snapshot.
func (r *LogReporter) Progress(p Progress) {
	r.log.Info().
		Int64("processed", p.Processed).
		Int64("valid", p.Valid).
		Float64("rate_pct", p.Rate).
		Msg("progress")
}
