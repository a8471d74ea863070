package stream

import "github.com/dkoosis/cpfgen/pkg/combine"

// Samples is a combine.Reporter that records the validity rate of each
// progress snapshot, keeping the most recent Limit readings.
type Samples struct {
	Limit  int
	values []float64
}

// NewSamples keeps up to limit readings; limit <= 0 keeps 40.
func NewSamples(limit int) *Samples {
	if limit <= 0 {
		limit = 40
	}
	return &Samples{Limit: limit}
}

// Progress records p.Rate.
func (s *Samples) Progress(p combine.Progress) {
	s.values = append(s.values, p.Rate)
	if over := len(s.values) - s.Limit; over > 0 {
		s.values = s.values[over:]
	}
}

// Values returns the recorded readings, oldest first.
func (s *Samples) Values() []float64 { return s.values }
