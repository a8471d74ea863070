// Package report holds the run statistics model and the JSON artifacts
// written at the end of generation and combination runs.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

// RunStatistics accumulates the counts of one combination run.
// Processed always equals Valid + Invalid + RepeatedSequences.
type RunStatistics struct {
	RunID             string    `json:"run_id"`
	TotalCombinations int64     `json:"total_combinations"`
	SegmentSizes      [4]int    `json:"segment_sizes"`
	Processed         int64     `json:"total_processed"`
	Valid             int64     `json:"total_valid"`
	Invalid           int64     `json:"total_invalid"`
	RepeatedSequences int64     `json:"repeated_sequences"`
	FormatErrors      int64     `json:"format_errors"`
	ValidityRate      float64   `json:"validity_rate_percent"`
	MaxValid          int64     `json:"max_valid,omitempty"`
	StoppedEarly      bool      `json:"stopped_early"`
	StartedAt         time.Time `json:"started_at"`
	FinishedAt        time.Time `json:"finished_at"`
	DurationSeconds   float64   `json:"duration_seconds"`
	OutputPath        string    `json:"output_file"`
}

// Rate returns valid/processed as a percentage, or 0 before anything ran.
func Rate(valid, processed int64) float64 {
	if processed == 0 {
		return 0
	}
	return float64(valid) / float64(processed) * 100
}

// Finish stamps the end time and derives duration and validity rate.
func (s *RunStatistics) Finish(at time.Time) {
	s.FinishedAt = at
	s.DurationSeconds = at.Sub(s.StartedAt).Seconds()
	s.ValidityRate = Rate(s.Valid, s.Processed)
}

// Balanced reports whether every processed candidate was classified once.
func (s *RunStatistics) Balanced() bool {
	return s.Processed == s.Valid+s.Invalid+s.RepeatedSequences
}

// WriteJSON writes v as indented JSON to path, replacing any previous file.
func WriteJSON(path string, v any) error {
	return WriteAtomic(path, func(w io.Writer) error {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	})
}

// ReadJSON decodes the JSON file at path into v.
func ReadJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

// WriteAtomic streams fill into a temp file next to path and renames it
// into place once fill and Close succeed. The temp file is removed on
// failure.
func WriteAtomic(path string, fill func(w io.Writer) error) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	success := false
	defer func() {
		if !success {
			_ = os.Remove(tmpPath)
		}
	}()

	if err := fill(tmp); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}
	success = true
	return nil
}
