package report

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestRate(t *testing.T) {
	if got := Rate(0, 0); got != 0 {
		t.Errorf("Rate(0, 0) = %v, want 0", got)
	}
	if got := Rate(1, 4); got != 25 {
		t.Errorf("Rate(1, 4) = %v, want 25", got)
	}
}

func TestRunStatistics_Finish(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s := &RunStatistics{StartedAt: start, Processed: 200, Valid: 2, Invalid: 197, RepeatedSequences: 1}
	s.Finish(start.Add(1500 * time.Millisecond))

	if s.DurationSeconds != 1.5 {
		t.Errorf("DurationSeconds = %v, want 1.5", s.DurationSeconds)
	}
	if s.ValidityRate != 1 {
		t.Errorf("ValidityRate = %v, want 1", s.ValidityRate)
	}
	if !s.Balanced() {
		t.Error("expected balanced statistics")
	}
}

func TestWriteJSON_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "report.json")
	in := RunStatistics{RunID: "abc", TotalCombinations: 100, Valid: 3, OutputPath: "out.csv"}
	if err := WriteJSON(path, in); err != nil {
		t.Fatal(err)
	}

	var out RunStatistics
	if err := ReadJSON(path, &out); err != nil {
		t.Fatal(err)
	}
	if out.RunID != in.RunID || out.Valid != in.Valid || out.OutputPath != in.OutputPath {
		t.Errorf("round trip mismatch: got %+v", out)
	}
}

func TestWriteAtomic_LeavesNoTempOnFailure(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.csv")
	boom := errors.New("boom")

	err := WriteAtomic(path, func(w io.Writer) error {
		_, _ = w.Write([]byte("partial"))
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want boom", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("expected empty dir, found %d entries", len(entries))
	}
}

func TestReadJSON_MissingFile(t *testing.T) {
	var s RunStatistics
	err := ReadJSON(filepath.Join(t.TempDir(), "nope.json"), &s)
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("err = %v, want not-exist", err)
	}
}
