package combine

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
)

// OutputHeader is the header row of the combined output artifact.
const OutputHeader = "cpf"

// Sink receives batches of valid, normalized CPFs.
// Each WriteBatch call is one append to the underlying artifact.
type Sink interface {
	WriteBatch(rows []string) error
}

// CSVSink appends rows to a single-column CSV artifact.
type CSVSink struct {
	cw     *csv.Writer
	closer io.Closer
	row    []string
}

// NewCSVSink writes the header to w and returns a sink appending to it.
func NewCSVSink(w io.Writer) (*CSVSink, error) {
	s := &CSVSink{cw: csv.NewWriter(w), row: make([]string, 1)}
	if err := s.WriteBatch([]string{OutputHeader}); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}
	return s, nil
}

// CreateCSV truncates or creates path and returns a sink that owns the file.
func CreateCSV(path string) (*CSVSink, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create output: %w", err)
	}
	s, err := NewCSVSink(f)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	s.closer = f
	return s, nil
}

// WriteBatch writes rows and flushes them through to the underlying writer.
func (s *CSVSink) WriteBatch(rows []string) error {
	for _, r := range rows {
		s.row[0] = r
		if err := s.cw.Write(s.row); err != nil {
			return err
		}
	}
	s.cw.Flush()
	return s.cw.Error()
}

// Close releases the file opened by CreateCSV. It is a no-op for sinks
// built with NewCSVSink.
func (s *CSVSink) Close() error {
	if s.closer == nil {
		return nil
	}
	c := s.closer
	s.closer = nil
	return c.Close()
}
