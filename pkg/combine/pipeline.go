// Package combine enumerates the Cartesian product of the segment value
// lists, filters and validates each candidate, and streams valid CPFs to a
// sink in batches.
//
// A run is single-threaded: enumeration, validation, and flushing happen in
// sequence on the calling goroutine. The only way to stop a run early is
// Options.MaxValid.
package combine

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/dkoosis/cpfgen/pkg/checksum"
	"github.com/dkoosis/cpfgen/pkg/report"
	"github.com/dkoosis/cpfgen/pkg/segment"
)

const (
	// OutputName is the combined output artifact inside the output dir.
	OutputName = "valid_cpfs.csv"
	// ReportName is the run report artifact inside the output dir.
	ReportName = "combination_report.json"

	DefaultBatchSize     = 10_000
	DefaultProgressEvery = 100_000
)

// ErrOptions reports unusable run options.
var ErrOptions = errors.New("combine: invalid options")

// Options tune a single run.
type Options struct {
	// BatchSize is the number of valid rows buffered before each flush.
	BatchSize int
	// MaxValid stops the run once this many valid CPFs were found.
	// Zero means no limit.
	MaxValid int64
	// ProgressEvery is the processed-tuple interval between progress reports.
	ProgressEvery int64
	// OutputPath is recorded in the statistics; it does not open anything.
	OutputPath string
}

func (o Options) withDefaults() Options {
	if o.BatchSize == 0 {
		o.BatchSize = DefaultBatchSize
	}
	if o.ProgressEvery == 0 {
		o.ProgressEvery = DefaultProgressEvery
	}
	return o
}

func (o Options) validate() error {
	switch {
	case o.BatchSize < 0:
		return fmt.Errorf("%w: batch size %d", ErrOptions, o.BatchSize)
	case o.MaxValid < 0:
		return fmt.Errorf("%w: max valid %d", ErrOptions, o.MaxValid)
	case o.ProgressEvery < 0:
		return fmt.Errorf("%w: progress interval %d", ErrOptions, o.ProgressEvery)
	}
	return nil
}

// Pipeline runs combinations. The zero value is not usable; call New.
type Pipeline struct {
	log      zerolog.Logger
	reporter Reporter
	now      func() time.Time
	newID    func() string
	validate func(string) checksum.Result
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets the logger used for run lifecycle events.
func WithLogger(l zerolog.Logger) Option {
	return func(p *Pipeline) { p.log = l.With().Str("component", "combine").Logger() }
}

// WithReporter sets the progress collaborator. Defaults to logging progress.
func WithReporter(r Reporter) Option {
	return func(p *Pipeline) { p.reporter = r }
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(p *Pipeline) { p.now = now }
}

// New builds a Pipeline.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{
		log:      zerolog.Nop(),
		now:      time.Now,
		newID:    uuid.NewString,
		validate: checksum.Validate,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.reporter == nil {
		p.reporter = NewLogReporter(p.log)
	}
	return p
}

// Combine enumerates sets, validates every candidate and writes valid ones to
// sink. On a sink error the statistics gathered so far are returned with the
// error; batches flushed before the failure stay written.
func (p *Pipeline) Combine(sets Sets, sink Sink, opts Options) (*report.RunStatistics, error) {
	opts = opts.withDefaults()
	if err := opts.validate(); err != nil {
		return nil, err
	}

	stats := &report.RunStatistics{
		RunID:             p.newID(),
		TotalCombinations: sets.Size(),
		SegmentSizes:      sets.Sizes(),
		MaxValid:          opts.MaxValid,
		StartedAt:         p.now(),
		OutputPath:        opts.OutputPath,
	}
	sizes := stats.SegmentSizes
	p.log.Info().
		Str("run_id", stats.RunID).
		Ints("segment_sizes", sizes[:]).
		Int64("combinations", stats.TotalCombinations).
		Msg("combining segments")

	// BatchSize comes from the user; let append grow past the default.
	batch := make([]string, 0, min(opts.BatchSize, DefaultBatchSize))
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if err := sink.WriteBatch(batch); err != nil {
			return fmt.Errorf("flush %d rows: %w", len(batch), err)
		}
		batch = batch[:0]
		return nil
	}

	for cand := range Candidates(sets) {
		stats.Processed++

		switch {
		case checksum.IsRepeated(cand):
			stats.RepeatedSequences++
		case len(cand) != checksum.Len:
			stats.Invalid++
			stats.FormatErrors++
		default:
			res := p.validate(cand)
			switch {
			case res.Valid:
				stats.Valid++
				batch = append(batch, res.Digits)
			case res.Digits == "":
				stats.Invalid++
				stats.FormatErrors++
			default:
				stats.Invalid++
			}
		}

		if len(batch) >= opts.BatchSize {
			if err := flush(); err != nil {
				stats.Finish(p.now())
				return stats, err
			}
		}
		if stats.Processed%opts.ProgressEvery == 0 {
			p.reporter.Progress(Progress{
				Processed: stats.Processed,
				Valid:     stats.Valid,
				Total:     stats.TotalCombinations,
				Rate:      report.Rate(stats.Valid, stats.Processed),
			})
		}
		if opts.MaxValid > 0 && stats.Valid >= opts.MaxValid {
			stats.StoppedEarly = stats.Processed < stats.TotalCombinations
			p.log.Info().Int64("max_valid", opts.MaxValid).Msg("valid limit reached")
			break
		}
	}

	if err := flush(); err != nil {
		stats.Finish(p.now())
		return stats, err
	}
	stats.Finish(p.now())

	p.log.Info().
		Str("run_id", stats.RunID).
		Int64("processed", stats.Processed).
		Int64("valid", stats.Valid).
		Int64("invalid", stats.Invalid).
		Int64("repeated", stats.RepeatedSequences).
		Float64("rate_pct", stats.ValidityRate).
		Float64("duration_s", stats.DurationSeconds).
		Msg("combination finished")
	return stats, nil
}

// Run loads the segment artifacts from partsDir, writes valid CPFs to
// OutputName and the statistics to ReportName inside outputDir.
//
// Bad options or a missing artifact abort the run before the output file is
// created. The report is only written after a successful combination.
func (p *Pipeline) Run(partsDir, outputDir string, opts Options) (stats *report.RunStatistics, err error) {
	if err := opts.withDefaults().validate(); err != nil {
		return nil, err
	}
	p.log.Info().Str("parts_dir", partsDir).Msg("loading segment artifacts")
	loaded, err := segment.LoadAll(partsDir)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	opts.OutputPath = filepath.Join(outputDir, OutputName)

	sink, err := CreateCSV(opts.OutputPath)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := sink.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close output: %w", cerr)
		}
	}()

	stats, err = p.Combine(Sets(loaded), sink, opts)
	if err != nil {
		return stats, err
	}

	reportPath := filepath.Join(outputDir, ReportName)
	if err := report.WriteJSON(reportPath, stats); err != nil {
		return stats, fmt.Errorf("write report: %w", err)
	}
	p.log.Info().Str("output", opts.OutputPath).Str("report", reportPath).Msg("artifacts written")
	return stats, nil
}
