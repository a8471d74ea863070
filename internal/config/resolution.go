package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/dkoosis/cpfgen/pkg/segment"
)

// Actions accepted by --action.
const (
	ActionGenerateSegments = "generate-segments"
	ActionCombine          = "combine"
	ActionFull             = "full"
)

// Sample mode settings.
const (
	SampleHigh     = 9
	SampleMaxValid = 1000
)

// Value sources recorded on ResolvedConfig.
const (
	SourceCLI     = "cli"
	SourceEnv     = "env"
	SourceFile    = "file"
	SourceDefault = "default"
)

// ErrInvalid reports a resolved configuration that cannot drive a run.
var ErrInvalid = errors.New("invalid configuration")

// CliFlags holds the values of command-line flags. Set names the flags the
// user passed explicitly, keyed by flag name.
type CliFlags struct {
	ConfigPath string
	Action     string
	PartsDir   string
	OutputDir  string
	Bounds     [3]segment.Bounds
	BatchSize  int
	MaxValid   int64
	Sample     bool
	Format     string
	Theme      string
	LogLevel   string
	Metrics    bool
	NoColor    bool
	TUI        bool

	Set map[string]bool
}

func (c CliFlags) isSet(name string) bool { return c.Set[name] }

// ResolvedConfig holds the final configuration after applying all priority rules.
type ResolvedConfig struct {
	Action    string
	PartsDir  string
	OutputDir string
	Bounds    [3]segment.Bounds
	BatchSize int
	MaxValid  int64
	Sample    bool
	Format    string
	Theme     string
	LogLevel  string
	Metrics   bool
	NoColor   bool
	TUI       bool

	// ConfigFile is the file that was loaded, empty when none was.
	ConfigFile string

	// Resolution metadata (for debugging)
	PartsDirSource  string
	OutputDirSource string
	BatchSizeSource string
	LogLevelSource  string
	MetricsSource   string
	NoColorSource   string
}

// ResolveConfig resolves configuration from all sources with explicit priority order.
func ResolveConfig(cli CliFlags) (*ResolvedConfig, error) {
	appCfg, path, err := LoadConfig(cli.ConfigPath)
	if err != nil {
		return nil, err
	}

	r := &ResolvedConfig{
		Action:          DefaultAction,
		PartsDir:        DefaultPartsDir,
		OutputDir:       DefaultOutputDir,
		Bounds:          [3]segment.Bounds{segment.Full(), segment.Full(), segment.Full()},
		BatchSize:       DefaultBatchSize,
		Format:          DefaultFormat,
		Theme:           DefaultTheme,
		LogLevel:        DefaultLogLevel,
		TUI:             cli.TUI,
		ConfigFile:      path,
		PartsDirSource:  SourceDefault,
		OutputDirSource: SourceDefault,
		BatchSizeSource: SourceDefault,
		LogLevelSource:  SourceDefault,
		MetricsSource:   SourceDefault,
		NoColorSource:   SourceDefault,
	}

	applyFile(r, appCfg)
	if err := applyEnv(r); err != nil {
		return nil, err
	}
	applyCLI(r, cli)

	if r.Sample {
		for i := range r.Bounds {
			r.Bounds[i] = segment.Bounds{Low: 0, High: SampleHigh}
		}
		r.MaxValid = SampleMaxValid
	}

	if err := validateResolvedConfig(r); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return r, nil
}

func applyFile(r *ResolvedConfig, f *AppConfig) {
	if f.PartsDir != "" {
		r.PartsDir, r.PartsDirSource = f.PartsDir, SourceFile
	}
	if f.OutputDir != "" {
		r.OutputDir, r.OutputDirSource = f.OutputDir, SourceFile
	}
	if f.BatchSize != 0 {
		r.BatchSize, r.BatchSizeSource = f.BatchSize, SourceFile
	}
	if f.LogLevel != "" {
		r.LogLevel, r.LogLevelSource = f.LogLevel, SourceFile
	}
	if f.Metrics != nil {
		r.Metrics, r.MetricsSource = *f.Metrics, SourceFile
	}
	if f.NoColor != nil {
		r.NoColor, r.NoColorSource = *f.NoColor, SourceFile
	}
	if f.MaxValid != 0 {
		r.MaxValid = f.MaxValid
	}
	if f.Format != "" {
		r.Format = f.Format
	}
	if f.Theme != "" {
		r.Theme = f.Theme
	}
	for label, b := range f.Segments {
		if i, ok := segmentIndex(label); ok {
			r.Bounds[i-1] = b
		}
	}
}

func applyEnv(r *ResolvedConfig) error {
	if v := os.Getenv("CPFGEN_PARTS_DIR"); v != "" {
		r.PartsDir, r.PartsDirSource = v, SourceEnv
	}
	if v := os.Getenv("CPFGEN_OUTPUT_DIR"); v != "" {
		r.OutputDir, r.OutputDirSource = v, SourceEnv
	}
	if v := os.Getenv("CPFGEN_BATCH_SIZE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: CPFGEN_BATCH_SIZE=%q", ErrInvalid, v)
		}
		r.BatchSize, r.BatchSizeSource = n, SourceEnv
	}
	if v := os.Getenv("CPFGEN_LOG_LEVEL"); v != "" {
		r.LogLevel, r.LogLevelSource = v, SourceEnv
	}
	if b := getEnvBool("CPFGEN_METRICS"); b != nil {
		r.Metrics, r.MetricsSource = *b, SourceEnv
	}
	// NO_COLOR disables color when present, regardless of its value.
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		r.NoColor, r.NoColorSource = true, SourceEnv
	}
	return nil
}

func applyCLI(r *ResolvedConfig, cli CliFlags) {
	if cli.isSet("action") {
		r.Action = cli.Action
	}
	if cli.isSet("parts-dir") {
		r.PartsDir, r.PartsDirSource = cli.PartsDir, SourceCLI
	}
	if cli.isSet("output-dir") {
		r.OutputDir, r.OutputDirSource = cli.OutputDir, SourceCLI
	}
	if cli.isSet("batch-size") {
		r.BatchSize, r.BatchSizeSource = cli.BatchSize, SourceCLI
	}
	if cli.isSet("log-level") {
		r.LogLevel, r.LogLevelSource = cli.LogLevel, SourceCLI
	}
	if cli.isSet("metrics") {
		r.Metrics, r.MetricsSource = cli.Metrics, SourceCLI
	}
	if cli.isSet("no-color") {
		r.NoColor, r.NoColorSource = cli.NoColor, SourceCLI
	}
	if cli.isSet("max-valid") {
		r.MaxValid = cli.MaxValid
	}
	if cli.isSet("format") {
		r.Format = cli.Format
	}
	if cli.isSet("theme") {
		r.Theme = cli.Theme
	}
	for i := range r.Bounds {
		if cli.isSet(fmt.Sprintf("seg%d-low", i+1)) {
			r.Bounds[i].Low = cli.Bounds[i].Low
		}
		if cli.isSet(fmt.Sprintf("seg%d-high", i+1)) {
			r.Bounds[i].High = cli.Bounds[i].High
		}
	}
	r.Sample = cli.Sample
}

// getEnvBool reads a boolean from environment variables, trying multiple keys.
// Returns nil if none are set, or a pointer to the boolean value.
func getEnvBool(keys ...string) *bool {
	for _, key := range keys {
		if val := os.Getenv(key); val != "" {
			if b, err := strconv.ParseBool(val); err == nil {
				return &b
			}
		}
	}
	return nil
}

// validateResolvedConfig validates the resolved configuration and returns errors for invalid states.
func validateResolvedConfig(cfg *ResolvedConfig) error {
	switch cfg.Action {
	case ActionGenerateSegments, ActionCombine, ActionFull:
	default:
		return fmt.Errorf("%w: action %q (must be: generate-segments, combine, full)", ErrInvalid, cfg.Action)
	}

	switch cfg.Format {
	case "auto", "terminal", "plain", "json":
	default:
		return fmt.Errorf("%w: format %q (must be: auto, terminal, plain, json)", ErrInvalid, cfg.Format)
	}

	switch cfg.Theme {
	case "default", "orca", "mono":
	default:
		return fmt.Errorf("%w: theme %q (must be: default, orca, mono)", ErrInvalid, cfg.Theme)
	}

	if cfg.BatchSize <= 0 {
		return fmt.Errorf("%w: batch_size must be positive, got: %d", ErrInvalid, cfg.BatchSize)
	}
	if cfg.MaxValid < 0 {
		return fmt.Errorf("%w: max_valid must not be negative, got: %d", ErrInvalid, cfg.MaxValid)
	}
	if cfg.PartsDir == "" || cfg.OutputDir == "" {
		return fmt.Errorf("%w: parts and output directories must be set", ErrInvalid)
	}

	for i, b := range cfg.Bounds {
		if _, err := segment.New(i+1, b.Low, b.High); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalid, err)
		}
	}
	return nil
}
