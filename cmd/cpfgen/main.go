// cpfgen enumerates CPF candidates from zero-padded segment ranges and keeps
// the ones whose verification digits check out.
//
// Usage:
//
//	cpfgen --action generate-segments --seg1-low 0 --seg1-high 9
//	cpfgen --action combine --max-valid 1000
//	cpfgen --sample
//	cpfgen validate 123.456.789-09 11144477735
//
// Actions:
//
//	generate-segments  write segment_1..3 and the check-digit suffix list
//	combine            combine the stored segments into valid_cpfs.csv
//	full               both, in order (default)
//
// Output modes (auto-detected):
//
//	terminal  styled summary (default when stdout is a TTY)
//	plain     plain text (default when piped)
//	json      structured JSON for automation
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"golang.org/x/term"

	"github.com/dkoosis/cpfgen/internal/config"
	"github.com/dkoosis/cpfgen/internal/logging"
	"github.com/dkoosis/cpfgen/internal/metrics"
	"github.com/dkoosis/cpfgen/internal/tui"
	"github.com/dkoosis/cpfgen/internal/version"
	"github.com/dkoosis/cpfgen/pkg/checksum"
	"github.com/dkoosis/cpfgen/pkg/combine"
	"github.com/dkoosis/cpfgen/pkg/mapper"
	"github.com/dkoosis/cpfgen/pkg/pattern"
	"github.com/dkoosis/cpfgen/pkg/render"
	"github.com/dkoosis/cpfgen/pkg/report"
	"github.com/dkoosis/cpfgen/pkg/segment"
	"github.com/dkoosis/cpfgen/pkg/stream"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	// Check for subcommands before flag parsing
	if len(args) > 0 && args[0] == "validate" {
		return runValidate(args[1:], stdout, stderr)
	}

	fs := flag.NewFlagSet("cpfgen", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var cli config.CliFlags
	fs.StringVar(&cli.ConfigPath, "config", "", "Config file (default: ./.cpfgen.yaml, then the user config dir)")
	fs.StringVar(&cli.Action, "action", config.DefaultAction, "Action: generate-segments, combine, full")
	fs.StringVar(&cli.PartsDir, "parts-dir", config.DefaultPartsDir, "Directory holding the segment artifacts")
	fs.StringVar(&cli.OutputDir, "output-dir", config.DefaultOutputDir, "Directory for valid_cpfs.csv and the run report")
	for i := range cli.Bounds {
		n := i + 1
		fs.IntVar(&cli.Bounds[i].Low, fmt.Sprintf("seg%d-low", n), 0, fmt.Sprintf("Lowest value of segment %d", n))
		fs.IntVar(&cli.Bounds[i].High, fmt.Sprintf("seg%d-high", n), segment.Full().High, fmt.Sprintf("Highest value of segment %d", n))
	}
	fs.Int64Var(&cli.MaxValid, "max-valid", 0, "Stop after this many valid CPFs (0 = no limit)")
	fs.IntVar(&cli.BatchSize, "batch-size", config.DefaultBatchSize, "Valid rows buffered per write")
	fs.BoolVar(&cli.Sample, "sample", false, "Quick run: segments 1-3 over 0..9 and at most 1000 valid CPFs")
	fs.StringVar(&cli.Format, "format", config.DefaultFormat, "Output format: auto, terminal, plain, json")
	fs.StringVar(&cli.Theme, "theme", config.DefaultTheme, "Theme: default, orca, mono")
	fs.StringVar(&cli.LogLevel, "log-level", config.DefaultLogLevel, "Log level: trace, debug, info, warn, error, off")
	fs.BoolVar(&cli.Metrics, "metrics", false, "Write a Prometheus textfile next to the run report")
	fs.BoolVar(&cli.NoColor, "no-color", false, "Disable colors")
	fs.BoolVar(&cli.TUI, "tui", false, "Show an interactive dashboard while combining")
	showVersion := fs.Bool("version", false, "Print version information and exit")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() > 0 {
		fmt.Fprintf(stderr, "cpfgen: unexpected argument %q\n", fs.Arg(0))
		return 2
	}
	if *showVersion {
		fmt.Fprintln(stdout, version.String())
		return 0
	}

	cli.Set = make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { cli.Set[f.Name] = true })

	cfg, err := config.ResolveConfig(cli)
	if err != nil {
		fmt.Fprintf(stderr, "cpfgen: %v\n", err)
		return 2
	}

	mode := resolveFormat(cfg.Format, stdout)
	renderer := selectRenderer(mode, cfg.Theme, cfg.NoColor, stdout)

	app := &app{cfg: cfg, stdout: stdout, stderr: stderr, mode: mode}
	patterns, err := app.execute()
	if err != nil {
		fmt.Fprintf(stderr, "cpfgen: %v\n", err)
		return 1
	}

	fmt.Fprint(stdout, renderer.Render(patterns))
	return 0
}

// app carries one invocation's resolved configuration through its actions.
type app struct {
	cfg    *config.ResolvedConfig
	stdout io.Writer
	stderr io.Writer
	mode   string
}

func (a *app) logger(w io.Writer) zerolog.Logger {
	return logging.New(w, logging.Config{
		Level:   a.cfg.LogLevel,
		Pretty:  isTTYWriter(a.stderr),
		Service: "cpfgen",
	})
}

func (a *app) execute() ([]pattern.Pattern, error) {
	var patterns []pattern.Pattern
	log := a.logger(a.stderr)
	log.Debug().
		Str("action", a.cfg.Action).
		Str("config_file", a.cfg.ConfigFile).
		Str("parts_dir_source", a.cfg.PartsDirSource).
		Str("batch_size_source", a.cfg.BatchSizeSource).
		Msg("configuration resolved")

	if a.cfg.Action != config.ActionCombine {
		m, err := segment.NewGenerator(a.cfg.PartsDir, log).Generate(a.cfg.Bounds)
		if err != nil {
			return nil, fmt.Errorf("generate segments: %w", err)
		}
		patterns = append(patterns, mapper.FromManifest(m)...)
	}

	if a.cfg.Action != config.ActionGenerateSegments {
		stats, samples, err := a.combine()
		if err != nil {
			return nil, fmt.Errorf("combine: %w", err)
		}
		if a.cfg.Metrics {
			path := filepath.Join(a.cfg.OutputDir, metrics.FileName)
			run := metrics.NewRun()
			run.Observe(stats)
			if err := run.WriteTextfile(path); err != nil {
				return nil, err
			}
			log.Info().Str("path", path).Msg("metrics written")
		}
		patterns = append(patterns, mapper.FromRun(stats, samples)...)
	}
	return patterns, nil
}

// combine runs the pipeline behind whichever progress display fits the
// terminal: the dashboard, a footer on a TTY stderr, or log lines.
func (a *app) combine() (*report.RunStatistics, []float64, error) {
	samples := stream.NewSamples(0)
	opts := combine.Options{BatchSize: a.cfg.BatchSize, MaxValid: a.cfg.MaxValid}

	if a.cfg.TUI {
		if isTTYWriter(a.stdout) && isTTYWriter(os.Stdin) {
			return a.combineTUI(samples, opts)
		}
		fmt.Fprintln(a.stderr, "cpfgen: --tui needs an interactive terminal; showing plain progress")
	}

	if a.mode != "json" && isTTYWriter(a.stderr) {
		width, height := termSize(a.stderr)
		footer := stream.NewFooter(a.stderr, width, height)
		defer footer.Close()
		log := a.logger(footer)
		p := combine.New(combine.WithLogger(log), combine.WithReporter(combine.Reporters{footer, samples}))
		stats, err := p.Run(a.cfg.PartsDir, a.cfg.OutputDir, opts)
		return stats, samples.Values(), err
	}

	log := a.logger(a.stderr)
	reporter := combine.Reporters{combine.NewLogReporter(log), samples}
	p := combine.New(combine.WithLogger(log), combine.WithReporter(reporter))
	stats, err := p.Run(a.cfg.PartsDir, a.cfg.OutputDir, opts)
	return stats, samples.Values(), err
}

func (a *app) combineTUI(samples *stream.Samples, opts combine.Options) (*report.RunStatistics, []float64, error) {
	// The dashboard owns the terminal; only errors reach stderr. A run stops
	// early only through --max-valid, so quit keys wait for the run to finish
	// and an external SIGINT keeps its default behavior of ending the process.
	log := a.logger(a.stderr).Level(zerolog.ErrorLevel)
	theme := themeFor(a.cfg.Theme, a.cfg.NoColor)
	stats, err := tui.Run(context.Background(), "cpfgen combine", theme, func(r combine.Reporter) (*report.RunStatistics, error) {
		p := combine.New(combine.WithLogger(log), combine.WithReporter(combine.Reporters{r, samples}))
		return p.Run(a.cfg.PartsDir, a.cfg.OutputDir, opts)
	})
	return stats, samples.Values(), err
}

// --- cpfgen validate subcommand ---

func runValidate(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("cpfgen validate", flag.ContinueOnError)
	fs.SetOutput(stderr)
	formatFlag := fs.String("format", "auto", "Output format: auto, terminal, plain, json")
	themeFlag := fs.String("theme", "default", "Theme: default, orca, mono")
	verbose := fs.Bool("verbose", false, "Print each verification step")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() == 0 {
		fmt.Fprintf(stderr, "cpfgen validate: at least one CPF is required\n")
		fmt.Fprintf(stderr, "Usage: cpfgen validate [--verbose] [--format f] <cpf>...\n")
		return 2
	}

	mode := resolveFormat(*formatFlag, stdout)
	switch mode {
	case "terminal", "plain", "json":
	default:
		fmt.Fprintf(stderr, "cpfgen validate: unknown format %q (expected auto, terminal, plain, json)\n", *formatFlag)
		return 2
	}

	inputs := fs.Args()
	results := make([]checksum.Result, len(inputs))
	allValid := true
	for i, in := range inputs {
		if *verbose && mode != "json" {
			results[i] = checksum.ValidateVerbose(in, stdout)
		} else {
			results[i] = checksum.Validate(in)
		}
		allValid = allValid && results[i].Valid
	}

	_, noColor := os.LookupEnv("NO_COLOR")
	fmt.Fprint(stdout, selectRenderer(mode, *themeFlag, noColor, stdout).Render(mapper.FromValidation(inputs, results)))
	if !allValid {
		return 1
	}
	return 0
}

// isTTYWriter reports whether w is a terminal.
func isTTYWriter(w any) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// termSize returns the terminal dimensions for w, defaulting to 80x24.
func termSize(w io.Writer) (width, height int) {
	width, height = 80, 24
	if f, ok := w.(*os.File); ok {
		if tw, th, err := term.GetSize(int(f.Fd())); err == nil {
			if tw > 0 {
				width = tw
			}
			if th > 0 {
				height = th
			}
		}
	}
	return width, height
}

func resolveFormat(format string, w io.Writer) string {
	if format != "auto" {
		return format
	}
	// Auto-detect: TTY = terminal, piped = plain
	if isTTYWriter(w) {
		return "terminal"
	}
	return "plain"
}

func themeFor(name string, noColor bool) render.Theme {
	if noColor {
		return render.MonoTheme()
	}
	return render.ThemeByName(name)
}

func selectRenderer(mode, themeName string, noColor bool, w io.Writer) render.Renderer {
	width, _ := termSize(w)
	return render.ByFormat(mode, themeFor(themeName, noColor), width)
}
