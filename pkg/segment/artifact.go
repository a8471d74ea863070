package segment

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/dkoosis/cpfgen/pkg/report"
)

// ManifestName is the file written next to the segment artifacts.
const ManifestName = "manifest.json"

// ErrMissingArtifact reports a segment artifact that does not exist on disk.
var ErrMissingArtifact = errors.New("segment: artifact not found")

// FileName returns the artifact file name for segment index.
func FileName(index int) string {
	if index == Count {
		return Label(index) + "_check_digits.csv"
	}
	return Label(index) + ".csv"
}

// Manifest records one generation run.
type Manifest struct {
	Timestamp       time.Time         `json:"timestamp"`
	DurationSeconds float64           `json:"duration_seconds"`
	Files           map[string]string `json:"files"`
	Bounds          map[string]Bounds `json:"bounds"`
}

// Generator writes segment artifacts into a directory.
type Generator struct {
	dir string
	log zerolog.Logger
	now func() time.Time
}

// NewGenerator returns a Generator writing into dir.
func NewGenerator(dir string, logger zerolog.Logger) *Generator {
	return &Generator{
		dir: dir,
		log: logger.With().Str("component", "segment").Logger(),
		now: time.Now,
	}
}

// Generate writes segments 1-3 with the given bounds, segment 4 with its
// fixed range, and then the manifest.
func (g *Generator) Generate(bounds [Count - 1]Bounds) (*Manifest, error) {
	if err := os.MkdirAll(g.dir, 0o755); err != nil {
		return nil, fmt.Errorf("create parts dir: %w", err)
	}

	segs := make([]Segment, 0, Count)
	for i, b := range bounds {
		s, err := New(i+1, b.Low, b.High)
		if err != nil {
			return nil, err
		}
		segs = append(segs, s)
	}
	last, _ := New(Count, 0, 0)
	segs = append(segs, last)

	g.log.Info().Str("dir", g.dir).Msg("generating segments")
	start := g.now()

	m := &Manifest{
		Timestamp: start,
		Files:     make(map[string]string, Count),
		Bounds:    make(map[string]Bounds, Count),
	}
	for _, s := range segs {
		path, err := g.WriteSegment(s)
		if err != nil {
			return nil, err
		}
		m.Files[s.Label()] = path
		m.Bounds[s.Label()] = s.Bounds()
	}
	m.DurationSeconds = g.now().Sub(start).Seconds()

	if err := report.WriteJSON(filepath.Join(g.dir, ManifestName), m); err != nil {
		return nil, fmt.Errorf("write manifest: %w", err)
	}
	g.log.Info().Float64("duration_s", m.DurationSeconds).Msg("segments generated")
	return m, nil
}

// WriteSegment writes one artifact and returns its path.
func (g *Generator) WriteSegment(s Segment) (string, error) {
	path := filepath.Join(g.dir, FileName(s.Index()))
	bounds := s.Bounds()
	g.log.Debug().Int("segment", s.Index()).Int("low", bounds.Low).Int("high", bounds.High).Msg("writing segment")

	err := report.WriteAtomic(path, func(w io.Writer) error {
		cw := csv.NewWriter(w)
		if err := cw.Write([]string{s.Label()}); err != nil {
			return err
		}
		row := make([]string, 1)
		for v := range s.Values() {
			row[0] = v
			if err := cw.Write(row); err != nil {
				return err
			}
		}
		cw.Flush()
		return cw.Error()
	})
	if err != nil {
		return "", fmt.Errorf("write %s: %w", s.Label(), err)
	}

	g.log.Info().Int("segment", s.Index()).Int("values", s.Len()).Str("path", path).Msg("segment written")
	return path, nil
}

// Load reads the values of segment index from dir, skipping the header row.
func Load(dir string, index int) ([]string, error) {
	path := filepath.Join(dir, FileName(index))
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: segment %d: %s", ErrMissingArtifact, index, path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.ReuseRecord = true

	var values []string
	header := true
	for {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		if header {
			header = false
			continue
		}
		if len(row) == 0 || row[0] == "" {
			continue
		}
		values = append(values, row[0])
	}
	return values, nil
}

// LoadAll reads all four artifacts from dir. A missing artifact fails the
// whole load before any values are returned.
func LoadAll(dir string) ([Count][]string, error) {
	var sets [Count][]string
	for i := 1; i <= Count; i++ {
		path := filepath.Join(dir, FileName(i))
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			return sets, fmt.Errorf("%w: segment %d: %s", ErrMissingArtifact, i, path)
		}
	}
	for i := 1; i <= Count; i++ {
		values, err := Load(dir, i)
		if err != nil {
			return [Count][]string{}, err
		}
		sets[i-1] = values
	}
	return sets, nil
}
