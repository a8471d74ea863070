package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dkoosis/cpfgen/pkg/segment"
	"gopkg.in/yaml.v3"
)

// FileName is the config file looked up in the working directory and the
// user config dir.
const FileName = ".cpfgen.yaml"

// Constants for default values.
const (
	DefaultPartsDir  = "parts"
	DefaultOutputDir = "output"
	DefaultBatchSize = 10_000
	DefaultLogLevel  = "info"
	DefaultFormat    = "auto"
	DefaultTheme     = "default"
	DefaultAction    = ActionFull
)

// AppConfig represents the contents of .cpfgen.yaml. Zero values mean
// "not set" and leave the defaults in place.
type AppConfig struct {
	PartsDir  string                    `yaml:"parts_dir"`
	OutputDir string                    `yaml:"output_dir"`
	BatchSize int                       `yaml:"batch_size"`
	MaxValid  int64                     `yaml:"max_valid"`
	LogLevel  string                    `yaml:"log_level"`
	Format    string                    `yaml:"format"`
	Theme     string                    `yaml:"theme"`
	Metrics   *bool                     `yaml:"metrics"`
	NoColor   *bool                     `yaml:"no_color"`
	Segments  map[string]segment.Bounds `yaml:"segments"`
}

// LoadConfig reads the config file at path. An empty path triggers the
// default lookup; a missing default file is not an error, a missing
// explicit file is.
func LoadConfig(path string) (*AppConfig, string, error) {
	explicit := path != ""
	if !explicit {
		path = getConfigPath()
		if path == "" {
			return &AppConfig{}, "", nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return &AppConfig{}, "", nil
		}
		return nil, "", fmt.Errorf("read config %s: %w", path, err)
	}

	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, "", fmt.Errorf("parse config %s: %w", path, err)
	}
	for label := range cfg.Segments {
		if _, ok := segmentIndex(label); !ok {
			return nil, "", fmt.Errorf("parse config %s: unknown segment %q", path, label)
		}
	}
	return &cfg, path, nil
}

// getConfigPath returns the path of the config file to load.
// It checks the local directory first, then the user config dir.
func getConfigPath() string {
	if _, err := os.Stat(FileName); err == nil {
		return FileName
	}

	configHome, err := os.UserConfigDir()
	if err != nil || configHome == "" || configHome == "/" {
		return ""
	}
	xdgPath := filepath.Join(configHome, "cpfgen", FileName)
	if _, err := os.Stat(xdgPath); err == nil {
		return xdgPath
	}
	return ""
}

// segmentIndex maps "segment_1".."segment_3" to 1..3.
func segmentIndex(label string) (int, bool) {
	for i := 1; i <= 3; i++ {
		if label == fmt.Sprintf("segment_%d", i) {
			return i, true
		}
	}
	return 0, false
}
