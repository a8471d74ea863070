// Package config handles configuration loading and merging for cpfgen.
//
// # Configuration Precedence
//
// Configuration values are resolved in the following order (highest to lowest priority):
//
//  1. CLI flags (--parts-dir, --batch-size, --log-level, --metrics, etc.)
//  2. Environment variables (CPFGEN_PARTS_DIR, CPFGEN_OUTPUT_DIR, CPFGEN_BATCH_SIZE,
//     CPFGEN_LOG_LEVEL, CPFGEN_METRICS, NO_COLOR)
//  3. YAML config file (.cpfgen.yaml in the working directory or
//     ~/.config/cpfgen/.cpfgen.yaml)
//  4. Hardcoded defaults
//
// When a higher-priority source sets a value, it overrides any lower-priority values.
// ResolvedConfig records where each of the overridable values came from.
//
// # Sample Mode
//
// --sample replaces the bounds of segments 1 to 3 with 0..9 and caps the run
// at 1000 valid CPFs, whatever the other sources say.
package config
