package rawio

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the engine's tunable thresholds and the ONE_BIG_READ /
// CHECK_FILE_SIZE overrides. It is captured once — at dataset or band
// construction — into a read-only snapshot; nothing in the I/O path
// mutates it afterward.
//
// Follows AldrinSalazar-mrislicesto3d/pkg/config/config.go's shape: a
// YAML-tagged struct, a DefaultConfig constructor, and a LoadConfig that
// falls back to the defaults when the file does not exist.
type Config struct {
	// OneBigRead overrides the DirectIO fast-path heuristic. nil means
	// "unset": the heuristic below decides.
	OneBigRead *bool `yaml:"oneBigRead"`
	// CheckFileSize overrides Preflight's size check. nil means "unset":
	// Preflight runs its own mandatory/heuristic gate.
	CheckFileSize *bool `yaml:"checkFileSize"`

	// Heuristic thresholds for the DirectIO and Preflight gates.
	ScanlineSizeThreshold     int64   `yaml:"scanlineSizeThreshold"`     // bytes, default 50000
	HorizontalCoverageThresh  float64 `yaml:"horizontalCoverageThresh"`  // fraction, default 0.40
	CachedScanlineThreshold   float64 `yaml:"cachedScanlineThreshold"`   // fraction, default 0.05
	BandCountThreshold        int     `yaml:"bandCountThreshold"`        // default 10
	PreflightScanlineByteSize int64   `yaml:"preflightScanlineByteSize"` // bytes, default 20000
	MemoryCapDivisor          int64   `yaml:"memoryCapDivisor"`          // default 4 (INT32_MAX / this / nBands)
}

// DefaultConfig returns the engine's documented default thresholds with
// both override flags unset.
func DefaultConfig() *Config {
	return &Config{
		ScanlineSizeThreshold:     50_000,
		HorizontalCoverageThresh:  0.40,
		CachedScanlineThreshold:   0.05,
		BandCountThreshold:        10,
		PreflightScanlineByteSize: 20_000,
		MemoryCapDivisor:          4,
	}
}

// LoadConfig loads a YAML configuration file, falling back to
// DefaultConfig if the file does not exist.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	return cfg, nil
}

// ConfigFromEnv snapshots RAWIO_ONE_BIG_READ / RAWIO_CHECK_FILE_SIZE from
// the process environment once, the same "process-wide snapshot taken at
// startup" compromise GDAL_ONE_BIG_READ / GDAL_CHECK_DISK_FREE_SPACE-style
// environment flags use.
func ConfigFromEnv() *Config {
	cfg := DefaultConfig()
	if v, ok := boolEnv("RAWIO_ONE_BIG_READ"); ok {
		cfg.OneBigRead = &v
	}
	if v, ok := boolEnv("RAWIO_CHECK_FILE_SIZE"); ok {
		cfg.CheckFileSize = &v
	}
	return cfg
}

func boolEnv(name string) (bool, bool) {
	v, set := os.LookupEnv(name)
	if !set {
		return false, false
	}
	switch v {
	case "1", "true", "TRUE", "True", "YES", "yes":
		return true, true
	case "0", "false", "FALSE", "False", "NO", "no":
		return false, true
	default:
		return false, false
	}
}
