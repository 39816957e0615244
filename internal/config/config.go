package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Config represents the optional tntc.yaml project file.
//
// Example:
//
//	color: auto
//	log_level: warn
//	source_map:
//	  compact: true
//	  output: "{dir}/{name}.map.json"
type Config struct {
	// Color is one of auto, always or never.
	Color string `yaml:"color,omitempty"`

	// LogLevel is a logrus level name.
	LogLevel string `yaml:"log_level,omitempty"`

	SourceMap SourceMapConfig `yaml:"source_map,omitempty"`

	// path of the file the config was read from, empty for defaults.
	path string
}

type SourceMapConfig struct {
	// Compact drops redundant wrapper entries before the map is written.
	// Defaults to true.
	Compact *bool `yaml:"compact,omitempty"`

	// Output is where the source map of a parsed file is written, if set.
	// {dir} is the directory of the source file and {name} its base name
	// without extension.
	Output string `yaml:"output,omitempty"`
}

const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Default returns the configuration used when no tntc.yaml is found.
func Default() *Config {
	cfg := &Config{}
	cfg.setDefaults()
	return cfg
}

// LoadConfig reads and parses a tntc.yaml file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	return ParseConfig(data, path)
}

// ParseConfig parses tntc.yaml content from bytes.
// The path argument is used only for error messages.
func ParseConfig(data []byte, path string) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := cfg.validate(path); err != nil {
		return nil, err
	}
	cfg.setDefaults()
	cfg.path = path
	return &cfg, nil
}

// FindConfig searches for tntc.yaml starting from dir and walking up
// to parent directories.
// Returns the path to the config file and nil error if found,
// or empty string and nil error if not found.
func FindConfig(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving directory: %w", err)
	}

	for {
		candidate := filepath.Join(dir, ProjectFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}

		candidate = filepath.Join(dir, strings.TrimSuffix(ProjectFileName, ".yaml")+".yml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root
			return "", nil
		}
		dir = parent
	}
}

// validate checks the configuration for semantic errors.
func (c *Config) validate(path string) error {
	switch c.Color {
	case "", ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("%s: color: %q is not one of auto, always, never", path, c.Color)
	}
	if c.LogLevel != "" {
		if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
			return fmt.Errorf("%s: log_level: %w", path, err)
		}
	}
	if out := c.SourceMap.Output; out != "" && !strings.Contains(out, "{name}") {
		return fmt.Errorf("%s: source_map.output: %q must contain {name}", path, out)
	}
	return nil
}

// setDefaults fills in default values for omitted fields.
func (c *Config) setDefaults() {
	if c.Color == "" {
		c.Color = ColorAuto
	}
	if c.LogLevel == "" {
		c.LogLevel = logrus.WarnLevel.String()
	}
	if c.SourceMap.Compact == nil {
		compact := true
		c.SourceMap.Compact = &compact
	}
}

// Path returns the file the configuration was loaded from.
func (c *Config) Path() string { return c.path }

// Level returns the configured log level.
func (c *Config) Level() logrus.Level {
	lvl, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return logrus.WarnLevel
	}
	return lvl
}

// CompactSourceMap reports whether source maps are compacted before output.
func (c *Config) CompactSourceMap() bool {
	return c.SourceMap.Compact == nil || *c.SourceMap.Compact
}

// SourceMapPath expands source_map.output for sourceFile. It returns "" when
// no output is configured. Relative templates are taken relative to the
// directory of the config file.
func (c *Config) SourceMapPath(sourceFile string) string {
	if c.SourceMap.Output == "" {
		return ""
	}
	base := TrimSourceExt(filepath.Base(sourceFile))
	out := strings.NewReplacer("{dir}", filepath.Dir(sourceFile), "{name}", base).Replace(c.SourceMap.Output)
	if !filepath.IsAbs(out) && c.path != "" && !strings.Contains(c.SourceMap.Output, "{dir}") {
		out = filepath.Join(filepath.Dir(c.path), out)
	}
	return out
}
