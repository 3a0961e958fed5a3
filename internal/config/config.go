// Package config loads the application configuration: file locations and
// the defaults pre-filled into the student form.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// FileName is the config file looked up in the base directory.
	FileName = "anerkennung.yaml"

	DefaultTemplateName = "template.docx"
	DefaultMappingName  = "module_mapping.json"

	DefaultPreviousStudies = "M.Sc. Data Science (PO 2016/2021)"
	DefaultTargetProgram   = "M.Sc. NLP (Version 2025)"
	DefaultGender          = "Herr"
)

// Environment variables overriding the file.
const (
	EnvConfig    = "ANERKENNUNG_CONFIG"
	EnvTemplate  = "ANERKENNUNG_TEMPLATE"
	EnvMapping   = "ANERKENNUNG_MAPPING"
	EnvOutputDir = "ANERKENNUNG_OUTPUT_DIR"
)

const defaultConfigYAML = `# anerkennung configuration
# Relative paths are resolved against the directory of this file.

template: template.docx
mapping: module_mapping.json

# Directory for generated documents. Empty means next to the template.
output_dir: ""
open_after_generate: true

# Log file used by the interactive form. Empty disables file logging.
log_file: ""

defaults:
  previous_studies: "M.Sc. Data Science (PO 2016/2021)"
  target_program: "M.Sc. NLP (Version 2025)"
  gender: Herr
`

// Defaults are the values pre-filled into a new student.
type Defaults struct {
	PreviousStudies string `yaml:"previous_studies"`
	TargetProgram   string `yaml:"target_program"`
	Gender          string `yaml:"gender"`
}

// Config is the application configuration.
type Config struct {
	Template          string   `yaml:"template"`
	Mapping           string   `yaml:"mapping"`
	OutputDir         string   `yaml:"output_dir"`
	OpenAfterGenerate bool     `yaml:"open_after_generate"`
	LogFile           string   `yaml:"log_file"`
	Defaults          Defaults `yaml:"defaults"`

	// Dir is the directory relative paths are resolved against.
	Dir string `yaml:"-"`
}

// DefaultConfig returns the configuration used when no file exists, rooted
// at dir.
func DefaultConfig(dir string) Config {
	return Config{
		Template:          DefaultTemplateName,
		Mapping:           DefaultMappingName,
		OpenAfterGenerate: true,
		Defaults: Defaults{
			PreviousStudies: DefaultPreviousStudies,
			TargetProgram:   DefaultTargetProgram,
			Gender:          DefaultGender,
		},
		Dir: dir,
	}
}

// ResolvePath picks the config file: the explicit path, then EnvConfig,
// then FileName in baseDir.
func ResolvePath(explicit, baseDir string) string {
	if explicit != "" {
		return explicit
	}
	if p := os.Getenv(EnvConfig); p != "" {
		return p
	}
	return filepath.Join(baseDir, FileName)
}

// Load reads the config file at path. A missing file yields the defaults.
// Environment overrides are applied last.
func Load(path string) (Config, error) {
	dir := filepath.Dir(path)
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}
	cfg := DefaultConfig(dir)

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return DefaultConfig(dir), fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	cfg.applyEnv()
	cfg.normalize()
	if err := cfg.validate(); err != nil {
		return cfg, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// EnsureFile writes the commented default config to path when it does not
// exist yet. It reports whether a file was created.
func EnsureFile(path string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return false, fmt.Errorf("config: stat %s: %w", path, err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, fmt.Errorf("config: create dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(defaultConfigYAML), 0o644); err != nil {
		return false, fmt.Errorf("config: write %s: %w", path, err)
	}
	return true, nil
}

// TemplatePath returns the absolute template location.
func (c Config) TemplatePath() string { return c.resolve(c.Template) }

// MappingPath returns the absolute mapping file location.
func (c Config) MappingPath() string { return c.resolve(c.Mapping) }

// LogPath returns the absolute log file location, or "" when file logging
// is off.
func (c Config) LogPath() string {
	if c.LogFile == "" {
		return ""
	}
	return c.resolve(c.LogFile)
}

// OutputDirFor returns where a document generated from template is saved.
func (c Config) OutputDirFor(template string) string {
	if c.OutputDir != "" {
		return c.resolve(c.OutputDir)
	}
	return filepath.Dir(template)
}

func (c Config) resolve(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.Dir, p)
}

func (c *Config) applyEnv() {
	if p := os.Getenv(EnvTemplate); p != "" {
		c.Template = absOrSelf(p)
	}
	if p := os.Getenv(EnvMapping); p != "" {
		c.Mapping = absOrSelf(p)
	}
	if p := os.Getenv(EnvOutputDir); p != "" {
		c.OutputDir = absOrSelf(p)
	}
}

func (c *Config) normalize() {
	c.Template = strings.TrimSpace(c.Template)
	c.Mapping = strings.TrimSpace(c.Mapping)
	c.OutputDir = strings.TrimSpace(c.OutputDir)
	c.LogFile = strings.TrimSpace(c.LogFile)
	if c.Template == "" {
		c.Template = DefaultTemplateName
	}
	if c.Mapping == "" {
		c.Mapping = DefaultMappingName
	}
	if c.Defaults.Gender == "" {
		c.Defaults.Gender = DefaultGender
	}
}

func (c *Config) validate() error {
	switch c.Defaults.Gender {
	case "Herr", "Frau":
		return nil
	default:
		return fmt.Errorf("defaults.gender must be Herr or Frau, got %q", c.Defaults.Gender)
	}
}

// absOrSelf makes env-supplied paths independent of the config dir.
func absOrSelf(p string) string {
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}
