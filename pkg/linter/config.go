package linter

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"
)

// ConfigFileNames are searched, in order, by LoadConfigFromDir
var ConfigFileNames = []string{"backend-guard.yaml", "backend-guard.yml", ".backend-guard.yaml", ".backend-guard.yml"}

// Config represents the linting configuration
type Config struct {
	Version        string          `yaml:"version"`
	Strict         bool            `yaml:"strict"`
	SourceRoots    []string        `yaml:"source_roots"`
	Extension      string          `yaml:"extension"`
	ReportFile     string          `yaml:"report_file"`
	MessagesFile   string          `yaml:"messages_file"`
	MaxClassLines  int             `yaml:"max_class_lines"`
	Jobs           int             `yaml:"jobs"`
	SortByLocation bool            `yaml:"sort_by_location"`
	Rules          map[string]bool `yaml:"rules"`
	Ignore         []string        `yaml:"ignore"`
}

// DefaultConfig returns default linting configuration
func DefaultConfig() *Config {
	return &Config{
		Version:       "v1",
		SourceRoots:   []string{"src/main/java", "src/test/java"},
		Extension:     ".java",
		ReportFile:    "backend_guard_report.json",
		MessagesFile:  "src/main/resources/messages_vi.properties",
		MaxClassLines: 300,
		Rules:         make(map[string]bool),
		Ignore:        make([]string, 0),
	}
}

// RuleEnabled reports whether a rule runs. Rules are enabled unless set to false.
func (c *Config) RuleEnabled(name string) bool {
	enabled, ok := c.Rules[name]
	return !ok || enabled
}

// IsIgnored reports whether a slash-separated relative path matches an ignore glob
func (c *Config) IsIgnored(relPath string) bool {
	for _, pattern := range c.Ignore {
		if matched, err := doublestar.Match(pattern, relPath); err == nil && matched {
			return true
		}
	}
	return false
}

// Validate checks config values that would make a run meaningless
func (c *Config) Validate() error {
	var errs []error
	if len(c.SourceRoots) == 0 {
		errs = append(errs, errors.New("source_roots must not be empty"))
	}
	if !strings.HasPrefix(c.Extension, ".") {
		errs = append(errs, fmt.Errorf("extension %q must start with a dot", c.Extension))
	}
	if c.ReportFile == "" {
		errs = append(errs, errors.New("report_file must not be empty"))
	}
	if c.MaxClassLines <= 0 {
		errs = append(errs, fmt.Errorf("max_class_lines must be positive, got %d", c.MaxClassLines))
	}
	if c.Jobs < 0 {
		errs = append(errs, fmt.Errorf("jobs must not be negative, got %d", c.Jobs))
	}
	for _, pattern := range c.Ignore {
		if !doublestar.ValidatePattern(pattern) {
			errs = append(errs, fmt.Errorf("invalid ignore pattern %q", pattern))
		}
	}
	return errors.Join(errs...)
}

// LoadConfig loads configuration from a file. Keys missing from the file keep
// their default values.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if config.Rules == nil {
		config.Rules = make(map[string]bool)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return config, nil
}

// LoadConfigFromDir searches for config file in directory
func LoadConfigFromDir(dir string) (*Config, error) {
	for _, name := range ConfigFileNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return LoadConfig(path)
		}
	}

	// Return default if no config found
	return DefaultConfig(), nil
}

// SaveConfig saves configuration to a file
func SaveConfig(config *Config, path string) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
