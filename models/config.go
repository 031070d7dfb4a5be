// Package models defines records, site profiles and runtime configuration.
package models

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const DefaultConfigFile = "smp.yaml"

// SiteProfile describes one target store: which URLs it owns and how its
// detail pages lay out developer/publisher/date/version facts.
type SiteProfile struct {
	Name           string `yaml:"name"`
	LibraryCatalog string `yaml:"library_catalog"`
	Host           string `yaml:"host"`
	// PathPattern is matched against the URL path.
	PathPattern string `yaml:"path_pattern"`

	HeadingTag    string `yaml:"heading_tag"`
	HeadingPhrase string `yaml:"heading_phrase"`
	GroupSelector string `yaml:"group_selector"`
	LabelSelector string `yaml:"label_selector"`
	ValueSelector string `yaml:"value_selector"`
}

// DefaultProfile returns the Meta Store experience-page profile.
func DefaultProfile() SiteProfile {
	return SiteProfile{
		Name:           "meta-store",
		LibraryCatalog: "Meta Store",
		Host:           "www.meta.com",
		PathPattern:    `^/(?:[a-z]{2}(?:-[a-z]{2})?/)?experiences/`,
		HeadingTag:     "div",
		HeadingPhrase:  "Additional details",
		GroupSelector:  "div.x78zum5",
		LabelSelector:  "div.x193iq5w:first-child span",
		ValueSelector:  "div.x193iq5w:last-child span",
	}
}

type HTTPConfig struct {
	UserAgent string        `yaml:"user_agent"`
	Timeout   time.Duration `yaml:"timeout"`
}

type DatabaseConfig struct {
	// Path of the SQLite file. Empty means next to the binary.
	Path string `yaml:"path"`
}

type OutputConfig struct {
	Format string `yaml:"format"` // json, yaml
}

// Config holds runtime configuration. Values come from an optional YAML
// file and are then overridden by CLI flags.
type Config struct {
	Profile  SiteProfile    `yaml:"profile"`
	HTTP     HTTPConfig     `yaml:"http"`
	Database DatabaseConfig `yaml:"database"`
	Output   OutputConfig   `yaml:"output"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	return &Config{
		Profile: DefaultProfile(),
		HTTP: HTTPConfig{
			UserAgent: "smp/1.0 (+https://github.com/dtnitsch/software-meta-parser)",
			Timeout:   20 * time.Second,
		},
		Output: OutputConfig{Format: "json"},
	}
}

// LoadConfig reads a YAML config file on top of DefaultConfig.
// A missing file is not an error.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks fields that would otherwise fail later and less clearly.
func (c *Config) Validate() error {
	switch c.Output.Format {
	case "json", "yaml":
	default:
		return fmt.Errorf("unsupported output format %q", c.Output.Format)
	}
	if c.Profile.LibraryCatalog == "" {
		return errors.New("profile.library_catalog must not be empty")
	}
	if c.Profile.Host == "" || c.Profile.PathPattern == "" {
		return errors.New("profile.host and profile.path_pattern are required")
	}
	if c.HTTP.Timeout < 0 {
		return errors.New("http.timeout must not be negative")
	}
	return nil
}
