// Package config provides configuration loading and management for slop.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the complete slop configuration. It is loaded once per session
// and passed by value into the coordinator, so a publish operation always
// observes a consistent snapshot.
type Config struct {
	Graph     GraphConfig     `yaml:"graph"`
	Repo      RepoConfig      `yaml:"repo"`
	Author    AuthorConfig    `yaml:"author"`
	Extractor ExtractorConfig `yaml:"extractor"`
}

// GraphConfig configures the remote SPARQL endpoint.
type GraphConfig struct {
	// Endpoint is the SPARQL query/update endpoint URL.
	Endpoint string `yaml:"endpoint"`
	// Timeout bounds each graph request (default: 30s).
	Timeout time.Duration `yaml:"timeout"`
}

// RepoConfig configures the version-controlled slop repository.
type RepoConfig struct {
	// Remote is the repository identifier on the git host, e.g. "you/slops".
	Remote string `yaml:"remote"`
	// Path is the local working tree (default: ~/.slop-at/<remote>).
	Path string `yaml:"path"`
	// Branch is the branch pushed to (default: "main").
	Branch string `yaml:"branch"`
}

// AuthorConfig identifies the publishing author.
type AuthorConfig struct {
	// Handle is the stable user handle recorded as dcterms:creator.
	Handle string `yaml:"handle"`
	// Name is the optional display name.
	Name string `yaml:"name"`
}

// ExtractorConfig configures the entity extraction service.
type ExtractorConfig struct {
	// Endpoint is the NER inference endpoint URL (empty = extraction disabled).
	Endpoint string `yaml:"endpoint"`
	// Threshold is the minimum confidence to keep an entity (default: 0.5).
	Threshold float64 `yaml:"threshold"`
	// Timeout bounds each extraction request (default: 60s).
	Timeout time.Duration `yaml:"timeout"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Graph: GraphConfig{
			Endpoint: "https://slop.at/sparql",
			Timeout:  30 * time.Second,
		},
		Repo: RepoConfig{
			Branch: "main",
		},
		Extractor: ExtractorConfig{
			Threshold: 0.5,
			Timeout:   60 * time.Second,
		},
	}
}

// ConfigurationError reports a missing or invalid configuration key. It is
// surfaced before any mutation is attempted.
type ConfigurationError struct {
	Key     string
	Message string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: %s %s", e.Key, e.Message)
}

// Validate checks that the configuration is complete enough to publish.
func (c *Config) Validate() error {
	if c.Graph.Endpoint == "" {
		return &ConfigurationError{Key: "graph.endpoint", Message: "is required"}
	}
	if c.Repo.Remote == "" {
		return &ConfigurationError{Key: "repo.remote", Message: "is required; run 'slop init <remote>' first"}
	}
	if c.Author.Handle == "" {
		return &ConfigurationError{Key: "author.handle", Message: "is required (set it or configure git user.email)"}
	}
	if c.Extractor.Threshold < 0 || c.Extractor.Threshold > 1 {
		return &ConfigurationError{Key: "extractor.threshold", Message: "must be between 0 and 1"}
	}
	return nil
}

// LoadFromFile loads configuration from a YAML file.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	config := &Config{}
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	return config, nil
}

// SaveToFile saves configuration to a YAML file.
func (c *Config) SaveToFile(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// Merge merges another config into this one (other takes precedence for
// non-zero values).
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}

	if other.Graph.Endpoint != "" {
		c.Graph.Endpoint = other.Graph.Endpoint
	}
	if other.Graph.Timeout != 0 {
		c.Graph.Timeout = other.Graph.Timeout
	}

	if other.Repo.Remote != "" {
		c.Repo.Remote = other.Repo.Remote
	}
	if other.Repo.Path != "" {
		c.Repo.Path = other.Repo.Path
	}
	if other.Repo.Branch != "" {
		c.Repo.Branch = other.Repo.Branch
	}

	if other.Author.Handle != "" {
		c.Author.Handle = other.Author.Handle
	}
	if other.Author.Name != "" {
		c.Author.Name = other.Author.Name
	}

	if other.Extractor.Endpoint != "" {
		c.Extractor.Endpoint = other.Extractor.Endpoint
	}
	if other.Extractor.Threshold != 0 {
		c.Extractor.Threshold = other.Extractor.Threshold
	}
	if other.Extractor.Timeout != 0 {
		c.Extractor.Timeout = other.Extractor.Timeout
	}
}
