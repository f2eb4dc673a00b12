package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v2"
)

const (
	VersionV1 = "v1"
)

type Config struct {
	Version       string   `yaml:"version" json:"version"`
	CurrentTarget string   `yaml:"current-target,omitempty" json:"current-target,omitempty"`
	Kubeconfig    string   `yaml:"kubeconfig,omitempty" json:"kubeconfig,omitempty"`
	Targets       []Target `yaml:"targets,omitempty" json:"targets,omitempty"`
	Settings      Settings `yaml:"settings,omitempty" json:"settings,omitempty"`
}

type Settings struct {
	OutputFormat string `yaml:"output-format,omitempty" json:"output-format,omitempty"`
	Timeout      string `yaml:"timeout,omitempty" json:"timeout,omitempty"`
	UserAgent    string `yaml:"user-agent,omitempty" json:"user-agent,omitempty"`
}

// Target is a named API endpoint that receives the kubeconfig bearer token.
type Target struct {
	Name                  string `yaml:"name" json:"name"`
	Server                string `yaml:"server" json:"server"`
	CAFile                string `yaml:"ca-file,omitempty" json:"ca-file,omitempty"`
	InsecureSkipTLSVerify bool   `yaml:"insecure-skip-tls-verify,omitempty" json:"insecure-skip-tls-verify,omitempty"`
}

func DefaultConfig() Config {
	return Config{
		Version: VersionV1,
		Settings: Settings{
			OutputFormat: "text",
			Timeout:      "30s",
		},
	}
}

func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is required")
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(content, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if cfg.Version == "" {
		cfg.Version = VersionV1
	}
	return &cfg, nil
}

// LoadOrDefault is Load, except that a missing file yields DefaultConfig.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if err == nil {
		return cfg, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		def := DefaultConfig()
		return &def, nil
	}
	return nil, err
}

func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errors.New("config is nil")
	}
	if cfg.Version == "" {
		cfg.Version = VersionV1
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}
	content, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	return os.WriteFile(path, content, 0o600)
}

func (c *Config) FindTarget(name string) (*Target, error) {
	for i := range c.Targets {
		if c.Targets[i].Name == name {
			return &c.Targets[i], nil
		}
	}
	return nil, fmt.Errorf("target not found: %s", name)
}

func (c *Config) CurrentTargetOrDefault() string {
	if c.CurrentTarget != "" {
		return c.CurrentTarget
	}
	if len(c.Targets) > 0 {
		return c.Targets[0].Name
	}
	return ""
}

// TimeoutDuration returns the configured request timeout, or zero when unset.
func (c *Config) TimeoutDuration() (time.Duration, error) {
	if c.Settings.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Settings.Timeout)
	if err != nil {
		return 0, fmt.Errorf("invalid timeout %q: %w", c.Settings.Timeout, err)
	}
	return d, nil
}

func (c *Config) Validate() error {
	if c.Version == "" {
		return errors.New("config version missing")
	}
	if c.Version != VersionV1 {
		return fmt.Errorf("unsupported config version: %s", c.Version)
	}
	seen := map[string]struct{}{}
	for _, t := range c.Targets {
		if strings.TrimSpace(t.Name) == "" {
			return errors.New("target name cannot be empty")
		}
		if _, dup := seen[t.Name]; dup {
			return fmt.Errorf("duplicate target: %s", t.Name)
		}
		seen[t.Name] = struct{}{}
		if strings.TrimSpace(t.Server) == "" {
			return fmt.Errorf("target %s server is required", t.Name)
		}
		if _, err := url.Parse(t.Server); err != nil {
			return fmt.Errorf("target %s server is invalid: %w", t.Name, err)
		}
	}
	if c.CurrentTarget != "" {
		if _, err := c.FindTarget(c.CurrentTarget); err != nil {
			return fmt.Errorf("current-target: %w", err)
		}
	}
	if _, err := c.TimeoutDuration(); err != nil {
		return err
	}
	return nil
}
