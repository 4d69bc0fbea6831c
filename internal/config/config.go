package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	CurrentVersion = 1
	DefaultPath    = "~/.shopetl/shopetl.yaml"
)

// Config is the top-level configuration.
type Config struct {
	Version  int            `yaml:"version"`
	Generate GenerateConfig `yaml:"generate,omitempty"`
	Database DatabaseConfig `yaml:"database,omitempty"`
	Load     LoadConfig     `yaml:"load,omitempty"`
	Reports  ReportsConfig  `yaml:"reports,omitempty"`
	Logging  LogConfig      `yaml:"logging,omitempty"`
}

// GenerateConfig controls the synthetic data generator.
type GenerateConfig struct {
	Users      int    `yaml:"users,omitempty"`
	Products   int    `yaml:"products,omitempty"`
	Orders     int    `yaml:"orders,omitempty"`
	MaxReviews int    `yaml:"max_reviews,omitempty"`
	Seed       uint64 `yaml:"seed,omitempty"`
	OutputDir  string `yaml:"output_dir,omitempty"`
}

// DatabaseConfig selects the storage backend shared by load and report.
type DatabaseConfig struct {
	Driver string `yaml:"driver,omitempty"` // sqlite or postgres
	Path   string `yaml:"path,omitempty"`   // sqlite database file
	DSN    string `yaml:"dsn,omitempty"`    // postgres connection string
}

// LoadConfig controls the CSV loader.
type LoadConfig struct {
	DataDir string `yaml:"data_dir,omitempty"`
}

// ReportsConfig controls the report exporter.
type ReportsConfig struct {
	OutputDir string `yaml:"output_dir,omitempty"`
}

// LogConfig defines logging settings.
type LogConfig struct {
	Level string `yaml:"level,omitempty"` // debug, info, warn, error
}

// Default returns the configuration the pipeline runs with when no
// config file exists.
func Default() *Config {
	cfg := &Config{Version: CurrentVersion}
	cfg.applyDefaults()
	return cfg
}

// Load reads and parses the config file from the given path. When path
// is empty and the default config file does not exist, the defaults are
// returned; an explicitly named file must exist.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if path == "" {
		path = ExpandHome(DefaultPath)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return Default(), nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if cfg.Version != CurrentVersion {
		return nil, fmt.Errorf("unsupported config version %d (expected %d)", cfg.Version, CurrentVersion)
	}

	if cfg.Database.DSN, err = ResolveValue(cfg.Database.DSN); err != nil {
		return nil, fmt.Errorf("resolving database dsn: %w", err)
	}

	cfg.applyDefaults()
	return cfg, nil
}

// Save writes the config to the given path.
func (c *Config) Save(path string) error {
	if path == "" {
		path = ExpandHome(DefaultPath)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	return os.WriteFile(path, data, 0o600)
}

func (c *Config) applyDefaults() {
	if c.Generate.Users == 0 {
		c.Generate.Users = 500
	}
	if c.Generate.Products == 0 {
		c.Generate.Products = 150
	}
	if c.Generate.Orders == 0 {
		c.Generate.Orders = 800
	}
	if c.Generate.MaxReviews == 0 {
		c.Generate.MaxReviews = 400
	}
	if c.Generate.Seed == 0 {
		c.Generate.Seed = 42
	}
	if c.Generate.OutputDir == "" {
		c.Generate.OutputDir = "data"
	}
	if c.Database.Driver == "" {
		c.Database.Driver = "sqlite"
	}
	if c.Database.Path == "" {
		c.Database.Path = "ecom.db"
	}
	if c.Load.DataDir == "" {
		c.Load.DataDir = "data"
	}
	if c.Reports.OutputDir == "" {
		c.Reports.OutputDir = "reports"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
}

var secretPattern = regexp.MustCompile(`\$\{ENV:([^}]+)\}`)

// ResolveValue resolves ${ENV:NAME} references in a string value.
func ResolveValue(val string) (string, error) {
	matches := secretPattern.FindStringSubmatch(val)
	if matches == nil {
		return val, nil
	}

	v := os.Getenv(matches[1])
	if v == "" {
		return "", fmt.Errorf("environment variable %s not set", matches[1])
	}
	return v, nil
}

// ExpandHome expands ~ to the user's home directory.
func ExpandHome(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}
