// Package config loads the mention YAML configuration.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/gobwas/glob"
	"github.com/olivermillard/mention/internal/logging"
	"gopkg.in/yaml.v3"
)

// Source kinds.
const (
	KindFile   = "file"
	KindHTTP   = "http"
	KindSQLite = "sqlite"
)

const (
	defaultQuietInterval = 300 * time.Millisecond
	defaultLimit         = 8
)

// Config is the on-disk configuration.
type Config struct {
	QuietInterval time.Duration   `yaml:"quiet_interval"`
	Limit         int             `yaml:"limit"`
	Log           LogConfig       `yaml:"log"`
	Directory     DirectoryConfig `yaml:"directory"`
}

// LogConfig selects log level and destination.
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// DirectoryConfig lists where directory entries come from.
type DirectoryConfig struct {
	Sources []Source `yaml:"sources,omitempty"`
	Exclude []string `yaml:"exclude,omitempty"`
}

// Source is one directory source. TokenEnv names the environment variable
// holding a bearer token for http sources.
type Source struct {
	Kind     string        `yaml:"kind"`
	Path     string        `yaml:"path,omitempty"`
	URL      string        `yaml:"url,omitempty"`
	TokenEnv string        `yaml:"token_env,omitempty"`
	Timeout  time.Duration `yaml:"timeout,omitempty"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		QuietInterval: defaultQuietInterval,
		Limit:         defaultLimit,
		Log:           LogConfig{Level: "info"},
	}
}

// DefaultPath returns ~/.config/mention/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "mention", "config.yaml"), nil
}

// Read reads the config file at path if present. A missing file returns nil, nil.
// Fields absent from the file keep their defaults.
func Read(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	return Parse(data)
}

// Parse decodes YAML over the defaults. Unknown keys are rejected.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// Load resolves the config in order: an explicit path (which must exist), a
// project file found by walking up from the working directory, the user
// config, and finally the defaults. Relative paths inside a file are taken
// relative to that file.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		var err error
		path, err = FindProjectConfig("")
		if err != nil {
			return nil, err
		}
		if path == "" {
			path, err = DefaultPath()
			if err != nil {
				return nil, err
			}
		}
	}
	cfg, err := Read(path)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		if explicit {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
		cfg = Default()
	} else {
		resolvePaths(cfg, filepath.Dir(path))
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Write stores cfg as YAML at path.
func Write(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Validate reports every problem found in the configuration.
func (c *Config) Validate() error {
	var errs []error
	if c.QuietInterval < 0 {
		errs = append(errs, fmt.Errorf("quiet_interval must not be negative"))
	}
	if c.Limit < 0 {
		errs = append(errs, fmt.Errorf("limit must not be negative"))
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}
	for i, source := range c.Directory.Sources {
		if err := source.validate(); err != nil {
			errs = append(errs, fmt.Errorf("directory.sources[%d]: %w", i, err))
		}
	}
	for _, pattern := range c.Directory.Exclude {
		if _, err := glob.Compile(pattern); err != nil {
			errs = append(errs, fmt.Errorf("directory.exclude %q: %w", pattern, err))
		}
	}
	return errors.Join(errs...)
}

func (s Source) validate() error {
	switch s.Kind {
	case KindFile, KindSQLite:
		if s.Path == "" {
			return fmt.Errorf("%s source requires path", s.Kind)
		}
	case KindHTTP:
		if s.URL == "" {
			return fmt.Errorf("http source requires url")
		}
		if s.Timeout < 0 {
			return fmt.Errorf("timeout must not be negative")
		}
	case "":
		return fmt.Errorf("missing kind")
	default:
		return fmt.Errorf("unknown kind %q", s.Kind)
	}
	return nil
}
