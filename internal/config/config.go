package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/tailscale/hujson"
	"gopkg.in/yaml.v2"
)

// Config is the recfile tool configuration.
type Config struct {
	// DataDir is where record files are stored.
	DataDir string `yaml:"data_directory" json:"data_directory"`
	// LogLevel is a logrus level name.
	LogLevel string `yaml:"log_level" json:"log_level"`
	// Capacity bounds random files opened by the tool. Nil means unbounded.
	Capacity *int `yaml:"capacity" json:"capacity"`
}

const (
	DefaultDataDir  = "."
	DefaultLogLevel = "info"
)

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		DataDir:  DefaultDataDir,
		LogLevel: DefaultLogLevel,
	}
}

// Load reads a config file. Files ending in .json or .jsonc are parsed as JSON
// with comments and trailing commas; anything else is YAML. An empty path
// returns Default. Unset fields keep their defaults.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("open config file: %w", err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".jsonc":
		return ParseJSON(f)
	default:
		return ParseYAML(f)
	}
}

// ParseYAML decodes a YAML config. Unknown keys are an error.
func ParseYAML(r io.Reader) (Config, error) {
	cfg := Default()

	dec := yaml.NewDecoder(r)
	dec.SetStrict(true)
	if err := dec.Decode(&cfg); err != nil && err != io.EOF {
		return Config{}, fmt.Errorf("parse config file: %w", err)
	}

	return cfg, cfg.Validate()
}

// ParseJSON decodes a JSON config that may contain comments.
func ParseJSON(r io.Reader) (Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Config{}, fmt.Errorf("read config file: %w", err)
	}

	cfg := Default()
	if len(bytes.TrimSpace(data)) == 0 {
		return cfg, nil
	}

	standardized, err := hujson.Standardize(data)
	if err != nil {
		return Config{}, fmt.Errorf("invalid JSONC: %w", err)
	}

	dec := json.NewDecoder(bytes.NewReader(standardized))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse config file: %w", err)
	}

	return cfg, cfg.Validate()
}

// Validate checks field values.
func (c Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("data_directory must not be empty")
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	if c.Capacity != nil && *c.Capacity < 0 {
		return fmt.Errorf("capacity must not be negative, got %d", *c.Capacity)
	}
	return nil
}

// Logger returns a logger writing to w at the configured level.
func (c Config) Logger(w io.Writer) (*logrus.Logger, error) {
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("log_level: %w", err)
	}

	logger := logrus.New()
	logger.SetOutput(w)
	logger.SetLevel(level)

	return logger, nil
}
