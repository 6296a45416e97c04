// Package config loads lox front-end settings from YAML.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the full front-end configuration.
type Config struct {
	Log  LogConfig  `yaml:"log"`
	REPL REPLConfig `yaml:"repl"`
	Exit ExitConfig `yaml:"exit"`
}

// LogConfig controls diagnostic logging. Logs never go to stdout.
type LogConfig struct {
	Level      string `yaml:"level"`  // debug, info, warn, error
	Format     string `yaml:"format"` // console, json
	Output     string `yaml:"output"` // stderr, file, both
	FilePath   string `yaml:"file_path"`
	MaxSize    int    `yaml:"max_size"` // MB
	MaxBackups int    `yaml:"max_backups"`
	MaxAge     int    `yaml:"max_age"` // days
}

// REPLConfig controls the interactive loop.
type REPLConfig struct {
	Prompt   string `yaml:"prompt"`
	MaxSteps int    `yaml:"max_steps"` // loop iterations per line; 0 = unlimited
}

// ExitConfig holds the process exit codes by failure class.
type ExitConfig struct {
	DataErr  int `yaml:"data_err"` // lex or syntax errors
	Software int `yaml:"software"` // runtime errors
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Log: LogConfig{
			Level:      "warn",
			Format:     "console",
			Output:     "stderr",
			MaxSize:    10,
			MaxBackups: 3,
			MaxAge:     7,
		},
		REPL: REPLConfig{
			Prompt: "> ",
		},
		Exit: ExitConfig{
			DataErr:  65,
			Software: 70,
		},
	}
}

// Load reads and parses the YAML file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML over the defaults: keys that are absent keep their
// default values, and unknown keys are an error.
func Parse(data []byte) (*Config, error) {
	cfg := Default()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Serialize encodes c as YAML.
func (c *Config) Serialize() ([]byte, error) {
	return yaml.Marshal(c)
}

// Validate checks that every setting is in range.
func (c *Config) Validate() error {
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level: unknown level %q", c.Log.Level)
	}

	switch c.Log.Format {
	case "console", "json":
	default:
		return fmt.Errorf("log.format: unknown format %q", c.Log.Format)
	}

	switch c.Log.Output {
	case "stderr":
	case "file", "both":
		if c.Log.FilePath == "" {
			return fmt.Errorf("log.file_path: required when log.output is %q", c.Log.Output)
		}
	default:
		return fmt.Errorf("log.output: unknown output %q", c.Log.Output)
	}

	if c.Log.MaxSize < 0 || c.Log.MaxBackups < 0 || c.Log.MaxAge < 0 {
		return errors.New("log: rotation limits must not be negative")
	}
	if c.REPL.MaxSteps < 0 {
		return errors.New("repl.max_steps: must not be negative")
	}
	if !validExit(c.Exit.DataErr) || !validExit(c.Exit.Software) {
		return errors.New("exit: codes must be in 1..255")
	}
	return nil
}

func validExit(code int) bool {
	return code >= 1 && code <= 255
}
