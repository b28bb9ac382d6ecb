// Package config loads the YAML configuration shared by codesim's
// sub-commands.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultLogLevel       = "info"
	DefaultLogFormat      = "console"
	DefaultTimeout        = 5 * time.Second
	DefaultConcurrency    = 4
	DefaultAddr           = ":8080"
	DefaultMaxLinkedNodes = 20
)

type Config struct {
	Log         LogConfig         `yaml:"log"`
	Grading     GradingConfig     `yaml:"grading"`
	Server      ServerConfig      `yaml:"server"`
	Interpreter InterpreterConfig `yaml:"interpreter"`
}

type LogConfig struct {
	Level      string `yaml:"level"`
	Format     string `yaml:"format"`
	OutputPath string `yaml:"outputPath"`
}

type GradingConfig struct {
	Timeout     time.Duration `yaml:"timeout"`
	Concurrency int           `yaml:"concurrency"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"`
}

type InterpreterConfig struct {
	MaxLinkedNodes int `yaml:"maxLinkedNodes"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	cfg := Config{}
	applyDefaults(&cfg)
	return cfg
}

func Load(path string) (Config, error) {
	cfg := Config{}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config file failed: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config file failed: %w", err)
	}
	if cfg.Grading.Timeout < 0 {
		return cfg, fmt.Errorf("grading timeout must be positive, got %s", cfg.Grading.Timeout)
	}
	if cfg.Grading.Concurrency < 0 {
		return cfg, fmt.Errorf("grading concurrency must be positive, got %d", cfg.Grading.Concurrency)
	}
	applyDefaults(&cfg)
	return cfg, nil
}

// LoadOrDefault loads path, or returns Default when path is empty.
func LoadOrDefault(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	return Load(path)
}

func applyDefaults(cfg *Config) {
	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = DefaultLogFormat
	}
	if cfg.Grading.Timeout == 0 {
		cfg.Grading.Timeout = DefaultTimeout
	}
	if cfg.Grading.Concurrency == 0 {
		cfg.Grading.Concurrency = DefaultConcurrency
	}
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = DefaultAddr
	}
	if cfg.Interpreter.MaxLinkedNodes == 0 {
		cfg.Interpreter.MaxLinkedNodes = DefaultMaxLinkedNodes
	}
}
