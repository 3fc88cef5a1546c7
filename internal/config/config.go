// Package config loads odbccsv settings from defaults, an optional YAML
// file and the environment (optionally seeded from a .env file).
//
// Environment variables:
//   - ODBCCSV_DRIVER:           database/sql driver name (default: odbc)
//   - ODBCCSV_BATCH_SIZE:       rows per fetch when the caller gives none
//   - ODBCCSV_MAX_COLUMN_WIDTH: byte cap of one field
//   - ODBCCSV_TEMP_DIR:         output directory (default: the OS temp dir)
//   - ODBCCSV_ENCODING:         source text encoding label (default: utf-8)
//   - ODBCCSV_REMOVE_PARTIAL:   delete output of failed exports (true/false)
//   - ODBCCSV_LOG_LEVEL:        debug, info, warn or error
//   - ODBCCSV_METRICS_FILE:     write Prometheus metrics to this file
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Driver         string `yaml:"driver"`
	BatchSize      int    `yaml:"batch_size"`
	MaxColumnWidth int    `yaml:"max_column_width"`
	TempDir        string `yaml:"temp_dir"`
	Encoding       string `yaml:"encoding"`
	RemovePartial  bool   `yaml:"remove_partial"`
	LogLevel       string `yaml:"log_level"`
	MetricsFile    string `yaml:"metrics_file"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Driver:         "odbc",
		BatchSize:      5000,
		MaxColumnWidth: 4096,
		Encoding:       "utf-8",
		LogLevel:       "warn",
	}
}

// Load reads path (if not empty) over the defaults, then applies the environment.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}
	_ = godotenv.Load()
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	get := func(name string) (string, bool) {
		v, ok := os.LookupEnv(name)
		v = strings.TrimSpace(v)
		return v, ok && v != ""
	}
	if v, ok := get("ODBCCSV_DRIVER"); ok {
		c.Driver = v
	}
	if v, ok := get("ODBCCSV_TEMP_DIR"); ok {
		c.TempDir = v
	}
	if v, ok := get("ODBCCSV_ENCODING"); ok {
		c.Encoding = v
	}
	if v, ok := get("ODBCCSV_LOG_LEVEL"); ok {
		c.LogLevel = v
	}
	if v, ok := get("ODBCCSV_METRICS_FILE"); ok {
		c.MetricsFile = v
	}
	for name, dst := range map[string]*int{
		"ODBCCSV_BATCH_SIZE":       &c.BatchSize,
		"ODBCCSV_MAX_COLUMN_WIDTH": &c.MaxColumnWidth,
	} {
		v, ok := get(name)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return fmt.Errorf("invalid %s %q: must be a positive integer", name, v)
		}
		*dst = n
	}
	if v, ok := get("ODBCCSV_REMOVE_PARTIAL"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid ODBCCSV_REMOVE_PARTIAL %q: %w", v, err)
		}
		c.RemovePartial = b
	}
	return nil
}
