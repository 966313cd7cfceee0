package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// fileConfig is the YAML configuration accepted via -config.
//
//	region: us-east-1
//	max_body_bytes: 16777216
type fileConfig struct {
	Region       string `yaml:"region"`
	MaxBodyBytes int64  `yaml:"max_body_bytes"`
}

func loadFileConfig(path string) (fileConfig, error) {
	var cfg fileConfig
	if path == "" {
		return cfg, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config file %s: %w", path, err)
	}
	if cfg.MaxBodyBytes < 0 {
		return cfg, fmt.Errorf("config file %s: max_body_bytes must not be negative", path)
	}
	return cfg, nil
}
