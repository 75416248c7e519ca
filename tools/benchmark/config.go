package main

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// BenchmarkConfig holds the connection settings that can be stored between runs
type BenchmarkConfig struct {
	NatsURL      string `json:"nats_url"`
	StreamName   string `json:"stream_name"`
	TemporalHost string `json:"temporal_host"`
	Namespace    string `json:"namespace"`
}

// LoadConfig loads configuration from a file
func LoadConfig(path string) (*BenchmarkConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg BenchmarkConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// SaveConfig saves configuration to a file
func SaveConfig(path string, cfg *BenchmarkConfig) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
