package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
	return path
}

// TestDefault tests the built-in configuration
func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Server.Port != 8090 {
		t.Errorf("Expected port 8090, got %d", cfg.Server.Port)
	}
	if cfg.Propagation.Seed != 42 {
		t.Errorf("Expected seed 42, got %d", cfg.Propagation.Seed)
	}
	if cfg.Analyzer.ProbabilityThreshold != 0.15 {
		t.Errorf("Expected threshold 0.15, got %f", cfg.Analyzer.ProbabilityThreshold)
	}
	if cfg.Logging.Level != "INFO" {
		t.Errorf("Expected INFO level, got %s", cfg.Logging.Level)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default config should validate: %v", err)
	}
}

// TestLoad_FullFile tests loading a complete YAML file
func TestLoad_FullFile(t *testing.T) {
	path := writeConfigFile(t, `
server:
  port: 9000
graph:
  powerSupplyDistance: 150
  roadAccessDistance: 60
  intersectionTolerance: 10
  proximityDistance: 120
propagation:
  seed: 7
analyzer:
  probabilityThreshold: 0.3
logging:
  level: DEBUG
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Port != 9000 {
		t.Errorf("Expected port 9000, got %d", cfg.Server.Port)
	}
	if cfg.Graph.PowerSupplyDistance != 150 {
		t.Errorf("Expected distance 150, got %f", cfg.Graph.PowerSupplyDistance)
	}
	if cfg.Propagation.Seed != 7 {
		t.Errorf("Expected seed 7, got %d", cfg.Propagation.Seed)
	}
	if cfg.Analyzer.ProbabilityThreshold != 0.3 {
		t.Errorf("Expected threshold 0.3, got %f", cfg.Analyzer.ProbabilityThreshold)
	}
	if cfg.Logging.Level != "DEBUG" {
		t.Errorf("Expected DEBUG, got %s", cfg.Logging.Level)
	}
}

// TestLoad_PartialFileFillsDefaults tests that unset fields default
func TestLoad_PartialFileFillsDefaults(t *testing.T) {
	path := writeConfigFile(t, `
server:
  port: 9000
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Port != 9000 {
		t.Errorf("Expected port 9000, got %d", cfg.Server.Port)
	}
	if cfg.Graph.ProximityDistance != 80 {
		t.Errorf("Expected default proximity 80, got %f", cfg.Graph.ProximityDistance)
	}
	if cfg.Propagation.Seed != 42 {
		t.Errorf("Expected default seed 42, got %d", cfg.Propagation.Seed)
	}
	if cfg.Logging.Level != "INFO" {
		t.Errorf("Expected default INFO, got %s", cfg.Logging.Level)
	}
}

// TestLoad_MissingFile tests the read error path
func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/config.yaml"); err == nil {
		t.Error("Expected error for missing file")
	}
}

// TestLoad_MalformedYAML tests the parse error path
func TestLoad_MalformedYAML(t *testing.T) {
	path := writeConfigFile(t, "server: [not: a: mapping")
	if _, err := Load(path); err == nil {
		t.Error("Expected error for malformed YAML")
	}
}

// TestLoad_InvalidValues tests that validation rejects bad files
func TestLoad_InvalidValues(t *testing.T) {
	path := writeConfigFile(t, `
analyzer:
  probabilityThreshold: 3.0
`)
	if _, err := Load(path); err == nil {
		t.Error("Expected validation error for threshold above 1")
	}
}

// TestValidate_BadLevel tests logging level validation
func TestValidate_BadLevel(t *testing.T) {
	cfg := Default()
	cfg.Logging.Level = "LOUD"
	if err := cfg.Validate(); err == nil {
		t.Error("Expected error for unknown level")
	}
}
