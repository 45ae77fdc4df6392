package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gridsage/cascade/pkg/graph"
	"github.com/gridsage/cascade/pkg/impact"
	"github.com/gridsage/cascade/pkg/propagation"
	"github.com/gridsage/cascade/pkg/validation"
)

// Config is the full runtime configuration of the cascade server.
type Config struct {
	Server      ServerConfig      `yaml:"server"`
	Graph       graph.BuildConfig `yaml:"graph"`
	Propagation PropagationConfig `yaml:"propagation"`
	Analyzer    AnalyzerConfig    `yaml:"analyzer"`
	Logging     LoggingConfig     `yaml:"logging"`
}

// ServerConfig configures the HTTP surface.
type ServerConfig struct {
	Port int `yaml:"port"`
}

// PropagationConfig configures the fixed propagation network.
type PropagationConfig struct {
	// Seed makes the fixed random projection reproducible across runs.
	Seed int64 `yaml:"seed"`
}

// AnalyzerConfig configures impact thresholding.
type AnalyzerConfig struct {
	ProbabilityThreshold float64 `yaml:"probabilityThreshold"`
}

// LoggingConfig configures the structured logger.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Default returns the configuration used when nothing is provided.
func Default() *Config {
	return &Config{
		Server:      ServerConfig{Port: 8090},
		Graph:       graph.DefaultBuildConfig(),
		Propagation: PropagationConfig{Seed: propagation.DefaultSeed},
		Analyzer:    AnalyzerConfig{ProbabilityThreshold: impact.DefaultProbabilityThreshold},
		Logging:     LoggingConfig{Level: "INFO"},
	}
}

// Load reads a YAML config file and fills unset fields with defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	def := Default()
	c.Server.Port = validation.DefaultOrInt(c.Server.Port, def.Server.Port)
	c.Graph.PowerSupplyDistance = validation.DefaultOrFloat(c.Graph.PowerSupplyDistance, def.Graph.PowerSupplyDistance)
	c.Graph.RoadAccessDistance = validation.DefaultOrFloat(c.Graph.RoadAccessDistance, def.Graph.RoadAccessDistance)
	c.Graph.IntersectionTolerance = validation.DefaultOrFloat(c.Graph.IntersectionTolerance, def.Graph.IntersectionTolerance)
	c.Graph.ProximityDistance = validation.DefaultOrFloat(c.Graph.ProximityDistance, def.Graph.ProximityDistance)
	if c.Propagation.Seed == 0 {
		c.Propagation.Seed = def.Propagation.Seed
	}
	c.Analyzer.ProbabilityThreshold = validation.DefaultOrFloat(c.Analyzer.ProbabilityThreshold, def.Analyzer.ProbabilityThreshold)
	if c.Logging.Level == "" {
		c.Logging.Level = def.Logging.Level
	}
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	return validation.NewConfigValidator("Config").
		RangeInt("Server.Port", c.Server.Port, 1, 65535).
		PositiveFloat("Graph.PowerSupplyDistance", c.Graph.PowerSupplyDistance).
		PositiveFloat("Graph.RoadAccessDistance", c.Graph.RoadAccessDistance).
		PositiveFloat("Graph.IntersectionTolerance", c.Graph.IntersectionTolerance).
		PositiveFloat("Graph.ProximityDistance", c.Graph.ProximityDistance).
		RangeFloat("Analyzer.ProbabilityThreshold", c.Analyzer.ProbabilityThreshold, 0, 1).
		OneOf("Logging.Level", c.Logging.Level, []string{"DEBUG", "INFO", "WARN", "ERROR", "debug", "info", "warn", "error"}).
		Validate()
}
