package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/gridsage/cascade/pkg/api"
	"github.com/gridsage/cascade/pkg/config"
	"github.com/gridsage/cascade/pkg/logging"
	"github.com/gridsage/cascade/pkg/metrics"
	"github.com/gridsage/cascade/pkg/server"
	"github.com/gridsage/cascade/pkg/service"
)

func main() {
	configPath := flag.String("config", "", "Path to YAML config file")
	port := flag.Int("port", 0, "Server port (overrides config)")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}

	logger := logging.NewJSONLogger(os.Stdout, logging.ParseLevel(cfg.Logging.Level))
	registry := metrics.DefaultRegistry()

	predictor := service.NewPredictor(service.Options{
		Build:                cfg.Graph,
		Seed:                 cfg.Propagation.Seed,
		ProbabilityThreshold: cfg.Analyzer.ProbabilityThreshold,
		Logger:               logger,
		Metrics:              registry,
	})

	apiServer := api.NewServer(predictor, registry, logger, cfg.Server.Port)

	gs := server.NewGracefulServer(fmt.Sprintf(":%d", cfg.Server.Port), apiServer.Handler(), logger)
	if err := gs.Start(); err != nil {
		logger.Error("server exited", logging.Error(err))
		os.Exit(1)
	}
}
