package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"kabal/internal/platform/config"
	"kabal/internal/platform/logger"
)

// main loads configuration and hands over to run. Business logic lives in
// internal/behandling.
func main() {
	configPath := flag.String("config", os.Getenv("KABAL_CONFIG"), "optional YAML configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(cfg.Server.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("kabal stopped", "error", err)
		os.Exit(1)
	}
}
