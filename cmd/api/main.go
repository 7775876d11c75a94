// @title Pet Adoption API
// @version 1.0
// @description Catálogo de mascotas en adopción, favoritos y solicitudes.
// @BasePath /
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"pet-adoption/internal/app"
	"pet-adoption/internal/config"
	"pet-adoption/internal/platform/logger"
)

func main() {
	mode := flag.String("mode", app.ModeServer, "modo de ejecución: server o worker")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.LogLevel),
		Format: logger.ParseFormat(cfg.LogFormat),
		App:    cfg.AppName,
	})
	defer func() { _ = log.Sync() }()

	ctx := context.Background()

	a, err := app.New(ctx, cfg, log)
	if err != nil {
		log.Error("failed to build app", map[string]any{"error": err})
		os.Exit(1)
	}

	if err := a.Run(ctx, *mode); err != nil {
		log.Error("application run failed", map[string]any{"error": err, "mode": *mode})
		_ = log.Sync()
		os.Exit(1)
	}
	log.Info("application stopped", nil)
}
