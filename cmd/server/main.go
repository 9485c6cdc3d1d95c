package main

import (
	"context"
	"fmt"

	"github.com/MKhiriev/rolling-paper/internal/config"
	"github.com/MKhiriev/rolling-paper/internal/handler"
	"github.com/MKhiriev/rolling-paper/internal/logger"
	"github.com/MKhiriev/rolling-paper/internal/server"
	"github.com/MKhiriev/rolling-paper/internal/service"
	"github.com/MKhiriev/rolling-paper/internal/store"
	"github.com/MKhiriev/rolling-paper/internal/workers"
	"github.com/MKhiriev/rolling-paper/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	buildInfo := printBuildInfo()

	log := logger.NewLogger("rolling-paper-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}
	if cfg.App.Version == "" {
		cfg.App.Version = buildInfo.BuildVersion()
	}

	log.Debug().Any("config", cfg).Msg("received configs")

	ctx := context.Background()

	storages, err := store.NewStorages(ctx, cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}
	defer storages.Close()

	if cfg.Auth.Mode == config.AuthModeSession && cfg.Auth.SessionDuration > 0 {
		background := workers.NewWorkers(workers.NewSessionJanitor(storages.Session, cfg.Auth, log))
		background.Run()
		defer background.Stop()
	}

	services, err := service.NewServices(storages, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	handlers, err := handler.NewHandlers(services, storages, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}

func printBuildInfo() models.AppBuildInfo {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	info := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)

	fmt.Printf("Build version: %s\n", info.BuildVersion())
	fmt.Printf("Build date: %s\n", info.BuildDate())
	fmt.Printf("Build commit: %s\n", info.BuildCommit())

	return info
}
