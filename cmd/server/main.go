package main

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/pass-guard/internal/audit"
	"github.com/MKhiriev/pass-guard/internal/config"
	transport "github.com/MKhiriev/pass-guard/internal/handler/http"
	"github.com/MKhiriev/pass-guard/internal/logger"
	"github.com/MKhiriev/pass-guard/internal/server"
	"github.com/MKhiriev/pass-guard/internal/service"
	"github.com/MKhiriev/pass-guard/internal/store"
	"github.com/MKhiriev/pass-guard/internal/workers"
	"github.com/MKhiriev/pass-guard/migrations"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

const shutdownTimeout = 5 * time.Second

func main() {
	printBuildInfo()

	log := logger.NewLogger("pass-guard-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	ctx := context.Background()

	var storages *store.Storages
	if cfg.Storage.DB.DSN == "" {
		log.Warn().Msg("no database DSN configured, using in-memory store")
		storages = store.NewMemoryStorages(log)
	} else {
		db, err := store.NewConnectPostgres(ctx, cfg.Storage.DB, log)
		if err != nil {
			log.Fatal().Err(err).Msg("error connecting to database")
		}

		if err := migrations.Migrate(db.DB); err != nil {
			log.Fatal().Err(err).Msg("error running migrations")
		}

		storages = store.NewPostgresStorages(db, log)
	}

	sinks := []audit.Sink{
		audit.NewLogSink(log),
		audit.NewStoreSink(storages.Audit),
	}
	if cfg.Audit.WebhookURL != "" {
		sinks = append(sinks, audit.NewWebhookSink(cfg.Audit.WebhookURL))
	}

	dispatcher := audit.NewDispatcher(cfg.Audit.BufferSize, log, sinks...)

	services := service.NewServices(storages, dispatcher, cfg, log)
	handler := transport.NewHandler(services, log)

	srv, err := server.NewServer(handler, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	backgroundWorkers := workers.NewWorkers(dispatcher)
	backgroundWorkers.Run()

	// blocks until SIGTERM/SIGINT/SIGQUIT
	srv.RunServer()

	// drain the audit queue before exiting
	stopCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := dispatcher.Stop(stopCtx); err != nil {
		log.Err(err).Msg("audit dispatcher did not drain in time")
	}
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
