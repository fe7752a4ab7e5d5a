package main

import (
	"context"
	"fmt"
	"os"

	"github.com/ramcivil/monitoring-service/internal/auth"
	"github.com/ramcivil/monitoring-service/internal/blob"
	"github.com/ramcivil/monitoring-service/internal/config"
	"github.com/ramcivil/monitoring-service/internal/db"
	"github.com/ramcivil/monitoring-service/internal/excel"
	httphandler "github.com/ramcivil/monitoring-service/internal/http"
	"github.com/ramcivil/monitoring-service/internal/http/middleware"
	"github.com/ramcivil/monitoring-service/internal/logger"
	"github.com/ramcivil/monitoring-service/internal/pdf"
	"github.com/ramcivil/monitoring-service/internal/repository"
	"github.com/ramcivil/monitoring-service/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Environment)

	database, err := db.New(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect database")
	}

	var store repository.Store
	switch cfg.DB.Driver {
	case config.DriverPostgres:
		store = repository.NewRelationalStore(database)
	default:
		store = repository.NewDocumentStore(database)
	}

	var blobs *blob.Store
	if cfg.Blob.Bucket != "" {
		blobs, err = blob.New(context.Background(), cfg.Blob)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to init attachment store")
		}
	} else {
		log.Warn().Msg("attachment store not configured, uploads disabled")
	}

	feed := auth.NewRoleFeed()
	collections := service.NewCollectionService(store, feed, log)
	reports := service.NewReportService(store, pdf.NewGenerator(), excel.NewGenerator(), cfg)

	tokenParser := auth.NewParser(cfg.Auth.AccessSecret)
	resolver := auth.NewResolver(store, log)

	handler := httphandler.NewHandler(collections, reports, blobs, feed, cfg.Upload.MaxBytes, log)
	authMiddleware := middleware.Auth(tokenParser, resolver)
	accessMiddleware := middleware.Access()
	router := httphandler.NewRouter(handler, authMiddleware, accessMiddleware, cfg.Environment)

	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	log.Info().Str("addr", addr).Str("store", cfg.DB.Driver).Msg("starting monitoring service")

	if err := router.Run(addr); err != nil {
		log.Error().Err(err).Msg("server stopped")
		os.Exit(1)
	}
}
