package main

import (
	"context"
	"errors"
	"log"
	"os/signal"
	"syscall"

	"github.com/Raju11sui/Outreacher-ai/internal/api"
	"github.com/Raju11sui/Outreacher-ai/internal/config"
	"github.com/Raju11sui/Outreacher-ai/internal/provider"
	"github.com/Raju11sui/Outreacher-ai/internal/repository"
	"github.com/Raju11sui/Outreacher-ai/internal/service"
	"github.com/Raju11sui/Outreacher-ai/internal/storage"
	"github.com/Raju11sui/Outreacher-ai/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logr := logger.New(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store := repository.NewResolver(cfg.DatabaseURL, cfg.OwnerOpenID, repository.OpenMySQL, logr)
	defer func() {
		if err := store.Close(); err != nil {
			logr.Error("close store", "err", err)
		}
	}()
	store.Resolve(ctx)

	selector := provider.NewSelector(provider.CredentialsFromConfig(cfg), nil, logr)
	pipeline := service.NewPipeline(selector, cfg.GenerationTimeout)

	var exporter service.CampaignExporter
	if cfg.ExportEnabled() {
		e, err := storage.NewExporter(storage.ConfigFrom(cfg))
		if err != nil {
			logr.Warn("campaign export disabled", "err", err)
		} else {
			exporter = e
		}
	}

	userService := service.NewUserService(store)
	subscriptionService := service.NewSubscriptionService(store)
	campaignService := service.NewCampaignService(store, subscriptionService, exporter, logr)
	generationService := service.NewGenerationService(pipeline, logr)

	server := api.NewServer(cfg.ListenAddr, logr, api.Deps{
		Generator:         generationService,
		Users:             userService,
		Subscriptions:     subscriptionService,
		Campaigns:         campaignService,
		Providers:         selector,
		Storage:           store,
		GenerationTimeout: cfg.GenerationTimeout,
	})

	if err := server.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logr.Error("api server stopped", "err", err)
	}
}
