package main

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/savelyev-an/accountd/internal/config"
	"github.com/savelyev-an/accountd/internal/crypto"
	"github.com/savelyev-an/accountd/internal/handler"
	"github.com/savelyev-an/accountd/internal/logger"
	"github.com/savelyev-an/accountd/internal/notify"
	"github.com/savelyev-an/accountd/internal/server"
	"github.com/savelyev-an/accountd/internal/service"
	"github.com/savelyev-an/accountd/internal/store"
	"github.com/savelyev-an/accountd/internal/workers"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("accountd-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().Any("config", cfg).Msg("received configs")

	ctx := context.Background()

	db, err := store.NewConnectPostgres(ctx, cfg.Storage.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error connecting to database")
	}
	if err := db.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("error running migrations")
	}

	storages := store.NewStorages(db, log)

	notifier := buildNotifier(cfg, log)
	dispatcher := workers.NewNotificationDispatcher(notifier, cfg.Notify.QueueSize, log)
	defer dispatcher.Shutdown()

	appWorkers := workers.NewWorkers(dispatcher)
	appWorkers.Run()

	hasher := crypto.NewBcryptHasher(bcrypt.DefaultCost)
	services := service.NewServices(storages, hasher, dispatcher, cfg, log)

	handlers, err := handler.NewHandlers(services, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}

// buildNotifier assembles the outbound notification channel from the enabled
// transports. With neither SMTP nor a webhook configured, notifications are
// silently discarded; account operations never depend on delivery.
func buildNotifier(cfg *config.StructuredConfig, log *logger.Logger) notify.Notifier {
	var notifiers []notify.Notifier

	if cfg.SMTP.Host != "" {
		smtp, err := notify.NewSMTPNotifier(cfg.SMTP, log)
		if err != nil {
			log.Fatal().Err(err).Msg("error creating SMTP notifier")
		}
		notifiers = append(notifiers, smtp)
	}
	if cfg.Notify.WebhookURL != "" {
		notifiers = append(notifiers, notify.NewWebhookNotifier(cfg.Notify, log))
	}

	return notify.NewMultiNotifier(notifiers...)
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
