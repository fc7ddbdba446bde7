package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"koistore/internal/app"
	"koistore/internal/backend"
	"koistore/internal/database/psql"
	"koistore/internal/events"
	cartservice "koistore/internal/service/cart"
	"koistore/internal/upload"
	"koistore/pkg/config"
	"koistore/pkg/lib/logger"
	"koistore/pkg/lib/logger/sl"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log, err := logger.SetupLogger(cfg.HTTP.Env)
	if err != nil {
		panic(err)
	}

	storage, err := psql.New(log, cfg.ConnectionString())
	if err != nil {
		panic(err)
	}

	api, err := backend.New(log, cfg.Backend.BaseURL, cfg.Backend.Timeout)
	if err != nil {
		panic(err)
	}

	uploader := upload.New(log, cfg.Upload.URL, cfg.Upload.APIKey, cfg.Upload.Timeout)

	var notifier cartservice.ChangeNotifier = events.Noop{}
	var publisher *events.Publisher
	if cfg.RabbitMQ.URL != "" {
		conn, err := events.Dial(cfg.RabbitMQ.URL)
		if err != nil {
			panic(err)
		}
		defer conn.Close()

		publisher, err = events.NewPublisher(log, conn)
		if err != nil {
			panic(err)
		}
		notifier = publisher
	} else {
		log.Info("rabbitmq url not set, cart events are dropped")
	}

	application := app.New(log, cfg, storage, api, uploader, notifier)

	go func() {
		if err := application.Run(); err != nil {
			log.Error("Application failed to start", sl.Err(err))
			panic(err)
		}
	}()

	done := make(chan os.Signal, 1)
	signal.Notify(done, syscall.SIGTERM, syscall.SIGINT)
	<-done

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	log.Info("Stopping http server")
	if err := application.Stop(ctx); err != nil {
		log.Error("Failed to stop http server", sl.Err(err))
	}

	if publisher != nil {
		log.Info("Closing event publisher")
		if err := publisher.Close(); err != nil {
			log.Error("Failed to close publisher", sl.Err(err))
		}
	}

	log.Info("Closing database")
	if err := storage.Close(); err != nil {
		log.Error("Failed to close database", sl.Err(err))
	}
}
