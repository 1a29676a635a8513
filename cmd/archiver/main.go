package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/greencart/storefront/config"
	"github.com/greencart/storefront/internal/adapter/kafka"
	"github.com/greencart/storefront/internal/adapter/storage"
	"github.com/greencart/storefront/pkg/schema"
	"github.com/twmb/franz-go/pkg/kgo"
	"github.com/twmb/franz-go/pkg/sr"
)

func main() {
	sigCtx, closeApp := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer closeApp()

	cfg := config.Load()
	cfg.Print()

	initLogger(cfg)

	srClient, err := sr.NewClient(sr.URLs(cfg.Broker.SchemaRegistryURLs...))
	if err != nil {
		fallDown("failed to create schema registry client", err)
	}

	eventSerde, err := schema.NewSerdeShoppingEventV1(
		sigCtx,
		schema.SubjectOpt(cfg.Broker.Topics.ShoppingEvents+"-value"),
		schema.SchemaIdentifierOpt(schema.NewSchemaCreater(srClient)),
	)
	if err != nil {
		fallDown("failed to create event serde", err)
	}

	sqldb, err := storage.NewSQLDB(sigCtx, cfg.SQLDB)
	if err != nil {
		fallDown("failed to open database", err)
	}
	defer sqldb.Close()

	eventsRepo := storage.NewShoppingEventsRepository(sqldb)

	cl, err := kgo.NewClient(
		kgo.SeedBrokers(cfg.Broker.SeedBrokers...),
		kgo.ConsumerGroup(cfg.Broker.Consumers.EventArchiverGroup),
		kgo.ConsumeTopics(cfg.Broker.Topics.ShoppingEvents),
		kgo.DisableAutoCommit(),
	)
	if err != nil {
		fallDown("failed to create consumer client", err)
	}

	consumer := kafka.NewEventsConsumer(
		kafka.ConsumerClientOpt(cl),
		kafka.ConsumerEventsSaverOpt(eventsRepo),
		kafka.ConsumerDecoderOpt(eventSerde),
	)
	defer consumer.Close()

	slog.Info("archiver is running")
	consumer.Run(sigCtx)

	slog.Info("archiver is closed")
}

func initLogger(cfg config.Config) {
	opts := &slog.HandlerOptions{Level: cfg.LogLevel}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, opts))
	slog.SetDefault(logger)
}

func fallDown(msg string, err error) {
	slog.Error(msg, "err", err)
	os.Exit(2)
}
