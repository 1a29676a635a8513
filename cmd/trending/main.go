package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/greencart/storefront/config"
	"github.com/greencart/storefront/internal/adapter/httphandler"
	"github.com/greencart/storefront/internal/adapter/kafka"
	"github.com/greencart/storefront/pkg/schema"
	"github.com/twmb/franz-go/pkg/sr"
)

const closeTimeout = 5 * time.Second

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

	proc, err := kafka.NewTrendingProc(
		cfg.Broker.SeedBrokers,
		cfg.Broker.Topics.ShoppingEvents,
		cfg.Broker.Topics.TrendingGroupTable,
		eventSerde,
	)
	if err != nil {
		fallDown("failed to create trending processor", err)
	}

	view, err := kafka.NewTrendingView(
		cfg.Broker.SeedBrokers,
		cfg.Broker.Topics.TrendingGroupTable,
	)
	if err != nil {
		fallDown("failed to create trending view", err)
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go proc.Run(sigCtx, closeApp, &wg)
	go view.Run(sigCtx, closeApp)
	wg.Wait()

	router := httphandler.NewTrendingRouter(view)
	httpServer := httphandler.NewHTTPServer(
		cfg.TrendingHTTPAddr, router, httphandler.Timeouts{
			Handler:    cfg.HTTPTimeouts.Handler,
			ReadHeader: cfg.HTTPTimeouts.ReadHeader,
			Idle:       cfg.HTTPTimeouts.Idle,
		},
	)
	go httpServer.Run(closeApp)

	slog.Info("trending service is running")

	<-sigCtx.Done()
	slog.Info("trending service is closing...")

	ctx, cancel := context.WithTimeout(context.Background(), closeTimeout)
	defer cancel()

	httpServer.Close(ctx)
	proc.Close()

	slog.Info("trending service is closed")
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
