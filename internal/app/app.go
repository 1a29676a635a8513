package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/greencart/storefront/config"
	"github.com/greencart/storefront/internal/adapter/catalogfile"
	"github.com/greencart/storefront/internal/adapter/httphandler"
	"github.com/greencart/storefront/internal/adapter/kafka"
	"github.com/greencart/storefront/internal/core/service"
	"github.com/greencart/storefront/pkg/schema"
	"github.com/twmb/franz-go/pkg/sr"
)

type App struct {
	ctx            context.Context
	cfg            config.Config
	eventsProducer kafka.ShoppingEventsProducer
	storefront     *service.Storefront
	httpServer     httphandler.HTTPServer
}

func New(ctx context.Context, cfg config.Config) *App {
	app := &App{ctx: ctx, cfg: cfg}

	app.initLogger()
	app.initEventsProducer()
	app.initCoreService()
	app.initHTTPServer()

	return app
}

func (app *App) initLogger() {
	opts := &slog.HandlerOptions{Level: app.cfg.LogLevel}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, opts))
	slog.SetDefault(logger)
}

func (app *App) initEventsProducer() {
	const op = "App.initEventsProducer"

	if !app.cfg.Broker.Enabled {
		slog.Info("broker is disabled, shopping events are not emitted")
		return
	}

	ctx := app.ctx
	urls := app.cfg.Broker.SchemaRegistryURLs
	topic := app.cfg.Broker.Topics.ShoppingEvents

	srClient, err := sr.NewClient(sr.URLs(urls...))
	if err != nil {
		app.fallDown(op, err)
	}

	eventSerde, err := schema.NewSerdeShoppingEventV1(
		ctx,
		schema.SubjectOpt(topic+"-value"),
		schema.SchemaIdentifierOpt(schema.NewSchemaCreater(srClient)),
	)
	if err != nil {
		app.fallDown(op, err)
	}

	producer, err := kafka.NewShoppingEventsProducer(
		kafka.ProducerClientOpt(ctx, app.cfg.Broker.SeedBrokers, topic),
		kafka.ProducerEncoderOpt(eventSerde),
	)
	if err != nil {
		app.fallDown(op, err)
	}

	app.eventsProducer = producer
}

func (app *App) initCoreService() {
	const op = "App.initCoreService"

	catalog, err := catalogfile.Load(app.cfg.Storefront.CatalogPath)
	if err != nil {
		app.fallDown(op, err)
	}

	opts := []service.StorefrontOpt{
		service.CarbonBaselineOpt(app.cfg.Storefront.CarbonBaseline),
		service.RecommendLimitOpt(app.cfg.Storefront.RecommendationLimit),
	}
	if app.cfg.Broker.Enabled {
		opts = append(opts, service.EventsProducerOpt(app.eventsProducer))
	}

	app.storefront = service.New(catalog, opts...)
}

func (app *App) initHTTPServer() {
	router := httphandler.NewRouter(app.storefront, app.storefront, app.storefront)
	app.httpServer = httphandler.NewHTTPServer(
		app.cfg.HTTPServerAddr, router, httphandler.Timeouts{
			Handler:    app.cfg.HTTPTimeouts.Handler,
			ReadHeader: app.cfg.HTTPTimeouts.ReadHeader,
			Idle:       app.cfg.HTTPTimeouts.Idle,
		},
	)
}

func (app *App) Run(stopFn context.CancelFunc) {
	go app.httpServer.Run(stopFn)

	slog.Info("application is running")
}

func (app *App) Close(ctx context.Context) {
	slog.Info("application is closing...")

	app.httpServer.Close(ctx)
	if app.cfg.Broker.Enabled {
		app.eventsProducer.Close()
	}

	slog.Info("application is closed")
}

func (app *App) fallDown(op string, err error) {
	panic(fmt.Errorf("%s: %w", op, err))
}
