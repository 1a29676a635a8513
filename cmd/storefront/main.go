package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/greencart/storefront/config"
	"github.com/greencart/storefront/internal/app"
)

const closeTimeout = 5 * time.Second

func main() {
	sigCtx, closeApp := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer closeApp()

	cfg := config.Load()
	cfg.Print()

	storefrontApp := app.New(sigCtx, cfg)

	storefrontApp.Run(closeApp)

	<-sigCtx.Done()
	ctx, cancel := context.WithTimeout(context.Background(), closeTimeout)
	defer cancel()

	storefrontApp.Close(ctx)
}
