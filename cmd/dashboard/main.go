package main

import (
	"context"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/worldpulse/devdash/app/dashboard"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	app := dashboard.Initialize(ctx)

	if err := dashboard.NewServer(app); err != nil {
		app.Logger.Fatal("Unable to initialize server", zap.Error(err))
	}

	app.Start(ctx)
}
