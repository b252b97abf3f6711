package types

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/worldpulse/devdash/pkg/charts"
	"github.com/worldpulse/devdash/pkg/dataset"
)

// App holds the process-wide state: the logger, the HTTP server, and the
// observation table loaded once at startup. The table is read-only for the
// lifetime of the process; renders share it without locking.
type App struct {
	Logger  *zap.Logger
	Dataset *dataset.Table
	Charts  charts.Config
	// Server represents the HTTP server instance used to handle incoming client requests and manage HTTP routes.
	Server *http.Server
}

// Start starts the application and blocks until the context is cancelled,
// then shuts the server down gracefully.
func (a *App) Start(ctx context.Context) {
	go func() { _ = a.Server.ListenAndServe() }()
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_ = a.Server.Shutdown(shutdownCtx)
	a.Logger.Info("Dashboard stopped")
}
