package dashboard

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/worldpulse/devdash/app/dashboard/controller"
	"github.com/worldpulse/devdash/app/dashboard/types"
	"github.com/worldpulse/devdash/pkg/utils"
)

// NewServer creates and returns a new Server instance with the given http.Server and zap.Logger.
func NewServer(app *types.App) error {
	ctler := controller.NewController(app)
	router := ctler.NewRouter()

	// use <ip>:<port> to bind to a specific interface or :<port> to bind to all interfaces
	addr := utils.Env("ADDR", ":3000")

	app.Server = &http.Server{
		Addr:              addr,
		Handler:           controller.WithCORS(router),
		ReadHeaderTimeout: 10 * time.Second,
	}
	app.Logger.Info("Starting server", zap.String("addr", addr))

	return nil
}
