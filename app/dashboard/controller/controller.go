package controller

import (
	"net/http"

	"github.com/go-jose/go-jose/v4/json"
	"github.com/gorilla/mux"
	"github.com/puzpuzpuz/xsync/v4"
	"go.uber.org/zap"

	"github.com/worldpulse/devdash/app/dashboard/types"
)

// Controller wires the HTTP routes to the read-only dataset held by the app.
type Controller struct {
	App     *types.App
	clients *xsync.Map[string, *wsClient]
}

// NewController returns a new controller.
func NewController(app *types.App) *Controller {
	return &Controller{
		App:     app,
		clients: xsync.NewMap[string, *wsClient](),
	}
}

// WithCORS is a middleware that adds CORS headers to the response.
func WithCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")

		if origin != "" {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
		} else {
			w.Header().Set("Access-Control-Allow-Origin", "*")
		}
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		w.Header().Set("Access-Control-Allow-Methods", http.MethodGet+", "+http.MethodPost+", "+http.MethodOptions)

		// Fast-path the preflight
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// NewRouter returns a new router with all the routes defined in this file.
func (c *Controller) NewRouter() *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/", c.HandleIndex).Methods(http.MethodGet)

	r.Handle("/api/health", http.HandlerFunc(c.HandleHealth)).Methods(http.MethodGet)
	r.Handle("/api/dataset", http.HandlerFunc(c.HandleDataset)).Methods(http.MethodGet)
	r.Handle("/api/charts", http.HandlerFunc(c.HandleCharts)).Methods(http.MethodGet)
	r.Handle("/api/select", http.HandlerFunc(c.HandleSelect)).Methods(http.MethodPost)

	// WebSocket endpoint pushing re-rendered charts to every open page
	r.HandleFunc("/api/ws", c.HandleWebSocket).Methods(http.MethodGet)

	return r
}

// writeJSON encodes v to the response with a 200 status.
func (c *Controller) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		c.App.Logger.Error("Failed to encode response", zap.Error(err))
	}
}
