package controller

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/worldpulse/devdash/app/dashboard/types"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	CheckOrigin: func(r *http.Request) bool {
		// TODO: In production, restrict to specific origins
		return true
	},
}

var clientSeq atomic.Uint64

// wsClient is one connected dashboard page.
type wsClient struct {
	conn *websocket.Conn
	send chan types.WSServerMessage
}

// broadcast fans a message out to every connected page. Slow clients are
// skipped rather than blocking the render path.
func (c *Controller) broadcast(msg types.WSServerMessage) {
	c.clients.Range(func(id string, cl *wsClient) bool {
		select {
		case cl.send <- msg:
		default:
			c.App.Logger.Warn("Dropping message for slow WebSocket client",
				zap.String("client", id))
		}
		return true
	})
}

// HandleWebSocket upgrades the connection and streams chart updates until the
// client goes away. Every click on any page re-renders and is pushed here, so
// all open pages stay in sync.
//
// Server sends:
// - {"type": "charts.updated", "payload": {"scatter": ..., "bar": ..., "selection": [...]}}
func (c *Controller) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		c.App.Logger.Error("Failed to upgrade WebSocket connection", zap.Error(err))
		return
	}
	defer func() {
		if err := conn.Close(); err != nil {
			c.App.Logger.Debug("Failed to close WebSocket connection", zap.Error(err))
		}
	}()

	id := fmt.Sprintf("%s#%d", r.RemoteAddr, clientSeq.Add(1))
	cl := &wsClient{conn: conn, send: make(chan types.WSServerMessage, 16)}
	c.clients.Store(id, cl)
	defer c.clients.Delete(id)

	c.App.Logger.Info("WebSocket client connected", zap.String("client", id))

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		c.writeMessages(ctx, cl)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		c.sendPings(ctx, conn)
	}()

	// Read loop: the client never sends application messages, but reading is
	// how we notice the connection closing and keep the deadline fresh.
	c.readUntilClosed(conn, cancel)

	cancel()
	wg.Wait()

	c.App.Logger.Info("WebSocket client disconnected", zap.String("client", id))
}

// writeMessages writes queued messages to the connection until the context ends.
func (c *Controller) writeMessages(ctx context.Context, cl *wsClient) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg := <-cl.send:
			if err := cl.conn.WriteJSON(msg); err != nil {
				c.App.Logger.Error("Failed to write WebSocket message", zap.Error(err))
				return
			}
		}
	}
}

// sendPings sends periodic WebSocket ping frames to keep the connection alive.
func (c *Controller) sendPings(ctx context.Context, conn *websocket.Conn) {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, []byte{}, time.Now().Add(10*time.Second)); err != nil {
				c.App.Logger.Debug("Failed to send ping", zap.Error(err))
				return
			}
		}
	}
}

// readUntilClosed blocks consuming frames until the connection drops. Pongs
// reset the read deadline.
func (c *Controller) readUntilClosed(conn *websocket.Conn, cancel context.CancelFunc) {
	const readTimeout = 60 * time.Second

	if err := conn.SetReadDeadline(time.Now().Add(readTimeout)); err != nil {
		c.App.Logger.Error("Failed to set read deadline", zap.Error(err))
		return
	}
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(readTimeout))
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.App.Logger.Debug("WebSocket read error", zap.Error(err))
			}
			cancel()
			return
		}
		if err := conn.SetReadDeadline(time.Now().Add(readTimeout)); err != nil {
			return
		}
	}
}
