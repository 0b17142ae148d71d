package stream

import (
	"context"
	"log/slog"
	"time"

	"github.com/coder/websocket"
	"github.com/labstack/echo/v4"

	"github.com/nfrund/parley/internal/hub"
)

const writeTimeout = 10 * time.Second

// Handler serves the live transcript websocket.
type Handler struct {
	hub            *hub.Hub
	originPatterns []string
}

// NewHandler creates a Handler. originPatterns is passed to the websocket
// upgrader; nil means same-origin only.
func NewHandler(h *hub.Hub, originPatterns []string) *Handler {
	return &Handler{hub: h, originPatterns: originPatterns}
}

// Serve upgrades the request and streams every hub fragment as a text frame
// until the client disconnects or the hub stops.
func (h *Handler) Serve(c echo.Context) error {
	conn, err := websocket.Accept(c.Response(), c.Request(), &websocket.AcceptOptions{
		OriginPatterns: h.originPatterns,
	})
	if err != nil {
		// Accept has already written the HTTP error.
		slog.Warn("Websocket upgrade failed", "error", err)
		return nil
	}
	defer conn.CloseNow()

	sub := hub.NewSubscriber()
	h.hub.Register(sub)
	defer h.hub.Unregister(sub)

	// Clients never send data; CloseRead handles control frames and cancels
	// ctx when the peer goes away.
	ctx := conn.CloseRead(c.Request().Context())

	for {
		select {
		case <-ctx.Done():
			return nil
		case fragment, ok := <-sub.Send:
			if !ok {
				conn.Close(websocket.StatusGoingAway, "server shutting down")
				return nil
			}
			if err := write(ctx, conn, fragment); err != nil {
				slog.Debug("Websocket write failed", "error", err)
				return nil
			}
		}
	}
}

func write(ctx context.Context, conn *websocket.Conn, msg []byte) error {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()
	return conn.Write(ctx, websocket.MessageText, msg)
}
