package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/dafibh/kakeibo/kakeibo-backend/internal/service"
	"github.com/dafibh/kakeibo/kakeibo-backend/internal/websocket"
	ws "github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

const snapshotTimeout = 10 * time.Second

// WebSocketHandler upgrades dashboards onto the event hub. With a state
// service configured, each new connection first receives a state.snapshot.
type WebSocketHandler struct {
	hub          *websocket.Hub
	stateService *service.StateService
	anyOrigin    bool
	origins      map[string]bool
	upgrader     ws.Upgrader
}

// NewWebSocketHandler creates a new WebSocketHandler. An origin of "*"
// accepts every origin. stateService may be nil.
func NewWebSocketHandler(hub *websocket.Hub, stateService *service.StateService, allowedOrigins []string) *WebSocketHandler {
	h := &WebSocketHandler{
		hub:          hub,
		stateService: stateService,
		origins:      make(map[string]bool, len(allowedOrigins)),
	}
	for _, origin := range allowedOrigins {
		if origin == "*" {
			h.anyOrigin = true
		}
		h.origins[origin] = true
	}

	h.upgrader = ws.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     h.checkOrigin,
	}
	return h
}

// checkOrigin allows non-browser clients, which send no Origin
func (h *WebSocketHandler) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" || h.anyOrigin || h.origins[origin] {
		return true
	}

	log.Warn().Str("origin", origin).Msg("WebSocket connection rejected: origin not allowed")
	return false
}

// HandleWS upgrades GET /ws and streams state.updated and backup.created events
func (h *WebSocketHandler) HandleWS(c echo.Context) error {
	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		log.Debug().Err(err).Msg("WebSocket upgrade failed")
		return err
	}

	client := websocket.NewClient(conn, h.hub)
	h.sendSnapshot(c.Request().Context(), client)
	h.hub.Register(client)

	log.Info().
		Str("client_id", client.ID()).
		Int("clients", h.hub.ClientCount()).
		Msg("WebSocket client connected")

	go client.Serve()
	return nil
}

// sendSnapshot queues the current state ahead of any hub event. A failed
// read is logged and the connection proceeds without it.
func (h *WebSocketHandler) sendSnapshot(ctx context.Context, client *websocket.Client) {
	if h.stateService == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), snapshotTimeout)
	defer cancel()

	state, err := h.stateService.GetState(ctx)
	if err != nil {
		log.Warn().Err(err).Str("client_id", client.ID()).Msg("Failed to load state snapshot")
		return
	}

	data, err := websocket.StateSnapshot(toStateResponse(state)).ToJSON()
	if err == nil {
		err = client.Send(data)
	}
	if err != nil {
		log.Warn().Err(err).Str("client_id", client.ID()).Msg("Failed to send state snapshot")
	}
}
