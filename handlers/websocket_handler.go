package handlers

import (
	"log/slog"
	"net/http"

	"github.com/askhat/football-analysis/live"
	"github.com/askhat/football-analysis/services"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// TODO: restrict Origin to the deployed frontend hosts.
		return true
	},
}

type WebSocketHandler struct {
	hub            *live.Hub
	sessionService services.SessionService
	logger         *slog.Logger
}

func NewWebSocketHandler(hub *live.Hub, sessionService services.SessionService, logger *slog.Logger) *WebSocketHandler {
	return &WebSocketHandler{
		hub:            hub,
		sessionService: sessionService,
		logger:         logger,
	}
}

// ServeWs upgrades the connection and joins the client to the
// session's room. Clients at /ws/sessions/{sessionID} receive every
// event log and playback update for that session.
func (h *WebSocketHandler) ServeWs(w http.ResponseWriter, r *http.Request) {
	sessionID, err := urlParamInt(r, "sessionID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if _, err := h.sessionService.GetByID(r.Context(), sessionID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("failed to upgrade websocket connection",
			slog.Int("session_id", sessionID), slog.Any("error", err))
		return
	}

	client := live.NewClient(h.hub, conn, live.SessionRoom(sessionID), h.logger)
	h.hub.Register <- client

	go client.WritePump()
	go client.ReadPump()
}
