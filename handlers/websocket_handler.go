package handlers

import (
	"log"
	"net/http"

	"github.com/dmavani25/teammatch-system/live"
	"github.com/dmavani25/teammatch-system/services"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// TODO: restrict to the dashboard origin once it has a fixed domain.
		return true
	},
}

type WebSocketHandler struct {
	hub             *live.Hub
	matchingService services.MatchingService
}

func NewWebSocketHandler(hub *live.Hub, matchingService services.MatchingService) *WebSocketHandler {
	return &WebSocketHandler{
		hub:             hub,
		matchingService: matchingService,
	}
}

// ServeRun subscribes the caller to progress events of one match run.
// Clients connect to /ws/runs/{runID}.
func (h *WebSocketHandler) ServeRun(w http.ResponseWriter, r *http.Request) {
	runID, err := urlParamInt(r, "runID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if _, err := h.matchingService.GetRun(r.Context(), runID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already replied to the client.
		log.Printf("failed to upgrade connection for run %d: %v", runID, err)
		return
	}

	client := &live.Client{
		Hub:  h.hub,
		Conn: conn,
		Send: make(chan []byte, 256),
		Room: services.RunRoom(runID),
	}
	client.Hub.Register <- client

	go client.WritePump()
	go client.ReadPump()
}
