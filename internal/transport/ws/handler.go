package ws

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gorilla/websocket"

	"sketchroom/internal/game"
)

// Handler upgrades WebSocket connections and binds them to the game session.
// A connection logs its user in, a dropped connection logs it out.
type Handler struct {
	coord    *game.Coordinator
	broker   *Broker
	upgrader websocket.Upgrader
	logger   *slog.Logger
}

// NewHandler creates a new WebSocket handler
func NewHandler(coord *game.Coordinator, broker *Broker, logger *slog.Logger) *Handler {
	return &Handler{
		coord:  coord,
		broker: broker,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				// Allow all origins for development
				// In production, you should validate the origin
				return true
			},
		},
		logger: logger,
	}
}

// ServeHTTP handles WebSocket upgrade requests
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// The surrounding session layer supplies the principal name. Here it
	// arrives on the handshake; credential checking is not this server's job.
	name := strings.TrimSpace(r.URL.Query().Get("name"))
	if name == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}

	if !h.coord.Login(r.Context(), name) {
		http.Error(w, "unknown user or session full", http.StatusForbidden)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("websocket upgrade failed", "error", err)
		h.coord.Logout(r.Context(), name)
		return
	}

	client := NewClient(conn, h.coord, h.broker, name, h.logger)
	h.broker.Register(name, client)

	h.logger.Info("websocket connected", "user", name)

	// Push the full state so a (re)connecting client can reconstruct
	// presence, scores, word length and the current drawing.
	h.coord.SendSnapshotTo(r.Context(), name)

	client.Run()
}
