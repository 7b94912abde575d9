package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"wutonggo/pkg/control"
	"wutonggo/pkg/guide"
)

// EventsHandler pushes state snapshots to WebSocket clients whenever the
// application or control store changes. This is the reactive read path the
// presentational shell subscribes to.
type EventsHandler struct {
	state    *StateHandler
	store    *guide.Store
	ctrl     *control.Store
	upgrader websocket.Upgrader
}

// NewEventsHandler creates an EventsHandler.
func NewEventsHandler(state *StateHandler, store *guide.Store, ctrl *control.Store) *EventsHandler {
	return &EventsHandler{
		state: state,
		store: store,
		ctrl:  ctrl,
		upgrader: websocket.Upgrader{
			// Accept any origin: during development the shell runs on
			// its own dev server, not behind this process.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// EventMessage is one pushed update.
type EventMessage struct {
	Type  string        `json:"type"`
	State StateResponse `json:"state"`
}

// HandleEvents handles GET /api/events.
func (h *EventsHandler) HandleEvents(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("API: WebSocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	// Coalescing notification channel: a burst of store changes collapses
	// into one pending snapshot.
	notify := make(chan struct{}, 1)
	ping := func() {
		select {
		case notify <- struct{}{}:
		default:
		}
	}
	unsubStore := h.store.OnChange(ping)
	unsubCtrl := h.ctrl.OnChange(ping)
	defer unsubStore()
	defer unsubCtrl()

	// Reader goroutine: drains client frames and surfaces disconnects.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	// Initial snapshot, then one per change notification.
	if err := conn.WriteJSON(EventMessage{Type: "state", State: h.state.snapshot()}); err != nil {
		return
	}
	for {
		select {
		case <-done:
			return
		case <-r.Context().Done():
			return
		case <-notify:
			if err := conn.WriteJSON(EventMessage{Type: "state", State: h.state.snapshot()}); err != nil {
				return
			}
		}
	}
}
