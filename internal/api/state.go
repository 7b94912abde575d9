package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"wutonggo/pkg/control"
	"wutonggo/pkg/guide"
	"wutonggo/pkg/model"
	"wutonggo/pkg/version"
)

// StateHandler serves the read side: application state, houses, transcript.
type StateHandler struct {
	store *guide.Store
	ctrl  *control.Store
}

// NewStateHandler creates a StateHandler.
func NewStateHandler(store *guide.Store, ctrl *control.Store) *StateHandler {
	return &StateHandler{store: store, ctrl: ctrl}
}

// ControlStatus is the serialized control store state.
type ControlStatus struct {
	Mode           string `json:"mode"`
	LastNavigation string `json:"last_navigation,omitempty"`
	InterruptToken uint64 `json:"interrupt_token"`
}

// StateResponse is the full reactive state the presentational shell reads.
type StateResponse struct {
	guide.State
	Control ControlStatus `json:"control"`
}

// HandleState handles GET /api/state.
func (h *StateHandler) HandleState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.snapshot())
}

func (h *StateHandler) snapshot() StateResponse {
	return StateResponse{
		State: h.store.Snapshot(),
		Control: ControlStatus{
			Mode:           h.ctrl.Mode().String(),
			LastNavigation: h.ctrl.LastNavigation(),
			InterruptToken: h.ctrl.InterruptToken(),
		},
	}
}

// HandleHouses handles GET /api/houses.
func (h *StateHandler) HandleHouses(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string][]model.HouseProfile{"houses": h.store.Houses()})
}

// HandleHouse handles GET /api/houses/{id}.
func (h *StateHandler) HandleHouse(w http.ResponseWriter, r *http.Request) {
	house, ok := h.store.HouseByID(r.PathValue("id"))
	if !ok {
		http.Error(w, "house not found", http.StatusNotFound)
		return
	}
	writeJSON(w, house)
}

// HandleTranscript handles GET /api/transcript.
func (h *StateHandler) HandleTranscript(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string][]model.TranscriptEntry{"transcript": h.store.Transcript()})
}

func handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{"version": version.Version})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("API: Failed to write response", "error", err)
	}
}
