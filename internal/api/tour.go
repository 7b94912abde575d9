package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"wutonggo/pkg/model"
)

// TourController is the slice of the tour session the API drives.
type TourController interface {
	Refresh()
	RequestHome()
	RequestHouseTour(id string)
	RequestInterior()
	SetOfflineMode(enabled bool)
	FocusPanel(panel model.Panel)
	PushTurn(turn model.Turn)
}

// TourHandler handles user intents and external turn pushes.
type TourHandler struct {
	tour TourController
}

// NewTourHandler creates a TourHandler.
func NewTourHandler(t TourController) *TourHandler {
	return &TourHandler{tour: t}
}

// HandleRefresh handles POST /api/intents/refresh.
func (h *TourHandler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	slog.Info("API: Refresh intent")
	h.tour.Refresh()
	w.WriteHeader(http.StatusNoContent)
}

// HandleHome handles POST /api/intents/home.
func (h *TourHandler) HandleHome(w http.ResponseWriter, r *http.Request) {
	slog.Info("API: Home intent")
	h.tour.RequestHome()
	w.WriteHeader(http.StatusNoContent)
}

// HouseTourRequest selects the house to tour; an empty id means the
// current house.
type HouseTourRequest struct {
	ID string `json:"id"`
}

// HandleHouseTour handles POST /api/intents/house.
func (h *TourHandler) HandleHouseTour(w http.ResponseWriter, r *http.Request) {
	var req HouseTourRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}
	}
	slog.Info("API: House tour intent", "id", req.ID)
	h.tour.RequestHouseTour(req.ID)
	w.WriteHeader(http.StatusNoContent)
}

// HandleInterior handles POST /api/intents/interior.
func (h *TourHandler) HandleInterior(w http.ResponseWriter, r *http.Request) {
	slog.Info("API: Interior intent")
	h.tour.RequestInterior()
	w.WriteHeader(http.StatusNoContent)
}

// PanelRequest switches the data panel.
type PanelRequest struct {
	Panel model.Panel `json:"panel"`
}

// HandlePanel handles POST /api/panel.
func (h *TourHandler) HandlePanel(w http.ResponseWriter, r *http.Request) {
	var req PanelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	switch req.Panel {
	case model.PanelArchive, model.PanelCommunity, model.PanelValuation:
	default:
		http.Error(w, "unknown panel", http.StatusBadRequest)
		return
	}
	h.tour.FocusPanel(req.Panel)
	w.WriteHeader(http.StatusNoContent)
}

// OfflineRequest toggles the self-playing demo mode.
type OfflineRequest struct {
	Enabled bool `json:"enabled"`
}

// HandleOffline handles POST /api/offline.
func (h *TourHandler) HandleOffline(w http.ResponseWriter, r *http.Request) {
	var req OfflineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	slog.Info("API: Offline mode request", "enabled", req.Enabled)
	h.tour.SetOfflineMode(req.Enabled)
	w.WriteHeader(http.StatusNoContent)
}

// HandleTurn handles POST /api/turn: the external push entry point standing
// in for a real backend response channel.
func (h *TourHandler) HandleTurn(w http.ResponseWriter, r *http.Request) {
	var turn model.Turn
	if err := json.NewDecoder(r.Body).Decode(&turn); err != nil {
		http.Error(w, "invalid turn", http.StatusBadRequest)
		return
	}
	if turn.Character == "" {
		turn.Character = model.CharacterAI
	}
	h.tour.PushTurn(turn)
	w.WriteHeader(http.StatusAccepted)
}
