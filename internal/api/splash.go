package api

import (
	"net/http"

	"wutonggo/pkg/splash"
)

// SplashHandler exposes the loading screen state.
type SplashHandler struct {
	splash *splash.Controller
}

// NewSplashHandler creates a SplashHandler.
func NewSplashHandler(c *splash.Controller) *SplashHandler {
	return &SplashHandler{splash: c}
}

// SplashStatus is the serialized splash state.
type SplashStatus struct {
	Visible  bool `json:"visible"`
	Progress int  `json:"progress"`
}

// HandleStatus handles GET /api/splash.
func (h *SplashHandler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, SplashStatus{
		Visible:  h.splash.Visible(),
		Progress: h.splash.Progress(),
	})
}

// HandleReady handles POST /api/splash/ready: the shell reports its assets
// are loaded.
func (h *SplashHandler) HandleReady(w http.ResponseWriter, r *http.Request) {
	h.splash.MarkReady()
	w.WriteHeader(http.StatusNoContent)
}
