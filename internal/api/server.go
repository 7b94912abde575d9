package api

import (
	"log/slog"
	"net/http"
	"time"
)

// NewServer creates and configures the HTTP server. It accepts the handlers
// for all API endpoints and a shutdownFunc for graceful shutdown.
func NewServer(addr string, state *StateHandler, tourH *TourHandler, splashH *SplashHandler, events *EventsHandler, staticDir string, shutdown func()) *http.Server {
	mux := http.NewServeMux()

	// 1. Health Endpoint
	mux.HandleFunc("GET /health", handleHealth)

	// 2. Version Endpoint
	mux.HandleFunc("GET /api/version", handleVersion)

	// 3. Read Side: state, houses, transcript
	mux.HandleFunc("GET /api/state", state.HandleState)
	mux.HandleFunc("GET /api/houses", state.HandleHouses)
	mux.HandleFunc("GET /api/houses/{id}", state.HandleHouse)
	mux.HandleFunc("GET /api/transcript", state.HandleTranscript)

	// 4. User Intents
	mux.HandleFunc("POST /api/intents/refresh", tourH.HandleRefresh)
	mux.HandleFunc("POST /api/intents/home", tourH.HandleHome)
	mux.HandleFunc("POST /api/intents/house", tourH.HandleHouseTour)
	mux.HandleFunc("POST /api/intents/interior", tourH.HandleInterior)
	mux.HandleFunc("POST /api/panel", tourH.HandlePanel)
	mux.HandleFunc("POST /api/offline", tourH.HandleOffline)

	// 5. External Turn Push (simulated backend entry point)
	mux.HandleFunc("POST /api/turn", tourH.HandleTurn)

	// 6. Splash Endpoints
	if splashH != nil {
		mux.HandleFunc("GET /api/splash", splashH.HandleStatus)
		mux.HandleFunc("POST /api/splash/ready", splashH.HandleReady)
	}

	// 7. Logs Endpoint
	mux.HandleFunc("GET /api/log/latest", handleLatestLog)

	// 8. State Push (WebSocket)
	mux.HandleFunc("GET /api/events", events.HandleEvents)

	// 9. Shutdown Endpoint
	mux.HandleFunc("POST /api/shutdown", func(w http.ResponseWriter, r *http.Request) {
		slog.Info("Graceful shutdown initiated via API")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("Shutting down...")); err != nil {
			slog.Error("Failed to write shutdown response", "error", err)
		}
		// Call shutdown in a goroutine to allow the response to flush.
		go func() {
			time.Sleep(100 * time.Millisecond)
			shutdown()
		}()
	})

	// 10. Static Front-End Serving (SPA)
	if staticDir != "" {
		spaFS := &spaFileSystem{root: http.Dir(staticDir)}
		mux.Handle("/", http.FileServer(spaFS))
	}

	return &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("OK")); err != nil {
		slog.Error("Failed to write health response", "error", err)
	}
}
