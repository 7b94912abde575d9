package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"wutonggo/pkg/control"
	"wutonggo/pkg/guide"
	"wutonggo/pkg/model"
	"wutonggo/pkg/timeline"
)

func newTestServer(t *testing.T) (http.Handler, *fakeTour) {
	t.Helper()
	store := guide.NewStore(timeline.NewManualClock())
	store.Initialize([]model.HouseProfile{
		{ID: "wukang-building", Name: "Wukang Building", Style: "Art Deco", YearBuilt: 1924},
	})
	ctrl := control.NewStore()
	state := NewStateHandler(store, ctrl)
	tour := &fakeTour{}
	events := NewEventsHandler(state, store, ctrl)

	srv := NewServer("127.0.0.1:0", state, NewTourHandler(tour), nil, events, "", func() {})
	return srv.Handler, tour
}

func TestServerRouting(t *testing.T) {
	handler, _ := newTestServer(t)

	tests := []struct {
		method string
		path   string
		body   string
		want   int
	}{
		{http.MethodGet, "/health", "", http.StatusOK},
		{http.MethodGet, "/api/version", "", http.StatusOK},
		{http.MethodGet, "/api/state", "", http.StatusOK},
		{http.MethodGet, "/api/houses", "", http.StatusOK},
		{http.MethodGet, "/api/houses/wukang-building", "", http.StatusOK},
		{http.MethodGet, "/api/houses/nowhere", "", http.StatusNotFound},
		{http.MethodGet, "/api/transcript", "", http.StatusOK},
		{http.MethodGet, "/api/log/latest", "", http.StatusOK},
		{http.MethodPost, "/api/intents/refresh", "", http.StatusNoContent},
		{http.MethodPost, "/api/intents/home", "", http.StatusNoContent},
		{http.MethodPost, "/api/intents/house", `{"id": "wukang-building"}`, http.StatusNoContent},
		{http.MethodPost, "/api/intents/interior", "", http.StatusNoContent},
		{http.MethodPost, "/api/panel", `{"panel": "valuation"}`, http.StatusNoContent},
		{http.MethodPost, "/api/offline", `{"enabled": true}`, http.StatusNoContent},
		{http.MethodPost, "/api/turn", `{"text": "hi"}`, http.StatusAccepted},
		// Wrong methods are rejected by the mux.
		{http.MethodGet, "/api/intents/refresh", "", http.StatusMethodNotAllowed},
		{http.MethodPost, "/api/state", "", http.StatusMethodNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			var req *http.Request
			if tt.body != "" {
				req = httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
				req.Header.Set("Content-Type", "application/json")
			} else {
				req = httptest.NewRequest(tt.method, tt.path, nil)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestServerShutdownEndpoint(t *testing.T) {
	store := guide.NewStore(timeline.NewManualClock())
	ctrl := control.NewStore()
	state := NewStateHandler(store, ctrl)
	events := NewEventsHandler(state, store, ctrl)

	called := make(chan struct{})
	srv := NewServer("127.0.0.1:0", state, NewTourHandler(&fakeTour{}), nil, events, "", func() {
		close(called)
	})

	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/shutdown", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	<-called
}
