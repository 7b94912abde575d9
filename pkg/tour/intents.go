package tour

import (
	"fmt"
	"log/slog"

	"wutonggo/pkg/control"
	"wutonggo/pkg/guide"
	"wutonggo/pkg/model"
)

// The intent methods mirror the buttons of the control panel: each one
// voices the user, files a pending request and queues the simulated reply.

// Refresh resets the control state (bumping the interrupt token, which
// restarts any scripted playback) and clears the transcript.
func (s *Session) Refresh() {
	s.ctrl.Reset()
	s.store.ResetTranscript()
}

// RequestHome asks the guide to return to the city overview.
func (s *Session) RequestHome() {
	s.ctrl.Reset()
	s.store.UserSpeak("Take me back to the city overview.", guide.Meta{Mode: model.ModeOnline})
	s.store.GuideRequest("Asking the guide service to return to the city map.", "")
	s.responder.Queue(model.Turn{
		Character:  model.CharacterAI,
		Text:       "Taking you back to the city map entrance.",
		NavigateTo: model.NavigateHome,
	})
}

// RequestHouseTour asks the guide to present a house. An empty id targets
// the current house, falling back to the first of the dataset; with no
// houses at all the intent is dropped.
func (s *Session) RequestHouseTour(id string) {
	target, ok := s.resolveTarget(id)
	if !ok {
		slog.Debug("Tour: House tour intent with no houses loaded")
		return
	}

	s.ctrl.Reset()
	s.store.UserSpeak(fmt.Sprintf("Tell me about %s.", target.Name), guide.Meta{Mode: model.ModeOnline})
	s.store.RecordNavigationIntent(target.ID)
	s.store.GuideRequest(fmt.Sprintf("Asking the guide service to introduce %s.", target.Name), target.Name)
	s.responder.Queue(model.Turn{
		Character:        model.CharacterAI,
		Text:             fmt.Sprintf("Navigating to %s and lining up its highlight stories.", target.Name),
		NavigateTo:       model.HouseNavigationTarget(target.ID),
		HighlightHouseID: target.ID,
	})
}

// RequestInterior asks the guide to open the interior walk of the current
// house. The interior switch itself arrives with the simulated reply.
func (s *Session) RequestInterior() {
	target, ok := s.resolveTarget("")
	if !ok {
		slog.Debug("Tour: Interior intent with no houses loaded")
		return
	}

	s.ctrl.Reset()
	s.store.UserSpeak(fmt.Sprintf("Take me inside %s.", target.Name), guide.Meta{Mode: model.ModeOnline})
	s.store.GuideRequest(fmt.Sprintf("Asking the guide service to open the interior walk of %s.", target.Name), "")
	s.responder.Queue(model.Turn{
		Character: model.CharacterAI,
		Text:      fmt.Sprintf("Walking you through the restored rooms of %s.", target.Name),
		Action:    model.ActionEnterInterior,
	})
}

// SetOfflineMode switches the self-playing demo mode on or off. The demo
// driver follows the store flag via sync.
func (s *Session) SetOfflineMode(enabled bool) {
	if s.store.OfflineMode() != enabled {
		s.store.ToggleOfflineMode()
	}
}

// FocusPanel switches the data panel.
func (s *Session) FocusPanel(panel model.Panel) {
	s.store.FocusPanel(panel)
}

// PushTurn feeds an externally produced turn through the simulated backend.
// This is the stand-in for a real response channel: replacing it with a
// streaming backend requires no interpreter changes.
func (s *Session) PushTurn(turn model.Turn) {
	s.responder.Queue(turn)
}

// Store exposes the state store for read-side consumers.
func (s *Session) Store() *guide.Store { return s.store }

// Control exposes the control status store for read-side consumers.
func (s *Session) Control() *control.Store { return s.ctrl }

func (s *Session) resolveTarget(id string) (model.HouseProfile, bool) {
	if id != "" {
		if h, ok := s.store.HouseByID(id); ok {
			return h, true
		}
	}
	if h, ok := s.store.CurrentHouse(); ok {
		return h, true
	}
	return s.store.FirstHouse()
}
