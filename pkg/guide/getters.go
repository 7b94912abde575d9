package guide

import "wutonggo/pkg/model"

// State is a read-only snapshot of the scalar fields of the store, the shape
// the API layer serves to presentational consumers.
type State struct {
	Stage              model.Stage `json:"stage"`
	View               model.View  `json:"view"`
	ActivePanel        model.Panel `json:"active_panel"`
	OfflineMode        bool        `json:"offline_mode"`
	CurrentHouseID     string      `json:"current_house_id,omitempty"`
	HighlightedHouseID string      `json:"highlighted_house_id,omitempty"`
	ActiveVideo        string      `json:"active_video,omitempty"`
}

// Snapshot returns a consistent copy of the scalar state.
func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st := State{
		Stage:              s.stage,
		View:               s.view,
		ActivePanel:        s.activePanel,
		OfflineMode:        s.offlineMode,
		HighlightedHouseID: s.highlighted,
		ActiveVideo:        s.activeVideo,
	}
	if s.current >= 0 {
		st.CurrentHouseID = s.houses[s.current].ID
	}
	return st
}

// Houses returns a copy of the dataset in order.
func (s *Store) Houses() []model.HouseProfile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.HouseProfile, len(s.houses))
	copy(out, s.houses)
	return out
}

// HouseByID looks up a house. The second result is false when unknown.
func (s *Store) HouseByID(id string) (model.HouseProfile, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if idx := s.indexOfLocked(id); idx >= 0 {
		return s.houses[idx], true
	}
	return model.HouseProfile{}, false
}

// CurrentHouse returns the selected house, if any.
func (s *Store) CurrentHouse() (model.HouseProfile, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current < 0 {
		return model.HouseProfile{}, false
	}
	return s.houses[s.current], true
}

// FirstHouse returns the first house of the dataset, if any.
func (s *Store) FirstHouse() (model.HouseProfile, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.houses) == 0 {
		return model.HouseProfile{}, false
	}
	return s.houses[0], true
}

// Stage returns the current stage.
func (s *Store) Stage() model.Stage {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stage
}

// View returns the current view.
func (s *Store) View() model.View {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.view
}

// ActivePanel returns the focused data panel.
func (s *Store) ActivePanel() model.Panel {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.activePanel
}

// OfflineMode reports whether the self-playing demo mode is on.
func (s *Store) OfflineMode() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.offlineMode
}

// HighlightedHouse returns the highlighted house id, or "".
func (s *Store) HighlightedHouse() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.highlighted
}

// ActiveVideo returns the ambient media URL, or "".
func (s *Store) ActiveVideo() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.activeVideo
}

// Transcript returns a copy of the conversation log in order.
func (s *Store) Transcript() []model.TranscriptEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.TranscriptEntry, len(s.transcript))
	copy(out, s.transcript)
	return out
}
