// Package guide holds the single source of truth for the tour: which house
// the visitor is at, which stage and view the experience is in, and the
// conversation transcript. All mutation goes through the transition methods;
// presentational consumers only read.
package guide

import (
	"fmt"
	"log/slog"
	"sync"

	"wutonggo/pkg/logging"
	"wutonggo/pkg/model"
	"wutonggo/pkg/timeline"

	"github.com/google/uuid"
)

// Meta carries the optional tags attached to a spoken transcript entry.
type Meta struct {
	Mode             model.Mode
	NavigationTarget string
}

// Store is the application state store. One instance per tour session;
// inject it instead of reaching for a global.
type Store struct {
	mu          sync.RWMutex
	clock       timeline.Clock
	houses      []model.HouseProfile
	current     int // index into houses, -1 for none
	stage       model.Stage
	view        model.View
	activePanel model.Panel
	offlineMode bool
	transcript  []model.TranscriptEntry
	highlighted string
	activeVideo string
	listeners   []func()
}

// NewStore creates an empty store. Timestamps come from the given clock.
func NewStore(clock timeline.Clock) *Store {
	return &Store{
		clock:       clock,
		current:     -1,
		stage:       model.StageHome,
		view:        model.ViewHome,
		activePanel: model.PanelArchive,
	}
}

// OnChange registers fn to run after every state mutation. Listeners run on
// the mutating goroutine with no lock held.
func (s *Store) OnChange(fn func()) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
	i := len(s.listeners) - 1
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if i < len(s.listeners) {
			s.listeners[i] = nil
		}
	}
}

func (s *Store) notify() {
	s.mu.RLock()
	snapshot := make([]func(), len(s.listeners))
	copy(snapshot, s.listeners)
	s.mu.RUnlock()
	for _, fn := range snapshot {
		if fn != nil {
			fn()
		}
	}
}

// Initialize loads the house dataset and seeds the transcript. A no-op when
// the dataset is empty.
func (s *Store) Initialize(houses []model.HouseProfile) {
	if len(houses) == 0 {
		return
	}

	s.mu.Lock()
	s.houses = make([]model.HouseProfile, len(houses))
	copy(s.houses, houses)
	s.current = 0
	s.stage = model.StageHome
	s.view = model.ViewHome
	s.activePanel = model.PanelArchive
	s.transcript = nil
	s.appendEntryLocked(model.TranscriptEntry{
		Speaker: model.SpeakerGuide,
		Text:    "The plane-tree guide is online, ready to walk you through Shanghai's historic villas.",
	})
	s.mu.Unlock()

	slog.Info("Guide: Dataset initialized", "houses", len(houses), "first", houses[0].ID)
	s.notify()
}

// ToggleOfflineMode flips the self-playing demo flag and narrates the change.
func (s *Store) ToggleOfflineMode() {
	s.mu.Lock()
	s.offlineMode = !s.offlineMode
	mode := model.ModeOnline
	text := "Back to interactive mode. Ask me anything, or say \"start the tour\"."
	if s.offlineMode {
		mode = model.ModeOffline
		text = "Switching to the offline script. The full tour will now play by itself."
	}
	s.appendEntryLocked(model.TranscriptEntry{
		Speaker: model.SpeakerGuide,
		Text:    text,
		Mode:    mode,
	})
	s.mu.Unlock()
	s.notify()
}

// FocusPanel switches the data panel without narration.
func (s *Store) FocusPanel(panel model.Panel) {
	s.mu.Lock()
	s.activePanel = panel
	s.mu.Unlock()
	s.notify()
}

// MoveToHouse navigates to the house with the given id. An unknown id falls
// back to the first house; with no houses at all the call is a no-op.
// narrative overrides the synthesized arrival sentence when non-empty.
func (s *Store) MoveToHouse(id string, narrative string) {
	s.mu.Lock()
	idx := s.indexOfLocked(id)
	if idx < 0 {
		if len(s.houses) == 0 {
			s.mu.Unlock()
			return
		}
		slog.Debug("Guide: Unknown house id, falling back to first", "id", id)
		idx = 0
	}
	target := s.houses[idx]
	s.current = idx
	s.stage = model.StageTouring
	s.activePanel = model.PanelArchive
	s.view = model.ViewHouse
	s.highlighted = target.ID
	s.activeVideo = ""

	text := narrative
	if text == "" {
		text = fmt.Sprintf("We have arrived at %s, a %s building raised in %d.",
			target.Name, target.Style, target.YearBuilt)
	}
	s.appendEntryLocked(model.TranscriptEntry{
		Speaker: model.SpeakerGuide,
		Text:    text,
	})
	s.mu.Unlock()

	slog.Info("Guide: Moved to house", "id", target.ID)
	s.notify()
}

// GoHome returns to the city overview. The current house keeps its highlight
// so the map preserves context. No transcript entry.
func (s *Store) GoHome() {
	s.mu.Lock()
	s.stage = model.StageHome
	s.view = model.ViewHome
	s.activePanel = model.PanelArchive
	if s.current >= 0 {
		s.highlighted = s.houses[s.current].ID
	}
	s.activeVideo = ""
	s.mu.Unlock()
	s.notify()
}

// SetHighlightedHouse sets the highlighted entity; "" clears it.
func (s *Store) SetHighlightedHouse(id string) {
	s.mu.Lock()
	s.highlighted = id
	s.mu.Unlock()
	s.notify()
}

// EnterInterior switches to the interior stage of the current house.
// A no-op when no house is selected.
func (s *Store) EnterInterior() {
	s.mu.Lock()
	if s.current < 0 {
		s.mu.Unlock()
		return
	}
	current := s.houses[s.current]
	s.stage = model.StageInterior
	s.activeVideo = ""
	s.appendEntryLocked(model.TranscriptEntry{
		Speaker: model.SpeakerGuide,
		Text:    fmt.Sprintf("Stepping inside %s. Watch the restored footage along the walls.", current.Name),
	})
	s.mu.Unlock()
	s.notify()
}

// ShowCommunity opens the community panel.
func (s *Store) ShowCommunity() {
	s.mu.Lock()
	s.activePanel = model.PanelCommunity
	s.stage = model.StageCommunity
	s.activeVideo = ""
	s.appendEntryLocked(model.TranscriptEntry{
		Speaker: model.SpeakerGuide,
		Text:    "Opening the community panel: check-ins, reviews and event sign-ups in one place.",
	})
	s.mu.Unlock()
	s.notify()
}

// ShowValuation opens the valuation panel. The narration interpolates the
// current house's rating figures; with no house selected, the panel still
// switches but nothing is narrated.
func (s *Store) ShowValuation() {
	s.mu.Lock()
	s.activePanel = model.PanelValuation
	s.stage = model.StageValuation
	s.activeVideo = ""
	if s.current >= 0 {
		current := s.houses[s.current]
		s.appendEntryLocked(model.TranscriptEntry{
			Speaker: model.SpeakerGuide,
			Text: fmt.Sprintf("Valuation summary for %s: collection rating %d, preservation index %d.",
				current.Name, current.Valuation.CollectionRating, current.Valuation.PreservationIndex),
		})
	}
	s.mu.Unlock()
	s.notify()
}

// GuideSpeak resolves any pending guide request, then appends a guide entry.
func (s *Store) GuideSpeak(text string, meta Meta) {
	s.mu.Lock()
	s.resolvePendingLocked()
	s.appendEntryLocked(model.TranscriptEntry{
		Speaker:          model.SpeakerGuide,
		Text:             text,
		Mode:             meta.Mode,
		NavigationTarget: meta.NavigationTarget,
	})
	s.mu.Unlock()
	s.notify()
}

// GuideRequest appends a pending guide entry: a request sent to the
// simulated backend, awaiting its response.
func (s *Store) GuideRequest(text string, navigationTarget string) {
	s.mu.Lock()
	s.appendEntryLocked(model.TranscriptEntry{
		Speaker:          model.SpeakerGuide,
		Text:             text,
		Mode:             model.ModeOnline,
		Status:           model.StatusPending,
		NavigationTarget: navigationTarget,
	})
	s.mu.Unlock()
	s.notify()
}

// UserSpeak appends a user entry.
func (s *Store) UserSpeak(text string, meta Meta) {
	s.mu.Lock()
	s.appendEntryLocked(model.TranscriptEntry{
		Speaker:          model.SpeakerUser,
		Text:             text,
		Mode:             meta.Mode,
		NavigationTarget: meta.NavigationTarget,
	})
	s.mu.Unlock()
	s.notify()
}

// RecordNavigationIntent narrates, as the user, the intent to visit a house.
func (s *Store) RecordNavigationIntent(id string) {
	s.mu.Lock()
	label := id
	if idx := s.indexOfLocked(id); idx >= 0 {
		label = s.houses[idx].Name
	}
	s.appendEntryLocked(model.TranscriptEntry{
		Speaker:          model.SpeakerUser,
		Text:             fmt.Sprintf("Heading over to %s.", label),
		Mode:             model.ModeOnline,
		NavigationTarget: label,
	})
	s.mu.Unlock()
	s.notify()
}

// ResetTranscript replaces the whole log with a single fresh entry.
func (s *Store) ResetTranscript() {
	s.mu.Lock()
	s.transcript = nil
	s.appendEntryLocked(model.TranscriptEntry{
		Speaker: model.SpeakerGuide,
		Text:    "Transcript cleared. We can start the tour over whenever you like.",
	})
	s.mu.Unlock()
	s.notify()
}

// SetActiveVideo sets the ambient media URL; "" clears it.
func (s *Store) SetActiveVideo(url string) {
	s.mu.Lock()
	s.activeVideo = url
	s.mu.Unlock()
	s.notify()
}

// appendEntryLocked appends an entry unless it would duplicate the previous
// one. Re-emitting an identical state never grows the log.
func (s *Store) appendEntryLocked(e model.TranscriptEntry) {
	if n := len(s.transcript); n > 0 && s.transcript[n-1].SameUtterance(e) {
		return
	}
	e.ID = uuid.NewString()
	e.Timestamp = s.clock.Now()
	s.transcript = append(s.transcript, e)
	logging.LogEvent(e)
}

// resolvePendingLocked flips the most recent pending guide request to
// resolved. At most one entry is flipped per call.
func (s *Store) resolvePendingLocked() {
	for i := len(s.transcript) - 1; i >= 0; i-- {
		if s.transcript[i].Speaker == model.SpeakerGuide && s.transcript[i].Status == model.StatusPending {
			s.transcript[i].Status = model.StatusResolved
			return
		}
	}
}

func (s *Store) indexOfLocked(id string) int {
	for i, h := range s.houses {
		if h.ID == id {
			return i
		}
	}
	return -1
}
