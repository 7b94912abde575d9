// Package tour wires the conversation machinery of one visitor session:
// the event bus, the simulated backend, the script runners and the offline
// demo driver, plus the user intents the control panel exposes. It owns the
// gating predicates that make sure only one turn producer is active at a
// time.
package tour

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"wutonggo/pkg/backend"
	"wutonggo/pkg/bus"
	"wutonggo/pkg/control"
	"wutonggo/pkg/guide"
	"wutonggo/pkg/model"
	"wutonggo/pkg/offline"
	"wutonggo/pkg/script"
	"wutonggo/pkg/timeline"
)

// Options configures session pacing.
type Options struct {
	// DefaultDelay is the per-turn dwell for scripted playback.
	DefaultDelay time.Duration
	// ResponseDelay is the artificial latency of the simulated backend.
	ResponseDelay time.Duration
	// OfflineScript overrides the built-in demo timeline. Nil keeps it.
	OfflineScript []model.ScriptStep
}

// Session orchestrates one tour. Create it with NewSession, call Start once
// the store is initialized, and Close on teardown.
type Session struct {
	store     *guide.Store
	ctrl      *control.Store
	bus       *bus.Bus
	responder *backend.Responder
	interp    *backend.Interpreter

	homeRunner   *script.Runner
	detailRunner *script.Runner
	driver       *offline.Driver

	mu             sync.Mutex
	syncing, dirty bool
	lastHomeKey    string
	lastHomeAuto   bool
	lastDetailKey  string
	lastDetailAuto bool

	unsubs []func()
}

// NewSession builds the session machinery on top of the given stores.
func NewSession(store *guide.Store, ctrl *control.Store, clock timeline.Clock, opts Options) *Session {
	b := bus.New()
	s := &Session{
		store:     store,
		ctrl:      ctrl,
		bus:       b,
		responder: backend.NewResponder(b, ctrl, clock, opts.ResponseDelay),
		interp:    backend.NewInterpreter(store, ctrl),
		driver:    offline.NewDriver(store, clock, opts.OfflineScript),
	}
	runnerOpts := script.Options{DefaultDelay: opts.DefaultDelay}
	s.homeRunner = script.NewRunner(b, ctrl, clock, runnerOpts)
	s.detailRunner = script.NewRunner(b, ctrl, clock, runnerOpts)
	return s
}

// Start attaches the interpreter to the bus and begins reacting to state
// changes.
func (s *Session) Start() {
	s.interp.Start(s.bus)
	s.unsubs = append(s.unsubs,
		s.store.OnChange(s.sync),
		s.ctrl.OnChange(s.sync),
	)
	s.sync()
	slog.Info("Tour: Session started")
}

// Close tears the session down: every timer-owning component is cancelled
// and the control state returns to idle.
func (s *Session) Close() {
	for _, u := range s.unsubs {
		u()
	}
	s.unsubs = nil
	s.driver.Deactivate()
	s.homeRunner.Stop()
	s.detailRunner.Stop()
	s.responder.Close()
	s.interp.Close()
}

// sync re-evaluates the producer gating. State mutations triggered by a
// restart re-enter here; the dirty flag flattens the recursion into a loop.
func (s *Session) sync() {
	s.mu.Lock()
	if s.syncing {
		s.dirty = true
		s.mu.Unlock()
		return
	}
	s.syncing = true
	s.mu.Unlock()

	for {
		s.syncOnce()

		s.mu.Lock()
		if !s.dirty {
			s.syncing = false
			s.mu.Unlock()
			return
		}
		s.dirty = false
		s.mu.Unlock()
	}
}

func (s *Session) syncOnce() {
	offlineMode := s.store.OfflineMode()
	if offlineMode != s.driver.Active() {
		if offlineMode {
			s.driver.Activate()
		} else {
			s.driver.Deactivate()
		}
	}

	st := s.store.Snapshot()
	token := s.ctrl.InterruptToken()
	waiting := s.ctrl.Mode() == control.ModeWaiting

	first, hasFirst := s.store.FirstHouse()
	current, hasCurrent := s.store.CurrentHouse()

	// Home-context script: plays on the city overview while nothing else
	// holds the floor.
	homeAuto := hasFirst && !offlineMode && !waiting &&
		st.Stage == model.StageHome && st.View == model.ViewHome
	homeKey := fmt.Sprintf("%s-%d-%s", firstID(first, hasFirst), token, st.Stage)

	// Detail-context script: plays while touring a specific house, and
	// keeps playing inside it.
	detailAuto := hasCurrent && !offlineMode && !waiting &&
		(st.Stage == model.StageTouring || st.Stage == model.StageInterior) &&
		st.View == model.ViewHouse
	detailKey := fmt.Sprintf("%s-%d-%s-%s", st.CurrentHouseID, token, st.Stage, st.View)

	s.mu.Lock()
	homeChanged := homeKey != s.lastHomeKey || homeAuto != s.lastHomeAuto
	detailChanged := detailKey != s.lastDetailKey || detailAuto != s.lastDetailAuto
	s.lastHomeKey, s.lastHomeAuto = homeKey, homeAuto
	s.lastDetailKey, s.lastDetailAuto = detailKey, detailAuto
	s.mu.Unlock()

	if homeChanged {
		var turns []model.Turn
		if hasFirst {
			turns = first.Script.Home
		}
		s.homeRunner.Restart(turns, homeAuto)
	}
	if detailChanged {
		var turns []model.Turn
		if hasCurrent {
			turns = current.Script.Detail
			if st.Stage == model.StageInterior {
				turns = withoutInteriorTurns(turns)
			}
		}
		s.detailRunner.Restart(turns, detailAuto)
	}
}

// withoutInteriorTurns drops the turns that would re-trigger the interior
// transition once the visitor is already inside.
func withoutInteriorTurns(turns []model.Turn) []model.Turn {
	out := make([]model.Turn, 0, len(turns))
	for _, turn := range turns {
		if turn.Action == model.ActionEnterInterior {
			continue
		}
		out = append(out, turn)
	}
	return out
}

func firstID(h model.HouseProfile, ok bool) string {
	if !ok {
		return "none"
	}
	return h.ID
}
