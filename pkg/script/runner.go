// Package script plays an ordered sequence of conversation turns on a wall
// clock schedule, publishing each turn to the event bus. A turn carrying a
// navigation target ends the playback segment.
package script

import (
	"log/slog"
	"sync"
	"time"

	"wutonggo/pkg/control"
	"wutonggo/pkg/model"
	"wutonggo/pkg/timeline"
)

// DefaultDelay is how long a turn stays active when it carries no override.
const DefaultDelay = 1600 * time.Millisecond

// Publisher is where the runner sends each played turn.
type Publisher interface {
	Publish(model.Turn)
}

// Options configures a Runner.
type Options struct {
	// DefaultDelay overrides the built-in per-turn dwell time.
	DefaultDelay time.Duration
}

// Runner drives one script at a time. Restart replaces the script and
// generation atomically: pending timers from the previous generation are
// cancelled and can never fire into the new one.
type Runner struct {
	mu           sync.Mutex
	bus          Publisher
	ctrl         *control.Store
	sched        *timeline.Scheduler
	defaultDelay time.Duration

	script     []model.Turn
	index      int // -1 when idle
	playing    bool
	generation uint64
}

// NewRunner creates an idle runner.
func NewRunner(pub Publisher, ctrl *control.Store, clock timeline.Clock, opts Options) *Runner {
	delay := opts.DefaultDelay
	if delay <= 0 {
		delay = DefaultDelay
	}
	return &Runner{
		bus:          pub,
		ctrl:         ctrl,
		sched:        timeline.NewScheduler(clock),
		defaultDelay: delay,
		index:        -1,
	}
}

// Restart stops any in-flight playback, swaps in the new script, and, when
// autoStart is set and the script is non-empty, begins at turn 0.
func (r *Runner) Restart(script []model.Turn, autoStart bool) {
	r.Stop()

	r.mu.Lock()
	r.script = make([]model.Turn, len(script))
	copy(r.script, script)
	gen := r.generation
	r.mu.Unlock()

	if autoStart && len(script) > 0 {
		r.step(0, gen)
	}
}

// Stop cancels playback and resets the position. Idempotent. The control
// mode is cleared only when this runner's playback owned it; a pending
// backend request (waiting mode) is left alone.
func (r *Runner) Stop() {
	r.mu.Lock()
	r.sched.CancelAll()
	wasPlaying := r.playing
	r.playing = false
	r.index = -1
	r.generation++
	r.mu.Unlock()

	if wasPlaying && r.ctrl.Mode() == control.ModePlaying {
		r.ctrl.SetMode(control.ModeIdle)
	}
}

// step publishes turn i and schedules the follow-up. gen guards against
// timers outliving a Stop or Restart.
func (r *Runner) step(i int, gen uint64) {
	r.mu.Lock()
	if gen != r.generation {
		r.mu.Unlock()
		return
	}
	if i >= len(r.script) {
		r.mu.Unlock()
		r.Stop()
		return
	}

	turn := r.script[i]
	r.index = i
	r.playing = true

	delay := r.defaultDelay
	if turn.DelayMs > 0 {
		delay = time.Duration(turn.DelayMs) * time.Millisecond
	}
	r.sched.After(delay, func() {
		r.advance(i, gen, turn)
	})
	r.mu.Unlock()

	r.ctrl.SetMode(control.ModePlaying)
	r.bus.Publish(turn)

	// The consumer drops the mode back to idle once it has handled the
	// turn. The dwell still belongs to this runner, so re-assert playing
	// unless a listener stopped or restarted playback mid-publish.
	r.mu.Lock()
	owns := gen == r.generation && r.playing
	r.mu.Unlock()
	if owns {
		r.ctrl.SetMode(control.ModePlaying)
	}
}

// advance runs when turn i's dwell elapses. A navigation turn is terminal:
// the segment ends and later turns never play.
func (r *Runner) advance(i int, gen uint64, turn model.Turn) {
	if turn.NavigateTo != "" {
		slog.Debug("Script: Segment ended on navigation", "index", i, "target", turn.NavigateTo)
		r.ctrl.SetLastNavigation(turn.NavigateTo)
		r.Stop()
		return
	}
	r.step(i+1, gen)
}

// Current returns the turn being played, if any.
func (r *Runner) Current() (model.Turn, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.index < 0 || r.index >= len(r.script) {
		return model.Turn{}, false
	}
	return r.script[r.index], true
}

// Playing reports whether a script is in flight.
func (r *Runner) Playing() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.playing
}

// Index returns the current turn index, or -1 when idle.
func (r *Runner) Index() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.index
}
