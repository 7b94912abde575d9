// Package backend stands in for the real conversational backend: a
// responder that delivers queued turns onto the event bus after an
// artificial latency, and the interpreter that turns bus traffic into
// application state changes. Swapping the responder for a real streaming
// channel leaves the interpreter untouched.
package backend

import (
	"log/slog"
	"time"

	"wutonggo/pkg/bus"
	"wutonggo/pkg/control"
	"wutonggo/pkg/model"
	"wutonggo/pkg/timeline"
)

// ResponseDelay is the default artificial latency of the simulated backend.
const ResponseDelay = 900 * time.Millisecond

// Responder queues turns for delayed delivery to the bus, marking the
// session as waiting until the response lands.
type Responder struct {
	bus   *bus.Bus
	ctrl  *control.Store
	sched *timeline.Scheduler
	delay time.Duration
}

// NewResponder creates a responder with the given artificial latency.
// A non-positive delay falls back to ResponseDelay.
func NewResponder(b *bus.Bus, ctrl *control.Store, clock timeline.Clock, delay time.Duration) *Responder {
	if delay <= 0 {
		delay = ResponseDelay
	}
	return &Responder{
		bus:   b,
		ctrl:  ctrl,
		sched: timeline.NewScheduler(clock),
		delay: delay,
	}
}

// Queue schedules the turn for delivery after the configured latency and
// flags the session as waiting for a response.
func (r *Responder) Queue(turn model.Turn) {
	slog.Debug("Backend: Turn queued", "text", turn.Text, "navigate_to", turn.NavigateTo)
	r.ctrl.SetMode(control.ModeWaiting)
	r.sched.After(r.delay, func() {
		r.bus.Publish(turn)
	})
}

// Close cancels undelivered responses.
func (r *Responder) Close() {
	r.sched.CancelAll()
}
