// Package splash times the loading screen: it stays up for a minimum
// duration once shown, and is force-hidden at a maximum duration even if
// the application never reports ready.
package splash

import (
	"log/slog"
	"sync"
	"time"

	"wutonggo/pkg/timeline"
)

// Default timings, matching the application shell.
const (
	DefaultMinDuration = 3 * time.Second
	DefaultMaxDuration = 6 * time.Second

	// readyGrace is the dwell applied when readiness arrives after the
	// minimum duration has already passed.
	readyGrace = 250 * time.Millisecond
)

// Options configures a Controller.
type Options struct {
	MinDuration time.Duration
	MaxDuration time.Duration
	// OnTimeout runs once if the maximum duration forces the splash away
	// before MarkReady was called.
	OnTimeout func()
}

// Controller owns the splash visibility state. It becomes visible on
// construction and hides exactly once.
type Controller struct {
	mu        sync.Mutex
	clock     timeline.Clock
	sched     *timeline.Scheduler
	start     time.Time
	min       time.Duration
	max       time.Duration
	onTimeout func()
	visible   bool
	ready     bool
}

// NewController starts the splash clock immediately.
func NewController(clock timeline.Clock, opts Options) *Controller {
	if opts.MinDuration <= 0 {
		opts.MinDuration = DefaultMinDuration
	}
	if opts.MaxDuration <= 0 {
		opts.MaxDuration = DefaultMaxDuration
	}

	c := &Controller{
		clock:     clock,
		sched:     timeline.NewScheduler(clock),
		start:     clock.Now(),
		min:       opts.MinDuration,
		max:       opts.MaxDuration,
		onTimeout: opts.OnTimeout,
		visible:   true,
	}
	c.sched.After(c.max, c.forceHide)
	return c
}

// MarkReady reports that loading finished. The splash still honors the
// minimum duration before hiding. Calling it again, or after the splash is
// gone, does nothing.
func (c *Controller) MarkReady() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.ready || !c.visible {
		return
	}
	c.ready = true

	delay := c.min - c.clock.Now().Sub(c.start)
	if delay <= 0 {
		delay = readyGrace
	}
	c.sched.After(delay, c.hide)
}

// forceHide runs at the maximum duration.
func (c *Controller) forceHide() {
	c.mu.Lock()
	timedOut := c.visible && !c.ready
	c.mu.Unlock()

	if timedOut {
		slog.Warn("Splash: Force-hidden at maximum duration", "max", c.max)
		if c.onTimeout != nil {
			c.onTimeout()
		}
	}
	c.hide()
}

// hide makes the splash invisible and cancels outstanding timers.
func (c *Controller) hide() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.visible {
		return
	}
	c.visible = false
	c.sched.CancelAll()
}

// Close cancels timers without changing visibility, for teardown.
func (c *Controller) Close() {
	c.sched.CancelAll()
}

// Visible reports whether the splash is still showing.
func (c *Controller) Visible() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.visible
}

// Progress returns the display progress in percent. It climbs with elapsed
// time but holds at 92 until readiness is reported, jumps to at least 96
// once it is, and reads 100 as soon as the splash hides. Monotone for any
// fixed sequence of calls.
func (c *Controller) Progress() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.visible {
		return 100
	}

	elapsed := c.clock.Now().Sub(c.start)
	base := int(float64(elapsed) / float64(c.min) * 100)
	if base > 92 {
		base = 92
	}
	if c.ready && base < 96 {
		base = 96
	}
	return base
}
