// Package offline replays a fixed demo timeline against the state store
// when the experience runs in self-playing mode. The driver bypasses the
// event bus: it is a direct demo script, not a conversation.
package offline

import (
	"log/slog"
	"sync"

	"wutonggo/pkg/guide"
	"wutonggo/pkg/model"
	"wutonggo/pkg/timeline"
)

// Guide is the slice of the state store the demo timeline drives.
type Guide interface {
	GuideSpeak(text string, meta guide.Meta)
	MoveToHouse(id string, narrative string)
	EnterInterior()
	ShowCommunity()
	ShowValuation()
}

// Driver schedules every step of the timeline when activated and cancels
// every pending step when deactivated. Each step fires exactly once per
// activation; re-activating restarts from the beginning.
type Driver struct {
	mu     sync.Mutex
	guide  Guide
	sched  *timeline.Scheduler
	script []model.ScriptStep
	active bool
}

// NewDriver creates an inactive driver for the given timeline. A nil script
// uses the built-in demo timeline.
func NewDriver(g Guide, clock timeline.Clock, script []model.ScriptStep) *Driver {
	if script == nil {
		script = DemoTimeline()
	}
	return &Driver{
		guide:  g,
		sched:  timeline.NewScheduler(clock),
		script: script,
	}
}

// Activate schedules the whole timeline at absolute offsets from now. Any
// previously pending steps are cleared first, so a rapid off/on toggle can
// never double-fire a step.
func (d *Driver) Activate() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.sched.CancelAll()
	d.active = true
	for _, step := range d.script {
		step := step
		d.sched.After(step.Offset, func() {
			d.apply(step)
		})
	}
	slog.Info("Offline: Demo timeline scheduled", "steps", len(d.script))
}

// Deactivate cancels every pending step. Idempotent.
func (d *Driver) Deactivate() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.active {
		slog.Info("Offline: Demo timeline cancelled", "pending", d.sched.Pending())
	}
	d.active = false
	d.sched.CancelAll()
}

// Active reports whether the driver currently owns scheduled steps.
func (d *Driver) Active() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.active
}

func (d *Driver) apply(step model.ScriptStep) {
	switch step.Action {
	case model.StepAnnounce:
		if step.Text != "" {
			d.guide.GuideSpeak(step.Text, guide.Meta{Mode: model.ModeOffline})
		}
	case model.StepMoveToHouse:
		if step.HouseID != "" {
			d.guide.MoveToHouse(step.HouseID, "")
		}
	case model.StepEnterInterior:
		d.guide.EnterInterior()
	case model.StepShowCommunity:
		d.guide.ShowCommunity()
	case model.StepShowValuation:
		d.guide.ShowValuation()
	default:
		slog.Warn("Offline: Unknown step action", "action", step.Action)
	}
}
