package timeline

import (
	"testing"
	"time"
)

func TestManualClockFiresInDeadlineOrder(t *testing.T) {
	c := NewManualClock()

	var order []string
	c.AfterFunc(300*time.Millisecond, func() { order = append(order, "late") })
	c.AfterFunc(100*time.Millisecond, func() { order = append(order, "early") })
	c.AfterFunc(200*time.Millisecond, func() { order = append(order, "middle") })

	c.Advance(time.Second)

	want := []string{"early", "middle", "late"}
	if len(order) != len(want) {
		t.Fatalf("expected %d callbacks, got %d", len(want), len(order))
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("callback %d: got %q, want %q", i, order[i], want[i])
		}
	}
}

func TestManualClockEqualDeadlinesKeepScheduleOrder(t *testing.T) {
	c := NewManualClock()

	var order []int
	for i := 0; i < 3; i++ {
		i := i
		c.AfterFunc(50*time.Millisecond, func() { order = append(order, i) })
	}
	c.Advance(50 * time.Millisecond)

	for i, got := range order {
		if got != i {
			t.Errorf("position %d: got %d, want %d", i, got, i)
		}
	}
}

func TestManualClockAdvanceStopsAtWindow(t *testing.T) {
	c := NewManualClock()

	fired := false
	c.AfterFunc(time.Second, func() { fired = true })

	c.Advance(999 * time.Millisecond)
	if fired {
		t.Error("timer fired before its deadline")
	}
	if c.Pending() != 1 {
		t.Errorf("expected 1 pending timer, got %d", c.Pending())
	}

	c.Advance(time.Millisecond)
	if !fired {
		t.Error("timer did not fire at its deadline")
	}
}

func TestManualClockCallbackSchedulesFollowUp(t *testing.T) {
	c := NewManualClock()

	var fired []string
	c.AfterFunc(100*time.Millisecond, func() {
		fired = append(fired, "first")
		c.AfterFunc(100*time.Millisecond, func() {
			fired = append(fired, "second")
		})
	})

	// The follow-up lands inside the same window and fires in the same
	// Advance call.
	c.Advance(time.Second)

	if len(fired) != 2 || fired[0] != "first" || fired[1] != "second" {
		t.Errorf("expected [first second], got %v", fired)
	}
}

func TestManualClockNowAdvancesWithCallbacks(t *testing.T) {
	c := NewManualClock()
	start := c.Now()

	var at time.Duration
	c.AfterFunc(250*time.Millisecond, func() {
		at = c.Now().Sub(start)
	})
	c.Advance(time.Second)

	if at != 250*time.Millisecond {
		t.Errorf("callback observed elapsed %v, want 250ms", at)
	}
	if got := c.Now().Sub(start); got != time.Second {
		t.Errorf("clock advanced %v, want 1s", got)
	}
}

func TestManualTimerStop(t *testing.T) {
	c := NewManualClock()

	fired := false
	timer := c.AfterFunc(100*time.Millisecond, func() { fired = true })

	if !timer.Stop() {
		t.Error("Stop on a pending timer should return true")
	}
	if timer.Stop() {
		t.Error("second Stop should return false")
	}

	c.Advance(time.Second)
	if fired {
		t.Error("stopped timer fired")
	}
}
