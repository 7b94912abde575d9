package model

import "time"

// Speaker identifies who a transcript entry is attributed to.
type Speaker string

const (
	SpeakerGuide  Speaker = "guide"
	SpeakerUser   Speaker = "user"
	SpeakerSystem Speaker = "system"
)

// Mode tags a transcript entry with the interaction mode it was produced in.
type Mode string

const (
	ModeOnline  Mode = "online"
	ModeOffline Mode = "offline"
)

// Status tracks the lifecycle of a guide request entry.
type Status string

const (
	StatusPending  Status = "pending"
	StatusResolved Status = "resolved"
)

// TranscriptEntry is a durable log record of something said during the tour.
// Append-only, except that a pending entry is flipped to resolved exactly
// once by the next guide utterance.
type TranscriptEntry struct {
	ID               string    `json:"id"`
	Speaker          Speaker   `json:"speaker"`
	Text             string    `json:"text"`
	Timestamp        time.Time `json:"timestamp"`
	Mode             Mode      `json:"mode,omitempty"`
	Status           Status    `json:"status,omitempty"`
	NavigationTarget string    `json:"navigation_target,omitempty"`
}

// SameUtterance reports whether two entries would read as duplicates.
// ID and timestamp are deliberately ignored: the transcript coalesces
// consecutive entries for which this returns true.
func (e TranscriptEntry) SameUtterance(other TranscriptEntry) bool {
	return e.Speaker == other.Speaker &&
		e.Text == other.Text &&
		e.Mode == other.Mode &&
		e.Status == other.Status &&
		e.NavigationTarget == other.NavigationTarget
}
