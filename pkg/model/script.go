package model

import "time"

// StepAction enumerates the actions the ambient demo timeline can perform.
type StepAction string

const (
	StepAnnounce      StepAction = "announce"
	StepMoveToHouse   StepAction = "moveToHouse"
	StepEnterInterior StepAction = "enterInterior"
	StepShowCommunity StepAction = "showCommunity"
	StepShowValuation StepAction = "showValuation"
)

// ScriptStep is one timed action of the offline demo timeline. Offset is
// absolute from mode activation, not relative to the previous step.
type ScriptStep struct {
	Offset  time.Duration
	Action  StepAction
	HouseID string
	Text    string
}
