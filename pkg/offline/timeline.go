package offline

import (
	"time"

	"wutonggo/pkg/model"
)

// DemoTimeline is the fixed self-playing tour: a six minute loop through the
// three showcase houses, their interiors, the community panel and the
// valuation panel. Offsets are absolute from activation.
func DemoTimeline() []model.ScriptStep {
	return []model.ScriptStep{
		{
			Offset: 1200 * time.Millisecond,
			Action: model.StepAnnounce,
			Text:   "Welcome to the plane-tree quarter. We will complete a full guided walk in about six minutes.",
		},
		{
			Offset:  4200 * time.Millisecond,
			Action:  model.StepMoveToHouse,
			HouseID: "wukang-building",
		},
		{
			Offset: 7200 * time.Millisecond,
			Action: model.StepAnnounce,
			Text:   "The Wukang Building is an Art Deco landmark. I am circling the camera to show its story bubbles.",
		},
		{
			Offset: 10500 * time.Millisecond,
			Action: model.StepEnterInterior,
		},
		{
			Offset: 13200 * time.Millisecond,
			Action: model.StepAnnounce,
			Text:   "That was the restored interior footage. Next, let's look at the community programme.",
		},
		{
			Offset: 16 * time.Second,
			Action: model.StepShowCommunity,
		},
		{
			Offset: 18800 * time.Millisecond,
			Action: model.StepAnnounce,
			Text:   "The Night of the Plane Trees salon still has six open seats; jurors are welcome to sign up.",
		},
		{
			Offset:  21500 * time.Millisecond,
			Action:  model.StepMoveToHouse,
			HouseID: "gaolan-road-9",
		},
		{
			Offset: 24300 * time.Millisecond,
			Action: model.StepShowValuation,
		},
		{
			Offset: 27200 * time.Millisecond,
			Action: model.StepAnnounce,
			Text:   "The valuation panel puts the preservation index at 88 and suggests a differentiated investment angle.",
		},
		{
			Offset:  30500 * time.Millisecond,
			Action:  model.StepMoveToHouse,
			HouseID: "yongfu-road-200",
		},
		{
			Offset: 33200 * time.Millisecond,
			Action: model.StepAnnounce,
			Text:   "No. 200 Yongfu Road pilots our co-creation space; this is where visitor stories are written into the tour.",
		},
	}
}
