package backend

import (
	"log/slog"

	"wutonggo/pkg/bus"
	"wutonggo/pkg/control"
	"wutonggo/pkg/guide"
	"wutonggo/pkg/model"
)

// HomeLabel is the human-readable label for the city overview target.
const HomeLabel = "City overview"

// Interpreter is the single bus subscriber that maps conversation turns to
// store transitions. Construct one per session and Close it on teardown.
type Interpreter struct {
	store       *guide.Store
	ctrl        *control.Store
	unsubscribe func()
}

// NewInterpreter creates an interpreter; Start attaches it to the bus.
func NewInterpreter(store *guide.Store, ctrl *control.Store) *Interpreter {
	return &Interpreter{store: store, ctrl: ctrl}
}

// Start subscribes to the bus. Calling Start twice replaces the previous
// subscription.
func (in *Interpreter) Start(b *bus.Bus) {
	if in.unsubscribe != nil {
		in.unsubscribe()
	}
	in.unsubscribe = b.Subscribe(in.handle)
}

// Close detaches from the bus and drops the control state back to idle, so
// no stale playing flag survives the consumer.
func (in *Interpreter) Close() {
	if in.unsubscribe != nil {
		in.unsubscribe()
		in.unsubscribe = nil
	}
	in.ctrl.SetMode(control.ModeIdle)
}

func (in *Interpreter) handle(turn model.Turn) {
	in.ctrl.SetMode(control.ModePlaying)

	label := in.navigationLabel(turn.NavigateTo)
	navigated := false

	for _, effect := range turn.Effects() {
		switch effect.Kind {
		case model.EffectSpeak:
			meta := guide.Meta{Mode: model.ModeOnline, NavigationTarget: label}
			if effect.Speaker == model.CharacterAI {
				in.store.GuideSpeak(effect.Text, meta)
			} else {
				in.store.UserSpeak(effect.Text, meta)
			}
		case model.EffectHighlight:
			in.store.SetHighlightedHouse(effect.HouseID)
		case model.EffectPlayVideo:
			in.store.SetActiveVideo(effect.Video)
		case model.EffectEnterInterior:
			in.store.EnterInterior()
		case model.EffectNavigate:
			in.navigate(effect)
			navigated = true
		default:
			slog.Warn("Backend: Unhandled turn effect", "kind", effect.Kind)
		}
	}

	if navigated {
		in.ctrl.SetLastNavigation(label)
	}
	in.ctrl.SetMode(control.ModeIdle)
}

func (in *Interpreter) navigate(effect model.Effect) {
	switch {
	case effect.Target == model.NavigateHome:
		in.store.GoHome()
	case effect.HouseID != "":
		in.store.MoveToHouse(effect.HouseID, "")
	default:
		// Free-form label: nothing to dispatch, the label alone is recorded.
		slog.Debug("Backend: Navigation with free-form target", "target", effect.Target)
	}
}

// navigationLabel resolves a symbolic target to a display label: the fixed
// home label, a house's display name (falling back to the raw path when the
// id is unknown), or the target verbatim.
func (in *Interpreter) navigationLabel(navigateTo string) string {
	if navigateTo == "" {
		return ""
	}
	if navigateTo == model.NavigateHome {
		return HomeLabel
	}
	if id := model.HouseTarget(navigateTo); id != "" {
		if house, ok := in.store.HouseByID(id); ok {
			return house.Name
		}
		return navigateTo
	}
	return navigateTo
}
