package model

import "strings"

// Character identifies who a conversation turn is attributed to.
type Character string

const (
	CharacterAI   Character = "AI"
	CharacterUser Character = "user"
)

// Navigation targets understood by the interpreter. Anything else is treated
// as a free-form label.
const (
	NavigateHome        = "home"
	navigateHousePrefix = "house/"
)

// ActionEnterInterior is the only supported turn action.
const ActionEnterInterior = "enterInterior"

// Turn is one unit of scripted or simulated dialogue. The flat shape matches
// the script arrays in the house dataset files; consumers should branch on
// Effects() rather than probing optional fields.
type Turn struct {
	Character        Character `json:"character"`
	Text             string    `json:"text"`
	Audio            string    `json:"audio,omitempty"`
	NavigateTo       string    `json:"navigate_to,omitempty"`
	HighlightHouseID string    `json:"highlight_house_id,omitempty"`
	DelayMs          int       `json:"delay_ms,omitempty"`
	Action           string    `json:"action,omitempty"`
	Video            string    `json:"video,omitempty"`
}

// EffectKind enumerates the concrete effects a turn can carry.
type EffectKind int

const (
	EffectSpeak EffectKind = iota
	EffectHighlight
	EffectPlayVideo
	EffectEnterInterior
	EffectNavigate
)

func (k EffectKind) String() string {
	switch k {
	case EffectSpeak:
		return "speak"
	case EffectHighlight:
		return "highlight"
	case EffectPlayVideo:
		return "play_video"
	case EffectEnterInterior:
		return "enter_interior"
	case EffectNavigate:
		return "navigate"
	default:
		return "unknown"
	}
}

// Effect is one tagged application effect derived from a turn.
// Exactly the fields relevant to Kind are set.
type Effect struct {
	Kind    EffectKind
	Speaker Character // EffectSpeak
	Text    string    // EffectSpeak
	HouseID string    // EffectHighlight, EffectNavigate (house target)
	Video   string    // EffectPlayVideo
	Target  string    // EffectNavigate (raw symbolic target)
}

// Effects derives the ordered effect list for a turn. The order is the order
// the interpreter applies them: speech first, scene side effects next,
// navigation last. Navigation, when present, is always the final effect.
func (t Turn) Effects() []Effect {
	effects := []Effect{{Kind: EffectSpeak, Speaker: t.Character, Text: t.Text}}

	if t.HighlightHouseID != "" {
		effects = append(effects, Effect{Kind: EffectHighlight, HouseID: t.HighlightHouseID})
	}
	if t.Video != "" {
		effects = append(effects, Effect{Kind: EffectPlayVideo, Video: t.Video})
	}
	if t.Action == ActionEnterInterior {
		effects = append(effects, Effect{Kind: EffectEnterInterior})
	}
	if t.NavigateTo != "" {
		effects = append(effects, Effect{
			Kind:    EffectNavigate,
			Target:  t.NavigateTo,
			HouseID: HouseTarget(t.NavigateTo),
		})
	}
	return effects
}

// HouseTarget extracts the house id from a "house/<id>" navigation target.
// Returns the empty string for any other target.
func HouseTarget(navigateTo string) string {
	if rest, ok := strings.CutPrefix(navigateTo, navigateHousePrefix); ok {
		return rest
	}
	return ""
}

// HouseNavigationTarget builds the symbolic navigation target for a house id.
func HouseNavigationTarget(id string) string {
	return navigateHousePrefix + id
}
