package model

// Stage is the current phase of the guided experience.
type Stage string

const (
	StageHome      Stage = "home"
	StageIntro     Stage = "intro"
	StageTouring   Stage = "touring"
	StageInterior  Stage = "interior"
	StageCommunity Stage = "community"
	StageValuation Stage = "valuation"
)

// View selects between the city overview map and a single-house showcase.
type View string

const (
	ViewHome  View = "home"
	ViewHouse View = "house"
)

// Panel identifies the data panel shown next to the scene.
type Panel string

const (
	PanelArchive   Panel = "archive"
	PanelCommunity Panel = "community"
	PanelValuation Panel = "valuation"
)

// HouseProfile is the static descriptive record for one historic building.
// Loaded once at startup from the dataset; never mutated by the core.
type HouseProfile struct {
	ID         string         `json:"id"`
	Name       string         `json:"name"`
	Address    string         `json:"address"`
	YearBuilt  int            `json:"year_built"`
	Style      string         `json:"style"`
	Floors     int            `json:"floors"`
	Model      ModelMeta      `json:"model"`
	MapPos     MapPosition    `json:"map_position"`
	Timeline   []TimelineItem `json:"timeline"`
	Stories    []Story        `json:"narratives"`
	Owners     []Owner        `json:"owners"`
	Activities []Activity     `json:"activities"`
	Valuation  Valuation      `json:"valuation"`
	Script     HouseScript    `json:"script"`
}

// ModelMeta describes the 3D model the scene layer renders for a house.
// The core treats it as opaque display metadata.
type ModelMeta struct {
	Color     string    `json:"color"`
	Height    float64   `json:"height"`
	Footprint Footprint `json:"footprint"`
	URL       string    `json:"url,omitempty"`
	Scale     float64   `json:"scale,omitempty"`
}

// Footprint is the model's base dimensions in scene units.
type Footprint struct {
	Width float64 `json:"width"`
	Depth float64 `json:"depth"`
}

// MapPosition is the house position in scene-local coordinates.
type MapPosition struct {
	X float64 `json:"x"`
	Z float64 `json:"z"`
}

// TimelineItem is one dated event in a house's history.
type TimelineItem struct {
	Year  int    `json:"year"`
	Event string `json:"event"`
}

// MediaAsset references a photo or video belonging to a story.
type MediaAsset struct {
	Type   string `json:"type"` // "photo" or "video"
	Title  string `json:"title"`
	Src    string `json:"src"`
	Source string `json:"source"`
}

// Story is one narrative chapter about a house.
type Story struct {
	Title   string       `json:"title"`
	Summary string       `json:"summary"`
	Media   []MediaAsset `json:"media"`
}

// Owner is a past or present steward of a house.
type Owner struct {
	Name      string `json:"name"`
	Role      string `json:"role"`
	Intention string `json:"intention"`
}

// Activity is a bookable community event hosted at a house.
type Activity struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Date        string `json:"date"`
	Slots       int    `json:"slots"`
	Remaining   int    `json:"remaining"`
	Description string `json:"description"`
}

// Valuation holds the investment summary figures for a house.
type Valuation struct {
	CollectionRating  int     `json:"collection_rating"`
	PreservationIndex int     `json:"preservation_index"`
	RentalYield       float64 `json:"rental_yield"`
	Commentary        string  `json:"commentary"`
}

// HouseScript carries the scripted conversation turns played for a house,
// one sequence per context.
type HouseScript struct {
	Home   []Turn `json:"home"`
	Detail []Turn `json:"detail"`
}

// Dataset is the ordered list of house profiles supplied at startup.
type Dataset struct {
	Houses []HouseProfile `json:"houses"`
}
