package guide

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wutonggo/pkg/model"
	"wutonggo/pkg/timeline"
)

func testHouses() []model.HouseProfile {
	return []model.HouseProfile{
		{
			ID: "wukang-building", Name: "Wukang Building",
			Style: "Art Deco", YearBuilt: 1924,
			Valuation: model.Valuation{CollectionRating: 94, PreservationIndex: 91},
		},
		{
			ID: "gaolan-road-9", Name: "No. 9 Gaolan Road",
			Style: "Spanish villa", YearBuilt: 1921,
			Valuation: model.Valuation{CollectionRating: 88, PreservationIndex: 88},
		},
	}
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s := NewStore(timeline.NewManualClock())
	s.Initialize(testHouses())
	return s
}

func TestInitialize(t *testing.T) {
	s := newTestStore(t)

	st := s.Snapshot()
	assert.Equal(t, model.StageHome, st.Stage)
	assert.Equal(t, model.ViewHome, st.View)
	assert.Equal(t, model.PanelArchive, st.ActivePanel)
	assert.Equal(t, "wukang-building", st.CurrentHouseID)

	entries := s.Transcript()
	require.Len(t, entries, 1)
	assert.Equal(t, model.SpeakerGuide, entries[0].Speaker)
	assert.NotEmpty(t, entries[0].ID)
}

func TestInitializeEmptyDatasetIsNoOp(t *testing.T) {
	s := NewStore(timeline.NewManualClock())
	s.Initialize(nil)

	if _, ok := s.CurrentHouse(); ok {
		t.Error("empty dataset should leave no current house")
	}
	if len(s.Transcript()) != 0 {
		t.Errorf("expected empty transcript, got %d entries", len(s.Transcript()))
	}
}

func TestMoveToHouse(t *testing.T) {
	s := newTestStore(t)

	s.MoveToHouse("gaolan-road-9", "")

	st := s.Snapshot()
	assert.Equal(t, model.StageTouring, st.Stage)
	assert.Equal(t, model.ViewHouse, st.View)
	assert.Equal(t, model.PanelArchive, st.ActivePanel)
	assert.Equal(t, "gaolan-road-9", st.CurrentHouseID)
	assert.Equal(t, "gaolan-road-9", st.HighlightedHouseID)
	assert.Empty(t, st.ActiveVideo)

	entries := s.Transcript()
	last := entries[len(entries)-1]
	assert.Equal(t, "We have arrived at No. 9 Gaolan Road, a Spanish villa building raised in 1921.", last.Text)
}

func TestMoveToHouseUnknownFallsBackToFirst(t *testing.T) {
	s := newTestStore(t)

	s.MoveToHouse("no-such-house", "")

	st := s.Snapshot()
	assert.Equal(t, "wukang-building", st.CurrentHouseID)
	assert.Equal(t, model.StageTouring, st.Stage)
}

func TestMoveToHouseCustomNarrative(t *testing.T) {
	s := newTestStore(t)

	s.MoveToHouse("wukang-building", "A custom arrival line.")

	entries := s.Transcript()
	assert.Equal(t, "A custom arrival line.", entries[len(entries)-1].Text)
}

func TestMoveToHouseWithNoHousesIsNoOp(t *testing.T) {
	s := NewStore(timeline.NewManualClock())
	s.MoveToHouse("anything", "")
	if len(s.Transcript()) != 0 {
		t.Error("navigation without a dataset should not narrate")
	}
}

func TestGoHomeKeepsHighlight(t *testing.T) {
	s := newTestStore(t)
	s.MoveToHouse("gaolan-road-9", "")
	s.SetActiveVideo("media/clip.mp4")
	before := len(s.Transcript())

	s.GoHome()

	st := s.Snapshot()
	assert.Equal(t, model.StageHome, st.Stage)
	assert.Equal(t, model.ViewHome, st.View)
	assert.Equal(t, "gaolan-road-9", st.HighlightedHouseID)
	assert.Empty(t, st.ActiveVideo)
	// GoHome is silent.
	assert.Len(t, s.Transcript(), before)
}

func TestEnterInterior(t *testing.T) {
	s := newTestStore(t)
	s.MoveToHouse("wukang-building", "")

	s.EnterInterior()

	assert.Equal(t, model.StageInterior, s.Stage())
	entries := s.Transcript()
	assert.Contains(t, entries[len(entries)-1].Text, "Wukang Building")
}

func TestEnterInteriorWithoutHouseIsNoOp(t *testing.T) {
	s := NewStore(timeline.NewManualClock())
	s.EnterInterior()
	assert.Equal(t, model.StageHome, s.Stage())
	assert.Empty(t, s.Transcript())
}

func TestShowValuationNarratesCurrentHouse(t *testing.T) {
	s := newTestStore(t)
	s.MoveToHouse("gaolan-road-9", "")

	s.ShowValuation()

	assert.Equal(t, model.PanelValuation, s.ActivePanel())
	assert.Equal(t, model.StageValuation, s.Stage())
	entries := s.Transcript()
	assert.Equal(t,
		"Valuation summary for No. 9 Gaolan Road: collection rating 88, preservation index 88.",
		entries[len(entries)-1].Text)
}

func TestShowValuationWithoutHouseSwitchesSilently(t *testing.T) {
	s := NewStore(timeline.NewManualClock())
	s.ShowValuation()
	assert.Equal(t, model.PanelValuation, s.ActivePanel())
	assert.Empty(t, s.Transcript())
}

func TestToggleOfflineMode(t *testing.T) {
	s := newTestStore(t)

	s.ToggleOfflineMode()
	assert.True(t, s.OfflineMode())
	entries := s.Transcript()
	assert.Equal(t, model.ModeOffline, entries[len(entries)-1].Mode)

	s.ToggleOfflineMode()
	assert.False(t, s.OfflineMode())
	entries = s.Transcript()
	assert.Equal(t, model.ModeOnline, entries[len(entries)-1].Mode)
}

func TestTranscriptCoalescesDuplicates(t *testing.T) {
	s := newTestStore(t)
	before := len(s.Transcript())

	s.GuideSpeak("Same line.", Meta{})
	s.GuideSpeak("Same line.", Meta{})
	s.GuideSpeak("Same line.", Meta{})

	assert.Len(t, s.Transcript(), before+1)

	// A different tag breaks the run.
	s.GuideSpeak("Same line.", Meta{Mode: model.ModeOffline})
	assert.Len(t, s.Transcript(), before+2)
}

func TestPendingResolvedByNextGuideUtterance(t *testing.T) {
	s := newTestStore(t)

	s.GuideRequest("Asking the guide service.", "Wukang Building")
	entries := s.Transcript()
	require.Equal(t, model.StatusPending, entries[len(entries)-1].Status)

	s.GuideSpeak("Here is the answer.", Meta{Mode: model.ModeOnline})

	entries = s.Transcript()
	require.Len(t, entries, 3)
	assert.Equal(t, model.StatusResolved, entries[1].Status)
	assert.Equal(t, model.Status(""), entries[2].Status)

	// A second guide utterance finds nothing pending to flip.
	s.GuideSpeak("More detail.", Meta{Mode: model.ModeOnline})
	entries = s.Transcript()
	assert.Equal(t, model.StatusResolved, entries[1].Status)
}

func TestResetTranscript(t *testing.T) {
	s := newTestStore(t)
	s.GuideSpeak("Some chatter.", Meta{})

	s.ResetTranscript()

	entries := s.Transcript()
	require.Len(t, entries, 1)
	assert.Contains(t, entries[0].Text, "Transcript cleared")
}

func TestRecordNavigationIntentResolvesName(t *testing.T) {
	s := newTestStore(t)

	s.RecordNavigationIntent("gaolan-road-9")

	entries := s.Transcript()
	last := entries[len(entries)-1]
	assert.Equal(t, model.SpeakerUser, last.Speaker)
	assert.Equal(t, "Heading over to No. 9 Gaolan Road.", last.Text)
	assert.Equal(t, "No. 9 Gaolan Road", last.NavigationTarget)
}

func TestOnChangeNotifications(t *testing.T) {
	s := newTestStore(t)

	notified := 0
	unsub := s.OnChange(func() { notified++ })

	s.FocusPanel(model.PanelCommunity)
	s.SetHighlightedHouse("wukang-building")
	assert.Equal(t, 2, notified)

	unsub()
	s.FocusPanel(model.PanelArchive)
	assert.Equal(t, 2, notified)
}
