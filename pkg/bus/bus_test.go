package bus

import (
	"testing"

	"wutonggo/pkg/model"
)

func TestPublishFanOutOrder(t *testing.T) {
	b := New()

	var order []string
	b.Subscribe(func(model.Turn) { order = append(order, "first") })
	b.Subscribe(func(model.Turn) { order = append(order, "second") })
	b.Subscribe(func(model.Turn) { order = append(order, "third") })

	b.Publish(model.Turn{Text: "hello"})

	want := []string{"first", "second", "third"}
	if len(order) != len(want) {
		t.Fatalf("expected %d deliveries, got %d", len(want), len(order))
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("delivery %d: got %q, want %q", i, order[i], want[i])
		}
	}
}

func TestPublishWithNoSubscribers(t *testing.T) {
	b := New()
	// Dropped silently.
	b.Publish(model.Turn{Text: "into the void"})
	if b.Len() != 0 {
		t.Errorf("expected 0 subscribers, got %d", b.Len())
	}
}

func TestUnsubscribe(t *testing.T) {
	b := New()

	got := 0
	unsub := b.Subscribe(func(model.Turn) { got++ })

	b.Publish(model.Turn{})
	unsub()
	b.Publish(model.Turn{})

	if got != 1 {
		t.Errorf("expected 1 delivery, got %d", got)
	}
	if b.Len() != 0 {
		t.Errorf("expected 0 subscribers after unsubscribe, got %d", b.Len())
	}

	// Idempotent.
	unsub()
}

func TestUnsubscribeDuringPublish(t *testing.T) {
	b := New()

	var unsub func()
	selfCalls := 0
	otherCalls := 0

	unsub = b.Subscribe(func(model.Turn) {
		selfCalls++
		unsub()
	})
	b.Subscribe(func(model.Turn) { otherCalls++ })

	// The snapshot taken at publish time still delivers to both.
	b.Publish(model.Turn{})
	if selfCalls != 1 || otherCalls != 1 {
		t.Fatalf("first publish: self=%d other=%d, want 1/1", selfCalls, otherCalls)
	}

	b.Publish(model.Turn{})
	if selfCalls != 1 {
		t.Errorf("unsubscribed listener still invoked, self=%d", selfCalls)
	}
	if otherCalls != 2 {
		t.Errorf("remaining listener skipped, other=%d", otherCalls)
	}
}

func TestTurnPayloadDelivered(t *testing.T) {
	b := New()

	var got model.Turn
	b.Subscribe(func(turn model.Turn) { got = turn })

	sent := model.Turn{
		Character:  model.CharacterAI,
		Text:       "Turning towards the river",
		NavigateTo: "house/wukang-building",
	}
	b.Publish(sent)

	if got != sent {
		t.Errorf("delivered turn = %+v, want %+v", got, sent)
	}
}
