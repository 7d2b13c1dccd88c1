package infrastructure

import (
	"testing"

	"posbusRelay/internal/modules/relay/domain"
)

func TestEmitterRoundTrip(t *testing.T) {
	t.Parallel()

	emitter := NewEmitter()
	var got []domain.Event
	emitter.On(domain.EventHighFive, func(event domain.Event) {
		got = append(got, event)
	})

	emitter.Emit(domain.HighFive{SenderID: "u1", Message: "hi"})

	if len(got) != 1 {
		t.Fatalf("expected exactly one delivery, got %d", len(got))
	}
	ev, ok := got[0].(domain.HighFive)
	if !ok {
		t.Fatalf("unexpected event type: %T", got[0])
	}
	if ev.SenderID != "u1" || ev.Message != "hi" {
		t.Fatalf("unexpected event payload: %#v", ev)
	}
}

func TestEmitterInvokesHandlersInRegistrationOrder(t *testing.T) {
	t.Parallel()

	emitter := NewEmitter()
	var order []int
	for i := 0; i < 5; i++ {
		i := i
		emitter.On(domain.EventMeetingMute, func(domain.Event) {
			order = append(order, i)
		})
	}

	emitter.Emit(domain.MeetingMute{})

	if len(order) != 5 {
		t.Fatalf("expected 5 deliveries, got %d", len(order))
	}
	for i, v := range order {
		if v != i {
			t.Fatalf("delivery out of order: %v", order)
		}
	}
}

func TestEmitterPanickingHandlerDoesNotStopDelivery(t *testing.T) {
	t.Parallel()

	emitter := NewEmitter()
	second := 0
	emitter.On(domain.EventMeetingMute, func(domain.Event) {
		panic("boom")
	})
	emitter.On(domain.EventMeetingMute, func(domain.Event) {
		second++
	})

	emitter.Emit(domain.MeetingMute{})

	if second != 1 {
		t.Fatalf("second handler not invoked after panic, count=%d", second)
	}
}

func TestEmitterUnsubscribe(t *testing.T) {
	t.Parallel()

	emitter := NewEmitter()
	count := 0
	off := emitter.On(domain.EventMeetingMute, func(domain.Event) {
		count++
	})

	emitter.Emit(domain.MeetingMute{})
	off()
	emitter.Emit(domain.MeetingMute{})

	if count != 1 {
		t.Fatalf("expected one delivery before unsubscribe, got %d", count)
	}
}

func TestEmitterRemoveAllListeners(t *testing.T) {
	t.Parallel()

	emitter := NewEmitter()
	count := 0
	emitter.On(domain.EventMeetingMute, func(domain.Event) { count++ })
	emitter.OnAny(func(domain.Event) { count++ })

	emitter.RemoveAllListeners()
	emitter.Emit(domain.MeetingMute{})

	if count != 0 {
		t.Fatalf("expected no deliveries after RemoveAllListeners, got %d", count)
	}
}

func TestEmitterEmitWithoutListenersIsSilent(t *testing.T) {
	t.Parallel()

	emitter := NewEmitter()
	// No listeners attached, no replay: must simply not blow up.
	emitter.Emit(domain.PosBusConnected{})

	count := 0
	emitter.On(domain.EventPosBusConnected, func(domain.Event) { count++ })
	if count != 0 {
		t.Fatalf("late subscriber must not see past events, got %d", count)
	}
}

func TestEmitterWildcardReceivesEveryEvent(t *testing.T) {
	t.Parallel()

	emitter := NewEmitter()
	var names []string
	emitter.OnAny(func(event domain.Event) {
		names = append(names, event.EventName())
	})

	emitter.Emit(domain.MeetingMute{})
	emitter.Emit(domain.HighFive{SenderID: "u1"})

	if len(names) != 2 || names[0] != domain.EventMeetingMute || names[1] != domain.EventHighFive {
		t.Fatalf("unexpected wildcard deliveries: %v", names)
	}
}
