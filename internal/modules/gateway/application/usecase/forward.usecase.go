package usecase

import (
	"context"

	gwport "posbusRelay/internal/modules/gateway/application/port"
	gwdomain "posbusRelay/internal/modules/gateway/domain"
	relayport "posbusRelay/internal/modules/relay/application/port"
	"posbusRelay/internal/modules/relay/domain"
)

// ForwardUseCase bridges the in-process event bus to the gateway consumers
// and the optional archival sink. Sink failures are logged by the sink itself;
// fan-out stays best-effort either way.
type ForwardUseCase struct {
	broadcaster gwport.Broadcaster
	sink        relayport.EventSink
	unsub       func()
}

func NewForwardUseCase(b gwport.Broadcaster, sink relayport.EventSink) *ForwardUseCase {
	return &ForwardUseCase{broadcaster: b, sink: sink}
}

// Attach subscribes to every domain event. Call Detach on teardown.
func (uc *ForwardUseCase) Attach(bus relayport.EventBus) {
	uc.unsub = bus.OnAny(func(event domain.Event) {
		ctx := context.Background()
		uc.broadcaster.Broadcast(ctx, gwdomain.NewEnvelope(event.EventName(), event))
		if uc.sink != nil {
			_ = uc.sink.Publish(ctx, event)
		}
	})
}

func (uc *ForwardUseCase) Detach() {
	if uc.unsub != nil {
		uc.unsub()
		uc.unsub = nil
	}
}
