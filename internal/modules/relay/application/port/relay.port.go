package port

import (
	"context"
	"encoding/json"

	"posbusRelay/internal/modules/relay/domain"
)

// EventHandler is invoked synchronously for every matching event.
type EventHandler func(domain.Event)

// EventBus define el contrato de fan-out hacia los suscriptores locales.
type EventBus interface {
	// On registers a handler for the named event and returns its
	// unsubscribe func.
	On(name string, handler EventHandler) func()
	// OnAny registers a handler that receives every emitted event.
	OnAny(handler EventHandler) func()
	Emit(event domain.Event)
	RemoveAllListeners()
}

// TopicRegistry holds the attribute-namespace topics the session has opened.
// Membership is the sole dispatch routing discriminant.
type TopicRegistry interface {
	Subscribe(topic string)
	Unsubscribe(topic string)
	Has(topic string) bool
	Topics() []string
}

// EventSink define el contrato para exportar eventos de dominio (Kafka).
type EventSink interface {
	Publish(ctx context.Context, event domain.Event) error
}

// RelayHandler consumes raw relay frames from the transport.
type RelayHandler interface {
	HandleRelayMessage(target string, raw json.RawMessage)
	HandleSimpleNotification(kind domain.NotificationKind, flag int, message string)
}
