package infrastructure

import (
	"log/slog"
	"sync"

	"posbusRelay/internal/modules/relay/application/port"
	"posbusRelay/internal/modules/relay/domain"
)

type listener struct {
	id      int
	handler port.EventHandler
}

// Emitter is a synchronous fan-out bus over the closed domain event set.
// Handlers run in registration order; a panicking handler is logged and
// skipped so it cannot stall delivery to the remaining listeners. Events are
// never queued: emitting with no listeners is a silent drop.
type Emitter struct {
	mu        sync.RWMutex
	listeners map[string][]listener
	wildcard  []listener
	nextID    int
}

func NewEmitter() *Emitter {
	return &Emitter{listeners: make(map[string][]listener)}
}

func (e *Emitter) On(name string, handler port.EventHandler) func() {
	if handler == nil {
		return func() {}
	}
	e.mu.Lock()
	id := e.nextID
	e.nextID++
	e.listeners[name] = append(e.listeners[name], listener{id: id, handler: handler})
	e.mu.Unlock()

	return func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		kept := e.listeners[name][:0]
		for _, l := range e.listeners[name] {
			if l.id != id {
				kept = append(kept, l)
			}
		}
		if len(kept) == 0 {
			delete(e.listeners, name)
		} else {
			e.listeners[name] = kept
		}
	}
}

// OnAny registers a handler invoked for every event after the per-name
// listeners, mirroring the gateway's receive-all subscribers.
func (e *Emitter) OnAny(handler port.EventHandler) func() {
	if handler == nil {
		return func() {}
	}
	e.mu.Lock()
	id := e.nextID
	e.nextID++
	e.wildcard = append(e.wildcard, listener{id: id, handler: handler})
	e.mu.Unlock()

	return func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		kept := e.wildcard[:0]
		for _, l := range e.wildcard {
			if l.id != id {
				kept = append(kept, l)
			}
		}
		e.wildcard = kept
	}
}

func (e *Emitter) Emit(event domain.Event) {
	if event == nil {
		return
	}
	name := event.EventName()

	e.mu.RLock()
	targets := make([]listener, 0, len(e.listeners[name])+len(e.wildcard))
	targets = append(targets, e.listeners[name]...)
	targets = append(targets, e.wildcard...)
	e.mu.RUnlock()

	for _, l := range targets {
		invoke(name, l.handler, event)
	}
}

func invoke(name string, handler port.EventHandler, event domain.Event) {
	defer func() {
		if r := recover(); r != nil {
			slog.Warn("event handler panic", slog.String("event", name), slog.Any("error", r))
		}
	}()
	handler(event)
}

// RemoveAllListeners drops every registration, including wildcard listeners.
// Used on session teardown.
func (e *Emitter) RemoveAllListeners() {
	e.mu.Lock()
	e.listeners = make(map[string][]listener)
	e.wildcard = nil
	e.mu.Unlock()
}
