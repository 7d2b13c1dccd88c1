package infrastructure

import (
	"context"
	"testing"

	"posbusRelay/internal/modules/gateway/domain"
	relayinfra "posbusRelay/internal/modules/relay/infrastructure"
)

func TestCommandSubscribeAndUnsubscribe(t *testing.T) {
	t.Parallel()

	hub := NewHub()
	processor := NewCommandProcessor(hub, relayinfra.NewTopicRegistry())
	client := newBufferedClient(hub, "u1", "s1")
	hub.AttachClient(client, nil)

	processor.Process(client, Command{Action: "subscribe", Topic: " high-five "})
	hub.Broadcast(context.Background(), domain.NewEnvelope("high-five", nil))
	if topic := receivedTopic(t, client); topic != "high-five" {
		t.Fatalf("unexpected topic: %q", topic)
	}

	processor.Process(client, Command{Action: "UNSUBSCRIBE", Topic: "high-five"})
	hub.Broadcast(context.Background(), domain.NewEnvelope("high-five", nil))
	assertEmpty(t, client)
}

func TestCommandWatchAttributeProxiesToRegistry(t *testing.T) {
	t.Parallel()

	hub := NewHub()
	registry := relayinfra.NewTopicRegistry()
	processor := NewCommandProcessor(hub, registry)
	client := newBufferedClient(hub, "u1", "s1")

	processor.Process(client, Command{Action: "watch-attribute", Topic: "plugin_state"})
	if !registry.Has("plugin_state") {
		t.Fatal("watch-attribute did not reach the registry")
	}

	processor.Process(client, Command{Action: "unwatch-attribute", Topic: "plugin_state"})
	if registry.Has("plugin_state") {
		t.Fatal("unwatch-attribute did not reach the registry")
	}
}

func TestCommandPingQueuesPongEnvelope(t *testing.T) {
	t.Parallel()

	hub := NewHub()
	processor := NewCommandProcessor(hub, relayinfra.NewTopicRegistry())
	client := newBufferedClient(hub, "u1", "s1")

	processor.Process(client, Command{Action: "ping"})

	if topic := receivedTopic(t, client); topic != domain.SystemTopicPong {
		t.Fatalf("unexpected topic: %q", topic)
	}
}

func TestCommandUnknownAndEmptyActionsAreIgnored(t *testing.T) {
	t.Parallel()

	hub := NewHub()
	processor := NewCommandProcessor(hub, relayinfra.NewTopicRegistry())
	client := newBufferedClient(hub, "u1", "s1")

	processor.Process(client, Command{Action: "teleport"})
	processor.Process(client, Command{Action: "   "})
	processor.Process(nil, Command{Action: "ping"})
	processor.Process(client, Command{Action: "subscribe", Topic: "  "})

	assertEmpty(t, client)
}
