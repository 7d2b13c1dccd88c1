package infrastructure

import (
	"log/slog"
	"strings"

	"posbusRelay/internal/modules/gateway/domain"
	relayport "posbusRelay/internal/modules/relay/application/port"
)

type Command struct {
	Action string `json:"action"`
	Topic  string `json:"topic,omitempty"`
}

func (c Command) actionKey() string {
	return normalizeAction(c.Action)
}

type CommandHandler func(client *Client, cmd Command)

// CommandProcessor routes client commands. Besides the hub-level topic
// commands, watch-attribute and unwatch-attribute proxy to the relay topic
// registry so a consumer can open attribute-namespace topics for the whole
// session.
type CommandProcessor struct {
	hub      *Hub
	registry relayport.TopicRegistry
	handlers map[string]CommandHandler
}

func NewCommandProcessor(hub *Hub, registry relayport.TopicRegistry) *CommandProcessor {
	processor := &CommandProcessor{
		hub:      hub,
		registry: registry,
		handlers: make(map[string]CommandHandler),
	}
	processor.Register("subscribe", processor.handleSubscribe)
	processor.Register("unsubscribe", processor.handleUnsubscribe)
	processor.Register("watch-attribute", processor.handleWatchAttribute)
	processor.Register("unwatch-attribute", processor.handleUnwatchAttribute)
	processor.Register("ping", processor.handlePing)
	return processor
}

func (p *CommandProcessor) Register(action string, handler CommandHandler) {
	if handler == nil {
		return
	}
	key := normalizeAction(action)
	if key == "" {
		return
	}
	p.handlers[key] = handler
}

func (p *CommandProcessor) Process(client *Client, cmd Command) {
	if client == nil {
		return
	}
	action := cmd.actionKey()
	if action == "" {
		return
	}
	if handler, ok := p.handlers[action]; ok {
		handler(client, cmd)
		return
	}
	slog.Debug("gateway command ignored", slog.String("userId", client.userID), slog.String("sessionId", client.sessionID), slog.String("action", action))
}

func (p *CommandProcessor) handleSubscribe(client *Client, cmd Command) {
	topic := strings.TrimSpace(cmd.Topic)
	if topic == "" {
		slog.Debug("gateway subscribe ignored empty topic", slog.String("userId", client.userID), slog.String("sessionId", client.sessionID))
		return
	}
	p.hub.subscribe(client, topic)
	slog.Debug("gateway subscribe", slog.String("userId", client.userID), slog.String("sessionId", client.sessionID), slog.String("topic", topic))
}

func (p *CommandProcessor) handleUnsubscribe(client *Client, cmd Command) {
	topic := strings.TrimSpace(cmd.Topic)
	if topic == "" {
		return
	}
	p.hub.unsubscribe(client, topic)
	slog.Debug("gateway unsubscribe", slog.String("userId", client.userID), slog.String("sessionId", client.sessionID), slog.String("topic", topic))
}

func (p *CommandProcessor) handleWatchAttribute(client *Client, cmd Command) {
	topic := strings.TrimSpace(cmd.Topic)
	if topic == "" || p.registry == nil {
		return
	}
	p.registry.Subscribe(topic)
	// Attribute events for the namespace reach this client through its
	// hub subscription on the corresponding event topics.
	slog.Info("gateway watch attribute", slog.String("userId", client.userID), slog.String("topic", topic))
}

func (p *CommandProcessor) handleUnwatchAttribute(client *Client, cmd Command) {
	topic := strings.TrimSpace(cmd.Topic)
	if topic == "" || p.registry == nil {
		return
	}
	p.registry.Unsubscribe(topic)
	slog.Info("gateway unwatch attribute", slog.String("userId", client.userID), slog.String("topic", topic))
}

func (p *CommandProcessor) handlePing(client *Client, _ Command) {
	client.SendEnvelope(domain.NewEnvelope(domain.SystemTopicPong, nil))
}

func normalizeAction(action string) string {
	return strings.ToLower(strings.TrimSpace(action))
}
