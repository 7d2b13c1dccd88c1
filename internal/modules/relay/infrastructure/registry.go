package infrastructure

import (
	"strings"
	"sync"
)

// TopicRegistry is the set of attribute-namespace topics the session has
// explicitly opened. Dispatch reads a point-in-time snapshot of membership:
// an unsubscribe racing an inbound frame may land on either side of the
// routing decision, both outcomes are valid.
type TopicRegistry struct {
	mu     sync.RWMutex
	topics map[string]struct{}
}

func NewTopicRegistry() *TopicRegistry {
	return &TopicRegistry{topics: make(map[string]struct{})}
}

// Subscribe adds the topic. Subscribing twice has no additional effect.
func (r *TopicRegistry) Subscribe(topic string) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return
	}
	r.mu.Lock()
	r.topics[topic] = struct{}{}
	r.mu.Unlock()
}

// Unsubscribe removes the topic. Removing a non-member is a no-op.
func (r *TopicRegistry) Unsubscribe(topic string) {
	r.mu.Lock()
	delete(r.topics, strings.TrimSpace(topic))
	r.mu.Unlock()
}

func (r *TopicRegistry) Has(topic string) bool {
	r.mu.RLock()
	_, ok := r.topics[topic]
	r.mu.RUnlock()
	return ok
}

func (r *TopicRegistry) Topics() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.topics))
	for topic := range r.topics {
		out = append(out, topic)
	}
	return out
}
