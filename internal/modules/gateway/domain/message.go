package domain

import "time"

const (
	SystemTopicConnected = "system.connected"
	SystemTopicPong      = "system.pong"
	SystemTopicError     = "system.error"
)

// Envelope is the JSON frame delivered to gateway consumers. Topic carries
// the domain event name; Payload the decoded event.
type Envelope struct {
	Topic     string    `json:"topic"`
	Payload   any       `json:"payload,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

func NewEnvelope(topic string, payload any) *Envelope {
	return &Envelope{Topic: topic, Payload: payload, Timestamp: time.Now().UTC()}
}
