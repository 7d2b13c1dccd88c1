package handler

import (
	"sync"
	"time"

	"posbusRelay/internal/modules/relay/application/port"
	"posbusRelay/internal/modules/relay/domain"
)

// NotificationEntry is one toast-style notification kept for inspection.
type NotificationEntry struct {
	Kind       string    `json:"kind"`
	Message    string    `json:"message"`
	SenderID   string    `json:"senderId,omitempty"`
	ReceivedAt time.Time `json:"receivedAt"`
}

// NotificationLog keeps a bounded ring of recent user-facing notifications
// (simple notifications and high fives). Oldest entries are evicted first.
type NotificationLog struct {
	mu      sync.RWMutex
	entries []NotificationEntry
	limit   int
	now     func() time.Time
	unsub   []func()
}

func NewNotificationLog(limit int) *NotificationLog {
	if limit <= 0 {
		limit = 32
	}
	return &NotificationLog{limit: limit, now: time.Now}
}

func (l *NotificationLog) Attach(bus port.EventBus) {
	l.unsub = append(l.unsub,
		bus.On(domain.EventSimpleNotification, l.handle),
		bus.On(domain.EventHighFiveSent, l.handle),
		bus.On(domain.EventHighFive, l.handle),
	)
}

func (l *NotificationLog) Detach() {
	for _, fn := range l.unsub {
		fn()
	}
	l.unsub = nil
}

func (l *NotificationLog) handle(event domain.Event) {
	entry := NotificationEntry{ReceivedAt: l.now().UTC()}
	switch ev := event.(type) {
	case domain.SimpleNotification:
		entry.Kind = domain.EventSimpleNotification
		entry.Message = ev.Message
	case domain.HighFiveSent:
		entry.Kind = domain.EventHighFiveSent
		entry.Message = ev.Message
	case domain.HighFive:
		entry.Kind = domain.EventHighFive
		entry.Message = ev.Message
		entry.SenderID = ev.SenderID
	default:
		return
	}

	l.mu.Lock()
	l.entries = append(l.entries, entry)
	if len(l.entries) > l.limit {
		l.entries = l.entries[len(l.entries)-l.limit:]
	}
	l.mu.Unlock()
}

// Recent returns the stored notifications, newest last.
func (l *NotificationLog) Recent() []NotificationEntry {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]NotificationEntry, len(l.entries))
	copy(out, l.entries)
	return out
}
