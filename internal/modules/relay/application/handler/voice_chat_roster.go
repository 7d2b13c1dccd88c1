package handler

import (
	"sort"
	"sync"

	"posbusRelay/internal/modules/relay/application/port"
	"posbusRelay/internal/modules/relay/domain"
)

// VoiceChatRoster mirrors voice chat membership and mute state from the
// relay event stream. It is a passive subscriber: an empty roster is the
// valid steady state when no voice chat events ever arrive.
type VoiceChatRoster struct {
	mu    sync.RWMutex
	users map[string]*voiceChatUser
	unsub []func()
}

type voiceChatUser struct {
	userID string
	muted  bool
}

func NewVoiceChatRoster() *VoiceChatRoster {
	return &VoiceChatRoster{users: make(map[string]*voiceChatUser)}
}

// Attach registers the roster on the bus. Call Detach on teardown.
func (r *VoiceChatRoster) Attach(bus port.EventBus) {
	r.unsub = append(r.unsub,
		bus.On(domain.EventVoiceChatUserJoined, r.handle),
		bus.On(domain.EventVoiceChatUserLeft, r.handle),
		bus.On(domain.EventVoiceChatMuteUser, r.handle),
		bus.On(domain.EventVoiceChatMuteAll, r.handle),
		bus.On(domain.EventVoiceChatKickUser, r.handle),
	)
}

func (r *VoiceChatRoster) Detach() {
	for _, fn := range r.unsub {
		fn()
	}
	r.unsub = nil
}

func (r *VoiceChatRoster) handle(event domain.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	switch ev := event.(type) {
	case domain.VoiceChatUserJoined:
		if _, ok := r.users[ev.UserID]; !ok {
			r.users[ev.UserID] = &voiceChatUser{userID: ev.UserID}
		}
	case domain.VoiceChatUserLeft:
		delete(r.users, ev.UserID)
	case domain.VoiceChatKickUser:
		delete(r.users, ev.UserID)
	case domain.VoiceChatMuteUser:
		if user, ok := r.users[ev.UserID]; ok {
			user.muted = true
		}
	case domain.VoiceChatMuteAll:
		for _, user := range r.users {
			user.muted = true
		}
	}
}

// Users returns the current member ids in stable order.
func (r *VoiceChatRoster) Users() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.users))
	for id := range r.users {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

func (r *VoiceChatRoster) IsMuted(userID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.users[userID]
	return ok && user.muted
}

func (r *VoiceChatRoster) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.users)
}
