package handler

import (
	"reflect"
	"testing"

	"posbusRelay/internal/modules/relay/domain"
	"posbusRelay/internal/modules/relay/infrastructure"
)

func TestVoiceChatRosterTracksMembership(t *testing.T) {
	t.Parallel()

	bus := infrastructure.NewEmitter()
	roster := NewVoiceChatRoster()
	roster.Attach(bus)

	bus.Emit(domain.VoiceChatUserJoined{UserID: "u1"})
	bus.Emit(domain.VoiceChatUserJoined{UserID: "u2"})
	bus.Emit(domain.VoiceChatUserJoined{UserID: "u1"}) // duplicate join
	bus.Emit(domain.VoiceChatUserLeft{UserID: "u2"})

	if got := roster.Users(); !reflect.DeepEqual(got, []string{"u1"}) {
		t.Fatalf("unexpected roster: %v", got)
	}
	if roster.Count() != 1 {
		t.Fatalf("unexpected count: %d", roster.Count())
	}
}

func TestVoiceChatRosterMuteAndKick(t *testing.T) {
	t.Parallel()

	bus := infrastructure.NewEmitter()
	roster := NewVoiceChatRoster()
	roster.Attach(bus)

	bus.Emit(domain.VoiceChatUserJoined{UserID: "u1"})
	bus.Emit(domain.VoiceChatUserJoined{UserID: "u2"})

	bus.Emit(domain.VoiceChatMuteUser{UserID: "u1"})
	if !roster.IsMuted("u1") || roster.IsMuted("u2") {
		t.Fatal("mute-user should affect only the named user")
	}

	bus.Emit(domain.VoiceChatMuteAll{UserID: "mod"})
	if !roster.IsMuted("u2") {
		t.Fatal("mute-all should mute every member")
	}

	bus.Emit(domain.VoiceChatKickUser{UserID: "u1"})
	if got := roster.Users(); !reflect.DeepEqual(got, []string{"u2"}) {
		t.Fatalf("unexpected roster after kick: %v", got)
	}
	if roster.IsMuted("u1") {
		t.Fatal("kicked user must not report muted")
	}
}

func TestVoiceChatRosterMuteUnknownUserIsIgnored(t *testing.T) {
	t.Parallel()

	bus := infrastructure.NewEmitter()
	roster := NewVoiceChatRoster()
	roster.Attach(bus)

	bus.Emit(domain.VoiceChatMuteUser{UserID: "ghost"})

	if roster.Count() != 0 {
		t.Fatalf("unexpected count: %d", roster.Count())
	}
	if roster.IsMuted("ghost") {
		t.Fatal("unknown user must not report muted")
	}
}

func TestVoiceChatRosterDetachStopsUpdates(t *testing.T) {
	t.Parallel()

	bus := infrastructure.NewEmitter()
	roster := NewVoiceChatRoster()
	roster.Attach(bus)

	bus.Emit(domain.VoiceChatUserJoined{UserID: "u1"})
	roster.Detach()
	bus.Emit(domain.VoiceChatUserJoined{UserID: "u2"})

	if got := roster.Users(); !reflect.DeepEqual(got, []string{"u1"}) {
		t.Fatalf("roster changed after detach: %v", got)
	}
}
