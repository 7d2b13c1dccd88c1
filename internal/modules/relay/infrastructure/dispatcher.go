package infrastructure

import (
	"encoding/json"
	"log/slog"

	"posbusRelay/internal/modules/relay/application/port"
	"posbusRelay/internal/modules/relay/domain"
	"posbusRelay/internal/shared/normalization"
)

// Dispatcher is the single switchboard between raw relay frames and typed
// domain events. It is stateless between calls; routing state lives in the
// topic registry, which is consulted before the legacy target table.
type Dispatcher struct {
	bus      port.EventBus
	registry port.TopicRegistry
}

func NewDispatcher(bus port.EventBus, registry port.TopicRegistry) *Dispatcher {
	return &Dispatcher{bus: bus, registry: registry}
}

// HandleRelayMessage classifies one inbound (target, payload) pair and emits
// at most one domain event. Unknown targets and undecodable payloads are
// dropped, never fatal.
func (d *Dispatcher) HandleRelayMessage(target string, raw json.RawMessage) {
	if d.registry.Has(target) {
		d.handleSpaceAttribute(target, raw)
		return
	}

	switch target {
	case domain.TargetGatheringStart:
		d.handleGatheringStart(raw)
	case domain.TargetVibe:
		d.handleVibe(raw)
	case domain.TargetInvite:
		d.handleInvite(raw)
	case domain.TargetMeeting:
		d.handleCommunication(raw)
	case domain.TargetCollaboration:
		d.handleCollaboration(raw)
	case domain.TargetBroadcast:
		d.handleBroadcast(raw)
	case domain.TargetStage:
		d.handleStageMode(raw)
	case domain.TargetHigh5:
		d.handleHigh5(raw)
	case domain.TargetEmoji:
		d.handleEmoji(raw)
	case domain.TargetMegamoji:
		d.handleMegamoji(raw)
	case domain.TargetPosBus:
		d.handleStatus(raw)
	case domain.TargetFlyToMe:
		d.handleFlyToMe(raw)
	case domain.TargetStartFlyWithMe:
		d.handleFlyWithMe(domain.TargetStartFlyWithMe, raw, true)
	case domain.TargetStopFlyWithMe:
		d.handleFlyWithMe(domain.TargetStopFlyWithMe, raw, false)
	case domain.TargetScreenShare:
		d.handleScreenShare(raw)
	case domain.TargetVoiceChatAction:
		d.handleVoiceChatAction(raw)
	case domain.TargetVoiceChatUser:
		d.handleVoiceChatUser(raw)
	default:
		slog.Debug("unknown relay message type", slog.String("target", target))
	}
}

func (d *Dispatcher) handleSpaceAttribute(topic string, raw json.RawMessage) {
	var msg domain.AttributeMessage
	if !decode(topic, raw, &msg) {
		return
	}
	switch msg.Kind {
	case domain.KindAttributeChanged:
		d.bus.Emit(domain.AttributeChanged{
			Topic:         topic,
			AttributeName: msg.Data.AttributeName,
			Value:         decodeValue(msg.Data.Value),
		})
	case domain.KindAttributeRemoved:
		d.bus.Emit(domain.AttributeRemoved{Topic: topic, AttributeName: msg.Data.AttributeName})
	case domain.KindSubAttributeChanged:
		// A missing sub_name is a defined drop, not an error.
		if msg.Data.SubName == "" {
			return
		}
		d.bus.Emit(domain.AttributeItemChanged{
			Topic:         topic,
			AttributeName: msg.Data.AttributeName,
			SubName:       msg.Data.SubName,
			Value:         decodeValue(msg.Data.Value),
		})
	case domain.KindSubAttributeRemoved:
		if msg.Data.SubName == "" {
			return
		}
		d.bus.Emit(domain.AttributeItemRemoved{
			Topic:         topic,
			AttributeName: msg.Data.AttributeName,
			SubName:       msg.Data.SubName,
		})
	default:
		slog.Debug("unknown attribute message kind", slog.String("topic", topic), slog.String("kind", string(msg.Kind)))
	}
}

func (d *Dispatcher) handleGatheringStart(raw json.RawMessage) {
	var msg domain.GatheringMessage
	if decode(domain.TargetGatheringStart, raw, &msg) {
		d.bus.Emit(domain.GatheringStart{Gathering: msg})
	}
}

func (d *Dispatcher) handleVibe(raw json.RawMessage) {
	var msg domain.VibeMessage
	if decode(domain.TargetVibe, raw, &msg) {
		d.bus.Emit(domain.UserVibed{VibeType: msg.VibeType, Count: msg.Count})
	}
}

func (d *Dispatcher) handleInvite(raw json.RawMessage) {
	var msg domain.InviteMessage
	if decode(domain.TargetInvite, raw, &msg) {
		d.bus.Emit(domain.SpaceInvite{
			SpaceID:     msg.SpaceID,
			InvitorID:   msg.Sender.ID,
			InvitorName: msg.Sender.Name,
			UITypeID:    msg.UITypeID,
			UITypeName:  msg.UITypeName,
		})
	}
}

func (d *Dispatcher) handleCommunication(raw json.RawMessage) {
	var msg domain.CommunicationMessage
	if !decode(domain.TargetMeeting, raw, &msg) {
		return
	}
	switch msg.Action {
	case "kick":
		d.bus.Emit(domain.MeetingKick{SpaceID: msg.SpaceID})
	case "mute":
		d.bus.Emit(domain.MeetingMute{})
	case "mute-all":
		d.bus.Emit(domain.MeetingMuteAll{ModeratorID: msg.ModeratorID})
	}
}

func (d *Dispatcher) handleCollaboration(raw json.RawMessage) {
	var msg domain.CollaborationMessage
	if !decode(domain.TargetCollaboration, raw, &msg) {
		return
	}
	switch msg.IntegrationType {
	case "miro":
		d.bus.Emit(domain.MiroBoardChange{SpaceID: msg.SpaceID})
	case "google_drive":
		d.bus.Emit(domain.GoogleDriveFileChange{SpaceID: msg.SpaceID})
	}
}

func (d *Dispatcher) handleBroadcast(raw json.RawMessage) {
	var msg domain.BroadcastMessage
	if decode(domain.TargetBroadcast, raw, &msg) {
		d.bus.Emit(domain.Broadcast{Message: msg})
	}
}

func (d *Dispatcher) handleStageMode(raw json.RawMessage) {
	var msg domain.StageModeMessage
	if !decode(domain.TargetStage, raw, &msg) {
		return
	}
	switch msg.Action {
	case "state":
		status := domain.StageStatusInitiated
		if stageValue(msg.Value) == 0 {
			status = domain.StageStatusStopped
		}
		d.bus.Emit(domain.StageModeToggled{Status: status})
	case "request":
		d.bus.Emit(domain.StageModeRequest{UserID: msg.UserID})
	case "accept-request":
		if stageValue(msg.Value) == 1 {
			d.bus.Emit(domain.StageModeAccepted{UserID: msg.UserID})
		} else {
			d.bus.Emit(domain.StageModeDeclined{UserID: msg.UserID})
		}
	case "invite":
		d.bus.Emit(domain.StageModeInvite{})
	case "joined-stage":
		d.bus.Emit(domain.StageModeUserJoined{UserID: msg.UserID})
	case "left-stage":
		d.bus.Emit(domain.StageModeUserLeft{UserID: msg.UserID})
	case "kick":
		d.bus.Emit(domain.StageModeKick{UserID: msg.UserID})
	case "mute":
		d.bus.Emit(domain.StageModeMute{})
	}
}

func (d *Dispatcher) handleHigh5(raw json.RawMessage) {
	var msg domain.High5Message
	if decode(domain.TargetHigh5, raw, &msg) {
		d.bus.Emit(domain.HighFive{SenderID: msg.SenderID, Message: msg.Message})
	}
}

func (d *Dispatcher) handleEmoji(raw json.RawMessage) {
	var msg domain.EmojiMessage
	if decode(domain.TargetEmoji, raw, &msg) {
		d.bus.Emit(domain.Emoji{Message: msg})
	}
}

func (d *Dispatcher) handleMegamoji(raw json.RawMessage) {
	var msg domain.MegamojiMessage
	if decode(domain.TargetMegamoji, raw, &msg) {
		d.bus.Emit(domain.Megamoji{URL: msg.URL})
	}
}

func (d *Dispatcher) handleStatus(raw json.RawMessage) {
	var msg domain.StatusMessage
	if !decode(domain.TargetPosBus, raw, &msg) {
		return
	}
	switch msg.Status {
	case "connected":
		d.bus.Emit(domain.PosBusConnected{})
	case "disconnected":
		d.bus.Emit(domain.PosBusDisconnected{})
	default:
		slog.Warn("unknown posbus status", slog.String("status", msg.Status))
	}
}

func (d *Dispatcher) handleFlyToMe(raw json.RawMessage) {
	var msg domain.FlyToMeMessage
	if decode(domain.TargetFlyToMe, raw, &msg) {
		d.bus.Emit(domain.FlyToMe{SpaceID: msg.SpaceID, PilotID: msg.Pilot, PilotName: msg.PilotName})
	}
}

func (d *Dispatcher) handleFlyWithMe(target string, raw json.RawMessage, start bool) {
	var msg domain.FlyWithMeMessage
	if !decode(target, raw, &msg) {
		return
	}
	if start {
		d.bus.Emit(domain.StartFlyWithMe{SpaceID: msg.SpaceID, PilotID: msg.Pilot, PilotName: msg.PilotName})
	} else {
		d.bus.Emit(domain.StopFlyWithMe{SpaceID: msg.SpaceID, PilotID: msg.Pilot, PilotName: msg.PilotName})
	}
}

func (d *Dispatcher) handleScreenShare(raw json.RawMessage) {
	var msg domain.ScreenShareMessage
	if decode(domain.TargetScreenShare, raw, &msg) {
		d.bus.Emit(domain.ScreenShare{Message: msg})
	}
}

// Voice chat moderation rides the attribute envelope but only the changed
// kind carries an actionable value.
func (d *Dispatcher) handleVoiceChatAction(raw json.RawMessage) {
	var msg domain.AttributeMessage
	if !decode(domain.TargetVoiceChatAction, raw, &msg) {
		return
	}
	if msg.Kind != domain.KindAttributeChanged || len(msg.Data.Value) == 0 {
		return
	}
	var value domain.VoiceChatActionValue
	if !decode(domain.TargetVoiceChatAction, msg.Data.Value, &value) {
		return
	}
	switch value.Action {
	case domain.VoiceChatActionKickUser:
		d.bus.Emit(domain.VoiceChatKickUser{UserID: value.UserID})
	case domain.VoiceChatActionMuteUser:
		d.bus.Emit(domain.VoiceChatMuteUser{UserID: value.UserID})
	case domain.VoiceChatActionMuteAll:
		d.bus.Emit(domain.VoiceChatMuteAll{UserID: value.UserID})
	}
}

func (d *Dispatcher) handleVoiceChatUser(raw json.RawMessage) {
	var msg domain.AttributeMessage
	if !decode(domain.TargetVoiceChatUser, raw, &msg) {
		return
	}
	if msg.Kind != domain.KindAttributeChanged || len(msg.Data.Value) == 0 {
		return
	}
	// The value object is loosely typed on the wire; a missing joined flag
	// is a drop, not a leave.
	value := normalization.MapFromPayload(decodeValue(msg.Data.Value))
	if value == nil {
		return
	}
	userID := normalization.AsString(value["userId"])
	joined, ok := value["joined"]
	if userID == "" || !ok {
		return
	}
	if normalization.AsBool(joined) {
		d.bus.Emit(domain.VoiceChatUserJoined{UserID: userID})
	} else {
		d.bus.Emit(domain.VoiceChatUserLeft{UserID: userID})
	}
}

// HandleSimpleNotification consumes the separate, non-topic-routed channel.
func (d *Dispatcher) HandleSimpleNotification(kind domain.NotificationKind, flag int, message string) {
	switch kind {
	case domain.NotificationTextMessage:
		d.bus.Emit(domain.SimpleNotification{Message: message})
	case domain.NotificationHighFive:
		d.bus.Emit(domain.HighFiveSent{Message: message})
	default:
		slog.Debug("simple notification ignored", slog.Int("kind", int(kind)), slog.Int("flag", flag))
	}
}

func decode(target string, raw json.RawMessage, out any) bool {
	if len(raw) == 0 {
		slog.Debug("relay message empty payload", slog.String("target", target))
		return false
	}
	if err := json.Unmarshal(raw, out); err != nil {
		slog.Debug("relay message decode failed", slog.String("target", target), slog.Any("error", err))
		return false
	}
	return true
}

func decodeValue(raw json.RawMessage) any {
	if len(raw) == 0 {
		return nil
	}
	var value any
	if err := json.Unmarshal(raw, &value); err != nil {
		return nil
	}
	return value
}

func stageValue(raw json.RawMessage) int {
	if len(raw) == 0 {
		return 0
	}
	var value any
	if err := json.Unmarshal(raw, &value); err != nil {
		return 0
	}
	return normalization.AsInt(value)
}
