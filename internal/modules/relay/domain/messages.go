package domain

import "encoding/json"

// Legacy relay targets. Anything else is either a subscribed attribute
// namespace or an unknown message.
const (
	TargetGatheringStart  = "notify-gathering-start"
	TargetVibe            = "vibe"
	TargetInvite          = "invite"
	TargetMeeting         = "meeting"
	TargetCollaboration   = "collaboration"
	TargetBroadcast       = "broadcast"
	TargetStage           = "stage"
	TargetHigh5           = "high5"
	TargetEmoji           = "emoji"
	TargetMegamoji        = "megamoji"
	TargetPosBus          = "posbus"
	TargetFlyToMe         = "fly-to-me"
	TargetStartFlyWithMe  = "start-fly-with-me"
	TargetStopFlyWithMe   = "stop-fly-with-me"
	TargetScreenShare     = "screen-share"
	TargetVoiceChatAction = "voice-chat-action"
	TargetVoiceChatUser   = "voice-chat-user"
)

// MessageKind discriminates attribute-style payloads.
type MessageKind string

const (
	KindAttributeChanged    MessageKind = "attribute_changed"
	KindAttributeRemoved    MessageKind = "attribute_removed"
	KindSubAttributeChanged MessageKind = "sub_attribute_changed"
	KindSubAttributeRemoved MessageKind = "sub_attribute_removed"
)

// NotificationKind discriminates simple notifications, which arrive on a
// separate channel and are never topic-routed.
type NotificationKind int

const (
	NotificationTextMessage NotificationKind = 500
	NotificationHighFive    NotificationKind = 501
)

// Voice chat moderation actions carried inside voice-chat-action messages.
const (
	VoiceChatActionKickUser = "kick-user"
	VoiceChatActionMuteUser = "mute-user"
	VoiceChatActionMuteAll  = "mute-all"
)

// AttributeMessage is the generic payload for subscribed attribute topics and
// for the voice-chat attribute bridges.
type AttributeMessage struct {
	Kind MessageKind   `json:"type"`
	Data AttributeData `json:"data"`
}

type AttributeData struct {
	AttributeName string          `json:"attribute_name"`
	SubName       string          `json:"sub_name,omitempty"`
	Value         json.RawMessage `json:"value,omitempty"`
}

type VibeMessage struct {
	VibeType string `json:"type"`
	Count    int    `json:"count"`
}

type InviteMessage struct {
	SpaceID    string       `json:"spaceId"`
	Sender     InviteSender `json:"sender"`
	UITypeID   string       `json:"uiTypeId"`
	UITypeName string       `json:"uiTypeName"`
}

type InviteSender struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type CommunicationMessage struct {
	Action      string `json:"action"`
	SpaceID     string `json:"spaceId"`
	ModeratorID string `json:"moderatorId"`
}

type CollaborationMessage struct {
	IntegrationType string `json:"integrationType"`
	SpaceID         string `json:"spaceId"`
}

type BroadcastMessage struct {
	URL             string `json:"url"`
	YoutubeURL      string `json:"youtubeUrl"`
	PeopleCount     int    `json:"peopleCount"`
	BroadcastStatus string `json:"broadcastStatus"`
}

// StageModeMessage carries loosely typed values: `value` may arrive as a
// number or a numeric string depending on the sender.
type StageModeMessage struct {
	Action string          `json:"action"`
	Value  json.RawMessage `json:"value,omitempty"`
	UserID string          `json:"userId"`
}

type High5Message struct {
	SenderID string `json:"senderId"`
	Message  string `json:"message"`
}

type EmojiMessage struct {
	UserID    string `json:"userId"`
	Nickname  string `json:"nickname"`
	AvatarURL string `json:"avatarUrl"`
	EmojiURL  string `json:"url"`
}

type MegamojiMessage struct {
	URL string `json:"url"`
}

type GatheringMessage struct {
	SpaceID string `json:"spaceId"`
	Name    string `json:"name"`
	Start   string `json:"start"`
}

type StatusMessage struct {
	Status string `json:"status"`
}

type FlyToMeMessage struct {
	SpaceID   string `json:"spaceId"`
	Pilot     string `json:"pilot"`
	PilotName string `json:"pilot_name"`
}

type FlyWithMeMessage struct {
	SpaceID   string `json:"spaceId"`
	Pilot     string `json:"pilot"`
	PilotName string `json:"pilotName"`
}

type ScreenShareMessage struct {
	SpaceID string `json:"spaceId"`
	UserID  string `json:"userId"`
	Status  string `json:"status"`
}

type VoiceChatActionValue struct {
	Action string `json:"action"`
	UserID string `json:"userId"`
}
