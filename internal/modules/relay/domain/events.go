package domain

// Event is the closed set of typed domain events produced by the relay
// dispatcher. Every variant carries its decoded payload as struct fields so
// subscribers never re-parse wire data.
type Event interface {
	EventName() string
}

const (
	EventUserVibed             = "user-vibed"
	EventSpaceInvite           = "space-invite"
	EventGatheringStart        = "notify-gathering-start"
	EventMeetingKick           = "meeting-kick"
	EventMeetingMute           = "meeting-mute"
	EventMeetingMuteAll        = "meeting-mute-all"
	EventMiroBoardChange       = "miro-board-change"
	EventGoogleDriveFileChange = "google-drive-file-change"
	EventBroadcast             = "broadcast"
	EventStageModeToggled      = "stage-mode-toggled"
	EventStageModeRequest      = "stage-mode-request"
	EventStageModeAccepted     = "stage-mode-accepted"
	EventStageModeDeclined     = "stage-mode-declined"
	EventStageModeInvite       = "stage-mode-invite"
	EventStageModeUserJoined   = "stage-mode-user-joined"
	EventStageModeUserLeft     = "stage-mode-user-left"
	EventStageModeKick         = "stage-mode-kick"
	EventStageModeMute         = "stage-mode-mute"
	EventHighFive              = "high-five"
	EventEmoji                 = "emoji"
	EventMegamoji              = "megamoji"
	EventPosBusConnected       = "posbus-connected"
	EventPosBusDisconnected    = "posbus-disconnected"
	EventFlyToMe               = "fly-to-me"
	EventStartFlyWithMe        = "start-fly-with-me"
	EventStopFlyWithMe         = "stop-fly-with-me"
	EventScreenShare           = "screen-share"
	EventVoiceChatKickUser     = "voice-chat-kick-user"
	EventVoiceChatMuteUser     = "voice-chat-mute-user"
	EventVoiceChatMuteAll      = "voice-chat-mute-all"
	EventVoiceChatUserJoined   = "voice-chat-user-joined"
	EventVoiceChatUserLeft     = "voice-chat-user-left"
	EventAttributeChanged      = "space-attribute-changed"
	EventAttributeRemoved      = "space-attribute-removed"
	EventAttributeItemChanged  = "space-attribute-item-changed"
	EventAttributeItemRemoved  = "space-attribute-item-removed"
	EventSimpleNotification    = "simple-notification"
	EventHighFiveSent          = "high-five-sent"
)

// StageStatus values carried by StageModeToggled.
const (
	StageStatusInitiated = "initiated"
	StageStatusStopped   = "stopped"
)

type UserVibed struct {
	VibeType string `json:"vibeType"`
	Count    int    `json:"count"`
}

type SpaceInvite struct {
	SpaceID     string `json:"spaceId"`
	InvitorID   string `json:"invitorId"`
	InvitorName string `json:"invitorName"`
	UITypeID    string `json:"uiTypeId"`
	UITypeName  string `json:"uiTypeName"`
}

type GatheringStart struct {
	Gathering GatheringMessage `json:"gathering"`
}

type MeetingKick struct {
	SpaceID string `json:"spaceId"`
}

type MeetingMute struct{}

type MeetingMuteAll struct {
	ModeratorID string `json:"moderatorId"`
}

type MiroBoardChange struct {
	SpaceID string `json:"spaceId"`
}

type GoogleDriveFileChange struct {
	SpaceID string `json:"spaceId"`
}

type Broadcast struct {
	Message BroadcastMessage `json:"message"`
}

type StageModeToggled struct {
	Status string `json:"status"`
}

type StageModeRequest struct {
	UserID string `json:"userId"`
}

type StageModeAccepted struct {
	UserID string `json:"userId"`
}

type StageModeDeclined struct {
	UserID string `json:"userId"`
}

type StageModeInvite struct{}

type StageModeUserJoined struct {
	UserID string `json:"userId"`
}

type StageModeUserLeft struct {
	UserID string `json:"userId"`
}

type StageModeKick struct {
	UserID string `json:"userId"`
}

type StageModeMute struct{}

type HighFive struct {
	SenderID string `json:"senderId"`
	Message  string `json:"message"`
}

type Emoji struct {
	Message EmojiMessage `json:"message"`
}

type Megamoji struct {
	URL string `json:"url"`
}

type PosBusConnected struct{}

type PosBusDisconnected struct{}

type FlyToMe struct {
	SpaceID   string `json:"spaceId"`
	PilotID   string `json:"pilotId"`
	PilotName string `json:"pilotName"`
}

type StartFlyWithMe struct {
	SpaceID   string `json:"spaceId"`
	PilotID   string `json:"pilotId"`
	PilotName string `json:"pilotName"`
}

type StopFlyWithMe struct {
	SpaceID   string `json:"spaceId"`
	PilotID   string `json:"pilotId"`
	PilotName string `json:"pilotName"`
}

type ScreenShare struct {
	Message ScreenShareMessage `json:"message"`
}

type VoiceChatKickUser struct {
	UserID string `json:"userId"`
}

type VoiceChatMuteUser struct {
	UserID string `json:"userId"`
}

type VoiceChatMuteAll struct {
	UserID string `json:"userId"`
}

type VoiceChatUserJoined struct {
	UserID string `json:"userId"`
}

type VoiceChatUserLeft struct {
	UserID string `json:"userId"`
}

type AttributeChanged struct {
	Topic         string `json:"topic"`
	AttributeName string `json:"attributeName"`
	Value         any    `json:"value"`
}

type AttributeRemoved struct {
	Topic         string `json:"topic"`
	AttributeName string `json:"attributeName"`
}

type AttributeItemChanged struct {
	Topic         string `json:"topic"`
	AttributeName string `json:"attributeName"`
	SubName       string `json:"subName"`
	Value         any    `json:"value"`
}

type AttributeItemRemoved struct {
	Topic         string `json:"topic"`
	AttributeName string `json:"attributeName"`
	SubName       string `json:"subName"`
}

type SimpleNotification struct {
	Message string `json:"message"`
}

type HighFiveSent struct {
	Message string `json:"message"`
}

func (UserVibed) EventName() string             { return EventUserVibed }
func (SpaceInvite) EventName() string           { return EventSpaceInvite }
func (GatheringStart) EventName() string        { return EventGatheringStart }
func (MeetingKick) EventName() string           { return EventMeetingKick }
func (MeetingMute) EventName() string           { return EventMeetingMute }
func (MeetingMuteAll) EventName() string        { return EventMeetingMuteAll }
func (MiroBoardChange) EventName() string       { return EventMiroBoardChange }
func (GoogleDriveFileChange) EventName() string { return EventGoogleDriveFileChange }
func (Broadcast) EventName() string             { return EventBroadcast }
func (StageModeToggled) EventName() string      { return EventStageModeToggled }
func (StageModeRequest) EventName() string      { return EventStageModeRequest }
func (StageModeAccepted) EventName() string     { return EventStageModeAccepted }
func (StageModeDeclined) EventName() string     { return EventStageModeDeclined }
func (StageModeInvite) EventName() string       { return EventStageModeInvite }
func (StageModeUserJoined) EventName() string   { return EventStageModeUserJoined }
func (StageModeUserLeft) EventName() string     { return EventStageModeUserLeft }
func (StageModeKick) EventName() string         { return EventStageModeKick }
func (StageModeMute) EventName() string         { return EventStageModeMute }
func (HighFive) EventName() string              { return EventHighFive }
func (Emoji) EventName() string                 { return EventEmoji }
func (Megamoji) EventName() string              { return EventMegamoji }
func (PosBusConnected) EventName() string       { return EventPosBusConnected }
func (PosBusDisconnected) EventName() string    { return EventPosBusDisconnected }
func (FlyToMe) EventName() string               { return EventFlyToMe }
func (StartFlyWithMe) EventName() string        { return EventStartFlyWithMe }
func (StopFlyWithMe) EventName() string         { return EventStopFlyWithMe }
func (ScreenShare) EventName() string           { return EventScreenShare }
func (VoiceChatKickUser) EventName() string     { return EventVoiceChatKickUser }
func (VoiceChatMuteUser) EventName() string     { return EventVoiceChatMuteUser }
func (VoiceChatMuteAll) EventName() string      { return EventVoiceChatMuteAll }
func (VoiceChatUserJoined) EventName() string   { return EventVoiceChatUserJoined }
func (VoiceChatUserLeft) EventName() string     { return EventVoiceChatUserLeft }
func (AttributeChanged) EventName() string      { return EventAttributeChanged }
func (AttributeRemoved) EventName() string      { return EventAttributeRemoved }
func (AttributeItemChanged) EventName() string  { return EventAttributeItemChanged }
func (AttributeItemRemoved) EventName() string  { return EventAttributeItemRemoved }
func (SimpleNotification) EventName() string    { return EventSimpleNotification }
func (HighFiveSent) EventName() string          { return EventHighFiveSent }
