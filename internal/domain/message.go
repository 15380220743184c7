package domain

// --- Identity types ---

// UserID is a Telegram user identity.
type UserID int64

// ChatID is a Telegram chat identity (negative for groups and channels).
type ChatID int64

// MessageID identifies a message within its chat.
type MessageID int

// --- Model types ---

// ChatType classifies the chat a message arrived from.
type ChatType string

const (
	ChatPrivate    ChatType = "private"
	ChatGroup      ChatType = "group"
	ChatSupergroup ChatType = "supergroup"
	ChatChannel    ChatType = "channel"
)

// User is the sender (or subject) of an inbound event.
type User struct {
	ID       UserID
	Username string
	FullName string
}

// Message is a platform-neutral view of one inbound update.
// Text carries the caption when the message is a media message.
type Message struct {
	ID       MessageID
	Chat     ChatID
	ChatType ChatType
	Sender   User
	Text     string
	HasPhoto bool
	HasVideo bool

	// Command and Args are set when the message is a bot command.
	Command string
	Args    []string

	// Joined is set on membership updates (users added to the chat).
	Joined []User
}

// IsPrivate reports whether the message arrived in a one-on-one chat.
func (m Message) IsPrivate() bool { return m.ChatType == ChatPrivate }

// IsGroup reports whether the message arrived in a group or supergroup.
func (m Message) IsGroup() bool {
	return m.ChatType == ChatGroup || m.ChatType == ChatSupergroup
}

// HasMedia reports whether the message carries a photo or video attachment.
func (m Message) HasMedia() bool { return m.HasPhoto || m.HasVideo }

// ActionKind partitions the daily quota space.
type ActionKind string

const (
	KindText     ActionKind = "text"
	KindMedia    ActionKind = "media"
	KindDownload ActionKind = "download"
)

// MemberStatus is the platform's view of a user's role in a chat.
type MemberStatus string

const (
	StatusCreator       MemberStatus = "creator"
	StatusAdministrator MemberStatus = "administrator"
	StatusMember        MemberStatus = "member"
	StatusRestricted    MemberStatus = "restricted"
	StatusLeft          MemberStatus = "left"
	StatusKicked        MemberStatus = "kicked"
)

// IsAdmin reports whether the status grants moderation exemption.
func (s MemberStatus) IsAdmin() bool {
	return s == StatusCreator || s == StatusAdministrator
}
