package telegram

import (
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Black1ssl/menfess-bot/internal/domain"
)

func convertUser(u *tgbotapi.User) domain.User {
	if u == nil {
		return domain.User{}
	}
	name := u.FirstName
	if u.LastName != "" {
		name += " " + u.LastName
	}
	return domain.User{
		ID:       domain.UserID(u.ID),
		Username: u.UserName,
		FullName: name,
	}
}

// convertMessage flattens a vendor message into the platform-neutral
// shape handlers consume. Captions count as text for media messages.
func convertMessage(m *tgbotapi.Message) domain.Message {
	text := m.Text
	if text == "" {
		text = m.Caption
	}

	msg := domain.Message{
		ID:       domain.MessageID(m.MessageID),
		Chat:     domain.ChatID(m.Chat.ID),
		ChatType: domain.ChatType(m.Chat.Type),
		Sender:   convertUser(m.From),
		Text:     text,
		HasPhoto: len(m.Photo) > 0,
		HasVideo: m.Video != nil,
	}

	if m.IsCommand() {
		msg.Command = m.Command()
		msg.Args = strings.Fields(m.CommandArguments())
	}

	for _, joined := range m.NewChatMembers {
		msg.Joined = append(msg.Joined, convertUser(&joined))
	}

	return msg
}
