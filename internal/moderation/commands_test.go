package moderation

import (
	"context"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Black1ssl/menfess-bot/internal/domain"
)

func command(sender domain.UserID, chatType domain.ChatType, name string, args ...string) domain.Message {
	return domain.Message{
		ID:       20,
		Chat:     -100500,
		ChatType: chatType,
		Sender:   domain.User{ID: sender},
		Command:  name,
		Args:     args,
	}
}

func TestHandleBanCommand_PrivateChatRejected(t *testing.T) {
	actions := &fakeActions{}
	engine := newTestEngine(actions, &fakeActivity{})

	engine.HandleBanCommand(context.Background(), command(ownerID, domain.ChatPrivate, "ban", "123"))

	assert.Empty(t, actions.banned)
	require.Len(t, actions.replies, 1)
	assert.Contains(t, actions.replies[0], "hanya bisa di grup")
}

func TestHandleBanCommand_NonAdminRejected(t *testing.T) {
	actions := &fakeActions{status: domain.StatusMember}
	engine := newTestEngine(actions, &fakeActivity{})

	engine.HandleBanCommand(context.Background(), command(42, domain.ChatGroup, "ban", "123"))

	assert.Empty(t, actions.banned)
	require.Len(t, actions.replies, 1)
	assert.Contains(t, actions.replies[0], "bukan admin")
}

func TestHandleBanCommand_OwnerAllowedWithoutLookup(t *testing.T) {
	// Lookup would deny, but the owner bypasses it entirely.
	actions := &fakeActions{status: domain.StatusMember}
	engine := newTestEngine(actions, &fakeActivity{})

	engine.HandleBanCommand(context.Background(), command(ownerID, domain.ChatGroup, "ban", "123"))

	require.Len(t, actions.banned, 1)
	assert.Equal(t, domain.UserID(123), actions.banned[0].user)
}

func TestHandleBanCommand_AdminAllowed(t *testing.T) {
	actions := &fakeActions{status: domain.StatusAdministrator}
	engine := newTestEngine(actions, &fakeActivity{})

	engine.HandleBanCommand(context.Background(), command(42, domain.ChatGroup, "ban", "123"))

	assert.Len(t, actions.banned, 1)
}

func TestHandleBanCommand_MissingArgsUsage(t *testing.T) {
	actions := &fakeActions{}
	engine := newTestEngine(actions, &fakeActivity{})

	engine.HandleBanCommand(context.Background(), command(ownerID, domain.ChatGroup, "ban"))

	assert.Empty(t, actions.banned)
	require.Len(t, actions.replies, 1)
	assert.Contains(t, actions.replies[0], "Gunakan: /ban")
}

func TestHandleBanCommand_InvalidID(t *testing.T) {
	actions := &fakeActions{}
	engine := newTestEngine(actions, &fakeActivity{})

	engine.HandleBanCommand(context.Background(), command(ownerID, domain.ChatGroup, "ban", "bob"))

	assert.Empty(t, actions.banned)
	require.Len(t, actions.replies, 1)
	assert.Contains(t, actions.replies[0], "tidak valid")
}

func TestHandleBanCommand_DefaultOneHour(t *testing.T) {
	actions := &fakeActions{}
	clock := clockwork.NewFakeClockAt(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	engine := NewEngine(actions, &fakeActivity{}, ownerID, clock)

	engine.HandleBanCommand(context.Background(), command(ownerID, domain.ChatGroup, "ban", "123"))

	require.Len(t, actions.banned, 1)
	assert.Equal(t, clock.Now().Add(time.Hour), actions.banned[0].until)
	require.Len(t, actions.replies, 1)
	assert.Contains(t, actions.replies[0], "1 jam")
}

func TestHandleBanCommand_ExplicitHours(t *testing.T) {
	actions := &fakeActions{}
	clock := clockwork.NewFakeClockAt(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	engine := NewEngine(actions, &fakeActivity{}, ownerID, clock)

	engine.HandleBanCommand(context.Background(), command(ownerID, domain.ChatGroup, "ban", "123", "6"))

	require.Len(t, actions.banned, 1)
	assert.Equal(t, clock.Now().Add(6*time.Hour), actions.banned[0].until)
}

func TestHandleKickCommand_BanThenUnban(t *testing.T) {
	actions := &fakeActions{}
	engine := newTestEngine(actions, &fakeActivity{})

	engine.HandleKickCommand(context.Background(), command(ownerID, domain.ChatGroup, "kick", "123"))

	require.Len(t, actions.banned, 1)
	assert.True(t, actions.banned[0].until.IsZero())
	require.Len(t, actions.unbanned, 1)
	assert.Equal(t, domain.UserID(123), actions.unbanned[0])
	assert.Equal(t, []string{"ban", "unban"}, actions.order)
}

func TestHandleKickCommand_MissingArgsUsage(t *testing.T) {
	actions := &fakeActions{}
	engine := newTestEngine(actions, &fakeActivity{})

	engine.HandleKickCommand(context.Background(), command(ownerID, domain.ChatGroup, "kick"))

	assert.Empty(t, actions.banned)
	require.Len(t, actions.replies, 1)
	assert.Contains(t, actions.replies[0], "Gunakan: /kick")
}
