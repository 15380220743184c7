package greet

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Black1ssl/menfess-bot/internal/domain"
	"github.com/Black1ssl/menfess-bot/internal/gateway"
)

type fakeActions struct {
	mu      sync.Mutex
	replies []string
}

func (f *fakeActions) Reply(_ context.Context, _ domain.ChatID, _ domain.MessageID, text string) gateway.Result {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.replies = append(f.replies, text)
	return gateway.Result{}
}

// memorySeen is an atomic in-memory seen store.
type memorySeen struct {
	mu   sync.Mutex
	seen map[domain.UserID]struct{}
}

func newMemorySeen() *memorySeen {
	return &memorySeen{seen: make(map[domain.UserID]struct{})}
}

func (m *memorySeen) MarkSeen(_ context.Context, user domain.UserID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.seen[user]; ok {
		return false, nil
	}
	m.seen[user] = struct{}{}
	return true, nil
}

func joinEvent(users ...domain.User) domain.Message {
	return domain.Message{
		ID:       50,
		Chat:     -100500,
		ChatType: domain.ChatGroup,
		Joined:   users,
	}
}

func TestHandleJoin_WelcomesNewUser(t *testing.T) {
	actions := &fakeActions{}
	greeter := NewGreeter(actions, newMemorySeen())

	greeter.HandleJoin(context.Background(), joinEvent(domain.User{ID: 7, FullName: "Bob"}))

	require.Len(t, actions.replies, 1)
	assert.Contains(t, actions.replies[0], "Selamat datang Bob")
}

func TestHandleJoin_SecondJoinSilent(t *testing.T) {
	actions := &fakeActions{}
	greeter := NewGreeter(actions, newMemorySeen())
	event := joinEvent(domain.User{ID: 7, FullName: "Bob"})

	greeter.HandleJoin(context.Background(), event)
	greeter.HandleJoin(context.Background(), event)

	assert.Len(t, actions.replies, 1)
}

func TestHandleJoin_MultipleMembers(t *testing.T) {
	actions := &fakeActions{}
	greeter := NewGreeter(actions, newMemorySeen())

	greeter.HandleJoin(context.Background(), joinEvent(
		domain.User{ID: 7, FullName: "Bob"},
		domain.User{ID: 8, FullName: "Carol"},
	))

	assert.Len(t, actions.replies, 2)
}

func TestHandleJoin_ConcurrentJoinsGreetOnce(t *testing.T) {
	actions := &fakeActions{}
	greeter := NewGreeter(actions, newMemorySeen())
	event := joinEvent(domain.User{ID: 7, FullName: "Bob"})

	start := make(chan struct{})
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			greeter.HandleJoin(context.Background(), event)
		}()
	}
	close(start)
	wg.Wait()

	assert.Len(t, actions.replies, 1)
}
