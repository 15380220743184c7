package gateway

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Black1ssl/menfess-bot/internal/domain"
)

// fakeAPI records call concurrency and returns a configured error.
type fakeAPI struct {
	mu       sync.Mutex
	inFlight int
	maxSeen  int

	calls     atomic.Int32
	err       error
	callDelay time.Duration
}

func (f *fakeAPI) track() error {
	f.mu.Lock()
	f.inFlight++
	if f.inFlight > f.maxSeen {
		f.maxSeen = f.inFlight
	}
	f.mu.Unlock()

	if f.callDelay > 0 {
		time.Sleep(f.callDelay)
	}
	f.calls.Add(1)

	f.mu.Lock()
	f.inFlight--
	f.mu.Unlock()
	return f.err
}

func (f *fakeAPI) maxInFlight() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.maxSeen
}

func (f *fakeAPI) SendText(context.Context, domain.ChatID, string) (domain.MessageID, error) {
	return 1, f.track()
}

func (f *fakeAPI) Reply(context.Context, domain.ChatID, domain.MessageID, string) (domain.MessageID, error) {
	return 1, f.track()
}

func (f *fakeAPI) CopyMessage(context.Context, domain.ChatID, domain.ChatID, domain.MessageID) (domain.MessageID, error) {
	return 1, f.track()
}

func (f *fakeAPI) DeleteMessage(context.Context, domain.ChatID, domain.MessageID) error {
	return f.track()
}

func (f *fakeAPI) BanUser(context.Context, domain.ChatID, domain.UserID, time.Time) error {
	return f.track()
}

func (f *fakeAPI) UnbanUser(context.Context, domain.ChatID, domain.UserID) error {
	return f.track()
}

func (f *fakeAPI) GetChatMember(context.Context, domain.ChatID, domain.UserID) (domain.MemberStatus, error) {
	return domain.StatusMember, f.track()
}

func (f *fakeAPI) SendVideo(context.Context, domain.ChatID, domain.MessageID, string) (domain.MessageID, error) {
	return 1, f.track()
}

func (f *fakeAPI) SendDocument(context.Context, domain.ChatID, domain.MessageID, string) (domain.MessageID, error) {
	return 1, f.track()
}

// timeoutErr satisfies net.Error with Timeout() == true.
type timeoutErr struct{}

func (timeoutErr) Error() string   { return "i/o timeout" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return true }

func TestGateway_BoundsConcurrency(t *testing.T) {
	api := &fakeAPI{callDelay: 5 * time.Millisecond}
	gw := New(api, 3, time.Millisecond, clockwork.NewRealClock())

	// Barrier to ensure all goroutines fire at roughly the same time
	start := make(chan struct{})
	var wg sync.WaitGroup
	for i := 0; i < 30; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			gw.SendText(context.Background(), 1, "hello")
		}()
	}
	close(start)
	wg.Wait()

	assert.Equal(t, int32(30), api.calls.Load())
	assert.LessOrEqual(t, api.maxInFlight(), 3)
}

func TestGateway_AbsorbsPlatformErrors(t *testing.T) {
	api := &fakeAPI{err: &domain.PlatformError{Code: 400, Message: "chat not found"}}
	gw := New(api, 1, 0, clockwork.NewRealClock())

	res := gw.SendText(context.Background(), 1, "hello")
	assert.Equal(t, OutcomePermanent, res.Outcome)
	assert.False(t, res.OK())
}

func TestGateway_AbsorbsTransportErrors(t *testing.T) {
	api := &fakeAPI{err: timeoutErr{}}
	gw := New(api, 1, 0, clockwork.NewRealClock())

	res := gw.BanUser(context.Background(), 1, 2, time.Time{})
	assert.Equal(t, OutcomeRetryable, res.Outcome)
}

func TestGateway_PacingHoldsPermit(t *testing.T) {
	api := &fakeAPI{}
	clock := clockwork.NewFakeClock()
	gw := New(api, 1, 100*time.Millisecond, clock)

	done := make(chan struct{})
	go func() {
		gw.SendText(context.Background(), 1, "a")
		gw.SendText(context.Background(), 1, "b")
		close(done)
	}()

	// First call has completed and its permit is parked in the pacing
	// sleep; the second call must not have started yet.
	clock.BlockUntil(1)
	assert.Equal(t, int32(1), api.calls.Load())

	clock.Advance(100 * time.Millisecond)
	clock.BlockUntil(1)
	assert.Equal(t, int32(2), api.calls.Load())

	clock.Advance(100 * time.Millisecond)
	<-done
}

func TestGateway_CancelledContextFailsAcquire(t *testing.T) {
	api := &fakeAPI{}
	clock := clockwork.NewFakeClock()
	gw := New(api, 1, time.Minute, clock)

	released := make(chan struct{})
	go func() {
		gw.SendText(context.Background(), 1, "a")
		close(released)
	}()
	clock.BlockUntil(1) // permit held through pacing

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res := gw.SendText(ctx, 1, "b")
	assert.Equal(t, OutcomeRetryable, res.Outcome)
	assert.Equal(t, int32(1), api.calls.Load())

	clock.Advance(time.Minute)
	<-released
}

func TestGateway_ChatMember(t *testing.T) {
	api := &fakeAPI{}
	gw := New(api, 1, 0, clockwork.NewRealClock())

	status, outcome := gw.ChatMember(context.Background(), 1, 2)
	require.Equal(t, OutcomeOK, outcome)
	assert.Equal(t, domain.StatusMember, status)
}

func TestGateway_ChatMember_LookupFailure(t *testing.T) {
	api := &fakeAPI{err: timeoutErr{}}
	gw := New(api, 1, 0, clockwork.NewRealClock())

	_, outcome := gw.ChatMember(context.Background(), 1, 2)
	assert.True(t, outcome.Failed())
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Outcome
	}{
		{"nil", nil, OutcomeOK},
		{"platform error", &domain.PlatformError{Code: 403, Message: "not enough rights"}, OutcomePermanent},
		{"wrapped platform error", errDecorate(&domain.PlatformError{Message: "bad request"}), OutcomePermanent},
		{"timeout", timeoutErr{}, OutcomeRetryable},
		{"deadline", context.DeadlineExceeded, OutcomeRetryable},
		{"cancelled", context.Canceled, OutcomeRetryable},
		{"unknown", errors.New("boom"), OutcomePermanent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.err))
		})
	}
}

func errDecorate(err error) error {
	return &wrapped{err}
}

type wrapped struct{ err error }

func (w *wrapped) Error() string { return "send message: " + w.err.Error() }
func (w *wrapped) Unwrap() error { return w.err }
