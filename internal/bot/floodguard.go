package bot

import (
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/Black1ssl/menfess-bot/internal/domain"
)

// FloodGuard limits the rate of inbound updates per user.
// Uses token bucket algorithm via golang.org/x/time/rate.
type FloodGuard struct {
	mu        sync.Mutex
	limiters  map[domain.UserID]*limiterEntry
	rate      rate.Limit
	burst     int
	cleanupAt time.Time
}

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewFloodGuard creates a guard with the specified updates per second
// and burst per user.
func NewFloodGuard(updatesPerSecond float64, burst int) *FloodGuard {
	return &FloodGuard{
		limiters:  make(map[domain.UserID]*limiterEntry),
		rate:      rate.Limit(updatesPerSecond),
		burst:     burst,
		cleanupAt: time.Now().Add(5 * time.Minute),
	}
}

// Allow checks if an update from the given user should be processed.
// Returns true if allowed (token available), false if rate limited.
func (g *FloodGuard) Allow(user domain.UserID) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	// Periodic cleanup of inactive limiters (every 5 minutes)
	if time.Now().After(g.cleanupAt) {
		g.cleanup()
		g.cleanupAt = time.Now().Add(5 * time.Minute)
	}

	entry, exists := g.limiters[user]
	if !exists {
		entry = &limiterEntry{
			limiter:  rate.NewLimiter(g.rate, g.burst),
			lastSeen: time.Now(),
		}
		g.limiters[user] = entry
	}

	entry.lastSeen = time.Now()
	return entry.limiter.Allow()
}

// cleanup removes limiters that haven't been used in 10 minutes.
// Must be called with mu held.
func (g *FloodGuard) cleanup() {
	cutoff := time.Now().Add(-10 * time.Minute)
	for user, entry := range g.limiters {
		if entry.lastSeen.Before(cutoff) {
			delete(g.limiters, user)
		}
	}
}

// ActiveLimiters returns the number of users currently tracked.
func (g *FloodGuard) ActiveLimiters() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.limiters)
}
