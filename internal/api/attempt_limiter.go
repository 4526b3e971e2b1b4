package api

import (
	"strings"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
)

// attemptLimiter blocks a client once it collects limit failures inside a
// window that opens at its first failure.
type attemptLimiter struct {
	mu      sync.Mutex
	limit   int
	window  time.Duration
	clients map[string]failureStreak
}

type failureStreak struct {
	first time.Time
	count int
}

func newAttemptLimiter(limit int, window time.Duration) *attemptLimiter {
	return &attemptLimiter{limit: limit, window: window, clients: make(map[string]failureStreak)}
}

func (limiter *attemptLimiter) tooManyRecent(key string, now time.Time) bool {
	limiter.mu.Lock()
	defer limiter.mu.Unlock()

	streak, ok := limiter.activeStreak(key, now)
	return ok && streak.count >= limiter.limit
}

func (limiter *attemptLimiter) addFailure(key string, now time.Time) {
	limiter.mu.Lock()
	defer limiter.mu.Unlock()

	streak, ok := limiter.activeStreak(key, now)
	if !ok {
		limiter.sweep(now)
		streak = failureStreak{first: now}
	}
	streak.count++
	limiter.clients[key] = streak
}

func (limiter *attemptLimiter) reset(key string) {
	limiter.mu.Lock()
	defer limiter.mu.Unlock()
	delete(limiter.clients, key)
}

// activeStreak must be called with mu held.
func (limiter *attemptLimiter) activeStreak(key string, now time.Time) (failureStreak, bool) {
	streak, ok := limiter.clients[key]
	if !ok {
		return failureStreak{}, false
	}
	if now.Sub(streak.first) >= limiter.window {
		delete(limiter.clients, key)
		return failureStreak{}, false
	}
	return streak, true
}

func (limiter *attemptLimiter) sweep(now time.Time) {
	for key, streak := range limiter.clients {
		if now.Sub(streak.first) >= limiter.window {
			delete(limiter.clients, key)
		}
	}
}

func requestLimiterKey(c *fiber.Ctx) string {
	if ip := strings.TrimSpace(c.IP()); ip != "" {
		return ip
	}
	return "unknown"
}
