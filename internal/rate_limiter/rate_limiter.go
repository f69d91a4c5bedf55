package rate_limiter

import (
	"sync"
	"time"
)

// RateLimiter allows limit requests per key within a sliding window.
type RateLimiter struct {
	mu       sync.Mutex
	requests map[string][]time.Time
	limit    int
	window   time.Duration
	now      func() time.Time
	stop     chan struct{}
	once     sync.Once
}

func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		requests: make(map[string][]time.Time),
		limit:    limit,
		window:   window,
		now:      time.Now,
		stop:     make(chan struct{}),
	}

	// drop idle keys
	go rl.cleanupLoop()

	return rl
}

func (rl *RateLimiter) Limit() int { return rl.limit }
func (rl *RateLimiter) Window() time.Duration { return rl.window }
func (rl *RateLimiter) ResetAt() time.Time { return rl.now().Add(rl.window) }
func (rl *RateLimiter) windowStart() time.Time { return rl.now().Add(-rl.window) }

// Stop ends the cleanup goroutine.
func (rl *RateLimiter) Stop() {
	rl.once.Do(func() { close(rl.stop) })
}

func (rl *RateLimiter) cleanupLoop() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-rl.stop:
			return
		case <-ticker.C:
			rl.mu.Lock()
			start := rl.windowStart()
			for key, times := range rl.requests {
				if valid := recent(times, start); len(valid) == 0 {
					delete(rl.requests, key)
				} else {
					rl.requests[key] = valid
				}
			}
			rl.mu.Unlock()
		}
	}
}

func recent(times []time.Time, start time.Time) []time.Time {
	var valid []time.Time
	for _, t := range times {
		if t.After(start) {
			valid = append(valid, t)
		}
	}
	return valid
}

func (rl *RateLimiter) IsAllowed(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	valid := recent(rl.requests[key], rl.windowStart())
	if len(valid) >= rl.limit {
		rl.requests[key] = valid
		return false
	}

	rl.requests[key] = append(valid, rl.now())
	return true
}

// GetRemainingRequests returns how many requests key may still make in the
// current window.
func (rl *RateLimiter) GetRemainingRequests(key string) int {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	return rl.limit - len(recent(rl.requests[key], rl.windowStart()))
}
