package ratelimit

import (
	"sync"
	"time"
)

// Limiter enforces sliding-window request limits per client key. The
// AI-backed search endpoints sit behind it so a single client cannot
// burn through completion quota.
type Limiter struct {
	requestsPerMinute int
	requestsPerHour   int
	requestsPerDay    int
	enabled           bool

	mu      sync.Mutex
	clients map[string]*clientWindows
}

type clientWindows struct {
	minute []time.Time
	hour   []time.Time
	day    []time.Time
}

func NewLimiter(requestsPerMinute, requestsPerHour, requestsPerDay int, enabled bool) *Limiter {
	return &Limiter{
		requestsPerMinute: requestsPerMinute,
		requestsPerHour:   requestsPerHour,
		requestsPerDay:    requestsPerDay,
		enabled:           enabled,
		clients:           make(map[string]*clientWindows),
	}
}

// Allow records a request for the client key and reports whether it is
// within limits. Returns true when disabled.
func (l *Limiter) Allow(key string) bool {
	if !l.enabled {
		return true
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	cw := l.clients[key]
	if cw == nil {
		cw = &clientWindows{}
		l.clients[key] = cw
	}
	cw.cleanup(now)

	if l.requestsPerMinute > 0 && len(cw.minute) >= l.requestsPerMinute {
		return false
	}
	if l.requestsPerHour > 0 && len(cw.hour) >= l.requestsPerHour {
		return false
	}
	if l.requestsPerDay > 0 && len(cw.day) >= l.requestsPerDay {
		return false
	}

	cw.minute = append(cw.minute, now)
	cw.hour = append(cw.hour, now)
	cw.day = append(cw.day, now)
	return true
}

func (cw *clientWindows) cleanup(now time.Time) {
	cw.minute = filterTimes(cw.minute, now.Add(-1*time.Minute))
	cw.hour = filterTimes(cw.hour, now.Add(-1*time.Hour))
	cw.day = filterTimes(cw.day, now.Add(-24*time.Hour))
}

// filterTimes keeps only times after the cutoff
func filterTimes(times []time.Time, cutoff time.Time) []time.Time {
	result := times[:0]
	for _, t := range times {
		if t.After(cutoff) {
			result = append(result, t)
		}
	}
	return result
}

// Stats contains rate limiter statistics for one client key
type Stats struct {
	Enabled             bool `json:"enabled"`
	RequestsLastMinute  int  `json:"requests_last_minute"`
	RequestsLastHour    int  `json:"requests_last_hour"`
	RequestsLastDay     int  `json:"requests_last_day"`
	LimitPerMinute      int  `json:"limit_per_minute"`
	LimitPerHour        int  `json:"limit_per_hour"`
	LimitPerDay         int  `json:"limit_per_day"`
	RemainingThisMinute int  `json:"remaining_this_minute"`
	RemainingThisHour   int  `json:"remaining_this_hour"`
	RemainingThisDay    int  `json:"remaining_this_day"`
}

// GetStats returns current usage for one client key
func (l *Limiter) GetStats(key string) Stats {
	if !l.enabled {
		return Stats{Enabled: false}
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	cw := l.clients[key]
	if cw == nil {
		cw = &clientWindows{}
	}
	cw.cleanup(time.Now())

	return Stats{
		Enabled:             true,
		RequestsLastMinute:  len(cw.minute),
		RequestsLastHour:    len(cw.hour),
		RequestsLastDay:     len(cw.day),
		LimitPerMinute:      l.requestsPerMinute,
		LimitPerHour:        l.requestsPerHour,
		LimitPerDay:         l.requestsPerDay,
		RemainingThisMinute: remaining(l.requestsPerMinute, len(cw.minute)),
		RemainingThisHour:   remaining(l.requestsPerHour, len(cw.hour)),
		RemainingThisDay:    remaining(l.requestsPerDay, len(cw.day)),
	}
}

// ClientCount returns how many distinct client keys are tracked
func (l *Limiter) ClientCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.clients)
}

// Reset clears all tracked requests (useful for testing)
func (l *Limiter) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.clients = make(map[string]*clientWindows)
}

func remaining(limit, used int) int {
	if limit <= 0 {
		return 0
	}
	if used > limit {
		return 0
	}
	return limit - used
}
