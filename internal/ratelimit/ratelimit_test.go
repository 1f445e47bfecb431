package ratelimit

import "testing"

func TestAllowEnforcesMinuteLimit(t *testing.T) {
	l := NewLimiter(3, 100, 1000, true)

	for i := 0; i < 3; i++ {
		if !l.Allow("1.2.3.4") {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}
	if l.Allow("1.2.3.4") {
		t.Error("4th request within a minute should be rejected")
	}
}

func TestAllowKeysAreIndependent(t *testing.T) {
	l := NewLimiter(1, 100, 1000, true)

	if !l.Allow("client-a") {
		t.Fatal("first request for client-a should pass")
	}
	if l.Allow("client-a") {
		t.Error("second request for client-a should be rejected")
	}
	if !l.Allow("client-b") {
		t.Error("client-b must not be throttled by client-a's usage")
	}
	if got := l.ClientCount(); got != 2 {
		t.Errorf("ClientCount = %d, want 2", got)
	}
}

func TestAllowDisabled(t *testing.T) {
	l := NewLimiter(1, 1, 1, false)

	for i := 0; i < 10; i++ {
		if !l.Allow("x") {
			t.Fatal("disabled limiter must always allow")
		}
	}
	if l.GetStats("x").Enabled {
		t.Error("stats should report disabled")
	}
}

func TestGetStats(t *testing.T) {
	l := NewLimiter(10, 100, 1000, true)
	l.Allow("k")
	l.Allow("k")

	s := l.GetStats("k")
	if s.RequestsLastMinute != 2 {
		t.Errorf("RequestsLastMinute = %d, want 2", s.RequestsLastMinute)
	}
	if s.RemainingThisMinute != 8 {
		t.Errorf("RemainingThisMinute = %d, want 8", s.RemainingThisMinute)
	}
	if s.LimitPerDay != 1000 {
		t.Errorf("LimitPerDay = %d", s.LimitPerDay)
	}

	// unseen keys report zero usage
	if fresh := l.GetStats("never-seen"); fresh.RequestsLastMinute != 0 || fresh.RemainingThisMinute != 10 {
		t.Errorf("unexpected stats for fresh key: %+v", fresh)
	}
}

func TestReset(t *testing.T) {
	l := NewLimiter(1, 1, 1, true)
	l.Allow("k")
	if l.Allow("k") {
		t.Fatal("should be limited before reset")
	}

	l.Reset()
	if !l.Allow("k") {
		t.Error("reset should clear tracked usage")
	}
	if got := l.ClientCount(); got != 1 {
		t.Errorf("ClientCount after reset+allow = %d, want 1", got)
	}
}
