package geo

import (
	"math"
	"testing"
)

func TestHaversineSamePoint(t *testing.T) {
	p := Point{Latitude: 3.1478, Longitude: 101.6953}
	if d := HaversineMeters(p, p); d != 0 {
		t.Errorf("distance to self = %v, want 0", d)
	}
}

func TestHaversineKnownDistance(t *testing.T) {
	// KLCC to KL Sentral, roughly 4.6km
	klcc := Point{Latitude: 3.1578, Longitude: 101.7119}
	sentral := Point{Latitude: 3.1340, Longitude: 101.6869}

	d := HaversineMeters(klcc, sentral)
	if d < 3500 || d > 5000 {
		t.Errorf("KLCC-Sentral distance = %vm, expected roughly 4km", d)
	}

	// symmetric
	if back := HaversineMeters(sentral, klcc); math.Abs(back-d) > 1e-6 {
		t.Errorf("distance not symmetric: %v vs %v", d, back)
	}
}

func TestWalkMinutes(t *testing.T) {
	tests := []struct {
		meters float64
		want   int
	}{
		{0, 0},
		{80, 1},
		{400, 5},
		{401, 6}, // always round up
		{1000, 13},
	}
	for _, tt := range tests {
		if got := WalkMinutes(tt.meters); got != tt.want {
			t.Errorf("WalkMinutes(%v) = %d, want %d", tt.meters, got, tt.want)
		}
	}
}
