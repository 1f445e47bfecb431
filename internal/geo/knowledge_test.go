package geo

import "testing"

// Klang Valley bounding box; every seed entry must fall inside it.
const (
	minLat = 2.8
	maxLat = 3.4
	minLng = 101.3
	maxLng = 101.9
)

func TestSeedLocations(t *testing.T) {
	if len(SeedLocations) == 0 {
		t.Fatal("seed location list must not be empty")
	}

	seen := map[string]bool{}
	for _, s := range SeedLocations {
		if s.Name == "" {
			t.Error("seed location with empty name")
		}
		if seen[s.Name] {
			t.Errorf("duplicate seed location %q", s.Name)
		}
		seen[s.Name] = true

		if s.Point.Latitude < minLat || s.Point.Latitude > maxLat ||
			s.Point.Longitude < minLng || s.Point.Longitude > maxLng {
			t.Errorf("seed location %q outside the Klang Valley: %+v", s.Name, s.Point)
		}
	}
}

func TestSeedStations(t *testing.T) {
	if len(SeedStations) == 0 {
		t.Fatal("seed station list must not be empty; proximity lookups need rows")
	}

	validTypes := map[string]bool{"mrt": true, "lrt": true, "ktm": true, "monorail": true}
	seen := map[string]bool{}
	for _, s := range SeedStations {
		if s.Name == "" || s.Line == "" {
			t.Errorf("seed station with empty name or line: %+v", s)
		}
		key := s.Name + "|" + s.Line
		if seen[key] {
			t.Errorf("duplicate seed station %q on %q", s.Name, s.Line)
		}
		seen[key] = true

		if !validTypes[s.Type] {
			t.Errorf("station %q has unknown type %q", s.Name, s.Type)
		}
		if s.Point.Latitude < minLat || s.Point.Latitude > maxLat ||
			s.Point.Longitude < minLng || s.Point.Longitude > maxLng {
			t.Errorf("station %q outside the Klang Valley: %+v", s.Name, s.Point)
		}
	}
}
