package models

import "testing"

func TestCanGoOnline(t *testing.T) {
	tests := []struct {
		name       string
		price      float64
		imageCount int
		want       bool
	}{
		{"enough images and price", 450000, 3, true},
		{"more than enough images", 450000, 8, true},
		{"too few images", 450000, 2, false},
		{"no images", 450000, 0, false},
		{"zero price", 0, 5, false},
		{"negative price", -1, 5, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Property{Price: tt.price}
			if got := p.CanGoOnline(tt.imageCount); got != tt.want {
				t.Errorf("CanGoOnline(%d) with price %v = %v, want %v",
					tt.imageCount, tt.price, got, tt.want)
			}
		})
	}
}

func TestValidPropertyStatus(t *testing.T) {
	for _, s := range []PropertyStatus{
		PropertyStatusDraft, PropertyStatusOnline, PropertyStatusOffline,
		PropertyStatusExpired, PropertyStatusSold, PropertyStatusRented,
	} {
		if !ValidPropertyStatus(s) {
			t.Errorf("ValidPropertyStatus(%q) = false", s)
		}
	}
	for _, s := range []PropertyStatus{"", "published", "ONLINE"} {
		if ValidPropertyStatus(s) {
			t.Errorf("ValidPropertyStatus(%q) = true", s)
		}
	}
}

func TestValidPropertyType(t *testing.T) {
	if !ValidPropertyType(PropertyTypeShopOffice) || !ValidPropertyType(PropertyTypeLand) {
		t.Error("enum members should be valid")
	}
	for _, pt := range []PropertyType{"", "castle", "Condominium"} {
		if ValidPropertyType(pt) {
			t.Errorf("ValidPropertyType(%q) = true", pt)
		}
	}
}

func TestIsOnlineAndHasCoordinates(t *testing.T) {
	lat, lng := 3.15, 101.7

	p := Property{Status: PropertyStatusOnline, Latitude: &lat, Longitude: &lng}
	if !p.IsOnline() || !p.HasCoordinates() {
		t.Errorf("online geocoded property misreported: %v %v", p.IsOnline(), p.HasCoordinates())
	}

	q := Property{Status: PropertyStatusDraft, Latitude: &lat}
	if q.IsOnline() || q.HasCoordinates() {
		t.Errorf("draft half-geocoded property misreported: %v %v", q.IsOnline(), q.HasCoordinates())
	}
}
