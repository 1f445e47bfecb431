package search

import (
	"context"
	"testing"
)

func testDict() *Dictionary {
	d := NewDictionary()
	d.Load([]string{
		"klcc", "mont kiara", "bandar utama", "mutiara damansara",
		"damansara", "kepong", "petaling jaya", "shah alam",
		"mrt surian", "mrt sungai buloh",
		"condo", "kondo", "apartment", "house", "rumah",
	})
	return d
}

func TestParsePropertyTypes(t *testing.T) {
	tests := []struct {
		query string
		want  []string
	}{
		{"condo in KLCC", []string{"condominium"}},
		{"kondo for sale", []string{"condominium"}},
		{"apartmen disewa", []string{"apartment"}},
		{"flat near kepong", []string{"apartment"}},
		{"rumah dijual", []string{"house"}},
		{"terrace house", []string{"townhouse", "house"}},
		{"factory for rent", []string{"industrial"}},
		{"kilang disewa", []string{"industrial"}},
		{"shoplot in PJ", []string{"shop-office"}},
		{"公寓出租", []string{"apartment"}},
		{"some random words", nil},
	}

	for _, tt := range tests {
		got := ParseHeuristic(tt.query, nil)
		if len(got.PropertyTypes) != len(tt.want) {
			t.Errorf("%q: PropertyTypes got %v, want %v", tt.query, got.PropertyTypes, tt.want)
			continue
		}
		for i := range tt.want {
			if got.PropertyTypes[i] != tt.want[i] {
				t.Errorf("%q: PropertyTypes[%d] got %q, want %q", tt.query, i, got.PropertyTypes[i], tt.want[i])
			}
		}
	}
}

func TestParseListingType(t *testing.T) {
	tests := []struct {
		query string
		want  string
	}{
		{"condo for rent", "rent"},
		{"house to rent in kepong", "rent"},
		{"apartment disewa", "rent"},
		{"出租公寓", "rent"},
		{"temporary place to stay", "rent"},
		{"house for sale", "sale"},
		{"buy condo in KLCC", "sale"},
		{"rumah dijual", "sale"},
		{"good investment property", "sale"},
		{"condo in mont kiara", ""},
	}

	for _, tt := range tests {
		got := ParseHeuristic(tt.query, nil)
		if got.ListingType != tt.want {
			t.Errorf("%q: ListingType got %q, want %q", tt.query, got.ListingType, tt.want)
		}
	}
}

func TestParsePrices(t *testing.T) {
	f := func(v float64) *float64 { return &v }

	tests := []struct {
		query   string
		wantMin *float64
		wantMax *float64
	}{
		{"RM 500,000 condo", nil, f(500000)},
		{"condo under 600k", nil, f(600000)},
		{"house below rm1.2 million", nil, f(1200000)},
		{"rent under 3000", nil, f(3000)},
		{"apartment bawah 400 ribu", nil, f(400000)},
		{"condo above RM800k", f(800000), nil},
		{"from 300k to acceptable", f(300000), nil},
		{"1.5 juta bungalow", nil, f(1500000)},
		{"3 bedroom house", nil, nil},
		{"nice condo in KLCC", nil, nil},
	}

	for _, tt := range tests {
		got := ParseHeuristic(tt.query, nil)
		if !floatPtrEq(got.MinPrice, tt.wantMin) {
			t.Errorf("%q: MinPrice got %v, want %v", tt.query, fmtPtr(got.MinPrice), fmtPtr(tt.wantMin))
		}
		if !floatPtrEq(got.MaxPrice, tt.wantMax) {
			t.Errorf("%q: MaxPrice got %v, want %v", tt.query, fmtPtr(got.MaxPrice), fmtPtr(tt.wantMax))
		}
	}
}

func TestParseBedrooms(t *testing.T) {
	n := func(v int) *int { return &v }

	tests := []struct {
		query    string
		want     *int
		wantMin  *int
	}{
		{"3 bedroom condo", n(3), nil},
		{"2br apartment", n(2), nil},
		{"4 bilik rumah", n(4), nil},
		{"3室公寓", n(3), nil},
		{"studio for rent", n(0), nil},
		{"at least 3 bedrooms", nil, n(3)},
		{"condo in KLCC", nil, nil},
	}

	for _, tt := range tests {
		got := ParseHeuristic(tt.query, nil)
		if !intPtrEq(got.Bedrooms, tt.want) {
			t.Errorf("%q: Bedrooms got %v, want %v", tt.query, got.Bedrooms, tt.want)
		}
		if !intPtrEq(got.MinBedrooms, tt.wantMin) {
			t.Errorf("%q: MinBedrooms got %v, want %v", tt.query, got.MinBedrooms, tt.wantMin)
		}
	}
}

func TestParseLocation(t *testing.T) {
	dict := testDict()

	tests := []struct {
		query         string
		want          string
		wantProximity bool
	}{
		{"condo in KLCC", "klcc", false},
		{"house near mont kiara", "mont kiara", true},
		{"apartment dekat shah alam", "shah alam", true},
		{"condo near mutiara damansara under 600k", "mutiara damansara", true},
		{"2 bedroom in pj under rm300k", "pj", false},
		{"just a condo", "", false},
	}

	for _, tt := range tests {
		got := ParseHeuristic(tt.query, dict)
		if got.Location != tt.want {
			t.Errorf("%q: Location got %q, want %q", tt.query, got.Location, tt.want)
		}
		if got.Proximity != tt.wantProximity {
			t.Errorf("%q: Proximity got %v, want %v", tt.query, got.Proximity, tt.wantProximity)
		}
	}
}

func TestParsePhrasePrecedence(t *testing.T) {
	dict := testDict()

	// the longer known phrase must win over its substring
	got := ParseHeuristic("condo near mutiara damansara", dict)
	if got.Location != "mutiara damansara" {
		t.Errorf("Location got %q, want %q", got.Location, "mutiara damansara")
	}
}

func TestParseCombined(t *testing.T) {
	dict := testDict()

	got := ParseHeuristic("3 bedroom condo for rent near mont kiara under RM4,000", dict)

	if len(got.PropertyTypes) != 1 || got.PropertyTypes[0] != "condominium" {
		t.Errorf("PropertyTypes got %v", got.PropertyTypes)
	}
	if got.ListingType != "rent" {
		t.Errorf("ListingType got %q, want rent", got.ListingType)
	}
	if got.Bedrooms == nil || *got.Bedrooms != 3 {
		t.Errorf("Bedrooms got %v, want 3", got.Bedrooms)
	}
	if got.MaxPrice == nil || *got.MaxPrice != 4000 {
		t.Errorf("MaxPrice got %v, want 4000", fmtPtr(got.MaxPrice))
	}
	if got.Location != "mont kiara" {
		t.Errorf("Location got %q, want mont kiara", got.Location)
	}
	if !got.Proximity {
		t.Error("Proximity should be true")
	}
}

type staticCompleter struct {
	reply string
	err   error
	calls int
}

func (s *staticCompleter) Complete(ctx context.Context, system, user string) (string, error) {
	s.calls++
	return s.reply, s.err
}

func TestParseAIMerge(t *testing.T) {
	completer := &staticCompleter{
		reply: "```json\n{\"propertyType\": [\"condominium\"], \"listingType\": \"rent\", \"maxPrice\": 2500, \"location\": \"cyberjaya\"}\n```",
	}

	base := ParseHeuristic("somewhere nice to stay", nil)
	merged, used := ParseAI(context.Background(), completer, "somewhere nice to stay", base)

	if !used {
		t.Fatal("expected AI result to be used")
	}
	if len(merged.PropertyTypes) != 1 || merged.PropertyTypes[0] != "condominium" {
		t.Errorf("PropertyTypes got %v", merged.PropertyTypes)
	}
	if merged.ListingType != "rent" {
		t.Errorf("ListingType got %q", merged.ListingType)
	}
	if merged.MaxPrice == nil || *merged.MaxPrice != 2500 {
		t.Errorf("MaxPrice got %v", fmtPtr(merged.MaxPrice))
	}
	if merged.Location != "cyberjaya" {
		t.Errorf("Location got %q", merged.Location)
	}
}

func TestParseAIDoesNotOverrideHeuristics(t *testing.T) {
	completer := &staticCompleter{
		reply: `{"listingType": "sale", "maxPrice": 999999, "location": "penang"}`,
	}

	base := ParseHeuristic("condo for rent in klcc under 3000", nil)
	merged, _ := ParseAI(context.Background(), completer, "condo for rent in klcc under 3000", base)

	if merged.ListingType != "rent" {
		t.Errorf("ListingType got %q, heuristic value must win", merged.ListingType)
	}
	if merged.MaxPrice == nil || *merged.MaxPrice != 3000 {
		t.Errorf("MaxPrice got %v, heuristic value must win", fmtPtr(merged.MaxPrice))
	}
	if merged.Location != "klcc" {
		t.Errorf("Location got %q, heuristic value must win", merged.Location)
	}
}

func TestParseAIBadJSON(t *testing.T) {
	completer := &staticCompleter{reply: "sorry, I cannot help with that"}

	base := ParseHeuristic("condo in klcc", nil)
	merged, used := ParseAI(context.Background(), completer, "condo in klcc", base)

	if used {
		t.Error("malformed reply must not count as used")
	}
	if merged.Location != base.Location {
		t.Errorf("base filters must be preserved, got %q", merged.Location)
	}
}

func floatPtrEq(a, b *float64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func intPtrEq(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func fmtPtr(p *float64) interface{} {
	if p == nil {
		return nil
	}
	return *p
}
