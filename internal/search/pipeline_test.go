package search

import (
	"context"
	"errors"
	"testing"
	"time"

	"airea-platform/internal/cache"
	"airea-platform/internal/database"
	"airea-platform/internal/geo"
	"airea-platform/internal/models"
)

type fakeStore struct {
	properties []models.Property
	nearby     []database.PropertyDistance
	titles     []database.TitleType
	stations   []models.StationProximity

	searchCalls int
	nearbyCalls int
	lastFilters database.PropertyFilters
	lastCenter  geo.Point
	lastRadius  float64
	lastIDs     []string

	spendOK    bool
	spendCalls int
}

func (s *fakeStore) SearchOnlineProperties(f database.PropertyFilters, limit int) ([]models.Property, error) {
	s.searchCalls++
	s.lastFilters = f
	return s.properties, nil
}

func (s *fakeStore) NearbyOnlineProperties(f database.PropertyFilters, center geo.Point, radiusMeters float64, limit int) ([]database.PropertyDistance, error) {
	s.nearbyCalls++
	s.lastFilters = f
	s.lastCenter = center
	s.lastRadius = radiusMeters
	return s.nearby, nil
}

func (s *fakeStore) GetPropertiesByIDs(ids []string) ([]models.Property, error) {
	s.lastIDs = ids
	var matched []models.Property
	for _, id := range ids {
		for _, p := range s.properties {
			if p.ID == id {
				matched = append(matched, p)
			}
		}
	}
	return matched, nil
}

func (s *fakeStore) GetDistinctTitles() ([]database.TitleType, error) { return s.titles, nil }
func (s *fakeStore) KnownLocationNames() ([]string, error)           { return nil, nil }
func (s *fakeStore) GetStations() ([]models.TransportStation, error) { return nil, nil }

func (s *fakeStore) NearestStations(center geo.Point, limit int) ([]models.StationProximity, error) {
	return s.stations, nil
}

func (s *fakeStore) SpendAICredit(agentID string) (bool, error) {
	s.spendCalls++
	return s.spendOK, nil
}

type fakeTextSearcher struct {
	docs      []PropertyDocument
	err       error
	calls     int
	lastQuery string
}

func (s *fakeTextSearcher) FilterSearch(query string, f Filters, limit int64) ([]PropertyDocument, error) {
	s.calls++
	s.lastQuery = query
	return s.docs, s.err
}

type fakeResolver struct {
	results map[string]*geo.Result
}

func (r *fakeResolver) Resolve(ctx context.Context, location string) (*geo.Result, error) {
	return r.results[location], nil
}

func TestSearchKeywordRanking(t *testing.T) {
	store := &fakeStore{
		properties: []models.Property{
			{ID: "p1", Title: "Subang Villa", PropertyType: "house"},
			{ID: "p2", Title: "Kepong Heights Condo", PropertyType: "condominium"},
		},
	}
	p := NewPipeline(store, nil, nil, nil, nil, nil, 0)

	resp, err := p.Search(context.Background(), Request{Query: "kepong condo", SearchType: "keyword"})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}

	if resp.Count != 2 {
		t.Fatalf("Count = %d, want 2", resp.Count)
	}
	if resp.Properties[0].Title != "Kepong Heights Condo" {
		t.Errorf("best match should rank first, got %q", resp.Properties[0].Title)
	}
	if resp.Properties[0].Score <= resp.Properties[1].Score {
		t.Errorf("scores not descending: %d then %d", resp.Properties[0].Score, resp.Properties[1].Score)
	}
	if len(store.lastFilters.PropertyTypes) != 1 || store.lastFilters.PropertyTypes[0] != "condominium" {
		t.Errorf("property type filter not forwarded, got %v", store.lastFilters.PropertyTypes)
	}
}

func TestSearchPrefersTextIndex(t *testing.T) {
	store := &fakeStore{
		properties: []models.Property{
			{ID: "p1", Title: "Kepong Heights Condo", PropertyType: "condominium"},
			{ID: "p2", Title: "Kepong Villa", PropertyType: "house"},
		},
	}
	searcher := &fakeTextSearcher{
		docs: []PropertyDocument{{ID: "p1"}},
	}
	p := NewPipeline(store, searcher, nil, nil, nil, nil, 0)

	resp, err := p.Search(context.Background(), Request{Query: "kepong condo"})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}

	if searcher.calls != 1 {
		t.Fatalf("index queried %d times, want 1", searcher.calls)
	}
	if store.searchCalls != 0 {
		t.Error("database text search must not run when the index answers")
	}
	if len(store.lastIDs) != 1 || store.lastIDs[0] != "p1" {
		t.Errorf("index hits not hydrated from the store, ids=%v", store.lastIDs)
	}
	if resp.Count != 1 || resp.Properties[0].ID != "p1" {
		t.Errorf("unexpected results %+v", resp.Properties)
	}
}

func TestSearchIndexFailureFallsBack(t *testing.T) {
	store := &fakeStore{
		properties: []models.Property{{ID: "p1", Title: "Kepong Condo"}},
	}
	searcher := &fakeTextSearcher{err: errors.New("index unavailable")}
	p := NewPipeline(store, searcher, nil, nil, nil, nil, 0)

	resp, err := p.Search(context.Background(), Request{Query: "kepong condo"})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if store.searchCalls != 1 {
		t.Errorf("database fallback not used, searchCalls=%d", store.searchCalls)
	}
	if resp.Count != 1 {
		t.Errorf("Count = %d, want 1", resp.Count)
	}
}

func TestSearchCachesResponses(t *testing.T) {
	store := &fakeStore{
		properties: []models.Property{{ID: "p1", Title: "Kepong Condo"}},
	}
	p := NewPipeline(store, nil, nil, nil, nil, cache.New(time.Minute), 0)

	first, err := p.Search(context.Background(), Request{Query: "kepong condo"})
	if err != nil {
		t.Fatalf("first Search: %v", err)
	}
	if first.Cached {
		t.Error("first response must not be marked cached")
	}

	// casing and whitespace normalize to the same cache entry
	second, err := p.Search(context.Background(), Request{Query: "  Kepong   CONDO "})
	if err != nil {
		t.Fatalf("second Search: %v", err)
	}
	if !second.Cached {
		t.Error("second response should come from cache")
	}
	if store.searchCalls != 1 {
		t.Errorf("store queried %d times, want 1", store.searchCalls)
	}
}

func TestSearchProximity(t *testing.T) {
	near := 320.0
	far := 1800.0
	store := &fakeStore{
		nearby: []database.PropertyDistance{
			{Property: models.Property{ID: "far", Title: "Mont Kiara Condo"}, DistanceMeters: far},
			{Property: models.Property{ID: "near", Title: "Mont Kiara Condo"}, DistanceMeters: near},
		},
		spendOK: true,
	}
	resolver := &fakeResolver{results: map[string]*geo.Result{
		"mont kiara": {Location: "mont kiara", Point: geo.Point{Latitude: 3.17, Longitude: 101.65}, Source: "known"},
	}}
	p := NewPipeline(store, nil, resolver, nil, nil, nil, 0)

	resp, err := p.Search(context.Background(), Request{Query: "condo near mont kiara"})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}

	if store.nearbyCalls != 1 || store.searchCalls != 0 {
		t.Fatalf("expected the nearby query path, nearby=%d search=%d", store.nearbyCalls, store.searchCalls)
	}
	if store.lastRadius != ProximityRadiusMeters {
		t.Errorf("radius = %v, want %v", store.lastRadius, ProximityRadiusMeters)
	}
	if resp.Location == nil || resp.Location.Source != "known" {
		t.Fatalf("resolved location missing from response: %+v", resp.Location)
	}

	// equal scores, nearer property wins
	if resp.Properties[0].ID != "near" {
		t.Errorf("nearest property should rank first, got %q", resp.Properties[0].ID)
	}
	if resp.Properties[0].DistanceMeters == nil || *resp.Properties[0].DistanceMeters != near {
		t.Errorf("distance not attached: %v", resp.Properties[0].DistanceMeters)
	}
}

func TestSearchUnresolvableNearMatchesNothing(t *testing.T) {
	store := &fakeStore{
		properties: []models.Property{{ID: "p1", Title: "Anything"}},
	}
	p := NewPipeline(store, nil, &fakeResolver{results: map[string]*geo.Result{}}, nil, nil, nil, 0)

	resp, err := p.Search(context.Background(), Request{Query: "condo near nowhereland"})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}

	if resp.Count != 0 || len(resp.Properties) != 0 {
		t.Errorf("unresolvable proximity search must return no results, got %d", resp.Count)
	}
	if store.searchCalls != 0 || store.nearbyCalls != 0 {
		t.Error("store should not be queried when the location cannot be resolved")
	}
}

func TestSearchAICreditGate(t *testing.T) {
	store := &fakeStore{spendOK: false}
	completer := &staticCompleter{reply: `{"listingType": "rent"}`}
	p := NewPipeline(store, nil, nil, nil, completer, nil, time.Second)

	resp, err := p.Search(context.Background(), Request{Query: "somewhere cozy", SearchType: "ai", AgentID: "agent-1"})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if store.spendCalls != 1 {
		t.Errorf("spendCalls = %d, want 1", store.spendCalls)
	}
	if completer.calls != 0 || resp.AIUsed {
		t.Error("agent without credits must fall back to heuristics only")
	}

	// anonymous searches are not charged
	completer.calls = 0
	resp, err = p.Search(context.Background(), Request{Query: "somewhere cozy", SearchType: "ai"})
	if err != nil {
		t.Fatalf("anonymous Search: %v", err)
	}
	if store.spendCalls != 1 {
		t.Errorf("anonymous search must not spend credits, spendCalls = %d", store.spendCalls)
	}
	if completer.calls != 1 || !resp.AIUsed {
		t.Errorf("anonymous AI search should call the completer, calls=%d aiUsed=%v", completer.calls, resp.AIUsed)
	}
}

func TestSearchAttachesStations(t *testing.T) {
	lat, lng := 3.15, 101.7
	store := &fakeStore{
		properties: []models.Property{
			{ID: "p1", Title: "KLCC Suite", Latitude: &lat, Longitude: &lng},
			{ID: "p2", Title: "KLCC Loft"},
		},
		stations: []models.StationProximity{
			{Station: models.TransportStation{Name: "KLCC", StationType: "lrt"}, DistanceMeters: 400, WalkMinutes: 5},
		},
	}
	p := NewPipeline(store, nil, nil, nil, nil, nil, 0)

	resp, err := p.Search(context.Background(), Request{Query: "klcc suite"})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}

	if len(resp.Properties[0].Stations) != 1 {
		t.Errorf("geocoded property should carry stations, got %d", len(resp.Properties[0].Stations))
	}
	if resp.Properties[1].Stations != nil {
		t.Error("property without coordinates must not carry stations")
	}
}

func TestAutocompleteOrderAndLimit(t *testing.T) {
	store := &fakeStore{
		titles: []database.TitleType{
			{Title: "Casa Indah Residence", PropertyType: "condominium"},
			{Title: "Casa Apartment", PropertyType: "apartment"},
			{Title: "Casa House", PropertyType: "house"},
			{Title: "Totally Unrelated Warehouse", PropertyType: "industrial"},
		},
	}
	p := NewPipeline(store, nil, nil, nil, nil, nil, 0)

	got, err := p.Autocomplete("casa")
	if err != nil {
		t.Fatalf("Autocomplete: %v", err)
	}

	want := []string{"Casa Apartment", "Casa House", "Casa Indah Residence"}
	if len(got) != len(want) {
		t.Fatalf("got %d suggestions, want %d: %+v", len(got), len(want), got)
	}
	for i, w := range want {
		if got[i].Value != w {
			t.Errorf("suggestion[%d] = %q, want %q", i, got[i].Value, w)
		}
	}
}

func TestAutocompleteCapsSuggestions(t *testing.T) {
	store := &fakeStore{}
	for i := 0; i < 8; i++ {
		store.titles = append(store.titles, database.TitleType{
			Title:        "Vista Apartment " + string(rune('A'+i)),
			PropertyType: "apartment",
		})
	}
	p := NewPipeline(store, nil, nil, nil, nil, nil, 0)

	got, err := p.Autocomplete("vista apartment")
	if err != nil {
		t.Fatalf("Autocomplete: %v", err)
	}
	if len(got) != suggestionLimit {
		t.Errorf("got %d suggestions, want %d", len(got), suggestionLimit)
	}
}

func TestAutocompleteEmptyQuery(t *testing.T) {
	p := NewPipeline(&fakeStore{}, nil, nil, nil, nil, nil, 0)

	got, err := p.Autocomplete("   ")
	if err != nil {
		t.Fatalf("Autocomplete: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("empty query must return an empty, non-nil slice, got %v", got)
	}
}
