package search

import (
	"context"
	"log"
	"sort"
	"strings"
	"time"

	"airea-platform/internal/ai"
	"airea-platform/internal/cache"
	"airea-platform/internal/database"
	"airea-platform/internal/geo"
	"airea-platform/internal/models"
)

const (
	// radius for "near X" searches
	ProximityRadiusMeters = 5000.0

	candidateLimit   = 50
	defaultPageLimit = 20

	// minimum fuzzy score for an autocomplete suggestion
	suggestionMinScore = 40
	suggestionLimit    = 5

	stationsPerResult = 2
)

// Store is the persistence surface the pipeline needs.
type Store interface {
	SearchOnlineProperties(f database.PropertyFilters, limit int) ([]models.Property, error)
	GetPropertiesByIDs(ids []string) ([]models.Property, error)
	NearbyOnlineProperties(f database.PropertyFilters, center geo.Point, radiusMeters float64, limit int) ([]database.PropertyDistance, error)
	GetDistinctTitles() ([]database.TitleType, error)
	KnownLocationNames() ([]string, error)
	GetStations() ([]models.TransportStation, error)
	NearestStations(center geo.Point, limit int) ([]models.StationProximity, error)
	SpendAICredit(agentID string) (bool, error)
}

// Resolver turns a location name into coordinates.
type Resolver interface {
	Resolve(ctx context.Context, location string) (*geo.Result, error)
}

// TextSearcher is the full-text index queried on the keyword path.
// Nil means no index is configured and matching runs in the database.
type TextSearcher interface {
	FilterSearch(query string, f Filters, limit int64) ([]PropertyDocument, error)
}

// Pipeline runs natural-language queries through correction, expansion,
// filter extraction, geocoding and ranking.
type Pipeline struct {
	store     Store
	searcher  TextSearcher
	geocoder  Resolver
	expander  *Expander
	completer ai.Completer
	dict      *Dictionary
	respCache *cache.Cache
	aiTimeout time.Duration
}

func NewPipeline(store Store, searcher TextSearcher, geocoder Resolver, expander *Expander, completer ai.Completer, respCache *cache.Cache, aiTimeout time.Duration) *Pipeline {
	if aiTimeout <= 0 {
		aiTimeout = 2 * time.Second
	}
	return &Pipeline{
		store:     store,
		searcher:  searcher,
		geocoder:  geocoder,
		expander:  expander,
		completer: completer,
		dict:      NewDictionary(),
		respCache: respCache,
		aiTimeout: aiTimeout,
	}
}

// Dictionary exposes the correction dictionary, mainly for handlers that
// report its size.
func (p *Pipeline) Dictionary() *Dictionary {
	return p.dict
}

// ReloadDictionary rebuilds the correction vocabulary from known
// locations, station names and the property-type vocabulary.
func (p *Pipeline) ReloadDictionary() error {
	terms, err := p.store.KnownLocationNames()
	if err != nil {
		return err
	}

	stations, err := p.store.GetStations()
	if err != nil {
		return err
	}
	for _, st := range stations {
		terms = append(terms, st.Name)
	}

	for syn := range typeSynonyms {
		if isASCII(syn) {
			terms = append(terms, syn)
		}
	}
	terms = append(terms,
		"rent", "sale", "bedroom", "bedrooms", "studio",
		"near", "under", "below", "above",
	)

	p.dict.Load(terms)
	return nil
}

// Request is one search invocation.
type Request struct {
	Query      string `json:"query"`
	SearchType string `json:"searchType"` // "keyword" or "ai"
	AgentID    string `json:"agentId,omitempty"`
	Limit      int    `json:"limit,omitempty"`
}

// RankedProperty is a result with its relevance annotations.
type RankedProperty struct {
	models.Property
	Score          int                       `json:"score"`
	DistanceMeters *float64                  `json:"distanceMeters,omitempty"`
	Stations       []models.StationProximity `json:"stations,omitempty"`
}

// Response is the full search outcome.
type Response struct {
	Query          string           `json:"query"`
	CorrectedQuery string           `json:"correctedQuery,omitempty"`
	ExpandedQuery  string           `json:"expandedQuery,omitempty"`
	Filters        Filters          `json:"filters"`
	Location       *geo.Result      `json:"location,omitempty"`
	Count          int              `json:"count"`
	Properties     []RankedProperty `json:"properties"`
	AIUsed         bool             `json:"aiUsed"`
	Cached         bool             `json:"cached"`
}

// Search runs the full pipeline for one query.
func (p *Pipeline) Search(ctx context.Context, req Request) (*Response, error) {
	query := normalize(req.Query)
	if req.Limit <= 0 || req.Limit > candidateLimit {
		req.Limit = defaultPageLimit
	}

	cacheKey := "search:" + req.SearchType + ":" + query
	if p.respCache != nil {
		if v, ok := p.respCache.Get(cacheKey); ok {
			if resp, ok := v.(*Response); ok {
				out := *resp
				out.Cached = true
				return &out, nil
			}
		}
	}

	resp := &Response{Query: query}

	corrected := p.dict.CorrectQuery(query)
	if corrected != query {
		resp.CorrectedQuery = corrected
	}

	expanded := corrected
	if p.expander != nil {
		expanded = p.expander.ExpandQuery(ctx, corrected, p.dict)
		if expanded != corrected {
			resp.ExpandedQuery = expanded
		}
	}

	filters := ParseHeuristic(expanded, p.dict)
	if req.SearchType == "ai" && p.completer != nil {
		if p.spendCredit(req.AgentID) {
			aiCtx, cancel := context.WithTimeout(ctx, p.aiTimeout)
			filters, resp.AIUsed = ParseAI(aiCtx, p.completer, expanded, filters)
			cancel()
		}
	}
	resp.Filters = filters

	var center *geo.Point
	if filters.Location != "" && p.geocoder != nil {
		loc, err := p.geocoder.Resolve(ctx, filters.Location)
		if err != nil {
			log.Printf("geocode failed location=%q err=%v", filters.Location, err)
		}
		if loc != nil {
			resp.Location = loc
			center = &loc.Point
		} else if filters.Proximity {
			// "near X" with an unresolvable X matches nothing
			resp.Properties = []RankedProperty{}
			p.cacheResponse(cacheKey, resp)
			return resp, nil
		}
	}

	ranked, err := p.fetchAndRank(expanded, filters, center)
	if err != nil {
		return nil, err
	}

	if len(ranked) > req.Limit {
		ranked = ranked[:req.Limit]
	}
	p.attachStations(ranked)

	resp.Count = len(ranked)
	resp.Properties = ranked
	p.cacheResponse(cacheKey, resp)
	return resp, nil
}

func (p *Pipeline) spendCredit(agentID string) bool {
	if agentID == "" {
		return true
	}
	ok, err := p.store.SpendAICredit(agentID)
	if err != nil {
		log.Printf("credit spend failed agent=%s err=%v", agentID, err)
		return false
	}
	if !ok {
		log.Printf("agent out of ai credits agent=%s", agentID)
	}
	return ok
}

func (p *Pipeline) cacheResponse(key string, resp *Response) {
	if p.respCache != nil {
		p.respCache.Set(key, resp)
	}
}

func (p *Pipeline) fetchAndRank(query string, filters Filters, center *geo.Point) ([]RankedProperty, error) {
	dbFilters := database.PropertyFilters{
		PropertyTypes: filters.PropertyTypes,
		ListingType:   filters.ListingType,
		MinPrice:      filters.MinPrice,
		MaxPrice:      filters.MaxPrice,
		Bedrooms:      filters.Bedrooms,
		MinBedrooms:   filters.MinBedrooms,
	}

	var ranked []RankedProperty

	if center != nil {
		nearby, err := p.store.NearbyOnlineProperties(dbFilters, *center, ProximityRadiusMeters, candidateLimit)
		if err != nil {
			return nil, err
		}
		for _, pd := range nearby {
			d := pd.DistanceMeters
			ranked = append(ranked, RankedProperty{
				Property:       pd.Property,
				Score:          BestScore(query, pd.Property.Title),
				DistanceMeters: &d,
			})
		}
	} else {
		if filters.Location != "" {
			dbFilters.Area = filters.Location
		}
		properties, err := p.textCandidates(query, filters, dbFilters)
		if err != nil {
			return nil, err
		}
		for _, prop := range properties {
			ranked = append(ranked, RankedProperty{
				Property: prop,
				Score:    BestScore(query, prop.Title),
			})
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		if ranked[i].DistanceMeters != nil && ranked[j].DistanceMeters != nil &&
			*ranked[i].DistanceMeters != *ranked[j].DistanceMeters {
			return *ranked[i].DistanceMeters < *ranked[j].DistanceMeters
		}
		return ranked[i].Featured && !ranked[j].Featured
	})

	return ranked, nil
}

// textCandidates fetches keyword-path candidates: the full-text index
// when one is configured, the database otherwise. Index failures fall
// back to the database rather than failing the search.
func (p *Pipeline) textCandidates(query string, filters Filters, dbFilters database.PropertyFilters) ([]models.Property, error) {
	if p.searcher != nil {
		docs, err := p.searcher.FilterSearch(query, filters, candidateLimit)
		if err != nil {
			log.Printf("index search failed, falling back to database err=%v", err)
		} else {
			ids := make([]string, len(docs))
			for i, d := range docs {
				ids[i] = d.ID
			}
			return p.store.GetPropertiesByIDs(ids)
		}
	}
	return p.store.SearchOnlineProperties(dbFilters, candidateLimit)
}

// attachStations annotates results with their nearest transport stations.
func (p *Pipeline) attachStations(ranked []RankedProperty) {
	for i := range ranked {
		prop := ranked[i].Property
		if prop.Latitude == nil || prop.Longitude == nil {
			continue
		}
		stations, err := p.store.NearestStations(geo.Point{
			Latitude:  *prop.Latitude,
			Longitude: *prop.Longitude,
		}, stationsPerResult)
		if err != nil {
			log.Printf("station lookup failed property=%s err=%v", prop.ID, err)
			continue
		}
		ranked[i].Stations = stations
	}
}

// Suggestion is one autocomplete entry.
type Suggestion struct {
	Value        string `json:"value"`
	PropertyType string `json:"propertyType"`
	Score        int    `json:"score"`
}

// typePriority orders suggestion ties by property type.
var typePriority = map[string]int{
	"apartment":   1,
	"house":       2,
	"condominium": 3,
}

// Autocomplete fuzzy-matches the query against online listing titles.
func (p *Pipeline) Autocomplete(query string) ([]Suggestion, error) {
	query = normalize(query)
	if query == "" {
		return []Suggestion{}, nil
	}

	titles, err := p.store.GetDistinctTitles()
	if err != nil {
		return nil, err
	}

	var suggestions []Suggestion
	for _, t := range titles {
		score := BestScore(query, t.Title)
		if score < suggestionMinScore {
			continue
		}
		suggestions = append(suggestions, Suggestion{
			Value:        t.Title,
			PropertyType: t.PropertyType,
			Score:        score,
		})
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		pi, pj := suggestionPriority(suggestions[i].PropertyType), suggestionPriority(suggestions[j].PropertyType)
		if pi != pj {
			return pi < pj
		}
		return suggestions[i].Score > suggestions[j].Score
	})

	if len(suggestions) > suggestionLimit {
		suggestions = suggestions[:suggestionLimit]
	}
	if suggestions == nil {
		suggestions = []Suggestion{}
	}
	return suggestions, nil
}

func suggestionPriority(propertyType string) int {
	if pr, ok := typePriority[propertyType]; ok {
		return pr
	}
	return 4
}

func normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(strings.TrimSpace(s))), " ")
}
