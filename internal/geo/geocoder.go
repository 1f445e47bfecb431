package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// LocationStore is the slice of the storage layer the geocoder needs.
type LocationStore interface {
	// LookupKnownLocation resolves an exact (case-insensitive) name match.
	LookupKnownLocation(name string) (*Point, error)
	// FuzzyKnownLocation resolves a substring match against the knowledge table.
	FuzzyKnownLocation(name string) (*Point, string, error)
	// SaveKnownLocation persists an externally resolved location.
	SaveKnownLocation(name string, p Point, kind string) error
}

// Geocoder resolves a location string to coordinates through an ordered
// chain of resolvers: local knowledge table, external HTTP provider,
// fuzzy table fallback. Each step is best-effort.
type Geocoder struct {
	store   LocationStore
	client  *http.Client
	baseURL string
}

// Result is a resolved location
type Result struct {
	Location string `json:"location"`
	Point    Point  `json:"point"`
	Source   string `json:"source"` // known, external, fallback
}

// NewGeocoder creates a geocoder backed by the given store and provider URL.
func NewGeocoder(store LocationStore, baseURL string, timeout time.Duration) *Geocoder {
	return &Geocoder{
		store:   store,
		client:  &http.Client{Timeout: timeout},
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}
}

// Resolve runs the resolver chain for a location string.
// Returns nil without error when nothing in the chain matches.
func (g *Geocoder) Resolve(ctx context.Context, location string) (*Result, error) {
	location = strings.TrimSpace(strings.ToLower(location))
	if location == "" {
		return nil, nil
	}

	// 1. Local knowledge table
	if g.store != nil {
		if p, err := g.store.LookupKnownLocation(location); err == nil && p != nil {
			return &Result{Location: location, Point: *p, Source: "known"}, nil
		}
	}

	// 2. External provider
	if p, err := g.resolveExternal(ctx, location); err != nil {
		log.Printf("[geocode] external lookup failed location=%q: %v", location, err)
	} else if p != nil {
		if g.store != nil {
			if err := g.store.SaveKnownLocation(location, *p, "area"); err != nil {
				log.Printf("[geocode] failed to persist location=%q: %v", location, err)
			}
		}
		return &Result{Location: location, Point: *p, Source: "external"}, nil
	}

	// 3. Fuzzy fallback against the knowledge table
	if g.store != nil {
		if p, matched, err := g.store.FuzzyKnownLocation(location); err == nil && p != nil {
			return &Result{Location: matched, Point: *p, Source: "fallback"}, nil
		}
	}

	return nil, nil
}

// externalResponse matches the Nominatim-style search response
type externalResponse []struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

func (g *Geocoder) resolveExternal(ctx context.Context, location string) (*Point, error) {
	if g.baseURL == "" {
		return nil, nil
	}

	// Bias results toward Malaysia
	reqURL := fmt.Sprintf("%s/search?q=%s&countrycodes=my&format=json&limit=1",
		g.baseURL, url.QueryEscape(location))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "airea-platform/1.0")

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geocode provider returned status %d", resp.StatusCode)
	}

	var results externalResponse
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid latitude %q", results[0].Lat)
	}
	lon, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid longitude %q", results[0].Lon)
	}

	return &Point{Latitude: lat, Longitude: lon}, nil
}
