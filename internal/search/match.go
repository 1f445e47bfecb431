package search

import (
	"strings"

	"airea-platform/internal/models"
)

// Matches reports whether a listing satisfies the structured filters.
// Used by saved-search alerting, where candidates arrive as a batch of
// new listings rather than a database query.
func (f Filters) Matches(p *models.Property) bool {
	if len(f.PropertyTypes) > 0 {
		found := false
		for _, t := range f.PropertyTypes {
			if string(p.PropertyType) == t {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if f.ListingType != "" && string(p.ListingType) != f.ListingType {
		return false
	}
	if f.MinPrice != nil && p.Price < *f.MinPrice {
		return false
	}
	if f.MaxPrice != nil && p.Price > *f.MaxPrice {
		return false
	}
	if f.Bedrooms != nil && p.Bedrooms != *f.Bedrooms {
		return false
	}
	if f.MinBedrooms != nil && p.Bedrooms < *f.MinBedrooms {
		return false
	}
	if f.Location != "" {
		loc := strings.ToLower(f.Location)
		if !strings.Contains(strings.ToLower(p.Area), loc) &&
			!strings.Contains(strings.ToLower(p.Address), loc) &&
			!strings.Contains(strings.ToLower(p.City), loc) &&
			!strings.Contains(strings.ToLower(p.Title), loc) {
			return false
		}
	}
	return true
}
