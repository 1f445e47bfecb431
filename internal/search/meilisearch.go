package search

import (
	"encoding/json"
	"fmt"
	"strings"

	"airea-platform/internal/models"

	"github.com/meilisearch/meilisearch-go"
)

type SearchClient struct {
	client *meilisearch.Client
	index  string
}

func NewSearchClient(host, apiKey string) *SearchClient {
	client := meilisearch.NewClient(meilisearch.ClientConfig{
		Host:   host,
		APIKey: apiKey,
	})

	return &SearchClient{
		client: client,
		index:  "properties",
	}
}

// PropertyDocument is the flattened shape stored in the index.
type PropertyDocument struct {
	ID           string  `json:"id"`
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	PropertyType string  `json:"property_type"`
	ListingType  string  `json:"listing_type"`
	Price        float64 `json:"price"`
	Bedrooms     int     `json:"bedrooms"`
	Bathrooms    int     `json:"bathrooms"`
	Address      string  `json:"address"`
	Area         string  `json:"area"`
	City         string  `json:"city"`
	State        string  `json:"state"`
	Featured     bool    `json:"featured"`
	Status       string  `json:"status"`
	CreatedAt    int64   `json:"created_at"`
}

func documentFromProperty(p *models.Property) PropertyDocument {
	return PropertyDocument{
		ID:           p.ID,
		Title:        p.Title,
		Description:  p.Description,
		PropertyType: string(p.PropertyType),
		ListingType:  string(p.ListingType),
		Price:        p.Price,
		Bedrooms:     p.Bedrooms,
		Bathrooms:    p.Bathrooms,
		Address:      p.Address,
		Area:         p.Area,
		City:         p.City,
		State:        p.State,
		Featured:     p.Featured,
		Status:       string(p.Status),
		CreatedAt:    p.CreatedAt.Unix(),
	}
}

// InitIndex initializes the Meilisearch index
func (s *SearchClient) InitIndex() error {
	// Create index if it doesn't exist
	_, err := s.client.CreateIndex(&meilisearch.IndexConfig{
		Uid:        s.index,
		PrimaryKey: "id",
	})
	// Ignore error if index already exists
	if err != nil && err.Error() != "index already exists" {
		return err
	}

	// Configure searchable attributes
	_, err = s.client.Index(s.index).UpdateSearchableAttributes(&[]string{
		"title",
		"description",
		"address",
		"area",
		"city",
		"state",
	})
	if err != nil {
		return err
	}

	// Configure filterable attributes
	_, err = s.client.Index(s.index).UpdateFilterableAttributes(&[]string{
		"id",
		"price",
		"property_type",
		"listing_type",
		"bedrooms",
		"bathrooms",
		"area",
		"city",
		"featured",
		"status",
	})
	if err != nil {
		return err
	}

	// Configure sortable attributes
	_, err = s.client.Index(s.index).UpdateSortableAttributes(&[]string{
		"price",
		"bedrooms",
		"created_at",
	})
	if err != nil {
		return err
	}

	return nil
}

// IndexProperty indexes a single property
func (s *SearchClient) IndexProperty(property *models.Property) error {
	_, err := s.client.Index(s.index).AddDocuments([]PropertyDocument{documentFromProperty(property)})
	return err
}

// IndexProperties indexes multiple properties
func (s *SearchClient) IndexProperties(properties []models.Property) error {
	if len(properties) == 0 {
		return nil
	}
	docs := make([]PropertyDocument, 0, len(properties))
	for i := range properties {
		docs = append(docs, documentFromProperty(&properties[i]))
	}
	_, err := s.client.Index(s.index).AddDocuments(docs)
	return err
}

// RemoveProperty deletes a property from the index
func (s *SearchClient) RemoveProperty(id string) error {
	_, err := s.client.Index(s.index).DeleteDocument(id)
	return err
}

// filterExpression builds the Meilisearch filter string for a set of
// structured filters. Only online listings are ever matched.
func filterExpression(f Filters) string {
	filters := []string{"status = 'online'"}

	if len(f.PropertyTypes) > 0 {
		typeFilters := make([]string, len(f.PropertyTypes))
		for i, t := range f.PropertyTypes {
			typeFilters[i] = fmt.Sprintf("property_type = '%s'", t)
		}
		filters = append(filters, fmt.Sprintf("(%s)", strings.Join(typeFilters, " OR ")))
	}
	if f.ListingType != "" {
		filters = append(filters, fmt.Sprintf("listing_type = '%s'", f.ListingType))
	}
	if f.MinPrice != nil {
		filters = append(filters, fmt.Sprintf("price >= %g", *f.MinPrice))
	}
	if f.MaxPrice != nil {
		filters = append(filters, fmt.Sprintf("price <= %g", *f.MaxPrice))
	}
	if f.Bedrooms != nil {
		filters = append(filters, fmt.Sprintf("bedrooms = %d", *f.Bedrooms))
	}
	if f.MinBedrooms != nil {
		filters = append(filters, fmt.Sprintf("bedrooms >= %d", *f.MinBedrooms))
	}

	return strings.Join(filters, " AND ")
}

// FilterSearch runs a full-text search constrained by structured filters.
func (s *SearchClient) FilterSearch(query string, f Filters, limit int64) ([]PropertyDocument, error) {
	if limit == 0 {
		limit = 20
	}

	searchRes, err := s.client.Index(s.index).Search(query, &meilisearch.SearchRequest{
		Limit:  limit,
		Filter: filterExpression(f),
	})
	if err != nil {
		return nil, err
	}

	var docs []PropertyDocument
	for _, hit := range searchRes.Hits {
		hitJSON, err := json.Marshal(hit)
		if err != nil {
			continue
		}

		var doc PropertyDocument
		if err := json.Unmarshal(hitJSON, &doc); err != nil {
			continue
		}

		docs = append(docs, doc)
	}

	return docs, nil
}

// GetFacets retrieves facet distribution for specified fields
func (s *SearchClient) GetFacets(facets []string) (map[string]interface{}, error) {
	searchRes, err := s.client.Index(s.index).Search("", &meilisearch.SearchRequest{
		Limit:  0,
		Facets: facets,
	})
	if err != nil {
		return nil, err
	}

	if searchRes.FacetDistribution != nil {
		if facetMap, ok := searchRes.FacetDistribution.(map[string]interface{}); ok {
			return facetMap, nil
		}
	}
	return map[string]interface{}{}, nil
}
