package handlers

import (
	"log"
	"net/http"
	"strconv"

	"airea-platform/internal/database"
	"airea-platform/internal/geo"
	"airea-platform/internal/search"

	"github.com/gin-gonic/gin"
)

// SearchHandler serves the natural-language search surface: AI search,
// streaming search, autocomplete, geocoding and location utilities.
type SearchHandler struct {
	pipeline *search.Pipeline
	expander *search.Expander
	geocoder *geo.Geocoder
	store    *database.GormDB
	searcher *search.SearchClient
}

func NewSearchHandler(pipeline *search.Pipeline, expander *search.Expander, geocoder *geo.Geocoder, store *database.GormDB, searcher *search.SearchClient) *SearchHandler {
	return &SearchHandler{
		pipeline: pipeline,
		expander: expander,
		geocoder: geocoder,
		store:    store,
		searcher: searcher,
	}
}

// Autocomplete returns fuzzy title suggestions for a partial query
func (h *SearchHandler) Autocomplete(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "q parameter is required"})
		return
	}

	suggestions, err := h.pipeline.Autocomplete(query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"query":       query,
		"suggestions": suggestions,
	})
}

// AISearch runs the full query-understanding pipeline
func (h *SearchHandler) AISearch(c *gin.Context) {
	var req search.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query is required"})
		return
	}
	if req.SearchType == "" {
		req.SearchType = "keyword"
	}

	resp, err := h.pipeline.Search(c.Request.Context(), req)
	if err != nil {
		log.Printf("search failed query=%q err=%v", req.Query, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "search failed"})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// AISearchStream runs the pipeline and streams progress as SSE events
func (h *SearchHandler) AISearchStream(c *gin.Context) {
	req := search.Request{
		Query:      c.Query("q"),
		SearchType: c.DefaultQuery("searchType", "keyword"),
		AgentID:    c.Query("agentId"),
	}
	if limitStr := c.Query("limit"); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil {
			req.Limit = limit
		}
	}
	if req.Query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "q parameter is required"})
		return
	}

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	emit := func(event string, data interface{}) bool {
		select {
		case <-c.Request.Context().Done():
			return false
		default:
		}
		c.SSEvent(event, data)
		c.Writer.Flush()
		return true
	}

	if err := h.pipeline.Stream(c.Request.Context(), req, emit); err != nil {
		log.Printf("stream search failed query=%q err=%v", req.Query, err)
		emit("error", gin.H{"error": "search failed"})
	}
}

// Geocode resolves a location name to coordinates
func (h *SearchHandler) Geocode(c *gin.Context) {
	location := c.Query("location")
	if location == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "location parameter is required"})
		return
	}

	result, err := h.geocoder.Resolve(c.Request.Context(), location)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if result == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "location could not be resolved"})
		return
	}

	c.JSON(http.StatusOK, result)
}

// ExpandLocation resolves a location abbreviation
func (h *SearchHandler) ExpandLocation(c *gin.Context) {
	short := c.Query("short")
	if short == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "short parameter is required"})
		return
	}

	expansion, source := h.expander.Expand(c.Request.Context(), short)
	if expansion == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "no expansion found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"short":     short,
		"expansion": expansion,
		"source":    source,
	})
}

// KnownLocations lists the location knowledge table
func (h *SearchHandler) KnownLocations(c *gin.Context) {
	locations, err := h.store.ListKnownLocations()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"locations": locations,
		"count":     len(locations),
	})
}

// Abbreviations lists the learned abbreviation table
func (h *SearchHandler) Abbreviations(c *gin.Context) {
	rows, err := h.store.ListAbbreviations()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"abbreviations": rows,
		"count":         len(rows),
	})
}

// Reindex pushes all online listings into the search index and rebuilds
// the typo-correction dictionary
func (h *SearchHandler) Reindex(c *gin.Context) {
	properties, err := h.store.GetAllOnlineProperties()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	indexed := 0
	if h.searcher != nil {
		if err := h.searcher.IndexProperties(properties); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		indexed = len(properties)
	}

	if err := h.pipeline.ReloadDictionary(); err != nil {
		log.Printf("dictionary reload failed: %v", err)
	}

	c.JSON(http.StatusOK, gin.H{
		"indexed":         indexed,
		"dictionary_size": h.pipeline.Dictionary().Size(),
	})
}

// Facets returns index-side facet distributions for the filter UI
func (h *SearchHandler) Facets(c *gin.Context) {
	if h.searcher == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "search index not configured"})
		return
	}

	facets, err := h.searcher.GetFacets([]string{
		"property_type", "listing_type", "bedrooms", "area", "city",
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"facets": facets})
}

// Transport returns the nearest stations for a listing with walk times
func (h *SearchHandler) Transport(c *gin.Context) {
	id := c.Param("id")

	property, err := h.store.GetPropertyByID(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if property == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "property not found"})
		return
	}
	if property.Latitude == nil || property.Longitude == nil {
		c.JSON(http.StatusOK, gin.H{
			"property_id": id,
			"stations":    []interface{}{},
			"message":     "property has no coordinates yet",
		})
		return
	}

	limit := 3
	if limitStr := c.Query("limit"); limitStr != "" {
		if n, err := strconv.Atoi(limitStr); err == nil && n > 0 && n <= 10 {
			limit = n
		}
	}

	stations, err := h.store.NearestStations(geo.Point{
		Latitude:  *property.Latitude,
		Longitude: *property.Longitude,
	}, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"property_id": id,
		"stations":    stations,
		"count":       len(stations),
	})
}
