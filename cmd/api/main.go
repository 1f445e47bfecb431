package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"airea-platform/internal/ai"
	"airea-platform/internal/cache"
	"airea-platform/internal/config"
	"airea-platform/internal/database"
	"airea-platform/internal/geo"
	"airea-platform/internal/handlers"
	"airea-platform/internal/models"
	"airea-platform/internal/ratelimit"
	"airea-platform/internal/scheduler"
	"airea-platform/internal/search"
	"airea-platform/internal/snapshot"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

var (
	gormDB          *database.GormDB
	searchClient    *search.SearchClient
	appConfig       *config.Config
	rateLimiter     *ratelimit.Limiter
	appScheduler    *scheduler.Scheduler
	geocodeWorker   *scheduler.GeocodeWorker
	snapshotService *snapshot.Service
	pipeline        *search.Pipeline
)

func main() {
	// .env is optional; real deployments use actual environment variables
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded environment from .env")
	}

	configPath := getEnv("CONFIG_PATH", "config/app_config.yaml")
	var err error
	appConfig, err = config.LoadConfig(configPath)
	if err != nil {
		log.Printf("Warning: Failed to load config from %s: %v. Using defaults.", configPath, err)
		appConfig = config.DefaultConfig()
	} else {
		log.Printf("Loaded configuration from %s", configPath)
	}

	// Database
	pgCfg := appConfig.Database.Postgres
	portStr := ""
	if pgCfg.Port > 0 {
		portStr = fmt.Sprintf("%d", pgCfg.Port)
	}

	gormDB, err = database.NewGormDB(
		getEnvOrConfig(pgCfg.Host, "DB_HOST", "db"),
		getEnvOrConfig(portStr, "DB_PORT", "5432"),
		getEnvOrConfig(pgCfg.User, "DB_USER", "airea_user"),
		getEnvOrConfig(pgCfg.Password, "DB_PASSWORD", "airea_pass"),
		getEnvOrConfig(pgCfg.Database, "DB_NAME", "airea_db"),
		getEnvOrConfig(pgCfg.SSLMode, "DB_SSLMODE", "disable"),
	)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer gormDB.Close()

	if err := gormDB.InitSchema(); err != nil {
		log.Fatalf("Failed to initialize schema: %v", err)
	}
	if gormDB.HasPostGIS() {
		log.Println("PostGIS detected, radius queries run in the database")
	} else {
		log.Println("PostGIS not available, radius queries fall back to Haversine")
	}

	if err := gormDB.SeedKnownLocations(geo.SeedLocations); err != nil {
		log.Printf("Warning: seeding known locations failed: %v", err)
	}
	if err := gormDB.SeedStations(geo.SeedStations); err != nil {
		log.Printf("Warning: seeding transport stations failed: %v", err)
	}

	// Meilisearch
	if appConfig.Search.Meilisearch.Enabled {
		meilisearchHost := getEnvOrConfig(appConfig.Search.Meilisearch.Host, "MEILISEARCH_HOST", "http://meilisearch:7700")
		meilisearchKey := getEnvOrConfig(appConfig.Search.Meilisearch.APIKey, "MEILISEARCH_KEY", "masterKey123")

		searchClient = search.NewSearchClient(meilisearchHost, meilisearchKey)
		if err := searchClient.InitIndex(); err != nil {
			log.Printf("Warning: Failed to initialize search index: %v", err)
		}
	} else {
		log.Println("Meilisearch disabled, full-text search served from the database")
	}

	// AI completion client
	var completer ai.Completer
	if appConfig.AI.Enabled {
		apiKey := getEnvOrConfig(appConfig.AI.APIKey, "AI_API_KEY", "")
		if apiKey == "" {
			log.Println("AI enabled but no API key configured, AI extraction disabled")
		} else {
			completer = ai.NewClient(appConfig.AI.BaseURL, apiKey, appConfig.AI.Model, appConfig.AI.GetTimeout())
			log.Printf("AI completion client initialized (model: %s, timeout: %v)", appConfig.AI.Model, appConfig.AI.GetTimeout())
		}
	}

	// Geocoder and query-understanding pipeline
	geocoder := geo.NewGeocoder(gormDB, appConfig.Geocode.BaseURL, appConfig.Geocode.GetTimeout())
	abbrevCache := cache.New(appConfig.Cache.AbbrevTTL())
	expander := search.NewExpander(gormDB, completer, abbrevCache)
	searchCache := cache.New(appConfig.Cache.SearchTTL())
	// leave the searcher nil when Meilisearch is disabled
	var textSearcher search.TextSearcher
	if searchClient != nil {
		textSearcher = searchClient
	}
	pipeline = search.NewPipeline(gormDB, textSearcher, geocoder, expander, completer, searchCache, appConfig.AI.GetTimeout())
	if err := pipeline.ReloadDictionary(); err != nil {
		log.Printf("Warning: building correction dictionary failed: %v", err)
	} else {
		log.Printf("Correction dictionary loaded (%d terms)", pipeline.Dictionary().Size())
	}

	// Rate limiter for the AI-backed endpoints
	rateLimiter = ratelimit.NewLimiter(
		appConfig.RateLimit.RequestsPerMinute,
		appConfig.RateLimit.RequestsPerHour,
		appConfig.RateLimit.RequestsPerDay,
		appConfig.RateLimit.Enabled,
	)
	log.Printf("Rate limiter initialized: %d req/min, %d req/hour, %d req/day (enabled: %v)",
		appConfig.RateLimit.RequestsPerMinute,
		appConfig.RateLimit.RequestsPerHour,
		appConfig.RateLimit.RequestsPerDay,
		appConfig.RateLimit.Enabled,
	)

	// Snapshot service and background jobs
	snapshotService = snapshot.NewService(gormDB.DB())

	appScheduler = scheduler.NewScheduler(gormDB, searchClient, appConfig)
	if err := appScheduler.Start(); err != nil {
		log.Printf("Warning: Failed to start scheduler: %v", err)
	}
	defer appScheduler.Stop()

	if appConfig.Scheduler.GeocodeWorkerEnabled {
		geocodeWorker = scheduler.NewGeocodeWorker(gormDB, geocoder, searchClient)
		geocodeWorker.Start()
		defer geocodeWorker.Stop()
	}

	// Router
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{getEnv("CORS_ORIGIN", "http://localhost:5173")},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		AllowCredentials: true,
	}))

	searchHandler := handlers.NewSearchHandler(pipeline, expander, geocoder, gormDB, searchClient)
	engagementHandler := handlers.NewEngagementHandler(gormDB, pipeline)

	r.GET("/health", healthCheck)

	// Listings
	r.GET("/api/properties", getProperties)
	r.GET("/api/properties/:id", getProperty)
	r.POST("/api/properties", createProperty)
	r.PUT("/api/properties/:id", updateProperty)
	r.PUT("/api/properties/:id/status", setPropertyStatus)
	r.DELETE("/api/properties/:id", deleteProperty)
	r.GET("/api/properties/:id/transport", searchHandler.Transport)
	r.GET("/api/properties/:id/history", getPropertyHistory)

	// Search surface; AI endpoints sit behind the rate limiter
	r.GET("/api/autocomplete", searchHandler.Autocomplete)
	r.POST("/api/search/ai", rateLimitMiddleware(), searchHandler.AISearch)
	r.GET("/api/search/ai/stream", rateLimitMiddleware(), searchHandler.AISearchStream)
	r.POST("/api/search/reindex", searchHandler.Reindex)
	r.GET("/api/search/facets", searchHandler.Facets)
	r.GET("/api/geocode", searchHandler.Geocode)
	r.GET("/api/locations/expand", searchHandler.ExpandLocation)
	r.GET("/api/locations/known", searchHandler.KnownLocations)
	r.GET("/api/locations/abbreviations", searchHandler.Abbreviations)

	r.GET("/api/ratelimit/stats", getRateLimitStats)

	// Users
	r.POST("/api/users/:id/favorites", engagementHandler.AddFavorite)
	r.DELETE("/api/users/:id/favorites/:propertyId", engagementHandler.RemoveFavorite)
	r.GET("/api/users/:id/favorites", engagementHandler.GetFavorites)
	r.POST("/api/users/:id/saved-searches", engagementHandler.CreateSavedSearch)
	r.GET("/api/users/:id/saved-searches", engagementHandler.GetSavedSearches)
	r.GET("/api/users/:id/notifications", engagementHandler.GetNotifications)
	r.PUT("/api/notifications/:id/read", engagementHandler.MarkNotificationRead)

	// Inquiries
	r.POST("/api/inquiries", engagementHandler.CreateInquiry)
	r.PUT("/api/inquiries/:id/status", engagementHandler.SetInquiryStatus)

	// Agents
	r.POST("/api/agents", createAgent)
	r.GET("/api/agents/:id/inquiries", engagementHandler.GetInquiries)
	r.GET("/api/agents/:id/stats", engagementHandler.GetAgentStats)
	r.POST("/api/agents/:id/calendar", engagementHandler.CreateCalendarEvent)
	r.GET("/api/agents/:id/calendar", engagementHandler.GetCalendarEvents)

	// Admin API routes (requires authentication in production)
	adminHandler := handlers.NewAdminHandler(gormDB.DB(), appScheduler)
	admin := r.Group("/api/admin")
	{
		admin.GET("/stats", adminHandler.GetStats)
		admin.GET("/activity", adminHandler.GetRecentActivity)
		admin.GET("/area-stats", adminHandler.GetAreaStats)
		admin.GET("/price-distribution", adminHandler.GetPriceDistribution)

		admin.POST("/maintenance/run", adminHandler.TriggerMaintenance)

		admin.POST("/cleanup/run", adminHandler.RunCleanup)
		admin.GET("/cleanup/logs", adminHandler.GetDeleteLogs)

		admin.GET("/properties/:id/history", adminHandler.GetPropertyHistory)
		admin.GET("/changes/recent", adminHandler.GetRecentChanges)

		admin.POST("/agents/:id/credits", engagementHandler.GrantCredits)
	}
	log.Println("Admin API routes registered at /api/admin/*")

	port := getEnv("PORT", "8084")
	log.Printf("Server starting on port %s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"time":   time.Now(),
	})
}

// rateLimitMiddleware rejects requests over the per-client limits
func rateLimitMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rateLimiter.Allow(c.ClientIP()) {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error": "Rate limit exceeded. Please try again later.",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

func getRateLimitStats(c *gin.Context) {
	c.JSON(http.StatusOK, rateLimiter.GetStats(c.ClientIP()))
}

func getProperties(c *gin.Context) {
	filters := database.PropertyFilters{
		ListingType: c.Query("listing_type"),
		Status:      c.DefaultQuery("status", string(models.PropertyStatusOnline)),
		Area:        c.Query("area"),
		AgentID:     c.Query("agent_id"),
		Query:       c.Query("q"),
		SortBy:      c.DefaultQuery("sort", "created_at"),
	}

	if t := c.Query("property_type"); t != "" {
		filters.PropertyTypes = strings.Split(t, ",")
	}
	if v := c.Query("min_price"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			filters.MinPrice = &f
		}
	}
	if v := c.Query("max_price"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			filters.MaxPrice = &f
		}
	}
	if v := c.Query("bedrooms"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			filters.Bedrooms = &n
		}
	}
	if v := c.Query("min_bedrooms"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			filters.MinBedrooms = &n
		}
	}
	if v := c.Query("featured"); v != "" {
		featured := v == "true" || v == "1"
		filters.Featured = &featured
	}

	filters.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	filters.Offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))

	page, err := gormDB.GetPropertiesWithFilters(filters)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, page)
}

func getProperty(c *gin.Context) {
	property, err := gormDB.GetPropertyByID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if property == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "property not found"})
		return
	}

	c.JSON(http.StatusOK, property)
}

type propertyRequest struct {
	Title        string   `json:"title" binding:"required"`
	Description  string   `json:"description"`
	AgentID      string   `json:"agentId" binding:"required"`
	PropertyType string   `json:"propertyType" binding:"required"`
	ListingType  string   `json:"listingType" binding:"required"`
	Price        float64  `json:"price"`
	Bedrooms     int      `json:"bedrooms"`
	Bathrooms    int      `json:"bathrooms"`
	SquareFeet   *int     `json:"squareFeet"`
	Address      string   `json:"address"`
	Area         string   `json:"area"`
	City         string   `json:"city"`
	State        string   `json:"state"`
	PostalCode   string   `json:"postalCode"`
	Latitude     *float64 `json:"latitude"`
	Longitude    *float64 `json:"longitude"`
	Amenities    string   `json:"amenities"`
	Featured     bool     `json:"featured"`
	ImageURLs    []string `json:"imageUrls"`
}

func (req *propertyRequest) validate() string {
	if len(strings.TrimSpace(req.Title)) < 10 {
		return "title must be at least 10 characters"
	}
	if !models.ValidPropertyType(models.PropertyType(req.PropertyType)) {
		return "invalid property type: " + req.PropertyType
	}
	if req.ListingType != string(models.ListingTypeSale) && req.ListingType != string(models.ListingTypeRent) {
		return "listing type must be 'sale' or 'rent'"
	}
	if req.Price < 0 {
		return "price must not be negative"
	}
	if req.Bedrooms < 0 || req.Bedrooms > 20 {
		return "bedrooms must be between 0 and 20"
	}
	return ""
}

func (req *propertyRequest) toModel(id string) *models.Property {
	p := &models.Property{
		ID:           id,
		Title:        strings.TrimSpace(req.Title),
		Description:  req.Description,
		AgentID:      req.AgentID,
		PropertyType: models.PropertyType(req.PropertyType),
		ListingType:  models.ListingType(req.ListingType),
		Price:        req.Price,
		Bedrooms:     req.Bedrooms,
		Bathrooms:    req.Bathrooms,
		SquareFeet:   req.SquareFeet,
		Address:      req.Address,
		Area:         req.Area,
		City:         req.City,
		State:        req.State,
		PostalCode:   req.PostalCode,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
		Amenities:    req.Amenities,
		Featured:     req.Featured,
	}
	for i, url := range req.ImageURLs {
		p.Images = append(p.Images, models.PropertyImage{
			PropertyID: id,
			ImageURL:   url,
			SortOrder:  i,
		})
	}
	return p
}

// createProperty inserts a listing in draft status
func createProperty(c *gin.Context) {
	var req propertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if msg := req.validate(); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	agent, err := gormDB.GetAgentByID(req.AgentID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if agent == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "agent not found"})
		return
	}

	property := req.toModel(uuid.New().String())
	property.Status = models.PropertyStatusDraft

	if err := gormDB.CreateProperty(property); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	log.Printf("Created listing %s (agent: %s)", property.ID, property.AgentID)
	c.JSON(http.StatusCreated, property)
}

func updateProperty(c *gin.Context) {
	id := c.Param("id")

	existing, err := gormDB.GetPropertyByID(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if existing == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "property not found"})
		return
	}

	var req propertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if msg := req.validate(); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	property := req.toModel(id)
	property.Status = existing.Status
	property.ExpiredAt = existing.ExpiredAt
	property.Images = nil // image set is managed separately

	if err := gormDB.UpdateProperty(property); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if searchClient != nil && property.Status == models.PropertyStatusOnline {
		if err := searchClient.IndexProperty(property); err != nil {
			log.Printf("Warning: reindex of %s failed: %v", id, err)
		}
	}

	c.JSON(http.StatusOK, property)
}

// setPropertyStatus transitions a listing's lifecycle state. Going
// online requires a price and at least the minimum number of images.
func setPropertyStatus(c *gin.Context) {
	id := c.Param("id")

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	status := models.PropertyStatus(req.Status)
	if !models.ValidPropertyStatus(status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status: " + req.Status})
		return
	}

	property, err := gormDB.GetPropertyByID(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if property == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "property not found"})
		return
	}

	if status == models.PropertyStatusOnline {
		imageCount, err := gormDB.CountPropertyImages(id)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if !property.CanGoOnline(imageCount) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": fmt.Sprintf("listing needs a positive price and at least %d images to go online", models.MinOnlineImages),
			})
			return
		}
	}

	if err := gormDB.SetPropertyStatus(id, status); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if searchClient != nil {
		if status == models.PropertyStatusOnline {
			property.Status = status
			if err := searchClient.IndexProperty(property); err != nil {
				log.Printf("Warning: indexing of %s failed: %v", id, err)
			}
		} else {
			if err := searchClient.RemoveProperty(id); err != nil {
				log.Printf("Warning: deindex of %s failed: %v", id, err)
			}
		}
	}

	log.Printf("Listing %s moved to %s", id, status)
	c.JSON(http.StatusOK, gin.H{"id": id, "status": status})
}

// deleteProperty takes a listing offline. Physical deletion is the
// cleanup job's business.
func deleteProperty(c *gin.Context) {
	id := c.Param("id")

	property, err := gormDB.GetPropertyByID(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if property == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "property not found"})
		return
	}

	if err := gormDB.SetPropertyStatus(id, models.PropertyStatusOffline); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if searchClient != nil {
		if err := searchClient.RemoveProperty(id); err != nil {
			log.Printf("Warning: deindex of %s failed: %v", id, err)
		}
	}

	c.JSON(http.StatusOK, gin.H{"id": id, "status": models.PropertyStatusOffline})
}

type agentRequest struct {
	Name   string `json:"name" binding:"required"`
	Email  string `json:"email" binding:"required"`
	Phone  string `json:"phone"`
	Agency string `json:"agency"`
	Role   string `json:"role"`
}

func (req *agentRequest) validate() string {
	if len(strings.TrimSpace(req.Name)) < 2 {
		return "name must be at least 2 characters"
	}
	email := strings.TrimSpace(req.Email)
	at := strings.Index(email, "@")
	if at < 1 || at == len(email)-1 {
		return "invalid email address"
	}
	if req.Role != "" && req.Role != string(models.AgentRoleAgent) && req.Role != string(models.AgentRoleAdmin) {
		return "role must be 'agent' or 'admin'"
	}
	return ""
}

// createAgent registers an agent account. Listings can only be created
// for agents that exist.
func createAgent(c *gin.Context) {
	var req agentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if msg := req.validate(); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	role := models.AgentRole(req.Role)
	if role == "" {
		role = models.AgentRoleAgent
	}

	agent := &models.Agent{
		ID:     uuid.New().String(),
		Name:   strings.TrimSpace(req.Name),
		Email:  strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:  req.Phone,
		Agency: req.Agency,
		Role:   role,
	}
	if err := gormDB.CreateAgent(agent); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	log.Printf("Created agent %s (%s)", agent.ID, agent.Email)
	c.JSON(http.StatusCreated, agent)
}

func getPropertyHistory(c *gin.Context) {
	id := c.Param("id")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "30"))

	snapshots, err := snapshotService.GetPropertyHistory(id, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"property_id": id,
		"snapshots":   snapshots,
		"count":       len(snapshots),
	})
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// getEnvOrConfig returns config value if set, otherwise env var, otherwise fallback
func getEnvOrConfig(configValue, envKey, fallback string) string {
	if configValue != "" {
		return configValue
	}
	return getEnv(envKey, fallback)
}
