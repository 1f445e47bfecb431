package handlers

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"airea-platform/internal/cleanup"
	"airea-platform/internal/models"
	"airea-platform/internal/scheduler"
	"airea-platform/internal/snapshot"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AdminHandler handles admin-related requests
type AdminHandler struct {
	db              *gorm.DB
	scheduler       *scheduler.Scheduler
	snapshotService *snapshot.Service
	cleanupService  *cleanup.Service
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(db *gorm.DB, sched *scheduler.Scheduler) *AdminHandler {
	return &AdminHandler{
		db:              db,
		scheduler:       sched,
		snapshotService: snapshot.NewService(db),
		cleanupService:  cleanup.NewService(db),
	}
}

// GetStats returns system statistics
func (h *AdminHandler) GetStats(c *gin.Context) {
	stats := make(map[string]interface{})

	// Listing counts by status
	statusCounts := map[string]int64{}
	var total int64
	for _, status := range []models.PropertyStatus{
		models.PropertyStatusDraft,
		models.PropertyStatusOnline,
		models.PropertyStatusOffline,
		models.PropertyStatusExpired,
		models.PropertyStatusSold,
		models.PropertyStatusRented,
	} {
		var count int64
		h.db.Model(&models.Property{}).Where("status = ?", status).Count(&count)
		statusCounts[string(status)] = count
		total += count
	}
	statusCounts["total"] = total
	stats["properties"] = statusCounts

	// Listings created in the last 24 hours
	last24h := time.Now().AddDate(0, 0, -1)
	var recentlyCreated int64
	h.db.Model(&models.Property{}).Where("created_at >= ?", last24h).Count(&recentlyCreated)
	stats["recent_activity"] = map[string]interface{}{
		"created_last_24h": recentlyCreated,
	}

	// Engagement counts
	var inquiryCount, favoriteCount, savedSearchCount int64
	h.db.Model(&models.Inquiry{}).Count(&inquiryCount)
	h.db.Model(&models.Favorite{}).Count(&favoriteCount)
	h.db.Model(&models.SavedSearch{}).Count(&savedSearchCount)
	stats["engagement"] = map[string]interface{}{
		"inquiries":      inquiryCount,
		"favorites":      favoriteCount,
		"saved_searches": savedSearchCount,
	}

	// Snapshot statistics
	var snapshotCount int64
	h.db.Model(&models.PriceSnapshot{}).Count(&snapshotCount)
	stats["snapshots"] = map[string]interface{}{
		"total": snapshotCount,
	}

	// Price changes (last 7 days)
	last7days := time.Now().AddDate(0, 0, -7)
	var recentChanges int64
	h.db.Model(&models.PriceChange{}).Where("detected_at >= ?", last7days).Count(&recentChanges)
	stats["changes"] = map[string]interface{}{
		"last_7_days": recentChanges,
	}

	// Delete logs statistics
	deleteStats, err := h.cleanupService.GetDeleteStats()
	if err != nil {
		log.Printf("Failed to get delete stats: %v", err)
	} else {
		stats["deletions"] = deleteStats
	}

	c.JSON(http.StatusOK, stats)
}

// GetRecentActivity returns recently created listings
func (h *AdminHandler) GetRecentActivity(c *gin.Context) {
	limitStr := c.DefaultQuery("limit", "50")
	limit, _ := strconv.Atoi(limitStr)

	var properties []models.Property
	err := h.db.Order("created_at DESC").Limit(limit).Find(&properties).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"properties": properties,
		"count":      len(properties),
	})
}

// TriggerMaintenance manually triggers the daily maintenance job
func (h *AdminHandler) TriggerMaintenance(c *gin.Context) {
	if h.scheduler == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "Scheduler not available",
		})
		return
	}

	log.Println("Admin: manual maintenance trigger requested")

	// Run in goroutine to avoid blocking
	go func() {
		if err := h.scheduler.RunNow(); err != nil {
			log.Printf("Admin: manual maintenance failed: %v", err)
		} else {
			log.Println("Admin: manual maintenance completed")
		}
	}()

	c.JSON(http.StatusAccepted, gin.H{
		"message": "Maintenance job started",
		"status":  "running",
	})
}

// RunCleanup executes physical deletion of expired listings past retention
func (h *AdminHandler) RunCleanup(c *gin.Context) {
	var req struct {
		RetentionDays    int  `json:"retention_days"`
		MaxDeletionCount int  `json:"max_deletion_count"`
		DryRun           bool `json:"dry_run"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cfg := cleanup.DefaultConfig()
	if req.RetentionDays > 0 {
		cfg.RetentionDays = req.RetentionDays
	}
	if req.MaxDeletionCount > 0 {
		cfg.MaxDeletionCount = req.MaxDeletionCount
	}
	cfg.DryRun = req.DryRun

	log.Printf("Admin: running cleanup (retention: %d days, max: %d, dry-run: %v)",
		cfg.RetentionDays, cfg.MaxDeletionCount, cfg.DryRun)

	result, err := h.cleanupService.Purge(cfg)
	if err != nil {
		log.Printf("Admin: cleanup failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	log.Printf("Admin: cleanup completed: %d/%d deleted (dry-run: %v)",
		result.DeletedCount, result.TargetCount, result.DryRun)

	c.JSON(http.StatusOK, result)
}

// GetDeleteLogs returns recent delete log entries
func (h *AdminHandler) GetDeleteLogs(c *gin.Context) {
	limitStr := c.DefaultQuery("limit", "100")
	limit, _ := strconv.Atoi(limitStr)

	logs, err := h.cleanupService.GetRecentDeleteLogs(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"logs":  logs,
		"count": len(logs),
	})
}

// GetPropertyHistory returns price snapshot history for a listing
func (h *AdminHandler) GetPropertyHistory(c *gin.Context) {
	propertyID := c.Param("id")
	limitStr := c.DefaultQuery("limit", "30")
	limit, _ := strconv.Atoi(limitStr)

	snapshots, err := h.snapshotService.GetPropertyHistory(propertyID, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"property_id": propertyID,
		"snapshots":   snapshots,
		"count":       len(snapshots),
	})
}

// GetRecentChanges returns recent price and status changes
func (h *AdminHandler) GetRecentChanges(c *gin.Context) {
	limitStr := c.DefaultQuery("limit", "100")
	limit, _ := strconv.Atoi(limitStr)

	changes, err := h.snapshotService.GetRecentChanges(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"changes": changes,
		"count":   len(changes),
	})
}

// GetAreaStats returns online listing counts per area
func (h *AdminHandler) GetAreaStats(c *gin.Context) {
	type AreaStat struct {
		Area  string `json:"area"`
		Count int64  `json:"count"`
	}

	var stats []AreaStat
	err := h.db.Model(&models.Property{}).
		Select("area, count(*) as count").
		Where("status = ? AND area IS NOT NULL AND area != ''", models.PropertyStatusOnline).
		Group("area").
		Order("count DESC").
		Limit(20).
		Scan(&stats).Error

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"area_stats": stats,
		"count":      len(stats),
	})
}

// GetPriceDistribution returns sale price distribution in ringgit
func (h *AdminHandler) GetPriceDistribution(c *gin.Context) {
	type PriceRange struct {
		RangeLabel string  `json:"range_label"`
		MinPrice   float64 `json:"min_price"`
		MaxPrice   float64 `json:"max_price"`
		Count      int64   `json:"count"`
	}

	listingType := c.DefaultQuery("listing_type", "sale")

	var ranges []PriceRange
	if listingType == "rent" {
		ranges = []PriceRange{
			{RangeLabel: "Below RM1k", MinPrice: 0, MaxPrice: 1000},
			{RangeLabel: "RM1k-2k", MinPrice: 1000, MaxPrice: 2000},
			{RangeLabel: "RM2k-3k", MinPrice: 2000, MaxPrice: 3000},
			{RangeLabel: "RM3k-5k", MinPrice: 3000, MaxPrice: 5000},
			{RangeLabel: "RM5k-10k", MinPrice: 5000, MaxPrice: 10000},
			{RangeLabel: "Above RM10k", MinPrice: 10000, MaxPrice: 1000000},
		}
	} else {
		ranges = []PriceRange{
			{RangeLabel: "Below RM300k", MinPrice: 0, MaxPrice: 300000},
			{RangeLabel: "RM300k-500k", MinPrice: 300000, MaxPrice: 500000},
			{RangeLabel: "RM500k-800k", MinPrice: 500000, MaxPrice: 800000},
			{RangeLabel: "RM800k-1.2M", MinPrice: 800000, MaxPrice: 1200000},
			{RangeLabel: "RM1.2M-2M", MinPrice: 1200000, MaxPrice: 2000000},
			{RangeLabel: "Above RM2M", MinPrice: 2000000, MaxPrice: 100000000},
		}
	}

	for i := range ranges {
		var count int64
		h.db.Model(&models.Property{}).
			Where("status = ? AND listing_type = ? AND price >= ? AND price < ?",
				models.PropertyStatusOnline, listingType, ranges[i].MinPrice, ranges[i].MaxPrice).
			Count(&count)
		ranges[i].Count = count
	}

	c.JSON(http.StatusOK, gin.H{
		"listing_type":       listingType,
		"price_distribution": ranges,
	})
}
