package cleanup

import (
	"fmt"
	"log"
	"time"

	"airea-platform/internal/models"

	"gorm.io/gorm"
)

// Service handles physical deletion of expired listings past retention
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// Config holds configuration for cleanup operations
type Config struct {
	RetentionDays    int  // days to keep expired listings before physical deletion
	MaxDeletionCount int  // maximum number of listings deleted in one run (safety limit)
	DryRun           bool // log what would be deleted without deleting
}

// DefaultConfig returns default configuration
func DefaultConfig() Config {
	return Config{
		RetentionDays:    90,
		MaxDeletionCount: 10000,
		DryRun:           false,
	}
}

// Result holds the result of a cleanup operation
type Result struct {
	TargetCount       int       `json:"target_count"`
	DeletedCount      int       `json:"deleted_count"`
	ErrorCount        int       `json:"error_count"`
	DryRun            bool      `json:"dry_run"`
	ExecutedAt        time.Time `json:"executed_at"`
	DeletedProperties []string  `json:"deleted_properties"`
	Errors            []string  `json:"errors,omitempty"`
}

// FindPurgeable returns expired listings whose expired_at is older than
// the retention window.
func (s *Service) FindPurgeable(retentionDays int) ([]models.Property, error) {
	var properties []models.Property

	cutoff := time.Now().AddDate(0, 0, -retentionDays)

	err := s.db.Where("status = ? AND expired_at < ?",
		models.PropertyStatusExpired,
		cutoff,
	).Find(&properties).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find purgeable listings: %w", err)
	}

	log.Printf("Found %d listings expired before %s", len(properties), cutoff.Format("2006-01-02"))
	return properties, nil
}

// Purge physically deletes expired listings past retention, writing a
// delete log row for each inside the same transaction.
func (s *Service) Purge(cfg Config) (*Result, error) {
	result := &Result{
		DryRun:     cfg.DryRun,
		ExecutedAt: time.Now(),
	}

	purgeable, err := s.FindPurgeable(cfg.RetentionDays)
	if err != nil {
		return nil, err
	}

	result.TargetCount = len(purgeable)
	if result.TargetCount == 0 {
		log.Println("No listings found for deletion")
		return result, nil
	}

	if result.TargetCount > cfg.MaxDeletionCount {
		return nil, fmt.Errorf("safety check failed: %d listings exceed max deletion limit of %d",
			result.TargetCount, cfg.MaxDeletionCount)
	}

	log.Printf("Starting cleanup: %d listings to delete (retention: %d days, dry-run: %v)",
		result.TargetCount, cfg.RetentionDays, cfg.DryRun)

	for _, prop := range purgeable {
		if cfg.DryRun {
			log.Printf("[DRY-RUN] Would delete listing %s (%s)", prop.ID, prop.Title)
			result.DeletedProperties = append(result.DeletedProperties, prop.ID)
			result.DeletedCount++
			continue
		}

		tx := s.db.Begin()

		deleteLog := models.DeleteLog{
			PropertyID: prop.ID,
			Title:      prop.Title,
			AgentID:    prop.AgentID,
			Reason:     models.DeleteReasonExpired,
		}
		if prop.ExpiredAt != nil {
			deleteLog.ExpiredAt = *prop.ExpiredAt
		}

		if err := tx.Create(&deleteLog).Error; err != nil {
			tx.Rollback()
			errMsg := fmt.Sprintf("delete log for listing %s failed: %v", prop.ID, err)
			log.Printf("ERROR: %s", errMsg)
			result.Errors = append(result.Errors, errMsg)
			result.ErrorCount++
			continue
		}

		// images go first, the FK points at the listing
		if err := tx.Where("property_id = ?", prop.ID).Delete(&models.PropertyImage{}).Error; err != nil {
			tx.Rollback()
			errMsg := fmt.Sprintf("image deletion for listing %s failed: %v", prop.ID, err)
			log.Printf("ERROR: %s", errMsg)
			result.Errors = append(result.Errors, errMsg)
			result.ErrorCount++
			continue
		}

		if err := tx.Delete(&prop).Error; err != nil {
			tx.Rollback()
			errMsg := fmt.Sprintf("deletion of listing %s failed: %v", prop.ID, err)
			log.Printf("ERROR: %s", errMsg)
			result.Errors = append(result.Errors, errMsg)
			result.ErrorCount++
			continue
		}

		if err := tx.Commit().Error; err != nil {
			errMsg := fmt.Sprintf("commit for listing %s failed: %v", prop.ID, err)
			log.Printf("ERROR: %s", errMsg)
			result.Errors = append(result.Errors, errMsg)
			result.ErrorCount++
			continue
		}

		log.Printf("Physically deleted listing %s (%s)", prop.ID, prop.Title)
		result.DeletedProperties = append(result.DeletedProperties, prop.ID)
		result.DeletedCount++
	}

	log.Printf("Cleanup completed: %d/%d deleted, %d errors (dry-run: %v)",
		result.DeletedCount, result.TargetCount, result.ErrorCount, cfg.DryRun)

	return result, nil
}

// GetDeleteStats returns statistics about purged listings
func (s *Service) GetDeleteStats() (map[string]interface{}, error) {
	stats := make(map[string]interface{})

	var totalDeleted int64
	if err := s.db.Model(&models.DeleteLog{}).Count(&totalDeleted).Error; err != nil {
		return nil, err
	}
	stats["total_deleted"] = totalDeleted

	var reasonCounts []struct {
		Reason string
		Count  int64
	}
	if err := s.db.Model(&models.DeleteLog{}).
		Select("reason, count(*) as count").
		Group("reason").
		Scan(&reasonCounts).Error; err != nil {
		return nil, err
	}

	reasonMap := make(map[string]int64)
	for _, rc := range reasonCounts {
		reasonMap[rc.Reason] = rc.Count
	}
	stats["by_reason"] = reasonMap

	var recentDeleted int64
	thirtyDaysAgo := time.Now().AddDate(0, 0, -30)
	if err := s.db.Model(&models.DeleteLog{}).
		Where("deleted_at >= ?", thirtyDaysAgo).
		Count(&recentDeleted).Error; err != nil {
		return nil, err
	}
	stats["deleted_last_30_days"] = recentDeleted

	var currentExpired int64
	if err := s.db.Model(&models.Property{}).
		Where("status = ?", models.PropertyStatusExpired).
		Count(&currentExpired).Error; err != nil {
		return nil, err
	}
	stats["currently_expired"] = currentExpired

	purgeable, err := s.FindPurgeable(DefaultConfig().RetentionDays)
	if err != nil {
		return nil, err
	}
	stats["ready_for_deletion"] = len(purgeable)

	return stats, nil
}

// GetRecentDeleteLogs returns recent delete log entries
func (s *Service) GetRecentDeleteLogs(limit int) ([]models.DeleteLog, error) {
	var logs []models.DeleteLog
	err := s.db.Order("deleted_at DESC").Limit(limit).Find(&logs).Error
	return logs, err
}
