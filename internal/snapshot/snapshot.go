package snapshot

import (
	"errors"
	"fmt"
	"log"
	"time"

	"airea-platform/internal/models"

	"gorm.io/gorm"
)

// Service records daily price snapshots for online listings and derives
// change events from them, feeding the listing history endpoint and
// saved-search alerts.
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// snapshotDay truncates to the calendar date so each listing gets at
// most one snapshot per day.
func snapshotDay(t time.Time) time.Time {
	return t.Truncate(24 * time.Hour)
}

// DetectChanges compares a listing against its most recent snapshot
// from a previous day.
func (s *Service) DetectChanges(property *models.Property) ([]models.PriceChange, error) {
	var last models.PriceSnapshot
	today := snapshotDay(time.Now())

	err := s.db.Where("property_id = ? AND snapshot_at < ?", property.ID, today).
		Order("snapshot_at DESC").
		First(&last).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return []models.PriceChange{{
			PropertyID: property.ID,
			ChangeType: models.ChangeTypeNew,
			NewValue:   fmt.Sprintf("%.2f", property.Price),
			DetectedAt: time.Now(),
		}}, nil
	}
	if err != nil {
		return nil, err
	}

	var changes []models.PriceChange

	if property.Price != last.Price {
		magnitude := property.Price - last.Price
		changes = append(changes, models.PriceChange{
			PropertyID:      property.ID,
			ChangeType:      models.ChangeTypePrice,
			OldValue:        fmt.Sprintf("%.2f", last.Price),
			NewValue:        fmt.Sprintf("%.2f", property.Price),
			ChangeMagnitude: &magnitude,
			DetectedAt:      time.Now(),
		})
	}

	if string(property.Status) != last.Status {
		changeType := models.ChangeTypeStatus
		if property.Status == models.PropertyStatusExpired {
			changeType = models.ChangeTypeExpired
		}
		changes = append(changes, models.PriceChange{
			PropertyID: property.ID,
			ChangeType: changeType,
			OldValue:   last.Status,
			NewValue:   string(property.Status),
			DetectedAt: time.Now(),
		})
	}

	return changes, nil
}

// RecordSnapshot writes today's snapshot for a listing, detecting
// changes against the previous one first. Re-running on the same day
// updates today's row instead of duplicating it.
func (s *Service) RecordSnapshot(property *models.Property) error {
	changes, err := s.DetectChanges(property)
	if err != nil {
		log.Printf("change detection failed property=%s err=%v", property.ID, err)
	}

	snap := &models.PriceSnapshot{
		PropertyID:  property.ID,
		SnapshotAt:  snapshotDay(time.Now()),
		Price:       property.Price,
		Status:      string(property.Status),
		ListingType: string(property.ListingType),
	}

	var existing models.PriceSnapshot
	err = s.db.Where("property_id = ? AND snapshot_at = ?", property.ID, snap.SnapshotAt).
		First(&existing).Error

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		if err := s.db.Create(snap).Error; err != nil {
			return err
		}
	case err != nil:
		return err
	default:
		snap.ID = existing.ID
		if err := s.db.Save(snap).Error; err != nil {
			return err
		}
	}

	if len(changes) > 0 {
		if err := s.db.Create(&changes).Error; err != nil {
			log.Printf("saving changes failed property=%s err=%v", property.ID, err)
		} else {
			log.Printf("recorded changes property=%s count=%d", property.ID, len(changes))
		}
	}

	return nil
}

// SnapshotAll records today's snapshot for every given listing.
func (s *Service) SnapshotAll(properties []models.Property) (int, error) {
	count := 0
	for i := range properties {
		if err := s.RecordSnapshot(&properties[i]); err != nil {
			log.Printf("snapshot failed property=%s err=%v", properties[i].ID, err)
			continue
		}
		count++
	}
	return count, nil
}

// GetPropertyHistory retrieves snapshot history for a listing
func (s *Service) GetPropertyHistory(propertyID string, limit int) ([]models.PriceSnapshot, error) {
	var snapshots []models.PriceSnapshot
	q := s.db.Where("property_id = ?", propertyID).Order("snapshot_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&snapshots).Error
	return snapshots, err
}

// GetRecentChanges retrieves the latest change events across listings
func (s *Service) GetRecentChanges(limit int) ([]models.PriceChange, error) {
	var changes []models.PriceChange
	q := s.db.Order("detected_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&changes).Error
	return changes, err
}
