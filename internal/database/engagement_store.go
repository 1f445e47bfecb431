package database

import (
	"errors"
	"time"

	"airea-platform/internal/models"

	"gorm.io/gorm"
)

// AddFavorite saves a listing for a user. Duplicate saves are idempotent.
func (gdb *GormDB) AddFavorite(userID, propertyID string) (*models.Favorite, error) {
	var existing models.Favorite
	err := gdb.db.Where("user_id = ? AND property_id = ?", userID, propertyID).
		First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	fav := &models.Favorite{UserID: userID, PropertyID: propertyID}
	if err := gdb.db.Create(fav).Error; err != nil {
		return nil, err
	}
	return fav, nil
}

// RemoveFavorite deletes a saved listing
func (gdb *GormDB) RemoveFavorite(userID, propertyID string) error {
	return gdb.db.Where("user_id = ? AND property_id = ?", userID, propertyID).
		Delete(&models.Favorite{}).Error
}

// GetFavorites returns a user's saved listings with the property rows preloaded
func (gdb *GormDB) GetFavorites(userID string) ([]models.Property, error) {
	var ids []string
	err := gdb.db.Model(&models.Favorite{}).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Pluck("property_id", &ids).Error
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}

	var properties []models.Property
	err = gdb.db.Preload("Images", func(db *gorm.DB) *gorm.DB {
		return db.Order("sort_order ASC")
	}).Where("id IN ?", ids).Find(&properties).Error
	return properties, err
}

// CreateInquiry records a buyer/renter message
func (gdb *GormDB) CreateInquiry(inq *models.Inquiry) error {
	return gdb.db.Create(inq).Error
}

// GetInquiriesForAgent returns inquiries across an agent's listings
func (gdb *GormDB) GetInquiriesForAgent(agentID string, limit int) ([]models.Inquiry, error) {
	if limit <= 0 {
		limit = 50
	}
	var inquiries []models.Inquiry
	err := gdb.db.
		Joins("JOIN properties ON properties.id = inquiries.property_id").
		Where("properties.agent_id = ?", agentID).
		Order("inquiries.created_at DESC").
		Limit(limit).
		Find(&inquiries).Error
	return inquiries, err
}

// SetInquiryStatus updates the handling state of an inquiry
func (gdb *GormDB) SetInquiryStatus(id uint, status models.InquiryStatus) error {
	return gdb.db.Model(&models.Inquiry{}).Where("id = ?", id).
		Update("status", status).Error
}

// CreateCalendarEvent records an agent appointment
func (gdb *GormDB) CreateCalendarEvent(ev *models.CalendarEvent) error {
	return gdb.db.Create(ev).Error
}

// GetCalendarEvents returns an agent's appointments in a time window
func (gdb *GormDB) GetCalendarEvents(agentID string, from, to time.Time) ([]models.CalendarEvent, error) {
	var events []models.CalendarEvent
	err := gdb.db.Where("agent_id = ? AND starts_at >= ? AND starts_at < ?", agentID, from, to).
		Order("starts_at").
		Find(&events).Error
	return events, err
}

// CreateSavedSearch stores a user's search for alerting
func (gdb *GormDB) CreateSavedSearch(ss *models.SavedSearch) error {
	return gdb.db.Create(ss).Error
}

// GetSavedSearches returns a user's saved searches
func (gdb *GormDB) GetSavedSearches(userID string) ([]models.SavedSearch, error) {
	var searches []models.SavedSearch
	err := gdb.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&searches).Error
	return searches, err
}

// GetAlertableSearches returns every saved search with alerts enabled
func (gdb *GormDB) GetAlertableSearches() ([]models.SavedSearch, error) {
	var searches []models.SavedSearch
	err := gdb.db.Where("alerts_enabled = ?", true).Find(&searches).Error
	return searches, err
}

// TouchSavedSearch records when a saved search last produced a match
func (gdb *GormDB) TouchSavedSearch(id uint, at time.Time) error {
	return gdb.db.Model(&models.SavedSearch{}).Where("id = ?", id).
		Update("last_matched_at", &at).Error
}

// CreateNotification stores an in-app notification
func (gdb *GormDB) CreateNotification(n *models.Notification) error {
	return gdb.db.Create(n).Error
}

// GetNotifications returns a user's notifications, newest first
func (gdb *GormDB) GetNotifications(recipientID string, limit int) ([]models.Notification, error) {
	if limit <= 0 {
		limit = 50
	}
	var notifications []models.Notification
	err := gdb.db.Where("recipient_id = ?", recipientID).
		Order("created_at DESC").
		Limit(limit).
		Find(&notifications).Error
	return notifications, err
}

// MarkNotificationRead flags a notification as read
func (gdb *GormDB) MarkNotificationRead(id uint) error {
	return gdb.db.Model(&models.Notification{}).Where("id = ?", id).
		Update("read", true).Error
}
