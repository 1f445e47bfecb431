package models

import "time"

// PriceSnapshot represents a daily snapshot of a listing's price and status
type PriceSnapshot struct {
	ID         uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	PropertyID string    `gorm:"type:varchar(36);not null;index:idx_price_property_date" json:"propertyId"`
	SnapshotAt time.Time `gorm:"type:date;not null;index:idx_price_property_date,priority:2" json:"snapshotAt"`

	Price       float64 `gorm:"type:decimal(14,2);not null" json:"price"`
	Status      string  `gorm:"type:varchar(20);not null" json:"status"`
	ListingType string  `gorm:"type:varchar(10);not null" json:"listingType"`

	CreatedAt time.Time `gorm:"type:timestamp;not null;autoCreateTime" json:"createdAt"`
}

func (PriceSnapshot) TableName() string {
	return "price_snapshots"
}

// PriceChange represents a detected change between snapshots
type PriceChange struct {
	ID              uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	PropertyID      string    `gorm:"type:varchar(36);not null;index" json:"propertyId"`
	ChangeType      string    `gorm:"type:varchar(50);not null" json:"changeType"`
	OldValue        string    `gorm:"type:text" json:"oldValue,omitempty"`
	NewValue        string    `gorm:"type:text" json:"newValue,omitempty"`
	ChangeMagnitude *float64  `gorm:"type:decimal(14,2)" json:"changeMagnitude,omitempty"`
	DetectedAt      time.Time `gorm:"type:timestamp;not null;autoCreateTime;index" json:"detectedAt"`
}

func (PriceChange) TableName() string {
	return "price_changes"
}

// ChangeType constants
const (
	ChangeTypePrice   = "price_changed"
	ChangeTypeStatus  = "status_changed"
	ChangeTypeNew     = "new_listing"
	ChangeTypeExpired = "listing_expired"
)
