package models

import "time"

// PropertyImage represents an image associated with a listing
type PropertyImage struct {
	ID         int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	PropertyID string    `gorm:"type:varchar(36);not null;index" json:"propertyId"`
	ImageURL   string    `gorm:"type:text;not null" json:"imageUrl"`
	SortOrder  int       `gorm:"not null;default:0;index" json:"sortOrder"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

func (PropertyImage) TableName() string {
	return "property_images"
}
