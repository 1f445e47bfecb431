package models

import "time"

// Favorite is a user's saved listing. The (user_id, property_id) pair is unique
// so repeated saves are idempotent.
type Favorite struct {
	ID         uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID     string    `gorm:"type:varchar(36);not null;uniqueIndex:idx_fav_user_property" json:"userId"`
	PropertyID string    `gorm:"type:varchar(36);not null;uniqueIndex:idx_fav_user_property;index" json:"propertyId"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

func (Favorite) TableName() string {
	return "favorites"
}
