package models

import "time"

// SavedSearch stores a user's query and its extracted filters so the
// scheduler can alert on newly listed matches.
type SavedSearch struct {
	ID            uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID        string     `gorm:"type:varchar(36);not null;index" json:"userId"`
	Query         string     `gorm:"type:text;not null" json:"query"`
	FiltersJSON   string     `gorm:"type:text" json:"filtersJson,omitempty"`
	AlertsEnabled bool       `gorm:"not null;default:true" json:"alertsEnabled"`
	LastMatchedAt *time.Time `gorm:"type:timestamp" json:"lastMatchedAt,omitempty"`
	CreatedAt     time.Time  `gorm:"autoCreateTime" json:"createdAt"`
}

func (SavedSearch) TableName() string {
	return "saved_searches"
}
