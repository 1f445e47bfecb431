package models

import "time"

// LocationAbbreviation maps informal location shorthand to its full form.
// Seeded entries are fixed; AI-resolved expansions are persisted here so
// the completion provider is only consulted once per shorthand.
type LocationAbbreviation struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Short     string    `gorm:"type:varchar(30);not null;uniqueIndex" json:"short"`
	Expansion string    `gorm:"type:varchar(255);not null" json:"expansion"`
	Source    string    `gorm:"type:varchar(10);not null;default:'seed'" json:"source"` // seed, ai
	HitCount  int       `gorm:"not null;default:0" json:"hitCount"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (LocationAbbreviation) TableName() string {
	return "location_abbreviations"
}

// KnownLocation is a row in the local geocoding knowledge table
type KnownLocation struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"type:varchar(255);not null;uniqueIndex" json:"name"`
	Latitude  float64   `gorm:"type:decimal(10,7);not null" json:"latitude"`
	Longitude float64   `gorm:"type:decimal(10,7);not null" json:"longitude"`
	Kind      string    `gorm:"type:varchar(20);not null;default:'area'" json:"kind"` // area, landmark, station
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

func (KnownLocation) TableName() string {
	return "known_locations"
}
