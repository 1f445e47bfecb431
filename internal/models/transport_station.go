package models

import "time"

// TransportStation is a rail station used for proximity scoring
type TransportStation struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string    `gorm:"type:varchar(255);not null;index" json:"name"`
	Line        string    `gorm:"type:varchar(255);not null;index" json:"line"`
	StationType string    `gorm:"type:varchar(20);not null;index" json:"stationType"` // mrt, lrt, ktm, monorail
	Latitude    float64   `gorm:"type:decimal(10,7);not null" json:"latitude"`
	Longitude   float64   `gorm:"type:decimal(10,7);not null" json:"longitude"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

func (TransportStation) TableName() string {
	return "transport_stations"
}

// StationProximity pairs a station with the distance from a property
type StationProximity struct {
	Station        TransportStation `json:"station"`
	DistanceMeters float64          `json:"distanceMeters"`
	WalkMinutes    int              `json:"walkMinutes"`
}
