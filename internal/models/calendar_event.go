package models

import "time"

// CalendarEvent is an agent's scheduled appointment, usually a viewing
type CalendarEvent struct {
	ID         uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	AgentID    string    `gorm:"type:varchar(36);not null;index" json:"agentId"`
	PropertyID *string   `gorm:"type:varchar(36);index" json:"propertyId,omitempty"`
	Title      string    `gorm:"type:varchar(255);not null" json:"title"`
	StartsAt   time.Time `gorm:"type:timestamp;not null;index" json:"startsAt"`
	EndsAt     time.Time `gorm:"type:timestamp;not null" json:"endsAt"`
	Notes      string    `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

func (CalendarEvent) TableName() string {
	return "calendar_events"
}
