package models

import "time"

// Notification is an in-app message for a user
type Notification struct {
	ID          uint             `gorm:"primaryKey;autoIncrement" json:"id"`
	RecipientID string           `gorm:"type:varchar(36);not null;index" json:"recipientId"`
	Kind        NotificationKind `gorm:"type:varchar(20);not null" json:"kind"`
	Title       string           `gorm:"type:varchar(255);not null" json:"title"`
	Payload     string           `gorm:"type:text" json:"payload,omitempty"`
	Read        bool             `gorm:"not null;default:false;index" json:"read"`
	CreatedAt   time.Time        `gorm:"autoCreateTime;index" json:"createdAt"`
}

// NotificationKind distinguishes notification sources
type NotificationKind string

const (
	NotificationKindSavedSearch NotificationKind = "saved_search"
	NotificationKindInquiry     NotificationKind = "inquiry"
	NotificationKindSystem      NotificationKind = "system"
)

func (Notification) TableName() string {
	return "notifications"
}
