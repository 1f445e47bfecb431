package models

import "time"

// DeleteLog records listings that were physically purged
type DeleteLog struct {
	ID         uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	PropertyID string    `gorm:"type:varchar(36);not null;index" json:"propertyId"`
	Title      string    `gorm:"type:text" json:"title"`
	AgentID    string    `gorm:"type:varchar(36)" json:"agentId"`
	ExpiredAt  time.Time `gorm:"type:timestamp" json:"expiredAt"`
	DeletedAt  time.Time `gorm:"type:timestamp;not null;autoCreateTime;index" json:"deletedAt"`
	Reason     string    `gorm:"type:varchar(50);not null" json:"reason"`
}

func (DeleteLog) TableName() string {
	return "delete_logs"
}

// DeleteReason constants
const (
	DeleteReasonExpired   = "expired_retention"
	DeleteReasonManual    = "manual_deletion"
	DeleteReasonDataClean = "data_cleanup"
)
