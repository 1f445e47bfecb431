package models

import "time"

// Inquiry is a buyer/renter message about a listing
type Inquiry struct {
	ID          uint          `gorm:"primaryKey;autoIncrement" json:"id"`
	PropertyID  string        `gorm:"type:varchar(36);not null;index" json:"propertyId"`
	SenderName  string        `gorm:"type:varchar(255);not null" json:"senderName"`
	SenderEmail string        `gorm:"type:varchar(255);not null" json:"senderEmail"`
	SenderPhone string        `gorm:"type:varchar(30)" json:"senderPhone,omitempty"`
	Message     string        `gorm:"type:text;not null" json:"message"`
	Status      InquiryStatus `gorm:"type:varchar(10);not null;default:'new';index" json:"status"`
	CreatedAt   time.Time     `gorm:"autoCreateTime;index" json:"createdAt"`
	UpdatedAt   time.Time     `gorm:"autoUpdateTime" json:"updatedAt"`
}

// InquiryStatus is the handling state of an inquiry
type InquiryStatus string

const (
	InquiryStatusNew     InquiryStatus = "new"
	InquiryStatusRead    InquiryStatus = "read"
	InquiryStatusReplied InquiryStatus = "replied"
)

func (Inquiry) TableName() string {
	return "inquiries"
}

// ValidInquiryStatus reports whether s is a member of the status enum
func ValidInquiryStatus(s InquiryStatus) bool {
	switch s {
	case InquiryStatusNew, InquiryStatusRead, InquiryStatusReplied:
		return true
	}
	return false
}
