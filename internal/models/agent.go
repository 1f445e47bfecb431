package models

import "time"

// Agent is a user permitted to create and manage listings.
type Agent struct {
	ID        string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	Email     string    `gorm:"type:varchar(255);not null;uniqueIndex" json:"email"`
	Phone     string    `gorm:"type:varchar(30)" json:"phone,omitempty"`
	Agency    string    `gorm:"type:varchar(255)" json:"agency,omitempty"`
	Role      AgentRole `gorm:"type:varchar(10);not null;default:'agent'" json:"role"`
	AICredits int       `gorm:"not null;default:0" json:"aiCredits"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

// AgentRole distinguishes regular agents from admins
type AgentRole string

const (
	AgentRoleAgent AgentRole = "agent"
	AgentRoleAdmin AgentRole = "admin"
)

func (Agent) TableName() string {
	return "agents"
}

// HasCredits reports whether the agent can spend an AI credit
func (a *Agent) HasCredits() bool {
	return a.AICredits > 0
}
